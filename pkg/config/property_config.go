package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/embedded"
)

// PropertiesConfigPath 内置属性元数据表路径
const PropertiesConfigPath = "data/properties.yaml"

// DefaultRequiredKeysReason 未声明原因时的最少关键帧说明
const DefaultRequiredKeysReason = "it can crash the game."

// ValueRange 属性值范围与输入精度
type ValueRange struct {
	Min     float64   // 最小值（每个分量相同）
	Max     float64   // 最大值（每个分量相同）
	Default []float64 // 默认值，为空表示未声明
	// Rounding 拖动调整时保留的小数位数
	Rounding int
	// InputRounding 文本输入保留的小数位数
	InputRounding int
	// Hard 为 true 时数字框强制限制在范围内
	Hard bool
}

// PropertyInfo 单个动画属性的元数据
type PropertyInfo struct {
	ID      string // "owner/Name"
	Name    string
	Tooltip string
	Type    keyframe.ValueType
	Is2D    bool
	// Color 为 true 时关键帧按值着色，Vector4 值显示为颜色
	Color bool

	RequiredKeys1D       int
	RequiredKeys1DReason string
	RequiredKeys2D       int
	RequiredKeys2DReason string

	Range ValueRange
}

// DefaultValue 返回新关键帧使用的值
//
// 优先使用声明的默认值；否则 Vector4 颜色属性为 (1,0,0.5,1)，其他 Vector4 为全 1，
// Vector3 为零向量，Float 为 1。
func (p *PropertyInfo) DefaultValue() keyframe.Value {
	if len(p.Range.Default) == p.Type.Dims() {
		if v, err := keyframe.FromComponents(p.Type, p.Range.Default); err == nil {
			return v
		}
	}
	switch p.Type {
	case keyframe.TypeVector4:
		if p.Color {
			return keyframe.Vector4{X: 1, Y: 0, Z: 0.5, W: 1}
		}
		return keyframe.Vector4{X: 1, Y: 1, Z: 1, W: 1}
	case keyframe.TypeVector3:
		return keyframe.Vector3{}
	default:
		return keyframe.Scalar(1)
	}
}

// DefaultComponent returns the declared default for one dimension, or nil.
func (p *PropertyInfo) DefaultComponent(dim int) *float64 {
	if dim < 0 || dim >= len(p.Range.Default) {
		return nil
	}
	v := p.Range.Default[dim]
	return &v
}

// PropertyTable 属性元数据表
type PropertyTable struct {
	props map[string]*PropertyInfo
	ids   []string // 排序后的 ID，用于列出和模糊查找
}

// rawProperty YAML 中的属性条目，指针字段表示可省略
type rawProperty struct {
	Name                 string             `yaml:"name"`
	Tooltip              string             `yaml:"tooltip"`
	Note                 string             `yaml:"note"`
	Type                 keyframe.ValueType `yaml:"type"`
	Animation            string             `yaml:"animation"`
	Color                bool               `yaml:"color"`
	RequiredKeys1D       *int               `yaml:"requiredKeys1D"`
	RequiredKeys1DReason string             `yaml:"requiredKeys1DReason"`
	RequiredKeys2D       *int               `yaml:"requiredKeys2D"`
	RequiredKeys2DReason string             `yaml:"requiredKeys2DReason"`
	Range                rawRange           `yaml:"range"`
}

type rawRange struct {
	Min           *float64  `yaml:"min"`
	Max           *float64  `yaml:"max"`
	Default       []float64 `yaml:"default,flow"`
	Rounding      *int      `yaml:"rounding"`
	InputRounding *int      `yaml:"inputRounding"`
	Hard          bool      `yaml:"hard"`
}

type rawPropertyFile struct {
	Defaults struct {
		RequiredKeys1D *int   `yaml:"requiredKeys1D"`
		RequiredKeys2D *int   `yaml:"requiredKeys2D"`
		Reason         string `yaml:"reason"`
	} `yaml:"defaults"`
	Properties map[string]rawProperty `yaml:"properties"`
}

// LoadPropertyTable 从 YAML 文件加载属性元数据表
//
// 参数：
//
//	filepath - 配置文件路径（以 "data/" 开头）
//
// 返回：
//
//	*PropertyTable - 解析后的元数据表
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadPropertyTable(filepath string) (*PropertyTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read property table %s: %w", filepath, err)
	}

	table, err := ParsePropertyTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid property table %s: %w", filepath, err)
	}
	return table, nil
}

// ParsePropertyTable 解析属性元数据 YAML
func ParsePropertyTable(data []byte) (*PropertyTable, error) {
	var raw rawPropertyFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse property table YAML: %w", err)
	}

	if err := validatePropertyTable(&raw); err != nil {
		return nil, err
	}

	req1D, req2D := 1, 1
	if raw.Defaults.RequiredKeys1D != nil {
		req1D = *raw.Defaults.RequiredKeys1D
	}
	if raw.Defaults.RequiredKeys2D != nil {
		req2D = *raw.Defaults.RequiredKeys2D
	}
	reason := raw.Defaults.Reason
	if reason == "" {
		reason = DefaultRequiredKeysReason
	}

	table := &PropertyTable{props: make(map[string]*PropertyInfo, len(raw.Properties))}
	for id, rp := range raw.Properties {
		info := &PropertyInfo{
			ID:                   id,
			Name:                 rp.Name,
			Tooltip:              rp.Tooltip,
			Type:                 rp.Type,
			Is2D:                 rp.Animation == string(keyframe.Animated2D),
			Color:                rp.Color,
			RequiredKeys1D:       intOr(rp.RequiredKeys1D, req1D),
			RequiredKeys1DReason: stringOr(rp.RequiredKeys1DReason, reason),
			RequiredKeys2D:       intOr(rp.RequiredKeys2D, req2D),
			RequiredKeys2DReason: stringOr(rp.RequiredKeys2DReason, reason),
			Range: ValueRange{
				Min:           floatOr(rp.Range.Min, -1),
				Max:           floatOr(rp.Range.Max, 1),
				Default:       rp.Range.Default,
				Rounding:      intOr(rp.Range.Rounding, 2),
				InputRounding: intOr(rp.Range.InputRounding, 6),
				Hard:          rp.Range.Hard,
			},
		}
		if info.Name == "" {
			info.Name = id[strings.LastIndex(id, "/")+1:]
		}
		if rp.Note != "" {
			if info.Tooltip != "" {
				info.Tooltip += "\n"
			}
			info.Tooltip += "Extra info: " + rp.Note
		}
		table.props[id] = info
		table.ids = append(table.ids, id)
	}
	sort.Strings(table.ids)
	return table, nil
}

// validatePropertyTable 验证属性元数据的完整性和合法性
func validatePropertyTable(raw *rawPropertyFile) error {
	if len(raw.Properties) == 0 {
		return fmt.Errorf("at least one property is required")
	}

	for id, p := range raw.Properties {
		if !strings.Contains(id, "/") {
			return fmt.Errorf("property %s: id must be 'owner/Name'", id)
		}
		if !p.Type.Valid() {
			return fmt.Errorf("property %s: unsupported type %q", id, p.Type)
		}
		switch keyframe.AnimationType(p.Animation) {
		case keyframe.Animated, keyframe.Animated2D:
		default:
			return fmt.Errorf("property %s: animation must be Animated or Animated2D, got %q", id, p.Animation)
		}
		if p.RequiredKeys1D != nil && *p.RequiredKeys1D < 0 {
			return fmt.Errorf("property %s: requiredKeys1D cannot be negative, got %d", id, *p.RequiredKeys1D)
		}
		if p.RequiredKeys2D != nil && *p.RequiredKeys2D < 0 {
			return fmt.Errorf("property %s: requiredKeys2D cannot be negative, got %d", id, *p.RequiredKeys2D)
		}
		min, max := floatOr(p.Range.Min, -1), floatOr(p.Range.Max, 1)
		if min > max {
			return fmt.Errorf("property %s: range min %v is greater than max %v", id, min, max)
		}
		if len(p.Range.Default) > 0 && len(p.Range.Default) != p.Type.Dims() {
			return fmt.Errorf("property %s: default has %d components, want %d", id, len(p.Range.Default), p.Type.Dims())
		}
		if r := p.Range.Rounding; r != nil && (*r < 0 || *r > 15) {
			return fmt.Errorf("property %s: rounding must be between 0 and 15, got %d", id, *r)
		}
		if r := p.Range.InputRounding; r != nil && (*r < 0 || *r > 15) {
			return fmt.Errorf("property %s: inputRounding must be between 0 and 15, got %d", id, *r)
		}
	}
	return nil
}

// Get 按 ID 查找属性元数据
func (t *PropertyTable) Get(id string) (*PropertyInfo, bool) {
	p, ok := t.props[id]
	return p, ok
}

// Lookup returns the metadata for id, or a fallback built from the
// built-in defaults when the table has no entry.
func (t *PropertyTable) Lookup(id string, typ keyframe.ValueType, is2D bool) *PropertyInfo {
	if p, ok := t.props[id]; ok {
		return p
	}
	return &PropertyInfo{
		ID:                   id,
		Name:                 id[strings.LastIndex(id, "/")+1:],
		Type:                 typ,
		Is2D:                 is2D,
		RequiredKeys1D:       1,
		RequiredKeys1DReason: DefaultRequiredKeysReason,
		RequiredKeys2D:       1,
		RequiredKeys2DReason: DefaultRequiredKeysReason,
		Range:                ValueRange{Min: -1, Max: 1, Rounding: 2, InputRounding: 6},
	}
}

// IDs returns all property ids in sorted order.
func (t *PropertyTable) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Find 模糊查找属性 ID，按匹配度排序；空查询返回全部
func (t *PropertyTable) Find(query string) []string {
	if strings.TrimSpace(query) == "" {
		return t.IDs()
	}
	matches := fuzzy.Find(query, t.ids)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	if math.IsNaN(*p) {
		return def
	}
	return *p
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
