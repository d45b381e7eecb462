package game

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/config"
)

// EffectKind 粒子效果中可编辑的对象类型
type EffectKind string

const (
	KindEmitter EffectKind = "emitter"
	KindLight   EffectKind = "light"
)

// Effect 一个粒子效果：名称、类型和全部动画属性
type Effect struct {
	Name       string                   `yaml:"name"`
	Kind       EffectKind               `yaml:"kind"`
	Properties []*keyframe.PropertyData `yaml:"properties"`
}

var effectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// ValidateEffectName 检查效果名称：1~64 个字母、数字、下划线或连字符
func ValidateEffectName(name string) error {
	if name == "" {
		return fmt.Errorf("effect name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("effect name too long: %d characters (max 64)", len(name))
	}
	if !effectNamePattern.MatchString(name) {
		return fmt.Errorf("effect name %q may only contain letters, digits, '_' and '-'", name)
	}
	return nil
}

// NewEffect 按属性元数据表创建默认效果
//
// 每个属于 kind 的属性按最少关键帧数生成默认关键帧：
// 一维属性在 [0,1] 上均匀分布；二维属性有一个时间为 0 的外层关键帧，
// 内层关键帧在 [0,1] 上均匀分布。值都取属性的默认值。
//
// 参数:
//
//	name - 效果名称
//	kind - 效果类型
//	table - 属性元数据表
func NewEffect(name string, kind EffectKind, table *config.PropertyTable) (*Effect, error) {
	if err := ValidateEffectName(name); err != nil {
		return nil, err
	}
	prefix := string(kind) + "/"
	e := &Effect{Name: name, Kind: kind}
	for _, id := range table.IDs() {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		info, _ := table.Get(id)
		e.Properties = append(e.Properties, defaultPropertyData(strings.TrimPrefix(id, prefix), info))
	}
	if len(e.Properties) == 0 {
		return nil, fmt.Errorf("no properties known for effect kind %q", kind)
	}
	return e, nil
}

func defaultPropertyData(name string, info *config.PropertyInfo) *keyframe.PropertyData {
	value := info.DefaultValue().Components()
	d := &keyframe.PropertyData{
		Name:          name,
		Type:          info.Type,
		AnimationType: keyframe.Animated,
	}
	if info.Is2D {
		d.AnimationType = keyframe.Animated2D
		d.Keys = []keyframe.KeyData{{
			Time:  0,
			Value: value,
			Keys:  spreadKeys(max(info.RequiredKeys2D, 1), value),
		}}
		return d
	}
	d.Keys = spreadKeys(max(info.RequiredKeys1D, 1), value)
	return d
}

// spreadKeys 在 [0,1] 上均匀生成 n 个相同值的关键帧
func spreadKeys(n int, value []float64) []keyframe.KeyData {
	keys := make([]keyframe.KeyData, n)
	for i := range keys {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		keys[i] = keyframe.KeyData{Time: t, Value: append([]float64(nil), value...)}
	}
	return keys
}

// PropertyID 返回属性在元数据表中的 ID（"kind/Name"）
func (e *Effect) PropertyID(name string) string {
	return string(e.Kind) + "/" + name
}

// PropertyNames 按效果中的顺序返回属性名
func (e *Effect) PropertyNames() []string {
	names := make([]string, len(e.Properties))
	for i, p := range e.Properties {
		names[i] = p.Name
	}
	return names
}

// Property 返回指定属性的宿主；宿主直接修改效果中的数据
//
// 参数:
//
//	name - 属性名（不带 kind 前缀）
//
// 返回:
//
//	*Property - 属性宿主
//	error - 效果中没有该属性时返回错误
func (e *Effect) Property(name string) (*Property, error) {
	for _, p := range e.Properties {
		if p.Name == name {
			return NewProperty(p), nil
		}
	}
	return nil, fmt.Errorf("effect %s has no property %q", e.Name, name)
}

// Validate 检查效果名称、类型和每个属性的数据
func (e *Effect) Validate() error {
	if err := ValidateEffectName(e.Name); err != nil {
		return err
	}
	switch e.Kind {
	case KindEmitter, KindLight:
	default:
		return fmt.Errorf("effect %s: unknown kind %q", e.Name, e.Kind)
	}
	seen := make(map[string]bool, len(e.Properties))
	for _, p := range e.Properties {
		if p == nil {
			return fmt.Errorf("effect %s: nil property", e.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("effect %s: duplicated property %q", e.Name, p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return fmt.Errorf("effect %s: %w", e.Name, err)
		}
	}
	return nil
}
