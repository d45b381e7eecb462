package editor

import (
	"fmt"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/config"
)

// SingleValueKeys is how many inner keys a collapsed single-value row holds.
const SingleValueKeys = 4

// Target is where a value editor reads and writes its value.
type Target interface {
	Get() (keyframe.Value, error)
	Set(v keyframe.Value) error
}

// KeyTarget 绑定到列表中的单个关键帧
type KeyTarget struct {
	List  *keyframe.List
	Index int
}

func (t KeyTarget) Get() (keyframe.Value, error) {
	k, err := t.List.Get(t.Index)
	if err != nil {
		return nil, err
	}
	return k.Value, nil
}

func (t KeyTarget) Set(v keyframe.Value) error {
	return t.List.SetValue(t.Index, v)
}

// SingleValueTarget 绑定到单值模式的内层列表
//
// 写入时 4 个内层关键帧全部改为同一值，时间均匀分布在 i/3。
type SingleValueTarget struct {
	List    *keyframe.List
	Default keyframe.Value
}

func (t SingleValueTarget) Get() (keyframe.Value, error) {
	if t.List.Count() == 0 {
		return t.Default, nil
	}
	k, err := t.List.Get(0)
	if err != nil {
		return nil, err
	}
	return k.Value, nil
}

func (t SingleValueTarget) Set(v keyframe.Value) error {
	return FillSingleValue(t.List, v)
}

// FillSingleValue rewrites list to exactly SingleValueKeys keys holding v at
// times i/(SingleValueKeys-1). Existing keys are rewritten in place.
func FillSingleValue(list *keyframe.List, v keyframe.Value) error {
	for list.Count() > SingleValueKeys {
		if err := list.RemoveAt(list.Count() - 1); err != nil {
			return err
		}
	}
	for i := 0; i < SingleValueKeys; i++ {
		time := float64(i) / float64(SingleValueKeys-1)
		if i < list.Count() {
			if err := list.Replace(i, keyframe.Key{Time: time, Value: v}); err != nil {
				return err
			}
			continue
		}
		if _, err := list.Add(keyframe.Key{Time: time, Value: v}); err != nil {
			return err
		}
	}
	return nil
}

// 各类型分量的显示名称
var (
	floatLabels   = []string{"Value"}
	vector3Labels = []string{"X", "Y", "Z"}
	vector4Labels = []string{"X", "Y", "Z", "W"}
	colorLabels   = []string{"R", "G", "B", "A"}
)

// ValueEditor 是按值类型生成的输入面板，每个分量一个数字框
type ValueEditor struct {
	Boxes  []*NumberBox
	Labels []string
	// Tooltip 显示在每个数字框上的提示
	Tooltip string

	info    *config.PropertyInfo
	target  Target
	current keyframe.Value
}

// ValueEditorOptions 数字框拖动参数
type ValueEditorOptions struct {
	DragThreshold float64
	DragScale     float64
	Tooltip       string
}

// NewValueEditor 为目标创建值编辑器
//
// 参数:
//
//	target - 读写位置
//	info - 属性元数据（范围、精度、默认值、是否颜色）
//	opts - 数字框参数
//
// 返回:
//
//	*ValueEditor - 编辑器
//	error - 无法读取目标值时返回错误
func NewValueEditor(target Target, info *config.PropertyInfo, opts ValueEditorOptions) (*ValueEditor, error) {
	v, err := target.Get()
	if err != nil {
		return nil, fmt.Errorf("value editor: %w", err)
	}
	if v == nil {
		v = info.DefaultValue()
	}
	if v.Type() != info.Type {
		return nil, fmt.Errorf("value editor: %s value for %s property", v.Type(), info.Type)
	}

	e := &ValueEditor{info: info, target: target, current: v, Tooltip: opts.Tooltip}
	switch info.Type {
	case keyframe.TypeVector3:
		e.Labels = vector3Labels
	case keyframe.TypeVector4:
		if info.Color {
			e.Labels = colorLabels
		} else {
			e.Labels = vector4Labels
		}
	default:
		e.Labels = floatLabels
	}

	comps := v.Components()
	for dim := range comps {
		boxOpts := NumberBoxOptions{
			Min:           info.Range.Min,
			Max:           info.Range.Max,
			Hard:          info.Range.Hard,
			InputRound:    info.Range.InputRounding,
			DragRound:     info.Range.Rounding,
			Default:       info.DefaultComponent(dim),
			DragThreshold: opts.DragThreshold,
			DragScale:     opts.DragScale,
		}
		box := NewNumberBox(comps[dim], boxOpts)
		d := dim
		box.OnChange = func(value float64) { e.setComponent(d, value) }
		e.Boxes = append(e.Boxes, box)
	}
	return e, nil
}

func (e *ValueEditor) setComponent(dim int, value float64) {
	next := keyframe.WithComponent(e.current, dim, value)
	if err := e.target.Set(next); err != nil {
		return
	}
	e.current = next
}

// Value returns the value currently shown.
func (e *ValueEditor) Value() keyframe.Value { return e.current }

// Refresh 从目标重新读取值并更新所有数字框（不触发修改）
func (e *ValueEditor) Refresh() error {
	v, err := e.target.Get()
	if err != nil {
		return err
	}
	if v == nil {
		v = e.info.DefaultValue()
	}
	e.current = v
	for dim, c := range v.Components() {
		if dim < len(e.Boxes) {
			e.Boxes[dim].Load(c)
		}
	}
	return nil
}

// Swatch 返回颜色预览；仅颜色属性的 Vector4 值有预览
func (e *ValueEditor) Swatch() (Tint, bool) {
	if !e.info.Color {
		return Tint{}, false
	}
	v, ok := e.current.(keyframe.Vector4)
	if !ok {
		return Tint{}, false
	}
	return PreviewColor(v), true
}
