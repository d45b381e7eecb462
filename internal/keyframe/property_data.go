package keyframe

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AnimationType tags whether a property is animated on one or two axes.
type AnimationType string

const (
	Animated   AnimationType = "Animated"
	Animated2D AnimationType = "Animated2D"
)

// PropertyData 是属性宿主的扁平序列化形式
//
// YAML 格式示例：
//
//	name: Color
//	type: Vector4
//	animationType: Animated2D
//	keys:
//	  - time: 0
//	    value: [1, 0, 0.5, 1]
//	    keys:
//	      - {time: 0, value: [1, 0, 0.5, 1]}
type PropertyData struct {
	Name          string        `yaml:"name"`
	Type          ValueType     `yaml:"type"`
	AnimationType AnimationType `yaml:"animationType"`
	Keys          []KeyData     `yaml:"keys"`
}

// KeyData is one serialized key. Keys holds the inner list of a 2D outer key.
type KeyData struct {
	Time  float64   `yaml:"time"`
	Value []float64 `yaml:"value,flow"`
	Keys  []KeyData `yaml:"keys,omitempty"`
}

// Is2D reports whether the data describes a 2D property.
func (d *PropertyData) Is2D() bool {
	return d.AnimationType == Animated2D
}

// Validate 检查类型标签与每个值的分量数
func (d *PropertyData) Validate() error {
	if !d.Type.Valid() {
		return fmt.Errorf("property %q: unsupported value type %q", d.Name, d.Type)
	}
	switch d.AnimationType {
	case Animated, Animated2D:
	default:
		return fmt.Errorf("property %q: unsupported animation type %q", d.Name, d.AnimationType)
	}

	dims := d.Type.Dims()
	for i, k := range d.Keys {
		if len(k.Value) != dims {
			return fmt.Errorf("property %q: key %d has %d components, want %d", d.Name, i, len(k.Value), dims)
		}
		if !d.Is2D() && len(k.Keys) > 0 {
			return fmt.Errorf("property %q: key %d has inner keys on a 1D property", d.Name, i)
		}
		for j, inner := range k.Keys {
			if len(inner.Value) != dims {
				return fmt.Errorf("property %q: key %d inner key %d has %d components, want %d",
					d.Name, i, j, len(inner.Value), dims)
			}
			if len(inner.Keys) > 0 {
				return fmt.Errorf("property %q: key %d inner key %d is nested too deep", d.Name, i, j)
			}
		}
	}
	return nil
}

// Encode 将属性数据编码为 YAML 文本
func Encode(d *PropertyData) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode property %q: %w", d.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode property %q: %w", d.Name, err)
	}
	return buf.Bytes(), nil
}

// Decode 解析 YAML 文本并校验
//
// 参数:
//
//	data - YAML 文本
//
// 返回:
//
//	*PropertyData - 解析结果
//	error - 语法错误或校验失败时返回错误
func Decode(data []byte) (*PropertyData, error) {
	var d PropertyData
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse property data: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid property data: %w", err)
	}
	return &d, nil
}

// ToList converts the serialized keys into a List. For 2D properties every
// outer key gets a (possibly empty) children list.
func (d *PropertyData) ToList() (*List, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	l, err := NewList(d.Type)
	if err != nil {
		return nil, err
	}
	for _, kd := range d.Keys {
		k, err := keyFromData(d.Type, kd)
		if err != nil {
			return nil, err
		}
		if d.Is2D() {
			children, err := NewList(d.Type)
			if err != nil {
				return nil, err
			}
			for _, inner := range kd.Keys {
				ik, err := keyFromData(d.Type, inner)
				if err != nil {
					return nil, err
				}
				if _, err := children.Add(ik); err != nil {
					return nil, err
				}
			}
			k.Children = children
		}
		if _, err := l.Add(k); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// FromList 将列表转换为扁平序列化形式
func FromList(name string, l *List, is2D bool) *PropertyData {
	d := &PropertyData{
		Name:          name,
		Type:          l.Type(),
		AnimationType: Animated,
		Keys:          make([]KeyData, 0, l.Count()),
	}
	if is2D {
		d.AnimationType = Animated2D
	}
	for _, k := range l.keys {
		kd := KeyData{Time: k.Time, Value: k.Value.Components()}
		if is2D && k.Children != nil {
			kd.Keys = make([]KeyData, 0, k.Children.Count())
			for _, inner := range k.Children.keys {
				kd.Keys = append(kd.Keys, KeyData{Time: inner.Time, Value: inner.Value.Components()})
			}
		}
		d.Keys = append(d.Keys, kd)
	}
	return d
}

func keyFromData(t ValueType, kd KeyData) (Key, error) {
	v, err := FromComponents(t, kd.Value)
	if err != nil {
		return Key{}, err
	}
	return Key{Time: kd.Time, Value: v}, nil
}
