package keyframe

import (
	"errors"
	"fmt"
	"sort"
)

// ErrIndexOutOfRange is returned when a key index does not address a key.
var ErrIndexOutOfRange = errors.New("key index out of range")

// Key is one keyframe. Children is set only on outer keys of 2D properties
// and holds the keys along the particle-lifetime axis.
type Key struct {
	Time     float64
	Value    Value
	Children *List
}

// List 是同一值类型的关键帧列表
//
// 列表保持插入顺序，只有在应用（Apply）时才会排序。
// 所有修改都会触发 OnChange 回调，子列表继承同一个回调。
type List struct {
	ops      Ops
	keys     []Key
	onChange func()
}

// NewList 创建一个空列表
//
// 参数:
//
//	t - 列表中所有值的类型
//
// 返回:
//
//	*List - 新列表
//	error - 类型不受支持时返回错误
func NewList(t ValueType) (*List, error) {
	ops, ok := OpsFor(t)
	if !ok {
		return nil, fmt.Errorf("unsupported value type %q", t)
	}
	return &List{ops: ops}, nil
}

// MustNewList is NewList for statically known types.
func MustNewList(t ValueType) *List {
	l, err := NewList(t)
	if err != nil {
		panic(err)
	}
	return l
}

// Type returns the value type of the list.
func (l *List) Type() ValueType { return l.ops.Type }

// Ops returns the operation table for the list's value type.
func (l *List) Ops() Ops { return l.ops }

// Count returns the number of keys.
func (l *List) Count() int { return len(l.keys) }

// SetOnChange 设置修改回调，并递归传给所有子列表
func (l *List) SetOnChange(fn func()) {
	l.onChange = fn
	for _, k := range l.keys {
		if k.Children != nil {
			k.Children.SetOnChange(fn)
		}
	}
}

func (l *List) changed() {
	if l.onChange != nil {
		l.onChange()
	}
}

func (l *List) checkValue(v Value) error {
	if v == nil {
		return fmt.Errorf("nil value for %s list", l.ops.Type)
	}
	if v.Type() != l.ops.Type {
		return fmt.Errorf("value of type %s does not fit a %s list", v.Type(), l.ops.Type)
	}
	return nil
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= len(l.keys) {
		return fmt.Errorf("%w: %d (count %d)", ErrIndexOutOfRange, i, len(l.keys))
	}
	return nil
}

// Add 追加一个关键帧（不排序）
//
// 参数:
//
//	k - 要追加的关键帧；子列表会继承本列表的回调
//
// 返回:
//
//	int - 新关键帧的索引
//	error - 值类型不匹配时返回错误
func (l *List) Add(k Key) (int, error) {
	if err := l.checkValue(k.Value); err != nil {
		return -1, err
	}
	if k.Children != nil {
		if k.Children.Type() != l.ops.Type {
			return -1, fmt.Errorf("children of type %s do not fit a %s list", k.Children.Type(), l.ops.Type)
		}
		k.Children.SetOnChange(l.onChange)
	}
	l.keys = append(l.keys, k)
	l.changed()
	return len(l.keys) - 1, nil
}

// RemoveAt removes the key at index i.
func (l *List) RemoveAt(i int) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.keys = append(l.keys[:i], l.keys[i+1:]...)
	l.changed()
	return nil
}

// Get returns the key at index i.
func (l *List) Get(i int) (Key, error) {
	if err := l.checkIndex(i); err != nil {
		return Key{}, err
	}
	return l.keys[i], nil
}

// ChildrenOf returns the inner list of outer key i (nil for 1D keys).
func (l *List) ChildrenOf(i int) (*List, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	return l.keys[i].Children, nil
}

// SetChildren 替换外层关键帧 i 的子列表
func (l *List) SetChildren(i int, children *List) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	if children != nil {
		if children.Type() != l.ops.Type {
			return fmt.Errorf("children of type %s do not fit a %s list", children.Type(), l.ops.Type)
		}
		children.SetOnChange(l.onChange)
	}
	l.keys[i].Children = children
	l.changed()
	return nil
}

// SetTime moves key i to time t without reordering.
func (l *List) SetTime(i int, t float64) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.keys[i].Time = t
	l.changed()
	return nil
}

// SetValue replaces the value of key i, keeping its time.
func (l *List) SetValue(i int, v Value) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	if err := l.checkValue(v); err != nil {
		return err
	}
	l.keys[i].Value = v
	l.changed()
	return nil
}

// Replace 用 k 整体替换索引 i 处的关键帧
func (l *List) Replace(i int, k Key) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	if err := l.checkValue(k.Value); err != nil {
		return err
	}
	if k.Children != nil {
		k.Children.SetOnChange(l.onChange)
	}
	l.keys[i] = k
	l.changed()
	return nil
}

// Keys returns a shallow copy of the keys in their current order.
func (l *List) Keys() []Key {
	out := make([]Key, len(l.keys))
	copy(out, l.keys)
	return out
}

// Times returns the key times in their current order.
func (l *List) Times() []float64 {
	out := make([]float64, len(l.keys))
	for i, k := range l.keys {
		out[i] = k.Time
	}
	return out
}

// MaxTime 返回最大的关键帧时间，列表为空时 ok 为 false
func (l *List) MaxTime() (max float64, ok bool) {
	for i, k := range l.keys {
		if i == 0 || k.Time > max {
			max = k.Time
		}
	}
	return max, len(l.keys) > 0
}

// Clone 深拷贝，包括所有子列表；回调不会被复制
func (l *List) Clone() *List {
	out := &List{ops: l.ops, keys: make([]Key, len(l.keys))}
	for i, k := range l.keys {
		out.keys[i] = Key{Time: k.Time, Value: k.Value}
		if k.Children != nil {
			out.keys[i].Children = k.Children.Clone()
		}
	}
	return out
}

// SortByTime stable-sorts this list by ascending time. Keys with equal
// times keep their insertion order. Children are not sorted; the caller
// sorts each inner list it cares about. Sorting is not a content change
// and does not fire OnChange.
func (l *List) SortByTime() {
	sort.SliceStable(l.keys, func(a, b int) bool {
		return l.keys[a].Time < l.keys[b].Time
	})
}

// HasCollisions reports whether two adjacent keys share the same time.
// Only meaningful on a sorted list.
func (l *List) HasCollisions() bool {
	for i := 1; i < len(l.keys); i++ {
		if l.keys[i].Time == l.keys[i-1].Time {
			return true
		}
	}
	return false
}

// AllEqual 判断列表中所有关键帧的值是否相同（空列表返回 false）
func (l *List) AllEqual() bool {
	if len(l.keys) == 0 {
		return false
	}
	first := l.keys[0].Value
	for _, k := range l.keys[1:] {
		if !l.ops.Equal(first, k.Value) {
			return false
		}
	}
	return true
}
