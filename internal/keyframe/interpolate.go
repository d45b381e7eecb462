package keyframe

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrEmptyList is returned when sampling a list with no keys.
var ErrEmptyList = errors.New("keyframe list is empty")

// Interpolate blends left and right at time t.
// The ratio is (t-left.Time)/(right.Time-left.Time) and is not clamped,
// so t outside the pair extrapolates. Equal times return the left value.
func Interpolate(t float64, left, right Key) (Value, error) {
	if left.Value == nil || right.Value == nil {
		return nil, fmt.Errorf("interpolate: nil key value")
	}
	if left.Value.Type() != right.Value.Type() {
		return nil, fmt.Errorf("interpolate: %s and %s keys cannot be blended", left.Value.Type(), right.Value.Type())
	}
	ops, ok := OpsFor(left.Value.Type())
	if !ok {
		return nil, fmt.Errorf("interpolate: unsupported value type %q", left.Value.Type())
	}

	duration := right.Time - left.Time
	if duration == 0 {
		return left.Value, nil
	}
	ratio := (t - left.Time) / duration
	return ops.Lerp(left.Value, right.Value, ratio)
}

// Sample 在时间 t 处对列表求值
//
// 列表按时间排序后的副本上求值，不修改原列表。
// t 落在首尾关键帧之外时取端点值；单个关键帧时总是返回该值。
//
// 参数:
//
//	l - 关键帧列表
//	t - 采样时间
//
// 返回:
//
//	Value - 插值结果
//	error - 列表为空时返回 ErrEmptyList
func Sample(l *List, t float64) (Value, error) {
	if l == nil || l.Count() == 0 {
		return nil, ErrEmptyList
	}
	keys := l.Keys()
	sort.SliceStable(keys, func(a, b int) bool { return keys[a].Time < keys[b].Time })

	if len(keys) == 1 || t <= keys[0].Time {
		return keys[0].Value, nil
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value, nil
	}

	for i := 0; i < len(keys)-1; i++ {
		k0, k1 := keys[i], keys[i+1]
		if t >= k0.Time && t <= k1.Time {
			return Interpolate(t, k0, k1)
		}
	}
	return last.Value, nil
}

// Straddling 查找包围时间 t 的左右关键帧索引
//
// 左侧取时间严格小于 t 的最近关键帧，右侧取时间大于等于 t 的最近关键帧。
// 任一侧不存在时 ok 为 false。列表不需要预先排序。
func Straddling(l *List, t float64) (left, right int, ok bool) {
	left, right = -1, -1
	bestLeft, bestRight := math.Inf(1), math.Inf(1)
	for i, k := range l.keys {
		if k.Time < t {
			if d := t - k.Time; d < bestLeft {
				bestLeft, left = d, i
			}
		} else {
			if d := k.Time - t; d < bestRight {
				bestRight, right = d, i
			}
		}
	}
	return left, right, left >= 0 && right >= 0
}
