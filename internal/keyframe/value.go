// Package keyframe provides the in-memory keyframe model used by the
// particle property editor.
//
// A property is either animated over the effect's elapsed time (1D) or over
// both the effect's elapsed time and a single particle's normalized life (2D).
// Each property holds values of exactly one ValueType.
package keyframe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType is the declared value type of an animated property.
type ValueType string

const (
	TypeFloat   ValueType = "Float"
	TypeVector3 ValueType = "Vector3"
	TypeVector4 ValueType = "Vector4"
)

// Valid reports whether t is one of the supported value types.
func (t ValueType) Valid() bool {
	switch t {
	case TypeFloat, TypeVector3, TypeVector4:
		return true
	}
	return false
}

// Dims returns how many float components a value of this type carries.
func (t ValueType) Dims() int {
	switch t {
	case TypeFloat:
		return 1
	case TypeVector3:
		return 3
	case TypeVector4:
		return 4
	}
	return 0
}

// Value is a closed sum type: Scalar, Vector3 or Vector4.
type Value interface {
	// Type returns the variant's type tag.
	Type() ValueType
	// Components returns the value as a flat float slice (len == Type().Dims()).
	Components() []float64
	// String formats the value for tooltips and notifications.
	String() string

	isValue()
}

// Scalar is the Float variant.
type Scalar float64

// Vector3 is the 3-component variant (velocities, positions, sizes).
type Vector3 struct {
	X, Y, Z float64
}

// Vector4 is the 4-component variant (colors are stored as RGBA).
type Vector4 struct {
	X, Y, Z, W float64
}

func (Scalar) Type() ValueType  { return TypeFloat }
func (Vector3) Type() ValueType { return TypeVector3 }
func (Vector4) Type() ValueType { return TypeVector4 }

func (Scalar) isValue()  {}
func (Vector3) isValue() {}
func (Vector4) isValue() {}

func (s Scalar) Components() []float64  { return []float64{float64(s)} }
func (v Vector3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }
func (v Vector4) Components() []float64 { return []float64{v.X, v.Y, v.Z, v.W} }

func (s Scalar) String() string { return formatFloat(float64(s)) }

func (v Vector3) String() string {
	return joinFloats(v.X, v.Y, v.Z)
}

func (v Vector4) String() string {
	return joinFloats(v.X, v.Y, v.Z, v.W)
}

// Lerp 标量线性插值
func (s Scalar) Lerp(to Scalar, t float64) Scalar {
	return Scalar(lerp(float64(s), float64(to), t))
}

// Lerp 逐分量线性插值
func (v Vector3) Lerp(to Vector3, t float64) Vector3 {
	return Vector3{
		X: lerp(v.X, to.X, t),
		Y: lerp(v.Y, to.Y, t),
		Z: lerp(v.Z, to.Z, t),
	}
}

// Lerp 逐分量线性插值
func (v Vector4) Lerp(to Vector4, t float64) Vector4 {
	return Vector4{
		X: lerp(v.X, to.X, t),
		Y: lerp(v.Y, to.Y, t),
		Z: lerp(v.Z, to.Z, t),
		W: lerp(v.W, to.W, t),
	}
}

// FromComponents builds a value of type t from a flat float slice.
// Returns an error if the slice length doesn't match the type's dimensions.
func FromComponents(t ValueType, c []float64) (Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unsupported value type %q", t)
	}
	if len(c) != t.Dims() {
		return nil, fmt.Errorf("value type %s needs %d components, got %d", t, t.Dims(), len(c))
	}
	switch t {
	case TypeFloat:
		return Scalar(c[0]), nil
	case TypeVector3:
		return Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
	default:
		return Vector4{X: c[0], Y: c[1], Z: c[2], W: c[3]}, nil
	}
}

// WithComponent returns a copy of v with component dim replaced.
// Out-of-range dims return v unchanged.
func WithComponent(v Value, dim int, value float64) Value {
	c := v.Components()
	if dim < 0 || dim >= len(c) {
		return v
	}
	c[dim] = value
	out, err := FromComponents(v.Type(), c)
	if err != nil {
		return v
	}
	return out
}

// Ops 是某个值类型的操作表
// 在属性加载时按类型选取一次，后续操作不再重复判断类型
type Ops struct {
	Type ValueType
	// Zero 该类型的零值
	Zero Value
	// Lerp 在 a 与 b 之间按 t 插值（t 不做限制，可外推）
	Lerp func(a, b Value, t float64) (Value, error)
	// Equal 判断两个值是否完全相等
	Equal func(a, b Value) bool
}

var opsTable = map[ValueType]Ops{
	TypeFloat: {
		Type: TypeFloat,
		Zero: Scalar(0),
		Lerp: func(a, b Value, t float64) (Value, error) {
			x, ok1 := a.(Scalar)
			y, ok2 := b.(Scalar)
			if !ok1 || !ok2 {
				return nil, mismatch(TypeFloat, a, b)
			}
			return x.Lerp(y, t), nil
		},
		Equal: func(a, b Value) bool {
			x, ok1 := a.(Scalar)
			y, ok2 := b.(Scalar)
			return ok1 && ok2 && x == y
		},
	},
	TypeVector3: {
		Type: TypeVector3,
		Zero: Vector3{},
		Lerp: func(a, b Value, t float64) (Value, error) {
			x, ok1 := a.(Vector3)
			y, ok2 := b.(Vector3)
			if !ok1 || !ok2 {
				return nil, mismatch(TypeVector3, a, b)
			}
			return x.Lerp(y, t), nil
		},
		Equal: func(a, b Value) bool {
			x, ok1 := a.(Vector3)
			y, ok2 := b.(Vector3)
			return ok1 && ok2 && x == y
		},
	},
	TypeVector4: {
		Type: TypeVector4,
		Zero: Vector4{},
		Lerp: func(a, b Value, t float64) (Value, error) {
			x, ok1 := a.(Vector4)
			y, ok2 := b.(Vector4)
			if !ok1 || !ok2 {
				return nil, mismatch(TypeVector4, a, b)
			}
			return x.Lerp(y, t), nil
		},
		Equal: func(a, b Value) bool {
			x, ok1 := a.(Vector4)
			y, ok2 := b.(Vector4)
			return ok1 && ok2 && x == y
		},
	},
}

// OpsFor returns the operation table for t.
func OpsFor(t ValueType) (Ops, bool) {
	ops, ok := opsTable[t]
	return ops, ok
}

func mismatch(want ValueType, a, b Value) error {
	return fmt.Errorf("lerp on %s expects two %s values, got %s and %s", want, want, typeName(a), typeName(b))
}

func typeName(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return string(v.Type())
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// formatFloat 最多保留 5 位小数，去掉多余的 0
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

func joinFloats(fs ...float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formatFloat(f)
	}
	return strings.Join(parts, "  ")
}
