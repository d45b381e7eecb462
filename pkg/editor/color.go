package editor

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

// Tint 是关键帧或色块的显示颜色
type Tint struct {
	Color colorful.Color
	Alpha float64
}

var (
	tintWhite  = colorful.Color{R: 1, G: 1, B: 1}
	tintYellow = colorful.Color{R: 1, G: 1, B: 0}
	tintRed    = colorful.Color{R: 1, G: 0, B: 0}
	tintBlue   = colorful.Color{R: 0, G: 0, B: 1}
)

// RGBA converts the tint to a non-premultiplied 8-bit color for drawing.
func (t Tint) RGBA() color.NRGBA {
	c := t.Color.Clamped()
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(clamp01(t.Alpha) * 255)),
	}
}

// PreviewColor 将颜色属性的值归一化为可显示的颜色
//
// 任一分量大于 1 时 RGB 按最大分量等比缩小；透明度至少为 0.05，保证色块可见。
func PreviewColor(v keyframe.Vector4) Tint {
	max := math.Max(math.Max(v.X, v.Y), math.Max(v.Z, v.W))
	r, g, b := v.X, v.Y, v.Z
	if max > 1 {
		r /= max
		g /= max
		b /= max
	}
	return Tint{Color: colorful.Color{R: r, G: g, B: b}, Alpha: math.Max(v.W, 0.05)}
}

// IntensityColor maps a float intensity to a key tint:
// up to 1 fades from black to white, then white to yellow below 10,
// yellow to red below 50, and red towards blue above that.
func IntensityColor(value float64) Tint {
	switch {
	case value <= 1:
		v := math.Max(value, 0)
		return Tint{Color: colorful.Color{R: v, G: v, B: v}, Alpha: v}
	case value < 10:
		return Tint{Color: tintWhite.BlendRgb(tintYellow, clamp01(value/10)), Alpha: 1}
	case value < 50:
		return Tint{Color: tintYellow.BlendRgb(tintRed, clamp01(value/50)), Alpha: 1}
	default:
		return Tint{Color: tintRed.BlendRgb(tintBlue, clamp01(value)), Alpha: 1}
	}
}

// ValueTint returns the tint for a key value of a colour property.
// Vector3 values have no colour meaning and are drawn white.
func ValueTint(v keyframe.Value) Tint {
	switch x := v.(type) {
	case keyframe.Vector4:
		return PreviewColor(x)
	case keyframe.Scalar:
		return IntensityColor(float64(x))
	}
	return Tint{Color: tintWhite, Alpha: 1}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
