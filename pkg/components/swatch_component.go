package components

import "github.com/THDigi/ParticleEditor/pkg/editor"

// SwatchComponent 颜色属性的预览色块
type SwatchComponent struct {
	Editor *editor.ValueEditor
	Size   float64
}
