package components

import "github.com/THDigi/ParticleEditor/pkg/editor"

// NumberBoxComponent 数字输入框
type NumberBoxComponent struct {
	Box *editor.NumberBox

	// Label 输入框左侧的分量名（如 "R"）
	Label   string
	Tooltip string
	Width   float64
	Height  float64

	Hovered bool
	// IsFocused 获得焦点时接收键盘输入
	IsFocused bool
	// CursorVisible 光标闪烁状态
	CursorVisible    bool
	CursorBlinkTimer float64
}
