package components

import "image/color"

// TooltipComponent 悬停提示框（全局只有一个）
//
// 各输入系统在悬停控件时写入 Text，渲染系统绘制在指针旁边。
type TooltipComponent struct {
	IsVisible bool
	Text      string

	BackgroundColor color.Color
	BorderColor     color.Color
	TextColor       color.Color
	Padding         float64

	// X, Y 指针位置，提示框绘制在其右下方
	X, Y float64
}

// NewTooltipComponent 创建使用默认颜色的提示框
func NewTooltipComponent() *TooltipComponent {
	return &TooltipComponent{
		BackgroundColor: color.RGBA{R: 30, G: 34, B: 40, A: 240},
		BorderColor:     color.RGBA{R: 120, G: 130, B: 150, A: 255},
		TextColor:       color.RGBA{R: 230, G: 230, B: 230, A: 255},
		Padding:         6,
	}
}

// Show 显示提示文字
func (t *TooltipComponent) Show(text string, x, y float64) {
	t.IsVisible = text != ""
	t.Text = text
	t.X, t.Y = x, y
}

// Hide 隐藏提示
func (t *TooltipComponent) Hide() {
	t.IsVisible = false
	t.Text = ""
}
