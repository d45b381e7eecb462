package components

import "github.com/THDigi/ParticleEditor/pkg/editor"

// TimelineComponent 时间轴控件
// 状态机和关键帧操作在 editor.Timeline 中，这里只保存布局和悬停状态
type TimelineComponent struct {
	Timeline *editor.Timeline

	Width  float64
	Height float64
	// InsideOffset 轴两端的留白（像素），0 和 1 对应留白内侧
	InsideOffset float64
	// KeyWidth 关键帧标记的宽度（像素）
	KeyWidth float64

	Hovered bool
}

// AxisPosition 把屏幕 X 坐标换算为轴上的归一化位置（不限制范围）
func (c *TimelineComponent) AxisPosition(originX, mouseX float64) float64 {
	span := c.Width - 2*c.InsideOffset
	if span <= 0 {
		return 0
	}
	return (mouseX - originX - c.InsideOffset) / span
}

// KeyX 返回轴位置 pos 对应的屏幕 X 坐标
func (c *TimelineComponent) KeyX(originX, pos float64) float64 {
	return originX + c.InsideOffset + pos*(c.Width-2*c.InsideOffset)
}
