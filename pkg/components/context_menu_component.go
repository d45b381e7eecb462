package components

import (
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
)

// ContextMenuComponent 时间轴右键菜单
type ContextMenuComponent struct {
	Items []editor.MenuItem
	// Target 菜单所属的时间轴实体
	Target ecs.EntityID

	Width      float64
	ItemHeight float64
	// Hovered 悬停的菜单项索引，-1 表示没有
	Hovered int
}

// Height returns the total menu height.
func (c *ContextMenuComponent) Height() float64 {
	return float64(len(c.Items)) * c.ItemHeight
}
