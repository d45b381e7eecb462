package entities

import (
	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// ButtonHeight 编辑器按钮的默认高度
const ButtonHeight = 22.0

// NewButton 创建文字按钮实体
//
// 参数：
//   - em: 实体管理器
//   - x, y: 按钮位置（屏幕坐标）
//   - width: 按钮宽度，高度固定为 ButtonHeight
//   - text: 按钮文字
//   - tooltip: 悬停提示，可为空
//   - onClick: 点击回调函数
//
// 返回：
//   - 按钮实体ID
func NewButton(em *ecs.EntityManager, x, y, width float64, text, tooltip string, onClick func()) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Text:    text,
		Tooltip: tooltip,
		Width:   width,
		Height:  ButtonHeight,
		State:   components.UINormal,
		Enabled: true,
		OnClick: onClick,
	})
	return entity
}

// NewToggleButton 创建开关按钮，toggled 为初始按下状态
func NewToggleButton(em *ecs.EntityManager, x, y, width float64, text, tooltip string, toggled bool, onClick func()) ecs.EntityID {
	entity := NewButton(em, x, y, width, text, tooltip, onClick)
	if btn, ok := ecs.GetComponent[*components.ButtonComponent](em, entity); ok {
		btn.Toggled = toggled
	}
	return entity
}
