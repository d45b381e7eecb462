package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的鼠标悬停、点击等交互逻辑
//
// 职责：
//   - 检测鼠标悬停（更新按钮状态为 UIHovered）
//   - 检测鼠标释放（触发 OnClick 回调）
//   - 根据 Enabled 状态决定是否响应交互
//   - 悬停时显示按钮和文字标签的提示
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	input         Input
	tooltip       *components.TooltipComponent
}

// NewButtonSystem 创建按钮交互系统
//
// 参数:
//
//	em - 实体管理器
//	input - 输入源，nil 时使用 DefaultInput
//	tooltip - 全局提示框，可为 nil
func NewButtonSystem(em *ecs.EntityManager, input Input, tooltip *components.TooltipComponent) *ButtonSystem {
	if input == nil {
		input = DefaultInput
	}
	return &ButtonSystem{
		entityManager: em,
		input:         input,
		tooltip:       tooltip,
	}
}

// Update 更新按钮交互状态
// 检测鼠标位置和释放，更新按钮状态并触发回调
func (s *ButtonSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.input.CursorPosition()
	mx, my := float64(mouseX), float64(mouseY)
	mousePressed := s.input.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	mouseReleased := s.input.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	s.updateLabelTooltips(mx, my)

	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !pos.Contains(mx, my, button.Width, button.Height) {
			button.State = components.UINormal
			continue
		}

		switch {
		case mousePressed:
			button.State = components.UIClicked
		case mouseReleased:
			// 释放瞬间触发回调，回调可能重建界面，之后不再访问其他按钮
			button.State = components.UIHovered
			if button.OnClick != nil {
				button.OnClick()
			}
			return
		default:
			button.State = components.UIHovered
		}

		if s.tooltip != nil && button.Tooltip != "" {
			s.tooltip.Show(button.Tooltip, mx, my)
		}
	}
}

// updateLabelTooltips 悬停在带提示的文字标签上时显示提示
func (s *ButtonSystem) updateLabelTooltips(mx, my float64) {
	if s.tooltip == nil {
		return
	}
	for _, id := range ecs.GetEntitiesWith2[*components.LabelComponent, *components.PositionComponent](s.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if label.Tooltip != "" && pos.Contains(mx, my, label.Width, label.Height) {
			s.tooltip.Show(label.Tooltip, mx, my)
		}
	}
}
