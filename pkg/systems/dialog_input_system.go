package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// DialogInputSystem 对话框输入系统
// 负责处理模态确认对话框的用户交互
//
// 职责：
//   - 更新按钮悬停状态
//   - 鼠标在按钮上释放时触发按钮回调并关闭对话框
//   - Enter 触发焦点按钮，Esc 触发取消按钮
//   - 对话框存在时吞掉输入，其他系统本帧不更新
type DialogInputSystem struct {
	entityManager *ecs.EntityManager
	input         Input
}

// NewDialogInputSystem 创建对话框输入系统
func NewDialogInputSystem(em *ecs.EntityManager, input Input) *DialogInputSystem {
	if input == nil {
		input = DefaultInput
	}
	return &DialogInputSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新对话框输入处理
//
// 返回:
//
//	bool - 有可见对话框时返回 true，调用方应跳过其他输入系统
func (s *DialogInputSystem) Update(deltaTime float64) bool {
	id, dialog, pos, ok := s.topDialog()
	if !ok {
		return false
	}

	mouseX, mouseY := s.input.CursorPosition()
	mx, my := float64(mouseX), float64(mouseY)

	hovered := -1
	for i := range dialog.Buttons {
		btn := &dialog.Buttons[i]
		btn.Hovered = mx >= pos.X+btn.X && mx <= pos.X+btn.X+btn.Width &&
			my >= pos.Y+btn.Y && my <= pos.Y+btn.Y+btn.Height
		if btn.Hovered {
			hovered = i
		}
	}

	switch {
	case s.input.IsKeyJustPressed(ebiten.KeyEscape):
		if dialog.CancelIndex >= 0 {
			s.press(id, dialog, dialog.CancelIndex)
		}
	case s.input.IsKeyJustPressed(ebiten.KeyEnter) || s.input.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		s.press(id, dialog, dialog.FocusIndex)
	case s.input.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && hovered >= 0:
		s.press(id, dialog, hovered)
	}
	return true
}

// topDialog 返回最上层（ID 最大）的可见对话框
func (s *DialogInputSystem) topDialog() (ecs.EntityID, *components.DialogComponent, *components.PositionComponent, bool) {
	entities := ecs.GetEntitiesWith2[*components.DialogComponent, *components.PositionComponent](s.entityManager)
	for i := len(entities) - 1; i >= 0; i-- {
		dialog, _ := ecs.GetComponent[*components.DialogComponent](s.entityManager, entities[i])
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entities[i])
		if dialog != nil && pos != nil && dialog.IsVisible {
			return entities[i], dialog, pos, true
		}
	}
	return 0, nil, nil, false
}

// press 关闭对话框后触发按钮回调；回调可以再打开新的对话框
func (s *DialogInputSystem) press(id ecs.EntityID, dialog *components.DialogComponent, index int) {
	if index < 0 || index >= len(dialog.Buttons) {
		return
	}
	btn := dialog.Buttons[index]
	log.Printf("[DialogInputSystem] 对话框 '%s' 选择了 '%s'", dialog.Title, btn.Label)

	dialog.IsVisible = false
	s.entityManager.DestroyEntity(id)
	if btn.OnClick != nil {
		btn.OnClick()
	}
}
