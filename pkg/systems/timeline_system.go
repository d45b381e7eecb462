package systems

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
)

// 右键菜单尺寸
const (
	contextMenuWidth      = 220.0
	contextMenuItemHeight = 20.0
)

// TimelineSystem 时间轴交互系统
// 负责把鼠标和键盘输入翻译为 editor.Timeline 的状态机调用
//
// 职责：
//   - 悬停时更新瞄准位置，离开时清除
//   - 左键按下开始拖动（按住 Ctrl 打开编辑），拖动中按住 Ctrl 取整
//   - 右键打开右键菜单实体
//   - 悬停时的快捷键 A/I/C/V/D/E
//   - 把关键帧提示写入全局提示框
type TimelineSystem struct {
	entityManager *ecs.EntityManager
	input         Input
	tooltip       *components.TooltipComponent
}

// NewTimelineSystem 创建时间轴交互系统
//
// 参数:
//
//	em - 实体管理器
//	input - 输入源，nil 时使用 DefaultInput
//	tooltip - 全局提示框，可为 nil
func NewTimelineSystem(em *ecs.EntityManager, input Input, tooltip *components.TooltipComponent) *TimelineSystem {
	if input == nil {
		input = DefaultInput
	}
	return &TimelineSystem{entityManager: em, input: input, tooltip: tooltip}
}

// Update 更新所有时间轴
func (s *TimelineSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.input.CursorPosition()
	mx, my := float64(mouseX), float64(mouseY)
	ctrl := ctrlPressed(s.input)

	entities := ecs.GetEntitiesWith2[*components.TimelineComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.TimelineComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp == nil || pos == nil || comp.Timeline == nil {
			continue
		}
		tl := comp.Timeline
		axis := comp.AxisPosition(pos.X, mx)
		inside := pos.Contains(mx, my, comp.Width, comp.Height)
		comp.Hovered = inside

		// 拖动中：指针可以离开控件，松开左键时提交
		if tl.MovingIndex() >= 0 {
			if s.input.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
				tl.Drag(axis, ctrl)
			} else {
				tl.Release()
			}
			s.showTooltip(tl.Tooltip(), mx, my)
			continue
		}

		if tl.State() == editor.StateEditing {
			continue
		}

		if !inside {
			tl.Leave()
			continue
		}

		tl.Aim(axis)

		switch {
		case s.input.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
			tl.Press(ctrl)
		case s.input.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
			s.openContextMenu(id, tl, mx, my)
		case !keyboardCaptured(s.entityManager):
			s.handleHotkeys(tl)
		}

		s.showTooltip(tl.Tooltip(), mx, my)
	}
}

// handleHotkeys 悬停时的快捷键，与右键菜单的标注一致
func (s *TimelineSystem) handleHotkeys(tl *editor.Timeline) {
	aimed := tl.AimedIndex() >= 0
	var err error
	switch {
	case s.input.IsKeyJustPressed(ebiten.KeyE) && aimed:
		err = tl.Edit()
	case s.input.IsKeyJustPressed(ebiten.KeyC) && aimed:
		err = tl.Copy()
	case s.input.IsKeyJustPressed(ebiten.KeyD) && aimed:
		err = tl.Delete()
	case s.input.IsKeyJustPressed(ebiten.KeyA) && !aimed:
		_, err = tl.Add(nil)
	case s.input.IsKeyJustPressed(ebiten.KeyI) && !aimed:
		_, err = tl.AddInterpolated()
	case s.input.IsKeyJustPressed(ebiten.KeyV):
		err = tl.Paste()
	}
	if err != nil && !errors.Is(err, editor.ErrBusy) {
		log.Printf("[TimelineSystem] 快捷键操作失败: %v", err)
	}
}

// openContextMenu 在指针位置创建右键菜单实体，已有的菜单先关闭
func (s *TimelineSystem) openContextMenu(target ecs.EntityID, tl *editor.Timeline, x, y float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ContextMenuComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}

	menu := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, menu, &components.ContextMenuComponent{
		Items:      tl.ContextMenu(),
		Target:     target,
		Width:      contextMenuWidth,
		ItemHeight: contextMenuItemHeight,
		Hovered:    -1,
	})
	ecs.AddComponent(s.entityManager, menu, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(s.entityManager, menu, &components.LayerComponent{Layer: components.LayerContextMenu})
}

func (s *TimelineSystem) showTooltip(text string, x, y float64) {
	if s.tooltip != nil && text != "" {
		s.tooltip.Show(text, x, y)
	}
}
