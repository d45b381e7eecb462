package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// ContextMenuSystem 时间轴右键菜单系统
//
// 菜单打开时独占鼠标：点击菜单项执行对应的时间轴操作，点击菜单外或按 Esc 关闭。
type ContextMenuSystem struct {
	entityManager *ecs.EntityManager
	input         Input
	tooltip       *components.TooltipComponent
}

// NewContextMenuSystem 创建右键菜单系统
func NewContextMenuSystem(em *ecs.EntityManager, input Input, tooltip *components.TooltipComponent) *ContextMenuSystem {
	if input == nil {
		input = DefaultInput
	}
	return &ContextMenuSystem{entityManager: em, input: input, tooltip: tooltip}
}

// Update 更新菜单悬停状态并处理点击
//
// 返回:
//
//	bool - 有菜单打开时返回 true，调用方应跳过其他控件的输入
func (s *ContextMenuSystem) Update(deltaTime float64) bool {
	menus := ecs.GetEntitiesWith2[*components.ContextMenuComponent, *components.PositionComponent](s.entityManager)
	if len(menus) == 0 {
		return false
	}

	mouseX, mouseY := s.input.CursorPosition()
	mx, my := float64(mouseX), float64(mouseY)

	for _, id := range menus {
		menu, _ := ecs.GetComponent[*components.ContextMenuComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		menu.Hovered = -1
		if pos.Contains(mx, my, menu.Width, menu.Height()) && menu.ItemHeight > 0 {
			i := int((my - pos.Y) / menu.ItemHeight)
			if i >= len(menu.Items) {
				i = len(menu.Items) - 1
			}
			menu.Hovered = i
			if s.tooltip != nil && menu.Items[i].Tooltip != "" {
				s.tooltip.Show(menu.Items[i].Tooltip, mx, my)
			}
		}

		if s.input.IsKeyJustPressed(ebiten.KeyEscape) {
			s.entityManager.DestroyEntity(id)
			continue
		}

		clicked := s.input.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			s.input.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
		if !clicked {
			continue
		}

		s.entityManager.DestroyEntity(id)
		if menu.Hovered >= 0 && s.input.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			s.run(menu, menu.Hovered)
		}
	}
	return true
}

// run 对菜单目标时间轴执行菜单项；目标已被删除时忽略
func (s *ContextMenuSystem) run(menu *components.ContextMenuComponent, index int) {
	tc, ok := ecs.GetComponent[*components.TimelineComponent](s.entityManager, menu.Target)
	if !ok || tc.Timeline == nil {
		return
	}
	item := menu.Items[index]
	if err := tc.Timeline.Run(item.Action); err != nil {
		log.Printf("[ContextMenuSystem] '%s' 失败: %v", item.Label, err)
	}
}
