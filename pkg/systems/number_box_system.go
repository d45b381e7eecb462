package systems

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// 光标闪烁间隔（秒）
const cursorBlinkInterval = 0.5

// NumberBoxSystem 数字输入框系统
// 处理数字框的焦点、键盘输入、右键拖动调整和快捷键
//
// 职责：
//   - 左键点击获得焦点，点击其他位置失去焦点
//   - 获得焦点时接收字符输入和退格（按住连续删除），Enter/Esc 结束输入
//   - 按住右键水平拖动调整数值，按住 Ctrl 精确取整
//   - 悬停未聚焦时 C 清空、D 恢复默认值
//   - 悬停时显示提示和操作说明
type NumberBoxSystem struct {
	entityManager *ecs.EntityManager
	input         Input
	tooltip       *components.TooltipComponent
	// screenWidth 拖动距离按屏幕宽度比例计算
	screenWidth float64
}

// NewNumberBoxSystem 创建数字输入框系统
//
// 参数:
//
//	em - 实体管理器
//	input - 输入源，nil 时使用 DefaultInput
//	tooltip - 全局提示框，可为 nil
//	screenWidth - 逻辑屏幕宽度（像素）
func NewNumberBoxSystem(em *ecs.EntityManager, input Input, tooltip *components.TooltipComponent, screenWidth float64) *NumberBoxSystem {
	if input == nil {
		input = DefaultInput
	}
	if screenWidth <= 0 {
		screenWidth = 1
	}
	return &NumberBoxSystem{
		entityManager: em,
		input:         input,
		tooltip:       tooltip,
		screenWidth:   screenWidth,
	}
}

// Update 更新数字输入框
func (s *NumberBoxSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.input.CursorPosition()
	mx, my := float64(mouseX), float64(mouseY)
	ctrl := ctrlPressed(s.input)
	leftClick := s.input.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	rightHeld := s.input.IsMouseButtonPressed(ebiten.MouseButtonRight)
	rightClick := s.input.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	entities := ecs.GetEntitiesWith2[*components.NumberBoxComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		nb, _ := ecs.GetComponent[*components.NumberBoxComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if nb == nil || pos == nil || nb.Box == nil {
			continue
		}
		nb.Hovered = pos.Contains(mx, my, nb.Width, nb.Height)

		// 拖动中指针可以离开输入框
		if nb.Box.Dragging() {
			if rightHeld {
				nb.Box.DragTo(mx/s.screenWidth, ctrl)
			} else {
				nb.Box.EndDrag()
			}
			s.showTooltip(nb, mx, my)
			continue
		}

		if leftClick {
			nb.IsFocused = nb.Hovered
			nb.CursorBlinkTimer = 0
			nb.CursorVisible = nb.IsFocused
		}

		if nb.Hovered && rightClick {
			nb.IsFocused = false
			nb.Box.BeginDrag(mx / s.screenWidth)
		}

		if nb.IsFocused {
			s.updateCursorBlink(nb, deltaTime)
			s.handleKeyboardInput(nb)
		} else {
			nb.CursorVisible = false
			if nb.Hovered {
				s.handleHotkeys(nb)
			}
		}

		if nb.Hovered {
			s.showTooltip(nb, mx, my)
		}
	}
}

// updateCursorBlink 更新光标闪烁状态
func (s *NumberBoxSystem) updateCursorBlink(nb *components.NumberBoxComponent, deltaTime float64) {
	nb.CursorBlinkTimer += deltaTime
	if nb.CursorBlinkTimer >= cursorBlinkInterval {
		nb.CursorBlinkTimer = 0
		nb.CursorVisible = !nb.CursorVisible
	}
}

// handleKeyboardInput 处理获得焦点时的键盘输入，每次修改都提交文本
func (s *NumberBoxSystem) handleKeyboardInput(nb *components.NumberBoxComponent) {
	text := nb.Box.Text()
	changed := false

	for _, r := range s.input.AppendInputChars(nil) {
		if acceptsRune(r) {
			text += string(r)
			changed = true
		}
	}

	if s.input.IsKeyRepeated(ebiten.KeyBackspace) && text != "" {
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
		changed = true
	}

	if changed {
		nb.Box.SetText(text)
		nb.CursorBlinkTimer = 0
		nb.CursorVisible = true
	}

	if s.input.IsKeyJustPressed(ebiten.KeyEnter) || s.input.IsKeyJustPressed(ebiten.KeyNumpadEnter) ||
		s.input.IsKeyJustPressed(ebiten.KeyEscape) {
		nb.IsFocused = false
		nb.CursorVisible = false
	}
}

// handleHotkeys 悬停未聚焦时的快捷键
func (s *NumberBoxSystem) handleHotkeys(nb *components.NumberBoxComponent) {
	if keyboardCaptured(s.entityManager) {
		return
	}
	switch {
	case s.input.IsKeyJustPressed(ebiten.KeyC):
		nb.Box.Clear()
	case s.input.IsKeyJustPressed(ebiten.KeyD):
		nb.Box.ResetDefault()
	}
}

func (s *NumberBoxSystem) showTooltip(nb *components.NumberBoxComponent, x, y float64) {
	if s.tooltip == nil {
		return
	}
	parts := make([]string, 0, 2)
	if nb.Tooltip != "" {
		parts = append(parts, nb.Tooltip)
	}
	parts = append(parts, nb.Box.HelpText())
	s.tooltip.Show(strings.Join(parts, "\n\n"), x, y)
}

// acceptsRune 数字框只接受能出现在浮点数文本中的字符
func acceptsRune(r rune) bool {
	return (r >= '0' && r <= '9') || strings.ContainsRune(".-+eE", r)
}
