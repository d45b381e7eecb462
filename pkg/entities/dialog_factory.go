package entities

import (
	"strings"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// 对话框布局常量（基于 7x13 点阵字体）
const (
	dialogMinWidth     = 320.0
	dialogMaxWidth     = 640.0
	dialogPaddingX     = 20.0
	dialogCharWidth    = 7.0
	dialogLineHeight   = 16.0
	dialogTitleHeight  = 32.0
	dialogButtonWidth  = 90.0
	dialogButtonHeight = 24.0
	dialogButtonGap    = 20.0
	dialogBottomMargin = 14.0
)

// DialogOptions 对话框参数
type DialogOptions struct {
	Title   string
	Message string
	// Buttons 按钮文字（从左到右）
	Buttons []string
	// OnClick 按钮回调，参数为按钮索引
	OnClick func(index int)
	// FocusIndex 按 Enter 时触发的按钮
	FocusIndex int
	// CancelIndex 按 Esc 时触发的按钮，-1 表示 Esc 无效
	CancelIndex int
}

// NewDialogEntity 创建居中的模态对话框实体
//
// 参数：
//   - em: 实体管理器
//   - opts: 标题、消息、按钮和回调
//   - windowWidth, windowHeight: 窗口大小（用于居中）
//
// 返回：
//   - 对话框实体ID
func NewDialogEntity(em *ecs.EntityManager, opts DialogOptions, windowWidth, windowHeight float64) ecs.EntityID {
	width, height := calculateDialogSize(opts.Message, len(opts.Buttons))

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: windowWidth/2 - width/2,
		Y: windowHeight/2 - height/2,
	})

	// 按钮底部居中排列
	total := float64(len(opts.Buttons))*dialogButtonWidth + float64(len(opts.Buttons)-1)*dialogButtonGap
	startX := width/2 - total/2
	buttons := make([]components.DialogButton, 0, len(opts.Buttons))
	for i, label := range opts.Buttons {
		index := i
		buttons = append(buttons, components.DialogButton{
			Label:  label,
			X:      startX + float64(i)*(dialogButtonWidth+dialogButtonGap),
			Y:      height - dialogBottomMargin - dialogButtonHeight,
			Width:  dialogButtonWidth,
			Height: dialogButtonHeight,
			OnClick: func() {
				if opts.OnClick != nil {
					opts.OnClick(index)
				}
			},
		})
	}

	ecs.AddComponent(em, entity, &components.DialogComponent{
		Title:       opts.Title,
		Message:     opts.Message,
		Buttons:     buttons,
		FocusIndex:  opts.FocusIndex,
		CancelIndex: opts.CancelIndex,
		Width:       width,
		Height:      height,
		IsVisible:   true,
	})
	ecs.AddComponent(em, entity, &components.LayerComponent{Layer: components.LayerDialog})
	return entity
}

// NewConfirmDialog 创建 Yes/No 确认对话框
//
// Esc 总是等同于 No；focusNo 为 true 时 Enter 也选择 No。
func NewConfirmDialog(em *ecs.EntityManager, title, message string, focusNo bool, onYes, onNo func(), windowWidth, windowHeight float64) ecs.EntityID {
	focus := 0
	if focusNo {
		focus = 1
	}
	return NewDialogEntity(em, DialogOptions{
		Title:   title,
		Message: message,
		Buttons: []string{"Yes", "No"},
		OnClick: func(index int) {
			switch {
			case index == 0 && onYes != nil:
				onYes()
			case index == 1 && onNo != nil:
				onNo()
			}
		},
		FocusIndex:  focus,
		CancelIndex: 1,
	}, windowWidth, windowHeight)
}

// calculateDialogSize 按最长行和行数估算对话框大小
func calculateDialogSize(message string, buttonCount int) (width, height float64) {
	lines := strings.Split(message, "\n")
	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}

	width = float64(longest)*dialogCharWidth + 2*dialogPaddingX
	if buttons := float64(buttonCount)*(dialogButtonWidth+dialogButtonGap) + 2*dialogPaddingX; buttons > width {
		width = buttons
	}
	width = min(max(width, dialogMinWidth), dialogMaxWidth)

	height = dialogTitleHeight + float64(len(lines))*dialogLineHeight + dialogLineHeight +
		dialogButtonHeight + dialogBottomMargin
	return width, height
}
