package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// TestButtonSystem 测试按钮状态和释放时触发回调
func TestButtonSystem(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		mouseX    int
		pressed   bool
		released  bool
		wantState components.UIState
		wantClick int
	}{
		{name: "悬停", enabled: true, mouseX: 50, wantState: components.UIHovered},
		{name: "按下", enabled: true, mouseX: 50, pressed: true, wantState: components.UIClicked},
		{name: "释放触发", enabled: true, mouseX: 50, released: true, wantState: components.UIHovered, wantClick: 1},
		{name: "按钮外释放", enabled: true, mouseX: 500, released: true, wantState: components.UINormal},
		{name: "禁用", enabled: false, mouseX: 50, released: true, wantState: components.UIDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			in := newMockInput()
			tip := components.NewTooltipComponent()
			sys := NewButtonSystem(em, in, tip)

			clicks := 0
			btn := &components.ButtonComponent{
				Text:    "Apply",
				Tooltip: "Apply changes",
				Width:   100,
				Height:  24,
				Enabled: tt.enabled,
				OnClick: func() { clicks++ },
			}
			id := em.CreateEntity()
			ecs.AddComponent(em, id, btn)
			ecs.AddComponent(em, id, &components.PositionComponent{X: 10, Y: 10})

			in.moveTo(tt.mouseX, 20)
			in.pressed[ebiten.MouseButtonLeft] = tt.pressed
			in.justReleased[ebiten.MouseButtonLeft] = tt.released
			sys.Update(1.0 / 60)

			if btn.State != tt.wantState {
				t.Errorf("State = %v, want %v", btn.State, tt.wantState)
			}
			if clicks != tt.wantClick {
				t.Errorf("clicks = %d, want %d", clicks, tt.wantClick)
			}
		})
	}
}

// TestButtonSystem_LabelTooltip 测试悬停文字标签时显示提示
func TestButtonSystem_LabelTooltip(t *testing.T) {
	em := ecs.NewEntityManager()
	in := newMockInput()
	tip := components.NewTooltipComponent()
	sys := NewButtonSystem(em, in, tip)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LabelComponent{
		Text:    "Min keys: 2",
		Tooltip: "Emitter needs at least 2 keys.",
		Width:   80,
		Height:  16,
	})
	ecs.AddComponent(em, id, &components.PositionComponent{X: 10, Y: 10})

	in.moveTo(20, 15)
	sys.Update(1.0 / 60)
	if !tip.IsVisible || tip.Text != "Emitter needs at least 2 keys." {
		t.Errorf("tooltip = %v %q, want label tooltip", tip.IsVisible, tip.Text)
	}

	tip.Hide()
	in.moveTo(200, 15)
	sys.Update(1.0 / 60)
	if tip.IsVisible {
		t.Error("tooltip should stay hidden outside the label")
	}
}
