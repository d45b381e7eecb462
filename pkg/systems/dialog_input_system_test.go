package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

func createDialog(em *ecs.EntityManager, answers *[]string) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.DialogComponent{
		Title:   "Duplicated times",
		Message: "Keys with the same time will be merged. Continue?",
		Buttons: []components.DialogButton{
			{Label: "Yes", X: 20, Y: 80, Width: 80, Height: 24, OnClick: func() { *answers = append(*answers, "Yes") }},
			{Label: "No", X: 120, Y: 80, Width: 80, Height: 24, OnClick: func() { *answers = append(*answers, "No") }},
		},
		FocusIndex:  1,
		CancelIndex: 1,
		Width:       300,
		Height:      120,
		IsVisible:   true,
	})
	ecs.AddComponent(em, id, &components.PositionComponent{X: 100, Y: 100})
	return id
}

// TestDialogInputSystem 测试对话框按钮、Enter、Esc 和输入拦截
func TestDialogInputSystem(t *testing.T) {
	tests := []struct {
		name  string
		setup func(in *mockInput)
		want  []string
	}{
		{"点击 Yes", func(in *mockInput) {
			in.moveTo(130, 190)
			in.justReleased[ebiten.MouseButtonLeft] = true
		}, []string{"Yes"}},
		{"Enter 触发焦点按钮", func(in *mockInput) {
			in.justKeys[ebiten.KeyEnter] = true
		}, []string{"No"}},
		{"Esc 触发取消按钮", func(in *mockInput) {
			in.justKeys[ebiten.KeyEscape] = true
		}, []string{"No"}},
		{"点击按钮以外不关闭", func(in *mockInput) {
			in.moveTo(10, 10)
			in.justReleased[ebiten.MouseButtonLeft] = true
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			in := newMockInput()
			sys := NewDialogInputSystem(em, in)
			var answers []string
			id := createDialog(em, &answers)

			tt.setup(in)
			if !sys.Update(1.0 / 60) {
				t.Error("visible dialog should consume input")
			}
			em.RemoveMarkedEntities()

			if len(answers) != len(tt.want) || (len(answers) > 0 && answers[0] != tt.want[0]) {
				t.Errorf("answers = %v, want %v", answers, tt.want)
			}
			if closed := !em.Exists(id); closed != (len(tt.want) > 0) {
				t.Errorf("dialog closed = %v", closed)
			}
		})
	}
}

// TestDialogInputSystem_Chained 测试回调中打开的后续对话框
func TestDialogInputSystem_Chained(t *testing.T) {
	em := ecs.NewEntityManager()
	in := newMockInput()
	sys := NewDialogInputSystem(em, in)
	var answers []string

	first := createDialog(em, &answers)
	d, _ := ecs.GetComponent[*components.DialogComponent](em, first)
	d.Buttons[0].OnClick = func() { createDialog(em, &answers) }

	in.moveTo(130, 190)
	in.justReleased[ebiten.MouseButtonLeft] = true
	sys.Update(1.0 / 60)
	em.RemoveMarkedEntities()

	if n := len(ecs.GetEntitiesWith1[*components.DialogComponent](em)); n != 1 {
		t.Fatalf("dialogs = %d, want the follow-up only", n)
	}

	in.reset()
	if !sys.Update(1.0 / 60) {
		t.Error("follow-up dialog should be modal")
	}
}

func TestDialogInputSystem_NoDialog(t *testing.T) {
	sys := NewDialogInputSystem(ecs.NewEntityManager(), newMockInput())
	if sys.Update(1.0 / 60) {
		t.Error("no dialog should not consume input")
	}
}
