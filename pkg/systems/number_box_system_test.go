package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
)

func createNumberBox(em *ecs.EntityManager, initial float64, opts editor.NumberBoxOptions) (*components.NumberBoxComponent, *[]float64) {
	box := editor.NewNumberBox(initial, opts)
	changes := &[]float64{}
	box.OnChange = func(v float64) { *changes = append(*changes, v) }

	id := em.CreateEntity()
	nb := &components.NumberBoxComponent{Box: box, Tooltip: "Size", Width: 100, Height: 20}
	ecs.AddComponent(em, id, nb)
	ecs.AddComponent(em, id, &components.PositionComponent{X: 10, Y: 10})
	return nb, changes
}

// TestNumberBoxSystem_Typing 测试聚焦、输入过滤、退格和 Enter 结束输入
func TestNumberBoxSystem_Typing(t *testing.T) {
	em := ecs.NewEntityManager()
	in := newMockInput()
	sys := NewNumberBoxSystem(em, in, nil, 1000)
	nb, changes := createNumberBox(em, 0, editor.NumberBoxOptions{Min: -10, Max: 10, Hard: true, InputRound: 6, DragRound: 2})

	// 点击获得焦点
	in.moveTo(20, 15)
	in.justPressed[ebiten.MouseButtonLeft] = true
	sys.Update(1.0 / 60)
	if !nb.IsFocused {
		t.Fatal("click should focus the box")
	}

	// 输入 "1.5x"，x 被过滤
	in.reset()
	in.chars = []rune("1.5x")
	sys.Update(1.0 / 60)
	if nb.Box.Text() != "01.5" || nb.Box.Value() != 1.5 {
		t.Errorf("text = %q value = %v, want \"01.5\" 1.5", nb.Box.Text(), nb.Box.Value())
	}
	if len(*changes) != 1 || (*changes)[0] != 1.5 {
		t.Errorf("OnChange calls = %v, want [1.5]", *changes)
	}

	// 退格
	in.reset()
	in.repeatKeys[ebiten.KeyBackspace] = true
	sys.Update(1.0 / 60)
	if nb.Box.Text() != "01." || nb.Box.Value() != 1 {
		t.Errorf("after backspace text = %q value = %v", nb.Box.Text(), nb.Box.Value())
	}

	// 聚焦时字母快捷键不生效
	in.reset()
	in.justKeys[ebiten.KeyC] = true
	sys.Update(1.0 / 60)
	if nb.Box.Text() != "01." {
		t.Errorf("C must not clear a focused box, text = %q", nb.Box.Text())
	}

	// Enter 结束输入
	in.reset()
	in.justKeys[ebiten.KeyEnter] = true
	sys.Update(1.0 / 60)
	if nb.IsFocused {
		t.Error("Enter should unfocus")
	}

	// 点击其他位置失去焦点
	nb.IsFocused = true
	in.reset()
	in.moveTo(500, 500)
	in.justPressed[ebiten.MouseButtonLeft] = true
	sys.Update(1.0 / 60)
	if nb.IsFocused {
		t.Error("clicking elsewhere should unfocus")
	}
}

// TestNumberBoxSystem_RightDrag 测试右键拖动调整数值
func TestNumberBoxSystem_RightDrag(t *testing.T) {
	em := ecs.NewEntityManager()
	in := newMockInput()
	sys := NewNumberBoxSystem(em, in, nil, 1000)
	nb, changes := createNumberBox(em, 1, editor.NumberBoxOptions{Min: -10, Max: 10, Hard: true, InputRound: 6, DragRound: 2})

	in.moveTo(100, 15)
	in.pressed[ebiten.MouseButtonRight] = true
	in.justPressed[ebiten.MouseButtonRight] = true
	sys.Update(1.0 / 60)
	if !nb.Box.Dragging() {
		t.Fatal("right click should start dragging")
	}

	// 水平移动 0.1 屏宽，超出阈值 0.08：1 + 0.08*7 = 1.56
	in.justPressed[ebiten.MouseButtonRight] = false
	in.moveTo(200, 300)
	sys.Update(1.0 / 60)
	if !approx(nb.Box.Value(), 1.56) {
		t.Errorf("Value() = %v, want 1.56", nb.Box.Value())
	}

	in.pressed[ebiten.MouseButtonRight] = false
	sys.Update(1.0 / 60)
	if nb.Box.Dragging() {
		t.Error("releasing the right button should end the drag")
	}
	if len(*changes) == 0 {
		t.Error("drag should fire OnChange")
	}
}

// TestNumberBoxSystem_Hotkeys 测试悬停时的 C/D 快捷键和提示文字
func TestNumberBoxSystem_Hotkeys(t *testing.T) {
	def := 0.25
	tests := []struct {
		name     string
		key      ebiten.Key
		hover    bool
		wantText string
	}{
		{name: "C 清空", key: ebiten.KeyC, hover: true, wantText: ""},
		{name: "D 恢复默认", key: ebiten.KeyD, hover: true, wantText: "0.25"},
		{name: "未悬停时无效", key: ebiten.KeyC, hover: false, wantText: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			in := newMockInput()
			tip := components.NewTooltipComponent()
			sys := NewNumberBoxSystem(em, in, tip, 1000)
			nb, _ := createNumberBox(em, 3, editor.NumberBoxOptions{Min: 0, Max: 10, Hard: true, InputRound: 6, DragRound: 2, Default: &def})

			if tt.hover {
				in.moveTo(20, 15)
			} else {
				in.moveTo(500, 500)
			}
			in.justKeys[tt.key] = true
			sys.Update(1.0 / 60)

			if nb.Box.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", nb.Box.Text(), tt.wantText)
			}
			if tip.IsVisible != tt.hover {
				t.Errorf("tooltip visible = %v, want %v", tip.IsVisible, tt.hover)
			}
			if tt.hover && tip.Text != "Size\n\n"+nb.Box.HelpText() {
				t.Errorf("tooltip = %q", tip.Text)
			}
		})
	}
}

func TestAcceptsRune(t *testing.T) {
	for _, r := range "0123456789.-+eE" {
		if !acceptsRune(r) {
			t.Errorf("acceptsRune(%q) = false", r)
		}
	}
	for _, r := range "ax ,_" {
		if acceptsRune(r) {
			t.Errorf("acceptsRune(%q) = true", r)
		}
	}
}
