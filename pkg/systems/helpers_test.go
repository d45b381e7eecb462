package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
)

// mockInput 用于测试的 mock 输入，每帧由测试直接设置字段
type mockInput struct {
	mouseX, mouseY int
	pressed        map[ebiten.MouseButton]bool
	justPressed    map[ebiten.MouseButton]bool
	justReleased   map[ebiten.MouseButton]bool
	keys           map[ebiten.Key]bool
	justKeys       map[ebiten.Key]bool
	repeatKeys     map[ebiten.Key]bool
	chars          []rune
}

func newMockInput() *mockInput {
	m := &mockInput{}
	m.reset()
	return m
}

// reset 清空按键状态，保留指针位置
func (m *mockInput) reset() {
	m.pressed = map[ebiten.MouseButton]bool{}
	m.justPressed = map[ebiten.MouseButton]bool{}
	m.justReleased = map[ebiten.MouseButton]bool{}
	m.keys = map[ebiten.Key]bool{}
	m.justKeys = map[ebiten.Key]bool{}
	m.repeatKeys = map[ebiten.Key]bool{}
	m.chars = nil
}

func (m *mockInput) moveTo(x, y int) { m.mouseX, m.mouseY = x, y }

func (m *mockInput) CursorPosition() (int, int) { return m.mouseX, m.mouseY }

func (m *mockInput) IsMouseButtonPressed(b ebiten.MouseButton) bool { return m.pressed[b] }

func (m *mockInput) IsMouseButtonJustPressed(b ebiten.MouseButton) bool { return m.justPressed[b] }

func (m *mockInput) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return m.justReleased[b]
}

func (m *mockInput) IsKeyPressed(k ebiten.Key) bool { return m.keys[k] }

func (m *mockInput) IsKeyJustPressed(k ebiten.Key) bool { return m.justKeys[k] }

func (m *mockInput) IsKeyRepeated(k ebiten.Key) bool { return m.repeatKeys[k] }

func (m *mockInput) AppendInputChars(runes []rune) []rune { return append(runes, m.chars...) }

// 时间轴布局：原点 (100, 50)，宽 224，两端留白 12，轴上 0.5 对应 x=212
const (
	tlOriginX = 100
	tlOriginY = 50
)

func axisX(pos float64) int {
	return int(math.Round(tlOriginX + 12 + pos*200))
}

func floatList(pairs ...float64) *keyframe.List {
	l := keyframe.MustNewList(keyframe.TypeFloat)
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, err := l.Add(keyframe.Key{Time: pairs[i], Value: keyframe.Scalar(pairs[i+1])}); err != nil {
			panic(err)
		}
	}
	return l
}

func createTimeline(em *ecs.EntityManager, l *keyframe.List) (ecs.EntityID, *editor.Timeline) {
	tl := editor.NewTimeline(l, editor.NewClipboard(nil), nil, editor.TimelineOptions{})
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TimelineComponent{
		Timeline:     tl,
		Width:        224,
		Height:       30,
		InsideOffset: 12,
		KeyWidth:     6,
	})
	ecs.AddComponent(em, id, &components.PositionComponent{X: tlOriginX, Y: tlOriginY})
	return id, tl
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
