package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// Input 鼠标与键盘输入接口
// 用于依赖注入，测试时使用 mock 实现
type Input interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	IsMouseButtonJustPressed(button ebiten.MouseButton) bool
	IsMouseButtonJustReleased(button ebiten.MouseButton) bool
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	// IsKeyRepeated 按下的第一帧以及按住超过半秒后每 3 帧返回 true
	IsKeyRepeated(key ebiten.Key) bool
	AppendInputChars(runes []rune) []rune
}

// ebitenInput Ebitengine 默认实现
type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenInput) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenInput) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }

func (ebitenInput) IsKeyJustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func (ebitenInput) IsKeyRepeated(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%3 == 0)
}

func (ebitenInput) AppendInputChars(runes []rune) []rune { return ebiten.AppendInputChars(runes) }

// DefaultInput 默认输入实例
var DefaultInput Input = ebitenInput{}

// ctrlPressed 精确/编辑修饰键
func ctrlPressed(in Input) bool {
	return in.IsKeyPressed(ebiten.KeyControl)
}

// keyboardCaptured 有数字框获得焦点时，字母快捷键交给输入框
func keyboardCaptured(em *ecs.EntityManager) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.NumberBoxComponent](em) {
		if box, ok := ecs.GetComponent[*components.NumberBoxComponent](em, id); ok && box.IsFocused {
			return true
		}
	}
	return false
}
