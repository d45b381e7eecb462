package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an editor screen (property list, property editor).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// ExitGuard 是一个可选接口，场景在窗口关闭前有机会阻止退出
//
// 实现此接口的场景会在用户关闭窗口时被调用 RequestExit()：
//   - 返回 true 表示可以立即退出
//   - 返回 false 表示场景正在询问用户（如未应用的修改），
//     用户回答后场景调用 exit 完成退出
type ExitGuard interface {
	RequestExit(exit func()) bool
}
