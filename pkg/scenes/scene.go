package scenes

import (
	"github.com/THDigi/ParticleEditor/pkg/game"
)

// Scene is a type alias for game.Scene so callers can stay within this package.
type Scene = game.Scene

// 编译期检查场景实现的接口
var (
	_ Scene          = (*EditorScene)(nil)
	_ game.ExitGuard = (*EditorScene)(nil)
	_ Scene          = (*PropertyListScene)(nil)
)
