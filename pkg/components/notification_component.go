package components

import "github.com/THDigi/ParticleEditor/pkg/editor"

// NotificationComponent 屏幕右下角的短暂提示
// 与 LifetimeComponent 一起使用，到期后由 LifetimeSystem 删除
type NotificationComponent struct {
	Text  string
	Level editor.Level
	// FadeSeconds 消失前的淡出时长
	FadeSeconds float64
}
