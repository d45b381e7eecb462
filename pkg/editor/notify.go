package editor

import "log"

// Level 通知级别，决定显示颜色
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// DefaultNotifySeconds is how long a notification stays on screen unless
// the caller asks otherwise.
const DefaultNotifySeconds = 3.0

// Notifier shows short user-visible messages.
// The UI implements it with notification entities; tests record calls.
type Notifier interface {
	Notify(level Level, text string, seconds float64)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(level Level, text string, seconds float64)

func (f NotifierFunc) Notify(level Level, text string, seconds float64) { f(level, text, seconds) }

// logNotifier 只写日志，没有界面时使用
type logNotifier struct{}

func (logNotifier) Notify(level Level, text string, seconds float64) {
	log.Printf("[Notify] level=%d %s", level, text)
}

// LogNotifier returns a Notifier that only writes to the standard logger.
func LogNotifier() Notifier { return logNotifier{} }
