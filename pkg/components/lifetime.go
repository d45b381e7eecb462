package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体（通知）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}

// Remaining returns the seconds left before expiry, never negative.
func (l *LifetimeComponent) Remaining() float64 {
	if r := l.MaxLifetime - l.CurrentLifetime; r > 0 {
		return r
	}
	return 0
}
