package systems

import (
	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
)

// LifetimeSystem 管理限时实体（通知）的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有 LifetimeComponent 的计时，过期的实体标记删除
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// NotificationAlpha 返回通知当前的不透明度（0~1）
//
// 剩余时间进入淡出区间后线性变淡；没有淡出时长时始终为 1。
func NotificationAlpha(n *components.NotificationComponent, l *components.LifetimeComponent) float64 {
	if n == nil || l == nil || n.FadeSeconds <= 0 {
		return 1
	}
	r := l.Remaining()
	if r >= n.FadeSeconds {
		return 1
	}
	return r / n.FadeSeconds
}
