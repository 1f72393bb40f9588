package systems

import (
	"time"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(dt time.Duration) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += dt
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		// 如果已过期,标记实体待删除
		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Progress 返回生命周期进度 [0, 1]，供表现层做淡出
func Progress(lifetime *components.LifetimeComponent) float64 {
	if lifetime.MaxLifetime <= 0 {
		return 1
	}
	return min(1, float64(lifetime.CurrentLifetime)/float64(lifetime.MaxLifetime))
}
