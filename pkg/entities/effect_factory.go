package entities

import (
	"fmt"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
)

// NewExplosionEffect 创建命中爆炸效果实体
// 显示在被击中导弹的位置，ExplosionDuration 后由 LifetimeSystem 删除
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（效果时长）
//   - x, y: 爆炸中心的战场坐标
func NewExplosionEffect(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.EffectComponent{Type: components.EffectExplosion})
	em.AddComponent(entityID, &components.LifetimeComponent{MaxLifetime: cfg.ExplosionDuration})

	return entityID, nil
}

// NewPenaltyEffect 创建错误命中的扣分提示实体
// 显示在炮弹所在列的命中高度，文本为 "-<扣分>"
func NewPenaltyEffect(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.EffectComponent{
		Type: components.EffectPenalty,
		Text: fmt.Sprintf("-%d", cfg.PenaltyIncorrect),
	})
	em.AddComponent(entityID, &components.LifetimeComponent{MaxLifetime: cfg.PenaltyDuration})

	return entityID, nil
}
