package systems

import (
	"math"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
)

// Hit 一次炮弹与导弹的碰撞
type Hit struct {
	Shot     ecs.EntityID
	Missile  ecs.EntityID
	Question string
	Answer   int     // 导弹答案
	Fired    int     // 炮弹携带的答案
	Correct  bool    // 答案相等即为正确命中
	X, Y     float64 // 导弹中心
	ShotX    float64
}

// CollisionSystem 检测玩家炮弹与敌方导弹的碰撞
//
// 碰撞模型：两个逻辑中心点的欧氏距离 <= 半径（导弹宽度的一半）即命中。
// 炮弹和导弹都按 ID 升序遍历，结果与渲染层无关且可复现。
type CollisionSystem struct {
	em  *ecs.EntityManager
	cfg *config.GameConfig
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器，用于查询和删除实体
//   - cfg: 游戏配置（碰撞半径）
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.GameConfig) *CollisionSystem {
	return &CollisionSystem{
		em:  em,
		cfg: cfg,
	}
}

// inRange 检查两个中心点是否在碰撞半径内
func (s *CollisionSystem) inRange(a, b *components.PositionComponent) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= s.cfg.CollisionRadius()
}

// Resolve 处理本 tick 的所有碰撞
//
// 每次命中先删除炮弹和导弹，再调用 onHit。已被消耗的实体（包括 onHit 中删除的实体）
// 不再参与后续判定，因此每个实体最多命中一次。
//
// 返回:
//   - int: 命中次数
func (s *CollisionSystem) Resolve(onHit func(Hit)) int {
	shots := ecs.GetEntitiesWith2[*components.PlayerShotComponent, *components.PositionComponent](s.em)
	missiles := ecs.GetEntitiesWith2[*components.EnemyMissileComponent, *components.PositionComponent](s.em)

	hits := 0
	for _, shotID := range shots {
		if !s.em.IsAlive(shotID) {
			continue
		}
		shotPos, _ := ecs.GetComponent[*components.PositionComponent](s.em, shotID)
		shot, _ := ecs.GetComponent[*components.PlayerShotComponent](s.em, shotID)

		for _, missileID := range missiles {
			if !s.em.IsAlive(missileID) {
				continue
			}
			missilePos, _ := ecs.GetComponent[*components.PositionComponent](s.em, missileID)
			if !s.inRange(shotPos, missilePos) {
				continue
			}

			missile, _ := ecs.GetComponent[*components.EnemyMissileComponent](s.em, missileID)
			hit := Hit{
				Shot:     shotID,
				Missile:  missileID,
				Question: missile.Question,
				Answer:   missile.Answer,
				Fired:    shot.Answer,
				Correct:  shot.Answer == missile.Answer,
				X:        missilePos.X,
				Y:        missilePos.Y,
				ShotX:    shotPos.X,
			}

			s.em.DestroyEntity(shotID)
			s.em.DestroyEntity(missileID)
			hits++
			if onHit != nil {
				onHit(hit)
			}
			// 一枚炮弹只能命中一枚导弹
			break
		}
	}
	return hits
}
