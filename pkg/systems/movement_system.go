package systems

import (
	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
)

// EscapedMissile 越过底线的导弹
type EscapedMissile struct {
	ID       ecs.EntityID
	Question string
	Answer   int
}

// MovementSystem 推进导弹和炮弹的位置
type MovementSystem struct {
	em  *ecs.EntityManager
	cfg *config.GameConfig
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{
		em:  em,
		cfg: cfg,
	}
}

// Advance 推进一个 tick
// 敌方导弹按等级对应的步长下落，炮弹按速度组件移动，完全离开战场顶部的炮弹被删除
func (s *MovementSystem) Advance(level int) {
	step := s.cfg.EnemyStepForLevel(level)
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyMissileComponent, *components.PositionComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		pos.Y += step
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerShotComponent, *components.VelocityComponent](s.em) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if !ok {
			continue
		}
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)
		pos.X += vel.VX
		pos.Y += vel.VY

		if pos.Y+s.cfg.ShotHeight/2 <= 0 {
			s.em.DestroyEntity(id)
		}
	}
}

// Escaped 返回上边缘越过逃逸线的存活导弹，按 ID 升序
// 只做查询，删除和扣血由调用方处理
func (s *MovementSystem) Escaped() []EscapedMissile {
	var escaped []EscapedMissile
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyMissileComponent, *components.PositionComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if pos.Y-s.cfg.MissileHeight/2 <= s.cfg.EscapeLine {
			continue
		}
		missile, _ := ecs.GetComponent[*components.EnemyMissileComponent](s.em, id)
		escaped = append(escaped, EscapedMissile{
			ID:       id,
			Question: missile.Question,
			Answer:   missile.Answer,
		})
	}
	return escaped
}
