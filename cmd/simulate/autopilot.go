package main

import (
	"math/rand/v2"

	"github.com/decker502/missilemath/pkg/ecs"
	"github.com/decker502/missilemath/pkg/systems"
)

// Autopilot 自动驾驶玩家
// 每次瞄准一枚导弹，移动到其所在列后只开一炮，目标导弹消失后重新瞄准
type Autopilot struct {
	accuracy float64 // 选中正确导弹的概率
	rng      *rand.Rand

	aim    ecs.EntityID
	aiming bool
	fired  bool
}

// NewAutopilot 创建自动驾驶
func NewAutopilot(accuracy float64, rng *rand.Rand) *Autopilot {
	return &Autopilot{accuracy: accuracy, rng: rng}
}

// Decide 根据快照给出本 tick 的意图
func (p *Autopilot) Decide(snap systems.Snapshot) []systems.Intent {
	session := snap.Session
	if session.IsGameOver || !session.HasTarget || len(snap.Missiles) == 0 {
		p.aiming = false
		return nil
	}

	missile, ok := p.current(snap)
	if !ok {
		missile = p.choose(snap)
		p.aim, p.aiming, p.fired = missile.ID, true, false
	}

	switch {
	case missile.Column < session.TankColumn:
		return []systems.Intent{systems.IntentMoveLeft}
	case missile.Column > session.TankColumn:
		return []systems.Intent{systems.IntentMoveRight}
	case !p.fired:
		p.fired = true
		return []systems.Intent{systems.IntentFire}
	default:
		return nil
	}
}

// current 返回仍在场上的瞄准目标
func (p *Autopilot) current(snap systems.Snapshot) (systems.MissileView, bool) {
	if !p.aiming {
		return systems.MissileView{}, false
	}
	for _, m := range snap.Missiles {
		if m.ID == p.aim {
			return m, true
		}
	}
	return systems.MissileView{}, false
}

// choose 以 accuracy 的概率选择携带目标答案的导弹，否则随机选择
func (p *Autopilot) choose(snap systems.Snapshot) systems.MissileView {
	if p.rng.Float64() < p.accuracy {
		for _, m := range snap.Missiles {
			if m.Answer == snap.Session.TargetAnswer {
				return m
			}
		}
	}
	return snap.Missiles[p.rng.IntN(len(snap.Missiles))]
}
