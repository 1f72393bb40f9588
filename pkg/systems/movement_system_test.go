package systems

import (
	"testing"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
	"github.com/decker502/missilemath/pkg/entities"
)

// TestMovementAdvance 导弹按等级下落，炮弹上升
func TestMovementAdvance(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  float64
	}{
		{"1级", 1, 0.8},
		{"5级", 5, 0.8 * 1.6},
		{"硬核", 10, 0.8 * 2.35 * 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultGameConfig()
			em := ecs.NewEntityManager()
			system := NewMovementSystem(em, cfg)

			missileID, _ := entities.NewEnemyMissile(em, cfg, 0, "1+1", 2, 1)
			shotID, _ := entities.NewPlayerShot(em, cfg, 0, 2)
			missilePos, _ := ecs.GetComponent[*components.PositionComponent](em, missileID)
			shotPos, _ := ecs.GetComponent[*components.PositionComponent](em, shotID)
			startMissile, startShot := missilePos.Y, shotPos.Y

			system.Advance(tt.level)

			if !almostEqual(missilePos.Y-startMissile, tt.want) {
				t.Errorf("Missile step: got %v, want %v", missilePos.Y-startMissile, tt.want)
			}
			if shotPos.Y != startShot-cfg.ShotStep {
				t.Errorf("Shot Y: got %v, want %v", shotPos.Y, startShot-cfg.ShotStep)
			}
		})
	}
}

// TestMovementShotLeavesField 炮弹完全离开战场顶部后删除
func TestMovementShotLeavesField(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	system := NewMovementSystem(em, cfg)

	shotID, _ := entities.NewPlayerShot(em, cfg, 2, 5)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, shotID)
	pos.Y = cfg.ShotStep - cfg.ShotHeight/2 + 1

	system.Advance(1)
	if !em.IsAlive(shotID) {
		t.Fatal("Shot still partly inside the field should be alive")
	}

	system.Advance(1)
	if em.IsAlive(shotID) {
		t.Fatal("Shot above the field should be destroyed")
	}
}

// TestMovementEscaped 上边缘越过逃逸线的导弹被报告
func TestMovementEscaped(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	system := NewMovementSystem(em, cfg)

	inside, _ := entities.NewEnemyMissile(em, cfg, 0, "1+1", 2, 1)
	onLine, _ := entities.NewEnemyMissile(em, cfg, 1, "2+2", 4, 1)
	past, _ := entities.NewEnemyMissile(em, cfg, 2, "3+3", 6, 1)

	setTop := func(id ecs.EntityID, top float64) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		pos.Y = top + cfg.MissileHeight/2
	}
	setTop(inside, 300)
	setTop(onLine, cfg.EscapeLine)
	setTop(past, cfg.EscapeLine+0.5)

	escaped := system.Escaped()
	if len(escaped) != 1 {
		t.Fatalf("Escaped: got %d, want 1", len(escaped))
	}
	if escaped[0].ID != past || escaped[0].Question != "3+3" {
		t.Errorf("Escaped: got %+v", escaped[0])
	}
	// Escaped 只查询，不删除
	if !em.IsAlive(past) {
		t.Error("Escaped() should not destroy entities")
	}
}
