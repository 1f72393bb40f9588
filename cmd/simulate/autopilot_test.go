package main

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/systems"
)

// newSnapshot 目标答案 7，坦克在第 2 列，答案 7 的导弹在第 4 列
func newSnapshot() systems.Snapshot {
	return systems.Snapshot{
		Session: game.Session{
			HasTarget:    true,
			TargetAnswer: 7,
			TankColumn:   2,
		},
		Missiles: []systems.MissileView{
			{ID: 1, Column: 0, Question: "1+1", Answer: 2},
			{ID: 2, Column: 4, Question: "3+4", Answer: 7},
		},
	}
}

func TestAutopilotMovesToTarget(t *testing.T) {
	pilot := NewAutopilot(1, rand.New(rand.NewPCG(1, 2)))
	snap := newSnapshot()

	intents := pilot.Decide(snap)
	if len(intents) != 1 || intents[0] != systems.IntentMoveRight {
		t.Fatalf("Decide() = %v, want [move-right]", intents)
	}

	snap.Session.TankColumn = 4
	intents = pilot.Decide(snap)
	if len(intents) != 1 || intents[0] != systems.IntentFire {
		t.Fatalf("aligned Decide() = %v, want [fire]", intents)
	}

	// 同一目标只开一炮
	if intents = pilot.Decide(snap); len(intents) != 0 {
		t.Errorf("second Decide() on same aim = %v, want none", intents)
	}

	// 目标消失后重新瞄准
	snap.Missiles = snap.Missiles[:1]
	snap.Session.TargetAnswer = 2
	intents = pilot.Decide(snap)
	if len(intents) != 1 || intents[0] != systems.IntentMoveLeft {
		t.Errorf("re-aim Decide() = %v, want [move-left]", intents)
	}
}

func TestAutopilotIdle(t *testing.T) {
	pilot := NewAutopilot(1, rand.New(rand.NewPCG(1, 2)))

	tests := []struct {
		name   string
		modify func(*systems.Snapshot)
	}{
		{"没有目标", func(s *systems.Snapshot) { s.Session.HasTarget = false }},
		{"游戏结束", func(s *systems.Snapshot) { s.Session.IsGameOver = true }},
		{"没有导弹", func(s *systems.Snapshot) { s.Missiles = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newSnapshot()
			tt.modify(&snap)
			if intents := pilot.Decide(snap); len(intents) != 0 {
				t.Errorf("Decide() = %v, want none", intents)
			}
		})
	}
}

func TestRunSessionTerminates(t *testing.T) {
	cfg := config.DefaultGameConfig()
	store := game.NewScoreStore(nil)

	// 准确率为 0 时总是随机射击，最终一定结束
	pilot := NewAutopilot(0, rand.New(rand.NewPCG(3, 4)))
	result := runSession(cfg, "bot", store, pilot, rand.New(rand.NewPCG(5, 6)), 100000)

	if !result.Finished {
		t.Fatalf("session should end, ran %d ticks", result.Ticks)
	}
	if len(store.LoadScores()) != 1 {
		t.Errorf("finished session should save one score, got %d", len(store.LoadScores()))
	}
}

func TestRunSessionPerfectPilotScores(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pilot := NewAutopilot(1, rand.New(rand.NewPCG(7, 8)))

	result := runSession(cfg, "bot", game.NewScoreStore(nil), pilot, rand.New(rand.NewPCG(9, 10)), 2000)
	if result.Score <= 0 {
		t.Errorf("perfect pilot should score within 2000 ticks, got %d", result.Score)
	}
}
