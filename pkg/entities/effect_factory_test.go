package entities

import (
	"testing"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
)

// TestEffectFactories 测试爆炸和扣分提示效果
func TestEffectFactories(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()

	tests := []struct {
		name     string
		create   func() (ecs.EntityID, error)
		wantType components.EffectType
		wantText string
		wantLife string
	}{
		{
			name:     "爆炸",
			create:   func() (ecs.EntityID, error) { return NewExplosionEffect(em, cfg, 250, 300) },
			wantType: components.EffectExplosion,
			wantLife: cfg.ExplosionDuration.String(),
		},
		{
			name:     "扣分提示",
			create:   func() (ecs.EntityID, error) { return NewPenaltyEffect(em, cfg, 250, 300) },
			wantType: components.EffectPenalty,
			wantText: "-50",
			wantLife: cfg.PenaltyDuration.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.create()
			if err != nil {
				t.Fatalf("create error: %v", err)
			}

			effect, ok := ecs.GetComponent[*components.EffectComponent](em, id)
			if !ok {
				t.Fatal("Effect should have EffectComponent")
			}
			if effect.Type != tt.wantType || effect.Text != tt.wantText {
				t.Errorf("Effect: got %+v", effect)
			}

			lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
			if !ok || lifetime.MaxLifetime.String() != tt.wantLife {
				t.Errorf("Lifetime: got %+v, want %s", lifetime, tt.wantLife)
			}

			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			if pos.X != 250 || pos.Y != 300 {
				t.Errorf("Position: got %+v", pos)
			}
		})
	}
}
