package player

import (
	"math"
	"testing"

	"skyhunter/internal/enemy"
	"skyhunter/internal/vecmath"
)

func TestNewAppliesUpgrades(t *testing.T) {
	p := New(0, 0, 3, 2)
	if p.Position().Y() != DefaultAltitude || p.Health.Max != DefaultHealth {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if math.Abs(p.BaseSpeed-70) > 1e-9 {
		t.Fatalf("speed = %v, want 70", p.BaseSpeed)
	}
	if math.Abs(p.RollSpeed-1.725) > 1e-9 {
		t.Fatalf("roll speed = %v", p.RollSpeed)
	}
	if UpgradeCost(3) != 900 {
		t.Fatalf("cost = %d", UpgradeCost(3))
	}
}

func TestViewNilWhenDead(t *testing.T) {
	p := New(50, 100, 1, 1)
	if p.View() == nil {
		t.Fatalf("expected a view for a living player")
	}
	p.Health.Damage(200)
	if p.View() != nil {
		t.Fatalf("dead player must not expose a view")
	}
	var none *Player
	if none.View() != nil {
		t.Fatalf("nil player must not expose a view")
	}
}

func TestAutopilotFiresAtEnemyAhead(t *testing.T) {
	p := New(50, 100, 1, 1)
	en := &enemy.Enemy{ID: "e", Transform: vecmath.NewTransform(vecmath.Vec3{0, 50, -100}), Health: enemy.NewHealth(50)}
	fire := DefaultAutopilot().Fly(p, []*enemy.Enemy{en}, nil, 1, 0.016)
	if !fire {
		t.Fatalf("expected trigger for enemy dead ahead")
	}
	if p.Position().Z() >= 0 {
		t.Fatalf("player did not move forward: %v", p.Position())
	}
}

func TestAutopilotHoldsFireOffAxis(t *testing.T) {
	p := New(50, 100, 1, 1)
	en := &enemy.Enemy{ID: "e", Transform: vecmath.NewTransform(vecmath.Vec3{100, 50, 0}), Health: enemy.NewHealth(50)}
	if DefaultAutopilot().Fly(p, []*enemy.Enemy{en}, nil, 1, 0.016) {
		t.Fatalf("fired at an enemy off the nose")
	}
}

func TestAutopilotSpeedBoost(t *testing.T) {
	p := New(50, 100, 1, 1)
	DefaultAutopilot().Fly(p, nil, nil, 2, 0.1)
	if p.Speed != 100 {
		t.Fatalf("speed = %v, want 100", p.Speed)
	}
}
