package locomotion

import (
	"testing"

	"github.com/Faultbox/fpsmove/pkg/math"
)

func TestWeaponFire(t *testing.T) {
	cfg := DefaultTuning()
	tests := []struct {
		name     string
		wall     *RayHit
		cooldown float32
		wantHit  bool
	}{
		{"target in range", &RayHit{Distance: 10, Layer: cfg.TargetLayers}, 0, true},
		{"target out of range", &RayHit{Distance: cfg.WeaponRange + 1, Layer: cfg.TargetLayers}, 0, false},
		{"non-target layer", &RayHit{Distance: 10, Layer: Layer(2)}, 0, false},
		{"nothing hit", nil, 0, false},
		{"cooling down", &RayHit{Distance: 10, Layer: cfg.TargetLayers}, 0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Weapon{Cooldown: tt.cooldown}
			world := &fakeWorld{wall: tt.wall}
			_, hit := w.Fire(world, math.Vec3{}, math.QuatIdentity(), cfg)
			if hit != tt.wantHit {
				t.Errorf("hit = %v, want %v", hit, tt.wantHit)
			}
			if tt.wantHit && w.Cooldown != cfg.FireRate {
				t.Errorf("Cooldown = %v, want %v", w.Cooldown, cfg.FireRate)
			}
			if !tt.wantHit && w.Cooldown != tt.cooldown {
				t.Errorf("Cooldown changed to %v on a miss", w.Cooldown)
			}
			if tt.cooldown > 0 && world.casts != 0 {
				t.Error("raycast performed while cooling down")
			}
		})
	}
}

func TestWeaponCoolFloorsAtZero(t *testing.T) {
	w := Weapon{Cooldown: 0.1}
	w.Cool(0.04)
	if !approx(w.Cooldown, 0.06) {
		t.Errorf("Cooldown = %v, want 0.06", w.Cooldown)
	}
	w.Cool(1)
	if w.Cooldown != 0 {
		t.Errorf("Cooldown = %v, want 0", w.Cooldown)
	}
}
