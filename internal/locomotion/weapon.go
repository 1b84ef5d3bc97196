package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// Weapon gates hitscan fire behind a cooldown.
type Weapon struct {
	Cooldown float32 // Seconds until the next shot is allowed
}

// Fire casts the aim ray from the muzzle. A shot only counts, and only
// restarts the cooldown, when the first thing hit is on a target layer.
func (w *Weapon) Fire(q RayCaster, position math.Vec3, aim math.Quat, cfg Tuning) (RayHit, bool) {
	if w.Cooldown > 0 {
		return RayHit{}, false
	}

	hit, ok := q.Raycast(position.Add(cfg.MuzzleOffset), aim.Forward(), cfg.WeaponRange, AllLayers)
	if !ok || !hit.Layer.Has(cfg.TargetLayers) {
		return RayHit{}, false
	}

	w.Cooldown = cfg.FireRate
	return hit, true
}

// Cool advances the cooldown by dt, flooring at zero.
func (w *Weapon) Cool(dt float32) {
	w.Cooldown = max(w.Cooldown-dt, 0)
}
