// Package locomotion implements the movement and jump-timing core of a
// physics-driven first-person character.
//
// One Controller owns the terrain state and jump timers of one character and
// drives that character's rigid body every tick. Tuning is shared read-only.
package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// Tuning holds the controller tunables. Values are loaded once and never
// mutated by the controller.
type Tuning struct {
	// Ground/slope sensing
	GroundDetectionRange float32   `yaml:"ground_detection_range"`
	SlopeDetectionRange  float32   `yaml:"slope_detection_range"`
	GroundLayer          LayerMask `yaml:"ground_layer"`
	MaxSlopeAngle        float32   `yaml:"max_slope_angle"` // Degrees, exclusive bound

	// Movement
	GroundMoveForce        float32   `yaml:"ground_move_force"`
	AirMoveForce           float32   `yaml:"air_move_force"`
	GroundTerminalVelocity float32   `yaml:"ground_terminal_velocity"`
	AerialTerminalVelocity math.Vec2 `yaml:"aerial_terminal_velocity"` // X horizontal, Y vertical
	DampingStrength        float32   `yaml:"damping_strength"`
	AirDampingRatio        float32   `yaml:"air_damping_ratio"`

	// Jumping
	InitialJumpSpeed    float32 `yaml:"initial_jump_speed"`
	CoyoteTime          float32 `yaml:"coyote_time"`
	JumpBufferTime      float32 `yaml:"jump_buffer_time"`
	SlopeJumpNormalBias float32 `yaml:"slope_jump_normal_bias"`

	// Look
	MouseSensitivity math.Vec2 `yaml:"mouse_sensitivity"`

	// Weapon
	WeaponRange  float32   `yaml:"weapon_range"`
	FireRate     float32   `yaml:"fire_rate"` // Seconds between shots
	MuzzleOffset math.Vec3 `yaml:"muzzle_offset"`
	TargetLayers LayerMask `yaml:"target_layers"`
}

// DefaultTuning returns tunables for a roughly human-sized character in metres.
func DefaultTuning() Tuning {
	return Tuning{
		GroundDetectionRange: 1.1,
		SlopeDetectionRange:  1.5,
		GroundLayer:          Layer(0),
		MaxSlopeAngle:        45,

		GroundMoveForce:        60,
		AirMoveForce:           20,
		GroundTerminalVelocity: 8,
		AerialTerminalVelocity: math.Vec2{X: 8, Y: 30},
		DampingStrength:        6,
		AirDampingRatio:        0.2,

		InitialJumpSpeed:    6,
		CoyoteTime:          0.15,
		JumpBufferTime:      0.15,
		SlopeJumpNormalBias: 0.3,

		MouseSensitivity: math.Vec2{X: 30, Y: 30},

		WeaponRange:  30,
		FireRate:     0.5,
		MuzzleOffset: math.Vec3{X: 0, Y: 0.5, Z: 0},
		TargetLayers: Layer(6),
	}
}
