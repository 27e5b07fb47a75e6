package debris

// Environment carries the simulation constants that the original screen-bound
// sandbox kept as globals: gravity, drag, friction, world bounds, and the
// culling thresholds. It is passed explicitly so tests and scenarios can vary
// gravity or bounds without touching package state.
type Environment struct {
	Gravity        Vec2    // acceleration, px/s^2
	AirDrag        float64 // flat per-step velocity multiplier, not dt-scaled
	AngularDamping float64 // flat per-step spin multiplier
	Friction       float64 // ground contact horizontal multiplier

	Width        float64
	Height       float64
	GroundHeight float64 // ground band height at the bottom of the box

	CullMargin       float64 // off-screen distance before a slow particle is culled
	CullSpeed        float64 // speed below which an off-screen particle is culled
	SettleSpeed      float64 // speed below which a well-collided particle is culled
	SettleCollisions int     // collision count beyond which settling applies

	TrailLength    int
	MaxDeformation float64
	MarkerDuration float64 // burst marker lifetime, seconds
}

// DefaultEnvironment returns the classic 1200x800 sandbox constants.
func DefaultEnvironment() Environment {
	return Environment{
		Gravity:        Vec2{X: 0, Y: 500},
		AirDrag:        0.99,
		AngularDamping: 0.99,
		Friction:       0.8,

		Width:        1200,
		Height:       800,
		GroundHeight: 50,

		CullMargin:       100,
		CullSpeed:        50,
		SettleSpeed:      10,
		SettleCollisions: 5,

		TrailLength:    10,
		MaxDeformation: 0.3,
		MarkerDuration: 0.5,
	}
}

// GroundY is the y coordinate of the ground surface.
func (e *Environment) GroundY() float64 {
	return e.Height - e.GroundHeight
}
