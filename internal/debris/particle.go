package debris

import "math"

// Particle is one debris body. Fields read by renderers and observers are
// exported; integration internals (force accumulator, stress, trail
// storage) stay private. A particle is owned by the population that
// spawned it and moves by value during pruning, so external code must not
// retain pointers across steps.
type Particle struct {
	ID       uint64
	Position Vec2
	Velocity Vec2
	Size     float64 // current radius, shrinks under deformation
	Kind     Kind

	Angle           float64 // cosmetic orientation, radians
	AngularVelocity float64

	Deformation     float64 // permanent shrink ratio
	CollisionCount  int
	LastCollisionAt float64

	mat          Material
	mass         float64 // fixed at spawn from the original size
	originalSize float64
	force        Vec2
	stress       float64
	trail        []Vec2
}

// NewParticle builds a particle of the given kind. Mass derives once from
// the spawn size and material density (size^2 * density / 1000) and is
// never recomputed, even when the size later shrinks.
func NewParticle(pos, vel Vec2, size float64, kind Kind) (Particle, error) {
	if size <= 0 {
		return Particle{}, ErrNonPositiveSize
	}
	mat := kind.Material()
	return Particle{
		Position:     pos,
		Velocity:     vel,
		Size:         size,
		Kind:         kind,
		mat:          mat,
		mass:         size * size * mat.Density / 1000,
		originalSize: size,
	}, nil
}

func (p *Particle) Mass() float64         { return p.mass }
func (p *Particle) OriginalSize() float64 { return p.originalSize }
func (p *Particle) Material() Material    { return p.mat }
func (p *Particle) Stress() float64       { return p.stress }

func (p *Particle) Speed() float64 {
	return p.Velocity.Length()
}

// Trail returns the recent positions, oldest first. The slice is borrowed;
// renderers copy anything they keep.
func (p *Particle) Trail() []Vec2 { return p.trail }

// Valid reports whether position and velocity are still finite.
func (p *Particle) Valid() bool {
	return p.Position.finite() && p.Velocity.finite()
}

// ApplyForce accumulates a force for the next integration. Values are
// trusted; a non-finite force poisons the particle until culling removes it.
func (p *Particle) ApplyForce(f Vec2) {
	p.force = p.force.Add(f)
}

// Integrate advances the particle by dt seconds of sim time: gravity,
// acceleration, drag, translation, spin, trail, then boundary resolution.
// Drag and angular damping are flat per-call multipliers rather than
// dt-scaled, so energy loss tracks step rate.
func (p *Particle) Integrate(env *Environment, dt, now float64) {
	p.ApplyForce(env.Gravity.Scale(p.mass))

	accel := p.force.Scale(1 / p.mass)
	p.Velocity = p.Velocity.Add(accel.Scale(dt))
	p.Velocity = p.Velocity.Scale(env.AirDrag)
	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	p.AngularVelocity *= env.AngularDamping
	p.Angle += p.AngularVelocity * dt

	p.trail = append(p.trail, p.Position)
	if len(p.trail) > env.TrailLength {
		copy(p.trail, p.trail[1:])
		p.trail = p.trail[:env.TrailLength]
	}

	p.force = Vec2{}

	p.resolveBounds(env, now)
}

// resolveBounds clamps the particle into the box and applies the material
// response. Ground and wall overlaps in the same step resolve
// independently; CollisionCount moves by at most one per step.
func (p *Particle) resolveBounds(env *Environment, now float64) {
	collided := false

	if groundY := env.GroundY(); p.Position.Y+p.Size > groundY {
		p.Position.Y = groundY - p.Size
		collisionForce := math.Abs(p.Velocity.Y) * p.mass
		if p.Kind == Rigid {
			p.Velocity.Y = -p.Velocity.Y * p.mat.Elasticity
			p.Velocity.X *= env.Friction
		} else {
			p.Velocity.Y = -p.Velocity.Y * p.mat.Elasticity * p.mat.Damping
			p.Velocity.X *= env.Friction * 0.8
		}
		p.deform(collisionForce, env.MaxDeformation)
		collided = true
	}

	if p.Position.X-p.Size < 0 {
		p.Position.X = p.Size
		p.Velocity.X = -p.Velocity.X * p.mat.Elasticity
		collided = true
	} else if p.Position.X+p.Size > env.Width {
		p.Position.X = env.Width - p.Size
		p.Velocity.X = -p.Velocity.X * p.mat.Elasticity
		collided = true
	}

	if collided {
		p.CollisionCount++
		p.LastCollisionAt = now
	}
}

// deform feeds a ground impact into the stress accumulator. Only SemiRigid
// bodies deform: stress beyond the material threshold converts to permanent
// shrinkage (capped at maxDeformation), and stress relaxes geometrically on
// every call. Size stays locked to originalSize * (1 - Deformation).
func (p *Particle) deform(collisionForce, maxDeformation float64) {
	if p.Kind != SemiRigid {
		return
	}
	p.stress += collisionForce / (p.mass * 100)
	if p.stress > p.mat.DeformationThreshold {
		amount := (p.stress - p.mat.DeformationThreshold) / 1000
		p.Deformation = math.Min(p.Deformation+amount, maxDeformation)
		p.Size = p.originalSize * (1 - p.Deformation)
	}
	p.stress *= 0.95
}
