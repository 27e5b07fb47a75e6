package debris

import (
	"math"
	"math/rand"
	"time"
)

// Spawn distribution constants for explosion bursts.
const (
	spawnSpeedFloor = 0.3 // fraction of burst force used as minimum speed
	spawnUpwardBias = 200 // max uniform upward velocity bias
	spawnOffsetMax  = 30  // max radial start offset from the burst center
	spawnSizeMin    = 3.0
	spawnSizeMax    = 15.0
	spawnSpinMax    = 5.0
)

// Marker is the physics-inert record of one explosion call, kept only so
// renderers can time a burst flash.
type Marker struct {
	Position Vec2    `json:"position"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Progress maps now onto the marker's life as a ratio clamped to [0, 1].
func (m Marker) Progress(now float64) float64 {
	if m.Duration <= 0 {
		return 1
	}
	p := (now - m.Start) / m.Duration
	return math.Max(0, math.Min(p, 1))
}

// Population owns the live debris arena: a dense value slice of particles,
// the active burst markers, and the sim clock. All mutation happens on the
// goroutine that calls Step.
type Population struct {
	env Environment
	rng *rand.Rand

	particles []Particle
	markers   []Marker

	now     float64
	nextID  uint64
	spawned int
	culled  int
}

// NewPopulation builds an empty arena. A nil rng falls back to a
// time-seeded source; pass a seeded one for reproducible runs.
func NewPopulation(env Environment, rng *rand.Rand) *Population {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Population{env: env, rng: rng}
}

func (pp *Population) Env() Environment { return pp.env }
func (pp *Population) Now() float64     { return pp.now }
func (pp *Population) Len() int         { return len(pp.particles) }

// Spawned is the total number of particles created so far.
func (pp *Population) Spawned() int { return pp.spawned }

// Culled is the total number of particles reclaimed by the pruning pass.
func (pp *Population) Culled() int { return pp.culled }

// Particles returns the live arena, borrowed until the next Step.
func (pp *Population) Particles() []Particle { return pp.particles }

// Markers returns the active burst markers, borrowed until the next Step.
func (pp *Population) Markers() []Marker { return pp.markers }

// Add places a single prepared particle into the arena and returns the
// ID it was assigned.
func (pp *Population) Add(p Particle) uint64 {
	pp.nextID++
	p.ID = pp.nextID
	pp.particles = append(pp.particles, p)
	pp.spawned++
	return p.ID
}

// SpawnExplosion scatters count particles of one kind from center. Per
// particle: a uniform direction angle; speed uniform in [0.3*force, force];
// an upward bias uniform in [0, 200] subtracted from the y velocity; a
// radial start offset uniform in [0, 30] along the same angle; size uniform
// in [3, 15]; spin uniform in [-5, 5] and a random initial orientation.
// One marker records the burst as a whole, regardless of count. There is no
// population cap; callers throttle their own spawn rate.
func (pp *Population) SpawnExplosion(center Vec2, force float64, count int, kind Kind) {
	for i := 0; i < count; i++ {
		angle := pp.rng.Float64() * 2 * math.Pi
		speed := force*spawnSpeedFloor + pp.rng.Float64()*force*(1-spawnSpeedFloor)
		vel := Vec2{
			X: math.Cos(angle) * speed,
			Y: math.Sin(angle)*speed - pp.rng.Float64()*spawnUpwardBias,
		}
		pos := center.Add(FromAngle(angle, pp.rng.Float64()*spawnOffsetMax))
		size := spawnSizeMin + pp.rng.Float64()*(spawnSizeMax-spawnSizeMin)

		p, _ := NewParticle(pos, vel, size, kind) // size >= spawnSizeMin > 0
		p.AngularVelocity = -spawnSpinMax + pp.rng.Float64()*2*spawnSpinMax
		p.Angle = pp.rng.Float64() * 2 * math.Pi
		pp.Add(p)
	}
	pp.markers = append(pp.markers, Marker{
		Position: center,
		Start:    pp.now,
		Duration: pp.env.MarkerDuration,
	})
}

// Step advances the sim clock by dt and runs one tick: prune inactive
// particles (judged on state from the previous step, before any motion),
// integrate the survivors, then expire finished markers.
func (pp *Population) Step(dt float64) {
	pp.now += dt

	for i := 0; i < len(pp.particles); i++ {
		if pp.IsActive(&pp.particles[i]) {
			continue
		}
		pp.particles[i] = pp.particles[len(pp.particles)-1]
		pp.particles = pp.particles[:len(pp.particles)-1]
		pp.culled++
		i--
	}

	for i := range pp.particles {
		pp.particles[i].Integrate(&pp.env, dt, pp.now)
	}

	live := pp.markers[:0]
	for _, m := range pp.markers {
		if pp.now-m.Start < m.Duration {
			live = append(live, m)
		}
	}
	pp.markers = live
}

// IsActive is the culling policy: a particle far outside the box and too
// slow to return, or settled after repeated collisions, gets reclaimed.
// The thresholds are resource heuristics, not physics. Non-finite state is
// culled here as well instead of propagating.
func (pp *Population) IsActive(p *Particle) bool {
	if !p.Valid() {
		return false
	}
	speedSq := p.Velocity.LengthSquared()
	offscreen := p.Position.X < -pp.env.CullMargin ||
		p.Position.X > pp.env.Width+pp.env.CullMargin ||
		p.Position.Y > pp.env.Height+pp.env.CullMargin
	if offscreen && speedSq < pp.env.CullSpeed*pp.env.CullSpeed {
		return false
	}
	if speedSq < pp.env.SettleSpeed*pp.env.SettleSpeed && p.CollisionCount > pp.env.SettleCollisions {
		return false
	}
	return true
}

// Clear drops every particle immediately. Markers keep their remaining
// visual life.
func (pp *Population) Clear() {
	pp.particles = pp.particles[:0]
}

// ApplyRadialForce pushes every particle within radius away from center
// (negative strength pulls inward). Falloff is linear toward the rim.
// Forces land in the per-particle accumulators and take effect on the next
// Step.
func (pp *Population) ApplyRadialForce(center Vec2, radius, strength float64) {
	if radius <= 0 {
		return
	}
	for i := range pp.particles {
		p := &pp.particles[i]
		d := p.Position.Sub(center)
		dist := d.Length()
		if dist == 0 || dist >= radius {
			continue
		}
		p.ApplyForce(d.Normalize().Scale(strength * (1 - dist/radius)))
	}
}
