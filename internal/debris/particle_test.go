package debris

import (
	"errors"
	"math"
	"testing"
)

func TestNewParticleMass(t *testing.T) {
	tests := []struct {
		name string
		size float64
		kind Kind
		want float64
	}{
		{"rigid size 10", 10, Rigid, 0.25},
		{"semi_rigid size 10", 10, SemiRigid, 0.18},
		{"soft size 10", 10, Soft, 0.1},
		{"soft size 5", 5, Soft, 0.025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParticle(Vec2{600, 100}, Vec2{}, tt.size, tt.kind)
			if err != nil {
				t.Fatalf("NewParticle: %v", err)
			}
			if math.Abs(p.Mass()-tt.want) > 1e-12 {
				t.Errorf("Mass() = %v, want %v", p.Mass(), tt.want)
			}
			if p.OriginalSize() != tt.size {
				t.Errorf("OriginalSize() = %v, want %v", p.OriginalSize(), tt.size)
			}
		})
	}
}

func TestNewParticleRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []float64{0, -1, -0.001} {
		if _, err := NewParticle(Vec2{}, Vec2{}, size, Soft); !errors.Is(err, ErrNonPositiveSize) {
			t.Errorf("size %v: error = %v, want ErrNonPositiveSize", size, err)
		}
	}
}

func TestIntegrateUpdateOrder(t *testing.T) {
	env := DefaultEnvironment()
	p, err := NewParticle(Vec2{600, 100}, Vec2{}, 10, Soft)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	p.AngularVelocity = 2

	p.Integrate(&env, 0.1, 0.1)

	// velocity: gravity then drag; position moves with the damped velocity
	if math.Abs(p.Velocity.Y-49.5) > 1e-9 {
		t.Errorf("Velocity.Y = %v, want 49.5", p.Velocity.Y)
	}
	if math.Abs(p.Position.Y-104.95) > 1e-9 {
		t.Errorf("Position.Y = %v, want 104.95", p.Position.Y)
	}
	if math.Abs(p.AngularVelocity-1.98) > 1e-9 {
		t.Errorf("AngularVelocity = %v, want 1.98", p.AngularVelocity)
	}
	if math.Abs(p.Angle-0.198) > 1e-9 {
		t.Errorf("Angle = %v, want 0.198", p.Angle)
	}
}

func TestDragIsPerCallNotPerTime(t *testing.T) {
	env := DefaultEnvironment()
	env.Gravity = Vec2{}

	for _, dt := range []float64{0.001, 1.0} {
		p, err := NewParticle(Vec2{600, 100}, Vec2{100, 0}, 10, Rigid)
		if err != nil {
			t.Fatalf("NewParticle: %v", err)
		}
		p.Integrate(&env, dt, dt)
		if math.Abs(p.Velocity.X-99) > 1e-9 {
			t.Errorf("dt=%v: Velocity.X = %v, want 99 (flat drag factor)", dt, p.Velocity.X)
		}
	}
}

func TestApplyForceAccumulatesAndResets(t *testing.T) {
	env := DefaultEnvironment()
	env.Gravity = Vec2{}

	p, err := NewParticle(Vec2{200, 100}, Vec2{}, 10, Soft)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	p.ApplyForce(Vec2{10, 0})
	p.ApplyForce(Vec2{5, 0})

	p.Integrate(&env, 1, 1)

	// accel = 15 / 0.1 = 150, then one drag factor
	if math.Abs(p.Velocity.X-148.5) > 1e-9 {
		t.Errorf("Velocity.X = %v, want 148.5", p.Velocity.X)
	}
	if p.force != (Vec2{}) {
		t.Errorf("force accumulator not reset: %v", p.force)
	}

	// second step with no applied force only drags
	p.Integrate(&env, 1, 2)
	if math.Abs(p.Velocity.X-148.5*0.99) > 1e-9 {
		t.Errorf("Velocity.X = %v, want %v", p.Velocity.X, 148.5*0.99)
	}
}

func TestTrailBounded(t *testing.T) {
	env := DefaultEnvironment()
	p, err := NewParticle(Vec2{600, 100}, Vec2{}, 5, Soft)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}

	var seen []Vec2
	for i := 0; i < 15; i++ {
		p.Integrate(&env, 0.01, float64(i)*0.01)
		seen = append(seen, p.Position)
	}

	trail := p.Trail()
	if len(trail) != env.TrailLength {
		t.Fatalf("trail length = %d, want %d", len(trail), env.TrailLength)
	}
	for i, want := range seen[len(seen)-env.TrailLength:] {
		if trail[i] != want {
			t.Errorf("trail[%d] = %v, want %v", i, trail[i], want)
		}
	}
}

func TestGroundCollisionResponse(t *testing.T) {
	// rigid: vx*friction, -vy*elasticity
	// semi_rigid/soft: vx*friction*0.8, -vy*elasticity*damping
	tests := []struct {
		kind   Kind
		wantVX float64
		wantVY float64
	}{
		{Rigid, 80, -40},
		{SemiRigid, 64, -102},
		{Soft, 64, -126},
	}

	env := DefaultEnvironment()
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p, err := NewParticle(Vec2{600, 745}, Vec2{100, 200}, 10, tt.kind)
			if err != nil {
				t.Fatalf("NewParticle: %v", err)
			}
			p.resolveBounds(&env, 7.5)

			if math.Abs(p.Position.Y-740) > 1e-9 {
				t.Errorf("Position.Y = %v, want 740 (clamped to ground)", p.Position.Y)
			}
			if math.Abs(p.Velocity.X-tt.wantVX) > 1e-9 {
				t.Errorf("Velocity.X = %v, want %v", p.Velocity.X, tt.wantVX)
			}
			if math.Abs(p.Velocity.Y-tt.wantVY) > 1e-9 {
				t.Errorf("Velocity.Y = %v, want %v", p.Velocity.Y, tt.wantVY)
			}
			if p.CollisionCount != 1 {
				t.Errorf("CollisionCount = %d, want 1", p.CollisionCount)
			}
			if p.LastCollisionAt != 7.5 {
				t.Errorf("LastCollisionAt = %v, want 7.5", p.LastCollisionAt)
			}
		})
	}
}

func TestWallCollisionResponse(t *testing.T) {
	env := DefaultEnvironment()

	t.Run("left", func(t *testing.T) {
		p, err := NewParticle(Vec2{5, 400}, Vec2{-100, 0}, 10, Rigid)
		if err != nil {
			t.Fatalf("NewParticle: %v", err)
		}
		p.resolveBounds(&env, 1)
		if p.Position.X != 10 {
			t.Errorf("Position.X = %v, want 10", p.Position.X)
		}
		if math.Abs(p.Velocity.X-20) > 1e-9 {
			t.Errorf("Velocity.X = %v, want 20", p.Velocity.X)
		}
		if p.CollisionCount != 1 {
			t.Errorf("CollisionCount = %d, want 1", p.CollisionCount)
		}
	})

	t.Run("right", func(t *testing.T) {
		p, err := NewParticle(Vec2{1195, 400}, Vec2{100, 0}, 10, SemiRigid)
		if err != nil {
			t.Fatalf("NewParticle: %v", err)
		}
		p.resolveBounds(&env, 1)
		if p.Position.X != 1190 {
			t.Errorf("Position.X = %v, want 1190", p.Position.X)
		}
		if math.Abs(p.Velocity.X-(-60)) > 1e-9 {
			t.Errorf("Velocity.X = %v, want -60", p.Velocity.X)
		}
		// walls never feed the stress accumulator
		if p.Stress() != 0 || p.Deformation != 0 {
			t.Errorf("wall contact deformed: stress=%v deformation=%v", p.Stress(), p.Deformation)
		}
	})
}

func TestCornerCollisionCountsOnce(t *testing.T) {
	env := DefaultEnvironment()
	p, err := NewParticle(Vec2{5, 745}, Vec2{-100, 200}, 10, Rigid)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	p.resolveBounds(&env, 2)

	if p.Position.X != 10 || math.Abs(p.Position.Y-740) > 1e-9 {
		t.Errorf("position = %v, want both clamps applied (10, 740)", p.Position)
	}
	// ground first: vy -> -40, vx -> -80; then wall reflects: vx -> 16
	if math.Abs(p.Velocity.X-16) > 1e-9 || math.Abs(p.Velocity.Y-(-40)) > 1e-9 {
		t.Errorf("velocity = %v, want (16, -40)", p.Velocity)
	}
	if p.CollisionCount != 1 {
		t.Errorf("CollisionCount = %d, want exactly 1 for a corner hit", p.CollisionCount)
	}
}

func TestDeformThresholdAndCap(t *testing.T) {
	p, err := NewParticle(Vec2{600, 400}, Vec2{}, 10, SemiRigid)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}

	// stress increment = 7200 / (0.18 * 100) = 400, past the threshold 300
	p.deform(7200, 0.3)
	if math.Abs(p.Deformation-0.1) > 1e-9 {
		t.Fatalf("Deformation = %v, want 0.1", p.Deformation)
	}
	if math.Abs(p.Size-9) > 1e-9 {
		t.Errorf("Size = %v, want 9", p.Size)
	}
	if math.Abs(p.Stress()-380) > 1e-9 {
		t.Errorf("Stress = %v, want 380 (relaxed)", p.Stress())
	}

	// second hit overshoots the cap
	p.deform(7200, 0.3)
	if p.Deformation != 0.3 {
		t.Fatalf("Deformation = %v, want cap 0.3", p.Deformation)
	}
	if math.Abs(p.Size-7) > 1e-9 {
		t.Errorf("Size = %v, want 7", p.Size)
	}
	if math.Abs(p.Size-p.OriginalSize()*(1-p.Deformation)) > 1e-9 {
		t.Errorf("size/deformation invariant broken: size=%v deformation=%v", p.Size, p.Deformation)
	}
}

func TestOnlySemiRigidDeforms(t *testing.T) {
	for _, kind := range []Kind{Rigid, Soft} {
		t.Run(kind.String(), func(t *testing.T) {
			p, err := NewParticle(Vec2{600, 400}, Vec2{}, 10, kind)
			if err != nil {
				t.Fatalf("NewParticle: %v", err)
			}
			p.deform(1e9, 0.3)
			if p.Deformation != 0 || p.Size != 10 || p.Stress() != 0 {
				t.Errorf("%v deformed: deformation=%v size=%v stress=%v",
					kind, p.Deformation, p.Size, p.Stress())
			}
		})
	}
}

func TestDeformationMonotonicUnderImpacts(t *testing.T) {
	env := DefaultEnvironment()
	p, err := NewParticle(Vec2{600, 747}, Vec2{0, 3000}, 10, SemiRigid)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}

	prev := 0.0
	for i := 0; i < 40; i++ {
		p.Position.Y = 747
		p.Velocity.Y = 3000
		p.resolveBounds(&env, float64(i))

		if p.Deformation < prev {
			t.Fatalf("iteration %d: deformation decreased %v -> %v", i, prev, p.Deformation)
		}
		if p.Deformation > env.MaxDeformation {
			t.Fatalf("iteration %d: deformation %v above cap", i, p.Deformation)
		}
		if math.Abs(p.Size-p.OriginalSize()*(1-p.Deformation)) > 1e-9 {
			t.Fatalf("iteration %d: size invariant broken: size=%v deformation=%v",
				i, p.Size, p.Deformation)
		}
		prev = p.Deformation
	}

	if prev == 0 {
		t.Error("hammering never deformed the particle")
	}
}

func TestValidDetectsNonFinite(t *testing.T) {
	p, err := NewParticle(Vec2{600, 400}, Vec2{1, 1}, 10, Soft)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	if !p.Valid() {
		t.Error("fresh particle reported invalid")
	}
	p.Velocity.Y = math.NaN()
	if p.Valid() {
		t.Error("NaN velocity reported valid")
	}
}
