// Package debris implements the 2D debris physics core: free-flying
// particles under gravity and air drag, material-dependent boundary
// collisions, and stress-driven plastic deformation.
//
// The package defines the fundamental types for advancing a debris field:
//
//   - [Vec2]: 2D vector value type
//   - [Material]: immutable per-kind physical constants
//   - [Particle]: one body's kinematic and material state
//   - [Population]: owning arena of live particles and burst markers
//   - [Environment]: explicit simulation constants (gravity, drag, bounds)
//
// # Example
//
//	env := debris.DefaultEnvironment()
//	pop := debris.NewPopulation(env, rand.New(rand.NewSource(42)))
//	pop.SpawnExplosion(debris.Vec2{X: 600, Y: 400}, 300, 20, debris.SemiRigid)
//	for i := 0; i < 600; i++ {
//		pop.Step(1.0 / 60.0)
//	}
//
// # Thread Safety
//
// A Population and its particles are exclusively owned by the goroutine
// driving Step. Renderers and observers take value copies via [Population.Snapshot]
// or iterate the borrowed slice from [Population.Particles] between steps;
// they must not retain references across a Step, since pruning removes
// particles by value.
package debris
