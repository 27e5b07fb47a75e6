package debris

// ParticleView is the per-frame projection of one particle, shaped for
// JSON observers and recorders.
type ParticleView struct {
	ID          uint64  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Size        float64 `json:"size"`
	Angle       float64 `json:"angle"`
	Kind        Kind    `json:"kind"`
	Deformation float64 `json:"deformation"`
	Collisions  int     `json:"collisions"`
}

// Frame is a value snapshot of the renderable population state. Unlike the
// borrowed slices from Particles and Markers, a Frame stays valid after
// later steps mutate the arena.
type Frame struct {
	Time      float64        `json:"time"`
	Particles []ParticleView `json:"particles"`
	Markers   []Marker       `json:"markers"`
	Spawned   int            `json:"spawned"`
	Culled    int            `json:"culled"`
}

// Snapshot copies the renderable state into a Frame.
func (pp *Population) Snapshot() Frame {
	f := Frame{
		Time:      pp.now,
		Particles: make([]ParticleView, len(pp.particles)),
		Markers:   append([]Marker(nil), pp.markers...),
		Spawned:   pp.spawned,
		Culled:    pp.culled,
	}
	for i := range pp.particles {
		p := &pp.particles[i]
		f.Particles[i] = ParticleView{
			ID:          p.ID,
			X:           p.Position.X,
			Y:           p.Position.Y,
			VX:          p.Velocity.X,
			VY:          p.Velocity.Y,
			Size:        p.Size,
			Angle:       p.Angle,
			Kind:        p.Kind,
			Deformation: p.Deformation,
			Collisions:  p.CollisionCount,
		}
	}
	return f
}
