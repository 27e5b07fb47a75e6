package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/debrislab/internal/debris"
)

func materialColor(kind debris.Kind) rl.Color {
	c := kind.Material().Color
	return rl.NewColor(c.R, c.G, c.B, 255)
}

func (a *App) drawGround() {
	gy := a.Env.GroundY()
	rl.DrawRectangle(0, int32(gy), int32(a.Env.Width), int32(a.Env.Height-gy), ColGround)
	rl.DrawLineEx(
		rl.NewVector2(0, float32(gy)),
		rl.NewVector2(float32(a.Env.Width), float32(gy)),
		3, ColGroundEdge)
}

// drawMarkers renders each live burst as expanding concentric rings that
// cool from white-orange to dark as the marker ages out.
func (a *App) drawMarkers() {
	now := a.Pop.Now()
	for _, m := range a.Pop.Markers() {
		progress := m.Progress(now)
		if progress >= 1 {
			continue
		}
		radius := 50 * progress
		center := rl.NewVector2(float32(m.Position.X), float32(m.Position.Y))
		for r := 5.0; r < radius; r += 5 {
			intensity := 255 * (1 - r/radius) * (1 - progress)
			col := rl.NewColor(uint8(math.Min(255, intensity+100)), uint8(intensity), 0, 255)
			rl.DrawRing(center, float32(r)-1, float32(r)+1, 0, 360, 0, col)
		}
	}
}

func (a *App) drawParticles() {
	particles := a.Pop.Particles()
	for i := range particles {
		p := &particles[i]
		a.drawTrail(p)
		a.drawBody(p)
	}
}

// drawTrail fades the wake toward the background: older segments are more
// transparent, newest at half strength.
func (a *App) drawTrail(p *debris.Particle) {
	trail := p.Trail()
	if len(trail) < 2 {
		return
	}
	col := materialColor(p.Kind)
	for i := 0; i < len(trail)-1; i++ {
		alpha := float32(i) / float32(len(trail)) * 0.5
		s := rl.NewVector2(float32(trail[i].X), float32(trail[i].Y))
		e := rl.NewVector2(float32(trail[i+1].X), float32(trail[i+1].Y))
		rl.DrawLineEx(s, e, 2, rl.Fade(col, alpha))
	}
}

func (a *App) drawBody(p *debris.Particle) {
	col := materialColor(p.Kind)
	if p.Kind == debris.SemiRigid {
		// Stress red-shifts the base color toward hot.
		f := math.Min(p.Stress()/p.Material().DeformationThreshold, 1)
		col.R = uint8(math.Min(255, float64(col.R)+f*100))
	}

	pos := rl.NewVector2(float32(p.Position.X), float32(p.Position.Y))
	size := float32(p.Size)

	if p.Kind == debris.Rigid {
		// Square spun to the body angle.
		rl.DrawPoly(pos, 4, size, float32(p.Angle*180/math.Pi), col)
	} else {
		rl.DrawCircleV(pos, size, col)
		if p.Kind == debris.SemiRigid && p.Deformation > 0 {
			dr := size * float32(1+p.Deformation)
			rl.DrawRing(pos, dr-1, dr+1, 0, 360, 0, ColDeform)
		}
	}

	if p.Speed() > 10 {
		tip := rl.NewVector2(
			pos.X+float32(p.Velocity.X*0.1),
			pos.Y+float32(p.Velocity.Y*0.1))
		rl.DrawLineEx(pos, tip, 2, ColText)
	}
}
