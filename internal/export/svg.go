package export

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/experiment"
)

// Trajectory is the full recorded path of one particle.
type Trajectory struct {
	ID     uint64
	Kind   debris.Kind
	Points []debris.Vec2
}

// Record replays an experiment and collects every particle's path.
// Runs are seeded, so recording a stored run's scenario and seed
// reproduces exactly the motion the run saw.
func Record(ctx context.Context, e *experiment.Experiment) ([]Trajectory, error) {
	byID := make(map[uint64]*Trajectory)
	order := make([]uint64, 0)

	err := e.RunWithCallback(ctx, func(pop *debris.Population, t float64) bool {
		for _, p := range pop.Particles() {
			tr, ok := byID[p.ID]
			if !ok {
				tr = &Trajectory{ID: p.ID, Kind: p.Kind}
				byID[p.ID] = tr
				order = append(order, p.ID)
			}
			tr.Points = append(tr.Points, p.Position)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	trajectories := make([]Trajectory, 0, len(order))
	for _, id := range order {
		trajectories = append(trajectories, *byID[id])
	}
	return trajectories, nil
}

func hexColor(c debris.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

const (
	backgroundFill = "#141e32"
	groundFill     = "#654321"
	groundStroke   = "#8b7500"
)

func svgHeader(sb *strings.Builder, env debris.Environment, width, height int) (float64, float64) {
	scaleX := float64(width) / env.Width
	scaleY := float64(height) / env.Height

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, backgroundFill))

	groundY := env.GroundY() * scaleY
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="%.1f" width="%d" height="%.1f" fill="%s"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="2"/>
`, groundY, width, float64(height)-groundY, groundFill, groundY, width, groundY, groundStroke))

	return scaleX, scaleY
}

// TrajectoriesToSVG draws recorded particle paths over the arena. The
// frame is the arena itself so the ground sits where the particles
// actually bounced.
func TrajectoriesToSVG(trajectories []Trajectory, env debris.Environment, width, height int) string {
	if env.Width <= 0 || env.Height <= 0 {
		return ""
	}

	var sb strings.Builder
	scaleX, scaleY := svgHeader(&sb, env, width, height)

	for _, tr := range trajectories {
		if len(tr.Points) < 2 {
			continue
		}
		color := hexColor(tr.Kind.Material().Color)

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="0.7" d="M`, color))
		for i, p := range tr.Points {
			x := p.X * scaleX
			y := p.Y * scaleY
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameToSVG draws one snapshot: rigid debris as rotated squares, the
// rest as circles, using each material's color.
func FrameToSVG(frame debris.Frame, env debris.Environment, width, height int) string {
	if env.Width <= 0 || env.Height <= 0 {
		return ""
	}

	var sb strings.Builder
	scaleX, scaleY := svgHeader(&sb, env, width, height)

	for _, p := range frame.Particles {
		kind := p.Kind
		color := hexColor(kind.Material().Color)
		x := p.X * scaleX
		y := p.Y * scaleY
		r := p.Size * scaleX

		if kind == debris.Rigid {
			deg := p.Angle * 180 / math.Pi
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.1f %.1f %.1f)"/>
`, x-r, y-r, 2*r, 2*r, color, deg, x, y))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
