package analysis

import (
	"strings"

	"github.com/san-kum/debrislab/internal/debris"
)

// ScatterToASCII draws particle positions into a fixed-frame terminal
// canvas. The frame is the arena itself, so the ground shows up where
// it belongs instead of wherever auto-scaling puts it. Positions in
// the cull margin outside the arena are clipped.
func ScatterToASCII(points []debris.Vec2, env debris.Environment, width, height int) string {
	if len(points) == 0 {
		return "no particles"
	}
	if width < 2 || height < 2 || env.Width <= 0 || env.Height <= 0 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Screen coordinates grow downward, same as the arena's.
	groundRow := int(env.GroundY() / env.Height * float64(height-1))
	if groundRow >= 0 && groundRow < height {
		for col := 0; col < width; col++ {
			canvas[groundRow][col] = '─'
		}
	}

	for _, p := range points {
		col := int(p.X / env.Width * float64(width-1))
		row := int(p.Y / env.Height * float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
