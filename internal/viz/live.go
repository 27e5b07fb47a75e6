package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/scenario"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	forceMin  = 100.0
	forceMax  = 1000.0
	forceStep = 50.0
	countMin  = 5
	countMax  = 50
	countStep = 5

	markerRadius = 30.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live arena viewer: it owns a population, steps it at 60fps,
// and renders it to a braille canvas beside a stats panel. A scenario
// player can drive scripted bursts; the spawn keys work either way.
type Model struct {
	env    debris.Environment
	pop    *debris.Population
	scn    *scenario.Scenario
	player *scenario.Player
	rng    *rand.Rand
	seed   int64

	force float64
	count int
	kind  debris.Kind

	initialForce float64
	initialCount int
	initialKind  debris.Kind

	dt      float64
	running bool
	canvas  *Canvas
	title   string

	energyHistory []float64
	countHistory  []float64

	history  []debris.Frame
	playHead int

	recording bool
	frames    []*image.Paletted
	showHelp  bool
}

// NewModel builds a sandbox viewer seeded with one burst at the arena
// center.
func NewModel(env debris.Environment, seed int64, force float64, count int, kind debris.Kind) Model {
	m := newModel(env, seed, force, count, kind, "sandbox")
	m.pop.SpawnExplosion(debris.Vec2{X: env.Width / 2, Y: env.Height / 2}, force, count, kind)
	return m
}

// NewScenarioModel builds a viewer driven by a burst script. Spawn keys
// still add debris on top of the scripted bursts.
func NewScenarioModel(scn *scenario.Scenario, env debris.Environment, seed int64) (Model, error) {
	if err := scn.Validate(); err != nil {
		return Model{}, err
	}
	m := newModel(env, seed, 300, 20, debris.SemiRigid, scn.Name)
	m.scn = scn
	m.player = scenario.NewPlayer(scn)
	return m, nil
}

func newModel(env debris.Environment, seed int64, force float64, count int, kind debris.Kind, title string) Model {
	return Model{
		env:           env,
		pop:           debris.NewPopulation(env, rand.New(rand.NewSource(seed))),
		rng:           rand.New(rand.NewSource(seed + 1)),
		seed:          seed,
		force:         force,
		count:         count,
		kind:          kind,
		initialForce:  force,
		initialCount:  count,
		initialKind:   kind,
		dt:            1.0 / 60.0,
		running:       true,
		canvas:        NewCanvas(width, height),
		title:         title,
		energyHistory: make([]float64, 0, historyCapacity),
		countHistory:  make([]float64, 0, historyCapacity),
		history:       make([]debris.Frame, 0, historyCapacity),
		playHead:      -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "c":
			m.pop.Clear()
		case "e":
			m.burst()
		case "1":
			m.kind = debris.Rigid
		case "2":
			m.kind = debris.SemiRigid
		case "3":
			m.kind = debris.Soft
		case "up", "k":
			m.force = clampFloat(m.force+forceStep, forceMin, forceMax)
		case "down", "j":
			m.force = clampFloat(m.force-forceStep, forceMin, forceMax)
		case "right", "l":
			m.count = clampInt(m.count+countStep, countMin, countMax)
		case "left", "h":
			m.count = clampInt(m.count-countStep, countMin, countMax)
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the arena by one frame and records history.
func (m *Model) step() {
	if m.player != nil {
		m.player.Advance(m.pop, m.pop.Now())
	}
	m.pop.Step(m.dt)

	m.energyHistory = append(m.energyHistory, totalKinetic(m.pop))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	m.countHistory = append(m.countHistory, float64(m.pop.Len()))
	if len(m.countHistory) > historyCapacity {
		m.countHistory = m.countHistory[1:]
	}

	m.history = append(m.history, m.pop.Snapshot())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// burst fires a manual explosion somewhere in the upper arena.
func (m *Model) burst() {
	x := 100 + m.rng.Float64()*(m.env.Width-200)
	y := 100 + m.rng.Float64()*(m.env.GroundY()-400)
	m.pop.SpawnExplosion(debris.Vec2{X: x, Y: y}, m.force, m.count, m.kind)
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset rebuilds the population from the original seed and restores the
// spawn controls.
func (m *Model) reset() {
	m.pop = debris.NewPopulation(m.env, rand.New(rand.NewSource(m.seed)))
	m.rng = rand.New(rand.NewSource(m.seed + 1))
	m.force = m.initialForce
	m.count = m.initialCount
	m.kind = m.initialKind
	m.energyHistory = m.energyHistory[:0]
	m.countHistory = m.countHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	if m.player != nil {
		m.player.Reset()
	} else {
		m.pop.SpawnExplosion(debris.Vec2{X: m.env.Width / 2, Y: m.env.Height / 2}, m.force, m.count, m.kind)
	}
}

func totalKinetic(pop *debris.Population) float64 {
	total := 0.0
	ps := pop.Particles()
	for i := range ps {
		s := ps[i].Speed()
		total += 0.5 * ps[i].Mass() * s * s
	}
	return total
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// draw renders either the live arena or the replay frame under the
// playhead. Trails only exist live; replay frames are positional.
func (m *Model) draw() {
	m.canvas.Clear()
	m.drawGround()

	if m.playHead >= 0 && m.playHead < len(m.history) {
		f := m.history[m.playHead]
		for i := range f.Particles {
			pv := &f.Particles[i]
			m.drawBody(pv.X, pv.Y, pv.VX, pv.VY, pv.Size, pv.Angle, pv.Kind)
		}
		m.drawMarkers(f.Markers, f.Time)
		return
	}

	ps := m.pop.Particles()
	for i := range ps {
		p := &ps[i]
		for _, pt := range p.Trail() {
			m.canvas.Set(int(pt.X*m.scaleX()), int(pt.Y*m.scaleY()))
		}
		m.drawBody(p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, p.Size, p.Angle, p.Kind)
	}
	m.drawMarkers(m.pop.Markers(), m.pop.Now())
}

func (m *Model) scaleX() float64 { return float64(m.canvas.Width*2) / m.env.Width }
func (m *Model) scaleY() float64 { return float64(m.canvas.Height*4) / m.env.Height }

func (m *Model) drawGround() {
	gy := int(m.env.GroundY() * m.scaleY())
	m.canvas.FillRect(0, gy, m.canvas.Width*2-1, gy+1)
}

func (m *Model) drawBody(x, y, vx, vy, size, angle float64, kind debris.Kind) {
	sx, sy := m.scaleX(), m.scaleY()
	px, py := int(x*sx), int(y*sy)
	r := int(size * sx)

	if kind == debris.Rigid && r >= 2 {
		// Rotated square: corners sit a radius out at quarter turns.
		var cxs, cys [4]int
		for i := 0; i < 4; i++ {
			a := angle + float64(i)*math.Pi/2
			cxs[i] = px + int(float64(r)*math.Cos(a))
			cys[i] = py + int(float64(r)*math.Sin(a))
		}
		for i := 0; i < 4; i++ {
			j := (i + 1) % 4
			m.canvas.DrawLine(cxs[i], cys[i], cxs[j], cys[j])
		}
	} else {
		m.canvas.DrawCircle(px, py, r)
	}

	if vx*vx+vy*vy > 100 {
		m.canvas.DrawLine(px, py, px+int(vx*0.1*sx), py+int(vy*0.1*sy))
	}
}

func (m *Model) drawMarkers(markers []debris.Marker, now float64) {
	sx, sy := m.scaleX(), m.scaleY()
	for _, mk := range markers {
		prog := mk.Progress(now)
		r := int(markerRadius * prog * sx)
		if r < 1 {
			continue
		}
		m.canvas.DrawCircle(int(mk.Position.X*sx), int(mk.Position.Y*sy), r)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(CurrentTheme.Primary).Render("DEBRISLAB "+strings.ToUpper(m.title)) + "\n")

	status := StatusRunning.Render("RUNNING")
	if m.playHead != -1 {
		status = StatusReplay.Render(fmt.Sprintf("REPLAY %d/%d", m.playHead+1, len(m.history)))
	} else if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	t, count, spawned, culled := m.pop.Now(), m.pop.Len(), m.pop.Spawned(), m.pop.Culled()
	if m.playHead >= 0 && m.playHead < len(m.history) {
		f := m.history[m.playHead]
		t, count, spawned, culled = f.Time, len(f.Particles), f.Spawned, f.Culled
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	s.WriteString(labelStyle.Render("Debris") + valueStyle.Render(fmt.Sprintf("%d", count)) + "\n")
	s.WriteString(labelStyle.Render("Spawned") + valueStyle.Render(fmt.Sprintf("%d", spawned)) + "\n")
	s.WriteString(labelStyle.Render("Culled") + valueStyle.Render(fmt.Sprintf("%d", culled)) + "\n")
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.0f", energy)) + "\n")
	if len(m.countHistory) > 1 {
		s.WriteString(labelStyle.Render("Count") + SparklineChart(m.countHistory, 24) + "\n")
	}

	s.WriteString("\nSPAWN\n")
	s.WriteString(MetricLabel.Render(fmt.Sprintf("%-8s", "force")) + ProgressBar((m.force-forceMin)/(forceMax-forceMin), 10) + MetricValue.Render(fmt.Sprintf(" %4.0f", m.force)) + "\n")
	s.WriteString(MetricLabel.Render(fmt.Sprintf("%-8s", "count")) + ProgressBar(float64(m.count-countMin)/float64(countMax-countMin), 10) + MetricValue.Render(fmt.Sprintf(" %4d", m.count)) + "\n")
	s.WriteString(m.materialLine() + "\n")

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause R:Reset C:Clear\nE:Burst 1-3:Material\n↑↓:Force ←→:Count\n[ ]:Replay G:Record\nT:Theme ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

// materialLine renders the three material names with the active kind in
// its theme swatch color.
func (m Model) materialLine() string {
	entries := []struct {
		kind  debris.Kind
		color lipgloss.Color
	}{
		{debris.Rigid, CurrentTheme.Rigid},
		{debris.SemiRigid, CurrentTheme.Semi},
		{debris.Soft, CurrentTheme.Soft},
	}
	parts := make([]string, 0, len(entries))
	for i, e := range entries {
		label := fmt.Sprintf("%d:%s", i+1, e.kind)
		if e.kind == m.kind {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(e.color).Render("▸"+label))
		} else {
			parts = append(parts, MetricLabel.Render(" "+label))
		}
	}
	return strings.Join(parts, " ")
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space      - Pause/Resume           ║
║  E          - Burst at random spot   ║
║  C          - Clear all debris       ║
║  R          - Reset                  ║
║  1/2/3      - Material kind          ║
║  Up/Down    - Spawn force +/- 50     ║
║  Left/Right - Spawn count +/- 5      ║
║  [ ]        - Replay scrub           ║
║  G          - Toggle GIF recording   ║
║  T          - Cycle themes           ║
║  ?          - Toggle this help       ║
║  Q          - Quit                   ║
╚══════════════════════════════════════╝`

// captureFrame rasterizes the braille grid into a paletted image, one
// 4x4 block per dot.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			pattern := int(m.canvas.Grid[row][col] - 0x2800)
			if pattern == 0 {
				continue
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create("debris.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
