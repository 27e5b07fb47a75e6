package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/scenario"
)

func scenarioFixture() *scenario.Scenario {
	return &scenario.Scenario{
		Name:     "strafe",
		Duration: 2,
		Bursts: []scenario.Burst{
			{At: 0, X: 600, Y: 300, Force: 250, Count: 8, Kind: "soft"},
		},
	}
}

func dotSet(c *Canvas, x, y int) bool {
	col, row := x/2, y/4
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("Grid[0][0] = %x, want 2801", c.Grid[0][0])
	}
	c.Set(1, 3)
	if !dotSet(c, 1, 3) {
		t.Error("dot (1,3) not set")
	}
	c.Unset(0, 0)
	c.Unset(1, 3)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("Grid[0][0] = %x after unset, want 2800", c.Grid[0][0])
	}

	// Out-of-range writes must be ignored.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(8, 0)
	c.Set(0, 8)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("out-of-range Set leaked into the grid: %x", r)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(8, 4)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x <= 7; x++ {
		if !dotSet(c, x, 0) {
			t.Errorf("horizontal line missing dot at x=%d", x)
		}
	}
	c.Clear()
	c.DrawLine(3, 2, 3, 9)
	for y := 2; y <= 9; y++ {
		if !dotSet(c, 3, y) {
			t.Errorf("vertical line missing dot at y=%d", y)
		}
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(10, 10, 3)
	for _, pt := range [][2]int{{13, 10}, {7, 10}, {10, 13}, {10, 7}} {
		if !dotSet(c, pt[0], pt[1]) {
			t.Errorf("circle missing extreme point (%d,%d)", pt[0], pt[1])
		}
	}
	if dotSet(c, 10, 10) {
		t.Error("circle outline should not fill the center")
	}

	c.Clear()
	c.DrawCircle(5, 5, 0)
	if !dotSet(c, 5, 5) {
		t.Error("zero radius should plot a single dot")
	}
}

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(0, 0, 3, 3)
	if c.Grid[0][0] != 0x28FF || c.Grid[0][1] != 0x28FF {
		t.Errorf("filled cells = %x %x, want 28FF 28FF", c.Grid[0][0], c.Grid[0][1])
	}
	if c.Grid[1][0] != 0x2800 {
		t.Errorf("row below the rect is dirty: %x", c.Grid[1][0])
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 2)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("String has %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("line %q has %d runes, want 4", line, len([]rune(line)))
		}
	}
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(0.5, 10)
	if got := strings.Count(bar, "█"); got != 5 {
		t.Errorf("half bar has %d filled cells, want 5", got)
	}
	if got := strings.Count(ProgressBar(2.0, 10), "█"); got != 10 {
		t.Errorf("overflowing bar has %d filled cells, want 10", got)
	}
	if got := strings.Count(ProgressBar(-1.0, 10), "░"); got != 10 {
		t.Errorf("negative bar has %d empty cells, want 10", got)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 10); got != strings.Repeat("─", 10) {
		t.Errorf("empty sparkline = %q", got)
	}
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	chart := SparklineChart(values, 10)
	if !strings.ContainsAny(chart, "▁▂▃▄▅▆▇█") {
		t.Errorf("sparkline has no bars: %q", chart)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("ember")

	if got := GetTheme("nope").Name; got != "ember" {
		t.Errorf("unknown theme resolved to %q, want ember", got)
	}
	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Errorf("CurrentTheme = %q, want retro", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "minimal" {
		t.Errorf("NextTheme moved to %q, want minimal", CurrentTheme.Name)
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressKey(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(keyMsg(s))
	return next.(Model)
}

func newTestModel() Model {
	return NewModel(debris.DefaultEnvironment(), 1, 300, 20, debris.SemiRigid)
}

func TestModelSpawnControls(t *testing.T) {
	m := newTestModel()
	if m.pop.Len() != 20 {
		t.Fatalf("initial burst spawned %d, want 20", m.pop.Len())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.force != 350 {
		t.Errorf("force after up = %f, want 350", m.force)
	}
	for i := 0; i < 30; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	if m.force != forceMin {
		t.Errorf("force floor = %f, want %f", m.force, forceMin)
	}

	for i := 0; i < 30; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(Model)
	}
	if m.count != countMax {
		t.Errorf("count ceiling = %d, want %d", m.count, countMax)
	}

	m = pressKey(t, m, "3")
	if m.kind != debris.Soft {
		t.Errorf("kind after 3 = %v, want soft", m.kind)
	}
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if m.pop.Now() <= 0 {
		t.Errorf("population time = %f after one tick, want > 0", m.pop.Now())
	}
	if len(m.history) != 1 {
		t.Errorf("history has %d frames, want 1", len(m.history))
	}

	m = pressKey(t, m, " ")
	was := m.pop.Now()
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.pop.Now() != was {
		t.Error("paused model still stepped")
	}
}

func TestModelClearAndBurst(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "c")
	if m.pop.Len() != 0 {
		t.Fatalf("clear left %d particles", m.pop.Len())
	}
	m = pressKey(t, m, "e")
	if m.pop.Len() != 20 {
		t.Errorf("manual burst spawned %d, want 20", m.pop.Len())
	}
	if m.pop.Spawned() != 40 {
		t.Errorf("spawned total = %d, want 40", m.pop.Spawned())
	}
}

func TestModelReplayScrub(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	// Entering replay starts at the tail and then applies the direction.
	m = pressKey(t, m, "[")
	if m.playHead != len(m.history)-2 {
		t.Fatalf("playHead = %d, want %d", m.playHead, len(m.history)-2)
	}
	if m.running {
		t.Error("entering replay should pause the sim")
	}
	if !strings.Contains(m.View(), "REPLAY") {
		t.Error("replay status missing from the view")
	}

	m = pressKey(t, m, "]")
	m = pressKey(t, m, "]")
	if m.playHead != -1 {
		t.Errorf("scrubbing past the end should resume live, playHead = %d", m.playHead)
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	m = pressKey(t, m, "1")
	m = pressKey(t, m, "r")

	if m.pop.Now() != 0 {
		t.Errorf("time after reset = %f, want 0", m.pop.Now())
	}
	if m.pop.Len() != 20 {
		t.Errorf("reset burst spawned %d, want 20", m.pop.Len())
	}
	if m.kind != debris.SemiRigid {
		t.Errorf("kind after reset = %v, want semi_rigid", m.kind)
	}
	if len(m.history) != 0 {
		t.Errorf("history after reset has %d frames", len(m.history))
	}
}

func TestScenarioModel(t *testing.T) {
	env := debris.DefaultEnvironment()
	scn := scenarioFixture()
	m, err := NewScenarioModel(scn, env, 3)
	if err != nil {
		t.Fatalf("NewScenarioModel: %v", err)
	}
	if m.pop.Len() != 0 {
		t.Fatalf("scenario model pre-spawned %d particles", m.pop.Len())
	}

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.pop.Len() != 8 {
		t.Errorf("first tick spawned %d, want 8 from the scripted burst", m.pop.Len())
	}

	bad := scenarioFixture()
	bad.Duration = 0
	if _, err := NewScenarioModel(bad, env, 3); err == nil {
		t.Error("invalid scenario accepted")
	}
}

func TestInteractiveMenuFlow(t *testing.T) {
	app := NewInteractiveApp()
	if app.entries[0] != sandboxEntry {
		t.Fatalf("first entry = %q, want sandbox", app.entries[0])
	}

	next, _ := app.Update(keyMsg("j"))
	m := next.(model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.state != stateConfig {
		t.Fatalf("state = %d after enter, want config", m.state)
	}
	if m.selected != m.entries[1] {
		t.Errorf("selected = %q, want %q", m.selected, m.entries[1])
	}

	next, _ = m.Update(keyMsg("s"))
	m = next.(model)
	if m.state != stateSim {
		t.Fatalf("state = %d after s, want sim", m.state)
	}
	if m.liveModel.pop == nil {
		t.Error("live model has no population")
	}
}
