package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/debrislab/internal/debris"
)

func TestSpectrumFindsOscillation(t *testing.T) {
	const (
		dt   = 0.01
		n    = 256
		freq = 2.0
	)
	series := make([]float64, n)
	for i := range series {
		series[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	got := DominantFrequency(series, dt)
	if math.Abs(got-freq) > 0.2 {
		t.Errorf("expected dominant frequency near %f Hz, got %f", freq, got)
	}
}

func TestDominantFrequencyIgnoresOffset(t *testing.T) {
	const dt = 0.01
	series := make([]float64, 256)
	for i := range series {
		series[i] = 100 + 0.5*math.Sin(2*math.Pi*2.0*float64(i)*dt)
	}

	got := DominantFrequency(series, dt)
	if math.Abs(got-2.0) > 0.2 {
		t.Errorf("constant offset should not win, got %f Hz", got)
	}
}

func TestSpectrumDegenerateInput(t *testing.T) {
	if f, p := Spectrum(nil, 0.01); f != nil || p != nil {
		t.Error("expected nil spectrum for empty series")
	}
	if f, p := Spectrum([]float64{1, 2, 3}, 0); f != nil || p != nil {
		t.Error("expected nil spectrum for zero dt")
	}
	if got := DominantFrequency([]float64{1}, 0.01); got != 0 {
		t.Errorf("expected 0 for one-point series, got %f", got)
	}
}

func TestPeak(t *testing.T) {
	idx, val := Peak([]float64{1, 5, 3})
	if idx != 1 || val != 5 {
		t.Errorf("expected peak 5 at 1, got %f at %d", val, idx)
	}

	idx, _ = Peak(nil)
	if idx != -1 {
		t.Errorf("expected -1 for empty series, got %d", idx)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("expected mean 4, got %f", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("expected 0 for empty series, got %f", got)
	}
}

func TestDecayTime(t *testing.T) {
	times := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	values := []float64{0, 10, 8, 6, 0.5, 0.2, 0.1}

	// Peak 10, 5% threshold 0.5; the last strict exceedance is at 0.3.
	got := DecayTime(times, values, 0.05)
	if math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected decay time 0.3, got %f", got)
	}

	if got := DecayTime(times, []float64{0, 0, 0}, 0.05); got != 0 {
		t.Errorf("expected 0 for flat series, got %f", got)
	}
}

func TestScatterToASCII(t *testing.T) {
	env := debris.DefaultEnvironment()
	points := []debris.Vec2{
		{X: 0, Y: 0},
		{X: 600, Y: 400},
		{X: 1199, Y: 749},
		{X: 5000, Y: 400}, // clipped
	}

	out := ScatterToASCII(points, env, 60, 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 plotted points, got %d", strings.Count(out, "•"))
	}
	if !strings.Contains(out, "─") {
		t.Error("expected a ground line")
	}
}

func TestScatterToASCIIEmpty(t *testing.T) {
	env := debris.DefaultEnvironment()
	if got := ScatterToASCII(nil, env, 60, 20); got != "no particles" {
		t.Errorf("unexpected output %q", got)
	}
}
