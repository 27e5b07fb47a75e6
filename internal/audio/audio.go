// Package audio sonifies the debris arena: every impact fires a decaying
// percussive voice pitched by material, over a low rumble that follows the
// population's kinetic energy.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/debrislab/internal/debris"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	maxVoices = 16
	masterVol = 0.25
)

// voice is one decaying impact ping.
type voice struct {
	phase  float64
	step   float64 // phase increment per sample
	amp    float64
	decay  float64 // amplitude multiplier per sample
	active bool
}

type Processor struct {
	Stream *portaudio.Stream

	// Synthesis state
	FilterState [2]float64   // Stereo LPF state
	DelayLine   [2][]float64 // Stereo delay buffer
	DelayHead   int

	// Physics inputs
	mu           sync.Mutex
	TotalEnergy  float64
	EnergySmooth float64
	voices       [maxVoices]voice
	nextVoice    int
	rumblePhase  float64

	Active bool
}

func NewProcessor() *Processor {
	// 0.3 second delay, enough tail to smear impacts together
	delayLen := int(float64(SampleRate) * 0.3)

	return &Processor{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens the default output device. Failure is soft: callers keep
// running silent when no device exists.
func (a *Processor) Start() error {
	portaudio.Initialize()

	// Output only (0 in, 2 out). Duplex often fails on Linux if the
	// default devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		fmt.Printf("AUDIO ERROR: %v\n", err)
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		fmt.Printf("STREAM START ERROR: %v\n", err)
		stream.Close()
		portaudio.Terminate()
		return err
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdatePhysics feeds the current total kinetic energy. Called from the
// render loop; the audio callback reads it under the lock.
func (a *Processor) UpdatePhysics(energy float64) {
	a.mu.Lock()
	a.TotalEnergy = energy
	a.mu.Unlock()
}

// Impact fires one percussive voice. Pitch comes from the material
// (rigid rings, soft thuds), loudness and ring time from impact speed.
func (a *Processor) Impact(kind debris.Kind, speed float64) {
	freq := materialFreq(kind, speed)
	amp := math.Min(speed/500.0, 1.0) * 0.5
	if amp < 0.01 {
		return
	}

	a.mu.Lock()
	v := &a.voices[a.nextVoice]
	a.nextVoice = (a.nextVoice + 1) % maxVoices
	v.phase = 0
	v.step = 2 * math.Pi * freq / SampleRate
	v.amp = amp
	v.decay = decayPerSample(kind)
	v.active = true
	a.mu.Unlock()
}

func materialFreq(kind debris.Kind, speed float64) float64 {
	switch kind {
	case debris.Rigid:
		// Metallic clink, pitch rises slightly with impact speed
		return 1200 + speed*0.5
	case debris.SemiRigid:
		return 520 + speed*0.2
	default:
		return 180 + speed*0.1
	}
}

func decayPerSample(kind debris.Kind) float64 {
	// Per-second amplitude ratios: rigid rings ~0.4s, soft dies ~0.1s
	switch kind {
	case debris.Rigid:
		return math.Pow(0.001, 1.0/(SampleRate*0.4))
	case debris.SemiRigid:
		return math.Pow(0.001, 1.0/(SampleRate*0.2))
	default:
		return math.Pow(0.001, 1.0/(SampleRate*0.1))
	}
}

// Low pass filter (one pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Processor) ProcessAudio(out [][]float32) {
	// One lock per buffer: Impact and UpdatePhysics wait at most a
	// buffer's worth of synthesis.
	a.mu.Lock()
	defer a.mu.Unlock()

	// Slow morphing so the rumble swells instead of jumping
	a.EnergySmooth = a.EnergySmooth*0.99 + a.TotalEnergy*0.01

	// Energy opens the filter: idle arena 400Hz, violent arena 3kHz
	cutoff := 400.0 + math.Min(a.EnergySmooth/50.0, 2600.0)
	dt := 1.0 / float64(SampleRate)

	// Rumble level saturates so one big burst does not clip
	rumbleAmp := math.Min(a.EnergySmooth/200000.0, 0.3)

	for i := 0; i < len(out[0]); i++ {
		sample := 0.0

		// Low rumble at 55Hz plus a sub partial
		a.rumblePhase += 2 * math.Pi * 55.0 / SampleRate
		sample += (math.Sin(a.rumblePhase) + 0.5*math.Sin(a.rumblePhase*0.5)) * rumbleAmp

		for j := range a.voices {
			v := &a.voices[j]
			if !v.active {
				continue
			}
			sample += math.Sin(v.phase) * v.amp
			v.phase += v.step
			v.amp *= v.decay
			if v.amp < 1e-4 {
				v.active = false
			}
		}

		var outL, outR float64
		outL, a.FilterState[0] = lpf(sample, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(sample, cutoff, dt, a.FilterState[1])

		// Ping-pong delay: each side hears a bit of the other's tail
		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		mixL := outL + delayL*0.25 + delayR*0.1
		mixR := outR + delayR*0.25 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.5
		a.DelayLine[1][a.DelayHead] = mixR * 0.5

		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * masterVol)
		out[1][i] = float32(mixR * masterVol)
	}
}
