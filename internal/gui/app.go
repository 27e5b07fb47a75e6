// Package gui is the native sandbox: the debris arena rendered in a
// raylib window at arena resolution, with mouse-driven bursts, a radial
// hand force, and keyboard spawn controls. Spawn settings persist across
// launches.
package gui

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/debrislab/internal/audio"
	"github.com/san-kum/debrislab/internal/debris"
)

// Palette (night-sky sandbox)
var (
	ColBg         = rl.NewColor(20, 30, 50, 255)    // Deep Blue
	ColGround     = rl.NewColor(101, 67, 33, 255)   // Packed Dirt
	ColGroundEdge = rl.NewColor(139, 117, 0, 255)   // Lit Rim
	ColText       = rl.NewColor(255, 255, 255, 255) // Bright White
	ColTextDim    = rl.NewColor(200, 200, 200, 255) // Soft White
	ColLive       = rl.NewColor(100, 255, 100, 255) // Counter Green
	ColPaused     = rl.NewColor(255, 255, 0, 255)   // Warning Yellow
	ColDeform     = rl.NewColor(255, 100, 100, 255) // Stress Ring
	ColPanel      = rl.NewColor(0, 0, 0, 128)       // Translucent Panel
)

// Spawn control bounds shared by the keyboard handlers and the HUD.
const (
	forceMin  = 100.0
	forceMax  = 1000.0
	forceStep = 50.0

	countMin  = 5
	countMax  = 50
	countStep = 5

	handRadius   = 150.0
	handStrength = 200.0
)

type App struct {
	Env debris.Environment
	Pop *debris.Population

	Force float64
	Count int
	Kind  debris.Kind

	Paused bool
	Font   rl.Font

	// Audio
	Audio *audio.Processor

	// Persistence
	Store    *SettingsStore
	settings Settings
}

// initWindow opens the Raylib window at arena resolution, sets the target
// FPS to 60, and disables the default exit key.
func initWindow(env debris.Environment) {
	rl.InitWindow(int32(env.Width), int32(env.Height), "debrislab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables
// bilinear texture filtering. It returns the loaded rl.Font ready for use
// in rendering.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds a sandbox over a fresh population. Spawn controls come
// from the persisted settings; the audio engine starts only when the
// settings say it was on last time. A zero seed means a time-seeded run.
func NewApp(env debris.Environment, seed int64) *App {
	store := OpenSettings()
	st := store.Load()

	proc := audio.NewProcessor()
	if st.Audio {
		proc.Start()
	}

	kind, err := debris.ParseKind(st.Material)
	if err != nil {
		kind = debris.SemiRigid
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	return &App{
		Env:      env,
		Pop:      debris.NewPopulation(env, rng),
		Force:    st.Force,
		Count:    st.Count,
		Kind:     kind,
		Font:     loadFont(),
		Audio:    proc,
		Store:    store,
		settings: st,
	}
}

// Run opens the sandbox window and blocks until it is closed. Settings
// are saved and the audio engine torn down on the way out.
func Run(env debris.Environment, seed int64) {
	initWindow(env)
	defer rl.CloseWindow()
	app := NewApp(env, seed)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.shutdown()
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.shutdown()
		os.Exit(0)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Pop.Clear()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		if a.Audio.Active {
			a.Audio.Stop()
		} else {
			a.Audio.Start()
		}
	}

	if rl.IsKeyPressed(rl.KeyOne) {
		a.Kind = debris.Rigid
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		a.Kind = debris.SemiRigid
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		a.Kind = debris.Soft
	}

	if rl.IsKeyPressed(rl.KeyUp) {
		a.Force = math.Min(forceMax, a.Force+forceStep)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.Force = math.Max(forceMin, a.Force-forceStep)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.Count += countStep
		if a.Count > countMax {
			a.Count = countMax
		}
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.Count -= countStep
		if a.Count < countMin {
			a.Count = countMin
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mp := rl.GetMousePosition()
		at := debris.Vec2{X: float64(mp.X), Y: float64(mp.Y)}
		a.Pop.SpawnExplosion(at, a.Force, a.Count, a.Kind)
	}

	// Hand of God: right-drag shoves debris away from the cursor,
	// SHIFT-drag pulls it in.
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		mp := rl.GetMousePosition()
		at := debris.Vec2{X: float64(mp.X), Y: float64(mp.Y)}
		strength := handStrength
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			strength = -strength
		}
		a.Pop.ApplyRadialForce(at, handRadius, strength)
	}

	if a.Paused {
		return
	}

	prev := a.Pop.Now()
	a.Pop.Step(float64(rl.GetFrameTime()))
	a.feedAudio(prev)
}

// feedAudio pushes this step's physics into the sonification engine:
// total kinetic energy drives the rumble, and every particle whose last
// collision landed inside the step fires an impact voice.
func (a *App) feedAudio(prevNow float64) {
	if a.Audio == nil || !a.Audio.Active {
		return
	}

	energy := 0.0
	particles := a.Pop.Particles()
	for i := range particles {
		p := &particles[i]
		speed := p.Speed()
		energy += 0.5 * p.Mass() * speed * speed
		if p.LastCollisionAt > prevNow {
			a.Audio.Impact(p.Kind, speed)
		}
	}
	a.Audio.UpdatePhysics(energy)
}

func (a *App) shutdown() {
	a.saveSettings()
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) saveSettings() {
	a.settings.Force = a.Force
	a.settings.Count = a.Count
	a.settings.Material = a.Kind.String()
	a.settings.Audio = a.Audio != nil && a.Audio.Active
	if err := a.Store.Save(a.settings); err != nil {
		fmt.Printf("SETTINGS ERROR: %v\n", err)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawGround()
	a.drawMarkers()
	a.drawParticles()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawPanel(10, 10, 400, 230)
	a.drawText("debrislab", 20, 20, 24, ColText)

	instructions := []string{
		"Left Click: Create Explosion",
		"Right Drag: Push Debris (Shift: Pull)",
		"1/2/3: Change Material (Rigid/Semi-Rigid/Soft)",
		"Up/Down: Adjust Force",
		"Left/Right: Adjust Particle Count",
		"Space: Pause/Resume",
		"C: Clear All Particles",
		"M: Toggle Audio",
		"Q: Quit",
	}
	y := 50
	for _, line := range instructions {
		a.drawText(line, 20, y, 18, ColTextDim)
		y += 20
	}

	settingsY := int(a.Env.Height) - 120
	a.drawPanel(10, settingsY, 350, 100)

	settings := []string{
		fmt.Sprintf("Material: %s", a.Kind),
		fmt.Sprintf("Explosion Force: %.0f", a.Force),
		fmt.Sprintf("Particle Count: %d", a.Count),
		fmt.Sprintf("Active Particles: %d", a.Pop.Len()),
	}
	y = settingsY + 10
	for i, line := range settings {
		col := ColText
		if i == len(settings)-1 {
			col = ColLive
		}
		a.drawText(line, 20, y, 18, col)
		y += 20
	}

	// Swatch for the material about to be spawned.
	rl.DrawCircle(300, int32(settingsY+25), 15, materialColor(a.Kind))

	w, h := int(a.Env.Width), int(a.Env.Height)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), w-90, h-30, 14, ColTextDim)
	if a.Audio != nil && a.Audio.Active {
		a.drawText("AUDIO ON", w-200, h-30, 14, ColLive)
	} else {
		a.drawText("AUDIO OFF", w-200, h-30, 14, rl.Red)
	}

	if a.Paused {
		size := rl.MeasureTextEx(a.Font, "PAUSED", 24, 1)
		a.drawText("PAUSED", (w-int(size.X))/2, 50-int(size.Y)/2, 24, ColPaused)
	}
}

func (a *App) drawPanel(x, y, w, h int) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), ColPanel)
	rl.DrawRectangleLinesEx(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), 2, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
