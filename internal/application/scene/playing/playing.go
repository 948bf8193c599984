// Package playing provides the main gameplay scene.
package playing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/application/replay"
	"github.com/younwookim/luckie/internal/application/scene"
	"github.com/younwookim/luckie/internal/application/state"
	"github.com/younwookim/luckie/internal/application/system"
	"github.com/younwookim/luckie/internal/application/world"
	"github.com/younwookim/luckie/internal/infrastructure/codec"
	"github.com/younwookim/luckie/internal/infrastructure/config"
	"github.com/younwookim/luckie/internal/infrastructure/inspector"
	"github.com/younwookim/luckie/internal/infrastructure/savestore"
)

// QuickSlot is the slot used by F6/F9
const QuickSlot = 1

// publishEvery is how many ticks pass between inspector snapshots
const publishEvery = 6

var (
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
	colorDialogBG = color.RGBA{10, 10, 30, 220}
	colorPause    = color.RGBA{0, 0, 0, 128}
	colorGameOver = color.RGBA{100, 0, 0, 180}
	colorClear    = color.RGBA{0, 60, 30, 180}
)

// Options are the optional collaborators of the scene
type Options struct {
	Audio      system.Audio
	Input      system.Input // defaults to the keyboard
	Store      *savestore.Store
	Hub        *inspector.Hub
	Sheets     map[string]Sheet
	RecordPath string // record when set
	Seed       int64  // 0 picks a time-based seed
	Log        *log.Logger
}

// Playing is the main gameplay scene
type Playing struct {
	cfg      *config.GameConfig
	stageCfg *config.StageConfig
	opts     Options

	world    *world.World
	states   *state.Manager
	input    system.Input
	recorder *replay.Recorder
	dialog   *Dialog
	hud      *HUD
	codec    *codec.Codec

	seed      int64
	runID     string
	runDone   bool
	published int // last tick sent to the inspector

	// Feedback
	hitstopFrames int
	shake         float64
	shakeDecay    float64
	fx            *rand.Rand // shake jitter, kept off the world RNG
}

// New creates a Playing scene and loads the stage
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Playing, error) {
	if cfg == nil || cfg.Physics == nil {
		return nil, errors.New("failed to create playing scene: no config")
	}
	cd, err := codec.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create playing scene: %w", err)
	}

	p := &Playing{
		cfg:        cfg,
		stageCfg:   stageCfg,
		opts:       opts,
		states:     state.NewManager(state.StateLoading),
		dialog:     &Dialog{},
		hud:        &HUD{},
		codec:      cd,
		shakeDecay: cfg.Physics.Feedback.ScreenShake.Decay,
		fx:         rand.New(rand.NewSource(1)),
	}
	p.input = opts.Input
	if p.input == nil {
		p.input = NewKeyboard()
	}
	p.states.OnChange(func(from, to state.GameState) {
		p.logf("state: %s -> %s", from, to)
	})

	if err := p.start(); err != nil {
		cd.Close()
		return nil, err
	}
	p.world.Events().Subscribe(event.NPCInteract, func(e event.Event) {
		p.dialog.Open(e.Subtype, e.Lines)
	})
	return p, nil
}

// start builds a fresh world with a new seed and recording
func (p *Playing) start() error {
	p.seed = p.opts.Seed
	if p.seed == 0 {
		p.seed = time.Now().UnixNano()
	}
	p.runDone = false
	p.published = 0
	p.hitstopFrames = 0
	p.shake = 0
	p.dialog.Close()

	input := p.input
	p.recorder = nil
	if p.opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(p.input, p.seed, p.stageCfg.ID)
		p.recorder.WatchOverlay(p.dialog)
		input = p.recorder
		p.logf("recording enabled: %s (seed: %d)", p.opts.RecordPath, p.seed)
	}
	p.runID = replay.NewRunID()
	if p.recorder != nil {
		p.runID = p.recorder.Data().RunID
	}

	if p.world == nil {
		p.world = world.New(p.cfg, world.Options{
			Audio:   p.opts.Audio,
			Input:   input,
			Overlay: p.dialog,
			HUD:     p.hud,
			States:  p.states,
			Log:     p.opts.Log,
			Seed:    p.seed,
		})
		p.world.OnHitstop = func(frames int) { p.hitstopFrames = frames }
		p.world.OnScreenShake = func(intensity float64) { p.shake = intensity }
	} else {
		p.world.SetInput(input)
		p.world.SetSeed(p.seed)
	}

	if err := p.world.Load(p.stageCfg); err != nil {
		return fmt.Errorf("failed to start stage: %w", err)
	}
	p.states.Transition(state.StatePlaying)
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.hitstopFrames > 0 {
		p.hitstopFrames--
		return nil, nil
	}

	switch cur := p.states.Current(); {
	case cur == state.StatePlaying:
		p.handleHotkeys()
		if p.states.Current() == state.StatePlaying {
			p.Step(dt)
		}
	case cur == state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.states.Transition(state.StatePlaying)
		}
	case cur.Ended():
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.Restart(); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil // nil = stay on this scene
}

func (p *Playing) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		p.states.Transition(state.StatePaused)
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		p.saveRecording()
	case inpututil.IsKeyJustPressed(ebiten.KeyF6):
		if err := p.QuickSave(); err != nil {
			p.logf("quick save failed: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		if err := p.QuickLoad(); err != nil {
			p.logf("quick load failed: %v", err)
		}
	}
}

// Step runs one world tick plus the scene-side feedback around it
func (p *Playing) Step(dt float64) {
	p.world.Update(dt)

	if p.dialog.Blocking() && p.input.ConsumeInteractPress() {
		p.dialog.Advance()
	}

	p.updateShake()
	p.publish()

	switch {
	case p.world.GameOver():
		p.finishRun(savestore.OutcomeDied)
	case p.world.StageClear():
		p.finishRun(savestore.OutcomeCleared)
	}
}

func (p *Playing) updateShake() {
	cam := p.world.Camera()
	if cam == nil {
		return
	}
	if p.shake < 0.1 {
		p.shake = 0
		cam.ShakeX, cam.ShakeY = 0, 0
		return
	}
	cam.ShakeX = p.shake * (2*p.fx.Float64() - 1)
	cam.ShakeY = p.shake * (2*p.fx.Float64() - 1)
	p.shake *= p.shakeDecay
}

// publish streams a JSON snapshot to the inspector every few ticks
func (p *Playing) publish() {
	tick := p.world.Tick()
	if p.opts.Hub == nil || tick%publishEvery != 0 || tick == p.published {
		return
	}
	p.published = tick
	data, err := json.Marshal(p.world.Snapshot())
	if err != nil {
		p.logf("inspector: %v", err)
		return
	}
	p.opts.Hub.Publish(data)
}

// finishRun stores the run once and closes the recording
func (p *Playing) finishRun(outcome savestore.Outcome) {
	if p.runDone {
		return
	}
	p.runDone = true
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
	if p.opts.Store == nil {
		return
	}
	stats := p.world.Stats()
	_, err := p.opts.Store.RecordRun(context.Background(), savestore.Run{
		ID:       p.runID,
		Stage:    p.world.StageName(),
		Seed:     p.seed,
		Outcome:  outcome,
		Ticks:    p.world.Tick(),
		Coins:    stats.Coins,
		Defeated: stats.Defeated,
	})
	if err != nil {
		p.logf("failed to record run: %v", err)
	}
}

// QuickSave writes the world snapshot to the quick slot
func (p *Playing) QuickSave() error {
	if p.opts.Store == nil {
		return errors.New("no save store")
	}
	data, err := p.codec.Encode(p.world.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if _, err := p.opts.Store.Save(context.Background(), QuickSlot, p.world.StageName(), p.world.Tick(), data); err != nil {
		return err
	}
	p.logf("saved tick %d to slot %d (%d bytes)", p.world.Tick(), QuickSlot, len(data))
	return nil
}

// QuickLoad restores the world from the quick slot
func (p *Playing) QuickLoad() error {
	if p.opts.Store == nil {
		return errors.New("no save store")
	}
	slot, err := p.opts.Store.Load(context.Background(), QuickSlot)
	if err != nil {
		return err
	}
	var snap world.Snapshot
	if err := p.codec.Decode(slot.Data, &snap); err != nil {
		return fmt.Errorf("failed to decode slot %d: %w", QuickSlot, err)
	}
	if err := p.world.ApplySnapshot(&snap); err != nil {
		return err
	}
	p.dialog.Close()
	p.shake, p.hitstopFrames = 0, 0
	return nil
}

// Restart reloads the stage after game over or stage clear
func (p *Playing) Restart() error {
	if p.recorder != nil && !p.runDone {
		p.saveRecording()
	}
	p.states.Transition(state.StateLoading)
	return p.start()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := p.recorder.Save(filename); err != nil {
		p.logf("failed to save recording: %v", err)
		return
	}
	p.logf("recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(p.world.Background())
	p.world.Render(NewSurface(screen, p.opts.Sheets))
	p.drawUI(screen)

	if p.dialog.Blocking() {
		p.drawDialog(screen)
	}
	switch p.states.Current() {
	case state.StatePaused:
		p.drawOverlay(screen, colorPause, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, colorGameOver, fmt.Sprintf("GAME OVER\n\nCoins: %d\n\nPress Z to restart", p.hud.Stats().Coins))
	case state.StateStageClear:
		s := p.hud.Stats()
		p.drawOverlay(screen, colorClear, fmt.Sprintf("STAGE CLEAR\n\nCoins: %d  KO: %d\nTime: %s\n\nPress Z to play again", s.Coins, s.Defeated, clock(s.Elapsed)))
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	w, h := p.screenSize()
	barX, barY := float32(10), float32(h-20)
	barW, barH := float32(100), float32(8)
	vector.DrawFilledRect(screen, barX, barY, barW, barH, colorHealthBG, false)
	vector.DrawFilledRect(screen, barX, barY, barW*float32(p.hud.HealthRatio()), barH, colorHealthFG, false)

	ebitenutil.DebugPrintAt(screen, p.hud.Text(), 10, h-36)
	if p.recorder != nil && p.recorder.IsRecording() {
		ebitenutil.DebugPrintAt(screen, "REC", w-30, 4)
	}
	ebitenutil.DebugPrint(screen, "A/D move  W jump  Shift dash  J throw  E talk  ESC pause")
}

func (p *Playing) drawDialog(screen *ebiten.Image) {
	w, h := p.screenSize()
	speaker, line := p.dialog.Current()
	vector.DrawFilledRect(screen, 8, float32(h-80), float32(w-16), 40, colorDialogBG, false)
	ebitenutil.DebugPrintAt(screen, speaker+":\n"+line, 14, h-76)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	w, h := p.screenSize()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), c, false)
	ebitenutil.DebugPrintAt(screen, text, w/2-60, h/2-30)
}

func (p *Playing) screenSize() (int, int) {
	d := p.cfg.Physics.Display
	return d.ScreenWidth, d.ScreenHeight
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	if !p.runDone && p.world.Tick() > 0 {
		p.finishRun(savestore.OutcomeQuit)
	}
	p.codec.Close()
}

// World exposes the running world
func (p *Playing) World() *world.World { return p.world }

// State returns the current game state
func (p *Playing) State() state.GameState { return p.states.Current() }

// Dialog returns the NPC dialog overlay
func (p *Playing) Dialog() *Dialog { return p.dialog }

// HUD returns the stats display
func (p *Playing) HUD() *HUD { return p.hud }

// Recorder returns the active recording, nil when not recording
func (p *Playing) Recorder() *replay.Recorder { return p.recorder }

// Seed returns the seed of the current run
func (p *Playing) Seed() int64 { return p.seed }

// Pause toggles between playing and paused
func (p *Playing) Pause() {
	if !p.states.Transition(state.StatePaused) {
		p.states.Transition(state.StatePlaying)
	}
}

func (p *Playing) logf(format string, args ...any) {
	if p.opts.Log == nil {
		return
	}
	p.opts.Log.Printf(format, args...)
}
