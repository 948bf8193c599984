// Package world owns the entity collections of one stage and advances them
// one tick at a time.
package world

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/application/factory"
	"github.com/younwookim/luckie/internal/application/state"
	"github.com/younwookim/luckie/internal/application/system"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// Stats is the per-tick summary handed to the HUD
type Stats = system.Stats

// Options are the optional collaborators of a world. Every field may be
// left empty.
type Options struct {
	Audio   system.Audio
	Input   system.Input
	Overlay system.Overlay
	HUD     system.HUD
	States  system.StateManager
	Log     *log.Logger
	Seed    int64
}

// World runs the per-tick pipeline over the collections of a loaded stage.
type World struct {
	physics *config.PhysicsConfig
	factory *factory.Factory
	opts    Options

	stageCfg *config.StageConfig
	stage    *entity.Stage
	static   *system.StaticIndex
	camera   *entity.Camera
	events   *event.Queue
	rng      *rand.Rand

	players   *system.PlayerSystem
	enemies   *system.EnemySystem
	collision *system.CollisionSystem

	Player      *entity.Player
	Enemies     []*entity.Enemy
	Items       []*entity.Item
	Projectiles []*entity.Projectile
	Hazards     []*entity.Hazard
	NPCs        []*entity.NPC
	Flag        *entity.Flag
	Layers      []*entity.ParallaxLayer

	stats      Stats
	tick       int
	gameOver   bool
	stageClear bool

	// Feedback hooks, fired from damage
	OnHitstop     func(frames int)
	OnScreenShake func(intensity float64)
}

// New creates an empty world. Call Load before Update.
func New(cfg *config.GameConfig, opts Options) *World {
	f := factory.New(cfg)
	w := &World{
		physics:   f.Physics(),
		factory:   f,
		opts:      opts,
		events:    event.NewQueue(),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		players:   system.NewPlayerSystem(f.Physics()),
		enemies:   system.NewEnemySystem(),
		collision: system.NewCollisionSystem(f.Physics()),
	}
	w.events.Subscribe(event.FlagReached, func(event.Event) {
		if w.stageClear {
			return
		}
		w.stageClear = true
		w.transition(state.StateStageClear)
		w.logf("world: stage %q cleared at tick %d", w.StageName(), w.tick)
	})
	return w
}

// Load builds the stage geometry and every descriptor entity. Loading
// again discards the previous stage.
func (w *World) Load(stageCfg *config.StageConfig) error {
	if stageCfg == nil {
		return fmt.Errorf("failed to load stage: no stage config")
	}
	if err := w.build(stageCfg); err != nil {
		return err
	}
	w.context(0).PlayMusic(stageCfg.Music)
	w.logf("world: loaded stage %q (%d enemies, %d items)", w.StageName(), len(w.Enemies), len(w.Items))
	return nil
}

// build resets the world to the stage's initial layout
func (w *World) build(stageCfg *config.StageConfig) error {
	stage := system.LoadStage(stageCfg)
	cell := w.physics.Collision.BroadphaseCell

	w.stageCfg = stageCfg
	w.stage = stage
	w.static = system.NewStaticIndex(stage, cell)
	w.camera = w.newCamera(stage)
	w.events.Clear()
	w.rng = rand.New(rand.NewSource(w.opts.Seed))

	w.Enemies = nil
	w.Items = nil
	w.Projectiles = nil
	w.Hazards = nil
	w.NPCs = nil
	w.Flag = nil
	w.stats = Stats{}
	w.tick = 0
	w.gameOver = false
	w.stageClear = false

	w.Player = w.factory.NewPlayer(float64(stage.SpawnX), float64(stage.SpawnY))

	for i, d := range stageCfg.Entities {
		s, err := w.factory.Build(d, i)
		if err != nil {
			return fmt.Errorf("failed to build entity %d of stage %q: %w", i, stageCfg.ID, err)
		}
		w.add(s)
	}
	w.Hazards = append(w.Hazards, w.factory.SpikeHazards(stage)...)
	w.Layers = w.factory.Layers()

	w.camera.Snap(w.Player.Bounds())
	return nil
}

func (w *World) add(s factory.Spawnable) {
	switch v := s.(type) {
	case *entity.Enemy:
		w.Enemies = append(w.Enemies, v)
	case *entity.Item:
		w.Items = append(w.Items, v)
	case *entity.Hazard:
		w.Hazards = append(w.Hazards, v)
	case *entity.NPC:
		w.NPCs = append(w.NPCs, v)
	case *entity.Flag:
		w.Flag = v
	}
}

func (w *World) newCamera(stage *entity.Stage) *entity.Camera {
	viewW := float64(w.physics.Display.ScreenWidth)
	viewH := float64(w.physics.Display.ScreenHeight)
	if viewW <= 0 || viewH <= 0 {
		viewW, viewH = stage.PixelWidth(), stage.PixelHeight()
	}
	cam := entity.NewCamera(viewW, viewH, stage.PixelWidth(), stage.PixelHeight())
	cam.Lerp = w.physics.Camera.Lerp
	return cam
}

// Update advances the world by one tick of rawDT seconds.
func (w *World) Update(rawDT float64) {
	if w.stage == nil || w.Player == nil {
		return
	}
	dt := w.step(rawDT)
	ctx := w.context(dt)

	if ctx.Input != nil {
		ctx.Input.Poll()
	}
	if w.opts.Overlay != nil && w.opts.Overlay.Blocking() {
		return
	}
	w.tick++

	// NPCs
	for _, n := range w.NPCs {
		n.Update(dt)
	}
	w.collision.CheckNPCInteract(w.NPCs, w.Player, ctx)
	w.NPCs = filterActive(w.NPCs)
	ctx.NPCs = w.NPCs

	// Player
	w.players.Update(w.Player, ctx, dt)
	w.camera.Follow(w.Player.Bounds(), dt)
	w.collision.ResolvePlayer(w.Player, ctx)

	for _, l := range w.Layers {
		l.Update(dt)
	}

	w.updateEnemies(ctx, dt)
	w.updateItems(ctx, dt)
	w.updateProjectiles(ctx, dt)
	w.updateHazards(ctx, dt)

	if w.Flag != nil {
		w.collision.CheckFlagContact(w.Flag, w.Player, ctx)
	}

	w.events.Dispatch()

	w.stats.Elapsed += dt
	if w.opts.HUD != nil {
		w.opts.HUD.UpdateStats(w.Stats())
	}

	w.checkGameOver()
}

// step clamps the frame delta and applies the time scale
func (w *World) step(raw float64) float64 {
	if raw < 0 {
		raw = 0
	}
	if limit := w.physics.World.MaxDelta; limit > 0 && raw > limit {
		raw = limit
	}
	scale := w.physics.World.TimeScale
	if scale <= 0 {
		scale = 1
	}
	return raw * scale
}

func (w *World) updateEnemies(ctx *system.Context, dt float64) {
	n := len(w.Enemies)
	for i := 0; i < n; i++ {
		e := w.Enemies[i]
		if e.Active {
			w.enemies.Update(e, w.Player, ctx, dt)
			w.collision.UpdateEnemyPhysics(e, ctx)
		}
		if !e.Active && e.ClaimDefeat() {
			w.stats.Defeated++
			ctx.Emit(event.Event{
				Type:     event.EnemyDefeated,
				EntityID: e.ID,
				Kind:     e.Kind,
				Subtype:  string(e.Archetype),
				X:        e.X,
				Y:        e.Y,
			})
		}
	}
	w.Enemies = filterActive(w.Enemies)
	ctx.Enemies = w.Enemies
}

func (w *World) updateItems(ctx *system.Context, dt float64) {
	n := len(w.Items)
	for i := 0; i < n; i++ {
		it := w.Items[i]
		it.Update(dt)
		w.collision.UpdateItemPhysics(it, w.Player, ctx)
	}
	w.collision.CollectItems(w.Items, w.Player, ctx)
	w.Items = filterActive(w.Items)
	ctx.Items = w.Items
}

func (w *World) updateProjectiles(ctx *system.Context, dt float64) {
	n := len(w.Projectiles)
	for i := 0; i < n; i++ {
		pr := w.Projectiles[i]
		pr.Update(dt)
		w.collision.UpdateProjectilePhysics(pr, ctx)
	}
	w.Projectiles = filterActive(w.Projectiles)
}

func (w *World) updateHazards(ctx *system.Context, dt float64) {
	n := len(w.Hazards)
	for i := 0; i < n; i++ {
		w.Hazards[i].Update(dt)
	}
	w.collision.CheckHazardContact(w.Hazards, w.Player, ctx)
	w.Hazards = filterActive(w.Hazards)
	ctx.Hazards = w.Hazards
}

// checkGameOver raises GameOver once, the first tick the player is dead
func (w *World) checkGameOver() {
	if w.gameOver || !w.Player.Health.Dead() {
		return
	}
	w.gameOver = true
	w.events.Push(event.Event{
		Type:     event.GameOver,
		EntityID: w.Player.ID,
		Kind:     w.Player.Kind,
		X:        w.Player.X,
		Y:        w.Player.Y,
	})
	w.events.Dispatch()
	w.transition(state.StateGameOver)
	w.Player.Deactivate()
	w.logf("world: game over at tick %d", w.tick)
}

func (w *World) transition(to state.GameState) {
	if w.opts.States == nil {
		return
	}
	w.opts.States.Transition(to)
}

// context assembles the per-tick service bundle
func (w *World) context(dt float64) *system.Context {
	return &system.Context{
		Physics:       w.physics,
		Factory:       w.factory,
		Stage:         w.stage,
		Static:        w.static,
		DT:            dt,
		Player:        w.Player,
		Enemies:       w.Enemies,
		Items:         w.Items,
		Hazards:       w.Hazards,
		NPCs:          w.NPCs,
		Flag:          w.Flag,
		Audio:         w.opts.Audio,
		Input:         w.opts.Input,
		Overlay:       w.opts.Overlay,
		HUD:           w.opts.HUD,
		States:        w.opts.States,
		Log:           w.opts.Log,
		Rand:          w.rng,
		Events:        w.events,
		Spawner:       w,
		OnHitstop:     w.OnHitstop,
		OnScreenShake: w.OnScreenShake,
	}
}

func (w *World) logf(format string, args ...any) {
	if w.opts.Log == nil {
		return
	}
	w.opts.Log.Printf(format, args...)
}

// filterActive returns the still-active entities in their original order.
// The input slice is left untouched.
func filterActive[T interface{ IsActive() bool }](in []T) []T {
	out := make([]T, 0, len(in))
	for _, e := range in {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out
}

// Stats returns the current summary
func (w *World) Stats() Stats {
	s := w.stats
	if p := w.Player; p != nil {
		s.Coins = p.Coins
		s.Ammo = p.Ammo
		s.MaxAmmo = p.MaxAmmo
		s.Health = p.Health.Current
		s.MaxHealth = p.Health.Max
	}
	return s
}

// Events returns the lifecycle event queue for subscription
func (w *World) Events() *event.Queue { return w.events }

// Camera returns the stage camera, nil before Load
func (w *World) Camera() *entity.Camera { return w.camera }

// Stage returns the tile stage, nil before Load
func (w *World) Stage() *entity.Stage { return w.stage }

// StageConfig returns the config the stage was loaded from
func (w *World) StageConfig() *config.StageConfig { return w.stageCfg }

// Physics returns the physics config in use
func (w *World) Physics() *config.PhysicsConfig { return w.physics }

// Tick returns how many ticks have run since Load
func (w *World) Tick() int { return w.tick }

// GameOver reports whether the player has died
func (w *World) GameOver() bool { return w.gameOver }

// StageClear reports whether the flag was reached
func (w *World) StageClear() bool { return w.stageClear }

// StageName returns the stage id, or "" before Load
func (w *World) StageName() string {
	if w.stageCfg == nil {
		return ""
	}
	return w.stageCfg.ID
}

// SetInput replaces the input source. Replays swap it in before the first tick.
func (w *World) SetInput(in system.Input) { w.opts.Input = in }

// SetSeed changes the seed used by the next Load
func (w *World) SetSeed(seed int64) { w.opts.Seed = seed }

// Seed returns the seed of the loaded run
func (w *World) Seed() int64 { return w.opts.Seed }
