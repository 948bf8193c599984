package system

import (
	"log"
	"math/rand"

	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/application/factory"
	"github.com/younwookim/luckie/internal/application/state"
	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// Audio plays sound cues
type Audio interface {
	PlaySound(id string, volume float64) error
	PlayMusic(id string, volume float64) error
}

// Input is polled once per tick. Held queries report the current state;
// Consume* queries report true at most once per physical press.
type Input interface {
	Poll()
	IsMovingLeft() bool
	IsMovingRight() bool
	IsJumping() bool
	IsDashing() bool
	ConsumeActionPress() bool
	ConsumeInteractPress() bool
}

// Overlay is a UI layer that can pause the simulation (dialogs)
type Overlay interface {
	Blocking() bool
}

// Stats is the per-tick summary handed to the HUD
type Stats struct {
	Coins     int
	Defeated  int
	Ammo      int
	MaxAmmo   int
	Health    int
	MaxHealth int
	Elapsed   float64
}

// HUD receives stats once per tick
type HUD interface {
	UpdateStats(s Stats)
}

// StateManager owns the top-level game state
type StateManager interface {
	Transition(to state.GameState) bool
}

// Spawner adds entities created mid-tick. They join their collection
// immediately and are updated from the next pass over it.
type Spawner interface {
	SpawnProjectile(p *entity.Projectile)
	SpawnItem(i *entity.Item)
	SpawnHazard(h *entity.Hazard)
}

// Context carries everything an update or collision hook may touch.
// Every capability field may be nil.
type Context struct {
	Physics *config.PhysicsConfig
	Factory *factory.Factory
	Stage   *entity.Stage
	Static  *StaticIndex
	DT      float64 // scaled step of the current tick

	// Re-resolved by the world every tick
	Player  *entity.Player
	Enemies []*entity.Enemy
	Items   []*entity.Item
	Hazards []*entity.Hazard
	NPCs    []*entity.NPC
	Flag    *entity.Flag

	Audio   Audio
	Input   Input
	Overlay Overlay
	HUD     HUD
	States  StateManager
	Log     *log.Logger
	Rand    *rand.Rand
	Events  *event.Queue
	Spawner Spawner

	OnHitstop     func(frames int)
	OnScreenShake func(intensity float64)
}

// PlaySound plays a cue at its configured volume. Missing audio and
// playback errors are ignored.
func (c *Context) PlaySound(id string) {
	if c == nil || c.Audio == nil {
		return
	}
	_ = c.Audio.PlaySound(id, c.volume(id))
}

// PlayMusic starts a music cue. Missing audio and errors are ignored.
func (c *Context) PlayMusic(id string) {
	if c == nil || c.Audio == nil || id == "" {
		return
	}
	_ = c.Audio.PlayMusic(id, c.volume(id))
}

func (c *Context) volume(id string) float64 {
	if c.Factory != nil {
		if s, ok := c.Factory.Entities().Audio[id]; ok && s.Volume > 0 {
			return s.Volume
		}
	}
	return 1
}

// Logf logs through the context logger when one is set
func (c *Context) Logf(format string, args ...any) {
	if c == nil || c.Log == nil {
		return
	}
	c.Log.Printf(format, args...)
}

// Roll returns a number in [0,1)
func (c *Context) Roll() float64 {
	if c == nil || c.Rand == nil {
		return rand.Float64()
	}
	return c.Rand.Float64()
}

// Emit queues an event for end-of-tick dispatch
func (c *Context) Emit(e event.Event) {
	if c == nil {
		return
	}
	c.Events.Push(e)
}

// Hitstop requests a freeze of the configured length
func (c *Context) Hitstop() {
	if c == nil || c.OnHitstop == nil || c.Physics == nil || !c.Physics.Feedback.Hitstop.Enabled {
		return
	}
	c.OnHitstop(c.Physics.Feedback.Hitstop.Frames)
}

// Shake requests a screen shake scaled from the configured intensity
func (c *Context) Shake(scale float64) {
	if c == nil || c.OnScreenShake == nil || c.Physics == nil || !c.Physics.Feedback.ScreenShake.Enabled {
		return
	}
	c.OnScreenShake(c.Physics.Feedback.ScreenShake.Intensity * scale)
}

// Gravity returns the configured world gravity
func (c *Context) Gravity() float64 {
	if c == nil || c.Physics == nil {
		return 0
	}
	return c.Physics.Physics.Gravity
}

// solids returns static solid rectangles near r
func (c *Context) solids(r collision.Rect) []collision.Rect {
	if c.Static != nil {
		return c.Static.Solids(r)
	}
	if c.Stage != nil {
		return c.Stage.SolidRects()
	}
	return nil
}

// platforms returns every static standable surface near r
func (c *Context) platforms(r collision.Rect) []collision.Rect {
	if c.Static != nil {
		return c.Static.Platforms(r)
	}
	if c.Stage != nil {
		return c.Stage.Platforms()
	}
	return nil
}

// oneWays returns one-way platforms near r
func (c *Context) oneWays(r collision.Rect) []collision.Rect {
	if c.Static != nil {
		return c.Static.OneWays(r)
	}
	if c.Stage != nil {
		return c.Stage.OneWayRects()
	}
	return nil
}
