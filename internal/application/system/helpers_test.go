package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/application/factory"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

const step = 1.0 / 60

// scriptedInput is a keyboard stand-in. Presses queue up for the Consume queries.
type scriptedInput struct {
	left, right, jump, dash bool
	actions, interacts      int
}

func (in *scriptedInput) Poll() {}
func (in *scriptedInput) IsMovingLeft() bool { return in.left }
func (in *scriptedInput) IsMovingRight() bool { return in.right }
func (in *scriptedInput) IsJumping() bool { return in.jump }
func (in *scriptedInput) IsDashing() bool { return in.dash }
func (in *scriptedInput) ConsumeActionPress() bool {
	if in.actions == 0 {
		return false
	}
	in.actions--
	return true
}
func (in *scriptedInput) ConsumeInteractPress() bool {
	if in.interacts == 0 {
		return false
	}
	in.interacts--
	return true
}

type recordingSpawner struct {
	projectiles []*entity.Projectile
	items       []*entity.Item
	hazards     []*entity.Hazard
}

func (s *recordingSpawner) SpawnProjectile(p *entity.Projectile) { s.projectiles = append(s.projectiles, p) }
func (s *recordingSpawner) SpawnItem(i *entity.Item) { s.items = append(s.items, i) }
func (s *recordingSpawner) SpawnHazard(h *entity.Hazard) { s.hazards = append(s.hazards, h) }

type recordingAudio struct {
	sounds []string
	music  []string
}

func (a *recordingAudio) PlaySound(id string, _ float64) error {
	a.sounds = append(a.sounds, id)
	return nil
}

func (a *recordingAudio) PlayMusic(id string, _ float64) error {
	a.music = append(a.music, id)
	return nil
}

func (a *recordingAudio) count(id string) int {
	n := 0
	for _, s := range a.sounds {
		if s == id {
			n++
		}
	}
	return n
}

type fixture struct {
	ctx     *Context
	input   *scriptedInput
	spawner *recordingSpawner
	audio   *recordingAudio
	events  []event.Event
}

func loadConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader("../../../cmd/game/configs").LoadAll()
	require.NoError(t, err)
	return cfg
}

// newFixture builds a context over a floored test stage
func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := loadConfig(t)
	f := &fixture{
		input:   &scriptedInput{},
		spawner: &recordingSpawner{},
		audio:   &recordingAudio{},
	}
	stage := floorStage(20, 8)
	f.ctx = &Context{
		Physics: cfg.Physics,
		Factory: factory.New(cfg),
		Stage:   stage,
		Static:  NewStaticIndex(stage, 32),
		DT:      step,
		Audio:   f.audio,
		Input:   f.input,
		Rand:    rand.New(rand.NewSource(1)),
		Events:  event.NewQueue(),
		Spawner: f.spawner,
	}
	f.ctx.Events.SubscribeAll(func(e event.Event) { f.events = append(f.events, e) })
	return f
}

// dispatch flushes queued events into f.events
func (f *fixture) dispatch() []event.Event {
	f.ctx.Events.Dispatch()
	return f.events
}

// floorStage is w×h tiles of 16px with a solid bottom row and side walls
func floorStage(w, h int) *entity.Stage {
	tiles := make([][]entity.Tile, h)
	for y := range tiles {
		tiles[y] = make([]entity.Tile, w)
		for x := range tiles[y] {
			if y == h-1 || x == 0 || x == w-1 {
				tiles[y][x] = entity.Tile{Type: entity.TileWall, Solid: true}
			}
		}
	}
	return &entity.Stage{Width: w, Height: h, TileSize: 16, Tiles: tiles}
}

// floorY is the top of the floor row of floorStage(_, h)
func floorY(h int) float64 {
	return float64((h - 1) * 16)
}

// standOn places e with its collision box resting on y
func standOn(e *entity.Entity, y float64) {
	e.SetFeet(y)
	e.PrevX, e.PrevY = e.X, e.Y
	e.VY = 0
	e.OnGround = true
}
