package world

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/application/state"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

const step = 1.0 / 60

const configDir = "../../../cmd/game/configs"

type countingInput struct {
	polls int
}

func (in *countingInput) Poll() { in.polls++ }
func (in *countingInput) IsMovingLeft() bool { return false }
func (in *countingInput) IsMovingRight() bool { return false }
func (in *countingInput) IsJumping() bool { return false }
func (in *countingInput) IsDashing() bool { return false }
func (in *countingInput) ConsumeActionPress() bool { return false }
func (in *countingInput) ConsumeInteractPress() bool { return false }

type fakeOverlay struct{ open bool }

func (o *fakeOverlay) Blocking() bool { return o.open }

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

type recordingHUD struct {
	last  Stats
	calls int
}

func (h *recordingHUD) UpdateStats(s Stats) {
	h.last = s
	h.calls++
}

func loadConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader(configDir).LoadAll()
	require.NoError(t, err)
	return cfg
}

// room returns w×h tile rows with a solid floor row and side walls
func room(w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		switch {
		case y == h-1:
			rows[y] = strings.Repeat("#", w)
		default:
			rows[y] = "#" + strings.Repeat(" ", w-2) + "#"
		}
	}
	return rows
}

func roomFloor(h int) float64 {
	return float64((h - 1) * 16)
}

func testStage(rows []string, spawnX, spawnY int, entities ...config.EntityDescriptor) *config.StageConfig {
	return &config.StageConfig{
		ID:          "test",
		Size:        config.StageSizeConfig{Width: len(rows[0]) * 16, Height: len(rows) * 16, TileSize: 16},
		PlayerSpawn: config.PositionConfig{X: spawnX, Y: spawnY},
		Layers:      config.LayersConfig{Collision: rows},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "wall", Solid: true},
			"=": {Type: "oneway"},
		},
		Entities: entities,
	}
}

func newWorld(t *testing.T, opts Options, stage *config.StageConfig) *World {
	t.Helper()
	w := New(loadConfig(t), opts)
	require.NoError(t, w.Load(stage))
	return w
}

func collect(w *World) *[]event.Event {
	var got []event.Event
	w.Events().SubscribeAll(func(e event.Event) { got = append(got, e) })
	return &got
}

func countType(events []event.Event, typ event.Type) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestWorld_LoadDemo(t *testing.T) {
	loader := config.NewLoader(configDir)
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	stage, err := loader.LoadStage("demo")
	require.NoError(t, err)

	audio := &recordingAudio{}
	w := New(cfg, Options{Audio: audio})
	require.NoError(t, w.Load(stage))

	assert.Equal(t, "demo", w.StageName())
	assert.Len(t, w.Enemies, 4)
	assert.Len(t, w.Items, 4)
	assert.Len(t, w.NPCs, 1)
	require.NotNil(t, w.Flag)
	assert.Equal(t, []string{"music_stage"}, audio.music)

	spikes := 0
	for _, h := range w.Hazards {
		if h.SpawnIndex < 0 {
			spikes++
		}
	}
	assert.Equal(t, 1, spikes, "one merged spike run")

	for i, e := range w.Enemies {
		assert.GreaterOrEqual(t, e.SpawnIndex, 0, "enemy %d", i)
	}
	assert.Equal(t, float64(stage.PlayerSpawn.X), w.Player.X)
}

func TestWorld_LoadErrors(t *testing.T) {
	w := New(loadConfig(t), Options{})
	assert.Error(t, w.Load(nil))

	bad := testStage(room(10, 6), 32, 32, config.EntityDescriptor{Type: "enemy:dragon"})
	err := w.Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dragon")
}

func TestWorld_UpdateBeforeLoad(t *testing.T) {
	w := New(nil, Options{})
	assert.NotPanics(t, func() { w.Update(step) })
	assert.Equal(t, 0, w.Tick())
}

func TestWorld_Gravity(t *testing.T) {
	w := newWorld(t, Options{}, testStage(room(20, 30), 100, 100))
	require.False(t, w.Player.OnGround)

	lastY := w.Player.Y
	for i := 0; i < 10; i++ {
		w.Update(step)
		assert.Greater(t, w.Player.Y, lastY, "tick %d", i)
		lastY = w.Player.Y
	}
	assert.InDelta(t, 300.0, w.Player.VY, 1e-9)
}

func TestWorld_DeltaClamp(t *testing.T) {
	w := newWorld(t, Options{}, testStage(room(20, 30), 100, 100))
	w.Update(1.0)

	// max_delta is 0.05s
	assert.InDelta(t, 1800*0.05, w.Player.VY, 1e-9)
	assert.InDelta(t, 0.05, w.Stats().Elapsed, 1e-9)
}

func TestWorld_OverlaySkipsTick(t *testing.T) {
	in := &countingInput{}
	overlay := &fakeOverlay{open: true}
	hud := &recordingHUD{}
	w := newWorld(t, Options{Input: in, Overlay: overlay, HUD: hud}, testStage(room(20, 30), 100, 100))

	y := w.Player.Y
	w.Update(step)

	assert.Equal(t, 1, in.polls, "input is still polled")
	assert.Equal(t, y, w.Player.Y)
	assert.Equal(t, 0, w.Tick())
	assert.Equal(t, 0, hud.calls)

	overlay.open = false
	w.Update(step)
	assert.Greater(t, w.Player.Y, y)
	assert.Equal(t, 1, w.Tick())
	assert.Equal(t, 1, hud.calls)
}

func TestWorld_CollectionsStayActiveAndOrdered(t *testing.T) {
	rows := room(40, 10)
	floor := roomFloor(10)
	w := newWorld(t, Options{}, testStage(rows, 32, int(floor)-24,
		config.EntityDescriptor{Type: "enemy:grunt", X: 200, Y: floor - 16},
		config.EntityDescriptor{Type: "enemy:grunt", X: 300, Y: floor - 16},
		config.EntityDescriptor{Type: "enemy:grunt", X: 400, Y: floor - 16},
		config.EntityDescriptor{Type: "item:coin", X: 250, Y: floor - 16},
		config.EntityDescriptor{Type: "item:coin", X: 350, Y: floor - 16},
		config.EntityDescriptor{Type: "item:coin", X: 450, Y: floor - 16},
	))
	require.Len(t, w.Enemies, 3)
	require.Len(t, w.Items, 3)

	first, last := w.Enemies[0], w.Enemies[2]
	w.Enemies[1].Deactivate()
	coinA, coinC := w.Items[0], w.Items[2]
	w.Items[1].Deactivate()

	w.Update(step)

	assert.Equal(t, []*entity.Enemy{first, last}, w.Enemies)
	assert.Equal(t, []*entity.Item{coinA, coinC}, w.Items)
	for _, e := range w.Enemies {
		assert.True(t, e.Active)
	}
}

func TestFilterActive(t *testing.T) {
	a := entity.NewItem(entity.ItemCoin, 1, 0, 0, 8, 8)
	b := entity.NewItem(entity.ItemCoin, 1, 10, 0, 8, 8)
	c := entity.NewItem(entity.ItemCoin, 1, 20, 0, 8, 8)
	b.Deactivate()

	in := []*entity.Item{a, b, c}
	out := filterActive(in)

	assert.Equal(t, []*entity.Item{a, c}, out)
	assert.Same(t, b, in[1], "input is not modified")
	assert.Empty(t, filterActive([]*entity.Item{}))
}

func TestWorld_SpawnsJoinCollections(t *testing.T) {
	w := newWorld(t, Options{}, testStage(room(20, 10), 32, 100))

	it := entity.NewItem(entity.ItemCoin, 1, 100, 50, 8, 8)
	w.SpawnItem(it)
	w.SpawnItem(nil)
	pr := entity.NewProjectile(entity.FamilyStraight, nil, entity.OwnerNeutral, 100, 40, 100, 0, 4, 4)
	w.SpawnProjectile(pr)
	h := entity.NewHazard(100, 100, 16, 4, 1)
	w.SpawnHazard(h)

	assert.Contains(t, w.Items, it)
	assert.Len(t, w.Items, 1)
	assert.Contains(t, w.Projectiles, pr)
	assert.Contains(t, w.Hazards, h)
}

func TestWorld_EnemyDefeatedOnce(t *testing.T) {
	floor := roomFloor(10)
	audio := &recordingAudio{}
	hud := &recordingHUD{}
	w := newWorld(t, Options{Audio: audio, HUD: hud, Seed: 7}, testStage(room(40, 10), 32, int(floor)-24,
		config.EntityDescriptor{Type: "enemy:grunt", X: 400, Y: floor - 16},
	))
	got := collect(w)
	require.Len(t, w.Enemies, 1)

	e := w.Enemies[0]
	require.True(t, e.TakeDamage(99, e.X-10))
	require.Equal(t, entity.StateDeath, e.State)

	for i := 0; i < 120; i++ {
		w.Update(step)
	}

	assert.Empty(t, w.Enemies)
	assert.Equal(t, 1, countType(*got, event.EnemyDefeated))
	assert.Equal(t, 1, audio.count("defeat"), "drop table evaluated once")
	assert.Equal(t, 1, hud.last.Defeated)
}

func TestWorld_PatrolToChase(t *testing.T) {
	floor := roomFloor(10)
	w := newWorld(t, Options{}, testStage(room(40, 10), 32, int(floor)-24,
		config.EntityDescriptor{Type: "enemy:grunt", X: 300, Y: floor - 16},
	))
	require.Len(t, w.Enemies, 1)
	e := w.Enemies[0]

	toChase := 0
	prev := e.State
	run := func(n int) {
		for i := 0; i < n; i++ {
			w.Update(step)
			if prev == entity.StatePatrol && e.State == entity.StateChase {
				toChase++
			}
			prev = e.State
		}
	}
	teleport := func(x float64) {
		w.Player.X, w.Player.PrevX = x, x
		w.Player.VX = 0
	}

	run(10)
	assert.Equal(t, entity.StatePatrol, e.State)

	teleport(e.X - 60)
	run(1)
	assert.Equal(t, entity.StateChase, e.State)

	teleport(560)
	run(60)
	assert.Equal(t, entity.StateChase, e.State, "still searching")

	run(40)
	assert.Equal(t, entity.StatePatrol, e.State)
	assert.Equal(t, 1, toChase)
}

func TestWorld_GameOverOnce(t *testing.T) {
	states := state.NewManager(state.StatePlaying)
	w := newWorld(t, Options{States: states}, testStage(room(20, 10), 32, 100))
	got := collect(w)

	w.Player.Health.Current = 0
	for i := 0; i < 3; i++ {
		w.Update(step)
	}

	assert.True(t, w.GameOver())
	assert.Equal(t, 1, countType(*got, event.GameOver))
	assert.Equal(t, state.StateGameOver, states.Current())
	assert.False(t, w.Player.Active)
}

func TestWorld_FlagClearsStage(t *testing.T) {
	floor := roomFloor(10)
	states := state.NewManager(state.StatePlaying)
	w := newWorld(t, Options{States: states}, testStage(room(20, 10), 32, int(floor)-24,
		config.EntityDescriptor{Type: "flag", X: 36, Y: floor - 32},
	))
	got := collect(w)

	w.Update(step)
	w.Update(step)

	assert.True(t, w.StageClear())
	assert.Equal(t, 1, countType(*got, event.FlagReached))
	assert.Equal(t, state.StateStageClear, states.Current())
}

func TestWorld_Snapshot(t *testing.T) {
	floor := roomFloor(10)
	stage := testStage(room(40, 10), 32, int(floor)-24,
		config.EntityDescriptor{Type: "enemy:grunt", X: 300, Y: floor - 16},
		config.EntityDescriptor{Type: "item:coin", X: 200, Y: floor - 16},
		config.EntityDescriptor{Type: "item:coin", X: 400, Y: floor - 16},
	)
	w := newWorld(t, Options{}, stage)
	for i := 0; i < 5; i++ {
		w.Update(step)
	}
	w.Player.Coins = 5
	w.Player.Ammo = 2
	require.True(t, w.Items[0].Collect())
	w.Enemies[0].Health.Current = 1
	w.Update(step)

	snap := w.Snapshot()
	assert.Equal(t, "test", snap.Stage)
	assert.Equal(t, 6, snap.Tick)
	require.Len(t, snap.Entities, 2, "collected coin is gone")

	restored := newWorld(t, Options{}, stage)
	require.NoError(t, restored.ApplySnapshot(snap))

	assert.Len(t, restored.Enemies, 1)
	assert.Equal(t, 1, restored.Enemies[0].Health.Current)
	assert.InDelta(t, w.Enemies[0].X, restored.Enemies[0].X, 1e-9)
	require.Len(t, restored.Items, 1)
	assert.Equal(t, 2, restored.Items[0].SpawnIndex)
	assert.Equal(t, w.Player.X, restored.Player.X)
	assert.Equal(t, 5, restored.Player.Coins)
	assert.Equal(t, 2, restored.Stats().Ammo)
	assert.Equal(t, 6, restored.Tick())
}

func TestWorld_SnapshotStageMismatch(t *testing.T) {
	w := newWorld(t, Options{}, testStage(room(20, 10), 32, 100))
	snap := w.Snapshot()
	snap.Stage = "elsewhere"

	err := w.ApplySnapshot(snap)
	assert.ErrorIs(t, err, ErrStageMismatch)
	assert.Error(t, w.ApplySnapshot(nil))
}

type countingSurface struct {
	fills   int
	sprites int
}

func (s *countingSurface) FillRect(_, _, _, _ float64, _ color.RGBA) { s.fills++ }

func (s *countingSurface) DrawSprite(string, int, float64, float64, bool, float64) bool {
	s.sprites++
	return false
}

func TestWorld_Render(t *testing.T) {
	floor := roomFloor(10)
	w := newWorld(t, Options{}, testStage(room(20, 10), 32, int(floor)-24,
		config.EntityDescriptor{Type: "enemy:grunt", X: 120, Y: floor - 16},
	))
	surface := &countingSurface{}

	w.Render(surface)

	assert.Positive(t, surface.fills)
	assert.True(t, w.Player.AssetMissing, "no sprite loader, falls back to a placeholder")

	before := surface.sprites
	w.Render(surface)
	assert.Equal(t, before, surface.sprites, "missing art is not retried")

	assert.NotPanics(t, func() { w.Render(nil) })
}
