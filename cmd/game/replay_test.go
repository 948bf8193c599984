package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/luckie/internal/application/replay"
	"github.com/younwookim/luckie/internal/application/world"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// scripted plays a fixed input pattern keyed on the poll count and
// blocks the world for a stretch, like an open dialog would.
type scripted struct {
	frame   int
	actions int
}

func (s *scripted) Poll() {
	s.frame++
	s.actions = 0
	if s.frame == 50 || s.frame == 70 {
		s.actions = 1
	}
}

func (s *scripted) IsMovingLeft() bool { return s.frame > 140 }
func (s *scripted) IsMovingRight() bool { return s.frame <= 90 }
func (s *scripted) IsJumping() bool { return s.frame >= 30 && s.frame < 40 }
func (s *scripted) IsDashing() bool { return s.frame == 60 }
func (s *scripted) ConsumeActionPress() bool {
	if s.actions == 0 {
		return false
	}
	s.actions--
	return true
}
func (s *scripted) ConsumeInteractPress() bool { return false }
func (s *scripted) Blocking() bool { return s.frame >= 100 && s.frame < 110 }

func loadDemo(t *testing.T) (*config.GameConfig, *config.Loader, *config.StageConfig) {
	t.Helper()
	loader := newLoader("")
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	stage, err := loader.LoadStage("demo")
	require.NoError(t, err)
	return cfg, loader, stage
}

// liveRun plays the script through a recorder the way the playing scene does
func liveRun(t *testing.T, cfg *config.GameConfig, stage *config.StageConfig, seed int64, ticks int) (*world.World, replay.ReplayData) {
	t.Helper()
	src := &scripted{}
	rec := replay.NewRecorder(src, seed, stage.ID)
	rec.WatchOverlay(src)

	w := world.New(cfg, world.Options{Input: rec, Overlay: src, Seed: seed})
	require.NoError(t, w.Load(stage))
	for i := 0; i < ticks; i++ {
		w.Update(1.0 / 60)
	}
	return w, rec.Data()
}

func TestReplay_IdleIsDeterministic(t *testing.T) {
	cfg, _, stage := loadDemo(t)
	data := replay.IdleData(240, 99, "demo")

	first, err := runReplay(cfg, stage, data, nil)
	require.NoError(t, err)
	second, err := runReplay(cfg, stage, data, nil)
	require.NoError(t, err)

	assert.Equal(t, 240, first.Frames)
	assert.Equal(t, first.Snapshot, second.Snapshot)
	assert.True(t, first.Snapshot.Player.Active)
}

func TestReplay_MatchesLiveRun(t *testing.T) {
	cfg, _, stage := loadDemo(t)
	live, data := liveRun(t, cfg, stage, 7, 180)
	require.Len(t, data.Frames, 180)

	blocked := 0
	for _, f := range data.Frames {
		if f.B {
			blocked++
		}
	}
	assert.Equal(t, 10, blocked)
	assert.Equal(t, 170, live.Tick(), "blocked frames do not tick")

	res, err := runReplay(cfg, stage, data, nil)
	require.NoError(t, err)
	assert.Equal(t, live.Snapshot(), res.Snapshot)
	assert.Equal(t, live.Stats(), res.Stats)
}

func TestReplay_SeedMatters(t *testing.T) {
	cfg, _, stage := loadDemo(t)
	_, data := liveRun(t, cfg, stage, 7, 60)

	res, err := runReplay(cfg, stage, data, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Seed)
	assert.Equal(t, 60, res.Frames)
}

func TestReplayFile(t *testing.T) {
	cfg, loader, stage := loadDemo(t)
	live, data := liveRun(t, cfg, stage, 3, 120)

	path := filepath.Join(t.TempDir(), "run.json.zst")
	require.NoError(t, replay.Save(path, data))

	res, err := replayFile(cfg, loader, path, nil)
	require.NoError(t, err)
	assert.Equal(t, live.Snapshot(), res.Snapshot)
	assert.Contains(t, res.String(), "stage=demo")
	assert.Contains(t, res.String(), "frames=120")
}

func TestReplay_Errors(t *testing.T) {
	cfg, loader, stage := loadDemo(t)

	_, err := runReplay(cfg, stage, replay.ReplayData{Stage: "demo"}, nil)
	assert.ErrorIs(t, err, replay.ErrNoFrames)

	_, err = runReplay(cfg, stage, replay.IdleData(10, 1, "elsewhere"), nil)
	assert.Error(t, err)

	_, err = replayFile(cfg, loader, filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
