package main

import (
	"fmt"
	"log"

	"github.com/younwookim/luckie/internal/application/replay"
	"github.com/younwookim/luckie/internal/application/world"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// replayResult summarizes a headless playback
type replayResult struct {
	Stage      string
	Seed       int64
	Frames     int
	Snapshot   *world.Snapshot
	Stats      world.Stats
	GameOver   bool
	StageClear bool
}

func (r replayResult) String() string {
	outcome := "running"
	switch {
	case r.GameOver:
		outcome = "game over"
	case r.StageClear:
		outcome = "stage clear"
	}
	return fmt.Sprintf("stage=%s seed=%d frames=%d ticks=%d outcome=%q coins=%d defeated=%d elapsed=%.2fs player=(%.2f, %.2f)",
		r.Stage, r.Seed, r.Frames, r.Snapshot.Tick, outcome, r.Stats.Coins, r.Stats.Defeated, r.Stats.Elapsed,
		r.Snapshot.Player.X, r.Snapshot.Player.Y)
}

// replayFile loads a recording and its stage, then runs it
func replayFile(cfg *config.GameConfig, loader *config.Loader, filename string, logger *log.Logger) (replayResult, error) {
	data, err := replay.LoadReplay(filename)
	if err != nil {
		return replayResult{}, err
	}
	stageCfg, err := loader.LoadStage(data.Stage)
	if err != nil {
		return replayResult{}, err
	}
	return runReplay(cfg, stageCfg, *data, logger)
}

// runReplay drives a fresh world with the recorded input until the
// recording ends. The replayer also stands in for the overlay, so ticks
// that were blocked by a dialog are skipped again.
func runReplay(cfg *config.GameConfig, stageCfg *config.StageConfig, data replay.ReplayData, logger *log.Logger) (replayResult, error) {
	if len(data.Frames) == 0 {
		return replayResult{}, replay.ErrNoFrames
	}
	if stageCfg == nil || stageCfg.ID != data.Stage {
		return replayResult{}, fmt.Errorf("recording is for stage %q", data.Stage)
	}

	r := replay.NewReplayer(data)
	w := world.New(cfg, world.Options{
		Input:   r,
		Overlay: r,
		Log:     logger,
		Seed:    data.Seed,
	})
	if err := w.Load(stageCfg); err != nil {
		return replayResult{}, err
	}

	dt := 1.0 / 60.0
	if fps := cfg.Physics.Display.Framerate; fps > 0 {
		dt = 1.0 / float64(fps)
	}
	for !r.Done() {
		w.Update(dt)
	}

	return replayResult{
		Stage:      data.Stage,
		Seed:       data.Seed,
		Frames:     r.CurrentFrame(),
		Snapshot:   w.Snapshot(),
		Stats:      w.Stats(),
		GameOver:   w.GameOver(),
		StageClear: w.StageClear(),
	}, nil
}
