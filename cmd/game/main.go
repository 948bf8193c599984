package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/luckie/cmd/game/configs"
	"github.com/younwookim/luckie/internal/application/game"
	"github.com/younwookim/luckie/internal/application/scene/playing"
	"github.com/younwookim/luckie/internal/infrastructure/audio"
	"github.com/younwookim/luckie/internal/infrastructure/config"
	"github.com/younwookim/luckie/internal/infrastructure/inspector"
	"github.com/younwookim/luckie/internal/infrastructure/savestore"
)

// options holds the parsed command line
type options struct {
	configDir string
	stage     string
	record    string
	replay    string
	inspect   string
	save      string
	seed      int64
	mute      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Read configs from this directory instead of the embedded set")
	flag.StringVar(&opts.stage, "stage", "demo", "Stage to play")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json.zst)")
	flag.StringVar(&opts.replay, "replay", "", "Play a recording headlessly, print the result and exit")
	flag.StringVar(&opts.inspect, "inspect", "", "Stream snapshots over websocket on a loopback address (e.g., 127.0.0.1:8089)")
	flag.StringVar(&opts.save, "save", defaultSavePath(), "Save database path, empty to disable saves")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed, 0 picks one from the clock")
	flag.BoolVar(&opts.mute, "mute", false, "Disable audio output")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Fatal(err)
	}
}

// run loads everything, then either replays headlessly or opens the window.
// Deferred cleanup always runs before an error reaches main.
func run(opts options, out io.Writer, logger *log.Logger) error {
	loader := newLoader(opts.configDir).WithLogger(logger)
	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.replay != "" {
		res, err := replayFile(cfg, loader, opts.replay, logger)
		if err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}
		fmt.Fprintln(out, res)
		return nil
	}

	stageCfg, err := loader.LoadStage(opts.stage)
	if err != nil {
		return fmt.Errorf("failed to load stage: %w", err)
	}

	bank := audio.NewBank(cfg.Entities.Audio, logger)
	if !opts.mute {
		// silent on failure
		_ = bank.Init()
	}
	defer bank.Close()

	var store *savestore.Store
	if opts.save != "" {
		store, err = savestore.Open(opts.save, logger)
		if err != nil {
			logger.Printf("saves disabled: %v", err)
		} else {
			defer store.Close()
		}
	}

	var hub *inspector.Hub
	if opts.inspect != "" {
		hub = inspector.NewHub(logger)
		srv := &http.Server{
			Addr:              opts.inspect,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("inspector: %v", err)
			}
		}()
		defer func() {
			hub.Close()
			_ = srv.Close()
		}()
		logger.Printf("inspector listening on http://%s/ws", opts.inspect)
	}

	scene, err := playing.New(cfg, stageCfg, playing.Options{
		Audio:      bank,
		Store:      store,
		Hub:        hub,
		RecordPath: opts.record,
		Seed:       opts.seed,
		Log:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)
	if display.Framerate > 0 {
		g.SetDT(1.0 / float64(display.Framerate))
		ebiten.SetTPS(display.Framerate)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		g.Quit()
	}()

	ebiten.SetWindowSize(display.ScreenWidth*max(display.Scale, 1), display.ScreenHeight*max(display.Scale, 1))
	ebiten.SetWindowTitle(display.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// newLoader reads configs from dir, or from the embedded set when dir is empty
func newLoader(dir string) *config.Loader {
	if dir != "" {
		return config.NewLoader(dir)
	}
	return config.NewFSLoader(configs.FS, ".")
}

func defaultSavePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "luckie", "saves.db")
}
