// Command termgame runs a stage in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/luckie/cmd/game/configs"
	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/application/system"
	"github.com/younwookim/luckie/internal/application/world"
	"github.com/younwookim/luckie/internal/infrastructure/audio"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// FrameDuration is the target tick interval
const FrameDuration = time.Second / 60

// messageTime is how long a status message stays up
const messageTime = 4 * time.Second

type termGame struct {
	world    *world.World
	stageCfg *config.StageConfig
	keys     *termKeys
	now      func() time.Time

	message      string
	messageUntil time.Time
}

func newTermGame(cfg *config.GameConfig, stageCfg *config.StageConfig, audio system.Audio, seed int64, logger *log.Logger) (*termGame, error) {
	g := &termGame{
		stageCfg: stageCfg,
		now:      time.Now,
	}
	g.keys = newTermKeys(func() time.Time { return g.now() })
	g.world = world.New(cfg, world.Options{
		Audio: audio,
		Input: g.keys,
		Log:   logger,
		Seed:  seed,
	})
	if err := g.world.Load(stageCfg); err != nil {
		return nil, err
	}

	events := g.world.Events()
	events.Subscribe(event.NPCInteract, func(e event.Event) {
		g.say(e.Subtype + ": " + strings.Join(e.Lines, " "))
	})
	events.Subscribe(event.GameOver, func(event.Event) {
		g.say("GAME OVER - r to restart, q to quit")
	})
	events.Subscribe(event.FlagReached, func(event.Event) {
		g.say("STAGE CLEAR - r to play again, q to quit")
	})
	return g, nil
}

func (g *termGame) say(msg string) {
	g.message = msg
	g.messageUntil = g.now().Add(messageTime)
}

// handleKey reports false when the player asked to quit
func (g *termGame) handleKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && r == 'q') {
		return false
	}
	if key == tcell.KeyRune && r == 'r' && (g.world.GameOver() || g.world.StageClear()) {
		if err := g.world.Load(g.stageCfg); err != nil {
			g.say(err.Error())
		}
		g.message = ""
		return true
	}
	g.keys.Press(key, r)
	return true
}

func (g *termGame) frame(dt float64) {
	if dt > 0.1 {
		dt = 0.1
	}
	g.world.Update(dt)
}

func (g *termGame) draw(dst cellSetter) {
	cam := g.world.Camera()
	cols, rows := int(cam.ViewW/cellW), int(cam.ViewH/cellH)
	c := newCells(dst, cols, rows+1)

	c.FillRect(0, 0, cam.ViewW, cam.ViewH, g.world.Background())
	g.world.Render(c)

	s := g.world.Stats()
	hud := fmt.Sprintf("HP %d/%d  Coins %d  Ammo %d/%d  KO %d", s.Health, s.MaxHealth, s.Coins, s.Ammo, s.MaxAmmo, s.Defeated)
	if g.message != "" && g.now().Before(g.messageUntil) {
		hud = g.message
	}
	c.text(0, rows, hud+strings.Repeat(" ", max(cols-len(hud), 0)), tcell.StyleDefault.Reverse(true))
}

func (g *termGame) run(screen tcell.Screen) {
	inputChan := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			inputChan <- ev
		}
	}()

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()
	last := time.Now()

	for {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

	drain:
		for {
			select {
			case ev := <-inputChan:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if !g.handleKey(ev.Key(), ev.Rune()) {
						return
					}
				case *tcell.EventResize:
					screen.Sync()
				}
			default:
				break drain
			}
		}

		g.frame(dt)

		screen.Clear()
		g.draw(screen)
		screen.Show()

		<-ticker.C
	}
}

func main() {
	configDir := flag.String("config", "", "Read configs from this directory instead of the embedded set")
	stageName := flag.String("stage", "demo", "Stage to play")
	seed := flag.Int64("seed", 0, "RNG seed, 0 picks one from the clock")
	mute := flag.Bool("mute", false, "Disable audio output")
	logPath := flag.String("log", "", "Write logs to this file")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "", log.LstdFlags)

	loader := config.NewFSLoader(configs.FS, ".")
	if *configDir != "" {
		loader = config.NewLoader(*configDir)
	}
	loader.WithLogger(logger)
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	stageCfg, err := loader.LoadStage(*stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	bank := audio.NewBank(cfg.Entities.Audio, logger)
	if !*mute {
		_ = bank.Init()
	}
	defer bank.Close()

	g, err := newTermGame(cfg, stageCfg, bank, *seed, logger)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	g.run(screen)
}
