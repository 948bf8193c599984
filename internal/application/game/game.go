// Package game drives the active Scene from the ebiten loop.
package game

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/luckie/internal/application/scene"
)

// Game implements ebiten.Game and switches between scenes.
type Game struct {
	current scene.Scene
	width   int
	height  int
	dt      float64
	frames  uint64

	quit atomic.Bool
}

// New creates a Game showing initial. OnEnter is called immediately.
func New(initial scene.Scene, width, height int) *Game {
	g := &Game{
		current: initial,
		width:   width,
		height:  height,
		dt:      1.0 / 60.0,
	}
	g.current.OnEnter()
	return g
}

// Update implements ebiten.Game. A scene returning a successor is exited
// and the successor entered before the next frame.
func (g *Game) Update() error {
	if g.quit.Load() {
		g.current.OnExit()
		return ebiten.Termination
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	g.frames++

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout implements ebiten.Game with a fixed logical resolution
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Quit asks the loop to exit the current scene and stop at the next
// Update. Safe to call from another goroutine.
func (g *Game) Quit() {
	g.quit.Store(true)
}

// SetDT sets the fixed step handed to scenes
func (g *Game) SetDT(dt float64) {
	if dt > 0 {
		g.dt = dt
	}
}

// Frames returns how many updates reached the scene
func (g *Game) Frames() uint64 { return g.frames }

// Current returns the active scene
func (g *Game) Current() scene.Scene { return g.current }
