// Package scene defines the screens the ebiten loop can show.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. game.Game owns the active scene and
// forwards the ebiten callbacks to it.
type Scene interface {
	// Update advances the scene by a fixed step of dt seconds. A non-nil
	// next scene replaces this one; an error stops the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes active.
	OnEnter()

	// OnExit runs when the scene is replaced or the game quits.
	OnExit()
}
