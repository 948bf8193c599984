package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keyboard reads ebiten key state once per Poll.
//
//	A/D or arrows  move
//	W/Space/Up     jump
//	Shift          dash
//	J or click     throw
//	E              interact
type Keyboard struct {
	left, right, jump, dash bool

	// presses seen this poll and not yet consumed
	actions   int
	interacts int
}

// NewKeyboard creates a keyboard input
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Poll samples the keyboard. Presses not consumed by the previous tick
// are dropped.
func (k *Keyboard) Poll() {
	k.left = anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft)
	k.right = anyPressed(ebiten.KeyD, ebiten.KeyArrowRight)
	k.jump = anyPressed(ebiten.KeyW, ebiten.KeySpace, ebiten.KeyArrowUp)
	k.dash = anyPressed(ebiten.KeyShiftLeft, ebiten.KeyShiftRight)

	k.actions = 0
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		k.actions = 1
	}
	k.interacts = 0
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		k.interacts = 1
	}
}

func (k *Keyboard) IsMovingLeft() bool { return k.left }
func (k *Keyboard) IsMovingRight() bool { return k.right }
func (k *Keyboard) IsJumping() bool { return k.jump }
func (k *Keyboard) IsDashing() bool { return k.dash }

// ConsumeActionPress reports a throw press once
func (k *Keyboard) ConsumeActionPress() bool {
	if k.actions == 0 {
		return false
	}
	k.actions--
	return true
}

// ConsumeInteractPress reports an interact press once
func (k *Keyboard) ConsumeInteractPress() bool {
	if k.interacts == 0 {
		return false
	}
	k.interacts--
	return true
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
