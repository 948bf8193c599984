package main

import (
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminals report presses but never releases, so a key counts as held
// for keyTimeout after its last press (auto-repeat keeps it alive).
const keyTimeout = 150 * time.Millisecond

// World pixels per terminal cell
const (
	cellW = 4.0
	cellH = 8.0
)

type action int

const (
	actLeft action = iota
	actRight
	actJump
	actDash
	actThrow
	actInteract
)

// cellSetter is the part of tcell.Screen the surface draws through
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// cells draws world rectangles as coloured terminal cells
type cells struct {
	dst        cellSetter
	cols, rows int
}

func newCells(dst cellSetter, cols, rows int) *cells {
	return &cells{dst: dst, cols: cols, rows: rows}
}

// FillRect implements entity.Surface. Translucent fills are skipped.
func (c *cells) FillRect(x, y, w, h float64, col color.RGBA) {
	if col.A < 0x80 || w <= 0 || h <= 0 {
		return
	}
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
	x0, y0 := int(x/cellW), int(y/cellH)
	x1, y1 := int((x+w-1)/cellW), int((y+h-1)/cellH)
	for cy := max(y0, 0); cy <= y1 && cy < c.rows; cy++ {
		for cx := max(x0, 0); cx <= x1 && cx < c.cols; cx++ {
			c.dst.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// DrawSprite implements entity.Surface. There is no art in a terminal.
func (c *cells) DrawSprite(string, int, float64, float64, bool, float64) bool {
	return false
}

// text writes s at a cell position
func (c *cells) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i >= c.cols {
			return
		}
		c.dst.SetContent(x+i, y, r, nil, style)
	}
}

// termKeys implements system.Input from terminal key events
type termKeys struct {
	now      func() time.Time
	lastSeen map[action]time.Time
	pending  map[action]int

	held      [4]bool
	actions   int
	interacts int
}

func newTermKeys(now func() time.Time) *termKeys {
	if now == nil {
		now = time.Now
	}
	return &termKeys{
		now:      now,
		lastSeen: make(map[action]time.Time),
		pending:  make(map[action]int),
	}
}

// Press records a key event. It reports false for keys the game ignores.
func (k *termKeys) Press(key tcell.Key, r rune) bool {
	a, ok := bindKey(key, r)
	if !ok {
		return false
	}
	switch a {
	case actThrow, actInteract:
		k.pending[a]++
	default:
		k.lastSeen[a] = k.now()
	}
	return true
}

func bindKey(key tcell.Key, r rune) (action, bool) {
	switch key {
	case tcell.KeyLeft:
		return actLeft, true
	case tcell.KeyRight:
		return actRight, true
	case tcell.KeyUp:
		return actJump, true
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return actLeft, true
		case 'd', 'D':
			return actRight, true
		case 'w', 'W', ' ':
			return actJump, true
		case 'k', 'K':
			return actDash, true
		case 'j', 'J':
			return actThrow, true
		case 'e', 'E':
			return actInteract, true
		}
	}
	return 0, false
}

// Poll turns recent presses into held state and queues edge presses
func (k *termKeys) Poll() {
	now := k.now()
	for a := actLeft; a <= actDash; a++ {
		t, ok := k.lastSeen[a]
		k.held[a] = ok && now.Sub(t) < keyTimeout
	}
	k.actions, k.interacts = k.pending[actThrow], k.pending[actInteract]
	k.pending[actThrow], k.pending[actInteract] = 0, 0
}

func (k *termKeys) IsMovingLeft() bool { return k.held[actLeft] }
func (k *termKeys) IsMovingRight() bool { return k.held[actRight] }
func (k *termKeys) IsJumping() bool { return k.held[actJump] }
func (k *termKeys) IsDashing() bool { return k.held[actDash] }

func (k *termKeys) ConsumeActionPress() bool {
	if k.actions == 0 {
		return false
	}
	k.actions--
	return true
}

func (k *termKeys) ConsumeInteractPress() bool {
	if k.interacts == 0 {
		return false
	}
	k.interacts--
	return true
}
