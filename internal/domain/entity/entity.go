package entity

import (
	"image/color"

	"github.com/younwookim/luckie/internal/domain/collision"
)

// Kind tags which behavior an entity runs
type Kind string

const (
	KindPlayer     Kind = "player"
	KindEnemy      Kind = "enemy"
	KindProjectile Kind = "projectile"
	KindItem       Kind = "item"
	KindHazard     Kind = "hazard"
	KindFlag       Kind = "flag"
	KindNPC        Kind = "npc"
)

// Entity is the shared core of every simulated object.
// Specialised types embed it and add their own state.
type Entity struct {
	ID         EntityID
	SpawnIndex int // index in the stage descriptor list, -1 for runtime spawns
	Kind       Kind

	Body
	Box collision.Box

	Solid  bool
	Active bool

	Health Health
	Anim   Animator

	Sprite       string
	AssetMissing bool
	Color        color.RGBA
	Opacity      float64
}

// NewEntity creates an active entity with the given frame.
func NewEntity(kind Kind, x, y, w, h float64) Entity {
	return Entity{
		SpawnIndex: -1,
		Kind:       kind,
		Body: Body{
			X: x, Y: y, W: w, H: h,
			PrevX: x, PrevY: y,
			FacingRight: true,
		},
		Active:  true,
		Color:   color.RGBA{255, 0, 255, 255},
		Opacity: 1,
	}
}

// Frame implements collision.Shape
func (e *Entity) Frame() (x, y, w, h float64) {
	return e.X, e.Y, e.W, e.H
}

// CollisionBox implements collision.Shape
func (e *Entity) CollisionBox() collision.Box {
	return e.Box
}

// Bounds returns the world-space collision box
func (e *Entity) Bounds() collision.Rect {
	return collision.GetCollisionBounds(e)
}

// PrevBounds returns the collision box at the previous tick's position
func (e *Entity) PrevBounds() collision.Rect {
	b := e.Bounds()
	return b.Offset(e.PrevX-e.X, e.PrevY-e.Y)
}

// Core returns the shared entity, used for identity comparisons.
func (e *Entity) Core() *Entity {
	return e
}

// IsActive is nil-safe
func (e *Entity) IsActive() bool {
	return e != nil && e.Active
}

// Deactivate marks the entity for removal at the end of the tick
func (e *Entity) Deactivate() {
	e.Active = false
}

// SetFeet moves the entity so its collision box bottom sits at y
func (e *Entity) SetFeet(y float64) {
	b := e.Bounds()
	e.Y += y - b.Bottom()
}

// Damageable is implemented by anything a projectile or hazard can hurt.
type Damageable interface {
	collision.Shape
	Core() *Entity
	TakeDamage(amount int, fromX float64) bool
}

// Surface is the drawing target handed to Render. Implementations live with
// the host (ebiten, terminal).
type Surface interface {
	FillRect(x, y, w, h float64, c color.RGBA)
	// DrawSprite draws a sprite frame and reports false when the sprite is unavailable.
	DrawSprite(sheet string, frame int, x, y float64, flip bool, alpha float64) bool
}

// Render draws the entity. Missing art falls back to a solid placeholder.
func (e *Entity) Render(s Surface, cam *Camera) {
	if s == nil || !e.Active {
		return
	}
	x, y := e.X, e.Y
	if cam != nil {
		if !cam.Visible(collision.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}) {
			return
		}
		x, y = cam.ToScreen(x, y)
	}

	if !e.AssetMissing && e.Sprite != "" {
		if s.DrawSprite(e.Sprite, e.Anim.Frame(), x, y, !e.FacingRight, e.Opacity) {
			return
		}
		e.AssetMissing = true
	}
	s.FillRect(x, y, e.W, e.H, Fade(e.Color, e.Opacity))
}

// Fade scales a colour by alpha (pre-multiplied)
func Fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
