package entity

import (
	"math"

	"github.com/younwookim/luckie/internal/domain/collision"
)

// Camera tracks a target and clamps the view to the stage bounds.
type Camera struct {
	X, Y           float64
	ViewW, ViewH   float64
	WorldW, WorldH float64

	// Lerp is the fraction of the remaining distance covered per 60Hz frame.
	// Zero or one snaps.
	Lerp float64

	ShakeX, ShakeY float64
}

// NewCamera creates a camera for a view and world size
func NewCamera(viewW, viewH, worldW, worldH float64) *Camera {
	return &Camera{ViewW: viewW, ViewH: viewH, WorldW: worldW, WorldH: worldH}
}

// Follow centers the view on target
func (c *Camera) Follow(target collision.Rect, dt float64) {
	tx := target.CenterX() - c.ViewW/2
	ty := target.CenterY() - c.ViewH/2

	if c.Lerp > 0 && c.Lerp < 1 {
		k := 1 - math.Pow(1-c.Lerp, dt*referenceFPS)
		c.X += (tx - c.X) * k
		c.Y += (ty - c.Y) * k
	} else {
		c.X, c.Y = tx, ty
	}
	c.clamp()
}

// Snap centers the view on target immediately
func (c *Camera) Snap(target collision.Rect) {
	c.X = target.CenterX() - c.ViewW/2
	c.Y = target.CenterY() - c.ViewH/2
	c.clamp()
}

func (c *Camera) clamp() {
	maxX := c.WorldW - c.ViewW
	maxY := c.WorldH - c.ViewH
	if c.X > maxX {
		c.X = maxX
	}
	if c.Y > maxY {
		c.Y = maxY
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.Y < 0 {
		c.Y = 0
	}
}

// View returns the visible world rectangle
func (c *Camera) View() collision.Rect {
	return collision.Rect{X: c.X, Y: c.Y, W: c.ViewW, H: c.ViewH}
}

// Visible reports whether r intersects the view
func (c *Camera) Visible(r collision.Rect) bool {
	return collision.RectangleCollision(c.View(), r)
}

// ToScreen converts world coordinates to screen coordinates, including shake
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	return x - c.X + c.ShakeX, y - c.Y + c.ShakeY
}
