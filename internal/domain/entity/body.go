package entity

import "math"

// referenceFPS is the frame rate friction coefficients are expressed in.
const referenceFPS = 60.0

// Body is the physical state every simulated object carries.
// Positions are pixels, velocities px/s, accelerations and gravity px/s².
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64
	AX, AY float64

	Gravity  float64
	Friction float64 // per 60Hz frame; 1 (or 0) disables decay
	MaxVX    float64 // 0 = unclamped
	MaxVY    float64 // 0 = unclamped

	PrevX, PrevY float64

	OnGround    bool
	FacingRight bool
}

// Integrate advances the body by dt seconds: acceleration, gravity while
// airborne, horizontal friction, velocity clamps, then position.
func (b *Body) Integrate(dt float64) {
	if dt <= 0 {
		return
	}

	b.VX += b.AX * dt
	b.VY += b.AY * dt

	if !b.OnGround && b.Gravity != 0 {
		b.VY += b.Gravity * dt
	}

	if b.Friction > 0 && b.Friction != 1 {
		b.VX *= math.Pow(b.Friction, dt*referenceFPS)
	}

	if b.MaxVX > 0 {
		b.VX = clamp(b.VX, -b.MaxVX, b.MaxVX)
	}
	if b.MaxVY > 0 {
		b.VY = clamp(b.VY, -b.MaxVY, b.MaxVY)
	}

	b.PrevX, b.PrevY = b.X, b.Y
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Speed returns the magnitude of the velocity
func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Center returns the center of the visual frame
func (b *Body) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Stop zeroes velocity and acceleration
func (b *Body) Stop() {
	b.VX, b.VY = 0, 0
	b.AX, b.AY = 0, 0
}

// Face updates FacingRight from a horizontal direction; zero keeps the current facing.
func (b *Body) Face(dir float64) {
	if dir > 0 {
		b.FacingRight = true
	} else if dir < 0 {
		b.FacingRight = false
	}
}

// Dir returns 1 when facing right and -1 otherwise
func (b *Body) Dir() float64 {
	if b.FacingRight {
		return 1
	}
	return -1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
