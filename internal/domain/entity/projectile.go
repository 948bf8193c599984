package entity

import (
	"math"

	"github.com/younwookim/luckie/internal/domain/collision"
)

// OwnerType decides which targets a projectile scans
type OwnerType int

const (
	OwnerNeutral OwnerType = iota
	OwnerPlayer
	OwnerEnemy
)

// String returns the string representation of the owner type
func (o OwnerType) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// Family is the flight model of a projectile
type Family int

const (
	FamilyStraight Family = iota
	FamilyBouncing
)

// Projectile represents a projectile entity (arrows, globs, rocks)
type Projectile struct {
	Entity

	Owner     *Entity // not owned; may be inactive or nil
	OwnerType OwnerType
	Family    Family

	DirX, DirY float64
	Damage     int
	Piercing   bool

	Lifetime float64 // 0 = unlimited
	Age      float64

	hits map[*Entity]struct{}

	// Bouncing
	Bounces        int
	MaxBounces     int
	MinBounceSpeed float64
	Restitution    float64
	BounceFriction float64
	Disintegrated  bool

	// Stuck (straight projectiles in a wall)
	Stuck         bool
	StuckRotation float64

	Fading       bool
	FadeTimer    float64
	FadeDuration float64
}

// NewProjectile creates a projectile travelling at (vx, vy)
func NewProjectile(family Family, owner *Entity, ownerType OwnerType, x, y, vx, vy, w, h float64) *Projectile {
	p := &Projectile{
		Entity:       NewEntity(KindProjectile, x, y, w, h),
		Owner:        owner,
		OwnerType:    ownerType,
		Family:       family,
		FadeDuration: 0.5,
		Restitution:  0.5,
		hits:         make(map[*Entity]struct{}),
	}
	p.VX, p.VY = vx, vy
	p.Friction = 1
	p.Face(vx)
	p.UpdateDirection()
	return p
}

// UpdateDirection derives the unit direction from velocity
func (p *Projectile) UpdateDirection() {
	speed := p.Speed()
	if speed == 0 {
		return
	}
	p.DirX = p.VX / speed
	p.DirY = p.VY / speed
}

// CanHit reports whether target is a legal hit for this projectile.
func (p *Projectile) CanHit(target *Entity) bool {
	if !p.Active || p.Fading || target == nil || !target.Active {
		return false
	}
	if p.Owner != nil && target == p.Owner {
		return false
	}
	if _, hit := p.hits[target]; hit {
		return false
	}
	return true
}

// RegisterHit records target in the hit set
func (p *Projectile) RegisterHit(target *Entity) {
	if p.hits == nil {
		p.hits = make(map[*Entity]struct{})
	}
	p.hits[target] = struct{}{}
}

// Update advances age, fade and flight
func (p *Projectile) Update(dt float64) {
	if !p.Active {
		return
	}

	if p.Fading {
		p.FadeTimer += dt
		p.Opacity = p.Alpha()
		if p.FadeTimer >= p.FadeDuration {
			p.Active = false
		}
		return
	}

	p.Age += dt
	if p.Lifetime > 0 && p.Age >= p.Lifetime {
		if p.Family == FamilyBouncing {
			p.StartFade()
		} else {
			p.Active = false
		}
		return
	}

	p.Integrate(dt)
	p.UpdateDirection()
	p.Anim.Update(dt)
}

// StartFade begins the fade-out; the projectile deactivates when it ends.
func (p *Projectile) StartFade() {
	if p.Fading {
		return
	}
	p.Fading = true
	p.FadeTimer = 0
	if p.FadeDuration <= 0 {
		p.Active = false
	}
}

// StickToWall pins a straight projectile where it hit and fades it out
func (p *Projectile) StickToWall() {
	p.StuckRotation = math.Atan2(p.VY, p.VX)
	p.Stuck = true
	p.Stop()
	p.Gravity = 0
	p.StartFade()
}

// Disintegrate ends a bouncing projectile: stop, optionally pin to a floor
// top, and fade out.
func (p *Projectile) Disintegrate(floor *collision.Rect) {
	p.Stop()
	p.Gravity = 0
	if floor != nil {
		p.SetFeet(floor.Y)
	}
	p.Disintegrated = true
	p.StartFade()
}

// Bounce reflects the velocity off the given face of an obstacle and moves
// the projectile out of it. It reports false and disintegrates when the
// projectile is too slow, has used its bounces, or the face is unknown.
func (p *Projectile) Bounce(side collision.Side, obstacle collision.Rect) bool {
	if p.Speed() < p.MinBounceSpeed {
		p.disintegrateOn(side, obstacle)
		return false
	}
	if side == collision.SideNone || p.Bounces >= p.MaxBounces {
		p.disintegrateOn(side, obstacle)
		return false
	}

	b := p.Bounds()
	switch side {
	case collision.SideTop:
		p.Y -= b.Bottom() - obstacle.Y
		p.VY = -p.VY * p.Restitution
		p.VX *= p.BounceFriction
	case collision.SideBottom:
		p.Y += obstacle.Bottom() - b.Y
		p.VY = -p.VY * p.Restitution
		p.VX *= p.BounceFriction
	case collision.SideLeft:
		p.X -= b.Right() - obstacle.X
		p.VX = -p.VX * p.Restitution
		p.VY *= p.BounceFriction
	case collision.SideRight:
		p.X += obstacle.Right() - b.X
		p.VX = -p.VX * p.Restitution
		p.VY *= p.BounceFriction
	}
	p.Bounces++
	p.Face(p.VX)
	p.UpdateDirection()
	return true
}

func (p *Projectile) disintegrateOn(side collision.Side, obstacle collision.Rect) {
	if side == collision.SideTop {
		p.Disintegrate(&obstacle)
		return
	}
	p.Disintegrate(nil)
}

// Alpha returns the render alpha, fading linearly over FadeDuration
func (p *Projectile) Alpha() float64 {
	if !p.Fading || p.FadeDuration <= 0 {
		return 1.0
	}
	a := 1.0 - p.FadeTimer/p.FadeDuration
	if a < 0 {
		return 0
	}
	return a
}

// Rotation returns the rotation angle based on velocity vector
func (p *Projectile) Rotation() float64 {
	if p.Stuck {
		return p.StuckRotation
	}
	return math.Atan2(p.VY, p.VX)
}
