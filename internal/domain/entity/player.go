package entity

import (
	"image/color"

	"github.com/younwookim/luckie/internal/domain/collision"
)

var poisonColor = color.RGBA{0x6a, 0xc2, 0x4a, 0xff}

// Player represents the player entity
type Player struct {
	Entity

	// Timers
	CoyoteTimer     float64
	JumpBufferTimer float64
	DashTimer       float64
	DashCooldown    float64
	AttackCooldown  float64
	StunTimer       float64

	// State
	Dashing        bool
	DoubleJumpUsed bool
	JumpHeld       bool // jump input on the previous tick

	Ammo    int
	MaxAmmo int
	Coins   int

	// Knockback applied by TakeDamage
	KnockbackX   float64
	KnockbackY   float64
	StunDuration float64

	// Poison status
	PoisonTimer    float64
	PoisonInterval float64
	PoisonDamage   int
	poisonTick     float64
}

// NewPlayer creates a new player with default values.
func NewPlayer(x, y, w, h float64, maxHealth int) *Player {
	p := &Player{
		Entity: NewEntity(KindPlayer, x, y, w, h),
	}
	p.Health = NewHealth(maxHealth, 1.0)
	p.Solid = true
	return p
}

// IsInvincible returns true if player is currently invincible
func (p *Player) IsInvincible() bool {
	return p.Health.Invulnerable || p.Dashing
}

// IsStunned returns true if player is currently stunned
func (p *Player) IsStunned() bool {
	return p.StunTimer > 0
}

// TakeDamage applies damage with knockback away from fromX.
func (p *Player) TakeDamage(amount int, fromX float64) bool {
	if !p.Active || p.IsInvincible() {
		return false
	}
	if !p.Health.TakeDamage(amount) {
		return false
	}

	cx, _ := p.Center()
	dir := 1.0
	if fromX > cx {
		dir = -1.0
	}
	p.VX = dir * p.KnockbackX
	p.VY = -p.KnockbackY
	p.OnGround = false
	p.StunTimer = p.StunDuration
	p.Anim.Restart(AnimHurt)
	return true
}

// Poison starts or refreshes the poison status
func (p *Player) Poison(duration, interval float64, damage int) {
	if duration <= 0 || damage <= 0 {
		return
	}
	if duration > p.PoisonTimer {
		p.PoisonTimer = duration
	}
	p.PoisonInterval = interval
	p.PoisonDamage = damage
}

// Poisoned reports whether the poison status is active
func (p *Player) Poisoned() bool {
	return p.PoisonTimer > 0
}

// Render draws the player plus a status pip above the head while poisoned
func (p *Player) Render(s Surface, cam *Camera) {
	p.Entity.Render(s, cam)
	if s == nil || !p.Active || !p.Poisoned() {
		return
	}
	x, y := p.X+p.W/2-2, p.Y-6
	if cam != nil {
		if !cam.Visible(collision.Rect{X: x, Y: y, W: 4, H: 4}) {
			return
		}
		x, y = cam.ToScreen(x, y)
	}
	s.FillRect(x, y, 4, 4, poisonColor)
}

// TickPoison drains health once per interval while poisoned
func (p *Player) TickPoison(dt float64) {
	if p.PoisonTimer <= 0 {
		p.poisonTick = 0
		return
	}
	p.PoisonTimer -= dt
	p.poisonTick += dt
	interval := p.PoisonInterval
	if interval <= 0 {
		interval = 1
	}
	for p.poisonTick >= interval {
		p.poisonTick -= interval
		p.Health.Drain(p.PoisonDamage)
	}
}
