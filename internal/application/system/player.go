package system

import (
	"math"

	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// PlayerSystem turns input into player movement, jumps, dashes and throws
type PlayerSystem struct {
	config *config.PhysicsConfig
}

// NewPlayerSystem creates a new player system
func NewPlayerSystem(cfg *config.PhysicsConfig) *PlayerSystem {
	if cfg == nil {
		cfg = &config.PhysicsConfig{}
	}
	return &PlayerSystem{config: cfg}
}

// idleInput stands in when no input device is attached
type idleInput struct{}

func (idleInput) Poll() {}
func (idleInput) IsMovingLeft() bool { return false }
func (idleInput) IsMovingRight() bool { return false }
func (idleInput) IsJumping() bool { return false }
func (idleInput) IsDashing() bool { return false }
func (idleInput) ConsumeActionPress() bool { return false }
func (idleInput) ConsumeInteractPress() bool { return false }

// Update runs one player tick: timers, movement, jump, attack, physics,
// then animation.
func (s *PlayerSystem) Update(p *entity.Player, ctx *Context, dt float64) {
	if p == nil || !p.Active {
		return
	}
	var in Input = idleInput{}
	if ctx != nil && ctx.Input != nil {
		in = ctx.Input
	}

	jumpHeld := in.IsJumping()
	jumpPressed := jumpHeld && !p.JumpHeld
	jumpReleased := !jumpHeld && p.JumpHeld
	p.JumpHeld = jumpHeld

	s.updateTimers(p, dt)
	if jumpPressed {
		p.JumpBufferTimer = s.config.Jump.JumpBuffer
	}

	if p.IsStunned() {
		p.VX *= math.Pow(0.9, dt*60)
	} else {
		s.handleDash(p, in)
		if !p.Dashing {
			s.handleMovement(p, in, dt)
			s.handleJump(p, jumpReleased, ctx)
		}
	}
	s.handleAttack(p, in, ctx)

	gravity := p.Gravity
	if p.Dashing {
		p.Gravity = 0
		p.VY = 0
	}
	p.Integrate(dt)
	p.Gravity = gravity

	s.updateAnimation(p, dt)
}

// updateTimers updates various player timers
func (s *PlayerSystem) updateTimers(p *entity.Player, dt float64) {
	// Coyote time
	if p.OnGround {
		p.CoyoteTimer = s.config.Jump.CoyoteTime
		p.DoubleJumpUsed = false
	} else if p.CoyoteTimer > 0 {
		p.CoyoteTimer -= dt
	}

	// Jump buffer
	if p.JumpBufferTimer > 0 {
		p.JumpBufferTimer -= dt
	}

	// Dash
	if p.DashTimer > 0 {
		p.DashTimer -= dt
		if p.DashTimer <= 0 {
			p.Dashing = false
			p.VX = clampAbs(p.VX, s.config.Movement.MaxSpeed)
		}
	}
	if p.DashCooldown > 0 {
		p.DashCooldown -= dt
	}
	if p.AttackCooldown > 0 {
		p.AttackCooldown -= dt
	}

	// Stun
	if p.StunTimer > 0 {
		p.StunTimer -= dt
	}

	p.Health.Tick(dt)
	p.TickPoison(dt)
}

// handleMovement accelerates toward the run speed
func (s *PlayerSystem) handleMovement(p *entity.Player, in Input, dt float64) {
	mv := s.config.Movement
	targetVX := 0.0

	if in.IsMovingLeft() {
		targetVX = -mv.MaxSpeed
		p.FacingRight = false
	}
	if in.IsMovingRight() {
		targetVX = mv.MaxSpeed
		p.FacingRight = true
	}

	// Air control
	if !p.OnGround && mv.AirControl > 0 {
		targetVX *= mv.AirControl
	}

	if targetVX != 0 {
		accel := mv.Acceleration * dt

		// Turnaround boost
		if (p.VX > 0 && targetVX < 0) || (p.VX < 0 && targetVX > 0) {
			if mv.TurnaroundBoost > 0 {
				accel *= mv.TurnaroundBoost
			}
		}

		if p.VX < targetVX {
			p.VX = math.Min(p.VX+accel, targetVX)
		} else if p.VX > targetVX {
			p.VX = math.Max(p.VX-accel, targetVX)
		}
		return
	}

	// Deceleration
	decel := mv.Deceleration * dt
	if p.VX > 0 {
		p.VX = math.Max(p.VX-decel, 0)
	} else if p.VX < 0 {
		p.VX = math.Min(p.VX+decel, 0)
	}
}

// handleJump handles ground, coyote and double jumps plus the jump cut
func (s *PlayerSystem) handleJump(p *entity.Player, released bool, ctx *Context) {
	jc := s.config.Jump

	canJump := p.OnGround || p.CoyoteTimer > 0
	wantsJump := p.JumpBufferTimer > 0

	switch {
	case canJump && wantsJump:
		p.VY = -jc.Force
		p.OnGround = false
		p.CoyoteTimer = 0
		p.JumpBufferTimer = 0
		ctx.PlaySound("jump")
	case wantsJump && !canJump && jc.DoubleJump && !p.DoubleJumpUsed:
		force := jc.DoubleJumpForce
		if force <= 0 {
			force = jc.Force
		}
		p.VY = -force
		p.DoubleJumpUsed = true
		p.JumpBufferTimer = 0
		ctx.PlaySound("jump")
	}

	// Variable jump height (release to reduce upward velocity)
	if released && p.VY < 0 && jc.VariableJumpMultiplier > 0 {
		p.VY *= jc.VariableJumpMultiplier
	}
}

// handleDash starts a dash in the facing direction
func (s *PlayerSystem) handleDash(p *entity.Player, in Input) {
	if p.Dashing || !in.IsDashing() || p.DashCooldown > 0 || s.config.Dash.Duration <= 0 {
		return
	}

	p.Dashing = true
	p.DashTimer = s.config.Dash.Duration
	p.DashCooldown = s.config.Dash.Cooldown
	p.Health.SetInvulnerable(s.config.Dash.IframesDuration)
	p.VX = p.Dir() * s.config.Dash.Speed
	p.VY = 0
}

// handleAttack throws a rock on a fresh action press
func (s *PlayerSystem) handleAttack(p *entity.Player, in Input, ctx *Context) {
	if !in.ConsumeActionPress() {
		return
	}
	if p.AttackCooldown > 0 || p.Ammo <= 0 || p.IsStunned() {
		return
	}
	if ctx == nil || ctx.Factory == nil || ctx.Spawner == nil {
		return
	}

	cx, cy := p.Center()
	rock, err := ctx.Factory.NewProjectile(
		ctx.Factory.Entities().Player.Throw,
		&p.Entity, entity.OwnerPlayer,
		cx+p.Dir()*p.W/2, cy-4,
		p.Dir(), 0,
	)
	if err != nil {
		ctx.Logf("player: throw: %v", err)
		return
	}
	rock.VX += p.VX / 2

	ctx.Spawner.SpawnProjectile(rock)
	p.Ammo--
	p.AttackCooldown = s.config.Combat.ThrowCooldown
	p.Anim.Restart(entity.AnimAttack)
	ctx.PlaySound("throw")
}

// updateAnimation picks the clip for the current movement state.
// Hurt and attack clips play out before anything replaces them.
func (s *PlayerSystem) updateAnimation(p *entity.Player, dt float64) {
	if p.Anim.Interruptible() {
		switch {
		case p.Dashing:
			p.Anim.Play(entity.AnimDash)
		case !p.OnGround && p.VY < 0:
			p.Anim.Play(entity.AnimJump)
		case !p.OnGround:
			p.Anim.Play(entity.AnimFall)
		case math.Abs(p.VX) > 1:
			p.Anim.Play(entity.AnimRun)
		default:
			p.Anim.Play(entity.AnimIdle)
		}
	}
	p.Anim.Update(dt)
}

func clampAbs(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return math.Max(-limit, math.Min(limit, v))
}
