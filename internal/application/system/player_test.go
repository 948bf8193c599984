package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/luckie/internal/domain/entity"
)

func newGroundedPlayer(f *fixture) *entity.Player {
	p := f.ctx.Factory.NewPlayer(64, 0)
	standOn(&p.Entity, floorY(8))
	return p
}

func newAirbornePlayer(f *fixture) *entity.Player {
	p := f.ctx.Factory.NewPlayer(64, 40)
	p.OnGround = false
	return p
}

func TestNewPlayerSystem(t *testing.T) {
	sys := NewPlayerSystem(nil)
	require.NotNil(t, sys)
	require.NotNil(t, sys.config)
}

func TestPlayerSystem_Jump(t *testing.T) {
	t.Run("jumps from the ground", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		y0 := p.Y

		f.input.jump = true
		sys.Update(p, f.ctx, step)

		assert.False(t, p.OnGround)
		assert.InDelta(t, -420.0+1800.0*step, p.VY, 1e-9)
		assert.Less(t, p.Y, y0)
		assert.Equal(t, 1, f.audio.count("jump"))
		assert.Equal(t, entity.AnimJump, p.Anim.Current())
	})

	t.Run("holding jump does not retrigger", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		p.JumpHeld = true

		f.input.jump = true
		sys.Update(p, f.ctx, step)

		assert.Equal(t, 0.0, p.VY)
		assert.Zero(t, f.audio.count("jump"))
	})

	t.Run("coyote time allows a late jump", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newAirbornePlayer(f)
		p.CoyoteTimer = 0.05

		f.input.jump = true
		sys.Update(p, f.ctx, step)

		assert.InDelta(t, -420.0+1800.0*step, p.VY, 1e-9)
		assert.False(t, p.DoubleJumpUsed)
		assert.Equal(t, 0.0, p.CoyoteTimer)
	})

	t.Run("double jump needs a fresh press", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newAirbornePlayer(f)
		p.VY = 50

		f.input.jump = true
		sys.Update(p, f.ctx, step)
		assert.True(t, p.DoubleJumpUsed)
		assert.InDelta(t, -360.0+1800.0*step, p.VY, 1e-9)

		f.input.jump = false
		sys.Update(p, f.ctx, step)

		f.input.jump = true
		before := p.VY
		sys.Update(p, f.ctx, step)
		assert.InDelta(t, before+1800.0*step, p.VY, 1e-9)
		assert.Equal(t, 1, f.audio.count("jump"))
	})

	t.Run("buffered press jumps on landing", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newAirbornePlayer(f)
		p.DoubleJumpUsed = true

		f.input.jump = true
		sys.Update(p, f.ctx, step)
		assert.Greater(t, p.VY, 0.0)
		assert.InDelta(t, 0.1, p.JumpBufferTimer, 1e-9)

		standOn(&p.Entity, floorY(8))
		sys.Update(p, f.ctx, step)
		assert.InDelta(t, -420.0+1800.0*step, p.VY, 1e-9)
		assert.Equal(t, 0.0, p.JumpBufferTimer)
	})

	t.Run("press during stun double jumps once it ends", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newAirbornePlayer(f)
		p.StunTimer = 0.03

		f.input.jump = true
		sys.Update(p, f.ctx, step)
		assert.True(t, p.IsStunned())
		assert.False(t, p.DoubleJumpUsed)
		assert.Greater(t, p.JumpBufferTimer, 0.0)

		sys.Update(p, f.ctx, step)
		assert.False(t, p.IsStunned())
		assert.True(t, p.DoubleJumpUsed)
		assert.InDelta(t, -360.0+1800.0*step, p.VY, 1e-9)
		assert.Equal(t, 0.0, p.JumpBufferTimer)
		assert.Equal(t, 1, f.audio.count("jump"))
	})

	t.Run("releasing cuts the rise", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newAirbornePlayer(f)
		p.VY = -400
		p.JumpHeld = true

		sys.Update(p, f.ctx, step)

		assert.InDelta(t, -200.0+1800.0*step, p.VY, 1e-9)
	})
}

func TestPlayerSystem_Movement(t *testing.T) {
	tests := []struct {
		name        string
		startVX     float64
		left, right bool
		wantVX      float64
		wantFacing  bool
	}{
		{name: "accelerates right", startVX: 0, right: true, wantVX: 20, wantFacing: true},
		{name: "accelerates left", startVX: 0, left: true, wantVX: -20, wantFacing: false},
		{name: "caps at max speed", startVX: 115, right: true, wantVX: 120, wantFacing: true},
		{name: "decelerates without input", startVX: 100, wantVX: 100 - 1600.0/60, wantFacing: true},
		{name: "turnaround boost", startVX: 100, left: true, wantVX: 70, wantFacing: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sys := NewPlayerSystem(f.ctx.Physics)
			p := newGroundedPlayer(f)
			p.VX = tt.startVX
			f.input.left, f.input.right = tt.left, tt.right

			sys.Update(p, f.ctx, step)

			assert.InDelta(t, tt.wantVX, p.VX, 1e-9)
			assert.Equal(t, tt.wantFacing, p.FacingRight)
		})
	}

	t.Run("stun ignores input", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		p.VX = 100
		p.StunTimer = 0.2
		f.input.left = true

		sys.Update(p, f.ctx, step)

		assert.InDelta(t, 90.0, p.VX, 1e-9)
		assert.True(t, p.FacingRight)
	})
}

func TestPlayerSystem_Dash(t *testing.T) {
	f := newFixture(t)
	sys := NewPlayerSystem(f.ctx.Physics)
	p := newAirbornePlayer(f)
	p.VY = 100
	x0, y0 := p.X, p.Y

	f.input.dash = true
	sys.Update(p, f.ctx, step)

	assert.True(t, p.Dashing)
	assert.True(t, p.IsInvincible())
	assert.Equal(t, 0.0, p.VY)
	assert.Equal(t, y0, p.Y)
	assert.InDelta(t, x0+300*step, p.X, 1e-9)
	assert.Equal(t, entity.AnimDash, p.Anim.Current())

	for i := 0; i < 12; i++ {
		sys.Update(p, f.ctx, step)
	}
	assert.False(t, p.Dashing, "dash ends and cooldown blocks a new one")
	assert.LessOrEqual(t, p.VX, 120.0)
	assert.Greater(t, p.DashCooldown, 0.0)
}

func TestPlayerSystem_Throw(t *testing.T) {
	t.Run("throws a rock", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)

		f.input.actions = 1
		sys.Update(p, f.ctx, step)

		require.Len(t, f.spawner.projectiles, 1)
		rock := f.spawner.projectiles[0]
		assert.Equal(t, entity.OwnerPlayer, rock.OwnerType)
		assert.Same(t, &p.Entity, rock.Owner)
		assert.Equal(t, entity.FamilyBouncing, rock.Family)
		assert.InDelta(t, 220.0, rock.VX, 1e-9)
		assert.Equal(t, 4, p.Ammo)
		assert.InDelta(t, 0.35, p.AttackCooldown, 1e-9)
		assert.Equal(t, entity.AnimAttack, p.Anim.Current())
		assert.Equal(t, 1, f.audio.count("throw"))
	})

	t.Run("cooldown blocks a second throw", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)

		f.input.actions = 1
		sys.Update(p, f.ctx, step)
		f.input.actions = 1
		sys.Update(p, f.ctx, step)

		assert.Len(t, f.spawner.projectiles, 1)
		assert.Zero(t, f.input.actions, "the press is consumed")
	})

	t.Run("no ammo", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		p.Ammo = 0

		f.input.actions = 1
		sys.Update(p, f.ctx, step)

		assert.Empty(t, f.spawner.projectiles)
		assert.Equal(t, 0, p.Ammo)
	})
}

func TestPlayerSystem_Status(t *testing.T) {
	t.Run("poison drains once per interval", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		p.Poison(3, 1, 1)

		for i := 0; i < 61; i++ {
			sys.Update(p, f.ctx, step)
		}

		assert.Equal(t, 4, p.Health.Current)
		assert.True(t, p.Poisoned())
	})

	t.Run("hurt clip plays out", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		require.True(t, p.TakeDamage(1, 0))
		standOn(&p.Entity, floorY(8))

		sys.Update(p, f.ctx, step)

		assert.Equal(t, entity.AnimHurt, p.Anim.Current())
	})

	t.Run("inactive player is ignored", func(t *testing.T) {
		f := newFixture(t)
		sys := NewPlayerSystem(f.ctx.Physics)
		p := newGroundedPlayer(f)
		p.Active = false
		f.input.jump = true

		sys.Update(p, f.ctx, step)

		assert.Equal(t, 0.0, p.VY)
	})
}
