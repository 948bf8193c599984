package system

import (
	"math"

	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
)

// behavior is the archetype-specific part of the enemy state machine
type behavior struct {
	// chase moves the enemy while it pursues a target at horizontal offset dx
	chase func(e *entity.Enemy, dx float64)
	// ready gates entering the attack state
	ready func(e *entity.Enemy) bool
	// attack runs every tick of the attack state and reports completion
	attack func(s *EnemySystem, e *entity.Enemy, target *entity.Player, ctx *Context, dt float64) bool
}

var behaviors = map[entity.Archetype]behavior{
	entity.ArchetypeGrunt:  {chase: approach, attack: lunge},
	entity.ArchetypeArcher: {chase: kite, attack: shoot},
	entity.ArchetypeCaster: {chase: approach, ready: charged, attack: burst},
	entity.ArchetypeToad:   {chase: approach, attack: spawnPuddle},
}

// EnemySystem drives the enemy state machine
type EnemySystem struct{}

// NewEnemySystem creates a new enemy system
func NewEnemySystem() *EnemySystem {
	return &EnemySystem{}
}

// Update advances one enemy by dt against the given target, then integrates
// its body and animation. Wall and ground resolution is left to
// CollisionSystem.UpdateEnemyPhysics.
func (s *EnemySystem) Update(e *entity.Enemy, target *entity.Player, ctx *Context, dt float64) {
	if e == nil || !e.Active {
		return
	}
	e.StateTime += dt
	e.Health.Tick(dt)
	if e.Cooldown > 0 {
		e.Cooldown -= dt
	}
	s.recharge(e, dt)

	dist, dx := math.Inf(1), 0.0
	if target != nil && target.Active && !target.Health.Dead() {
		dist = collision.Distance(e, target)
		dx = target.Bounds().CenterX() - e.Bounds().CenterX()
	}
	b := behaviorFor(e.Archetype)

	switch e.State {
	case entity.StatePatrol:
		s.patrol(e, dt)
		if dist <= e.DetectionRange {
			e.SetState(entity.StateChase)
		}

	case entity.StateChase:
		if dist <= e.DetectionRange {
			e.SearchTimer = 0
		} else {
			e.SearchTimer += dt
			if e.SearchTimer >= e.Tuning.SearchTime {
				e.SearchTimer = 0
				e.VX = 0
				e.SetState(entity.StatePatrol)
				break
			}
		}
		if dist <= e.AttackRange && e.Cooldown <= 0 && (b.ready == nil || b.ready(e)) {
			e.Face(dx)
			e.VX = 0
			e.SetState(entity.StateAttack)
			break
		}
		if dist <= e.DetectionRange {
			b.chase(e, dx)
		} else {
			e.VX = 0
		}

	case entity.StateAttack:
		if target == nil || math.IsInf(dist, 1) || b.attack(s, e, target, ctx, dt) {
			e.Cooldown = e.Tuning.AttackCooldown
			e.SetState(entity.StateChase)
		}

	case entity.StateHurt:
		e.VX *= math.Pow(0.85, dt*60)
		if e.StateTime >= e.Tuning.HurtTime {
			if dist <= e.DetectionRange {
				e.SetState(entity.StateChase)
			} else {
				e.SetState(entity.StatePatrol)
			}
		}

	case entity.StateDeath:
		s.die(e, ctx)
	}

	e.Integrate(dt)
	e.Anim.Update(dt)
}

func behaviorFor(a entity.Archetype) behavior {
	if b, ok := behaviors[a]; ok {
		return b
	}
	return behaviors[entity.ArchetypeGrunt]
}

// patrol walks back and forth; the route bounds are enforced by the
// collision pass, which flips Dir.
func (s *EnemySystem) patrol(e *entity.Enemy, dt float64) {
	if e.Patrol == nil || e.Patrol.Speed <= 0 {
		e.VX = 0
		return
	}
	if e.Dir == 0 {
		e.Dir = e.Body.Dir()
	}
	switch {
	case e.X <= e.Patrol.Left && e.Dir < 0:
		e.Dir = 1
	case e.X >= e.Patrol.Right && e.Dir > 0:
		e.Dir = -1
	}
	e.VX = e.Dir * e.Patrol.Speed
	e.Face(e.Dir)
}

// recharge refills caster charges one at a time
func (s *EnemySystem) recharge(e *entity.Enemy, dt float64) {
	if e.Tuning.MaxCharges <= 0 || e.Charges >= e.Tuning.MaxCharges {
		e.RechargeTimer = 0
		return
	}
	if e.State == entity.StateAttack {
		return
	}
	e.RechargeTimer += dt
	if e.Tuning.RechargeTime > 0 && e.RechargeTimer >= e.Tuning.RechargeTime {
		e.RechargeTimer = 0
		e.Charges++
	}
}

// die runs the drop table once and deactivates the enemy when its death
// animation ends.
func (s *EnemySystem) die(e *entity.Enemy, ctx *Context) {
	e.VX = 0
	if e.ClaimDrops() {
		s.dropLoot(e, ctx)
		ctx.PlaySound("defeat")
	}

	done := e.Anim.Current() == entity.AnimDeath && e.Anim.Finished()
	if !e.Anim.Has(entity.AnimDeath) {
		done = e.StateTime >= e.Tuning.DeathTime
	}
	if done {
		e.Deactivate()
	}
}

func (s *EnemySystem) dropLoot(e *entity.Enemy, ctx *Context) {
	if ctx == nil || ctx.Factory == nil || ctx.Spawner == nil {
		return
	}
	cx, _ := e.Center()
	for i, d := range e.Drops {
		if ctx.Roll() >= d.Chance {
			continue
		}
		it, err := ctx.Factory.NewItem(d.ItemType, cx, e.Y)
		if err != nil {
			ctx.Logf("enemy: drop: %v", err)
			continue
		}
		it.X -= it.W / 2
		if d.Amount > 0 {
			it.Amount = d.Amount
		}
		// fan multiple drops out
		it.VX = float64(i%3-1) * 40
		it.VY = -120
		ctx.Spawner.SpawnItem(it)
	}
}

// approach closes the distance at chase speed
func approach(e *entity.Enemy, dx float64) {
	dir := sign(dx)
	e.Face(dir)
	e.VX = dir * e.Tuning.ChaseSpeed
}

// kite keeps the target inside the preferred distance band
func kite(e *entity.Enemy, dx float64) {
	dist := math.Abs(dx)
	dir := sign(dx)
	e.Face(dir)
	switch {
	case e.Tuning.PreferredMax > 0 && dist > e.Tuning.PreferredMax:
		e.VX = dir * e.Tuning.ChaseSpeed
	case dist < e.Tuning.PreferredMin:
		e.VX = -dir * e.Tuning.ChaseSpeed
	default:
		e.VX = 0
	}
}

func charged(e *entity.Enemy) bool {
	need := e.Tuning.BurstCount
	if e.Tuning.MaxCharges < need {
		need = e.Tuning.MaxCharges
	}
	return need > 0 && e.Charges >= need
}

// lunge hops at the target on the first tick
func lunge(_ *EnemySystem, e *entity.Enemy, _ *entity.Player, _ *Context, _ float64) bool {
	if !e.Acted {
		e.Acted = true
		e.VX = e.Body.Dir() * e.Tuning.LungeSpeed
		if e.Tuning.LungeHop > 0 && (e.OnGround || e.Gravity == 0) {
			e.VY = -e.Tuning.LungeHop
			e.OnGround = false
		}
	}
	return e.StateTime >= e.Tuning.AttackTime
}

// shoot fires one aimed shot halfway through the attack
func shoot(s *EnemySystem, e *entity.Enemy, target *entity.Player, ctx *Context, _ float64) bool {
	e.VX = 0
	if !e.Acted && e.StateTime >= e.Tuning.AttackTime/2 {
		e.Acted = true
		s.fireAt(e, target, ctx)
	}
	return e.StateTime >= e.Tuning.AttackTime
}

// burst fires BurstCount shots BurstInterval apart, one charge each
func burst(s *EnemySystem, e *entity.Enemy, target *entity.Player, ctx *Context, dt float64) bool {
	e.VX = 0
	if e.ShotsFired >= e.Tuning.BurstCount || e.Charges <= 0 {
		return true
	}
	e.ShotTimer -= dt
	if e.ShotTimer > 0 {
		return false
	}
	s.fireAt(e, target, ctx)
	e.Charges--
	e.ShotsFired++
	e.ShotTimer = e.Tuning.BurstInterval
	return false
}

// spawnPuddle leaves a hazard under the enemy's feet
func spawnPuddle(_ *EnemySystem, e *entity.Enemy, _ *entity.Player, ctx *Context, _ float64) bool {
	e.VX = 0
	if !e.Acted {
		e.Acted = true
		if ctx != nil && ctx.Factory != nil && ctx.Spawner != nil && e.Tuning.Hazard != "" {
			b := e.Bounds()
			h, err := ctx.Factory.NewHazard(e.Tuning.Hazard, b.CenterX(), b.Bottom())
			if err != nil {
				ctx.Logf("enemy: hazard: %v", err)
			} else {
				h.X -= h.W / 2
				h.Y -= h.H
				ctx.Spawner.SpawnHazard(h)
			}
		}
	}
	return e.StateTime >= e.Tuning.AttackTime
}

// fireAt spawns the enemy's projectile aimed at the target centre
func (s *EnemySystem) fireAt(e *entity.Enemy, target *entity.Player, ctx *Context) {
	if ctx == nil || ctx.Factory == nil || ctx.Spawner == nil || e.Tuning.Projectile == "" {
		return
	}
	eb, tb := e.Bounds(), target.Bounds()
	dx, dy := tb.CenterX()-eb.CenterX(), tb.CenterY()-eb.CenterY()
	if dx == 0 && dy == 0 {
		dx = e.Body.Dir()
	}
	e.Face(dx)
	pr, err := ctx.Factory.NewProjectile(e.Tuning.Projectile, &e.Entity, entity.OwnerEnemy,
		eb.CenterX(), eb.CenterY(), dx, dy)
	if err != nil {
		ctx.Logf("enemy: fire: %v", err)
		return
	}
	ctx.Spawner.SpawnProjectile(pr)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
