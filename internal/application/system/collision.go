package system

import (
	"math"

	"github.com/younwookim/luckie/internal/application/event"
	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// CollisionSystem applies the collision primitives to entities.
// Every hook is safe to run more than once in a tick.
type CollisionSystem struct {
	tolerance float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(cfg *config.PhysicsConfig) *CollisionSystem {
	tol := collision.DefaultGroundTolerance
	if cfg != nil && cfg.Collision.GroundTolerance > 0 {
		tol = cfg.Collision.GroundTolerance
	}
	return &CollisionSystem{tolerance: tol}
}

// ResolvePlayer resolves the player against the stage and every
// collection it can touch.
func (s *CollisionSystem) ResolvePlayer(p *entity.Player, ctx *Context) {
	if p == nil || !p.Active {
		return
	}
	s.resolveWalls(&p.Entity, ctx)
	s.snapGround(&p.Entity, ctx)
	s.checkEnemyContact(p, ctx)
	s.CollectItems(ctx.Items, p, ctx)
	s.CheckHazardContact(ctx.Hazards, p, ctx)
	s.CheckFlagContact(ctx.Flag, p, ctx)
}

// resolveWalls pushes e out of every overlapping solid, one contact at a
// time, and returns the sides that were hit.
func (s *CollisionSystem) resolveWalls(e *entity.Entity, ctx *Context) []collision.Side {
	b := e.Bounds()
	walls := ctx.solids(b.Inflate(1))

	var sides []collision.Side
	for _, w := range walls {
		c, ok := collision.WallContact(e.Bounds(), w)
		if !ok {
			continue
		}
		switch c.Side {
		case collision.SideLeft:
			e.X -= c.Depth
			if e.VX > 0 {
				e.VX = 0
			}
		case collision.SideRight:
			e.X += c.Depth
			if e.VX < 0 {
				e.VX = 0
			}
		case collision.SideTop:
			e.Y -= c.Depth
			if e.VY > 0 {
				e.VY = 0
			}
			e.OnGround = true
		case collision.SideBottom:
			e.Y += c.Depth
			if e.VY < 0 {
				e.VY = 0
			}
		}
		sides = append(sides, c.Side)
	}
	return sides
}

// snapGround clamps a falling or resting body onto the platform below it
func (s *CollisionSystem) snapGround(e *entity.Entity, ctx *Context) {
	if e.VY < 0 {
		e.OnGround = false
		return
	}
	b := e.Bounds()
	platforms := ctx.platforms(b.Inflate(s.tolerance))
	top, ok := collision.CheckGroundCollision(e, platforms, s.tolerance)
	if !ok {
		e.OnGround = false
		return
	}
	e.SetFeet(top.Y)
	e.VY = 0
	e.OnGround = true
}

func (s *CollisionSystem) checkEnemyContact(p *entity.Player, ctx *Context) {
	if p.IsInvincible() {
		return
	}
	for _, e := range ctx.Enemies {
		if !e.IsAlive() || e.Tuning.ContactDamage <= 0 {
			continue
		}
		if collision.EntityCollision(p, e) {
			cx, _ := e.Center()
			if hurtPlayer(p, e.Tuning.ContactDamage, cx, ctx) {
				return
			}
		}
	}
}

// hurtPlayer applies damage with the usual feedback and reports whether it landed
func hurtPlayer(p *entity.Player, amount int, fromX float64, ctx *Context) bool {
	if !p.TakeDamage(amount, fromX) {
		return false
	}
	ctx.PlaySound("hurt")
	ctx.Shake(1.5)
	ctx.Emit(event.Event{
		Type:     event.PlayerDamaged,
		EntityID: p.ID,
		Kind:     p.Kind,
		X:        p.X,
		Y:        p.Y,
		Amount:   amount,
	})
	return true
}

// UpdateEnemyPhysics contains an enemy within walls, ground and its patrol
// route. It runs after the state machine has moved the enemy.
func (s *CollisionSystem) UpdateEnemyPhysics(e *entity.Enemy, ctx *Context) {
	if e == nil || !e.Active {
		return
	}
	for _, side := range s.resolveWalls(&e.Entity, ctx) {
		switch side {
		case collision.SideLeft:
			e.Dir = -1
		case collision.SideRight:
			e.Dir = 1
		}
	}
	if e.Gravity != 0 {
		s.snapGround(&e.Entity, ctx)
	}

	if e.Patrol == nil {
		return
	}
	if e.X < e.Patrol.Left {
		e.X = e.Patrol.Left
		e.Dir = 1
	} else if e.X > e.Patrol.Right {
		e.X = e.Patrol.Right
		e.Dir = -1
	}
	if e.Patrol.GroundY > 0 && e.Bounds().Bottom() > e.Patrol.GroundY {
		e.SetFeet(e.Patrol.GroundY)
		if e.VY > 0 {
			e.VY = 0
		}
		e.OnGround = true
	}
}

// UpdateItemPhysics moves an item: magnet pull toward the player, flight,
// walls and ground, then auto-collection.
func (s *CollisionSystem) UpdateItemPhysics(it *entity.Item, p *entity.Player, ctx *Context) {
	if it == nil || !it.Active {
		return
	}
	dt := ctx.DT

	dist := math.Inf(1)
	if p != nil && p.Active {
		dist = collision.Distance(it, p)
		if it.MagnetRange > 0 && dist < it.MagnetRange && dist > 0 {
			ib, pb := it.Bounds(), p.Bounds()
			strength := it.MagnetSpeed * (1 - dist/it.MagnetRange)
			it.VX += (pb.CenterX() - ib.CenterX()) / dist * strength * dt
			it.VY += (pb.CenterY() - ib.CenterY()) / dist * strength * dt
		}
	}

	it.Integrate(dt)
	s.resolveWalls(&it.Entity, ctx)
	s.snapGround(&it.Entity, ctx)
	if it.OnGround && it.Friction == 0 {
		it.VX = 0
	}

	if it.AutoCollect && dist <= it.AutoCollectRadius {
		s.collect(it, p, ctx)
	}
}

// CollectItems collects every item the player overlaps
func (s *CollisionSystem) CollectItems(items []*entity.Item, p *entity.Player, ctx *Context) {
	if p == nil || !p.Active {
		return
	}
	for _, it := range items {
		if it.Active && collision.EntityCollision(it, p) {
			s.collect(it, p, ctx)
		}
	}
}

func (s *CollisionSystem) collect(it *entity.Item, p *entity.Player, ctx *Context) {
	if p == nil || !it.Collect() {
		return
	}
	switch it.ItemType {
	case entity.ItemCoin:
		p.Coins += it.Amount
	case entity.ItemHeart:
		p.Health.Heal(it.Amount)
	case entity.ItemRock:
		p.Ammo += it.Amount
		if p.MaxAmmo > 0 && p.Ammo > p.MaxAmmo {
			p.Ammo = p.MaxAmmo
		}
	}
	ctx.PlaySound("coin")
	ctx.Emit(event.Event{
		Type:     event.ItemCollected,
		EntityID: it.ID,
		Kind:     it.Kind,
		Subtype:  it.ItemType,
		X:        it.X,
		Y:        it.Y,
		Amount:   it.Amount,
	})
}

// CheckHazardContact applies hazard damage and status effects on overlap
func (s *CollisionSystem) CheckHazardContact(hazards []*entity.Hazard, p *entity.Player, ctx *Context) {
	if p == nil || !p.Active {
		return
	}
	for _, h := range hazards {
		if !h.Active || !collision.EntityCollision(h, p) {
			continue
		}
		if h.Damage > 0 && !p.IsInvincible() {
			cx, _ := h.Center()
			hurtPlayer(p, h.Damage, cx, ctx)
		}
		if h.Status == entity.StatusPoison {
			p.Poison(h.StatusDuration, h.StatusInterval, h.StatusDamage)
		}
	}
}

// CheckFlagContact fires the goal once
func (s *CollisionSystem) CheckFlagContact(f *entity.Flag, p *entity.Player, ctx *Context) {
	if f == nil || f.Collected || p == nil || !p.Active {
		return
	}
	if !collision.EntityCollision(f, p) || !f.Reach() {
		return
	}
	ctx.PlaySound("flag")
	ctx.Emit(event.Event{
		Type:     event.FlagReached,
		EntityID: f.ID,
		Kind:     f.Kind,
		X:        f.X,
		Y:        f.Y,
	})
}

// CheckNPCInteract opens a conversation with the nearest NPC in range when
// the interact key was pressed this tick.
func (s *CollisionSystem) CheckNPCInteract(npcs []*entity.NPC, p *entity.Player, ctx *Context) {
	if p == nil || !p.Active || ctx.Input == nil || len(npcs) == 0 {
		return
	}
	if !ctx.Input.ConsumeInteractPress() {
		return
	}
	var (
		best     *entity.NPC
		bestDist = math.Inf(1)
	)
	for _, n := range npcs {
		if !n.Active {
			continue
		}
		d := collision.Distance(n, p)
		if d <= n.InteractRange && d < bestDist {
			best, bestDist = n, d
		}
	}
	if best == nil {
		return
	}
	best.Talked++
	ctx.Emit(event.Event{
		Type:     event.NPCInteract,
		EntityID: best.ID,
		Kind:     best.Kind,
		Subtype:  best.Name,
		X:        best.X,
		Y:        best.Y,
		Lines:    best.Lines,
	})
}
