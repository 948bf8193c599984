package system

import (
	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
)

// UpdateProjectilePhysics runs the target scan, then the obstacle scan.
func (s *CollisionSystem) UpdateProjectilePhysics(pr *entity.Projectile, ctx *Context) {
	if pr == nil || !pr.Active || pr.Fading {
		return
	}
	if s.scanTargets(pr, ctx) {
		return
	}
	s.scanObstacles(pr, ctx)
}

// scanTargets applies damage to the first legal targets the projectile
// overlaps. It reports true when the projectile is spent.
func (s *CollisionSystem) scanTargets(pr *entity.Projectile, ctx *Context) bool {
	if pr.OwnerType != entity.OwnerEnemy {
		for _, e := range ctx.Enemies {
			if !e.IsAlive() || !pr.CanHit(&e.Entity) || !collision.EntityCollision(pr, e) {
				continue
			}
			pr.RegisterHit(&e.Entity)
			cx, _ := pr.Center()
			if e.TakeDamage(pr.Damage, cx) {
				ctx.PlaySound("hit")
				ctx.Hitstop()
				ctx.Shake(1)
			}
			if spent(pr) {
				return true
			}
		}
	}

	if pr.OwnerType != entity.OwnerPlayer {
		p := ctx.Player
		if p != nil && !p.IsInvincible() && pr.CanHit(&p.Entity) && collision.EntityCollision(pr, p) {
			pr.RegisterHit(&p.Entity)
			cx, _ := pr.Center()
			hurtPlayer(p, pr.Damage, cx, ctx)
			if spent(pr) {
				return true
			}
		}
	}
	return false
}

// spent ends a non-piercing projectile after a hit
func spent(pr *entity.Projectile) bool {
	if pr.Piercing {
		return false
	}
	if pr.Family == entity.FamilyBouncing {
		pr.StartFade()
	} else {
		pr.Deactivate()
	}
	return true
}

func (s *CollisionSystem) scanObstacles(pr *entity.Projectile, ctx *Context) {
	b := pr.Bounds()
	for _, obstacle := range ctx.solids(b.Inflate(1)) {
		if !collision.RectangleCollision(b, obstacle) {
			continue
		}
		if pr.Family == entity.FamilyStraight {
			pr.StickToWall()
			return
		}
		if pr.Bounce(bounceSide(pr.PrevBounds(), obstacle), obstacle) {
			ctx.PlaySound("bounce")
		}
		return
	}

	if pr.Family != entity.FamilyBouncing {
		return
	}
	// one-way platforms only stop a projectile falling onto them
	for _, platform := range ctx.oneWays(b.Inflate(1)) {
		if !collision.RectangleCollision(b, platform) {
			continue
		}
		if pr.VY > 0 && pr.PrevBounds().Bottom() <= platform.Y {
			pr.Disintegrate(&platform)
			return
		}
	}
}

// bounceSide decides which face of the obstacle was struck from where the
// projectile was on the previous tick. Vertical faces win when both axes
// were clear; an overlap already present is undeterminable.
func bounceSide(prev, obstacle collision.Rect) collision.Side {
	switch {
	case prev.Bottom() <= obstacle.Y:
		return collision.SideTop
	case prev.Y >= obstacle.Bottom():
		return collision.SideBottom
	case prev.Right() <= obstacle.X:
		return collision.SideLeft
	case prev.X >= obstacle.Right():
		return collision.SideRight
	}
	return collision.SideNone
}
