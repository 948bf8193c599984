// Package factory turns configuration and stage descriptors into entities.
package factory

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

// ErrUnknownDescriptor is returned for descriptor types with no config entry
var ErrUnknownDescriptor = errors.New("unknown entity descriptor")

// Spawnable is anything the factory builds
type Spawnable interface {
	Core() *entity.Entity
}

// Factory builds entities and hands out monotonic IDs.
type Factory struct {
	physics  *config.PhysicsConfig
	entities *config.EntitiesConfig
	nextID   entity.EntityID
}

// New creates a factory over the loaded configuration
func New(cfg *config.GameConfig) *Factory {
	f := &Factory{
		physics:  &config.PhysicsConfig{},
		entities: &config.EntitiesConfig{},
	}
	if cfg != nil && cfg.Physics != nil {
		f.physics = cfg.Physics
	}
	if cfg != nil && cfg.Entities != nil {
		f.entities = cfg.Entities
	}
	return f
}

// Physics returns the physics config the factory was built with
func (f *Factory) Physics() *config.PhysicsConfig { return f.physics }

// Entities returns the entity config the factory was built with
func (f *Factory) Entities() *config.EntitiesConfig { return f.entities }

func (f *Factory) assign(e *entity.Entity) {
	f.nextID++
	e.ID = f.nextID
}

// applySprite sets size, collision box, placeholder colour and clips
func applySprite(e *entity.Entity, sprite config.SpriteConfig, hitbox config.Rect) {
	if sprite.Width > 0 {
		e.W = sprite.Width
	}
	if sprite.Height > 0 {
		e.H = sprite.Height
	}
	e.Sprite = sprite.Sheet
	if c, ok := config.ParseColor(sprite.Color); ok {
		e.Color = c
	}
	e.Box = collision.Box{
		OffsetX: hitbox.OffsetX,
		OffsetY: hitbox.OffsetY,
		Width:   hitbox.Width,
		Height:  hitbox.Height,
	}
	for id, a := range sprite.Animations {
		clip := entity.Clip{Frames: a.Frames, Loop: a.Loop}
		if a.FPS > 0 {
			clip.FrameTime = 1 / a.FPS
		}
		e.Anim.Add(id, clip)
	}
}

// NewPlayer builds the player at (x, y)
func (f *Factory) NewPlayer(x, y float64) *entity.Player {
	pc := f.entities.Player
	maxHealth := pc.MaxHealth
	if maxHealth <= 0 {
		maxHealth = 1
	}

	p := entity.NewPlayer(x, y, 16, 24, maxHealth)
	applySprite(&p.Entity, pc.Sprite, pc.Hitbox)
	f.assign(&p.Entity)

	p.Health.InvulnDuration = f.physics.Combat.Iframes
	p.Gravity = f.physics.Physics.Gravity
	p.MaxVY = f.physics.Physics.MaxFallSpeed
	p.Friction = pc.Friction
	p.MaxAmmo = pc.MaxAmmo
	p.Ammo = pc.StartAmmo
	if p.Ammo > p.MaxAmmo {
		p.Ammo = p.MaxAmmo
	}
	p.KnockbackX = f.physics.Combat.Knockback.Force
	p.KnockbackY = f.physics.Combat.Knockback.UpForce
	p.StunDuration = f.physics.Combat.Knockback.StunDuration
	p.Anim.Play(entity.AnimIdle)
	return p
}

// NewEnemy builds an enemy from its config id
func (f *Factory) NewEnemy(id string, x, y float64, facingRight bool) (*entity.Enemy, error) {
	ec, ok := f.entities.Enemies[id]
	if !ok {
		return nil, fmt.Errorf("%w: enemy %q", ErrUnknownDescriptor, id)
	}
	archetype := entity.Archetype(ec.Archetype)
	if archetype == "" {
		archetype = entity.Archetype(id)
	}

	e := entity.NewEnemy(archetype, x, y, 16, 16)
	applySprite(&e.Entity, ec.Sprite, ec.Hitbox)
	f.assign(&e.Entity)

	maxHealth := ec.MaxHealth
	if maxHealth <= 0 {
		maxHealth = 1
	}
	e.Health = entity.NewHealth(maxHealth, ec.IFrames)
	if ec.Gravity {
		e.Gravity = f.physics.Physics.Gravity
		e.MaxVY = f.physics.Physics.MaxFallSpeed
	}
	e.Friction = 1
	e.DetectionRange = ec.DetectionRange
	e.AttackRange = ec.AttackRange
	e.Tuning = entity.EnemyTuning{
		ChaseSpeed:     ec.ChaseSpeed,
		SearchTime:     ec.SearchTime,
		HurtTime:       ec.HurtTime,
		AttackTime:     ec.AttackTime,
		AttackCooldown: ec.AttackCooldown,
		DeathTime:      ec.DeathTime,
		ContactDamage:  ec.ContactDamage,
		Knockback:      ec.Knockback,
		LungeSpeed:     ec.LungeSpeed,
		LungeHop:       ec.LungeHop,
		PreferredMin:   ec.PreferredMin,
		PreferredMax:   ec.PreferredMax,
		BurstCount:     ec.BurstCount,
		BurstInterval:  ec.BurstInterval,
		MaxCharges:     ec.MaxCharges,
		RechargeTime:   ec.RechargeTime,
		Projectile:     ec.Projectile,
		Hazard:         ec.Hazard,
	}
	e.Charges = ec.MaxCharges
	for _, d := range ec.Drops {
		e.Drops = append(e.Drops, entity.DropEntry{ItemType: d.Item, Chance: d.Chance, Amount: d.Amount})
	}
	if ec.PatrolDistance > 0 || ec.PatrolSpeed > 0 {
		e.Patrol = &entity.Patrol{
			Left:  x - ec.PatrolDistance,
			Right: x + ec.PatrolDistance,
			Speed: ec.PatrolSpeed,
		}
	}

	e.FacingRight = facingRight
	e.Dir = e.Body.Dir()
	e.Anim.Play(entity.StatePatrol.String())
	return e, nil
}

// NewProjectile builds a projectile centred on (cx, cy) flying along
// (dirX, dirY) at the configured speed, plus the configured lift.
func (f *Factory) NewProjectile(id string, owner *entity.Entity, ownerType entity.OwnerType, cx, cy, dirX, dirY float64) (*entity.Projectile, error) {
	pc, ok := f.entities.Projectiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: projectile %q", ErrUnknownDescriptor, id)
	}
	family := entity.FamilyStraight
	if pc.Family == "bouncing" {
		family = entity.FamilyBouncing
	}

	if n := math.Hypot(dirX, dirY); n > 0 {
		dirX, dirY = dirX/n, dirY/n
	}
	vx := dirX * pc.Speed
	vy := dirY*pc.Speed - pc.Lift

	w, h := 4.0, 4.0
	if pc.Sprite.Width > 0 {
		w = pc.Sprite.Width
	}
	if pc.Sprite.Height > 0 {
		h = pc.Sprite.Height
	}
	p := entity.NewProjectile(family, owner, ownerType, cx-w/2, cy-h/2, vx, vy, w, h)
	applySprite(&p.Entity, pc.Sprite, pc.Hitbox)
	f.assign(&p.Entity)

	p.Gravity = pc.Gravity
	p.Damage = pc.Damage
	p.Piercing = pc.Piercing
	p.Lifetime = pc.Lifetime
	p.MaxBounces = pc.MaxBounces
	p.MinBounceSpeed = pc.MinBounceSpeed
	if pc.Restitution > 0 {
		p.Restitution = pc.Restitution
	}
	p.BounceFriction = pc.BounceFriction
	if pc.FadeDuration > 0 {
		p.FadeDuration = pc.FadeDuration
	}
	return p, nil
}

// NewItem builds a pickup from its config id
func (f *Factory) NewItem(id string, x, y float64) (*entity.Item, error) {
	ic, ok := f.entities.Items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %q", ErrUnknownDescriptor, id)
	}
	amount := ic.Amount
	if amount <= 0 {
		amount = 1
	}

	it := entity.NewItem(id, amount, x, y, 8, 8)
	applySprite(&it.Entity, ic.Sprite, ic.Hitbox)
	f.assign(&it.Entity)

	it.Gravity = ic.Gravity
	it.MaxVY = f.physics.Physics.MaxFallSpeed
	it.Friction = ic.Friction
	it.MagnetRange = ic.MagnetRange
	it.MagnetSpeed = ic.MagnetSpeed
	it.AutoCollect = ic.AutoCollect
	it.AutoCollectRadius = ic.AutoCollectRadius
	it.Lifetime = ic.Lifetime
	it.BlinkWindow = ic.BlinkWindow
	return it, nil
}

// NewHazard builds a hazard from its config id
func (f *Factory) NewHazard(id string, x, y float64) (*entity.Hazard, error) {
	hc, ok := f.entities.Hazards[id]
	if !ok {
		return nil, fmt.Errorf("%w: hazard %q", ErrUnknownDescriptor, id)
	}

	h := entity.NewHazard(x, y, 16, 16, hc.Damage)
	applySprite(&h.Entity, hc.Sprite, hc.Hitbox)
	f.assign(&h.Entity)

	h.Status = hc.Status
	h.StatusDuration = hc.StatusDuration
	h.StatusInterval = hc.StatusInterval
	h.StatusDamage = hc.StatusDamage
	h.Lifetime = hc.Lifetime
	return h, nil
}

// NewNPC builds an NPC from its config id
func (f *Factory) NewNPC(id string, x, y float64) (*entity.NPC, error) {
	nc, ok := f.entities.NPCs[id]
	if !ok {
		return nil, fmt.Errorf("%w: npc %q", ErrUnknownDescriptor, id)
	}
	name := nc.Name
	if name == "" {
		name = id
	}

	n := entity.NewNPC(name, x, y, 16, 24)
	applySprite(&n.Entity, nc.Sprite, nc.Hitbox)
	f.assign(&n.Entity)

	if nc.InteractRange > 0 {
		n.InteractRange = nc.InteractRange
	}
	n.Lines = append([]string(nil), nc.Lines...)
	n.Anim.Play(entity.AnimIdle)
	return n, nil
}

// NewFlag builds the goal flag
func (f *Factory) NewFlag(x, y float64) *entity.Flag {
	fl := entity.NewFlag(x, y, 12, 32)
	applySprite(&fl.Entity, f.entities.Flag.Sprite, f.entities.Flag.Hitbox)
	f.assign(&fl.Entity)
	return fl
}

// SpikeHazards turns each run of spike tiles into a static hazard
func (f *Factory) SpikeHazards(stage *entity.Stage) []*entity.Hazard {
	if stage == nil || stage.TileSize <= 0 {
		return nil
	}
	spikes := f.entities.Hazards["spikes"]
	var out []*entity.Hazard
	for _, r := range stage.TileRects(func(t entity.Tile) bool { return t.Type == entity.TileSpike }) {
		tile := stage.GetTileAtPixel(int(r.X), int(r.Y))
		damage := tile.Damage
		if damage <= 0 {
			damage = spikes.Damage
		}
		h := entity.NewHazard(r.X, r.Y, r.W, r.H, damage)
		if c, ok := config.ParseColor(spikes.Sprite.Color); ok {
			h.Color = c
		}
		f.assign(&h.Entity)
		out = append(out, h)
	}
	return out
}

// Layers builds the parallax layers
func (f *Factory) Layers() []*entity.ParallaxLayer {
	out := make([]*entity.ParallaxLayer, 0, len(f.entities.Layers))
	for _, lc := range f.entities.Layers {
		l := &entity.ParallaxLayer{
			Factor:     lc.Factor,
			DriftSpeed: lc.DriftSpeed,
			Y:          lc.Y,
			Height:     lc.Height,
			Spacing:    lc.Spacing,
		}
		if c, ok := config.ParseColor(lc.Color); ok {
			l.Color = c
		}
		out = append(out, l)
	}
	return out
}

// Build turns a stage descriptor into an entity. index becomes the
// entity's SpawnIndex.
func (f *Factory) Build(d config.EntityDescriptor, index int) (Spawnable, error) {
	kind, id := d.Split()

	var (
		s   Spawnable
		err error
	)
	switch entity.Kind(kind) {
	case entity.KindEnemy:
		var e *entity.Enemy
		e, err = f.NewEnemy(id, d.X, d.Y, d.FacingRight)
		if err == nil {
			applyPatrolProps(e, d)
			s = e
		}
	case entity.KindItem:
		var it *entity.Item
		it, err = f.NewItem(id, d.X, d.Y)
		if err == nil {
			if n := d.PropInt("amount", 0); n > 0 {
				it.Amount = n
			}
			s = it
		}
	case entity.KindHazard:
		s, err = f.NewHazard(id, d.X, d.Y)
	case entity.KindNPC:
		var n *entity.NPC
		n, err = f.NewNPC(id, d.X, d.Y)
		if err == nil {
			if lines := d.PropStrings("lines"); len(lines) > 0 {
				n.Lines = lines
			}
			s = n
		}
	case entity.KindFlag:
		s = f.NewFlag(d.X, d.Y)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDescriptor, d.Type)
	}
	if err != nil {
		return nil, err
	}
	s.Core().SpawnIndex = index
	return s, nil
}

func applyPatrolProps(e *entity.Enemy, d config.EntityDescriptor) {
	_, hasLeft := d.Props["patrolLeft"]
	_, hasRight := d.Props["patrolRight"]
	_, hasGround := d.Props["groundY"]
	if !hasLeft && !hasRight && !hasGround {
		return
	}
	if e.Patrol == nil {
		e.Patrol = &entity.Patrol{Left: e.X, Right: e.X}
	}
	e.Patrol.Left = d.PropFloat("patrolLeft", e.Patrol.Left)
	e.Patrol.Right = d.PropFloat("patrolRight", e.Patrol.Right)
	e.Patrol.GroundY = d.PropFloat("groundY", e.Patrol.GroundY)
}
