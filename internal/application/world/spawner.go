package world

import "github.com/younwookim/luckie/internal/domain/entity"

// SpawnProjectile appends a projectile created during the tick
func (w *World) SpawnProjectile(p *entity.Projectile) {
	if p == nil {
		return
	}
	w.Projectiles = append(w.Projectiles, p)
}

// SpawnItem appends an item created during the tick
func (w *World) SpawnItem(i *entity.Item) {
	if i == nil {
		return
	}
	w.Items = append(w.Items, i)
}

// SpawnHazard appends a hazard created during the tick
func (w *World) SpawnHazard(h *entity.Hazard) {
	if h == nil {
		return
	}
	w.Hazards = append(w.Hazards, h)
}
