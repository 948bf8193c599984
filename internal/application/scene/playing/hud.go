package playing

import (
	"fmt"

	"github.com/younwookim/luckie/internal/application/system"
	"github.com/younwookim/luckie/internal/domain/entity"
)

// HUD keeps the last stats handed over by the world
type HUD struct {
	stats   system.Stats
	updates int
}

// UpdateStats implements system.HUD
func (h *HUD) UpdateStats(s system.Stats) {
	h.stats = s
	h.updates++
}

// Stats returns the latest stats
func (h *HUD) Stats() system.Stats { return h.stats }

// Text formats the status line
func (h *HUD) Text() string {
	s := h.stats
	return fmt.Sprintf("HP %d/%d  Coins %d  Ammo %d/%d  KO %d  %s",
		s.Health, s.MaxHealth, s.Coins, s.Ammo, s.MaxAmmo, s.Defeated, clock(s.Elapsed))
}

// HealthRatio returns current/max health in [0,1]
func (h *HUD) HealthRatio() float64 {
	hp := entity.Health{Current: h.stats.Health, Max: h.stats.MaxHealth}
	return hp.Ratio()
}

func clock(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
