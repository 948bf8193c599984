package entity

// Health tracks hit points and post-hit invulnerability.
type Health struct {
	Current int
	Max     int

	Invulnerable   bool
	InvulnTimer    float64
	InvulnDuration float64 // granted after each successful hit
}

// NewHealth creates a full health pool
func NewHealth(max int, invuln float64) Health {
	return Health{Current: max, Max: max, InvulnDuration: invuln}
}

// TakeDamage applies damage unless invulnerable. It reports whether damage landed.
func (h *Health) TakeDamage(amount int) bool {
	if amount <= 0 || h.Invulnerable || h.Current <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.InvulnDuration > 0 && h.Current > 0 {
		h.SetInvulnerable(h.InvulnDuration)
	}
	return true
}

// Drain removes health ignoring invulnerability (poison ticks)
func (h *Health) Drain(amount int) {
	if amount <= 0 {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// Heal restores health up to Max
func (h *Health) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// SetInvulnerable starts an invulnerability window
func (h *Health) SetInvulnerable(d float64) {
	if d <= 0 {
		return
	}
	h.Invulnerable = true
	if d > h.InvulnTimer {
		h.InvulnTimer = d
	}
}

// Tick counts the invulnerability timer down
func (h *Health) Tick(dt float64) {
	if !h.Invulnerable {
		return
	}
	h.InvulnTimer -= dt
	if h.InvulnTimer <= 0 {
		h.InvulnTimer = 0
		h.Invulnerable = false
	}
}

// Dead reports whether health is exhausted
func (h *Health) Dead() bool {
	return h.Current <= 0
}

// Ratio returns Current/Max in [0,1]
func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	r := float64(h.Current) / float64(h.Max)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
