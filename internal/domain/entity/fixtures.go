package entity

import "image/color"

// Status effects a hazard can apply
const (
	StatusNone   = ""
	StatusPoison = "poison"
)

// Hazard damages the player on contact (spikes, poison puddles)
type Hazard struct {
	Entity

	Damage         int
	Status         string
	StatusDuration float64
	StatusInterval float64
	StatusDamage   int

	Lifetime float64 // 0 = permanent
	Age      float64
}

// NewHazard creates a hazard
func NewHazard(x, y, w, h float64, damage int) *Hazard {
	return &Hazard{
		Entity: NewEntity(KindHazard, x, y, w, h),
		Damage: damage,
	}
}

// Update ages the hazard and fades it out over its last second
func (h *Hazard) Update(dt float64) {
	if !h.Active {
		return
	}
	h.Anim.Update(dt)
	if h.Lifetime <= 0 {
		return
	}
	h.Age += dt
	remaining := h.Lifetime - h.Age
	if remaining <= 0 {
		h.Active = false
		return
	}
	if remaining < 1 {
		h.Opacity = remaining
	}
}

// Flag is the stage goal
type Flag struct {
	Entity
	Collected bool
}

// NewFlag creates a goal flag
func NewFlag(x, y, w, h float64) *Flag {
	return &Flag{Entity: NewEntity(KindFlag, x, y, w, h)}
}

// Reach marks the flag collected. Only the first call succeeds.
func (f *Flag) Reach() bool {
	if f.Collected || !f.Active {
		return false
	}
	f.Collected = true
	return true
}

// NPC is a non-hostile character the player can talk to
type NPC struct {
	Entity

	Name          string
	Lines         []string
	InteractRange float64
	Talked        int
}

// NewNPC creates an NPC
func NewNPC(name string, x, y, w, h float64) *NPC {
	return &NPC{
		Entity:        NewEntity(KindNPC, x, y, w, h),
		Name:          name,
		InteractRange: 32,
	}
}

// Update advances the idle animation
func (n *NPC) Update(dt float64) {
	if !n.Active {
		return
	}
	n.Anim.Update(dt)
}

// ParallaxLayer is a decorative background band that drifts and scrolls at
// a fraction of the camera speed.
type ParallaxLayer struct {
	Factor     float64
	DriftSpeed float64
	Offset     float64
	Y, Height  float64
	Spacing    float64
	Color      color.RGBA
}

// Update advances the drift
func (l *ParallaxLayer) Update(dt float64) {
	l.Offset += l.DriftSpeed * dt
	if l.Spacing > 0 {
		for l.Offset >= l.Spacing {
			l.Offset -= l.Spacing
		}
		for l.Offset < 0 {
			l.Offset += l.Spacing
		}
	}
}

// Render draws repeating blocks across the view
func (l *ParallaxLayer) Render(s Surface, cam *Camera) {
	if s == nil || cam == nil || l.Spacing <= 0 {
		return
	}
	shift := cam.X*l.Factor + l.Offset
	start := -shift
	for start > 0 {
		start -= l.Spacing
	}
	for x := start; x < cam.ViewW; x += l.Spacing {
		s.FillRect(x, l.Y-cam.Y*l.Factor, l.Spacing/2, l.Height, l.Color)
	}
}
