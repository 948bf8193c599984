package entity

import "math"

// Item types
const (
	ItemCoin  = "coin"
	ItemHeart = "heart"
	ItemRock  = "rock"
)

// Item is a pickup
type Item struct {
	Entity

	ItemType string
	Amount   int

	Collectible       bool
	MagnetRange       float64
	MagnetSpeed       float64
	AutoCollect       bool
	AutoCollectRadius float64
	Collected         bool

	Lifetime    float64 // 0 = permanent
	Age         float64
	BlinkWindow float64
}

// NewItem creates a collectible item
func NewItem(itemType string, amount int, x, y, w, h float64) *Item {
	return &Item{
		Entity:      NewEntity(KindItem, x, y, w, h),
		ItemType:    itemType,
		Amount:      amount,
		Collectible: true,
	}
}

// Update advances lifetime and animation. Physics is driven by the
// collision system.
func (i *Item) Update(dt float64) {
	if !i.Active {
		return
	}
	i.Age += dt
	if i.Lifetime > 0 && i.Age >= i.Lifetime {
		i.Active = false
		return
	}
	i.Anim.Update(dt)
}

// Blinking reports whether the item is inside its expiry warning window
func (i *Item) Blinking() bool {
	if i.Lifetime <= 0 || i.BlinkWindow <= 0 {
		return false
	}
	return i.Lifetime-i.Age <= i.BlinkWindow
}

// Collect marks the item collected. Only the first call succeeds.
func (i *Item) Collect() bool {
	if !i.Active || !i.Collectible || i.Collected {
		return false
	}
	i.Collected = true
	i.Active = false
	return true
}

// Render skips every other tenth of a second while blinking
func (i *Item) Render(s Surface, cam *Camera) {
	if i.Blinking() && int(math.Floor(i.Age*10))%2 == 1 {
		return
	}
	i.Entity.Render(s, cam)
}
