package collision

import "math"

// DefaultGroundTolerance is the vertical snap distance used by CheckGroundCollision.
const DefaultGroundTolerance = 10.0

// RectangleCollision reports whether two boxes overlap on both axes.
// Touching edges do not count.
func RectangleCollision(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// CircleCollision reports whether two circles overlap.
func CircleCollision(a, b Circle) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := a.R + b.R
	return dx*dx+dy*dy < r*r
}

// PointInRectangle reports whether the point lies inside the half-open box.
func PointInRectangle(px, py float64, r Rect) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// GetCollisionBounds returns the world-space collision box of s.
func GetCollisionBounds(s Shape) Rect {
	x, y, w, h := s.Frame()
	box := s.CollisionBox()
	bw, bh := box.Width, box.Height
	if bw <= 0 {
		bw = w
	}
	if bh <= 0 {
		bh = h
	}
	return Rect{X: x + box.OffsetX, Y: y + box.OffsetY, W: bw, H: bh}
}

// EntityCollision runs RectangleCollision over both collision boxes.
func EntityCollision(a, b Shape) bool {
	if a == nil || b == nil {
		return false
	}
	return RectangleCollision(GetCollisionBounds(a), GetCollisionBounds(b))
}

// CheckGroundCollision returns the first platform whose top edge is within
// tolerance of the feet of s while overlapping it horizontally.
func CheckGroundCollision(s Shape, platforms []Rect, tolerance float64) (Rect, bool) {
	b := GetCollisionBounds(s)
	feet := b.Bottom()
	for _, p := range platforms {
		if b.X >= p.X+p.W || b.X+b.W <= p.X {
			continue
		}
		if math.Abs(p.Y-feet) <= tolerance {
			return p, true
		}
	}
	return Rect{}, false
}

// Contact is one resolved overlap against a wall.
// Side is the face of the wall the shape is on: SideLeft means the shape
// must be pushed left by Depth, SideTop means pushed up, and so on.
type Contact struct {
	Wall  Rect
	Side  Side
	Depth float64
}

// CheckWallCollisions returns a contact for every wall overlapping s.
// The axis with the smaller overlap separates; equal overlaps resolve
// vertically.
func CheckWallCollisions(s Shape, walls []Rect) []Contact {
	b := GetCollisionBounds(s)
	var contacts []Contact
	for _, w := range walls {
		if c, ok := wallContact(b, w); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// WallContact resolves a single box against a single wall.
func WallContact(b, wall Rect) (Contact, bool) {
	return wallContact(b, wall)
}

func wallContact(b, w Rect) (Contact, bool) {
	if !RectangleCollision(b, w) {
		return Contact{}, false
	}
	overlapX := math.Min(b.Right(), w.Right()) - math.Max(b.X, w.X)
	overlapY := math.Min(b.Bottom(), w.Bottom()) - math.Max(b.Y, w.Y)

	if overlapX < overlapY {
		if b.CenterX() < w.CenterX() {
			return Contact{Wall: w, Side: SideLeft, Depth: overlapX}, true
		}
		return Contact{Wall: w, Side: SideRight, Depth: overlapX}, true
	}
	if b.CenterY() < w.CenterY() {
		return Contact{Wall: w, Side: SideTop, Depth: overlapY}, true
	}
	return Contact{Wall: w, Side: SideBottom, Depth: overlapY}, true
}

// Distance returns the center-to-center distance of two collision boxes.
func Distance(a, b Shape) float64 {
	ra, rb := GetCollisionBounds(a), GetCollisionBounds(b)
	return math.Hypot(rb.CenterX()-ra.CenterX(), rb.CenterY()-ra.CenterY())
}

// AngleBetween returns the angle in radians from a's center to b's center.
func AngleBetween(a, b Shape) float64 {
	ra, rb := GetCollisionBounds(a), GetCollisionBounds(b)
	return math.Atan2(rb.CenterY()-ra.CenterY(), rb.CenterX()-ra.CenterX())
}
