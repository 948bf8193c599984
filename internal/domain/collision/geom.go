// Package collision provides the stateless geometry used by every collision
// check in the simulation: axis-aligned boxes, circles and the collision-box
// extraction that maps an entity to the box it actually collides with.
package collision

// Rect is an axis-aligned box in world pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Offset returns the rect moved by dx, dy
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inflate grows the rect by m on every side
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Box is the collision box of an entity relative to its position.
// A zero Width or Height means "use the visual size".
type Box struct {
	OffsetX, OffsetY float64
	Width, Height    float64
}

// Circle is a circle in world pixels.
type Circle struct {
	X, Y, R float64
}

// Shape is anything with a visual frame and a collision box.
type Shape interface {
	// Frame returns the visual position and size.
	Frame() (x, y, w, h float64)
	// CollisionBox returns the collision box relative to the frame origin.
	CollisionBox() Box
}

// Side names which face of an obstacle a contact was resolved against.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Horizontal reports whether the side separates on the x axis
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}
