package collision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testShape struct {
	x, y, w, h float64
	box        Box
}

func (s testShape) Frame() (x, y, w, h float64) { return s.x, s.y, s.w, s.h }
func (s testShape) CollisionBox() Box           { return s.box }

func TestRectangleCollision(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 20, 20}, Rect{5, 5, 2, 2}, true},
		{"touching right edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"touching bottom edge", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"touching corner", Rect{0, 0, 10, 10}, Rect{10, 10, 10, 10}, false},
		{"separate", Rect{0, 0, 10, 10}, Rect{30, 30, 5, 5}, false},
		{"x overlap only", Rect{0, 0, 10, 10}, Rect{5, 20, 10, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RectangleCollision(tt.a, tt.b))
			assert.Equal(t, RectangleCollision(tt.a, tt.b), RectangleCollision(tt.b, tt.a), "must be symmetric")
		})
	}
}

func TestRectangleCollision_SymmetryGrid(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 8, H: 6}
	for dx := -12.0; dx <= 12; dx += 2 {
		for dy := -10.0; dy <= 10; dy += 2 {
			other := Rect{X: 10 + dx, Y: 10 + dy, W: 8, H: 6}
			assert.Equal(t, RectangleCollision(base, other), RectangleCollision(other, base))
		}
	}
}

func TestCircleCollision(t *testing.T) {
	assert.True(t, CircleCollision(Circle{0, 0, 5}, Circle{8, 0, 5}))
	assert.False(t, CircleCollision(Circle{0, 0, 5}, Circle{10, 0, 5}), "touching circles do not overlap")
	assert.False(t, CircleCollision(Circle{0, 0, 1}, Circle{10, 10, 1}))
}

func TestPointInRectangle(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, PointInRectangle(0, 0, r))
	assert.True(t, PointInRectangle(9.9, 9.9, r))
	assert.False(t, PointInRectangle(10, 5, r))
	assert.False(t, PointInRectangle(-1, 5, r))
}

func TestGetCollisionBounds(t *testing.T) {
	t.Run("uses box offset and size", func(t *testing.T) {
		s := testShape{x: 100, y: 50, w: 32, h: 32, box: Box{OffsetX: 8, OffsetY: 4, Width: 16, Height: 28}}
		assert.Equal(t, Rect{X: 108, Y: 54, W: 16, H: 28}, GetCollisionBounds(s))
	})

	t.Run("falls back to visual size", func(t *testing.T) {
		s := testShape{x: 10, y: 20, w: 12, h: 14}
		assert.Equal(t, Rect{X: 10, Y: 20, W: 12, H: 14}, GetCollisionBounds(s))
	})
}

func TestEntityCollision(t *testing.T) {
	// Visual boxes overlap but collision boxes do not
	a := testShape{x: 0, y: 0, w: 32, h: 32, box: Box{OffsetX: 0, Width: 10, Height: 32}}
	b := testShape{x: 20, y: 0, w: 32, h: 32, box: Box{OffsetX: 0, Width: 10, Height: 32}}
	assert.False(t, EntityCollision(a, b))

	b.x = 5
	assert.True(t, EntityCollision(a, b))
	assert.False(t, EntityCollision(a, nil))
}

func TestCheckGroundCollision(t *testing.T) {
	platforms := []Rect{
		{X: 0, Y: 100, W: 50, H: 16},
		{X: 100, Y: 100, W: 50, H: 16},
	}

	tests := []struct {
		name     string
		shape    testShape
		found    bool
		expected Rect
	}{
		{"feet on platform", testShape{x: 10, y: 80, w: 10, h: 20}, true, platforms[0]},
		{"feet within tolerance above", testShape{x: 10, y: 72, w: 10, h: 20}, true, platforms[0]},
		{"feet slightly sunk", testShape{x: 110, y: 85, w: 10, h: 20}, true, platforms[1]},
		{"too far above", testShape{x: 10, y: 50, w: 10, h: 20}, false, Rect{}},
		{"over the gap", testShape{x: 60, y: 80, w: 10, h: 20}, false, Rect{}},
		{"edge touching only", testShape{x: 50, y: 80, w: 10, h: 20}, false, Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := CheckGroundCollision(tt.shape, platforms, DefaultGroundTolerance)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestCheckWallCollisions(t *testing.T) {
	wall := Rect{X: 100, Y: 0, W: 16, H: 200}

	t.Run("horizontal when x overlap smaller", func(t *testing.T) {
		s := testShape{x: 92, y: 50, w: 10, h: 20}
		contacts := CheckWallCollisions(s, []Rect{wall})
		require.Len(t, contacts, 1)
		assert.Equal(t, SideLeft, contacts[0].Side)
		assert.InDelta(t, 2.0, contacts[0].Depth, 1e-9)
	})

	t.Run("right side", func(t *testing.T) {
		s := testShape{x: 113, y: 50, w: 10, h: 20}
		contacts := CheckWallCollisions(s, []Rect{wall})
		require.Len(t, contacts, 1)
		assert.Equal(t, SideRight, contacts[0].Side)
		assert.InDelta(t, 3.0, contacts[0].Depth, 1e-9)
	})

	t.Run("vertical when y overlap smaller", func(t *testing.T) {
		floor := Rect{X: 0, Y: 100, W: 200, H: 16}
		s := testShape{x: 50, y: 83, w: 10, h: 20}
		contacts := CheckWallCollisions(s, []Rect{floor})
		require.Len(t, contacts, 1)
		assert.Equal(t, SideTop, contacts[0].Side)
		assert.InDelta(t, 3.0, contacts[0].Depth, 1e-9)
	})

	t.Run("equal overlaps resolve vertically", func(t *testing.T) {
		block := Rect{X: 100, Y: 100, W: 20, H: 20}
		s := testShape{x: 95, y: 95, w: 10, h: 10}
		contacts := CheckWallCollisions(s, []Rect{block})
		require.Len(t, contacts, 1)
		assert.False(t, contacts[0].Side.Horizontal())
		assert.Equal(t, SideTop, contacts[0].Side)
	})

	t.Run("no contact when touching", func(t *testing.T) {
		s := testShape{x: 90, y: 50, w: 10, h: 20}
		assert.Empty(t, CheckWallCollisions(s, []Rect{wall}))
	})
}

func TestDistanceAndAngle(t *testing.T) {
	a := testShape{x: 0, y: 0, w: 10, h: 10}
	b := testShape{x: 30, y: 40, w: 10, h: 10}

	assert.InDelta(t, 50.0, Distance(a, b), 1e-9)
	assert.InDelta(t, math.Atan2(40, 30), AngleBetween(a, b), 1e-9)
	assert.InDelta(t, 0.0, Distance(a, a), 1e-9)
}

func TestSide_String(t *testing.T) {
	tests := []struct {
		side     Side
		expected string
	}{
		{SideLeft, "left"},
		{SideRight, "right"},
		{SideTop, "top"},
		{SideBottom, "bottom"},
		{SideNone, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.side.String())
		})
	}
}
