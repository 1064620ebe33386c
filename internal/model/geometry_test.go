package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 50, Y: 50, W: 100, H: 100}
	got := a.Intersect(b)
	assert.Equal(t, Rect{X: 50, Y: 50, W: 50, H: 50}, got)
}

func TestRectIntersectNoOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 20, Y: 20, W: 10, H: 10}
	got := a.Intersect(b)
	assert.Zero(t, got.Area(), "expected zero-area intersection, got %+v", got)
}

func TestImageShapeBoxRotation(t *testing.T) {
	s := ImageShape{X: 10, Y: 20, W: 200, H: 100}
	box := s.Box()
	assert.Equal(t, 200, box.W)
	assert.Equal(t, 100, box.H)

	rotated := s.Rotate(90)
	box = rotated.Box()
	assert.Equal(t, 100, box.W, "expected swapped dims after 90deg rotation")
	assert.Equal(t, 200, box.H, "expected swapped dims after 90deg rotation")

	twice := rotated.Rotate(90)
	box = twice.Box()
	assert.Equal(t, 200, box.W, "expected original dims after 180deg rotation")
	assert.Equal(t, 100, box.H, "expected original dims after 180deg rotation")
}

func TestHomeImageShapes(t *testing.T) {
	shapes := []ImageShape{
		{X: 10, Y: 5, W: 50, H: 50},
		{X: -10, Y: 20, W: 30, H: 30},
	}
	homed := HomeImageShapes(shapes)
	for _, s := range homed {
		assert.GreaterOrEqual(t, s.Box().X, 0)
		assert.GreaterOrEqual(t, s.Box().Y, 0)
	}
	assert.Equal(t, 20, homed[0].X, "expected shape 0 shifted by 10")
}
