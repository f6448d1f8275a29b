package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 32, 32)
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", NewRect(16, 16, 32, 32), true},
		{"contained", NewRect(4, 4, 8, 8), true},
		{"touching_right_edge", NewRect(32, 0, 32, 32), false},
		{"touching_bottom_edge", NewRect(0, 32, 32, 32), false},
		{"one_pixel_in", NewRect(31, 31, 32, 32), true},
		{"apart", NewRect(100, 100, 4, 4), false},
		{"negative_side", NewRect(-32, 0, 32, 32), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, base.Intersects(c.other))
			assert.Equal(t, c.want, c.other.Intersects(base), "intersection must be symmetric")
		})
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := NewRect(10, 10, 5, 5)
	assert.True(t, r.ContainsPoint(10, 10))
	assert.True(t, r.ContainsPoint(14, 14))
	assert.False(t, r.ContainsPoint(15, 10))
	assert.False(t, r.ContainsPoint(10, 15))
	assert.False(t, r.ContainsPoint(9, 12))
}

func TestRectTranslateRoundTrip(t *testing.T) {
	r := NewRect(3, -7, 10, 20)
	orig := r
	r.Translate(17, -4)
	assert.Equal(t, NewRect(20, -11, 10, 20), r)
	r.Translate(-17, 4)
	assert.Equal(t, orig, r)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(12, 0, 10))
	assert.Equal(t, 4, Clamp(4, 0, 10))
	assert.Equal(t, 5, Abs(-5))
}
