package obj

import "github.com/milk9111/athora/common"

// Blocked reports whether r overlaps any solid object in lvl, or any NPC
// when withNPCs is set. NPCs block the player but not each other.
func Blocked(lvl *Level, r common.Rect, withNPCs bool) bool {
	if lvl == nil {
		return false
	}
	for o := range lvl.Solids() {
		if o.Rect.Intersects(r) {
			return true
		}
	}
	if withNPCs {
		for _, n := range lvl.NPCs {
			if n.Rect.Intersects(r) {
				return true
			}
		}
	}
	return false
}

// GravityStep returns how far r may fall this tick: the full gravity step
// when free, a single pixel when only that is free, otherwise 0.
func GravityStep(lvl *Level, r common.Rect, gravity int, withNPCs bool) int {
	if gravity <= 0 {
		return 0
	}
	if !Blocked(lvl, r.Shifted(0, gravity), withNPCs) {
		return gravity
	}
	if gravity > 1 && !Blocked(lvl, r.Shifted(0, 1), withNPCs) {
		return 1
	}
	return 0
}

// Grounded reports whether r rests on something solid.
func Grounded(lvl *Level, r common.Rect, withNPCs bool) bool {
	return Blocked(lvl, r.Shifted(0, 1), withNPCs)
}

// JumpCurve precomputes the per-tick upward deltas of a jump. Values fall
// from a positive peak through zero to the matching negative value, so a
// finished jump lands at its starting height.
func JumpCurve(height, step int) []int {
	if height <= 0 || step <= 0 {
		return nil
	}
	div := height * height / 8
	if div == 0 {
		div = 1
	}
	curve := make([]int, 0, 2*height/step+1)
	for h := height; h >= -height; h -= step {
		curve = append(curve, h*common.Abs(h)/div)
	}
	return curve
}

// EdgeScroll splits a move of r by (dx, dy) into the part that should scroll
// the world instead. The leading edge of r crossing the margin band of view
// in the direction of travel turns that axis into a scroll.
func EdgeScroll(r common.Rect, dx, dy int, view common.Rect, margin float64) (sx, sy int) {
	if margin <= 0 {
		return 0, 0
	}
	left := view.X + int(float64(view.W)*margin)
	right := view.X + int(float64(view.W)*(1-margin))
	top := view.Y + int(float64(view.H)*margin)
	bottom := view.Y + int(float64(view.H)*(1-margin))

	switch {
	case dx > 0 && r.Right()+dx > right:
		sx = dx
	case dx < 0 && r.X+dx < left:
		sx = dx
	}
	switch {
	case dy > 0 && r.Bottom()+dy > bottom:
		sy = dy
	case dy < 0 && r.Y+dy < top:
		sy = dy
	}
	return sx, sy
}
