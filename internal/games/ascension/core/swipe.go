package core

// DefaultSwipeThreshold is the minimum displacement of a press-and-release
// gesture, in pointer units, before it counts as a move.
const DefaultSwipeThreshold = 30.0

// SwipeDirection maps a gesture displacement to a direction along the
// dominant axis. Gestures within the threshold map to nothing.
func SwipeDirection(dx, dy, threshold float64) (Direction, bool) {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}

	if ax > ay {
		if ax <= threshold {
			return 0, false
		}
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}

	if ay <= threshold {
		return 0, false
	}
	if dy > 0 {
		return DirDown, true
	}
	return DirUp, true
}
