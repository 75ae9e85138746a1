package ascension

import (
	platformcore "github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

// Camera returns the top-left board cell of a w×h window centered on
// focus. The window is clamped so it never leaves the board; windows
// larger than the board pin to the origin.
func Camera(focus core.Position, w, h int) core.Position {
	return core.P(
		cameraAxis(focus.X, w),
		cameraAxis(focus.Y, h),
	)
}

func cameraAxis(focus, span int) int {
	if span >= core.BoardSize {
		return 0
	}
	origin := focus - span/2
	return platformcore.Clamp(origin, 0, core.BoardSize-span)
}
