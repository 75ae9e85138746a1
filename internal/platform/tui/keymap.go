package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension"
	engine "github.com/vovakirdan/ascension/internal/games/ascension/core"
)

// Terminal cells are converted to pointer units before the swipe threshold
// is applied. A cell is roughly 8x16 pixels in common terminal fonts.
const (
	swipeUnitsPerColumn = 8.0
	swipeUnitsPerRow    = 16.0
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p", " ":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	// Digits select catalog tools
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.ToolAction(int(key[0] - '1')), false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionHistory
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionHistory
	}

	return MenuActionNone
}

// SwipeTracker turns a mouse press followed by a release into a move.
type SwipeTracker struct {
	threshold float64
	pressed   bool
	startX    int
	startY    int
}

// NewSwipeTracker creates a tracker. A non-positive threshold uses the default.
func NewSwipeTracker(threshold float64) SwipeTracker {
	if threshold <= 0 {
		threshold = engine.DefaultSwipeThreshold
	}
	return SwipeTracker{threshold: threshold}
}

// Handle consumes a mouse message and reports the move action produced by
// a completed gesture, if any.
func (st *SwipeTracker) Handle(msg tea.MouseMsg) (core.Action, bool) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return core.ActionNone, false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		st.pressed = true
		st.startX = msg.X
		st.startY = msg.Y
	case tea.MouseActionRelease:
		if !st.pressed {
			return core.ActionNone, false
		}
		st.pressed = false
		dx := float64(msg.X-st.startX) * swipeUnitsPerColumn
		dy := float64(msg.Y-st.startY) * swipeUnitsPerRow
		dir, ok := engine.SwipeDirection(dx, dy, st.threshold)
		if !ok {
			return core.ActionNone, false
		}
		return ascension.ActionForDirection(dir), true
	}
	return core.ActionNone, false
}
