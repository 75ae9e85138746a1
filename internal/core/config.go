package core

// RuntimeConfig contains configuration passed to a game at initialization.
// The game uses it to size its viewport and to convert frames to time.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second driven by the platform (default 30)
	Level    int // Level to start on (1-indexed)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Level:    1,
	}
}

// GameState represents the status flags of a game session.
// Returned by the game to communicate status to the platform.
type GameState struct {
	Playing   bool // Session is running (possibly paused)
	Paused    bool // Timer and input are suspended
	Completed bool // Session ended through the portal or timeout
}

// StepResult is returned after each platform frame.
type StepResult struct {
	State GameState
	Ended bool // True only on the frame the session ended
}
