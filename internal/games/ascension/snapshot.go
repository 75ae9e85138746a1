package ascension

import "github.com/vovakirdan/ascension/internal/games/ascension/core"

// Status is the coarse session status reported in snapshots.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPlaying   Status = "playing"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusTooSmall  Status = "paused_small_window"
)

// Snapshot captures the session for determinism testing and replay.
type Snapshot struct {
	Frame         uint64
	Level         int
	Status        Status
	EndReason     core.EndReason
	X, Y          int
	Energy        int
	Mastery       float64
	Coins         int
	TimeRemaining int
	Equipped      []string
	PathChoices   int
	Encounters    int
	Selections    int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.Session()

	status := StatusIdle
	switch {
	case g.tooSmall:
		status = StatusTooSmall
	case s.IsCompleted:
		status = StatusCompleted
	case s.IsPaused:
		status = StatusPaused
	case s.IsPlaying:
		status = StatusPlaying
	}

	equipped := make([]string, len(s.EquippedTools))
	for i, t := range s.EquippedTools {
		equipped[i] = t.ID
	}

	return Snapshot{
		Frame:         g.frame,
		Level:         s.CurrentLevel,
		Status:        status,
		EndReason:     s.EndReason,
		X:             s.PlayerPosition.X,
		Y:             s.PlayerPosition.Y,
		Energy:        s.Energy,
		Mastery:       s.AIMastery,
		Coins:         s.Coins,
		TimeRemaining: s.TimeRemaining,
		Equipped:      equipped,
		PathChoices:   len(s.CollectedData.PathChoices),
		Encounters:    len(s.CollectedData.MonsterEncounters),
		Selections:    len(s.CollectedData.ToolSelections),
	}
}
