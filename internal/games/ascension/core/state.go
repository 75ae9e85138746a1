package core

import "time"

// Rules are the tunable session parameters. DefaultRules matches the
// standard game; config presets adjust them.
type Rules struct {
	SessionSeconds   int           // Countdown length
	StartEnergy      int           // Energy at session start
	MaxMastery       float64       // AI mastery ceiling
	ToolSlots        int           // Equipped tool capacity
	CoinCooldown     time.Duration // Suppression window after a coin grant
	EnforceToolGates bool          // Reject equips the player cannot afford
	EndOnExhaustion  bool          // End the session when energy reaches zero
}

// DefaultRules returns the standard session rules.
func DefaultRules() Rules {
	return Rules{
		SessionSeconds:   600,
		StartEnergy:      300,
		MaxMastery:       100,
		ToolSlots:        3,
		CoinCooldown:     5 * time.Second,
		EnforceToolGates: true,
		EndOnExhaustion:  false,
	}
}

// EndReason records why a session completed.
type EndReason string

const (
	EndNone       EndReason = ""
	EndPortal     EndReason = "portal"
	EndTimeout    EndReason = "timeout"
	EndExhaustion EndReason = "exhaustion"
)

// ToolSelection logs a tool being equipped or unequipped.
type ToolSelection struct {
	ToolID    string    `json:"toolId"`
	ToolType  ToolType  `json:"toolType"`
	Position  Position  `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

// PathChoice logs a committed single-cell move.
type PathChoice struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// MonsterEncounter logs a resolved encounter.
type MonsterEncounter struct {
	MonsterID     string      `json:"monsterId"`
	MonsterType   MonsterType `json:"monsterType"`
	ToolsUsed     []string    `json:"toolsUsed"`
	Effectiveness float64     `json:"effectiveness"`
	EnergyCost    int         `json:"energyCost"`
	Position      Position    `json:"position"`
	Timestamp     time.Time   `json:"timestamp"`
}

// PortalUse logs the player stepping through a portal.
type PortalUse struct {
	PortalID  string    `json:"portalId"`
	Level     int       `json:"level"`
	Position  Position  `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

// GameData is the session's action log. Every list is append-only.
// CollectedCoins is transient: it holds coin keys inside their cooldown
// window and is not part of the serialized log.
type GameData struct {
	ToolSelections    []ToolSelection    `json:"toolSelections"`
	PathChoices       []PathChoice       `json:"pathChoices"`
	MonsterEncounters []MonsterEncounter `json:"monsterEncounters"`
	PortalUsage       []PortalUse        `json:"portalUsage"`
	TimeSpent         int                `json:"timeSpent"` // seconds
	CollectedCoins    map[string]bool    `json:"-"`
}

// Clone returns a deep copy of the log.
func (d GameData) Clone() GameData {
	out := GameData{
		ToolSelections:    append([]ToolSelection(nil), d.ToolSelections...),
		PathChoices:       append([]PathChoice(nil), d.PathChoices...),
		MonsterEncounters: make([]MonsterEncounter, len(d.MonsterEncounters)),
		PortalUsage:       append([]PortalUse(nil), d.PortalUsage...),
		TimeSpent:         d.TimeSpent,
		CollectedCoins:    make(map[string]bool, len(d.CollectedCoins)),
	}
	for i, e := range d.MonsterEncounters {
		e.ToolsUsed = append([]string(nil), e.ToolsUsed...)
		out.MonsterEncounters[i] = e
	}
	for k, v := range d.CollectedCoins {
		out.CollectedCoins[k] = v
	}
	return out
}

// GameState is the root aggregate of one session. Valid status triplets
// are playing, playing+paused, and completed; a fresh state is idle.
type GameState struct {
	IsPlaying      bool      `json:"isPlaying"`
	IsPaused       bool      `json:"isPaused"`
	IsCompleted    bool      `json:"isCompleted"`
	EndReason      EndReason `json:"endReason,omitempty"`
	CurrentLevel   int       `json:"currentLevel"`
	PlayerPosition Position  `json:"playerPosition"`
	Energy         int       `json:"energy"`
	AIMastery      float64   `json:"aiMastery"`
	Coins          int       `json:"coins"`
	TimeRemaining  int       `json:"timeRemaining"`
	EquippedTools  []Tool    `json:"equippedTools"`
	CollectedData  GameData  `json:"collectedData"`
}

// NewGameState returns an idle state holding the initial resources.
func NewGameState(rules Rules, level int) GameState {
	if level < 1 {
		level = 1
	}
	return GameState{
		CurrentLevel:   level,
		PlayerPosition: StartPosition,
		Energy:         rules.StartEnergy,
		TimeRemaining:  rules.SessionSeconds,
		EquippedTools:  []Tool{},
		CollectedData:  GameData{CollectedCoins: map[string]bool{}},
	}
}

// Active reports whether player input and the timer currently apply.
func (s GameState) Active() bool {
	return s.IsPlaying && !s.IsPaused
}

// Clone returns a deep copy safe to mutate.
func (s GameState) Clone() GameState {
	out := s
	out.EquippedTools = append([]Tool(nil), s.EquippedTools...)
	out.CollectedData = s.CollectedData.Clone()
	return out
}

// HasTool reports whether a tool with the given ID is equipped.
func (s GameState) HasTool(id string) bool {
	return s.toolSlot(id) >= 0
}

func (s GameState) toolSlot(id string) int {
	for i, t := range s.EquippedTools {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CanEquip reports whether the player meets a tool's coin and mastery gates.
func (s GameState) CanEquip(t Tool) bool {
	return s.Coins >= t.Cost && s.AIMastery >= t.RequiredMastery
}
