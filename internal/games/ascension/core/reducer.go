package core

import "time"

// Effect is a side effect requested by a reducer. The controller carries
// them out; reducers never touch timers or callbacks themselves.
type Effect interface {
	isEffect()
}

// ScheduleCoinExpiry asks for an ExpireCoin after the cooldown.
type ScheduleCoinExpiry struct {
	Key   string
	After time.Duration
}

// SessionEnded reports that the session just completed.
type SessionEnded struct {
	Reason EndReason
}

func (ScheduleCoinExpiry) isEffect() {}
func (SessionEnded) isEffect()       {}

// StartGame returns a fresh playing state: resources and the log are reset,
// the timer is full and the player stands on the start cell.
func StartGame(rules Rules, level int) GameState {
	s := NewGameState(rules, level)
	s.IsPlaying = true
	return s
}

// PauseGame toggles the pause flag of a playing session. It is not blocked
// by the pause guard, but completed or idle sessions stay unchanged.
func PauseGame(s GameState) GameState {
	if !s.IsPlaying {
		return s
	}
	s.IsPaused = !s.IsPaused
	return s
}

// MovePlayer moves the player one cell. Moves into walls or off the board
// leave the state untouched and are not logged.
func MovePlayer(s GameState, m *Maze, rules Rules, dir Direction, now time.Time) (GameState, []Effect) {
	if !s.Active() {
		return s, nil
	}

	from := s.PlayerPosition
	to := from.Step(dir)
	if to == from {
		return s, nil
	}
	cell := m.At(to)
	if !cell.Type.Walkable() {
		return s, nil
	}

	next := s.Clone()
	next.PlayerPosition = to

	var effects []Effect
	outcome := ResolveEntry(cell, next.CollectedData.CollectedCoins)
	if outcome.CoinGranted {
		key := to.Key()
		next.Coins++
		next.CollectedData.CollectedCoins[key] = true
		effects = append(effects, ScheduleCoinExpiry{Key: key, After: rules.CoinCooldown})
	}
	if outcome.Completed {
		portalID := ""
		if cell.Portal != nil {
			portalID = cell.Portal.ID
		}
		next.CollectedData.PortalUsage = append(next.CollectedData.PortalUsage, PortalUse{
			PortalID:  portalID,
			Level:     next.CurrentLevel,
			Position:  to,
			Timestamp: now,
		})
		next = complete(next, EndPortal)
		effects = append(effects, SessionEnded{Reason: EndPortal})
	}

	next.CollectedData.PathChoices = append(next.CollectedData.PathChoices, PathChoice{
		From:      from,
		To:        to,
		Timestamp: now,
	})
	return next, effects
}

// SelectTool toggles a tool: unequip if equipped, else append while slots
// remain, else overwrite slot 0. With gates enforced an unaffordable equip
// is a silent no-op. Coins are never debited.
func SelectTool(s GameState, rules Rules, tool Tool, now time.Time) GameState {
	if !s.Active() {
		return s
	}

	slot := s.toolSlot(tool.ID)
	if slot < 0 && rules.EnforceToolGates && !s.CanEquip(tool) {
		return s
	}

	next := s.Clone()
	switch {
	case slot >= 0:
		next.EquippedTools = append(next.EquippedTools[:slot], next.EquippedTools[slot+1:]...)
	case len(next.EquippedTools) < rules.ToolSlots:
		next.EquippedTools = append(next.EquippedTools, tool)
	case len(next.EquippedTools) > 0:
		next.EquippedTools[0] = tool
	}

	next.CollectedData.ToolSelections = append(next.CollectedData.ToolSelections, ToolSelection{
		ToolID:    tool.ID,
		ToolType:  tool.Type,
		Position:  s.PlayerPosition,
		Timestamp: now,
	})
	return next
}

// HandleMonsterEncounter resolves an encounter with the equipped tools:
// energy drops by the energy cost (floor 0) and mastery rises by the gain
// (ceiling MaxMastery).
func HandleMonsterEncounter(s GameState, rules Rules, monster Monster, now time.Time) (GameState, []Effect) {
	if !s.Active() {
		return s, nil
	}

	outcome := ResolveEncounter(s.EquippedTools, monster)

	next := s.Clone()
	next.Energy = max(0, next.Energy-outcome.EnergyCost)
	next.AIMastery = min(rules.MaxMastery, next.AIMastery+outcome.MasteryGain)

	used := make([]string, len(s.EquippedTools))
	for i, t := range s.EquippedTools {
		used[i] = t.ID
	}
	next.CollectedData.MonsterEncounters = append(next.CollectedData.MonsterEncounters, MonsterEncounter{
		MonsterID:     monster.ID,
		MonsterType:   monster.Type,
		ToolsUsed:     used,
		Effectiveness: outcome.Effectiveness,
		EnergyCost:    outcome.EnergyCost,
		Position:      s.PlayerPosition,
		Timestamp:     now,
	})

	if rules.EndOnExhaustion && next.Energy == 0 {
		next = complete(next, EndExhaustion)
		return next, []Effect{SessionEnded{Reason: EndExhaustion}}
	}
	return next, nil
}

// Tick applies one elapsed second. Reaching zero forces completion;
// otherwise the time spent grows by one.
func Tick(s GameState) (GameState, []Effect) {
	if !s.Active() {
		return s, nil
	}

	s.TimeRemaining = max(0, s.TimeRemaining-1)
	if s.TimeRemaining == 0 {
		return complete(s, EndTimeout), []Effect{SessionEnded{Reason: EndTimeout}}
	}
	s.CollectedData.TimeSpent++
	return s, nil
}

// ExpireCoin ends the cooldown window of a coin cell. Cooldowns run
// independently of pause and play status.
func ExpireCoin(s GameState, key string) GameState {
	if !s.CollectedData.CollectedCoins[key] {
		return s
	}
	next := s.Clone()
	delete(next.CollectedData.CollectedCoins, key)
	return next
}

func complete(s GameState, reason EndReason) GameState {
	s.IsPlaying = false
	s.IsPaused = false
	s.IsCompleted = true
	s.EndReason = reason
	return s
}
