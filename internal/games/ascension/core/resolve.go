package core

import "math"

// Encounter resolution constants.
const (
	baseEffectiveness = 1.0
	baseEnergyCost    = 50.0
	energyPerEffect   = 10.0
	minEnergyCost     = 10.0
	maxMasteryGain    = 5.0
)

// Effectiveness returns 1 plus the sum of every tool's multiplier against
// the monster type.
func Effectiveness(tools []Tool, m MonsterType) float64 {
	eff := baseEffectiveness
	for _, t := range tools {
		eff += t.Effectiveness.Against(m)
	}
	return eff
}

// EnergyCost returns max(10, 50 - effectiveness*10), rounded to whole energy.
func EnergyCost(effectiveness float64) int {
	return int(math.Round(math.Max(minEnergyCost, baseEnergyCost-effectiveness*energyPerEffect)))
}

// MasteryGain returns min(effectiveness, 5).
func MasteryGain(effectiveness float64) float64 {
	return math.Min(effectiveness, maxMasteryGain)
}

// EncounterOutcome is the computed result of facing a monster.
type EncounterOutcome struct {
	Effectiveness float64
	EnergyCost    int
	MasteryGain   float64
}

// ResolveEncounter computes the outcome of facing a monster with the given tools.
func ResolveEncounter(tools []Tool, m Monster) EncounterOutcome {
	eff := Effectiveness(tools, m.Type)
	return EncounterOutcome{
		Effectiveness: eff,
		EnergyCost:    EnergyCost(eff),
		MasteryGain:   MasteryGain(eff),
	}
}

// EntryOutcome describes what entering a cell does.
type EntryOutcome struct {
	CoinGranted bool     // Coin cell outside its cooldown window
	Completed   bool     // Portal reached
	Encounter   *Monster // Monster occupying the cell
}

// ResolveEntry computes the outcome of entering cell c. cooling holds the
// keys of coin cells still inside their cooldown window.
func ResolveEntry(c Cell, cooling map[string]bool) EntryOutcome {
	switch c.Type {
	case CellCoin:
		return EntryOutcome{CoinGranted: !cooling[c.Position.Key()]}
	case CellPortal:
		return EntryOutcome{Completed: true}
	case CellMonster:
		return EntryOutcome{Encounter: c.Monster}
	}
	return EntryOutcome{}
}
