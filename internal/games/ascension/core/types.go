// Package core provides the game logic for the Ascension research maze.
// This package is UI-agnostic and deterministic: time only enters through
// explicit timestamps and scheduler messages.
package core

import (
	"fmt"
	"strconv"
)

// BoardSize is the width and height of every maze.
const BoardSize = 20

// Position is a cell coordinate on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// Key returns the "x,y" key used for per-cell bookkeeping.
func (p Position) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Step returns the neighbouring position in direction d, clamped to the board.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: clamp(p.X+dx, 0, BoardSize-1), Y: clamp(p.Y+dy, 0, BoardSize-1)}
}

// Direction is one of the four movement directions.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{"up", "down", "left", "right"}

// String returns the lowercase direction name.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// CellType is the immutable kind of a maze cell.
type CellType uint8

const (
	CellWall CellType = iota
	CellPath
	CellCoin
	CellMonster
	CellPortal
	CellTool
	CellGuide
)

var cellTypeNames = [...]string{"wall", "path", "coin", "monster", "portal", "tool", "guide"}

// String returns the snake_case cell type name.
func (c CellType) String() string {
	if int(c) < len(cellTypeNames) {
		return cellTypeNames[c]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c CellType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

var cellGlyphs = [...]rune{'#', '.', '$', 'M', 'O', 'T', '?'}

// Glyph returns the single-character map symbol for the cell type.
func (c CellType) Glyph() rune {
	if int(c) < len(cellGlyphs) {
		return cellGlyphs[c]
	}
	return '#'
}

// Walkable reports whether the player may enter a cell of this type.
func (c CellType) Walkable() bool {
	return c != CellWall
}

// MonsterType identifies a monster archetype.
type MonsterType uint8

const (
	PaperAvalanche MonsterType = iota
	GrantGremlin
	DataBeast
	DeadlineDragon

	monsterTypeCount
)

var monsterTypeNames = [monsterTypeCount]string{
	PaperAvalanche: "paper_avalanche",
	GrantGremlin:   "grant_gremlin",
	DataBeast:      "data_beast",
	DeadlineDragon: "deadline_dragon",
}

// MonsterTypes returns every monster type in declaration order.
func MonsterTypes() []MonsterType {
	return []MonsterType{PaperAvalanche, GrantGremlin, DataBeast, DeadlineDragon}
}

// String returns the snake_case monster type name.
func (m MonsterType) String() string {
	if m < monsterTypeCount {
		return monsterTypeNames[m]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (m MonsterType) MarshalText() ([]byte, error) {
	if m >= monsterTypeCount {
		return nil, fmt.Errorf("unknown monster type %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MonsterType) UnmarshalText(text []byte) error {
	for i, name := range monsterTypeNames {
		if name == string(text) {
			*m = MonsterType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown monster type %q", text)
}

// ToolType is the adoption tier of a tool: legacy < hybrid < ai.
type ToolType uint8

const (
	ToolLegacy ToolType = iota
	ToolHybrid
	ToolAI
)

var toolTypeNames = [...]string{"legacy", "hybrid", "ai"}

// String returns the tier name.
func (t ToolType) String() string {
	if int(t) < len(toolTypeNames) {
		return toolTypeNames[t]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t ToolType) MarshalText() ([]byte, error) {
	if int(t) >= len(toolTypeNames) {
		return nil, fmt.Errorf("unknown tool type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ToolType) UnmarshalText(text []byte) error {
	for i, name := range toolTypeNames {
		if name == string(text) {
			*t = ToolType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tool type %q", text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
