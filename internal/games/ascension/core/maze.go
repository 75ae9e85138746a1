package core

import "fmt"

// Fixed board landmarks.
var (
	StartPosition = P(1, 1)
	GoalPosition  = P(18, 18)
)

// Connector cells forced open on top of the lattice. All sit on even/even
// coordinates, which the lattice leaves as walls.
var junctions = [18]Position{
	P(2, 4), P(4, 8), P(6, 2), P(8, 12), P(10, 6), P(12, 16),
	P(14, 10), P(16, 4), P(18, 14), P(2, 14), P(4, 18), P(6, 10),
	P(8, 16), P(10, 2), P(12, 8), P(14, 14), P(16, 18), P(18, 6),
}

// Special cells. Every target has an odd coordinate so the lattice has
// already carved it before it is overwritten.
var (
	coinCells    = [3]Position{P(3, 3), P(9, 7), P(15, 13)}
	guideCell    = P(5, 1)
	monsterCells = [2]Position{P(7, 9), P(13, 15)}
)

// Level describes a themed area of the ascension.
type Level struct {
	Number   int            `json:"number"`
	Name     string         `json:"name"`
	Monsters [2]MonsterType `json:"monsters"`
	Hint     string         `json:"hint"`
}

var levels = []Level{
	{
		Number: 1, Name: "Research Foundations",
		Monsters: [2]MonsterType{PaperAvalanche, GrantGremlin},
		Hint:     "Equip tools with 1-9. AI tools hit harder but need coins and mastery.",
	},
	{
		Number: 2, Name: "Data Wilderness",
		Monsters: [2]MonsterType{DataBeast, DeadlineDragon},
		Hint:     "Analysis tools tame the Data Beast. Watch your energy.",
	},
	{
		Number: 3, Name: "Deadline Summit",
		Monsters: [2]MonsterType{GrantGremlin, DeadlineDragon},
		Hint:     "Writing copilots outpace the dragon. The portal is the summit.",
	},
}

// Levels returns the themed levels in order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// LevelInfo returns the theme for a level number. Numbers past the last
// themed level reuse the last theme; numbers below 1 use the first.
func LevelInfo(level int) Level {
	idx := clamp(level, 1, len(levels)) - 1
	info := levels[idx]
	if level > 0 {
		info.Number = level
	}
	return info
}

// Cell is one square of the maze. Monster and Portal are set only for
// cells of the matching type; Hint only for guide cells.
type Cell struct {
	Type     CellType `json:"type"`
	Position Position `json:"position"`
	Monster  *Monster `json:"monster,omitempty"`
	Portal   *Portal  `json:"portal,omitempty"`
	Hint     string   `json:"hint,omitempty"`
}

// Maze is a generated board. Cells is indexed [y][x] and is never mutated
// after generation.
type Maze struct {
	Level int                        `json:"level"`
	Cells [BoardSize][BoardSize]Cell `json:"cells"`
}

// At returns the cell at p. Out-of-board positions read as walls.
func (m *Maze) At(p Position) Cell {
	if !p.InBounds() {
		return Cell{Type: CellWall, Position: p}
	}
	return m.Cells[p.Y][p.X]
}

// Count returns how many cells have the given type.
func (m *Maze) Count(t CellType) int {
	n := 0
	for y := range m.Cells {
		for x := range m.Cells[y] {
			if m.Cells[y][x].Type == t {
				n++
			}
		}
	}
	return n
}

// Rows renders the maze as one string per row using cell glyphs.
func (m *Maze) Rows() []string {
	rows := make([]string, BoardSize)
	buf := make([]rune, BoardSize)
	for y := range m.Cells {
		for x := range m.Cells[y] {
			buf[x] = m.Cells[y][x].Type.Glyph()
		}
		rows[y] = string(buf)
	}
	return rows
}

// Generate lays out the maze for a level. It is pure: the same level always
// yields an identical board. Geometry is shared by all levels; only the
// monster pair and guide hint follow the level theme.
func Generate(level int) *Maze {
	m := &Maze{Level: level}
	info := LevelInfo(level)

	for y := range m.Cells {
		for x := range m.Cells[y] {
			m.Cells[y][x] = Cell{Type: CellWall, Position: P(x, y)}
		}
	}

	// Horizontal corridors on odd rows, vertical corridors on odd columns
	for i := 1; i < BoardSize-1; i += 2 {
		for j := 1; j < BoardSize-1; j++ {
			m.Cells[i][j].Type = CellPath
			m.Cells[j][i].Type = CellPath
		}
	}

	for _, p := range junctions {
		m.Cells[p.Y][p.X].Type = CellPath
	}
	m.Cells[StartPosition.Y][StartPosition.X].Type = CellPath
	m.Cells[GoalPosition.Y][GoalPosition.X].Type = CellPath

	for _, p := range coinCells {
		m.Cells[p.Y][p.X].Type = CellCoin
	}

	guide := &m.Cells[guideCell.Y][guideCell.X]
	guide.Type = CellGuide
	guide.Hint = info.Hint

	for i, p := range monsterCells {
		monster := NewMonster(fmt.Sprintf("monster-%d-%d", level, i+1), info.Monsters[i%2])
		c := &m.Cells[p.Y][p.X]
		c.Type = CellMonster
		c.Monster = &monster
	}

	goal := &m.Cells[GoalPosition.Y][GoalPosition.X]
	goal.Type = CellPortal
	goal.Portal = &Portal{
		ID:          fmt.Sprintf("exit-portal-%d", level),
		Name:        "Ascension Portal",
		Destination: level + 1,
		Description: "Step through to complete " + info.Name + ".",
	}

	return m
}
