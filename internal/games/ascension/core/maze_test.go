package core_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

func TestGenerateDeterministic(t *testing.T) {
	for level := 1; level <= 4; level++ {
		a := core.Generate(level)
		b := core.Generate(level)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("level %d: two generations differ", level)
		}
	}
}

func TestGenerateCounts(t *testing.T) {
	m := core.Generate(1)

	tests := []struct {
		cell core.CellType
		want int
	}{
		{core.CellCoin, 3},
		{core.CellMonster, 2},
		{core.CellGuide, 1},
		{core.CellPortal, 1},
		{core.CellTool, 0},
	}
	for _, tt := range tests {
		t.Run(tt.cell.String(), func(t *testing.T) {
			if got := m.Count(tt.cell); got != tt.want {
				t.Errorf("Count(%v) = %d, want %d", tt.cell, got, tt.want)
			}
		})
	}
}

func TestGenerateLandmarks(t *testing.T) {
	m := core.Generate(1)

	if c := m.At(core.StartPosition); c.Type != core.CellPath {
		t.Errorf("start cell = %v, want path", c.Type)
	}
	goal := m.At(core.GoalPosition)
	if goal.Type != core.CellPortal || goal.Portal == nil {
		t.Fatalf("goal cell = %v, want portal with record", goal.Type)
	}
	if goal.Portal.ID != "exit-portal-1" {
		t.Errorf("portal ID = %q", goal.Portal.ID)
	}
	if c := m.At(core.P(5, 1)); c.Type != core.CellGuide || c.Hint == "" {
		t.Errorf("guide cell = %v with hint %q", c.Type, c.Hint)
	}
	for _, p := range []core.Position{core.P(3, 3), core.P(9, 7), core.P(15, 13)} {
		if c := m.At(p); c.Type != core.CellCoin {
			t.Errorf("cell %v = %v, want coin", p, c.Type)
		}
	}
}

func TestGenerateBorderIsWall(t *testing.T) {
	m := core.Generate(1)
	last := core.BoardSize - 1
	for i := 0; i < core.BoardSize; i++ {
		for _, p := range []core.Position{core.P(i, 0), core.P(i, last), core.P(0, i), core.P(last, i)} {
			if c := m.At(p); c.Type != core.CellWall {
				t.Errorf("border cell %v = %v, want wall", p, c.Type)
			}
		}
	}
}

func TestAtOutOfBoardIsWall(t *testing.T) {
	m := core.Generate(1)
	for _, p := range []core.Position{core.P(-1, 0), core.P(0, -1), core.P(20, 5), core.P(5, 20)} {
		if c := m.At(p); c.Type != core.CellWall {
			t.Errorf("At(%v) = %v, want wall", p, c.Type)
		}
	}
}

func TestGenerateLevelThemes(t *testing.T) {
	tests := []struct {
		level       int
		first, last core.MonsterType
	}{
		{1, core.PaperAvalanche, core.GrantGremlin},
		{2, core.DataBeast, core.DeadlineDragon},
		{3, core.GrantGremlin, core.DeadlineDragon},
		{7, core.GrantGremlin, core.DeadlineDragon},
	}
	for _, tt := range tests {
		m := core.Generate(tt.level)
		a := m.At(core.P(7, 9))
		b := m.At(core.P(13, 15))
		if a.Monster == nil || b.Monster == nil {
			t.Fatalf("level %d: monster cells missing records", tt.level)
		}
		if a.Monster.Type != tt.first || b.Monster.Type != tt.last {
			t.Errorf("level %d: monsters = %v, %v; want %v, %v",
				tt.level, a.Monster.Type, b.Monster.Type, tt.first, tt.last)
		}
	}
}

func TestGenerateGeometrySharedAcrossLevels(t *testing.T) {
	a := core.Generate(1)
	b := core.Generate(3)
	for y := 0; y < core.BoardSize; y++ {
		for x := 0; x < core.BoardSize; x++ {
			if a.Cells[y][x].Type != b.Cells[y][x].Type {
				t.Fatalf("cell (%d,%d) differs: %v vs %v", x, y, a.Cells[y][x].Type, b.Cells[y][x].Type)
			}
		}
	}
}

func TestSpecialCellsReachable(t *testing.T) {
	m := core.Generate(1)

	seen := map[core.Position]bool{core.StartPosition: true}
	queue := []core.Position{core.StartPosition}
	dirs := []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			n := p.Step(d)
			if seen[n] || !m.At(n).Type.Walkable() {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}

	for y := 0; y < core.BoardSize; y++ {
		for x := 0; x < core.BoardSize; x++ {
			c := m.Cells[y][x]
			if c.Type.Walkable() && !seen[c.Position] {
				t.Errorf("cell %v (%v) not reachable from start", c.Position, c.Type)
			}
		}
	}
}

func TestLevelInfoClamps(t *testing.T) {
	if got := core.LevelInfo(0).Name; got != "Research Foundations" {
		t.Errorf("LevelInfo(0) = %q", got)
	}
	info := core.LevelInfo(9)
	if info.Name != "Deadline Summit" || info.Number != 9 {
		t.Errorf("LevelInfo(9) = %+v", info)
	}
	if n := len(core.Levels()); n != 3 {
		t.Errorf("Levels() has %d entries, want 3", n)
	}
}

func TestMazeRows(t *testing.T) {
	rows := core.Generate(1).Rows()
	if len(rows) != core.BoardSize {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0] != strings.Repeat("#", core.BoardSize) {
		t.Errorf("row 0 = %q", rows[0])
	}
	if want := "#....?" + strings.Repeat(".", 13) + "#"; rows[1] != want {
		t.Errorf("row 1 = %q, want %q", rows[1], want)
	}
	if rows[18][18] != 'O' {
		t.Errorf("goal glyph = %q", rows[18][18])
	}
}
