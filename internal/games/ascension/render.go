package ascension

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

const (
	cellWidth  = 2 // Terminal columns per board cell
	hudHeight  = 3 // Title, stats, spacer
	panelWidth = 34
	panelGap   = 2
)

// boardSize returns the framed viewport size in terminal cells.
func (g *Game) boardSize() (w, h int) {
	return g.opts.ViewportW*cellWidth + 2, g.opts.ViewportH + 2
}

func (g *Game) checkSize() {
	bw, bh := g.boardSize()
	g.tooSmall = g.screenW < bw || g.screenH < hudHeight+bh+2
}

// Render draws the session into dst.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.ctrl == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	s := g.ctrl.State()
	bw, bh := g.boardSize()
	layoutW := bw
	showPanel := g.screenW >= bw+panelGap+panelWidth
	if showPanel {
		layoutW += panelGap + panelWidth
	}
	boardX := (g.screenW - layoutW) / 2
	boardY := hudHeight

	g.renderHUD(dst, s, boardX)
	g.renderBoard(dst, s, boardX, boardY)
	if showPanel {
		g.renderTools(dst, s, boardX+bw+panelGap, boardY)
	}

	statusY := boardY + bh
	if g.toast != "" {
		dst.DrawTextWithColor(boardX, statusY, g.toast, g.toastColor)
	} else {
		dst.DrawTextWithColor(boardX, statusY, core.LevelInfo(s.CurrentLevel).Hint, platformcore.ColorGray)
	}
	dst.DrawTextWithColor(boardX, statusY+1, "arrows/WASD move  1-9 tools  P pause  R restart  Q quit", platformcore.ColorGray)

	switch {
	case s.IsCompleted:
		g.renderResults(dst, s)
	case s.IsPaused:
		g.renderPaused(dst)
	}
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorYellow)
	bw, bh := g.boardSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", bw, hudHeight+bh+2), platformcore.ColorGray)
}

func (g *Game) renderHUD(dst *platformcore.Screen, s core.GameState, x int) {
	info := core.LevelInfo(s.CurrentLevel)
	dst.DrawTextWithColor(x, 0, fmt.Sprintf("ASCENSION  Level %d: %s", s.CurrentLevel, info.Name), platformcore.ColorBrightCyan)

	timeColor := platformcore.ColorWhite
	if s.TimeRemaining <= 60 {
		timeColor = platformcore.ColorBrightRed
	}
	stats := []struct {
		text  string
		color platformcore.Color
	}{
		{fmt.Sprintf("Time %s", formatClock(s.TimeRemaining)), timeColor},
		{fmt.Sprintf("Energy %d", s.Energy), energyColor(s.Energy, g.opts.Rules.StartEnergy)},
		{fmt.Sprintf("Mastery %.0f", s.AIMastery), platformcore.ColorMagenta},
		{fmt.Sprintf("Coins %d", s.Coins), platformcore.ColorBrightYellow},
	}
	col := x
	for _, st := range stats {
		dst.DrawTextWithColor(col, 1, st.text, st.color)
		col += len(st.text) + 3
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, s core.GameState, x, y int) {
	bw, bh := g.boardSize()
	dst.DrawBox(platformcore.NewRect(x, y, bw, bh), platformcore.ColorGray)

	m := g.ctrl.Maze()
	origin := Camera(s.PlayerPosition, g.opts.ViewportW, g.opts.ViewportH)
	cooling := s.CollectedData.CollectedCoins
	board := platformcore.NewRect(0, 0, core.BoardSize, core.BoardSize)

	for vy := 0; vy < g.opts.ViewportH; vy++ {
		for vx := 0; vx < g.opts.ViewportW; vx++ {
			p := core.P(origin.X+vx, origin.Y+vy)
			if !board.Contains(p.X, p.Y) {
				continue // Viewport wider than the board
			}
			glyph, color := cellGlyph(m.At(p), cooling)
			if p == s.PlayerPosition {
				glyph, color = "@ ", platformcore.ColorBrightGreen
			}
			dst.DrawTextWithColor(x+1+vx*cellWidth, y+1+vy, glyph, color)
		}
	}
}

// cellGlyph returns the two-column glyph and color for a board cell.
func cellGlyph(c core.Cell, cooling map[string]bool) (string, platformcore.Color) {
	switch c.Type {
	case core.CellWall:
		return "██", platformcore.ColorGray
	case core.CellCoin:
		if cooling[c.Position.Key()] {
			return "$ ", platformcore.ColorGray
		}
		return "$ ", platformcore.ColorBrightYellow
	case core.CellMonster:
		glyph := 'M'
		if c.Monster != nil {
			glyph = c.Monster.Glyph
		}
		return string(glyph) + " ", platformcore.ColorBrightRed
	case core.CellPortal:
		return "◎ ", platformcore.ColorBrightCyan
	case core.CellGuide:
		return "? ", platformcore.ColorMagenta
	case core.CellTool:
		return "T ", platformcore.ColorOrange
	}
	return "· ", platformcore.ColorDefault
}

func (g *Game) renderTools(dst *platformcore.Screen, s core.GameState, x, y int) {
	dst.DrawTextWithColor(x, y, fmt.Sprintf("TOOLS  %d/%d equipped", len(s.EquippedTools), g.opts.Rules.ToolSlots), platformcore.ColorWhite)

	for i, t := range core.Tools() {
		mark, color := "[ ]", tierColor(t.Type)
		switch {
		case s.HasTool(t.ID):
			mark = "[x]"
		case g.opts.Rules.EnforceToolGates && !s.CanEquip(t):
			mark, color = "[-]", platformcore.ColorGray
		}
		line := fmt.Sprintf("%d %s %s", i+1, mark, t.Name)
		dst.DrawTextWithColor(x, y+1+i, truncate(line, panelWidth), color)
	}

	legendY := y + 2 + len(core.Tools())
	dst.DrawTextWithColor(x, legendY, "$ coin  ◎ portal  ? guide", platformcore.ColorGray)

	info := core.LevelInfo(s.CurrentLevel)
	names := make([]string, 0, len(info.Monsters))
	for _, mt := range info.Monsters {
		mon := core.NewMonster("", mt)
		names = append(names, fmt.Sprintf("%c %s", mon.Glyph, mon.Name))
	}
	dst.DrawTextWithColor(x, legendY+1, truncate(strings.Join(names, "  "), panelWidth), platformcore.ColorBrightRed)
}

func (g *Game) renderPaused(dst *platformcore.Screen) {
	msg := " PAUSED  press P to resume "
	y := g.screenH / 2
	x := (g.screenW - len(msg)) / 2
	dst.DrawBox(platformcore.NewRect(x-1, y-1, len(msg)+2, 3), platformcore.ColorYellow)
	dst.DrawTextWithColor(x, y, msg, platformcore.ColorYellow)
}

func (g *Game) renderResults(dst *platformcore.Screen, s core.GameState) {
	r, ok := g.ctrl.Results()
	if !ok {
		return
	}

	lines := []string{
		endTitle(s.EndReason),
		"",
		fmt.Sprintf("Profile:    %s", r.Profile.Name),
		fmt.Sprintf("Efficiency: %3.0f", r.Efficiency),
		fmt.Sprintf("AI adoption:%3.0f", r.AIAdoption),
		fmt.Sprintf("Strategy:   %3.0f", r.Strategic),
		"",
		fmt.Sprintf("Moves %d  Encounters %d  Time %s", r.PathChoices, r.EncounterStats.Total, formatClock(r.TotalTime)),
		"",
		"R play again  E email results  Q quit",
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	x := max(0, (g.screenW-w)/2)
	y := max(0, (g.screenH-h)/2)

	for row := y; row < y+h; row++ {
		dst.DrawHLine(x, row, w, ' ', platformcore.ColorDefault)
	}
	dst.DrawBox(platformcore.NewRect(x, y, w, h), platformcore.ColorBrightCyan)
	for i, l := range lines {
		color := platformcore.ColorWhite
		switch i {
		case 0:
			color = platformcore.ColorBrightCyan
		case 2:
			color = platformcore.ColorBrightGreen
		case len(lines) - 1:
			color = platformcore.ColorGray
		}
		dst.DrawTextWithColor(x+2, y+1+i, l, color)
	}
}

func endTitle(reason core.EndReason) string {
	switch reason {
	case core.EndPortal:
		return "You reached the Ascension Portal!"
	case core.EndTimeout:
		return "Time's up!"
	case core.EndExhaustion:
		return "Out of energy!"
	}
	return "Session complete"
}

func tierColor(t core.ToolType) platformcore.Color {
	switch t {
	case core.ToolHybrid:
		return platformcore.ColorCyan
	case core.ToolAI:
		return platformcore.ColorBrightGreen
	}
	return platformcore.ColorWhite
}

func energyColor(energy, start int) platformcore.Color {
	switch {
	case start > 0 && energy*4 <= start:
		return platformcore.ColorBrightRed
	case start > 0 && energy*2 <= start:
		return platformcore.ColorYellow
	}
	return platformcore.ColorGreen
}

// formatClock renders seconds as m:ss.
func formatClock(seconds int) string {
	seconds = max(0, seconds)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
