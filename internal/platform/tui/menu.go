package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ascension/internal/core"
	engine "github.com/vovakirdan/ascension/internal/games/ascension/core"
)

// Top-level menu entries.
const (
	menuBegin = iota
	menuSelectLevel
	menuHistory
	menuQuit
	menuEntryCount
)

var menuEntries = [menuEntryCount]string{
	"Begin the ascension",
	"Select level...",
	"Session history",
	"Quit",
}

// MenuSelection holds the user's choice from the menu.
type MenuSelection struct {
	Level   int  // Level to start on (1-indexed)
	History bool // Open the session history instead of playing
}

// MenuModel lets users start a session, pick a level or open the history.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	startLevel    int
	levels        []engine.Level
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     *MenuSelection
	quitting      bool
}

// NewMenuModel creates a menu. startLevel is the level "Begin" starts on.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	start := cfg.Level
	if start < 1 {
		start = 1
	}
	return MenuModel{
		startLevel: start,
		levels:     engine.Levels(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleMainKey(action)
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < menuEntryCount-1 {
			m.cursor++
		}
	case MenuActionHistory:
		m.selection = &MenuSelection{History: true}
		return m, tea.Quit
	case MenuActionSelect:
		switch m.cursor {
		case menuBegin:
			m.selection = &MenuSelection{Level: m.startLevel}
			return m, tea.Quit
		case menuSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case menuHistory:
			m.selection = &MenuSelection{History: true}
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selection = &MenuSelection{Level: m.levels[m.levelCursor].Number}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("A S C E N S I O N", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Climb the research maze. Your tools reveal your profile.", m.width))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		if i == menuBegin && m.startLevel > 1 {
			entry = fmt.Sprintf("%s (level %d)", entry, m.startLevel)
		}
		b.WriteString(centerText(cursor+entry, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		a := engine.NewMonster("", lvl.Monsters[0])
		c := engine.NewMonster("", lvl.Monsters[1])
		line := fmt.Sprintf("%s%d. %-22s %s, %s", cursor, lvl.Number, lvl.Name, a.Name, c.Name)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selection
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu runs the menu and returns the selection, or nil when the user quit.
func RunMenu(cfg core.RuntimeConfig) (*MenuSelection, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
