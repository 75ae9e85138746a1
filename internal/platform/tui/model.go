package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension"
	engine "github.com/vovakirdan/ascension/internal/games/ascension/core"
	"github.com/vovakirdan/ascension/internal/leads"
	"github.com/vovakirdan/ascension/internal/storage"
)

const leadSubmitTimeout = 15 * time.Second

// Services are the collaborators a game model reports finished sessions to.
// Every field is optional.
type Services struct {
	Store          *storage.Store
	Leads          leads.Submitter
	Logger         *log.Logger
	SwipeThreshold float64
	Source         string // Lead source tag, "tui" when empty
}

// leadResultMsg reports the outcome of an e-mail submission.
type leadResultMsg struct {
	email string
	err   error
}

// GameModel is the Bubble Tea model for one ascension game.
type GameModel struct {
	game       *ascension.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	swipe      SwipeTracker
	loop       uint64

	// Results screen
	email     textinput.Model
	capturing bool
	sessionID string // Assigned when a session ends
	saved     bool
	submitted bool

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game *ascension.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}
	if svc.Source == "" {
		svc.Source = "tui"
	}

	email := textinput.New()
	email.Prompt = "E-mail: "
	email.Placeholder = "you@university.edu"
	email.CharLimit = 254
	email.Width = 40

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		swipe:      NewSwipeTracker(svc.SwipeThreshold),
		loop:       nextLoop(),
		email:      email,
	}
}

// Init starts the session and the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action, ok := m.swipe.Handle(msg); ok {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()

	case leadResultMsg:
		return m.handleLeadResult(msg)
	}

	if m.capturing {
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.capturing {
		return m.handleEmailKey(msg)
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		// Leaving mid-run would abandon the session
		if m.gameState.Playing && !m.gameState.Paused {
			return m, nil
		}
		return m.leave()

	case core.ActionConfirm:
		return m, nil

	case core.ActionNone:
		if msg.String() == "e" && m.canCaptureEmail() {
			m.capturing = true
			m.email.Reset()
			blink := m.email.Focus()
			return m, blink
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

func (m GameModel) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		m.game.Close()
		return m, tea.Quit

	case tea.KeyEsc:
		m.capturing = false
		m.email.Blur()
		return m, nil

	case tea.KeyEnter:
		address, err := leads.NormalizeEmail(m.email.Value())
		if err != nil {
			m.game.Toast("Enter an address containing @", core.ColorOrange)
			return m, nil
		}
		m.capturing = false
		m.email.Blur()
		m.game.Toast("Sending results...", core.ColorGray)
		return m, m.submitLead(address)
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m GameModel) canCaptureEmail() bool {
	return m.gameState.Completed && m.sessionID != "" && !m.submitted && m.svc.Leads != nil
}

// submitLead sends the address in the background. Failures never touch
// the finished session.
func (m GameModel) submitLead(address string) tea.Cmd {
	sub := leads.Submission{
		Email:     address,
		SessionID: m.sessionID,
		Source:    m.svc.Source,
	}
	if results, ok := m.game.Results(); ok {
		sub.Profile = string(results.Profile.ID)
	}
	submitter := m.svc.Leads

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leadSubmitTimeout)
		defer cancel()
		return leadResultMsg{email: address, err: submitter.Submit(ctx, sub)}
	}
}

func (m GameModel) handleLeadResult(msg leadResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.svc.Logger.Warn("lead submission failed", "session", m.sessionID, "error", msg.err)
		m.game.Toast("Could not send results. Press E to try again", core.ColorOrange)
		return m, nil
	}
	m.submitted = true
	m.svc.Logger.Info("lead submitted", "session", m.sessionID)
	m.game.Toast(fmt.Sprintf("Results sent to %s", msg.email), core.ColorBrightGreen)
	return m, nil
}

// handleResize processes window resize events. The session keeps running;
// the game pauses its clock while the window is too small.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	width := msg.Width - len(m.email.Prompt) - 2
	if width > 0 {
		m.email.Width = width
	}
	return m, nil
}

// handleTick runs one frame of the game.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.saved = false
		m.submitted = false
		m.sessionID = ""
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Ended {
		m.saveResult()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveResult persists the finished session once. Storage errors are logged
// and never interrupt play.
func (m *GameModel) saveResult() {
	if m.saved {
		return
	}
	m.saved = true
	m.sessionID = uuid.NewString()

	results, ok := m.game.Results()
	if !ok || m.svc.Store == nil {
		return
	}
	record := sessionRecord(m.sessionID, m.game.Session(), results)
	if _, err := m.svc.Store.SaveResult(record); err != nil {
		m.svc.Logger.Warn("could not save session result", "session", m.sessionID, "error", err)
	}
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.game.Close()
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.capturing {
		out = replaceLastLine(out, m.email.View())
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// SessionID returns the identifier of the last finished session.
func (m GameModel) SessionID() string {
	return m.sessionID
}

// sessionRecord flattens a finished session into its stored form.
func sessionRecord(sessionID string, s engine.GameState, r engine.Results) storage.SessionResult {
	return storage.SessionResult{
		SessionID:   sessionID,
		Level:       s.CurrentLevel,
		EndReason:   string(s.EndReason),
		Coins:       s.Coins,
		Energy:      s.Energy,
		Mastery:     s.AIMastery,
		Efficiency:  r.Efficiency,
		AIAdoption:  r.AIAdoption,
		Strategic:   r.Strategic,
		ProfileID:   string(r.Profile.ID),
		Profile:     r.Profile.Name,
		PathChoices: r.PathChoices,
		Encounters:  len(s.CollectedData.MonsterEncounters),
		TotalTime:   r.TotalTime,
	}
}

func replaceLastLine(view, line string) string {
	idx := strings.LastIndexByte(view, '\n')
	if idx < 0 {
		return line
	}
	return view[:idx+1] + line
}

// Run starts a standalone Bubble Tea program for the game.
func Run(game *ascension.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press/release gestures become moves
	)

	_, err := p.Run()
	game.Close()
	return err
}
