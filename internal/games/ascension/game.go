// Package ascension adapts the research maze engine to the platform's
// frame-driven game loop: input frames become player operations, frames
// become session time, and the session is drawn into a screen buffer.
package ascension

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ascension/internal/config"
	platformcore "github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

// Default viewport size in board cells.
const (
	DefaultViewportW = 11
	DefaultViewportH = 11
)

// Options configures a Game.
type Options struct {
	Rules     core.Rules
	ViewportW int // Board columns visible at once
	ViewportH int // Board rows visible at once
	Logger    *log.Logger
	Clock     func() time.Time

	// OnSessionEnd is called once when a session completes.
	OnSessionEnd func(state core.GameState, results core.Results)
}

// DefaultOptions returns the standard rules and viewport.
func DefaultOptions() Options {
	return Options{
		Rules:     core.DefaultRules(),
		ViewportW: DefaultViewportW,
		ViewportH: DefaultViewportH,
	}
}

// OptionsFromConfig builds game options from a loaded configuration.
func OptionsFromConfig(cfg config.AscensionConfig) Options {
	return Options{
		Rules:     cfg.ToRules(),
		ViewportW: cfg.Viewport.Width,
		ViewportH: cfg.Viewport.Height,
	}
}

// Game implements the Ascension maze for the platform loop.
type Game struct {
	opts Options
	ctrl *core.Controller

	// Frame clock
	tickRate int
	frame    uint64
	elapsed  time.Duration

	level   int
	ended   bool // Session completed during the last Step
	playing bool

	// Screen dimensions
	screenW    int
	screenH    int
	tooSmall   bool
	sizePaused bool // Paused because the window is too small

	// Transient status line
	toast      string
	toastColor platformcore.Color
	toastTicks int
}

// New creates a game with the given options. Zero fields take defaults.
func New(opts Options) *Game {
	def := DefaultOptions()
	if opts.Rules == (core.Rules{}) {
		opts.Rules = def.Rules
	}
	if opts.ViewportW <= 0 {
		opts.ViewportW = def.ViewportW
	}
	if opts.ViewportH <= 0 {
		opts.ViewportH = def.ViewportH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Game{opts: opts, level: 1}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "ascension"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Ascension"
}

// Reset tears down any running session and starts a new one on cfg.Level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if g.ctrl != nil {
		g.ctrl.Close()
	}

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}
	if cfg.Level > 0 {
		g.level = cfg.Level
	}
	g.frame = 0
	g.elapsed = 0
	g.ended = false
	g.toast = ""
	g.toastTicks = 0
	g.checkSize()

	g.ctrl = core.NewController(
		core.WithRules(g.opts.Rules),
		core.WithClock(g.opts.Clock),
		core.WithLogger(g.opts.Logger),
		core.OnPlayingChange(func(p bool) { g.playing = p }),
		core.OnSessionEnd(g.sessionEnded),
	)
	g.sizePaused = false
	g.ctrl.Start(g.level)
	g.holdWhileTooSmall()
}

// Resize updates the screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkSize()
	g.holdWhileTooSmall()
}

// holdWhileTooSmall pauses a running session while the board does not fit
// and resumes it once it does. A session the player paused stays paused.
func (g *Game) holdWhileTooSmall() {
	if g.ctrl == nil {
		return
	}
	s := g.ctrl.State()
	switch {
	case g.tooSmall && !g.sizePaused && s.Active():
		g.ctrl.TogglePause()
		g.sizePaused = true
	case !g.tooSmall && g.sizePaused:
		if s.IsPlaying && s.IsPaused {
			g.ctrl.TogglePause()
		}
		g.sizePaused = false
	}
}

// Step applies one frame of input and advances session time by one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.ended = false
	if g.ctrl == nil {
		return platformcore.StepResult{}
	}

	if in.Has(platformcore.ActionRestart) {
		g.sizePaused = false
		g.ctrl.Start(g.level)
		g.holdWhileTooSmall()
		g.setToast("New session started", platformcore.ColorBrightGreen)
	}
	if in.Has(platformcore.ActionPause) && !g.tooSmall {
		g.ctrl.TogglePause()
	}

	for _, a := range in.Ordered() {
		if idx, ok := a.ToolIndex(); ok {
			g.selectTool(idx)
			continue
		}
		if dir, ok := actionDirection(a); ok {
			g.move(dir)
		}
	}

	g.advanceFrame()

	if g.toastTicks > 0 {
		g.toastTicks--
		if g.toastTicks == 0 {
			g.toast = ""
		}
	}

	return platformcore.StepResult{State: g.State(), Ended: g.ended}
}

// advanceFrame converts one frame into session time. Durations are
// derived from the frame count so no rounding drift accumulates.
func (g *Game) advanceFrame() {
	g.frame++
	target := time.Duration(g.frame) * time.Second / time.Duration(g.tickRate)
	g.ctrl.Advance(target - g.elapsed)
	g.elapsed = target
}

func (g *Game) move(dir core.Direction) {
	before := g.ctrl.State()
	g.ctrl.Move(dir)
	after := g.ctrl.State()
	if after.PlayerPosition == before.PlayerPosition {
		return
	}

	if after.Coins > before.Coins {
		g.setToast(fmt.Sprintf("+1 coin (%d)", after.Coins), platformcore.ColorBrightYellow)
	}
	if n := len(after.CollectedData.MonsterEncounters); n > len(before.CollectedData.MonsterEncounters) {
		e := after.CollectedData.MonsterEncounters[n-1]
		cell := g.ctrl.Maze().At(after.PlayerPosition)
		name := e.MonsterType.String()
		if cell.Monster != nil {
			name = cell.Monster.Name
		}
		g.setToast(fmt.Sprintf("%s! effectiveness %.1f, -%d energy", name, e.Effectiveness, e.EnergyCost),
			platformcore.ColorBrightRed)
	}
	if cell := g.ctrl.Maze().At(after.PlayerPosition); cell.Type == core.CellGuide {
		g.setToast(cell.Hint, platformcore.ColorMagenta)
	}
}

func (g *Game) selectTool(idx int) {
	tools := core.Tools()
	if idx < 0 || idx >= len(tools) {
		return
	}
	tool := tools[idx]
	s := g.ctrl.State()
	if !s.Active() {
		return
	}
	if !s.HasTool(tool.ID) && g.opts.Rules.EnforceToolGates && !s.CanEquip(tool) {
		g.setToast(fmt.Sprintf("%s needs %d coins and %.0f mastery", tool.Name, tool.Cost, tool.RequiredMastery),
			platformcore.ColorOrange)
		return
	}
	g.ctrl.SelectTool(tool)
}

func (g *Game) sessionEnded(state core.GameState, results core.Results) {
	g.ended = true
	if g.opts.OnSessionEnd != nil {
		g.opts.OnSessionEnd(state, results)
	}
}

// Toast shows a transient status message for two seconds of frames.
func (g *Game) Toast(msg string, c platformcore.Color) {
	g.setToast(msg, c)
}

func (g *Game) setToast(msg string, c platformcore.Color) {
	g.toast = msg
	g.toastColor = c
	g.toastTicks = 2 * g.tickRate
}

// State returns the platform status flags.
func (g *Game) State() platformcore.GameState {
	if g.ctrl == nil {
		return platformcore.GameState{}
	}
	s := g.ctrl.State()
	return platformcore.GameState{
		Playing:   s.IsPlaying,
		Paused:    s.IsPaused,
		Completed: s.IsCompleted,
	}
}

// Playing mirrors the last isPlaying notification from the engine.
func (g *Game) Playing() bool {
	return g.playing
}

// Session returns a copy of the engine state.
func (g *Game) Session() core.GameState {
	if g.ctrl == nil {
		return core.NewGameState(g.opts.Rules, g.level)
	}
	return g.ctrl.State()
}

// Results returns the analysis of the last completed session.
func (g *Game) Results() (core.Results, bool) {
	if g.ctrl == nil {
		return core.Results{}, false
	}
	return g.ctrl.Results()
}

// Level returns the level the next session starts on.
func (g *Game) Level() int {
	return g.level
}

// Close stops all session timers.
func (g *Game) Close() {
	if g.ctrl != nil {
		g.ctrl.Close()
	}
}

func actionDirection(a platformcore.Action) (core.Direction, bool) {
	switch a {
	case platformcore.ActionUp:
		return core.DirUp, true
	case platformcore.ActionDown:
		return core.DirDown, true
	case platformcore.ActionLeft:
		return core.DirLeft, true
	case platformcore.ActionRight:
		return core.DirRight, true
	}
	return 0, false
}

// ActionForDirection maps an engine direction to its platform action.
func ActionForDirection(d core.Direction) platformcore.Action {
	switch d {
	case core.DirUp:
		return platformcore.ActionUp
	case core.DirDown:
		return platformcore.ActionDown
	case core.DirLeft:
		return platformcore.ActionLeft
	case core.DirRight:
		return platformcore.ActionRight
	}
	return platformcore.ActionNone
}
