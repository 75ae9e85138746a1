package core

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Controller owns the single mutable session: state, maze and scheduler.
// Player operations and scheduler messages all pass through the pure
// reducers; the controller only carries out the effects they request.
type Controller struct {
	rules  Rules
	state  GameState
	maze   *Maze
	sched  *Scheduler
	clock  func() time.Time
	logger *log.Logger

	onPlaying func(isPlaying bool)
	onEnd     func(state GameState, results Results)

	results    *Results
	wasPlaying bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRules overrides the default session rules.
func WithRules(r Rules) Option {
	return func(c *Controller) { c.rules = r }
}

// WithClock sets the wall clock used for log timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// OnPlayingChange registers the host notification for isPlaying changes.
func OnPlayingChange(fn func(isPlaying bool)) Option {
	return func(c *Controller) { c.onPlaying = fn }
}

// OnSessionEnd registers a callback invoked once per completed session.
func OnSessionEnd(fn func(state GameState, results Results)) Option {
	return func(c *Controller) { c.onEnd = fn }
}

// NewController creates an idle controller showing the level 1 maze.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		rules:  DefaultRules(),
		sched:  NewScheduler(time.Second),
		clock:  time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = NewGameState(c.rules, 1)
	c.maze = Generate(1)
	return c
}

// Start begins a fresh session on the given level, discarding any
// previous session and its timers.
func (c *Controller) Start(level int) {
	c.sched.Stop()
	c.results = nil
	c.state = StartGame(c.rules, level)
	c.maze = Generate(c.state.CurrentLevel)
	c.sched.StartTicker()
	c.logger.Info("session started", "level", c.state.CurrentLevel, "seconds", c.state.TimeRemaining)
	c.notifyPlaying()
}

// TogglePause pauses or resumes the session and its ticker.
func (c *Controller) TogglePause() {
	c.state = PauseGame(c.state)
	if !c.state.IsPlaying {
		return
	}
	if c.state.IsPaused {
		c.sched.PauseTicker()
	} else {
		c.sched.ResumeTicker()
	}
	c.logger.Debug("pause toggled", "paused", c.state.IsPaused)
}

// Move moves the player and resolves a monster on the destination cell.
func (c *Controller) Move(dir Direction) {
	before := c.state.PlayerPosition
	next, effects := MovePlayer(c.state, c.maze, c.rules, dir, c.clock())
	c.apply(next, effects)

	if c.state.PlayerPosition == before {
		return
	}
	if cell := c.maze.At(c.state.PlayerPosition); cell.Type == CellMonster && cell.Monster != nil {
		c.Encounter(*cell.Monster)
	}
}

// SelectTool toggles a catalog tool.
func (c *Controller) SelectTool(t Tool) {
	c.state = SelectTool(c.state, c.rules, t, c.clock())
}

// SelectToolIndex toggles the catalog tool at a zero-based index.
// Out-of-range indexes are ignored.
func (c *Controller) SelectToolIndex(i int) {
	if i < 0 || i >= len(catalog) {
		return
	}
	c.SelectTool(catalog[i])
}

// Encounter resolves an encounter with a monster.
func (c *Controller) Encounter(m Monster) {
	next, effects := HandleMonsterEncounter(c.state, c.rules, m, c.clock())
	if n := len(next.CollectedData.MonsterEncounters); n > len(c.state.CollectedData.MonsterEncounters) {
		e := next.CollectedData.MonsterEncounters[n-1]
		c.logger.Debug("monster encounter",
			"monster", m.Type,
			"effectiveness", e.Effectiveness,
			"energy_cost", e.EnergyCost,
		)
	}
	c.apply(next, effects)
}

// Advance moves session time forward, delivering due scheduler messages.
func (c *Controller) Advance(dt time.Duration) {
	c.sched.Advance(dt, c.handle)
}

// Close clears the ticker and every pending coin timer.
func (c *Controller) Close() {
	c.sched.Stop()
}

// State returns a copy of the current state.
func (c *Controller) State() GameState {
	return c.state.Clone()
}

// Maze returns the current maze. Callers must not modify it.
func (c *Controller) Maze() *Maze {
	return c.maze
}

// Rules returns the session rules.
func (c *Controller) Rules() Rules {
	return c.rules
}

// Results returns the analysis of the last completed session.
func (c *Controller) Results() (Results, bool) {
	if c.results == nil {
		return Results{}, false
	}
	return *c.results, true
}

// PendingTimers returns the number of undelivered one-shot timers.
func (c *Controller) PendingTimers() int {
	return c.sched.Pending()
}

// Ticking reports whether the countdown is running.
func (c *Controller) Ticking() bool {
	return c.sched.Ticking()
}

func (c *Controller) handle(msg Msg) {
	switch m := msg.(type) {
	case TickMsg:
		next, effects := Tick(c.state)
		c.apply(next, effects)
	case CoinExpiredMsg:
		c.state = ExpireCoin(c.state, m.Key)
	}
}

func (c *Controller) apply(next GameState, effects []Effect) {
	c.state = next
	for _, e := range effects {
		switch e := e.(type) {
		case ScheduleCoinExpiry:
			c.sched.After(e.After, CoinExpiredMsg{Key: e.Key})
			c.logger.Debug("coin collected", "cell", e.Key, "coins", c.state.Coins)
		case SessionEnded:
			c.finish(e.Reason)
		}
	}
	c.notifyPlaying()
}

func (c *Controller) finish(reason EndReason) {
	c.sched.StopTicker()
	results := Analyze(c.state.CollectedData)
	c.results = &results
	c.logger.Info("session completed",
		"reason", reason,
		"coins", c.state.Coins,
		"energy", c.state.Energy,
		"profile", results.Profile.Name,
	)
	if c.onEnd != nil {
		c.onEnd(c.state.Clone(), results)
	}
}

func (c *Controller) notifyPlaying() {
	if c.state.IsPlaying == c.wasPlaying {
		return
	}
	c.wasPlaying = c.state.IsPlaying
	if c.onPlaying != nil {
		c.onPlaying(c.state.IsPlaying)
	}
}
