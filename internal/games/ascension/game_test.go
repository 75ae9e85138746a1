package ascension

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ascension/internal/config"
	platformcore "github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func newTestGame(opts Options) *Game {
	opts.Clock = fixedClock
	g := New(opts)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Level: 1})
	return g
}

// press steps one frame with the given actions.
func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func idle(g *Game, frames int) {
	in := platformcore.NewInputFrame()
	for i := 0; i < frames; i++ {
		g.Step(in)
	}
}

func TestDeterminism(t *testing.T) {
	script := map[int][]platformcore.Action{
		3:  {platformcore.ActionRight},
		5:  {platformcore.ActionRight, platformcore.ActionDown},
		9:  {platformcore.ActionDown},
		12: {platformcore.ActionTool1},
		40: {platformcore.ActionPause},
		80: {platformcore.ActionPause},
		90: {platformcore.ActionUp},
	}

	run := func() Snapshot {
		g := newTestGame(Options{})
		for i := 0; i < 200; i++ {
			press(g, script[i]...)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
	if a.Coins != 1 {
		t.Errorf("coins = %d, want 1", a.Coins)
	}
}

func TestFramesBecomeSeconds(t *testing.T) {
	g := newTestGame(Options{})
	idle(g, 30*10)

	if got := g.Session().TimeRemaining; got != 590 {
		t.Errorf("time remaining = %d after 300 frames, want 590", got)
	}
}

func TestPauseStopsCountdown(t *testing.T) {
	g := newTestGame(Options{})
	press(g, platformcore.ActionPause)
	idle(g, 30*5)

	snap := g.Snapshot()
	if snap.Status != StatusPaused {
		t.Errorf("status = %s, want paused", snap.Status)
	}
	if snap.TimeRemaining != 600 {
		t.Errorf("time remaining = %d while paused", snap.TimeRemaining)
	}
}

func TestTimeoutEndsOnce(t *testing.T) {
	var ends int
	g := newTestGame(Options{
		Rules: core.Rules{
			SessionSeconds: 2, StartEnergy: 100, MaxMastery: 100,
			ToolSlots: 3, CoinCooldown: time.Second,
		},
		OnSessionEnd: func(core.GameState, core.Results) { ends++ },
	})

	var endedFrames int
	in := platformcore.NewInputFrame()
	for i := 0; i < 30*5; i++ {
		if g.Step(in).Ended {
			endedFrames++
		}
	}

	if ends != 1 || endedFrames != 1 {
		t.Errorf("ends = %d, ended frames = %d, want 1 and 1", ends, endedFrames)
	}
	if snap := g.Snapshot(); snap.Status != StatusCompleted || snap.EndReason != core.EndTimeout {
		t.Errorf("snapshot = %+v", snap)
	}
	if g.Playing() {
		t.Error("Playing should follow the engine notification")
	}
}

func TestGatedToolShowsToast(t *testing.T) {
	g := newTestGame(Options{})
	press(g, platformcore.ActionTool7)

	if snap := g.Snapshot(); len(snap.Equipped) != 0 || snap.Selections != 0 {
		t.Errorf("gated tool equipped: %+v", snap)
	}
	if !strings.Contains(g.toast, "AI Literature Review") {
		t.Errorf("toast = %q", g.toast)
	}
}

func TestRestartStartsFreshSession(t *testing.T) {
	g := newTestGame(Options{})
	press(g, platformcore.ActionRight)
	press(g, platformcore.ActionRestart)

	snap := g.Snapshot()
	if snap.X != 1 || snap.Y != 1 || snap.PathChoices != 0 {
		t.Errorf("restart kept progress: %+v", snap)
	}
	if snap.Status != StatusPlaying {
		t.Errorf("status = %s", snap.Status)
	}
}

func TestRenderShowsHUDAndPlayer(t *testing.T) {
	g := newTestGame(Options{})
	scr := platformcore.NewScreen(80, 24)
	g.Render(scr)

	out := scr.String()
	for _, want := range []string{"ASCENSION", "Research Foundations", "Time 10:00", "Energy 300", "@", "TOOLS"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(Options{Clock: fixedClock})
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 30, Level: 1})
	scr := platformcore.NewScreen(20, 10)
	g.Render(scr)

	if !strings.Contains(scr.String(), "too small") {
		t.Error("expected too-small message")
	}
	idle(g, 60)
	if g.Session().TimeRemaining != 600 {
		t.Error("countdown should hold while the window is too small")
	}
}

func TestSmallWindowHoldsSession(t *testing.T) {
	g := New(Options{Clock: fixedClock})
	g.Reset(platformcore.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 30, Level: 1})

	for i := 0; i < 90; i++ {
		press(g, platformcore.ActionRight)
	}
	press(g, platformcore.ActionPause)
	press(g, platformcore.ActionTool1)

	s := g.Session()
	if !s.IsPlaying || !s.IsPaused {
		t.Errorf("playing = %v, paused = %v, want a paused session", s.IsPlaying, s.IsPaused)
	}
	if s.PlayerPosition != core.StartPosition {
		t.Errorf("player moved to %v while the board was hidden", s.PlayerPosition)
	}
	if n := len(s.CollectedData.PathChoices); n != 0 {
		t.Errorf("%d path choices logged while the board was hidden", n)
	}
	if len(s.EquippedTools) != 0 {
		t.Error("tool equipped while the board was hidden")
	}
	if s.TimeRemaining != 600 {
		t.Errorf("time remaining = %d, want 600", s.TimeRemaining)
	}

	g.Resize(80, 24)
	if s := g.Session(); !s.Active() {
		t.Fatal("session should resume once the board fits")
	}
	idle(g, 30)
	press(g, platformcore.ActionRight)
	s = g.Session()
	if s.TimeRemaining != 599 {
		t.Errorf("time remaining = %d after resuming, want 599", s.TimeRemaining)
	}
	if n := len(s.CollectedData.PathChoices); n != 1 {
		t.Errorf("path choices = %d after resuming, want 1", n)
	}
}

func TestSmallWindowKeepsPlayerPause(t *testing.T) {
	g := newTestGame(Options{})
	press(g, platformcore.ActionPause)

	g.Resize(10, 5)
	g.Resize(80, 24)

	if s := g.Session(); !s.IsPaused {
		t.Error("resize resumed a session the player paused")
	}
}

func TestCamera(t *testing.T) {
	tests := []struct {
		focus core.Position
		w, h  int
		want  core.Position
	}{
		{core.P(1, 1), 11, 11, core.P(0, 0)},
		{core.P(10, 10), 11, 11, core.P(5, 5)},
		{core.P(18, 18), 11, 11, core.P(9, 9)},
		{core.P(18, 2), 11, 5, core.P(9, 0)},
		{core.P(7, 7), 30, 30, core.P(0, 0)},
	}
	for _, tt := range tests {
		if got := Camera(tt.focus, tt.w, tt.h); got != tt.want {
			t.Errorf("Camera(%v, %d, %d) = %v, want %v", tt.focus, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	for in, want := range map[int]string{600: "10:00", 59: "0:59", 61: "1:01", -3: "0:00"} {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultAscensionConfig()
	cfg.Viewport.Width = 9
	cfg.Session.Seconds = 120
	config.ApplyPreset(&cfg, config.DifficultyHard)

	opts := OptionsFromConfig(cfg)
	if opts.ViewportW != 9 || opts.ViewportH != 11 {
		t.Errorf("viewport = %dx%d, want 9x11", opts.ViewportW, opts.ViewportH)
	}
	if opts.Rules != cfg.ToRules() {
		t.Errorf("rules = %+v, want %+v", opts.Rules, cfg.ToRules())
	}
	if !opts.Rules.EndOnExhaustion {
		t.Error("hard preset should end on exhaustion")
	}
}
