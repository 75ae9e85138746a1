package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ascension/internal/config"
	"github.com/vovakirdan/ascension/internal/core"
	"github.com/vovakirdan/ascension/internal/games/ascension"
	engine "github.com/vovakirdan/ascension/internal/games/ascension/core"
	"github.com/vovakirdan/ascension/internal/leads"
	"github.com/vovakirdan/ascension/internal/storage"
)

const testTickRate = 10

type fakeSubmitter struct {
	got []leads.Submission
	err error
}

func (f *fakeSubmitter) Submit(_ context.Context, s leads.Submission) error {
	f.got = append(f.got, s)
	return f.err
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, seconds int, svc Services) GameModel {
	t.Helper()
	rules := engine.DefaultRules()
	rules.SessionSeconds = seconds
	game := ascension.New(ascension.Options{
		Rules: rules,
		Clock: func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	m := NewGameModel(game, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: testTickRate, Level: 1})
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel, n int) GameModel {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = update(t, m, TickMsg{Time: time.Now(), Loop: m.loop})
	}
	return m
}

func TestKeyMovesPlayerOnNextTick(t *testing.T) {
	m := newTestModel(t, 600, Services{})

	m, _ = update(t, m, runeKey("d"))
	if got := m.game.Session().PlayerPosition; got != engine.P(1, 1) {
		t.Fatalf("moved before the tick: %v", got)
	}
	m = tick(t, m, 1)
	if got := m.game.Session().PlayerPosition; got != engine.P(2, 1) {
		t.Errorf("position = %v, want (2,1)", got)
	}
}

func TestSwipeMovesPlayer(t *testing.T) {
	m := newTestModel(t, 600, Services{})

	m, _ = update(t, m, mouse(tea.MouseActionPress, 10, 5))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 16, 5))
	m = tick(t, m, 1)
	if got := m.game.Session().PlayerPosition; got != engine.P(2, 1) {
		t.Errorf("position = %v, want (2,1)", got)
	}
}

func TestStaleTicksIgnored(t *testing.T) {
	m := newTestModel(t, 600, Services{})

	m, cmd := update(t, m, TickMsg{Time: time.Now(), Loop: m.loop + 1})
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if frame := m.game.Snapshot().Frame; frame != 0 {
		t.Errorf("frame = %d, want 0", frame)
	}
}

func TestFinishedSessionIsSavedOnce(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(t, 1, Services{Store: store})

	m = tick(t, m, 3*testTickRate)
	if !m.gameState.Completed {
		t.Fatal("session should have timed out")
	}
	if m.SessionID() == "" {
		t.Fatal("finished session should have an id")
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, want 1", len(results))
	}
	r := results[0]
	if r.SessionID != m.SessionID() || r.EndReason != string(engine.EndTimeout) || r.Level != 1 {
		t.Errorf("saved result = %+v", r)
	}
	if r.Profile == "" || r.ProfileID == "" {
		t.Errorf("profile missing: %+v", r)
	}
}

func TestRestartAllowsNewSave(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(t, 1, Services{Store: store})

	m = tick(t, m, 2*testTickRate)
	first := m.SessionID()

	m, _ = update(t, m, runeKey("r"))
	m = tick(t, m, 2*testTickRate)
	if m.SessionID() == "" || m.SessionID() == first {
		t.Errorf("restarted session id = %q, first = %q", m.SessionID(), first)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("saved %d results, want 2", len(results))
	}
}

func TestEmailCapture(t *testing.T) {
	sub := &fakeSubmitter{}
	m := newTestModel(t, 1, Services{Leads: sub})

	// Not available while playing
	m, _ = update(t, m, runeKey("e"))
	if m.capturing {
		t.Fatal("e-mail capture opened during play")
	}

	m = tick(t, m, 2*testTickRate)
	m, _ = update(t, m, runeKey("e"))
	if !m.capturing {
		t.Fatal("e-mail capture should open on the results screen")
	}

	m, _ = update(t, m, runeKey("nope"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.capturing {
		t.Fatal("invalid address should keep the prompt open")
	}

	m.email.SetValue(" me@lab.org ")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.capturing {
		t.Fatal("valid address should submit")
	}
	m, _ = update(t, m, cmd())

	if !m.submitted {
		t.Error("submission should be recorded")
	}
	if len(sub.got) != 1 {
		t.Fatalf("submitted %d times, want 1", len(sub.got))
	}
	got := sub.got[0]
	if got.Email != "me@lab.org" || got.SessionID != m.SessionID() || got.Source != "tui" || got.Profile == "" {
		t.Errorf("submission = %+v", got)
	}

	// Only one submission per session
	m, _ = update(t, m, runeKey("e"))
	if m.capturing {
		t.Error("capture reopened after a successful submission")
	}
}

func TestEmailFailureAllowsRetry(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("endpoint down")}
	m := newTestModel(t, 1, Services{Leads: sub})
	m = tick(t, m, 2*testTickRate)

	m, _ = update(t, m, runeKey("e"))
	m.email.SetValue("me@lab.org")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	if m.submitted {
		t.Error("failed submission marked as sent")
	}
	if !m.gameState.Completed {
		t.Error("failure must not change the session")
	}
	m, _ = update(t, m, runeKey("e"))
	if !m.capturing {
		t.Error("capture should reopen after a failure")
	}
}

func TestBackOnlyWhenNotRunning(t *testing.T) {
	m := newTestModel(t, 600, Services{})
	m = tick(t, m, 1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during play should be ignored")
	}

	m, _ = update(t, m, runeKey("p"))
	m = tick(t, m, 1)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should return to the menu")
	}
}

func TestViewShowsEmailPrompt(t *testing.T) {
	m := newTestModel(t, 1, Services{Leads: &fakeSubmitter{}})
	m = tick(t, m, 2*testTickRate)
	m, _ = update(t, m, runeKey("e"))

	lines := strings.Split(m.View(), "\n")
	if last := lines[len(lines)-1]; !strings.Contains(last, "E-mail:") {
		t.Errorf("last line = %q, want e-mail prompt", last)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 120, ScreenH: 30, TickRate: testTickRate, Level: 1}
	m := NewSessionModel(config.DefaultAscensionConfig(), Services{}, cfg)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	next, _ = m.Update(runeKey("p"))
	m = next.(SessionModel)
	next, _ = m.Update(TickMsg{Time: time.Now(), Loop: m.game.loop})
	m = next.(SessionModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	if m.screen != screenHistory {
		t.Fatalf("screen = %v, want history", m.screen)
	}
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("history without a store should say so")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestMenuLevelSelect(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30})

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inLevelSelect {
		t.Fatal("second entry should open level select")
	}
	if !strings.Contains(m.View(), "Data Wilderness") {
		t.Error("level list should name the levels")
	}
	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyDown}) // clamped at the last level
	press(tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || sel.Level != 3 || sel.History {
		t.Errorf("selection = %+v, want level 3", sel)
	}
}

func TestHistoryListsSessions(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveResult(storage.SessionResult{
		SessionID: "s-1", Level: 2, EndReason: "portal", Efficiency: 80,
		AIAdoption: 40, Strategic: 60, ProfileID: "strategic_integrator",
		Profile: "Strategic Integrator", TotalTime: 125,
	}); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	m := NewHistoryModel(store, 120, 30)
	view := m.View()
	for _, want := range []string{"SESSION HISTORY", "Strategic Integrator", "2:05", "Profiles"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
