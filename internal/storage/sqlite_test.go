package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveResult(SessionResult{SessionID: "a", Level: 1, EndReason: "portal", ProfileID: "x", Profile: "X"}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result after reopen, got %d", len(results))
	}
}

func TestStoreSaveAndRetrieveResults(t *testing.T) {
	store := openTestStore(t)
	created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	want := SessionResult{
		SessionID:   "11111111-2222-3333-4444-555555555555",
		Level:       2,
		EndReason:   "portal",
		Coins:       3,
		Energy:      220,
		Mastery:     12.5,
		Efficiency:  81,
		AIAdoption:  72,
		Strategic:   40.5,
		ProfileID:   "ai_pioneer",
		Profile:     "AI Research Pioneer",
		PathChoices: 34,
		Encounters:  2,
		TotalTime:   95,
		CreatedAt:   created,
	}
	id, err := store.SaveResult(want)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	got, err := store.ResultBySession(want.SessionID)
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected stored result, got nil")
	}
	want.ID = id
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	got.CreatedAt = want.CreatedAt
	if *got != want {
		t.Errorf("Result mismatch:\n got %+v\nwant %+v", *got, want)
	}
}

func TestStoreResultBySessionMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.ResultBySession("nope")
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing session, got %+v", got)
	}
}

func TestStoreRecentResultsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i, id := range []string{"a", "b", "c", "d"} {
		_, err := store.SaveResult(SessionResult{SessionID: id, Level: i + 1, EndReason: "timeout", ProfileID: "p", Profile: "P"})
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	results, err := store.RecentResults(3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].SessionID != "d" || results[2].SessionID != "b" {
		t.Errorf("Expected newest first, got %s..%s", results[0].SessionID, results[2].SessionID)
	}
	if results[0].CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to default to now")
	}
}

func TestStoreDuplicateSessionRejected(t *testing.T) {
	store := openTestStore(t)
	r := SessionResult{SessionID: "same", Level: 1, EndReason: "portal", ProfileID: "p", Profile: "P"}

	if _, err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(r); err == nil {
		t.Error("Expected error saving the same session twice")
	}
}

func TestStoreProfileCounts(t *testing.T) {
	store := openTestStore(t)

	profiles := []string{"Strategic Planner", "Emerging Innovator", "Strategic Planner", "Pragmatic Adopter", "Strategic Planner", "Emerging Innovator"}
	for i, p := range profiles {
		_, err := store.SaveResult(SessionResult{SessionID: string(rune('a' + i)), Level: 1, EndReason: "portal", ProfileID: "id", Profile: p})
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	counts, err := store.ProfileCounts()
	if err != nil {
		t.Fatalf("ProfileCounts() failed: %v", err)
	}
	want := []ProfileCount{
		{"Strategic Planner", 3},
		{"Emerging Innovator", 2},
		{"Pragmatic Adopter", 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("Expected %d profiles, got %d", len(want), len(counts))
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(SessionResult{SessionID: "a", Level: 1, EndReason: "portal", ProfileID: "p", Profile: "P"}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
}

func TestStoreLeads(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLead(Lead{LeadID: "l1", Email: "a@example.com", Source: "tui"}); err != nil {
		t.Fatalf("SaveLead() failed: %v", err)
	}
	if _, err := store.SaveLead(Lead{LeadID: "l2", Email: "b@example.com", SessionID: "s", Profile: "Strategic Planner", Source: "api"}); err != nil {
		t.Fatalf("SaveLead() failed: %v", err)
	}

	leads, err := store.Leads(10)
	if err != nil {
		t.Fatalf("Leads() failed: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("Expected 2 leads, got %d", len(leads))
	}
	if leads[0].Email != "b@example.com" || leads[0].Profile != "Strategic Planner" || leads[0].Source != "api" {
		t.Errorf("Unexpected newest lead: %+v", leads[0])
	}
	if leads[1].SessionID != "" {
		t.Errorf("Expected empty session ID, got %q", leads[1].SessionID)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.ascension/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".ascension", "test.db")); err != nil {
		t.Errorf("Expected database under home: %v", err)
	}
}
