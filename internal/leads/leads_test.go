package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/ascension/internal/storage"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  a@example.com ", "a@example.com", false},
		{"user@host", "user@host", false},
		{"", "", true},
		{"no-at-sign", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeEmail(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeEmail(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTTPSubmitterPostsJSON(t *testing.T) {
	var got Submission
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sub := NewHTTPSubmitter(srv.URL, time.Second, nil)
	err := sub.Submit(context.Background(), Submission{Email: " r@lab.org", SessionID: "s1", Profile: "Strategic Planner"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
	if got.Email != "r@lab.org" || got.SessionID != "s1" || got.Profile != "Strategic Planner" {
		t.Errorf("payload = %+v", got)
	}
}

func TestHTTPSubmitterNoRetryOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sub := NewHTTPSubmitter(srv.URL, time.Second, nil)
	if err := sub.Submit(context.Background(), Submission{Email: "a@b"}); err == nil {
		t.Fatal("expected error for 503")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestHTTPSubmitterRejectsInvalidEmail(t *testing.T) {
	sub := NewHTTPSubmitter("http://127.0.0.1:1", time.Second, nil)
	if err := sub.Submit(context.Background(), Submission{Email: "nope"}); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("err = %v, want ErrInvalidEmail", err)
	}
}

func TestStoreSubmitter(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "leads.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	sub := NewStoreSubmitter(store)
	if err := sub.Submit(context.Background(), Submission{Email: "a@example.com", SessionID: "s"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := sub.Submit(context.Background(), Submission{Email: "bad"}); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("err = %v, want ErrInvalidEmail", err)
	}

	leads, err := store.Leads(10)
	if err != nil {
		t.Fatalf("Leads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("leads = %d, want 1", len(leads))
	}
	if leads[0].Source != "tui" || leads[0].LeadID == "" {
		t.Errorf("lead = %+v", leads[0])
	}
}

func TestNewPicksSubmitter(t *testing.T) {
	if _, ok := New("http://example.com/leads", 0, nil, nil).(*HTTPSubmitter); !ok {
		t.Error("endpoint should select the HTTP submitter")
	}
	if _, ok := New("", 0, nil, nil).(*StoreSubmitter); !ok {
		t.Error("empty endpoint should select the store submitter")
	}
}
