// Package leads delivers e-mail addresses captured on the results screen,
// either to a remote HTTP endpoint or to the local database.
package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ascension/internal/storage"
)

// ErrInvalidEmail is returned for addresses without an "@".
var ErrInvalidEmail = errors.New("leads: invalid email address")

// Submission is one captured address with the session it came from.
type Submission struct {
	Email     string `json:"email"`
	SessionID string `json:"sessionId,omitempty"`
	Profile   string `json:"profile,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Submitter delivers a submission. Implementations do not retry.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// NormalizeEmail trims the address and checks that it contains an "@".
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// New returns an HTTP submitter when endpoint is set, otherwise one that
// writes to store.
func New(endpoint string, timeout time.Duration, store *storage.Store, logger *log.Logger) Submitter {
	if endpoint != "" {
		return NewHTTPSubmitter(endpoint, timeout, logger)
	}
	return NewStoreSubmitter(store)
}

// HTTPSubmitter POSTs submissions as JSON.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
	logger   *log.Logger
}

// NewHTTPSubmitter creates a submitter for endpoint. A zero timeout means 5s.
func NewHTTPSubmitter(endpoint string, timeout time.Duration, logger *log.Logger) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPSubmitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Submit sends one POST. Any non-2xx status is an error.
func (h *HTTPSubmitter) Submit(ctx context.Context, s Submission) error {
	email, err := NormalizeEmail(s.Email)
	if err != nil {
		return err
	}
	s.Email = email

	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("leads: cannot encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leads: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("leads: request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("leads: endpoint returned %s", resp.Status)
	}

	h.logger.Info("lead submitted", "endpoint", h.endpoint, "session", s.SessionID)
	return nil
}

// StoreSubmitter keeps submissions in the local database.
type StoreSubmitter struct {
	store *storage.Store
	newID func() string
}

// NewStoreSubmitter creates a submitter backed by store.
func NewStoreSubmitter(store *storage.Store) *StoreSubmitter {
	return &StoreSubmitter{store: store, newID: uuid.NewString}
}

// Submit stores the lead under a fresh ID.
func (st *StoreSubmitter) Submit(_ context.Context, s Submission) error {
	email, err := NormalizeEmail(s.Email)
	if err != nil {
		return err
	}
	if st.store == nil {
		return errors.New("leads: no database available")
	}

	source := s.Source
	if source == "" {
		source = "tui"
	}
	_, err = st.store.SaveLead(storage.Lead{
		LeadID:    st.newID(),
		Email:     email,
		SessionID: s.SessionID,
		Profile:   s.Profile,
		Source:    source,
	})
	return err
}
