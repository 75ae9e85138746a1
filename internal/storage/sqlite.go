// Package storage provides SQLite-based persistence for finished sessions
// and captured e-mail leads.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SessionResult is the persisted summary of one completed session.
type SessionResult struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"sessionId"`
	Level       int       `json:"level"`
	EndReason   string    `json:"endReason"`
	Coins       int       `json:"coins"`
	Energy      int       `json:"energy"`
	Mastery     float64   `json:"aiMastery"`
	Efficiency  float64   `json:"efficiencyScore"`
	AIAdoption  float64   `json:"aiAdoption"`
	Strategic   float64   `json:"strategicScore"`
	ProfileID   string    `json:"profileId"`
	Profile     string    `json:"profile"`
	PathChoices int       `json:"pathChoices"`
	Encounters  int       `json:"encounters"`
	TotalTime   int       `json:"totalTime"` // seconds
	CreatedAt   time.Time `json:"createdAt"`
}

// Lead is a captured e-mail address kept locally.
type Lead struct {
	ID        int64     `json:"id"`
	LeadID    string    `json:"leadId"`
	Email     string    `json:"email"`
	SessionID string    `json:"sessionId,omitempty"`
	Profile   string    `json:"profile,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileCount is the number of sessions that ended with a profile.
type ProfileCount struct {
	Profile string `json:"profile"`
	Count   int    `json:"count"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			level INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			energy INTEGER NOT NULL DEFAULT 0,
			mastery REAL NOT NULL DEFAULT 0,
			efficiency REAL NOT NULL DEFAULT 0,
			ai_adoption REAL NOT NULL DEFAULT 0,
			strategic REAL NOT NULL DEFAULT 0,
			profile_id TEXT NOT NULL,
			profile TEXT NOT NULL,
			path_choices INTEGER NOT NULL DEFAULT 0,
			encounters INTEGER NOT NULL DEFAULT 0,
			total_time INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_profile ON results(profile_id);

		CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lead_id TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			session_id TEXT,
			profile TEXT,
			source TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a completed session. A zero CreatedAt is set to now.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r SessionResult) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	res, err := s.db.Exec(
		`INSERT INTO results
		 (session_id, level, end_reason, coins, energy, mastery, efficiency, ai_adoption, strategic,
		  profile_id, profile, path_choices, encounters, total_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Level, r.EndReason, r.Coins, r.Energy, r.Mastery,
		r.Efficiency, r.AIAdoption, r.Strategic,
		r.ProfileID, r.Profile, r.PathChoices, r.Encounters, r.TotalTime,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, session_id, level, end_reason, coins, energy, mastery,
	efficiency, ai_adoption, strategic, profile_id, profile, path_choices, encounters, total_time, created_at`

// RecentResults retrieves the most recent sessions, newest first.
func (s *Store) RecentResults(limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []SessionResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ResultBySession retrieves a session by its session ID.
// Returns nil if no such session exists.
func (s *Store) ResultBySession(sessionID string) (*SessionResult, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE session_id = ?`,
		sessionID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ProfileCounts aggregates completed sessions by profile, most common first.
func (s *Store) ProfileCounts() ([]ProfileCount, error) {
	rows, err := s.db.Query(
		`SELECT profile, COUNT(*) AS n
		 FROM results
		 GROUP BY profile
		 ORDER BY n DESC, profile ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count profiles: %w", err)
	}
	defer rows.Close()

	var counts []ProfileCount
	for rows.Next() {
		var c ProfileCount
		if err := rows.Scan(&c.Profile, &c.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan profile row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// ClearResults deletes every stored session.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// SaveLead stores a captured e-mail address. A zero CreatedAt is set to now.
func (s *Store) SaveLead(l Lead) (int64, error) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}

	res, err := s.db.Exec(
		`INSERT INTO leads (lead_id, email, session_id, profile, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.LeadID, l.Email, l.SessionID, l.Profile, l.Source,
		l.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Leads retrieves the most recent leads, newest first.
func (s *Store) Leads(limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, lead_id, email, session_id, profile, source, created_at
		 FROM leads
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		var sessionID, profile sql.NullString
		var createdAt any
		if err := rows.Scan(&l.ID, &l.LeadID, &l.Email, &sessionID, &profile, &l.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		l.SessionID = sessionID.String
		l.Profile = profile.String
		l.CreatedAt = parseTime(createdAt)
		leads = append(leads, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return leads, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (SessionResult, error) {
	var r SessionResult
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.Level,
		&r.EndReason,
		&r.Coins,
		&r.Energy,
		&r.Mastery,
		&r.Efficiency,
		&r.AIAdoption,
		&r.Strategic,
		&r.ProfileID,
		&r.Profile,
		&r.PathChoices,
		&r.Encounters,
		&r.TotalTime,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
