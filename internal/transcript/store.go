// Package transcript archives finished interview conversations locally and
// makes them searchable.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"mianshictl/internal/api"
	"mianshictl/internal/interview"
)

// Transcript is one archived interview conversation.
type Transcript struct {
	ID        string // session id assigned when the interview was opened
	MeetingID uint
	Candidate string
	Position  string
	StartedAt int64 // unix seconds
	Turns     int   // candidate answers submitted
	Text      string
}

// FromMessages builds an archive entry from a finished interview session.
func FromMessages(sessionID string, meeting *api.Meeting, messages []interview.Message) Transcript {
	t := Transcript{
		ID:        sessionID,
		StartedAt: time.Now().Unix(),
		Text:      Render(messages),
	}
	if meeting != nil {
		t.MeetingID = meeting.ID
		t.Candidate = meeting.Candidate
		t.Position = meeting.Position
	}
	for _, msg := range messages {
		if msg.Speaker == interview.SpeakerUser {
			t.Turns++
		}
	}
	return t
}

// Render flattens a transcript into plain text, one line per message.
func Render(messages []interview.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		label := "candidate"
		if msg.Speaker == interview.SpeakerAI {
			label = "interviewer"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Store persists transcripts in sqlite and mirrors them into a full-text
// index.
type Store struct {
	db    *sql.DB
	index *Index
}

// NewStore opens (or creates) the archive under dir.
func NewStore(ctx context.Context, dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "transcripts.db")

	// WAL keeps the CLI responsive if a search runs while an archive write
	// is still in flight.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	index, err := NewIndex(dbPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.index = index

	return s, nil
}

// Close closes the database and the search index.
func (s *Store) Close() error {
	indexErr := s.index.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return indexErr
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcripts (
		id          TEXT PRIMARY KEY,
		meeting_id  INTEGER NOT NULL,
		candidate   TEXT NOT NULL DEFAULT '',
		position    TEXT NOT NULL DEFAULT '',
		started_at  INTEGER NOT NULL,
		turns       INTEGER NOT NULL DEFAULT 0,
		text        TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_transcripts_meeting ON transcripts(meeting_id);
	CREATE INDEX IF NOT EXISTS idx_transcripts_started ON transcripts(started_at);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Archive stores a transcript and indexes it for search. Archiving the same
// session twice replaces the earlier row.
func (s *Store) Archive(ctx context.Context, t Transcript) error {
	if t.ID == "" {
		return fmt.Errorf("transcript id is empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO transcripts (id, meeting_id, candidate, position, started_at, turns, text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.MeetingID, t.Candidate, t.Position, t.StartedAt, t.Turns, t.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to store transcript: %w", err)
	}

	return s.index.IndexTranscript(&t)
}

// Get retrieves one archived transcript by id.
func (s *Store) Get(ctx context.Context, id string) (*Transcript, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, candidate, position, started_at, turns, text
		FROM transcripts WHERE id = ?`, id)

	var t Transcript
	err := row.Scan(&t.ID, &t.MeetingID, &t.Candidate, &t.Position, &t.StartedAt, &t.Turns, &t.Text)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transcript %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return &t, nil
}

// List returns the most recent transcripts, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Transcript, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, meeting_id, candidate, position, started_at, turns, text
		FROM transcripts ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	defer rows.Close()

	var out []Transcript
	for rows.Next() {
		var t Transcript
		if err := rows.Scan(&t.ID, &t.MeetingID, &t.Candidate, &t.Position, &t.StartedAt, &t.Turns, &t.Text); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a transcript from the archive and the index.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return s.index.Delete(id)
}

// Search runs a full-text query over the archive and resolves the hits back
// to their stored rows.
func (s *Store) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	hits, err := s.index.Search(query, k)
	if err != nil {
		return nil, err
	}

	for i := range hits {
		t, err := s.Get(ctx, hits[i].ID)
		if err != nil {
			continue // index may be ahead of the table; skip orphans
		}
		hits[i].Transcript = *t
	}
	return hits, nil
}
