// Package journal persists session transcripts to SQLite so past
// playthroughs can be listed and replayed from the CLI. The welcome screen
// never touches this store; the adventure view records events as they
// happen.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grove/internal/game"
	"grove/pkg/db"
	"grove/pkg/migration"
)

// Event kinds stored in session_events.
const (
	KindMove    = "move"
	KindJournal = "journal"
	KindItem    = "item"
)

type SessionRow struct {
	ID        string
	Player    string
	World     string
	StartedAt time.Time
}

type EventRow struct {
	Seq     int64
	Kind    string
	Payload string
	At      time.Time
}

type Store struct {
	db *db.DB
}

// Open opens (creating if necessary) the journal database at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	handle, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := migration.NewRunner(handle.Write).Run(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("migrate journal database: %w", err)
	}
	return &Store{db: handle}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// BeginSession records the session header row.
func (s *Store) BeginSession(ctx context.Context, sess *game.Session) error {
	_, err := s.db.Write.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, player, world, started_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Player, sess.World().Name, sess.StartedAt)
	return err
}

// RecordOutcome appends the events produced by one resolved action.
func (s *Store) RecordOutcome(ctx context.Context, sessionID string, out game.Outcome) error {
	if !out.Moved {
		return nil
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		tr := out.Transition
		if tr != nil {
			payload := fmt.Sprintf("%s -> %s via %s", tr.From, tr.To, tr.Action)
			if err := insertEvent(tx, sessionID, KindMove, payload, tr.At); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		if out.JournalAdd != "" {
			if err := insertEvent(tx, sessionID, KindJournal, out.JournalAdd, now); err != nil {
				return err
			}
		}
		if out.ItemAdd != "" {
			if err := insertEvent(tx, sessionID, KindItem, out.ItemAdd, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertEvent(tx *sql.Tx, sessionID, kind, payload string, at time.Time) error {
	_, err := tx.Exec(
		`INSERT INTO session_events (session_id, kind, payload, at) VALUES (?, ?, ?, ?)`,
		sessionID, kind, payload, at)
	return err
}

// Sessions lists recorded sessions, newest first.
func (s *Store) Sessions(ctx context.Context) ([]SessionRow, error) {
	rows, err := s.db.Read.QueryContext(ctx,
		`SELECT id, player, world, started_at FROM sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		if err := rows.Scan(&r.ID, &r.Player, &r.World, &r.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Events returns a session's transcript in order.
func (s *Store) Events(ctx context.Context, sessionID string) ([]EventRow, error) {
	rows, err := s.db.Read.QueryContext(ctx,
		`SELECT seq, kind, payload, at FROM session_events WHERE session_id = ? ORDER BY seq`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRow
	for rows.Next() {
		var r EventRow
		if err := rows.Scan(&r.Seq, &r.Kind, &r.Payload, &r.At); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear deletes every recorded session and event.
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM session_events`); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM sessions`)
		return err
	})
}
