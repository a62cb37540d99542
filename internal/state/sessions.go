package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/typewriter/internal/db"
)

// Session is one recorded reveal pass.
type Session struct {
	ID            int64
	StartedAt     time.Time
	TotalChars    int
	RevealedChars int
	Duration      time.Duration
	Completed     bool
}

// SaveSession records a finished or abandoned reveal pass and prunes history
// beyond keep entries, atomically.
func (m *Manager) SaveSession(s Session, keep int) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO reveal_sessions
			(started_at, total_chars, revealed_chars, duration_ms, completed)
			VALUES (?, ?, ?, ?, ?)
		`, s.StartedAt.Unix(), s.TotalChars, s.RevealedChars,
			s.Duration.Milliseconds(), boolToInt(s.Completed))
		if err != nil {
			return err
		}

		if keep > 0 {
			_, err = tx.Exec(`
				DELETE FROM reveal_sessions
				WHERE id NOT IN (
					SELECT id FROM reveal_sessions
					ORDER BY started_at DESC, id DESC
					LIMIT ?
				)
			`, keep)
		}
		return err
	})
}

// RecentSessions returns up to limit sessions, newest first.
func (m *Manager) RecentSessions(limit int) ([]Session, error) {
	rows, err := m.db.Query(`
		SELECT id, started_at, total_chars, revealed_chars, duration_ms, completed
		FROM reveal_sessions
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt, durationMs int64
		var completed int

		if err := rows.Scan(&s.ID, &startedAt, &s.TotalChars,
			&s.RevealedChars, &durationMs, &completed); err != nil {
			return nil, err
		}

		s.StartedAt = time.Unix(startedAt, 0)
		s.Duration = time.Duration(durationMs) * time.Millisecond
		s.Completed = completed != 0
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
