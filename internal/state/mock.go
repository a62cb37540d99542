package state

import "database/sql"

// Mock is a test double for Manager.
type Mock struct {
	sessions []Session
	saveErr  error
	closed   bool
}

// NewMock creates a new mock session store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveSession(s Session, keep int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions = append([]Session{s}, m.sessions...)
	if keep > 0 && len(m.sessions) > keep {
		m.sessions = m.sessions[:keep]
	}
	return nil
}

func (m *Mock) RecentSessions(limit int) ([]Session, error) {
	if limit > len(m.sessions) {
		limit = len(m.sessions)
	}
	out := make([]Session, limit)
	copy(out, m.sessions[:limit])
	return out, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSaveError(err error) { m.saveErr = err }

func (m *Mock) Closed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
