package state

import "database/sql"

// Interface defines the session store contract for dependency injection and
// testing.
type Interface interface {
	DB() *sql.DB
	SaveSession(s Session, keep int) error
	RecentSessions(limit int) ([]Session, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
