package store

import (
	"context"
	"time"
)

// Store persists played sessions.
type Store interface {
	Close() error

	SaveSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, bool, error)
	ListSessions(ctx context.Context, limit int) ([]Session, error)
}

// Session is one generated puzzle and how it was played.
type Session struct {
	ID        string
	CreatedAt time.Time
	Source    string // corpus path
	Row       int
	Field     string
	Template  string // text with blank markers
	Blanks    []Blank
}

// Blank records one blank and the user's answer.
type Blank struct {
	Short    string
	Long     string
	Original string
	Answer   string
	Attempts int
	Accepted bool
}

// Score returns the number of accepted answers.
func (s Session) Score() int {
	n := 0
	for _, b := range s.Blanks {
		if b.Accepted {
			n++
		}
	}
	return n
}
