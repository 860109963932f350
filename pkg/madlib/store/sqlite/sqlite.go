package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/cognicore/madlib/pkg/madlib/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	source TEXT,
	row_index INTEGER,
	field TEXT,
	template TEXT
);

CREATE INDEX IF NOT EXISTS sessions_created_at ON sessions(created_at);

CREATE TABLE IF NOT EXISTS session_blanks (
	session_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	short TEXT,
	long TEXT,
	original TEXT,
	answer TEXT,
	attempts INTEGER DEFAULT 0,
	accepted INTEGER DEFAULT 0,
	PRIMARY KEY(session_id, idx),
	FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSession inserts or replaces a session and its blanks
func (s *sqliteStore) SaveSession(ctx context.Context, sess store.Session) error {
	if sess.ID == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := sq.Insert("sessions").
		Columns("id", "created_at", "source", "row_index", "field", "template").
		Values(sess.ID, sess.CreatedAt.UTC().UnixNano(), sess.Source, sess.Row, sess.Field, sess.Template).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	source=excluded.source,
	row_index=excluded.row_index,
	field=excluded.field,
	template=excluded.template`)
	if err := execBuilder(ctx, tx, upsert); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	if err := replaceBlanks(ctx, tx, sess.ID, sess.Blanks); err != nil {
		return fmt.Errorf("replace blanks: %w", err)
	}

	return tx.Commit()
}

func replaceBlanks(ctx context.Context, tx *sql.Tx, id string, blanks []store.Blank) error {
	if err := execBuilder(ctx, tx, sq.Delete("session_blanks").Where(sq.Eq{"session_id": id})); err != nil {
		return err
	}
	if len(blanks) == 0 {
		return nil
	}

	insert := sq.Insert("session_blanks").
		Columns("session_id", "idx", "short", "long", "original", "answer", "attempts", "accepted")
	for i, b := range blanks {
		insert = insert.Values(id, i, b.Short, b.Long, b.Original, b.Answer, b.Attempts, boolInt(b.Accepted))
	}
	return execBuilder(ctx, tx, insert)
}

// GetSession loads one session with its blanks
func (s *sqliteStore) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	query, args, err := sq.Select("id", "created_at", "source", "row_index", "field", "template").
		From("sessions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return store.Session{}, false, err
	}

	var (
		sess    store.Session
		created int64
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&sess.ID, &created, &sess.Source, &sess.Row, &sess.Field, &sess.Template,
	)
	if err == sql.ErrNoRows {
		return store.Session{}, false, nil
	}
	if err != nil {
		return store.Session{}, false, err
	}
	sess.CreatedAt = time.Unix(0, created).UTC()

	sess.Blanks, err = s.loadBlanks(ctx, id)
	if err != nil {
		return store.Session{}, false, err
	}
	return sess, true, nil
}

// ListSessions returns the newest sessions first
func (s *sqliteStore) ListSessions(ctx context.Context, limit int) ([]store.Session, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := sq.Select("id").
		From("sessions").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	out := make([]store.Session, 0, len(ids))
	for _, id := range ids {
		sess, found, err := s.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *sqliteStore) loadBlanks(ctx context.Context, id string) ([]store.Blank, error) {
	query, args, err := sq.Select("short", "long", "original", "answer", "attempts", "accepted").
		From("session_blanks").
		Where(sq.Eq{"session_id": id}).
		OrderBy("idx").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blanks []store.Blank
	for rows.Next() {
		var (
			b        store.Blank
			accepted int
		)
		if err := rows.Scan(&b.Short, &b.Long, &b.Original, &b.Answer, &b.Attempts, &accepted); err != nil {
			return nil, err
		}
		b.Accepted = accepted != 0
		blanks = append(blanks, b)
	}
	return blanks, rows.Err()
}

func execBuilder(ctx context.Context, tx *sql.Tx, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
