// internal/store/sqlite.go
//
// SQLite-backed Store. Each record is one row of the sessions table; the game
// state itself is the JSON encoded game.Snapshot, with a few columns copied out
// of it (mode, dimensions, attempts, win status) for listings.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

// timeLayout sorts lexically in chronological order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite stores sessions in a database opened with OpenDB and migrated with
// Migrate.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore wraps db.
func NewSQLiteStore(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

// TxSaver is implemented by stores that can save inside a caller's
// transaction, so a finished session and the stats it produces commit together.
type TxSaver interface {
	SaveTx(ctx context.Context, tx *sql.Tx, r Record) error
}

var _ TxSaver = (*SQLite)(nil)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save inserts or replaces a record.
func (s *SQLite) Save(ctx context.Context, r Record) error {
	return s.save(ctx, s.db, r)
}

// SaveTx saves r inside an outer transaction.
func (s *SQLite) SaveTx(ctx context.Context, tx *sql.Tx, r Record) error {
	return s.save(ctx, tx, r)
}

func (s *SQLite) save(ctx context.Context, ex execer, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("save session: empty id")
	}
	body, err := json.Marshal(r.Snapshot)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", r.ID, err)
	}
	now := s.now().UTC()
	created := r.CreatedAt
	if created.IsZero() {
		created = now
	}
	cfg := r.Snapshot.Config
	_, err = ex.ExecContext(ctx, `
        INSERT INTO sessions
            (id, profile, mode, colors, dots, attempts, max_attempts, win_status, snapshot, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            profile=excluded.profile,
            mode=excluded.mode,
            colors=excluded.colors,
            dots=excluded.dots,
            attempts=excluded.attempts,
            max_attempts=excluded.max_attempts,
            win_status=excluded.win_status,
            snapshot=excluded.snapshot,
            updated_at=excluded.updated_at`,
		r.ID, r.Profile, string(cfg.Mode), cfg.Colors, cfg.Dots, len(r.Snapshot.Entries), cfg.MaxAttempts,
		r.Snapshot.WinStatus.String(), string(body), created.UTC().Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", r.ID, err)
	}
	return nil
}

// Get loads a record by ID.
func (s *SQLite) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, profile, snapshot, created_at, updated_at FROM sessions WHERE id=?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return r, nil
}

// Delete removes a record by ID.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// List returns matching records, most recently updated first.
func (s *SQLite) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if !opts.AllProfiles {
		where = append(where, "profile=?")
		args = append(args, opts.Profile)
	}
	if opts.ResumableOnly {
		where = append(where, "win_status=?")
		args = append(args, game.InProgress.String())
	}
	q := `SELECT id, profile, snapshot, created_at, updated_at FROM sessions`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY updated_at DESC, id ASC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		if opts.match(r) {
			out = append(out, r)
		}
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	var body, created, updated string
	if err := sc.Scan(&r.ID, &r.Profile, &body, &created, &updated); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(body), &r.Snapshot); err != nil {
		return Record{}, fmt.Errorf("decode session %s: %w", r.ID, err)
	}
	r.CreatedAt = mustParse(created)
	r.UpdatedAt = mustParse(updated)
	return r, nil
}

// mustParse parses stored timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
