package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrAlreadyPlayed = errors.New("daily challenge already played")

// Result is one finished daily game.
type Result struct {
	Profile   string
	Date      string
	Dimension string
	Attempts  int
	Won       bool
	ElapsedMs int64
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, profile, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE profile=? AND date=?",
		profile, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same profile and day is
// ignored and reported as ErrAlreadyPlayed.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(profile, date, dimension, attempts, won, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`, r.Profile, r.Date, r.Dimension, r.Attempts, won, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("insert daily result: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s on %s", ErrAlreadyPlayed, r.Profile, r.Date)
	}
	return nil
}

type LBRow struct {
	Profile   string
	Dimension string
	Attempts  int
	Won       bool
	ElapsedMs int64
}

// Leaderboard ranks the day's results: winners first, then fewest attempts,
// then fastest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile, dimension, attempts, won, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY won DESC, attempts ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		var won int
		if err := rows.Scan(&r.Profile, &r.Dimension, &r.Attempts, &won, &r.ElapsedMs); err != nil {
			return nil, err
		}
		r.Won = won != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
