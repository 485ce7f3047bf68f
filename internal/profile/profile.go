// internal/profile/profile.go
//
// Local player profiles.
// Responsibilities:
//   - Create profiles with a validated name and an optional bcrypt password.
//   - Authenticate a profile before its saved games are used.
//   - Track games played, wins and the current win streak.
//
// A Service is passed to whoever needs profiles; there is no process-wide
// profile state.

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrUsernameTaken  = errors.New("profile name taken")
	ErrBadCredentials = errors.New("invalid profile name or password")
)

// Profile is one row of the profiles table.
type Profile struct {
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	GamesPlayed  int
	Wins         int
	Streak       int
}

// HasPassword reports whether the profile is password protected.
func (p Profile) HasPassword() bool { return p.PasswordHash != "" }

// Service reads and writes profiles.
type Service struct {
	db *sql.DB
}

// NewService wraps a migrated database.
func NewService(db *sql.DB) *Service { return &Service{db: db} }

// normalizeName trims whitespace; adjust here if you want stricter rules.
func normalizeName(n string) string {
	return strings.TrimSpace(n)
}

// validate enforces basic name/password rules. An empty password is allowed.
func validate(name, password string) error {
	if len(name) < 3 || len(name) > 24 {
		return errors.New("profile name must be 3–24 chars")
	}
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("profile name: letters, numbers, underscore only")
		}
	}
	if password != "" && (len(password) < 8 || len(password) > 100) {
		return errors.New("password must be 8–100 chars")
	}
	return nil
}

// Create validates input, checks uniqueness, hashes the password and inserts
// the profile.
func (s *Service) Create(ctx context.Context, name, password string) (*Profile, error) {
	name = normalizeName(name)
	if err := validate(name, password); err != nil {
		return nil, err
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE lower(name)=lower(?)`, name).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check profile %s: %w", name, err)
	}

	var hash string
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (name, password_hash, created_at) VALUES (?,?,?)`,
		name, hash, now.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("create profile %s: %w", name, err)
	}
	return &Profile{Name: name, PasswordHash: hash, CreatedAt: now.Truncate(time.Second)}, nil
}

// Get loads a profile by name (case-insensitive).
func (s *Service) Get(ctx context.Context, name string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name, password_hash, created_at, games_played, wins, streak
	                                  FROM profiles WHERE lower(name)=lower(?)`, normalizeName(name))
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, err
}

// List returns every profile ordered by wins, then name.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, password_hash, created_at, games_played, wins, streak
	                                     FROM profiles ORDER BY wins DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Authenticate loads the profile and checks password. Profiles without a
// password accept any input.
func (s *Service) Authenticate(ctx context.Context, name, password string) (*Profile, error) {
	p, err := s.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if p.HasPassword() && !checkPassword(p.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return p, nil
}

// RecordResult bumps the profile's stats in its own transaction.
func (s *Service) RecordResult(ctx context.Context, name string, won bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.RecordResultTx(ctx, tx, name, won); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordResultTx increments games played; updates wins and streak based on
// the result (within tx).
func (s *Service) RecordResultTx(ctx context.Context, tx *sql.Tx, name string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM profiles WHERE name=?`, name)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE profiles SET games_played=?, wins=?, streak=? WHERE name=?`, gp, wins, streak, name)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

// scanProfile converts a row into a Profile.
func scanProfile(row scanner) (*Profile, error) {
	var p Profile
	var created string
	if err := row.Scan(&p.Name, &p.PasswordHash, &created, &p.GamesPlayed, &p.Wins, &p.Streak); err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
