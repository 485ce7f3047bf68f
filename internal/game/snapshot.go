// internal/game/snapshot.go
//
// Snapshot is the value shape exchanged with storage: config, rows, redo buffer,
// secret (when known), win status and the started flag. Restore rebuilds a
// Session from it without replaying the collaborators.

package game

import (
	"fmt"
)

// Snapshot is a serialisable copy of a session's state.
type Snapshot struct {
	Config    Config       `json:"config"`
	Entries   []Entry      `json:"entries"`
	Redo      []Entry      `json:"redo,omitempty"`
	Secret    *Combination `json:"secret,omitempty"`
	WinStatus WinStatus    `json:"winStatus"`
	Started   bool         `json:"started"`
}

// Resumable reports whether the snapshot describes a session that can be
// resumed. A session stopped before its setter chose the secret cannot be:
// the turn loop would have nothing to score guesses against.
func (sn Snapshot) Resumable() bool {
	if !sn.Started || sn.WinStatus != InProgress {
		return false
	}
	return sn.Secret != nil || sn.Config.Mode.SecretHidden()
}

// Snapshot captures the current state. The abandoned flag is not part of it: a
// quit session is restored as in progress.
func (s *Session) Snapshot() Snapshot {
	sn := Snapshot{
		Config:    s.cfg,
		Entries:   s.board.Entries(),
		Redo:      s.board.RedoEntries(),
		WinStatus: s.win,
		Started:   s.started.Blown(),
	}
	if secret, ok := s.secret.Get(); ok {
		sn.Secret = &secret
	}
	return sn
}

// Restore rebuilds a session from sn. Every row is validated again. A setter
// implementing SecretRestorer receives the persisted secret.
func Restore(sn Snapshot, setter CodeSetter, cracker CodeCracker, opts ...Option) (*Session, error) {
	s, err := NewSession(sn.Config, setter, cracker, opts...)
	if err != nil {
		return nil, err
	}
	if !sn.Started && (len(sn.Entries) > 0 || sn.Secret != nil) {
		return nil, fmt.Errorf("%w: unstarted session has state", ErrCorruptSnapshot)
	}
	if sn.Started {
		s.started.Blow()
	}

	if sn.Secret != nil {
		if err := validateCombination(*sn.Secret, sn.Config.Dots, sn.Config.Colors); err != nil {
			return nil, fmt.Errorf("%w: secret: %w", ErrCorruptSnapshot, err)
		}
		if err := s.secret.Set(*sn.Secret); err != nil {
			return nil, err
		}
		if r, ok := setter.(SecretRestorer); ok {
			r.RestoreSecret(*sn.Secret)
		}
	}

	for i, e := range sn.Entries {
		if err := s.board.push(e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptSnapshot, i, err)
		}
	}
	for i, e := range sn.Redo {
		if err := validateCombination(e.Guess, sn.Config.Dots, sn.Config.Colors); err != nil {
			return nil, fmt.Errorf("%w: redo entry %d: %w", ErrCorruptSnapshot, i, err)
		}
		if err := validateFeedback(e.Feedback, sn.Config.Dots); err != nil {
			return nil, fmt.Errorf("%w: redo entry %d: %w", ErrCorruptSnapshot, i, err)
		}
	}
	s.board.redo = append([]Entry(nil), sn.Redo...)

	if got := s.CheckAndUpdateWinStatus(); got != sn.WinStatus {
		return nil, fmt.Errorf("%w: stored status %s but history says %s", ErrCorruptSnapshot, sn.WinStatus, got)
	}
	return s, nil
}
