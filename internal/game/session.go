// internal/game/session.go
//
// The Mastermind session state machine.
// Responsibilities:
//   - Ask the Setter for a secret, then run the turn loop.
//   - Interpret quit/discard/undo/redo commands from both collaborators.
//   - Append scored guesses to the Board and update the win status.
//   - Tell the Cracker the result exactly once when the session ends.
//
// State transitions:
//   not_started → in_progress → won | lost
//   in_progress → abandoned (quit or discard; a quit session stays resumable
//   through its Snapshot)

package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Session is a single game. It owns its Board and is not safe for concurrent
// use.
type Session struct {
	cfg   Config
	board *Board

	secret    SecretCode
	started   Fuse
	win       WinStatus
	abandoned bool

	setter  CodeSetter
	cracker CodeCracker
	log     zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for session events (debug level).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession validates cfg and builds a session that has not started yet.
func NewSession(cfg Config, setter CodeSetter, cracker CodeCracker, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if setter == nil || cracker == nil {
		return nil, fmt.Errorf("%w: setter and cracker are required", ErrInvalidConfig)
	}
	s := &Session{
		cfg:     cfg,
		board:   NewBoard(cfg.Colors, cfg.Dots, cfg.MaxAttempts),
		setter:  setter,
		cracker: cracker,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Config returns the session dimensions.
func (s *Session) Config() Config { return s.cfg }

// History returns the board rows, oldest first.
func (s *Session) History() []Entry { return s.board.Entries() }

// Len returns the number of guesses on the board.
func (s *Session) Len() int { return s.board.Len() }

// Secret returns the secret and whether the engine knows it.
func (s *Session) Secret() (Combination, bool) { return s.secret.Get() }

// WinStatus returns the current result.
func (s *Session) WinStatus() WinStatus { return s.win }

// Started reports whether Start was ever called.
func (s *Session) Started() bool { return s.started.Blown() }

// Status folds the started flag, abandonment and win status into one state.
func (s *Session) Status() Status {
	switch {
	case s.win == Won:
		return StatusWon
	case s.win == Lost:
		return StatusLost
	case s.abandoned:
		return StatusAbandoned
	case !s.started.Blown():
		return StatusNotStarted
	}
	return StatusInProgress
}

// Start asks the Setter for the secret and runs the turn loop. It returns the
// command that stopped the loop, or CommandNone when the session ended with a
// win or a loss.
func (s *Session) Start(ctx context.Context) (Command, error) {
	if s.started.Blown() {
		return CommandNone, ErrGameAlreadyStarted
	}
	s.started.Blow()
	s.log.Debug().Str("mode", string(s.cfg.Mode)).Str("dimension", s.cfg.Dimension()).
		Int("maxAttempts", s.cfg.MaxAttempts).Msg("session started")

	secret, cmd, err := s.setter.SetSecretCode(ctx)
	if err != nil {
		return CommandNone, fmt.Errorf("set secret code: %w", err)
	}
	switch cmd {
	case CommandNone:
	case CommandDiscard:
		s.abandon(cmd)
		return cmd, nil
	default:
		return CommandNone, fmt.Errorf("%w: %q while setting the secret code", ErrUnexpectedCommand, cmd)
	}

	if !secret.IsZero() {
		if err := validateCombination(secret, s.cfg.Dots, s.cfg.Colors); err != nil {
			return CommandNone, fmt.Errorf("set secret code: %w", err)
		}
		if err := s.secret.Set(secret); err != nil {
			return CommandNone, err
		}
		s.log.Debug().Msg("secret code set")
	}
	return s.play(ctx)
}

// Resume re-enters the turn loop of a started session, typically one rebuilt
// with Restore.
func (s *Session) Resume(ctx context.Context) (Command, error) {
	if !s.started.Blown() {
		return CommandNone, ErrGameNotStarted
	}
	if s.abandoned {
		return CommandNone, fmt.Errorf("%w: session was abandoned", ErrGameEnded)
	}
	s.log.Debug().Int("attempts", s.board.Len()).Msg("session resumed")
	return s.play(ctx)
}

// play runs the turn loop until the session ends or a collaborator stops it.
func (s *Session) play(ctx context.Context) (Command, error) {
	before := s.win
	for s.win == InProgress {
		if err := ctx.Err(); err != nil {
			return CommandNone, err
		}

		guess, cmd, err := s.cracker.ObtainGuess(ctx, s.board.Entries())
		if err != nil {
			return CommandNone, fmt.Errorf("obtain guess: %w", err)
		}
		switch cmd {
		case CommandNone:
		case CommandQuit, CommandDiscard:
			s.abandon(cmd)
			return cmd, nil
		case CommandUndo:
			if _, err := s.Undo(); err != nil {
				return CommandNone, err
			}
			continue
		case CommandRedo:
			if _, err := s.Redo(); err != nil {
				return CommandNone, err
			}
			continue
		default:
			return CommandNone, fmt.Errorf("%w: %q from cracker", ErrUnexpectedCommand, cmd)
		}

		if err := validateCombination(guess, s.cfg.Dots, s.cfg.Colors); err != nil {
			return CommandNone, fmt.Errorf("obtain guess: %w", err)
		}

		fb, cmd, err := s.setter.GetFeedback(ctx, guess)
		if err != nil {
			return CommandNone, fmt.Errorf("get feedback: %w", err)
		}
		switch cmd {
		case CommandNone:
		case CommandQuit, CommandDiscard:
			s.abandon(cmd)
			return cmd, nil
		case CommandUndo:
			// The guess was never appended, so dropping it is the undo.
			s.log.Debug().Stringer("guess", guess).Msg("guess withdrawn")
			continue
		default:
			return CommandNone, fmt.Errorf("%w: %q from setter", ErrUnexpectedCommand, cmd)
		}

		if err := s.SubmitGuess(guess, fb); err != nil {
			return CommandNone, err
		}
	}

	if before == InProgress {
		s.announce()
	}
	return CommandNone, nil
}

// SubmitGuess appends a scored guess and re-evaluates the win status.
func (s *Session) SubmitGuess(guess Combination, feedback Feedback) error {
	if err := s.checkPlayable(); err != nil {
		return err
	}
	if err := s.board.Append(guess, feedback); err != nil {
		return err
	}
	s.log.Debug().Stringer("guess", guess).Stringer("feedback", feedback).
		Int("attempt", s.board.Len()).Msg("guess submitted")
	s.CheckAndUpdateWinStatus()
	return nil
}

// Undo removes the last row and keeps it for Redo.
func (s *Session) Undo() (Entry, error) {
	if err := s.checkPlayable(); err != nil {
		return Entry{}, err
	}
	e, err := s.board.PopLast()
	if err != nil {
		return Entry{}, err
	}
	s.log.Debug().Stringer("guess", e.Guess).Int("attempts", s.board.Len()).Msg("undo")
	s.CheckAndUpdateWinStatus()
	return e, nil
}

// Redo restores the most recently undone row. It counts as a completed turn.
func (s *Session) Redo() (Entry, error) {
	if err := s.checkPlayable(); err != nil {
		return Entry{}, err
	}
	e, err := s.board.Redo()
	if err != nil {
		return Entry{}, err
	}
	s.log.Debug().Stringer("guess", e.Guess).Int("attempts", s.board.Len()).Msg("redo")
	s.CheckAndUpdateWinStatus()
	return e, nil
}

// CheckAndUpdateWinStatus derives the win status from the last row. A guess
// equal to the secret (or perfect feedback) wins even on the final attempt.
func (s *Session) CheckAndUpdateWinStatus() WinStatus {
	prev := s.win
	last, err := s.board.PeekLast()
	switch {
	case err != nil:
		s.win = InProgress
	case s.lastGuessIsSecret(last):
		s.win = Won
	case last.Feedback.IsPerfect(s.cfg.Dots):
		s.win = Won
	case s.board.Len() == s.cfg.MaxAttempts:
		s.win = Lost
	default:
		s.win = InProgress
	}
	if s.win != prev {
		s.log.Debug().Stringer("status", s.win).Int("attempts", s.board.Len()).Msg("win status changed")
	}
	return s.win
}

func (s *Session) lastGuessIsSecret(last Entry) bool {
	secret, ok := s.secret.Get()
	return ok && last.Guess.Equal(secret)
}

// checkPlayable guards every board mutation.
func (s *Session) checkPlayable() error {
	if !s.started.Blown() {
		return ErrGameNotStarted
	}
	if s.win.Terminal() {
		return fmt.Errorf("%w: session is %s", ErrGameEnded, s.win)
	}
	if s.abandoned {
		return fmt.Errorf("%w: session was abandoned", ErrGameEnded)
	}
	return nil
}

func (s *Session) abandon(cmd Command) {
	s.abandoned = true
	s.log.Debug().Str("command", cmd.String()).Int("attempts", s.board.Len()).Msg("session stopped")
}

func (s *Session) announce() {
	secret, _ := s.secret.Get()
	o := Outcome{Attempts: s.board.Len(), MaxAttempts: s.cfg.MaxAttempts, Secret: secret}
	switch s.win {
	case Won:
		s.cracker.WinMessage(o)
	case Lost:
		s.cracker.LoseMessage(o)
	}
}
