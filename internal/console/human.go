// internal/console/human.go
//
// Console collaborators driven by a person at the keyboard.
//   - HumanCracker reads guesses and the q/d/u/r commands.
//   - HumanSetter reads the secret (hidden, typed twice) and scores guesses.
//   - ExternalSetter reads feedback for a board the engine cannot see.

package console

import (
	"context"
	"fmt"

	"github.com/robalobadob/mastermind/internal/game"
)

// HumanCracker asks for guesses on the console.
type HumanCracker struct {
	cfg    game.Config
	t      *Terminal
	r      *Renderer
	msg    Messages
	labels map[string]string
	// redoable counts the rows undone since the last fresh guess.
	redoable int
}

// CrackerOption configures a HumanCracker.
type CrackerOption func(*HumanCracker)

// WithCommandHelp replaces the help line of command c, e.g. when the caller
// gives q a meaning other than save and quit.
func WithCommandHelp(c, text string) CrackerOption {
	return func(h *HumanCracker) { h.labels[c] = text }
}

// NewHumanCracker prompts on t. r may be nil to skip drawing the board.
// Quit and discard are reported to the caller without a message; what they
// mean is up to the caller.
func NewHumanCracker(cfg game.Config, t *Terminal, r *Renderer, opts ...CrackerOption) *HumanCracker {
	h := &HumanCracker{cfg: cfg, t: t, r: r, msg: Messages{Out: t.out}, labels: map[string]string{}}
	for _, o := range opts {
		o(h)
	}
	return h
}

// SetRedoable primes the redo count of a resumed session.
func (h *HumanCracker) SetRedoable(n int) { h.redoable = n }

func (h *HumanCracker) ObtainGuess(ctx context.Context, history []game.Entry) (game.Combination, game.Command, error) {
	if h.r != nil && len(history) > 0 {
		h.t.println(h.r.Board(history, h.cfg))
	}
	for {
		line, err := h.t.ask(ctx, "Enter your guess: ")
		if err != nil {
			return game.Combination{}, game.CommandNone, err
		}
		switch line {
		case "?":
			h.t.println(codeHelp(h.cfg, h.labels, "?", "d", "q", "u", "r"))
			if h.r != nil {
				h.t.println(h.r.Legend(h.cfg.Colors))
			}
			continue
		case "d":
			return game.Combination{}, game.CommandDiscard, nil
		case "q":
			return game.Combination{}, game.CommandQuit, nil
		case "u":
			if len(history) == 0 {
				h.t.println("Nothing to undo.")
				continue
			}
			h.redoable++
			return game.Combination{}, game.CommandUndo, nil
		case "r":
			if h.redoable == 0 {
				h.t.println("Nothing to redo.")
				continue
			}
			h.redoable--
			return game.Combination{}, game.CommandRedo, nil
		}

		guess, err := game.ParseCombination(line, h.cfg.Dots, h.cfg.Colors)
		if err != nil {
			if err := h.t.invalid(err); err != nil {
				return game.Combination{}, game.CommandNone, err
			}
			continue
		}
		h.redoable = 0
		return guess, game.CommandNone, nil
	}
}

func (h *HumanCracker) WinMessage(o game.Outcome)  { h.msg.Announce(true, o) }
func (h *HumanCracker) LoseMessage(o game.Outcome) { h.msg.Announce(false, o) }

// HumanSetter lets a person choose the secret; guesses are scored
// automatically.
type HumanSetter struct {
	cfg    game.Config
	t      *Terminal
	secret game.Combination
}

func NewHumanSetter(cfg game.Config, t *Terminal) *HumanSetter {
	return &HumanSetter{cfg: cfg, t: t}
}

func (h *HumanSetter) SetSecretCode(ctx context.Context) (game.Combination, game.Command, error) {
	for {
		line, err := h.t.askHidden(ctx, "Enter the secret code: ")
		if err != nil {
			return game.Combination{}, game.CommandNone, err
		}
		switch line {
		case "?":
			h.t.println(codeHelp(h.cfg, commandHelp, "?", "d"))
			continue
		case "d":
			return game.Combination{}, game.CommandDiscard, nil
		}

		secret, err := game.ParseCombination(line, h.cfg.Dots, h.cfg.Colors)
		if err != nil {
			if err := h.t.invalid(err); err != nil {
				return game.Combination{}, game.CommandNone, err
			}
			continue
		}
		confirm, err := h.t.askHidden(ctx, "Confirm the secret code: ")
		if err != nil {
			return game.Combination{}, game.CommandNone, err
		}
		if confirm != line {
			h.t.println("Code does not match. Try again.")
			continue
		}
		h.secret = secret
		return secret, game.CommandNone, nil
	}
}

func (h *HumanSetter) GetFeedback(_ context.Context, guess game.Combination) (game.Feedback, game.Command, error) {
	if h.secret.IsZero() {
		return game.Feedback{}, game.CommandNone, game.ErrSecretNotSet
	}
	return game.Score(guess, h.secret, h.cfg.Colors), game.CommandNone, nil
}

func (h *HumanSetter) RestoreSecret(secret game.Combination) { h.secret = secret }

// ExternalSetter stands in for a code setter outside the program: the engine
// never sees the secret and a person types the feedback for each guess.
type ExternalSetter struct {
	cfg game.Config
	t   *Terminal
}

func NewExternalSetter(cfg game.Config, t *Terminal) *ExternalSetter {
	return &ExternalSetter{cfg: cfg, t: t}
}

func (e *ExternalSetter) SetSecretCode(context.Context) (game.Combination, game.Command, error) {
	return game.Combination{}, game.CommandNone, nil
}

func (e *ExternalSetter) GetFeedback(ctx context.Context, guess game.Combination) (game.Feedback, game.Command, error) {
	e.t.println(fmt.Sprintf("Guess: %s", guess))
	for {
		line, err := e.t.ask(ctx, "Enter the feedback: ")
		if err != nil {
			return game.Feedback{}, game.CommandNone, err
		}
		switch line {
		case "?":
			e.t.println(feedbackHelp(e.cfg, "?", "d", "q", "u"))
			continue
		case "d":
			return game.Feedback{}, game.CommandDiscard, nil
		case "q":
			return game.Feedback{}, game.CommandQuit, nil
		case "u":
			return game.Feedback{}, game.CommandUndo, nil
		}

		fb, err := game.ParseFeedback(line, e.cfg.Dots)
		if err != nil {
			if err := e.t.invalid(err); err != nil {
				return game.Feedback{}, game.CommandNone, err
			}
			continue
		}
		return fb, game.CommandNone, nil
	}
}
