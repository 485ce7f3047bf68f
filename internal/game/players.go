// internal/game/players.go
//
// Collaborator contracts consumed by a Session.
//   - CodeSetter knows (or stands in for) the secret and scores guesses.
//   - CodeCracker produces guesses and is told the outcome.
//   - Command is a control token returned in place of a guess or feedback.
//
// Calls into collaborators block; the session observes quit/discard only at the
// two points where it asks for input.

package game

import "context"

// Command is a control token a collaborator may return instead of a value.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandDiscard
	CommandUndo
	CommandRedo
)

// String returns the single-letter token for the command ("" for none).
func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "q"
	case CommandDiscard:
		return "d"
	case CommandUndo:
		return "u"
	case CommandRedo:
		return "r"
	}
	return ""
}

// ParseCommand maps a single-letter token to a Command.
func ParseCommand(s string) (Command, bool) {
	switch s {
	case "q":
		return CommandQuit, true
	case "d":
		return CommandDiscard, true
	case "u":
		return CommandUndo, true
	case "r":
		return CommandRedo, true
	}
	return CommandNone, false
}

// CodeSetter holds the secret and scores guesses.
type CodeSetter interface {
	// SetSecretCode chooses the secret. A zero Combination means the setter
	// keeps no secret the engine can see (feedback comes from outside).
	// CommandDiscard abandons the session before it starts.
	SetSecretCode(ctx context.Context) (Combination, Command, error)

	// GetFeedback scores guess. Quit, discard and undo are accepted in
	// place of feedback; redo is not.
	GetFeedback(ctx context.Context, guess Combination) (Feedback, Command, error)
}

// CodeCracker produces guesses.
type CodeCracker interface {
	// ObtainGuess returns the next guess or a command. history holds the
	// board rows so far, oldest first.
	ObtainGuess(ctx context.Context, history []Entry) (Combination, Command, error)

	// WinMessage and LoseMessage are called once when a session ends.
	WinMessage(o Outcome)
	LoseMessage(o Outcome)
}

// SecretRestorer is implemented by setters that score guesses themselves and
// therefore need the persisted secret when a saved session is resumed.
type SecretRestorer interface {
	RestoreSecret(secret Combination)
}

// Outcome summarises a finished session for the cracker.
type Outcome struct {
	Attempts    int
	MaxAttempts int
	Secret      Combination // zero when the engine never saw the secret
}
