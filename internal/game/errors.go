package game

import "errors"

// Input validation errors. These describe malformed external input and are
// always recoverable by re-prompting whoever produced it.
var (
	ErrInputConversion = errors.New("input conversion error")
	ErrRange           = errors.New("range error")
	ErrTypeValidation  = errors.New("type validation error")
)

// State errors. These describe an illegal call sequence by the code driving a
// session and are not retried by the engine.
var (
	ErrEmptyBoard             = errors.New("board is empty")
	ErrEmptyRedoBuffer        = errors.New("nothing to redo")
	ErrGameEnded              = errors.New("game has ended")
	ErrGameNotStarted         = errors.New("game has not started")
	ErrGameAlreadyStarted     = errors.New("game has already started")
	ErrMaximumAttemptsReached = errors.New("maximum attempts reached")
	ErrSecretNotSet           = errors.New("secret code not set")
	ErrSecretAlreadySet       = errors.New("secret code already set")
	ErrUnexpectedCommand      = errors.New("unexpected command")
	ErrInvalidConfig          = errors.New("invalid game config")
	ErrCorruptSnapshot        = errors.New("corrupt session snapshot")
)

// IsValidationError reports whether err belongs to the input validation
// taxonomy and can be handled by asking for the input again.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInputConversion) ||
		errors.Is(err, ErrRange) ||
		errors.Is(err, ErrTypeValidation)
}
