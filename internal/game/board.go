// internal/game/board.go
//
// BoardHistory: the ordered (guess, feedback) rows of one session plus the redo
// buffer filled by undo.
//
// Invariants:
//   - Len() never exceeds the maximum number of attempts.
//   - PopLast moves exactly one row onto the redo buffer and Redo moves exactly
//     one row back, so rows and redo entries always travel as matched pairs.
//   - Append clears the redo buffer; a fresh guess invalidates pending redos.

package game

import "fmt"

// Board is the append-only history of a session. It is owned by a single
// Session and is not safe for concurrent use.
type Board struct {
	colors      int
	dots        int
	maxAttempts int

	entries []Entry
	redo    []Entry // most recently undone entry last
}

// NewBoard returns an empty board for the given dimensions.
func NewBoard(colors, dots, maxAttempts int) *Board {
	return &Board{colors: colors, dots: dots, maxAttempts: maxAttempts}
}

// Len returns the number of rows.
func (b *Board) Len() int { return len(b.entries) }

// RedoLen returns the number of undone rows that can be redone.
func (b *Board) RedoLen() int { return len(b.redo) }

// Full reports whether the board reached its row bound.
func (b *Board) Full() bool { return len(b.entries) >= b.maxAttempts }

// Entries returns a copy of the rows, oldest first.
func (b *Board) Entries() []Entry { return append([]Entry(nil), b.entries...) }

// RedoEntries returns a copy of the redo buffer, most recently undone last.
func (b *Board) RedoEntries() []Entry { return append([]Entry(nil), b.redo...) }

// Append validates and pushes a row, then clears the redo buffer.
func (b *Board) Append(guess Combination, feedback Feedback) error {
	if err := b.push(Entry{Guess: guess, Feedback: feedback}); err != nil {
		return err
	}
	b.redo = nil
	return nil
}

// PopLast removes the most recent row and pushes it onto the redo buffer.
func (b *Board) PopLast() (Entry, error) {
	n := len(b.entries)
	if n == 0 {
		return Entry{}, fmt.Errorf("%w: no guesses to remove", ErrEmptyBoard)
	}
	e := b.entries[n-1]
	b.entries = b.entries[:n-1]
	b.redo = append(b.redo, e)
	return e, nil
}

// Redo re-appends the most recently undone row. The row is validated again;
// the rest of the redo buffer is kept so several undos can be redone in turn.
func (b *Board) Redo() (Entry, error) {
	n := len(b.redo)
	if n == 0 {
		return Entry{}, ErrEmptyRedoBuffer
	}
	e := b.redo[n-1]
	if err := b.push(e); err != nil {
		return Entry{}, err
	}
	b.redo = b.redo[:n-1]
	return e, nil
}

// PeekLast returns the most recent row without removing it.
func (b *Board) PeekLast() (Entry, error) {
	n := len(b.entries)
	if n == 0 {
		return Entry{}, fmt.Errorf("%w: no guesses to return", ErrEmptyBoard)
	}
	return b.entries[n-1], nil
}

// Clear empties both the rows and the redo buffer.
func (b *Board) Clear() {
	b.entries = nil
	b.redo = nil
}

// push validates e and appends it to the rows.
func (b *Board) push(e Entry) error {
	if b.Full() {
		return fmt.Errorf("%w: board holds %d of %d guesses", ErrMaximumAttemptsReached, len(b.entries), b.maxAttempts)
	}
	if err := validateCombination(e.Guess, b.dots, b.colors); err != nil {
		return err
	}
	if err := validateFeedback(e.Feedback, b.dots); err != nil {
		return err
	}
	b.entries = append(b.entries, e)
	return nil
}
