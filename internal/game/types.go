// internal/game/types.go
//
// Core type definitions for the Mastermind session engine.
// Defines:
//   - Mode: who plays the Cracker and the Setter (HvH, HvAI, AIvH, AIvAI).
//   - Config: the write-once dimensions of a session.
//   - Combination: an immutable ordered sequence of colour pegs.
//   - Feedback: the (black, white) score of a guess.
//   - Entry: one (guess, feedback) row of the board.
//   - WinStatus / Status: the tri-state result and the coarse lifecycle state.

package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the collaborators playing each role.
// The first half names the Cracker, the second the Setter.
type Mode string

const (
	ModeHvH   Mode = "HvH"
	ModeHvAI  Mode = "HvAI"
	ModeAIvH  Mode = "AIvH"
	ModeAIvAI Mode = "AIvAI"
)

// SecretHidden reports whether the engine never learns the secret, as when the
// feedback is typed in for an external board.
func (m Mode) SecretHidden() bool { return m == ModeAIvAI }

// Modes lists every supported mode in menu order.
var Modes = []Mode{ModeHvH, ModeHvAI, ModeAIvH, ModeAIvAI}

// ParseMode matches s case-insensitively against the known modes.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown game mode %q", ErrInvalidConfig, s)
}

// Config holds the dimensions of a session. It is fixed when the session is
// constructed and never mutated afterwards.
type Config struct {
	Colors      int  `json:"numberOfColors"`  // colours available, values are 1..Colors
	Dots        int  `json:"numberOfDots"`    // pegs per combination
	MaxAttempts int  `json:"maximumAttempts"` // board rows
	Mode        Mode `json:"gameMode"`
}

// Validate enforces the lower bounds on every dimension and a known mode.
func (c Config) Validate() error {
	switch {
	case c.Colors < 2:
		return fmt.Errorf("%w: number of colors must be at least 2, got %d", ErrInvalidConfig, c.Colors)
	case c.Dots < 2:
		return fmt.Errorf("%w: number of dots must be at least 2, got %d", ErrInvalidConfig, c.Dots)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: maximum attempts must be at least 1, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// Dimension renders the config as "colorsxdots", e.g. "6x4".
func (c Config) Dimension() string {
	return fmt.Sprintf("%dx%d", c.Colors, c.Dots)
}

// Combination is an ordered sequence of colour values. The zero value is the
// empty combination; use IsZero to test for it. A Combination never exposes its
// backing slice, so once built it cannot change.
type Combination struct {
	dots []int
}

// CombinationOf copies values into a Combination without range checks.
// Use NewCombination or ParseCombination for untrusted values.
func CombinationOf(values ...int) Combination {
	if len(values) == 0 {
		return Combination{}
	}
	return Combination{dots: append([]int(nil), values...)}
}

// Len returns the number of dots.
func (c Combination) Len() int { return len(c.dots) }

// At returns the colour at position i.
func (c Combination) At(i int) int { return c.dots[i] }

// IsZero reports whether c is the empty combination.
func (c Combination) IsZero() bool { return len(c.dots) == 0 }

// Dots returns a copy of the colour values.
func (c Combination) Dots() []int { return append([]int(nil), c.dots...) }

// Equal reports whether both combinations hold the same colours in order.
func (c Combination) Equal(o Combination) bool {
	if len(c.dots) != len(o.dots) {
		return false
	}
	for i := range c.dots {
		if c.dots[i] != o.dots[i] {
			return false
		}
	}
	return true
}

// String renders the comma form accepted by ParseCombination.
func (c Combination) String() string {
	parts := make([]string, len(c.dots))
	for i, d := range c.dots {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// MarshalJSON encodes the combination as an integer array.
func (c Combination) MarshalJSON() ([]byte, error) {
	if c.dots == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.dots)
}

// UnmarshalJSON decodes an integer array. Range checks happen when the value is
// handed to a Board or a Session.
func (c *Combination) UnmarshalJSON(b []byte) error {
	var dots []int
	if err := json.Unmarshal(b, &dots); err != nil {
		return fmt.Errorf("%w: combination must be an array of integers: %v", ErrTypeValidation, err)
	}
	*c = CombinationOf(dots...)
	return nil
}

// Feedback is the score of a guess: Black pegs for right colour in the right
// position, White pegs for right colour in the wrong position.
type Feedback struct {
	Black int
	White int
}

// Perfect returns the feedback of a fully correct guess.
func Perfect(dots int) Feedback { return Feedback{Black: dots} }

// IsPerfect reports whether f is (dots, 0).
func (f Feedback) IsPerfect(dots int) bool { return f == Perfect(dots) }

// String renders the comma form accepted by ParseFeedback.
func (f Feedback) String() string { return fmt.Sprintf("%d,%d", f.Black, f.White) }

// MarshalJSON encodes the feedback as a two element array.
func (f Feedback) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{f.Black, f.White})
}

// UnmarshalJSON decodes a two element integer array.
func (f *Feedback) UnmarshalJSON(b []byte) error {
	var pair []int
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("%w: feedback must be an array of integers: %v", ErrTypeValidation, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: feedback must have exactly 2 values, got %d", ErrTypeValidation, len(pair))
	}
	f.Black, f.White = pair[0], pair[1]
	return nil
}

// Entry is one row of the board.
type Entry struct {
	Guess    Combination `json:"guess"`
	Feedback Feedback    `json:"feedback"`
}

// WinStatus is the tri-state result of a session.
type WinStatus int

const (
	InProgress WinStatus = iota
	Won
	Lost
)

func (w WinStatus) String() string {
	switch w {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in_progress"
	}
}

// Terminal reports whether no further guesses are accepted.
func (w WinStatus) Terminal() bool { return w != InProgress }

// MarshalText encodes the status as its String form.
func (w WinStatus) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText accepts the String forms.
func (w *WinStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "in_progress", "":
		*w = InProgress
	case "won":
		*w = Won
	case "lost":
		*w = Lost
	default:
		return fmt.Errorf("%w: unknown win status %q", ErrTypeValidation, string(b))
	}
	return nil
}

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusWon
	StatusLost
	StatusAbandoned
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusAbandoned:
		return "abandoned"
	}
	return "unknown"
}
