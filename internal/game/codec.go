// internal/game/codec.go
//
// Parsing and validation of raw combination and feedback input.
// Two textual forms are accepted for both:
//   - comma separated: "1,2,3,4" (whitespace around values is ignored)
//   - digit string:    "1234", exactly one character per value
//
// A digit string can only express single-digit values, so colours above 9
// must be entered in the comma form.

package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCombination converts raw input into a Combination of exactly dots
// values, each in [1, colors].
func ParseCombination(raw string, dots, colors int) (Combination, error) {
	values, err := convert(raw, "combination")
	if err != nil {
		return Combination{}, err
	}
	return NewCombination(values, dots, colors)
}

// NewCombination validates values and builds a Combination from them.
func NewCombination(values []int, dots, colors int) (Combination, error) {
	if err := validateDots(values, dots, colors); err != nil {
		return Combination{}, err
	}
	return CombinationOf(values...), nil
}

// ParseFeedback converts raw input into a Feedback valid for dots pegs.
func ParseFeedback(raw string, dots int) (Feedback, error) {
	values, err := convert(raw, "feedback")
	if err != nil {
		return Feedback{}, err
	}
	if len(values) != 2 {
		return Feedback{}, fmt.Errorf("%w: feedback must have exactly 2 values, got %d", ErrRange, len(values))
	}
	return NewFeedback(values[0], values[1], dots)
}

// NewFeedback validates a (black, white) pair against dots.
func NewFeedback(black, white, dots int) (Feedback, error) {
	f := Feedback{Black: black, White: white}
	if err := validateFeedback(f, dots); err != nil {
		return Feedback{}, err
	}
	return f, nil
}

// convert splits raw into integers using the comma or the digit form.
func convert(raw, what string) ([]int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty %s", ErrInputConversion, what)
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid %s format %q", ErrInputConversion, what, raw)
			}
			out[i] = n
		}
		return out, nil
	}

	out := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: invalid %s format %q", ErrInputConversion, what, raw)
		}
		out = append(out, int(r-'0'))
	}
	return out, nil
}

func validateDots(values []int, dots, colors int) error {
	if len(values) != dots {
		return fmt.Errorf("%w: combination must have %d dots, got %d", ErrRange, dots, len(values))
	}
	for _, v := range values {
		if v < 1 || v > colors {
			return fmt.Errorf("%w: dots must be between 1 and %d, got %d", ErrRange, colors, v)
		}
	}
	return nil
}

func validateCombination(c Combination, dots, colors int) error {
	return validateDots(c.dots, dots, colors)
}

func validateFeedback(f Feedback, dots int) error {
	if f.Black < 0 || f.Black > dots || f.White < 0 || f.White > dots {
		return fmt.Errorf("%w: feedback values must be between 0 and %d, got %s", ErrRange, dots, f)
	}
	if f.Black+f.White > dots {
		return fmt.Errorf("%w: feedback values sum cannot exceed %d, got %s", ErrRange, dots, f)
	}
	return nil
}
