// internal/game/engine.go
//
// Peg scoring for Mastermind.
// Responsibilities:
//   - Count black pegs (right colour, right position).
//   - Count white pegs (right colour, wrong position) without double counting
//     repeated colours in either the guess or the secret.
//
// Scoring runs in O(dots + colors) and allocates two small counters.

package game

import "fmt"

// Score compares guess against secret and returns the black/white peg counts.
//
// Pass 1:
//   - Exact matches count as black.
//   - Every non-matching position bumps the guess and secret colour counters.
//
// Pass 2:
//   - White is the sum over colours of min(guessCounts[c], secretCounts[c]).
//
// Both combinations must have the same length and only hold values in
// [1, colors]; anything else is a caller bug and panics.
func Score(guess, secret Combination, colors int) Feedback {
	if guess.Len() != secret.Len() {
		panic(fmt.Sprintf("game: score length mismatch: guess has %d dots, secret has %d", guess.Len(), secret.Len()))
	}

	guessCounts := make([]int, colors)
	secretCounts := make([]int, colors)

	var fb Feedback
	for i := 0; i < guess.Len(); i++ {
		g, s := guess.At(i), secret.At(i)
		if g == s {
			fb.Black++
			continue
		}
		guessCounts[g-1]++
		secretCounts[s-1]++
	}

	for c := 0; c < colors; c++ {
		fb.White += min(guessCounts[c], secretCounts[c])
	}
	return fb
}
