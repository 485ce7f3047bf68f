package game

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name          string
		guess, secret []int
		colors        int
		want          Feedback
	}{
		{"all match", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 6, Feedback{4, 0}},
		{"rotation", []int{1, 2, 3}, []int{3, 1, 2}, 4, Feedback{0, 3}},
		{"duplicate colors not double counted", []int{1, 1, 2}, []int{1, 2, 2}, 3, Feedback{2, 0}},
		{"no match", []int{1, 2, 3}, []int{4, 5, 6}, 6, Feedback{0, 0}},
		{"repeats counted as multiset", []int{2, 2, 1, 1}, []int{1, 1, 2, 2}, 2, Feedback{0, 4}},
		{"guess repeats more than secret", []int{1, 1, 1, 1}, []int{1, 2, 3, 4}, 6, Feedback{1, 0}},
		{"mixed", []int{1, 2, 3, 4}, []int{1, 3, 5, 2}, 6, Feedback{1, 2}},
		{"highest color", []int{6, 6}, []int{6, 1}, 6, Feedback{1, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(CombinationOf(tc.guess...), CombinationOf(tc.secret...), tc.colors)
			if got != tc.want {
				t.Fatalf("Score(%v, %v) = %s, want %s", tc.guess, tc.secret, got, tc.want)
			}
		})
	}
}

// Every pair over a 3-colour, 3-dot space stays within the peg bound, and a
// full black score only happens for identical combinations.
func TestScoreBoundsExhaustive(t *testing.T) {
	const colors, dots = 3, 3
	all := enumerate(colors, dots)
	for _, g := range all {
		for _, s := range all {
			fb := Score(g, s, colors)
			if fb.Black+fb.White > dots {
				t.Fatalf("Score(%s, %s) = %s exceeds %d pegs", g, s, fb, dots)
			}
			if fb.Black == dots && (fb.White != 0 || !g.Equal(s)) {
				t.Fatalf("Score(%s, %s) = %s: perfect score for different codes", g, s, fb)
			}
			if g.Equal(s) && fb != Perfect(dots) {
				t.Fatalf("Score(%s, %s) = %s, want perfect", g, s, fb)
			}
		}
	}
}

func TestScoreLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	Score(CombinationOf(1, 2), CombinationOf(1, 2, 3), 3)
}

func enumerate(colors, dots int) []Combination {
	var out []Combination
	cur := make([]int, dots)
	var rec func(i int)
	rec = func(i int) {
		if i == dots {
			out = append(out, CombinationOf(cur...))
			return
		}
		for c := 1; c <= colors; c++ {
			cur[i] = c
			rec(i + 1)
		}
	}
	rec(0)
	return out
}
