package players

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"

	"github.com/robalobadob/mastermind/internal/game"
)

type recorder struct {
	won      []bool
	outcomes []game.Outcome
}

func (r *recorder) Announce(won bool, o game.Outcome) {
	r.won = append(r.won, won)
	r.outcomes = append(r.outcomes, o)
}

// checkingCracker asserts that every guess is consistent with the board so far.
type checkingCracker struct {
	*Cracker
	t *testing.T
}

func (c checkingCracker) ObtainGuess(ctx context.Context, history []game.Entry) (game.Combination, game.Command, error) {
	g, cmd, err := c.Cracker.ObtainGuess(ctx, history)
	if err == nil && !consistent(g, history, c.cfg.Colors) {
		c.t.Errorf("guess %s contradicts history %v", g, history)
	}
	return g, cmd, err
}

func TestComputerPlaysItself(t *testing.T) {
	cfgs := []game.Config{
		{Colors: 3, Dots: 3, MaxAttempts: 27, Mode: game.ModeAIvH},
		{Colors: 6, Dots: 4, MaxAttempts: 1296, Mode: game.ModeAIvH},
	}
	for _, cfg := range cfgs {
		for seed := uint64(1); seed <= 20; seed++ {
			rng := rand.New(rand.NewPCG(seed, seed*7))
			out := &recorder{}
			setter := NewSetter(cfg, rng)
			cracker := checkingCracker{NewCracker(cfg, rng, out, zerolog.Nop()), t}

			s, err := game.NewSession(cfg, setter, cracker)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := s.Start(context.Background()); err != nil {
				t.Fatalf("%s seed %d: %v", cfg.Dimension(), seed, err)
			}
			if s.WinStatus() != game.Won {
				t.Fatalf("%s seed %d: status %s after %d guesses", cfg.Dimension(), seed, s.WinStatus(), s.Len())
			}
			if len(out.won) != 1 || !out.won[0] || out.outcomes[0].Attempts != s.Len() {
				t.Fatalf("announcements = %v %v", out.won, out.outcomes)
			}
		}
	}
}

func TestSetter(t *testing.T) {
	cfg := game.Config{Colors: 8, Dots: 5, MaxAttempts: 12, Mode: game.ModeHvAI}
	s := NewSetter(cfg, rand.New(rand.NewPCG(3, 4)))

	if _, _, err := s.GetFeedback(context.Background(), game.CombinationOf(1, 1, 1, 1, 1)); !errors.Is(err, game.ErrSecretNotSet) {
		t.Fatalf("feedback before secret err = %v", err)
	}
	for i := 0; i < 50; i++ {
		s.secret = game.Combination{}
		secret, cmd, err := s.SetSecretCode(context.Background())
		if err != nil || cmd != game.CommandNone {
			t.Fatalf("SetSecretCode = %v, %v", cmd, err)
		}
		if _, err := game.NewCombination(secret.Dots(), cfg.Dots, cfg.Colors); err != nil {
			t.Fatalf("secret %s: %v", secret, err)
		}
	}

	fixed := NewFixedSetter(cfg, game.CombinationOf(1, 2, 3, 4, 5))
	secret, _, _ := fixed.SetSecretCode(context.Background())
	if !secret.Equal(game.CombinationOf(1, 2, 3, 4, 5)) {
		t.Fatalf("fixed secret = %s", secret)
	}
	fb, _, err := fixed.GetFeedback(context.Background(), game.CombinationOf(5, 4, 3, 2, 1))
	if err != nil || fb != (game.Feedback{Black: 1, White: 4}) {
		t.Fatalf("feedback = %v, %v", fb, err)
	}

	fixed.RestoreSecret(game.CombinationOf(8, 8, 8, 8, 8))
	fb, _, _ = fixed.GetFeedback(context.Background(), game.CombinationOf(8, 1, 1, 1, 8))
	if fb != (game.Feedback{Black: 2}) {
		t.Fatalf("feedback after restore = %v", fb)
	}
}

func TestOpening(t *testing.T) {
	tests := []struct {
		cfg  game.Config
		want string
	}{
		{game.Config{Colors: 6, Dots: 4}, "1,1,2,2"},
		{game.Config{Colors: 8, Dots: 5}, "1,1,2,2,3"},
		{game.Config{Colors: 2, Dots: 6}, "1,1,2,2,2,2"},
	}
	for _, tt := range tests {
		if got := opening(tt.cfg).String(); got != tt.want {
			t.Errorf("opening(%s) = %s, want %s", tt.cfg.Dimension(), got, tt.want)
		}
	}
}

func TestCrackerRebuildsAfterUndo(t *testing.T) {
	cfg := game.Config{Colors: 4, Dots: 3, MaxAttempts: 10, Mode: game.ModeAIvH}
	c := NewCracker(cfg, rand.New(rand.NewPCG(1, 2)), nil, zerolog.Nop())
	ctx := context.Background()

	long := []game.Entry{
		{Guess: game.CombinationOf(1, 1, 2), Feedback: game.Feedback{}},
		{Guess: game.CombinationOf(3, 3, 3), Feedback: game.Feedback{}},
	}
	g, _, _ := c.ObtainGuess(ctx, long)
	for i := 0; i < g.Len(); i++ {
		if g.At(i) != 4 {
			t.Fatalf("guess %s, only 4,4,4 is left", g)
		}
	}

	// After undoing the second row, codes with 3s are candidates again.
	short := []game.Entry{long[0], {Guess: game.CombinationOf(4, 4, 4), Feedback: game.Feedback{}}}
	g, _, _ = c.ObtainGuess(ctx, short[:1])
	if !consistent(g, short[:1], cfg.Colors) {
		t.Fatalf("guess %s inconsistent after undo", g)
	}
	g, _, _ = c.ObtainGuess(ctx, short)
	for i := 0; i < g.Len(); i++ {
		if g.At(i) != 3 {
			t.Fatalf("guess %s, only 3,3,3 is left", g)
		}
	}
}

func TestCrackerSamplesLargeSpaces(t *testing.T) {
	cfg := game.Config{Colors: 10, Dots: 6, MaxAttempts: 20, Mode: game.ModeAIvH}
	c := NewCracker(cfg, rand.New(rand.NewPCG(9, 9)), nil, zerolog.Nop())
	history := []game.Entry{{Guess: game.CombinationOf(1, 1, 2, 2, 3, 3), Feedback: game.Feedback{}}}
	g, _, err := c.ObtainGuess(context.Background(), history)
	if err != nil {
		t.Fatal(err)
	}
	if !consistent(g, history, cfg.Colors) {
		t.Fatalf("sample %s contradicts history", g)
	}
	if c.pool != nil {
		t.Fatal("large space should not be enumerated")
	}
}
