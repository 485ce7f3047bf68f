// internal/players/ai.go
//
// Computer-controlled collaborators.
//   - Setter: picks a uniformly random secret and scores guesses itself.
//   - Cracker: plays a guess consistent with every row on the board.
//
// The cracker keeps an explicit candidate list while the code space is small
// enough to enumerate; above that it samples random codes and keeps the first
// one that is consistent with the history.

package players

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/robalobadob/mastermind/internal/game"
)

// maxEnumerated bounds the candidate list kept by the cracker.
const maxEnumerated = 1 << 16

// sampleTries bounds random sampling when the space is too large to enumerate.
const sampleTries = 20000

// Setter is the computer code setter.
type Setter struct {
	cfg    game.Config
	rng    *rand.Rand
	secret game.Combination
}

// NewSetter returns a setter drawing its secret from rng. A nil rng uses a
// randomly seeded source.
func NewSetter(cfg game.Config, rng *rand.Rand) *Setter {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Setter{cfg: cfg, rng: rng}
}

// NewFixedSetter returns a setter that uses secret instead of drawing one.
func NewFixedSetter(cfg game.Config, secret game.Combination) *Setter {
	return &Setter{cfg: cfg, secret: secret}
}

// SetSecretCode draws the secret unless one is already fixed.
func (s *Setter) SetSecretCode(context.Context) (game.Combination, game.Command, error) {
	if s.secret.IsZero() {
		s.secret = randomCode(s.rng, s.cfg)
	}
	return s.secret, game.CommandNone, nil
}

// GetFeedback scores guess against the secret.
func (s *Setter) GetFeedback(_ context.Context, guess game.Combination) (game.Feedback, game.Command, error) {
	if s.secret.IsZero() {
		return game.Feedback{}, game.CommandNone, game.ErrSecretNotSet
	}
	return game.Score(guess, s.secret, s.cfg.Colors), game.CommandNone, nil
}

// RestoreSecret implements game.SecretRestorer.
func (s *Setter) RestoreSecret(secret game.Combination) { s.secret = secret }

// Cracker is the computer code cracker.
type Cracker struct {
	cfg  game.Config
	rng  *rand.Rand
	log  zerolog.Logger
	out  Announcer
	pool []game.Combination // nil until first use or when the space is too large
	seen int                // history rows already applied to pool
}

// Announcer receives the cracker's end-of-game lines.
type Announcer interface {
	Announce(won bool, o game.Outcome)
}

// NewCracker returns a solver. out may be nil.
func NewCracker(cfg game.Config, rng *rand.Rand, out Announcer, log zerolog.Logger) *Cracker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Cracker{cfg: cfg, rng: rng, out: out, log: log}
}

// ObtainGuess returns a guess consistent with history.
func (c *Cracker) ObtainGuess(ctx context.Context, history []game.Entry) (game.Combination, game.Command, error) {
	if err := ctx.Err(); err != nil {
		return game.Combination{}, game.CommandNone, err
	}
	if len(history) == 0 {
		return opening(c.cfg), game.CommandNone, nil
	}
	if spaceSize(c.cfg) <= maxEnumerated {
		return c.fromPool(history), game.CommandNone, nil
	}
	return c.sample(history), game.CommandNone, nil
}

// WinMessage forwards to the announcer.
func (c *Cracker) WinMessage(o game.Outcome) {
	if c.out != nil {
		c.out.Announce(true, o)
	}
}

// LoseMessage forwards to the announcer.
func (c *Cracker) LoseMessage(o game.Outcome) {
	if c.out != nil {
		c.out.Announce(false, o)
	}
}

// fromPool filters the candidate list by every unseen row and picks one.
// The list is rebuilt when rows disappear (undo) since filtering is not
// reversible.
func (c *Cracker) fromPool(history []game.Entry) game.Combination {
	if c.pool == nil || len(history) < c.seen {
		c.pool = enumerate(c.cfg)
		c.seen = 0
	}
	for _, e := range history[c.seen:] {
		c.pool = filter(c.pool, e, c.cfg.Colors)
	}
	c.seen = len(history)

	if len(c.pool) == 0 {
		// Inconsistent feedback (typed by a human); any legal code will do.
		c.log.Warn().Int("rows", len(history)).Msg("no candidate matches the feedback so far")
		return randomCode(c.rng, c.cfg)
	}
	c.log.Debug().Int("candidates", len(c.pool)).Msg("solver candidates")
	return c.pool[c.rng.IntN(len(c.pool))]
}

// sample draws random codes until one is consistent with history.
func (c *Cracker) sample(history []game.Entry) game.Combination {
	var code game.Combination
	for i := 0; i < sampleTries; i++ {
		code = randomCode(c.rng, c.cfg)
		if consistent(code, history, c.cfg.Colors) {
			return code
		}
	}
	c.log.Debug().Int("tries", sampleTries).Msg("no consistent sample found")
	return code
}

// opening plays pairs of colours: 1,1,2,2,... for the first guess.
func opening(cfg game.Config) game.Combination {
	dots := make([]int, cfg.Dots)
	for i := range dots {
		dots[i] = min(i/2+1, cfg.Colors)
	}
	return game.CombinationOf(dots...)
}

func consistent(code game.Combination, history []game.Entry, colors int) bool {
	for _, e := range history {
		if game.Score(e.Guess, code, colors) != e.Feedback {
			return false
		}
	}
	return true
}

func filter(pool []game.Combination, e game.Entry, colors int) []game.Combination {
	out := pool[:0]
	for _, code := range pool {
		if game.Score(e.Guess, code, colors) == e.Feedback {
			out = append(out, code)
		}
	}
	return out
}

// spaceSize returns colors^dots, saturating above maxEnumerated.
func spaceSize(cfg game.Config) int {
	n := 1
	for i := 0; i < cfg.Dots; i++ {
		n *= cfg.Colors
		if n > maxEnumerated {
			return maxEnumerated + 1
		}
	}
	return n
}

// enumerate lists every code in lexicographic order.
func enumerate(cfg game.Config) []game.Combination {
	out := make([]game.Combination, 0, spaceSize(cfg))
	cur := make([]int, cfg.Dots)
	for i := range cur {
		cur[i] = 1
	}
	for {
		out = append(out, game.CombinationOf(cur...))
		i := cfg.Dots - 1
		for i >= 0 && cur[i] == cfg.Colors {
			cur[i] = 1
			i--
		}
		if i < 0 {
			return out
		}
		cur[i]++
	}
}

func randomCode(rng *rand.Rand, cfg game.Config) game.Combination {
	dots := make([]int, cfg.Dots)
	for i := range dots {
		dots[i] = rng.IntN(cfg.Colors) + 1
	}
	return game.CombinationOf(dots...)
}
