package console

import (
	"fmt"
	"io"

	"github.com/robalobadob/mastermind/internal/game"
)

// Messages prints the end-of-game lines. It satisfies players.Announcer so
// the computer cracker reports its result the same way a human does.
type Messages struct {
	Out io.Writer
}

func (m Messages) Announce(won bool, o game.Outcome) {
	if won {
		fmt.Fprintf(m.Out, "Congratulations! You won in %d steps!\n", o.Attempts)
		return
	}
	secret := "unknown"
	if !o.Secret.IsZero() {
		secret = o.Secret.String()
	}
	fmt.Fprintf(m.Out, "Sorry, you lost. The secret code was %s.\n", secret)
}
