package console

import (
	"fmt"
	"strings"

	"github.com/robalobadob/mastermind/internal/game"
)

func codeHelp(cfg game.Config, labels map[string]string, commands ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Enter a %d-digit number with digits ranging from 1 to %d.\n", cfg.Dots, cfg.Colors)
	b.WriteString("For example, a 6-digit 4-color code can be 123412, or 1,2,3,4,1,2\n")
	if cfg.Colors > 9 {
		b.WriteString("Colors above 9 need the comma form, e.g. 10,2,11,1\n")
	}
	writeCommands(&b, labels, commands)
	return b.String()
}

func feedbackHelp(cfg game.Config, commands ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Enter a 2 digit number (optionally separated by comma) between 0 and %d.\n", cfg.Dots)
	b.WriteString("The first digit is the number of black pegs, the second the number of white pegs.\n")
	b.WriteString("For example: 01 or 0,1 -> 0 black pegs, 1 white peg.\n")
	writeCommands(&b, commandHelp, commands)
	return b.String()
}

var commandHelp = map[string]string{
	"?": "for help",
	"d": "to discard the game",
	"q": "to save and quit",
	"u": "to undo",
	"r": "to redo",
}

func writeCommands(b *strings.Builder, labels map[string]string, commands []string) {
	b.WriteString("Or, you can enter a command:\n")
	for _, c := range commands {
		label, ok := labels[c]
		if !ok {
			label = commandHelp[c]
		}
		fmt.Fprintf(b, "(%s) %s\n", c, label)
	}
}
