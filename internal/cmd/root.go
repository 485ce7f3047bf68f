package cmd

import (
	"github.com/spf13/cobra"
)

// Execute runs the root command
func Execute() error {
	root, a := newRootCmd()
	defer a.close()
	return root.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	a := newApp()
	root := &cobra.Command{
		Use:   "mastermind",
		Short: "Play Mastermind in the terminal",
		Long: `Mastermind pits a code setter against a code cracker. Either side can be
played by a person or by the computer, and unfinished games are saved so they
can be resumed later.

Modes:
  HvH    human cracker, human setter (secret typed hidden)
  HvAI   human cracker, computer setter
  AIvH   computer cracker, human setter
  AIvAI  computer cracker, feedback typed in from an external board`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./mastermind.yaml or $HOME/.config/mastermind/mastermind.yaml)")
	pf.String("db", "", `SQLite database path (":memory:" for a throwaway database)`)
	pf.StringP("profile", "p", "", "player profile; empty plays as guest")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.Bool("no-color", false, "disable coloured output")
	_ = a.v.BindPFlag("db", pf.Lookup("db"))
	_ = a.v.BindPFlag("profile", pf.Lookup("profile"))
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("no_color", pf.Lookup("no-color"))

	root.AddCommand(
		newNewCmd(a),
		newResumeCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newDailyCmd(a),
		newProfileCmd(a),
	)
	return root, a
}
