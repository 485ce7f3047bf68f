package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/store"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		mode                   string
		colors, dots, attempts int
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Start a new game. Parameters not given as flags come from the
defaults.* configuration keys.

During the game enter a guess as digits (1234) or comma separated values
(1,2,3,4), or a command: ? help, q save and quit, d discard, u undo, r redo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			cfg, err := a.cfg.Defaults.Game()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("mode") {
				if cfg.Mode, err = game.ParseMode(mode); err != nil {
					return err
				}
			}
			if flags.Changed("colors") {
				cfg.Colors = colors
			}
			if flags.Changed("dots") {
				cfg.Dots = dots
			}
			if flags.Changed("attempts") {
				cfg.MaxAttempts = attempts
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			rec := store.Record{ID: store.NewID(), Profile: a.player}
			setter, cracker := a.collaborators(cfg)
			sess, err := game.NewSession(cfg, setter, cracker, a.sessionLogger(rec.ID))
			if err != nil {
				return err
			}
			a.printf("Game %s: %s, %s, %d attempts\n", rec.ID, cfg.Mode, cfg.Dimension(), cfg.MaxAttempts)
			a.printf("Colours: %s\n", a.render.Legend(cfg.Colors))
			return a.play(ctx, rec, sess, false)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "game mode: HvH, HvAI, AIvH or AIvAI")
	cmd.Flags().IntVar(&colors, "colors", 0, "number of colours")
	cmd.Flags().IntVar(&dots, "dots", 0, "number of dots per code")
	cmd.Flags().IntVar(&attempts, "attempts", 0, "maximum number of attempts")
	return cmd
}

func newResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			rec, err := a.sessions.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.requireOwner(rec); err != nil {
				return err
			}
			if !rec.Snapshot.Resumable() {
				return fmt.Errorf("game %s is %s and cannot be resumed", rec.ID, rec.Snapshot.WinStatus)
			}

			cfg := rec.Snapshot.Config
			setter, cracker := a.collaborators(cfg)
			if h, ok := cracker.(*console.HumanCracker); ok {
				h.SetRedoable(len(rec.Snapshot.Redo))
			}
			sess, err := game.Restore(rec.Snapshot, setter, cracker, a.sessionLogger(rec.ID))
			if err != nil {
				return err
			}
			a.printf("Game %s: %s, %s, %d/%d attempts used\n", rec.ID, cfg.Mode, cfg.Dimension(), sess.Len(), cfg.MaxAttempts)
			a.printf("Colours: %s\n", a.render.Legend(cfg.Colors))
			return a.play(ctx, rec, sess, true)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var opts store.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			opts.Profile = a.player
			recs, err := a.sessions.List(ctx, opts)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				a.printf("No saved games.\n")
				return nil
			}
			a.printf("%s\n", a.render.Games(recs))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.ResumableOnly, "resumable", "r", false, "only games that can be resumed")
	cmd.Flags().BoolVarP(&opts.AllProfiles, "all", "a", false, "games of every profile")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "maximum number of games (0 for all)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the board of a saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			rec, err := a.sessions.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.requireOwner(rec); err != nil {
				return err
			}
			sn := rec.Snapshot
			a.printf("Game %s: %s, %s, %s\n", rec.ID, sn.Config.Mode, sn.Config.Dimension(), sn.WinStatus)
			a.printf("%s\n", a.render.Board(sn.Entries, sn.Config))
			// The secret stays hidden while the game can still be played.
			if sn.WinStatus.Terminal() && sn.Secret != nil {
				a.printf("Secret: %s\n", a.render.Combination(*sn.Secret))
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			rec, err := a.sessions.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.requireOwner(rec); err != nil {
				return err
			}
			if err := a.sessions.Delete(ctx, rec.ID); err != nil {
				return err
			}
			a.printf("Deleted %s\n", rec.ID)
			return nil
		},
	}
}
