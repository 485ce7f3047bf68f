package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/players"
)

func newDailyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Play today's challenge",
		Long: `Play the daily challenge: every profile gets the same secret code on the
same (UTC) day. Each profile can play it once; quitting or discarding counts
as a loss. The board size comes from the defaults.* configuration keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			if a.player == "" {
				return errors.New("the daily challenge needs a profile (--profile)")
			}
			cfg, err := a.cfg.Defaults.Game()
			if err != nil {
				return err
			}
			cfg.Mode = game.ModeHvAI

			now := a.now()
			date := daily.DateKey(now)
			played, err := a.daily.AlreadyPlayed(ctx, a.player, date)
			if err != nil {
				return err
			}
			if played {
				return fmt.Errorf("%w: %s on %s", daily.ErrAlreadyPlayed, a.player, date)
			}

			setter := players.NewFixedSetter(cfg, daily.Secret(now, a.cfg.DailySalt, cfg))
			cracker := console.NewHumanCracker(cfg, a.term, a.render,
				console.WithCommandHelp("q", "to give up (counts as a loss)"),
				console.WithCommandHelp("d", "to give up (counts as a loss)"))
			sess, err := game.NewSession(cfg, setter, cracker, a.sessionLogger("daily-"+date))
			if err != nil {
				return err
			}
			a.printf("Daily challenge %s: %s, %d attempts\n", date, cfg.Dimension(), cfg.MaxAttempts)
			a.printf("Colours: %s\n", a.render.Legend(cfg.Colors))

			start := a.now()
			stop, err := sess.Start(ctx)
			if err != nil && !errors.Is(err, console.ErrInputClosed) {
				return err
			}
			if stop != game.CommandNone {
				a.printf("Daily challenge given up; it counts as a loss.\n")
			}
			won := sess.WinStatus() == game.Won
			res := daily.Result{
				Profile:   a.player,
				Date:      date,
				Dimension: cfg.Dimension(),
				Attempts:  sess.Len(),
				Won:       won,
				ElapsedMs: a.now().Sub(start).Milliseconds(),
			}
			if ierr := a.daily.InsertResult(ctx, res); ierr != nil {
				return ierr
			}
			if rerr := a.profiles.RecordResult(ctx, a.player, won); rerr != nil {
				return rerr
			}
			log.Debug().Str("profile", a.player).Bool("won", won).Int("attempts", res.Attempts).Msg("daily result")
			return err
		},
	}
	cmd.AddCommand(newDailyLeaderboardCmd(a))
	return cmd
}

func newDailyLeaderboardCmd(a *app) *cobra.Command {
	var (
		date  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show a day's daily challenge results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = daily.DateKey(a.now())
			}
			rows, err := a.daily.Leaderboard(cmd.Context(), date, limit)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				a.printf("No results for %s.\n", date)
				return nil
			}
			a.printf("Daily challenge %s\n%s\n", date, a.render.Leaderboard(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today, UTC)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of rows")
	return cmd
}
