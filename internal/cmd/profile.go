package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage player profiles",
		Long: `Profiles keep saved games apart and track games played, wins and the
current win streak. A profile may have a password; it is asked for whenever
the profile is used.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				pw, err := a.term.Password(ctx, "Password (leave blank for none): ")
				if err != nil {
					return err
				}
				if pw != "" {
					confirm, err := a.term.Password(ctx, "Confirm the password: ")
					if err != nil {
						return err
					}
					if confirm != pw {
						return errors.New("passwords do not match")
					}
				}
				p, err := a.profiles.Create(ctx, args[0], pw)
				if err != nil {
					return err
				}
				a.printf("Profile %s created.\n", p.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show [name]",
			Short: "Show a profile's statistics (default: --profile)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := a.cfg.Profile
				if len(args) == 1 {
					name = args[0]
				}
				if name == "" {
					return errors.New("no profile given")
				}
				p, err := a.profiles.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				a.printf("Profile %s, created %s\n", p.Name, p.CreatedAt.Local().Format("2006-01-02"))
				a.printf("Games: %d  Wins: %d  Streak: %d\n", p.GamesPlayed, p.Wins, p.Streak)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ps, err := a.profiles.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(ps) == 0 {
					a.printf("No profiles.\n")
					return nil
				}
				a.printf("%s\n", a.render.Profiles(ps))
				return nil
			},
		},
	)
	return cmd
}
