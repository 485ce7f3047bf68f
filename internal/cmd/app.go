// internal/cmd/app.go
//
// Process-wide wiring for one CLI invocation.
// Responsibilities:
//   - Loading configuration and applying the log level.
//   - Opening and migrating the database, then building the stores.
//   - Resolving (and authenticating) the active profile.
//   - Choosing the collaborators for a game mode.

package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/palette"
	"github.com/robalobadob/mastermind/internal/players"
	"github.com/robalobadob/mastermind/internal/profile"
	"github.com/robalobadob/mastermind/internal/store"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config

	db       *sql.DB
	sessions store.Store
	profiles *profile.Service
	daily    *daily.Store

	term   *console.Terminal
	out    io.Writer
	render *console.Renderer

	rng *rand.Rand // nil draws a fresh seed per game
	now func() time.Time

	// player is the authenticated profile name, empty for guests.
	player string
}

func newApp() *app {
	return &app{v: viper.New(), now: time.Now}
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	db, err := store.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	a.db = db
	if err := store.Migrate(db, assets.Migrations()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if cfg.DB == store.MemoryDSN {
		a.sessions = store.NewMemoryStore()
	} else {
		a.sessions = store.NewSQLiteStore(db)
	}
	a.profiles = profile.NewService(db)
	a.daily = daily.NewStore(db)

	pal, err := palette.Load(cfg.PaletteFile)
	if err != nil {
		return err
	}
	a.out = cmd.OutOrStdout()
	a.term = console.NewTerminal(cmd.InOrStdin(), a.out)
	a.render = console.NewRenderer(pal, cfg.NoColor || color.NoColor)

	log.Debug().Str("db", cfg.DB).Str("profile", cfg.Profile).Msg("ready")
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// login resolves the configured profile, asking for its password when it has
// one. Guests need no login.
func (a *app) login(ctx context.Context) error {
	name := a.cfg.Profile
	if name == "" {
		a.player = ""
		return nil
	}
	p, err := a.profiles.Get(ctx, name)
	if errors.Is(err, profile.ErrNotFound) {
		return fmt.Errorf("profile %q does not exist; create it with `mastermind profile create %s`", name, name)
	}
	if err != nil {
		return err
	}
	if p.HasPassword() {
		pw, err := a.term.Password(ctx, fmt.Sprintf("Password for %s: ", p.Name))
		if err != nil {
			return err
		}
		if p, err = a.profiles.Authenticate(ctx, name, pw); err != nil {
			return err
		}
	}
	a.player = p.Name
	return nil
}

// requireOwner rejects records saved under another profile.
func (a *app) requireOwner(rec store.Record) error {
	if rec.Profile != a.player {
		return fmt.Errorf("%w: %s", store.ErrNotFound, rec.ID)
	}
	return nil
}

func (a *app) random() *rand.Rand {
	if a.rng != nil {
		return a.rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// collaborators picks the setter and cracker for cfg.Mode.
func (a *app) collaborators(cfg game.Config) (game.CodeSetter, game.CodeCracker) {
	rng := a.random()
	ai := func() game.CodeCracker {
		return players.NewCracker(cfg, rng, console.Messages{Out: a.out}, log.Logger)
	}
	human := func() game.CodeCracker {
		return console.NewHumanCracker(cfg, a.term, a.render)
	}
	switch cfg.Mode {
	case game.ModeHvH:
		return console.NewHumanSetter(cfg, a.term), human()
	case game.ModeAIvH:
		return console.NewHumanSetter(cfg, a.term), ai()
	case game.ModeAIvAI:
		return console.NewExternalSetter(cfg, a.term), ai()
	default:
		return players.NewSetter(cfg, rng), human()
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
