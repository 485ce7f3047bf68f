// internal/cmd/play.go
//
// The caller of a game session: runs it until it stops and applies the
// persistence policy to the returned command.
//   - q: the session is saved and can be resumed later.
//   - d: the saved record (if any) is deleted.
//   - finished: the record is saved as won/lost and the profile's stats are
//     updated in the same transaction.

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/store"
)

func (a *app) sessionLogger(id string) game.Option {
	return game.WithLogger(log.Logger.With().Str("session", id).Logger())
}

// play starts (or resumes) sess and persists the outcome under rec.
func (a *app) play(ctx context.Context, rec store.Record, sess *game.Session, resume bool) error {
	var (
		cmd game.Command
		err error
	)
	if resume {
		cmd, err = sess.Resume(ctx)
	} else {
		cmd, err = sess.Start(ctx)
	}
	rec.Snapshot = sess.Snapshot()

	if err != nil {
		// Keep what was played when the input runs out mid-game.
		if errors.Is(err, console.ErrInputClosed) && rec.Snapshot.Resumable() {
			if serr := a.sessions.Save(ctx, rec); serr != nil {
				log.Error().Err(serr).Str("session", rec.ID).Msg("save after input closed")
			} else {
				a.printf("Game saved as %s.\n", rec.ID)
			}
		}
		return err
	}

	switch cmd {
	case game.CommandQuit:
		if err := a.sessions.Save(ctx, rec); err != nil {
			return err
		}
		a.printf("Game saved. Resume with: mastermind resume %s\n", rec.ID)
		return nil
	case game.CommandDiscard:
		if err := a.sessions.Delete(ctx, rec.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		a.printf("Game discarded.\n")
		return nil
	}

	// The computer cracker plays silently; show its board at the end.
	if mode := sess.Config().Mode; mode == game.ModeAIvH || mode == game.ModeAIvAI {
		a.printf("%s\n", a.render.Board(sess.History(), sess.Config()))
	}
	return a.finish(ctx, rec)
}

// finish saves a won or lost session and records it against the profile,
// in one transaction when the session store supports it.
func (a *app) finish(ctx context.Context, rec store.Record) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if ts, ok := a.sessions.(store.TxSaver); ok {
		err = ts.SaveTx(ctx, tx, rec)
	} else {
		err = a.sessions.Save(ctx, rec)
	}
	if err != nil {
		return err
	}
	if rec.Profile != "" {
		if err := a.profiles.RecordResultTx(ctx, tx, rec.Profile, rec.Snapshot.WinStatus == game.Won); err != nil {
			return fmt.Errorf("record result: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("session", rec.ID).Stringer("status", rec.Snapshot.WinStatus).Msg("session finished")
	return nil
}
