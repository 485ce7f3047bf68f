package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/cmd"
)

func main() {
	_ = godotenv.Load()

	// Logs go to stderr so they never mix with the game on stdout.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
