package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"gloss/internal/adapters/cli"
	"gloss/internal/config"
	"gloss/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if err := cli.Execute(cfg); err != nil {
		os.Exit(1)
	}
}
