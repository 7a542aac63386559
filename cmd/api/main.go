package main

import (
	"os"
	"time"

	"fadem-backend/internal/app"
	"fadem-backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Chargement de la configuration échoué")
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	fiberApp, _, err := app.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Initialisation de l'application échouée")
	}

	log.Info().Str("port", cfg.Port).Str("stockage", cfg.StorageDriver).Msg("FADEM API démarrée")
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Arrêt du serveur")
	}
}
