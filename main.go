package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quintle/internal/config"
	"quintle/internal/daily"
	"quintle/internal/httpserver"
	"quintle/internal/store"
	"quintle/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := loadDictionary(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	selector := daily.NewSelector(dict.Answers(), cfg.DailySalt)
	srv := httpserver.New(cfg, dict, selector, store.NewSessionRegistry(), db)

	answers, allowed := dict.Stats()
	log.Info().
		Str("port", cfg.Port).
		Int("answers", answers).
		Int("allowed", allowed).
		Msg("starting quintle")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadDictionary prefers file overrides from config, falling back to
// the embedded lists.
func loadDictionary(cfg *config.Config) (*words.Dictionary, error) {
	if cfg.AnswersFile != "" {
		return words.Load(cfg.AnswersFile, cfg.AllowedFile)
	}
	return words.Default()
}
