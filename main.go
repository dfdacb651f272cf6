package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"lmt-crm/app"
	"lmt-crm/config"
	"lmt-crm/db"
	"lmt-crm/logger"
)

func main() {
	// Load .env in development; production sets variables directly.
	if os.Getenv("LMT_APP_ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Warn().Msg(".env file not found, using system environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.IsProd())

	ctx := context.Background()
	if err := app.Initialize(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer db.CloseDB()

	// Listen on all interfaces for container deployments.
	addr := "0.0.0.0:" + cfg.App.Port
	log.Info().Str("addr", addr).Str("env", cfg.App.Env).Msg("server starting")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
