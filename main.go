package main

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/config"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/reconcile"
	"github.com/pocketplan/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		log.Fatal().Str("API_URL", cfg.APIURL).Msg(err.Error())
	}

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.DatabaseFile), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(cfg.DatabaseFile)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := router.RegisterPrometheusMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := reconcile.RegisterPrometheusMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config(cfg, apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(cfg, r.Group(""))

	// The monthly reset runs in the background for all users. The interval
	// only controls how often the due-check happens, processing itself is
	// idempotent within a month.
	if !cfg.DisableScheduler {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		scheduler := reconcile.NewScheduler(models.DB, cfg.ResetInterval)
		go scheduler.Run(ctx)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
