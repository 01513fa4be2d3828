// Package config loads the runtime configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port             string
	APIURL           string // base URL the API is reachable at, used for response links
	DatabaseFile     string
	GinMode          string
	LogFormat        string        // "human" for console output, anything else logs JSON
	CORSAllowOrigins string        // space separated list of allowed origins, empty disables CORS
	EnablePprof      bool
	ResetInterval    time.Duration // how often the monthly reset due-check runs
	DisableScheduler bool          // skip the background reset scheduler, e.g. in tests
}

// Load reads the configuration from environment variables and a .env file
// if one is present. Environment variables always win.
func Load() (Config, error) {
	// The .env file is optional
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("API_URL", "http://localhost:8080")
	viper.SetDefault("DB_FILE", "data/pocketplan.db")
	viper.SetDefault("GIN_MODE", "release")
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "")
	viper.SetDefault("ENABLE_PPROF", false)
	viper.SetDefault("RESET_INTERVAL", "1h")
	viper.SetDefault("DISABLE_SCHEDULER", false)

	viper.AutomaticEnv()

	interval, err := time.ParseDuration(viper.GetString("RESET_INTERVAL"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:             viper.GetString("PORT"),
		APIURL:           viper.GetString("API_URL"),
		DatabaseFile:     viper.GetString("DB_FILE"),
		GinMode:          viper.GetString("GIN_MODE"),
		LogFormat:        viper.GetString("LOG_FORMAT"),
		CORSAllowOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		EnablePprof:      viper.GetBool("ENABLE_PPROF"),
		ResetInterval:    interval,
		DisableScheduler: viper.GetBool("DISABLE_SCHEDULER"),
	}, nil
}
