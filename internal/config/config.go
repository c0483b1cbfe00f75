// Package config reads server configuration from the environment.
package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// Env controls log format and verbosity: "dev", "staging", or "prod".
	Env  string `env:"WELLFORM_ENV" env-default:"dev"`
	Addr string `env:"WELLFORM_ADDR" env-default:":8080"`

	// SheetsURL is the Apps Script webhook that appends submissions to the
	// spreadsheet. The server refuses to start without it.
	SheetsURL string `env:"WELLFORM_SHEETS_URL" env-required:"true"`

	// StaticDir, when set, serves the questionnaire form from disk at /.
	StaticDir string `env:"WELLFORM_STATIC_DIR"`

	Commit    string `env:"WELLFORM_COMMIT"`
	BuildTime string `env:"WELLFORM_BUILD_TIME"`
}

// Load reads the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for startup paths: if it returns, the config is valid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
