package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime settings for the ordering core. Values come from
// the environment; main loads a .env file first when one exists.
type Config struct {
	Addr     string `envconfig:"ORDERCORE_ADDR" default:":8080"`
	DBPath   string `envconfig:"ORDERCORE_DB_PATH" default:"ordercore.db"`
	LogLevel string `envconfig:"ORDERCORE_LOG_LEVEL" default:"info"`

	// AuthTokens maps bearer tokens to actors, e.g.
	// "tok-alice=1:customer,tok-ops=9:operator". Development stand-in for
	// the external identity collaborator.
	AuthTokens string `envconfig:"ORDERCORE_AUTH_TOKENS" default:""`

	// Timezone is the calendar-day convention used by analytics bucketing.
	Timezone string `envconfig:"ORDERCORE_TIMEZONE" default:"UTC"`

	// SeedMenu loads a small development menu on startup when the catalog
	// is empty.
	SeedMenu bool `envconfig:"ORDERCORE_SEED_MENU" default:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
