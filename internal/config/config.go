package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORE.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port        string
	Store       string
	DBPath      string
	DatabaseURL string
	SeedPath    string
	AMQPURL     string
	ORSAPIKey   string
	ORSCountry  string
	LogLevel    string
}

// LoadDotEnv loads a .env file if present. It reports whether one was found.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		Store:       strings.ToLower(Get("STORE", StoreMemory)),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    Get("SEED_PATH", "data/seeds/catalog.yaml"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		ORSAPIKey:   os.Getenv("ORS_API_KEY"),
		ORSCountry:  Get("ORS_COUNTRY", "BD"),
		LogLevel:    Get("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required when STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("config: unknown STORE %q (want memory, sqlite or postgres)", c.Store)
	}
	return nil
}

// Get returns the environment value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
