package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration loaded from the environment.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	Env      string
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing keys fall back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:     getenv("PORT", "3000"),
		MongoURI: getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGODB_DB", "liliana-contabilidad"),
		Env:      getenv("APP_ENV", "development"),
	}
}

// IsDevelopment reports whether the process runs in development mode.
// Error responses include details only in this mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
