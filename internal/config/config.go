package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env once at startup; a missing file is fine in production
// where everything comes from the real environment.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}

func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
