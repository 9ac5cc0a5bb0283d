// config.go collects all process configuration from the environment.
package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	JWTSecret     string
	DatabasePath  string
	FrontendURLs  []string
	AdminUsername string
	AdminPassword string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg := Config{
		Port:          getenv("PORT", "8081"),
		JWTSecret:     getenv("JWT_SECRET", "your-secret-key"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
	}

	for _, key := range []string{"FRONTEND_URL", "FRONTEND_URL2"} {
		if url := os.Getenv(key); url != "" {
			cfg.FrontendURLs = append(cfg.FrontendURLs, url)
		}
	}
	if len(cfg.FrontendURLs) == 0 {
		cfg.FrontendURLs = []string{"*"}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
