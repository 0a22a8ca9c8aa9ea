package config

import (
	"log"
	"os"

	"wishloop/utils"
)

// Settings holds all configuration for the application, loaded from
// environment variables.
type Settings struct {
	Port         string
	BaseURL      string
	DatabasePath string
	AvatarDir    string
	UploadDir    string
	LogFile      string

	// AuthSecret signs session tokens. Generated per-process when unset,
	// which invalidates sessions across restarts.
	AuthSecret string

	GithubClientID     string
	GithubClientSecret string
	GoogleClientID     string
	GoogleClientSecret string

	// DevAuth enables the local development auth provider.
	DevAuth bool
}

// Load reads settings from the environment, applying defaults.
func Load() (*Settings, error) {
	cfg := &Settings{
		Port:         getEnvOrDefault("PORT", "8080"),
		BaseURL:      getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "data/wishloop.db"),
		AvatarDir:    getEnvOrDefault("AVATAR_DIR", "data/avatars"),
		UploadDir:    getEnvOrDefault("UPLOAD_DIR", "data/uploads"),
		LogFile:      os.Getenv("LOG_FILE"),

		AuthSecret:         os.Getenv("AUTH_SECRET"),
		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),

		DevAuth: os.Getenv("DEV_AUTH") == "1",
	}

	if cfg.AuthSecret == "" {
		secret, err := utils.GenerateSecret()
		if err != nil {
			return nil, err
		}
		cfg.AuthSecret = secret
		log.Println("[config] AUTH_SECRET not set; generated an ephemeral secret, sessions will not survive restarts")
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
