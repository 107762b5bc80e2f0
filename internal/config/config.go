package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	AudioPath   string
	AudioPlayer string
	TTSLang     string

	PINFailDelay time.Duration

	CurrencySymbol string
	Locale         string

	ParentTokenSecret string
	ParentTokenTTL    time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ParentEmail  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		DatabaseType:      getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:      getEnv("DB_PATH", "./missions.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		AudioPath:         getEnv("AUDIO_PATH", "./audio"),
		AudioPlayer:       getEnv("AUDIO_PLAYER", ""),
		TTSLang:           getEnv("TTS_LANG", "en"),
		PINFailDelay:      time.Duration(getEnvInt("PIN_FAIL_DELAY_MS", 500)) * time.Millisecond,
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "$"),
		Locale:            getEnv("LOCALE", "en"),
		ParentTokenSecret: getEnv("PARENT_TOKEN_SECRET", ""),
		ParentTokenTTL:    getEnvDuration("PARENT_TOKEN_TTL", 15*time.Minute),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Sticker Missions"),
		ParentEmail:       getEnv("PARENT_EMAIL", ""),
		Debug:             getEnv("DEBUG", "false") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
