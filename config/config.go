package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	DataDir     string
	RedisURL    string
	HTTPTimeout time.Duration
	Env         string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:  getEnv("STOREFRONT_API_URL", "http://localhost:5000/api"),
		DataDir:     getEnv("STOREFRONT_DATA_DIR", defaultDataDir()),
		RedisURL:    getEnv("STOREFRONT_REDIS_URL", ""),
		HTTPTimeout: getDuration("STOREFRONT_HTTP_TIMEOUT", 15*time.Second),
		Env:         getEnv("APP_ENV", "development"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
