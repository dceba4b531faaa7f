package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"go-furniture-erp/pkg/logger"
)

type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	LogLevel    string
	CORSOrigins string
	Location    *time.Location
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn(".env file not found, relying on system env")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseDSN: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Location:    LoadLocation(getEnv("APP_TIMEZONE", "Asia/Jakarta")),
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			cfg.Location.String(),
		)
	}
	if cfg.JWTSecret == "" {
		logger.Get().Warn("JWT_SECRET not set, using the development default")
	}

	return cfg
}

// LoadLocation falls back to UTC+7 when tzdata is missing on the host.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
