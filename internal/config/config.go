package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port      string
	DBPath    string
	RedisAddr string
	MaxBet    decimal.Decimal
}

func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "db.sqlite"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		MaxBet:    decimal.RequireFromString(getEnv("MAX_BET", "1000")),
	}

	if os.Getenv("API_KEY") == "" || os.Getenv("ADMIN_TOKEN") == "" {
		log.Fatal("Missing critical environment variables")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
