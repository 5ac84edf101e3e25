package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string
	PostgresDSN  string
	StoreBackend string // "postgres" or "memory"
	RedisAddr    string
	JWTSecret    string
	TokenTTL     time.Duration
	RoleCacheTTL time.Duration
	UploadDir    string
	BaseURL      string
	AWSRegion    string
	MailFrom     string
	LogLevel     string
	DBMaxOpen    int
	DBMaxIdle    int
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		PostgresDSN:  getEnv("DATABASE_URL", ""),
		StoreBackend: getEnv("STORE", "postgres"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     getDuration("TOKEN_TTL", 24*time.Hour),
		RoleCacheTTL: getDuration("ROLE_CACHE_TTL", 5*time.Minute),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		AWSRegion:    getEnv("AWS_REGION", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBMaxOpen:    getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdle:    getInt("DB_MAX_IDLE_CONNS", 10),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.StoreBackend == "postgres" && cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required when STORE=postgres")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
