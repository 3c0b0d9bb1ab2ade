package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Rates    RatesConfig
	Momo     MomoConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RatesConfig struct {
	APIURL      string
	FallbackGHS float64
	CacheTTL    time.Duration
}

type MomoConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	fallbackGHS, _ := strconv.ParseFloat(getEnv("RATES_FALLBACK_GHS", "12.5"), 64)
	rateTTL, _ := time.ParseDuration(getEnv("RATES_CACHE_TTL", "5m"))
	momoTimeout, _ := time.ParseDuration(getEnv("MOMO_TIMEOUT", "30s"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "earnbull"),
			Password: getEnv("DB_PASSWORD", "earnbull"),
			Name:     getEnv("DB_NAME", "earnbull"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Rates: RatesConfig{
			APIURL:      getEnv("RATES_API_URL", "https://open.er-api.com/v6/latest/USD"),
			FallbackGHS: fallbackGHS,
			CacheTTL:    rateTTL,
		},
		Momo: MomoConfig{
			BaseURL: getEnv("MOMO_BASE_URL", "https://sandbox.momodeveloper.mtn.com"),
			APIKey:  getEnv("MOMO_API_KEY", ""),
			Timeout: momoTimeout,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Background job intervals
const (
	PendingWithdrawalCheckInterval = 10 * time.Minute
	PendingWithdrawalMinAge        = 15 * time.Minute
)
