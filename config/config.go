package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Session    SessionConfig
	Pricing    PricingConfig
	Generation GenerationConfig
	Payment    PaymentConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SessionConfig struct {
	CookieName    string
	TTL           time.Duration
	SweepSchedule string // cron expression for the expired-session sweeper
}

type PricingConfig struct {
	BasePrice      int // price of a single-color design, in rupees
	ColorIncrement int // charged per billable extra color
	PriceCap       int // absolute upper bound on a design price
}

type GenerationConfig struct {
	APIKey         string
	BaseURL        string
	Models         []string // candidate model identifiers, tried in order
	Backoff        time.Duration
	RequestTimeout time.Duration
}

type PaymentConfig struct {
	Mockpay MockpayConfig
}

type MockpayConfig struct {
	Provider string
	Delay    time.Duration // simulated processing delay
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE_NAME", "threadz_session"),
			TTL:           parseDuration(getEnv("SESSION_TTL", "2h"), 2*time.Hour),
			SweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@every 10m"),
		},
		Pricing: PricingConfig{
			BasePrice:      parseInt(getEnv("PRICING_BASE_PRICE", "899"), 899),
			ColorIncrement: parseInt(getEnv("PRICING_COLOR_INCREMENT", "100"), 100),
			PriceCap:       parseInt(getEnv("PRICING_PRICE_CAP", "1299"), 1299),
		},
		Generation: GenerationConfig{
			APIKey:         getEnv("GENERATION_API_KEY", ""),
			BaseURL:        getEnv("GENERATION_BASE_URL", "https://api.openai.com/v1"),
			Models:         parseSlice(getEnv("GENERATION_MODELS", "gpt-4o-mini,gpt-4o,gpt-4.1-mini,gpt-3.5-turbo")),
			Backoff:        parseDuration(getEnv("GENERATION_BACKOFF", "2s"), 2*time.Second),
			RequestTimeout: parseDuration(getEnv("GENERATION_REQUEST_TIMEOUT", "30s"), 30*time.Second),
		},
		Payment: PaymentConfig{
			Mockpay: MockpayConfig{
				Provider: getEnv("PAYMENT_PROVIDER", "mockpay"),
				Delay:    parseDuration(getEnv("PAYMENT_DELAY", "1s"), time.Second),
			},
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
