package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	ServiceName string
	AppEnv      string
	LogLevel    string
	Timezone    string

	PostgresDSN  string // empty = built-in menu
	RedisAddr    string
	KafkaBrokers []string // empty = events disabled

	SquareAccessToken string
	SquareLocationID  string
	SquareEnvironment string
	CaptureTimeout    time.Duration

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	FromEmail   string
	OrderToMail string

	ReconGroup         string
	ReconWorkers       int
	ReconGrace         time.Duration
	ReconSweepInterval time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8081"),
		ServiceName: getenv("SERVICE_NAME", "storefront-api"),
		AppEnv:      getenv("APP_ENV", "dev"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Timezone:    getenv("STORE_TIMEZONE", "Local"),

		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),

		SquareAccessToken: os.Getenv("SQUARE_ACCESS_TOKEN"),
		SquareLocationID:  os.Getenv("SQUARE_LOCATION_ID"),
		SquareEnvironment: getenv("SQUARE_ENVIRONMENT", "sandbox"),
		CaptureTimeout:    getenvDuration("CAPTURE_TIMEOUT", 30*time.Second),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    getenvInt("SMTP_PORT", 0),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		FromEmail:   getenv("FROM_EMAIL", "orders@example.com"),
		OrderToMail: getenv("ORDER_TO_EMAIL", "thebbqhut@upwardmail.com"),

		ReconGroup:         getenv("RECON_GROUP", "storefront-reconciler"),
		ReconWorkers:       getenvInt("RECON_WORKERS", 4),
		ReconGrace:         getenvDuration("RECON_GRACE", 30*time.Minute),
		ReconSweepInterval: getenvDuration("RECON_SWEEP_INTERVAL", 5*time.Minute),
	}
}

// SquareConfigured reports whether online payments can be taken.
func (c Config) SquareConfigured() bool {
	return c.SquareAccessToken != "" && c.SquareLocationID != ""
}

func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
