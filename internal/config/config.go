package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Public base URL embedded in verification links, e.g. "https://api.example.com".
	AppBaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	// Outbound mail throttle: messages per second and burst.
	SMTPRatePerSec float64
	SMTPBurst      int

	VerificationTTL time.Duration
	ResetTTL        time.Duration

	// Unverified accounts with no pending verification older than this are
	// removed by the sweeper. Zero disables the sweep.
	OrphanGracePeriod time.Duration
	SweepInterval     time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Accounts       string
	Verifications  string
	PasswordResets string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "3000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:       getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			Verifications:  getEnv("DYNAMO_TABLE_VERIFICATIONS", "pending_verifications"),
			PasswordResets: getEnv("DYNAMO_TABLE_PASSWORD_RESETS", "pending_password_resets"),
		},

		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPRatePerSec: getEnvFloat("SMTP_RATE_PER_SEC", 1),
		SMTPBurst:      getEnvInt("SMTP_BURST", 5),

		VerificationTTL: getEnvDuration("VERIFICATION_TTL", 8*time.Hour),
		ResetTTL:        getEnvDuration("RESET_TTL", 60*time.Minute),

		OrphanGracePeriod: getEnvDuration("ORPHAN_GRACE_PERIOD", 24*time.Hour),
		SweepInterval:     getEnvDuration("SWEEP_INTERVAL", time.Hour),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
