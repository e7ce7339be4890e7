package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Settings struct {
	Env     string
	Port    string
	BaseURL string

	DatabaseDSN string
	AutoMigrate bool

	JWTSecret        string
	AuthCookieName   string
	AuthCookieDomain string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeProPriceID    string

	SendgridAPIKey string
	MailFromEmail  string
	MailFromName   string

	RedisAddr          string
	RedisChannelPrefix string

	SweepSchedule  string
	SweepBatchSize int

	LogLevel string
}

var Cfg = &Settings{}

// Init loads .env (when present) and reads the process environment into Cfg.
func Init() {
	envFileErr := godotenv.Load()

	Cfg = &Settings{
		Env:     getEnv("APP_ENV", "development"),
		Port:    getEnv("PORT", "8080"),
		BaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		AuthCookieName:   getEnv("AUTH_COOKIE_NAME", "jwt"),
		AuthCookieDomain: os.Getenv("AUTH_COOKIE_DOMAIN"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeProPriceID:    os.Getenv("STRIPE_PRO_PRICE_ID"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFromEmail:  getEnv("MAIL_FROM_EMAIL", "noreply@localhost"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "Academy"),

		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisChannelPrefix: getEnv("REDIS_CHANNEL_PREFIX", "notifications"),

		SweepSchedule:  getEnv("SWEEP_SCHEDULE", "@every 15m"),
		SweepBatchSize: getEnvInt("SWEEP_BATCH_SIZE", 200),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	initLogger(Cfg)

	if envFileErr != nil {
		Log.Debug(".env file not found, using process environment")
	}
}

func (s *Settings) IsProduction() bool {
	return s.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		Log.WithError(err).Warnf("Invalid integer for %s, using %d", key, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
