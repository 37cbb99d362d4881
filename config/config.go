package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret is only ever used when AUTH_INSECURE_DEV=true. Running
// without a configured JWT_SECRET in any other mode is a startup error.
const devJWTSecret = "mindlift-dev-secret-do-not-use-in-production"

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	JWTSecret   []byte
	JWTIssuer   string
	TokenTTL    time.Duration
	InsecureDev bool

	StripeSecretKey     string
	StripeWebhookSecret string
	SubscriptionCents   int64
	Currency            string

	ResendAPIKey string
	EmailFrom    string
	AppBaseURL   string
	EmailSweep   time.Duration

	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string
	StorageEndpoint  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}

	cfg := &Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTIssuer:           getenv("JWT_ISSUER", "mindlift"),
		TokenTTL:            time.Hour,
		InsecureDev:         os.Getenv("AUTH_INSECURE_DEV") == "true",
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SubscriptionCents:   1999,
		Currency:            "usd",
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:           os.Getenv("EMAIL_FROM"),
		AppBaseURL:          os.Getenv("APP_BASE_URL"),
		EmailSweep:          time.Minute,
		StorageAccessKey:    os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey:    os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:       os.Getenv("STORAGE_BUCKET"),
		StorageRegion:       os.Getenv("STORAGE_REGION"),
		StorageEndpoint:     os.Getenv("STORAGE_ENDPOINT"),
	}

	secret := os.Getenv("JWT_SECRET")
	switch {
	case secret != "":
		cfg.JWTSecret = []byte(secret)
	case cfg.InsecureDev:
		cfg.JWTSecret = []byte(devJWTSecret)
	default:
		return nil, errors.New("JWT_SECRET is required (set AUTH_INSECURE_DEV=true to use the dev secret locally)")
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}

func (c *Config) StorageConfigured() bool {
	return c.StorageAccessKey != "" && c.StorageSecretKey != "" && c.StorageBucket != "" && c.StorageRegion != ""
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
