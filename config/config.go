package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the service reads from the environment.
type Config struct {
	Port   string
	AppEnv string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	SQLitePath       string

	JWTSecret           string
	JWTRefreshSecret    string
	JWTExpiresIn        time.Duration
	JWTRefreshExpiresIn time.Duration

	MidtransServerKey  string
	MidtransClientKey  string
	MidtransWebhookURL string
	MidtransEnv        string

	ShopifyShopName      string
	ShopifyAPIKey        string
	ShopifyAPISecret     string
	ShopifyAPIVersion    string
	ShopifyWebhookSecret string

	AllowedOrigins []string
}

// Load reads configuration from the environment. Missing signing secrets or
// gateway credentials are a startup failure, not a per-request error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "storefront-bff.db"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),

		MidtransServerKey:  os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey:  os.Getenv("MIDTRANS_CLIENT_KEY"),
		MidtransWebhookURL: os.Getenv("MIDTRANS_WEBHOOK_URL"),
		MidtransEnv:        getEnv("MIDTRANS_ENV", "sandbox"),

		ShopifyShopName:      os.Getenv("SHOPIFY_SHOP_NAME"),
		ShopifyAPIKey:        os.Getenv("SHOPIFY_API_KEY"),
		ShopifyAPISecret:     os.Getenv("SHOPIFY_API_SECRET"),
		ShopifyAPIVersion:    getEnv("SHOPIFY_API_VERSION", "2023-10"),
		ShopifyWebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
	}

	var err error
	cfg.JWTExpiresIn, err = parseDuration("JWT_EXPIRES_IN", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTRefreshExpiresIn, err = parseDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(o))
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.MidtransServerKey == "" || cfg.MidtransClientKey == "" {
		return nil, fmt.Errorf("MIDTRANS_SERVER_KEY and MIDTRANS_CLIENT_KEY must be set")
	}
	if cfg.MidtransWebhookURL == "" {
		return nil, fmt.Errorf("MIDTRANS_WEBHOOK_URL must be set")
	}
	if cfg.ShopifyWebhookSecret == "" {
		return nil, fmt.Errorf("SHOPIFY_WEBHOOK_SECRET must be set")
	}

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
