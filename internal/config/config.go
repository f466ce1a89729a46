package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/rohanbadgujar20011/food-delivery-app/pkg/config"
)

// Config holds all configuration for the food delivery server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis (cart store)
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CartTTL       time.Duration `env:"CART_TTL" envDefault:"168h"`

	// MongoDB (menu)
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB_NAME" envDefault:"fooddelivery"`

	// PostgreSQL (orders, payments)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"fooddelivery"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"fooddelivery_secret"`
	PostgresDB   string `env:"POSTGRES_DB_NAME" envDefault:"fooddelivery"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Checkout's downstream endpoints. Empty means the server calls itself,
	// which is the default for the monolith deployment.
	OrderServiceURL   string `env:"ORDER_SERVICE_URL" envDefault:""`
	PaymentServiceURL string `env:"PAYMENT_SERVICE_URL" envDefault:""`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_OTLP_ENDPOINT" envDefault:"localhost:4318"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-client-IP rate limiting on the public router.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"200"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.CartTTL <= 0 {
		return nil, fmt.Errorf("invalid cart TTL: %s", cfg.CartTTL)
	}
	if cfg.RateLimitRPS < 1 || cfg.RateLimitBurst < cfg.RateLimitRPS {
		return nil, fmt.Errorf("invalid rate limit: rps=%d burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Checkout calls the order and payment endpoints over HTTP even in the
	// monolith deployment; default both to the local server.
	self := fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	if cfg.OrderServiceURL == "" {
		cfg.OrderServiceURL = self
	}
	if cfg.PaymentServiceURL == "" {
		cfg.PaymentServiceURL = self
	}

	return cfg, nil
}
