package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultGatewayAddr    = ":8081"
	defaultDatabaseDSN    = "shareit.db"
	defaultServerURL      = "http://localhost:8080"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultRateCapacity   = "30"
	defaultRateInterval   = "1s"
	defaultRateBucketTTL  = "1m"
	defaultRejectOverlaps = "false"
)

type Config struct {
	HTTPAddr    string
	DatabaseDSN string

	LogLevel  string
	LogFormat string

	// RejectOverlaps gates interval-overlap rejection on booking creation.
	// Off by default: historically the owner arbitrates overlapping WAITING
	// bookings by hand via approve/reject.
	RejectOverlaps bool

	Gateway GatewayConfig
}

type GatewayConfig struct {
	HTTPAddr  string
	ServerURL string
	RedisAddr string

	RateLimit RateLimitConfig
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillInterval time.Duration
	BucketTTL      time.Duration
}

// Load reads configuration from the environment, with a best-effort .env file
// on top for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    getEnv("SHAREIT_HTTP_ADDR", defaultHTTPAddr),
		DatabaseDSN: getEnv("SHAREIT_DATABASE_DSN", defaultDatabaseDSN),
		LogLevel:    getEnv("SHAREIT_LOG_LEVEL", defaultLogLevel),
		LogFormat:   getEnv("SHAREIT_LOG_FORMAT", defaultLogFormat),
	}

	var err error
	cfg.RejectOverlaps, err = parseBoolEnv("SHAREIT_REJECT_OVERLAPS", defaultRejectOverlaps)
	if err != nil {
		return nil, err
	}

	cfg.Gateway.HTTPAddr = getEnv("SHAREIT_GATEWAY_ADDR", defaultGatewayAddr)
	cfg.Gateway.ServerURL = strings.TrimRight(getEnv("SHAREIT_SERVER_URL", defaultServerURL), "/")
	cfg.Gateway.RedisAddr = getEnv("SHAREIT_REDIS_ADDR", "")

	rl := &cfg.Gateway.RateLimit
	rl.Enabled = cfg.Gateway.RedisAddr != ""
	if rl.Capacity, err = parseIntEnv("SHAREIT_RATE_CAPACITY", defaultRateCapacity); err != nil {
		return nil, err
	}
	if rl.RefillInterval, err = parseDurationEnv("SHAREIT_RATE_INTERVAL", defaultRateInterval); err != nil {
		return nil, err
	}
	if rl.BucketTTL, err = parseDurationEnv("SHAREIT_RATE_BUCKET_TTL", defaultRateBucketTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBoolEnv(key, fallback string) (bool, error) {
	v, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	v, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
