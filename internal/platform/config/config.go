package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything main needs to wire the engine. All values come
// from RELET_* environment variables; empty store URLs select the in-memory
// implementations.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	PostgresURL string
	Redis       Redis

	PaymentTrackerURL string
	LeaseFactoryURL   string

	Oracle           string
	DefaultThreshold int
	DefaultPeriod    int64
	GracePeriod      int64
	MaxEvaluations   int64

	BlockInterval time.Duration
	StartHeight   int64

	AuditBuffer int
}

// Redis holds connection tuning for the status store.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:          envString("RELET_ADDR", ":8080"),
		JWTSigningKey: envString("RELET_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envString("RELET_JWT_ISSUER", "relet"),
		JWTAudience:   envString("RELET_JWT_AUDIENCE", "relet-api"),

		PostgresURL: os.Getenv("RELET_POSTGRES_URL"),
		Redis: Redis{
			URL:          os.Getenv("RELET_REDIS_URL"),
			PoolSize:     envInt("RELET_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("RELET_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("RELET_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("RELET_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("RELET_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},

		PaymentTrackerURL: os.Getenv("RELET_PAYMENT_TRACKER_URL"),
		LeaseFactoryURL:   os.Getenv("RELET_LEASE_FACTORY_URL"),

		Oracle:           envString("RELET_ORACLE", "oracle"),
		DefaultThreshold: envInt("RELET_DEFAULT_THRESHOLD", 90),
		DefaultPeriod:    envInt64("RELET_DEFAULT_PERIOD", 12),
		GracePeriod:      envInt64("RELET_GRACE_PERIOD", 30),
		MaxEvaluations:   envInt64("RELET_MAX_EVALUATIONS", 500),

		BlockInterval: envDuration("RELET_BLOCK_INTERVAL", 10*time.Minute),
		StartHeight:   envInt64("RELET_START_HEIGHT", 0),

		AuditBuffer: envInt("RELET_AUDIT_BUFFER", 256),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
