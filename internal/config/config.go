package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser  string
	DBPass  string
	DBHost  string
	DBPort  string
	DBName  string
	SSLMode string

	RedisHost string
	RedisPort string

	NatsHost string
	NatsPort string

	GRPCPort    string
	MetricsPort string

	// LedgerAddr is where the orchestrator finds the ledger service.
	LedgerAddr string

	// BusProvider selects the settlement event bus: nats or none.
	BusProvider string

	// CacheProvider selects the idempotency cache: memory or redis.
	CacheProvider string
	CacheSize     int
	CacheTTL      time.Duration

	ReconcilerInterval time.Duration
	ReconcilerMaxAge   time.Duration
}

func load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBUser:  os.Getenv("PAYHOLD_POSTGRES_USER"),
		DBPass:  os.Getenv("PAYHOLD_POSTGRES_PASSWORD"),
		DBHost:  os.Getenv("PAYHOLD_POSTGRES_HOST"),
		DBPort:  getEnv("PAYHOLD_POSTGRES_PORT", "5432"),
		DBName:  os.Getenv("PAYHOLD_POSTGRES_DB"),
		SSLMode: getEnv("PAYHOLD_POSTGRES_SSLMODE", "disable"),

		RedisHost: os.Getenv("PAYHOLD_REDIS_HOST"),
		RedisPort: getEnv("PAYHOLD_REDIS_PORT", "6379"),

		NatsHost: os.Getenv("PAYHOLD_NATS_HOST"),
		NatsPort: getEnv("PAYHOLD_NATS_PORT", "4222"),

		GRPCPort:    getEnv("PAYHOLD_GRPC_PORT", "9095"),
		MetricsPort: getEnv("PAYHOLD_METRICS_PORT", "9105"),

		LedgerAddr: os.Getenv("PAYHOLD_LEDGER_ADDR"),

		BusProvider:   getEnv("PAYHOLD_BUS_PROVIDER", "none"),
		CacheProvider: getEnv("PAYHOLD_CACHE_PROVIDER", "memory"),
		CacheSize:     getEnvInt("PAYHOLD_CACHE_SIZE", 100_000),
		CacheTTL:      getEnvDuration("PAYHOLD_CACHE_TTL", 10*time.Minute),

		ReconcilerInterval: getEnvDuration("PAYHOLD_RECONCILER_INTERVAL", time.Minute),
		ReconcilerMaxAge:   getEnvDuration("PAYHOLD_RECONCILER_MAX_AGE", 15*time.Minute),
	}
}

// NewLedger loads and validates configuration for the ledger binary.
func NewLedger() (*Config, error) {
	cfg := load()

	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("missing required env for database: PAYHOLD_POSTGRES_USER/HOST/DB")
	}
	if err := cfg.validateBus(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewOrchestrator loads and validates configuration for the orchestrator
// binary.
func NewOrchestrator() (*Config, error) {
	cfg := load()

	if cfg.LedgerAddr == "" {
		return nil, fmt.Errorf("missing required env: PAYHOLD_LEDGER_ADDR")
	}
	switch cfg.CacheProvider {
	case "memory":
	case "redis":
		if cfg.RedisHost == "" {
			return nil, fmt.Errorf("missing required env for redis cache: PAYHOLD_REDIS_HOST")
		}
	default:
		return nil, fmt.Errorf("invalid cache provider %q, must be 'memory' or 'redis'", cfg.CacheProvider)
	}
	if err := cfg.validateBus(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateBus() error {
	switch c.BusProvider {
	case "none":
		return nil
	case "nats":
		if c.NatsHost == "" {
			return fmt.Errorf("missing required env for nats bus: PAYHOLD_NATS_HOST")
		}
		return nil
	default:
		return fmt.Errorf("invalid bus provider %q, must be 'nats' or 'none'", c.BusProvider)
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) NatsAddr() string {
	return fmt.Sprintf("nats://%s:%s", c.NatsHost, c.NatsPort)
}

func (c *Config) GRPCAddr() string {
	return ":" + c.GRPCPort
}

func (c *Config) MetricsAddr() string {
	return ":" + c.MetricsPort
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var intVal int
	if _, err := fmt.Sscanf(val, "%d", &intVal); err != nil {
		return defaultVal
	}
	return intVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
