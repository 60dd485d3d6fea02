package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/domain/services"
	"storefront/internal/jobs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort      string `env:"HTTP_PORT" env-default:"8080"`
	StorageDriver string `env:"STORAGE_DRIVER" env-default:"memory"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`

	DB struct {
		Host     string `env:"DB_HOST" env-default:"localhost"`
		Port     string `env:"DB_PORT" env-default:"5432"`
		User     string `env:"DB_USER" env-default:"postgres"`
		Password string `env:"DB_PASSWORD"`
		Name     string `env:"DB_NAME" env-default:"storefront"`
		SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	}

	Kafka struct {
		Brokers           []string `env:"KAFKA_BROKERS" env-separator:","`
		OrderChangedTopic string   `env:"KAFKA_ORDER_CHANGED_TOPIC" env-default:"order.changed"`
	}

	Checkout struct {
		SupportedCountry string `env:"SUPPORTED_COUNTRY" env-default:"VN"`
		MinOrderTotal    int64  `env:"MIN_ORDER_TOTAL" env-default:"1000"`
		MaxOrderTotal    int64  `env:"MAX_ORDER_TOTAL" env-default:"99999999"`
	}

	Tracing struct {
		JaegerEndpoint string  `env:"TRACING_JAEGER_ENDPOINT"`
		SampleRatio    float64 `env:"TRACING_SAMPLE_RATIO" env-default:"1.0"`
	}

	Jobs struct {
		StatusRefreshSchedule string `env:"STATUS_REFRESH_SCHEDULE" env-default:"@every 1h"`
		IndexRepairSchedule   string `env:"INDEX_REPAIR_SCHEDULE" env-default:"@daily"`
	}
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(logger *slog.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not load .env file", "error", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.StorageDriver != StorageMemory && c.StorageDriver != StoragePostgres {
		problems = append(problems, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StorageMemory, StoragePostgres, c.StorageDriver))
	}
	if c.Checkout.MinOrderTotal > c.Checkout.MaxOrderTotal {
		problems = append(problems, fmt.Errorf("MIN_ORDER_TOTAL %d exceeds MAX_ORDER_TOTAL %d",
			c.Checkout.MinOrderTotal, c.Checkout.MaxOrderTotal))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, fmt.Errorf("TRACING_SAMPLE_RATIO must be within [0, 1], got %v",
			c.Tracing.SampleRatio))
	}
	if c.Checkout.SupportedCountry == "" {
		problems = append(problems, errors.New("SUPPORTED_COUNTRY is required"))
	}
	return errors.Join(problems...)
}

func (c Config) AssemblyPolicy() services.AssemblyPolicy {
	return services.AssemblyPolicy{
		SupportedCountry: c.Checkout.SupportedCountry,
		MinTotal:         c.Checkout.MinOrderTotal,
		MaxTotal:         c.Checkout.MaxOrderTotal,
	}
}

func (c Config) Connection() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Name:     c.DB.Name,
		SSLMode:  c.DB.SSLMode,
	}
}

func (c Config) Schedules() jobs.Schedules {
	return jobs.Schedules{
		StatusRefresh: c.Jobs.StatusRefreshSchedule,
		IndexRepair:   c.Jobs.IndexRepairSchedule,
	}
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
