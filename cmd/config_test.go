package cmd_test

import (
	"io"
	"log/slog"
	"testing"

	"storefront/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg, err := cmd.LoadConfig(discard)

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, cmd.StorageMemory, cfg.StorageDriver)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, "order.changed", cfg.Kafka.OrderChangedTopic)
		assert.Equal(t, "VN", cfg.AssemblyPolicy().SupportedCountry)
		assert.Equal(t, int64(1000), cfg.AssemblyPolicy().MinTotal)
		assert.Equal(t, int64(99999999), cfg.AssemblyPolicy().MaxTotal)
		assert.Equal(t, "@every 1h", cfg.Schedules().StatusRefresh)
	})

	t.Run("should read the environment", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("DB_HOST", "db")
		t.Setenv("MAX_ORDER_TOTAL", "5000000")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := cmd.LoadConfig(discard)

		require.NoError(t, err)
		assert.Equal(t, cmd.StoragePostgres, cfg.StorageDriver)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "db", cfg.Connection().Host)
		assert.Equal(t, int64(5000000), cfg.AssemblyPolicy().MaxTotal)
		assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	})

	t.Run("should reject an unknown storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")

		_, err := cmd.LoadConfig(discard)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORAGE_DRIVER")
	})

	t.Run("should reject inverted total bounds", func(t *testing.T) {
		t.Setenv("MIN_ORDER_TOTAL", "10")
		t.Setenv("MAX_ORDER_TOTAL", "5")

		_, err := cmd.LoadConfig(discard)

		assert.ErrorContains(t, err, "MIN_ORDER_TOTAL")
	})
}

func TestCompositionRoot(t *testing.T) {
	cfg, err := cmd.LoadConfig(discard)
	require.NoError(t, err)

	root := cmd.NewCompositionRoot(cfg, nil, discard)

	assert.NotNil(t, root.CreateServer())
	assert.NotNil(t, root.CreateJobManager())
	assert.NoError(t, root.Close())
}
