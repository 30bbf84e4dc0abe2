package greenlight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 120, cfg.TotalCycleTime)
	require.Equal(t, 10, cfg.MinGreenTime)
	require.Equal(t, "proportional", cfg.Strategy)
	require.Equal(t, "greenlight.allocate", cfg.Service.Subject)
	require.Equal(t, "greenlight", cfg.Service.QueueGroup)
	require.Equal(t, 2*time.Second, cfg.Service.RequestTimeout)
	require.Equal(t, 1024, cfg.Service.CacheSize)
	require.Equal(t, "greenlight", cfg.Metrics.Namespace)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, 120, cfg.TotalCycleTime)
		require.Equal(t, "proportional", cfg.Strategy)
		require.Equal(t, "greenlight.allocate", cfg.Service.Subject)
		require.Equal(t, 2*time.Second, cfg.Service.RequestTimeout)
		require.Equal(t, 1024, cfg.Service.CacheSize)
		require.Equal(t, "greenlight", cfg.Metrics.Namespace)
	})

	t.Run("keeps zero floor and empty queue group", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, 0, cfg.MinGreenTime)
		require.Empty(t, cfg.Service.QueueGroup)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := Config{
			TotalCycleTime: 90,
			MinGreenTime:   5,
			Strategy:       "largest-remainder",
			Service:        ServiceConfig{Subject: "junction.7", CacheSize: -1},
		}
		SetDefaults(&cfg)

		require.Equal(t, 90, cfg.TotalCycleTime)
		require.Equal(t, 5, cfg.MinGreenTime)
		require.Equal(t, "largest-remainder", cfg.Strategy)
		require.Equal(t, "junction.7", cfg.Service.Subject)
		require.Equal(t, -1, cfg.Service.CacheSize)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero cycle", func(c *Config) { c.TotalCycleTime = 0 }, ErrInvalidCycleParams},
		{"negative cycle", func(c *Config) { c.TotalCycleTime = -30 }, ErrInvalidCycleParams},
		{"negative floor", func(c *Config) { c.MinGreenTime = -1 }, ErrInvalidCycleParams},
		{"unknown strategy", func(c *Config) { c.Strategy = "round-robin" }, ErrUnknownStrategy},
		{"empty subject", func(c *Config) { c.Service.Subject = "" }, ErrInvalidConfig},
		{"zero timeout", func(c *Config) { c.Service.RequestTimeout = 0 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidConfig))
			require.True(t, errors.Is(err, tt.wantErr))
		})
	}

	t.Run("floor larger than cycle is accepted", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TotalCycleTime = 30
		cfg.MinGreenTime = 20
		require.NoError(t, cfg.Validate())
	})
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	t.Run("defaults are quiet", func(t *testing.T) {
		cfg := DefaultConfig()
		logger := &recordingLogger{}
		cfg.ValidateWithWarnings(logger)
		require.Empty(t, logger.warnings)
	})

	t.Run("zero floor", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinGreenTime = 0
		logger := &recordingLogger{}
		cfg.ValidateWithWarnings(logger)
		require.Len(t, logger.warnings, 1)
	})

	t.Run("floors dominate the cycle", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TotalCycleTime = 60
		cfg.MinGreenTime = 13 // 52s of 60s at four lanes
		logger := &recordingLogger{}
		cfg.ValidateWithWarnings(logger)
		require.Len(t, logger.warnings, 1)
	})
}

func TestParseConfig(t *testing.T) {
	t.Run("omitted fields keep defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("totalCycleTime: 90\n"))
		require.NoError(t, err)

		require.Equal(t, 90, cfg.TotalCycleTime)
		require.Equal(t, 10, cfg.MinGreenTime)
		require.Equal(t, "greenlight", cfg.Service.QueueGroup)
	})

	t.Run("explicit zero floor is preserved", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("minGreenTime: 0\n"))
		require.NoError(t, err)
		require.Equal(t, 0, cfg.MinGreenTime)
	})

	t.Run("full document", func(t *testing.T) {
		data := []byte(`
totalCycleTime: 150
minGreenTime: 12
strategy: largest-remainder
service:
  subject: junction.north.allocate
  queueGroup: junction-north
  requestTimeout: 750ms
  cacheSize: 64
metrics:
  namespace: junction
`)
		cfg, err := ParseConfig(data)
		require.NoError(t, err)

		require.Equal(t, 150, cfg.TotalCycleTime)
		require.Equal(t, 12, cfg.MinGreenTime)
		require.Equal(t, "largest-remainder", cfg.Strategy)
		require.Equal(t, "junction.north.allocate", cfg.Service.Subject)
		require.Equal(t, "junction-north", cfg.Service.QueueGroup)
		require.Equal(t, 750*time.Millisecond, cfg.Service.RequestTimeout)
		require.Equal(t, 64, cfg.Service.CacheSize)
		require.Equal(t, "junction", cfg.Metrics.Namespace)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("totalCycleTime: [1, 2"))
		require.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greenlight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("totalCycleTime: 100\nminGreenTime: 8\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, CycleParams{TotalCycleTime: 100, MinGreenTime: 8}, cfg.CycleParams())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	require.Empty(t, cfg.Service.QueueGroup)
	require.Equal(t, 500*time.Millisecond, cfg.Service.RequestTimeout)
	require.NoError(t, cfg.Validate())
}
