package greenlight

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/greenlight/strategy"
	"github.com/arloliu/greenlight/types"
)

// typicalLaneCount is the lane count used for floor-budget warnings (a four-way intersection).
const typicalLaneCount = 4

// ServiceConfig configures the NATS allocation responder.
type ServiceConfig struct {
	// Subject is the NATS subject the responder listens on.
	Subject string `yaml:"subject"`

	// QueueGroup load-balances requests across responder instances.
	// Empty disables queue grouping (every instance answers).
	QueueGroup string `yaml:"queueGroup"`

	// RequestTimeout bounds client requests.
	// Recommended: 2 seconds.
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// CacheSize is the maximum number of plans cached by fingerprint.
	// Set to a negative value to disable caching.
	CacheSize int `yaml:"cacheSize"`
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	// Namespace prefixes every Prometheus metric name.
	Namespace string `yaml:"namespace"`
}

// Config is the configuration for the Allocator and the allocation service.
//
// All duration fields accept standard Go duration strings like "2s", "500ms".
type Config struct {
	// TotalCycleTime is the number of seconds distributed across lanes per cycle.
	// Default: 120.
	TotalCycleTime int `yaml:"totalCycleTime"`

	// MinGreenTime is the floor every lane receives.
	// Default: 10. Zero is a valid value and disables the floor.
	MinGreenTime int `yaml:"minGreenTime"`

	// Strategy selects the allocation strategy ("proportional", "largest-remainder").
	// Default: "proportional".
	Strategy string `yaml:"strategy"`

	// Service controls the NATS responder.
	Service ServiceConfig `yaml:"service"`

	// Metrics controls metrics export.
	Metrics MetricsConfig `yaml:"metrics"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		TotalCycleTime: types.DefaultTotalCycleTime,
		MinGreenTime:   types.DefaultMinGreenTime,
		Strategy:       strategy.NameProportional,
		Service: ServiceConfig{
			Subject:        "greenlight.allocate",
			QueueGroup:     "greenlight",
			RequestTimeout: 2 * time.Second,
			CacheSize:      1024,
		},
		Metrics: MetricsConfig{
			Namespace: "greenlight",
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// MinGreenTime is left untouched because zero is meaningful; start from
// DefaultConfig (as LoadConfig does) to get the 10s floor.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.TotalCycleTime == 0 {
		cfg.TotalCycleTime = defaults.TotalCycleTime
	}
	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.Service.Subject == "" {
		cfg.Service.Subject = defaults.Service.Subject
	}
	if cfg.Service.RequestTimeout == 0 {
		cfg.Service.RequestTimeout = defaults.Service.RequestTimeout
	}
	if cfg.Service.CacheSize == 0 {
		cfg.Service.CacheSize = defaults.Service.CacheSize
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaults.Metrics.Namespace
	}
	// Note: an empty QueueGroup is valid (no queue grouping), so we don't apply default
}

// CycleParams returns the cycle parameters carried by the configuration.
func (cfg *Config) CycleParams() types.CycleParams {
	return types.CycleParams{
		TotalCycleTime: cfg.TotalCycleTime,
		MinGreenTime:   cfg.MinGreenTime,
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - TotalCycleTime > 0
//   - MinGreenTime >= 0
//   - Strategy names a registered strategy
//   - Service.Subject is not empty
//   - Service.RequestTimeout > 0
//
// A floor that exceeds the cycle for some lane count is not an error; it
// depends on the lane count of each request.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with a clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if err := cfg.CycleParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := strategy.New(cfg.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.Service.Subject == "" {
		return fmt.Errorf("%w: service subject must not be empty", ErrInvalidConfig)
	}

	if cfg.Service.RequestTimeout <= 0 {
		return fmt.Errorf("%w: service requestTimeout must be > 0, got %v", ErrInvalidConfig, cfg.Service.RequestTimeout)
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but non-recommended values.
//
// This is called after Validate() in NewAllocator() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.MinGreenTime == 0 {
		logger.Warn(
			"MinGreenTime is zero, idle lanes may receive no green time",
			"minGreenTime", cfg.MinGreenTime,
		)
	}

	// Warn if a typical four-lane intersection would spend most of the cycle on floors
	if cfg.MinGreenTime*typicalLaneCount*5 > cfg.TotalCycleTime*4 {
		logger.Warn(
			"lane floors consume more than 80% of the cycle at four lanes",
			"totalCycleTime", cfg.TotalCycleTime,
			"minGreenTime", cfg.MinGreenTime,
			"floorBudget", cfg.MinGreenTime*typicalLaneCount,
		)
	}
}

// LoadConfig reads a YAML configuration file.
//
// The file is decoded over DefaultConfig(), so omitted fields keep their
// defaults while explicit zero values (e.g. minGreenTime: 0) are preserved.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Loaded configuration (not yet validated)
//   - error: Read or decode error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration bytes over DefaultConfig().
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	SetDefaults(&cfg)

	return cfg, nil
}

// TestConfig returns a configuration suited for tests.
//
// It disables the queue group so that every test responder answers and
// shortens the request timeout.
//
// Returns:
//   - Config: Configuration for tests
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Service.QueueGroup = ""
	cfg.Service.RequestTimeout = 500 * time.Millisecond
	cfg.Service.CacheSize = 16

	return cfg
}
