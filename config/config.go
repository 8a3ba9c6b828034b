// Package config loads cartd settings from CART_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultPrefix is the environment variable prefix used by Load.
const DefaultPrefix = "CART"

// HTTP configures the local API server.
type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"5s" envconfig:"HANDLER_TIMEOUT"` // must exceed the debounce window
	GracefulTimeout   time.Duration `default:"10s" envconfig:"GRACEFUL_TIMEOUT"`
}

// Tracing configures the OTLP exporter; tracing is off unless Enabled.
type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"ENABLED"`
	ServiceName string  `default:"cartd" envconfig:"SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"SAMPLE_RATIO"`
}

// Gateway describes the remote cart API and the user this process serves.
type Gateway struct {
	BaseURL string        `default:"http://localhost:8081" envconfig:"BASE_URL"`
	UserID  string        `required:"true" envconfig:"USER_ID"`
	Timeout time.Duration `default:"5s" envconfig:"TIMEOUT"`
	Enrich  bool          `default:"false" envconfig:"ENRICH_PRODUCTS"`
	Breaker Breaker       `envconfig:"BREAKER"`
}

// Breaker tunes the circuit breaker in front of the remote API.
type Breaker struct {
	MaxFailures      uint32        `default:"5" envconfig:"MAX_FAILURES"`
	OpenTimeout      time.Duration `default:"30s" envconfig:"OPEN_TIMEOUT"`
	HalfOpenRequests uint32        `default:"1" envconfig:"HALF_OPEN_REQUESTS"`
}

// Pipeline tunes the mutation pipeline.
type Pipeline struct {
	DebounceWindow   time.Duration `default:"500ms" envconfig:"DEBOUNCE_WINDOW"`
	NegativeQuantity string        `default:"forward" envconfig:"NEGATIVE_QUANTITY"`
}

// Postgres holds the flush journal; an empty DSN disables it.
type Postgres struct {
	DSN      string `envconfig:"DSN"`
	MaxConns int32  `default:"10" envconfig:"MAX_CONNS"`
}

// Redis mirrors snapshots; an empty Addr disables it.
type Redis struct {
	Addr     string        `envconfig:"ADDR"`
	Password string        `envconfig:"PASSWORD"`
	DB       int           `default:"0" envconfig:"DB"`
	TTL      time.Duration `default:"30m" envconfig:"TTL"`
}

// Kafka consumes invalidation events; no brokers disables it.
type Kafka struct {
	Brokers        []string      `envconfig:"BROKERS"`
	Topic          string        `default:"cart.invalidations" envconfig:"TOPIC"`
	GroupID        string        `envconfig:"GROUP_ID"`
	StartOffset    string        `default:"last" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
}

// Cache is the in-process product info cache used by enrichment.
type Cache struct {
	Capacity int           `default:"1000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"10m" envconfig:"TTL"`
}

// Logger selects the zap preset and level.
type Logger struct {
	IsProd bool   `default:"false" envconfig:"IS_PROD"`
	Level  string `envconfig:"LEVEL"`
}

// Config is the whole service configuration, read from the environment.
type Config struct {
	HTTP     HTTP
	Tracing  Tracing `envconfig:"OTEL"`
	Gateway  Gateway
	Pipeline Pipeline
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Cache    Cache
	Logger   Logger
}

// Load reads the configuration with DefaultPrefix.
func Load() (Config, error) { return LoadWithPrefix(DefaultPrefix) }

// LoadWithPrefix reads and validates the configuration from variables
// named PREFIX_SECTION_FIELD.
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Gateway.UserID) == "" {
		errs = append(errs, errors.New("gateway user id is empty"))
	}
	if c.Pipeline.DebounceWindow <= 0 {
		errs = append(errs, fmt.Errorf("debounce window must be positive, got %v", c.Pipeline.DebounceWindow))
	}
	if c.HTTP.HandlerTimeout <= c.Pipeline.DebounceWindow {
		errs = append(errs, fmt.Errorf("handler timeout %v must exceed debounce window %v", c.HTTP.HandlerTimeout, c.Pipeline.DebounceWindow))
	}
	if c.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("cache capacity must be positive, got %d", c.Cache.Capacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// KafkaGroupID defaults to one consumer group per user.
func (c *Config) KafkaGroupID() string {
	if c.Kafka.GroupID != "" {
		return c.Kafka.GroupID
	}
	return "cartd-" + c.Gateway.UserID
}
