package milvus

import (
	"fmt"
	"time"

	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

// Config holds connection and behavior settings for the Milvus client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (programmatic):
//
//	cfg := milvus.DefaultConfig()
//	cfg.Address = "localhost:19530"
//	cfg.Username = os.Getenv("MILVUS_USERNAME")
//
// Example (builder style):
//
//	cfg := milvus.FromAddress("localhost:19530").
//	    WithDatabase("knowledge").
//	    WithDimension(768)
type Config struct {
	// Address of the Milvus server, host:port. Defaults to "localhost:19530".
	Address string `yaml:"address" env:"MILVUS_ADDRESS"`

	// Optional credentials for secured deployments.
	Username string `yaml:"username" env:"MILVUS_USERNAME"`
	Password string `yaml:"password" env:"MILVUS_PASSWORD"`

	// APIKey authenticates against managed deployments. Takes precedence over
	// username/password when set.
	APIKey string `yaml:"api_key" env:"MILVUS_API_KEY"`

	// Database this client operates on. Defaults to "default".
	Database string `yaml:"database" env:"MILVUS_DATABASE"`

	// CollectionName is the default collection for stores created without an
	// explicit name.
	CollectionName string `yaml:"collection_name" env:"MILVUS_COLLECTION_NAME"`

	// Dimension of the dense embedding vectors. Defaults to 1536.
	Dimension int `yaml:"dimension" env:"MILVUS_DIMENSION"`

	// Metric is the dense similarity metric: COSINE, L2 or IP.
	Metric string `yaml:"metric" env:"MILVUS_METRIC"`

	// ConnectTimeout bounds connection establishment and the initial health
	// probe.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MILVUS_CONNECT_TIMEOUT"`

	// ConsistencyLevel for reads: Strong, Session, Bounded or Eventually.
	ConsistencyLevel string `yaml:"consistency_level" env:"MILVUS_CONSISTENCY_LEVEL"`

	// InitializeSchema creates the default collection (with indexes) when it
	// does not exist yet.
	InitializeSchema bool `yaml:"initialize_schema" env:"MILVUS_INITIALIZE_SCHEMA"`

	// Logger receives lifecycle and background logs. Defaults to a nop.
	Logger Logger `yaml:"-"`
}

// Logger is the minimal logging contract this package needs.
// The std logger package satisfies it; so does any equivalent wrapper.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultAddress          = "localhost:19530"
	DefaultDatabase         = "default"
	DefaultCollectionName   = "vector_store"
	DefaultDimension        = 1536
	DefaultMetric           = string(vectorstore.MetricCosine)
	DefaultConnectTimeout   = 10 * time.Second
	DefaultConsistencyLevel = "Bounded"
)

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Address:          DefaultAddress,
		Database:         DefaultDatabase,
		CollectionName:   DefaultCollectionName,
		Dimension:        DefaultDimension,
		Metric:           DefaultMetric,
		ConnectTimeout:   DefaultConnectTimeout,
		ConsistencyLevel: DefaultConsistencyLevel,
	}
}

// FromAddress returns a default config pre-filled with a specific address.
func FromAddress(address string) *Config {
	cfg := DefaultConfig()
	cfg.Address = address
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithCredentials(username, password string) *Config {
	c.Username = username
	c.Password = password
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithDatabase(name string) *Config {
	c.Database = name
	return c
}

func (c *Config) WithCollectionName(name string) *Config {
	c.CollectionName = name
	return c
}

func (c *Config) WithDimension(dim int) *Config {
	c.Dimension = dim
	return c
}

func (c *Config) WithMetric(metric string) *Config {
	c.Metric = metric
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithConsistencyLevel(level string) *Config {
	c.ConsistencyLevel = level
	return c
}

func (c *Config) WithInitializeSchema(enabled bool) *Config {
	c.InitializeSchema = enabled
	return c
}

func (c *Config) WithLogger(l Logger) *Config {
	c.Logger = l
	return c
}

// Validate checks the config for values that would fail at first use.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("milvus: address must not be empty")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("milvus: dimension must be > 0, got %d", c.Dimension)
	}
	if _, err := vectorstore.ParseMetric(c.Metric); err != nil {
		return fmt.Errorf("milvus: %w", err)
	}
	if c.Metric == string(vectorstore.MetricBM25) {
		return fmt.Errorf("milvus: BM25 is not a dense vector metric")
	}
	if _, err := parseConsistencyLevel(c.ConsistencyLevel); err != nil {
		return err
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("milvus: connect timeout must be > 0")
	}
	return nil
}

// nopLogger is used when no logger is configured.
type nopLogger struct{}

func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
