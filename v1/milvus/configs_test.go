package milvus

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Address != "localhost:19530" {
		t.Errorf("unexpected default address: %s", cfg.Address)
	}
	if cfg.Database != "default" {
		t.Errorf("unexpected default database: %s", cfg.Database)
	}
	if cfg.Dimension != 1536 {
		t.Errorf("unexpected default dimension: %d", cfg.Dimension)
	}
	if cfg.Metric != "COSINE" {
		t.Errorf("unexpected default metric: %s", cfg.Metric)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfigBuilders(t *testing.T) {
	cfg := FromAddress("milvus.internal:19530").
		WithCredentials("svc", "secret").
		WithDatabase("knowledge").
		WithCollectionName("articles").
		WithDimension(768).
		WithMetric("L2").
		WithConnectTimeout(3 * time.Second).
		WithConsistencyLevel("Strong").
		WithInitializeSchema(true)

	if cfg.Address != "milvus.internal:19530" || cfg.Username != "svc" {
		t.Errorf("builder did not apply connection settings: %+v", cfg)
	}
	if cfg.Dimension != 768 || cfg.Metric != "L2" {
		t.Errorf("builder did not apply schema settings: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("built config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.Address = "" }},
		{"zero dimension", func(c *Config) { c.Dimension = 0 }},
		{"unknown metric", func(c *Config) { c.Metric = "HAMMING" }},
		{"bm25 as dense metric", func(c *Config) { c.Metric = "BM25" }},
		{"unknown consistency", func(c *Config) { c.ConsistencyLevel = "Exactly" }},
		{"zero connect timeout", func(c *Config) { c.ConnectTimeout = 0 }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("MILVUS_ADDRESS", "env-host:19530")
	t.Setenv("MILVUS_DATABASE", "env-db")
	t.Setenv("MILVUS_DIMENSION", "384")
	t.Setenv("MILVUS_CONNECT_TIMEOUT", "7s")
	t.Setenv("MILVUS_INITIALIZE_SCHEMA", "true")

	cfg := NewConfigFromEnv()

	if cfg.Address != "env-host:19530" {
		t.Errorf("unexpected address: %s", cfg.Address)
	}
	if cfg.Database != "env-db" {
		t.Errorf("unexpected database: %s", cfg.Database)
	}
	if cfg.Dimension != 384 {
		t.Errorf("unexpected dimension: %d", cfg.Dimension)
	}
	if cfg.ConnectTimeout != 7*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.ConnectTimeout)
	}
	if !cfg.InitializeSchema {
		t.Error("expected schema initialization enabled")
	}
}

func TestParseConsistencyLevel(t *testing.T) {
	for _, valid := range []string{"Strong", "Session", "Bounded", "Eventually", ""} {
		if _, err := parseConsistencyLevel(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := parseConsistencyLevel("bounded"); err == nil {
		t.Error("expected lowercase level to be rejected")
	}
}
