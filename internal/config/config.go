// Package config defines the pipeline configuration surface. Values
// resolve in the usual order: flags over environment variables over the
// config file over built-in defaults; Load applies a viper state on top
// of Default.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/cyberabsa/internal/collect"
)

// Paths locates every directory the pipeline reads or writes.
type Paths struct {
	DataDir        string `mapstructure:"data_dir" yaml:"data_dir"`
	RawDir         string `mapstructure:"raw_dir" yaml:"raw_dir"`
	ProcessedDir   string `mapstructure:"processed_dir" yaml:"processed_dir"`
	DatasetDir     string `mapstructure:"dataset_dir" yaml:"dataset_dir"`
	CheckpointsDir string `mapstructure:"checkpoints_dir" yaml:"checkpoints_dir"`
	ReportsDir     string `mapstructure:"reports_dir" yaml:"reports_dir"`
	CacheDir       string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// Storage selects the corpus store backend.
type Storage struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // jsonl or sqlite
	Path    string `mapstructure:"path" yaml:"path"`       // sqlite database path
}

// Collect controls the document collectors.
type Collect struct {
	UserAgent         string             `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout           time.Duration      `mapstructure:"timeout" yaml:"timeout"`
	MaxBodyBytes      int64              `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	RequestsPerSecond float64            `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int                `mapstructure:"burst" yaml:"burst"`
	Delay             time.Duration      `mapstructure:"delay" yaml:"delay"`
	Workers           int                `mapstructure:"workers" yaml:"workers"`
	RespectRobots     bool               `mapstructure:"respect_robots" yaml:"respect_robots"`
	InsecureTLS       bool               `mapstructure:"insecure_tls" yaml:"insecure_tls"`
	HTTPProxy         string             `mapstructure:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy        string             `mapstructure:"https_proxy" yaml:"https_proxy"`
	NoProxy           string             `mapstructure:"no_proxy" yaml:"no_proxy"`
	DomainRates       map[string]float64 `mapstructure:"domain_rates" yaml:"domain_rates,omitempty"`
	TierOverrides     map[string]string  `mapstructure:"tier_overrides" yaml:"tier_overrides,omitempty"`
}

// Dataset controls corpus filtering and the train/valid/test build. The
// 70/15/15 split itself is fixed; only sampling and length cutoffs move.
type Dataset struct {
	Window       int   `mapstructure:"window" yaml:"window"`
	MaxSamples   int   `mapstructure:"max_samples" yaml:"max_samples"`
	Seed         int64 `mapstructure:"seed" yaml:"seed"`
	MinTextLen   int   `mapstructure:"min_text_len" yaml:"min_text_len"`
	CorpusMinLen int   `mapstructure:"corpus_min_len" yaml:"corpus_min_len"`
}

// Topics controls embedding and clustering.
type Topics struct {
	Backend      string `mapstructure:"backend" yaml:"backend"` // local or openai
	EmbedModel   string `mapstructure:"embed_model" yaml:"embed_model"`
	BaseURL      string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	K            int    `mapstructure:"k" yaml:"k"`
	MinTopicSize int    `mapstructure:"min_topic_size" yaml:"min_topic_size"`
	BatchSize    int    `mapstructure:"batch_size" yaml:"batch_size"`
}

// Model controls the sentiment predictor and checkpoint selection.
type Model struct {
	Backend          string `mapstructure:"backend" yaml:"backend"` // lexicon or server
	BaseURL          string `mapstructure:"base_url" yaml:"base_url"`
	Timeout          int    `mapstructure:"timeout" yaml:"timeout"` // seconds
	Window           int    `mapstructure:"window" yaml:"window"`
	HTTPProxy        string `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy       string `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
	NoProxy          string `mapstructure:"no_proxy" yaml:"no_proxy,omitempty"`
	CheckpointPrefix string `mapstructure:"checkpoint_prefix" yaml:"checkpoint_prefix"`
}

// Eval controls batch evaluation.
type Eval struct {
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// Server controls the HTTP service.
type Server struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Config is the full configuration tree.
type Config struct {
	Paths   Paths   `mapstructure:"paths" yaml:"paths"`
	Storage Storage `mapstructure:"storage" yaml:"storage"`
	Collect Collect `mapstructure:"collect" yaml:"collect"`
	Dataset Dataset `mapstructure:"dataset" yaml:"dataset"`
	Topics  Topics  `mapstructure:"topics" yaml:"topics"`
	Model   Model   `mapstructure:"model" yaml:"model"`
	Eval    Eval    `mapstructure:"eval" yaml:"eval"`
	Server  Server  `mapstructure:"server" yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:        "data",
			RawDir:         "data/raw",
			ProcessedDir:   "data/processed",
			DatasetDir:     "data/custom_cybersecurity_atepc",
			CheckpointsDir: "checkpoints",
			ReportsDir:     "reports",
			CacheDir:       "data/cache",
		},
		Storage: Storage{
			Backend: "jsonl",
			Path:    "data/corpus.db",
		},
		Collect: Collect{
			UserAgent:         collect.DefaultUserAgent,
			Timeout:           30 * time.Second,
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			Burst:             2,
			Delay:             time.Second,
			Workers:           4,
			RespectRobots:     true,
		},
		Dataset: Dataset{
			Window:       20,
			MaxSamples:   1000,
			Seed:         42,
			MinTextLen:   20,
			CorpusMinLen: 10,
		},
		Topics: Topics{
			Backend:      "local",
			EmbedModel:   "text-embedding-3-small",
			K:            5,
			MinTopicSize: 10,
			BatchSize:    100,
		},
		Model: Model{
			Backend:          "lexicon",
			BaseURL:          "http://localhost:8000",
			Timeout:          60,
			Window:           20,
			CheckpointPrefix: "fast_lcf_atepc_custom_dataset",
		},
		Eval: Eval{
			BatchSize: 32,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load applies the viper state (config file, bound flags, environment)
// on top of the defaults.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}
