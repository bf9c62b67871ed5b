// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and IDF_* env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/parisfoot/idfplayers/internal/adapters/wikidata"
	"github.com/parisfoot/idfplayers/internal/domain/model"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Endpoint is the SPARQL query service URL.
	Endpoint string `koanf:"endpoint"`

	// UserAgent identifies the project to the endpoint, per its usage policy.
	UserAgent string `koanf:"user_agent"`

	// Lang is the label language requested on every query. One language for
	// the whole pipeline, or the nationality tables stop matching.
	Lang string `koanf:"lang"`

	// MinYear and MaxYear bound birth dates, inclusive.
	MinYear int `koanf:"min_year"`
	MaxYear int `koanf:"max_year"`

	// Departments is the ordered list of département codes to collect.
	Departments []string `koanf:"departments"`

	// RequestDelayMS is the pause between consecutive département queries.
	RequestDelayMS int `koanf:"request_delay_ms"`

	// RequestTimeoutMS bounds one HTTP request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// RetryAttempts and RetryDelayMS shape the bounded in-process retry.
	RetryAttempts int `koanf:"retry_attempts"`
	RetryDelayMS  int `koanf:"retry_delay_ms"`

	// RawDir holds the per-département captures; ExportDir the final files.
	RawDir    string `koanf:"raw_dir"`
	ExportDir string `koanf:"export_dir"`

	// MetricsFile, when set, receives a Prometheus textfile dump per run.
	MetricsFile string `koanf:"metrics_file"`

	// Hub settings for the dataset registry upload.
	HubEndpoint string `koanf:"hub_endpoint"`
	HubRepo     string `koanf:"hub_repo"`
	HubToken    string `koanf:"hub_token"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Endpoint:         wikidata.DefaultEndpoint,
		UserAgent:        "idfplayers-dataset/1.0 (research project; see repository)",
		Lang:             "fr",
		MinYear:          1980,
		MaxYear:          2006,
		Departments:      []string{"75", "92", "93", "94", "95", "77", "78", "91"},
		RequestDelayMS:   2000,
		RequestTimeoutMS: 120_000,
		RetryAttempts:    3,
		RetryDelayMS:     5000,
		RawDir:           "data/raw",
		ExportDir:        "data/export",
		HubEndpoint:      "https://huggingface.co",
	}
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	if c.Endpoint == "" {
		return errf("endpoint must not be empty")
	}
	if c.MinYear <= 0 || c.MaxYear < c.MinYear {
		return errf("invalid year range %d..%d", c.MinYear, c.MaxYear)
	}
	if len(c.Departments) == 0 {
		return errf("departments must not be empty")
	}
	for _, dept := range c.Departments {
		if !model.KnownDepartment(dept) {
			return errf("unknown département %q", dept)
		}
	}
	return nil
}
