// Package config defines the canonical configuration model for the education
// statistics pipeline. It is intentionally small and explicit: the config is
// decoded once from a YAML file and the resulting value is passed into each
// component's constructor. There is no process-wide configuration singleton.
//
// Example (trimmed):
//
//	job: education_stats
//	source:
//	  base_url: https://stats.oecd.org/SDMX-JSON/data/
//	  datasets:
//	    enrollment: EDU_ENRL
//	    graduation: EDU_GRAD
//	    spending:   EDU_FIN
//	  start_period: "2000"
//	  end_period:   "2023"
//	clean:
//	  year_min: 2000
//	  year_max: 2023
//	database:
//	  kind: sqlite
//	  dsn:  data/education.db
//	  tables:
//	    enrollment: education_enrollment
//	    graduation: education_graduation
//	    spending:   education_spending
//	    countries:  country_metadata
//	output:
//	  dir: data/processed
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level object decoded from a pipeline config file.
type Config struct {
	// Job is the logical run name, used for metrics labeling and logs.
	Job string `yaml:"job"`

	Source   Source   `yaml:"source"`
	Clean    Clean    `yaml:"clean"`
	Database Database `yaml:"database"`
	Output   Output   `yaml:"output"`
	Metrics  Metrics  `yaml:"metrics"`
}

// Source describes the upstream statistical API.
type Source struct {
	// BaseURL is the API prefix; the dataset code is appended to it.
	BaseURL string `yaml:"base_url"`

	// Datasets maps the logical dataset kind to its upstream dataset code.
	Datasets Datasets `yaml:"datasets"`

	// StartPeriod / EndPeriod bound the reporting window requested upstream.
	StartPeriod string `yaml:"start_period"`
	EndPeriod   string `yaml:"end_period"`

	// TimeoutSeconds is the fixed per-fetch deadline. Zero means 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Datasets names the upstream dataset codes, one per dataset kind.
type Datasets struct {
	Enrollment string `yaml:"enrollment"`
	Graduation string `yaml:"graduation"`
	Spending   string `yaml:"spending"`
}

// Clean holds cleaner settings shared by every dataset kind.
type Clean struct {
	// YearMin/YearMax define the valid reporting window; rows with a year
	// outside [YearMin, YearMax] are dropped.
	YearMin int `yaml:"year_min"`
	YearMax int `yaml:"year_max"`
}

// Database selects the storage backend and the destination table names.
type Database struct {
	// Kind selects the storage backend: "sqlite", "postgres", "mysql", "mssql".
	Kind string `yaml:"kind"`

	// DSN is the backend connection string. For sqlite this is a file path
	// (or ":memory:"); for the server backends a full DSN.
	DSN string `yaml:"dsn"`

	Tables Tables `yaml:"tables"`
}

// Tables holds the four destination table names.
type Tables struct {
	Enrollment string `yaml:"enrollment"`
	Graduation string `yaml:"graduation"`
	Spending   string `yaml:"spending"`
	Countries  string `yaml:"countries"`
}

// Output configures where intermediate artifacts (cleaned CSVs, run metadata)
// are written. An empty Dir disables artifact output.
type Output struct {
	Dir string `yaml:"dir"`
}

// Metrics configures the optional metrics backend. Flags/env in main take
// precedence over these values.
type Metrics struct {
	// Backend: "pushgateway", "datadog", or "none"/empty.
	Backend string `yaml:"backend"`

	// PushgatewayURL is the Prometheus Pushgateway base URL.
	PushgatewayURL string `yaml:"pushgateway_url"`

	// DogstatsdAddr is the DogStatsD address, e.g. "127.0.0.1:8125".
	DogstatsdAddr string `yaml:"dogstatsd_addr"`
}

// Default values applied by Load for fields left unset.
const (
	DefaultYearMin        = 2000
	DefaultYearMax        = 2023
	DefaultTimeoutSeconds = 30
)

// Load reads and decodes a YAML config file and applies defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Clean.YearMin == 0 {
		c.Clean.YearMin = DefaultYearMin
	}
	if c.Clean.YearMax == 0 {
		c.Clean.YearMax = DefaultYearMax
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Source.StartPeriod == "" {
		c.Source.StartPeriod = fmt.Sprintf("%d", c.Clean.YearMin)
	}
	if c.Source.EndPeriod == "" {
		c.Source.EndPeriod = fmt.Sprintf("%d", c.Clean.YearMax)
	}
}

// Timeout returns the fetch deadline as a duration.
func (s Source) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
