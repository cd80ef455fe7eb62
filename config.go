// Copyright 2025 The gridreport Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterConfig holds the categorical filter selections. An empty list for
// a dimension means every observed value is included.
type FilterConfig struct {
	Utilities []string `yaml:"utilities"`
	Scopes    []string `yaml:"scopes"`
	Divisions []string `yaml:"divisions"`
	Renewable []string `yaml:"renewable"` // display labels, e.g. "Renewable Source"
}

// Config holds the application configuration
type Config struct {
	// Data source
	DataPath string `yaml:"data_path"`

	// Pipeline settings
	CutoffMonth    string `yaml:"cutoff_month"`     // "YYYY-MM"; rows at or after it are dropped; empty disables
	GroupScopeText *bool  `yaml:"group_scope_text"` // nil defaults to true
	DateRange      string `yaml:"date_range"`

	// Dashboard options
	ChartMetric    string       `yaml:"chart_metric"`    // kwh | kgco2e | kgco2e_per_kwh
	ChartDimension string       `yaml:"chart_dimension"` // "" | utility | scope | division | renewable
	Filters        FilterConfig `yaml:"filters"`

	// Storage
	StoragePath   string `yaml:"storage_path"`
	CacheTTLHours int    `yaml:"cache_ttl_hours"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		DataPath:      "data.csv",
		CutoffMonth:   "2024-01",
		DateRange:     string(RangeLast12Months),
		ChartMetric:   string(MetricEnergy),
		StoragePath:   getDefaultStoragePath(),
		CacheTTLHours: 24,
		Debug:         false,
	}

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// getDefaultStoragePath returns the default storage path
func getDefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gridreport"
	}
	return filepath.Join(home, ".config", "gridreport")
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("GRIDREPORT_DATA"); val != "" {
		c.DataPath = val
	}
	if val := os.Getenv("GRIDREPORT_STORAGE_PATH"); val != "" {
		c.StoragePath = val
	}
	if val := os.Getenv("GRIDREPORT_DATE_RANGE"); val != "" {
		c.DateRange = val
	}
	if val := os.Getenv("GRIDREPORT_CUTOFF_MONTH"); val != "" {
		c.CutoffMonth = val
	}
	if val := os.Getenv("GRIDREPORT_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.DataPath == "" {
		errors = append(errors, "data_path is required")
	}

	if !RangeName(c.DateRange).Valid() {
		errors = append(errors, fmt.Sprintf("date_range %q is not recognized (expected one of: %s)", c.DateRange, joinRangeNames()))
	}

	if !ChartMetric(c.ChartMetric).Valid() {
		errors = append(errors, fmt.Sprintf("chart_metric %q is not recognized (expected kwh, kgco2e or kgco2e_per_kwh)", c.ChartMetric))
	}

	if !ChartDimension(c.ChartDimension).Valid() {
		errors = append(errors, fmt.Sprintf("chart_dimension %q is not recognized (expected utility, scope, division, renewable or empty)", c.ChartDimension))
	}

	if c.CutoffMonth != "" {
		if _, err := ParseYearMonth(c.CutoffMonth); err != nil {
			errors = append(errors, fmt.Sprintf("cutoff_month %q is not a valid YYYY-MM value", c.CutoffMonth))
		}
	}

	for _, label := range c.Filters.Renewable {
		if _, ok := ParseRenewableLabel(label); !ok {
			errors = append(errors, fmt.Sprintf("filters.renewable value %q is not recognized (expected %q or %q)", label, RenewableSourceLabel, NonRenewableSourceLabel))
		}
	}

	if c.CacheTTLHours < 0 {
		errors = append(errors, "cache_ttl_hours must not be negative")
	}

	// Set default storage path if empty
	if c.StoragePath == "" {
		c.StoragePath = getDefaultStoragePath()
	}

	if len(errors) > 0 {
		return &ConfigError{Field: "config", Message: strings.Join(errors, "; ")}
	}

	return nil
}

// AggregateOptions derives the aggregation settings from the config.
// Validate must have accepted the config first.
func (c *Config) AggregateOptions() AggregateOptions {
	opts := AggregateOptions{GroupScopeText: true}
	if c.GroupScopeText != nil {
		opts.GroupScopeText = *c.GroupScopeText
	}
	if c.CutoffMonth != "" {
		if cutoff, err := ParseYearMonth(c.CutoffMonth); err == nil {
			opts.CutoffMonth = cutoff
			opts.HasCutoff = true
		}
	}
	return opts
}

// RenewableFilter translates the configured renewable display labels into
// canonical flags. Unrecognized labels were already rejected by Validate.
func (c *Config) RenewableFilter() []bool {
	var flags []bool
	for _, label := range c.Filters.Renewable {
		if flag, ok := ParseRenewableLabel(label); ok {
			flags = append(flags, flag)
		}
	}
	return flags
}

func joinRangeNames() string {
	names := make([]string, len(RangeNames))
	for i, r := range RangeNames {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
