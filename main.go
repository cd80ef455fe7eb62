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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	dataPath := flag.String("data", "", "Path to source CSV (overrides config)")
	dateRange := flag.String("range", "", "Date range selection (overrides config)")
	metric := flag.String("metric", "", "Chart metric: kwh, kgco2e or kgco2e_per_kwh (overrides config)")
	dimension := flag.String("dimension", "", "Chart dimension: utility, scope, division or renewable (overrides config)")
	outputPath := flag.String("output", "", "Output file for report (default: stdout)")
	htmlOutput := flag.Bool("html", false, "Generate HTML report instead of Markdown")
	exportPath := flag.String("export", "", "Export the aggregated fact table as CSV to this path ('auto' for a date-stamped name)")
	noCache := flag.Bool("no-cache", false, "Skip the aggregated-table cache")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("gridreport %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting gridreport", "version", GetVersion())

	// Load configuration
	logger.Info("Loading configuration", "config_file", *configPath)
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override with command-line flags
	if *dataPath != "" {
		config.DataPath = *dataPath
	}
	if *dateRange != "" {
		config.DateRange = *dateRange
	}
	if *metric != "" {
		config.ChartMetric = *metric
	}
	if *dimension != "" {
		config.ChartDimension = *dimension
	}
	if *debug {
		config.Debug = true
		// Recreate logger with debug enabled
		logger = NewLogger(true)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded successfully")

	dataset := datasetName(config.DataPath)

	// Initialize storage
	logger.Info("Initializing storage", "path", config.StoragePath)
	storage, err := NewStorage(config.StoragePath, dataset, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// Create dashboard pipeline
	logger.Info("Initializing dashboard pipeline")
	dashboard := NewDashboard(config, logger)

	// Build the fact table, from cache when the source file is unchanged
	rows, err := loadFactTable(config, logger, storage, dashboard, *noCache)
	if err != nil {
		logger.Error("Failed to build fact table", "error", err)
		os.Exit(1)
	}

	// Export the fact table if requested
	if *exportPath != "" {
		path := *exportPath
		if path == "auto" {
			path = DefaultExportName(time.Now())
		}
		exporter := NewExporter(logger)
		if err := exporter.Export(rows, path); err != nil {
			logger.Error("Failed to export fact table", "error", err)
			os.Exit(1)
		}
	}

	// Build the dashboard
	logger.Info("Building dashboard", "range", config.DateRange)
	result, err := dashboard.Build(rows)
	if err != nil {
		if IsNoData(err) {
			logger.UserMessage("No data available for those filter selections.")
			os.Exit(0)
		}
		logger.Error("Failed to build dashboard", "error", err)
		os.Exit(1)
	}

	// Save dashboard snapshot
	logger.Info("Saving dashboard snapshot")
	if err := storage.SaveDashboardResult(result, dataset); err != nil {
		logger.Warn("Failed to save dashboard snapshot", "error", err)
	}

	// Generate report (HTML or Markdown)
	if *htmlOutput {
		logger.Info("Generating HTML report")
		htmlReporter := NewHTMLReporter(logger)
		if err := htmlReporter.GenerateHTMLReport(result, *outputPath); err != nil {
			logger.Error("Failed to generate HTML report", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("Generating Markdown report")
		reporter := NewReporter(logger)
		if err := reporter.GenerateReport(result, *outputPath); err != nil {
			logger.Error("Failed to generate report", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Dashboard completed successfully")
}

// loadFactTable returns the aggregated fact table, preferring the cached
// copy when the source file has not changed since it was built.
func loadFactTable(config *Config, logger *Logger, storage *Storage, dashboard *Dashboard, noCache bool) ([]AggregatedRow, error) {
	cacheKey := factTableCacheKey(config)

	if !noCache && cacheKey != "" {
		var cached []AggregatedRow
		if hit, err := storage.LoadCache(cacheKey, &cached); err != nil {
			logger.Warn("Failed to read fact-table cache", "error", err)
		} else if hit {
			logger.Info("Using cached fact table", "rows", len(cached))
			return cached, nil
		}
	}

	loader := NewLoader(logger)
	records, err := loader.Load(config.DataPath)
	if err != nil {
		return nil, err
	}

	rows := dashboard.Prepare(records)

	if !noCache && cacheKey != "" && config.CacheTTLHours > 0 {
		ttl := time.Duration(config.CacheTTLHours) * time.Hour
		if err := storage.SaveCache(cacheKey, rows, ttl); err != nil {
			logger.Warn("Failed to cache fact table", "error", err)
		}
	}

	return rows, nil
}

// factTableCacheKey keys the cached fact table on the source path, its
// modification time and the aggregation settings, so both edits to the CSV
// and changes to cutoff_month or group_scope_text invalidate the cache.
func factTableCacheKey(config *Config) string {
	info, err := os.Stat(config.DataPath)
	if err != nil {
		return ""
	}

	opts := config.AggregateOptions()
	cutoff := "none"
	if opts.HasCutoff {
		cutoff = opts.CutoffMonth.String()
	}
	return fmt.Sprintf("fact_table_%s_%d_%s_%t",
		filepath.Base(config.DataPath), info.ModTime().Unix(), cutoff, opts.GroupScopeText)
}

// datasetName derives the storage dataset name from the data file.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
