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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFactTableCacheRespectsAggregateOptions(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "usage.csv")
	content := loaderHeader +
		"2,n,15/12/2023,East,Electricity,Grid Power,text,100,20\n" +
		"2,n,15/01/2024,East,Electricity,Grid Power,text,50,10\n"
	if err := os.WriteFile(dataPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	logger := NewLogger(false)
	config := &Config{
		DataPath:      dataPath,
		CutoffMonth:   "",
		DateRange:     string(RangeLast12Months),
		ChartMetric:   string(MetricEnergy),
		StoragePath:   filepath.Join(dir, "store"),
		CacheTTLHours: 24,
	}

	storage, err := NewStorage(config.StoragePath, "usage", logger)
	if err != nil {
		t.Fatal(err)
	}
	defer storage.Close()

	dashboard := NewDashboard(config, logger)

	// First run with the cutoff disabled populates the cache with both
	// months.
	rows, err := loadFactTable(config, logger, storage, dashboard, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows without cutoff, got %d", len(rows))
	}

	// Enabling the cutoff within the cache TTL must not reuse the table
	// built without it.
	config.CutoffMonth = "2024-01"
	rows, err = loadFactTable(config, logger, storage, dashboard, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row with cutoff 2024-01, got %d", len(rows))
	}
	for _, row := range rows {
		if !row.Month.Before(YearMonth{2024, time.January}) {
			t.Errorf("cutoff 2024-01 configured, but table contains month %v", row.Month)
		}
	}

	// Disabling it again restores the full table.
	config.CutoffMonth = ""
	rows, err = loadFactTable(config, logger, storage, dashboard, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows with cutoff disabled again, got %d", len(rows))
	}
}

func TestFactTableCacheKey(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "usage.csv")
	if err := os.WriteFile(dataPath, []byte(loaderHeader), 0644); err != nil {
		t.Fatal(err)
	}

	base := &Config{DataPath: dataPath}
	withCutoff := &Config{DataPath: dataPath, CutoffMonth: "2024-01"}
	noGrouping := &Config{DataPath: dataPath, GroupScopeText: new(bool)}

	baseKey := factTableCacheKey(base)
	if baseKey == "" {
		t.Fatal("expected a key for an existing file")
	}
	if factTableCacheKey(withCutoff) == baseKey {
		t.Error("cutoff_month must change the cache key")
	}
	if factTableCacheKey(noGrouping) == baseKey {
		t.Error("group_scope_text must change the cache key")
	}

	missing := &Config{DataPath: filepath.Join(t.TempDir(), "absent.csv")}
	if factTableCacheKey(missing) != "" {
		t.Error("missing file should produce no key")
	}
}

func TestDatasetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data.csv", "data"},
		{"/var/lib/gridreport/usage.csv", "usage"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := datasetName(tt.path); got != tt.want {
			t.Errorf("datasetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
