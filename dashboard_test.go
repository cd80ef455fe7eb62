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
	"testing"
	"time"
)

func testDashboardConfig() *Config {
	return &Config{
		DataPath:       "test.csv",
		CutoffMonth:    "",
		DateRange:      string(RangeLast3Months),
		ChartMetric:    string(MetricEnergy),
		ChartDimension: string(DimensionUtility),
		CacheTTLHours:  0,
	}
}

func rawFixture() []RawRecord {
	var records []RawRecord
	// Three months of current data and the matching months a year earlier.
	for _, month := range []string{"15/04/2023", "15/05/2023", "15/06/2023"} {
		records = append(records, RawRecord{
			Scope: 2, Renewable: "n", EndDate: month,
			Division: "Metro East", DataType: "Electricity",
			Utility: "Grid Power", ScopeText: "Purchased electricity",
			KWh: 100, KgCO2e: 20,
		})
	}
	for _, month := range []string{"15/04/2022", "15/05/2022", "15/06/2022"} {
		records = append(records, RawRecord{
			Scope: 2, Renewable: "n", EndDate: month,
			Division: "Metro East", DataType: "Electricity",
			Utility: "Grid Power", ScopeText: "Purchased electricity",
			KWh: 50, KgCO2e: 10,
		})
	}
	return records
}

func TestDashboardPrepare(t *testing.T) {
	d := NewDashboard(testDashboardConfig(), NewLogger(false))

	rows := d.Prepare(rawFixture())
	if len(rows) != 6 {
		t.Fatalf("expected 6 fact rows, got %d", len(rows))
	}

	max, err := MaxMonth(rows)
	if err != nil {
		t.Fatal(err)
	}
	if max != (YearMonth{2023, time.June}) {
		t.Errorf("max month = %v, want 2023-06", max)
	}
}

func TestDashboardPrepareSkipsBadDates(t *testing.T) {
	records := rawFixture()
	records = append(records, RawRecord{Scope: 1, Renewable: "n", EndDate: "soon"})

	d := NewDashboard(testDashboardConfig(), NewLogger(false))
	rows := d.Prepare(records)
	if len(rows) != 6 {
		t.Errorf("bad-date record should be dropped, got %d rows", len(rows))
	}
}

func TestDashboardBuild(t *testing.T) {
	d := NewDashboard(testDashboardConfig(), NewLogger(false))
	rows := d.Prepare(rawFixture())

	result, err := d.Build(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.KPIs.TotalEnergy != 300 {
		t.Errorf("TotalEnergy = %v, want 300", result.KPIs.TotalEnergy)
	}
	if result.PriorKPIs.TotalEnergy != 150 {
		t.Errorf("prior TotalEnergy = %v, want 150", result.PriorKPIs.TotalEnergy)
	}
	if result.Deltas.Energy != "100.0% YoY" {
		t.Errorf("energy delta = %q", result.Deltas.Energy)
	}

	wantPeriod := "Comparison Period from: 04-2022 - 06-2022 to 04-2023 - 06-2023"
	if result.ComparisonPeriod != wantPeriod {
		t.Errorf("ComparisonPeriod = %q, want %q", result.ComparisonPeriod, wantPeriod)
	}

	if len(result.Chart.Months) != 3 {
		t.Errorf("chart months = %v", result.Chart.Months)
	}
	if len(result.Chart.Columns) != 1 || result.Chart.Columns[0] != "Grid Power" {
		t.Errorf("chart columns = %v", result.Chart.Columns)
	}

	if result.RowsCurrent != 3 || result.RowsPrior != 3 {
		t.Errorf("row counts = %d / %d", result.RowsCurrent, result.RowsPrior)
	}
	if len(result.Utilities) != 1 || result.Utilities[0] != "Grid Power" {
		t.Errorf("resolved utilities = %v", result.Utilities)
	}
}

func TestDashboardBuildNoPriorData(t *testing.T) {
	// Only current-year data: the prior window matches nothing and the
	// build surfaces the recoverable no-data condition.
	var records []RawRecord
	for _, month := range []string{"15/04/2023", "15/05/2023", "15/06/2023"} {
		records = append(records, RawRecord{
			Scope: 2, Renewable: "n", EndDate: month,
			Division: "Metro East", DataType: "Electricity",
			Utility: "Grid Power", KWh: 100, KgCO2e: 20,
		})
	}

	d := NewDashboard(testDashboardConfig(), NewLogger(false))
	_, err := d.Build(d.Prepare(records))
	if !IsNoData(err) {
		t.Errorf("expected NoDataError, got %v", err)
	}
}

func TestDashboardBuildEmptyTable(t *testing.T) {
	d := NewDashboard(testDashboardConfig(), NewLogger(false))
	_, err := d.Build(nil)
	if !IsNoData(err) {
		t.Errorf("expected NoDataError for empty fact table, got %v", err)
	}
}

func TestDashboardBuildFilterMismatch(t *testing.T) {
	config := testDashboardConfig()
	config.Filters.Utilities = []string{"District Heating"}

	d := NewDashboard(config, NewLogger(false))
	_, err := d.Build(d.Prepare(rawFixture()))
	if !IsNoData(err) {
		t.Errorf("expected NoDataError for non-matching filter, got %v", err)
	}
}

func TestDashboardBuildAllTime(t *testing.T) {
	config := testDashboardConfig()
	config.DateRange = string(RangeAllTime)

	d := NewDashboard(config, NewLogger(false))
	result, err := d.Build(d.Prepare(rawFixture()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All Time sees every row in both windows and suppresses every delta.
	if result.KPIs.TotalEnergy != 450 {
		t.Errorf("TotalEnergy = %v, want 450", result.KPIs.TotalEnergy)
	}
	for _, delta := range []string{result.Deltas.Energy, result.Deltas.Emissions, result.Deltas.Intensity, result.Deltas.RenewableShare} {
		if delta != YoYNotApplicable {
			t.Errorf("All Time delta = %q, want %q", delta, YoYNotApplicable)
		}
	}
}

func TestDashboardBuildCutoff(t *testing.T) {
	config := testDashboardConfig()
	config.CutoffMonth = "2023-06"
	config.DateRange = string(RangeLast1Month)

	d := NewDashboard(config, NewLogger(false))
	rows := d.Prepare(rawFixture())

	// June 2023 is dropped by the cutoff, so May becomes the latest month.
	max, err := MaxMonth(rows)
	if err != nil {
		t.Fatal(err)
	}
	if max != (YearMonth{2023, time.May}) {
		t.Errorf("max month after cutoff = %v, want 2023-05", max)
	}

	result, err := d.Build(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.KPIs.TotalEnergy != 100 {
		t.Errorf("TotalEnergy = %v, want 100", result.KPIs.TotalEnergy)
	}
}
