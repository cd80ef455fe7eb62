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
	"reflect"
	"testing"
	"time"
)

func TestReshapeZeroFillsMissingCells(t *testing.T) {
	// Electricity only appears in January, Gas only in February; the
	// missing intersections must be present as explicit zeros.
	rows := []AggregatedRow{
		{Month: YearMonth{2023, time.January}, Utility: "Electricity", KWh: 100, KgCO2e: 20},
		{Month: YearMonth{2023, time.February}, Utility: "Gas", KWh: 50, KgCO2e: 10},
	}

	table := Reshape(rows, MetricEnergy, DimensionUtility)

	if want := []string{"Electricity", "Gas"}; !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("Columns = %v, want %v", table.Columns, want)
	}
	if len(table.Months) != 2 {
		t.Fatalf("Months = %v", table.Months)
	}

	want := [][]float64{
		{100, 0},
		{0, 50},
	}
	if !reflect.DeepEqual(table.Values, want) {
		t.Errorf("Values = %v, want %v", table.Values, want)
	}
}

func TestReshapeMonthsSortedAscending(t *testing.T) {
	rows := []AggregatedRow{
		{Month: YearMonth{2023, time.March}, Utility: "Electricity", KWh: 3},
		{Month: YearMonth{2023, time.January}, Utility: "Electricity", KWh: 1},
		{Month: YearMonth{2023, time.February}, Utility: "Electricity", KWh: 2},
	}

	table := Reshape(rows, MetricEnergy, DimensionUtility)
	for i := 1; i < len(table.Months); i++ {
		if !table.Months[i-1].Before(table.Months[i]) {
			t.Fatalf("months out of order: %v", table.Months)
		}
	}
	if !reflect.DeepEqual(table.Values, [][]float64{{1}, {2}, {3}}) {
		t.Errorf("Values = %v", table.Values)
	}
}

func TestReshapeNoDimension(t *testing.T) {
	rows := []AggregatedRow{
		{Month: YearMonth{2023, time.January}, Utility: "Electricity", KWh: 100},
		{Month: YearMonth{2023, time.January}, Utility: "Gas", KWh: 50},
	}

	table := Reshape(rows, MetricEnergy, DimensionNone)
	if len(table.Columns) != 1 {
		t.Fatalf("no-dimension pivot should have one column, got %v", table.Columns)
	}
	if table.Columns[0] != MetricEnergy.Label() {
		t.Errorf("column = %q, want %q", table.Columns[0], MetricEnergy.Label())
	}
	if table.Values[0][0] != 150 {
		t.Errorf("collapsed value = %v, want 150", table.Values[0][0])
	}
}

func TestReshapeIntensity(t *testing.T) {
	rows := []AggregatedRow{
		{Month: YearMonth{2023, time.January}, Utility: "Electricity", KWh: 100, KgCO2e: 25},
		// A zero-energy cell: intensity is clamped to zero, not NaN.
		{Month: YearMonth{2023, time.February}, Utility: "Electricity", KWh: 0, KgCO2e: 10},
	}

	table := Reshape(rows, MetricIntensity, DimensionUtility)
	if table.Values[0][0] != 0.25 {
		t.Errorf("intensity = %v, want 0.25", table.Values[0][0])
	}
	if table.Values[1][0] != 0 {
		t.Errorf("zero-energy intensity = %v, want 0", table.Values[1][0])
	}
}

func TestReshapeIntensityAggregatesBeforeDividing(t *testing.T) {
	// Intensity is derived from the summed cell, not averaged per row.
	rows := []AggregatedRow{
		{Month: YearMonth{2023, time.January}, Utility: "Electricity", KWh: 100, KgCO2e: 10},
		{Month: YearMonth{2023, time.January}, Utility: "Electricity", KWh: 300, KgCO2e: 90},
	}

	table := Reshape(rows, MetricIntensity, DimensionUtility)
	// (10+90)/(100+300) = 0.25, not (0.1+0.3)/2.
	if table.Values[0][0] != 0.25 {
		t.Errorf("intensity = %v, want 0.25", table.Values[0][0])
	}
}

func TestReshapeRenewableDimension(t *testing.T) {
	rows := []AggregatedRow{
		{Month: YearMonth{2023, time.January}, Renewable: true, KWh: 40},
		{Month: YearMonth{2023, time.January}, Renewable: false, KWh: 60},
	}

	table := Reshape(rows, MetricEnergy, DimensionRenewable)
	want := []string{NonRenewableSourceLabel, RenewableSourceLabel}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("Columns = %v, want %v", table.Columns, want)
	}
	if table.Values[0][0] != 60 || table.Values[0][1] != 40 {
		t.Errorf("Values = %v", table.Values)
	}
}

func TestReshapeEmpty(t *testing.T) {
	table := Reshape(nil, MetricEnergy, DimensionUtility)
	if len(table.Months) != 0 || len(table.Columns) != 0 || len(table.Values) != 0 {
		t.Errorf("empty input should produce an empty table: %+v", table)
	}
}

func TestChartMetricValidation(t *testing.T) {
	for _, m := range []ChartMetric{MetricEnergy, MetricEmissions, MetricIntensity} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if ChartMetric("joules").Valid() {
		t.Error("unknown metric should be invalid")
	}

	for _, d := range []ChartDimension{DimensionNone, DimensionUtility, DimensionScope, DimensionDivision, DimensionRenewable} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	if ChartDimension("region").Valid() {
		t.Error("unknown dimension should be invalid")
	}
}
