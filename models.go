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
	"time"
)

// RawRecord is one row of the source CSV, prior to any enrichment.
// Missing numeric measures are carried as zero; a missing or unparseable
// scope code is carried as -1 so it lands in the invalid-scope category.
// Line is the 1-based source line the record came from.
type RawRecord struct {
	Line      int     `json:"-"`
	Scope     int     `json:"scope"`
	Renewable string  `json:"renewable"`
	EndDate   string  `json:"end_date"`
	Division  string  `json:"division"`
	DataType  string  `json:"data_type"`
	Utility   string  `json:"utility"`
	ScopeText string  `json:"scope_text"`
	KWh       float64 `json:"kwh"`
	KgCO2e    float64 `json:"kgco2e"`
}

// NormalizedRecord is a RawRecord with its derived categorical fields and
// the canonical month key.
type NormalizedRecord struct {
	Month            YearMonth `json:"month"`
	Division         string    `json:"division"`
	ScopeDescription string    `json:"scope_description"`
	Renewable        bool      `json:"renewable"`
	DataType         string    `json:"data_type"`
	Utility          string    `json:"utility"`
	ScopeText        string    `json:"scope_text"`
	KWh              float64   `json:"kwh"`
	KgCO2e           float64   `json:"kgco2e"`
}

// AggregatedRow is one row of the monthly fact table: a unique dimension
// combination with both measures summed across contributing records.
type AggregatedRow struct {
	Month            YearMonth `json:"month"`
	Division         string    `json:"division"`
	ScopeDescription string    `json:"scope_description"`
	Renewable        bool      `json:"renewable"`
	DataType         string    `json:"data_type"`
	Utility          string    `json:"utility"`
	ScopeText        string    `json:"scope_text"`
	KWh              float64   `json:"kwh"`
	KgCO2e           float64   `json:"kgco2e"`
}

// DateWindow is an inclusive month range. An unbounded window (Bounded
// false) matches every month; it is produced only by the All Time range.
type DateWindow struct {
	Start   YearMonth `json:"start"`
	End     YearMonth `json:"end"`
	Bounded bool      `json:"bounded"`
}

// Contains reports whether m falls inside the window.
func (w DateWindow) Contains(m YearMonth) bool {
	if !w.Bounded {
		return true
	}
	return !m.Before(w.Start) && !m.After(w.End)
}

// KPISet holds the four scalar metrics for one filtered period. Intensity
// and renewable share carry validity flags instead of NaN when their
// denominator is zero.
type KPISet struct {
	TotalEnergy         float64 `json:"totalEnergy"`    // kWh
	TotalEmissions      float64 `json:"totalEmissions"` // kgCO2e
	Intensity           float64 `json:"intensity"`      // kgCO2e per kWh
	IntensityValid      bool    `json:"intensityValid"`
	RenewableShare      float64 `json:"renewableShare"` // percent of emissions
	RenewableShareValid bool    `json:"renewableShareValid"`
}

// KPIDeltas holds the four year-over-year delta strings. Each is either a
// formatted percentage ("12.34% YoY") or the "na" sentinel.
type KPIDeltas struct {
	Energy         string `json:"energy"`
	Emissions      string `json:"emissions"`
	Intensity      string `json:"intensity"`
	RenewableShare string `json:"renewableShare"`
}

// WideTable is the chart-ready pivot of the filtered fact table: one row
// per month, one column per series. Values[i][j] is month i, series j;
// cells for combinations absent from the source are zero-filled.
type WideTable struct {
	Metric  ChartMetric `json:"metric"`
	Months  []YearMonth `json:"months"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// DashboardResult is the complete output of one dashboard build.
type DashboardResult struct {
	GeneratedAt      time.Time  `json:"generatedAt"`
	DateRange        RangeName  `json:"dateRange"`
	CurrentWindow    DateWindow `json:"currentWindow"`
	PriorYearWindow  DateWindow `json:"priorYearWindow"`
	ComparisonPeriod string     `json:"comparisonPeriod"`

	KPIs      KPISet    `json:"kpis"`
	PriorKPIs KPISet    `json:"priorKpis"`
	Deltas    KPIDeltas `json:"deltas"`

	Chart WideTable `json:"chart"`

	// Filter context, resolved to the concrete values that were applied
	Utilities []string `json:"utilities"`
	Scopes    []string `json:"scopes"`
	Divisions []string `json:"divisions"`
	Renewable []string `json:"renewable"`

	RowsCurrent int `json:"rowsCurrent"`
	RowsPrior   int `json:"rowsPrior"`

	// Charts (base64 encoded PNG images)
	BarChart  string `json:"barChart,omitempty"`
	LineChart string `json:"lineChart,omitempty"`
}
