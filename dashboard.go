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
	"time"
)

// Dashboard runs the transformation and comparison pipeline over the fact
// table. The fact table itself is treated as an immutable value: every
// stage returns new data and nothing mutates session state in place.
type Dashboard struct {
	config *Config
	logger *Logger
	charts *ChartGenerator
}

// NewDashboard creates a new dashboard pipeline
func NewDashboard(config *Config, logger *Logger) *Dashboard {
	return &Dashboard{
		config: config,
		logger: logger.WithComponent("dashboard"),
		charts: NewChartGenerator(),
	}
}

// Prepare normalizes raw records and aggregates them into the monthly
// fact table. Records with unparseable dates are skipped and counted.
func (d *Dashboard) Prepare(records []RawRecord) []AggregatedRow {
	normalized := make([]NormalizedRecord, 0, len(records))
	skipped := 0
	for _, raw := range records {
		rec, err := Normalize(raw)
		if err != nil {
			skipped++
			d.logger.LogRowSkipped(raw.Line, err)
			continue
		}
		normalized = append(normalized, rec)
	}
	if skipped > 0 {
		d.logger.Warn("Records dropped during normalization", "skipped", skipped)
	}
	d.logger.LogPipelineStage("normalize")

	rows := Aggregate(normalized, d.config.AggregateOptions())
	d.logger.LogPipelineStage("aggregate")
	d.logger.Info("Fact table built", "rows", len(rows))

	return rows
}

// Build filters the fact table for the current and prior-year windows and
// derives KPIs, deltas and the chart table. It returns a NoDataError when
// either window matches nothing; callers present that to the user rather
// than compute on an empty table.
func (d *Dashboard) Build(rows []AggregatedRow) (*DashboardResult, error) {
	selection := RangeName(d.config.DateRange)

	maxMonth, err := MaxMonth(rows)
	if err != nil {
		return nil, err
	}

	current, priorYear, err := ResolveWindows(maxMonth, selection)
	if err != nil {
		return nil, err
	}
	d.logger.LogPipelineStage("resolve_windows")

	filters := NewFilterSelection(rows,
		d.config.Filters.Utilities,
		d.config.Filters.Scopes,
		d.config.Filters.Divisions,
		d.config.RenewableFilter(),
	)

	currentRows := FilterRows(rows, current, filters)
	d.logger.LogFilterResult(current, len(currentRows))
	priorRows := FilterRows(rows, priorYear, filters)
	d.logger.LogFilterResult(priorYear, len(priorRows))
	d.logger.LogPipelineStage("filter")

	if len(currentRows) == 0 {
		return nil, &NoDataError{Stage: "filter", Message: "no data available for those filter selections"}
	}
	if len(priorRows) == 0 {
		return nil, &NoDataError{Stage: "filter", Message: "no prior-year data available for those filter selections"}
	}

	kpis, err := ComputeKPIs(currentRows)
	if err != nil {
		return nil, err
	}
	priorKPIs, err := ComputeKPIs(priorRows)
	if err != nil {
		return nil, err
	}
	deltas := ComputeDeltas(kpis, priorKPIs, selection)
	d.logger.LogPipelineStage("metrics")

	chart := Reshape(currentRows, ChartMetric(d.config.ChartMetric), ChartDimension(d.config.ChartDimension))
	d.logger.LogPipelineStage("reshape")

	result := &DashboardResult{
		GeneratedAt:      time.Now(),
		DateRange:        selection,
		CurrentWindow:    current,
		PriorYearWindow:  priorYear,
		ComparisonPeriod: comparisonPeriod(currentRows, priorRows),
		KPIs:             kpis,
		PriorKPIs:        priorKPIs,
		Deltas:           deltas,
		Chart:            chart,
		Utilities:        filters.Utilities,
		Scopes:           filters.Scopes,
		Divisions:        filters.Divisions,
		Renewable:        filters.RenewableLabels(),
		RowsCurrent:      len(currentRows),
		RowsPrior:        len(priorRows),
	}

	if bar, err := d.charts.GenerateBarChart(chart); err != nil {
		d.logger.Warn("Failed to render bar chart", "error", err)
	} else {
		result.BarChart = bar
	}
	if line, err := d.charts.GenerateLineChart(chart); err != nil {
		d.logger.Warn("Failed to render line chart", "error", err)
	} else {
		result.LineChart = line
	}
	d.logger.LogPipelineStage("charts")

	return result, nil
}

// comparisonPeriod builds the headline describing which two spans of data
// are being compared, using the months actually present in each filtered
// set rather than the nominal window bounds.
func comparisonPeriod(currentRows, priorRows []AggregatedRow) string {
	curMin, curMax := monthSpan(currentRows)
	priorMin, priorMax := monthSpan(priorRows)
	return fmt.Sprintf("Comparison Period from: %s - %s to %s - %s",
		priorMin.Display(), priorMax.Display(),
		curMin.Display(), curMax.Display(),
	)
}

// monthSpan returns the earliest and latest month in a set of rows.
func monthSpan(rows []AggregatedRow) (min, max YearMonth) {
	if len(rows) == 0 {
		return YearMonth{}, YearMonth{}
	}
	min, max = rows[0].Month, rows[0].Month
	for _, row := range rows[1:] {
		if row.Month.Before(min) {
			min = row.Month
		}
		if row.Month.After(max) {
			max = row.Month
		}
	}
	return min, max
}
