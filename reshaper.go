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
	"sort"
)

// ChartMetric selects which measure the wide table carries.
type ChartMetric string

const (
	MetricEnergy    ChartMetric = "kwh"
	MetricEmissions ChartMetric = "kgco2e"
	MetricIntensity ChartMetric = "kgco2e_per_kwh"
)

// Valid reports whether m is a recognized chart metric.
func (m ChartMetric) Valid() bool {
	switch m {
	case MetricEnergy, MetricEmissions, MetricIntensity:
		return true
	}
	return false
}

// Label returns the metric's display name.
func (m ChartMetric) Label() string {
	switch m {
	case MetricEnergy:
		return "kWh"
	case MetricEmissions:
		return "kgCO2e"
	case MetricIntensity:
		return "kgCO2e per kWh"
	}
	return string(m)
}

// ChartDimension selects the categorical field the wide table splits on.
// The empty dimension collapses to a single series per month.
type ChartDimension string

const (
	DimensionNone      ChartDimension = ""
	DimensionUtility   ChartDimension = "utility"
	DimensionScope     ChartDimension = "scope"
	DimensionDivision  ChartDimension = "division"
	DimensionRenewable ChartDimension = "renewable"
)

// Valid reports whether d is a recognized chart dimension.
func (d ChartDimension) Valid() bool {
	switch d {
	case DimensionNone, DimensionUtility, DimensionScope, DimensionDivision, DimensionRenewable:
		return true
	}
	return false
}

// value extracts the dimension's display value from a fact row.
func (d ChartDimension) value(row AggregatedRow) string {
	switch d {
	case DimensionUtility:
		return row.Utility
	case DimensionScope:
		return row.ScopeDescription
	case DimensionDivision:
		return row.Division
	case DimensionRenewable:
		return RenewableLabel(row.Renewable)
	}
	return ""
}

// measureCell accumulates both base measures for one (month, column) cell
// so intensity can be derived after summation.
type measureCell struct {
	kwh    float64
	kgco2e float64
}

// metricValue derives the requested metric from a summed cell. Intensity
// on a zero-energy cell is clamped to 0, not NaN, so chart series stay
// plottable.
func (c measureCell) metricValue(metric ChartMetric) float64 {
	switch metric {
	case MetricEnergy:
		return c.kwh
	case MetricEmissions:
		return c.kgco2e
	case MetricIntensity:
		if c.kwh == 0 {
			return 0
		}
		return roundTo2(c.kgco2e / c.kwh)
	}
	return 0
}

// Reshape pivots the filtered fact table from long to wide form: one row
// per month, one column per dimension value (or a single metric column
// when no dimension is selected). Every (month, column) intersection is
// present; combinations absent from the source are zero-filled so chart
// series stay aligned.
func Reshape(rows []AggregatedRow, metric ChartMetric, dimension ChartDimension) WideTable {
	type cellKey struct {
		month  YearMonth
		column string
	}

	cells := make(map[cellKey]*measureCell)
	monthSeen := make(map[YearMonth]bool)
	columnSeen := make(map[string]bool)

	singleColumn := metric.Label()

	for _, row := range rows {
		column := singleColumn
		if dimension != DimensionNone {
			column = dimension.value(row)
		}

		key := cellKey{month: row.Month, column: column}
		cell, ok := cells[key]
		if !ok {
			cell = &measureCell{}
			cells[key] = cell
		}
		cell.kwh += row.KWh
		cell.kgco2e += row.KgCO2e

		monthSeen[row.Month] = true
		columnSeen[column] = true
	}

	months := make([]YearMonth, 0, len(monthSeen))
	for m := range monthSeen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	columns := make([]string, 0, len(columnSeen))
	for c := range columnSeen {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	values := make([][]float64, len(months))
	for i, m := range months {
		values[i] = make([]float64, len(columns))
		for j, c := range columns {
			if cell, ok := cells[cellKey{month: m, column: c}]; ok {
				values[i][j] = cell.metricValue(metric)
			}
		}
	}

	return WideTable{
		Metric:  metric,
		Months:  months,
		Columns: columns,
		Values:  values,
	}
}
