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
	"io"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// Reporter generates markdown reports from dashboard results
type Reporter struct {
	logger *Logger
}

// NewReporter creates a new report generator
func NewReporter(logger *Logger) *Reporter {
	return &Reporter{
		logger: logger,
	}
}

// GenerateReport creates a markdown report from a dashboard result
func (r *Reporter) GenerateReport(result *DashboardResult, outputPath string) error {
	r.logger.Info("Generating report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	r.writeHeader(writer, result)
	r.writeKPIs(writer, result)
	r.writeChartTable(writer, result)
	r.writeFilters(writer, result)
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}

	return nil
}

// writeHeader writes the report header
func (r *Reporter) writeHeader(w io.Writer, result *DashboardResult) {
	fmt.Fprintf(w, "# QuantumGrid - Energy Usage Report\n\n")
	fmt.Fprintf(w, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**Date Range:** %s\n\n", result.DateRange)
	fmt.Fprintf(w, "*%s*\n\n", result.ComparisonPeriod)
	fmt.Fprintf(w, "**gridreport version:** %s\n\n", GetVersion())
	fmt.Fprintf(w, "---\n\n")
}

// writeKPIs writes the key performance metrics section
func (r *Reporter) writeKPIs(w io.Writer, result *DashboardResult) {
	fmt.Fprintf(w, "## 📊 Key Performance Metrics - %s\n\n", result.DateRange)

	fmt.Fprintf(w, "| Metric | Value | YoY |\n")
	fmt.Fprintf(w, "|--------|-------|-----|\n")
	fmt.Fprintf(w, "| ⚡ Total Energy Consumed (kWh) | %s | %s |\n",
		humanize.Comma(int64(math.Round(result.KPIs.TotalEnergy))),
		deltaCell(result.Deltas.Energy),
	)
	fmt.Fprintf(w, "| 🏭 Total Emissions (KgCO2) | %s | %s |\n",
		humanize.Comma(int64(math.Round(result.KPIs.TotalEmissions))),
		deltaCell(result.Deltas.Emissions),
	)
	fmt.Fprintf(w, "| 📉 Emissions Intensity (KgCO2e per kWh) | %s | %s |\n",
		intensityCell(result.KPIs),
		deltaCell(result.Deltas.Intensity),
	)
	fmt.Fprintf(w, "| 🌱 Renewable Emissions Share in KgCO2e (%%) | %s | %s |\n",
		renewableShareCell(result.KPIs),
		deltaCell(result.Deltas.RenewableShare),
	)
	fmt.Fprintf(w, "\n")
}

// writeChartTable writes the wide chart table section
func (r *Reporter) writeChartTable(w io.Writer, result *DashboardResult) {
	table := result.Chart
	if len(table.Months) == 0 {
		return
	}

	fmt.Fprintf(w, "## 📈 Monthly %s\n\n", table.Metric.Label())

	fmt.Fprintf(w, "| Month | %s |\n", strings.Join(table.Columns, " | "))
	fmt.Fprintf(w, "|-------|%s\n", strings.Repeat("-------|", len(table.Columns)))
	for i, month := range table.Months {
		cells := make([]string, len(table.Columns))
		for j := range table.Columns {
			cells[j] = humanize.CommafWithDigits(table.Values[i][j], 2)
		}
		fmt.Fprintf(w, "| %s | %s |\n", month.String(), strings.Join(cells, " | "))
	}
	fmt.Fprintf(w, "\n")
}

// writeFilters writes the active filter selections
func (r *Reporter) writeFilters(w io.Writer, result *DashboardResult) {
	fmt.Fprintf(w, "## 🔍 Active Filters\n\n")
	fmt.Fprintf(w, "| Dimension | Selection |\n")
	fmt.Fprintf(w, "|-----------|----------|\n")
	fmt.Fprintf(w, "| Utility | %s |\n", strings.Join(result.Utilities, ", "))
	fmt.Fprintf(w, "| Scope Type | %s |\n", strings.Join(result.Scopes, ", "))
	fmt.Fprintf(w, "| Division | %s |\n", strings.Join(result.Divisions, ", "))
	fmt.Fprintf(w, "| Renewable Energy | %s |\n", strings.Join(result.Renewable, ", "))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Rows in current period: %d, prior-year period: %d\n\n", result.RowsCurrent, result.RowsPrior)
}

// writeFooter writes the report footer
func (r *Reporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n\n")
	fmt.Fprintf(w, "*The Year-over-Year change compares each metric with the same period one year earlier. ")
	fmt.Fprintf(w, "A value of \"na\" means no prior-year comparison is available for the selection.*\n")
}

// deltaCell renders a YoY delta for display.
func deltaCell(delta string) string {
	if delta == YoYNotApplicable {
		return "na"
	}
	return delta
}

// intensityCell renders the intensity KPI, falling back to the sentinel
// when no energy was consumed in the period.
func intensityCell(kpis KPISet) string {
	if !kpis.IntensityValid {
		return "n/a (no energy consumed)"
	}
	return humanize.CommafWithDigits(roundTo2(kpis.Intensity), 2)
}

// renewableShareCell renders the renewable share KPI with its sentinel.
func renewableShareCell(kpis KPISet) string {
	if !kpis.RenewableShareValid {
		return "n/a (no emissions recorded)"
	}
	return humanize.CommafWithDigits(roundTo2(kpis.RenewableShare), 2) + "%"
}
