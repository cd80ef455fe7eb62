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
	"html"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// HTMLReporter generates self-contained HTML dashboard reports
type HTMLReporter struct {
	logger *Logger
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger,
	}
}

// GenerateHTMLReport writes the dashboard as a single HTML file with the
// chart images embedded, so it can be opened or mailed as-is.
func (r *HTMLReporter) GenerateHTMLReport(result *DashboardResult, outputPath string) error {
	if outputPath == "" {
		outputPath = "gridreport.html"
	}

	r.logger.Info("Generating HTML report", "path", outputPath)

	var sb strings.Builder
	sb.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	sb.WriteString("<title>QuantumGrid - Energy Usage Report</title>")
	sb.WriteString(`<style>
body{font-family:-apple-system,Segoe UI,Arial,sans-serif;background:#1a1d23;color:#e8eaed;margin:0;padding:24px}
h1{font-size:24px} h2{font-size:18px;margin-top:32px}
.subtitle{color:#9aa0a6;font-style:italic}
.cards{display:flex;gap:16px;flex-wrap:wrap;margin-top:16px}
.card{background:#24282f;border-radius:8px;padding:16px 20px;min-width:220px}
.card .label{color:#9aa0a6;font-size:13px}
.card .value{font-size:28px;font-weight:600;margin:6px 0}
.card .delta{font-size:13px}
.delta.up{color:#f28b82}.delta.down{color:#81c995}.delta.na{color:#9aa0a6}
table{border-collapse:collapse;margin-top:12px}
td,th{border:1px solid #3c4043;padding:6px 12px;text-align:right}
th{background:#24282f}td.left,th.left{text-align:left}
img.chart{max-width:100%;margin-top:12px;border-radius:8px}
footer{margin-top:40px;color:#9aa0a6;font-size:12px}
</style></head><body>`)

	sb.WriteString("<h1>QuantumGrid - Energy Usage Report</h1>")
	sb.WriteString(fmt.Sprintf("<div class='subtitle'>%s &middot; %s</div>",
		html.EscapeString(string(result.DateRange)),
		html.EscapeString(result.ComparisonPeriod)))

	// KPI cards
	sb.WriteString("<div class='cards'>")
	r.writeCard(&sb, "Total Energy Consumed (kWh)",
		humanize.Comma(int64(math.Round(result.KPIs.TotalEnergy))), result.Deltas.Energy)
	r.writeCard(&sb, "Total Emissions (KgCO2)",
		humanize.Comma(int64(math.Round(result.KPIs.TotalEmissions))), result.Deltas.Emissions)
	r.writeCard(&sb, "Emissions Intensity (KgCO2e per kWh)",
		intensityCell(result.KPIs), result.Deltas.Intensity)
	r.writeCard(&sb, "Renewable Emissions Share (%)",
		renewableShareCell(result.KPIs), result.Deltas.RenewableShare)
	sb.WriteString("</div>")

	// Charts
	if result.BarChart != "" {
		sb.WriteString("<h2>Bar Chart</h2>")
		sb.WriteString(fmt.Sprintf("<img class='chart' src='data:image/png;base64,%s' alt='bar chart'/>", result.BarChart))
	}
	if result.LineChart != "" {
		sb.WriteString("<h2>Line Chart</h2>")
		sb.WriteString(fmt.Sprintf("<img class='chart' src='data:image/png;base64,%s' alt='line chart'/>", result.LineChart))
	}

	// Chart data table
	if len(result.Chart.Months) > 0 {
		sb.WriteString(fmt.Sprintf("<h2>Monthly %s</h2>", html.EscapeString(result.Chart.Metric.Label())))
		sb.WriteString("<table><tr><th class='left'>Month</th>")
		for _, col := range result.Chart.Columns {
			sb.WriteString("<th>" + html.EscapeString(col) + "</th>")
		}
		sb.WriteString("</tr>")
		for i, month := range result.Chart.Months {
			sb.WriteString("<tr><td class='left'>" + month.String() + "</td>")
			for j := range result.Chart.Columns {
				sb.WriteString("<td>" + humanize.CommafWithDigits(result.Chart.Values[i][j], 2) + "</td>")
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</table>")
	}

	// Active filters
	sb.WriteString("<h2>Active Filters</h2><table>")
	r.writeFilterRow(&sb, "Utility", result.Utilities)
	r.writeFilterRow(&sb, "Scope Type", result.Scopes)
	r.writeFilterRow(&sb, "Division", result.Divisions)
	r.writeFilterRow(&sb, "Renewable Energy", result.Renewable)
	sb.WriteString("</table>")

	sb.WriteString(fmt.Sprintf("<footer>Generated %s &middot; gridreport %s</footer>",
		result.GeneratedAt.Format("2006-01-02 15:04:05"), GetVersion()))
	sb.WriteString("</body></html>")

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return &StorageError{
			Operation: "write_html_report",
			Path:      outputPath,
			Err:       err,
		}
	}

	r.logger.Info("HTML report saved", "path", outputPath)
	return nil
}

// writeCard emits one KPI card with its delta styled by direction.
func (r *HTMLReporter) writeCard(sb *strings.Builder, label, value, delta string) {
	class := "na"
	display := "na"
	if delta != YoYNotApplicable {
		display = delta
		if strings.HasPrefix(delta, "-") {
			class = "down"
		} else {
			class = "up"
		}
	}
	sb.WriteString("<div class='card'>")
	sb.WriteString("<div class='label'>" + html.EscapeString(label) + "</div>")
	sb.WriteString("<div class='value'>" + html.EscapeString(value) + "</div>")
	sb.WriteString("<div class='delta " + class + "'>" + html.EscapeString(display) + "</div>")
	sb.WriteString("</div>")
}

// writeFilterRow emits one filter dimension with its selected values.
func (r *HTMLReporter) writeFilterRow(sb *strings.Builder, label string, values []string) {
	sb.WriteString("<tr><th class='left'>" + html.EscapeString(label) + "</th><td class='left'>" +
		html.EscapeString(strings.Join(values, ", ")) + "</td></tr>")
}
