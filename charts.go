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
	"encoding/base64"
	"fmt"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator handles chart generation
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match our HTML report dark theme
	}
}

// GenerateBarChart renders the wide table as a bar chart and returns it
// base64 encoded for embedding.
func (cg *ChartGenerator) GenerateBarChart(table WideTable) (string, error) {
	values, labels, legend, err := chartSeries(table)
	if err != nil {
		return "", err
	}

	p, err := charts.BarRender(
		values,
		charts.TitleTextOptionFunc(chartTitle(table)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legend, charts.PositionRight),
		charts.ThemeOptionFunc(cg.getTheme()),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render bar chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// GenerateLineChart renders the wide table as a line chart and returns it
// base64 encoded for embedding.
func (cg *ChartGenerator) GenerateLineChart(table WideTable) (string, error) {
	values, labels, legend, err := chartSeries(table)
	if err != nil {
		return "", err
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(chartTitle(table)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legend, charts.PositionRight),
		charts.ThemeOptionFunc(cg.getTheme()),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render line chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// chartSeries converts the month-major wide table into the series-major
// values the chart library expects.
func chartSeries(table WideTable) (values [][]float64, labels, legend []string, err error) {
	if len(table.Months) == 0 || len(table.Columns) == 0 {
		return nil, nil, nil, fmt.Errorf("no chart data available")
	}

	labels = make([]string, len(table.Months))
	for i, m := range table.Months {
		labels[i] = m.String()
	}

	values = make([][]float64, len(table.Columns))
	for j := range table.Columns {
		series := make([]float64, len(table.Months))
		for i := range table.Months {
			series[i] = table.Values[i][j]
		}
		values[j] = series
	}

	legend = append(legend, table.Columns...)
	return values, labels, legend, nil
}

// chartTitle builds the chart heading from the metric label.
func chartTitle(table WideTable) string {
	return fmt.Sprintf("Monthly %s", table.Metric.Label())
}

// getTheme returns the chart theme name
func (cg *ChartGenerator) getTheme() string {
	return cg.theme
}
