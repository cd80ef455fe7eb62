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
	"math"
	"strconv"
	"strings"
)

// YoYNotApplicable is the sentinel for a year-over-year delta that cannot
// be computed. It is distinguishable from a legitimate "0.0% YoY".
const YoYNotApplicable = "na"

// ComputeKPIs derives the four scalar metrics from a filtered fact table.
// An empty table is a NoDataError; computing on it would only manufacture
// NaNs. Zero denominators mark the affected ratio invalid instead of
// propagating NaN.
func ComputeKPIs(rows []AggregatedRow) (KPISet, error) {
	if len(rows) == 0 {
		return KPISet{}, &NoDataError{Stage: "compute_kpis", Message: "no rows after filtering"}
	}

	var kpis KPISet
	var renewableEmissions float64
	for _, row := range rows {
		kpis.TotalEnergy += row.KWh
		kpis.TotalEmissions += row.KgCO2e
		if row.Renewable {
			renewableEmissions += row.KgCO2e
		}
	}

	if kpis.TotalEnergy != 0 {
		kpis.Intensity = kpis.TotalEmissions / kpis.TotalEnergy
		kpis.IntensityValid = true
	}
	if kpis.TotalEmissions != 0 {
		kpis.RenewableShare = renewableEmissions / kpis.TotalEmissions * 100
		kpis.RenewableShareValid = true
	}

	return kpis, nil
}

// YoY formats the year-over-year percentage change between two scalars.
// A previous value of zero or below cannot anchor a comparison and yields
// the "na" sentinel.
func YoY(current, previous float64) string {
	if previous <= 0 {
		return YoYNotApplicable
	}
	pct := (current/previous - 1) * 100
	return formatPercent(pct) + "% YoY"
}

// ComputeDeltas derives the four delta strings between two periods. The
// All Time selection has no prior period, so every delta is forced to the
// sentinel rather than computed and discarded.
func ComputeDeltas(current, previous KPISet, selection RangeName) KPIDeltas {
	if selection == RangeAllTime {
		return KPIDeltas{
			Energy:         YoYNotApplicable,
			Emissions:      YoYNotApplicable,
			Intensity:      YoYNotApplicable,
			RenewableShare: YoYNotApplicable,
		}
	}

	deltas := KPIDeltas{
		Energy:    YoY(current.TotalEnergy, previous.TotalEnergy),
		Emissions: YoY(current.TotalEmissions, previous.TotalEmissions),
	}

	if previous.IntensityValid {
		deltas.Intensity = YoY(current.Intensity, previous.Intensity)
	} else {
		deltas.Intensity = YoYNotApplicable
	}
	if previous.RenewableShareValid {
		deltas.RenewableShare = YoY(current.RenewableShare, previous.RenewableShare)
	} else {
		deltas.RenewableShare = YoYNotApplicable
	}

	return deltas
}

// formatPercent rounds to two decimals and trims trailing zeros, keeping
// at least one decimal place: 10 -> "10.0", 12.345 -> "12.35".
func formatPercent(v float64) string {
	rounded := math.Round(v*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// roundTo2 rounds to two decimal places.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
