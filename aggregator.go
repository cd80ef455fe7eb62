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
	"strings"
)

// AggregateOptions controls fact-table construction.
//
// GroupScopeText decides whether the free-text scope_text column joins the
// group key; it duplicates information already in the scope description and
// inflates cardinality, so it can be switched off. CutoffMonth, when set,
// drops every aggregated row at or after that month.
type AggregateOptions struct {
	GroupScopeText bool
	CutoffMonth    YearMonth
	HasCutoff      bool
}

// groupKey is the dimension tuple an AggregatedRow is keyed on.
type groupKey struct {
	month     YearMonth
	division  string
	scope     string
	renewable bool
	dataType  string
	utility   string
	scopeText string
}

// Aggregate rolls normalized records up into the monthly fact table. Every
// record contributes to exactly one output row; a record with a missing
// measure still joins its group with a zero contribution. Output order is
// deterministic (sorted on the full dimension tuple).
func Aggregate(records []NormalizedRecord, opts AggregateOptions) []AggregatedRow {
	groups := make(map[groupKey]*AggregatedRow)

	for _, rec := range records {
		key := groupKey{
			month:     rec.Month,
			division:  rec.Division,
			scope:     rec.ScopeDescription,
			renewable: rec.Renewable,
			dataType:  rec.DataType,
			utility:   rec.Utility,
		}
		if opts.GroupScopeText {
			key.scopeText = rec.ScopeText
		}

		row, ok := groups[key]
		if !ok {
			row = &AggregatedRow{
				Month:            key.month,
				Division:         key.division,
				ScopeDescription: key.scope,
				Renewable:        key.renewable,
				DataType:         key.dataType,
				Utility:          key.utility,
				ScopeText:        key.scopeText,
			}
			groups[key] = row
		}
		row.KWh += rec.KWh
		row.KgCO2e += rec.KgCO2e
	}

	rows := make([]AggregatedRow, 0, len(groups))
	for _, row := range groups {
		if opts.HasCutoff && !row.Month.Before(opts.CutoffMonth) {
			continue
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return compareRows(rows[i], rows[j]) < 0
	})

	return rows
}

// compareRows orders fact rows on the full dimension tuple.
func compareRows(a, b AggregatedRow) int {
	if c := a.Month.Compare(b.Month); c != 0 {
		return c
	}
	if c := strings.Compare(a.Division, b.Division); c != 0 {
		return c
	}
	if c := strings.Compare(a.ScopeDescription, b.ScopeDescription); c != 0 {
		return c
	}
	if a.Renewable != b.Renewable {
		if !a.Renewable {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.DataType, b.DataType); c != 0 {
		return c
	}
	if c := strings.Compare(a.Utility, b.Utility); c != 0 {
		return c
	}
	return strings.Compare(a.ScopeText, b.ScopeText)
}

// MaxMonth returns the latest month present in the fact table. An empty
// table yields a NoDataError; nothing downstream can run without it.
func MaxMonth(rows []AggregatedRow) (YearMonth, error) {
	if len(rows) == 0 {
		return YearMonth{}, &NoDataError{Stage: "max_month", Message: "aggregated table is empty"}
	}
	max := rows[0].Month
	for _, row := range rows[1:] {
		if row.Month.After(max) {
			max = row.Month
		}
	}
	return max, nil
}
