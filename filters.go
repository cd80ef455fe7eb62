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

// FilterSelection is a conjunction of categorical set-membership filters.
// Construct it with NewFilterSelection: an empty requested set means "all
// observed values", never "no rows", and that substitution happens here at
// construction time. FilterRows trusts the invariant and never
// special-cases empty sets.
type FilterSelection struct {
	Utilities []string
	Scopes    []string
	Divisions []string
	Renewable []bool

	utilitySet  map[string]bool
	scopeSet    map[string]bool
	divisionSet map[string]bool
	renewSet    map[bool]bool
}

// NewFilterSelection builds a selection against the observed fact table.
// Each empty categorical slice is replaced by every value observed for
// that dimension, keeping the dashboard in a usable state.
func NewFilterSelection(rows []AggregatedRow, utilities, scopes, divisions []string, renewable []bool) FilterSelection {
	if len(utilities) == 0 {
		utilities = observedStrings(rows, func(r AggregatedRow) string { return r.Utility })
	}
	if len(scopes) == 0 {
		scopes = observedStrings(rows, func(r AggregatedRow) string { return r.ScopeDescription })
	}
	if len(divisions) == 0 {
		divisions = observedStrings(rows, func(r AggregatedRow) string { return r.Division })
	}
	if len(renewable) == 0 {
		renewable = observedBools(rows)
	}

	return FilterSelection{
		Utilities: utilities,
		Scopes:    scopes,
		Divisions: divisions,
		Renewable: renewable,

		utilitySet:  stringSet(utilities),
		scopeSet:    stringSet(scopes),
		divisionSet: stringSet(divisions),
		renewSet:    boolSet(renewable),
	}
}

// RenewableLabels returns the selection's renewable values in display form.
func (s FilterSelection) RenewableLabels() []string {
	labels := make([]string, 0, len(s.Renewable))
	for _, r := range s.Renewable {
		labels = append(labels, RenewableLabel(r))
	}
	return labels
}

// FilterRows keeps the rows inside the window that match every categorical
// set. Pure; the input slice is never mutated.
func FilterRows(rows []AggregatedRow, window DateWindow, sel FilterSelection) []AggregatedRow {
	out := make([]AggregatedRow, 0, len(rows))
	for _, row := range rows {
		if !window.Contains(row.Month) {
			continue
		}
		if !sel.utilitySet[row.Utility] {
			continue
		}
		if !sel.scopeSet[row.ScopeDescription] {
			continue
		}
		if !sel.divisionSet[row.Division] {
			continue
		}
		if !sel.renewSet[row.Renewable] {
			continue
		}
		out = append(out, row)
	}
	return out
}

func observedStrings(rows []AggregatedRow, field func(AggregatedRow) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		v := field(row)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

func observedBools(rows []AggregatedRow) []bool {
	seen := make(map[bool]bool)
	var values []bool
	for _, row := range rows {
		if !seen[row.Renewable] {
			seen[row.Renewable] = true
			values = append(values, row.Renewable)
		}
	}
	sort.Slice(values, func(i, j int) bool { return !values[i] && values[j] })
	return values
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func boolSet(values []bool) map[bool]bool {
	set := make(map[bool]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
