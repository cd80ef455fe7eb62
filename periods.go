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

// RangeName is a named relative date-range selection.
type RangeName string

const (
	RangeLast1Month   RangeName = "Last 1 Month"
	RangeLast3Months  RangeName = "Last 3 Months"
	RangeLast6Months  RangeName = "Last 6 Months"
	RangeLast12Months RangeName = "Last 12 Months"
	RangeAllTime      RangeName = "All Time"
)

// RangeNames lists the recognized selections in display order.
var RangeNames = []RangeName{
	RangeLast1Month,
	RangeLast3Months,
	RangeLast6Months,
	RangeLast12Months,
	RangeAllTime,
}

// Width returns the window width in months. All Time has no width; the
// second return is false for it.
func (r RangeName) Width() (int, bool) {
	switch r {
	case RangeLast1Month:
		return 1, true
	case RangeLast3Months:
		return 3, true
	case RangeLast6Months:
		return 6, true
	case RangeLast12Months:
		return 12, true
	default:
		return 0, false
	}
}

// Valid reports whether r is a recognized range name.
func (r RangeName) Valid() bool {
	if r == RangeAllTime {
		return true
	}
	_, ok := r.Width()
	return ok
}

// ResolveWindows computes the current window ending at maxMonth and the
// matching window exactly twelve months earlier.
//
// A width-w selection spans exactly w months inclusive for both windows:
// start = maxMonth - (w-1). Both prior-year endpoints shift by twelve
// months, so the windows are always the same width. All Time yields two
// unbounded windows; callers must then suppress the year-over-year
// comparison entirely.
func ResolveWindows(maxMonth YearMonth, selection RangeName) (current, priorYear DateWindow, err error) {
	if maxMonth.IsZero() {
		return DateWindow{}, DateWindow{}, &NoDataError{Stage: "resolve_windows", Message: "no maximum month available"}
	}

	if selection == RangeAllTime {
		return DateWindow{}, DateWindow{}, nil
	}

	w, ok := selection.Width()
	if !ok {
		return DateWindow{}, DateWindow{}, &ValidationError{
			Field:   "date_range",
			Value:   string(selection),
			Message: "unrecognized date range selection",
		}
	}

	current = DateWindow{
		Start:   maxMonth.AddMonths(-(w - 1)),
		End:     maxMonth,
		Bounded: true,
	}
	priorYear = DateWindow{
		Start:   current.Start.AddMonths(-12),
		End:     current.End.AddMonths(-12),
		Bounded: true,
	}
	return current, priorYear, nil
}
