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
	"strings"
	"time"
)

// YearMonth is a calendar month without a day component. The zero value is
// "no month" and sorts before every real month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf truncates a date to its calendar month.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a canonical "YYYY-MM" key.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

// dayFirstLayouts are the accepted textual forms for end_date. The upstream
// CSV uses day-first dates; ISO dates are accepted as a fallback.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
}

// ParseEndDate parses a day-first record date and truncates it to its month.
// Two textual forms of the same calendar date always yield the same YearMonth.
func ParseEndDate(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return YearMonthOf(t), nil
		}
	}
	return YearMonth{}, fmt.Errorf("unrecognized date %q", s)
}

// String returns the canonical "YYYY-MM" key.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Display returns the "MM-YYYY" form used in comparison-period headlines.
func (ym YearMonth) Display() string {
	return fmt.Sprintf("%02d-%04d", int(ym.Month), ym.Year)
}

// IsZero reports whether ym is the "no month" zero value.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// ordinal maps a YearMonth to a monotonically increasing month count.
func (ym YearMonth) ordinal() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// AddMonths returns ym shifted by n calendar months. Negative n shifts
// backwards, wrapping across year boundaries.
func (ym YearMonth) AddMonths(n int) YearMonth {
	o := ym.ordinal() + n
	return YearMonth{Year: o / 12, Month: time.Month(o%12 + 1)}
}

// AddYears returns ym shifted by n calendar years.
func (ym YearMonth) AddYears(n int) YearMonth {
	return YearMonth{Year: ym.Year + n, Month: ym.Month}
}

// Compare returns -1, 0 or 1 as ym sorts before, equal to or after other.
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.ordinal() < other.ordinal():
		return -1
	case ym.ordinal() > other.ordinal():
		return 1
	default:
		return 0
	}
}

// Before reports whether ym sorts strictly before other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

// After reports whether ym sorts strictly after other.
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Compare(other) > 0
}
