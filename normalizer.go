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

// Scope category descriptions. Any code outside 1-3 maps to the
// invalid-scope sentinel; that is a category of its own, not an error.
const (
	ScopeDirect        = "Scope 1: Direct Emissions"
	ScopeElectricity   = "Scope 2: Indirect Emissions from Electricity"
	ScopeOtherIndirect = "Scope 3: Other Indirect Emissions"
	ScopeInvalid       = "Invalid Scope"
)

// Renewable display labels, used only at the presentation boundary. The
// core carries the flag as a bool.
const (
	RenewableSourceLabel    = "Renewable Source"
	NonRenewableSourceLabel = "Non-renewable Source"
)

// ScopeDescription maps a numeric scope code to its descriptive category.
func ScopeDescription(scope int) string {
	switch scope {
	case 1:
		return ScopeDirect
	case 2:
		return ScopeElectricity
	case 3:
		return ScopeOtherIndirect
	default:
		return ScopeInvalid
	}
}

// IsRenewable classifies the raw renewable flag. Only the exact literal
// "y" counts; no trimming, no case folding, no "yes"/"n" handling.
func IsRenewable(flag string) bool {
	return flag == "y"
}

// RenewableLabel maps the canonical bool to its display string.
func RenewableLabel(renewable bool) string {
	if renewable {
		return RenewableSourceLabel
	}
	return NonRenewableSourceLabel
}

// ParseRenewableLabel is the inverse of RenewableLabel, for config and
// filter selections expressed in display form.
func ParseRenewableLabel(label string) (bool, bool) {
	switch label {
	case RenewableSourceLabel:
		return true, true
	case NonRenewableSourceLabel:
		return false, true
	default:
		return false, false
	}
}

// Normalize derives the categorical fields and month key for one record.
// It is pure; the only failure mode is an unparseable end date.
func Normalize(raw RawRecord) (NormalizedRecord, error) {
	month, err := ParseEndDate(raw.EndDate)
	if err != nil {
		return NormalizedRecord{}, &ParseError{Field: "end_date", Value: raw.EndDate, Err: err}
	}

	return NormalizedRecord{
		Month:            month,
		Division:         raw.Division,
		ScopeDescription: ScopeDescription(raw.Scope),
		Renewable:        IsRenewable(raw.Renewable),
		DataType:         raw.DataType,
		Utility:          raw.Utility,
		ScopeText:        raw.ScopeText,
		KWh:              raw.KWh,
		KgCO2e:           raw.KgCO2e,
	}, nil
}
