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
	"errors"
	"strings"
	"testing"
)

const loaderHeader = "scope,renewable,end_date,division,data_type,utility,scope_text,kwh,kgco2e\n"

func newTestLoader() *Loader {
	return NewLoader(NewLogger(false))
}

func TestReadRecords(t *testing.T) {
	input := loaderHeader +
		"1,y,15/03/2023,Metro East,Electricity,Grid Power,Purchased electricity,120.5,34.2\n" +
		"2,n,20/04/2023,Metro West,Gas,Gas Main,Natural gas,80,19.6\n"

	records, skipped, err := newTestLoader().ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	first := records[0]
	if first.Scope != 1 || first.Renewable != "y" || first.EndDate != "15/03/2023" {
		t.Errorf("first record = %+v", first)
	}
	if first.Division != "Metro East" || first.Utility != "Grid Power" {
		t.Errorf("first record dims = %+v", first)
	}
	if first.KWh != 120.5 || first.KgCO2e != 34.2 {
		t.Errorf("first record measures = %v / %v", first.KWh, first.KgCO2e)
	}
}

func TestReadRecordsHeaderOrderIndependent(t *testing.T) {
	// Same data, shuffled and differently-cased header.
	input := "KWH,Utility,Scope,End_Date,Renewable,Division,Data_Type,Scope_Text,KgCO2e\n" +
		"120.5,Grid Power,1,15/03/2023,y,Metro East,Electricity,Purchased electricity,34.2\n"

	records, _, err := newTestLoader().ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	if r.Scope != 1 || r.KWh != 120.5 || r.Utility != "Grid Power" || r.EndDate != "15/03/2023" {
		t.Errorf("record = %+v", r)
	}
}

func TestReadRecordsMissingColumn(t *testing.T) {
	input := "scope,renewable,end_date,division,data_type,utility,scope_text,kwh\n" +
		"1,y,15/03/2023,Metro East,Electricity,Grid Power,text,120.5\n"

	_, _, err := newTestLoader().ReadRecords(strings.NewReader(input))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for missing column, got %v", err)
	}
	if vErr.Value != "kgco2e" {
		t.Errorf("missing column = %q, want kgco2e", vErr.Value)
	}
}

func TestReadRecordsMissingNumerics(t *testing.T) {
	input := loaderHeader +
		",y,15/03/2023,Metro East,Electricity,Grid Power,text,,\n"

	records, skipped, err := newTestLoader().ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("blank numerics should not skip the row, skipped = %d", skipped)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	r := records[0]
	if r.Scope != -1 {
		t.Errorf("blank scope should carry -1, got %d", r.Scope)
	}
	if r.KWh != 0 || r.KgCO2e != 0 {
		t.Errorf("blank measures should carry 0, got %v / %v", r.KWh, r.KgCO2e)
	}
}

func TestReadRecordsSkipsMalformedRows(t *testing.T) {
	input := loaderHeader +
		"1,y,15/03/2023,Metro East,Electricity,Grid Power,text,120.5,34.2\n" +
		"2,n,20/04/2023,Metro\"West,Gas,Gas Main,text,80,19.6\n" +
		"3,n,21/04/2023,Metro South,Gas,Gas Main,text,40,9.8\n"

	records, skipped, err := newTestLoader().ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("malformed rows must not be fatal: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestReadRecordsCarriesSourceLines(t *testing.T) {
	// The skipped row at line 3 must not shift the line numbers of the
	// records that follow it.
	input := loaderHeader +
		"1,y,15/03/2023,Metro East,Electricity,Grid Power,text,120.5,34.2\n" +
		"2,n,20/04/2023,Metro\"West,Gas,Gas Main,text,80,19.6\n" +
		"3,n,21/04/2023,Metro South,Gas,Gas Main,text,40,9.8\n"

	records, _, err := newTestLoader().ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Line != 2 {
		t.Errorf("first record line = %d, want 2", records[0].Line)
	}
	if records[1].Line != 4 {
		t.Errorf("second record line = %d, want 4", records[1].Line)
	}
}

func TestReadRecordsShortRow(t *testing.T) {
	// Rows shorter than the header parse with their trailing fields empty.
	input := loaderHeader +
		"1,y,15/03/2023\n"

	records, _, err := newTestLoader().ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Division != "" || records[0].KWh != 0 {
		t.Errorf("short row fields should be empty: %+v", records[0])
	}
}

func TestReadRecordsEmptyInput(t *testing.T) {
	_, _, err := newTestLoader().ReadRecords(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for input with no header")
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 1},
		{" 2 ", 2},
		{"3", 3},
		{"", -1},
		{"abc", -1},
		{"1.5", -1},
	}
	for _, tt := range tests {
		if got := parseScope(tt.in); got != tt.want {
			t.Errorf("parseScope(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
