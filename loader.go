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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// The fixed source schema. Column order is free; names are the contract.
var requiredColumns = []string{
	"scope", "renewable", "end_date", "division",
	"data_type", "utility", "scope_text", "kwh", "kgco2e",
}

// Loader reads the source CSV into raw records
type Loader struct {
	logger *Logger
}

// NewLoader creates a new CSV loader
func NewLoader(logger *Logger) *Loader {
	return &Loader{
		logger: logger.WithComponent("loader"),
	}
}

// Load reads raw records from the CSV file at path.
func (l *Loader) Load(path string) ([]RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	records, skipped, err := l.ReadRecords(file)
	if err != nil {
		return nil, err
	}

	l.logger.LogDataLoad(path, len(records), skipped)
	return records, nil
}

// ReadRecords parses CSV content into raw records. The header row drives
// column mapping, so column order in the file does not matter. Malformed
// rows are skipped and counted, not fatal; numeric fields that are blank
// or unparseable count as missing and contribute zero downstream.
func (l *Loader) ReadRecords(r io.Reader) ([]RawRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, &ValidationError{
				Field:   "header",
				Value:   col,
				Message: "required column is missing from the CSV header",
			}
		}
	}

	field := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []RawRecord
	skipped := 0
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped++
			l.logger.LogRowSkipped(line, err)
			continue
		}

		rec := RawRecord{
			Line:      line,
			Scope:     parseScope(field(row, "scope")),
			Renewable: field(row, "renewable"),
			EndDate:   field(row, "end_date"),
			Division:  strings.TrimSpace(field(row, "division")),
			DataType:  strings.TrimSpace(field(row, "data_type")),
			Utility:   strings.TrimSpace(field(row, "utility")),
			ScopeText: strings.TrimSpace(field(row, "scope_text")),
			KWh:       parseMeasure(field(row, "kwh")),
			KgCO2e:    parseMeasure(field(row, "kgco2e")),
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

// parseScope reads the numeric scope code. Missing or unparseable values
// become -1, which normalizes to the invalid-scope category.
func parseScope(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return v
}

// parseMeasure reads a numeric measure; missing values are zero.
func parseMeasure(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
