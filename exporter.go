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
	"time"
)

// exportColumns is the fixed export schema. data_type is exported as
// utility_type, matching the fact-table naming downstream consumers expect.
var exportColumns = []string{
	"month", "division", "scope_description", "renewable_flag",
	"utility_type", "utility", "scope_text", "kwh", "kgco2e",
}

// Exporter writes the aggregated fact table as delimited text
type Exporter struct {
	logger *Logger
}

// NewExporter creates a new fact-table exporter
func NewExporter(logger *Logger) *Exporter {
	return &Exporter{
		logger: logger.WithComponent("exporter"),
	}
}

// Export writes the fact table to path, creating the file.
func (e *Exporter) Export(rows []AggregatedRow, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &StorageError{
			Operation: "create_export",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	if err := e.Write(file, rows); err != nil {
		return err
	}

	e.logger.Info("Fact table exported", "path", path, "rows", len(rows))
	return nil
}

// Write streams the fact table as CSV. The renewable flag is exported in
// display form; the month as its canonical YYYY-MM key.
func (e *Exporter) Write(w io.Writer, rows []AggregatedRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Month.String(),
			row.Division,
			row.ScopeDescription,
			RenewableLabel(row.Renewable),
			row.DataType,
			row.Utility,
			row.ScopeText,
			strconv.FormatFloat(row.KWh, 'f', -1, 64),
			strconv.FormatFloat(row.KgCO2e, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// DefaultExportName returns the date-stamped default export filename.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("data_%s.csv", now.Format("20060102"))
}
