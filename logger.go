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
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with domain-specific methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text-formatted logger
func NewLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// NewJSONLogger creates a JSON-formatted logger
func NewJSONLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// WithDataset adds a dataset field to the logger
func (l *Logger) WithDataset(dataset string) *Logger {
	return &Logger{l.With("dataset", dataset)}
}

// LogDataLoad logs source data ingestion progress
func (l *Logger) LogDataLoad(path string, rows, skipped int) {
	l.Info("Data loaded",
		"path", path,
		"rows", rows,
		"skipped", skipped,
	)
}

// LogPipelineStage logs pipeline stage completion
func (l *Logger) LogPipelineStage(stage string) {
	l.Info("Pipeline stage completed",
		"stage", stage,
	)
}

// LogFilterResult logs the outcome of one filter pass
func (l *Logger) LogFilterResult(window DateWindow, rows int) {
	if !window.Bounded {
		l.Debug("Filter applied",
			"window", "all time",
			"rows", rows,
		)
		return
	}
	l.Debug("Filter applied",
		"window_start", window.Start.String(),
		"window_end", window.End.String(),
		"rows", rows,
	)
}

// LogRowSkipped logs a rejected source row
func (l *Logger) LogRowSkipped(line int, err error) {
	l.Warn("Skipping malformed row",
		"line", line,
		"error", err,
	)
}

// LogStorageOperation logs storage operations
func (l *Logger) LogStorageOperation(operation, path string) {
	l.Debug("Storage operation",
		"operation", operation,
		"path", path,
	)
}

// UserMessage outputs a message directly to stdout (bypassing structured logging)
func (l *Logger) UserMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
