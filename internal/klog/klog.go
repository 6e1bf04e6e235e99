// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package klog wraps charmbracelet/log as the Context's diagnostic
// sink: compiler and state-machine code logs through a Sink instead
// of returning every warning as an error, matching the original's
// verbosity-gated, non-fatal diagnostic reporting.
package klog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Verbosity mirrors the original context's log verbosity knob
// (0..10): most warnings are reported only once verbosity > 0, some
// only past > 9.
type Verbosity int

// Sink is a leveled diagnostic sink bound to one Context.
type Sink struct {
	logger    *log.Logger
	verbosity Verbosity
}

// New returns a Sink writing to w (os.Stderr if w is nil) at the
// given verbosity.
func New(w io.Writer, verbosity Verbosity) *Sink {
	if w == nil {
		w = os.Stderr
	}
	return &Sink{
		logger:    log.NewWithOptions(w, log.Options{ReportTimestamp: false, Level: log.DebugLevel}),
		verbosity: verbosity,
	}
}

// Verbosity reports the sink's configured verbosity.
func (s *Sink) Verbosity() Verbosity { return s.verbosity }

// Debug logs a low-priority diagnostic, always gated by verbosity > 9.
func (s *Sink) Debug(format string, args ...interface{}) {
	if s.verbosity > 9 {
		s.logger.Debugf(format, args...)
	}
}

// Warn logs a recoverable compiler diagnostic (e.g. a merge
// collision), gated by verbosity > 0.
func (s *Sink) Warn(format string, args ...interface{}) {
	if s.verbosity > 0 {
		s.logger.Warnf(format, args...)
	}
}

// Error logs an unrecoverable diagnostic; always emitted regardless of
// verbosity, matching the original's unconditional error reporting.
func (s *Sink) Error(format string, args ...interface{}) {
	s.logger.Errorf(format, args...)
}
