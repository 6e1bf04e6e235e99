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

package klog

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugGatedByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, 0)
	s.Debug("should not appear %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output at verbosity 0, got %q", buf.String())
	}

	buf.Reset()
	s = New(&buf, 10)
	s.Debug("visible %s", "marker")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected Debug output at verbosity 10, got %q", buf.String())
	}
}

func TestWarnGatedByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, 0)
	s.Warn("collision on %s", "foo")
	if buf.Len() != 0 {
		t.Fatalf("expected no warn output at verbosity 0, got %q", buf.String())
	}

	buf.Reset()
	s = New(&buf, 1)
	s.Warn("collision on %s", "foo")
	if !strings.Contains(buf.String(), "collision") {
		t.Fatalf("expected Warn output at verbosity 1, got %q", buf.String())
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, 0)
	s.Error("fatal: %s", "bad state")
	if !strings.Contains(buf.String(), "fatal") {
		t.Fatalf("expected Error output regardless of verbosity, got %q", buf.String())
	}
}

func TestVerbosityAccessor(t *testing.T) {
	s := New(nil, 5)
	if s.Verbosity() != 5 {
		t.Fatalf("Verbosity() = %d, want 5", s.Verbosity())
	}
}
