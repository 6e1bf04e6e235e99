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

package xkbgo

import (
	"io"

	"github.com/kbdgo/xkbgo/internal/klog"
	"github.com/kbdgo/xkbgo/internal/source"
)

// Context holds the cross-keymap configuration a caller shares across
// every Keymap it compiles: log verbosity/destination and the
// component-source charset decoder. A separate keymap rules layer
// could share one Context's atom table across several compiled
// keymaps; here each Keymap still owns its own atom table for
// simplicity, since nothing in this module compiles two keymaps that
// must compare atoms against each other.
type Context struct {
	log     *klog.Sink
	decoder *source.Decoder

	logWriter    io.Writer
	logVerbosity int
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithLogWriter directs diagnostic output to w instead of os.Stderr.
func WithLogWriter(w io.Writer) ContextOption {
	return func(c *Context) { c.logWriter = w }
}

// WithVerbosity sets the diagnostic verbosity threshold (0..10).
func WithVerbosity(v int) ContextOption {
	return func(c *Context) { c.logVerbosity = v }
}

// NewContext returns a Context ready to compile keymaps.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{logVerbosity: 1, decoder: source.NewDecoder()}
	for _, opt := range opts {
		opt(c)
	}
	c.log = klog.New(c.logWriter, klog.Verbosity(c.logVerbosity))
	return c
}

// Close releases the Context. Provided for symmetry with the C API
// shape this module is modeled on; reference counting of the public
// handle is out of scope; the Go garbage collector reclaims Context
// and Keymap values once unreachable.
func (c *Context) Close() {}
