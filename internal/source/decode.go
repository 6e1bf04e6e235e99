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

// Package source loads XKB component text, transcoding it to UTF-8
// when the caller or a component declares a legacy charset. Component
// files are ordinary text found via the keymap rules layer (an
// external collaborator); this package only concerns itself with
// bytes-to-UTF-8 decoding, using a locale-driven charmap lookup.
package source

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	gencoding "github.com/gdamore/encoding"
)

// Decoder transcodes component source bytes to UTF-8 based on a
// declared charset name (e.g. "ISO8859-1", "UTF-8").
type Decoder struct {
	charsets map[string]encoding.Encoding
}

// NewDecoder returns a Decoder pre-populated with the charsets x/text
// ships plus a couple of legacy DOS code pages gdamore/encoding
// registers.
func NewDecoder() *Decoder {
	d := &Decoder{charsets: map[string]encoding.Encoding{
		"ISO8859-1":  charmap.ISO8859_1,
		"ISO8859-2":  charmap.ISO8859_2,
		"ISO8859-9":  charmap.ISO8859_9,
		"ISO8859-15": charmap.ISO8859_15,
		"KOI8-R":     charmap.KOI8R,
		"UTF-8":      encoding.Nop,
		"CP437":      gencoding.CP437,
		"CP850":      gencoding.CP850,
	}}
	return d
}

// Decode transcodes r, declared to be in charset cs, to a UTF-8
// io.Reader. An unrecognized charset name falls back to treating the
// source as already UTF-8, matching legacy XKB tooling's lenient
// behavior toward unrecognized $LANG-derived charset hints.
func (d *Decoder) Decode(r io.Reader, cs string) io.Reader {
	enc, ok := d.charsets[cs]
	if !ok {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// Charsets lists every charset name this decoder recognizes.
func (d *Decoder) Charsets() []string {
	out := make([]string, 0, len(d.charsets))
	for name := range d.charsets {
		out = append(out, name)
	}
	return out
}

// errUnknownCharset builds the error for an unrecognized charset name.
// Decode does not return it; it falls back to UTF-8 passthrough.
func errUnknownCharset(cs string) error {
	return fmt.Errorf("source: unknown charset %q", cs)
}
