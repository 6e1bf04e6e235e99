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
	"fmt"

	"github.com/kbdgo/xkbgo/internal/assemble"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/serialize"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

// Keymap is a fully assembled, immutable keymap.
type Keymap struct {
	km *model.Keymap
}

// Format selects a keymap's serialized text representation.
type Format int

// TextV1 is the only supported serialization format.
const TextV1 Format = Format(serialize.TextV1)

// resolverAdapter satisfies assemble.Resolver by parsing whatever text
// a ComponentResolver hands back for each include.
type resolverAdapter struct {
	cr  ComponentResolver
}

func (a *resolverAdapter) resolveAndParse(kind, spec string) (*xkbtext.Section, error) {
	if a.cr == nil {
		return nil, ErrNoResolver
	}
	text, err := a.cr.ResolveInclude(kind, spec)
	if err != nil {
		return nil, err
	}
	f, errs := xkbtext.Parse(wrapSection(kind, text))
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrParse, errs[0])
	}
	return sectionFor(kind, f), nil
}

func (a *resolverAdapter) ResolveKeycodes(spec string) (*xkbtext.Section, error) { return a.resolveAndParse("keycodes", spec) }
func (a *resolverAdapter) ResolveTypes(spec string) (*xkbtext.Section, error)    { return a.resolveAndParse("types", spec) }
func (a *resolverAdapter) ResolveCompat(spec string) (*xkbtext.Section, error)   { return a.resolveAndParse("compat", spec) }
func (a *resolverAdapter) ResolveSymbols(spec string) (*xkbtext.Section, error)  { return a.resolveAndParse("symbols", spec) }

func wrapSection(kind, text string) string {
	kw := map[string]string{
		"keycodes": "xkb_keycodes", "types": "xkb_types",
		"compat": "xkb_compatibility", "symbols": "xkb_symbols",
	}[kind]
	return kw + ` "" { ` + text + ` };`
}

func sectionFor(kind string, f *xkbtext.File) *xkbtext.Section {
	switch kind {
	case "keycodes":
		return f.Keycodes
	case "types":
		return f.Types
	case "compat":
		return f.Compat
	case "symbols":
		return f.Symbols
	}
	return nil
}

// NewKeymapFromNames resolves rmlvo via resolver and compiles the
// resulting four components into a Keymap.
func (c *Context) NewKeymapFromNames(rmlvo RMLVO, resolver ComponentResolver) (*Keymap, error) {
	if resolver == nil {
		return nil, ErrNoResolver
	}
	kcText, tText, cText, sText, err := resolver.Resolve(rmlvo)
	if err != nil {
		return nil, err
	}
	return c.compileFour(kcText, tText, cText, sText, resolver)
}

// NewKeymapFromString parses and compiles a single combined
// `xkb_keymap { xkb_keycodes {...} xkb_types {...} ... }` document, or
// four bare sections concatenated in any order.
func (c *Context) NewKeymapFromString(text string, format Format, resolver ComponentResolver) (*Keymap, error) {
	if format != TextV1 {
		return nil, ErrUnsupportedFormat
	}
	f, errs := xkbtext.Parse(text)
	if f.Keycodes == nil && f.Types == nil && f.Compat == nil && f.Symbols == nil && len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrParse, errs[0])
	}
	return c.assembleFile(f, resolver)
}

func (c *Context) compileFour(kcText, tText, cText, sText string, resolver ComponentResolver) (*Keymap, error) {
	f := &xkbtext.File{}
	var errs []error
	if f.Keycodes, errs = parseOne("xkb_keycodes", kcText); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrParse, errs[0])
	}
	if f.Types, errs = parseOne("xkb_types", tText); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrParse, errs[0])
	}
	if f.Compat, errs = parseOne("xkb_compatibility", cText); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrParse, errs[0])
	}
	if f.Symbols, errs = parseOne("xkb_symbols", sText); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrParse, errs[0])
	}
	return c.assembleFile(f, resolver)
}

func parseOne(kw, text string) (*xkbtext.Section, []error) {
	full, errs := xkbtext.Parse(kw + ` "" { ` + text + ` };`)
	if len(errs) > 0 {
		return nil, errs
	}
	return sectionFor(kindFor(kw), full), nil
}

func kindFor(kw string) string {
	switch kw {
	case "xkb_keycodes":
		return "keycodes"
	case "xkb_types":
		return "types"
	case "xkb_compatibility":
		return "compat"
	case "xkb_symbols":
		return "symbols"
	}
	return ""
}

func (c *Context) assembleFile(f *xkbtext.File, resolver ComponentResolver) (*Keymap, error) {
	comps := assemble.Components{
		Keycodes: f.Keycodes,
		Types:    f.Types,
		Compat:   f.Compat,
		Symbols:  f.Symbols,
	}
	res := &resolverAdapter{cr: resolver}
	km, err := assemble.Assemble(comps, res, c.log)
	if err != nil {
		return nil, err
	}
	return &Keymap{km: km}, nil
}

// GetAsString renders the keymap as canonical text in the given
// format.
func (k *Keymap) GetAsString(format Format) (string, error) {
	return serialize.GetAsString(k.km, serialize.Format(format))
}
