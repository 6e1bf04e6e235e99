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

// RMLVO names the five components the rules layer resolves to
// concrete component file text: Rules, Model, Layout, Variant,
// Options. Resolving these names to component text is an external
// collaborator (ComponentResolver); this module never reads a rules
// file itself.
type RMLVO struct {
	Rules   string
	Model   string
	Layout  string
	Variant string
	Options string
}

// ComponentResolver resolves an RMLVO description, or a single
// `include "name(variant)";` reference, to component source text.
// Callers inject their own implementation (backed by a rules file, an
// embedded asset bundle, a network service, ...); StaticResolver
// backs the tests and the CLI.
type ComponentResolver interface {
	// Resolve returns the four section source texts for the given
	// RMLVO description.
	Resolve(rmlvo RMLVO) (keycodes, types, compat, symbols string, err error)

	// ResolveInclude returns the named single-section component's
	// source text for the given section kind ("keycodes", "types",
	// "compat", "symbols"), used to satisfy `include` statements.
	ResolveInclude(kind, spec string) (string, error)
}

// StaticResolver is a ComponentResolver backed by an in-memory map,
// keyed "kind:spec" for includes and a fixed set of top-level texts
// for Resolve. It exists for tests and the CLI, where component text
// is supplied directly rather than looked up through a rules file.
type StaticResolver struct {
	Keycodes, Types, Compat, Symbols string
	Includes                         map[string]string // "kind:spec" -> source text
}

func (r *StaticResolver) Resolve(RMLVO) (string, string, string, string, error) {
	return r.Keycodes, r.Types, r.Compat, r.Symbols, nil
}

func (r *StaticResolver) ResolveInclude(kind, spec string) (string, error) {
	if r.Includes == nil {
		return "", ErrNoResolver
	}
	text, ok := r.Includes[kind+":"+spec]
	if !ok {
		return "", ErrUndefinedName
	}
	return text, nil
}
