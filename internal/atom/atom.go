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

// Package atom provides string interning for keymap identifiers: key
// names, type names, virtual modifier names, and indicator names all
// compare and hash as small integers instead of strings once interned.
package atom

// Atom is an interned string handle. The zero value, None, means "no
// name" and never corresponds to a real interned string.
type Atom uint32

// None is the sentinel atom meaning "unset".
const None Atom = 0

// Table interns strings to Atoms. Not safe for concurrent writers; a
// Keymap and everything reachable from it is single-threaded per
// spec's ownership model.
type Table struct {
	byText map[string]Atom
	texts  []string // index 0 is unused, so byText never maps to None
}

// NewTable returns an empty interning table.
func NewTable() *Table {
	return &Table{
		byText: make(map[string]Atom),
		texts:  []string{""},
	}
}

// Intern returns the Atom for s, allocating a new one if s was never
// seen before. Interning "" always returns None.
func (t *Table) Intern(s string) Atom {
	if s == "" {
		return None
	}
	if a, ok := t.byText[s]; ok {
		return a
	}
	a := Atom(len(t.texts))
	t.texts = append(t.texts, s)
	t.byText[s] = a
	return a
}

// Lookup returns the Atom for s without creating one, reporting
// whether s has been interned.
func (t *Table) Lookup(s string) (Atom, bool) {
	if s == "" {
		return None, false
	}
	a, ok := t.byText[s]
	return a, ok
}

// Text returns the interned string for a, or "" for None or an
// out-of-range Atom.
func (t *Table) Text(a Atom) string {
	if int(a) <= 0 || int(a) >= len(t.texts) {
		return ""
	}
	return t.texts[a]
}
