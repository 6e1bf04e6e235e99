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

// Package model holds the shared keymap data model described by the
// keymap's data model: modifiers, keys, groups, levels, types, symbol
// interprets, indicators, and actions. Cyclic references (a group's
// KeyType, a key's indicator bit) are expressed as slice indices
// rather than pointers, so a *Keymap can be freely copied, moved, or
// serialized without pointer fixups.
package model

import "github.com/kbdgo/xkbgo/internal/atom"

// MaxIndicators is the fixed number of LED slots a keymap may use.
const MaxIndicators = 32

// Keymap is the fully assembled, immutable result of compiling the
// four XKB sections. Once returned from the assembler it is never
// mutated in place; a State borrows it for the lifetime of a session.
type Keymap struct {
	Atoms *atom.Table
	Mods  *ModSet

	Keys map[KeyCode]*Key

	Types []KeyType

	Interprets []SymInterpret

	Indicators [MaxIndicators]IndicatorMap

	// GroupNames[i] is the display name for group i+1 (name[groupN] = "...";).
	GroupNames []atom.Atom

	// Aliases maps an alias key name atom to the canonical key name atom.
	Aliases map[atom.Atom]atom.Atom

	// KeycodesName / TypesName / CompatName / SymbolsName hold each
	// section's declared name (the string after xkb_keycodes etc.),
	// used only for round-tripping through the serializer.
	KeycodesName atom.Atom
	TypesName    atom.Atom
	CompatName   atom.Atom
	SymbolsName  atom.Atom

	MinKeyCode, MaxKeyCode KeyCode
}

// NewKeymap returns an empty Keymap ready for the section compilers to
// populate, sharing a single atom table across all four sections.
func NewKeymap() *Keymap {
	tbl := atom.NewTable()
	return &Keymap{
		Atoms:      tbl,
		Mods:       NewModSet(tbl),
		Keys:       make(map[KeyCode]*Key),
		Aliases:    make(map[atom.Atom]atom.Atom),
		MinKeyCode: ^KeyCode(0),
	}
}

// Key looks up a key by code, following aliases is not applicable here
// (aliases are resolved to codes by the keycodes compiler at
// definition time); returns nil if kc is unknown.
func (km *Keymap) Key(kc KeyCode) *Key {
	return km.Keys[kc]
}

// KeyByName looks up a key by its interned <NAME> atom, resolving one
// level of alias indirection.
func (km *Keymap) KeyByName(name atom.Atom) *Key {
	if canon, ok := km.Aliases[name]; ok {
		name = canon
	}
	for _, k := range km.Keys {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// NumRealMods is always the fixed count of real modifiers.
func (km *Keymap) NumRealMods() int { return NumRealMods }

// AddKey inserts or replaces the key at kc, updating Min/MaxKeyCode.
func (km *Keymap) AddKey(k *Key) {
	km.Keys[k.Code] = k
	if k.Code < km.MinKeyCode {
		km.MinKeyCode = k.Code
	}
	if k.Code > km.MaxKeyCode {
		km.MaxKeyCode = k.Code
	}
}

// SortedKeyCodes returns every declared KeyCode in ascending order,
// the order the serializer and assembler both iterate keys in.
func (km *Keymap) SortedKeyCodes() []KeyCode {
	out := make([]KeyCode, 0, len(km.Keys))
	for kc := range km.Keys {
		out = append(out, kc)
	}
	// small slice, insertion sort keeps this package free of a sort
	// import for a single call site.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1] > out[j] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// SortedAliases returns every alias key-name atom in ascending order,
// so callers that must iterate km.Aliases deterministically (the
// serializer) don't inherit Go's randomized map order.
func (km *Keymap) SortedAliases() []atom.Atom {
	out := make([]atom.Atom, 0, len(km.Aliases))
	for a := range km.Aliases {
		out = append(out, a)
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1] > out[j] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// TypeByName returns the index of the KeyType named name, or -1.
func (km *Keymap) TypeByName(name atom.Atom) int {
	for i := range km.Types {
		if km.Types[i].Name == name {
			return i
		}
	}
	return -1
}
