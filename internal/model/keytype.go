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

package model

import "github.com/kbdgo/xkbgo/internal/atom"

// MapEntry is one row of a KeyType's modifier-mask -> level mapping.
// Preserve records the subset of Mods.Mask that survives into the
// resulting state's effective mods (the rest are "consumed").
type MapEntry struct {
	Mods     ModMask
	Level    int
	Preserve ModMask
}

// KeyType describes how a key's active modifier mask selects one of
// its levels. Every key references a KeyType per group.
type KeyType struct {
	Name      atom.Atom
	Mods      ModMask // the modifiers this type actually examines
	NumLevels int
	Map       []MapEntry
	// LevelNames[i] is the optional display name for level i+1, 0 if unset.
	LevelNames []atom.Atom
}

// FindLevel returns the resolved level (0-based) and consumed-mask
// preservation for the given effective modifier mask, applying the
// type's Map in declaration order. If no entry matches, level 0 (the
// base level) applies with no preserved mods.
func (t *KeyType) FindLevel(mods ModMask) (level int, preserve ModMask) {
	active := mods & t.Mods
	for _, e := range t.Map {
		if e.Mods == active {
			return e.Level, e.Preserve
		}
	}
	return 0, 0
}
