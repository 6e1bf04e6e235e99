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

// KeyCode identifies a physical key. The evdev convention offsets raw
// scancodes by 8 (see state.EvdevOffset); the keymap itself is
// agnostic to the offset and simply indexes by whatever KeyCode the
// keycodes section assigned.
type KeyCode uint32

// Explicit flags record which per-level properties a key declared
// itself, so interpret application only fills in what wasn't set.
type Explicit uint8

const (
	ExplicitSymbols Explicit = 1 << iota
	ExplicitActions
	ExplicitAutorepeat
	ExplicitModMap
	ExplicitVModMap
)

// Level is one column of a group: the keysym(s) it produces and the
// action (if any) bound to it.
type Level struct {
	Syms     []uint32 // keysym.Sym values; empty means NoSymbol
	Action   Action
	HasAction bool
}

// Group is one layout group of a key: a reference to the KeyType that
// governs it, plus its levels.
type Group struct {
	TypeIndex int // index into Keymap.Types, or -1 if unset
	Levels    []Level
}

// Key is one physical key's full definition.
type Key struct {
	Name     atom.Atom // the 4-character <NAME> keycode name
	Code     KeyCode
	Groups   []Group
	Repeats  TriState
	ModMap   ModMask // bits set in a modifier_map NAME { <KEY> } declaration
	VModMap  ModMask
	Explicit Explicit
}

// HasExplicit reports whether flag was set by the source text for
// this key (as opposed to being filled in by interpret application).
func (k *Key) HasExplicit(flag Explicit) bool {
	return k.Explicit&flag != 0
}

// NumGroups returns how many groups this key declares.
func (k *Key) NumGroups() int { return len(k.Groups) }
