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

// ModMask is a bitmask over the 32 possible modifiers (8 real + up to
// 24 virtual), indexed the same way for both kinds.
type ModMask uint32

// ModIndex names a single modifier's bit position.
type ModIndex uint8

// The eight real modifiers occupy fixed bit positions, matching the
// historical X11 core protocol layout. Every keymap has exactly these
// eight real modifier slots; virtual modifiers are appended after.
const (
	ShiftIndex ModIndex = iota
	LockIndex
	ControlIndex
	Mod1Index
	Mod2Index
	Mod3Index
	Mod4Index
	Mod5Index
	NumRealMods = 8
)

const (
	ShiftMask   ModMask = 1 << ShiftIndex
	LockMask    ModMask = 1 << LockIndex
	ControlMask ModMask = 1 << ControlIndex
	Mod1Mask    ModMask = 1 << Mod1Index
	Mod2Mask    ModMask = 1 << Mod2Index
	Mod3Mask    ModMask = 1 << Mod3Index
	Mod4Mask    ModMask = 1 << Mod4Index
	Mod5Mask    ModMask = 1 << Mod5Index

	NoModifier  ModMask = 0
	AllRealMods ModMask = (1 << NumRealMods) - 1
)

// MaxMods bounds the total number of real+virtual modifiers a keymap
// may declare (the mask is 32 bits wide).
const MaxMods = 32

// Modifier is one declared modifier (real or virtual) in a keymap.
type Modifier struct {
	Name    atom.Atom
	Virtual bool
	// Mapping is the real-modifier mask a virtual modifier resolves
	// to once the keymap is finalized; zero for real modifiers.
	Mapping ModMask
}

var realModNames = [NumRealMods]string{
	"Shift", "Lock", "Control", "Mod1", "Mod2", "Mod3", "Mod4", "Mod5",
}

// RealModName returns the fixed name of a real modifier index.
func RealModName(i ModIndex) string {
	if int(i) < len(realModNames) {
		return realModNames[i]
	}
	return ""
}

// ModSet tracks the full modifier declaration list for a keymap:
// the fixed 8 real modifiers plus any number of virtual modifiers.
type ModSet struct {
	Mods []Modifier // index 0..7 always the 8 real modifiers
}

// NewModSet returns a ModSet pre-populated with the 8 fixed real
// modifiers, named via tbl.
func NewModSet(tbl *atom.Table) *ModSet {
	ms := &ModSet{Mods: make([]Modifier, NumRealMods)}
	for i := range ms.Mods {
		ms.Mods[i] = Modifier{Name: tbl.Intern(realModNames[i])}
	}
	return ms
}

// AddVirtual declares a new virtual modifier named name, returning its
// index. If name is already declared, returns the existing index.
func (ms *ModSet) AddVirtual(tbl *atom.Table, name string) ModIndex {
	a := tbl.Intern(name)
	for i, m := range ms.Mods {
		if m.Name == a {
			return ModIndex(i)
		}
	}
	idx := ModIndex(len(ms.Mods))
	ms.Mods = append(ms.Mods, Modifier{Name: a, Virtual: true})
	return idx
}

// Find returns the index of the modifier named name (real or virtual),
// searching both namespaces.
func (ms *ModSet) Find(tbl *atom.Table, name string) (ModIndex, bool) {
	a, ok := tbl.Lookup(name)
	if !ok {
		return 0, false
	}
	for i, m := range ms.Mods {
		if m.Name == a {
			return ModIndex(i), true
		}
	}
	return 0, false
}

// ResolveVirtual expands a mask over virtual-modifier indices into the
// equivalent real-modifier mask, via each virtual modifier's Mapping.
// Any real-modifier bits in vmask pass through unchanged.
func (ms *ModSet) ResolveVirtual(vmask ModMask) ModMask {
	real := vmask & AllRealMods
	for i := NumRealMods; i < len(ms.Mods); i++ {
		if vmask&(1<<uint(i)) != 0 {
			real |= ms.Mods[i].Mapping
		}
	}
	return real
}
