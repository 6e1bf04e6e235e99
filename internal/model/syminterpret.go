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

// MatchOp selects how a SymInterpret's modifier condition is tested
// against a candidate modifier mask.
type MatchOp uint8

const (
	MatchAnyOrNone MatchOp = iota
	MatchAny
	MatchAll
	MatchNone
	MatchExactly
)

// SymInterpret is a (keysym, predicate, mods) condition copied from
// the compat section into the keymap; it supplies a default action,
// virtual-modifier-map contribution, and repeat flag to any key level
// it matches that wasn't given these explicitly.
type SymInterpret struct {
	Sym      uint32 // keysym.Sym value, or 0 to match any keysym
	HasSym   bool
	Match    MatchOp
	Mods     ModMask
	VirtualMod ModIndex
	HasVirtualMod bool
	Repeat   TriState
	LevelOneOnly bool
	Action   Action
}

// TriState models a boolean that may also be "unspecified", used for
// SymInterpret.Repeat where the original distinguishes "not set" from
// explicit true/false.
type TriState uint8

const (
	Unset TriState = iota
	False
	True
)

// Matches reports whether the interpret's predicate holds for the
// given effective modifier mask.
func (si *SymInterpret) Matches(mods ModMask) bool {
	switch si.Match {
	case MatchAnyOrNone:
		return mods == 0 || (mods&si.Mods) != 0
	case MatchAny:
		return (mods & si.Mods) != 0
	case MatchAll:
		return (mods & si.Mods) == si.Mods
	case MatchNone:
		return (mods & si.Mods) == 0
	case MatchExactly:
		return mods == si.Mods
	}
	return false
}

// bucket returns the fixed copy-order bucket (0..9) this interpret
// falls into: symbol-specific interprets before wildcard ones, and
// within each, MatchExactly, then All, then None, then Any, then
// AnyOrNone.
func (si *SymInterpret) bucket() int {
	order := map[MatchOp]int{
		MatchExactly:   0,
		MatchAll:       1,
		MatchNone:      2,
		MatchAny:       3,
		MatchAnyOrNone: 4,
	}
	b := order[si.Match]
	if !si.HasSym {
		b += 5
	}
	return b
}

// SortInterprets orders interps into the fixed copy sequence the
// keymap's interpret-application pass relies on: all has-symbol
// interprets (Exactly, All, None, Any, AnyOrNone) before all
// wildcard (no symbol) interprets in the same predicate order.
// The sort is stable, preserving declaration order within a bucket.
func SortInterprets(interps []SymInterpret) {
	// insertion sort: stable and the lists involved are small
	// (compat sections rarely declare more than a few dozen).
	for i := 1; i < len(interps); i++ {
		j := i
		for j > 0 && interps[j-1].bucket() > interps[j].bucket() {
			interps[j-1], interps[j] = interps[j], interps[j-1]
			j--
		}
	}
}

// WhichGroup / WhichMods select the component of state an indicator
// tracks, per the original's which_groups/which_mods LED fields.
type WhichGroup uint8

const (
	GroupBase WhichGroup = 1 << iota
	GroupLatched
	GroupLocked
	GroupEffective
	GroupCompat // LayoutEffective predates the group split; kept distinct
)

type WhichMods uint8

const (
	ModsBase WhichMods = 1 << iota
	ModsLatched
	ModsLocked
	ModsEffective
	ModsCompat
)

// IndicatorMap binds one LED slot to the keymap state that lights it.
type IndicatorMap struct {
	Name        atom.Atom
	WhichGroups WhichGroup
	Groups      uint32 // group mask
	WhichMods   WhichMods
	Mods        ModMask
	Ctrls       uint32
}
