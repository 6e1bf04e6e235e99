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

// Package state implements the keymap runtime state machine:
// depressed/latched/locked modifier and group tracking, derived
// effective state, indicator mask derivation, and consumed-modifier
// computation. Grounded on the original's test/state.c scenarios.
package state

import "github.com/kbdgo/xkbgo/internal/model"

// EvdevOffset is added to a raw evdev scancode to form the KeyCode
// space this package and the assembled keymap both index by. The
// state machine only consumes already-offset keycodes; enumerating
// and opening input devices is out of scope.
const EvdevOffset model.KeyCode = 8

// Direction is a key transition.
type Direction int

const (
	KeyUp Direction = iota
	KeyDown
)

// Component selects which modifier/group component a query targets.
type Component int

const (
	CompDepressed Component = 1 << iota
	CompLatched
	CompLocked
	CompEffective
)

// State tracks one active session over an immutable *model.Keymap.
type State struct {
	km *model.Keymap

	modsDepressed model.ModMask
	modsLatched   model.ModMask
	modsLocked    model.ModMask

	groupDepressed int32
	groupLatched   int32
	groupLocked    int32

	pressedKeys map[model.KeyCode]bool
}

// New returns a fresh State borrowing km for its lifetime.
func New(km *model.Keymap) *State {
	return &State{km: km, pressedKeys: make(map[model.KeyCode]bool)}
}

// Keymap returns the keymap this state borrows.
func (s *State) Keymap() *model.Keymap { return s.km }

func (s *State) effectiveMods() model.ModMask {
	return s.modsDepressed | s.modsLatched | s.modsLocked
}

func (s *State) effectiveGroup() int32 {
	return s.groupDepressed + s.groupLatched + s.groupLocked
}

// KeyRepeats reports whether kc is configured to auto-repeat,
// promoted to a named tested operation per test_repeat.
func (s *State) KeyRepeats(kc model.KeyCode) bool {
	k := s.km.Key(kc)
	if k == nil {
		return false
	}
	return k.Repeats == model.True
}

// UpdateKey applies a key transition, updating modifier/group latch
// and lock state per the key's bound action(s), and returns the
// keysyms the key currently produces under the resulting effective
// state.
func (s *State) UpdateKey(kc model.KeyCode, dir Direction) []uint32 {
	k := s.km.Key(kc)
	if k == nil {
		return nil
	}

	down := dir == KeyDown
	wasPressed := s.pressedKeys[kc]
	s.pressedKeys[kc] = down

	lvl := s.levelFor(k)
	if lvl != nil && lvl.HasAction {
		switch {
		case down && !wasPressed:
			s.applyAction(lvl.Action)
		case !down && wasPressed && lvl.Action.Kind == model.ActionModSet:
			// releasing a SetMods key clears the modifiers it set
			s.modsDepressed &^= lvl.Action.Mods
		}
	}

	return s.KeyGetSyms(kc)
}

func (s *State) levelFor(k *model.Key) *model.Level {
	if len(k.Groups) == 0 {
		return nil
	}
	gi := int(s.effectiveGroup()) % len(k.Groups)
	if gi < 0 {
		gi += len(k.Groups)
	}
	g := k.Groups[gi]
	typeIdx := g.TypeIndex
	level := 0
	if typeIdx >= 0 && typeIdx < len(s.km.Types) {
		t := s.km.Types[typeIdx]
		level, _ = t.FindLevel(s.effectiveMods())
	}
	if level >= len(g.Levels) {
		level = 0
	}
	if level >= len(g.Levels) {
		return nil
	}
	return &g.Levels[level]
}

func (s *State) applyAction(a model.Action) {
	switch a.Kind {
	case model.ActionModSet:
		s.modsDepressed |= a.Mods
	case model.ActionModLatch:
		s.modsLatched |= a.Mods
	case model.ActionModLock:
		s.modsLocked ^= a.Mods
	case model.ActionGroupSet:
		if a.GroupIsRel {
			s.groupDepressed += a.Group
		} else {
			s.groupDepressed = a.Group
		}
	case model.ActionGroupLatch:
		if a.GroupIsRel {
			s.groupLatched += a.Group
		} else {
			s.groupLatched = a.Group
		}
	case model.ActionGroupLock:
		if a.GroupIsRel {
			s.groupLocked += a.Group
		} else {
			s.groupLocked = a.Group
		}
	}
}

// KeyGetSyms returns the keysyms kc currently produces under the
// state's effective modifiers/group, without changing any state.
func (s *State) KeyGetSyms(kc model.KeyCode) []uint32 {
	k := s.km.Key(kc)
	if k == nil {
		return nil
	}
	lvl := s.levelFor(k)
	if lvl == nil {
		return nil
	}
	return lvl.Syms
}

// KeyGetOneSym is KeyGetSyms but returns NoSymbol (0) unless exactly
// one keysym is bound.
func (s *State) KeyGetOneSym(kc model.KeyCode) uint32 {
	syms := s.KeyGetSyms(kc)
	if len(syms) != 1 {
		return 0
	}
	return syms[0]
}

// UpdateMask directly sets the depressed/latched/locked modifier and
// group components, as a client-provided authoritative update (the
// xkb_state_update_mask equivalent exercised by test_serialisation).
func (s *State) UpdateMask(depressed, latched, locked model.ModMask, depGroup, latGroup, lockGroup int32) {
	s.modsDepressed = depressed
	s.modsLatched = latched
	s.modsLocked = locked
	s.groupDepressed = depGroup
	s.groupLatched = latGroup
	s.groupLocked = lockGroup
}

// SerializeMods returns the requested modifier component(s), combined
// if more than one bit of comp is set (matching xkb_state_serialize_mods).
func (s *State) SerializeMods(comp Component) model.ModMask {
	var m model.ModMask
	if comp&CompDepressed != 0 {
		m |= s.modsDepressed
	}
	if comp&CompLatched != 0 {
		m |= s.modsLatched
	}
	if comp&CompLocked != 0 {
		m |= s.modsLocked
	}
	if comp&CompEffective != 0 {
		m |= s.effectiveMods()
	}
	return m
}

// SerializeLayout returns the requested group component.
func (s *State) SerializeLayout(comp Component) int32 {
	switch comp {
	case CompDepressed:
		return s.groupDepressed
	case CompLatched:
		return s.groupLatched
	case CompLocked:
		return s.groupLocked
	default:
		return s.effectiveGroup()
	}
}

// ModNameIsActive reports whether the named modifier is active in
// comp's component(s).
func (s *State) ModNameIsActive(name string, comp Component) bool {
	idx, ok := s.km.Mods.Find(s.km.Atoms, name)
	if !ok {
		return false
	}
	mask := s.SerializeMods(comp)
	real := s.km.Mods.ResolveVirtual(mask)
	if int(idx) >= model.NumRealMods {
		return real&s.km.Mods.Mods[idx].Mapping != 0
	}
	return real&(1<<uint(idx)) != 0
}

// MatchOp selects how ModNamesAreActive combines multiple names.
type MatchOp int

const (
	MatchAny MatchOp = iota
	MatchAll
)

// ModNamesAreActive reports whether names are active in comp,
// combined per op.
func (s *State) ModNamesAreActive(comp Component, op MatchOp, names ...string) bool {
	for _, n := range names {
		active := s.ModNameIsActive(n, comp)
		if op == MatchAny && active {
			return true
		}
		if op == MatchAll && !active {
			return false
		}
	}
	return op == MatchAll
}

// IndicatorMask returns the 32-bit LED mask derived from the current
// effective state, index-aligned with km.Indicators.
func (s *State) IndicatorMask() uint32 {
	var mask uint32
	effMods := s.km.Mods.ResolveVirtual(s.effectiveMods())
	effGroup := s.effectiveGroup()
	for i := range s.km.Indicators {
		im := s.km.Indicators[i]
		if im.Name == 0 {
			continue
		}
		lit := false
		if im.Mods != 0 && effMods&s.km.Mods.ResolveVirtual(im.Mods) != 0 {
			lit = true
		}
		if im.Groups != 0 && im.Groups&(1<<uint(effGroup)) != 0 {
			lit = true
		}
		if lit {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// ModMaskRemoveConsumed removes, from mods, the bits of the key type's
// modifier mask, except those the entry matched by mods marks as
// preserved — the "consumed modifiers" computation exercised by
// test_consume.
func (s *State) ModMaskRemoveConsumed(kc model.KeyCode, mods model.ModMask) model.ModMask {
	k := s.km.Key(kc)
	if k == nil || len(k.Groups) == 0 {
		return mods
	}
	gi := int(s.effectiveGroup()) % len(k.Groups)
	if gi < 0 {
		gi += len(k.Groups)
	}
	typeIdx := k.Groups[gi].TypeIndex
	if typeIdx < 0 || typeIdx >= len(s.km.Types) {
		return mods
	}
	t := s.km.Types[typeIdx]
	_, preserve := t.FindLevel(mods)
	return mods &^ (t.Mods &^ preserve)
}
