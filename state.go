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

import "github.com/kbdgo/xkbgo/internal/state"

// State tracks one runtime session over a Keymap: depressed/latched/
// locked modifiers and groups, derived effective state, and indicator
// (LED) status.
type State struct {
	st *state.State
}

// NewState returns a fresh State borrowing k for its lifetime.
func NewState(k *Keymap) *State {
	return &State{st: state.New(k.km)}
}

// EvdevOffset is added to a raw evdev scancode to form the KeyCode
// space this module indexes by.
const EvdevOffset = uint32(state.EvdevOffset)

// Direction is a key transition.
type Direction = state.Direction

const (
	KeyUp   = state.KeyUp
	KeyDown = state.KeyDown
)

// Component selects which modifier/group component a query targets.
type Component = state.Component

const (
	Depressed = state.CompDepressed
	Latched   = state.CompLatched
	Locked    = state.CompLocked
	Effective = state.CompEffective
)

// UpdateKey applies a key transition and returns the keysyms produced.
func (s *State) UpdateKey(kc uint32, dir Direction) []uint32 {
	return s.st.UpdateKey(modelKeyCode(kc), dir)
}

// UpdateMask directly sets every modifier/group component.
func (s *State) UpdateMask(depressed, latched, locked uint32, depGroup, latGroup, lockGroup int32) {
	s.st.UpdateMask(modMask(depressed), modMask(latched), modMask(locked), depGroup, latGroup, lockGroup)
}

// KeyGetSyms returns the keysyms kc currently produces.
func (s *State) KeyGetSyms(kc uint32) []uint32 { return s.st.KeyGetSyms(modelKeyCode(kc)) }

// KeyGetOneSym is KeyGetSyms restricted to single-keysym levels.
func (s *State) KeyGetOneSym(kc uint32) uint32 { return s.st.KeyGetOneSym(modelKeyCode(kc)) }

// KeyRepeats reports whether kc auto-repeats.
func (s *State) KeyRepeats(kc uint32) bool { return s.st.KeyRepeats(modelKeyCode(kc)) }

// SerializeMods returns the requested modifier component(s) as a mask.
func (s *State) SerializeMods(comp Component) uint32 { return uint32(s.st.SerializeMods(comp)) }

// SerializeLayout returns the requested group component.
func (s *State) SerializeLayout(comp Component) int32 { return s.st.SerializeLayout(comp) }

// ModNameIsActive reports whether the named modifier is active.
func (s *State) ModNameIsActive(name string, comp Component) bool {
	return s.st.ModNameIsActive(name, comp)
}

// IndicatorMask returns the current 32-bit LED mask.
func (s *State) IndicatorMask() uint32 { return s.st.IndicatorMask() }

// ModMaskRemoveConsumed strips the consumed-modifier bits for kc from mods.
func (s *State) ModMaskRemoveConsumed(kc uint32, mods uint32) uint32 {
	return uint32(s.st.ModMaskRemoveConsumed(modelKeyCode(kc), modMask(mods)))
}
