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

package state

import (
	"testing"

	"github.com/kbdgo/xkbgo/internal/model"
)

// buildSimpleKeymap assembles a minimal keymap with one key ("Q") of
// two levels (base, shifted) gated by a type that activates on Shift,
// plus a Shift key whose level-1 interpret (wired directly here,
// bypassing the compat compiler) sets the Shift modifier depressed.
func buildSimpleKeymap(t *testing.T) *model.Keymap {
	t.Helper()
	km := model.NewKeymap()

	fourLevel := model.KeyType{
		Name: km.Atoms.Intern("TWO_LEVEL"),
		Mods: model.ShiftMask,
		NumLevels: 2,
		Map:  []model.MapEntry{{Mods: model.ShiftMask, Level: 1}},
	}
	km.Types = append(km.Types, fourLevel)

	qKey := &model.Key{
		Code: 24, // Q on a typical evdev-offset layout
		Name: km.Atoms.Intern("AD01"),
		Groups: []model.Group{{
			TypeIndex: 0,
			Levels: []model.Level{
				{Syms: []uint32{0x0071}}, // q
				{Syms: []uint32{0x0051}}, // Q
			},
		}},
	}
	km.AddKey(qKey)

	shiftKey := &model.Key{
		Code: 50,
		Name: km.Atoms.Intern("LFSH"),
		Groups: []model.Group{{
			TypeIndex: -1,
			Levels: []model.Level{
				{Action: model.Action{Kind: model.ActionModSet, Mods: model.ShiftMask}, HasAction: true},
			},
		}},
	}
	km.AddKey(shiftKey)

	return km
}

func TestUpdateKeyShiftChangesLevel(t *testing.T) {
	km := buildSimpleKeymap(t)
	st := New(km)

	if got := st.KeyGetOneSym(24); got != 0x0071 {
		t.Fatalf("base level sym = %#x, want 'q'", got)
	}

	st.UpdateKey(50, KeyDown)
	if got := st.KeyGetOneSym(24); got != 0x0051 {
		t.Fatalf("shifted level sym = %#x, want 'Q'", got)
	}

	st.UpdateKey(50, KeyUp)
	// releasing the SetMods key clears the Shift it set, so the key
	// falls back to its base level.
	if got := st.KeyGetOneSym(24); got != 0x0071 {
		t.Fatalf("level should return to base after Shift is released, got %#x", got)
	}
}

func TestUpdateMaskSerializesComponents(t *testing.T) {
	km := buildSimpleKeymap(t)
	st := New(km)

	st.UpdateMask(model.ShiftMask, model.ControlMask, 0, 0, 0, 0)

	if got := st.SerializeMods(CompDepressed); got != model.ShiftMask {
		t.Fatalf("depressed mods = %#x, want Shift", got)
	}
	if got := st.SerializeMods(CompLatched); got != model.ControlMask {
		t.Fatalf("latched mods = %#x, want Control", got)
	}
	if got := st.SerializeMods(CompEffective); got != model.ShiftMask|model.ControlMask {
		t.Fatalf("effective mods = %#x, want Shift|Control", got)
	}
}

func TestKeyRepeats(t *testing.T) {
	km := buildSimpleKeymap(t)
	km.Keys[24].Repeats = model.True
	st := New(km)
	if !st.KeyRepeats(24) {
		t.Fatalf("expected key 24 to repeat")
	}
	if st.KeyRepeats(50) {
		t.Fatalf("expected key 50 (unset repeat) to not repeat")
	}
}

func TestModMaskRemoveConsumed(t *testing.T) {
	km := buildSimpleKeymap(t)
	km.Types[0].Map[0].Preserve = 0 // Shift is fully consumed selecting level 2
	st := New(km)

	remaining := st.ModMaskRemoveConsumed(24, model.ShiftMask|model.ControlMask)
	if remaining != model.ControlMask {
		t.Fatalf("ModMaskRemoveConsumed = %#x, want Control only", remaining)
	}
}
