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

import "testing"

func TestKeyTypeFindLevelExactMatch(t *testing.T) {
	kt := &KeyType{
		Mods: ShiftMask | LockMask,
		Map: []MapEntry{
			{Mods: ShiftMask, Level: 1, Preserve: 0},
			{Mods: LockMask, Level: 1, Preserve: LockMask},
		},
	}
	lvl, preserve := kt.FindLevel(ShiftMask)
	if lvl != 1 || preserve != 0 {
		t.Fatalf("FindLevel(Shift) = (%d, %#x), want (1, 0)", lvl, preserve)
	}
	lvl, preserve = kt.FindLevel(LockMask)
	if lvl != 1 || preserve != LockMask {
		t.Fatalf("FindLevel(Lock) = (%d, %#x), want (1, Lock)", lvl, preserve)
	}
}

func TestKeyTypeFindLevelFallsBackToBase(t *testing.T) {
	kt := &KeyType{Mods: ShiftMask, Map: []MapEntry{{Mods: ShiftMask, Level: 1}}}
	lvl, preserve := kt.FindLevel(ControlMask)
	if lvl != 0 || preserve != 0 {
		t.Fatalf("FindLevel(unrelated mods) = (%d, %#x), want (0, 0)", lvl, preserve)
	}
}

func TestModSetResolveVirtual(t *testing.T) {
	tbl := newTestTable()
	ms := NewModSet(tbl)
	idx := ms.AddVirtual(tbl, "NumLock")
	ms.Mods[idx].Mapping = Mod2Mask

	resolved := ms.ResolveVirtual(ShiftMask | (1 << uint(idx)))
	want := ShiftMask | Mod2Mask
	if resolved != want {
		t.Fatalf("ResolveVirtual = %#x, want %#x", resolved, want)
	}
}
