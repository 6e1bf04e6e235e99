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

package serialize

import (
	"strings"
	"testing"

	"github.com/kbdgo/xkbgo/internal/model"
)

func newTestKeymap() *model.Keymap {
	km := model.NewKeymap()
	km.KeycodesName = km.Atoms.Intern("test")
	km.TypesName = km.Atoms.Intern("test")
	km.CompatName = km.Atoms.Intern("test")
	km.SymbolsName = km.Atoms.Intern("test")

	km.Types = append(km.Types, model.KeyType{
		Name:      km.Atoms.Intern("TWO_LEVEL"),
		Mods:      model.ShiftMask,
		NumLevels: 2,
		Map:       []model.MapEntry{{Mods: model.ShiftMask, Level: 1}},
	})

	k := &model.Key{
		Code: 24,
		Name: km.Atoms.Intern("AD01"),
		Groups: []model.Group{{
			TypeIndex: 0,
			Levels: []model.Level{
				{Syms: []uint32{0x0071}},
				{Syms: []uint32{0x0051}},
			},
		}},
	}
	km.AddKey(k)
	return km
}

func TestGetAsStringRendersFourSections(t *testing.T) {
	km := newTestKeymap()
	out, err := GetAsString(km, TextV1)
	if err != nil {
		t.Fatalf("GetAsString: %v", err)
	}
	for _, want := range []string{"xkb_keycodes", "xkb_types", "xkb_compatibility", "xkb_symbols", "<AD01>", "q", "Q"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGetAsStringRejectsUnsupportedFormat(t *testing.T) {
	km := newTestKeymap()
	if _, err := GetAsString(km, Format(99)); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSimpleKeyLineSingleGroupNoAction(t *testing.T) {
	km := newTestKeymap()
	k := km.Key(24)
	simple, line := simpleKeyLine(km, k)
	if !simple {
		t.Fatalf("expected a single-group, no-action key to use the simple form")
	}
	if !strings.Contains(line, "q") || !strings.Contains(line, "Q") {
		t.Fatalf("unexpected simple key line: %q", line)
	}
}

func TestSimpleKeyLineFalseWithAction(t *testing.T) {
	km := newTestKeymap()
	k := km.Key(24)
	k.Groups[0].Levels[0].HasAction = true
	simple, _ := simpleKeyLine(km, k)
	if simple {
		t.Fatalf("expected a key with a per-level action to use the multi-line form")
	}
}

func TestFormatModMaskNames(t *testing.T) {
	km := newTestKeymap()
	if got := formatModMask(km, 0); got != "none" {
		t.Fatalf("formatModMask(0) = %q, want none", got)
	}
	if got := formatModMask(km, model.AllRealMods); got != "all" {
		t.Fatalf("formatModMask(all) = %q, want all", got)
	}
	if got := formatModMask(km, model.ShiftMask|model.ControlMask); got != "Shift+Control" {
		t.Fatalf("formatModMask(Shift|Control) = %q, want Shift+Control", got)
	}
}

func TestWriteActionSetModsRendering(t *testing.T) {
	km := newTestKeymap()
	a := model.Action{Kind: model.ActionModSet, Mods: model.ShiftMask}
	got := writeAction(km, a)
	want := "SetMods(modifiers=Shift)"
	if got != want {
		t.Fatalf("writeAction = %q, want %q", got, want)
	}
}

func TestBufOutOfSpace(t *testing.T) {
	b := newBuf(4)
	b.WriteString("12345")
	if b.OK() {
		t.Fatalf("expected buffer to report not-OK past its limit")
	}
}
