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

package symbols

import (
	"testing"

	"github.com/kbdgo/xkbgo/internal/expr"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

func newKeymapWithKey(name string, code model.KeyCode) *model.Keymap {
	km := model.NewKeymap()
	km.AddKey(&model.Key{Code: code, Name: km.Atoms.Intern(name)})
	km.Types = append(km.Types, model.KeyType{
		Name:      km.Atoms.Intern("TWO_LEVEL"),
		Mods:      model.ShiftMask,
		NumLevels: 2,
		Map:       []model.MapEntry{{Mods: model.ShiftMask, Level: 1}},
	})
	return km
}

func TestCompileBareSymbolsShorthand(t *testing.T) {
	km := newKeymapWithKey("AD01", 24)
	ev := expr.New(km)

	f, errs := xkbtext.Parse(`xkb_symbols "test" { key <AD01> { [ q, Q ] }; };`)
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	if err := Compile(km, f.Symbols, ev, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	k := km.Key(24)
	if len(k.Groups) != 1 || len(k.Groups[0].Levels) != 2 {
		t.Fatalf("expected 1 group of 2 levels, got %#v", k.Groups)
	}
	if k.Groups[0].Levels[0].Syms[0] != 0x0071 || k.Groups[0].Levels[1].Syms[0] != 0x0051 {
		t.Fatalf("unexpected syms: %#v", k.Groups[0].Levels)
	}
	if k.Explicit&model.ExplicitSymbols == 0 {
		t.Fatalf("expected ExplicitSymbols to be set")
	}
}

func TestCompileKeyTypeAndRepeatField(t *testing.T) {
	km := newKeymapWithKey("AD01", 24)
	ev := expr.New(km)

	f, errs := xkbtext.Parse(`
xkb_symbols "test" {
	key <AD01> {
		[ q, Q ]
		type = "TWO_LEVEL";
		repeat = False;
	};
};
`)
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	if err := Compile(km, f.Symbols, ev, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	k := km.Key(24)
	if k.Groups[0].TypeIndex != 0 {
		t.Fatalf("expected TypeIndex 0 (TWO_LEVEL), got %d", k.Groups[0].TypeIndex)
	}
	if k.Repeats != model.False {
		t.Fatalf("expected Repeats=False, got %v", k.Repeats)
	}
}

func TestCompileModMapDeclaresModifierKey(t *testing.T) {
	km := newKeymapWithKey("LFSH", 50)
	ev := expr.New(km)

	f, errs := xkbtext.Parse(`
xkb_symbols "test" {
	modifier_map Shift { <LFSH> };
};
`)
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	if err := Compile(km, f.Symbols, ev, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	k := km.Key(50)
	if k.ModMap&model.ShiftMask == 0 {
		t.Fatalf("expected LFSH to be mapped to Shift, got ModMap=%#x", k.ModMap)
	}
	if k.Explicit&model.ExplicitModMap == 0 {
		t.Fatalf("expected ExplicitModMap to be set")
	}
}

func TestCompileGroupNameDef(t *testing.T) {
	km := model.NewKeymap()
	ev := expr.New(km)
	f, errs := xkbtext.Parse(`xkb_symbols "test" { name[Group1] = "Default"; };`)
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	if err := Compile(km, f.Symbols, ev, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(km.GroupNames) != 1 || km.Atoms.Text(km.GroupNames[0]) != "Default" {
		t.Fatalf("unexpected group names: %#v", km.GroupNames)
	}
}
