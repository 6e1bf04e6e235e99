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

package xkbtext

import (
	"testing"

	"github.com/kbdgo/xkbgo/internal/model"
)

func TestParseKeycodesSection(t *testing.T) {
	src := `
xkb_keycodes "test" {
	<AD01> = 24;
	<LFSH> = 50;
	alias <Q> = <AD01>;
	indicator 1 = "Caps Lock";
};
`
	f, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if f.Keycodes == nil {
		t.Fatalf("expected a keycodes section")
	}
	if len(f.Keycodes.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(f.Keycodes.Stmts))
	}
	kn, ok := f.Keycodes.Stmts[0].(*KeyNameDef)
	if !ok || kn.Name != "AD01" || kn.Code != 24 {
		t.Fatalf("stmt[0] = %#v, want KeyNameDef{AD01, 24}", f.Keycodes.Stmts[0])
	}
	al, ok := f.Keycodes.Stmts[2].(*AliasDef)
	if !ok || al.New != "Q" || al.Old != "AD01" {
		t.Fatalf("stmt[2] = %#v, want AliasDef{Q, AD01}", f.Keycodes.Stmts[2])
	}
}

func TestParseMergeModeKeywords(t *testing.T) {
	src := `
xkb_symbols "test" {
	override key <AD01> { [ a, A ] };
	augment key <AD02> { [ b, B ] };
};
`
	f, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kd0 := f.Symbols.Stmts[0].(*KeyDef)
	if kd0.Merge != model.MergeOverride {
		t.Fatalf("expected MergeOverride, got %v", kd0.Merge)
	}
	kd1 := f.Symbols.Stmts[1].(*KeyDef)
	if kd1.Merge != model.MergeAugment {
		t.Fatalf("expected MergeAugment, got %v", kd1.Merge)
	}
}

func TestParseKeyBareSymbolsShorthand(t *testing.T) {
	src := `
xkb_symbols "test" {
	key <AD01> { [ q, Q ] };
};
`
	f, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kd := f.Symbols.Stmts[0].(*KeyDef)
	sg, ok := kd.Body[0].(*KeySymbolsGroup)
	if !ok || len(sg.Syms) != 2 {
		t.Fatalf("expected a 2-symbol shorthand group, got %#v", kd.Body[0])
	}
}

func TestParseInterpretWithPredicate(t *testing.T) {
	src := `
xkb_compatibility "test" {
	interpret Shift_L+AnyOf(all) {
		action = SetMods(modifiers=Shift);
	};
};
`
	f, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	id, ok := f.Compat.Stmts[0].(*InterpDef)
	if !ok {
		t.Fatalf("expected InterpDef, got %#v", f.Compat.Stmts[0])
	}
	if id.Sym != "Shift_L" || id.Pred == nil || id.Pred.Op != "AnyOf" {
		t.Fatalf("unexpected interpret parse: %#v", id)
	}
	vd, ok := id.Body[0].(*VarDef)
	if !ok {
		t.Fatalf("expected VarDef in interpret body, got %#v", id.Body[0])
	}
	ad, ok := vd.RHS.(*ActionDecl)
	if !ok || ad.Name != "SetMods" || len(ad.Args) != 1 || ad.Args[0].Name != "modifiers" {
		t.Fatalf("unexpected action decl: %#v", vd.RHS)
	}
}

func TestParseTypeMapAndPreserve(t *testing.T) {
	src := `
xkb_types "test" {
	type "TWO_LEVEL" {
		modifiers = Shift;
		map[Shift] = Level2;
		preserve[Shift] = Shift;
		level_name[Level1] = "Base";
	};
};
`
	f, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	td := f.Types.Stmts[0].(*TypeDef)
	if td.Name != "TWO_LEVEL" {
		t.Fatalf("type name = %q, want TWO_LEVEL", td.Name)
	}
	var sawMap, sawPreserve, sawLevelName bool
	for _, s := range td.Body {
		switch s.(type) {
		case *KeyTypeMapEntry:
			sawMap = true
		case *KeyTypePreserveEntry:
			sawPreserve = true
		case *KeyTypeLevelName:
			sawLevelName = true
		}
	}
	if !sawMap || !sawPreserve || !sawLevelName {
		t.Fatalf("missing expected type body statement(s): %#v", td.Body)
	}
}

func TestParseRecoversFromBadStatement(t *testing.T) {
	src := `
xkb_keycodes "test" {
	<AD01> 24;
	<AD02> = 25;
};
`
	f, errs := Parse(src)
	if len(errs) == 0 {
		t.Fatalf("expected a recoverable parse error for the malformed first statement")
	}
	if f.Keycodes == nil || len(f.Keycodes.Stmts) != 1 {
		t.Fatalf("expected parser to recover and still parse the second statement, got %#v", f.Keycodes)
	}
}

func TestParseIncludeStmt(t *testing.T) {
	src := `
xkb_symbols "test" {
	include "pc+us";
};
`
	f, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	inc, ok := f.Symbols.Stmts[0].(*IncludeStmt)
	if !ok || inc.Spec != "pc+us" {
		t.Fatalf("expected IncludeStmt{pc+us}, got %#v", f.Symbols.Stmts[0])
	}
}
