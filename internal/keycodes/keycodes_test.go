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

package keycodes

import (
	"testing"

	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

func TestCompileKeyNamesAliasesAndIndicators(t *testing.T) {
	src := `
xkb_keycodes "test" {
	<AD01> = 24;
	<LFSH> = 50;
	alias <Q> = <AD01>;
	indicator 1 = "Caps Lock";
};
`
	f, errs := xkbtext.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}

	km := model.NewKeymap()
	if err := Compile(km, f.Keycodes, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	q := km.Key(24)
	if q == nil || km.Atoms.Text(q.Name) != "AD01" {
		t.Fatalf("expected key 24 named AD01, got %#v", q)
	}

	qAlias := km.Atoms.Intern("Q")
	canon, ok := km.Aliases[qAlias]
	if !ok || km.Atoms.Text(canon) != "AD01" {
		t.Fatalf("expected alias Q -> AD01, got %v %v", canon, ok)
	}

	if km.Atoms.Text(km.Indicators[0].Name) != "Caps Lock" {
		t.Fatalf("expected indicator 1 named 'Caps Lock', got %q", km.Atoms.Text(km.Indicators[0].Name))
	}

	if km.MinKeyCode != 24 || km.MaxKeyCode != 50 {
		t.Fatalf("min/max keycode = %d/%d, want 24/50", km.MinKeyCode, km.MaxKeyCode)
	}
}

func TestCompileAugmentKeepsFirstKeyName(t *testing.T) {
	src := `
xkb_keycodes "test" {
	<AD01> = 24;
	augment <AD02> = 24;
};
`
	f, _ := xkbtext.Parse(src)
	km := model.NewKeymap()
	if err := Compile(km, f.Keycodes, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := km.Atoms.Text(km.Key(24).Name); got != "AD01" {
		t.Fatalf("AUGMENT should keep the first key name, got %q", got)
	}
}

func TestCompileOverrideReplacesKeyName(t *testing.T) {
	src := `
xkb_keycodes "test" {
	<AD01> = 24;
	override <AD02> = 24;
};
`
	f, _ := xkbtext.Parse(src)
	km := model.NewKeymap()
	if err := Compile(km, f.Keycodes, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := km.Atoms.Text(km.Key(24).Name); got != "AD02" {
		t.Fatalf("OVERRIDE should replace the key name, got %q", got)
	}
}

type stubKeycodesResolver struct {
	section *xkbtext.Section
}

func (r stubKeycodesResolver) ResolveKeycodes(spec string) (*xkbtext.Section, error) {
	return r.section, nil
}

func TestCompileRecursesIntoIncludes(t *testing.T) {
	included, errs := xkbtext.Parse(`xkb_keycodes "evdev" { <ESC> = 9; };`)
	if len(errs) != 0 {
		t.Fatalf("parse include: %v", errs)
	}
	main, errs := xkbtext.Parse(`xkb_keycodes "test" { include "evdev"; };`)
	if len(errs) != 0 {
		t.Fatalf("parse main: %v", errs)
	}

	km := model.NewKeymap()
	if err := Compile(km, main.Keycodes, stubKeycodesResolver{included.Keycodes}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if km.Key(9) == nil {
		t.Fatalf("expected the included <ESC> = 9 to be compiled in")
	}
}
