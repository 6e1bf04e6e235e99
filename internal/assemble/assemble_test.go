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

package assemble

import (
	"testing"

	"github.com/kbdgo/xkbgo/internal/klog"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

func mustParseSection(t *testing.T, src string, get func(*xkbtext.File) *xkbtext.Section) *xkbtext.Section {
	t.Helper()
	f, errs := xkbtext.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	sec := get(f)
	if sec == nil {
		t.Fatalf("expected a parsed section")
	}
	return sec
}

func TestAssembleAppliesInterpretToUnsetLevel(t *testing.T) {
	keycodes := mustParseSection(t, `
xkb_keycodes "test" {
	<AD01> = 24;
	<LFSH> = 50;
};
`, func(f *xkbtext.File) *xkbtext.Section { return f.Keycodes })

	typesSec := mustParseSection(t, `
xkb_types "test" {
	type "TWO_LEVEL" {
		modifiers = Shift;
		map[Shift] = 2;
	};
};
`, func(f *xkbtext.File) *xkbtext.Section { return f.Types })

	compatSec := mustParseSection(t, `
xkb_compatibility "test" {
	interpret q {
		action = SetMods(modifiers=Shift);
	};
};
`, func(f *xkbtext.File) *xkbtext.Section { return f.Compat })

	symbolsSec := mustParseSection(t, `
xkb_symbols "test" {
	key <AD01> { type = "TWO_LEVEL"; [ q, Q ] };
};
`, func(f *xkbtext.File) *xkbtext.Section { return f.Symbols })

	km, err := Assemble(Components{
		Keycodes: keycodes,
		Types:    typesSec,
		Compat:   compatSec,
		Symbols:  symbolsSec,
	}, nil, klog.New(nil, 0))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	k := km.Key(24)
	if k == nil {
		t.Fatalf("expected key 24 to exist")
	}
	lvl0 := k.Groups[0].Levels[0]
	if !lvl0.HasAction || lvl0.Action.Kind != model.ActionModSet || lvl0.Action.Mods != model.ShiftMask {
		t.Fatalf("expected the q interpret to bind SetMods(Shift) on level 1, got %#v", lvl0)
	}
}

func TestAssembleDoesNotOverrideExplicitAction(t *testing.T) {
	keycodes := mustParseSection(t, `xkb_keycodes "test" { <AD01> = 24; };`,
		func(f *xkbtext.File) *xkbtext.Section { return f.Keycodes })
	compatSec := mustParseSection(t, `
xkb_compatibility "test" {
	interpret q { action = SetMods(modifiers=Shift); };
};
`, func(f *xkbtext.File) *xkbtext.Section { return f.Compat })
	symbolsSec := mustParseSection(t, `
xkb_symbols "test" {
	key <AD01> {
		[ q ]
		actions[Group1] = [ SetMods(modifiers=Control) ];
	};
};
`, func(f *xkbtext.File) *xkbtext.Section { return f.Symbols })

	km, err := Assemble(Components{Keycodes: keycodes, Compat: compatSec, Symbols: symbolsSec}, nil, klog.New(nil, 0))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	lvl0 := km.Key(24).Groups[0].Levels[0]
	if lvl0.Action.Kind != model.ActionModSet || lvl0.Action.Mods != model.ControlMask {
		t.Fatalf("explicit action should not be overridden by the interpret, got %#v", lvl0.Action)
	}
}
