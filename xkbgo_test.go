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

import (
	"strings"
	"testing"
)

func staticKeymapResolver() *StaticResolver {
	return &StaticResolver{
		Keycodes: `<AD01> = 24; <LFSH> = 50;`,
		Types: `
			type "TWO_LEVEL" {
				modifiers = Shift;
				map[Shift] = 2;
			};
		`,
		Compat: `
			interpret q {
				action = SetMods(modifiers=Shift);
			};
		`,
		Symbols: `
			key <AD01> { type = "TWO_LEVEL"; [ q, Q ] };
		`,
	}
}

func TestNewKeymapFromNamesCompilesAndSerializes(t *testing.T) {
	ctx := NewContext()
	km, err := ctx.NewKeymapFromNames(RMLVO{Layout: "us"}, staticKeymapResolver())
	if err != nil {
		t.Fatalf("NewKeymapFromNames: %v", err)
	}

	out, err := km.GetAsString(TextV1)
	if err != nil {
		t.Fatalf("GetAsString: %v", err)
	}
	if !strings.Contains(out, "<AD01>") {
		t.Fatalf("expected serialized keymap to mention <AD01>, got:\n%s", out)
	}
}

func TestNewKeymapFromNamesRequiresResolver(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.NewKeymapFromNames(RMLVO{}, nil); err != ErrNoResolver {
		t.Fatalf("expected ErrNoResolver, got %v", err)
	}
}

func TestStateUpdateKeyAppliesBoundAction(t *testing.T) {
	ctx := NewContext()
	km, err := ctx.NewKeymapFromNames(RMLVO{}, staticKeymapResolver())
	if err != nil {
		t.Fatalf("NewKeymapFromNames: %v", err)
	}

	st := NewState(km)
	if got := st.KeyGetOneSym(24); got != 0x0071 {
		t.Fatalf("base level sym = %#x, want 'q'", got)
	}

	st.UpdateKey(24, KeyDown)
	if got := st.KeyGetOneSym(24); got != 0x0051 {
		t.Fatalf("expected the q interpret's SetMods(Shift) to shift key 24 to 'Q', got %#x", got)
	}
}

func TestContextWithLogWriterAndVerbosity(t *testing.T) {
	var buf strings.Builder
	ctx := NewContext(WithLogWriter(&buf), WithVerbosity(10))
	if ctx.log.Verbosity() != 10 {
		t.Fatalf("expected verbosity 10 to survive option application, got %d", ctx.log.Verbosity())
	}
}
