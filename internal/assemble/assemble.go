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

// Package assemble drives the fixed-order keymap compile: keycodes,
// types, compat, symbols, followed by interpret application to fill
// in any key level left without an explicit action/vmodmap/repeat.
package assemble

import (
	"fmt"

	"github.com/kbdgo/xkbgo/internal/compat"
	"github.com/kbdgo/xkbgo/internal/expr"
	"github.com/kbdgo/xkbgo/internal/keycodes"
	"github.com/kbdgo/xkbgo/internal/klog"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/symbols"
	"github.com/kbdgo/xkbgo/internal/types"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

// Components holds the four parsed sections to assemble. Each section
// is compiled with the DEFAULT merge mode; no per-section mode is
// carried.
type Components struct {
	Keycodes *xkbtext.Section
	Types    *xkbtext.Section
	Compat   *xkbtext.Section
	Symbols  *xkbtext.Section
}

// Resolver satisfies every section's IncludeResolver so one object can
// drive includes across all four compilers.
type Resolver interface {
	keycodes.IncludeResolver
	types.IncludeResolver
	compat.IncludeResolver
	symbols.IncludeResolver
}

// Assemble compiles the four components into a single Keymap in the
// fixed order the format requires, then applies compat interprets to
// every key level that didn't declare its action/vmodmap/repeat
// explicitly.
func Assemble(comps Components, resolve Resolver, log *klog.Sink) (*model.Keymap, error) {
	km := model.NewKeymap()
	ev := expr.New(km)

	if comps.Keycodes != nil {
		if err := keycodes.Compile(km, comps.Keycodes, resolve); err != nil {
			return nil, fmt.Errorf("keycodes: %w", err)
		}
	}
	if comps.Types != nil {
		if err := types.Compile(km, comps.Types, ev, resolve); err != nil {
			return nil, fmt.Errorf("types: %w", err)
		}
	}
	if comps.Compat != nil {
		ci := compat.NewInfo(0, log)
		if err := compat.Compile(ci, km, comps.Compat, ev, resolve); err != nil {
			return nil, fmt.Errorf("compat: %w", err)
		}
		compat.CopyCompatToKeymap(ci, km)
		model.SortInterprets(km.Interprets)
	}
	if comps.Symbols != nil {
		if err := symbols.Compile(km, comps.Symbols, ev, resolve); err != nil {
			return nil, fmt.Errorf("symbols: %w", err)
		}
	}

	applyInterprets(km)
	return km, nil
}

// applyInterprets scans, for every key level without an explicit
// action, the keymap's copied interpret list in its fixed bucket
// order, applying the first match. level_one_only interprets only
// apply to level 1 of group 1, matching the repeat-is-key-level-only
// rule.
func applyInterprets(km *model.Keymap) {
	for _, kc := range km.SortedKeyCodes() {
		k := km.Keys[kc]
		for gi := range k.Groups {
			for li := range k.Groups[gi].Levels {
				lvl := &k.Groups[gi].Levels[li]
				if k.HasExplicit(model.ExplicitActions) {
					continue
				}
				if len(lvl.Syms) == 0 {
					continue
				}
				for _, si := range km.Interprets {
					if si.LevelOneOnly && !(gi == 0 && li == 0) {
						continue
					}
					if si.HasSym && si.Sym != lvl.Syms[0] {
						continue
					}
					if !si.Matches(k.ModMap) {
						continue
					}
					if !lvl.HasAction {
						lvl.Action = si.Action
						lvl.HasAction = true
					}
					if si.HasVirtualMod && !k.HasExplicit(model.ExplicitVModMap) {
						k.VModMap |= 1 << uint(si.VirtualMod)
					}
					if si.Repeat != model.Unset && gi == 0 && li == 0 && !k.HasExplicit(model.ExplicitAutorepeat) {
						k.Repeats = si.Repeat
					}
					break
				}
			}
		}
	}
}
