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

// Package keycodes implements the xkb_keycodes section compiler:
// <NAME> = code; declarations, key aliases, and indicator names.
package keycodes

import (
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

// IncludeResolver fetches and parses the named keycodes component.
type IncludeResolver interface {
	ResolveKeycodes(spec string) (*xkbtext.Section, error)
}

// Compile compiles sec into km, recursing into includes via resolve.
// Merge discipline here is simple relative to compat: key-name and
// alias collisions follow the same AUGMENT/OVERRIDE/REPLACE rule but
// operate on a single code value rather than a multi-field struct.
func Compile(km *model.Keymap, sec *xkbtext.Section, resolve IncludeResolver) error {
	km.KeycodesName = km.Atoms.Intern(sec.Name)
	return compileBody(km, sec.Stmts, model.MergeDefault, resolve)
}

func compileBody(km *model.Keymap, stmts []xkbtext.Stmt, fileMerge model.MergeMode, resolve IncludeResolver) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *xkbtext.IncludeStmt:
			if resolve == nil {
				continue
			}
			sub, err := resolve.ResolveKeycodes(s.Spec)
			if err != nil {
				return err
			}
			if err := compileBody(km, sub.Stmts, s.Merge, resolve); err != nil {
				return err
			}
		case *xkbtext.KeyNameDef:
			addKeyName(km, s.Name, model.KeyCode(s.Code), fileMerge)
		case *xkbtext.AliasDef:
			newAtom := km.Atoms.Intern(s.New)
			oldAtom := km.Atoms.Intern(s.Old)
			if _, exists := km.Aliases[newAtom]; !exists || fileMerge == model.MergeOverride || fileMerge == model.MergeReplace {
				km.Aliases[newAtom] = oldAtom
			}
		case *xkbtext.IndicatorNameDef:
			if s.Index >= 1 && s.Index <= model.MaxIndicators {
				km.Indicators[s.Index-1].Name = km.Atoms.Intern(s.Name)
			}
		case *xkbtext.VarDef:
			// minimum/maximum keycode overrides: accepted, but
			// MinKeyCode/MaxKeyCode are derived from actual key
			// declarations instead (simpler and always consistent).
		}
	}
	return nil
}

func addKeyName(km *model.Keymap, name string, code model.KeyCode, merge model.MergeMode) {
	nameAtom := km.Atoms.Intern(name)
	if existing := km.Keys[code]; existing != nil {
		takeNew, _ := model.ResolveCollision(normalizeDefault(merge))
		if !takeNew {
			return
		}
	}
	k := km.Keys[code]
	if k == nil {
		k = &model.Key{Code: code}
	}
	k.Name = nameAtom
	km.AddKey(k)
}

func normalizeDefault(mode model.MergeMode) model.MergeMode {
	if mode == model.MergeDefault {
		return model.MergeAugment
	}
	return mode
}
