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

// Package types implements the xkb_types section compiler: type
// definitions (modifier mask, level map, preserve entries, level
// names) and virtual_modifiers declarations.
package types

import (
	"strings"

	"github.com/samber/lo"

	"github.com/kbdgo/xkbgo/internal/expr"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

type IncludeResolver interface {
	ResolveTypes(spec string) (*xkbtext.Section, error)
}

func Compile(km *model.Keymap, sec *xkbtext.Section, ev *expr.Evaluator, resolve IncludeResolver) error {
	km.TypesName = km.Atoms.Intern(sec.Name)
	return compileBody(km, sec.Stmts, model.MergeDefault, ev, resolve)
}

func compileBody(km *model.Keymap, stmts []xkbtext.Stmt, fileMerge model.MergeMode, ev *expr.Evaluator, resolve IncludeResolver) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *xkbtext.IncludeStmt:
			if resolve == nil {
				continue
			}
			sub, err := resolve.ResolveTypes(s.Spec)
			if err != nil {
				return err
			}
			if err := compileBody(km, sub.Stmts, s.Merge, ev, resolve); err != nil {
				return err
			}
		case *xkbtext.VModDef:
			for _, name := range s.Names {
				km.Mods.AddVirtual(km.Atoms, name)
			}
		case *xkbtext.TypeDef:
			if err := compileType(km, s, fileMerge, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func compileType(km *model.Keymap, s *xkbtext.TypeDef, fileMerge model.MergeMode, ev *expr.Evaluator) error {
	nameAtom := km.Atoms.Intern(s.Name)
	kt := model.KeyType{Name: nameAtom, NumLevels: 1}

	for _, bs := range s.Body {
		switch e := bs.(type) {
		case *xkbtext.VarDef:
			field, _ := fieldName(e.LHS)
			if strings.EqualFold(field, "modifiers") {
				mods, err := ev.ResolveModMask(e.RHS, expr.Both)
				if err != nil {
					return err
				}
				kt.Mods = mods
			}
		case *xkbtext.KeyTypeMapEntry:
			mods, err := ev.ResolveModMask(e.Mods, expr.Both)
			if err != nil {
				return err
			}
			lvl, err := resolveLevel(ev, e.Level)
			if err != nil {
				return err
			}
			level := int(lvl) - 1 // source levels are 1-based
			if level+1 > kt.NumLevels {
				kt.NumLevels = level + 1
			}
			kt.Map = append(kt.Map, model.MapEntry{Mods: mods, Level: level})
		case *xkbtext.KeyTypePreserveEntry:
			mods, err := ev.ResolveModMask(e.Mods, expr.Both)
			if err != nil {
				return err
			}
			preserve, err := ev.ResolveModMask(e.Preserve, expr.Both)
			if err != nil {
				return err
			}
			_, idx, found := lo.FindIndexOf(kt.Map, func(m model.MapEntry) bool { return m.Mods == mods })
			if found {
				kt.Map[idx].Preserve = preserve
			} else {
				kt.Map = append(kt.Map, model.MapEntry{Mods: mods, Preserve: preserve})
			}
		case *xkbtext.KeyTypeLevelName:
			lvl, err := resolveLevel(ev, e.Level)
			if err != nil {
				return err
			}
			idx := int(lvl) - 1
			for len(kt.LevelNames) <= idx {
				kt.LevelNames = append(kt.LevelNames, 0)
			}
			kt.LevelNames[idx] = km.Atoms.Intern(e.Name)
		}
	}

	if i := km.TypeByName(nameAtom); i >= 0 {
		mode := fileMerge
		if s.Merge != model.MergeDefault {
			mode = s.Merge
		}
		takeNew, _ := model.ResolveCollision(normalizeDefault(mode))
		if takeNew {
			km.Types[i] = kt
		}
		return nil
	}
	km.Types = append(km.Types, kt)
	return nil
}

// resolveLevel evaluates a 1-based level written either as an integer
// or as a LevelN name (the form the serializer emits).
func resolveLevel(ev *expr.Evaluator, x xkbtext.Expr) (int64, error) {
	if id, ok := x.(*xkbtext.Ident); ok && strings.HasPrefix(id.Name, "Level") {
		return ev.ResolveInteger(&xkbtext.Ident{Name: strings.TrimPrefix(id.Name, "Level")})
	}
	return ev.ResolveInteger(x)
}

func fieldName(lhs xkbtext.Expr) (string, bool) {
	switch v := lhs.(type) {
	case *xkbtext.Ident:
		return v.Name, true
	case *xkbtext.FieldRef:
		return v.Field, true
	}
	return "", false
}

func normalizeDefault(mode model.MergeMode) model.MergeMode {
	if mode == model.MergeDefault {
		return model.MergeAugment
	}
	return mode
}
