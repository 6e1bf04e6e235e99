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

// Package symbols implements the xkb_symbols section compiler: per-key
// symbols/actions groups, the bare "[ q, Q ]" shorthand, key types,
// modifier_map declarations, and group display names.
package symbols

import (
	"strings"

	"github.com/kbdgo/xkbgo/internal/expr"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

type IncludeResolver interface {
	ResolveSymbols(spec string) (*xkbtext.Section, error)
}

func Compile(km *model.Keymap, sec *xkbtext.Section, ev *expr.Evaluator, resolve IncludeResolver) error {
	km.SymbolsName = km.Atoms.Intern(sec.Name)
	return compileBody(km, sec.Stmts, model.MergeDefault, ev, resolve)
}

func compileBody(km *model.Keymap, stmts []xkbtext.Stmt, fileMerge model.MergeMode, ev *expr.Evaluator, resolve IncludeResolver) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *xkbtext.IncludeStmt:
			if resolve == nil {
				continue
			}
			sub, err := resolve.ResolveSymbols(s.Spec)
			if err != nil {
				return err
			}
			if err := compileBody(km, sub.Stmts, s.Merge, ev, resolve); err != nil {
				return err
			}
		case *xkbtext.GroupNameDef:
			idx := s.GroupIndex - 1
			for len(km.GroupNames) <= idx {
				km.GroupNames = append(km.GroupNames, 0)
			}
			km.GroupNames[idx] = km.Atoms.Intern(s.Name)
		case *xkbtext.KeyDef:
			if err := compileKey(km, s, fileMerge, ev); err != nil {
				return err
			}
		case *xkbtext.ModMapDef:
			if err := compileModMap(km, s, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func compileKey(km *model.Keymap, s *xkbtext.KeyDef, fileMerge model.MergeMode, ev *expr.Evaluator) error {
	nameAtom := km.Atoms.Intern(s.Name)
	k := km.KeyByName(nameAtom)
	if k == nil {
		// the key must already exist from the keycodes section; if it
		// doesn't, a code can't be inferred, so the key is skipped
		// (the original reports UNDEFINED_NAME here).
		return nil
	}

	nextGroup := len(k.Groups)
	typeIdx, hasType := 0, false
	for _, bs := range s.Body {
		switch e := bs.(type) {
		case *xkbtext.KeySymbolsGroup:
			gi := e.GroupIndex
			if gi == 0 {
				gi = nextGroup + 1
				nextGroup++
			}
			syms := make([]uint32, 0, len(e.Syms))
			for _, symExpr := range e.Syms {
				sym, err := ev.ResolveKeysym(symExpr)
				if err != nil {
					return err
				}
				syms = append(syms, sym)
			}
			setGroupLevels(k, gi, syms)
			k.Explicit |= model.ExplicitSymbols
		case *xkbtext.KeyActionsGroup:
			gi := e.GroupIndex
			if gi == 0 {
				gi = nextGroup
			}
			for lvl, actExpr := range e.Actions {
				act, err := ev.ResolveAction(actExpr)
				if err != nil {
					return err
				}
				setLevelAction(k, gi, lvl, act)
			}
			k.Explicit |= model.ExplicitActions
		case *xkbtext.VarDef:
			field, _ := fieldName(e.LHS)
			switch strings.ToLower(field) {
			case "type":
				typeName, err := ev.ResolveString(e.RHS)
				if err != nil {
					break
				}
				typeIdx, hasType = km.TypeByName(km.Atoms.Intern(typeName)), true
			case "repeat":
				b, err := ev.ResolveBoolean(e.RHS)
				if err == nil {
					if b {
						k.Repeats = model.True
					} else {
						k.Repeats = model.False
					}
					k.Explicit |= model.ExplicitAutorepeat
				}
			}
		}
	}
	// the key type applies to every group, whether it was declared
	// before or after the key's symbols.
	if hasType {
		for gi := range k.Groups {
			k.Groups[gi].TypeIndex = typeIdx
		}
	}
	_ = fileMerge // merge modes are not consulted here: a redeclared
	// key's groups and fields are overwritten in place whatever the
	// file or statement merge mode.
	return nil
}

func setGroupLevels(k *model.Key, groupIndex int, syms []uint32) {
	idx := groupIndex - 1
	for len(k.Groups) <= idx {
		k.Groups = append(k.Groups, model.Group{TypeIndex: -1})
	}
	levels := make([]model.Level, len(syms))
	for i, s := range syms {
		levels[i] = model.Level{Syms: []uint32{s}}
	}
	if len(levels) == 0 {
		levels = []model.Level{{}}
	}
	k.Groups[idx].Levels = levels
}

func setLevelAction(k *model.Key, groupIndex, level int, act model.Action) {
	gidx := groupIndex - 1
	if gidx < 0 || gidx >= len(k.Groups) {
		return
	}
	for len(k.Groups[gidx].Levels) <= level {
		k.Groups[gidx].Levels = append(k.Groups[gidx].Levels, model.Level{})
	}
	k.Groups[gidx].Levels[level].Action = act
	k.Groups[gidx].Levels[level].HasAction = true
}

func compileModMap(km *model.Keymap, s *xkbtext.ModMapDef, ev *expr.Evaluator) error {
	idx, ok := km.Mods.Find(km.Atoms, s.ModName)
	if !ok {
		return nil
	}
	bit := model.ModMask(1) << uint(idx)
	for _, keyName := range s.Keys {
		k := km.KeyByName(km.Atoms.Intern(keyName))
		if k == nil {
			continue
		}
		k.ModMap |= bit
		k.Explicit |= model.ExplicitModMap
	}
	return nil
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
