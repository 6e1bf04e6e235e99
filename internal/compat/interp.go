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

package compat

import (
	"strings"

	"github.com/kbdgo/xkbgo/internal/expr"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

var predOpByName = map[string]model.MatchOp{
	"anyofornone": model.MatchAnyOrNone,
	"anyof":       model.MatchAny,
	"any":         model.MatchAny,
	"noneof":      model.MatchNone,
	"allof":       model.MatchAll,
	"exactly":     model.MatchExactly,
}

func handleInterp(ci *Info, km *model.Keymap, s *xkbtext.InterpDef, ev *expr.Evaluator) error {
	si := ci.dflt
	si.HasSym = false
	set := map[string]bool{}

	// no predicate at all (bare `interpret Foo { ... };`) means
	// MATCH_ANY_OR_NONE over every real modifier; the `any` predicate
	// ident below shares the all-real-mods mask but matches MATCH_ANY.
	si.Match = model.MatchAnyOrNone
	si.Mods = model.AllRealMods

	if s.Sym != "" && s.Sym != "Any" {
		sym, err := ev.ResolveKeysym(&xkbtext.Ident{Name: s.Sym})
		if err != nil {
			return err
		}
		si.Sym = sym
		si.HasSym = true
	}
	if s.Pred != nil {
		op, isOp := predOpByName[strings.ToLower(s.Pred.Op)]
		if isOp {
			si.Match = op
		}
		// a predicate with no explicit mask (bare `any`, or the
		// match-op ident alone) still covers every real modifier.
		si.Mods = model.AllRealMods
		if !isOp && s.Pred.Op != "" && s.Pred.Mods == nil {
			// a bare mask (`interpret Q+Shift`) matches it exactly
			mods, err := ev.ResolveModMask(&xkbtext.Ident{Name: s.Pred.Op}, expr.Both)
			if err != nil {
				return err
			}
			si.Match = model.MatchExactly
			si.Mods = mods
		}
		if s.Pred.Mods != nil {
			mods, err := ev.ResolveModMask(s.Pred.Mods, expr.Both)
			if err != nil {
				return err
			}
			si.Mods = mods
		}
	}

	for _, bs := range s.Body {
		vd, ok := bs.(*xkbtext.VarDef)
		if !ok {
			continue
		}
		field, ok := fieldName(vd.LHS)
		if !ok {
			continue
		}
		if err := applyInterpField(&si, field, vd, ev, set); err != nil {
			return err
		}
	}

	return ci.AddInterp(si, set, s.Merge)
}

// applyInterpField applies one `field = value;` statement to si,
// shared between a single interpret's own body and the section-scope
// `interpret.field= value;` global that seeds every interpret's
// starting template (ci.dflt).
func applyInterpField(si *model.SymInterpret, field string, vd *xkbtext.VarDef, ev *expr.Evaluator, set map[string]bool) error {
	switch strings.ToLower(field) {
	case "action":
		act, err := ev.ResolveAction(vd.RHS)
		if err != nil {
			return err
		}
		si.Action = act
		set["action"] = true
	case "virtualmodifier", "virtualmod":
		idx, err := ev.ResolveModIndex(vd.RHS, expr.Virtual)
		if err != nil {
			return err
		}
		si.VirtualMod = idx
		si.HasVirtualMod = true
		set["virtualModifier"] = true
	case "repeat":
		b, err := ev.ResolveBoolean(vd.RHS)
		if err != nil {
			return err
		}
		if b {
			si.Repeat = model.True
		} else {
			si.Repeat = model.False
		}
		set["repeat"] = true
	case "leveloneonly", "levelonly":
		b, err := ev.ResolveBoolean(vd.RHS)
		if err != nil {
			return err
		}
		si.LevelOneOnly = b
		set["levelOneOnly"] = true
	case "locking", "allowexplicit", "driveskbd", "index":
		// legacy fields: accepted and silently ignored, matching
		// the original's debug-only logging for these names.
	}
	return nil
}

func handleIndicatorMapDef(ci *Info, km *model.Keymap, s *xkbtext.IndicatorMapDef, ev *expr.Evaluator) error {
	nameAtom := km.Atoms.Intern(s.Name)
	im := ci.ledDflt
	im.Name = nameAtom
	set := map[string]bool{}

	for _, bs := range s.Body {
		vd, ok := bs.(*xkbtext.VarDef)
		if !ok {
			continue
		}
		field, ok := fieldName(vd.LHS)
		if !ok {
			continue
		}
		if err := applyIndicatorField(&im, field, vd, ev, set); err != nil {
			return err
		}
	}

	// post-definition defaulting: which_groups -> LAYOUT_EFFECTIVE if
	// groups != 0 but which_groups was never set; same for which_mods.
	if !set["whichGroups"] && im.Groups != 0 {
		im.WhichGroups = model.GroupEffective
	}
	if !set["whichModState"] && im.Mods != 0 {
		im.WhichMods = model.ModsEffective
	}

	return ci.AddIndicatorMap(uint32(nameAtom), im, set, s.Merge)
}

// applyIndicatorField applies one `field = value;` statement to im,
// shared between a single indicator map's own body and the
// section-scope `indicator.field= value;` global (ci.ledDflt).
func applyIndicatorField(im *model.IndicatorMap, field string, vd *xkbtext.VarDef, ev *expr.Evaluator, set map[string]bool) error {
	switch strings.ToLower(field) {
	case "whichmodstate", "whichmodifierstate":
		m, err := ev.ResolveMask(vd.RHS, map[string]uint32{
			"base": uint32(model.ModsBase), "latched": uint32(model.ModsLatched),
			"locked": uint32(model.ModsLocked), "effective": uint32(model.ModsEffective),
			"compat": uint32(model.ModsCompat),
		})
		if err != nil {
			return err
		}
		im.WhichMods = model.WhichMods(m)
		set["whichModState"] = true
	case "modifiers":
		mods, err := ev.ResolveModMask(vd.RHS, expr.Both)
		if err != nil {
			return err
		}
		im.Mods = mods
		set["modifiers"] = true
	case "whichgroupstate", "whichgroup":
		m, err := ev.ResolveMask(vd.RHS, map[string]uint32{
			"base": uint32(model.GroupBase), "latched": uint32(model.GroupLatched),
			"locked": uint32(model.GroupLocked), "effective": uint32(model.GroupEffective),
		})
		if err != nil {
			return err
		}
		im.WhichGroups = model.WhichGroup(m)
		set["whichGroups"] = true
	case "groups":
		m, err := ev.ResolveMask(vd.RHS, groupMaskTableExported())
		if err != nil {
			return err
		}
		im.Groups = m
		set["groups"] = true
	case "controls":
		m, err := ev.ResolveMask(vd.RHS, ctrlMaskTableExported())
		if err != nil {
			return err
		}
		im.Ctrls = m
		set["controls"] = true
	}
	return nil
}

// handleGlobalVar applies a section-scope `elem.field= value;`
// statement (e.g. `interpret.repeat= False;`,
// `indicator.whichModState= Locked;`) to the running default template
// for that element kind, so every interpret/indicator map declared
// afterward in this file starts cloned from it.
func handleGlobalVar(ci *Info, vd *xkbtext.VarDef, ev *expr.Evaluator) error {
	fr, ok := vd.LHS.(*xkbtext.FieldRef)
	if !ok {
		return nil
	}
	switch strings.ToLower(fr.Elem) {
	case "interpret":
		return applyInterpField(&ci.dflt, fr.Field, vd, ev, map[string]bool{})
	case "indicator":
		return applyIndicatorField(&ci.ledDflt, fr.Field, vd, ev, map[string]bool{})
	}
	return nil
}

func fieldName(lhs xkbtext.Expr) (string, bool) {
	switch v := lhs.(type) {
	case *xkbtext.Ident:
		return v.Name, true
	case *xkbtext.FieldRef:
		return v.Field, true
	case *xkbtext.ArrayRef:
		return v.Field, true
	}
	return "", false
}

// groupMaskTableExported/ctrlMaskTableExported expose the expr
// package's private name tables for the indicator field resolvers
// above without duplicating the literal data here.
func groupMaskTableExported() map[string]uint32 {
	m := map[string]uint32{}
	for i := 1; i <= 8; i++ {
		if v, ok := expr.LookupGroupMask(groupName(i)); ok {
			m[groupName(i)] = v
		}
	}
	return m
}

func groupName(i int) string {
	return "Group" + string(rune('0'+i))
}

func ctrlMaskTableExported() map[string]uint32 {
	names := []string{"RepeatKeys", "SlowKeys", "BounceKeys", "StickyKeys", "MouseKeys",
		"MouseKeysAccel", "AccessXKeys", "AccessXTimeout", "AccessXFeedback", "AudibleBell",
		"Overlay1", "Overlay2", "IgnoreGroupLock"}
	m := map[string]uint32{}
	for _, n := range names {
		if v, ok := expr.LookupCtrlMask(n); ok {
			m[n] = v
		}
	}
	return m
}
