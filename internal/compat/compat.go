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

// Package compat implements the xkb_compatibility section compiler:
// symbol interpret and indicator map statements, their merge
// discipline, include-file recursion, and the final fixed-order copy
// into the assembled keymap. This is the hard core of the module,
// grounded directly on the original compat.c compiler.
package compat

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/kbdgo/xkbgo/internal/expr"
	"github.com/kbdgo/xkbgo/internal/klog"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

// ErrTooManyErrors aborts a compat file after more than 10 recoverable
// per-statement errors, matching the fixed abort threshold.
var ErrTooManyErrors = errors.New("compat: too many errors in file")

const maxErrorsPerFile = 10

// siInfo is one interpret definition accumulated while compiling a
// single file, tracking which fields were set so a later collision
// can distinguish "was defined" from "still default".
type siInfo struct {
	defined model.SymInterpret
	fieldsSet map[string]bool
	fileID   int
}

// ledInfo is one indicator map definition accumulated the same way.
type ledInfo struct {
	defined  model.IndicatorMap
	fieldsSet map[string]bool
	fileID    int
}

// Info is the per-file working state for the compat compiler,
// directly analogous to CompatInfo.
type Info struct {
	fileID   int
	errorCount int
	interps  []*siInfo
	leds     [model.MaxIndicators]*ledInfo
	log      *klog.Sink

	// dflt/ledDflt are the running section-scope templates that
	// `interpret.field= value;` / `indicator.field= value;` globals
	// populate; every subsequently declared interpret/indicator map
	// is cloned from the matching template before its own body is
	// applied on top.
	dflt    model.SymInterpret
	ledDflt model.IndicatorMap
}

func NewInfo(fileID int, log *klog.Sink) *Info {
	ci := &Info{fileID: fileID, log: log}
	ci.dflt = model.SymInterpret{Match: model.MatchAnyOrNone, Mods: model.AllRealMods, Repeat: model.Unset}
	return ci
}

// FindMatchingInterp returns the existing interp with the same
// (sym, hasSym, match, mods) key as cand, or nil.
func (ci *Info) FindMatchingInterp(cand model.SymInterpret) *siInfo {
	for _, si := range ci.interps {
		d := si.defined
		if d.HasSym == cand.HasSym && d.Sym == cand.Sym &&
			d.Match == cand.Match && d.Mods == cand.Mods {
			return si
		}
	}
	return nil
}

// AddInterp merges a newly parsed interpret into the file's
// accumulated list, applying the merge-mode collision rule: if no
// matching interp exists yet, the new one is simply appended
// (old-undefined -> take new). If one exists, REPLACE/OVERRIDE take
// the new definition (OVERRIDE additionally reports); AUGMENT keeps
// the old one; a field-level collision (both sides set at least one
// same field, whatever its values) is reported only under OVERRIDE.
func (ci *Info) AddInterp(cand model.SymInterpret, setFields map[string]bool, mode model.MergeMode) error {
	if ci.errorCount > maxErrorsPerFile {
		return ErrTooManyErrors
	}
	existing := ci.FindMatchingInterp(cand)
	if existing == nil {
		ci.interps = append(ci.interps, &siInfo{defined: cand, fieldsSet: setFields, fileID: ci.fileID})
		return nil
	}

	takeNew, report := model.ResolveCollision(normalizeDefault(mode))
	if anyFieldCollides(existing.fieldsSet, setFields) && report {
		ci.log.Warn("interpret for matching condition redefined; keeping %s definition",
			lo.Ternary(takeNew, "new", "old"))
	}
	if takeNew {
		existing.defined = cand
		existing.fieldsSet = setFields
		existing.fileID = ci.fileID
	}
	return nil
}

// AddIndicatorMap merges a newly parsed `indicator "Name" { ... };`
// block into slot finding: reuse the slot already bound to this name,
// else the first empty (NONE-named) slot; when all MaxIndicators
// slots are taken it returns an error. A fast path skips the merge entirely when every
// field in the new definition is either unset or equal to the
// existing slot's value.
func (ci *Info) AddIndicatorMap(nameAtom uint32, cand model.IndicatorMap, setFields map[string]bool, mode model.MergeMode) error {
	if ci.errorCount > maxErrorsPerFile {
		return ErrTooManyErrors
	}

	slot := -1
	for i, li := range ci.leds {
		if li != nil && uint32(li.defined.Name) == nameAtom {
			slot = i
			break
		}
	}
	if slot < 0 {
		for i, li := range ci.leds {
			if li == nil {
				slot = i
				break
			}
		}
	}
	if slot < 0 {
		ci.errorCount++
		return fmt.Errorf("compat: out of indicator slots (max %d)", model.MaxIndicators)
	}

	existing := ci.leds[slot]
	if existing == nil {
		ci.leds[slot] = &ledInfo{defined: cand, fieldsSet: setFields, fileID: ci.fileID}
		return nil
	}

	// fast path: every newly set field already equals the existing value.
	if fieldsEqualOrUnset(existing.defined, cand, setFields) {
		return nil
	}

	takeNew, report := model.ResolveCollision(normalizeDefault(mode))
	if anyFieldCollides(existing.fieldsSet, setFields) && report {
		ci.log.Warn("indicator map (atom %d) redefined; keeping %s definition", nameAtom,
			lo.Ternary(takeNew, "new", "old"))
	}
	if takeNew {
		ci.leds[slot] = &ledInfo{defined: cand, fieldsSet: setFields, fileID: ci.fileID}
	}
	return nil
}

func fieldsEqualOrUnset(old, cand model.IndicatorMap, setFields map[string]bool) bool {
	if setFields["whichGroups"] && old.WhichGroups != cand.WhichGroups {
		return false
	}
	if setFields["groups"] && old.Groups != cand.Groups {
		return false
	}
	if setFields["whichModState"] && old.WhichMods != cand.WhichMods {
		return false
	}
	if setFields["modifiers"] && old.Mods != cand.Mods {
		return false
	}
	if setFields["controls"] && old.Ctrls != cand.Ctrls {
		return false
	}
	return true
}

func anyFieldCollides(oldSet, newSet map[string]bool) bool {
	for f := range newSet {
		if oldSet[f] {
			return true
		}
	}
	return false
}

// normalizeDefault resolves MergeDefault to MergeAugment, the rule
// every include-level caller applies before reaching the collision
// table (Open Question #2 in DESIGN.md).
func normalizeDefault(mode model.MergeMode) model.MergeMode {
	if mode == model.MergeDefault {
		return model.MergeAugment
	}
	return mode
}

// Compile compiles one xkb_compatibility section body into ci,
// recursing into includes via resolve, then leaves the result ready
// for CopyCompatToKeymap.
func Compile(ci *Info, km *model.Keymap, sec *xkbtext.Section, ev *expr.Evaluator, resolve IncludeResolver) error {
	for _, stmt := range sec.Stmts {
		if err := handleStmt(ci, km, stmt, ev, resolve); err != nil {
			if errors.Is(err, ErrTooManyErrors) {
				return err
			}
			ci.errorCount++
			ci.log.Warn("compat: %v", err)
			if ci.errorCount > maxErrorsPerFile {
				return ErrTooManyErrors
			}
		}
	}
	return nil
}

// IncludeResolver fetches and parses the named compat component.
type IncludeResolver interface {
	ResolveCompat(spec string) (*xkbtext.Section, error)
}

func handleStmt(ci *Info, km *model.Keymap, stmt xkbtext.Stmt, ev *expr.Evaluator, resolve IncludeResolver) error {
	switch s := stmt.(type) {
	case *xkbtext.IncludeStmt:
		return handleInclude(ci, km, s, ev, resolve)
	case *xkbtext.VModDef:
		for _, name := range s.Names {
			km.Mods.AddVirtual(km.Atoms, name)
		}
		return nil
	case *xkbtext.InterpDef:
		return handleInterp(ci, km, s, ev)
	case *xkbtext.IndicatorMapDef:
		return handleIndicatorMapDef(ci, km, s, ev)
	case *xkbtext.VarDef:
		return handleGlobalVar(ci, s, ev)
	}
	return fmt.Errorf("unexpected statement in compat section")
}

func handleInclude(ci *Info, km *model.Keymap, s *xkbtext.IncludeStmt, ev *expr.Evaluator, resolve IncludeResolver) error {
	if resolve == nil {
		return fmt.Errorf("compat: include %q but no resolver configured", s.Spec)
	}
	sub, err := resolve.ResolveCompat(s.Spec)
	if err != nil {
		return fmt.Errorf("compat: include %q: %w", s.Spec, err)
	}
	sci := NewInfo(ci.fileID+1, ci.log)
	if err := Compile(sci, km, sub, ev, resolve); err != nil {
		return err
	}
	return mergeInto(ci, sci, s.Merge)
}

// mergeInto merges the included file's accumulated interps/LEDs into
// ci under the include statement's own declared merge mode, resolved
// per include rather than once for the whole file.
func mergeInto(ci *Info, sub *Info, mode model.MergeMode) error {
	for _, si := range sub.interps {
		if err := ci.AddInterp(si.defined, si.fieldsSet, mode); err != nil {
			return err
		}
	}
	for _, li := range sub.leds {
		if li == nil {
			continue
		}
		if err := ci.AddIndicatorMap(uint32(li.defined.Name), li.defined, li.fieldsSet, mode); err != nil {
			return err
		}
	}
	return nil
}
