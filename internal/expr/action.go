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

package expr

import (
	"fmt"
	"strings"

	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

var actionKindByName = map[string]model.ActionKind{
	"NoAction":     model.ActionNone,
	"SetMods":      model.ActionModSet,
	"LatchMods":    model.ActionModLatch,
	"LockMods":     model.ActionModLock,
	"SetGroup":     model.ActionGroupSet,
	"LatchGroup":   model.ActionGroupLatch,
	"LockGroup":    model.ActionGroupLock,
	"MovePtr":      model.ActionPtrMove,
	"PtrBtn":       model.ActionPtrButton,
	"LockPtrBtn":   model.ActionPtrLock,
	"SetPtrDflt":   model.ActionPtrDefault,
	"SwitchScreen": model.ActionSwitchVT,
	"SetControls":  model.ActionCtrlSet,
	"LockControls": model.ActionCtrlLock,
	"Terminate":    model.ActionTerminate,
	"Private":      model.ActionPrivate,
}

var affectByName = map[string]model.LockAffect{
	"lock":    model.AffectLock,
	"unlock":  model.AffectUnlock,
	"neither": model.AffectNeither,
	"both":    model.AffectBoth,
}

// ResolveAction builds a model.Action from a parsed action
// declaration such as `SetMods(modifiers=Shift,clearLocks)`.
func (e *Evaluator) ResolveAction(x xkbtext.Expr) (model.Action, error) {
	decl, ok := x.(*xkbtext.ActionDecl)
	if !ok {
		return model.Action{}, fmt.Errorf("%w: expected an action declaration", ErrBadType)
	}
	kind, ok := actionKindByName[decl.Name]
	if !ok {
		return model.Action{}, fmt.Errorf("%w: action %q", ErrUndefinedName, decl.Name)
	}
	act := model.Action{Kind: kind}

	for _, arg := range decl.Args {
		name := strings.ToLower(arg.Name)
		switch {
		case name == "modifiers" || name == "mods":
			mask, err := e.ResolveModMask(arg.Value, Both)
			if err != nil {
				return act, err
			}
			act.Mods = mask
			if isPrefixedPlus(arg.Value) {
				act.ModsIsRel = true
			}
		case name == "clearlocks":
			b, _ := e.ResolveBoolean(arg.Value)
			act.ClearLocks = b
		case name == "latchtolock":
			b, _ := e.ResolveBoolean(arg.Value)
			act.LatchToLock = b
		case name == "affect":
			if id, ok := arg.Value.(*xkbtext.Ident); ok {
				if a, ok := affectByName[strings.ToLower(id.Name)]; ok {
					act.Affect = a
				}
			}
		case name == "group":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.Group = int32(n)
			if isPrefixedPlus(arg.Value) {
				act.GroupIsRel = true
			}
		case name == "x":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.DeltaX = int32(n)
		case name == "y":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.DeltaY = int32(n)
		case name == "button" || name == "buttons":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.Button = int32(n)
		case name == "count" || name == "repeat":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.Count = int32(n)
		case name == "default":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.Value = int32(n)
		case name == "screen" || name == "vt":
			n, err := e.ResolveInteger(arg.Value)
			if err != nil {
				return act, err
			}
			act.VT = int32(n)
			if isPrefixedPlus(arg.Value) {
				act.VTIsRel = true
			}
		case name == "sameserver":
			b, _ := e.ResolveBoolean(arg.Value)
			act.SameServer = b
		case name == "controls":
			mask, err := e.ResolveMask(arg.Value, ctrlMaskTable)
			if err != nil {
				return act, err
			}
			act.Ctrls = mask
		case name == "type":
			n, _ := e.ResolveInteger(arg.Value)
			act.PrivType = byte(n)
		}
	}
	return act, nil
}

// isPrefixedPlus reports whether a mask/integer expression is a unary
// expression (a leading '-', '~' or '!'), which marks the value as
// relative. The parser has no unary '+', so a "+Shift" or "+1" value
// does not parse as an expression and never reaches this check.
func isPrefixedPlus(x xkbtext.Expr) bool {
	_, ok := x.(*xkbtext.Unary)
	return ok
}
