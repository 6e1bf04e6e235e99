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
	"strconv"
	"strings"

	"github.com/kbdgo/xkbgo/internal/atom"
	"github.com/kbdgo/xkbgo/internal/keysym"
	"github.com/kbdgo/xkbgo/internal/model"
	"github.com/kbdgo/xkbgo/internal/xkbtext"
)

// ModNamespace restricts which modifiers a name may resolve against.
type ModNamespace int

const (
	Real ModNamespace = iota
	Virtual
	Both
)

// Evaluator resolves xkbtext.Expr nodes against a keymap's declared
// atoms and modifiers.
type Evaluator struct {
	Atoms *atom.Table
	Mods  *model.ModSet
}

func New(km *model.Keymap) *Evaluator {
	return &Evaluator{Atoms: km.Atoms, Mods: km.Mods}
}

func (e *Evaluator) ResolveInteger(x xkbtext.Expr) (int64, error) {
	switch v := x.(type) {
	case *xkbtext.Int:
		return v.Value, nil
	case *xkbtext.Binary:
		l, err := e.ResolveInteger(v.Left)
		if err != nil {
			return 0, err
		}
		r, err := e.ResolveInteger(v.Right)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "|":
			return l | r, nil
		case "&":
			return l & r, nil
		}
	case *xkbtext.Unary:
		o, err := e.ResolveInteger(v.Operand)
		if err != nil {
			return 0, err
		}
		if v.Op == "-" {
			return -o, nil
		}
		return o, nil
	case *xkbtext.Ident:
		if n, err := strconv.ParseInt(v.Name, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: not an integer expression", ErrBadType)
}

func (e *Evaluator) ResolveBoolean(x xkbtext.Expr) (bool, error) {
	switch v := x.(type) {
	case *xkbtext.Boolean:
		return v.Value, nil
	case *xkbtext.Ident:
		if val, ok := LookupBoolValue(v.Name); ok {
			return val != 0, nil
		}
	case *xkbtext.Int:
		return v.Value != 0, nil
	}
	return false, fmt.Errorf("%w: not a boolean expression", ErrBadType)
}

func (e *Evaluator) ResolveString(x xkbtext.Expr) (string, error) {
	if s, ok := x.(*xkbtext.String); ok {
		return s.Value, nil
	}
	return "", fmt.Errorf("%w: not a string expression", ErrBadType)
}

// ResolveMask evaluates a '+'/'-'/'|'/'&' expression of identifiers
// against the supplied name table (e.g. control or group names).
func (e *Evaluator) ResolveMask(x xkbtext.Expr, names map[string]uint32) (uint32, error) {
	switch v := x.(type) {
	case *xkbtext.Ident:
		if val, ok := names[v.Name]; ok {
			return val, nil
		}
		if n, err := strconv.ParseUint(v.Name, 0, 32); err == nil {
			return uint32(n), nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUndefinedName, v.Name)
	case *xkbtext.Int:
		return uint32(v.Value), nil
	case *xkbtext.Binary:
		l, err := e.ResolveMask(v.Left, names)
		if err != nil {
			return 0, err
		}
		r, err := e.ResolveMask(v.Right, names)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case "+", "|":
			return l | r, nil
		case "-":
			return l &^ r, nil
		case "&":
			return l & r, nil
		}
	case *xkbtext.Unary:
		o, err := e.ResolveMask(v.Operand, names)
		if err != nil {
			return 0, err
		}
		if v.Op == "~" {
			return ^o, nil
		}
		return o, nil
	}
	return 0, fmt.Errorf("%w: not a mask expression", ErrBadType)
}

// ResolveModMask evaluates a modifier-mask expression ("Shift+Lock",
// "all", "none") against ns's namespace, returning a raw ModMask
// (real-modifier bits if ns==Virtual are left at their virtual index
// position, unresolved — callers call ModSet.ResolveVirtual later).
func (e *Evaluator) ResolveModMask(x xkbtext.Expr, ns ModNamespace) (model.ModMask, error) {
	switch v := x.(type) {
	case *xkbtext.Ident:
		switch strings.ToLower(v.Name) {
		case "none":
			return 0, nil
		case "all":
			return model.AllRealMods, nil
		}
		idx, ok := e.Mods.Find(e.Atoms, v.Name)
		if !ok {
			return 0, fmt.Errorf("%w: modifier %q", ErrUndefinedName, v.Name)
		}
		if ns == Real && int(idx) >= model.NumRealMods {
			return 0, fmt.Errorf("%w: %q is not a real modifier", ErrBadType, v.Name)
		}
		return 1 << uint(idx), nil
	case *xkbtext.Int:
		return model.ModMask(v.Value), nil
	case *xkbtext.Binary:
		l, err := e.ResolveModMask(v.Left, ns)
		if err != nil {
			return 0, err
		}
		r, err := e.ResolveModMask(v.Right, ns)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case "+", "|":
			return l | r, nil
		case "-":
			return l &^ r, nil
		case "&":
			return l & r, nil
		}
	case *xkbtext.Unary:
		o, err := e.ResolveModMask(v.Operand, ns)
		if err != nil {
			return 0, err
		}
		if v.Op == "~" {
			return ^o & ((1 << model.MaxMods) - 1), nil
		}
		return o, nil
	}
	return 0, fmt.Errorf("%w: not a modifier-mask expression", ErrBadType)
}

// ResolveModIndex evaluates a single modifier name to its index.
func (e *Evaluator) ResolveModIndex(x xkbtext.Expr, ns ModNamespace) (model.ModIndex, error) {
	id, ok := x.(*xkbtext.Ident)
	if !ok {
		return 0, fmt.Errorf("%w: expected a single modifier name", ErrBadType)
	}
	idx, ok := e.Mods.Find(e.Atoms, id.Name)
	if !ok {
		return 0, fmt.Errorf("%w: modifier %q", ErrUndefinedName, id.Name)
	}
	if ns == Real && int(idx) >= model.NumRealMods {
		return 0, fmt.Errorf("%w: %q is not a real modifier", ErrBadType, id.Name)
	}
	return idx, nil
}

// ResolveKeysym evaluates a keysym name/ident or single-char literal.
func (e *Evaluator) ResolveKeysym(x xkbtext.Expr) (uint32, error) {
	switch v := x.(type) {
	case *xkbtext.Ident:
		if s, ok := keysym.LookupByName(v.Name); ok {
			return uint32(s), nil
		}
		if len([]rune(v.Name)) == 1 {
			return uint32(keysym.FromRune([]rune(v.Name)[0])), nil
		}
		return 0, fmt.Errorf("%w: keysym %q", ErrUndefinedName, v.Name)
	case *xkbtext.Int:
		return uint32(v.Value), nil
	}
	return 0, fmt.Errorf("%w: not a keysym expression", ErrBadType)
}
