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

// Package xkbtext implements a hand-written lexer and recursive-descent
// parser for the XKB text configuration language: the four section
// kinds (xkb_keycodes, xkb_types, xkb_compatibility, xkb_symbols), the
// statements each may contain, and the small expression grammar used
// for field values, masks, and action declarations.
package xkbtext

import "github.com/kbdgo/xkbgo/internal/model"

// File is a fully parsed top-level document: either a single section
// (compiling one component) or a combined xkb_keymap block with all
// four.
type File struct {
	Keycodes *Section
	Types    *Section
	Compat   *Section
	Symbols  *Section
}

// Section is one xkb_<kind> { ... }; block.
type Section struct {
	Name  string // declared section name string, may be empty
	Stmts []Stmt
}

// Stmt is implemented by every statement kind a section body may hold.
type Stmt interface{ stmt() }

type (
	// IncludeStmt: `include "component(variant)";`
	IncludeStmt struct {
		Spec string
		Merge model.MergeMode
	}

	// VarDef: `lhs = expr;` or merge-qualified `override lhs = expr;`
	VarDef struct {
		LHS   Expr
		RHS   Expr
		Merge model.MergeMode
	}

	// KeyNameDef: `<NAME> = 9;` (keycodes section)
	KeyNameDef struct {
		Name string
		Code int
	}

	// AliasDef: `alias <NEW> = <OLD>;`
	AliasDef struct {
		New, Old string
	}

	// IndicatorNameDef: `indicator 1 = "Caps Lock";` (keycodes section)
	IndicatorNameDef struct {
		Index int
		Name  string
		Virtual bool
	}

	// VModDef: `virtual_modifiers NumLock, Alt;`
	VModDef struct {
		Names []string
	}

	// InterpDef: `interpret Q+Shift { ... };` or `interpret Any+AnyOf(all) { ... };`
	InterpDef struct {
		Sym     string // keysym name, or "Any" for wildcard
		Pred    *MatchPred
		Body    []Stmt // VarDef entries
		Merge   model.MergeMode
	}

	// MatchPred: `+AnyOf(Shift+Lock)` style predicate attached to an interpret.
	MatchPred struct {
		Op   string // AnyOfOrNone, AnyOf, NoneOf, AllOf, Exactly, Any
		Mods Expr
	}

	// IndicatorMapDef: `indicator "Caps Lock" { ... };`
	IndicatorMapDef struct {
		Name  string
		Body  []Stmt // VarDef entries
		Merge model.MergeMode
	}

	// TypeDef: `type "FOUR_LEVEL" { ... };`
	TypeDef struct {
		Name  string
		Body  []Stmt
		Merge model.MergeMode
	}

	// KeyTypeMapEntry: `map[Shift+Lock] = 2;` inside a TypeDef body.
	KeyTypeMapEntry struct {
		Mods  Expr
		Level Expr
	}

	// KeyTypePreserveEntry: `preserve[Shift+Lock] = Lock;` inside a TypeDef body.
	KeyTypePreserveEntry struct {
		Mods     Expr
		Preserve Expr
	}

	// KeyTypeLevelName: `level_name[1] = "Base";` inside a TypeDef body.
	KeyTypeLevelName struct {
		Level Expr
		Name  string
	}

	// KeyDef: `key <AD01> { [ q, Q ] };` or the full multi-field form,
	// whose body is a mix of VarDef/KeySymbolsGroup entries.
	KeyDef struct {
		Name  string
		Body  []Stmt
		Merge model.MergeMode
	}

	// KeySymbolsGroup: `symbols[Group1] = [ q, Q ];` or the bare
	// `[ q, Q ]` shorthand (GroupIndex == 0 meaning "next group").
	KeySymbolsGroup struct {
		GroupIndex int
		Syms       []Expr
	}

	// KeyActionsGroup: `actions[Group1] = [ NoAction(), SetMods(...) ];`
	KeyActionsGroup struct {
		GroupIndex int
		Actions    []Expr
	}

	// ModMapDef: `modifier_map Shift { <LFSH>, <RTSH> };`
	ModMapDef struct {
		ModName string
		Keys    []string
	}

	// GroupNameDef: `name[Group1] = "Default";` (symbols section)
	GroupNameDef struct {
		GroupIndex int
		Name       string
	}
)

func (*IncludeStmt) stmt()       {}
func (*VarDef) stmt()            {}
func (*KeyNameDef) stmt()        {}
func (*AliasDef) stmt()          {}
func (*IndicatorNameDef) stmt()  {}
func (*VModDef) stmt()           {}
func (*InterpDef) stmt()         {}
func (*IndicatorMapDef) stmt()   {}
func (*TypeDef) stmt()           {}
func (*KeyTypeMapEntry) stmt()   {}
func (*KeyTypePreserveEntry) stmt() {}
func (*KeyTypeLevelName) stmt()  {}
func (*KeyDef) stmt()            {}
func (*KeySymbolsGroup) stmt()   {}
func (*KeyActionsGroup) stmt()   {}
func (*ModMapDef) stmt()         {}
func (*GroupNameDef) stmt()      {}

// Expr is implemented by every expression node.
type Expr interface{ expr() }

type (
	Ident   struct{ Name string }
	String  struct{ Value string }
	Int     struct{ Value int64 }
	Boolean struct{ Value bool }
	KeyName struct{ Name string } // <NAME> token appearing in expression position

	FieldRef struct {
		Elem, Field string
	}
	ArrayRef struct {
		Elem, Field string
		Index       Expr
	}
	ActionDecl struct {
		Name string
		Args []ActionArg
	}
	ActionArg struct {
		Name  string
		Value Expr
	}
	Binary struct {
		Op          string // "+", "-", "|", "&"
		Left, Right Expr
	}
	Unary struct {
		Op      string // "!", "~", "-"
		Operand Expr
	}
)

func (*Ident) expr()      {}
func (*String) expr()     {}
func (*Int) expr()        {}
func (*Boolean) expr()    {}
func (*KeyName) expr()    {}
func (*FieldRef) expr()   {}
func (*ArrayRef) expr()   {}
func (*ActionDecl) expr() {}
func (*Binary) expr()     {}
func (*Unary) expr()      {}
