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

package xkbtext

import (
	"fmt"

	"github.com/kbdgo/xkbgo/internal/model"
)

// Parser turns XKB text source into an AST. It recovers from
// statement-level errors (appending to Errors and skipping to the
// next ';') rather than aborting the whole file, matching the
// per-statement error counting described for the section compilers.
type Parser struct {
	lex    *lexer
	tok    token
	errs   []error
}

// Parse parses src as a single file that may contain any number of
// top-level xkb_<kind> sections (or a wrapping xkb_keymap block).
func Parse(src string) (*File, []error) {
	p := &Parser{lex: newLexer(src)}
	p.advance()
	f := &File{}
	for p.tok.kind != tEOF {
		if p.tok.kind == tIdent && p.tok.text == "xkb_keymap" {
			p.advance()
			p.expectPunct("{")
			p.parseTopLevel(f)
			p.expectPunct("}")
			p.expectPunct(";")
			continue
		}
		p.parseTopLevel(f)
	}
	return f, p.errs
}

func (p *Parser) parseTopLevel(f *File) {
	if p.tok.kind != tIdent {
		p.errorf("expected section keyword, got %q", p.tok.text)
		p.advance()
		return
	}
	kind := p.tok.text
	p.advance()
	name := ""
	if p.tok.kind == tString {
		name = p.tok.text
		p.advance()
	}
	p.expectPunct("{")
	stmts := p.parseStmts()
	p.expectPunct("}")
	p.expectPunct(";")

	sec := &Section{Name: name, Stmts: stmts}
	switch kind {
	case "xkb_keycodes":
		f.Keycodes = sec
	case "xkb_types":
		f.Types = sec
	case "xkb_compatibility", "xkb_compat":
		f.Compat = sec
	case "xkb_symbols":
		f.Symbols = sec
	default:
		p.errorf("unknown section kind %q", kind)
	}
}

func (p *Parser) advance() {
	tok, err := p.lex.next()
	if err != nil {
		p.errs = append(p.errs, err)
		p.tok = token{kind: tEOF}
		return
	}
	p.tok = tok
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("line %d: %s", p.tok.line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expectPunct(s string) bool {
	if p.tok.kind == tPunct && p.tok.text == s {
		p.advance()
		return true
	}
	p.errorf("expected %q, got %q", s, p.tok.text)
	return false
}

// skipStmt advances past tokens until after the next ';' or a
// balancing '}', used for single-statement error recovery.
func (p *Parser) skipStmt() {
	depth := 0
	for p.tok.kind != tEOF {
		if p.tok.kind == tPunct {
			switch p.tok.text {
			case "{":
				depth++
			case "}":
				if depth == 0 {
					return
				}
				depth--
			case ";":
				if depth == 0 {
					p.advance()
					return
				}
			}
		}
		p.advance()
	}
}

func mergeModeFor(kw string) (model.MergeMode, bool) {
	switch kw {
	case "override":
		return model.MergeOverride, true
	case "augment":
		return model.MergeAugment, true
	case "replace":
		return model.MergeReplace, true
	case "default":
		return model.MergeDefault, true
	}
	return model.MergeDefault, false
}

func (p *Parser) parseStmts() []Stmt {
	var out []Stmt
	for {
		if p.tok.kind == tPunct && (p.tok.text == "}" || p.tok.text == "") {
			break
		}
		if p.tok.kind == tEOF {
			break
		}
		s := p.parseStmt()
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (p *Parser) parseStmt() Stmt {
	merge := model.MergeDefault
	if p.tok.kind == tIdent {
		if m, ok := mergeModeFor(p.tok.text); ok {
			merge = m
			p.advance()
		}
	}

	switch {
	case p.tok.kind == tIdent && p.tok.text == "include":
		p.advance()
		spec := ""
		if p.tok.kind == tString {
			spec = p.tok.text
			p.advance()
		}
		p.expectPunct(";")
		return &IncludeStmt{Spec: spec, Merge: merge}

	case p.tok.kind == tKeyName:
		name := p.tok.text
		p.advance()
		if !p.expectPunct("=") {
			p.skipStmt()
			return nil
		}
		v := p.parseExpr()
		p.expectPunct(";")
		if i, ok := v.(*Int); ok {
			return &KeyNameDef{Name: name, Code: int(i.Value)}
		}
		p.errorf("expected integer keycode for <%s>", name)
		return nil

	case p.tok.kind == tIdent && p.tok.text == "alias":
		p.advance()
		if p.tok.kind != tKeyName {
			p.errorf("expected key name after alias")
			p.skipStmt()
			return nil
		}
		newName := p.tok.text
		p.advance()
		p.expectPunct("=")
		old := ""
		if p.tok.kind == tKeyName {
			old = p.tok.text
			p.advance()
		}
		p.expectPunct(";")
		return &AliasDef{New: newName, Old: old}

	case p.tok.kind == tIdent && p.tok.text == "indicator":
		return p.parseIndicator(merge)

	case p.tok.kind == tIdent && p.tok.text == "virtual_modifiers":
		p.advance()
		var names []string
		for {
			if p.tok.kind == tIdent {
				names = append(names, p.tok.text)
				p.advance()
			}
			if p.tok.kind == tPunct && p.tok.text == "," {
				p.advance()
				continue
			}
			break
		}
		p.expectPunct(";")
		return &VModDef{Names: names}

	case p.tok.kind == tIdent && p.tok.text == "interpret":
		return p.parseInterp(merge)

	case p.tok.kind == tIdent && p.tok.text == "type":
		return p.parseType(merge)

	case p.tok.kind == tIdent && p.tok.text == "key":
		return p.parseKey(merge)

	case p.tok.kind == tIdent && p.tok.text == "modifier_map":
		p.advance()
		modName := p.tok.text
		p.advance()
		p.expectPunct("{")
		var keys []string
		for p.tok.kind == tKeyName {
			keys = append(keys, p.tok.text)
			p.advance()
			if p.tok.kind == tPunct && p.tok.text == "," {
				p.advance()
			}
		}
		p.expectPunct("}")
		p.expectPunct(";")
		return &ModMapDef{ModName: modName, Keys: keys}

	default:
		// A bare lvalue assignment: VarDef, or name[Group1]="...".
		lhs, gidx, isName := p.parseLHS()
		if !p.expectPunct("=") {
			p.skipStmt()
			return nil
		}
		if isName {
			s := ""
			if p.tok.kind == tString {
				s = p.tok.text
				p.advance()
			}
			p.expectPunct(";")
			return &GroupNameDef{GroupIndex: gidx, Name: s}
		}
		rhs := p.parseExpr()
		p.expectPunct(";")
		return &VarDef{LHS: lhs, RHS: rhs, Merge: merge}
	}
}

// parseLHS parses an assignment target: bare ident, elem.field,
// elem.field[ndx], or name[GroupN] (reported via isName).
func (p *Parser) parseLHS() (Expr, int, bool) {
	if p.tok.kind == tIdent && p.tok.text == "name" {
		p.advance()
		gidx := 0
		if p.tok.kind == tPunct && p.tok.text == "[" {
			p.advance()
			gidx = p.parseGroupIndex()
			p.expectPunct("]")
		}
		return nil, gidx, true
	}
	e := p.parsePrimary()
	return e, 0, false
}

func (p *Parser) parseGroupIndex() int {
	if p.tok.kind == tIdent {
		name := p.tok.text
		p.advance()
		n := 0
		fmt.Sscanf(name, "Group%d", &n)
		return n
	}
	if p.tok.kind == tInt {
		n := int(p.tok.ival)
		p.advance()
		return n
	}
	return 0
}

func (p *Parser) parseIndicator(merge model.MergeMode) Stmt {
	p.advance()
	if p.tok.kind == tInt {
		idx := int(p.tok.ival)
		p.advance()
		p.expectPunct("=")
		name := ""
		if p.tok.kind == tString {
			name = p.tok.text
			p.advance()
		}
		p.expectPunct(";")
		return &IndicatorNameDef{Index: idx, Name: name}
	}
	name := ""
	if p.tok.kind == tString {
		name = p.tok.text
		p.advance()
	} else if p.tok.kind == tIdent {
		name = p.tok.text
		p.advance()
	}
	p.expectPunct("{")
	body := p.parseStmts()
	p.expectPunct("}")
	p.expectPunct(";")
	return &IndicatorMapDef{Name: name, Body: body, Merge: merge}
}

func (p *Parser) parseInterp(merge model.MergeMode) Stmt {
	p.advance()
	sym := ""
	if p.tok.kind == tIdent {
		sym = p.tok.text
		p.advance()
	}
	var pred *MatchPred
	if p.tok.kind == tPunct && p.tok.text == "+" {
		p.advance()
		op := ""
		if p.tok.kind == tIdent {
			op = p.tok.text
			p.advance()
		}
		var mods Expr
		if p.tok.kind == tPunct && p.tok.text == "(" {
			p.advance()
			mods = p.parseExpr()
			p.expectPunct(")")
		}
		pred = &MatchPred{Op: op, Mods: mods}
	}
	p.expectPunct("{")
	body := p.parseStmts()
	p.expectPunct("}")
	p.expectPunct(";")
	return &InterpDef{Sym: sym, Pred: pred, Body: body, Merge: merge}
}

func (p *Parser) parseType(merge model.MergeMode) Stmt {
	p.advance()
	name := ""
	if p.tok.kind == tString {
		name = p.tok.text
		p.advance()
	}
	p.expectPunct("{")
	var body []Stmt
	for !(p.tok.kind == tPunct && p.tok.text == "}") && p.tok.kind != tEOF {
		if p.tok.kind == tIdent && p.tok.text == "map" {
			p.advance()
			p.expectPunct("[")
			mods := p.parseExpr()
			p.expectPunct("]")
			p.expectPunct("=")
			lvl := p.parseExpr()
			p.expectPunct(";")
			body = append(body, &KeyTypeMapEntry{Mods: mods, Level: lvl})
			continue
		}
		if p.tok.kind == tIdent && p.tok.text == "preserve" {
			p.advance()
			p.expectPunct("[")
			mods := p.parseExpr()
			p.expectPunct("]")
			p.expectPunct("=")
			pres := p.parseExpr()
			p.expectPunct(";")
			body = append(body, &KeyTypePreserveEntry{Mods: mods, Preserve: pres})
			continue
		}
		if p.tok.kind == tIdent && p.tok.text == "level_name" {
			p.advance()
			p.expectPunct("[")
			lvl := p.parseExpr()
			p.expectPunct("]")
			p.expectPunct("=")
			s := ""
			if p.tok.kind == tString {
				s = p.tok.text
				p.advance()
			}
			p.expectPunct(";")
			body = append(body, &KeyTypeLevelName{Level: lvl, Name: s})
			continue
		}
		s := p.parseStmt()
		if s != nil {
			body = append(body, s)
		}
	}
	p.expectPunct("}")
	p.expectPunct(";")
	return &TypeDef{Name: name, Body: body, Merge: merge}
}

func (p *Parser) parseKey(merge model.MergeMode) Stmt {
	p.advance()
	name := ""
	if p.tok.kind == tKeyName {
		name = p.tok.text
		p.advance()
	}
	p.expectPunct("{")
	var body []Stmt
	for !(p.tok.kind == tPunct && p.tok.text == "}") && p.tok.kind != tEOF {
		if p.tok.kind == tPunct && p.tok.text == "[" {
			// bare `[ q, Q ]` shorthand symbols group
			p.advance()
			syms := p.parseExprList("]")
			p.expectPunct("]")
			if p.tok.kind == tPunct && p.tok.text == "," {
				p.advance()
			}
			body = append(body, &KeySymbolsGroup{GroupIndex: 0, Syms: syms})
			continue
		}
		if p.tok.kind == tIdent && (p.tok.text == "symbols" || p.tok.text == "actions") {
			kind := p.tok.text
			p.advance()
			gidx := 0
			if p.tok.kind == tPunct && p.tok.text == "[" {
				p.advance()
				gidx = p.parseGroupIndex()
				p.expectPunct("]")
			}
			p.expectPunct("=")
			p.expectPunct("[")
			items := p.parseExprList("]")
			p.expectPunct("]")
			p.expectPunct(";")
			if kind == "symbols" {
				body = append(body, &KeySymbolsGroup{GroupIndex: gidx, Syms: items})
			} else {
				body = append(body, &KeyActionsGroup{GroupIndex: gidx, Actions: items})
			}
			continue
		}
		if p.tok.kind == tIdent && p.tok.text == "type" {
			// `type = "NAME";` field, not a nested type definition
			p.advance()
			p.expectPunct("=")
			rhs := p.parseExpr()
			p.expectPunct(";")
			body = append(body, &VarDef{LHS: &Ident{Name: "type"}, RHS: rhs, Merge: model.MergeDefault})
			continue
		}
		s := p.parseStmt()
		if s != nil {
			body = append(body, s)
		}
	}
	p.expectPunct("}")
	p.expectPunct(";")
	return &KeyDef{Name: name, Body: body, Merge: merge}
}

func (p *Parser) parseExprList(end string) []Expr {
	var out []Expr
	for {
		if p.tok.kind == tPunct && p.tok.text == end {
			break
		}
		out = append(out, p.parseExpr())
		if p.tok.kind == tPunct && p.tok.text == "," {
			p.advance()
			continue
		}
		break
	}
	return out
}

// parseExpr handles the '+'/'-'/'|'/'&' binary operators at a single
// precedence level (the grammar does not need more than one) and
// unary '!'/'~'.
func (p *Parser) parseExpr() Expr {
	left := p.parseUnary()
	for p.tok.kind == tPunct && (p.tok.text == "+" || p.tok.text == "-" || p.tok.text == "|" || p.tok.text == "&") {
		op := p.tok.text
		p.advance()
		right := p.parseUnary()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() Expr {
	if p.tok.kind == tPunct && (p.tok.text == "!" || p.tok.text == "~" || p.tok.text == "-") {
		op := p.tok.text
		p.advance()
		return &Unary{Op: op, Operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() Expr {
	switch {
	case p.tok.kind == tInt:
		v := p.tok.ival
		p.advance()
		return &Int{Value: v}
	case p.tok.kind == tString:
		s := p.tok.text
		p.advance()
		return &String{Value: s}
	case p.tok.kind == tKeyName:
		n := p.tok.text
		p.advance()
		return &KeyName{Name: n}
	case p.tok.kind == tPunct && p.tok.text == "(":
		p.advance()
		e := p.parseExpr()
		p.expectPunct(")")
		return e
	case p.tok.kind == tIdent:
		name := p.tok.text
		p.advance()
		if name == "true" || name == "True" {
			return &Boolean{Value: true}
		}
		if name == "false" || name == "False" {
			return &Boolean{Value: false}
		}
		if p.tok.kind == tPunct && p.tok.text == "(" {
			return p.parseActionDecl(name)
		}
		if p.tok.kind == tPunct && p.tok.text == "." {
			p.advance()
			field := ""
			if p.tok.kind == tIdent {
				field = p.tok.text
				p.advance()
			}
			if p.tok.kind == tPunct && p.tok.text == "[" {
				p.advance()
				idx := p.parseExpr()
				p.expectPunct("]")
				return &ArrayRef{Elem: name, Field: field, Index: idx}
			}
			return &FieldRef{Elem: name, Field: field}
		}
		if p.tok.kind == tPunct && p.tok.text == "[" {
			p.advance()
			idx := p.parseExpr()
			p.expectPunct("]")
			return &ArrayRef{Elem: "", Field: name, Index: idx}
		}
		return &Ident{Name: name}
	default:
		p.errorf("unexpected token %q in expression", p.tok.text)
		p.advance()
		return &Ident{Name: ""}
	}
}

func (p *Parser) parseActionDecl(name string) Expr {
	p.expectPunct("(")
	var args []ActionArg
	for !(p.tok.kind == tPunct && p.tok.text == ")") && p.tok.kind != tEOF {
		negated := false
		if p.tok.kind == tPunct && (p.tok.text == "!" || p.tok.text == "~") {
			negated = true
			p.advance()
		}
		argName := ""
		if p.tok.kind == tIdent {
			argName = p.tok.text
			p.advance()
		}
		var val Expr = &Boolean{Value: !negated}
		if p.tok.kind == tPunct && p.tok.text == "=" {
			// bare `flag` / `!flag` arguments stand for flag=true/false
			p.advance()
			val = p.parseExpr()
		}
		args = append(args, ActionArg{Name: argName, Value: val})
		if p.tok.kind == tPunct && p.tok.text == "," {
			p.advance()
			continue
		}
		break
	}
	p.expectPunct(")")
	return &ActionDecl{Name: name, Args: args}
}
