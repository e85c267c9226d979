package main

import (
	"fmt"
	"strings"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// exprScope resolves a bare identifier inside a config expression: an
// object constant, a declared predicate/fluent name, or (inside an
// action body) one of its own parameters. It is the textual-formula
// analogue of simulate's Scope and ltlf's Scope, but resolves names
// rather than sort universes.
type exprScope struct {
	objects    map[string]logic.Constant
	predicates map[string]domain.Predicate
	fluents    map[string]logic.Relation
	vars       map[string]logic.VarDecl
}

func (s exprScope) withVars(params []logic.VarDecl) exprScope {
	vars := make(map[string]logic.VarDecl, len(s.vars)+len(params))
	for k, v := range s.vars {
		vars[k] = v
	}
	for _, p := range params {
		vars[p.Name()] = p
	}
	s.vars = vars
	return s
}

func (s exprScope) term(name string) (logic.Term, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if c, ok := s.objects[name]; ok {
		return c, true
	}
	return nil, false
}

// parseExpr parses a small Lisp-flavored formula language — the same
// register simulate/verifier.go's generated Prolog already uses, here
// parsed from config text instead of generated from compiled formulas:
//
//	true | false
//	not(E) | and(E, E, ...) | or(E, E, ...) | implies(E, E) | iff(E, E)
//	eq(T, T) | neq(T, T)
//	globally(E) | finally(E) | next(E) | wnext(E)
//	name | name(T, T, ...)
//
// where a T is either a bound variable, an object constant, or
// (recursively) not needed: terms are always bare names.
func parseExpr(sigma *logic.Alphabet, scope exprScope, src string) (logic.Formula, error) {
	p := &exprParser{src: src, scope: scope, sigma: sigma}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("empty expression")
	}
	f, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	return f, nil
}

type exprParser struct {
	src   string
	pos   int
	scope exprScope
	sigma *logic.Alphabet
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *exprParser) peekIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '(' || c == ')' || c == ',' || c == ' ' || c == '\t' || c == '\n' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("expected %q at position %d in %q", c, p.pos, p.src)
	}
	p.pos++
	return nil
}

// parseFormulaArgs parses a parenthesized, comma-separated argument list of
// sub-formulas, used for and/or/not/implies/iff/globally/finally/next/wnext.
func (p *exprParser) parseFormulaArgs() ([]logic.Formula, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var args []logic.Formula
	for {
		p.skipSpace()
		f, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		args = append(args, f)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *exprParser) parseFormula() (logic.Formula, error) {
	p.skipSpace()
	name := p.peekIdent()
	if name == "" {
		return nil, fmt.Errorf("expected an identifier at position %d in %q", p.pos, p.src)
	}

	switch name {
	case "true":
		return p.sigma.Top(), nil
	case "false":
		return p.sigma.Bottom(), nil
	case "not":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("not() takes exactly one argument")
		}
		return logic.Not(args[0]), nil
	case "and":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		return logic.And(args...), nil
	case "or":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		return logic.Or(args...), nil
	case "implies":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("implies() takes exactly two arguments")
		}
		return logic.Implies(args[0], args[1]), nil
	case "iff":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("iff() takes exactly two arguments")
		}
		return logic.Iff(args[0], args[1]), nil
	case "globally":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("globally() takes exactly one argument")
		}
		return logic.G(args[0]), nil
	case "finally":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("finally() takes exactly one argument")
		}
		return logic.F(args[0]), nil
	case "next":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("next() takes exactly one argument")
		}
		return logic.X(args[0]), nil
	case "wnext":
		args, err := p.parseFormulaArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("wnext() takes exactly one argument")
		}
		return logic.WX(args[0]), nil
	case "eq", "neq":
		p.skipSpace()
		if err := p.expect('('); err != nil {
			return nil, err
		}
		left, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if name == "eq" {
			return logic.Eq(left, right), nil
		}
		return logic.Neq(left, right), nil
	}

	return p.parseAtom(name)
}

func (p *exprParser) parseAtom(name string) (logic.Formula, error) {
	if pred, ok := p.scope.predicates[name]; ok {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '(' {
			return nil, fmt.Errorf("predicate %q called with no arguments", name)
		}
		terms, err := p.parseTermArgs()
		if err != nil {
			return nil, err
		}
		if len(terms) != len(pred.Params) {
			return nil, fmt.Errorf("predicate %q expects %d arguments, got %d", name, len(pred.Params), len(terms))
		}
		return pred.Call(terms...), nil
	}
	if rel, ok := p.scope.fluents[name]; ok {
		return logic.Proposition(rel), nil
	}
	return nil, fmt.Errorf("%q is neither a known predicate nor a fluent", name)
}

func (p *exprParser) parseTermArgs() ([]logic.Term, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var terms []logic.Term
	for {
		p.skipSpace()
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return terms, nil
}

func (p *exprParser) parseTerm() (logic.Term, error) {
	p.skipSpace()
	name := p.peekIdent()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("expected a term at position %d in %q", p.pos, p.src)
	}
	t, ok := p.scope.term(name)
	if !ok {
		return nil, fmt.Errorf("%q is neither a bound variable nor a known object", name)
	}
	return t, nil
}
