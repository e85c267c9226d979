package logic

// Formula is the closed sum type for every first-order/LTLf formula
// this module builds: Boolean constants, propositions and relation
// atoms, the usual connectives, first-order quantifiers, equality, and
// the LTLf-over-finite-traces temporal operators (X, wX, G, F). It is
// the Go analogue of BLACK's `logic::formula`/`temporal::formula`
// fragments that `original_source/` compiles against, collapsed into
// one type since this module never needs to keep the FO and temporal
// fragments statically distinct — every formula compile/ builds is
// well-typed by construction.
//
// Every concrete case is unexported; callers consume formulas via the
// Is*/As* accessors in match.go rather than type-asserting the cases directly,
// mirroring the "otherwise" exhaustive-match idiom spec.md's design
// notes (§9) call for.
type Formula interface {
	Sigma() *Alphabet
	String() string
	isFormula()
}

type topF struct{ sigma *Alphabet }
type bottomF struct{ sigma *Alphabet }

func (topF) isFormula()    {}
func (bottomF) isFormula() {}

func (t topF) Sigma() *Alphabet    { return t.sigma }
func (b bottomF) Sigma() *Alphabet { return b.sigma }
func (topF) String() string        { return "true" }
func (bottomF) String() string     { return "false" }

// Top returns the formula that is always true (⊤).
func (a *Alphabet) Top() Formula { return topF{a} }

// Bottom returns the formula that is always false (⊥).
func (a *Alphabet) Bottom() Formula { return bottomF{a} }

// atomF is a relation applied to a term list. A 0-ary Relation applied
// to no terms is what spec.md calls a proposition.
type atomF struct {
	rel   Relation
	terms []Term
}

func (atomF) isFormula()         {}
func (a atomF) Sigma() *Alphabet { return a.rel.sigma }
func (a atomF) Relation() Relation { return a.rel }
func (a atomF) Terms() []Term      { return a.terms }

// Atom applies a relation to a term list, building a predicate or
// action-firing literal. Passing no terms against a 0-ary relation
// builds a proposition.
func Atom(rel Relation, terms ...Term) Formula {
	if len(terms) != len(rel.arity) {
		panic("logic: Atom: arity mismatch for relation " + rel.name)
	}
	return atomF{rel: rel, terms: append([]Term(nil), terms...)}
}

// Proposition builds the 0-ary atom for a nullary relation.
func Proposition(rel Relation) Formula {
	return Atom(rel)
}

type notF struct{ arg Formula }

func (notF) isFormula()         {}
func (n notF) Sigma() *Alphabet { return n.arg.Sigma() }

// Not negates a formula.
func Not(f Formula) Formula {
	if n, ok := f.(notF); ok {
		return n.arg
	}
	return notF{arg: f}
}

type andF struct{ args []Formula }
type orF struct{ args []Formula }

func (andF) isFormula()         {}
func (orF) isFormula()          {}
func (n andF) Sigma() *Alphabet { return sigmaOf(n.args) }
func (n orF) Sigma() *Alphabet  { return sigmaOf(n.args) }

func sigmaOf(fs []Formula) *Alphabet {
	for _, f := range fs {
		if f != nil {
			return f.Sigma()
		}
	}
	return nil
}

// And conjoins formulas left to right, flattening nested conjunctions.
// With no arguments it returns nil, since it has no alphabet to build
// ⊤ from; BigAnd is the form that yields ⊤ for an empty list, per
// spec.md §4.B's convention for empty effect lists.
func And(fs ...Formula) Formula {
	flat := make([]Formula, 0, len(fs))
	for _, f := range fs {
		if a, ok := f.(andF); ok {
			flat = append(flat, a.args...)
			continue
		}
		flat = append(flat, f)
	}
	if len(flat) == 0 {
		return nil // caller must supply an alphabet; see BigAnd
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return andF{args: flat}
}

// Or disjoins formulas left to right, flattening nested disjunctions.
// With no arguments it returns nil; BigOr is the form that yields ⊥
// for an empty list.
func Or(fs ...Formula) Formula {
	flat := make([]Formula, 0, len(fs))
	for _, f := range fs {
		if o, ok := f.(orF); ok {
			flat = append(flat, o.args...)
			continue
		}
		flat = append(flat, f)
	}
	if len(flat) == 0 {
		return nil
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return orF{args: flat}
}

// BigAnd conjoins encode(item) over items, in declared order, under
// sigma — the Go analogue of original_source/solver.cpp's
// `logic::big_and(sigma, items, fn)` template. An empty item list
// yields sigma.Top(), matching spec.md §4.B.
func BigAnd[T any](sigma *Alphabet, items []T, encode func(T) Formula) Formula {
	fs := make([]Formula, 0, len(items))
	for _, it := range items {
		fs = append(fs, encode(it))
	}
	if r := And(fs...); r != nil {
		return r
	}
	return sigma.Top()
}

// BigOr disjoins encode(item) over items, in declared order, under
// sigma, mirroring `logic::big_or`. An empty item list yields
// sigma.Bottom().
func BigOr[T any](sigma *Alphabet, items []T, encode func(T) Formula) Formula {
	fs := make([]Formula, 0, len(items))
	for _, it := range items {
		fs = append(fs, encode(it))
	}
	if r := Or(fs...); r != nil {
		return r
	}
	return sigma.Bottom()
}

type impliesF struct{ left, right Formula }
type iffF struct{ left, right Formula }

func (impliesF) isFormula()         {}
func (iffF) isFormula()             {}
func (i impliesF) Sigma() *Alphabet { return i.left.Sigma() }
func (i iffF) Sigma() *Alphabet     { return i.left.Sigma() }

// Implies builds left ⇒ right.
func Implies(left, right Formula) Formula { return impliesF{left, right} }

// Iff builds left ⇔ right.
func Iff(left, right Formula) Formula { return iffF{left, right} }

type quantF struct {
	universal bool
	vars      []VarDecl
	matrix    Formula
}

func (quantF) isFormula()         {}
func (q quantF) Sigma() *Alphabet { return q.matrix.Sigma() }

// Forall quantifies matrix universally over vars. An empty var list
// returns matrix unchanged, matching solver.cpp's `logic_forall`
// short-circuit for ground actions.
func Forall(vars []VarDecl, matrix Formula) Formula {
	if len(vars) == 0 {
		return matrix
	}
	return quantF{universal: true, vars: append([]VarDecl(nil), vars...), matrix: matrix}
}

// Exists quantifies matrix existentially over vars. An empty var list
// returns matrix unchanged, matching solver.cpp's `_exists`.
func Exists(vars []VarDecl, matrix Formula) Formula {
	if len(vars) == 0 {
		return matrix
	}
	return quantF{universal: false, vars: append([]VarDecl(nil), vars...), matrix: matrix}
}

type eqF struct {
	left, right Term
	equal       bool
}

func (eqF) isFormula()         {}
func (e eqF) Sigma() *Alphabet { return e.left.termSort().Sigma() }

// Eq builds the equality atom left = right.
func Eq(left, right Term) Formula { return eqF{left, right, true} }

// Neq builds the disequality atom left ≠ right.
func Neq(left, right Term) Formula { return eqF{left, right, false} }

// Temporal operators (LTLf over finite traces).

type nextF struct {
	arg  Formula
	weak bool
}

func (nextF) isFormula()         {}
func (n nextF) Sigma() *Alphabet { return n.arg.Sigma() }

// X builds the strong-next formula: false at the final state of a
// finite trace if arg would need a successor that doesn't exist.
func X(arg Formula) Formula { return nextF{arg: arg, weak: false} }

// WX builds the weak-next formula: true at the final state regardless
// of arg — this is the wX(⊥) idiom spec.md §4.H uses to pin down "the
// last state of the trace".
func WX(arg Formula) Formula { return nextF{arg: arg, weak: true} }

type globallyF struct{ arg Formula }
type finallyF struct{ arg Formula }

func (globallyF) isFormula()         {}
func (finallyF) isFormula()          {}
func (g globallyF) Sigma() *Alphabet { return g.arg.Sigma() }
func (f finallyF) Sigma() *Alphabet  { return f.arg.Sigma() }

// G builds the "globally" formula: arg holds at every state of the
// finite trace, including the last.
func G(arg Formula) Formula { return globallyF{arg} }

// F builds the "finally" (eventually) formula: arg holds at some
// state of the finite trace.
func F(arg Formula) Formula { return finallyF{arg} }
