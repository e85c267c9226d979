package logic

import "strings"

// String renderings for every Formula case. Kept deliberately plain —
// parenthesize everything rather than track precedence — since this
// is a debugging aid (used by tests and Solver.Trace), not a parser
// target.

func (a atomF) String() string {
	if len(a.terms) == 0 {
		return a.rel.name
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return a.rel.name + "(" + strings.Join(parts, ", ") + ")"
}

func (n notF) String() string { return "!(" + n.arg.String() + ")" }

func (n andF) String() string { return joinFormulas(n.args, " & ") }
func (n orF) String() string  { return joinFormulas(n.args, " | ") }

func joinFormulas(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = "(" + f.String() + ")"
	}
	return strings.Join(parts, sep)
}

func (i impliesF) String() string { return "(" + i.left.String() + ") -> (" + i.right.String() + ")" }
func (i iffF) String() string     { return "(" + i.left.String() + ") <-> (" + i.right.String() + ")" }

func (q quantF) String() string {
	quant := "exists"
	if q.universal {
		quant = "forall"
	}
	names := make([]string, len(q.vars))
	for i, v := range q.vars {
		names[i] = v.name + ":" + v.sort.name
	}
	return quant + " " + strings.Join(names, ", ") + ". (" + q.matrix.String() + ")"
}

func (e eqF) String() string {
	op := "="
	if !e.equal {
		op = "!="
	}
	return e.left.String() + " " + op + " " + e.right.String()
}

func (n nextF) String() string {
	if n.weak {
		return "wX(" + n.arg.String() + ")"
	}
	return "X(" + n.arg.String() + ")"
}

func (g globallyF) String() string { return "G(" + g.arg.String() + ")" }
func (f finallyF) String() string  { return "F(" + f.arg.String() + ")" }

// Key canonically names a fully-ground atom or proposition — the
// identity the planner package uses to index a Trace's valuations and
// the plan extractor uses to query them (spec.md §4.I / §4.D). It
// panics if f is not a ground Atom/Proposition, since it is only ever
// called on literals the compiler or the plan extractor itself built.
func Key(f Formula) string {
	rel, terms, ok := AsAtom(f)
	if !ok {
		panic("logic: Key: not an atom or proposition")
	}
	if len(terms) == 0 {
		return rel.name
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		if t.IsVar() {
			panic("logic: Key: atom is not ground: " + f.String())
		}
		parts[i] = t.String()
	}
	return rel.name + "(" + strings.Join(parts, ",") + ")"
}
