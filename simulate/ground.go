package simulate

import (
	"fmt"

	"github.com/black-sat/purple/logic"
)

// Scope is the minimal lookup Replay needs to ground a quantifier: the
// finite object universe declared for a sort. compile.Scope satisfies
// it; simulate never imports compile, so the two packages stay
// independent implementations of "what does this formula mean".
type Scope interface {
	SortDomain(sort logic.Sort) ([]logic.Constant, bool)
}

// translate renders f, with subst applied to every free variable, as a
// ground Prolog term for the core's check/1 predicate: atom(Key),
// not(F), and(F,G), or(F,G). Quantifiers are eliminated by enumerating
// the bound variable's declared object universe; equalities are
// resolved directly in Go, since both sides are ground once subst is
// applied.
func translate(scope Scope, f logic.Formula, subst map[string]logic.Term) (string, error) {
	if logic.IsTop(f) {
		return "true", nil
	}
	if logic.IsBottom(f) {
		return "not(true)", nil
	}
	if _, _, ok := logic.AsAtom(f); ok {
		ground, err := groundAtom(f, subst)
		if err != nil {
			return "", err
		}
		return "atom(" + quoteAtom(logic.Key(ground)) + ")", nil
	}
	if arg, ok := logic.AsNot(f); ok {
		inner, err := translate(scope, arg, subst)
		if err != nil {
			return "", err
		}
		return "not(" + inner + ")", nil
	}
	if args, ok := logic.AsAnd(f); ok {
		return translateChain(scope, args, subst, "and")
	}
	if args, ok := logic.AsOr(f); ok {
		return translateChain(scope, args, subst, "or")
	}
	if left, right, ok := logic.AsImplies(f); ok {
		l, err := translate(scope, left, subst)
		if err != nil {
			return "", err
		}
		r, err := translate(scope, right, subst)
		if err != nil {
			return "", err
		}
		return "or(not(" + l + ")," + r + ")", nil
	}
	if left, right, ok := logic.AsIff(f); ok {
		l, err := translate(scope, left, subst)
		if err != nil {
			return "", err
		}
		r, err := translate(scope, right, subst)
		if err != nil {
			return "", err
		}
		return "and(or(not(" + l + ")," + r + "),or(not(" + r + ")," + l + "))", nil
	}
	if universal, vars, matrix, ok := logic.AsQuantifier(f); ok {
		terms, err := enumerate(scope, vars, subst)
		if err != nil {
			return "", err
		}
		combine := "or"
		if universal {
			combine = "and"
		}
		parts := make([]string, len(terms))
		for i, extended := range terms {
			term, err := translate(scope, matrix, extended)
			if err != nil {
				return "", err
			}
			parts[i] = term
		}
		if len(parts) == 0 {
			if universal {
				return "true", nil
			}
			return "not(true)", nil
		}
		return foldBinary(parts, combine), nil
	}
	if left, right, equal, ok := logic.AsEq(f); ok {
		lt, err := substituteTerm(left, subst)
		if err != nil {
			return "", err
		}
		rt, err := substituteTerm(right, subst)
		if err != nil {
			return "", err
		}
		same := lt.String() == rt.String()
		if same == equal {
			return "true", nil
		}
		return "not(true)", nil
	}
	return "", fmt.Errorf("simulate: formula %v uses a temporal operator, outside this replay's classical scope", f)
}

func translateChain(scope Scope, args []logic.Formula, subst map[string]logic.Term, functor string) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		term, err := translate(scope, a, subst)
		if err != nil {
			return "", err
		}
		parts[i] = term
	}
	return foldBinary(parts, functor), nil
}

func foldBinary(parts []string, functor string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	acc := parts[0]
	for _, p := range parts[1:] {
		acc = functor + "(" + acc + "," + p + ")"
	}
	return acc
}

// enumerate returns one extended substitution per combination of
// values drawn from each variable's declared object universe.
func enumerate(scope Scope, vars []logic.VarDecl, subst map[string]logic.Term) ([]map[string]logic.Term, error) {
	combos := []map[string]logic.Term{copySubst(subst)}
	for _, v := range vars {
		domain, ok := scope.SortDomain(v.Sort())
		if !ok {
			return nil, fmt.Errorf("simulate: sort %q has no declared object universe", v.Sort().Name())
		}
		var next []map[string]logic.Term
		for _, combo := range combos {
			for _, c := range domain {
				extended := copySubst(combo)
				extended[v.Name()] = c
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos, nil
}

func copySubst(subst map[string]logic.Term) map[string]logic.Term {
	cp := make(map[string]logic.Term, len(subst))
	for k, v := range subst {
		cp[k] = v
	}
	return cp
}

func substituteTerm(t logic.Term, subst map[string]logic.Term) (logic.Term, error) {
	if !t.IsVar() {
		return t, nil
	}
	named, ok := t.(interface{ Name() string })
	if !ok {
		return nil, fmt.Errorf("simulate: variable term %v has no name", t)
	}
	bound, ok := subst[named.Name()]
	if !ok {
		return nil, fmt.Errorf("simulate: unbound variable %q", named.Name())
	}
	return bound, nil
}

func groundAtom(atom logic.Formula, subst map[string]logic.Term) (logic.Formula, error) {
	rel, terms, ok := logic.AsAtom(atom)
	if !ok {
		return nil, fmt.Errorf("simulate: %v is not an atom", atom)
	}
	ground := make([]logic.Term, len(terms))
	for i, t := range terms {
		gt, err := substituteTerm(t, subst)
		if err != nil {
			return nil, err
		}
		ground[i] = gt
	}
	return logic.Atom(rel, ground...), nil
}
