package logic

import "testing"

func TestSubstituteReplacesFreeVariable(t *testing.T) {
	sigma := NewAlphabet()
	room := sigma.Sort("room")
	r := sigma.NewVariable("r", room)
	kitchen := sigma.NewConstant("kitchen", room)
	at := sigma.Relation("at", room)

	f := Atom(at, r)
	got := Substitute(f, map[string]Term{"r": kitchen})

	rel, terms, ok := AsAtom(got)
	if !ok || rel.Name() != "at" || len(terms) != 1 || terms[0].String() != "kitchen" {
		t.Fatalf("expected at(kitchen), got %v", got)
	}
}

func TestSubstituteDoesNotCrossQuantifierBoundary(t *testing.T) {
	sigma := NewAlphabet()
	room := sigma.Sort("room")
	r := sigma.NewVariable("r", room)
	kitchen := sigma.NewConstant("kitchen", room)
	at := sigma.Relation("at", room)

	inner := Forall([]VarDecl{r}, Atom(at, r))
	got := Substitute(inner, map[string]Term{"r": kitchen})

	universal, vars, matrix, ok := AsQuantifier(got)
	if !ok || !universal || len(vars) != 1 {
		t.Fatalf("expected the quantifier preserved, got %v", got)
	}
	_, terms, _ := AsAtom(matrix)
	if terms[0].String() != "r" {
		t.Fatalf("expected the bound variable left untouched inside its own matrix, got %v", matrix)
	}
}
