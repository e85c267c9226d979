package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/black-sat/purple/logic"
)

// These comparers let go-cmp diff values built from logic.Alphabet
// symbols without reaching into their unexported fields: a Formula
// compares by its canonical printed form, a Relation and an Alphabet
// pointer by the identity semantics their own Equal/== already define.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b logic.Formula) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return a.String() == b.String()
	}),
	cmp.Comparer(func(a, b logic.Relation) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b *logic.Alphabet) bool { return a == b }),
}

func TestPredicateCallParams(t *testing.T) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")
	from := sigma.NewVariable("from", room)
	to := sigma.NewVariable("to", room)

	connected := NewPredicate(sigma, "connected", []logic.VarDecl{from, to})

	got := connected.CallParams()
	rel, terms, ok := logic.AsAtom(got)
	if !ok {
		t.Fatalf("CallParams did not build an atom: %v", got)
	}
	if rel.Name() != "connected" {
		t.Errorf("relation name = %q, want connected", rel.Name())
	}
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
}

func TestBareFluentEffectHasTopPrecondition(t *testing.T) {
	sigma := logic.NewAlphabet()
	lightOn := sigma.Proposition("light_on")

	e := BareFluentEffect(lightOn, true)
	if !logic.IsTop(e.Precondition) {
		t.Errorf("BareFluentEffect precondition = %v, want top", e.Precondition)
	}
	if !e.Positive {
		t.Error("expected positive effect")
	}
	if len(e.Fluents) != 1 || e.Fluents[0].Name() != "light_on" {
		t.Errorf("unexpected fluent list: %v", e.Fluents)
	}
}

func TestDomainOfLooksUpSortDecl(t *testing.T) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")
	kitchen := sigma.NewConstant("kitchen", room)
	bedroom := sigma.NewConstant("bedroom", room)

	p := Problem{
		Types: []logic.SortDecl{{Sort: room, Domain: []logic.Constant{kitchen, bedroom}}},
	}

	got, ok := p.DomainOf(room)
	if !ok {
		t.Fatal("expected room's domain to be found")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(got))
	}

	other := sigma.Sort("other")
	if _, ok := p.DomainOf(other); ok {
		t.Error("expected lookup of an undeclared sort to fail")
	}
}

func TestEffectAllBuildsSameShapeAsManualConstruction(t *testing.T) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")
	r := sigma.NewVariable("r", room)
	at := NewPredicate(sigma, "at", []logic.VarDecl{r})
	kitchen := sigma.NewConstant("kitchen", room)
	lit := sigma.Proposition("lit")

	got := EffectAll(sigma, []logic.Relation{lit}, []logic.Formula{at.Call(kitchen)}, true)
	want := Effect{
		Sigma:        sigma,
		Precondition: sigma.Top(),
		Fluents:      []logic.Relation{lit},
		Predicates:   []logic.Formula{at.Call(kitchen)},
		Positive:     true,
	}

	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Fatalf("EffectAll mismatch (-want +got):\n%s", diff)
	}
}
