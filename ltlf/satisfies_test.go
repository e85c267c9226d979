package ltlf

import (
	"testing"

	"github.com/black-sat/purple/logic"
)

type fakeScope struct {
	domains map[string][]logic.Constant
}

func (s fakeScope) SortDomain(sort logic.Sort) ([]logic.Constant, bool) {
	d, ok := s.domains[sort.Name()]
	return d, ok
}

func TestSatisfiesProposition(t *testing.T) {
	sigma := logic.NewAlphabet()
	lit := sigma.Proposition("lit")

	trace := Trace{{"lit": true}, {"lit": false}}

	ok, err := Satisfies(fakeScope{}, logic.Proposition(lit), trace, 0)
	if err != nil || !ok {
		t.Fatalf("expected lit true at t=0, got %v %v", ok, err)
	}
	ok, err = Satisfies(fakeScope{}, logic.Proposition(lit), trace, 1)
	if err != nil || ok {
		t.Fatalf("expected lit false at t=1, got %v %v", ok, err)
	}
}

func TestSatisfiesStrongNextFailsAtLastInstant(t *testing.T) {
	sigma := logic.NewAlphabet()
	lit := sigma.Proposition("lit")
	trace := Trace{{"lit": true}}

	ok, err := Satisfies(fakeScope{}, logic.X(logic.Proposition(lit)), trace, 0)
	if err != nil || ok {
		t.Fatalf("expected X to fail with no successor instant, got %v %v", ok, err)
	}

	ok, err = Satisfies(fakeScope{}, logic.WX(logic.Proposition(lit)), trace, 0)
	if err != nil || !ok {
		t.Fatalf("expected wX to hold vacuously with no successor instant, got %v %v", ok, err)
	}
}

func TestSatisfiesGloballyAndFinally(t *testing.T) {
	sigma := logic.NewAlphabet()
	lit := sigma.Proposition("lit")
	trace := Trace{{"lit": true}, {"lit": true}, {"lit": false}}

	ok, err := Satisfies(fakeScope{}, logic.G(logic.Proposition(lit)), trace, 0)
	if err != nil || ok {
		t.Fatalf("expected G(lit) to fail since lit drops at t=2, got %v %v", ok, err)
	}

	ok, err = Satisfies(fakeScope{}, logic.F(logic.Not(logic.Proposition(lit))), trace, 0)
	if err != nil || !ok {
		t.Fatalf("expected F(!lit) to hold (witnessed at t=2), got %v %v", ok, err)
	}
}

func TestSatisfiesQuantifierOverObjectDomain(t *testing.T) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")
	kitchen := sigma.NewConstant("kitchen", room)
	bedroom := sigma.NewConstant("bedroom", room)
	r := sigma.NewVariable("r", room)
	lit := sigma.Relation("lit", room)

	trace := Trace{{"lit(kitchen)": true, "lit(bedroom)": false}}
	scope := fakeScope{domains: map[string][]logic.Constant{"room": {kitchen, bedroom}}}

	forall := logic.Forall([]logic.VarDecl{r}, logic.Atom(lit, r))
	ok, err := Satisfies(scope, forall, trace, 0)
	if err != nil || ok {
		t.Fatalf("expected forall to fail since bedroom is unlit, got %v %v", ok, err)
	}

	exists := logic.Exists([]logic.VarDecl{r}, logic.Atom(lit, r))
	ok, err = Satisfies(scope, exists, trace, 0)
	if err != nil || !ok {
		t.Fatalf("expected exists to hold (kitchen is lit), got %v %v", ok, err)
	}
}

func TestSatisfiesRejectsOutOfRangeInstant(t *testing.T) {
	sigma := logic.NewAlphabet()
	trace := Trace{{}}
	if _, err := Satisfies(fakeScope{}, sigma.Top(), trace, 5); err == nil {
		t.Fatal("expected an out-of-range instant to error")
	}
}
