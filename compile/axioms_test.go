package compile

import (
	"strings"
	"testing"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

func TestPreconditionAxiomQuantifiesOverParams(t *testing.T) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")
	r := sigma.NewVariable("r", room)
	kitchen := sigma.NewConstant("kitchen", room)

	lit := domain.NewPredicate(sigma, "lit", []logic.VarDecl{r})
	move := domain.NewAction("turn_on", []logic.VarDecl{r}, logic.Not(lit.CallParams()), nil)

	d := domain.Domain{Sigma: sigma, Actions: []domain.Action{move}}
	p := domain.Problem{Types: []logic.SortDecl{{Sort: room, Domain: []logic.Constant{kitchen}}}}

	scope, err := BuildScope(d, p)
	if err != nil {
		t.Fatalf("BuildScope: %v", err)
	}

	f := PreconditionAxiom(scope, move)
	if !strings.Contains(f.String(), "turn_on") {
		t.Fatalf("expected the firing literal in the axiom, got %s", f.String())
	}
	if !strings.Contains(f.String(), "forall") {
		t.Fatalf("expected a universal quantifier, got %s", f.String())
	}
}

func TestEffectAxiomWrapsStrongNext(t *testing.T) {
	sigma := logic.NewAlphabet()
	lightOn := sigma.Proposition("light_on")
	turnOn := domain.NewAction("turn_on", nil, sigma.Top(), []domain.Effect{
		domain.BareFluentEffect(lightOn, true),
	})

	d := domain.Domain{Sigma: sigma, Actions: []domain.Action{turnOn}}
	scope, err := BuildScope(d, domain.Problem{})
	if err != nil {
		t.Fatalf("BuildScope: %v", err)
	}

	f := EffectAxiom(scope, turnOn, turnOn.Effects[0])
	_, right, ok := logic.AsImplies(f)
	if !ok {
		t.Fatalf("expected an implication, got %v", f)
	}
	if _, _, ok := logic.AsNext(right); !ok {
		t.Fatalf("expected the consequent to be a next formula, got %v", right)
	}
}

func TestDomainAxiomsCollectsOneEntryPerEffect(t *testing.T) {
	sigma := logic.NewAlphabet()
	lightOn := sigma.Proposition("light_on")
	doorOpen := sigma.Proposition("door_open")
	a := domain.NewAction("toggle", nil, sigma.Top(), []domain.Effect{
		domain.BareFluentEffect(lightOn, true),
		domain.BareFluentEffect(doorOpen, false),
	})

	d := domain.Domain{Sigma: sigma, Actions: []domain.Action{a}}
	scope, err := BuildScope(d, domain.Problem{})
	if err != nil {
		t.Fatalf("BuildScope: %v", err)
	}

	f := DomainAxioms(scope, d)
	str := f.String()
	if !strings.Contains(str, "light_on") || !strings.Contains(str, "door_open") {
		t.Fatalf("expected both effects represented, got %s", str)
	}
}
