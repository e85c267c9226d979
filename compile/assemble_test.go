package compile

import (
	"strings"
	"testing"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

func TestCompileAssemblesTopLevelShape(t *testing.T) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")
	at := domain.NewPredicate(sigma, "at", []logic.VarDecl{sigma.NewVariable("r", room)})
	kitchen := sigma.NewConstant("kitchen", room)
	bedroom := sigma.NewConstant("bedroom", room)

	goToBedroom := domain.NewAction("go_to_bedroom", nil, sigma.Top(), []domain.Effect{
		domain.BareAtomEffect(at.Call(bedroom), true),
		domain.BareAtomEffect(at.Call(kitchen), false),
	})

	d := domain.Domain{
		Sigma:      sigma,
		Types:      []logic.Sort{room},
		Predicates: []domain.Predicate{at},
		Actions:    []domain.Action{goToBedroom},
	}
	p := domain.Problem{
		Sigma: sigma,
		Types: []logic.SortDecl{{Sort: room, Domain: []logic.Constant{kitchen, bedroom}}},
		Init:  domain.State{Predicates: []logic.Formula{at.Call(kitchen)}},
		Goal:  at.Call(bedroom),
	}

	f, scope, err := Compile(d, p)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if scope == nil {
		t.Fatal("expected a non-nil scope")
	}

	str := f.String()
	if !strings.Contains(str, "go_to_bedroom") {
		t.Fatalf("expected the action's firing relation to appear, got %s", str)
	}
	if !strings.Contains(str, "F(") {
		t.Fatalf("expected a finally wrapper around the goal, got %s", str)
	}
	if !strings.Contains(str, "wX(") {
		t.Fatalf("expected the end-of-trace weak-next pin, got %s", str)
	}
}

func TestCompileDefaultsNilGoalAndTrajectoryToTop(t *testing.T) {
	sigma := logic.NewAlphabet()
	d := domain.Domain{Sigma: sigma}
	p := domain.Problem{Sigma: sigma}

	f, _, err := Compile(d, p)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if f == nil {
		t.Fatal("expected a non-nil formula even for an empty domain/problem")
	}
}

func TestCompilePropagatesScopeErrors(t *testing.T) {
	sigma := logic.NewAlphabet()
	at := domain.NewPredicate(sigma, "at", nil)
	clash := domain.NewAction("at", nil, sigma.Top(), nil)

	d := domain.Domain{Sigma: sigma, Predicates: []domain.Predicate{at}, Actions: []domain.Action{clash}}
	p := domain.Problem{Sigma: sigma}

	if _, _, err := Compile(d, p); err == nil {
		t.Fatal("expected the action/predicate name collision to surface as an error")
	}
}
