package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// config is the on-disk domain/problem description plannerctl loads —
// a YAML front end over domain.Domain/domain.Problem, since neither
// carries struct tags of its own (its Formula fields are an interface,
// not something yaml.v3 can unmarshal directly).
type config struct {
	Sorts      []string          `yaml:"sorts"`
	Objects    map[string][]string `yaml:"objects"`
	Predicates []paramDecl       `yaml:"predicates"`
	Fluents    []string          `yaml:"fluents"`
	Actions    []actionDecl      `yaml:"actions"`
	Init       initDecl          `yaml:"init"`
	Goal       string            `yaml:"goal"`
	Trajectory string            `yaml:"trajectory"`
	Horizon    int               `yaml:"horizon"`
}

type paramDecl struct {
	Name   string      `yaml:"name"`
	Params []fieldDecl `yaml:"params"`
}

type fieldDecl struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"`
}

type actionDecl struct {
	Name         string      `yaml:"name"`
	Params       []fieldDecl `yaml:"params"`
	Precondition string      `yaml:"precondition"`
	Effects      []effectDecl `yaml:"effects"`
}

type effectDecl struct {
	Precondition string   `yaml:"precondition"`
	Add          []string `yaml:"add"`
	Remove       []string `yaml:"remove"`
}

type initDecl struct {
	Predicates []string `yaml:"predicates"`
	Fluents    []string `yaml:"fluents"`
}

func loadConfig(path string) (*config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plannerctl: reading %s: %w", path, err)
	}
	var c config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("plannerctl: parsing %s: %w", path, err)
	}
	return &c, nil
}

// build compiles a config into a domain.Domain/domain.Problem pair
// against a fresh logic.Alphabet. Every name in the file — sorts,
// objects, predicates, fluents, action parameters — is resolved once
// here, so a formula expression can later refer to any of them by
// plain name (exprScope, expr.go).
func (c *config) build() (domain.Domain, domain.Problem, error) {
	sigma := logic.NewAlphabet()

	sorts := make(map[string]logic.Sort, len(c.Sorts))
	for _, s := range c.Sorts {
		sorts[s] = sigma.Sort(s)
	}

	objects := make(map[string]logic.Constant)
	var types []logic.Sort
	var sortDecls []logic.SortDecl
	for sortName, names := range c.Objects {
		sort, ok := sorts[sortName]
		if !ok {
			return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: objects declared for undeclared sort %q", sortName)
		}
		types = append(types, sort)
		var dom []logic.Constant
		for _, n := range names {
			obj := sigma.NewConstant(n, sort)
			objects[n] = obj
			dom = append(dom, obj)
		}
		sortDecls = append(sortDecls, logic.SortDecl{Sort: sort, Domain: dom})
	}

	predicates := make([]domain.Predicate, 0, len(c.Predicates))
	predByName := make(map[string]domain.Predicate, len(c.Predicates))
	for _, pd := range c.Predicates {
		params, err := resolveParams(sigma, sorts, pd.Params)
		if err != nil {
			return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: predicate %q: %w", pd.Name, err)
		}
		pred := domain.NewPredicate(sigma, pd.Name, params)
		predicates = append(predicates, pred)
		predByName[pd.Name] = pred
	}

	fluents := make([]logic.Relation, 0, len(c.Fluents))
	fluentByName := make(map[string]logic.Relation, len(c.Fluents))
	for _, name := range c.Fluents {
		f := sigma.Proposition(name)
		fluents = append(fluents, f)
		fluentByName[name] = f
	}

	scope := exprScope{objects: objects, predicates: predByName, fluents: fluentByName}

	actions := make([]domain.Action, 0, len(c.Actions))
	for _, ad := range c.Actions {
		params, err := resolveParams(sigma, sorts, ad.Params)
		if err != nil {
			return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: action %q: %w", ad.Name, err)
		}
		local := scope.withVars(params)

		pre, err := parseExpr(sigma, local, ad.Precondition)
		if err != nil {
			return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: action %q precondition: %w", ad.Name, err)
		}

		effects := make([]domain.Effect, 0, len(ad.Effects))
		for _, ed := range ad.Effects {
			epre, err := parseExpr(sigma, local, ed.Precondition)
			if err != nil {
				return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: action %q effect precondition: %w", ad.Name, err)
			}
			addPreds, addFluents, err := splitAtoms(sigma, local, ed.Add)
			if err != nil {
				return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: action %q effect add list: %w", ad.Name, err)
			}
			for _, f := range addFluents {
				effects = append(effects, domain.NewEffect(epre, []logic.Relation{f}, nil, true))
			}
			if len(addPreds) > 0 {
				effects = append(effects, domain.NewEffect(epre, nil, addPreds, true))
			}
			remPreds, remFluents, err := splitAtoms(sigma, local, ed.Remove)
			if err != nil {
				return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: action %q effect remove list: %w", ad.Name, err)
			}
			for _, f := range remFluents {
				effects = append(effects, domain.NewEffect(epre, []logic.Relation{f}, nil, false))
			}
			if len(remPreds) > 0 {
				effects = append(effects, domain.NewEffect(epre, nil, remPreds, false))
			}
		}

		actions = append(actions, domain.NewAction(ad.Name, params, pre, effects))
	}

	initPreds, initFluents, err := splitAtoms(sigma, scope, c.Init.Predicates)
	if err != nil {
		return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: init predicates: %w", err)
	}
	_, moreFluents, err := splitAtoms(sigma, scope, c.Init.Fluents)
	if err != nil {
		return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: init fluents: %w", err)
	}
	initFluents = append(initFluents, moreFluents...)

	var goal, trajectory logic.Formula
	if strings.TrimSpace(c.Goal) != "" {
		goal, err = parseExpr(sigma, scope, c.Goal)
		if err != nil {
			return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: goal: %w", err)
		}
	}
	if strings.TrimSpace(c.Trajectory) != "" {
		trajectory, err = parseExpr(sigma, scope, c.Trajectory)
		if err != nil {
			return domain.Domain{}, domain.Problem{}, fmt.Errorf("plannerctl: trajectory: %w", err)
		}
	}

	d := domain.Domain{
		Sigma:      sigma,
		Types:      types,
		Fluents:    fluents,
		Predicates: predicates,
		Actions:    actions,
	}
	p := domain.Problem{
		Sigma:      sigma,
		Types:      sortDecls,
		Init:       domain.State{Fluents: initFluents, Predicates: initPreds},
		Goal:       goal,
		Trajectory: trajectory,
	}
	return d, p, nil
}

func resolveParams(sigma *logic.Alphabet, sorts map[string]logic.Sort, decls []fieldDecl) ([]logic.VarDecl, error) {
	params := make([]logic.VarDecl, len(decls))
	for i, f := range decls {
		sort, ok := sorts[f.Sort]
		if !ok {
			return nil, fmt.Errorf("undeclared sort %q for parameter %q", f.Sort, f.Name)
		}
		params[i] = sigma.NewVariable(f.Name, sort)
	}
	return params, nil
}

// splitAtoms parses every expression in exprs as an atom and buckets
// it by arity: a 0-ary relation name is a fluent, anything else is a
// predicate atom — config.Init and an effect's add/remove lists both
// need this split since domain.Effect keeps the two separate.
func splitAtoms(sigma *logic.Alphabet, scope exprScope, exprs []string) ([]logic.Formula, []logic.Relation, error) {
	var preds []logic.Formula
	var fluents []logic.Relation
	for _, e := range exprs {
		f, err := parseExpr(sigma, scope, e)
		if err != nil {
			return nil, nil, err
		}
		rel, terms, ok := logic.AsAtom(f)
		if !ok {
			return nil, nil, fmt.Errorf("%q is not an atom", e)
		}
		if len(terms) == 0 {
			fluents = append(fluents, rel)
			continue
		}
		preds = append(preds, f)
	}
	return preds, fluents, nil
}
