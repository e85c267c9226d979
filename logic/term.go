package logic

import "fmt"

// Term is either a Variable or a Constant (a typed object drawn from a
// sort's finite domain). It mirrors gokando's Term interface shape
// (String/Equal/IsVar) but is closed to exactly these two cases, since
// purple's terms never need the open Pair/Atom machinery a relational
// language like miniKanren needs.
type Term interface {
	fmt.Stringer
	termSort() Sort
	IsVar() bool
	// Equal reports structural equality: same kind, same sort, same
	// identity (name for variables, value for constants).
	Equal(Term) bool
}

// Variable is a named, sorted logic variable: an action parameter, a
// predicate's arity slot, or a quantifier-bound variable.
type Variable struct {
	sigma *Alphabet
	name  string
	sort  Sort
}

// NewVariable creates a variable of the given sort. Two variables with
// the same name and sort, from the same alphabet, compare Equal.
func (a *Alphabet) NewVariable(name string, sort Sort) Variable {
	return Variable{sigma: a, name: name, sort: sort}
}

func (v Variable) String() string   { return v.name }
func (v Variable) Name() string     { return v.name }
func (v Variable) Sort() Sort       { return v.sort }
func (v Variable) termSort() Sort   { return v.sort }
func (v Variable) IsVar() bool      { return true }
func (v Variable) Sigma() *Alphabet { return v.sigma }

func (v Variable) Equal(o Term) bool {
	ov, ok := o.(Variable)
	return ok && v.sigma == ov.sigma && v.name == ov.name && v.sort.Equal(ov.sort)
}

// VarDecl pairs a variable with its sort — spec.md §3's var_decl. Since
// Variable already carries its sort, VarDecl is just Variable under
// the name spec.md uses for action parameters and predicate arities.
type VarDecl = Variable

// Constant is a typed object: a member of a named sort's finite
// domain, declared by a problem's sort_decl (spec.md §3).
type Constant struct {
	sigma *Alphabet
	name  string
	sort  Sort
}

// NewConstant creates a constant object of the given sort.
func (a *Alphabet) NewConstant(name string, sort Sort) Constant {
	return Constant{sigma: a, name: name, sort: sort}
}

func (c Constant) String() string   { return c.name }
func (c Constant) Name() string     { return c.name }
func (c Constant) Sort() Sort       { return c.sort }
func (c Constant) termSort() Sort   { return c.sort }
func (c Constant) IsVar() bool      { return false }
func (c Constant) Sigma() *Alphabet { return c.sigma }

func (c Constant) Equal(o Term) bool {
	oc, ok := o.(Constant)
	return ok && c.sigma == oc.sigma && c.name == oc.name && c.sort.Equal(oc.sort)
}

// SortDecl binds a named sort to an explicit, finite object universe —
// spec.md §3's sort_decl.
type SortDecl struct {
	Sort   Sort
	Domain []Constant
}
