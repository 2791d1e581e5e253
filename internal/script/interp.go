package script

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cottand/euf/egraph"
	"github.com/cottand/euf/term"
)

var uSort = term.Sort{Name: "U"}
var numSort = term.Sort{Name: "Num"}

// Interp runs a parsed script against one egraph/term-builder pair. It is
// the engine underneath cmd/euf, kept separate so tests can drive it
// without going through cobra or os.Stdin.
type Interp struct {
	G     *egraph.Egraph
	B     *term.Builder
	decls map[string]term.Decl
	out   io.Writer
}

func NewInterp(out io.Writer) *Interp {
	return &Interp{
		G:     egraph.New(),
		B:     term.NewBuilder(),
		decls: make(map[string]term.Decl),
		out:   out,
	}
}

// Run executes every top-level form in order, stopping at the first error.
func (in *Interp) Run(forms []Expr) error {
	for _, f := range forms {
		if err := in.runOne(f); err != nil {
			return fmt.Errorf("%s: %w", f.String(), err)
		}
	}
	return nil
}

func (in *Interp) runOne(f Expr) error {
	if f.IsAtom() || len(f.List) == 0 {
		return fmt.Errorf("expected a command form")
	}
	head := f.List[0]
	if !head.IsAtom() {
		return fmt.Errorf("command name must be an atom")
	}
	args := f.List[1:]

	switch head.Atom {
	case "decl":
		return in.cmdDecl(args, false)
	case "decl-comm":
		return in.cmdDecl(args, true)
	case "intern":
		if len(args) != 1 {
			return fmt.Errorf("intern takes exactly one term")
		}
		e, err := in.resolveTerm(args[0])
		if err != nil {
			return err
		}
		_, err = in.G.Intern(e)
		return err
	case "merge":
		if len(args) != 3 {
			return fmt.Errorf("merge takes lhs rhs justification")
		}
		return in.cmdMerge(args[0], args[1], args[2])
	case "push":
		n, err := requireInt(args, "push")
		if err != nil {
			return err
		}
		in.G.Push(n)
		return nil
	case "pop":
		n, err := requireInt(args, "pop")
		if err != nil {
			return err
		}
		in.G.Pop(n)
		return nil
	case "propagate":
		progressed := in.G.Propagate()
		fmt.Fprintf(in.out, "propagate: %v\n", progressed)
		return nil
	case "explain":
		if len(args) != 2 {
			return fmt.Errorf("explain takes two terms")
		}
		return in.cmdExplain(args[0], args[1])
	case "check-sat":
		if in.G.Inconsistent() {
			fmt.Fprintln(in.out, "unsat")
		} else {
			fmt.Fprintln(in.out, "sat")
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", head.Atom)
	}
}

func requireInt(args []Expr, cmd string) (int, error) {
	if len(args) != 1 || !args[0].IsAtom() {
		return 0, fmt.Errorf("%s takes one integer argument", cmd)
	}
	return strconv.Atoi(args[0].Atom)
}

func (in *Interp) cmdDecl(args []Expr, commutative bool) error {
	if len(args) != 2 || !args[0].IsAtom() || !args[1].IsAtom() {
		return fmt.Errorf("decl takes a name and an arity")
	}
	name := args[0].Atom
	if _, err := strconv.Atoi(args[1].Atom); err != nil {
		return fmt.Errorf("arity must be an integer: %w", err)
	}
	in.decls[name] = term.Decl{Name: name, Sort: uSort, Commutative: commutative}
	return nil
}

func (in *Interp) cmdMerge(lhs, rhs, justForm Expr) error {
	le, err := in.resolveTerm(lhs)
	if err != nil {
		return err
	}
	re, err := in.resolveTerm(rhs)
	if err != nil {
		return err
	}
	ln, err := in.G.Intern(le)
	if err != nil {
		return err
	}
	rn, err := in.G.Intern(re)
	if err != nil {
		return err
	}
	j, err := resolveJustification(justForm)
	if err != nil {
		return err
	}
	in.G.Merge(ln, rn, j)
	return nil
}

func (in *Interp) cmdExplain(lhsForm, rhsForm Expr) error {
	le, err := in.resolveTerm(lhsForm)
	if err != nil {
		return err
	}
	re, err := in.resolveTerm(rhsForm)
	if err != nil {
		return err
	}
	ln, err := in.G.Intern(le)
	if err != nil {
		return err
	}
	rn, err := in.G.Intern(re)
	if err != nil {
		return err
	}
	if in.G.Root(ln) != in.G.Root(rn) {
		fmt.Fprintln(in.out, "not equal")
		return nil
	}
	for _, j := range in.G.ExplainEq(ln, rn) {
		fmt.Fprintf(in.out, "  %s\n", describeJustification(j))
	}
	return nil
}

func resolveJustification(f Expr) (egraph.Justification, error) {
	if !f.IsAtom() {
		return egraph.Justification{}, fmt.Errorf("justification must be an atom")
	}
	switch f.Atom {
	case "axiom":
		return egraph.Axiom(), nil
	default:
		return egraph.ExternalJust(f.Atom), nil
	}
}

func describeJustification(j egraph.Justification) string {
	switch j.Kind {
	case egraph.JustAxiom:
		return "axiom"
	case egraph.JustCongruence:
		return "congruence"
	default:
		return fmt.Sprintf("external(%v)", j.External)
	}
}

// resolveTerm builds a *term.Expr out of an s-expression, resolving
// declared function symbols and the built-in true/false/equality/numeral
// forms.
func (in *Interp) resolveTerm(f Expr) (*term.Expr, error) {
	if f.IsAtom() {
		switch f.Atom {
		case "true":
			return in.B.True(), nil
		case "false":
			return in.B.False(), nil
		}
		if decl, ok := in.decls[f.Atom]; ok {
			return in.B.Const(decl), nil
		}
		if _, err := strconv.ParseFloat(f.Atom, 64); err == nil {
			return in.B.Value(numSort, f.Atom), nil
		}
		return nil, fmt.Errorf("unknown atom %q", f.Atom)
	}

	if len(f.List) == 0 {
		return nil, fmt.Errorf("empty term")
	}
	head := f.List[0]
	if !head.IsAtom() {
		return nil, fmt.Errorf("term head must be an atom")
	}
	rest := f.List[1:]

	if head.Atom == "=" {
		if len(rest) != 2 {
			return nil, fmt.Errorf("= takes exactly two arguments")
		}
		lhs, err := in.resolveTerm(rest[0])
		if err != nil {
			return nil, err
		}
		rhs, err := in.resolveTerm(rest[1])
		if err != nil {
			return nil, err
		}
		return in.B.Eq(lhs, rhs), nil
	}

	decl, ok := in.decls[head.Atom]
	if !ok {
		return nil, fmt.Errorf("undeclared function %q", head.Atom)
	}
	args := make([]*term.Expr, len(rest))
	for i, a := range rest {
		e, err := in.resolveTerm(a)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return in.B.App(decl, args...), nil
}
