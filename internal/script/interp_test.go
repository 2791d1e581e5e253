package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runScript(t *testing.T, src string) (*Interp, string) {
	t.Helper()
	forms, err := Parse(strings.NewReader(src))
	assert.NoError(t, err)

	out := &strings.Builder{}
	in := NewInterp(out)
	err = in.Run(forms)
	assert.NoError(t, err)
	return in, out.String()
}

func TestScriptBasicCongruence(t *testing.T) {
	in, _ := runScript(t, `
(decl f 1)
(decl a 0)
(decl b 0)
(intern (f a))
(intern (f b))
(merge a b axiom)
(propagate)
`)
	fa, _ := in.resolveTerm(Expr{List: []Expr{{Atom: "f"}, {Atom: "a"}}})
	fb, _ := in.resolveTerm(Expr{List: []Expr{{Atom: "f"}, {Atom: "b"}}})
	na, _ := in.G.Find(fa)
	nb, _ := in.G.Find(fb)
	assert.Equal(t, in.G.Root(na), in.G.Root(nb))
}

func TestScriptCheckSat(t *testing.T) {
	_, out := runScript(t, `
(merge true false axiom)
(check-sat)
`)
	assert.Contains(t, out, "unsat")
}

func TestScriptExplain(t *testing.T) {
	_, out := runScript(t, `
(decl a 0)
(decl b 0)
(merge a b axiom)
(explain a b)
`)
	assert.Contains(t, out, "axiom")
}

func TestScriptUndeclaredFunction(t *testing.T) {
	forms, err := Parse(strings.NewReader(`(intern (f a))`))
	assert.NoError(t, err)

	in := NewInterp(&strings.Builder{})
	err = in.Run(forms)
	assert.Error(t, err)
}
