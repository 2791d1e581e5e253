package egraph

import (
	"testing"

	"github.com/cottand/euf/term"
	"github.com/stretchr/testify/assert"
)

var uSort = term.Sort{Name: "U"}

func uDecl(name string) term.Decl { return term.Decl{Name: name, Sort: uSort} }

func commDecl(name string) term.Decl { return term.Decl{Name: name, Sort: uSort, Commutative: true} }

// assertInvariants checks the properties spec §8 requires to hold after
// every public call: every node's root is its own root, class_size
// matches the next-cycle length, and for every non-equality application
// whose args are all merge_enabled, the congruence table holds a node of
// the same class under that application's current key.
func assertInvariants(t *testing.T, g *Egraph) {
	t.Helper()
	for id := NodeID(0); int(id) < g.arena.len(); id++ {
		n := g.arena.get(id)
		root := g.arena.get(n.root)
		assert.Equal(t, root.root, n.root, "node %d: root is not idempotent", id)

		if n.isRoot() {
			count := 0
			cur := id
			seen := map[NodeID]bool{}
			for {
				assert.False(t, seen[cur], "node %d: next-cycle revisits %d", id, cur)
				seen[cur] = true
				count++
				cur = g.arena.get(cur).next
				if cur == id {
					break
				}
			}
			assert.Equal(t, n.classSize, count, "node %d: class_size mismatch", id)
		}

		if len(n.args) > 0 && !n.expr.IsEq() {
			allEnabled := true
			for _, a := range n.args {
				if !g.arena.get(a).mergeEnabled {
					allEnabled = false
				}
			}
			if allEnabled {
				k := keyOf(g, id)
				resident, ok := g.congTable.find(k)
				assert.True(t, ok, "node %d: missing from congruence table", id)
				assert.Equal(t, g.arena.get(resident).root, g.arena.get(id).root, "node %d: table resident is not in the same class", id)
			}
		}
	}
}

func TestBasicCongruence(t *testing.T) {
	b := term.NewBuilder()
	f := uDecl("f")
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))
	fa := b.App(f, a)
	fc := b.App(f, c)

	g := New()
	na, err := g.Intern(a)
	assert.NoError(t, err)
	nc, err := g.Intern(c)
	assert.NoError(t, err)
	nfa, err := g.Intern(fa)
	assert.NoError(t, err)
	nfc, err := g.Intern(fc)
	assert.NoError(t, err)

	g.Merge(na, nc, Axiom())
	g.Propagate()
	assertInvariants(t, g)

	assert.Equal(t, g.Root(nfa), g.Root(nfc))

	just := g.ExplainEq(nfa, nfc)
	assert.Len(t, just, 1)
	assert.Equal(t, JustAxiom, just[0].Kind)
}

func TestCommutativeCongruence(t *testing.T) {
	b := term.NewBuilder()
	gDecl := commDecl("g")
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))
	gab := b.App(gDecl, a, c)
	gba := b.App(gDecl, c, a)

	g := New()
	_, err := g.Intern(a)
	assert.NoError(t, err)
	_, err = g.Intern(c)
	assert.NoError(t, err)
	ngab, err := g.Intern(gab)
	assert.NoError(t, err)
	ngba, err := g.Intern(gba)
	assert.NoError(t, err)

	g.Propagate()
	assertInvariants(t, g)

	assert.Equal(t, g.Root(ngab), g.Root(ngba))
	assert.Empty(t, g.ExplainEq(ngab, ngba), "congruence alone needs no external justification")
}

func TestEqualityPropagation(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))
	eq := b.Eq(a, c)

	g := New()
	na, err := g.Intern(a)
	assert.NoError(t, err)
	nc, err := g.Intern(c)
	assert.NoError(t, err)
	neq, err := g.Intern(eq)
	assert.NoError(t, err)

	g.Merge(na, nc, Axiom())
	g.Propagate()
	assertInvariants(t, g)

	lits := g.NewLiterals()
	found := false
	for _, l := range lits {
		if l.Node == neq && l.Value {
			found = true
		}
	}
	assert.True(t, found, "expected (eq, true) among new literals")
}

func TestConflictOnInterpreted(t *testing.T) {
	b := term.NewBuilder()
	tru := b.True()
	fls := b.False()

	g := New()
	nt, err := g.Intern(tru)
	assert.NoError(t, err)
	nf, err := g.Intern(fls)
	assert.NoError(t, err)

	g.Merge(nt, nf, Axiom())

	assert.True(t, g.Inconsistent())
	just := g.ExplainConflict()
	assert.Len(t, just, 1)
	assert.Equal(t, JustAxiom, just[0].Kind)
}

func TestPushPopRoundTrip(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))
	d := b.Const(uDecl("d"))
	e := b.Const(uDecl("e"))

	g := New()
	na, _ := g.Intern(a)
	nc, _ := g.Intern(c)
	nd, _ := g.Intern(d)
	ne, _ := g.Intern(e)

	beforeRootA := g.Root(na)
	beforeRootD := g.Root(nd)
	beforeSize := g.arena.len()

	g.Push(1)
	g.Merge(na, nc, Axiom())
	g.Merge(nd, ne, Axiom())
	g.Propagate()
	assert.Equal(t, g.Root(na), g.Root(nc))
	g.Pop(1)

	assertInvariants(t, g)
	assert.Equal(t, beforeRootA, g.Root(na))
	assert.Equal(t, beforeRootD, g.Root(nd))
	assert.Equal(t, beforeSize, g.arena.len())
	assert.False(t, g.Inconsistent())
}

func TestInternIsIdempotent(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))

	g := New()
	n1, err := g.Intern(a)
	assert.NoError(t, err)
	n2, err := g.Intern(a)
	assert.NoError(t, err)
	assert.Equal(t, n1, n2)
}

func TestMergeThenPopRestoresRoots(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))

	g := New()
	na, _ := g.Intern(a)
	nc, _ := g.Intern(c)

	rootBefore := g.Root(na)

	g.Push(1)
	g.Merge(na, nc, Axiom())
	assert.Equal(t, g.Root(na), g.Root(nc))
	g.Pop(1)

	assert.Equal(t, rootBefore, g.Root(na))
	assert.NotEqual(t, g.Root(na), g.Root(nc))
}

func TestTheoryEqEmission(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))

	g := New()
	na, _ := g.Intern(a)
	nc, _ := g.Intern(c)

	const theoryID = 1
	g.AttachTheoryVar(na, theoryID, 10)
	g.AttachTheoryVar(nc, theoryID, 20)

	g.Merge(na, nc, Axiom())
	g.Propagate()

	notes := g.NewTheoryNotifications()
	found := false
	for _, n := range notes {
		if n.Kind == TheoryEq && n.TheoryID == theoryID &&
			((n.V1 == 10 && n.V2 == 20) || (n.V1 == 20 && n.V2 == 10)) {
			found = true
		}
	}
	assert.True(t, found, "expected a theory-eq notification for vars 10 and 20")
}

func TestDisequalityPropagation(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))
	eq := b.Eq(a, c)

	g := New()
	na, _ := g.Intern(a)
	nc, _ := g.Intern(c)
	_, _ = g.Intern(eq)

	const theoryID = 2
	g.SetTheoryPropagatesDiseqs(theoryID)
	g.AttachTheoryVar(na, theoryID, 1)
	g.AttachTheoryVar(nc, theoryID, 2)

	g.NewDiseq(mustFind(t, g, eq))
	g.Propagate()

	notes := g.NewTheoryNotifications()
	found := false
	for _, n := range notes {
		if n.Kind == TheoryDiseq && n.TheoryID == theoryID {
			found = true
		}
	}
	assert.True(t, found, "expected a theory-diseq notification")
}

// TestDisequalityOnLateAttach covers the other ordering from
// TestDisequalityPropagation: the equality atom is forced false first,
// and only afterwards do the two sides pick up theory variables. The
// second attach (not the first) is what completes the pairing and
// should fire the notification.
func TestDisequalityOnLateAttach(t *testing.T) {
	b := term.NewBuilder()
	a := b.Const(uDecl("a"))
	c := b.Const(uDecl("c"))
	eq := b.Eq(a, c)
	fls := b.False()

	g := New()
	na, _ := g.Intern(a)
	nc, _ := g.Intern(c)
	neq, _ := g.Intern(eq)
	nfalse, _ := g.Intern(fls)

	const theoryID = 3
	g.SetTheoryPropagatesDiseqs(theoryID)

	g.Merge(neq, nfalse, Axiom())
	g.Propagate()

	g.AttachTheoryVar(na, theoryID, 1)
	notesAfterFirst := len(g.NewTheoryNotifications())

	g.AttachTheoryVar(nc, theoryID, 2)
	notes := g.NewTheoryNotifications()

	found := false
	for _, n := range notes {
		if n.Kind == TheoryDiseq && n.TheoryID == theoryID && n.V1 == 2 && n.V2 == 1 {
			found = true
		}
	}
	assert.Equal(t, 0, notesAfterFirst, "first attach should not yet see a counterpart")
	assert.True(t, found, "expected a theory-diseq notification once both sides carry a var")
}

func mustFind(t *testing.T, g *Egraph, e *term.Expr) NodeID {
	t.Helper()
	id, ok := g.Find(e)
	assert.True(t, ok)
	return id
}
