package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var fDecl = Decl{Name: "f", Sort: Sort{Name: "U"}}
var aDecl = Decl{Name: "a", Sort: Sort{Name: "U"}}

func TestHashConsingReturnsSamePointer(t *testing.T) {
	b := NewBuilder()
	a := b.Const(aDecl)

	f1 := b.App(fDecl, a)
	f2 := b.App(fDecl, a)

	assert.Same(t, f1, f2)
	assert.Equal(t, f1.ID(), f2.ID())
}

func TestDistinctArgsAreDistinctTerms(t *testing.T) {
	b := NewBuilder()
	a := b.Const(aDecl)
	bDecl := Decl{Name: "b", Sort: Sort{Name: "U"}}
	bb := b.Const(bDecl)

	fa := b.App(fDecl, a)
	fb := b.App(fDecl, bb)

	assert.NotSame(t, fa, fb)
}

func TestTrueFalseAreSingletons(t *testing.T) {
	b := NewBuilder()
	assert.Same(t, b.True(), b.True())
	assert.Same(t, b.False(), b.False())
	assert.NotSame(t, b.True(), b.False())
	assert.True(t, b.True().IsTrue())
	assert.True(t, b.False().IsFalse())
}

func TestEqBuildsEqualityAtom(t *testing.T) {
	b := NewBuilder()
	a := b.Const(aDecl)
	c := b.Const(Decl{Name: "c", Sort: Sort{Name: "U"}})

	eq := b.Eq(a, c)
	assert.True(t, eq.IsEq())
	assert.Equal(t, a, eq.Args()[0])
	assert.Equal(t, c, eq.Args()[1])
}

func TestValueIsUniqueAndStable(t *testing.T) {
	b := NewBuilder()
	one := b.Value(Sort{Name: "Num"}, "1")
	oneAgain := b.Value(Sort{Name: "Num"}, "1")
	two := b.Value(Sort{Name: "Num"}, "2")

	assert.Same(t, one, oneAgain)
	assert.NotSame(t, one, two)
	assert.True(t, one.IsUniqueValue())
}
