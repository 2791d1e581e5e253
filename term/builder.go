package term

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
)

// Builder hash-conses terms: two calls that would build the same term
// (same decl/kind and same argument identities) return the same *Expr.
// This lives outside the congruence-closure core deliberately (spec §1
// treats an AST/term manager as an out-of-scope neighbour the core only
// consumes from) but a real caller needs *some* term manager to hand the
// core stable ids, so Builder is the minimal one.
type Builder struct {
	mu       sync.Mutex
	nextID   int64
	interned map[uint64][]*Expr
	trueC    *Expr
	falseC   *Expr
}

// NewBuilder returns an empty term universe.
func NewBuilder() *Builder {
	return &Builder{interned: make(map[uint64][]*Expr)}
}

func (b *Builder) freshID() int64 {
	b.nextID++
	return b.nextID
}

// key hashes (kind, decl, sort, arg ids) the same way frontend/ast's Node
// implementations hash their fields: an fnv64a digest over a
// little-endian-appended byte buffer. Collisions are resolved by a full
// structural comparison in intern, so a 64-bit digest only needs to be a
// good bucket key, not collision-free.
func hashKey(kind Kind, decl Decl, args []*Expr) uint64 {
	h := fnv.New64a()
	var buf []byte
	buf = append(buf, byte(kind))
	_, _ = h.Write(buf)
	_, _ = h.Write([]byte(decl.Name))
	_, _ = h.Write([]byte(decl.Sort.Name))
	for _, a := range args {
		var idBuf [8]byte
		binary.LittleEndian.PutUint64(idBuf[:], uint64(a.id))
		_, _ = h.Write(idBuf[:])
	}
	return h.Sum64()
}

func sameArgs(a, b []*Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (b *Builder) intern(kind Kind, decl Decl, sort Sort, args []*Expr, literal string) *Expr {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := hashKey(kind, decl, args)
	for _, cand := range b.interned[key] {
		if cand.kind == kind && cand.decl == decl && sameArgs(cand.args, args) && cand.literal == literal {
			return cand
		}
	}
	e := &Expr{
		id:      b.freshID(),
		decl:    decl,
		sort:    sort,
		args:    args,
		kind:    kind,
		literal: literal,
	}
	b.interned[key] = append(b.interned[key], e)
	return e
}

// App builds (or looks up) f(args...). decl.Sort becomes the term's sort.
func (b *Builder) App(decl Decl, args ...*Expr) *Expr {
	return b.intern(KindApp, decl, decl.Sort, args, "")
}

// Const builds a 0-ary application, i.e. an uninterpreted constant.
func (b *Builder) Const(decl Decl) *Expr {
	return b.App(decl)
}

var eqDecl = Decl{Name: "=", Sort: BoolSort, Commutative: true}

// Eq builds (or looks up) the equality atom (lhs = rhs). The arguments
// are kept in the order given, so Eq(a,b) and Eq(b,a) are distinct terms
// whenever a != b. The core keeps equality atoms out of its congruence
// table, so it does not identify two such atoms by congruence either.
func (b *Builder) Eq(lhs, rhs *Expr) *Expr {
	return b.intern(KindEq, eqDecl, BoolSort, []*Expr{lhs, rhs}, "")
}

var trueDecl = Decl{Name: "true", Sort: BoolSort}
var falseDecl = Decl{Name: "false", Sort: BoolSort}

// True returns this builder's singleton true constant.
func (b *Builder) True() *Expr {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.trueC == nil {
		b.trueC = &Expr{id: b.freshID(), decl: trueDecl, sort: BoolSort, kind: KindTrue}
	}
	return b.trueC
}

// False returns this builder's singleton false constant.
func (b *Builder) False() *Expr {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.falseC == nil {
		b.falseC = &Expr{id: b.freshID(), decl: falseDecl, sort: BoolSort, kind: KindFalse}
	}
	return b.falseC
}

// Value builds (or looks up) a unique interpreted value of the given sort,
// e.g. a numeral. Two Value calls with the same sort and literal always
// return the same *Expr; two different literals are guaranteed distinct
// domain elements by the core's conflict-detection rule (spec §4.3.2).
func (b *Builder) Value(sort Sort, literal string) *Expr {
	decl := Decl{Name: literal, Sort: sort}
	return b.intern(KindValue, decl, sort, nil, literal)
}
