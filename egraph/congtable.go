package egraph

import (
	"hash/fnv"
	"sort"

	"github.com/benbjohnson/immutable"
)

// congKey is the congruence-table key for a non-equality application:
// its head symbol and the current roots of its arguments (spec §4.2).
// Equality atoms never go through this table (§4.4).
type congKey struct {
	declName string
	sortName string
	roots    string // roots packed as fixed-width little-endian NodeIDs
}

func packRoots(roots []NodeID) string {
	buf := make([]byte, 4*len(roots))
	for i, r := range roots {
		u := uint32(r)
		buf[4*i+0] = byte(u)
		buf[4*i+1] = byte(u >> 8)
		buf[4*i+2] = byte(u >> 16)
		buf[4*i+3] = byte(u >> 24)
	}
	return string(buf)
}

type congKeyHasher struct{}

func (congKeyHasher) Hash(k congKey) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(k.declName))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.sortName))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.roots))
	return h.Sum32()
}

func (congKeyHasher) Equal(a, b congKey) bool {
	return a.declName == b.declName && a.sortName == b.sortName && a.roots == b.roots
}

// congTable is the hash set described in spec §4.2, built on
// benbjohnson/immutable.Map the same way util/hset builds a set on top of
// immutable.Hasher: a persistent map reassigned on every mutation. Pop
// does not restore the table from a saved copy; the trail's undo steps
// (nodeAddedRecord, undoEq) erase and re-insert the affected nodes.
type congTable struct {
	m *immutable.Map[congKey, NodeID]
}

func newCongTable() *congTable {
	return &congTable{m: immutable.NewMap[congKey, NodeID](congKeyHasher{})}
}

// keyOf computes p's current congruence-table key. Commutative decls
// (spec §4.8's "arguments may be explained crosswise") sort their
// argument roots so that f(a,b) and f(b,a) land on the same key.
func keyOf(g *Egraph, p NodeID) congKey {
	n := g.arena.get(p)
	roots := make([]NodeID, len(n.args))
	for i, a := range n.args {
		roots[i] = g.arena.get(a).root
	}
	if n.expr.Decl().Commutative {
		sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	}
	return congKey{declName: n.expr.Decl().Name, sortName: n.expr.Sort().Name, roots: packRoots(roots)}
}

// insert adds p under its current key. If some other node q is already
// resident under that key, insert leaves the table untouched and returns
// (q, true) — the collision the caller (propagate, §4.4) must merge on.
func (t *congTable) insert(g *Egraph, p NodeID) (NodeID, bool) {
	k := keyOf(g, p)
	if existing, ok := t.m.Get(k); ok {
		return existing, true
	}
	t.m = t.m.Set(k, p)
	return p, false
}

// erase removes p from the table if p is the resident under its own
// current key (a no-op otherwise — the caller may erase a node that was
// never the table's representative for that key).
func (t *congTable) erase(g *Egraph, p NodeID) {
	k := keyOf(g, p)
	if existing, ok := t.m.Get(k); ok && existing == p {
		t.m = t.m.Delete(k)
	}
}

func (t *congTable) find(k congKey) (NodeID, bool) {
	return t.m.Get(k)
}

func (t *congTable) len() int { return t.m.Len() }
