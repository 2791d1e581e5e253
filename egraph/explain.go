package egraph

import "github.com/cottand/euf/util/hset"

// ExplainEq returns the justifications that prove a.root == b.root
// (spec §4.8): the least common ancestor of a and b in the proof forest
// is found, then the path from each side up to the LCA is walked,
// recursing through congruence edges into their argument pairs and
// collecting every Axiom/External edge directly.
func (g *Egraph) ExplainEq(a, b NodeID) []Justification {
	out := []Justification{}
	g.explainEq(a, b, &out, hset.Empty(pairHasher{}))
	return out
}

// ExplainConflict dumps the stored inconsistency: the justification that
// directly linked the two conflicting witnesses, plus the proof that
// each witness already belonged to its (distinct, interpreted) class.
func (g *Egraph) ExplainConflict() []Justification {
	if g.conflict == nil {
		return nil
	}
	c := g.conflict
	out := []Justification{}
	seen := hset.Empty(pairHasher{})
	g.explainEdge(c.n1, c.n2, c.n1, c.justification, &out, seen)
	g.explainEq(c.n1, g.Root(c.n1), &out, seen)
	g.explainEq(c.n2, g.Root(c.n2), &out, seen)
	return out
}

type pairKey struct{ x, y NodeID }

// pairHasher lets the LCA-explanation dedup set (spec §4.8 visits each
// pair at most once) run on util/hset rather than a bare Go map.
type pairHasher struct{}

func (pairHasher) Hash(p pairKey) uint32 {
	return uint32(p.x)*31 + uint32(p.y)
}

func (pairHasher) Equal(a, b pairKey) bool {
	return a == b
}

func makePairKey(a, b NodeID) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

func (g *Egraph) explainEq(a, b NodeID, out *[]Justification, seen hset.HSet[pairKey]) {
	if a == b {
		return
	}
	k := makePairKey(a, b)
	if seen.Contains(k) {
		return
	}
	seen.Add(k)

	lca := g.findLCA(a, b)
	g.explainPath(a, lca, lca, out, seen)
	g.explainPath(b, lca, lca, out, seen)
}

// findLCA marks every ancestor of a via mark1 (spec §4.8), walks from b
// until it hits a marked node, then clears the marks it set.
func (g *Egraph) findLCA(a, b NodeID) NodeID {
	for n := a; ; {
		nd := g.arena.get(n)
		nd.mark1 = true
		if nd.target == noNode {
			break
		}
		n = nd.target
	}

	lca := a
	for n := b; ; {
		nd := g.arena.get(n)
		if nd.mark1 {
			lca = n
			break
		}
		if nd.target == noNode {
			break
		}
		n = nd.target
	}

	for n := a; ; {
		nd := g.arena.get(n)
		nd.mark1 = false
		if nd.target == noNode {
			break
		}
		n = nd.target
	}
	return lca
}

func (g *Egraph) explainPath(from, to, lca NodeID, out *[]Justification, seen hset.HSet[pairKey]) {
	cur := from
	for cur != to {
		n := g.arena.get(cur)
		tgt := n.target
		g.explainEdge(cur, tgt, lca, n.justification, out, seen)
		cur = tgt
	}
}

func (g *Egraph) explainEdge(from, to, lca NodeID, j Justification, out *[]Justification, seen hset.HSet[pairKey]) {
	if j.Kind == JustCongruence {
		if g.onUsedCC != nil {
			g.onUsedCC(from, to)
		}
		g.explainCongruenceArgs(from, to, out, seen)
		return
	}
	if g.onUsedEq != nil {
		g.onUsedEq(from, to, lca)
	}
	*out = append(*out, j)
}

// explainCongruenceArgs recurses into the argument pairs of two
// congruent applications. A binary commutative head whose arguments
// match crosswise is explained with the crossed pairing instead of the
// straight one (spec §4.8).
func (g *Egraph) explainCongruenceArgs(p1, p2 NodeID, out *[]Justification, seen hset.HSet[pairKey]) {
	n1 := g.arena.get(p1)
	n2 := g.arena.get(p2)

	if n1.expr.Decl().Commutative && len(n1.args) == 2 {
		straight := g.arena.get(n1.args[0]).root == g.arena.get(n2.args[0]).root
		if !straight {
			g.explainEq(n1.args[0], n2.args[1], out, seen)
			g.explainEq(n1.args[1], n2.args[0], out, seen)
			return
		}
	}

	for i := range n1.args {
		g.explainEq(n1.args[i], n2.args[i], out, seen)
	}
}
