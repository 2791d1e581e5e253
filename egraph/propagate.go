package egraph

// equalityFastPath forces p (an equality atom) true the moment its two
// argument roots coincide (spec §4.5). Equality atoms are never keyed
// into the congruence table; this is the only way one becomes true by
// congruence rather than by explicit assignment.
func (g *Egraph) equalityFastPath(p NodeID) {
	n := g.arena.get(p)
	if g.arena.get(n.args[0]).root == g.arena.get(n.args[1]).root {
		g.pushLiteral(p, true)
	}
}

// Propagate drains the worklist to a fixpoint (spec §4.4). Every root a
// merge queued gets its parents re-examined: an equality-atom parent is
// re-checked by the fast path; any other parent is re-keyed into the
// congruence table, and a collision there starts another merge, which
// may queue further roots. Propagate returns true iff it produced any
// new literal, theory notification, or inconsistency; it returns early
// (with whatever it produced before the cutoff) if the resource limiter
// fires before the worklist runs dry, leaving every invariant intact for
// a later resumed call.
func (g *Egraph) Propagate() bool {
	litsBefore := len(g.newLiterals)
	notesBefore := len(g.newTheoryEqs)
	inconsistentBefore := g.inconsistentFlag

	for !g.worklist.empty() {
		if g.limiter.Exhausted() {
			break
		}
		batch := g.worklist.drain()
		for _, r := range batch {
			// r may have been folded into another class by a merge that
			// ran after it was queued but before this drain; parents is
			// only valid on the current root.
			rn := g.arena.get(g.arena.get(r).root)
			for _, p := range rn.parents {
				pn := g.arena.get(p)
				if pn.expr.IsEq() {
					g.equalityFastPath(p)
					continue
				}
				existing, collided := g.congTable.insert(g, p)
				if collided && existing != p {
					g.merge(p, existing, CongruenceJust())
				}
			}
		}
	}

	return len(g.newLiterals) > litsBefore ||
		len(g.newTheoryEqs) > notesBefore ||
		(g.inconsistentFlag && !inconsistentBefore)
}
