package egraph

// AttachTheoryVar labels node with theory theoryID's variable v (spec
// §4.6). Every node keeps its own per-node value for a theory, distinct
// from its class root's value: the first node in a class to carry a
// theory's variable donates it to the root, and a later attach to
// another node of the class is checked against the root's value rather
// than overwriting it. A second attach with a different variable to a
// node that already has one replaces that node's own value (on the root
// itself, this replaces the class's value) and queues a TheoryEq against
// the root's value as it stood before the replacement.
func (g *Egraph) AttachTheoryVar(node NodeID, theoryID, v int) {
	g.forcePush()
	n := g.arena.get(node)
	r := n.root
	rn := g.arena.get(r)

	w, hadW := n.theoryVar(theoryID)
	if !hadW {
		n.setTheoryVar(theoryID, v)
		g.trail.records = append(g.trail.records, thVarAddedRecord{node: node, theoryID: theoryID})

		if r == node {
			// node is its own root: this attach is the root gaining v.
			g.scanParentDiseqs(theoryID, v, r)
			return
		}
		u, hadU := rn.theoryVar(theoryID)
		if !hadU {
			rn.setTheoryVar(theoryID, v)
			g.trail.records = append(g.trail.records, thVarAddedRecord{node: r, theoryID: theoryID})
			g.scanParentDiseqs(theoryID, v, r)
			return
		}
		g.pushTheoryNotification(TheoryNotification{
			Kind: TheoryEq, TheoryID: theoryID,
			V1: v, V2: u,
			Witness1: node, Witness2: r,
		})
		return
	}

	if w == v {
		return
	}
	u, _ := rn.theoryVar(theoryID)
	g.trail.records = append(g.trail.records, thVarReplacedRecord{node: node, theoryID: theoryID, oldVar: w})
	n.setTheoryVar(theoryID, v)
	g.pushTheoryNotification(TheoryNotification{
		Kind: TheoryEq, TheoryID: theoryID,
		V1: v, V2: u,
		Witness1: node, Witness2: r,
	})
}

// scanParentDiseqs runs the moment r, a class root, gains its first
// variable for theoryID (spec §4.6): any equality atom already forced
// false that has r on one side pairs r's class against another; if that
// other class also carries a variable for theoryID, the two vars are
// now provably distinct, so a TheoryDiseq notification is queued.
func (g *Egraph) scanParentDiseqs(theoryID, v int, r NodeID) {
	if !g.theoryPropagatesDiseqs.Contains(theoryID) {
		return
	}
	rn := g.arena.get(r)
	for _, p := range rn.parents {
		pn := g.arena.get(p)
		if !pn.expr.IsEq() {
			continue
		}
		if !g.arena.get(pn.root).expr.IsFalse() {
			continue
		}
		arg0Root := g.arena.get(pn.args[0]).root
		other := arg0Root
		if arg0Root == r {
			other = g.arena.get(pn.args[1]).root
		}
		v2, ok := g.arena.get(other).theoryVar(theoryID)
		if !ok {
			continue
		}
		g.pushTheoryNotification(TheoryNotification{
			Kind: TheoryDiseq, TheoryID: theoryID,
			V1: v, V2: v2,
			Witness1: r, Witness2: other,
			Atom: p,
		})
	}
}

// migrateTheoryVars runs as step 12 of merge: every theory variable the
// loser root (ra) carried moves onto the winner (rb). A theory the
// winner doesn't have yet is adopted directly, which can newly satisfy
// scanParentDiseqs against the winner's own parents; a theory already
// labelled on both sides keeps the winner's value and just notifies the
// two variables are now equal.
func (g *Egraph) migrateTheoryVars(ra, rb NodeID) {
	ran := g.arena.get(ra)
	rbn := g.arena.get(rb)
	for _, tv := range ran.theoryVars {
		existing, had := rbn.theoryVar(tv.theoryID)
		if !had {
			rbn.setTheoryVar(tv.theoryID, tv.v)
			g.trail.records = append(g.trail.records, thVarAddedRecord{node: rb, theoryID: tv.theoryID})
			g.scanParentDiseqs(tv.theoryID, tv.v, rb)
			continue
		}
		if existing == tv.v {
			continue
		}
		g.pushTheoryNotification(TheoryNotification{
			Kind: TheoryEq, TheoryID: tv.theoryID,
			V1: existing, V2: tv.v,
			Witness1: rb, Witness2: ra,
		})
	}
}

// diseqPropagate runs when atomNode, an equality atom, has just been
// forced false (spec §4.6's disequality propagation). For every theory
// that opted in via SetTheoryPropagatesDiseqs and labels both sides with
// a variable, the two classes are now provably distinct, so a
// TheoryDiseq notification is queued.
func (g *Egraph) diseqPropagate(atomNode NodeID) {
	n := g.arena.get(atomNode)
	lr := g.arena.get(n.args[0]).root
	rr := g.arena.get(n.args[1]).root
	ln := g.arena.get(lr)
	rn := g.arena.get(rr)
	for theoryID := range g.theoryPropagatesDiseqs.All() {
		lv, lok := ln.theoryVar(theoryID)
		rv, rok := rn.theoryVar(theoryID)
		if !lok || !rok {
			continue
		}
		g.pushTheoryNotification(TheoryNotification{
			Kind: TheoryDiseq, TheoryID: theoryID,
			V1: lv, V2: rv,
			Witness1: lr, Witness2: rr,
			Atom: atomNode,
		})
	}
}
