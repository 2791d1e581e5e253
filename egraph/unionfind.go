package egraph

// Merge asserts a == b, justified by j. It is the only public entry
// point for merging two nodes; propagate() and Intern's congruence
// collisions call the unexported merge with their own justifications
// (spec §4.1, §4.4).
func (g *Egraph) Merge(a, b NodeID, j Justification) {
	g.assertSameSort(a, b)
	g.merge(a, b, j)
}

// assertSameSort is the one precondition check spec §7 allows an
// implementation to make: merging nodes of unrelated sorts is always a
// caller bug, never a consequence of the asserted problem.
func (g *Egraph) assertSameSort(a, b NodeID) {
	sa := g.arena.get(a).expr.Sort()
	sb := g.arena.get(b).expr.Sort()
	if sa != sb {
		panic(newErr(SortMismatch, "cannot merge nodes of sort %s and %s", sa.Name, sb.Name))
	}
}

// NewDiseq runs the equality-atom disequality propagation spec §4.5
// describes as triggered "on new_diseq(eq_atom_node)" — used by a caller
// that has independently learned an equality atom is false (e.g. the
// Boolean engine assigned it false) without going through merge(atom,
// False, ...).
func (g *Egraph) NewDiseq(eqAtom NodeID) {
	g.forcePush()
	g.diseqPropagate(eqAtom)
}

// merge implements spec §4.3 verbatim.
func (g *Egraph) merge(a, b NodeID, j Justification) {
	g.forcePush()

	an, bn := g.arena.get(a), g.arena.get(b)
	ra, rb := an.root, bn.root
	if ra == rb {
		return
	}
	ran, rbn := g.arena.get(ra), g.arena.get(rb)

	if ran.interpreted && rbn.interpreted {
		g.setInconsistent(a, b, j)
		return
	}

	// Step 3: choose the loser. Prefer interpreted as winner; otherwise
	// keep the larger class as winner.
	raWins := false
	switch {
	case ran.interpreted && !rbn.interpreted:
		raWins = true
	case !ran.interpreted && rbn.interpreted:
		raWins = false
	default:
		raWins = ran.classSize > rbn.classSize
	}
	if raWins {
		a, b = b, a
		ra, rb = rb, ra
		an, bn = bn, an
		ran, rbn = rbn, ran
	}

	g.logger.Debug("merge", "loser", int32(ra), "winner", int32(rb))

	// Step 4: congruence-derived truth value.
	if j.Kind == JustCongruence && (rbn.expr.IsTrue() || rbn.expr.IsFalse()) {
		g.pushLiteral(a, rbn.expr.IsTrue())
	}

	// Step 5: an equality atom just became false.
	if rbn.expr.IsFalse() && an.expr.IsEq() {
		g.diseqPropagate(a)
	}

	// Step 6: erase every parent of both classes; their keys are about
	// to change.
	for _, p := range ran.parents {
		g.congTable.erase(g, p)
	}
	for _, p := range rbn.parents {
		g.congTable.erase(g, p)
	}

	// Step 7: undo record, capturing the winner's pre-merge parent count.
	winnerParentsBefore := len(rbn.parents)
	g.trail.records = append(g.trail.records, mergeDoneRecord{ra: ra, a: a, rb: rb, winnerParentsBefore: winnerParentsBefore})

	// Step 8: reorient the proof forest so a becomes a root, then attach
	// the new edge a -> b.
	g.reverseJustification(a)
	an.target = b
	an.justification = j

	// Step 9: rewrite every member of a's class to point at rb.
	cur := a
	for {
		g.arena.get(cur).root = rb
		cur = g.arena.get(cur).next
		if cur == a {
			break
		}
	}

	// Step 10: splice the two next-cycles (self-inverse swap).
	ran.next, rbn.next = rbn.next, ran.next

	// Step 11: winner absorbs the loser's size and parents.
	rbn.classSize += ran.classSize
	rbn.parents = append(rbn.parents, ran.parents...)

	// Step 12: theory-var migration.
	g.migrateTheoryVars(ra, rb)

	// Step 13.
	g.worklist.push(rb)
}

// reverseJustification re-orients the proof-forest path from x up to its
// current root so that x becomes the new root (spec §4.3 step 8, §4.8).
// It is its own semantic inverse only when applied to the two ends of
// the same path in the right order: undoEq first clears a's new edge,
// leaving a as the root of its tree, then calls it on ra so that ra is
// the root again.
func (g *Egraph) reverseJustification(x NodeID) {
	var prevNode NodeID = noNode
	var prevJust Justification
	cur := x
	for {
		n := g.arena.get(cur)
		nextNode := n.target
		nextJust := n.justification
		n.target = prevNode
		n.justification = prevJust
		if nextNode == noNode {
			return
		}
		prevNode = cur
		prevJust = nextJust
		cur = nextNode
	}
}

// undoEq reverses one merge, exactly inverting merge's steps 6-13 in the
// order spec §4.3's "Undo (undo_eq)" paragraph lists them.
func (g *Egraph) undoEq(r mergeDoneRecord) {
	ran := g.arena.get(r.ra)
	rbn := g.arena.get(r.rb)

	// The parents appended onto rb.parents during the merge are still
	// keyed on rb's roots right now; erase them before roots move back.
	toRestore := append([]NodeID(nil), rbn.parents[r.winnerParentsBefore:]...)
	for _, p := range toRestore {
		g.congTable.erase(g, p)
	}

	// Reverse the next-cycle splice (swapping twice is an involution).
	ran.next, rbn.next = rbn.next, ran.next

	// Walk a's cycle (now separated back out) restoring root == ra.
	cur := r.a
	for {
		g.arena.get(cur).root = r.ra
		cur = g.arena.get(cur).next
		if cur == r.a {
			break
		}
	}

	rbn.parents = rbn.parents[:r.winnerParentsBefore]
	for _, p := range toRestore {
		g.congTable.insert(g, p)
	}

	an := g.arena.get(r.a)
	an.target = noNode
	an.justification = Justification{}
	g.reverseJustification(r.ra)

	rbn.classSize -= ran.classSize
}
