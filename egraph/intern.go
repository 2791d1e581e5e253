package egraph

import "github.com/cottand/euf/term"

// Intern returns the e-node for e, allocating one (and recursively
// interning e's children first) if this is the first time e has been
// seen (spec §4.1). Interning the same term twice is a no-op that
// returns the same NodeID both times.
func (g *Egraph) Intern(e *term.Expr) (NodeID, error) {
	if id, ok := g.exprToNode[e.ID()]; ok {
		return id, nil
	}

	args := make([]NodeID, len(e.Args()))
	for i, child := range e.Args() {
		childID, err := g.Intern(child)
		if err != nil {
			return noNode, err
		}
		args[i] = childID
	}

	g.forcePush()

	n := &enode{expr: e, args: args}
	id := g.arena.alloc(n)
	g.exprToNode[e.ID()] = id
	g.trail.records = append(g.trail.records, nodeAddedRecord{node: id})

	for _, a := range args {
		g.markMergeEnabled(a)
	}

	g.logger.Debug("interned", "id", int32(id), "term", e.String())

	if len(args) == 0 {
		if e.IsUniqueValue() {
			n.interpreted = true
		}
		return id, nil
	}

	for _, a := range args {
		root := g.arena.get(a).root
		rn := g.arena.get(root)
		rn.parents = append(rn.parents, id)
	}

	if e.IsEq() {
		g.equalityFastPath(id)
		return id, nil
	}

	existing, collided := g.congTable.insert(g, id)
	if collided {
		g.merge(id, existing, CongruenceJust())
	}
	return id, nil
}

func (g *Egraph) markMergeEnabled(a NodeID) {
	n := g.arena.get(a)
	if n.mergeEnabled {
		return
	}
	n.mergeEnabled = true
	g.trail.records = append(g.trail.records, mergeToggleEnabledRecord{node: a})
}
