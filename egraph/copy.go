package egraph

// CopyFrom clones src's equivalence structure into g (spec §6): every
// term src ever interned is re-interned into g's own term universe
// (picking up g's own congruence collisions along the way), then every
// proof-forest edge still live in src is replayed as a merge, with
// external justification payloads passed through copier. A caller
// translating an AST across engines typically drives copier to rewrite
// the opaque payload rather than share it.
func (g *Egraph) CopyFrom(src *Egraph, copier JustificationCopier) error {
	g.forcePush()

	mapping := make(map[NodeID]NodeID, src.arena.len())
	for id := NodeID(0); int(id) < src.arena.len(); id++ {
		sn := src.arena.get(id)
		newID, err := g.Intern(sn.expr)
		if err != nil {
			return err
		}
		mapping[id] = newID
	}

	for id := NodeID(0); int(id) < src.arena.len(); id++ {
		sn := src.arena.get(id)
		if sn.target == noNode {
			continue
		}
		a := mapping[id]
		b := mapping[sn.target]
		g.merge(a, b, copier(sn.justification))
	}

	g.Propagate()
	return nil
}
