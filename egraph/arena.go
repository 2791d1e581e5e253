package egraph

import "github.com/cottand/euf/util"

// arena owns e-node storage as a scope-bumped region (spec §4.1, §9):
// nodes are appended in creation order and addressed by index, so a
// scope's nodes occupy a contiguous suffix that popScope can discard in
// one slice truncation.
type arena struct {
	nodes     []*enode
	scopeLens util.Stack[int] // node-count snapshot at each forced scope push
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc(n *enode) NodeID {
	id := NodeID(len(a.nodes))
	n.selfID = id
	n.root = id
	n.next = id
	n.target = noNode
	n.classSize = 1
	a.nodes = append(a.nodes, n)
	return id
}

func (a *arena) get(id NodeID) *enode {
	return a.nodes[id]
}

func (a *arena) len() int { return len(a.nodes) }

func (a *arena) pushScope() {
	a.scopeLens.Push(len(a.nodes))
}

// popScope discards every node allocated since the matching pushScope.
// Individual NodeAdded undo records (trail.go) have already unmapped and
// un-keyed each of these nodes by the time this runs; this is the bulk
// "delete last node" spec §4.7 assigns to NodeAdded, done once per scope
// instead of once per node.
func (a *arena) popScope() {
	mark, _ := a.scopeLens.Pop()
	a.nodes = a.nodes[:mark]
}
