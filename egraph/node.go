package egraph

import "github.com/cottand/euf/term"

// NodeID is the index of an e-node within an Egraph's arena. Nodes are
// addressed by index rather than pointer so that the whole engine is
// relocatable and pop can shrink the arena in bulk (spec §9 "Cyclic
// structures").
type NodeID int32

// noNode is the sentinel for "no node" — a forest-root's target, or the
// NodeID Intern returns alongside an error.
const noNode NodeID = -1

type theoryVarEntry struct {
	theoryID int
	v        int
}

// enode is one interned term, carrying the union-find, proof-forest,
// parent-list and theory-var bookkeeping spec §3 describes.
type enode struct {
	expr *term.Expr
	args []NodeID

	selfID NodeID // this node's own id, set once at allocation

	root NodeID // union-find representative; n.root == n on a root
	next NodeID // circular list of every member of the class

	target        NodeID // proof-forest edge target; noNode at a forest root
	justification Justification

	parents []NodeID // valid on roots only, after a propagation sweep

	classSize int // valid on roots only

	theoryVars []theoryVarEntry

	interpreted  bool
	mergeEnabled bool

	mark1 bool // transient: explanation LCA search
}

func (n *enode) isRoot() bool { return n.root == n.selfID }

func (n *enode) theoryVar(theoryID int) (int, bool) {
	for _, tv := range n.theoryVars {
		if tv.theoryID == theoryID {
			return tv.v, true
		}
	}
	return 0, false
}

func (n *enode) setTheoryVar(theoryID, v int) {
	for i, tv := range n.theoryVars {
		if tv.theoryID == theoryID {
			n.theoryVars[i].v = v
			return
		}
	}
	n.theoryVars = append(n.theoryVars, theoryVarEntry{theoryID: theoryID, v: v})
}

func (n *enode) removeTheoryVar(theoryID int) {
	for i, tv := range n.theoryVars {
		if tv.theoryID == theoryID {
			n.theoryVars = append(n.theoryVars[:i], n.theoryVars[i+1:]...)
			return
		}
	}
}
