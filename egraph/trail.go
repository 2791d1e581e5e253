package egraph

import "github.com/cottand/euf/util"

// undoRecord is one entry of the scope trail (spec §4.7). Each variant
// knows how to reverse exactly the mutation that produced it; pop(k)
// replays records back-to-front.
type undoRecord interface {
	undo(g *Egraph)
}

type trail struct {
	records       []undoRecord
	pendingScopes int             // push() calls not yet flushed by forcePush
	scopeMarks    util.Stack[int] // trail length at each flushed scope boundary
}

func newTrail() *trail {
	return &trail{}
}

// push is lazy (spec §4.7): it only bumps a counter. The real scope
// bookkeeping (arena scope, queue-head save records) is deferred to
// forcePush, called by every mutating operation.
func (g *Egraph) Push(n int) {
	if n <= 0 {
		return
	}
	g.trail.pendingScopes += n
}

// forcePush flushes every pending push() before a mutation that must be
// undoable runs.
func (g *Egraph) forcePush() {
	for g.trail.pendingScopes > 0 {
		g.trail.pendingScopes--
		g.trail.scopeMarks.Push(len(g.trail.records))
		g.arena.pushScope()
		g.trail.records = append(g.trail.records,
			newLitQHeadRecord{prev: g.newLitQHead},
			newThEqQHeadRecord{prev: g.newThEqQHead},
		)
	}
}

// Pop rolls back n scopes. Scopes still pending (never flushed because
// nothing mutated the engine since push) are simply uncounted.
func (g *Egraph) Pop(n int) {
	if n <= 0 {
		return
	}
	if n <= g.trail.pendingScopes {
		g.trail.pendingScopes -= n
		return
	}
	n -= g.trail.pendingScopes
	g.trail.pendingScopes = 0

	for i := 0; i < n; i++ {
		mark, _ := g.trail.scopeMarks.Pop()

		for len(g.trail.records) > mark {
			top := len(g.trail.records) - 1
			rec := g.trail.records[top]
			g.trail.records = g.trail.records[:top]
			rec.undo(g)
		}
		g.arena.popScope()
		g.worklist.clear()
	}
}

// --- undo record variants ---

type nodeAddedRecord struct{ node NodeID }

func (r nodeAddedRecord) undo(g *Egraph) {
	n := g.arena.get(r.node)
	if len(n.args) > 0 && !n.expr.IsEq() {
		g.congTable.erase(g, r.node)
	}
	delete(g.exprToNode, n.expr.ID())
}

type mergeToggleEnabledRecord struct{ node NodeID }

func (r mergeToggleEnabledRecord) undo(g *Egraph) {
	n := g.arena.get(r.node)
	n.mergeEnabled = !n.mergeEnabled
}

// mergeDoneRecord undoes one merge: ra is the loser's pre-merge root, a
// is the witness node whose proof-forest edge was reoriented, rb is the
// winner's root, and winnerParentsBefore is len(rb.parents) immediately
// before ra's parents were appended onto it (spec §4.3 step 7, §9(a)).
type mergeDoneRecord struct {
	ra, a, rb           NodeID
	winnerParentsBefore int
}

func (r mergeDoneRecord) undo(g *Egraph) {
	g.undoEq(r)
}

type thVarAddedRecord struct {
	node     NodeID
	theoryID int
}

func (r thVarAddedRecord) undo(g *Egraph) {
	g.arena.get(r.node).removeTheoryVar(r.theoryID)
}

type thVarReplacedRecord struct {
	node     NodeID
	theoryID int
	oldVar   int
}

func (r thVarReplacedRecord) undo(g *Egraph) {
	g.arena.get(r.node).setTheoryVar(r.theoryID, r.oldVar)
}

type newLitRecord struct{}

func (r newLitRecord) undo(g *Egraph) {
	g.newLiterals = g.newLiterals[:len(g.newLiterals)-1]
}

type newThEqRecord struct{}

func (r newThEqRecord) undo(g *Egraph) {
	g.newTheoryEqs = g.newTheoryEqs[:len(g.newTheoryEqs)-1]
}

type newLitQHeadRecord struct{ prev int }

func (r newLitQHeadRecord) undo(g *Egraph) { g.newLitQHead = r.prev }

type newThEqQHeadRecord struct{ prev int }

func (r newThEqQHeadRecord) undo(g *Egraph) { g.newThEqQHead = r.prev }

type inconsistentRecord struct {
	prevFlag     bool
	prevConflict *conflict
}

func (r inconsistentRecord) undo(g *Egraph) {
	g.inconsistentFlag = r.prevFlag
	g.conflict = r.prevConflict
}
