// Package egraph implements the congruence-closure core: a backtrackable,
// proof-producing union-find over terms, extended under asserted
// equalities so that congruence always holds. See SPEC_FULL.md for the
// full design; this file wires the pieces described in the other files
// of this package into the public Egraph type.
package egraph

import (
	"log/slog"

	"github.com/cottand/euf/internal/log"
	"github.com/cottand/euf/term"
	"github.com/cottand/euf/util"
)

// Literal is one entry of the new_literals output queue (spec §6): Node
// has just had Value forced on it by congruence or by the equality
// fast-path, and the external Boolean engine should assign it.
type Literal struct {
	Node  NodeID
	Value bool
}

// TheoryEqKind distinguishes the two shapes a theory notification can
// take (spec §6's "tagged as equality or disequality").
type TheoryEqKind uint8

const (
	TheoryEq TheoryEqKind = iota
	TheoryDiseq
)

// TheoryNotification is one entry of the new_theory_eqs output queue.
// For TheoryEq, V1/V2 are the two theory-vars that just became equal and
// Witness1/Witness2 are the e-nodes that carried them. For TheoryDiseq,
// V1/V2 are the two theory-vars now known distinct, Witness1/Witness2
// are the roots of the two classes carrying them, and Atom is the
// equality atom proving the two classes disequal.
type TheoryNotification struct {
	Kind               TheoryEqKind
	TheoryID           int
	V1, V2             int
	Witness1, Witness2 NodeID
	Atom               NodeID
}

// conflict is the distinguished triple invariant 7 (spec §3) requires
// once the engine goes inconsistent.
type conflict struct {
	n1, n2        NodeID
	justification Justification
}

// Egraph is the congruence-closure engine. Zero value is not usable; use
// New.
type Egraph struct {
	arena      *arena
	congTable  *congTable
	exprToNode map[int64]NodeID
	trail      *trail
	worklist   *worklist

	theoryPropagatesDiseqs util.MSet[int]

	inconsistentFlag bool
	conflict         *conflict

	newLiterals  []Literal
	newLitQHead  int
	newTheoryEqs []TheoryNotification
	newThEqQHead int

	limiter ResourceLimiter

	onUsedCC func(app1, app2 NodeID)
	onUsedEq func(e1, e2, lca NodeID)

	logger *slog.Logger
}

// New creates an empty engine.
func New(opts ...Option) *Egraph {
	g := &Egraph{
		arena:                  newArena(),
		congTable:              newCongTable(),
		exprToNode:             make(map[int64]NodeID),
		trail:                  newTrail(),
		worklist:               newWorklist(),
		theoryPropagatesDiseqs: util.NewEmptySet[int](),
		limiter:                noLimit{},
		logger:                 log.DefaultLogger.With("section", "egraph"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Find returns the node already interned for expr, if any.
func (g *Egraph) Find(expr *term.Expr) (NodeID, bool) {
	id, ok := g.exprToNode[expr.ID()]
	return id, ok
}

// Root returns n's current class representative.
func (g *Egraph) Root(n NodeID) NodeID { return g.arena.get(n).root }

// Expr returns the term a node was interned from.
func (g *Egraph) Expr(n NodeID) *term.Expr { return g.arena.get(n).expr }

// Args returns a node's ordered children.
func (g *Egraph) Args(n NodeID) []NodeID {
	return append([]NodeID(nil), g.arena.get(n).args...)
}

// ClassSize returns the size of n's equivalence class (valid on any
// member, not just the root).
func (g *Egraph) ClassSize(n NodeID) int {
	return g.arena.get(g.arena.get(n).root).classSize
}

// Inconsistent reports whether a merge has ever forced two distinct
// interpreted constants equal. Once true it stays true, and later
// conflicts do not replace the stored one (spec §7: "earliest conflict
// wins"), until a Pop rolls back the scope in which it was set.
func (g *Egraph) Inconsistent() bool { return g.inconsistentFlag }

// SetTheoryPropagatesDiseqs opts a theory into disequality notifications
// (spec §4.6, §6).
func (g *Egraph) SetTheoryPropagatesDiseqs(theoryID int) {
	g.theoryPropagatesDiseqs.Add(theoryID)
}

// NewLiterals returns the literals queued since qhead last advanced.
func (g *Egraph) NewLiterals() []Literal {
	return g.newLiterals[g.newLitQHead:]
}

// AdvanceLiteralQHead marks the first n pending literals as consumed.
func (g *Egraph) AdvanceLiteralQHead(n int) { g.newLitQHead += n }

// NewTheoryNotifications returns the theory eq/diseq notifications
// queued since qhead last advanced.
func (g *Egraph) NewTheoryNotifications() []TheoryNotification {
	return g.newTheoryEqs[g.newThEqQHead:]
}

// AdvanceTheoryQHead marks the first n pending notifications as consumed.
func (g *Egraph) AdvanceTheoryQHead(n int) { g.newThEqQHead += n }

func (g *Egraph) pushLiteral(n NodeID, value bool) {
	g.forcePush()
	g.newLiterals = append(g.newLiterals, Literal{Node: n, Value: value})
	g.trail.records = append(g.trail.records, newLitRecord{})
}

func (g *Egraph) pushTheoryNotification(note TheoryNotification) {
	g.forcePush()
	g.newTheoryEqs = append(g.newTheoryEqs, note)
	g.trail.records = append(g.trail.records, newThEqRecord{})
}

func (g *Egraph) setInconsistent(n1, n2 NodeID, j Justification) {
	if g.inconsistentFlag {
		return // earliest conflict wins (spec §7)
	}
	g.forcePush()
	g.trail.records = append(g.trail.records, inconsistentRecord{prevFlag: g.inconsistentFlag, prevConflict: g.conflict})
	g.inconsistentFlag = true
	g.conflict = &conflict{n1: n1, n2: n2, justification: j}
	g.logger.Warn("inconsistency detected", "n1", int32(n1), "n2", int32(n2))
}
