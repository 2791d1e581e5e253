package egraph

// JustKind is the closed set of reasons a merge can carry (spec §6/§9):
// an input axiom, a congruence step, or an opaque external fact supplied
// by a cooperating theory solver.
type JustKind uint8

const (
	JustAxiom JustKind = iota
	JustCongruence
	JustExternal
)

// Justification labels a proof-forest edge. The External payload is
// opaque to the core; callers that use JustExternal must supply a
// JustificationCopier to CopyFrom so the payload can be translated along
// with the rest of the engine's state.
type Justification struct {
	Kind     JustKind
	External any
}

// Axiom is the justification for a merge asserted directly by the driver.
func Axiom() Justification { return Justification{Kind: JustAxiom} }

// CongruenceJust is the justification congruence closure attaches to a
// merge it derived itself (spec §4.1, §4.4). Which argument pairing
// proves it — straight or, for a commutative decl, crossed — is
// recomputed from the current roots when the proof is explained
// (explainCongruenceArgs), not carried on the edge.
func CongruenceJust() Justification {
	return Justification{Kind: JustCongruence}
}

// ExternalJust wraps an opaque fact from a cooperating theory.
func ExternalJust(payload any) Justification {
	return Justification{Kind: JustExternal, External: payload}
}

// JustificationCopier clones an External payload when CopyFrom replays a
// merge into a different engine instance.
type JustificationCopier func(Justification) Justification
