package egraph

// ResourceLimiter lets an external driver bound a long propagate() call
// (spec §5, §7): the engine polls Exhausted() between worklist sweeps and
// returns early, leaving every invariant intact, if it ever answers true.
type ResourceLimiter interface {
	Exhausted() bool
}

type noLimit struct{}

func (noLimit) Exhausted() bool { return false }

// Option configures a new Egraph, functional-options style (mirroring
// the teacher's PkgLoadSettings-shaped constructors).
type Option func(*Egraph)

// WithResourceLimiter installs a limiter propagate() polls. The default
// is a limiter that never triggers.
func WithResourceLimiter(l ResourceLimiter) Option {
	return func(g *Egraph) { g.limiter = l }
}

// WithUsedCCHook installs the proof-recorder callback fired whenever the
// explanation engine expands a congruence step between two applications
// (spec §6).
func WithUsedCCHook(fn func(app1, app2 NodeID)) Option {
	return func(g *Egraph) { g.onUsedCC = fn }
}

// WithUsedEqHook installs the proof-recorder callback fired whenever the
// explanation engine expands an equality step (spec §6).
func WithUsedEqHook(fn func(e1, e2, lca NodeID)) Option {
	return func(g *Egraph) { g.onUsedEq = fn }
}
