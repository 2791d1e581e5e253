package egraph

import "github.com/hashicorp/go-set/v3"

// worklist holds roots that gained parents since the last propagation
// sweep (spec §4.4). A plain slice preserves the enqueue order the
// ordering guarantee in spec §5 depends on; the set.Set alongside it is
// only there to make push() idempotent in O(1) rather than scanning the
// slice — the same seen-set role frontend/types/constrain.go gives its
// constraintSolver.cache during its own fixpoint loop, just over a plain
// comparable key here instead of that file's hashed-pointer keys.
type worklist struct {
	queue  []NodeID
	queued *set.Set[NodeID]
}

func newWorklist() *worklist {
	return &worklist{queued: set.New[NodeID](0)}
}

func (w *worklist) push(n NodeID) {
	if w.queued.Insert(n) {
		w.queue = append(w.queue, n)
	}
}

func (w *worklist) empty() bool { return len(w.queue) == 0 }

// drain returns every currently-queued root and resets the worklist,
// ready to accumulate roots enqueued while the caller processes this
// batch.
func (w *worklist) drain() []NodeID {
	out := w.queue
	w.queue = nil
	w.queued = set.New[NodeID](0)
	return out
}

func (w *worklist) clear() {
	w.queue = nil
	w.queued = set.New[NodeID](0)
}
