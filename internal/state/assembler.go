package state

import "sync"

// Assembler buffers in-flight strokes while their point batches stream in.
// Each stroke id is logically owned by one client for its lifetime, so the
// only guard needed is atomic map access; concurrent appends to the same id
// are not a designed scenario and their interleaving is undefined.
type Assembler struct {
	mu      sync.Mutex
	pending map[string]*pendingStroke
}

type pendingStroke struct {
	stroke Stroke
	owner  string // connection that began the stroke
}

func NewAssembler() *Assembler {
	return &Assembler{pending: make(map[string]*pendingStroke)}
}

// Begin opens a pending entry for the stroke described by meta, discarding
// any accumulated points. If the id already exists the prior entry is
// overwritten (last begin wins).
func (a *Assembler) Begin(owner string, meta Stroke) {
	a.mu.Lock()
	defer a.mu.Unlock()
	meta.Points = nil
	a.pending[meta.ID] = &pendingStroke{stroke: meta, owner: owner}
}

// AppendPoints adds a point batch to the pending stroke in arrival order.
// Unknown ids are ignored; a batch racing a duplicate end is not an error.
func (a *Assembler) AppendPoints(id string, pts []Point) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.pending[id]
	if !ok {
		return
	}
	p.stroke.Points = append(p.stroke.Points, pts...)
}

// End removes and returns the pending stroke. The second return is false
// when the id is unknown, which callers must treat as a no-op so duplicate
// end messages commit nothing.
func (a *Assembler) End(id string) (Stroke, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.pending[id]
	if !ok {
		return Stroke{}, false
	}
	delete(a.pending, id)
	return p.stroke, true
}

// PurgeOwner discards every pending stroke begun by the given connection and
// reports how many were dropped. Called when a connection goes away so
// abandoned strokes do not accumulate for the life of the process.
func (a *Assembler) PurgeOwner(owner string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for id, p := range a.pending {
		if p.owner == owner {
			delete(a.pending, id)
			n++
		}
	}
	return n
}

// PendingCount reports how many strokes are currently being assembled.
func (a *Assembler) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}
