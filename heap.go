package inpaint

// heapEntry is one slot in the boundary priority queue.
type heapEntry struct {
	p       Point
	pri     float64
	valid   bool // logical delete flag; invalidated entries are skipped on pop
}

// BoundaryQueue is an indirect max-heap keyed by priority, with O(1) logical
// invalidation by vertex id (here, a pixel index) instead of a structural
// removal. This replaces the source's property-map-backed handle heap: a
// per-vertex slot-index array (slot) lets Push find an entry without a
// linear scan, and Invalidate simply flips a flag that Pop honors lazily.
type BoundaryQueue struct {
	w, h    int
	entries []heapEntry
	slot    []int // pixel index -> position in entries, or -1 if absent
}

// NewBoundaryQueue allocates an empty queue sized for a w x h image.
func NewBoundaryQueue(w, h int) *BoundaryQueue {
	slot := make([]int, w*h)
	for i := range slot {
		slot[i] = -1
	}
	return &BoundaryQueue{w: w, h: h, slot: slot}
}

func (q *BoundaryQueue) idx(p Point) int { return p.Y*q.w + p.X }

// Push inserts p with the given priority, or updates its priority if
// already present.
func (q *BoundaryQueue) Push(p Point, priority float64) {
	i := q.idx(p)
	if s := q.slot[i]; s >= 0 && q.entries[s].valid {
		q.entries[s].pri = priority
		q.siftUp(s)
		q.siftDown(s)
		return
	}
	q.entries = append(q.entries, heapEntry{p: p, pri: priority, valid: true})
	s := len(q.entries) - 1
	q.slot[i] = s
	q.siftUp(s)
}

// Invalidate logically removes p from the queue, if present.
func (q *BoundaryQueue) Invalidate(p Point) {
	i := q.idx(p)
	if s := q.slot[i]; s >= 0 {
		q.entries[s].valid = false
		q.slot[i] = -1
	}
}

// Len reports the number of live (non-invalidated) entries. It is O(n) in
// the worst case because invalidated tombstones are only reaped lazily on
// Pop; callers on the hot path should prefer checking Pop's ok return value.
func (q *BoundaryQueue) Len() int {
	n := 0
	for _, e := range q.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Pop removes and returns the highest-priority live entry. ok is false once
// the queue is exhausted.
func (q *BoundaryQueue) Pop() (p Point, ok bool) {
	for len(q.entries) > 0 {
		top := q.entries[0]
		last := len(q.entries) - 1
		q.swap(0, last)
		q.entries = q.entries[:last]
		if last > 0 {
			q.siftDown(0)
		}
		if top.valid {
			q.slot[q.idx(top.p)] = -1
			return top.p, true
		}
	}
	return Point{}, false
}

// swap exchanges the entries at i and j and repairs slot for whichever side
// is still live. A tombstoned (invalid) entry is never the one slot points
// at once a fresh Push has superseded it (Push always targets slot, and
// Invalidate clears slot immediately) — so an invalid entry passing through
// a position must leave slot alone, or it would stomp the live duplicate's
// pointer with this stale position.
func (q *BoundaryQueue) swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.reindex(i)
	q.reindex(j)
}

func (q *BoundaryQueue) reindex(pos int) {
	e := q.entries[pos]
	if e.valid {
		q.slot[q.idx(e.p)] = pos
	}
}

func (q *BoundaryQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.entries[parent].pri >= q.entries[i].pri {
			break
		}
		q.swap(parent, i)
		i = parent
	}
}

func (q *BoundaryQueue) siftDown(i int) {
	n := len(q.entries)
	for {
		l, r := 2*i+1, 2*i+2
		largest := i
		if l < n && q.entries[l].pri > q.entries[largest].pri {
			largest = l
		}
		if r < n && q.entries[r].pri > q.entries[largest].pri {
			largest = r
		}
		if largest == i {
			break
		}
		q.swap(i, largest)
		i = largest
	}
}
