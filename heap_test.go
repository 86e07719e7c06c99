package inpaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundaryQueue_PopsHighestFirst(t *testing.T) {
	q := NewBoundaryQueue(4, 4)
	q.Push(Point{0, 0}, 1.0)
	q.Push(Point{1, 0}, 5.0)
	q.Push(Point{2, 0}, 3.0)

	p, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Point{1, 0}, p)

	p, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Point{2, 0}, p)

	p, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Point{0, 0}, p)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestBoundaryQueue_InvalidateSkipsOnPop(t *testing.T) {
	q := NewBoundaryQueue(4, 4)
	q.Push(Point{0, 0}, 10.0)
	q.Push(Point{1, 0}, 1.0)
	q.Invalidate(Point{0, 0})

	p, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Point{1, 0}, p)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestBoundaryQueue_PushUpdatesExistingEntry(t *testing.T) {
	q := NewBoundaryQueue(4, 4)
	q.Push(Point{0, 0}, 1.0)
	q.Push(Point{1, 0}, 2.0)
	q.Push(Point{0, 0}, 9.0)

	p, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Point{0, 0}, p)
}

// A boundary pixel can leave and rejoin the boundary before its old,
// tombstoned entry works its way to the top of the heap: Invalidate then
// Push on the same point leaves a dead entry buried below a fresh live one.
// Popping down to that dead entry must not corrupt the live entry's slot
// pointer (regression test for the swap/reindex fix).
func TestBoundaryQueue_StaleTombstoneDoesNotCorruptLiveDuplicate(t *testing.T) {
	q := NewBoundaryQueue(4, 4)
	q.Push(Point{0, 0}, 10.0) // buried tombstone once invalidated
	q.Push(Point{1, 0}, 1.0)
	q.Push(Point{2, 0}, 2.0)
	q.Push(Point{3, 0}, 3.0)

	q.Invalidate(Point{0, 0})
	q.Push(Point{0, 0}, 0.5) // fresh, live entry for the same point

	var popped []Point
	for {
		p, ok := q.Pop()
		if !ok {
			break
		}
		popped = append(popped, p)
	}

	assert.ElementsMatch(t, []Point{{1, 0}, {2, 0}, {3, 0}, {0, 0}}, popped)
	assert.Len(t, popped, 4, "the live duplicate for (0,0) must survive even though its tombstone pops later")
}
