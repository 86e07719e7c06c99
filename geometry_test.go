package inpaint

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchRegion_Clipped(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	r := patchRegion(Point{0, 0}, 2, bounds)
	assert.Equal(t, image.Rect(0, 0, 3, 3), r)
}

func TestFullPatchRegion_Unclipped(t *testing.T) {
	r := fullPatchRegion(Point{5, 5}, 2)
	assert.Equal(t, image.Rect(3, 3, 8, 8), r)
}

func TestInBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	assert.True(t, inBounds(image.Rect(2, 2, 5, 5), bounds))
	assert.False(t, inBounds(image.Rect(-1, 2, 5, 5), bounds))
	assert.False(t, inBounds(image.Rect(2, 2, 11, 5), bounds))
}

func TestOffsets_Count(t *testing.T) {
	offs := offsets(1)
	assert.Len(t, offs, 9)
	assert.Contains(t, offs, Point{0, 0})
	assert.Contains(t, offs, Point{-1, -1})
	assert.Contains(t, offs, Point{1, 1})
}

func TestNeighbors8(t *testing.T) {
	n := neighbors8(Point{5, 5})
	assert.Len(t, n, 8)
	for _, p := range n {
		assert.NotEqual(t, Point{5, 5}, p)
	}
}
