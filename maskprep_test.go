package inpaint

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDilateMask_GrowsBySingleRadius(t *testing.T) {
	m := NewMask(7, 7)
	m.SetHole(3, 3, true)

	out := DilateMask(m, 1)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			assert.True(t, out.IsHole(x, y), "expected (%d,%d) to be dilated into the hole", x, y)
		}
	}
	assert.False(t, out.IsHole(1, 1))
	assert.False(t, out.IsHole(5, 5))
}

func TestDilateMask_ClipsAtImageBounds(t *testing.T) {
	m := NewMask(4, 4)
	m.SetHole(0, 0, true)

	out := DilateMask(m, 2)
	assert.True(t, out.IsHole(0, 0))
	assert.True(t, out.IsHole(2, 2))
	// must not panic scanning beyond bounds; region is clipped internally
	assert.Equal(t, 4, out.W)
}

func TestDilateMask_ZeroRadiusIsNoop(t *testing.T) {
	m := NewMask(5, 5)
	m.SetHole(2, 2, true)

	out := DilateMask(m, 0)
	assert.Same(t, m, out)
}

func TestDilateMask_DoesNotMutateInput(t *testing.T) {
	m := NewMask(5, 5)
	m.SetHole(2, 2, true)

	DilateMask(m, 1)
	assert.False(t, m.IsHole(1, 1), "DilateMask must return a new mask, not mutate its input")
}
