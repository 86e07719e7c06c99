package inpaint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialBoundary_FindsValidNeighborsOfHole(t *testing.T) {
	img := uniformImage(7, 7, color.NRGBA{1, 2, 3, 255})
	mask := NewMask(7, 7)
	mask.MarkHoleRegion(image.Rect(3, 3, 5, 5))
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	boundary := InitialBoundary(buf)
	assert.NotEmpty(t, boundary)
	for _, p := range boundary {
		assert.False(t, mask.IsHole(p.X, p.Y))
		assert.True(t, mask.HasHoleNeighbor(p.X, p.Y))
	}

	// No fully-interior valid pixel, far from the hole, should appear.
	assert.NotContains(t, boundary, Point{0, 0})
}

func TestInitialBoundary_EmptyWhenNoHole(t *testing.T) {
	img := uniformImage(5, 5, color.NRGBA{1, 2, 3, 255})
	mask := NewMask(5, 5)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	assert.Empty(t, InitialBoundary(buf))
}

func TestRediscoverBoundary_SplitsOnAndOffAfterFill(t *testing.T) {
	img := uniformImage(9, 9, color.NRGBA{1, 2, 3, 255})
	mask := NewMask(9, 9)
	mask.MarkHoleRegion(image.Rect(3, 3, 6, 6))
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	// Simulate having just validated the whole hole region in one step.
	region := image.Rect(3, 3, 6, 6)
	buf.Mask.MarkValid(region)

	onBoundary, offBoundary := RediscoverBoundary(buf, region)
	assert.Empty(t, onBoundary, "no hole remains, so nothing can still be on the boundary")
	assert.NotEmpty(t, offBoundary)
}

func TestComputeNormal_PointsTowardHole(t *testing.T) {
	img := uniformImage(7, 7, color.NRGBA{1, 2, 3, 255})
	mask := NewMask(7, 7)
	mask.MarkHoleRegion(image.Rect(4, 2, 7, 5)) // hole fills the right side
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	nx, _ := computeNormal(buf, Point{3, 3})
	// The hole lies to the right (+x), so the hole-indicator field rises
	// with x and its Sobel-derived gradient has a positive x component.
	assert.Greater(t, nx, 0.0)
}

func TestComputeNormal_ZeroFarFromAnyHole(t *testing.T) {
	img := uniformImage(9, 9, color.NRGBA{1, 2, 3, 255})
	mask := NewMask(9, 9)
	mask.SetHole(8, 8, true)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	nx, ny := computeNormal(buf, Point{0, 0})
	assert.Equal(t, 0.0, nx)
	assert.Equal(t, 0.0, ny)
}
