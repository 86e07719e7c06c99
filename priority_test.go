package inpaint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestConfidenceTerm_AllValidIsOne(t *testing.T) {
	img := uniformImage(5, 5, color.NRGBA{128, 128, 128, 255})
	mask := NewMask(5, 5)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	assert.InDelta(t, 1.0, ConfidenceTerm(buf, Point{2, 2}), 1e-9)
}

func TestConfidenceTerm_HoleLowersAverage(t *testing.T) {
	img := uniformImage(5, 5, color.NRGBA{128, 128, 128, 255})
	mask := NewMask(5, 5)
	mask.SetHole(2, 2, true)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	// 3x3 patch around (2,2) has 8 valid + 1 hole pixels.
	assert.InDelta(t, 8.0/9.0, ConfidenceTerm(buf, Point{2, 2}), 1e-9)
}

func TestConfidenceTerm_InvalidPatchIsZero(t *testing.T) {
	img := uniformImage(5, 5, color.NRGBA{128, 128, 128, 255})
	mask := NewMask(5, 5)
	buf, err := NewBuffers(img, mask, 3, 2)
	assert.NoError(t, err)

	assert.Equal(t, 0.0, ConfidenceTerm(buf, Point{0, 0}))
}

func TestPriority_NonNegative(t *testing.T) {
	img := uniformImage(9, 9, color.NRGBA{10, 200, 50, 255})
	mask := NewMask(9, 9)
	mask.MarkHoleRegion(image.Rect(3, 3, 6, 6))
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	boundary := InitialBoundary(buf)
	assert.NotEmpty(t, boundary)
	RefreshNormals(buf, boundary)
	for _, p := range boundary {
		assert.GreaterOrEqual(t, Priority(buf, p), 0.0)
	}
}
