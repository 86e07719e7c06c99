package inpaint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradientImage(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := uint8((x * 255) / (n - 1))
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func TestSearch_FindsExactMatchAtZeroDistance(t *testing.T) {
	img := gradientImage(9)
	mask := NewMask(9, 9)
	mask.SetHole(6, 6, true)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	// (5,6) is a VALID pixel adjacent to the hole at (6,6): a real
	// boundary target, not the hole pixel itself.
	desc := Describe(buf, Point{5, 6})
	assert.Equal(t, StatusTarget, desc.Status)
	candidates, err := Search(buf, desc, 3, 2, DistanceSSD)
	assert.NoError(t, err)
	assert.Len(t, candidates, 3)

	// Values vary only with x, so any source centered at x=5 reproduces
	// the target's known pixels exactly regardless of y.
	assert.Equal(t, 0.0, candidates[0].Distance)
	assert.Equal(t, 5, candidates[0].Center.X)
}

func TestSearch_ResultsSortedByDistanceThenPosition(t *testing.T) {
	img := gradientImage(9)
	mask := NewMask(9, 9)
	mask.SetHole(4, 4, true)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	desc := Describe(buf, Point{3, 4})
	assert.Equal(t, StatusTarget, desc.Status)
	candidates, err := Search(buf, desc, 5, 1, DistanceSSD)
	assert.NoError(t, err)
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t, candidates[i-1].Distance, candidates[i].Distance)
	}
}

// S5: the merged result must not depend on how many workers produced it.
func TestSearch_DeterministicAcrossWorkerCounts(t *testing.T) {
	img := gradientImage(13)
	mask := NewMask(13, 13)
	mask.MarkHoleRegion(image.Rect(5, 5, 8, 8))
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	desc := Describe(buf, Point{4, 6})
	assert.Equal(t, StatusTarget, desc.Status)
	var prev []Candidate
	for _, workers := range []int{1, 3, 7} {
		candidates, err := Search(buf, desc, 6, workers, DistanceSSD)
		assert.NoError(t, err)
		if prev != nil {
			assert.Equal(t, prev, candidates)
		}
		prev = candidates
	}
}

func TestSearch_InsufficientSourcesStillReturnsWhatItFound(t *testing.T) {
	img := gradientImage(3)
	mask := NewMask(3, 3)
	mask.SetHole(1, 1, true)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	desc := Describe(buf, Point{1, 1})
	// Radius 1 on a 3x3 image leaves only the center as a possible full
	// patch, and it is the hole itself: no source patch fits at all.
	candidates, err := Search(buf, desc, 2, 1, DistanceSSD)
	assert.ErrorIs(t, err, ErrInsufficientSources)
	assert.Empty(t, candidates)
}

func TestDistanceSAD_IdenticalPatchIsZero(t *testing.T) {
	img := gradientImage(5)
	mask := NewMask(5, 5)
	buf, err := NewBuffers(img, mask, 1, 2)
	assert.NoError(t, err)

	desc := Describe(buf, Point{2, 2})
	d := DistanceSAD(buf, desc, Point{2, 2})
	assert.Equal(t, 0.0, d)
}
