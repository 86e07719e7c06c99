package inpaint

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func checkerboard(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// S1: a fully-valid mask is a no-op.
func TestDriver_NoHoleIsIdentity(t *testing.T) {
	img := checkerboard(4)
	orig := imgCopy(img)
	mask := NewMask(4, 4)

	d, err := NewDriver(img, mask, Options{PatchRadius: 1, K: 1})
	assert.NoError(t, err)

	err = d.Run(context.Background())
	assert.NoError(t, err)

	result, resultMask := d.Result()
	assert.False(t, resultMask.HasHole())
	assert.Equal(t, orig.Pix, result.Pix)
}

// S2: a single-pixel hole is filled and the mask ends fully valid.
func TestDriver_SinglePixelHoleGetsFilled(t *testing.T) {
	img := checkerboard(9)
	mask := NewMask(9, 9)
	mask.SetHole(4, 4, true)

	d, err := NewDriver(img, mask, Options{PatchRadius: 1, K: 4})
	assert.NoError(t, err)

	err = d.Run(context.Background())
	assert.NoError(t, err)

	_, resultMask := d.Result()
	assert.False(t, resultMask.HasHole())
}

// S5: determinism under varying parallelism.
func TestDriver_DeterministicAcrossWorkerCounts(t *testing.T) {
	img := checkerboard(16)
	mask := NewMask(16, 16)
	mask.MarkHoleRegion(image.Rect(6, 7, 10, 9))

	var outputs [][]uint8
	for _, workers := range []int{1, 2, 8} {
		d, err := NewDriver(imgCopy(img), cloneMask(mask), Options{PatchRadius: 2, K: 8, Workers: workers})
		assert.NoError(t, err)
		assert.NoError(t, d.Run(context.Background()))
		result, _ := d.Result()
		outputs = append(outputs, append([]uint8(nil), result.Pix...))
	}

	for i := 1; i < len(outputs); i++ {
		assert.True(t, bytes.Equal(outputs[0], outputs[i]), "worker-count %d produced a different result", i)
	}
}

// A reuse-limited refiner that allows zero reuse rejects every candidate
// whose patch has already supplied a pixel, so after some painting the
// boundary queue stalls with hole pixels left and ErrNoProgress surfaces,
// while the identity refiner on the same input succeeds.
func TestDriver_ReuseLimitedCanStall(t *testing.T) {
	img := checkerboard(12)
	mask := NewMask(12, 12)
	mask.MarkHoleRegion(image.Rect(5, 5, 7, 7))

	idD, err := NewDriver(imgCopy(img), cloneMask(mask), Options{PatchRadius: 1, K: 4, Refiner: IdentityRefiner{}})
	assert.NoError(t, err)
	assert.NoError(t, idD.Run(context.Background()))
	_, idMask := idD.Result()
	assert.False(t, idMask.HasHole())

	starved := NewReuseLimitedRefiner(0)
	stallD, err := NewDriver(imgCopy(img), cloneMask(mask), Options{PatchRadius: 1, K: 4, Refiner: starved})
	assert.NoError(t, err)
	err = stallD.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoProgress))
}

// S4: a 10x10 hole in an otherwise uniform 32x32 image, where every
// fully-valid patch ties at distance 0 and the lexicographic tie-break
// pins KNN search (K=1) to the same source patch for every target. With
// ReuseLimited(0.5), repeatedly painting from that one source exhausts its
// per-target reuse budget and the refiner must reject it outright for at
// least one boundary target; with Identity the same repeated source is
// always accepted regardless of prior use.
func TestReuseLimitedRefiner_RejectsRepeatedSoleSourceOnUniformImage(t *testing.T) {
	const n = 32
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetNRGBA(x, y, color.NRGBA{128, 128, 128, 255})
		}
	}
	mask := NewMask(n, n)
	mask.MarkHoleRegion(image.Rect(11, 11, 21, 21)) // 10x10 hole

	buf, err := NewBuffers(img, DilateMask(mask, 2), 2, 2)
	assert.NoError(t, err)

	refiner := NewReuseLimitedRefiner(0.5)
	rejectedSome := false

	for _, p := range InitialBoundary(buf) {
		desc := Describe(buf, p)
		if desc.Status != StatusTarget {
			continue
		}
		candidates, searchErr := Search(buf, desc, 1, 1, DistanceSSD)
		if searchErr != nil && len(candidates) == 0 {
			continue
		}
		src, refineErr := refiner.Refine(buf, desc, candidates)
		if refineErr != nil {
			assert.ErrorIs(t, refineErr, ErrNoAdmissibleCandidate)
			rejectedSome = true
			continue
		}
		buf.CopyPatch(p, src)
	}

	assert.True(t, rejectedSome, "expected the single tied-best source to exceed its reuse budget for at least one target")
}

func cloneMask(m *Mask) *Mask {
	out := NewMask(m.W, m.H)
	copy(out.hole, m.hole)
	return out
}
