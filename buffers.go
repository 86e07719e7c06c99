package inpaint

import (
	"image"
	"image/color"
)

// placeholderFill marks freshly-masked hole pixels so that any debug
// visualization of the working image never accidentally shows stale data
// underneath the hole. Mirrors CriminisiInpainting::Initialize masking the
// hole region with a fixed placeholder color before the main loop starts.
var placeholderFill = color.NRGBA{R: 0, G: 255, B: 0, A: 255}

// Buffers owns every per-run array the driver, priority function, KNN
// search and inpainter read and write: the working image, the mask, the
// confidence map, and the isophote (gradient) layers derived from it. It is
// the concrete backing store behind the grid-graph/property-map notion in
// the design notes: everything here is a flat, pixel-indexed slice.
type Buffers struct {
	W, H   int
	Radius int

	Image *image.NRGBA
	Mask  *Mask

	Confidence []float64

	// Gx, Gy hold the raw isophote vector components (gradient rotated 90
	// degrees), computed once from a stack-blurred grayscale copy of the
	// unmasked image and set to zero inside the hole.
	Gx, Gy []float64

	// NormalX, NormalY hold the boundary normal, recomputed only for pixels
	// the boundary tracker reports as changed.
	NormalX, NormalY []float64

	// Blurred and LightBlurred are pre-smoothed copies of Image used as
	// auxiliary comparison layers by the KNN distance function, matching
	// the "original + blurred + lightly-blurred" triplet this module keeps
	// (see DESIGN.md Open Question 3).
	Blurred      *image.NRGBA
	LightBlurred *image.NRGBA

	// CopiedPixels tracks, for the reuse-limited refiner, which pixels have
	// ever been read as a source.
	CopiedPixels []bool
}

// NewBuffers derives all per-run layers from img/mask. The image's isophotes
// are computed before the hole is masked out, matching the original
// implementation's ordering: gradient information near the hole boundary
// would otherwise be corrupted by the placeholder fill.
func NewBuffers(img *image.NRGBA, mask *Mask, radius int, blurVariance float64) (*Buffers, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != mask.W || h != mask.H {
		return nil, ErrInvalidConfiguration
	}

	buf := &Buffers{
		W: w, H: h, Radius: radius,
		Image:        imgCopy(img),
		Mask:         mask,
		Confidence:   make([]float64, w*h),
		Gx:           make([]float64, w*h),
		Gy:           make([]float64, w*h),
		NormalX:      make([]float64, w*h),
		NormalY:      make([]float64, w*h),
		CopiedPixels: make([]bool, w*h),
	}

	gray := rgbToGrayscale(stackBlur(buf.Image, uint32(blurVariance)))
	gx, gy := sobelComponents(gray, w, h)
	// Isophote = gradient rotated 90 degrees counter-clockwise: (gx,gy) -> (-gy,gx).
	for i := range gx {
		buf.Gx[i] = -gy[i]
		buf.Gy[i] = gx[i]
	}

	buf.Blurred = stackBlur(buf.Image, uint32(blurVariance*2))
	buf.LightBlurred = stackBlur(buf.Image, uint32(blurVariance))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if mask.IsHole(x, y) {
				buf.Confidence[i] = 0
				buf.Gx[i], buf.Gy[i] = 0, 0
				buf.Image.SetNRGBA(x, y, placeholderFill)
			} else {
				buf.Confidence[i] = 1
			}
		}
	}

	return buf, nil
}

func imgCopy(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

func (b *Buffers) idx(x, y int) int { return y*b.W + x }

// CopyPatch overwrites every HOLE pixel of the target patch with the
// corresponding pixel of the source patch (C8), applying the same copy to
// Image and to both auxiliary comparison layers (Blurred, LightBlurred) in
// a fixed order, matching CriminisiInpainting::Inpaint's multi-layer copy.
// Only pixels that were HOLE at call time are copied; already-valid pixels
// in the target patch (near the image border or a previously-completed
// neighbor) are left untouched.
func (b *Buffers) CopyPatch(target, source Point) {
	region := patchRegion(target, b.Radius, image.Rect(0, 0, b.W, b.H))
	dx := source.X - target.X
	dy := source.Y - target.Y

	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if !b.Mask.IsHole(x, y) {
				continue
			}
			sx, sy := x+dx, y+dy
			if sx < 0 || sy < 0 || sx >= b.W || sy >= b.H {
				continue
			}
			b.Image.SetNRGBA(x, y, b.Image.NRGBAAt(sx, sy))
			b.Blurred.SetNRGBA(x, y, b.Blurred.NRGBAAt(sx, sy))
			b.LightBlurred.SetNRGBA(x, y, b.LightBlurred.NRGBAAt(sx, sy))
			b.Gx[b.idx(x, y)] = b.Gx[b.idx(sx, sy)]
			b.Gy[b.idx(x, y)] = b.Gy[b.idx(sx, sy)]
			b.CopiedPixels[b.idx(sx, sy)] = true
		}
	}
}

// UpdateConfidence freezes the confidence term for every pixel that was
// HOLE in target's region, matching UpdateConfidenceImage: after painting,
// every formerly-unknown pixel in the target patch receives the patch's
// confidence term computed at match time (not 1), so a low-confidence
// region propagates its uncertainty outward.
func (b *Buffers) UpdateConfidence(target Point, value float64) {
	region := patchRegion(target, b.Radius, image.Rect(0, 0, b.W, b.H))
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			i := b.idx(x, y)
			if b.Mask.IsHole(x, y) {
				b.Confidence[i] = value
			}
		}
	}
}
