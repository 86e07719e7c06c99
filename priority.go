package inpaint

import "math"

// ConfidenceTerm returns the mean confidence over the patch centered at p,
// i.e. the fraction of the patch's area currently explained by trustworthy
// data. Mirrors ComputeConfidenceTerm: zero when the patch falls outside
// the image.
func ConfidenceTerm(b *Buffers, p Point) float64 {
	region := fullPatchRegion(p, b.Radius)
	if !inBounds(region, rect(b.W, b.H)) {
		return 0
	}
	var sum float64
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			sum += b.Confidence[b.idx(x, y)]
		}
	}
	area := float64(region.Dx() * region.Dy())
	return sum / area
}

// DataTerm returns the magnitude of the projection of the isophote at p
// onto the boundary normal at p. Mirrors ComputeDataTerm's
// |dot(isophote, normal)| / 255; here the division by 255 is already part of
// the isophote components (Sobel responses on a 0-255 grayscale divided by
// 255, each within [-4, 4]), so no further constant is applied and the
// result is not bounded by 1.
func DataTerm(b *Buffers, p Point) float64 {
	i := b.idx(p.X, p.Y)
	gx, gy := b.Gx[i], b.Gy[i]
	nx, ny := b.NormalX[i], b.NormalY[i]
	dot := gx*nx + gy*ny
	v := math.Abs(dot)
	if v < 0.01 {
		// A flat neighborhood carries no reliable structure; fall back to a
		// small non-zero floor so confidence alone can still break ties
		// instead of the product collapsing every flat-region priority to 0.
		v = 0.01
	}
	return v
}

// Priority computes confidence(p) * data(p), the value used to rank
// boundary pixels for target selection (C4).
func Priority(b *Buffers, p Point) float64 {
	return ConfidenceTerm(b, p) * DataTerm(b, p)
}
