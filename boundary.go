package inpaint

import (
	"image"
	"math"
)

// holeIndicator returns 1.0 for HOLE, 0.0 for VALID, with out-of-bounds
// pixels treated as VALID. Used as the scalar field whose gradient gives
// the boundary normal, mirroring ComputeBoundaryNormals's use of a blurred
// copy of the mask.
func holeIndicator(m *Mask, x, y int) float64 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	if m.IsHole(x, y) {
		return 1
	}
	return 0
}

// computeNormal returns the unit normal of the hole boundary at p: the
// normalized Sobel gradient of the hole indicator field (1 inside the hole,
// 0 outside), not rotated, so it points toward the hole. It returns (0, 0)
// where that gradient vanishes.
func computeNormal(b *Buffers, p Point) (nx, ny float64) {
	var gx, gy float64
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			v := holeIndicator(b.Mask, p.X+kx, p.Y+ky)
			gx += float64(kernelX[ky+1][kx+1]) * v
			gy += float64(kernelY[ky+1][kx+1]) * v
		}
	}
	length := math.Hypot(gx, gy)
	if length < 1e-6 {
		return 0, 0
	}
	return gx / length, gy / length
}

// RefreshNormals recomputes the normal field for every point in pts.
func RefreshNormals(b *Buffers, pts []Point) {
	for _, p := range pts {
		nx, ny := computeNormal(b, p)
		i := b.idx(p.X, p.Y)
		b.NormalX[i] = nx
		b.NormalY[i] = ny
	}
}

// InitialBoundary scans the whole mask and returns every VALID pixel that
// has a HOLE 8-neighbor, i.e. the boundary set B from the data model.
func InitialBoundary(b *Buffers) []Point {
	var out []Point
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if !b.Mask.IsHole(x, y) && b.Mask.HasHoleNeighbor(x, y) {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

// RediscoverBoundary re-evaluates boundary membership for every pixel
// within radius+1 of region (the just-painted/validated area) and returns
// the set that is now on the boundary, matching finish_vertex's per-pixel
// "HasNeighborWithValue(HOLE)" check restricted to the area that could
// possibly have changed.
func RediscoverBoundary(b *Buffers, region image.Rectangle) (onBoundary, offBoundary []Point) {
	scan := image.Rect(
		region.Min.X-b.Radius-1, region.Min.Y-b.Radius-1,
		region.Max.X+b.Radius+1, region.Max.Y+b.Radius+1,
	).Intersect(image.Rect(0, 0, b.W, b.H))

	for y := scan.Min.Y; y < scan.Max.Y; y++ {
		for x := scan.Min.X; x < scan.Max.X; x++ {
			if b.Mask.IsHole(x, y) {
				continue
			}
			p := Point{x, y}
			if b.Mask.HasHoleNeighbor(x, y) {
				onBoundary = append(onBoundary, p)
			} else {
				offBoundary = append(offBoundary, p)
			}
		}
	}
	return onBoundary, offBoundary
}
