package inpaint

import "image"

// Mask is a flat, one-bool-per-pixel hole/valid classification. It is kept
// separate from any image representation so the monotonicity invariant
// (once valid, always valid) is easy to audit and is never disturbed by an
// incidental image/draw operation.
type Mask struct {
	W, H int
	hole []bool
}

// NewMask allocates a mask of the given size with every pixel VALID.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, hole: make([]bool, w*h)}
}

func (m *Mask) idx(x, y int) int { return y*m.W + x }

// IsHole reports whether (x, y) is currently unknown.
func (m *Mask) IsHole(x, y int) bool {
	return m.hole[m.idx(x, y)]
}

// SetHole marks (x, y) as unknown (true) or valid (false). Callers outside
// this package should only ever transition HOLE -> VALID; the driver itself
// is the sole place that performs that transition during a run.
func (m *Mask) SetHole(x, y int, hole bool) {
	m.hole[m.idx(x, y)] = hole
}

// MarkHoleRegion transitions every pixel in r to HOLE.
func (m *Mask) MarkHoleRegion(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.hole[m.idx(x, y)] = true
		}
	}
}

// MarkValid transitions every pixel in r to VALID. Idempotent.
func (m *Mask) MarkValid(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.hole[m.idx(x, y)] = false
		}
	}
}

// HasHole reports whether any pixel remains unknown.
func (m *Mask) HasHole() bool {
	for _, h := range m.hole {
		if h {
			return true
		}
	}
	return false
}

// HoleCount returns the number of unknown pixels.
func (m *Mask) HoleCount() int {
	n := 0
	for _, h := range m.hole {
		if h {
			n++
		}
	}
	return n
}

// RegionFullyValid reports whether every pixel in r (clipped to the mask
// bounds) is VALID.
func (m *Mask) RegionFullyValid(r image.Rectangle) bool {
	b := image.Rect(0, 0, m.W, m.H)
	r = r.Intersect(b)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.hole[m.idx(x, y)] {
				return false
			}
		}
	}
	return true
}

// CountHole returns the number of HOLE pixels within r, clipped to the
// mask's bounds, mirroring §4.2's count_hole_pixels(region) operation.
func (m *Mask) CountHole(r image.Rectangle) int {
	r = r.Intersect(image.Rect(0, 0, m.W, m.H))
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.hole[m.idx(x, y)] {
				n++
			}
		}
	}
	return n
}

// HasHoleNeighbor reports whether any 8-neighbor of (x, y) is HOLE.
// Pixels outside the mask bounds are treated as VALID.
func (m *Mask) HasHoleNeighbor(x, y int) bool {
	for _, n := range neighbors8(Point{x, y}) {
		if n.X < 0 || n.Y < 0 || n.X >= m.W || n.Y >= m.H {
			continue
		}
		if m.hole[m.idx(n.X, n.Y)] {
			return true
		}
	}
	return false
}
