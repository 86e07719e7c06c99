package inpaint

import "image"

// RefinerKind names the closed set of second-stage tiebreakers (C7). The
// set is closed by design: new behavior is a new tagged variant, not an
// open interface hierarchy, mirroring the design notes' guidance to prefer
// tagged variants over unbounded polymorphism for visitor-style components.
type RefinerKind int

const (
	// RefinerIdentity simply returns the best (lowest-distance) candidate
	// the KNN search already found; it performs no further re-scoring.
	RefinerIdentity RefinerKind = iota
	// RefinerIntroducedEnergy re-scores candidates by introducedEnergy and
	// picks the lowest: a sum of squared Image differences over the target
	// patch's already-valid pixels. It does not measure gradient magnitude
	// and does not restrict the sum to a seam ring around the hole.
	RefinerIntroducedEnergy
	// RefinerReuseLimited rejects any candidate whose patch already holds
	// more than ⌊fraction·(hole pixels in the target's region)⌋ pixels that
	// earlier paints read as sources, forcing texture diversity.
	RefinerReuseLimited
)

// Refiner picks exactly one of the K candidates produced by Search, or
// reports ErrNoAdmissibleCandidate if every candidate is rejected.
type Refiner interface {
	Refine(b *Buffers, target Descriptor, candidates []Candidate) (Point, error)
}

// IdentityRefiner implements RefinerIdentity.
type IdentityRefiner struct{}

func (IdentityRefiner) Refine(b *Buffers, target Descriptor, candidates []Candidate) (Point, error) {
	if len(candidates) == 0 {
		return Point{}, ErrNoAdmissibleCandidate
	}
	return candidates[0].Center, nil
}

// IntroducedEnergyRefiner implements RefinerIntroducedEnergy.
type IntroducedEnergyRefiner struct{}

func (IntroducedEnergyRefiner) Refine(b *Buffers, target Descriptor, candidates []Candidate) (Point, error) {
	if len(candidates) == 0 {
		return Point{}, ErrNoAdmissibleCandidate
	}
	best := candidates[0].Center
	bestCost := introducedEnergy(b, target, best)
	for _, c := range candidates[1:] {
		cost := introducedEnergy(b, target, c.Center)
		if cost < bestCost {
			bestCost = cost
			best = c.Center
		}
	}
	return best, nil
}

// introducedEnergy scores a candidate by the sum of squared Image
// differences between every already-valid pixel of the target patch and the
// source pixel at the same offset from src. Hole pixels of the target are
// skipped; no gradient is computed and no separate seam ring is isolated.
func introducedEnergy(b *Buffers, target Descriptor, src Point) float64 {
	full := target.Region
	dx, dy := src.X-target.Center.X, src.Y-target.Center.Y
	var cost float64
	bounds := image.Rect(0, 0, b.W, b.H)
	for y := full.Min.Y; y < full.Max.Y; y++ {
		for x := full.Min.X; x < full.Max.X; x++ {
			if b.Mask.IsHole(x, y) {
				continue // only scored where the target already has valid data
			}
			sx, sy := x+dx, y+dy
			if !(image.Pt(sx, sy).In(bounds)) {
				continue
			}
			cost += layerDistance(b.Image, x, y, sx, sy, func(d float64) float64 { return d * d })
		}
	}
	return cost
}

// ReuseLimitedRefiner implements RefinerReuseLimited. A candidate is
// rejected once more than ⌊MaxFraction·|hole pixels in T|⌋ of its patch's
// pixels have already been read as a source pixel by some earlier paint
// (per Buffers.CopiedPixels), grounded on
// LinearSearchKNNPropertyLimitReuse.hpp's per-target bound
// maxAllowedUsedPixels = numberOfHolePixels(T) / 2 (MaxFraction == 0.5
// there). The bound is recomputed from target's own hole count on every
// call, since T shrinks as the run progresses; CopiedPixels itself is
// mutated only by PatchInpainter, after a candidate is chosen and painted.
type ReuseLimitedRefiner struct {
	MaxFraction float64
}

// NewReuseLimitedRefiner constructs a ReuseLimitedRefiner with the given
// per-target reuse fraction (0.5 matches the source's hardcoded bound).
func NewReuseLimitedRefiner(maxFraction float64) *ReuseLimitedRefiner {
	return &ReuseLimitedRefiner{MaxFraction: maxFraction}
}

func (r *ReuseLimitedRefiner) Refine(b *Buffers, target Descriptor, candidates []Candidate) (Point, error) {
	limit := int(r.MaxFraction * float64(b.Mask.CountHole(target.Region)))
	for _, c := range candidates {
		region := fullPatchRegion(c.Center, b.Radius)
		if copiedCountInRegion(b, region) <= limit {
			return c.Center, nil
		}
	}
	return Point{}, ErrNoAdmissibleCandidate
}

// copiedCountInRegion counts how many pixels within region (clipped to
// bounds) have ever been read as a source pixel, per Buffers.CopiedPixels.
func copiedCountInRegion(b *Buffers, region image.Rectangle) int {
	region = region.Intersect(image.Rect(0, 0, b.W, b.H))
	n := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if b.CopiedPixels[b.idx(x, y)] {
				n++
			}
		}
	}
	return n
}
