package inpaint

import "image"

// Status classifies a pixel's patch with respect to the current mask.
type Status int

const (
	// StatusInvalid means the patch is not fully inside the image, or it
	// holds hole pixels while its center has no hole neighbor, so it is
	// neither a source nor a target.
	StatusInvalid Status = iota
	// StatusSource means every pixel of the patch is VALID; it may be used
	// as a copy source.
	StatusSource
	// StatusTarget means the patch straddles the hole and lies on the
	// boundary; it may be selected as a paint target.
	StatusTarget
)

// Descriptor is the lazy per-pixel handle described in the data model: a
// patch's region plus its validity status and the offsets (within the
// region) that are currently VALID. It is computed on demand rather than
// cached for every pixel, since only the boundary's descriptors are ever
// queried in a given iteration.
type Descriptor struct {
	Center      Point
	Region      image.Rectangle
	Status      Status
	ValidOffset []bool // parallel to offsets(radius), true where that offset is VALID
}

// Describe computes the descriptor for the patch centered at p.
func Describe(b *Buffers, p Point) Descriptor {
	full := fullPatchRegion(p, b.Radius)
	bounds := image.Rect(0, 0, b.W, b.H)
	if !inBounds(full, bounds) {
		return Descriptor{Center: p, Region: full.Intersect(bounds), Status: StatusInvalid}
	}

	offs := offsets(b.Radius)
	valid := make([]bool, len(offs))
	allValid := true
	anyHole := false
	for i, o := range offs {
		x, y := p.X+o.X, p.Y+o.Y
		if b.Mask.IsHole(x, y) {
			anyHole = true
			allValid = false
		} else {
			valid[i] = true
		}
	}

	d := Descriptor{Center: p, Region: full, ValidOffset: valid}
	switch {
	case allValid:
		d.Status = StatusSource
	case anyHole && b.Mask.HasHoleNeighbor(p.X, p.Y):
		d.Status = StatusTarget
	default:
		d.Status = StatusInvalid
	}
	return d
}
