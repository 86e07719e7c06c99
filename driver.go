package inpaint

import (
	"context"
	"fmt"
	"image"
)

// Options configures a Driver run (C9), assembled by the caller (directly,
// or via Processor/Config as described in SPEC_FULL.md §3).
type Options struct {
	// PatchRadius is half the patch side length; patch area is
	// (2*PatchRadius+1)^2.
	PatchRadius int
	// K is the number of nearest-neighbor candidates the search returns.
	K int
	// Workers bounds the KNN scan's parallelism; 0 means runtime.NumCPU().
	Workers int
	// Distance scores candidate patches; defaults to DistanceSSD.
	Distance DistanceFunc
	// Refiner picks one candidate out of K; defaults to IdentityRefiner.
	Refiner Refiner
	// BlurVariance controls the pre-smoothing strength of the auxiliary
	// comparison layers (and, scaled by 2, the heavier "blurred" layer) and
	// of the grayscale copy the isophotes are computed from.
	BlurVariance float64
	// SkipDilation disables the mandatory mask dilation pre-processing
	// step; only meaningful for tests that supply an already-dilated mask.
	SkipDilation bool
	// Visitor receives progress callbacks; defaults to NopVisitor{}.
	Visitor Visitor
}

func (o *Options) setDefaults() {
	if o.Distance == nil {
		o.Distance = DistanceSSD
	}
	if o.Refiner == nil {
		o.Refiner = IdentityRefiner{}
	}
	if o.Visitor == nil {
		o.Visitor = NopVisitor{}
	}
	if o.BlurVariance <= 0 {
		o.BlurVariance = 2
	}
}

// bufferBinder lets a Visitor receive the driver's working buffers once
// they exist, without widening the Visitor interface itself; DebugVisitor
// implements it.
type bufferBinder interface {
	bindBuffers(*Buffers)
}

// Driver runs the main inpainting loop (C9): pop highest-priority boundary
// pixel, search for a matching source patch, paint, and rebuild the
// boundary, until the hole is empty or no further progress is possible.
type Driver struct {
	buf   *Buffers
	queue *BoundaryQueue
	opts  Options
}

// NewDriver validates inputs, dilates the mask (unless skipped), and
// derives all per-run auxiliary layers.
func NewDriver(img *image.NRGBA, mask *Mask, opts Options) (*Driver, error) {
	opts.setDefaults()
	if opts.PatchRadius <= 0 || opts.K <= 0 {
		return nil, ErrInvalidConfiguration
	}
	b := img.Bounds()
	if b.Dx() != mask.W || b.Dy() != mask.H || b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrInvalidConfiguration
	}

	m := mask
	if !opts.SkipDilation {
		m = DilateMask(mask, opts.PatchRadius)
	}

	buf, err := NewBuffers(img, m, opts.PatchRadius, opts.BlurVariance)
	if err != nil {
		return nil, err
	}

	if bb, ok := opts.Visitor.(bufferBinder); ok {
		bb.bindBuffers(buf)
	}

	return &Driver{
		buf:   buf,
		queue: NewBoundaryQueue(buf.W, buf.H),
		opts:  opts,
	}, nil
}

// Result returns the current working image and mask. Valid to call after
// Run returns, successfully or not, to retrieve a partial fill.
func (d *Driver) Result() (*image.NRGBA, *Mask) {
	return d.buf.Image, d.buf.Mask
}

// Run executes the driver loop until the hole is empty, no progress can be
// made, or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	v := d.opts.Visitor
	bounds := image.Rect(0, 0, d.buf.W, d.buf.H)

	for y := 0; y < d.buf.H; y++ {
		for x := 0; x < d.buf.W; x++ {
			v.InitializeVertex(Point{x, y})
		}
	}

	boundary := InitialBoundary(d.buf)
	RefreshNormals(d.buf, boundary)
	for _, p := range boundary {
		d.queue.Push(p, Priority(d.buf, p))
		v.DiscoverVertex(p)
	}

	inpainter := NewPatchInpainter(d.buf)

	for d.buf.Mask.HasHole() {
		select {
		case <-ctx.Done():
			v.InpaintingComplete()
			return ErrCancelled
		default:
		}

		target, ok := d.queue.Pop()
		if !ok {
			v.InpaintingComplete()
			return fmt.Errorf("%w: hole remains with empty boundary queue", ErrNoProgress)
		}

		desc := Describe(d.buf, target)
		if desc.Status != StatusTarget {
			// Became stale between push and pop (e.g. painted by an
			// adjacent patch already); simply drop it.
			continue
		}

		candidates, err := Search(d.buf, desc, d.opts.K, d.opts.Workers, d.opts.Distance)
		if err != nil && len(candidates) == 0 {
			v.InpaintingComplete()
			return fmt.Errorf("%w: need %d, found %d", ErrInsufficientSources, d.opts.K, len(candidates))
		}

		source, err := d.opts.Refiner.Refine(d.buf, desc, candidates)
		if err != nil {
			// No admissible candidate for this target right now; drop it
			// from the queue and let neighboring paints potentially make
			// it admissible again via rediscovery.
			continue
		}

		v.VertexMatchMade(target, source)
		inpainter.Paint(target, source)
		v.PaintVertex(target, source)

		if !v.AcceptPaintedVertex(target) {
			continue
		}

		region := patchRegion(target, d.buf.Radius, bounds)
		d.buf.Mask.MarkValid(region)

		onBoundary, offBoundary := RediscoverBoundary(d.buf, region)
		RefreshNormals(d.buf, onBoundary)
		for _, p := range offBoundary {
			d.queue.Invalidate(p)
		}
		for _, p := range onBoundary {
			d.queue.Push(p, Priority(d.buf, p))
			v.DiscoverVertex(p)
		}

		v.FinishVertex(target)
	}

	v.InpaintingComplete()
	return nil
}
