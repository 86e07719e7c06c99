package inpaint

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/esimov/inpaint/utils"
)

// Processor is the high-level entry point wrapping a Driver run with file
// I/O, mirroring caire's Processor/Execute split: Processor owns
// user-facing configuration, Execute (exec.go) owns path resolution, batch
// mode and progress reporting, and Process (this file) does the actual
// decode -> drive -> encode work for one image.
type Processor struct {
	// PatchRadius is half the patch side length.
	PatchRadius int
	// K is the number of KNN candidates evaluated per target.
	K int
	// Workers bounds KNN scan parallelism; 0 means runtime.NumCPU().
	Workers int
	// RefinerKind selects the second-stage tiebreaker.
	RefinerKind RefinerKind
	// ReuseFraction is used only when RefinerKind is RefinerReuseLimited.
	ReuseFraction float64
	// UseSAD selects the SAD distance instead of the default SSD.
	UseSAD bool
	// BlurVariance controls the auxiliary comparison layers' smoothing.
	BlurVariance float64

	// MaskPath is the local file path of the hole mask image; URLs are not
	// downloaded. Required.
	MaskPath string

	// DebugSink, if non-nil, receives per-iteration debug frames (C14).
	DebugSink io.Writer
	// DebugThumbnailWidth, if non-zero, downsamples each debug frame to
	// this width before writing it to DebugSink.
	DebugThumbnailWidth int

	// Spinner renders CLI progress; set by Execute, nil-safe otherwise.
	Spinner *utils.Spinner
}

func (p *Processor) refiner() Refiner {
	switch p.RefinerKind {
	case RefinerIntroducedEnergy:
		return IntroducedEnergyRefiner{}
	case RefinerReuseLimited:
		frac := p.ReuseFraction
		if frac <= 0 {
			frac = 0.5
		}
		return NewReuseLimitedRefiner(frac)
	default:
		return IdentityRefiner{}
	}
}

func (p *Processor) distance() DistanceFunc {
	if p.UseSAD {
		return DistanceSAD
	}
	return DistanceSSD
}

// Process decodes src, loads the configured mask, runs the inpainting
// driver to completion, and encodes the result to dst.
func (p *Processor) Process(ctx context.Context, src io.Reader, dst io.Writer) error {
	if p.PatchRadius <= 0 || p.K <= 0 {
		return ErrInvalidConfiguration
	}
	if p.MaskPath == "" {
		return fmt.Errorf("%w: mask path is required", ErrInvalidConfiguration)
	}

	decoded, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("could not decode source image: %w", err)
	}
	img := imgToNRGBA(decoded)

	mask, err := LoadMask(p.MaskPath, img.Bounds().Dx(), img.Bounds().Dy())
	if err != nil {
		return err
	}

	var visitor Visitor = NopVisitor{}
	if p.DebugSink != nil {
		if p.DebugThumbnailWidth > 0 {
			visitor = NewThumbnailDebugVisitor(p.DebugSink, img.Bounds(), p.DebugThumbnailWidth)
		} else {
			visitor = NewDebugVisitor(p.DebugSink, img.Bounds())
		}
	}

	driver, err := NewDriver(img, mask, Options{
		PatchRadius:  p.PatchRadius,
		K:            p.K,
		Workers:      p.Workers,
		Distance:     p.distance(),
		Refiner:      p.refiner(),
		BlurVariance: p.BlurVariance,
		Visitor:      visitor,
	})
	if err != nil {
		return err
	}

	if err := driver.Run(ctx); err != nil {
		img, _ := driver.Result()
		_ = EncodeImage(dst, img)
		return err
	}

	img, _ = driver.Result()
	return EncodeImage(dst, img)
}
