package inpaint

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/esimov/inpaint/imop"
)

// patchOutlineColor marks the most recently painted target patch in debug
// frames, composited over the working image with imop's SrcOver operator.
var patchOutlineColor = color.NRGBA{R: 255, G: 0, B: 0, A: 160}

// DebugVisitor writes one PNG frame per finished vertex to sink, with the
// just-painted target patch outlined. It is the concrete instantiation of
// C14's debug sink; the driver core never touches the filesystem itself
// (DESIGN.md Open Question 2) — callers decide how frames from sink are
// persisted (e.g. a multi-frame file, one file per call, ...).
type DebugVisitor struct {
	NopVisitor
	sink     io.Writer
	bounds   image.Rectangle
	buf      *Buffers
	comp     *imop.Composite
	maxWidth int
}

// NewDebugVisitor creates a visitor that renders full-resolution debug
// frames for an image of the given bounds to sink.
func NewDebugVisitor(sink io.Writer, bounds image.Rectangle) *DebugVisitor {
	return &DebugVisitor{sink: sink, bounds: bounds, comp: imop.InitOp()}
}

// NewThumbnailDebugVisitor is like NewDebugVisitor but downsamples every
// frame to maxWidth pixels wide before encoding, keeping a long-running
// debug trace from writing one full-size frame per painted patch.
func NewThumbnailDebugVisitor(sink io.Writer, bounds image.Rectangle, maxWidth int) *DebugVisitor {
	v := NewDebugVisitor(sink, bounds)
	v.maxWidth = maxWidth
	return v
}

// bindBuffers lets the driver attach its working buffers once they exist;
// satisfies the unexported bufferBinder interface driver.go checks for.
func (v *DebugVisitor) bindBuffers(b *Buffers) {
	v.buf = b
}

// FinishVertex renders the patch outline overlay and encodes the current
// working image as a PNG frame to sink.
func (v *DebugVisitor) FinishVertex(p Point) {
	if v.buf == nil {
		return
	}
	overlay := image.NewNRGBA(v.bounds)
	region := patchRegion(p, v.buf.Radius, v.bounds)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			onEdge := x == region.Min.X || x == region.Max.X-1 || y == region.Min.Y || y == region.Max.Y-1
			if onEdge {
				overlay.SetNRGBA(x, y, patchOutlineColor)
			}
		}
	}

	bitmap := imop.NewBitmap(v.bounds)
	v.comp.Set(imop.SrcOver)
	v.comp.Draw(bitmap, overlay, v.buf.Image, nil)

	frame := image.Image(bitmap.Img)
	if v.maxWidth > 0 && v.bounds.Dx() > v.maxWidth {
		frame = imaging.Resize(bitmap.Img, v.maxWidth, 0, imaging.Lanczos)
	}
	_ = png.Encode(v.sink, frame)
}
