package inpaint

// PatchInpainter performs the actual pixel-copying step of an iteration
// (C8): given a chosen (target, source) pair it pastes the known pixels of
// the source patch into the unknown pixels of the target patch and freezes
// the confidence term for the newly-filled pixels, mirroring
// CriminisiInpainting::Inpaint's patch-copy / UpdateConfidenceImage /
// UpdateIsophoteImage sequence.
type PatchInpainter struct {
	buf *Buffers
}

// NewPatchInpainter wraps buf for painting.
func NewPatchInpainter(buf *Buffers) *PatchInpainter {
	return &PatchInpainter{buf: buf}
}

// Paint copies source into target's hole pixels and freezes their
// confidence at the value the target patch had just before the copy.
// Ordering matters: the confidence term must be read before MarkValid is
// called on the target's mask (the driver marks the region valid in its own
// subsequent step, C9 §4.6).
func (pi *PatchInpainter) Paint(target, source Point) {
	c := ConfidenceTerm(pi.buf, target)
	pi.buf.CopyPatch(target, source)
	pi.buf.UpdateConfidence(target, c)
}
