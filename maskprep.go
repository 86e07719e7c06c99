package inpaint

import "image"

// LoadMask decodes the mask image at src and thresholds it into a Mask:
// a pixel is a HOLE when dither turns it opaque white, i.e. when its R, G
// and B are all above half intensity; darker pixels, even non-zero ones,
// stay VALID. Built on caire's mask-loading/dithering
// pipeline (decodeImg -> imgToNRGBA -> dither), repurposed from a
// resize-protection mask into a hole-classification mask.
func LoadMask(src string, w, h int) (*Mask, error) {
	img, err := DecodeImage(src)
	if err != nil {
		return nil, err
	}
	nrgba := imgToNRGBA(img)
	if nrgba.Bounds().Dx() != w || nrgba.Bounds().Dy() != h {
		return nil, ErrInvalidConfiguration
	}
	bw := dither(nrgba)

	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := bw.At(x, y).RGBA()
			m.SetHole(x, y, a != 0)
		}
	}
	return m, nil
}

// DilateMask grows the HOLE region by radius pixels in every direction
// using a square structuring element, the mandatory pre-processing step
// described in §6: without it, a patch centered exactly on the original
// boundary would have an ill-defined isophote since it would straddle the
// placeholder fill rather than genuine source data. Grounded on
// CriminisiInpainting::ExpandMask's BinaryDilateImageFilter with a box
// structuring element sized to the patch radius.
func DilateMask(m *Mask, radius int) *Mask {
	if radius <= 0 {
		return m
	}
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.IsHole(x, y) {
				region := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).
					Intersect(image.Rect(0, 0, m.W, m.H))
				out.MarkHoleRegion(region)
			}
		}
	}
	return out
}
