package inpaint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImgToNRGBA_PassesThroughExistingNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	src.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})

	dst := imgToNRGBA(src)
	assert.Same(t, src, dst, "an already-NRGBA image at origin should be returned unchanged")
}

func TestImgToNRGBA_ConvertsGenericColorModel(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 128})

	dst := imgToNRGBA(src)
	assert.Equal(t, 2, dst.Bounds().Dx())
	r, g, b, _ := dst.At(0, 0).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestRgbToGrayscale_UniformImageIsUniform(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{50, 50, 50, 255})
		}
	}
	gray := rgbToGrayscale(src)
	assert.Len(t, gray, 16)
	for _, v := range gray {
		assert.Equal(t, gray[0], v)
	}
}

func TestDither_WhiteBecomesOpaqueBlackBecomesTransparent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})

	out := dither(src)
	_, _, _, a0 := out.At(0, 0).RGBA()
	_, _, _, a1 := out.At(1, 0).RGBA()
	assert.NotEqual(t, uint32(0), a0, "a bright/non-zero source pixel must dither to opaque, matching the HOLE contract")
	assert.Equal(t, uint32(0), a1)
}
