package inpaint

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/inpaint/utils"
	"golang.org/x/image/bmp"
)

// DecodeImage decodes any supported image format from src, sniffing its
// content type the same way caire's decodeImg does before handing it to
// image.Decode.
func DecodeImage(src string) (image.Image, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open image file: %v", err)
	}
	defer file.Close()

	ctype, err := utils.DetectFileContentType(src)
	if err != nil {
		return nil, err
	}
	if s, ok := ctype.(string); !ok || !strings.Contains(s, "image") {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode image file: %v", err)
	}
	return img, nil
}

// EncodeImage writes img to w, choosing a codec from the destination file's
// extension when w is an *os.File, and falling back to JPEG otherwise
// (matching encodeImg's behavior for pipes/stdout).
func EncodeImage(w io.Writer, img *image.NRGBA) error {
	ext := ""
	if f, ok := w.(*os.File); ok {
		ext = filepath.Ext(f.Name())
	}
	switch ext {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported image format: %s", ext)
	}
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at
// (0, 0), kept from caire's image.go with fast paths for the common
// concrete image types and a generic color-model fallback.
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// rgbToGrayscale converts an image to grayscale, returning the pixel values
// as a one-dimensional array, kept verbatim from caire's image.go.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			gray[y*width+x] = uint8(
				(0.299*float64(r) +
					0.587*float64(g) +
					0.114*float64(b)) / 256,
			)
		}
	}

	return gray
}

// dither converts an image to a white-opaque/black-transparent threshold
// map, reused here to binarize an arbitrary mask image into HOLE/VALID: a
// source pixel whose R, G and B are all above half intensity (0x7fff in
// 16-bit terms) becomes opaque white; every other pixel, including a dim
// non-zero one, becomes transparent.
func dither(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	dithered := image.NewNRGBA(bounds)
	dx, dy := bounds.Dx(), bounds.Dy()

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			r, g, b, _ := src.At(x, y).RGBA()
			if r > 0x7fff && g > 0x7fff && b > 0x7fff {
				dithered.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			} else {
				dithered.SetNRGBA(x, y, color.NRGBA{A: 0x00})
			}
		}
	}

	return dithered
}
