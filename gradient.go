package inpaint

import "image"

// kernel is a 3x3 convolution kernel, kept as the integer matrices
// caire's sobel.go uses for its edge-detection kernels.
type kernel [][]int32

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelComponents computes the raw (gx, gy) Sobel gradient at every pixel of
// a grayscale buffer, without thresholding or magnitude collapse. Unlike
// caire's SobelFilter (which emits a thresholded edge-magnitude image for
// display), the isophote term needs the signed vector components so the
// data term can take a dot product against the boundary normal.
func sobelComponents(gray []uint8, w, h int) (gx, gy []float64) {
	gx = make([]float64, w*h)
	gy = make([]float64, w*h)

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		}
		if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= h {
			y = h - 1
		}
		return float64(gray[y*w+x])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sx, sy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					sx += float64(kernelX[ky+1][kx+1]) * v
					sy += float64(kernelY[ky+1][kx+1]) * v
				}
			}
			gx[y*w+x] = sx / 255
			gy[y*w+x] = sy / 255
		}
	}
	return gx, gy
}

// SobelMagnitude renders a thresholded edge-magnitude visualization of img.
// Neither the debug visualizer nor the core isophote computation calls it;
// the latter uses sobelComponents directly.
func SobelMagnitude(img *image.NRGBA, threshold float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := rgbToGrayscale(img)
	gx, gy := sobelComponents(gray, w, h)

	dst := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			mag := (gx[i]*255)*(gx[i]*255) + (gy[i]*255)*(gy[i]*255)
			var v uint8
			if mag > threshold*threshold {
				if mag > 255*255 {
					mag = 255 * 255
				}
				v = uint8(intSqrt(mag))
			}
			off := dst.PixOffset(x, y)
			dst.Pix[off+0] = v
			dst.Pix[off+1] = v
			dst.Pix[off+2] = v
			dst.Pix[off+3] = 255
		}
	}
	return dst
}

func intSqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 10; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}
