package texpack

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// toRGBA returns the image as an *image.RGBA anchored at the origin, converting and copying
// only when required.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}

// computeTrimRect finds the tightest bounding box of pixels with alpha above the threshold.
// The reported rectangle is in image coordinates. Returns false when every pixel is
// transparent.
func computeTrimRect(rgba *image.RGBA, threshold uint8) (Rect, bool) {
	w := rgba.Rect.Dx()
	h := rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return Rect{}, false
	}

	opaque := func(x, y int) bool {
		return rgba.Pix[y*rgba.Stride+x*4+3] > threshold
	}
	colTransparent := func(x, y1, y2 int) bool {
		for y := y1; y <= y2; y++ {
			if opaque(x, y) {
				return false
			}
		}
		return true
	}
	rowTransparent := func(y, x1, x2 int) bool {
		for x := x1; x <= x2; x++ {
			if opaque(x, y) {
				return false
			}
		}
		return true
	}

	x1, y1 := 0, 0
	x2, y2 := w-1, h-1
	for x1 < w && colTransparent(x1, 0, h-1) {
		x1++
	}
	if x1 >= w {
		return Rect{}, false
	}
	for x2 > x1 && colTransparent(x2, 0, h-1) {
		x2--
	}
	for y1 < h && rowTransparent(y1, x1, x2) {
		y1++
	}
	for y2 > y1 && rowTransparent(y2, x1, x2) {
		y2--
	}
	return NewRect(x1, y1, x2-x1+1, y2-y1+1), true
}

// vim: ts=4
