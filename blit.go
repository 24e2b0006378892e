package texpack

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// blitRGBA copies the source sub-rectangle into the canvas at (dx, dy), optionally rotated
// 90 degrees clockwise, then replicates the content edges outward by extrude pixels and
// draws an optional debug outline. The rendered pixels never leave the reserved slot, which
// is what prevents bilinear bleed across neighboring frames.
func blitRGBA(canvas, src *image.RGBA, dx, dy int, source Rect, rotated bool, extrude int, outlines bool) {
	sx, sy := source.X, source.Y
	sw, sh := source.Width, source.Height
	rw, rh := sw, sh
	if rotated {
		rw, rh = sh, sw
	}
	if rw <= 0 || rh <= 0 {
		return
	}

	bounds := canvas.Bounds()
	set := func(x, y int, c color.RGBA) {
		if image.Pt(x, y).In(bounds) {
			canvas.SetRGBA(x, y, c)
		}
	}

	if rotated {
		for yy := 0; yy < rh; yy++ {
			for xx := 0; xx < rw; xx++ {
				set(dx+xx, dy+yy, src.RGBAAt(sx+yy, sy+(sh-1-xx)))
			}
		}
	} else {
		xdraw.Copy(canvas, image.Pt(dx, dy), src, image.Rect(sx, sy, sx+sw, sy+sh), xdraw.Src, nil)
	}

	if outlines {
		red := color.RGBA{R: 255, A: 255}
		for xx := 0; xx < rw; xx++ {
			set(dx+xx, dy, red)
			set(dx+xx, dy+rh-1, red)
		}
		for yy := 0; yy < rh; yy++ {
			set(dx, dy+yy, red)
			set(dx+rw-1, dy+yy, red)
		}
	}

	if extrude <= 0 {
		return
	}
	at := func(x, y int) color.RGBA {
		return canvas.RGBAAt(x, y)
	}
	for e := 1; e <= extrude; e++ {
		for xx := 0; xx < rw; xx++ {
			set(dx+xx, dy-e, at(dx+xx, dy))
			set(dx+xx, dy+rh-1+e, at(dx+xx, dy+rh-1))
		}
		for yy := 0; yy < rh; yy++ {
			set(dx-e, dy+yy, at(dx, dy+yy))
			set(dx+rw-1+e, dy+yy, at(dx+rw-1, dy+yy))
		}
	}
	c00 := at(dx, dy)
	c10 := at(dx+rw-1, dy)
	c01 := at(dx, dy+rh-1)
	c11 := at(dx+rw-1, dy+rh-1)
	for ex := 1; ex <= extrude; ex++ {
		for ey := 1; ey <= extrude; ey++ {
			set(dx-ex, dy-ey, c00)
			set(dx+rw-1+ex, dy-ey, c10)
			set(dx-ex, dy+rh-1+ey, c01)
			set(dx+rw-1+ex, dy+rh-1+ey, c11)
		}
	}
}

// vim: ts=4
