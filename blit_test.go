package texpack

import (
	"image"
	"image/color"
	"testing"
)

func TestBlitRotation(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, blue)

	canvas := image.NewRGBA(image.Rect(0, 0, 4, 4))
	blitRGBA(canvas, src, 1, 1, NewRect(0, 0, 2, 1), true, 0, false)

	// 90 degrees clockwise: the left pixel of the source row ends up at the top of the
	// destination column.
	if canvas.RGBAAt(1, 1) != red {
		t.Errorf("pixel (1,1) = %v, expected red", canvas.RGBAAt(1, 1))
	}
	if canvas.RGBAAt(1, 2) != blue {
		t.Errorf("pixel (1,2) = %v, expected blue", canvas.RGBAAt(1, 2))
	}
}

func TestBlitExtrusionStaysInSlot(t *testing.T) {
	const extrude = 2
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	cfg := imageConfig()
	cfg.Trim = false
	cfg.TextureExtrusion = extrude
	cfg.MaxWidth = 16
	cfg.MaxHeight = 16
	cfg.ForceMaxDimensions = true

	out, err := PackImages([]InputImage{
		{Key: "sprite", Image: spriteImage(4, 4, NewRect(0, 0, 4, 4))},
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, f := findFrame(t, &out.Atlas, "sprite")
	if !f.Frame.Eq(NewRect(extrude, extrude, 4, 4)) {
		t.Fatalf("frame at %s", f.Frame.String())
	}

	page := out.Pages[0].RGBA
	// Content pixels.
	if page.RGBAAt(2, 2) != fill || page.RGBAAt(5, 5) != fill {
		t.Error("content pixels missing")
	}
	// Extruded edge rows and columns replicate the content border.
	if page.RGBAAt(2, 0) != fill || page.RGBAAt(0, 2) != fill {
		t.Error("edge extrusion missing")
	}
	// Extruded corners.
	if page.RGBAAt(0, 0) != fill || page.RGBAAt(7, 7) != fill {
		t.Error("corner extrusion missing")
	}
	// Nothing escapes the reserved slot.
	b := page.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if (x > 7 || y > 7) && page.RGBAAt(x, y) != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) written outside the slot", x, y)
			}
		}
	}
}

func TestPackImagesCompositesRotated(t *testing.T) {
	cfg := imageConfig()
	cfg.Trim = false
	cfg.AllowRotation = true
	cfg.MaxWidth = 64
	cfg.MaxHeight = 64

	// A 60x10 strip and a 10x60 strip only share a page when one of them rotates.
	wide := spriteImage(60, 10, NewRect(0, 0, 60, 10))
	tall := spriteImage(10, 60, NewRect(0, 0, 10, 60))
	cfg.Family = MaxRects

	out, err := PackImages([]InputImage{
		{Key: "wide", Image: wide},
		{Key: "tall", Image: tall},
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(out.Pages))
	}
	_, f := findFrame(t, &out.Atlas, "tall")
	if !f.Rotated {
		t.Fatal("tall strip not rotated")
	}
	page := out.Pages[0].RGBA
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if page.RGBAAt(f.Frame.X, f.Frame.Y) != fill {
		t.Error("rotated content not composited")
	}
	if page.RGBAAt(f.Frame.Right()-1, f.Frame.Bottom()-1) != fill {
		t.Error("rotated content incomplete")
	}
}

func TestRuntimeAtlasAppendAndClear(t *testing.T) {
	cfg := sessionConfig(32, 32)
	atlas, err := NewRuntimeAtlas(cfg, ShelfFirstFit)
	if err != nil {
		t.Fatal(err)
	}

	sprite := spriteImage(8, 8, NewRect(0, 0, 8, 8))
	pageID, frame, region, err := atlas.AppendImage("s", sprite)
	if err != nil {
		t.Fatal(err)
	}
	if region.IsEmpty() || region.PageID != pageID {
		t.Fatalf("region %+v", region)
	}
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	page := atlas.PageImage(pageID)
	if page == nil || page.RGBAAt(frame.Frame.X, frame.Frame.Y) != fill {
		t.Fatal("pixels not blitted")
	}

	cleared, ok := atlas.EvictClear(pageID, "s", true)
	if !ok || cleared.IsEmpty() {
		t.Fatalf("evict region %+v ok=%v", cleared, ok)
	}
	if page.RGBAAt(frame.Frame.X, frame.Frame.Y) != (color.RGBA{}) {
		t.Error("pixels not cleared")
	}
	if atlas.Contains("s") {
		t.Error("key still live after evict")
	}

	// The slot is reusable and the geometry repeats.
	_, frame2, _, err := atlas.AppendImage("s", sprite)
	if err != nil {
		t.Fatal(err)
	}
	if !frame2.Frame.Eq(frame.Frame) {
		t.Errorf("re-append moved from %s to %s", frame.Frame.String(), frame2.Frame.String())
	}
}

// vim: ts=4
