package texpack

import (
	"fmt"
	"math/rand"
	"testing"
)

// layoutConfig returns a deterministic layout-only configuration used throughout the tests.
func layoutConfig(maxW, maxH int, family AlgorithmFamily) PackerConfig {
	cfg := DefaultConfig()
	cfg.MaxWidth = maxW
	cfg.MaxHeight = maxH
	cfg.Family = family
	cfg.Trim = false
	cfg.TexturePadding = 0
	cfg.AllowRotation = false
	return cfg
}

// checkAtlas verifies the structural invariants every returned atlas must uphold: frames
// disjoint, frames within the border, page ids sequential.
func checkAtlas(t *testing.T, atlas *Atlas, cfg *PackerConfig) {
	t.Helper()
	for i := range atlas.Pages {
		page := &atlas.Pages[i]
		if page.ID != i {
			t.Errorf("page %d has id %d", i, page.ID)
		}
		border := NewRect(cfg.BorderPadding, cfg.BorderPadding,
			page.Width-cfg.BorderPadding*2, page.Height-cfg.BorderPadding*2)
		for j := range page.Frames {
			f := &page.Frames[j].Frame
			if !border.ContainsRect(*f) {
				t.Errorf("page %d: frame %s escapes border %s", page.ID, f.String(), border.String())
			}
			for k := j + 1; k < len(page.Frames); k++ {
				g := &page.Frames[k].Frame
				if f.Intersects(*g) {
					t.Errorf("page %d: frames %s and %s intersect", page.ID, f.String(), g.String())
				}
			}
		}
	}
}

func randomSizes(n int, r *rand.Rand, minSide, maxSide int) []LayoutSize {
	items := make([]LayoutSize, n)
	for i := range items {
		items[i] = LayoutSize{
			Key: fmt.Sprintf("sprite-%03d", i),
			W:   r.Intn(maxSide-minSide) + minSide,
			H:   r.Intn(maxSide-minSide) + minSide,
		}
	}
	return items
}

func TestRandomDisjoint(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	items := randomSizes(256, r, 8, 48)

	for _, family := range []AlgorithmFamily{Skyline, MaxRects, Guillotine} {
		cfg := layoutConfig(512, 512, family)
		cfg.AllowRotation = true
		cfg.TexturePadding = 2

		atlas, err := PackLayout(items, cfg)
		if err != nil {
			t.Fatalf("%v: %v", family, err)
		}
		checkAtlas(t, atlas, &cfg)

		total := 0
		for i := range atlas.Pages {
			total += len(atlas.Pages[i].Frames)
		}
		if total != len(items) {
			t.Errorf("%v: placed %d of %d items", family, total, len(items))
		}
	}
}

func TestRandomSlotSeparation(t *testing.T) {
	// With padding 2 and extrusion 1, content frames must be separated by at least the
	// extrusion margin on every side.
	r := rand.New(rand.NewSource(11))
	items := randomSizes(64, r, 4, 24)

	cfg := layoutConfig(256, 256, MaxRects)
	cfg.AllowRotation = true
	cfg.TexturePadding = 2
	cfg.TextureExtrusion = 1

	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range atlas.Pages {
		frames := atlas.Pages[i].Frames
		for j := range frames {
			a := frames[j].Frame
			a.X -= 1
			a.Y -= 1
			a.Width += 2
			a.Height += 2
			for k := j + 1; k < len(frames); k++ {
				b := frames[k].Frame
				if a.Intersects(b) {
					t.Errorf("page %d: inflated frame %s touches %s", i, a.String(), b.String())
				}
			}
		}
	}
}

func TestPackReproducible(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	items := randomSizes(128, r, 4, 40)

	for _, family := range []AlgorithmFamily{Skyline, MaxRects, Guillotine, Auto} {
		cfg := layoutConfig(256, 256, family)
		cfg.AllowRotation = true

		first, err := PackLayout(items, cfg)
		if err != nil {
			t.Fatalf("%v: %v", family, err)
		}
		second, err := PackLayout(items, cfg)
		if err != nil {
			t.Fatalf("%v: %v", family, err)
		}
		if !atlasEqual(first, second) {
			t.Errorf("%v: repeated runs produced different layouts", family)
		}
	}
}

func atlasEqual(a, b *Atlas) bool {
	if len(a.Pages) != len(b.Pages) {
		return false
	}
	for i := range a.Pages {
		pa, pb := &a.Pages[i], &b.Pages[i]
		if pa.Width != pb.Width || pa.Height != pb.Height || len(pa.Frames) != len(pb.Frames) {
			return false
		}
		for j := range pa.Frames {
			fa, fb := &pa.Frames[j], &pb.Frames[j]
			if fa.Key != fb.Key || !fa.Frame.Eq(fb.Frame) || fa.Rotated != fb.Rotated {
				return false
			}
		}
	}
	return true
}

// vim: ts=4
