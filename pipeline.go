package texpack

import (
	"fmt"
	"image"
	"time"
)

// prepared is the pipeline's internal item representation after intake and trimming.
type prepared struct {
	key      string
	rgba     *image.RGBA // nil on layout-only paths
	content  Size        // dimensions to place, post-trim
	trimmed  bool
	source   Rect // content sub-rectangle within the original image
	origSize Size
}

// PackImages runs the full pipeline: trim (when configured), sort, multipage placement and
// pixel compositing. The returned output contains the atlas plus one RGBA bitmap per page.
func PackImages(inputs []InputImage, cfg PackerConfig) (*PackOutput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrEmpty
	}

	start := time.Now()
	prep, err := prepareImages(inputs, &cfg)
	if err != nil {
		return nil, err
	}
	if len(prep) == 0 {
		return nil, ErrEmpty
	}

	atlas, err := packItems(prep, &cfg)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*prepared, len(prep))
	for i := range prep {
		byKey[prep[i].key] = &prep[i]
	}
	pages := make([]OutputPage, len(atlas.Pages))
	for i := range atlas.Pages {
		page := &atlas.Pages[i]
		canvas := image.NewRGBA(image.Rect(0, 0, page.Width, page.Height))
		for j := range page.Frames {
			f := &page.Frames[j]
			if p, ok := byKey[f.Key]; ok && p.rgba != nil {
				blitRGBA(canvas, p.rgba, f.Frame.X, f.Frame.Y, p.source, f.Rotated,
					cfg.TextureExtrusion, cfg.TextureOutlines)
			}
		}
		pages[i] = OutputPage{Page: *page, RGBA: canvas}
	}

	cfg.logger().Debug("packed images",
		"items", len(prep), "pages", len(atlas.Pages), "duration", time.Since(start))
	return &PackOutput{Atlas: *atlas, Pages: pages}, nil
}

// LayoutSize is a plain (key, width, height) triple for layout-only packing.
type LayoutSize struct {
	Key  string
	W, H int
}

// PackLayout packs sizes into pages without touching pixel data.
func PackLayout(items []LayoutSize, cfg PackerConfig) (*Atlas, error) {
	converted := make([]LayoutItem, len(items))
	for i, it := range items {
		converted[i] = LayoutItem{Key: it.Key, W: it.W, H: it.H}
	}
	return PackLayoutItems(converted, cfg)
}

// PackLayoutItems packs layout-only items into pages. Caller-provided source metadata is
// authoritative and is propagated as-is; the pipeline never re-trims it.
func PackLayoutItems(items []LayoutItem, cfg PackerConfig) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	prep := make([]prepared, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if err := checkKey(seen, it.Key); err != nil {
			return nil, err
		}
		if it.W < 1 || it.H < 1 {
			return nil, fmt.Errorf("%w: item %q has non-positive dimensions %dx%d",
				ErrInvalidInput, it.Key, it.W, it.H)
		}
		source := NewRect(0, 0, it.W, it.H)
		if it.Source != nil {
			source = *it.Source
		}
		origSize := NewSize(it.W, it.H)
		if it.SourceSize != nil {
			origSize = *it.SourceSize
		}
		prep = append(prep, prepared{
			key:      it.Key,
			content:  NewSize(it.W, it.H),
			trimmed:  it.Trimmed,
			source:   source,
			origSize: origSize,
		})
	}
	return packItems(prep, &cfg)
}

func checkKey(seen map[string]struct{}, key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidInput)
	}
	if _, dup := seen[key]; dup {
		return fmt.Errorf("%w: duplicate key %q", ErrInvalidInput, key)
	}
	seen[key] = struct{}{}
	return nil
}

// prepareImages validates intake, converts to RGBA, and applies trimming per config.
func prepareImages(inputs []InputImage, cfg *PackerConfig) ([]prepared, error) {
	out := make([]prepared, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, inp := range inputs {
		if err := checkKey(seen, inp.Key); err != nil {
			return nil, err
		}
		if inp.Image == nil {
			return nil, fmt.Errorf("%w: item %q has no image", ErrInvalidInput, inp.Key)
		}
		rgba := toRGBA(inp.Image)
		iw := rgba.Rect.Dx()
		ih := rgba.Rect.Dy()
		if iw < 1 || ih < 1 {
			return nil, fmt.Errorf("%w: item %q has non-positive dimensions %dx%d",
				ErrInvalidInput, inp.Key, iw, ih)
		}

		full := NewRect(0, 0, iw, ih)
		source := full
		trimmed := false
		if cfg.Trim {
			bbox, ok := computeTrimRect(rgba, cfg.TrimThreshold)
			switch {
			case ok:
				source = bbox
				trimmed = !bbox.Eq(full)
			case cfg.TransparentPolicy == TransparentKeep:
				// packed untrimmed at full size
			case cfg.TransparentPolicy == TransparentOneByOne:
				source = NewRect(0, 0, 1, 1)
				trimmed = true
			case cfg.TransparentPolicy == TransparentStrict:
				return nil, &EmptyAfterTrimError{Key: inp.Key}
			default: // TransparentSkip
				cfg.logger().Warn("skipping fully transparent image", "key", inp.Key)
				continue
			}
		}
		out = append(out, prepared{
			key:      inp.Key,
			rgba:     rgba,
			content:  source.Size,
			trimmed:  trimmed,
			source:   source,
			origSize: NewSize(iw, ih),
		})
	}
	return out, nil
}

// packItems sorts, pre-checks and dispatches to the selected algorithm family.
func packItems(prep []prepared, cfg *PackerConfig) (*Atlas, error) {
	sortItems(prep, cfg.SortOrder)

	usable := cfg.usable()
	for i := range prep {
		sw, sh := cfg.slotExtent(prep[i].content.Width, prep[i].content.Height)
		fits := sw <= usable.Width && sh <= usable.Height
		if cfg.AllowRotation {
			fits = fits || (sh <= usable.Width && sw <= usable.Height)
		}
		if !fits {
			return nil, &ItemTooLargeError{
				Key:       prep[i].key,
				Width:     sw,
				Height:    sh,
				MaxWidth:  usable.Width,
				MaxHeight: usable.Height,
			}
		}
	}

	if cfg.Family == Auto {
		return packAuto(prep, cfg)
	}
	return packPrepared(prep, cfg)
}

// packPrepared is the multipage driver: it fills one page at a time with the configured
// engine and spills overflow into additional pages. Pages fill greedily with repeated
// passes, so an item that fails on a page does not end the page while later items still fit.
func packPrepared(prep []prepared, cfg *PackerConfig) (*Atlas, error) {
	remaining := make([]int, len(prep))
	for i := range prep {
		remaining[i] = i
	}

	off := cfg.frameOffset()
	var pages []Page
	for len(remaining) > 0 {
		algo := newAlgorithm(cfg)
		var frames []Frame
		for {
			placedAny := false
			keep := remaining[:0]
			for _, idx := range remaining {
				p := &prep[idx]
				sw, sh := cfg.slotExtent(p.content.Width, p.content.Height)
				slot, rotated, ok := algo.pack(sw, sh)
				if !ok {
					keep = append(keep, idx)
					continue
				}
				fw, fh := p.content.Width, p.content.Height
				if rotated {
					fw, fh = fh, fw
				}
				frames = append(frames, Frame{
					Key:        p.key,
					Frame:      NewRect(slot.X+off, slot.Y+off, fw, fh),
					Rotated:    rotated,
					Trimmed:    p.trimmed,
					Source:     p.source,
					SourceSize: p.origSize,
					Pivot:      CenterPivot,
				})
				placedAny = true
			}
			remaining = keep
			if !placedAny || len(remaining) == 0 {
				break
			}
		}
		if len(frames) == 0 {
			// Unreachable after the oversize pre-check; guards a misbehaving engine.
			p := &prep[remaining[0]]
			sw, sh := cfg.slotExtent(p.content.Width, p.content.Height)
			usable := cfg.usable()
			return nil, &ItemTooLargeError{Key: p.key, Width: sw, Height: sh,
				MaxWidth: usable.Width, MaxHeight: usable.Height}
		}

		w, h := computePageSize(frames, cfg)
		pages = append(pages, Page{ID: len(pages), Width: w, Height: h, Frames: frames})
	}

	atlas := &Atlas{Pages: pages, Meta: cfg.newMeta()}
	return atlas, nil
}

// computePageSize shrinks a page to the tightest extent bounding its frames, restoring the
// symmetric slot margins, then applies the power-of-two/square constraints.
func computePageSize(frames []Frame, cfg *PackerConfig) (int, int) {
	if cfg.ForceMaxDimensions {
		return cfg.MaxWidth, cfg.MaxHeight
	}
	padRem := cfg.TexturePadding - cfg.TexturePadding/2
	extra := cfg.TextureExtrusion + padRem + cfg.BorderPadding
	var w, h int
	for i := range frames {
		w = max(w, frames[i].Frame.Right()+extra)
		h = max(h, frames[i].Frame.Bottom()+extra)
	}
	if cfg.PowerOfTwo {
		w = nextPow2(max(w, 1))
		h = nextPow2(max(h, 1))
	}
	if cfg.Square {
		m := max(w, h)
		w, h = m, m
	}
	return w, h
}

// nextPow2 rounds up to the nearest power of two.
func nextPow2(v int) int {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}

// prevPow2 rounds down to the nearest power of two.
func prevPow2(v int) int {
	if v < 1 {
		return 1
	}
	p := 1
	for p<<1 <= v {
		p <<= 1
	}
	return p
}

// vim: ts=4
