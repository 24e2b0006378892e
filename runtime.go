package texpack

import (
	"image"
	"image/color"
)

// UpdateRegion is a dirty rectangle on a page that needs re-uploading to the GPU texture.
type UpdateRegion struct {
	// PageID is the page that needs updating.
	PageID int
	// X, Y, Width, Height bound the dirty pixels.
	X, Y, Width, Height int
}

// IsEmpty reports whether the region covers no pixels.
func (r *UpdateRegion) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the number of pixels the region covers.
func (r *UpdateRegion) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// RuntimeAtlas extends AtlasSession with pixel data management: appends blit their source
// into per-page RGBA bitmaps and report the dirty region. Useful for engines that stream
// glyphs or sprites into live GPU textures.
type RuntimeAtlas struct {
	session    *AtlasSession
	pages      []*image.RGBA
	background color.RGBA
}

// NewRuntimeAtlas creates a pixel-backed session. New pages start fully transparent.
func NewRuntimeAtlas(cfg PackerConfig, strategy RuntimeStrategy) (*RuntimeAtlas, error) {
	session, err := NewAtlasSession(cfg, strategy)
	if err != nil {
		return nil, err
	}
	return &RuntimeAtlas{session: session}, nil
}

// SetBackground sets the fill color used for new pages and cleared regions.
func (a *RuntimeAtlas) SetBackground(c color.RGBA) {
	a.background = c
}

// AppendImage places the image and blits its pixels, returning the page id, the frame, and
// the region to upload.
func (a *RuntimeAtlas) AppendImage(key string, img image.Image) (int, Frame, UpdateRegion, error) {
	rgba := toRGBA(img)
	w := rgba.Rect.Dx()
	h := rgba.Rect.Dy()
	pageID, frame, err := a.session.Append(key, w, h)
	if err != nil {
		return 0, Frame{}, UpdateRegion{}, err
	}
	a.ensurePage(pageID)

	canvas := a.pages[pageID]
	extrude := a.session.cfg.TextureExtrusion
	blitRGBA(canvas, rgba, frame.Frame.X, frame.Frame.Y, NewRect(0, 0, w, h),
		frame.Rotated, extrude, false)

	region := a.dirtyRegion(pageID, &frame.Frame, extrude)
	return pageID, frame, region, nil
}

// Append places an item by dimensions only; no pixels are written.
func (a *RuntimeAtlas) Append(key string, w, h int) (int, Frame, error) {
	return a.session.Append(key, w, h)
}

// EvictClear releases the slot and, when clear is set, resets its pixels to the background
// color. The returned region is empty when nothing was cleared.
func (a *RuntimeAtlas) EvictClear(pageID int, key string, clear bool) (UpdateRegion, bool) {
	var region UpdateRegion
	if clear {
		if id, frame, ok := a.session.Frame(key); ok && id == pageID {
			region = a.dirtyRegion(pageID, &frame.Frame, a.session.cfg.TextureExtrusion)
		}
	}
	if !a.session.Evict(pageID, key) {
		return UpdateRegion{}, false
	}
	if clear && !region.IsEmpty() {
		a.clearRegion(region)
		return region, true
	}
	return UpdateRegion{PageID: pageID}, true
}

// EvictByKeyClear releases the slot by key alone, wherever it lives.
func (a *RuntimeAtlas) EvictByKeyClear(key string, clear bool) (UpdateRegion, bool) {
	if id, ok := a.session.keys[key]; ok {
		return a.EvictClear(id, key, clear)
	}
	return UpdateRegion{}, false
}

// PageImage returns the pixel data of a page, or nil when the page holds no pixels yet.
func (a *RuntimeAtlas) PageImage(pageID int) *image.RGBA {
	if pageID < 0 || pageID >= len(a.pages) {
		return nil
	}
	return a.pages[pageID]
}

// PageCount returns the number of pages with pixel data.
func (a *RuntimeAtlas) PageCount() int {
	return len(a.pages)
}

// Frame returns the page id and frame for a live key.
func (a *RuntimeAtlas) Frame(key string) (int, Frame, bool) {
	return a.session.Frame(key)
}

// Contains reports whether the key is live.
func (a *RuntimeAtlas) Contains(key string) bool {
	return a.session.Contains(key)
}

// Keys returns the live keys in page and insertion order.
func (a *RuntimeAtlas) Keys() []string {
	return a.session.Keys()
}

// Len returns the number of live frames.
func (a *RuntimeAtlas) Len() int {
	return a.session.Len()
}

// Stats summarizes the session's occupancy.
func (a *RuntimeAtlas) Stats() RuntimeStats {
	return a.session.Stats()
}

// SnapshotAtlas returns a read-only geometry clone of the session.
func (a *RuntimeAtlas) SnapshotAtlas() Atlas {
	return a.session.SnapshotAtlas()
}

func (a *RuntimeAtlas) ensurePage(pageID int) {
	w, h := a.session.cfg.pageExtent()
	for len(a.pages) <= pageID {
		page := image.NewRGBA(image.Rect(0, 0, w, h))
		if a.background != (color.RGBA{}) {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					page.SetRGBA(x, y, a.background)
				}
			}
		}
		a.pages = append(a.pages, page)
	}
}

// dirtyRegion inflates the frame by the extrusion margin, clamped to the page.
func (a *RuntimeAtlas) dirtyRegion(pageID int, frame *Rect, extrude int) UpdateRegion {
	w, h := a.session.cfg.pageExtent()
	x1 := max(frame.X-extrude, 0)
	y1 := max(frame.Y-extrude, 0)
	x2 := min(frame.Right()+extrude, w)
	y2 := min(frame.Bottom()+extrude, h)
	return UpdateRegion{PageID: pageID, X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (a *RuntimeAtlas) clearRegion(region UpdateRegion) {
	if region.PageID < 0 || region.PageID >= len(a.pages) {
		return
	}
	page := a.pages[region.PageID]
	for y := region.Y; y < region.Y+region.Height; y++ {
		for x := region.X; x < region.X+region.Width; x++ {
			page.SetRGBA(x, y, a.background)
		}
	}
}

// vim: ts=4
