package texpack

import (
	"fmt"
	"math"
	"slices"
)

// RuntimeStrategy selects the online placement structure used by a session page.
type RuntimeStrategy int

const (
	// ShelfNextFit divides a page into horizontal shelves and appends to the most recent
	// shelf, opening a new one when it cannot fit. Freed segments on earlier shelves are
	// reclaimed before a new page is opened.
	ShelfNextFit RuntimeStrategy = iota
	// ShelfFirstFit scans shelves top-down for the first segment that fits.
	ShelfFirstFit
	// GuillotineRuntime maintains a per-page guillotine free list; evictions return their
	// slot to the free list and merge with co-linear neighbors.
	GuillotineRuntime
)

// String returns the string representation of the strategy.
func (s RuntimeStrategy) String() string {
	switch s {
	case ShelfFirstFit:
		return "shelf_first_fit"
	case GuillotineRuntime:
		return "guillotine"
	}
	return "shelf_next_fit"
}

// RuntimeStats summarizes the occupancy of a session.
type RuntimeStats struct {
	// Pages is the number of pages the session has opened.
	Pages int
	// Textures is the number of live frames.
	Textures int
	// UsedArea is the total area of live frames.
	UsedArea int
	// TotalArea is the sum of page areas.
	TotalArea int
	// Occupancy is UsedArea/TotalArea in the range [0, 1].
	Occupancy float64
}

// AtlasSession is an incremental placer supporting append and evict. A session owns a
// mutable atlas plus per-page free-space structures; mutations are serialized by the caller
// (a session is owned by a single goroutine at a time).
type AtlasSession struct {
	cfg      PackerConfig
	strategy RuntimeStrategy
	pages    []*sessionPage
	keys     map[string]int // key -> page id
	nextID   int
}

type sessionEntry struct {
	slot    Rect
	rotated bool
	frame   Frame
}

type sessionPage struct {
	id            int
	width, height int
	border        Rect
	allowRotation bool

	// shelf state
	policy  RuntimeStrategy
	shelves []shelf
	nextY   int

	// guillotine state
	free   []Rect
	choice GuillotineChoice
	split  GuillotineSplit

	used  map[string]sessionEntry
	order []string // insertion order of live keys
}

type shelfSegment struct {
	X, Width int
}

type shelf struct {
	Y, Height int
	segs      []shelfSegment
}

// NewAtlasSession creates an incremental session with the given strategy.
func NewAtlasSession(cfg PackerConfig, strategy RuntimeStrategy) (*AtlasSession, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &AtlasSession{
		cfg:      cfg,
		strategy: strategy,
		keys:     make(map[string]int),
	}, nil
}

func (s *AtlasSession) newPage() *sessionPage {
	id := s.nextID
	s.nextID++
	w, h := s.cfg.pageExtent()
	p := &sessionPage{
		id:            id,
		width:         w,
		height:        h,
		border:        s.cfg.usable(),
		allowRotation: s.cfg.AllowRotation,
		policy:        s.strategy,
		choice:        s.cfg.GChoice,
		split:         s.cfg.GSplit,
		used:          make(map[string]sessionEntry),
	}
	if s.strategy == GuillotineRuntime {
		p.free = []Rect{p.border}
	} else {
		p.nextY = p.border.Y
	}
	return p
}

// Append places a new item and returns the page id and frame. It fails with ErrDuplicateKey
// when the key is live in the session, with an ItemTooLargeError when the item cannot fit an
// empty page, and with ErrNoCapacity when a new page would exceed the configured ceiling.
func (s *AtlasSession) Append(key string, w, h int) (int, Frame, error) {
	if key == "" {
		return 0, Frame{}, fmt.Errorf("%w: empty key", ErrInvalidInput)
	}
	if w < 1 || h < 1 {
		return 0, Frame{}, fmt.Errorf("%w: item %q has non-positive dimensions %dx%d",
			ErrInvalidInput, key, w, h)
	}
	if _, dup := s.keys[key]; dup {
		return 0, Frame{}, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	reserveW, reserveH := s.cfg.slotExtent(w, h)
	usable := s.cfg.usable()
	fits := reserveW <= usable.Width && reserveH <= usable.Height
	if s.cfg.AllowRotation {
		fits = fits || (reserveH <= usable.Width && reserveW <= usable.Height)
	}
	if !fits {
		return 0, Frame{}, &ItemTooLargeError{Key: key, Width: reserveW, Height: reserveH,
			MaxWidth: usable.Width, MaxHeight: usable.Height}
	}

	for _, p := range s.pages {
		if slot, rotated, ok := p.place(reserveW, reserveH); ok {
			frame := s.makeFrame(key, w, h, &slot, rotated)
			p.commit(key, slot, rotated, frame)
			s.keys[key] = p.id
			return p.id, frame, nil
		}
	}

	if s.cfg.MaxPages > 0 && len(s.pages) >= s.cfg.MaxPages {
		return 0, Frame{}, fmt.Errorf("%w: %d page(s)", ErrNoCapacity, s.cfg.MaxPages)
	}
	page := s.newPage()
	slot, rotated, ok := page.place(reserveW, reserveH)
	if !ok {
		return 0, Frame{}, &ItemTooLargeError{Key: key, Width: reserveW, Height: reserveH,
			MaxWidth: usable.Width, MaxHeight: usable.Height}
	}
	frame := s.makeFrame(key, w, h, &slot, rotated)
	page.commit(key, slot, rotated, frame)
	s.pages = append(s.pages, page)
	s.keys[key] = page.id
	return page.id, frame, nil
}

// Evict releases the slot held by key on the given page. It reports whether a slot was
// removed; the freed space is immediately reusable by future appends.
func (s *AtlasSession) Evict(pageID int, key string) bool {
	for _, p := range s.pages {
		if p.id != pageID {
			continue
		}
		entry, ok := p.used[key]
		if !ok {
			return false
		}
		delete(p.used, key)
		p.order = slices.DeleteFunc(p.order, func(k string) bool { return k == key })
		p.addFree(entry.slot)
		delete(s.keys, key)
		return true
	}
	return false
}

// EvictByKey releases the slot held by key, wherever it lives.
func (s *AtlasSession) EvictByKey(key string) bool {
	if id, ok := s.keys[key]; ok {
		return s.Evict(id, key)
	}
	return false
}

// Frame returns the page id and frame for a live key.
func (s *AtlasSession) Frame(key string) (int, Frame, bool) {
	id, ok := s.keys[key]
	if !ok {
		return 0, Frame{}, false
	}
	for _, p := range s.pages {
		if p.id == id {
			return id, p.used[key].frame, true
		}
	}
	return 0, Frame{}, false
}

// Contains reports whether the key is live in the session.
func (s *AtlasSession) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of live frames.
func (s *AtlasSession) Len() int {
	return len(s.keys)
}

// Keys returns the live keys, pages in id order and insertion order within a page.
func (s *AtlasSession) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for _, p := range s.pages {
		out = append(out, p.order...)
	}
	return out
}

// Stats summarizes the session's occupancy.
func (s *AtlasSession) Stats() RuntimeStats {
	var st RuntimeStats
	st.Pages = len(s.pages)
	for _, p := range s.pages {
		st.TotalArea += p.width * p.height
		for _, key := range p.order {
			st.Textures++
			frame := p.used[key].frame.Frame
			st.UsedArea += frame.Area()
		}
	}
	if st.TotalArea > 0 {
		st.Occupancy = float64(st.UsedArea) / float64(st.TotalArea)
	}
	return st
}

// SnapshotAtlas returns a read-only geometry clone: pages in id order, frames in insertion
// order per page. The snapshot observes the state after the last completed mutation.
func (s *AtlasSession) SnapshotAtlas() Atlas {
	pages := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		frames := make([]Frame, 0, len(p.order))
		for _, key := range p.order {
			frames = append(frames, p.used[key].frame)
		}
		pages = append(pages, Page{ID: p.id, Width: p.width, Height: p.height, Frames: frames})
	}
	return Atlas{Pages: pages, Meta: s.cfg.newMeta()}
}

func (s *AtlasSession) makeFrame(key string, w, h int, slot *Rect, rotated bool) Frame {
	off := s.cfg.frameOffset()
	fw, fh := w, h
	if rotated {
		fw, fh = fh, fw
	}
	return Frame{
		Key:        key,
		Frame:      NewRect(slot.X+off, slot.Y+off, fw, fh),
		Rotated:    rotated,
		Source:     NewRect(0, 0, w, h),
		SourceSize: NewSize(w, h),
		Pivot:      CenterPivot,
	}
}

func (p *sessionPage) commit(key string, slot Rect, rotated bool, frame Frame) {
	p.used[key] = sessionEntry{slot: slot, rotated: rotated, frame: frame}
	p.order = append(p.order, key)
}

// place finds and consumes space for a reserved slot, returning the slot rectangle and
// whether it is rotated.
func (p *sessionPage) place(w, h int) (Rect, bool, bool) {
	if p.policy == GuillotineRuntime {
		return p.placeGuillotine(w, h)
	}
	return p.placeShelf(w, h)
}

func (p *sessionPage) placeGuillotine(w, h int) (Rect, bool, bool) {
	bestIdx := -1
	bestS1 := math.MaxInt
	bestS2 := math.MaxInt
	var best Rect
	bestRot := false
	for i := range p.free {
		fr := &p.free[i]
		if fr.Width >= w && fr.Height >= h {
			s1, s2 := scoreChoice(p.choice, fr, w, h)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
		}
		if p.allowRotation && fr.Width >= h && fr.Height >= w {
			s1, s2 := scoreChoice(p.choice, fr, h, w)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
		}
	}
	if bestIdx < 0 {
		return Rect{}, false, false
	}

	fr := p.free[bestIdx]
	p.free = slices.Delete(p.free, bestIdx, bestIdx+1)
	bottom, right, okB, okR := splitGuillotine(p.split, &fr, &best)
	if okB {
		p.free = append(p.free, bottom)
	}
	if okR {
		p.free = append(p.free, right)
	}
	p.free = pruneFreeList(p.free)
	p.free = mergeFreeList(p.free)
	return best, bestRot, true
}

func (p *sessionPage) placeShelf(w, h int) (Rect, bool, bool) {
	if slot, ok := p.findShelf(w, h); ok {
		p.consumeShelf(&slot)
		return slot, false, true
	}
	if p.allowRotation && w != h {
		if slot, ok := p.findShelf(h, w); ok {
			p.consumeShelf(&slot)
			return slot, true, true
		}
	}
	return Rect{}, false, false
}

// findShelf locates a resting rectangle for a (w, h) slot under the page's shelf policy:
// existing shelves (NextFit considers the most recent only), then a fresh shelf, then for
// NextFit a reclaim scan over earlier shelves so evicted segments are not stranded.
func (p *sessionPage) findShelf(w, h int) (Rect, bool) {
	inShelf := func(sh *shelf) (Rect, bool) {
		if h > sh.Height {
			return Rect{}, false
		}
		for _, seg := range sh.segs {
			if seg.Width >= w && seg.X+w <= p.border.Right() {
				return NewRect(seg.X, sh.Y, w, h), true
			}
		}
		return Rect{}, false
	}

	if p.policy == ShelfFirstFit {
		for i := range p.shelves {
			if r, ok := inShelf(&p.shelves[i]); ok {
				return r, true
			}
		}
	} else if n := len(p.shelves); n > 0 {
		if r, ok := inShelf(&p.shelves[n-1]); ok {
			return r, true
		}
	}

	if w <= p.border.Width && p.nextY+h <= p.border.Bottom() {
		return NewRect(p.border.X, p.nextY, w, h), true
	}

	if p.policy == ShelfNextFit {
		for i := range p.shelves[:max(len(p.shelves)-1, 0)] {
			if r, ok := inShelf(&p.shelves[i]); ok {
				return r, true
			}
		}
	}
	return Rect{}, false
}

// consumeShelf removes the slot's span from its shelf, opening the shelf first when the
// slot rests on fresh ground.
func (p *sessionPage) consumeShelf(slot *Rect) {
	for i := range p.shelves {
		sh := &p.shelves[i]
		if sh.Y == slot.Y && sh.Height >= slot.Height {
			sh.consume(slot)
			return
		}
	}
	sh := shelf{Y: slot.Y, Height: slot.Height,
		segs: []shelfSegment{{X: p.border.X, Width: p.border.Width}}}
	sh.consume(slot)
	p.shelves = append(p.shelves, sh)
	p.nextY = max(p.nextY, slot.Bottom())
}

func (sh *shelf) consume(slot *Rect) {
	for i := range sh.segs {
		seg := sh.segs[i]
		if slot.X >= seg.X && slot.Right() <= seg.X+seg.Width {
			sh.segs = slices.Delete(sh.segs, i, i+1)
			if left := slot.X - seg.X; left > 0 {
				sh.segs = append(sh.segs, shelfSegment{X: seg.X, Width: left})
			}
			if right := seg.X + seg.Width - slot.Right(); right > 0 {
				sh.segs = append(sh.segs, shelfSegment{X: slot.Right(), Width: right})
			}
			break
		}
	}
	sh.mergeSegments()
}

// mergeSegments sorts the free segments and coalesces contiguous neighbors.
func (sh *shelf) mergeSegments() {
	slices.SortFunc(sh.segs, func(a, b shelfSegment) int { return a.X - b.X })
	out := sh.segs[:0]
	for _, seg := range sh.segs {
		if n := len(out); n > 0 && out[n-1].X+out[n-1].Width == seg.X {
			out[n-1].Width += seg.Width
			continue
		}
		out = append(out, seg)
	}
	sh.segs = out
}

// addFree returns an evicted slot to the page's free space.
func (p *sessionPage) addFree(r Rect) {
	if p.policy == GuillotineRuntime {
		p.free = append(p.free, r)
		p.free = pruneFreeList(p.free)
		p.free = mergeFreeList(p.free)
		return
	}
	for i := range p.shelves {
		// Slots shorter than their shelf consumed a full-height column; return the segment
		// to the owning shelf so a re-append can land in the same place.
		sh := &p.shelves[i]
		if sh.Y == r.Y && sh.Height >= r.Height {
			sh.segs = append(sh.segs, shelfSegment{X: r.X, Width: r.Width})
			sh.mergeSegments()
			return
		}
	}
	p.shelves = append(p.shelves, shelf{Y: r.Y, Height: r.Height,
		segs: []shelfSegment{{X: r.X, Width: r.Width}}})
}

// vim: ts=4
