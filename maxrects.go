package texpack

import (
	"math"
	"slices"
)

// maxRects places slots by maintaining the set of maximal free rectangles covering the
// unoccupied area. Free rectangles may overlap each other; placements split every
// intersected rectangle and the list is pruned of contained entries.
type maxRects struct {
	border        Rect
	heuristic     MaxRectsHeuristic
	allowRotation bool
	reference     bool
	free          []Rect
	used          []Rect
	newFree       []Rect
}

func newMaxRects(cfg *PackerConfig) *maxRects {
	border := cfg.usable()
	return &maxRects{
		border:        border,
		heuristic:     cfg.MRHeuristic,
		allowRotation: cfg.AllowRotation,
		reference:     cfg.MRReference,
		free:          []Rect{border},
	}
}

func (p *maxRects) canPack(w, h int) bool {
	_, _, ok := p.findPosition(w, h)
	return ok
}

func (p *maxRects) pack(w, h int) (Rect, bool, bool) {
	place, rotated, ok := p.findPosition(w, h)
	if !ok {
		return Rect{}, false, false
	}
	p.placeRect(&place)
	return place, rotated, true
}

// score computes the two-tier penalty for placing a (w, h) slot into the free rectangle.
// Lower is better on both tiers.
func (p *maxRects) score(fr *Rect, w, h int) (int, int) {
	leftoverH := abs(fr.Width - w)
	leftoverV := abs(fr.Height - h)
	shortFit := min(leftoverH, leftoverV)
	longFit := max(leftoverH, leftoverV)
	areaFit := fr.Area() - w*h

	switch p.heuristic {
	case MaxRectsBSSF:
		return shortFit, longFit
	case MaxRectsBLSF:
		return longFit, shortFit
	case MaxRectsBL:
		return fr.Y, fr.X
	case MaxRectsCP:
		// Contact is maximized; negate so that lower always wins.
		return -p.contactPointScore(fr.X, fr.Y, w, h), areaFit
	default: // MaxRectsBAF
		return areaFit, shortFit
	}
}

func (p *maxRects) findPosition(w, h int) (Rect, bool, bool) {
	bestScore1 := math.MaxInt
	bestScore2 := math.MaxInt
	bestTop := math.MaxInt
	bestLeft := math.MaxInt
	var bestRect Rect
	bestRot := false

	for i := range p.free {
		fr := &p.free[i]
		if fr.Width >= w && fr.Height >= h {
			s1, s2 := p.score(fr, w, h)
			top := fr.Y + h
			if s1 < bestScore1 || (s1 == bestScore1 && (s2 < bestScore2 ||
				(s2 == bestScore2 && (top < bestTop || (top == bestTop && fr.X < bestLeft))))) {
				bestScore1, bestScore2 = s1, s2
				bestTop, bestLeft = top, fr.X
				bestRect = NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
			if fr.Width == w && fr.Height == h {
				return NewRect(fr.X, fr.Y, w, h), false, true
			}
		}
		if p.allowRotation && fr.Width >= h && fr.Height >= w {
			s1, s2 := p.score(fr, h, w)
			top := fr.Y + w
			if s1 < bestScore1 || (s1 == bestScore1 && (s2 < bestScore2 ||
				(s2 == bestScore2 && (top < bestTop || (top == bestTop && fr.X < bestLeft))))) {
				bestScore1, bestScore2 = s1, s2
				bestTop, bestLeft = top, fr.X
				bestRect = NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
			if fr.Width == h && fr.Height == w {
				return NewRect(fr.X, fr.Y, h, w), true, true
			}
		}
	}

	if bestRect.IsEmpty() {
		return Rect{}, false, false
	}
	return bestRect, bestRot, true
}

func (p *maxRects) placeRect(node *Rect) {
	if p.reference {
		p.placeRectRef(node)
		return
	}
	p.free = subtractFree(p.free, node)
	p.free = pruneFreeList(p.free)
	p.used = append(p.used, *node)
}

// placeRectRef is the reference-accurate placement: SplitFreeNode ordering with a staged
// prune of the new rectangles against the old before the full containment sweep. Higher
// occupancy at higher CPU cost.
func (p *maxRects) placeRectRef(node *Rect) {
	p.newFree = p.newFree[:0]
	for i := 0; i < len(p.free); {
		if p.free[i].Intersects(*node) {
			fr := p.free[i]
			last := len(p.free) - 1
			p.free[i] = p.free[last]
			p.free = p.free[:last]
			p.splitFreeNode(&fr, node)
		} else {
			i++
		}
	}
	p.pruneNewVsOld()
	p.newFree = pruneFreeList(p.newFree)
	p.free = append(p.free, p.newFree...)
	p.free = pruneFreeList(p.free)
	p.used = append(p.used, *node)
}

// splitFreeNode splits a free rectangle intersected by node into up to four full-extent
// sub-rectangles, in reference order: left, right, top, bottom.
func (p *maxRects) splitFreeNode(fr, node *Rect) {
	// Left
	if node.X > fr.X && node.X < fr.Right() {
		p.newFree = append(p.newFree, NewRect(fr.X, fr.Y, node.X-fr.X, fr.Height))
	}
	// Right
	if node.Right() < fr.Right() {
		p.newFree = append(p.newFree, NewRect(node.Right(), fr.Y, fr.Right()-node.Right(), fr.Height))
	}
	// Top
	if node.Y > fr.Y && node.Y < fr.Bottom() {
		p.newFree = append(p.newFree, NewRect(fr.X, fr.Y, fr.Width, node.Y-fr.Y))
	}
	// Bottom
	if node.Bottom() < fr.Bottom() {
		p.newFree = append(p.newFree, NewRect(fr.X, node.Bottom(), fr.Width, fr.Bottom()-node.Bottom()))
	}
}

// pruneNewVsOld removes new rectangles contained in surviving old ones, then old
// rectangles contained in the remaining new ones.
func (p *maxRects) pruneNewVsOld() {
	p.newFree = slices.DeleteFunc(p.newFree, func(nr Rect) bool {
		if nr.IsEmpty() {
			return true
		}
		for i := range p.free {
			if p.free[i].ContainsRect(nr) {
				return true
			}
		}
		return false
	})
	for i := 0; i < len(p.free); {
		contained := false
		for j := range p.newFree {
			if p.newFree[j].ContainsRect(p.free[i]) {
				contained = true
				break
			}
		}
		if contained {
			last := len(p.free) - 1
			p.free[i] = p.free[last]
			p.free = p.free[:last]
		} else {
			i++
		}
	}
}

func (p *maxRects) contactPointScore(x, y, w, h int) int {
	score := 0
	if x == p.border.X {
		score += h
	}
	if y == p.border.Y {
		score += w
	}
	if x+w == p.border.Right() {
		score += h
	}
	if y+h == p.border.Bottom() {
		score += w
	}
	for i := range p.used {
		u := &p.used[i]
		if u.X == x+w || u.Right() == x {
			score += commonIntervalLength(u.Y, u.Bottom(), y, y+h)
		}
		if u.Y == y+h || u.Bottom() == y {
			score += commonIntervalLength(u.X, u.Right(), x, x+w)
		}
	}
	return score
}

// commonIntervalLength returns 0 if the two intervals are disjoint, or the length of their
// overlap otherwise.
func commonIntervalLength(i1start, i1end, i2start, i2end int) int {
	if i1end < i2start || i2end < i1start {
		return 0
	}
	return min(i1end, i2end) - max(i1start, i2start)
}

// vim: ts=4
