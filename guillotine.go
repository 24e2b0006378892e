package texpack

import (
	"math"
	"slices"
)

// guillotinePack places slots by consuming disjoint free rectangles, splitting the L-shaped
// leftover of each placement with a single straight cut. The free rectangles always tile
// the unoccupied area.
type guillotinePack struct {
	choice        GuillotineChoice
	split         GuillotineSplit
	allowRotation bool
	merge         bool
	free          []Rect
}

func newGuillotine(cfg *PackerConfig) *guillotinePack {
	return &guillotinePack{
		choice:        cfg.GChoice,
		split:         cfg.GSplit,
		allowRotation: cfg.AllowRotation,
		merge:         true,
		free:          []Rect{cfg.usable()},
	}
}

func (p *guillotinePack) canPack(w, h int) bool {
	_, _, _, ok := p.choose(w, h)
	return ok
}

func (p *guillotinePack) pack(w, h int) (Rect, bool, bool) {
	idx, place, rotated, ok := p.choose(w, h)
	if !ok {
		return Rect{}, false, false
	}
	p.place(idx, &place)
	return place, rotated, true
}

// scoreRect computes the single-tier penalty of placing a (w, h) slot into the free
// rectangle, per the configured choice rule. Lower wins; ties keep the earlier rectangle.
func (p *guillotinePack) scoreRect(fr *Rect, w, h int) int {
	areaFit := fr.Area() - w*h
	leftoverH := abs(fr.Width - w)
	leftoverV := abs(fr.Height - h)
	shortFit := min(leftoverH, leftoverV)
	longFit := max(leftoverH, leftoverV)

	switch p.choice {
	case GuillotineBSSF:
		return shortFit
	case GuillotineBLSF:
		return longFit
	case GuillotineWAF:
		return -areaFit
	case GuillotineWSSF:
		return -shortFit
	case GuillotineWLSF:
		return -longFit
	default: // GuillotineBAF
		return areaFit
	}
}

func (p *guillotinePack) choose(w, h int) (int, Rect, bool, bool) {
	bestIdx := -1
	bestScore := math.MaxInt
	var bestRect Rect
	bestRot := false

	for i := range p.free {
		fr := &p.free[i]
		if fr.Width >= w && fr.Height >= h {
			if s := p.scoreRect(fr, w, h); s < bestScore {
				bestScore = s
				bestIdx = i
				bestRect = NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
		}
		if p.allowRotation && fr.Width >= h && fr.Height >= w {
			if s := p.scoreRect(fr, h, w); s < bestScore {
				bestScore = s
				bestIdx = i
				bestRect = NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
		}
	}
	return bestIdx, bestRect, bestRot, bestIdx >= 0
}

func (p *guillotinePack) place(idx int, placed *Rect) {
	fr := p.free[idx]
	p.free = slices.Delete(p.free, idx, idx+1)
	bottom, right, okB, okR := splitGuillotine(p.split, &fr, placed)
	if okB {
		p.free = append(p.free, bottom)
	}
	if okR {
		p.free = append(p.free, right)
	}
	p.free = pruneFreeList(p.free)
	if p.merge {
		p.free = mergeFreeList(p.free)
	}
}

// splitGuillotine cuts the L-shaped leftover of placing placed inside fr into two disjoint
// rectangles along the axis selected by the split rule. Degenerate pieces are reported as
// absent.
func splitGuillotine(split GuillotineSplit, fr, placed *Rect) (Rect, Rect, bool, bool) {
	wRight := fr.Right() - placed.Right()
	hBottom := fr.Bottom() - placed.Bottom()

	var splitHorizontal bool
	switch split {
	case SplitShorterLeftoverAxis:
		splitHorizontal = hBottom < wRight
	case SplitLongerLeftoverAxis:
		splitHorizontal = hBottom > wRight
	case SplitMinimizeArea:
		splitHorizontal = wRight*fr.Height <= fr.Width*hBottom
	case SplitMaximizeArea:
		splitHorizontal = wRight*fr.Height >= fr.Width*hBottom
	case SplitShorterAxis:
		splitHorizontal = fr.Height < fr.Width
	case SplitLongerAxis:
		splitHorizontal = fr.Height > fr.Width
	}

	bottom := NewRect(fr.X, placed.Bottom(), 0, fr.Height-placed.Height)
	right := NewRect(placed.Right(), fr.Y, fr.Width-placed.Width, 0)
	if splitHorizontal {
		bottom.Width = fr.Width
		right.Height = placed.Height
	} else {
		bottom.Width = placed.Width
		right.Height = fr.Height
	}
	return bottom, right, !bottom.IsEmpty(), !right.IsEmpty()
}

// scoreChoice computes the two-tier variant of the guillotine choice score, used where ties
// must break deterministically on a second criterion (waste map, runtime sessions).
func scoreChoice(choice GuillotineChoice, fr *Rect, w, h int) (int, int) {
	areaFit := fr.Area() - w*h
	leftoverH := abs(fr.Width - w)
	leftoverV := abs(fr.Height - h)
	shortFit := min(leftoverH, leftoverV)
	longFit := max(leftoverH, leftoverV)

	switch choice {
	case GuillotineBSSF:
		return shortFit, longFit
	case GuillotineBLSF:
		return longFit, shortFit
	case GuillotineWAF:
		return -areaFit, -shortFit
	case GuillotineWSSF:
		return -shortFit, -longFit
	case GuillotineWLSF:
		return -longFit, -shortFit
	default: // GuillotineBAF
		return areaFit, shortFit
	}
}

// vim: ts=4
