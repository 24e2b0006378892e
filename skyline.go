package texpack

import (
	"math"
	"slices"
)

type skylineNode struct {
	X, Y, Width int
}

// skylinePack places slots by maintaining the upper envelope of occupied heights as a
// monotonic list of horizontal segments with disjoint x-ranges covering the border width.
type skylinePack struct {
	border        Rect
	heuristic     SkylineHeuristic
	allowRotation bool
	skyline       []skylineNode
	waste         *wasteMap
}

func newSkyline(cfg *PackerConfig) *skylinePack {
	border := cfg.usable()
	p := &skylinePack{
		border:        border,
		heuristic:     cfg.SkylineHeuristic,
		allowRotation: cfg.AllowRotation,
	}
	p.skyline = append(p.skyline, skylineNode{X: border.X, Y: border.Y, Width: border.Width})
	if cfg.UseWasteMap {
		p.waste = &wasteMap{allowRotation: cfg.AllowRotation, choice: GuillotineBAF}
	}
	return p
}

func (p *skylinePack) canPack(w, h int) bool {
	if p.waste != nil && p.waste.canFit(w, h) {
		return true
	}
	_, _, ok := p.findSkyline(w, h)
	return ok
}

func (p *skylinePack) pack(w, h int) (Rect, bool, bool) {
	// Waste pockets are preferred over raising the skyline.
	if p.waste != nil {
		if slot, rotated, ok := p.waste.tryPack(w, h); ok {
			return slot, rotated, true
		}
	}
	if i, slot, ok := p.findSkyline(w, h); ok {
		// Pockets must be harvested before the split consumes the covered segments.
		p.addWasteAreas(i, &slot)
		p.split(i, &slot)
		p.mergeSkylines()
		return slot, slot.Width != w, true
	}
	return Rect{}, false, false
}

// canPut computes the resting position for a (w, h) slot starting at segment index: the
// maximum y of all segments covered by [x, x+w). Fails when the slot would leave the border.
func (p *skylinePack) canPut(index, w, h int) (Rect, bool) {
	rect := NewRect(p.skyline[index].X, 0, w, h)
	widthLeft := w
	for i := index; ; i++ {
		if i >= len(p.skyline) {
			return Rect{}, false
		}
		rect.Y = max(rect.Y, p.skyline[i].Y)
		if !p.border.ContainsRect(rect) {
			return Rect{}, false
		}
		if p.skyline[i].Width >= widthLeft {
			return rect, true
		}
		widthLeft -= p.skyline[i].Width
	}
}

func (p *skylinePack) findSkyline(w, h int) (int, Rect, bool) {
	if p.heuristic == SkylineMinWaste {
		return p.findMinWaste(w, h)
	}
	return p.findBottomLeft(w, h)
}

func (p *skylinePack) findBottomLeft(w, h int) (int, Rect, bool) {
	bestBottom := math.MaxInt
	bestWidth := math.MaxInt
	bestIndex := -1
	var bestRect Rect

	for i := range p.skyline {
		if r, ok := p.canPut(i, w, h); ok {
			if r.Bottom() < bestBottom || (r.Bottom() == bestBottom && p.skyline[i].Width < bestWidth) {
				bestBottom = r.Bottom()
				bestWidth = p.skyline[i].Width
				bestIndex = i
				bestRect = r
			}
		}
		if p.allowRotation {
			if r, ok := p.canPut(i, h, w); ok {
				if r.Bottom() < bestBottom || (r.Bottom() == bestBottom && p.skyline[i].Width < bestWidth) {
					bestBottom = r.Bottom()
					bestWidth = p.skyline[i].Width
					bestIndex = i
					bestRect = r
				}
			}
		}
	}
	return bestIndex, bestRect, bestIndex >= 0
}

// wastedAreaFor totals the area trapped between the resting position and the lower segments
// covered by the slot.
func (p *skylinePack) wastedAreaFor(start int, r *Rect) int {
	area := 0
	widthLeft := r.Width
	for i := start; widthLeft > 0 && i < len(p.skyline); i++ {
		seg := &p.skyline[i]
		useW := min(widthLeft, seg.Width)
		if r.Y > seg.Y {
			area += (r.Y - seg.Y) * useW
		}
		widthLeft -= useW
	}
	return area
}

func (p *skylinePack) findMinWaste(w, h int) (int, Rect, bool) {
	bestWaste := math.MaxInt
	bestBottom := math.MaxInt
	bestIndex := -1
	var bestRect Rect

	for i := range p.skyline {
		if r, ok := p.canPut(i, w, h); ok {
			waste := p.wastedAreaFor(i, &r)
			if waste < bestWaste || (waste == bestWaste && r.Bottom() < bestBottom) {
				bestWaste = waste
				bestBottom = r.Bottom()
				bestIndex = i
				bestRect = r
			}
		}
		if p.allowRotation {
			if r, ok := p.canPut(i, h, w); ok {
				waste := p.wastedAreaFor(i, &r)
				if waste < bestWaste || (waste == bestWaste && r.Bottom() < bestBottom) {
					bestWaste = waste
					bestBottom = r.Bottom()
					bestIndex = i
					bestRect = r
				}
			}
		}
	}
	return bestIndex, bestRect, bestIndex >= 0
}

// split raises the skyline with a new segment at the placed rectangle's top, shrinking or
// consuming the segments it covers.
func (p *skylinePack) split(index int, rect *Rect) {
	node := skylineNode{X: rect.X, Y: rect.Bottom(), Width: rect.Width}
	p.skyline = slices.Insert(p.skyline, index, node)

	for i := index + 1; i < len(p.skyline); i++ {
		prev := p.skyline[i-1]
		if p.skyline[i].X < prev.X+prev.Width {
			shrink := prev.X + prev.Width - p.skyline[i].X
			p.skyline[i].X += shrink
			p.skyline[i].Width -= shrink
			if p.skyline[i].Width <= 0 {
				p.skyline = slices.Delete(p.skyline, i, i+1)
				i--
			} else {
				break
			}
		} else {
			break
		}
	}
}

func (p *skylinePack) mergeSkylines() {
	for i := 0; i < len(p.skyline)-1; i++ {
		if p.skyline[i].Y == p.skyline[i+1].Y {
			p.skyline[i].Width += p.skyline[i+1].Width
			p.skyline = slices.Delete(p.skyline, i+1, i+2)
			i--
		}
	}
}

// addWasteAreas records the vertical gaps between the covered segments and the resting
// position of the placed rectangle into the waste map.
func (p *skylinePack) addWasteAreas(index int, rect *Rect) {
	if p.waste == nil {
		return
	}
	rectLeft := rect.X
	rectRight := rect.Right()
	for i := index; i < len(p.skyline) && p.skyline[i].X < rectRight; i++ {
		seg := p.skyline[i]
		if seg.X >= rectRight || seg.X+seg.Width <= rectLeft {
			break
		}
		leftSide := max(seg.X, rectLeft)
		rightSide := min(seg.X+seg.Width, rectRight)
		if seg.Y < rect.Y {
			p.waste.addArea(NewRect(leftSide, seg.Y, rightSide-leftSide, rect.Y-seg.Y))
		}
	}
}

// wasteMap is a secondary free-rectangle list covering pockets beneath raised skyline
// segments. Rectangles stay disjoint: placements subtract, additions prune and merge.
type wasteMap struct {
	free          []Rect
	allowRotation bool
	choice        GuillotineChoice
}

func (m *wasteMap) canFit(w, h int) bool {
	_, _, _, ok := m.choose(w, h)
	return ok
}

func (m *wasteMap) tryPack(w, h int) (Rect, bool, bool) {
	if idx, r, rotated, ok := m.choose(w, h); ok {
		m.place(idx, &r)
		return r, rotated, true
	}
	return Rect{}, false, false
}

func (m *wasteMap) choose(w, h int) (int, Rect, bool, bool) {
	bestIdx := -1
	bestS1 := math.MaxInt
	bestS2 := math.MaxInt
	var best Rect
	bestRot := false

	for i, fr := range m.free {
		if fr.Width >= w && fr.Height >= h {
			s1, s2 := scoreChoice(m.choice, &fr, w, h)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = NewRect(fr.X, fr.Y, w, h)
				bestRot = false
			}
		}
		if m.allowRotation && fr.Width >= h && fr.Height >= w {
			s1, s2 := scoreChoice(m.choice, &fr, h, w)
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestS1, bestS2 = s1, s2
				bestIdx = i
				best = NewRect(fr.X, fr.Y, h, w)
				bestRot = true
			}
		}
	}
	return bestIdx, best, bestRot, bestIdx >= 0
}

func (m *wasteMap) place(idx int, node *Rect) {
	m.free = slices.Delete(m.free, idx, idx+1)
	m.free = subtractFree(m.free, node)
	m.free = pruneFreeList(m.free)
	m.free = mergeFreeList(m.free)
}

func (m *wasteMap) addArea(r Rect) {
	if r.IsEmpty() {
		return
	}
	m.free = append(m.free, r)
	m.free = pruneFreeList(m.free)
	m.free = mergeFreeList(m.free)
}

// vim: ts=4
