package texpack

// packAlgorithm is a stateful single-page placer. Implementations place reserved slots (the
// content dimensions expanded by padding and extrusion) inside the page border and must keep
// placements disjoint. Failure to fit is a normal control signal, not an error: the
// multipage driver reacts to it by spilling to a new page.
type packAlgorithm interface {
	// canPack reports whether a slot of the given size could currently be placed, in either
	// permitted orientation, without mutating state.
	canPack(w, h int) bool
	// pack places a slot of the given size, returning the reserved rectangle, whether the
	// placement is rotated, and whether a position was found.
	pack(w, h int) (Rect, bool, bool)
}

// newAlgorithm creates the engine selected by the configuration. The set of algorithms is
// closed; Auto is resolved by the portfolio before an engine is constructed.
func newAlgorithm(cfg *PackerConfig) packAlgorithm {
	switch cfg.Family {
	case MaxRects:
		return newMaxRects(cfg)
	case Guillotine:
		return newGuillotine(cfg)
	default:
		return newSkyline(cfg)
	}
}

// subtractFree removes the area of node from every rectangle in free, replacing intersected
// rectangles with up to four remainder strips. The result is not pruned.
func subtractFree(free []Rect, node *Rect) []Rect {
	out := make([]Rect, 0, len(free)+2)
	for _, fr := range free {
		if !fr.Intersects(*node) {
			out = append(out, fr)
			continue
		}

		ix1 := max(fr.X, node.X)
		iy1 := max(fr.Y, node.Y)
		ix2 := min(fr.Right(), node.Right())
		iy2 := min(fr.Bottom(), node.Bottom())

		// above
		if iy1 > fr.Y {
			out = append(out, NewRect(fr.X, fr.Y, fr.Width, iy1-fr.Y))
		}
		// below
		if iy2 < fr.Bottom() {
			out = append(out, NewRect(fr.X, iy2, fr.Width, fr.Bottom()-iy2))
		}
		// left strip within the overlap band
		if ix1 > fr.X && iy2 > iy1 {
			out = append(out, NewRect(fr.X, iy1, ix1-fr.X, iy2-iy1))
		}
		// right strip within the overlap band
		if ix2 < fr.Right() && iy2 > iy1 {
			out = append(out, NewRect(ix2, iy1, fr.Right()-ix2, iy2-iy1))
		}
	}
	return out
}

// pruneFreeList removes rectangles that are contained within another rectangle of the list.
func pruneFreeList(free []Rect) []Rect {
	for i := 0; i < len(free); i++ {
		removeI := false
		for j := i + 1; j < len(free); {
			if free[j].ContainsRect(free[i]) {
				removeI = true
				break
			}
			if free[i].ContainsRect(free[j]) {
				free = append(free[:j], free[j+1:]...)
				continue
			}
			j++
		}
		if removeI {
			free = append(free[:i], free[i+1:]...)
			i--
		}
	}
	return free
}

// mergeFreeList joins co-linear adjacent rectangles to reduce fragmentation. Pairs are
// re-scanned until no merge applies, so chains of neighbors collapse fully.
func mergeFreeList(free []Rect) []Rect {
	merged := true
	for merged {
		merged = false
	scan:
		for i := 0; i < len(free); i++ {
			for j := i + 1; j < len(free); j++ {
				a, b := free[i], free[j]
				// horizontal merge (same y, height, contiguous in x)
				if a.Y == b.Y && a.Height == b.Height {
					if a.Right() == b.X {
						free[i] = NewRect(a.X, a.Y, a.Width+b.Width, a.Height)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break scan
					} else if b.Right() == a.X {
						free[i] = NewRect(b.X, a.Y, a.Width+b.Width, a.Height)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break scan
					}
				}
				// vertical merge (same x, width, contiguous in y)
				if a.X == b.X && a.Width == b.Width {
					if a.Bottom() == b.Y {
						free[i] = NewRect(a.X, a.Y, a.Width, a.Height+b.Height)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break scan
					} else if b.Bottom() == a.Y {
						free[i] = NewRect(a.X, b.Y, a.Width, a.Height+b.Height)
						free = append(free[:j], free[j+1:]...)
						merged = true
						break scan
					}
				}
			}
		}
	}
	return free
}

// vim: ts=4
