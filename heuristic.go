package texpack

import "strings"

// AlgorithmFamily selects the placement algorithm used for packing.
type AlgorithmFamily int

const (
	// Skyline maintains a piecewise-constant upper envelope of occupied heights. It provides a
	// good balance between speed and efficiency, making it a solid general-purpose default.
	Skyline AlgorithmFamily = iota
	// MaxRects maintains a list of maximal free rectangles. This generally results in the most
	// efficiently packed results, at a higher CPU cost.
	MaxRects
	// Guillotine maintains disjoint free rectangles produced by straight cuts. It is typically
	// the fastest, but more sensitive to choosing the correct choice/split rules for specific
	// inputs.
	Guillotine
	// Auto evaluates a portfolio of candidate configurations and keeps the best result,
	// comparing page count first, then total page area.
	Auto
)

// String returns the string representation of the algorithm family.
func (f AlgorithmFamily) String() string {
	switch f {
	case Skyline:
		return "skyline"
	case MaxRects:
		return "maxrects"
	case Guillotine:
		return "guillotine"
	case Auto:
		return "auto"
	}
	return "invalid"
}

// ParseAlgorithmFamily converts a string into an AlgorithmFamily, reporting whether the name
// was recognized. Matching is case-insensitive.
func ParseAlgorithmFamily(s string) (AlgorithmFamily, bool) {
	switch strings.ToLower(s) {
	case "skyline":
		return Skyline, true
	case "maxrects":
		return MaxRects, true
	case "guillotine":
		return Guillotine, true
	case "auto":
		return Auto, true
	}
	return Skyline, false
}

// SkylineHeuristic selects the level-choosing rule of the Skyline algorithm.
type SkylineHeuristic int

const (
	// SkylineBottomLeft does the Tetris placement: the candidate with the lowest resting
	// position wins, ties broken by the narrowest segment.
	SkylineBottomLeft SkylineHeuristic = iota
	// SkylineMinWaste scores candidates by the area wasted beneath the placed rectangle and
	// picks the minimum, ties broken by the lowest resting position. Most effective combined
	// with the waste map.
	SkylineMinWaste
)

// String returns the string representation of the heuristic.
func (h SkylineHeuristic) String() string {
	if h == SkylineMinWaste {
		return "minwaste"
	}
	return "bottomleft"
}

// ParseSkylineHeuristic converts a string into a SkylineHeuristic, reporting whether the name
// was recognized. Abbreviated forms ("bl", "mw") are accepted.
func ParseSkylineHeuristic(s string) (SkylineHeuristic, bool) {
	switch strings.ToLower(s) {
	case "bl", "bottomleft":
		return SkylineBottomLeft, true
	case "mw", "minwaste":
		return SkylineMinWaste, true
	}
	return SkylineBottomLeft, false
}

// MaxRectsHeuristic selects the free-rectangle scoring rule of the MaxRects algorithm.
type MaxRectsHeuristic int

const (
	// MaxRectsBAF (BestAreaFit) positions the rectangle into the smallest free rectangle into
	// which it fits.
	MaxRectsBAF MaxRectsHeuristic = iota
	// MaxRectsBSSF (BestShortSideFit) positions the rectangle against the short side of the
	// free rectangle into which it fits best.
	MaxRectsBSSF
	// MaxRectsBLSF (BestLongSideFit) positions the rectangle against the long side of the free
	// rectangle into which it fits best.
	MaxRectsBLSF
	// MaxRectsBL (BottomLeft) does the Tetris placement.
	MaxRectsBL
	// MaxRectsCP (ContactPoint) chooses the placement where the rectangle touches the page
	// border and other rectangles as much as possible.
	MaxRectsCP
)

// String returns the string representation of the heuristic.
func (h MaxRectsHeuristic) String() string {
	switch h {
	case MaxRectsBSSF:
		return "bestshortsidefit"
	case MaxRectsBLSF:
		return "bestlongsidefit"
	case MaxRectsBL:
		return "bottomleft"
	case MaxRectsCP:
		return "contactpoint"
	}
	return "bestareafit"
}

// ParseMaxRectsHeuristic converts a string into a MaxRectsHeuristic, reporting whether the
// name was recognized. Abbreviated forms ("baf", "bssf", ...) are accepted.
func ParseMaxRectsHeuristic(s string) (MaxRectsHeuristic, bool) {
	switch strings.ToLower(s) {
	case "baf", "bestareafit":
		return MaxRectsBAF, true
	case "bssf", "bestshortsidefit":
		return MaxRectsBSSF, true
	case "blsf", "bestlongsidefit":
		return MaxRectsBLSF, true
	case "bl", "bottomleft":
		return MaxRectsBL, true
	case "cp", "contactpoint":
		return MaxRectsCP, true
	}
	return MaxRectsBAF, false
}

// GuillotineChoice selects which free rectangle the Guillotine algorithm consumes.
type GuillotineChoice int

const (
	// GuillotineBAF (BestAreaFit) consumes the smallest free rectangle that fits.
	GuillotineBAF GuillotineChoice = iota
	// GuillotineBSSF (BestShortSideFit) consumes the rectangle with the smallest leftover on
	// its short side.
	GuillotineBSSF
	// GuillotineBLSF (BestLongSideFit) consumes the rectangle with the smallest leftover on
	// its long side.
	GuillotineBLSF
	// GuillotineWAF (WorstAreaFit) is the opposite of BestAreaFit. Contrary to its name, this
	// is not always worse with specific inputs.
	GuillotineWAF
	// GuillotineWSSF (WorstShortSideFit) is the opposite of BestShortSideFit.
	GuillotineWSSF
	// GuillotineWLSF (WorstLongSideFit) is the opposite of BestLongSideFit.
	GuillotineWLSF
)

// String returns the string representation of the choice rule.
func (c GuillotineChoice) String() string {
	switch c {
	case GuillotineBSSF:
		return "bestshortsidefit"
	case GuillotineBLSF:
		return "bestlongsidefit"
	case GuillotineWAF:
		return "worstareafit"
	case GuillotineWSSF:
		return "worstshortsidefit"
	case GuillotineWLSF:
		return "worstlongsidefit"
	}
	return "bestareafit"
}

// ParseGuillotineChoice converts a string into a GuillotineChoice, reporting whether the name
// was recognized.
func ParseGuillotineChoice(s string) (GuillotineChoice, bool) {
	switch strings.ToLower(s) {
	case "baf", "bestareafit":
		return GuillotineBAF, true
	case "bssf", "bestshortsidefit":
		return GuillotineBSSF, true
	case "blsf", "bestlongsidefit":
		return GuillotineBLSF, true
	case "waf", "worstareafit":
		return GuillotineWAF, true
	case "wssf", "worstshortsidefit":
		return GuillotineWSSF, true
	case "wlsf", "worstlongsidefit":
		return GuillotineWLSF, true
	}
	return GuillotineBAF, false
}

// GuillotineSplit selects the axis of the guillotine cut performed after a placement.
type GuillotineSplit int

const (
	// SplitShorterLeftoverAxis (SLAS) cuts along the axis with the smaller leftover dimension.
	SplitShorterLeftoverAxis GuillotineSplit = iota
	// SplitLongerLeftoverAxis (LLAS) cuts along the axis with the larger leftover dimension.
	SplitLongerLeftoverAxis
	// SplitMinimizeArea (MINAS) tries to make a single big rectangle at the expense of making
	// the other small.
	SplitMinimizeArea
	// SplitMaximizeArea (MAXAS) tries to make both remaining rectangles as even-sized as
	// possible.
	SplitMaximizeArea
	// SplitShorterAxis (SAS) cuts along the shorter total axis of the consumed rectangle.
	SplitShorterAxis
	// SplitLongerAxis (LAS) cuts along the longer total axis of the consumed rectangle.
	SplitLongerAxis
)

// String returns the string representation of the split rule.
func (g GuillotineSplit) String() string {
	switch g {
	case SplitLongerLeftoverAxis:
		return "splitlongerleftoveraxis"
	case SplitMinimizeArea:
		return "splitminimizearea"
	case SplitMaximizeArea:
		return "splitmaximizearea"
	case SplitShorterAxis:
		return "splitshorteraxis"
	case SplitLongerAxis:
		return "splitlongeraxis"
	}
	return "splitshorterleftoveraxis"
}

// ParseGuillotineSplit converts a string into a GuillotineSplit, reporting whether the name
// was recognized.
func ParseGuillotineSplit(s string) (GuillotineSplit, bool) {
	switch strings.ToLower(s) {
	case "slas", "splitshorterleftoveraxis":
		return SplitShorterLeftoverAxis, true
	case "llas", "splitlongerleftoveraxis":
		return SplitLongerLeftoverAxis, true
	case "minas", "splitminimizearea":
		return SplitMinimizeArea, true
	case "maxas", "splitmaximizearea":
		return SplitMaximizeArea, true
	case "sas", "splitshorteraxis":
		return SplitShorterAxis, true
	case "las", "splitlongeraxis":
		return SplitLongerAxis, true
	}
	return SplitShorterLeftoverAxis, false
}

// AutoMode selects the size of the Auto portfolio.
type AutoMode int

const (
	// AutoQuality evaluates the full candidate set, including every MaxRects heuristic and the
	// Skyline waste map.
	AutoQuality AutoMode = iota
	// AutoFast evaluates a small fixed candidate list.
	AutoFast
)

// String returns the string representation of the mode.
func (m AutoMode) String() string {
	if m == AutoFast {
		return "fast"
	}
	return "quality"
}

// ParseAutoMode converts a string into an AutoMode, reporting whether the name was recognized.
func ParseAutoMode(s string) (AutoMode, bool) {
	switch strings.ToLower(s) {
	case "fast":
		return AutoFast, true
	case "quality":
		return AutoQuality, true
	}
	return AutoQuality, false
}

// SortOrder selects how items are ordered before placement. All orders are total: ties are
// broken by key in ascending order, which keeps results bit-reproducible.
type SortOrder int

const (
	// SortAreaDesc orders items by area, greatest to least.
	SortAreaDesc SortOrder = iota
	// SortMaxSideDesc orders items by their longest side, greatest to least.
	SortMaxSideDesc
	// SortHeightDesc orders items by height, greatest to least.
	SortHeightDesc
	// SortWidthDesc orders items by width, greatest to least.
	SortWidthDesc
	// SortPerimeterDesc orders items by perimeter, greatest to least.
	SortPerimeterDesc
	// SortKeyAsc orders items by key, ascending.
	SortKeyAsc
)

// String returns the string representation of the sort order.
func (o SortOrder) String() string {
	switch o {
	case SortMaxSideDesc:
		return "max_side_desc"
	case SortHeightDesc:
		return "height_desc"
	case SortWidthDesc:
		return "width_desc"
	case SortPerimeterDesc:
		return "perimeter_desc"
	case SortKeyAsc:
		return "key_asc"
	}
	return "area_desc"
}

// ParseSortOrder converts a string into a SortOrder, reporting whether the name was
// recognized.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(s) {
	case "area_desc":
		return SortAreaDesc, true
	case "max_side_desc":
		return SortMaxSideDesc, true
	case "height_desc":
		return SortHeightDesc, true
	case "width_desc":
		return SortWidthDesc, true
	case "perimeter_desc":
		return SortPerimeterDesc, true
	case "key_asc":
		return SortKeyAsc, true
	}
	return SortAreaDesc, false
}

// TransparentPolicy controls what happens to an input that is fully transparent after
// trimming.
type TransparentPolicy int

const (
	// TransparentSkip drops the item from the output with a warning.
	TransparentSkip TransparentPolicy = iota
	// TransparentKeep packs the item untrimmed at its full size.
	TransparentKeep
	// TransparentOneByOne packs a 1x1 stand-in so the key remains addressable.
	TransparentOneByOne
	// TransparentStrict fails the pack.
	TransparentStrict
)

// String returns the string representation of the policy.
func (p TransparentPolicy) String() string {
	switch p {
	case TransparentKeep:
		return "keep"
	case TransparentOneByOne:
		return "one_by_one"
	case TransparentStrict:
		return "strict"
	}
	return "skip"
}

// vim: ts=4
