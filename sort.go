package texpack

import (
	"cmp"
	"slices"
)

// sortItems orders the pre-processed items per the configured sort order. Every order is
// total: ties fall back to the key in ascending order, so the result never depends on the
// incoming order and layouts stay bit-reproducible.
func sortItems(items []prepared, order SortOrder) {
	var compare func(a, b *prepared) int
	switch order {
	case SortMaxSideDesc:
		compare = func(a, b *prepared) int {
			return cmp.Compare(b.content.MaxSide(), a.content.MaxSide())
		}
	case SortHeightDesc:
		compare = func(a, b *prepared) int {
			return cmp.Compare(b.content.Height, a.content.Height)
		}
	case SortWidthDesc:
		compare = func(a, b *prepared) int {
			return cmp.Compare(b.content.Width, a.content.Width)
		}
	case SortPerimeterDesc:
		compare = func(a, b *prepared) int {
			return cmp.Compare(b.content.Perimeter(), a.content.Perimeter())
		}
	case SortKeyAsc:
		compare = func(a, b *prepared) int { return 0 }
	default: // SortAreaDesc
		compare = func(a, b *prepared) int {
			return cmp.Compare(b.content.Area(), a.content.Area())
		}
	}

	slices.SortStableFunc(items, func(a, b prepared) int {
		if c := compare(&a, &b); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
}

// vim: ts=4
