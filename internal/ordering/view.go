package ordering

import (
	"sort"
	"strings"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// SortedView returns a copy of seq ordered for display. Only SortCustom
// reflects the stored manual order; the other options never touch
// OrderIndex.
func SortedView(seq []*domain.Plant, opt domain.SortOption) []*domain.Plant {
	out := make([]*domain.Plant, len(seq))
	copy(out, seq)

	switch opt {
	case domain.SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].DisplayName(), out[j].DisplayName())
		})
	case domain.SortSpecies:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if !strings.EqualFold(a.SpeciesKey, b.SpeciesKey) {
				return lessFold(a.SpeciesKey, b.SpeciesKey)
			}
			return lessFold(a.DisplayName(), b.DisplayName())
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].OrderIndex < out[j].OrderIndex
		})
	}
	return out
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// RecentlyRetired returns a copy of plants with the most recently retired
// first. Plants without a retirement time go last.
func RecentlyRetired(plants []*domain.Plant) []*domain.Plant {
	out := make([]*domain.Plant, len(plants))
	copy(out, plants)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].RetiredAt, out[j].RetiredAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return out
}
