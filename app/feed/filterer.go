package feed

import (
	"slices"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run keeps the items of the given kind in their upstream order.
func (f *Filterer) Run(items []Item, kind Kind) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Kind == kind {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// Split groups items by kind. Unknown kinds are dropped.
func (f *Filterer) Split(items []Item) map[Kind][]Item {
	return map[Kind][]Item{
		KindNews:   f.Run(items, KindNews),
		KindUpdate: f.Run(items, KindUpdate),
	}
}

// SortNewestFirst returns a copy of items ordered by PublishedAt, newest
// first. Items with equal timestamps keep their upstream order, so the
// first of them is written last and read back as the newest entry.
func SortNewestFirst(items []Item) []Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return sorted
}
