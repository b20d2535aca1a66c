package channel

import (
	"cmp"
	"slices"
)

// AllCategories is the filter sentinel that matches every group.
const AllCategories = "all"

// CategoryCount is the number of channels in one group.
type CategoryCount struct {
	Name  string
	Count int
}

// Categories returns the distinct groups of chs sorted by name, preceded by
// the AllCategories sentinel.
func Categories(chs []Channel) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, ch := range chs {
		if _, ok := seen[ch.GroupTitle()]; ok {
			continue
		}
		seen[ch.GroupTitle()] = struct{}{}
		names = append(names, ch.GroupTitle())
	}
	slices.Sort(names)
	return append([]string{AllCategories}, names...)
}

// CountByCategory returns per-group channel counts, largest group first.
// Groups with the same count are ordered by name.
func CountByCategory(chs []Channel) []CategoryCount {
	counts := make(map[string]int)
	for _, ch := range chs {
		counts[ch.GroupTitle()]++
	}

	result := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, CategoryCount{Name: name, Count: n})
	}
	slices.SortFunc(result, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}
