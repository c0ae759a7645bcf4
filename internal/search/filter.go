// Package search narrows in-memory lists of exercises and workouts for display.
package search

import "strings"

// AllCategories is the sentinel category filter that matches everything.
const AllCategories = "all"

// Searchable is implemented by items that can be filtered.
type Searchable interface {
	SearchName() string
	SearchDescription() string
	SearchCategory() string
}

// Filter returns the items whose name or description contains query
// (case-insensitive) and whose category equals category exactly.
// An empty query and an empty or "all" category match everything.
// The input slice is never modified and relative order is preserved.
func Filter[T Searchable](items []T, query, category string) []T {
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesText(item, q) && matchesCategory(item, category) {
			out = append(out, item)
		}
	}
	return out
}

func matchesText(item Searchable, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.SearchName()), lowerQuery) ||
		strings.Contains(strings.ToLower(item.SearchDescription()), lowerQuery)
}

func matchesCategory(item Searchable, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return item.SearchCategory() == category
}
