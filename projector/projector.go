// Package projector derives the visible, ordered deal list from store state
// and the user's filter criteria.
package projector

import (
	"sort"
	"strings"

	"dealfeed/types"
)

// AllEventTypes is the selector value that disables the type filter
const AllEventTypes = "All"

// Criteria is the user-owned filter state
type Criteria struct {
	Query     string
	EventType string
}

// Selectors lists the event type selector values in display order
func Selectors() []string {
	out := []string{AllEventTypes}
	for _, et := range types.KnownEventTypes {
		out = append(out, string(et))
	}
	return out
}

// Project filters items by event type, then by text, then orders them by
// score descending. Items with equal scores keep their incoming order.
// items is not modified.
func Project(items []types.DealItem, c Criteria) []types.DealItem {
	query := strings.ToLower(c.Query)
	out := make([]types.DealItem, 0, len(items))
	for _, it := range items {
		if !matchesType(it, c.EventType) {
			continue
		}
		if query != "" && !strings.Contains(searchText(it), query) {
			continue
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func matchesType(it types.DealItem, selector string) bool {
	return selector == AllEventTypes || string(it.EventType) == selector
}

// searchText joins title and summary so a query may span the boundary
func searchText(it types.DealItem) string {
	return strings.ToLower(it.Title + " " + it.Summary)
}
