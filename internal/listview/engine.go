// Package listview implements the list-filter-paginate cycle shared by every
// ticket screen. The previous front-end re-implemented this per screen; here
// it is a single engine parameterized by field accessors, with the exact
// matching semantics preserved.
package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/azauting/hospitalcm/internal/domain"
)

// FilterSpec describes the active filters of a screen. Empty strings and the
// "todos" sentinel mean no constraint for that field; zero times mean an
// unbounded date range.
type FilterSpec struct {
	Search   string
	Origin   string
	Event    string
	Priority string
	Status   string
	From     time.Time
	To       time.Time
}

// Accessors tells the engine how to read a screen's items. Nil accessors
// disable the corresponding filter for that screen.
type Accessors[T any] struct {
	SearchFields []func(T) string
	Origin       func(T) string
	Event        func(T) string
	Priority     func(T) string
	Status       func(T) string
	CreatedAt    func(T) time.Time
}

// Filter applies spec to items and returns the matching subset in order.
// All predicates are ANDed; text search is case-insensitive substring
// containment over the screen's searchable fields.
func Filter[T any](items []T, spec FilterSpec, fields Accessors[T]) []T {
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	from, to := dayBounds(spec.From, spec.To)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if search != "" && !matchesSearch(item, search, fields.SearchFields) {
			continue
		}
		if !matchesField(item, spec.Origin, fields.Origin) {
			continue
		}
		if !matchesField(item, spec.Event, fields.Event) {
			continue
		}
		if !matchesField(item, spec.Priority, fields.Priority) {
			continue
		}
		if !matchesField(item, spec.Status, fields.Status) {
			continue
		}
		if fields.CreatedAt != nil {
			created := fields.CreatedAt(item)
			if !from.IsZero() && created.Before(from) {
				continue
			}
			if !to.IsZero() && created.After(to) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// Paginate slices one page out of items. Pages are 1-based; totalPages is
// never below 1. Out-of-range pages yield an empty slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		return []T{}, totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// SortNewestFirst orders items by creation time, descending. Every screen
// uses this direction; the inconsistency between screens in earlier versions
// was resolved in favor of newest-first.
func SortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

func matchesSearch[T any](item T, search string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), search) {
			return true
		}
	}
	return false
}

func matchesField[T any](item T, want string, field func(T) string) bool {
	if field == nil || want == "" || strings.EqualFold(want, domain.FilterAll) {
		return true
	}
	return strings.EqualFold(field(item), want)
}

// dayBounds widens the range to whole days: from snaps to 00:00:00 and to
// extends to 23:59:59 of its day.
func dayBounds(from, to time.Time) (time.Time, time.Time) {
	if !from.IsZero() {
		from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	}
	if !to.IsZero() {
		to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	}
	return from, to
}
