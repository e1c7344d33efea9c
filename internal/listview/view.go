package listview

// View binds a backing collection, a FilterSpec and page state into one
// deterministic visible page. It owns the page-reset invariants so screens
// cannot get them wrong individually.
type View[T any] struct {
	items    []T
	spec     FilterSpec
	fields   Accessors[T]
	page     int
	pageSize int
	wasEmpty bool
}

// DefaultPageSize matches the screens' initial page length.
const DefaultPageSize = 10

// NewView builds a view over the given accessors.
func NewView[T any](fields Accessors[T]) *View[T] {
	return &View[T]{
		fields:   fields,
		page:     1,
		pageSize: DefaultPageSize,
		wasEmpty: true,
	}
}

// SetItems replaces the backing collection after a reload, sorted
// newest-first when the screen exposes a creation time.
func (v *View[T]) SetItems(items []T) {
	if v.fields.CreatedAt != nil {
		SortNewestFirst(items, v.fields.CreatedAt)
	}
	v.items = items
	v.clampPage()
}

// SetFilter replaces the filter and resets to the first page.
func (v *View[T]) SetFilter(spec FilterSpec) {
	v.spec = spec
	v.page = 1
}

// ResetFilter clears every filter field and returns to the first page.
func (v *View[T]) ResetFilter() {
	v.SetFilter(FilterSpec{})
}

// Filter returns the active filter.
func (v *View[T]) Filter() FilterSpec {
	return v.spec
}

// SetPageSize changes the page length and resets to the first page.
func (v *View[T]) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	v.pageSize = size
	v.page = 1
}

// Page returns the current 1-based page.
func (v *View[T]) Page() int {
	return v.page
}

// PageSize returns the current page length.
func (v *View[T]) PageSize() int {
	return v.pageSize
}

// GoTo moves to the given page when it is within range. The ellipsis
// sentinel from PageNumbers is ignored.
func (v *View[T]) GoTo(page int) {
	if page == Ellipsis {
		return
	}
	_, total := v.VisiblePage()
	if page >= 1 && page <= total {
		v.page = page
	}
}

// Next advances one page when possible.
func (v *View[T]) Next() {
	v.GoTo(v.page + 1)
}

// Prev moves back one page when possible.
func (v *View[T]) Prev() {
	if v.page > 1 {
		v.page--
	}
}

// VisiblePage computes the filtered, paginated slice and total page count.
func (v *View[T]) VisiblePage() ([]T, int) {
	filtered := Filter(v.items, v.spec, v.fields)

	// Coming back from an empty result set restarts at page one.
	if v.wasEmpty && len(filtered) > 0 {
		v.page = 1
	}
	v.wasEmpty = len(filtered) == 0

	slice, total := Paginate(filtered, v.page, v.pageSize)
	return slice, total
}

// FilteredCount returns the number of items matching the active filter.
func (v *View[T]) FilteredCount() int {
	return len(Filter(v.items, v.spec, v.fields))
}

func (v *View[T]) clampPage() {
	_, total := Paginate(Filter(v.items, v.spec, v.fields), 1, v.pageSize)
	if v.page > total {
		v.page = total
	}
	if v.page < 1 {
		v.page = 1
	}
}
