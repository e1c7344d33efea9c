package listview

// Ellipsis is the sentinel emitted by PageNumbers where pages are elided.
const Ellipsis = -1

// PageNumbers produces the compact page list shown under a table: all pages
// when there are at most seven, otherwise a sliding window around the
// current page plus the first and last page.
func PageNumbers(total, current int) []int {
	if total < 1 {
		total = 1
	}

	if total <= 7 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	if current <= 4 {
		return []int{1, 2, 3, 4, 5, Ellipsis, total}
	}

	if current >= total-3 {
		return []int{1, Ellipsis, total - 4, total - 3, total - 2, total - 1, total}
	}

	return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, total}
}
