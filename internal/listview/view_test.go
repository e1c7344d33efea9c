package listview

import (
	"testing"
	"time"

	"github.com/azauting/hospitalcm/internal/domain"
)

func manyTickets(n int) []domain.TicketSummary {
	items := make([]domain.TicketSummary, n)
	for i := range items {
		items[i] = domain.TicketSummary{
			TicketID:  i + 1,
			Subject:   "ticket",
			Status:    "abierto",
			CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local).Add(time.Duration(i) * time.Hour),
		}
	}
	return items
}

func TestViewSortsNewestFirstOnSetItems(t *testing.T) {
	view := NewView(TicketAccessors())
	view.SetItems(manyTickets(5))

	rows, _ := view.VisiblePage()
	if rows[0].TicketID != 5 {
		t.Fatalf("first row should be the newest ticket, got %d", rows[0].TicketID)
	}
}

func TestViewFilterChangeResetsPage(t *testing.T) {
	view := NewView(TicketAccessors())
	view.SetItems(manyTickets(30))

	view.GoTo(3)
	if view.Page() != 3 {
		t.Fatalf("GoTo(3): page is %d", view.Page())
	}

	view.SetFilter(FilterSpec{Status: "abierto"})
	if view.Page() != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", view.Page())
	}
}

func TestViewPageSizeChangeResetsPage(t *testing.T) {
	view := NewView(TicketAccessors())
	view.SetItems(manyTickets(30))
	view.GoTo(2)

	view.SetPageSize(5)
	if view.Page() != 1 {
		t.Fatalf("page size change must reset to page 1, got %d", view.Page())
	}
	rows, total := view.VisiblePage()
	if len(rows) != 5 || total != 6 {
		t.Fatalf("page size 5 over 30 items: got %d rows, %d pages", len(rows), total)
	}
}

func TestViewIgnoresEllipsisAndOutOfRange(t *testing.T) {
	view := NewView(TicketAccessors())
	view.SetItems(manyTickets(30))

	view.GoTo(Ellipsis)
	if view.Page() != 1 {
		t.Fatalf("ellipsis must be ignored, page is %d", view.Page())
	}
	view.GoTo(99)
	if view.Page() != 1 {
		t.Fatalf("out-of-range page must be ignored, page is %d", view.Page())
	}
}

func TestViewRecoversFromEmptyResult(t *testing.T) {
	view := NewView(TicketAccessors())
	view.SetItems(manyTickets(30))
	view.GoTo(3)

	view.SetFilter(FilterSpec{Search: "no-match-at-all"})
	rows, _ := view.VisiblePage()
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}

	view.ResetFilter()
	rows, _ = view.VisiblePage()
	if view.Page() != 1 {
		t.Fatalf("recovery from empty must land on page 1, got %d", view.Page())
	}
	if len(rows) != DefaultPageSize {
		t.Fatalf("expected a full first page, got %d rows", len(rows))
	}
}

func TestViewNextPrevStayInRange(t *testing.T) {
	view := NewView(TicketAccessors())
	view.SetItems(manyTickets(25))

	view.Prev()
	if view.Page() != 1 {
		t.Fatalf("Prev on first page moved to %d", view.Page())
	}
	view.Next()
	view.Next()
	view.Next() // page 3 is the last with 25 items at size 10
	if view.Page() != 3 {
		t.Fatalf("Next clamped wrong: page %d", view.Page())
	}
}
