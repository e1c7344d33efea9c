package listview

import (
	"testing"
	"time"

	"github.com/azauting/hospitalcm/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 10, 30, 0, 0, time.Local)
}

func sampleTickets() []domain.TicketSummary {
	return []domain.TicketSummary{
		{TicketID: 1, Subject: "Impresora sin tóner", RequesterName: "Marcela Fuentes", Status: "abierto", Priority: "baja", Origin: "web", Event: "falla de equipo", CreatedAt: day(1)},
		{TicketID: 2, Subject: "Caída de red en urgencias", RequesterName: "Pedro Soto", Status: "en proceso", Priority: "alta", Origin: "telefono", Event: "falla de red", CreatedAt: day(3)},
		{TicketID: 3, Subject: "Acceso a ficha clínica", RequesterName: "Marcela Fuentes", Status: "revisado", Priority: "media", Origin: "web", Event: "solicitud de acceso", CreatedAt: day(5)},
		{TicketID: 4, Subject: "Teclado dañado", RequesterName: "Ana Riquelme", Status: "cerrado", Priority: "baja", Origin: "presencial", Event: "falla de equipo", CreatedAt: day(7)},
	}
}

func TestFilterZeroValueKeepsEverything(t *testing.T) {
	items := sampleTickets()
	got := Filter(items, FilterSpec{}, TicketAccessors())
	if len(got) != len(items) {
		t.Fatalf("empty filter dropped items: got %d, want %d", len(got), len(items))
	}
	for i := range got {
		if got[i].TicketID != items[i].TicketID {
			t.Fatalf("order changed at %d: got %d, want %d", i, got[i].TicketID, items[i].TicketID)
		}
	}
}

func TestFilterTodosSentinelMeansNoConstraint(t *testing.T) {
	spec := FilterSpec{Origin: "todos", Priority: "Todos", Status: domain.FilterAll}
	got := Filter(sampleTickets(), spec, TicketAccessors())
	if len(got) != 4 {
		t.Fatalf("sentinel filtered items: got %d, want 4", len(got))
	}
}

func TestFilterSearchMatchesAnyField(t *testing.T) {
	fields := TicketAccessors()

	byID := Filter(sampleTickets(), FilterSpec{Search: "3"}, fields)
	if len(byID) != 1 || byID[0].TicketID != 3 {
		t.Fatalf("search by id: got %v", byID)
	}

	bySubject := Filter(sampleTickets(), FilterSpec{Search: "RED"}, fields)
	if len(bySubject) != 1 || bySubject[0].TicketID != 2 {
		t.Fatalf("case-insensitive subject search: got %v", bySubject)
	}

	byRequester := Filter(sampleTickets(), FilterSpec{Search: "marcela"}, fields)
	if len(byRequester) != 2 {
		t.Fatalf("search by requester: got %d matches, want 2", len(byRequester))
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	spec := FilterSpec{Origin: "web", Priority: "baja"}
	got := Filter(sampleTickets(), spec, TicketAccessors())
	if len(got) != 1 || got[0].TicketID != 1 {
		t.Fatalf("ANDed predicates: got %v", got)
	}
}

func TestFilterDateRangeCoversWholeDays(t *testing.T) {
	fields := TicketAccessors()

	spec := FilterSpec{From: day(3), To: day(5)}
	got := Filter(sampleTickets(), spec, fields)
	if len(got) != 2 {
		t.Fatalf("date range: got %d matches, want 2", len(got))
	}

	// A ticket created late on the To day is still inside the range.
	late := []domain.TicketSummary{{TicketID: 9, CreatedAt: time.Date(2026, time.March, 5, 23, 50, 0, 0, time.Local)}}
	got = Filter(late, FilterSpec{To: day(5)}, fields)
	if len(got) != 1 {
		t.Fatalf("To bound should extend to end of day")
	}
}

func TestFilterInvertedRangeMatchesNothing(t *testing.T) {
	spec := FilterSpec{From: day(10), To: day(2)}
	got := Filter(sampleTickets(), spec, TicketAccessors())
	if len(got) != 0 {
		t.Fatalf("from after to: got %d matches, want 0", len(got))
	}
}

func TestPaginateReconstructsInput(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	var joined []int
	_, total := Paginate(items, 1, 5)
	if total != 5 {
		t.Fatalf("total pages: got %d, want 5", total)
	}
	for page := 1; page <= total; page++ {
		slice, _ := Paginate(items, page, 5)
		joined = append(joined, slice...)
	}
	if len(joined) != len(items) {
		t.Fatalf("concatenated pages: got %d items, want %d", len(joined), len(items))
	}
	for i := range joined {
		if joined[i] != items[i] {
			t.Fatalf("page concatenation broke order at %d", i)
		}
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	items := []int{1, 2, 3}

	slice, total := Paginate(items, 5, 2)
	if len(slice) != 0 || total != 2 {
		t.Fatalf("out-of-range page: got %v (total %d)", slice, total)
	}

	slice, total = Paginate([]int{}, 1, 10)
	if len(slice) != 0 || total != 1 {
		t.Fatalf("empty input: got %v (total %d), want empty with total 1", slice, total)
	}
}

func TestSortNewestFirst(t *testing.T) {
	items := sampleTickets()
	SortNewestFirst(items, func(t domain.TicketSummary) time.Time { return t.CreatedAt })
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("not newest-first at index %d", i)
		}
	}
	if items[0].TicketID != 4 {
		t.Fatalf("newest ticket first: got %d, want 4", items[0].TicketID)
	}
}
