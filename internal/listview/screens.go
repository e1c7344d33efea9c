package listview

import (
	"strconv"
	"time"

	"github.com/azauting/hospitalcm/internal/domain"
)

// TicketAccessors is the canonical accessor set for ticket list screens:
// text search covers subject, requester name and the numeric id; the field
// filters and the date range bind to the summary columns.
func TicketAccessors() Accessors[domain.TicketSummary] {
	return Accessors[domain.TicketSummary]{
		SearchFields: []func(domain.TicketSummary) string{
			func(t domain.TicketSummary) string { return t.Subject },
			func(t domain.TicketSummary) string { return t.RequesterName },
			func(t domain.TicketSummary) string { return strconv.Itoa(t.TicketID) },
		},
		Origin:    func(t domain.TicketSummary) string { return t.Origin },
		Event:     func(t domain.TicketSummary) string { return t.Event },
		Priority:  func(t domain.TicketSummary) string { return t.Priority },
		Status:    func(t domain.TicketSummary) string { return t.Status },
		CreatedAt: func(t domain.TicketSummary) time.Time { return t.CreatedAt },
	}
}
