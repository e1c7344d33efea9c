package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

// ticketListWrapper covers the list endpoints. The unreviewed endpoint has
// shipped both field names at different times, so both are accepted.
type ticketListWrapper struct {
	Tickets    []domain.TicketSummary `json:"tickets"`
	Unreviewed []domain.TicketSummary `json:"tickets_sin_revisar"`
}

func (w ticketListWrapper) items() []domain.TicketSummary {
	if w.Tickets != nil {
		return w.Tickets
	}
	return w.Unreviewed
}

type ticketBundleWrapper struct {
	Ticket *domain.TicketBundle `json:"ticket"`
}

func (c *Client) listTickets(ctx context.Context, path string) ([]domain.TicketSummary, error) {
	wrapper, err := request[ticketListWrapper](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return wrapper.items(), nil
}

// MyTickets lists tickets created by the session user.
func (c *Client) MyTickets(ctx context.Context) ([]domain.TicketSummary, error) {
	return c.listTickets(ctx, "/api/tickets/mis-tickets")
}

// UnreviewedTickets lists tickets awaiting admin triage.
func (c *Client) UnreviewedTickets(ctx context.Context) ([]domain.TicketSummary, error) {
	return c.listTickets(ctx, "/api/tickets/sin-revisar")
}

// ReviewedTickets lists tickets that passed triage.
func (c *Client) ReviewedTickets(ctx context.Context) ([]domain.TicketSummary, error) {
	return c.listTickets(ctx, "/api/tickets/revisados")
}

// ClosedTickets lists closed and cancelled tickets.
func (c *Client) ClosedTickets(ctx context.Context) ([]domain.TicketSummary, error) {
	return c.listTickets(ctx, "/api/tickets/cerrados")
}

// AssignedTickets lists tickets assigned to the session support user.
func (c *Client) AssignedTickets(ctx context.Context) ([]domain.TicketSummary, error) {
	return c.listTickets(ctx, "/api/tickets/mis-tickets/asignados")
}

// GetTicket fetches the full bundle for one ticket.
func (c *Client) GetTicket(ctx context.Context, id int) (*domain.TicketBundle, error) {
	wrapper, err := request[ticketBundleWrapper](ctx, c, http.MethodGet, fmt.Sprintf("/api/tickets/%d", id), nil)
	if err != nil {
		return nil, err
	}
	if wrapper.Ticket == nil {
		return nil, util.NewUnexpected(0, nil)
	}
	return wrapper.Ticket, nil
}

// CreateTicket submits a new ticket.
func (c *Client) CreateTicket(ctx context.Context, input domain.TicketCreateInput) error {
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Description) == "" {
		return util.NewValidationError("asunto y descripción son obligatorios")
	}
	if input.LocationID <= 0 {
		return util.NewValidationError("ubicación es obligatoria")
	}
	return c.exec(ctx, http.MethodPost, "/api/tickets", input)
}

// UpdateTicket patches classification fields on a ticket.
func (c *Client) UpdateTicket(ctx context.Context, id int, input domain.TicketUpdateInput) error {
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tickets/%d", id), input)
}

// AssignSupport assigns a support user to the ticket.
func (c *Client) AssignSupport(ctx context.Context, ticketID, supportID int) error {
	body := map[string]int{"soporte_id": supportID}
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tickets/%d/assign", ticketID), body)
}

// MarkReviewed finalizes admin triage for the ticket.
func (c *Client) MarkReviewed(ctx context.Context, ticketID int) error {
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tickets/%d/review", ticketID), struct{}{})
}

// CloseTicket closes the ticket with a final response for the requester.
func (c *Client) CloseTicket(ctx context.Context, ticketID int, finalResponse string) error {
	if strings.TrimSpace(finalResponse) == "" {
		return util.NewValidationError("la respuesta final es obligatoria")
	}
	body := map[string]string{"respuesta_final": finalResponse}
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tickets/%d/close", ticketID), body)
}

// CancelTicket cancels the ticket.
func (c *Client) CancelTicket(ctx context.Context, ticketID int) error {
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tickets/%d/cancel", ticketID), struct{}{})
}

// AddObservation appends a worklog entry to the ticket detail.
func (c *Client) AddObservation(ctx context.Context, ticketID int, text string) error {
	if strings.TrimSpace(text) == "" {
		return util.NewValidationError("la observación no puede estar vacía")
	}
	body := map[string]string{"observacion": text}
	return c.exec(ctx, http.MethodPost, fmt.Sprintf("/api/tickets/%d/detalle/observacion", ticketID), body)
}

// AddMember adds a collaborating support user to the ticket detail.
func (c *Client) AddMember(ctx context.Context, ticketID, userID int) error {
	body := map[string]int{"usuario_id": userID}
	return c.exec(ctx, http.MethodPost, fmt.Sprintf("/api/tickets/%d/detalle/integrante", ticketID), body)
}
