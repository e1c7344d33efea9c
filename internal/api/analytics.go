package api

import (
	"context"
	"net/http"

	"github.com/azauting/hospitalcm/internal/domain"
)

// TicketsCreatedToday returns the day's creation count.
func (c *Client) TicketsCreatedToday(ctx context.Context) (int, error) {
	return request[int](ctx, c, http.MethodGet, "/api/analytics/tickets-creados-hoy", nil)
}

// TicketsClosedToday returns the day's closure count.
func (c *Client) TicketsClosedToday(ctx context.Context) (int, error) {
	return request[int](ctx, c, http.MethodGet, "/api/analytics/tickets-cerrados-hoy", nil)
}

// TicketsOpen returns the current open-ticket count.
func (c *Client) TicketsOpen(ctx context.Context) (int, error) {
	return request[int](ctx, c, http.MethodGet, "/api/analytics/tickets-abiertos", nil)
}

// TicketsInProcess returns the current in-process count.
func (c *Client) TicketsInProcess(ctx context.Context) (int, error) {
	return request[int](ctx, c, http.MethodGet, "/api/analytics/tickets-en-proceso", nil)
}

// ResolvedPerMonth returns the resolved-per-month series.
func (c *Client) ResolvedPerMonth(ctx context.Context) ([]domain.ResolvedMonth, error) {
	return request[[]domain.ResolvedMonth](ctx, c, http.MethodGet, "/api/analytics/resueltos-mes", nil)
}

// MonthlyMTTR returns the monthly mean-time-to-resolution series.
func (c *Client) MonthlyMTTR(ctx context.Context) ([]domain.MTTRMonth, error) {
	return request[[]domain.MTTRMonth](ctx, c, http.MethodGet, "/api/analytics/mttr-mensual", nil)
}

// LocationsTreemap returns tickets-per-location grouped by area.
func (c *Client) LocationsTreemap(ctx context.Context) ([]domain.TreemapCategory, error) {
	return request[[]domain.TreemapCategory](ctx, c, http.MethodGet, "/api/analytics/ubicaciones/treemap", nil)
}
