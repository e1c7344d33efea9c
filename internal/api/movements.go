package api

import (
	"context"
	"net/http"

	"github.com/azauting/hospitalcm/internal/domain"
)

// RecentMovements returns the latest global movement log entries, newest
// first. This is the source polled by the activity feed.
func (c *Client) RecentMovements(ctx context.Context) ([]domain.Movement, error) {
	return request[[]domain.Movement](ctx, c, http.MethodGet, "/api/tickets/movimientos/recientes", nil)
}
