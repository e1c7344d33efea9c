package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

// The tipos endpoints wrap their payloads one level deeper than the rest of
// the API. The shapes below match the backend verbatim.
type locationsWrapper struct {
	Types struct {
		Locations []domain.Location `json:"ubicaciones"`
	} `json:"tipos_ubicacion"`
}

type areasWrapper struct {
	Types struct {
		Areas []domain.Area `json:"areas"`
	} `json:"tipos_area"`
}

type eventsWrapper struct {
	Types struct {
		Events []domain.EventType `json:"tipos"`
	} `json:"tipos_evento"`
}

// Locations lists all ticket locations.
func (c *Client) Locations(ctx context.Context) ([]domain.Location, error) {
	wrapper, err := request[locationsWrapper](ctx, c, http.MethodGet, "/api/tipos/ubicacion", nil)
	if err != nil {
		return nil, err
	}
	return wrapper.Types.Locations, nil
}

// CreateLocation registers a location under an area.
func (c *Client) CreateLocation(ctx context.Context, name string, areaID int) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("el nombre de la ubicación es obligatorio")
	}
	body := map[string]any{"ubicacion": name, "area_id": areaID}
	return c.exec(ctx, http.MethodPost, "/api/tipos/ubicacion", body)
}

// UpdateLocation renames or re-parents a location.
func (c *Client) UpdateLocation(ctx context.Context, id int, name string, areaID int) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("el nombre de la ubicación es obligatorio")
	}
	body := map[string]any{"ubicacion": name, "area_id": areaID}
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tipos/ubicacion/%d", id), body)
}

// Areas lists all areas.
func (c *Client) Areas(ctx context.Context) ([]domain.Area, error) {
	wrapper, err := request[areasWrapper](ctx, c, http.MethodGet, "/api/tipos/area", nil)
	if err != nil {
		return nil, err
	}
	return wrapper.Types.Areas, nil
}

// CreateArea registers a new area.
func (c *Client) CreateArea(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("el nombre del área es obligatorio")
	}
	return c.exec(ctx, http.MethodPost, "/api/tipos/area", map[string]string{"nombre_area": name})
}

// UpdateArea renames an area.
func (c *Client) UpdateArea(ctx context.Context, id int, name string) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("el nombre del área es obligatorio")
	}
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tipos/area/%d", id), map[string]string{"nombre_area": name})
}

// Events lists all event types.
func (c *Client) Events(ctx context.Context) ([]domain.EventType, error) {
	wrapper, err := request[eventsWrapper](ctx, c, http.MethodGet, "/api/tipos/evento", nil)
	if err != nil {
		return nil, err
	}
	return wrapper.Types.Events, nil
}

// CreateEvent registers a new event type.
func (c *Client) CreateEvent(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("el nombre del evento es obligatorio")
	}
	return c.exec(ctx, http.MethodPost, "/api/tipos/evento", map[string]string{"evento": name})
}

// UpdateEvent renames an event type.
func (c *Client) UpdateEvent(ctx context.Context, id int, name string) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("el nombre del evento es obligatorio")
	}
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/tipos/evento/%d", id), map[string]string{"evento": name})
}

// Units lists the responsible units used during classification.
func (c *Client) Units(ctx context.Context) ([]domain.Unit, error) {
	return request[[]domain.Unit](ctx, c, http.MethodGet, "/api/tipos/unidad", nil)
}

// Statuses lists the backend status catalog.
func (c *Client) Statuses(ctx context.Context) ([]domain.StatusType, error) {
	return request[[]domain.StatusType](ctx, c, http.MethodGet, "/api/tipos/estado", nil)
}

// Priorities lists the backend priority catalog.
func (c *Client) Priorities(ctx context.Context) ([]domain.PriorityType, error) {
	return request[[]domain.PriorityType](ctx, c, http.MethodGet, "/api/tipos/prioridad", nil)
}

// Origins lists the backend origin catalog.
func (c *Client) Origins(ctx context.Context) ([]domain.OriginType, error) {
	return request[[]domain.OriginType](ctx, c, http.MethodGet, "/api/tipos/origen", nil)
}
