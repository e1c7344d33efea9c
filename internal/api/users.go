package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

// Requesters lists all solicitante accounts.
func (c *Client) Requesters(ctx context.Context) ([]domain.User, error) {
	return request[[]domain.User](ctx, c, http.MethodGet, "/api/users/solicitantes", nil)
}

// Supports lists all soporte accounts.
func (c *Client) Supports(ctx context.Context) ([]domain.User, error) {
	return request[[]domain.User](ctx, c, http.MethodGet, "/api/users/soportes", nil)
}

// AvailableSupports lists soporte accounts currently eligible for assignment.
func (c *Client) AvailableSupports(ctx context.Context) ([]domain.User, error) {
	return request[[]domain.User](ctx, c, http.MethodGet, "/api/user/soportes/disponibles", nil)
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := request[domain.User](ctx, c, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser patches user fields.
func (c *Client) UpdateUser(ctx context.Context, id int, input domain.UserUpdateInput) error {
	return c.exec(ctx, http.MethodPatch, fmt.Sprintf("/api/users/%d", id), input)
}

// CreateUser registers a new account (admin only).
func (c *Client) CreateUser(ctx context.Context, input domain.UserCreateInput) error {
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" {
		return util.NewValidationError("nombre y correo son obligatorios")
	}
	if input.Password == "" {
		return util.NewValidationError("la contraseña es obligatoria")
	}
	return c.exec(ctx, http.MethodPost, "/api/new-user", input)
}
