package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

type userWrapper struct {
	User *domain.User `json:"user"`
}

// Login authenticates and stores the session cookie in the client jar.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, util.NewValidationError("correo y contraseña son obligatorios")
	}
	wrapper, err := request[userWrapper](ctx, c, http.MethodPost, "/api/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if wrapper.User == nil {
		return nil, util.NewUnexpected(0, nil)
	}
	return wrapper.User, nil
}

// Me returns the user bound to the current session cookie.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	wrapper, err := request[userWrapper](ctx, c, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if wrapper.User == nil {
		return nil, util.NewUnexpected(0, nil)
	}
	return wrapper.User, nil
}

// Logout invalidates the server-side session. A missing endpoint is treated
// as success so the local session can always be cleared.
func (c *Client) Logout(ctx context.Context) error {
	err := c.exec(ctx, http.MethodPost, "/api/logout", nil)
	if ce := util.ToClientError(err); ce != nil && ce.Code == util.CodeUnexpected {
		return nil
	}
	return err
}

// MyIP returns the caller's address as seen by the backend, used to prefill
// the ticket creation form.
func (c *Client) MyIP(ctx context.Context) (string, error) {
	data, err := request[struct {
		IP string `json:"ip"`
	}](ctx, c, http.MethodGet, "/api/my-ip", nil)
	if err != nil {
		return "", err
	}
	return data.IP, nil
}
