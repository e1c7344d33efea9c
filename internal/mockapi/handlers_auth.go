package mockapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "solicitud inválida")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return fail(c, "correo y contraseña son obligatorios")
	}

	user, hash, found := s.store.FindByEmail(req.Email)
	if !found {
		return fail(c, "credenciales incorrectas")
	}
	if err := ComparePassword(hash, req.Password); err != nil {
		return fail(c, "credenciales incorrectas")
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(c.Context(), sessionID, user.UserID, s.tokens.SessionTTL()); err != nil {
		s.log.Error("session save failed", zap.Error(err))
		return fail(c, "no se pudo iniciar sesión")
	}
	token, expiresAt, err := s.tokens.GenerateToken(user, sessionID)
	if err != nil {
		s.log.Error("token generation failed", zap.Error(err))
		return fail(c, "no se pudo iniciar sesión")
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return okMessage(c, "inicio de sesión correcto", fiber.Map{"user": user})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if sessionID, _ := c.Locals("session_id").(string); sessionID != "" {
		_ = s.sessions.Revoke(c.Context(), sessionID)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return okMessage(c, "sesión cerrada", nil)
}

func (s *Server) handleMe(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"user": currentUser(c)})
}

func (s *Server) handleMyIP(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"ip": c.IP()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if err := s.sessions.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "session store unreachable"})
	}
	return ok(c, fiber.Map{"status": "ok"})
}
