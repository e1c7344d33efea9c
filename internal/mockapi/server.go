// Package mockapi is an in-memory stand-in for the hospitalcm backend. It
// serves the same REST surface and envelope convention so the portal and its
// contract tests run without the real API.
package mockapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/config"
	"github.com/azauting/hospitalcm/internal/domain"
)

// SessionCookie is the cookie name carrying the signed session token.
const SessionCookie = "hospitalcm_session"

// Server wires the fiber app, dataset, sessions and token manager.
type Server struct {
	app        *fiber.App
	store      *Store
	sessions   SessionStore
	tokens     *TokenManager
	bcryptCost int
	log        *zap.Logger
}

// NewServer builds the mock backend.
func NewServer(cfg config.MockConfig, store *Store, sessions SessionStore, logger *zap.Logger) *Server {
	s := &Server{
		app:        fiber.New(fiber.Config{DisableStartupMessage: true}),
		store:      store,
		sessions:   sessions,
		tokens:     NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		bcryptCost: cfg.BcryptCost,
		log:        logger,
	}
	s.registerMiddlewares(cfg)
	s.registerRoutes()
	return s
}

// App exposes the fiber app for contract tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the app is shut down.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerMiddlewares(cfg config.MockConfig) {
	if cfg.RequestTimeoutSecond > 0 {
		timeout := time.Duration(cfg.RequestTimeoutSecond) * time.Second
		s.app.Use(func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
			return c.Next()
		})
	}
	s.app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	})
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	api.Post("/login", s.handleLogin)
	api.Post("/logout", s.requireAuth, s.handleLogout)
	api.Get("/auth/me", s.requireAuth, s.handleMe)
	api.Get("/my-ip", s.handleMyIP)

	tickets := api.Group("/tickets", s.requireAuth)
	// Fixed paths must precede the :id parameter routes.
	tickets.Get("/mis-tickets", s.handleMyTickets)
	tickets.Get("/mis-tickets/asignados", s.requireRole(domain.RoleSupport), s.handleAssignedTickets)
	tickets.Get("/sin-revisar", s.requireRole(domain.RoleAdmin), s.handleUnreviewedTickets)
	tickets.Get("/revisados", s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleReviewedTickets)
	tickets.Get("/cerrados", s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleClosedTickets)
	tickets.Get("/movimientos/recientes", s.handleRecentMovements)
	tickets.Post("/", s.handleCreateTicket)
	tickets.Get("/:id", s.handleGetTicket)
	tickets.Patch("/:id", s.requireRole(domain.RoleAdmin), s.handleClassifyTicket)
	tickets.Patch("/:id/assign", s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleAssignTicket)
	tickets.Patch("/:id/review", s.requireRole(domain.RoleAdmin), s.handleReviewTicket)
	tickets.Patch("/:id/close", s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleCloseTicket)
	tickets.Patch("/:id/cancel", s.handleCancelTicket)
	tickets.Post("/:id/detalle/observacion", s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleAddObservation)
	tickets.Post("/:id/detalle/integrante", s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleAddMember)

	api.Get("/users/solicitantes", s.requireAuth, s.requireRole(domain.RoleAdmin), s.handleRequesters)
	api.Get("/users/soportes", s.requireAuth, s.requireRole(domain.RoleAdmin), s.handleSupports)
	api.Get("/users/:id", s.requireAuth, s.requireRole(domain.RoleAdmin), s.handleGetUser)
	api.Patch("/users/:id", s.requireAuth, s.requireRole(domain.RoleAdmin), s.handleUpdateUser)
	api.Get("/user/soportes/disponibles", s.requireAuth, s.requireRole(domain.RoleAdmin, domain.RoleSupport), s.handleAvailableSupports)
	api.Post("/new-user", s.requireAuth, s.requireRole(domain.RoleAdmin), s.handleCreateUser)

	tipos := api.Group("/tipos", s.requireAuth)
	tipos.Get("/ubicacion", s.handleLocations)
	tipos.Post("/ubicacion", s.requireRole(domain.RoleAdmin), s.handleCreateLocation)
	tipos.Patch("/ubicacion/:id", s.requireRole(domain.RoleAdmin), s.handleUpdateLocation)
	tipos.Get("/area", s.handleAreas)
	tipos.Post("/area", s.requireRole(domain.RoleAdmin), s.handleCreateArea)
	tipos.Patch("/area/:id", s.requireRole(domain.RoleAdmin), s.handleUpdateArea)
	tipos.Get("/evento", s.handleEvents)
	tipos.Post("/evento", s.requireRole(domain.RoleAdmin), s.handleCreateEvent)
	tipos.Patch("/evento/:id", s.requireRole(domain.RoleAdmin), s.handleUpdateEvent)
	tipos.Get("/unidad", s.handleUnits)
	tipos.Get("/estado", s.handleStatuses)
	tipos.Get("/prioridad", s.handlePriorities)
	tipos.Get("/origen", s.handleOrigins)

	analytics := api.Group("/analytics", s.requireAuth, s.requireRole(domain.RoleAdmin))
	analytics.Get("/tickets-creados-hoy", s.handleCreatedToday)
	analytics.Get("/tickets-cerrados-hoy", s.handleClosedToday)
	analytics.Get("/tickets-abiertos", s.handleOpenCount)
	analytics.Get("/tickets-en-proceso", s.handleInProcessCount)
	analytics.Get("/resueltos-mes", s.handleResolvedPerMonth)
	analytics.Get("/mttr-mensual", s.handleMonthlyMTTR)
	analytics.Get("/ubicaciones/treemap", s.handleLocationsTreemap)

	s.app.Get("/health", s.handleHealth)
}

// ---- envelope helpers ----

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string, data any) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

// fail reports a business-rule rejection: HTTP 200, success=false.
func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "no autorizado"})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "permisos insuficientes"})
}

// ---- auth middleware ----

const localsUser = "user"

func (s *Server) requireAuth(c *fiber.Ctx) error {
	cookie := c.Cookies(SessionCookie)
	if cookie == "" {
		return unauthorized(c)
	}
	claims, err := s.tokens.ParseToken(cookie)
	if err != nil {
		return unauthorized(c)
	}
	active, err := s.sessions.Active(c.Context(), claims.ID)
	if err != nil || !active {
		return unauthorized(c)
	}
	user, found := s.store.GetUser(claims.UserID)
	if !found || user.Active != 1 {
		return unauthorized(c)
	}
	c.Locals(localsUser, user)
	c.Locals("session_id", claims.ID)
	return c.Next()
}

func (s *Server) requireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		user := currentUser(c)
		if user == nil {
			return unauthorized(c)
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return forbidden(c)
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(localsUser).(*domain.User)
	return user
}
