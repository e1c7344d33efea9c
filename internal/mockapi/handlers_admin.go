package mockapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/azauting/hospitalcm/internal/domain"
)

// ---- users ----

func (s *Server) handleRequesters(c *fiber.Ctx) error {
	return ok(c, s.store.UsersByRole(domain.RoleRequester))
}

func (s *Server) handleSupports(c *fiber.Ctx) error {
	return ok(c, s.store.UsersByRole(domain.RoleSupport))
}

func (s *Server) handleAvailableSupports(c *fiber.Ctx) error {
	return ok(c, s.store.AvailableSupports())
}

func (s *Server) handleGetUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fail(c, "id de usuario inválido")
	}
	user, found := s.store.GetUser(id)
	if !found {
		return fail(c, "usuario no encontrado")
	}
	return ok(c, user)
}

func (s *Server) handleUpdateUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fail(c, "id de usuario inválido")
	}
	var input domain.UserUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, "solicitud inválida")
	}
	hash := ""
	if input.Password != nil && *input.Password != "" {
		hashed, err := HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return fail(c, "no se pudo actualizar la contraseña")
		}
		hash = hashed
	}
	if err := s.store.UpdateUser(id, input, hash); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "usuario actualizado", nil)
}

func (s *Server) handleCreateUser(c *fiber.Ctx) error {
	var input domain.UserCreateInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, "solicitud inválida")
	}
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return fail(c, "nombre, correo y contraseña son obligatorios")
	}
	hash, err := HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return fail(c, "no se pudo registrar el usuario")
	}
	user := domain.User{
		FullName: input.FullName,
		Email:    input.Email,
		RoleID:   input.RoleID,
		Role:     roleFromID(input.RoleID),
		UnitID:   input.UnitID,
		Active:   1,
	}
	created, err := s.store.AddUser(user, hash)
	if err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "usuario creado", fiber.Map{"usuario_id": created.UserID})
}

// ---- taxonomy ----

func (s *Server) handleLocations(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"tipos_ubicacion": fiber.Map{"ubicaciones": s.store.Locations()}})
}

func (s *Server) handleCreateLocation(c *fiber.Ctx) error {
	var body struct {
		Name   string `json:"ubicacion"`
		AreaID int    `json:"area_id"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return fail(c, "ubicacion es obligatoria")
	}
	if _, err := s.store.AddLocation(body.Name, body.AreaID); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "ubicación creada", nil)
}

func (s *Server) handleUpdateLocation(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fail(c, "id inválido")
	}
	var body struct {
		Name   string `json:"ubicacion"`
		AreaID int    `json:"area_id"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return fail(c, "ubicacion es obligatoria")
	}
	if err := s.store.UpdateLocation(id, body.Name, body.AreaID); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "ubicación actualizada", nil)
}

func (s *Server) handleAreas(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"tipos_area": fiber.Map{"areas": s.store.Areas()}})
}

func (s *Server) handleCreateArea(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"nombre_area"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return fail(c, "nombre_area es obligatorio")
	}
	s.store.AddArea(body.Name)
	return okMessage(c, "área creada", nil)
}

func (s *Server) handleUpdateArea(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fail(c, "id inválido")
	}
	var body struct {
		Name string `json:"nombre_area"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return fail(c, "nombre_area es obligatorio")
	}
	if err := s.store.UpdateArea(id, body.Name); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "área actualizada", nil)
}

func (s *Server) handleEvents(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"tipos_evento": fiber.Map{"tipos": s.store.Events()}})
}

func (s *Server) handleCreateEvent(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"evento"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return fail(c, "evento es obligatorio")
	}
	s.store.AddEvent(body.Name)
	return okMessage(c, "evento creado", nil)
}

func (s *Server) handleUpdateEvent(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fail(c, "id inválido")
	}
	var body struct {
		Name string `json:"evento"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return fail(c, "evento es obligatorio")
	}
	if err := s.store.UpdateEvent(id, body.Name); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "evento actualizado", nil)
}

func (s *Server) handleUnits(c *fiber.Ctx) error {
	return ok(c, s.store.Units())
}

func (s *Server) handleStatuses(c *fiber.Ctx) error {
	return ok(c, s.store.Statuses())
}

func (s *Server) handlePriorities(c *fiber.Ctx) error {
	return ok(c, s.store.Priorities())
}

func (s *Server) handleOrigins(c *fiber.Ctx) error {
	return ok(c, s.store.Origins())
}

// ---- analytics ----

func (s *Server) handleCreatedToday(c *fiber.Ctx) error {
	return ok(c, s.store.CountCreatedToday(time.Now()))
}

func (s *Server) handleClosedToday(c *fiber.Ctx) error {
	return ok(c, s.store.CountClosedToday(time.Now()))
}

func (s *Server) handleOpenCount(c *fiber.Ctx) error {
	return ok(c, s.store.CountByStatus(domain.TicketStatusOpen))
}

func (s *Server) handleInProcessCount(c *fiber.Ctx) error {
	return ok(c, s.store.CountByStatus(domain.TicketStatusInProcess))
}

func (s *Server) handleResolvedPerMonth(c *fiber.Ctx) error {
	return ok(c, s.store.ResolvedPerMonth())
}

func (s *Server) handleMonthlyMTTR(c *fiber.Ctx) error {
	return ok(c, s.store.MonthlyMTTR())
}

func (s *Server) handleLocationsTreemap(c *fiber.Ctx) error {
	return ok(c, s.store.LocationsTreemap())
}
