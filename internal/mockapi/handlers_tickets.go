package mockapi

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/azauting/hospitalcm/internal/domain"
)

func ticketID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	return id, err == nil && id > 0
}

func (s *Server) handleMyTickets(c *fiber.Ctx) error {
	user := currentUser(c)
	return ok(c, fiber.Map{"tickets": s.store.MyTickets(user.UserID)})
}

func (s *Server) handleUnreviewedTickets(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"tickets": s.store.UnreviewedTickets()})
}

func (s *Server) handleReviewedTickets(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"tickets": s.store.ReviewedTickets()})
}

func (s *Server) handleClosedTickets(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"tickets": s.store.ClosedTickets()})
}

func (s *Server) handleAssignedTickets(c *fiber.Ctx) error {
	user := currentUser(c)
	return ok(c, fiber.Map{"tickets": s.store.AssignedTickets(user.UserID)})
}

func (s *Server) handleGetTicket(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	user := currentUser(c)
	if user.Role == domain.RoleRequester && !s.store.TicketOwner(id, user.UserID) {
		return forbidden(c)
	}
	bundle, err := s.store.GetBundle(id)
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, fiber.Map{"ticket": bundle})
}

func (s *Server) handleCreateTicket(c *fiber.Ctx) error {
	var input domain.TicketCreateInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, "solicitud inválida")
	}
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Description) == "" {
		return fail(c, "asunto y descripción son obligatorios")
	}
	ticket, err := s.store.CreateTicket(currentUser(c), input)
	if err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "ticket creado", fiber.Map{"ticket_id": ticket.TicketID})
}

func (s *Server) handleClassifyTicket(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	var input domain.TicketUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, "solicitud inválida")
	}
	if err := s.store.Classify(id, currentUser(c).FullName, input); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "cambios guardados", nil)
}

func (s *Server) handleAssignTicket(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	var body struct {
		SupportID int `json:"soporte_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.SupportID <= 0 {
		return fail(c, "soporte_id es obligatorio")
	}
	if err := s.store.Assign(id, body.SupportID, currentUser(c).FullName); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "soporte asignado", nil)
}

func (s *Server) handleReviewTicket(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	if err := s.store.MarkReviewed(id, currentUser(c).FullName); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "revisión finalizada", nil)
}

func (s *Server) handleCloseTicket(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	var body struct {
		FinalResponse string `json:"respuesta_final"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.FinalResponse) == "" {
		return fail(c, "respuesta_final es obligatoria")
	}
	if err := s.store.Close(id, currentUser(c).FullName, body.FinalResponse); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "ticket cerrado", nil)
}

func (s *Server) handleCancelTicket(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	user := currentUser(c)
	if err := s.store.Cancel(id, user.UserID, user.FullName); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "ticket cancelado", nil)
}

func (s *Server) handleAddObservation(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	var body struct {
		Text string `json:"observacion"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		return fail(c, "observacion es obligatoria")
	}
	if err := s.store.AddObservation(id, currentUser(c), body.Text); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "observación agregada", nil)
}

func (s *Server) handleAddMember(c *fiber.Ctx) error {
	id, valid := ticketID(c)
	if !valid {
		return fail(c, "id de ticket inválido")
	}
	var body struct {
		UserID int `json:"usuario_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID <= 0 {
		return fail(c, "usuario_id es obligatorio")
	}
	if err := s.store.AddMember(id, body.UserID, currentUser(c).FullName); err != nil {
		return fail(c, err.Error())
	}
	return okMessage(c, "integrante agregado", nil)
}

func (s *Server) handleRecentMovements(c *fiber.Ctx) error {
	return ok(c, s.store.RecentMovements())
}
