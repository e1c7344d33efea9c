package mockapi

import (
	"github.com/azauting/hospitalcm/internal/domain"
)

// Seed loads the development dataset: the role catalog users, the taxonomy
// the portal's filters expect, and a couple of tickets in different states.
func Seed(store *Store, bcryptCost int) error {
	for _, name := range []string{"abierto", "en proceso", "revisado", "resuelto", "cerrado", "cancelado"} {
		store.AddStatus(name)
	}
	for _, name := range []string{"baja", "media", "alta"} {
		store.AddPriority(name)
	}
	for _, name := range []string{"web", "telefono", "presencial"} {
		store.AddOrigin(name)
	}

	soporteTI := store.AddUnit("Soporte TI")
	store.AddUnit("Redes")
	store.AddUnit("Equipos Médicos")

	urgencias := store.AddArea("Urgencias")
	administracion := store.AddArea("Administración")

	boxUrgencias, err := store.AddLocation("Box 3 Urgencias", urgencias.AreaID)
	if err != nil {
		return err
	}
	oficinaPartes, err := store.AddLocation("Oficina de Partes", administracion.AreaID)
	if err != nil {
		return err
	}

	store.AddEvent("falla de equipo")
	store.AddEvent("falla de red")
	store.AddEvent("solicitud de acceso")

	users := []struct {
		user     domain.User
		password string
	}{
		{domain.User{FullName: "Ana Riquelme", Email: "admin@hospitalcm.cl", Role: domain.RoleAdmin, RoleID: 1}, "admin123"},
		{domain.User{FullName: "Luis Contreras", Email: "soporte@hospitalcm.cl", Role: domain.RoleSupport, RoleID: 2, Unit: soporteTI.Name, UnitID: &soporteTI.UnitID}, "soporte123"},
		{domain.User{FullName: "Marcela Fuentes", Email: "solicitante@hospitalcm.cl", Role: domain.RoleRequester, RoleID: 3}, "solicitante123"},
	}
	seeded := make([]*domain.User, 0, len(users))
	for _, entry := range users {
		hash, err := HashPassword(entry.password, bcryptCost)
		if err != nil {
			return err
		}
		created, err := store.AddUser(entry.user, hash)
		if err != nil {
			return err
		}
		seeded = append(seeded, created)
	}
	admin, support, requester := seeded[0], seeded[1], seeded[2]

	if _, err := store.CreateTicket(requester, domain.TicketCreateInput{
		Subject:     "Impresora de la oficina de partes no responde",
		Description: "La impresora HP del mesón no imprime desde esta mañana.",
		Phone:       "+56 9 5555 1234",
		Event:       "falla de equipo",
		LocationID:  oficinaPartes.LocationID,
	}); err != nil {
		return err
	}

	classified, err := store.CreateTicket(requester, domain.TicketCreateInput{
		Subject:     "Sin acceso a la ficha clínica en box 3",
		Description: "El terminal del box 3 pierde la conexión cada pocos minutos.",
		Phone:       "+56 9 5555 1234",
		Event:       "falla de red",
		LocationID:  boxUrgencias.LocationID,
	})
	if err != nil {
		return err
	}
	unitID := soporteTI.UnitID
	priorityID := findPriorityID(store, "alta")
	if err := store.Classify(classified.TicketID, admin.FullName, domain.TicketUpdateInput{
		UnitID:     &unitID,
		PriorityID: &priorityID,
	}); err != nil {
		return err
	}
	if err := store.Assign(classified.TicketID, support.UserID, admin.FullName); err != nil {
		return err
	}

	return nil
}

func findPriorityID(store *Store, name string) int {
	for _, priority := range store.Priorities() {
		if priority.Name == name {
			return priority.PriorityID
		}
	}
	return 0
}
