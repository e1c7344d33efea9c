package domain

import "time"

// TicketStatus enumerates lifecycle states as reported by the backend.
// Values are the Spanish wire strings, compared case-insensitively.
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "abierto"
	TicketStatusInProcess TicketStatus = "en proceso"
	TicketStatusReviewed  TicketStatus = "revisado"
	TicketStatusResolved  TicketStatus = "resuelto"
	TicketStatusClosed    TicketStatus = "cerrado"
	TicketStatusCancelled TicketStatus = "cancelado"
)

// TicketPriority enumerates triage urgency. Empty means not yet classified.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "baja"
	TicketPriorityMedium TicketPriority = "media"
	TicketPriorityHigh   TicketPriority = "alta"
	TicketPriorityUnset  TicketPriority = ""
)

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "todos"

// TicketSummary is the row shape returned by the list endpoints.
type TicketSummary struct {
	TicketID      int       `json:"ticket_id"`
	Subject       string    `json:"asunto"`
	RequesterName string    `json:"usuario_nombre"`
	Status        string    `json:"estado"`
	Priority      string    `json:"prioridad"`
	Unit          string    `json:"unidad"`
	Origin        string    `json:"origen"`
	Event         string    `json:"evento"`
	CreatedAt     time.Time `json:"fecha_creacion"`
}

// Ticket is the full read model for a single ticket.
type Ticket struct {
	TicketID      int       `json:"ticket_id"`
	Subject       string    `json:"asunto"`
	Description   string    `json:"descripcion"`
	Phone         string    `json:"telefono"`
	RequesterName string    `json:"autor_problema"`
	Origin        string    `json:"origen"`
	Event         string    `json:"evento"`
	Unit          string    `json:"unidad"`
	Priority      string    `json:"prioridad"`
	Status        string    `json:"estado"`
	UnitID        *int      `json:"unidad_id"`
	PriorityID    *int      `json:"prioridad_id"`
	StatusID      *int      `json:"estado_id"`
	SupportID     *int      `json:"soporte_id"`
	FinalResponse *string   `json:"respuesta_final"`
	CreatedAt     time.Time `json:"fecha_creacion"`
}

// Observation is one entry in a ticket's worklog.
type Observation struct {
	ObservationID int       `json:"observacion_id"`
	Text          string    `json:"observacion"`
	AuthorName    string    `json:"nombre_completo"`
	CreatedAt     time.Time `json:"fecha"`
}

// Member is a support user collaborating on a ticket.
type Member struct {
	UserID   int    `json:"usuario_id"`
	FullName string `json:"nombre_completo"`
}

// TicketDetail is the 1:1 sub-object attached to a ticket in detail views.
type TicketDetail struct {
	SupportID   *int    `json:"soporte_id"`
	SupportName *string `json:"soporte_nombre"`
}

// TicketBundle is the aggregate returned by GET /api/tickets/:id.
type TicketBundle struct {
	Ticket       Ticket        `json:"ticket"`
	Detail       *TicketDetail `json:"detalle"`
	Observations []Observation `json:"observaciones"`
	Members      []Member      `json:"integrantes"`
}

// TicketCreateInput is the creation payload.
type TicketCreateInput struct {
	Subject       string `json:"asunto"`
	Description   string `json:"descripcion"`
	Phone         string `json:"telefono"`
	RequesterName string `json:"autor_problema"`
	Event         string `json:"evento,omitempty"`
	LocationID    int    `json:"ubicacion_id"`
	ManualIP      string `json:"ip_manual"`
}

// TicketUpdateInput carries the admin classification fields. Nil fields
// are omitted from the request.
type TicketUpdateInput struct {
	UnitID     *int `json:"unidad_id,omitempty"`
	PriorityID *int `json:"prioridad_id,omitempty"`
	StatusID   *int `json:"estado_id,omitempty"`
}
