package domain

import "time"

// Movement is one recent-activity entry from the global movement log.
type Movement struct {
	MovementLogID int       `json:"ticket_movimiento_id"`
	TicketID      int       `json:"ticket_id"`
	MovementID    int       `json:"movimiento_id"`
	ActorName     string    `json:"nombre_completo"`
	Kind          string    `json:"tipo_movimiento"`
	At            time.Time `json:"fecha"`
}
