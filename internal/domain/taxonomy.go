package domain

// Location is a physical place tickets originate from, grouped under an area.
type Location struct {
	LocationID int     `json:"ubicacion_id"`
	Name       string  `json:"ubicacion"`
	AreaID     *int    `json:"area_id"`
	AreaName   *string `json:"nombre_area"`
}

// Area groups locations.
type Area struct {
	AreaID int    `json:"area_id"`
	Name   string `json:"nombre_area"`
}

// EventType categorizes what happened.
type EventType struct {
	EventID int    `json:"evento_id"`
	Name    string `json:"evento"`
}

// Unit is a responsible support unit assigned during classification.
type Unit struct {
	UnitID int    `json:"unidad_id"`
	Name   string `json:"unidad"`
}

// StatusType is a backend-defined ticket status record.
type StatusType struct {
	StatusID int    `json:"estado_id"`
	Name     string `json:"estado"`
}

// PriorityType is a backend-defined priority record.
type PriorityType struct {
	PriorityID int    `json:"prioridad_id"`
	Name       string `json:"prioridad"`
}

// OriginType is a backend-defined ticket origin record.
type OriginType struct {
	OriginID int    `json:"origen_id"`
	Name     string `json:"origen"`
}
