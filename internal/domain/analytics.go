package domain

// ResolvedMonth is one bar of the resolved-per-month chart.
type ResolvedMonth struct {
	Month    string `json:"mes"`
	Resolved int    `json:"resueltos"`
}

// MTTRMonth is one point of the monthly mean-time-to-resolution series.
// Hours arrive as a formatted string from the backend.
type MTTRMonth struct {
	Month     string `json:"mes"`
	MTTRHours string `json:"mttr_horas"`
}

// TreemapLocation is one cell of the tickets-by-location treemap.
type TreemapLocation struct {
	Location string `json:"ubicacion"`
	Tickets  int    `json:"tickets"`
}

// TreemapCategory groups treemap cells under an area name.
type TreemapCategory struct {
	Name string            `json:"name"`
	Data []TreemapLocation `json:"data"`
}
