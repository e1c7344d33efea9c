package mockapi

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/azauting/hospitalcm/internal/domain"
)

// Store holds the mock backend dataset in memory. It owns the ticket state
// machine the portal expects from the real backend: abierto → en proceso
// (classification) → revisado → cerrado, with cancelado reachable from the
// pre-review states.
type Store struct {
	mu sync.RWMutex

	users      map[int]*userRecord
	tickets    map[int]*ticketRecord
	locations  map[int]domain.Location
	areas      map[int]domain.Area
	events     map[int]domain.EventType
	units      map[int]domain.Unit
	statuses   map[int]domain.StatusType
	priorities map[int]domain.PriorityType
	origins    map[int]domain.OriginType
	movements  []domain.Movement

	nextUserID     int
	nextTicketID   int
	nextTypeID     int
	nextMovementID int
}

type userRecord struct {
	domain.User
	PasswordHash string
}

type ticketRecord struct {
	domain.Ticket
	RequesterID  int
	LocationID   int
	Observations []domain.Observation
	Members      []domain.Member
	ClosedAt     *time.Time
}

// Catalog errors surfaced through the envelope as success=false.
var (
	errNotFound       = errors.New("recurso no encontrado")
	errNotClassified  = errors.New("el ticket debe ser clasificado primero")
	errBadTransition  = errors.New("transición de estado no permitida")
	errAccessDenied   = errors.New("acceso denegado")
	errDuplicateEmail = errors.New("el correo ya está registrado")
)

// NewStore returns an empty store with counters initialized.
func NewStore() *Store {
	return &Store{
		users:          make(map[int]*userRecord),
		tickets:        make(map[int]*ticketRecord),
		locations:      make(map[int]domain.Location),
		areas:          make(map[int]domain.Area),
		events:         make(map[int]domain.EventType),
		units:          make(map[int]domain.Unit),
		statuses:       make(map[int]domain.StatusType),
		priorities:     make(map[int]domain.PriorityType),
		origins:        make(map[int]domain.OriginType),
		nextUserID:     1,
		nextTicketID:   1,
		nextTypeID:     1,
		nextMovementID: 1,
	}
}

// ---- users ----

// AddUser registers a user with a pre-hashed password.
func (s *Store) AddUser(user domain.User, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, errDuplicateEmail
		}
	}
	user.UserID = s.nextUserID
	s.nextUserID++
	if user.Active == 0 {
		user.Active = 1
	}
	s.users[user.UserID] = &userRecord{User: user, PasswordHash: passwordHash}
	copied := user
	return &copied, nil
}

// FindByEmail returns the user and password hash for a login attempt.
func (s *Store) FindByEmail(email string) (*domain.User, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.Email, email) && rec.Active == 1 {
			user := rec.User
			return &user, rec.PasswordHash, true
		}
	}
	return nil, "", false
}

// GetUser returns one user by id.
func (s *Store) GetUser(id int) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	user := rec.User
	return &user, true
}

// UsersByRole lists users holding the given role.
func (s *Store) UsersByRole(role domain.Role) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.User{}
	for _, rec := range s.users {
		if rec.Role == role {
			out = append(out, rec.User)
		}
	}
	return out
}

// AvailableSupports lists active support users.
func (s *Store) AvailableSupports() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.User{}
	for _, rec := range s.users {
		if rec.Role == domain.RoleSupport && rec.Active == 1 {
			out = append(out, rec.User)
		}
	}
	return out
}

// UpdateUser patches mutable user fields.
func (s *Store) UpdateUser(id int, input domain.UserUpdateInput, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return errNotFound
	}
	if passwordHash != "" {
		rec.PasswordHash = passwordHash
	}
	if input.RoleID != nil {
		rec.RoleID = *input.RoleID
		rec.Role = roleFromID(*input.RoleID)
	}
	if input.UnitID != nil {
		rec.UnitID = input.UnitID
		if unit, ok := s.units[*input.UnitID]; ok {
			rec.Unit = unit.Name
		}
	}
	if input.Active != nil {
		rec.Active = *input.Active
	}
	return nil
}

func roleFromID(id int) domain.Role {
	switch id {
	case 1:
		return domain.RoleAdmin
	case 2:
		return domain.RoleSupport
	default:
		return domain.RoleRequester
	}
}

// RoleID maps a role back to its catalog id.
func RoleID(role domain.Role) int {
	switch role {
	case domain.RoleAdmin:
		return 1
	case domain.RoleSupport:
		return 2
	default:
		return 3
	}
}

// ---- tickets ----

// CreateTicket stores a new ticket in estado abierto.
func (s *Store) CreateTicket(requester *domain.User, input domain.TicketCreateInput) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[input.LocationID]
	if !ok {
		return nil, errNotFound
	}
	rec := &ticketRecord{
		Ticket: domain.Ticket{
			TicketID:      s.nextTicketID,
			Subject:       strings.TrimSpace(input.Subject),
			Description:   strings.TrimSpace(input.Description),
			Phone:         input.Phone,
			RequesterName: input.RequesterName,
			Origin:        "web",
			Event:         input.Event,
			Status:        string(domain.TicketStatusOpen),
			CreatedAt:     time.Now(),
		},
		RequesterID: requester.UserID,
		LocationID:  loc.LocationID,
	}
	if rec.RequesterName == "" {
		rec.RequesterName = requester.FullName
	}
	s.nextTicketID++
	s.tickets[rec.TicketID] = rec
	s.recordMovement(rec.TicketID, requester.FullName, "creacion_ticket")
	ticket := rec.Ticket
	return &ticket, nil
}

// GetBundle assembles the detail aggregate for one ticket.
func (s *Store) GetBundle(id int) (*domain.TicketBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tickets[id]
	if !ok {
		return nil, errNotFound
	}
	bundle := &domain.TicketBundle{
		Ticket:       rec.Ticket,
		Observations: append([]domain.Observation{}, rec.Observations...),
		Members:      append([]domain.Member{}, rec.Members...),
	}
	if rec.SupportID != nil {
		detail := &domain.TicketDetail{SupportID: rec.SupportID}
		if support, ok := s.users[*rec.SupportID]; ok {
			name := support.FullName
			detail.SupportName = &name
		}
		bundle.Detail = detail
	}
	return bundle, nil
}

// ticketFilter selects tickets for the list endpoints.
type ticketFilter func(*ticketRecord) bool

func (s *Store) listTickets(match ticketFilter) []domain.TicketSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.TicketSummary{}
	for _, rec := range s.tickets {
		if !match(rec) {
			continue
		}
		out = append(out, domain.TicketSummary{
			TicketID:      rec.TicketID,
			Subject:       rec.Subject,
			RequesterName: rec.RequesterName,
			Status:        rec.Status,
			Priority:      rec.Priority,
			Unit:          rec.Unit,
			Origin:        rec.Origin,
			Event:         rec.Event,
			CreatedAt:     rec.CreatedAt,
		})
	}
	return out
}

// MyTickets lists tickets created by the user.
func (s *Store) MyTickets(userID int) []domain.TicketSummary {
	return s.listTickets(func(r *ticketRecord) bool { return r.RequesterID == userID })
}

// UnreviewedTickets lists tickets still in estado abierto or en proceso.
func (s *Store) UnreviewedTickets() []domain.TicketSummary {
	return s.listTickets(func(r *ticketRecord) bool {
		return r.Status == string(domain.TicketStatusOpen) || r.Status == string(domain.TicketStatusInProcess)
	})
}

// ReviewedTickets lists tickets in estado revisado or resuelto.
func (s *Store) ReviewedTickets() []domain.TicketSummary {
	return s.listTickets(func(r *ticketRecord) bool {
		return r.Status == string(domain.TicketStatusReviewed) || r.Status == string(domain.TicketStatusResolved)
	})
}

// ClosedTickets lists closed and cancelled tickets.
func (s *Store) ClosedTickets() []domain.TicketSummary {
	return s.listTickets(func(r *ticketRecord) bool {
		return r.Status == string(domain.TicketStatusClosed) || r.Status == string(domain.TicketStatusCancelled)
	})
}

// AssignedTickets lists tickets assigned to the support user.
func (s *Store) AssignedTickets(supportID int) []domain.TicketSummary {
	return s.listTickets(func(r *ticketRecord) bool {
		return r.SupportID != nil && *r.SupportID == supportID
	})
}

// Classify records unit/priority/status ids and advances abierto tickets to
// en proceso once both unit and priority are known.
func (s *Store) Classify(id int, actor string, input domain.TicketUpdateInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	if input.UnitID != nil {
		unit, ok := s.units[*input.UnitID]
		if !ok {
			return errNotFound
		}
		rec.UnitID = input.UnitID
		rec.Unit = unit.Name
	}
	if input.PriorityID != nil {
		priority, ok := s.priorities[*input.PriorityID]
		if !ok {
			return errNotFound
		}
		rec.PriorityID = input.PriorityID
		rec.Priority = priority.Name
	}
	if input.StatusID != nil {
		status, ok := s.statuses[*input.StatusID]
		if !ok {
			return errNotFound
		}
		rec.StatusID = input.StatusID
		rec.Status = status.Name
	} else if rec.Status == string(domain.TicketStatusOpen) && rec.UnitID != nil && rec.PriorityID != nil {
		rec.Status = string(domain.TicketStatusInProcess)
	}
	s.recordMovement(id, actor, "clasificacion_ticket")
	return nil
}

// Assign sets the responsible support user. Requires classification.
func (s *Store) Assign(id, supportID int, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	if rec.UnitID == nil || rec.PriorityID == nil {
		return errNotClassified
	}
	support, ok := s.users[supportID]
	if !ok || support.Role != domain.RoleSupport {
		return errNotFound
	}
	rec.SupportID = &support.UserID
	s.recordMovement(id, actor, "asignacion_soporte")
	return nil
}

// MarkReviewed finalizes triage. Requires classification.
func (s *Store) MarkReviewed(id int, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	if rec.UnitID == nil || rec.PriorityID == nil {
		return errNotClassified
	}
	if rec.Status != string(domain.TicketStatusOpen) && rec.Status != string(domain.TicketStatusInProcess) {
		return errBadTransition
	}
	rec.Status = string(domain.TicketStatusReviewed)
	s.recordMovement(id, actor, "revision_finalizada")
	return nil
}

// Close closes a reviewed or in-process ticket with a final response.
func (s *Store) Close(id int, actor, finalResponse string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	switch rec.Status {
	case string(domain.TicketStatusReviewed), string(domain.TicketStatusInProcess), string(domain.TicketStatusResolved):
	default:
		return errBadTransition
	}
	now := time.Now()
	rec.Status = string(domain.TicketStatusClosed)
	rec.FinalResponse = &finalResponse
	rec.ClosedAt = &now
	s.recordMovement(id, actor, "cierre_ticket")
	return nil
}

// Cancel cancels a ticket that has not yet been reviewed. Only the
// requester may cancel.
func (s *Store) Cancel(id, userID int, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	if rec.RequesterID != userID {
		return errAccessDenied
	}
	if rec.Status != string(domain.TicketStatusOpen) && rec.Status != string(domain.TicketStatusInProcess) {
		return errBadTransition
	}
	rec.Status = string(domain.TicketStatusCancelled)
	s.recordMovement(id, actor, "cancelacion_ticket")
	return nil
}

// AddObservation appends a worklog entry.
func (s *Store) AddObservation(id int, author *domain.User, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	rec.Observations = append(rec.Observations, domain.Observation{
		ObservationID: len(rec.Observations) + 1,
		Text:          text,
		AuthorName:    author.FullName,
		CreatedAt:     time.Now(),
	})
	s.recordMovement(id, author.FullName, "nueva_observacion")
	return nil
}

// AddMember adds a collaborating support user to the ticket.
func (s *Store) AddMember(id, userID int, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tickets[id]
	if !ok {
		return errNotFound
	}
	member, ok := s.users[userID]
	if !ok {
		return errNotFound
	}
	for _, existing := range rec.Members {
		if existing.UserID == userID {
			return nil
		}
	}
	rec.Members = append(rec.Members, domain.Member{UserID: member.UserID, FullName: member.FullName})
	s.recordMovement(id, actor, "nuevo_integrante")
	return nil
}

// TicketOwner reports whether userID created the ticket.
func (s *Store) TicketOwner(id, userID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tickets[id]
	return ok && rec.RequesterID == userID
}

// ---- movements ----

const movementLogLimit = 20

func (s *Store) recordMovement(ticketID int, actor, kind string) {
	s.movements = append([]domain.Movement{{
		MovementLogID: s.nextMovementID,
		TicketID:      ticketID,
		MovementID:    s.nextMovementID,
		ActorName:     actor,
		Kind:          kind,
		At:            time.Now(),
	}}, s.movements...)
	s.nextMovementID++
	if len(s.movements) > movementLogLimit {
		s.movements = s.movements[:movementLogLimit]
	}
}

// RecentMovements returns the newest-first movement log.
func (s *Store) RecentMovements() []domain.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Movement{}, s.movements...)
}

// ---- taxonomy ----

// AddArea inserts an area.
func (s *Store) AddArea(name string) domain.Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	area := domain.Area{AreaID: s.nextTypeID, Name: name}
	s.nextTypeID++
	s.areas[area.AreaID] = area
	return area
}

// UpdateArea renames an area.
func (s *Store) UpdateArea(id int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	area, ok := s.areas[id]
	if !ok {
		return errNotFound
	}
	area.Name = name
	s.areas[id] = area
	return nil
}

// Areas lists areas.
func (s *Store) Areas() []domain.Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Area{}
	for _, area := range s.areas {
		out = append(out, area)
	}
	return out
}

// AddLocation inserts a location under an area.
func (s *Store) AddLocation(name string, areaID int) (domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	area, ok := s.areas[areaID]
	if !ok {
		return domain.Location{}, errNotFound
	}
	loc := domain.Location{LocationID: s.nextTypeID, Name: name, AreaID: &area.AreaID, AreaName: &area.Name}
	s.nextTypeID++
	s.locations[loc.LocationID] = loc
	return loc, nil
}

// UpdateLocation renames or re-parents a location.
func (s *Store) UpdateLocation(id int, name string, areaID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[id]
	if !ok {
		return errNotFound
	}
	area, ok := s.areas[areaID]
	if !ok {
		return errNotFound
	}
	loc.Name = name
	loc.AreaID = &area.AreaID
	loc.AreaName = &area.Name
	s.locations[id] = loc
	return nil
}

// Locations lists locations.
func (s *Store) Locations() []domain.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Location{}
	for _, loc := range s.locations {
		out = append(out, loc)
	}
	return out
}

// AddEvent inserts an event type.
func (s *Store) AddEvent(name string) domain.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	event := domain.EventType{EventID: s.nextTypeID, Name: name}
	s.nextTypeID++
	s.events[event.EventID] = event
	return event
}

// UpdateEvent renames an event type.
func (s *Store) UpdateEvent(id int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return errNotFound
	}
	event.Name = name
	s.events[id] = event
	return nil
}

// Events lists event types.
func (s *Store) Events() []domain.EventType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.EventType{}
	for _, event := range s.events {
		out = append(out, event)
	}
	return out
}

// AddUnit inserts a support unit.
func (s *Store) AddUnit(name string) domain.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	unit := domain.Unit{UnitID: s.nextTypeID, Name: name}
	s.nextTypeID++
	s.units[unit.UnitID] = unit
	return unit
}

// Units lists support units.
func (s *Store) Units() []domain.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Unit{}
	for _, unit := range s.units {
		out = append(out, unit)
	}
	return out
}

// AddStatus inserts a status record.
func (s *Store) AddStatus(name string) domain.StatusType {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := domain.StatusType{StatusID: s.nextTypeID, Name: name}
	s.nextTypeID++
	s.statuses[status.StatusID] = status
	return status
}

// Statuses lists the status catalog.
func (s *Store) Statuses() []domain.StatusType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.StatusType{}
	for _, status := range s.statuses {
		out = append(out, status)
	}
	return out
}

// AddPriority inserts a priority record.
func (s *Store) AddPriority(name string) domain.PriorityType {
	s.mu.Lock()
	defer s.mu.Unlock()
	priority := domain.PriorityType{PriorityID: s.nextTypeID, Name: name}
	s.nextTypeID++
	s.priorities[priority.PriorityID] = priority
	return priority
}

// Priorities lists the priority catalog.
func (s *Store) Priorities() []domain.PriorityType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.PriorityType{}
	for _, priority := range s.priorities {
		out = append(out, priority)
	}
	return out
}

// AddOrigin inserts an origin record.
func (s *Store) AddOrigin(name string) domain.OriginType {
	s.mu.Lock()
	defer s.mu.Unlock()
	origin := domain.OriginType{OriginID: s.nextTypeID, Name: name}
	s.nextTypeID++
	s.origins[origin.OriginID] = origin
	return origin
}

// Origins lists the origin catalog.
func (s *Store) Origins() []domain.OriginType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.OriginType{}
	for _, origin := range s.origins {
		out = append(out, origin)
	}
	return out
}

// ---- analytics ----

// CountCreatedToday returns tickets created since local midnight.
func (s *Store) CountCreatedToday(now time.Time) int {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.tickets {
		if !rec.CreatedAt.Before(start) {
			count++
		}
	}
	return count
}

// CountClosedToday returns tickets closed since local midnight.
func (s *Store) CountClosedToday(now time.Time) int {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.tickets {
		if rec.ClosedAt != nil && !rec.ClosedAt.Before(start) {
			count++
		}
	}
	return count
}

// CountByStatus returns the number of tickets in the given estado.
func (s *Store) CountByStatus(status domain.TicketStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.tickets {
		if rec.Status == string(status) {
			count++
		}
	}
	return count
}

// ResolvedPerMonth aggregates closures by calendar month.
func (s *Store) ResolvedPerMonth() []domain.ResolvedMonth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMonth := map[string]int{}
	for _, rec := range s.tickets {
		if rec.ClosedAt == nil {
			continue
		}
		byMonth[rec.ClosedAt.Format("2006-01")]++
	}
	out := make([]domain.ResolvedMonth, 0, len(byMonth))
	for month, count := range byMonth {
		out = append(out, domain.ResolvedMonth{Month: month, Resolved: count})
	}
	return out
}

// MonthlyMTTR aggregates mean time to resolution by closing month.
func (s *Store) MonthlyMTTR() []domain.MTTRMonth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sums := map[string]time.Duration{}
	counts := map[string]int{}
	for _, rec := range s.tickets {
		if rec.ClosedAt == nil {
			continue
		}
		month := rec.ClosedAt.Format("2006-01")
		sums[month] += rec.ClosedAt.Sub(rec.CreatedAt)
		counts[month]++
	}
	out := make([]domain.MTTRMonth, 0, len(sums))
	for month, sum := range sums {
		hours := sum.Hours() / float64(counts[month])
		out = append(out, domain.MTTRMonth{Month: month, MTTRHours: fmt.Sprintf("%.1f", hours)})
	}
	return out
}

// LocationsTreemap groups ticket counts by area and location.
func (s *Store) LocationsTreemap() []domain.TreemapCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	perLocation := map[int]int{}
	for _, rec := range s.tickets {
		perLocation[rec.LocationID]++
	}
	byArea := map[string][]domain.TreemapLocation{}
	for locID, count := range perLocation {
		loc, ok := s.locations[locID]
		if !ok {
			continue
		}
		areaName := "sin área"
		if loc.AreaName != nil {
			areaName = *loc.AreaName
		}
		byArea[areaName] = append(byArea[areaName], domain.TreemapLocation{Location: loc.Name, Tickets: count})
	}
	out := make([]domain.TreemapCategory, 0, len(byArea))
	for name, data := range byArea {
		out = append(out, domain.TreemapCategory{Name: name, Data: data})
	}
	return out
}
