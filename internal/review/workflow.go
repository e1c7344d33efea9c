// Package review implements the admin triage workflow: a ticket must be
// classified (unit and priority saved) before support can be assigned or the
// review finalized.
package review

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

// State is the workflow gate. It never regresses automatically.
type State string

const (
	StateUnclassified State = "sin_clasificar"
	StateClassified   State = "clasificado"
)

// TicketAPI is the slice of the resource client the workflow needs.
type TicketAPI interface {
	GetTicket(ctx context.Context, id int) (*domain.TicketBundle, error)
	UpdateTicket(ctx context.Context, id int, input domain.TicketUpdateInput) error
	AssignSupport(ctx context.Context, ticketID, supportID int) error
	MarkReviewed(ctx context.Context, ticketID int) error
}

// Scheduler runs a function after a delay and returns a cancel func. The
// indirection exists so view teardown can deterministically stop pending
// redirects, and so tests control time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc schedules fn after d.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// RedirectDelay keeps the confirmation visible before leaving the screen.
const RedirectDelay = time.Second

// Workflow drives triage for a single loaded ticket.
type Workflow struct {
	api   TicketAPI
	log   *zap.Logger
	sched Scheduler

	ticketID int
	state    State
	bundle   *domain.TicketBundle

	onFinalized    func()
	cancelRedirect func()
}

// New constructs a workflow. onFinalized fires after the redirect delay once
// a review is finalized; nil is allowed.
func New(api TicketAPI, logger *zap.Logger, sched Scheduler, onFinalized func()) *Workflow {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Workflow{
		api:         api,
		log:         logger,
		sched:       sched,
		state:       StateUnclassified,
		onFinalized: onFinalized,
	}
}

// Load fetches the ticket bundle and derives the initial gate state.
func (w *Workflow) Load(ctx context.Context, ticketID int) error {
	bundle, err := w.api.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	w.ticketID = ticketID
	w.bundle = bundle
	if w.state != StateClassified && deriveClassified(&bundle.Ticket) {
		w.state = StateClassified
	}
	return nil
}

// State returns the current gate state.
func (w *Workflow) State() State {
	return w.state
}

// Bundle returns the last loaded ticket bundle.
func (w *Workflow) Bundle() *domain.TicketBundle {
	return w.bundle
}

// SaveClassification persists unit and priority. Both are required; on
// success the gate opens and the ticket is reloaded.
func (w *Workflow) SaveClassification(ctx context.Context, unitID, priorityID int) error {
	if unitID <= 0 || priorityID <= 0 {
		return util.NewValidationError("debe seleccionar unidad y prioridad")
	}
	input := domain.TicketUpdateInput{UnitID: &unitID, PriorityID: &priorityID}
	if err := w.api.UpdateTicket(ctx, w.ticketID, input); err != nil {
		return err
	}
	w.state = StateClassified
	return w.reload(ctx)
}

// AssignSupport assigns a support user. Blocked until classification is
// saved; the guard fires before any request is made.
func (w *Workflow) AssignSupport(ctx context.Context, supportID int) error {
	if w.state != StateClassified {
		return util.NewGuardError("debe clasificar el ticket antes de asignar soporte")
	}
	if supportID <= 0 {
		return util.NewValidationError("debe seleccionar un soporte")
	}
	if err := w.api.AssignSupport(ctx, w.ticketID, supportID); err != nil {
		return err
	}
	return w.reload(ctx)
}

// FinalizeReview marks the ticket reviewed. Blocked until classified. When
// no support is assigned the returned advisory is non-empty but finalization
// proceeds. On success the onFinalized callback is scheduled after
// RedirectDelay.
func (w *Workflow) FinalizeReview(ctx context.Context) (advisory string, err error) {
	if w.state != StateClassified {
		return "", util.NewGuardError("debe clasificar el ticket antes de finalizar la revisión")
	}
	if !w.hasAssignedSupport() {
		advisory = "el ticket no tiene soporte asignado"
		if w.log != nil {
			w.log.Warn("finalizing review without assigned support", zap.Int("ticket_id", w.ticketID))
		}
	}
	if err := w.api.MarkReviewed(ctx, w.ticketID); err != nil {
		return advisory, err
	}
	if w.onFinalized != nil {
		w.cancelRedirect = w.sched.AfterFunc(RedirectDelay, w.onFinalized)
	}
	return advisory, nil
}

// Stop cancels any pending redirect. Called on view teardown.
func (w *Workflow) Stop() {
	if w.cancelRedirect != nil {
		w.cancelRedirect()
		w.cancelRedirect = nil
	}
}

func (w *Workflow) reload(ctx context.Context) error {
	bundle, err := w.api.GetTicket(ctx, w.ticketID)
	if err != nil {
		return err
	}
	w.bundle = bundle
	return nil
}

func (w *Workflow) hasAssignedSupport() bool {
	if w.bundle == nil {
		return false
	}
	if w.bundle.Ticket.SupportID != nil {
		return true
	}
	return w.bundle.Detail != nil && w.bundle.Detail.SupportID != nil
}

// deriveClassified reproduces the server-state heuristic: a ticket already
// in process, or with both unit and priority recorded, counts as classified.
func deriveClassified(t *domain.Ticket) bool {
	if strings.EqualFold(strings.TrimSpace(t.Status), string(domain.TicketStatusInProcess)) {
		return true
	}
	return t.UnitID != nil && t.PriorityID != nil
}
