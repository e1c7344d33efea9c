package review

import (
	"context"
	"testing"
	"time"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

// fakeTicketAPI records every call so tests can assert a guard fired before
// any request went out.
type fakeTicketAPI struct {
	bundle *domain.TicketBundle

	updates  []domain.TicketUpdateInput
	assigns  []int
	reviews  int
	getCalls int
}

func (f *fakeTicketAPI) GetTicket(_ context.Context, _ int) (*domain.TicketBundle, error) {
	f.getCalls++
	copied := *f.bundle
	return &copied, nil
}

func (f *fakeTicketAPI) UpdateTicket(_ context.Context, _ int, input domain.TicketUpdateInput) error {
	f.updates = append(f.updates, input)
	if input.UnitID != nil {
		f.bundle.Ticket.UnitID = input.UnitID
	}
	if input.PriorityID != nil {
		f.bundle.Ticket.PriorityID = input.PriorityID
	}
	return nil
}

func (f *fakeTicketAPI) AssignSupport(_ context.Context, _, supportID int) error {
	f.assigns = append(f.assigns, supportID)
	f.bundle.Ticket.SupportID = &supportID
	return nil
}

func (f *fakeTicketAPI) MarkReviewed(_ context.Context, _ int) error {
	f.reviews++
	return nil
}

// manualScheduler captures the scheduled callback so tests control time.
type manualScheduler struct {
	fn        func()
	delay     time.Duration
	cancelled bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.fn = fn
	s.delay = d
	return func() { s.cancelled = true }
}

func openTicket() *domain.TicketBundle {
	return &domain.TicketBundle{Ticket: domain.Ticket{TicketID: 12, Status: "abierto"}}
}

func TestAssignBlockedBeforeClassification(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	wf := New(api, nil, &manualScheduler{}, nil)
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wf.State() != StateUnclassified {
		t.Fatalf("fresh ticket should be unclassified, got %s", wf.State())
	}

	err := wf.AssignSupport(context.Background(), 7)
	ce := util.ToClientError(err)
	if ce == nil || ce.Code != util.CodeGuard {
		t.Fatalf("expected guard error, got %v", err)
	}
	if len(api.assigns) != 0 {
		t.Fatalf("guard must fire before any request, got %d assign calls", len(api.assigns))
	}
}

func TestFinalizeBlockedBeforeClassification(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	wf := New(api, nil, &manualScheduler{}, nil)
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := wf.FinalizeReview(context.Background()); util.ToClientError(err).Code != util.CodeGuard {
		t.Fatalf("expected guard error, got %v", err)
	}
	if api.reviews != 0 {
		t.Fatalf("review request went out despite guard")
	}
}

func TestClassificationValidation(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	wf := New(api, nil, &manualScheduler{}, nil)
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := wf.SaveClassification(context.Background(), 0, 2)
	if util.ToClientError(err).Code != util.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(api.updates) != 0 {
		t.Fatalf("invalid classification must not reach the API")
	}
}

func TestClassificationOpensTheGate(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	wf := New(api, nil, &manualScheduler{}, nil)
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := wf.SaveClassification(context.Background(), 5, 2); err != nil {
		t.Fatalf("SaveClassification: %v", err)
	}
	if wf.State() != StateClassified {
		t.Fatalf("state after classification: %s", wf.State())
	}
	if len(api.updates) != 1 || *api.updates[0].UnitID != 5 || *api.updates[0].PriorityID != 2 {
		t.Fatalf("unexpected update payload: %+v", api.updates)
	}

	if err := wf.AssignSupport(context.Background(), 7); err != nil {
		t.Fatalf("AssignSupport after classification: %v", err)
	}
	if len(api.assigns) != 1 || api.assigns[0] != 7 {
		t.Fatalf("unexpected assign calls: %v", api.assigns)
	}
}

func TestLoadDerivesClassifiedFromServerState(t *testing.T) {
	unit, priority := 3, 1
	api := &fakeTicketAPI{bundle: &domain.TicketBundle{
		Ticket: domain.Ticket{TicketID: 12, Status: "abierto", UnitID: &unit, PriorityID: &priority},
	}}
	wf := New(api, nil, &manualScheduler{}, nil)
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wf.State() != StateClassified {
		t.Fatalf("ticket with unit and priority should load classified, got %s", wf.State())
	}

	api2 := &fakeTicketAPI{bundle: &domain.TicketBundle{
		Ticket: domain.Ticket{TicketID: 13, Status: "En Proceso"},
	}}
	wf2 := New(api2, nil, &manualScheduler{}, nil)
	if err := wf2.Load(context.Background(), 13); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wf2.State() != StateClassified {
		t.Fatalf("en proceso ticket should load classified regardless of casing")
	}
}

func TestFinalizeWithoutSupportCarriesAdvisory(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	sched := &manualScheduler{}
	fired := false
	wf := New(api, nil, sched, func() { fired = true })
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := wf.SaveClassification(context.Background(), 5, 2); err != nil {
		t.Fatalf("SaveClassification: %v", err)
	}

	advisory, err := wf.FinalizeReview(context.Background())
	if err != nil {
		t.Fatalf("FinalizeReview: %v", err)
	}
	if advisory == "" {
		t.Fatalf("expected advisory when no support is assigned")
	}
	if api.reviews != 1 {
		t.Fatalf("MarkReviewed calls: %d", api.reviews)
	}
	if sched.fn == nil || sched.delay != RedirectDelay {
		t.Fatalf("redirect not scheduled with RedirectDelay")
	}
	sched.fn()
	if !fired {
		t.Fatalf("onFinalized callback never fired")
	}
}

func TestFinalizeWithSupportHasNoAdvisory(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	wf := New(api, nil, &manualScheduler{}, nil)
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := wf.SaveClassification(context.Background(), 5, 2); err != nil {
		t.Fatalf("SaveClassification: %v", err)
	}
	if err := wf.AssignSupport(context.Background(), 7); err != nil {
		t.Fatalf("AssignSupport: %v", err)
	}

	advisory, err := wf.FinalizeReview(context.Background())
	if err != nil {
		t.Fatalf("FinalizeReview: %v", err)
	}
	if advisory != "" {
		t.Fatalf("unexpected advisory: %q", advisory)
	}
}

func TestStopCancelsPendingRedirect(t *testing.T) {
	api := &fakeTicketAPI{bundle: openTicket()}
	sched := &manualScheduler{}
	wf := New(api, nil, sched, func() {})
	if err := wf.Load(context.Background(), 12); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := wf.SaveClassification(context.Background(), 5, 2); err != nil {
		t.Fatalf("SaveClassification: %v", err)
	}
	if _, err := wf.FinalizeReview(context.Background()); err != nil {
		t.Fatalf("FinalizeReview: %v", err)
	}

	wf.Stop()
	if !sched.cancelled {
		t.Fatalf("Stop must cancel the scheduled redirect")
	}
}
