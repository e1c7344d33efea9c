// Package feed implements the recent-activity sidebar poller: a fixed
// interval fetch of the global movement log with change detection so
// unchanged responses never trigger a re-render.
package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/domain"
	"github.com/azauting/hospitalcm/pkg/util"
)

// Source provides the movement log. Satisfied by the api.Client.
type Source interface {
	RecentMovements(ctx context.Context) ([]domain.Movement, error)
}

// Poller fetches movements on a fixed interval, firing once immediately on
// start. A 401/403 stops it permanently; envelope or network hiccups are
// logged and skipped so the sidebar does not flicker on transient failures.
type Poller struct {
	source   Source
	log      *zap.Logger
	interval time.Duration

	mu        sync.Mutex
	movements []domain.Movement
	expired   bool
}

// NewPoller builds a poller over the given source.
func NewPoller(source Source, logger *zap.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Poller{
		source:   source,
		log:      logger,
		interval: interval,
	}
}

// Run polls until ctx is cancelled or the session expires. It performs one
// immediate poll before the first interval elapses.
func (p *Poller) Run(ctx context.Context) {
	p.Poll(ctx)
	if p.SessionExpired() {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
			if p.SessionExpired() {
				return
			}
		}
	}
}

// Poll performs a single fetch-and-diff tick. It reports whether the held
// list was replaced.
func (p *Poller) Poll(ctx context.Context) bool {
	if p.SessionExpired() {
		return false
	}

	movements, err := p.source.RecentMovements(ctx)
	if err != nil {
		if util.IsUnauthorized(err) {
			p.mu.Lock()
			p.expired = true
			p.mu.Unlock()
			if p.log != nil {
				p.log.Warn("movement feed stopped, session expired")
			}
			return false
		}
		// Transient failure: keep the current list, no user-facing error.
		if p.log != nil {
			p.log.Debug("movement poll skipped", zap.Error(err))
		}
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !changed(p.movements, movements) {
		return false
	}
	p.movements = movements
	return true
}

// Movements returns a snapshot of the held list.
func (p *Poller) Movements() []domain.Movement {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Movement, len(p.movements))
	copy(out, p.movements)
	return out
}

// SessionExpired reports whether polling stopped on an auth failure.
func (p *Poller) SessionExpired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expired
}

// Dismiss removes one entry locally without contacting the server. The entry
// may reappear on the next successful poll; that is accepted behavior.
func (p *Poller) Dismiss(movementLogID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.movements[:0]
	for _, m := range p.movements {
		if m.MovementLogID != movementLogID {
			kept = append(kept, m)
		}
	}
	p.movements = kept
}

// changed reports whether the fetched list differs from the held one by
// length or by the identity of its newest entry.
func changed(held, fetched []domain.Movement) bool {
	if len(held) != len(fetched) {
		return true
	}
	if len(fetched) == 0 {
		return false
	}
	return held[0].MovementLogID != fetched[0].MovementLogID
}
