package operation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/internal/collection"
	"github.com/viant/invitation/internal/logging"
)

// Registry is the concurrency-safe table of pending operations keyed by id.
// Removal from the map is the single gate for resolution and eviction, so
// every entry is consumed exactly once.
type Registry struct {
	byID     *collection.SyncMap[string, *Pending]
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

// RegistryOption customizes a Registry.
type RegistryOption func(r *Registry)

// WithObserver sets the lifecycle observer.
func WithObserver(observer Observer) RegistryOption {
	return func(r *Registry) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Register adds a pending entry whose deadline is timeout from now.
func (r *Registry) Register(id string, c capability.Capability, timeout time.Duration) (*Pending, error) {
	p := newPending(id, c, r.now(), timeout, r)
	if !r.byID.PutIfAbsent(id, p) {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateOperation, id)
	}
	r.observer.Registered(c)
	return p, nil
}

// Get returns the pending entry for id.
func (r *Registry) Get(id string) (*Pending, bool) {
	return r.byID.Get(id)
}

// Len returns the number of pending entries.
func (r *Registry) Len() int {
	return r.byID.Len()
}

// Resolve removes the entry for id and fills its slot with outcome.
// It returns false when no entry exists.
func (r *Registry) Resolve(id string, outcome Outcome) bool {
	return r.ResolveFunc(id, func(*Pending) Outcome { return outcome })
}

// ResolveFunc removes the entry for id and fills its slot with the outcome
// computed by fn; fn runs outside the lock and only for a matched entry.
func (r *Registry) ResolveFunc(id string, fn func(p *Pending) Outcome) bool {
	p, ok := r.take(id, Resolved)
	if !ok {
		r.logger.Debug("dropping unmatched operation result", "operation_id", id)
		r.observer.Unmatched()
		return false
	}
	outcome := fn(p)
	p.fill(outcome)
	r.observer.Resolved(p.Capability, r.now().Sub(p.CreatedAt), outcome.Err)
	return true
}

// Evict removes the entry for id unconditionally.
func (r *Registry) Evict(id string) bool {
	return r.evict(id, ReasonEvicted)
}

func (r *Registry) evict(id string, reason Reason) bool {
	state := Cancelled
	if reason == ReasonTimeout || reason == ReasonExpired {
		state = TimedOut
	}
	p, ok := r.take(id, state)
	if !ok {
		return false
	}
	r.logger.Debug("evicted pending operation", "operation_id", id, "reason", reason)
	r.observer.Evicted(p.Capability, reason)
	return true
}

// take removes the entry for id and moves it to its terminal state before
// the removal is visible.
func (r *Registry) take(id string, state State) (*Pending, bool) {
	return r.byID.Take(id, func(p *Pending) {
		p.state.Store(int32(state))
	})
}

// Sweep evicts entries whose deadline passed before now and returns their ids.
// It reclaims entries whose waiter is gone, e.g. a dispatch never awaited.
func (r *Registry) Sweep(now time.Time) []string {
	var expired []string
	r.byID.Range(func(id string, p *Pending) bool {
		if now.After(p.ExpiresAt) {
			expired = append(expired, id)
		}
		return true
	})
	var ret []string
	for _, id := range expired {
		if r.evict(id, ReasonExpired) {
			ret = append(ret, id)
		}
	}
	return ret
}

// DefaultSweepInterval is used by Run when no positive interval is given.
const DefaultSweepInterval = 10 * time.Second

// Run sweeps expired entries every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ids := r.Sweep(r.now()); len(ids) > 0 {
				r.logger.Warn("swept expired pending operations", "count", len(ids))
			}
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...RegistryOption) *Registry {
	ret := &Registry{
		byID:     collection.NewSyncMap[string, *Pending](),
		observer: nopObserver{},
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
