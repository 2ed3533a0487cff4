package operation

import (
	"context"
	"fmt"
	"time"
)

// Await blocks until the slot resolves, the deadline passes, or ctx is done.
//
// The deadline is ExpiresAt, measured from registration, so the submission
// time counts against the same budget. On timeout or cancellation the entry
// is evicted first; if a notification won the race to the registry, its
// outcome is returned instead.
func (p *Pending) Await(ctx context.Context) (any, error) {
	timer := time.NewTimer(p.ExpiresAt.Sub(p.registry.now()))
	defer timer.Stop()
	select {
	case <-p.done:
		return p.outcome.Value, p.outcome.Err
	case <-timer.C:
		err := fmt.Errorf("%w: %v after %v", ErrOperationTimeout, p.ID, p.ExpiresAt.Sub(p.CreatedAt))
		if !p.registry.evict(p.ID, ReasonTimeout) {
			return p.late(err)
		}
		return nil, err
	case <-ctx.Done():
		if !p.registry.evict(p.ID, ReasonCancelled) {
			return p.late(ctx.Err())
		}
		return nil, ctx.Err()
	}
}

// late handles a lost eviction: a resolver that already claimed the entry
// fills the slot promptly, any other claimant leaves it empty.
func (p *Pending) late(fallback error) (any, error) {
	if p.State() != Resolved {
		return nil, fallback
	}
	<-p.done
	return p.outcome.Value, p.outcome.Err
}

// Await waits on p and asserts the resolved value as T; a value of another
// type fails with ErrUnexpectedResultShape.
func Await[T any](ctx context.Context, p *Pending) (T, error) {
	var zero T
	value, err := p.Await(ctx)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, UnexpectedShape(p.ID, fmt.Sprintf("expected %T, but had %T", zero, value))
	}
	return typed, nil
}
