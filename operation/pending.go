package operation

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/invitation/capability"
)

// State represents a pending operation lifecycle stage.
type State int32

const (
	// WaitingForDispatch is set from registration until the submission returns.
	WaitingForDispatch State = iota
	// WaitingForNotification is set once the submission succeeded.
	WaitingForNotification
	// Resolved is set when a matching notification resolved the slot.
	Resolved
	// TimedOut is set when the deadline passed before resolution.
	TimedOut
	// Cancelled is set when the entry was evicted for any other reason.
	Cancelled
)

func (s State) String() string {
	switch s {
	case WaitingForDispatch:
		return "waitingForDispatch"
	case WaitingForNotification:
		return "waitingForNotification"
	case Resolved:
		return "resolved"
	case TimedOut:
		return "timedOut"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Outcome is the value or failure carried by a notification.
type Outcome struct {
	Value any
	Err   error
}

// Pending represents an operation awaiting its out-of-band result.
type Pending struct {
	ID         string
	Capability capability.Capability
	CreatedAt  time.Time
	ExpiresAt  time.Time

	registry *Registry
	state    atomic.Int32
	done     chan struct{}
	once     sync.Once
	outcome  Outcome
}

// State returns the current lifecycle stage.
func (p *Pending) State() State {
	return State(p.state.Load())
}

// Done returns a channel closed once the slot is filled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Outcome returns the slot value; it is valid only after Done is closed.
func (p *Pending) Outcome() Outcome {
	return p.outcome
}

func (p *Pending) setState(from, to State) bool {
	return p.state.CompareAndSwap(int32(from), int32(to))
}

// fill transitions the slot; only the first call has an effect.
func (p *Pending) fill(outcome Outcome) bool {
	filled := false
	p.once.Do(func() {
		p.outcome = outcome
		close(p.done)
		filled = true
	})
	return filled
}

func newPending(id string, c capability.Capability, createdAt time.Time, timeout time.Duration, registry *Registry) *Pending {
	return &Pending{
		ID:         id,
		Capability: c,
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(timeout),
		registry:   registry,
		done:       make(chan struct{}),
	}
}
