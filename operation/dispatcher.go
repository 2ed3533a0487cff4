package operation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/internal/logging"
	"github.com/viant/invitation/transport"
)

// DefaultTimeout bounds the wait for a notification when none is configured.
const DefaultTimeout = 30 * time.Second

// PayloadBuilder builds the outbound payload carrying the operation id.
type PayloadBuilder func(operationID string) (any, error)

// LinkResolver resolves a capability to its link target.
type LinkResolver interface {
	Link(c capability.Capability) (string, bool)
}

// Dispatcher submits capability actions and registers their pending results.
type Dispatcher struct {
	Resolver  LinkResolver
	Registry  *Registry
	Submitter transport.Submitter
	Timeout   time.Duration
	NewID     func() string
	Logger    *slog.Logger
}

// Dispatch resolves the capability link, registers a pending entry under a
// fresh operation id, and submits the payload built for that id. The entry
// exists before the submission starts and is evicted if the submission fails.
func (d *Dispatcher) Dispatch(ctx context.Context, c capability.Capability, build PayloadBuilder) (*Pending, error) {
	if d.Resolver == nil || d.Registry == nil || d.Submitter == nil {
		return nil, ErrMisconfigured
	}
	URL, ok := d.Resolver.Link(c)
	if !ok {
		return nil, capability.Unavailable(c)
	}
	id := d.newID()
	payload, err := build(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build %v payload: %w", c, err)
	}
	pending, err := d.Registry.Register(id, c, d.timeout())
	if err != nil {
		return nil, err
	}
	logger := d.logger()
	logger.Debug("dispatching operation", "operation_id", id, "capability", c.String(), "url", URL)
	if err = d.Submitter.Submit(ctx, URL, payload); err != nil {
		d.Registry.evict(id, ReasonSubmitFailed)
		logger.Warn("operation submission failed", "operation_id", id, "capability", c.String(), "error", err)
		return nil, transport.AsError(URL, err)
	}
	pending.setState(WaitingForDispatch, WaitingForNotification)
	return pending, nil
}

func (d *Dispatcher) newID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

func (d *Dispatcher) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logging.NewNop()
}
