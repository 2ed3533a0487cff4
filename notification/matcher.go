package notification

import (
	"context"
	"log/slog"

	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/internal/logging"
	"github.com/viant/invitation/operation"
	"github.com/viant/jsonrpc"
)

// Deliverer accepts events from an ingestion path. It reports whether the
// event matched a pending operation; an error means the event was not
// accepted and the sender should retry.
type Deliverer interface {
	Deliver(ctx context.Context, event *Event) (bool, error)
}

// NotificationHandler consumes JSON-RPC notifications.
type NotificationHandler interface {
	OnNotification(ctx context.Context, notification *jsonrpc.Notification)
}

// Matcher resolves pending operations with delivered events.
type Matcher struct {
	registry *operation.Registry
	decoders map[capability.Capability]Decoder
	logger   *slog.Logger
}

// Option customizes a Matcher.
type Option func(m *Matcher)

// WithDecoder sets the result decoder for a capability (aliases share it).
func WithDecoder(c capability.Capability, decoder Decoder) Option {
	return func(m *Matcher) {
		m.decoders[c.Canonical()] = decoder
	}
}

// WithLogger sets the matcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Deliver resolves the pending operation referenced by event. It returns
// false when nothing was pending under that id; such events are dropped.
func (m *Matcher) Deliver(ctx context.Context, event *Event) (bool, error) {
	if event == nil {
		return false, nil
	}
	if err := event.Validate(); err != nil {
		m.logger.Warn("dropping invalid event", "error", err)
		return false, nil
	}
	return m.registry.ResolveFunc(event.OperationID, func(p *operation.Pending) operation.Outcome {
		return m.outcome(p, event)
	}), nil
}

func (m *Matcher) outcome(p *operation.Pending, event *Event) operation.Outcome {
	if event.Failed() {
		return operation.Outcome{Err: &operation.RemoteError{OperationID: event.OperationID, Reason: event.Reason}}
	}
	decode, ok := m.decoders[p.Capability.Canonical()]
	if !ok {
		decode = raw
	}
	value, err := decode(event)
	if err != nil {
		m.logger.Warn("notification result rejected", "operation_id", event.OperationID, "capability", p.Capability.String(), "error", err)
		return operation.Outcome{Err: err}
	}
	return operation.Outcome{Value: value}
}

// OnNotification handles a JSON-RPC notification carrying an Event as params.
func (m *Matcher) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	if notification == nil || notification.Method != MethodOperationCompleted {
		return
	}
	event, err := eventFromNotification(notification)
	if err != nil {
		m.logger.Warn("failed to parse notification params", "method", notification.Method, "error", err)
		return
	}
	_, _ = m.Deliver(ctx, event)
}

// NewMatcher creates a matcher resolving entries of registry.
func NewMatcher(registry *operation.Registry, options ...Option) *Matcher {
	ret := &Matcher{
		registry: registry,
		decoders: map[capability.Capability]Decoder{},
		logger:   logging.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
