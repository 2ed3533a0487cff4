package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/viant/invitation/internal/logging"
	"github.com/viant/jsonrpc"
)

// DefaultChannel is the Redis channel used by Relay.
const DefaultChannel = "invitation:events"

// Relay forwards events between instances over Redis pub/sub, so a callback
// received by one instance reaches the instance holding the pending entry.
type Relay struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// RelayOption customizes a Relay.
type RelayOption func(r *Relay)

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) RelayOption {
	return func(r *Relay) {
		if channel != "" {
			r.channel = channel
		}
	}
}

// WithRelayLogger sets the relay logger.
func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Publish broadcasts event to every subscribed instance as a JSON-RPC notification.
func (r *Relay) Publish(ctx context.Context, event *Event) error {
	notification, err := jsonrpc.NewNotification(MethodOperationCompleted, event)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err = r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event %v: %w", event.OperationID, err)
	}
	return nil
}

// Deliver publishes event; it lets a Handler feed the relay instead of a local matcher.
// Matching happens on the subscribers, so a published event reports true.
func (r *Relay) Deliver(ctx context.Context, event *Event) (bool, error) {
	if err := r.Publish(ctx, event); err != nil {
		return false, err
	}
	return true, nil
}

// Subscription is an active relay subscription.
type Subscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

// Done is closed when the subscription loop exits.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close stops the subscription.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
	})
	return err
}

// Subscribe starts passing relayed notifications to handler. It returns once
// the subscription is confirmed; delivery stops when ctx ends or Close is called.
func (r *Relay) Subscribe(ctx context.Context, handler NotificationHandler) (*Subscription, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %v: %w", r.channel, err)
	}
	ret := &Subscription{pubsub: pubsub, done: make(chan struct{})}
	go r.listen(ctx, ret, handler)
	return ret, nil
}

func (r *Relay) listen(ctx context.Context, subscription *Subscription, handler NotificationHandler) {
	defer close(subscription.done)
	defer subscription.Close()
	messages := subscription.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-messages:
			if !ok {
				return
			}
			notification := &jsonrpc.Notification{}
			if err := json.Unmarshal([]byte(message.Payload), notification); err != nil {
				r.logger.Warn("dropping malformed relayed notification", "error", err)
				continue
			}
			handler.OnNotification(ctx, notification)
		}
	}
}

// NewRelay creates a relay over an existing client.
func NewRelay(client *redis.Client, options ...RelayOption) *Relay {
	ret := &Relay{client: client, channel: DefaultChannel, logger: logging.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
