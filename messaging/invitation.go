package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/internal/logging"
	"github.com/viant/invitation/operation"
	"github.com/viant/invitation/transport"
)

// Invitation represents a messaging invitation and the actions its links allow.
type Invitation struct {
	resolver   *capability.Resolver
	dispatcher *operation.Dispatcher
	defaults   CallbackDefaults
	logger     *slog.Logger
}

// Option customizes an Invitation.
type Option func(i *Invitation)

// WithCallbackDefaults sets the application callback settings.
func WithCallbackDefaults(defaults CallbackDefaults) Option {
	return func(i *Invitation) {
		i.defaults = defaults
	}
}

// WithLogger sets the invitation logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Invitation) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Supports reports whether the current resource snapshot allows c.
func (i *Invitation) Supports(c capability.Capability) bool {
	return i.resolver.Supports(c)
}

// StartMeeting starts a meeting and waits for its online meeting invitation.
// A blank callbackContext falls back to the application default.
func (i *Invitation) StartMeeting(ctx context.Context, subject, callbackContext string) (*OnlineMeetingInvitation, error) {
	return i.start(ctx, capability.StartMeeting, subject, callbackContext, "")
}

// StartAdhocMeeting starts a meeting reporting to callbackURL.
//
// Deprecated: use StartMeeting.
func (i *Invitation) StartAdhocMeeting(ctx context.Context, subject, callbackURL string) (*OnlineMeetingInvitation, error) {
	return i.start(ctx, capability.StartAdhocMeeting, subject, "", callbackURL)
}

func (i *Invitation) start(ctx context.Context, c capability.Capability, subject, callbackContext, callbackURL string) (*OnlineMeetingInvitation, error) {
	logger := contextLogger(ctx, i.logger)
	logger.Info("starting meeting", "capability", c.String(), "subject", subject)
	i.defaults.apply(&callbackURL, &callbackContext)
	pending, err := i.dispatcher.Dispatch(ctx, c, func(operationID string) (any, error) {
		return &StartAdhocMeetingInput{
			Subject:          subject,
			CallbackContext:  callbackContext,
			CallbackURL:      callbackURL,
			OperationContext: operationID,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	meeting, err := operation.Await[*OnlineMeetingInvitation](ctx, pending)
	if err != nil {
		logger.Warn("meeting was not started", "operation_id", pending.ID, "error", err)
		return nil, err
	}
	logger.Info("meeting started", "operation_id", pending.ID, "meeting_url", meeting.MeetingURL)
	return meeting, nil
}

// AcceptAndBridge accepts the invitation and bridges it into the meeting at
// meetingURL. It completes once the submission is accepted.
func (i *Invitation) AcceptAndBridge(ctx context.Context, meetingURL, displayName string) error {
	if strings.TrimSpace(meetingURL) == "" {
		return fmt.Errorf("%w: meetingUrl cannot be blank", ErrInvalidArgument)
	}
	logger := contextLogger(ctx, i.logger)
	logger.Info("accepting and bridging", "meeting_url", meetingURL)
	URL, ok := i.resolver.Link(capability.AcceptAndBridge)
	if !ok {
		return capability.Unavailable(capability.AcceptAndBridge)
	}
	if i.dispatcher == nil || i.dispatcher.Submitter == nil {
		return operation.ErrMisconfigured
	}
	input := &AcceptAndBridgeInput{MeetingURI: meetingURL, LocalUserDisplayName: displayName}
	if err := i.dispatcher.Submitter.Submit(ctx, URL, input); err != nil {
		logger.Warn("accept and bridge failed", "error", err)
		return transport.AsError(URL, err)
	}
	return nil
}

// New creates an invitation resolving links with resolver and dispatching through dispatcher.
func New(resolver *capability.Resolver, dispatcher *operation.Dispatcher, options ...Option) *Invitation {
	ret := &Invitation{resolver: resolver, dispatcher: dispatcher, logger: logging.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
