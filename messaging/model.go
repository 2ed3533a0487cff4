package messaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/invitation/notification"
)

// ResourceOnlineMeetingInvitation is the event type carrying a started meeting.
const ResourceOnlineMeetingInvitation = "onlineMeetingInvitation"

// ErrInvalidArgument indicates a caller supplied argument failed validation.
var ErrInvalidArgument = errors.New("invalid argument")

// OnlineMeetingInvitation is the result of starting a meeting.
type OnlineMeetingInvitation struct {
	ID               string `json:"id,omitempty"`
	Subject          string `json:"subject,omitempty"`
	MeetingURL       string `json:"meetingUrl"`
	State            string `json:"state,omitempty"`
	Direction        string `json:"direction,omitempty"`
	OperationContext string `json:"operationContext,omitempty"`
}

// Validate checks the invitation identifies a meeting.
func (o *OnlineMeetingInvitation) Validate() error {
	if strings.TrimSpace(o.MeetingURL) == "" {
		return fmt.Errorf("meetingUrl was empty")
	}
	return nil
}

// StartAdhocMeetingInput is posted to the start meeting link.
type StartAdhocMeetingInput struct {
	Subject          string `json:"subject,omitempty"`
	CallbackContext  string `json:"callbackContext,omitempty"`
	CallbackURL      string `json:"callbackUrl,omitempty"`
	OperationContext string `json:"operationContext"`
}

// AcceptAndBridgeInput is posted to the accept and bridge link.
type AcceptAndBridgeInput struct {
	MeetingURI           string `json:"meetingUri"`
	LocalUserDisplayName string `json:"localUserDisplayName,omitempty"`
}

// CallbackDefaults are application level callback settings used when a call leaves them blank.
type CallbackDefaults struct {
	URL     string `yaml:"url" json:"url,omitempty" long:"url" description:"default callback URL"`
	Context string `yaml:"context" json:"context,omitempty" long:"context" description:"default callback context"`
}

// apply fills blank values from the defaults.
func (d CallbackDefaults) apply(callbackURL, callbackContext *string) {
	if strings.TrimSpace(*callbackURL) == "" {
		*callbackURL = d.URL
	}
	if strings.TrimSpace(*callbackContext) == "" {
		*callbackContext = d.Context
	}
}

// MeetingDecoder decodes onlineMeetingInvitation events for the matcher.
func MeetingDecoder() notification.Decoder {
	return notification.DecodeAs[OnlineMeetingInvitation](ResourceOnlineMeetingInvitation)
}
