package notification

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MethodOperationCompleted is the JSON-RPC method carrying an Event as params.
const MethodOperationCompleted = "operation/completed"

// Status reports whether the remote operation succeeded.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event is an asynchronously delivered operation result.
type Event struct {
	OperationID string          `json:"operationId"`
	Status      Status          `json:"status"`
	Type        string          `json:"type,omitempty"`
	Resource    json.RawMessage `json:"resource,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}

// Failed reports whether the event signals a failed or rejected operation.
func (e *Event) Failed() bool {
	return strings.EqualFold(string(e.Status), string(StatusFailure))
}

// Validate checks the event carries an operation id.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.OperationID) == "" {
		return fmt.Errorf("event operationId was empty")
	}
	return nil
}

// NewEvent creates a success event carrying resource of the given type.
func NewEvent(operationID, resourceType string, resource any) (*Event, error) {
	data, err := json.Marshal(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %v resource: %w", resourceType, err)
	}
	return &Event{OperationID: operationID, Status: StatusSuccess, Type: resourceType, Resource: data}, nil
}

// NewFailure creates a failure event.
func NewFailure(operationID, reason string) *Event {
	return &Event{OperationID: operationID, Status: StatusFailure, Reason: reason}
}
