package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrOperationTimeout indicates no matching notification arrived within the configured window.
	ErrOperationTimeout = errors.New("operation timed out waiting for notification")
	// ErrUnexpectedResultShape indicates a notification matched but carried an incompatible result.
	ErrUnexpectedResultShape = errors.New("unexpected result shape")
	// ErrDuplicateOperation indicates an operation id collision; it is an internal invariant violation.
	ErrDuplicateOperation = errors.New("duplicate operation id")
	// ErrRemoteFailure indicates the remote system reported the operation as failed.
	ErrRemoteFailure = errors.New("remote operation failed")
	// ErrMisconfigured indicates a missing Resolver, Registry or Submitter.
	ErrMisconfigured = errors.New("operation: misconfigured dispatcher (missing Resolver, Registry or Submitter)")
)

// RemoteError carries the reason reported by a failure notification.
type RemoteError struct {
	OperationID string
	Reason      string
}

func (e *RemoteError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %v", ErrRemoteFailure, e.OperationID)
	}
	return fmt.Sprintf("%v: %v: %v", ErrRemoteFailure, e.OperationID, e.Reason)
}

// Is reports whether target is ErrRemoteFailure.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure
}

// UnexpectedShape wraps ErrUnexpectedResultShape with the operation id and detail.
func UnexpectedShape(operationID string, detail string) error {
	return fmt.Errorf("%w: operation %v: %v", ErrUnexpectedResultShape, operationID, detail)
}
