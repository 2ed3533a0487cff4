package notification

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/invitation/operation"
)

// Decoder converts a success event into the result value expected by a capability.
// Errors wrapping operation.ErrUnexpectedResultShape mark protocol violations.
type Decoder func(event *Event) (any, error)

// validator is implemented by results that check their own required fields.
type validator interface {
	Validate() error
}

// DecodeAs returns a decoder producing *T from events of resourceType.
// An event of another type, a resource that does not decode, or one that
// fails its Validate method is an unexpected result shape.
func DecodeAs[T any](resourceType string) Decoder {
	return func(event *Event) (any, error) {
		if event.Type != "" && !strings.EqualFold(event.Type, resourceType) {
			return nil, operation.UnexpectedShape(event.OperationID, fmt.Sprintf("expected %v, but had %v", resourceType, event.Type))
		}
		if len(event.Resource) == 0 || string(event.Resource) == "null" {
			return nil, operation.UnexpectedShape(event.OperationID, fmt.Sprintf("missing %v resource", resourceType))
		}
		ret := new(T)
		if err := json.Unmarshal(event.Resource, ret); err != nil {
			return nil, operation.UnexpectedShape(event.OperationID, err.Error())
		}
		if v, ok := any(ret).(validator); ok {
			if err := v.Validate(); err != nil {
				return nil, operation.UnexpectedShape(event.OperationID, err.Error())
			}
		}
		return ret, nil
	}
}

// raw passes the resource through undecoded.
func raw(event *Event) (any, error) {
	return event.Resource, nil
}
