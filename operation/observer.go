package operation

import (
	"time"

	"github.com/viant/invitation/capability"
)

// Reason explains why an entry left the registry without resolution.
type Reason string

const (
	ReasonTimeout      Reason = "timeout"
	ReasonCancelled    Reason = "cancelled"
	ReasonSubmitFailed Reason = "submitFailed"
	ReasonExpired      Reason = "expired"
	ReasonEvicted      Reason = "evicted"
)

// Observer receives registry lifecycle events, e.g. for metrics.
type Observer interface {
	Registered(c capability.Capability)
	Resolved(c capability.Capability, elapsed time.Duration, err error)
	Evicted(c capability.Capability, reason Reason)
	Unmatched()
}

type nopObserver struct{}

func (nopObserver) Registered(capability.Capability)                     {}
func (nopObserver) Resolved(capability.Capability, time.Duration, error) {}
func (nopObserver) Evicted(capability.Capability, Reason)                {}
func (nopObserver) Unmatched()                                           {}
