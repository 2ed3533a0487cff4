package capability

import (
	"errors"
	"fmt"
	"strings"
)

// Capability identifies an action a messaging invitation may support.
type Capability int

const (
	// StartAdhocMeeting starts an ad-hoc meeting.
	//
	// Deprecated: use StartMeeting; it resolves through the same link.
	StartAdhocMeeting Capability = iota
	// StartMeeting starts a meeting from the invitation.
	StartMeeting
	// AcceptAndBridge accepts the invitation and bridges it into an existing meeting.
	AcceptAndBridge
)

// Link relation names carried by the invitation resource.
const (
	RelStartAdhocMeeting = "startAdhocMeeting"
	RelAcceptAndBridge   = "acceptAndBridge"
)

// ErrCapabilityUnavailable is returned when no executable link exists for the requested capability.
var ErrCapabilityUnavailable = errors.New("capability not available")

var names = map[Capability]string{
	StartAdhocMeeting: "StartAdhocMeeting",
	StartMeeting:      "StartMeeting",
	AcceptAndBridge:   "AcceptAndBridge",
}

// aliases maps deprecated capabilities to the capability they behave as.
var aliases = map[Capability]Capability{
	StartAdhocMeeting: StartMeeting,
}

// rels maps every canonical capability to its link relation.
var rels = map[Capability]string{
	StartMeeting:    RelStartAdhocMeeting,
	AcceptAndBridge: RelAcceptAndBridge,
}

// All returns every declared capability, aliases included.
func All() []Capability {
	return []Capability{StartAdhocMeeting, StartMeeting, AcceptAndBridge}
}

// String returns the capability name.
func (c Capability) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", int(c))
}

// Canonical returns the capability c behaves as, following the alias table.
func (c Capability) Canonical() Capability {
	if target, ok := aliases[c]; ok {
		return target
	}
	return c
}

// Rel returns the link relation resolving c, and whether c is known.
func (c Capability) Rel() (string, bool) {
	rel, ok := rels[c.Canonical()]
	return rel, ok
}

// Parse returns the capability with the given (case-insensitive) name.
func Parse(name string) (Capability, error) {
	for c, candidate := range names {
		if strings.EqualFold(candidate, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown capability: %q", name)
}

// Unavailable returns ErrCapabilityUnavailable annotated with the capability name.
func Unavailable(c Capability) error {
	return fmt.Errorf("%w: %v", ErrCapabilityUnavailable, c)
}
