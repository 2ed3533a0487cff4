package capability

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_EveryValueHasLinkRule(t *testing.T) {
	for _, c := range All() {
		rel, ok := c.Rel()
		assert.True(t, ok, c.String())
		assert.NotEmpty(t, rel, c.String())
		assert.NotContains(t, c.String(), "Capability(")
	}
	_, ok := Capability(99).Rel()
	assert.False(t, ok)
	assert.Equal(t, "Capability(99)", Capability(99).String())
}

func TestCapability_Alias(t *testing.T) {
	assert.Equal(t, StartMeeting, StartAdhocMeeting.Canonical())
	assert.Equal(t, AcceptAndBridge, AcceptAndBridge.Canonical())
	adhoc, _ := StartAdhocMeeting.Rel()
	meeting, _ := StartMeeting.Rel()
	assert.Equal(t, meeting, adhoc)
}

func TestParse(t *testing.T) {
	c, err := Parse("acceptandbridge")
	require.NoError(t, err)
	assert.Equal(t, AcceptAndBridge, c)
	_, err = Parse("transfer")
	assert.Error(t, err)
}

func TestResolver_Supports(t *testing.T) {
	var testCases = []struct {
		description string
		resource    *Resource
		capability  Capability
		expect      bool
	}{
		{description: "nil snapshot", capability: StartMeeting},
		{description: "no links", resource: &Resource{}, capability: StartMeeting},
		{description: "blank href", resource: NewResource(map[string]string{RelStartAdhocMeeting: "  "}), capability: StartMeeting},
		{description: "start meeting", resource: NewResource(map[string]string{RelStartAdhocMeeting: "/v1/startAdhocMeeting"}), capability: StartMeeting, expect: true},
		{description: "deprecated alias", resource: NewResource(map[string]string{RelStartAdhocMeeting: "/v1/startAdhocMeeting"}), capability: StartAdhocMeeting, expect: true},
		{description: "other link only", resource: NewResource(map[string]string{RelStartAdhocMeeting: "/v1/startAdhocMeeting"}), capability: AcceptAndBridge},
		{description: "bridge", resource: NewResource(map[string]string{RelAcceptAndBridge: "/v1/acceptAndBridge"}), capability: AcceptAndBridge, expect: true},
		{description: "unknown capability", resource: NewResource(map[string]string{RelAcceptAndBridge: "/v1/acceptAndBridge"}), capability: Capability(42)},
	}
	for _, testCase := range testCases {
		resolver := NewResolver("https://host/platformservice/", testCase.resource)
		assert.Equal(t, testCase.expect, resolver.Supports(testCase.capability), testCase.description)
	}
}

func TestResolver_Link(t *testing.T) {
	resolver := NewResolver("https://host/platformservice/", nil)
	_, ok := resolver.Link(StartMeeting)
	assert.False(t, ok)

	resolver.Update(NewResource(map[string]string{
		RelStartAdhocMeeting: "https://other/v1/startAdhocMeeting",
		RelAcceptAndBridge:   "/platformservice/v1/acceptAndBridge",
	}))
	link, ok := resolver.Link(StartMeeting)
	require.True(t, ok)
	assert.Equal(t, "https://other/v1/startAdhocMeeting", link)

	link, ok = resolver.Link(AcceptAndBridge)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://host"), link)
	assert.True(t, strings.HasSuffix(link, "platformservice/v1/acceptAndBridge"), link)

	resolver.Update(nil)
	assert.False(t, resolver.Supports(AcceptAndBridge))
}

func TestUnavailable(t *testing.T) {
	err := Unavailable(AcceptAndBridge)
	assert.True(t, errors.Is(err, ErrCapabilityUnavailable))
	assert.Contains(t, err.Error(), "AcceptAndBridge")
}
