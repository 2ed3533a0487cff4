package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/invitation/capability"
)

func TestRun(t *testing.T) {
	location := filepath.Join(t.TempDir(), "resource.yaml")
	require.NoError(t, os.WriteFile(location, []byte("links:\n  startAdhocMeeting:\n    href: v1/start\n"), 0o644))

	err := Run([]string{"bridge", "--base-url", "https://host/", "-l", "error", "-r", location, "-m", "https://meet/1"})
	assert.True(t, errors.Is(err, capability.ErrCapabilityUnavailable), "%v", err)

	assert.Error(t, Run([]string{"unknown"}))
	assert.Error(t, Run([]string{"bridge", "--base-url", "https://host/"}))
}
