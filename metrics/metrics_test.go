package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/operation"
)

func TestCollector_Registry(t *testing.T) {
	collector := New("test").MustRegister(prometheus.NewRegistry())
	registry := operation.NewRegistry(operation.WithObserver(collector))

	for _, id := range []string{"op-1", "op-2", "op-3"} {
		_, err := registry.Register(id, capability.StartMeeting, time.Second)
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.pending))

	assert.True(t, registry.Resolve("op-1", operation.Outcome{Value: "ok"}))
	assert.True(t, registry.Resolve("op-2", operation.Outcome{Err: errors.New("boom")}))
	assert.True(t, registry.Evict("op-3"))
	assert.False(t, registry.Resolve("missing", operation.Outcome{}))

	assert.Equal(t, 3.0, testutil.ToFloat64(collector.registered.WithLabelValues("StartMeeting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.resolved.WithLabelValues("StartMeeting", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.resolved.WithLabelValues("StartMeeting", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.evicted.WithLabelValues("StartMeeting", string(operation.ReasonEvicted))))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.unmatched))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.pending))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.latency))
}
