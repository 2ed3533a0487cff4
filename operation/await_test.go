package operation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/invitation/capability"
)

type meeting struct {
	ID string
}

func TestPending_Await_Resolved(t *testing.T) {
	registry := NewRegistry()
	pending, err := registry.Register("op-1", capability.StartMeeting, 5*time.Second)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		registry.Resolve("op-1", Outcome{Value: &meeting{ID: "m1"}})
	}()
	value, err := pending.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &meeting{ID: "m1"}, value)
	assert.Equal(t, 0, registry.Len())

	value, err = pending.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &meeting{ID: "m1"}, value)
}

func TestPending_Await_ResolvedBeforeWait(t *testing.T) {
	registry := NewRegistry()
	pending, err := registry.Register("op-1", capability.StartMeeting, time.Second)
	require.NoError(t, err)
	require.True(t, registry.Resolve("op-1", Outcome{Value: "early"}))

	value, err := pending.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "early", value)
}

func TestPending_Await_Failure(t *testing.T) {
	registry := NewRegistry()
	pending, err := registry.Register("op-1", capability.StartMeeting, time.Second)
	require.NoError(t, err)
	registry.Resolve("op-1", Outcome{Err: &RemoteError{OperationID: "op-1", Reason: "declined"}})

	_, err = pending.Await(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteFailure))
	assert.Contains(t, err.Error(), "declined")
}

func TestPending_Await_Timeout(t *testing.T) {
	observer := &countingObserver{}
	registry := NewRegistry(WithObserver(observer))
	pending, err := registry.Register("op-1", capability.StartMeeting, 100*time.Millisecond)
	require.NoError(t, err)

	started := time.Now()
	_, err = pending.Await(context.Background())
	elapsed := time.Since(started)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOperationTimeout))
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, TimedOut, pending.State())
	assert.EqualValues(t, 1, observer.evicted.Load())

	assert.False(t, registry.Resolve("op-1", Outcome{Value: "late"}))
}

func TestPending_Await_DeadlineFromRegistration(t *testing.T) {
	registry := NewRegistry()
	pending, err := registry.Register("op-1", capability.StartMeeting, 150*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	started := time.Now()
	_, err = pending.Await(context.Background())
	assert.True(t, errors.Is(err, ErrOperationTimeout))
	assert.Less(t, time.Since(started), 140*time.Millisecond)
}

func TestPending_Await_ContextCancelled(t *testing.T) {
	registry := NewRegistry()
	pending, err := registry.Register("op-1", capability.StartMeeting, 5*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = pending.Await(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, Cancelled, pending.State())
}

func TestAwait_Typed(t *testing.T) {
	registry := NewRegistry()
	pending, err := registry.Register("op-1", capability.StartMeeting, time.Second)
	require.NoError(t, err)
	registry.Resolve("op-1", Outcome{Value: &meeting{ID: "m1"}})
	result, err := Await[*meeting](context.Background(), pending)
	require.NoError(t, err)
	assert.Equal(t, "m1", result.ID)

	pending, err = registry.Register("op-2", capability.StartMeeting, time.Second)
	require.NoError(t, err)
	registry.Resolve("op-2", Outcome{Value: "not a meeting"})
	_, err = Await[*meeting](context.Background(), pending)
	assert.True(t, errors.Is(err, ErrUnexpectedResultShape))
}

func TestPending_Await_ResolutionWinsLateEviction(t *testing.T) {
	var testCases = []struct {
		description string
		timeout     time.Duration
		ctx         func() (context.Context, context.CancelFunc)
	}{
		{
			description: "timeout fires while result is being decoded",
			timeout:     50 * time.Millisecond,
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
		},
		{
			description: "context ends while result is being decoded",
			timeout:     5 * time.Second,
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 50*time.Millisecond)
			},
		},
	}
	for _, testCase := range testCases {
		registry := NewRegistry()
		pending, err := registry.Register("op-1", capability.StartMeeting, testCase.timeout)
		require.NoError(t, err, testCase.description)

		go registry.ResolveFunc("op-1", func(*Pending) Outcome {
			time.Sleep(150 * time.Millisecond)
			return Outcome{Value: "v"}
		})
		require.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, time.Millisecond, testCase.description)

		ctx, cancel := testCase.ctx()
		value, err := pending.Await(ctx)
		cancel()
		require.NoError(t, err, testCase.description)
		assert.Equal(t, "v", value, testCase.description)
		assert.Equal(t, Resolved, pending.State(), testCase.description)
	}
}

func TestPending_Await_UsesRegistryClock(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	registry := NewRegistry(WithClock(func() time.Time { return past }))
	pending, err := registry.Register("op-1", capability.StartMeeting, time.Minute)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = pending.Await(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "%v", err)
	assert.False(t, errors.Is(err, ErrOperationTimeout))
	assert.Equal(t, Cancelled, pending.State())
}
