package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	schedulingapp "github.com/atelier/backend/internal/application/scheduling"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDispatchService struct {
	sweeps atomic.Int64
	result *schedulingapp.DispatchResult
	err    error
}

func (f *fakeDispatchService) Dispatch(ctx context.Context, now time.Time) (*schedulingapp.DispatchResult, error) {
	f.sweeps.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestDispatcher_StartSweepsImmediately(t *testing.T) {
	service := &fakeDispatchService{result: &schedulingapp.DispatchResult{Dispatched: 1, Reports: 1}}
	dispatcher := NewDispatcher(config.DispatchConfig{
		Enabled:       true,
		SweepInterval: time.Hour,
	}, service, zap.NewNop())

	require.NoError(t, dispatcher.Start(context.Background()))
	defer func() { _ = dispatcher.Stop(context.Background()) }()

	assert.Eventually(t, func() bool {
		return service.sweeps.Load() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcher_SweepsOnInterval(t *testing.T) {
	service := &fakeDispatchService{result: &schedulingapp.DispatchResult{}}
	dispatcher := NewDispatcher(config.DispatchConfig{
		Enabled:       true,
		SweepInterval: 20 * time.Millisecond,
	}, service, zap.NewNop())

	require.NoError(t, dispatcher.Start(context.Background()))
	defer func() { _ = dispatcher.Stop(context.Background()) }()

	assert.Eventually(t, func() bool {
		return service.sweeps.Load() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcher_RejectsInvalidInterval(t *testing.T) {
	dispatcher := NewDispatcher(config.DispatchConfig{Enabled: true}, &fakeDispatchService{}, zap.NewNop())

	err := dispatcher.Start(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDispatcher_TriggerSweepRequiresRunning(t *testing.T) {
	dispatcher := NewDispatcher(config.DispatchConfig{
		Enabled:       true,
		SweepInterval: time.Hour,
	}, &fakeDispatchService{result: &schedulingapp.DispatchResult{}}, zap.NewNop())

	assert.ErrorIs(t, dispatcher.TriggerSweep(), ErrDispatcherNotRunning)

	require.NoError(t, dispatcher.Start(context.Background()))
	assert.NoError(t, dispatcher.TriggerSweep())
	require.NoError(t, dispatcher.Stop(context.Background()))
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	dispatcher := NewDispatcher(config.DispatchConfig{
		Enabled:       true,
		SweepInterval: time.Hour,
	}, &fakeDispatchService{result: &schedulingapp.DispatchResult{}}, zap.NewNop())

	require.NoError(t, dispatcher.Start(context.Background()))
	require.NoError(t, dispatcher.Stop(context.Background()))
	assert.NoError(t, dispatcher.Stop(context.Background()))

	status := dispatcher.GetStatus()
	assert.Equal(t, false, status["is_running"])
}
