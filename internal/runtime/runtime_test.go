package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerAcquireRelease(t *testing.T) {
	limits := NewLimits(1)
	controller := NewController(limits)

	require.Equal(t, limits, controller.LimitsSnapshot())

	require.NoError(t, controller.AcquireRequest(context.Background()))
	controller.ReleaseRequest()
}

func TestNewLimitsDefaults(t *testing.T) {
	limits := NewLimits(0)
	require.Greater(t, limits.MaxConcurrentRequests, 0)
	require.Greater(t, limits.OperationTimeout, limits.AcquireRequestTimeout)
}
