package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

func TestLoginThrottleBlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	throttle := NewLoginThrottle(newMemoryCounter(), 2, 0)

	for i := 0; i < 2; i++ {
		allowed, err := throttle.Allow(ctx, "admin01|10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
		require.NoError(t, throttle.Fail(ctx, "admin01|10.0.0.1"))
	}

	allowed, err := throttle.Allow(ctx, "admin01|10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	other, err := throttle.Allow(ctx, "admin01|10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other)

	require.NoError(t, throttle.Reset(ctx, "admin01|10.0.0.1"))
	allowed, err = throttle.Allow(ctx, "admin01|10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNilLoginThrottleAllowsEverything(t *testing.T) {
	var throttle *LoginThrottle
	ctx := context.Background()

	allowed, err := throttle.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, throttle.Fail(ctx, "k"))
	assert.NoError(t, throttle.Reset(ctx, "k"))
}

func TestAuthServiceAcceptsNilThrottlePointer(t *testing.T) {
	var throttle *LoginThrottle
	svc, _ := newAuthFixture(t, throttle)

	for i := 0; i < 10; i++ {
		_, err := svc.Login(context.Background(), models.LoginRequest{UserID: "admin01", Password: "wrong", IP: "10.0.0.1"})
		assert.Equal(t, appErrors.ErrInvalidCredentials.Status, appErrors.FromError(err).Status)
	}
}
