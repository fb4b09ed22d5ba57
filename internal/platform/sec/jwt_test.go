// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package sec_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edora-dev/edora/internal/platform/sec"
)

// newTestTokenService builds a TokenService with distinct secrets and
// generous lifetimes, suitable for most round-trip tests.
func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		ActivationSecret: "test-activation-secret",
		AccessSecret:     "test-access-secret",
		RefreshSecret:    "test-refresh-secret",
		ActivationTTL:    5 * time.Minute,
		AccessTTL:        5 * time.Minute,
		RefreshTTL:       time.Hour,
		Issuer:           "edora.test",
	})
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Validation tests the configuration guards.
*/
func TestNewTokenService_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      sec.TokenConfig
		hasError bool
	}{
		{
			name: "valid_config",
			cfg: sec.TokenConfig{
				ActivationSecret: "a", AccessSecret: "b", RefreshSecret: "c",
				ActivationTTL: time.Minute, AccessTTL: time.Minute, RefreshTTL: time.Minute,
			},
			hasError: false,
		},
		{
			name: "missing_secret",
			cfg: sec.TokenConfig{
				ActivationSecret: "a", AccessSecret: "", RefreshSecret: "c",
				ActivationTTL: time.Minute, AccessTTL: time.Minute, RefreshTTL: time.Minute,
			},
			hasError: true,
		},
		{
			name: "reused_secret",
			cfg: sec.TokenConfig{
				ActivationSecret: "a", AccessSecret: "a", RefreshSecret: "c",
				ActivationTTL: time.Minute, AccessTTL: time.Minute, RefreshTTL: time.Minute,
			},
			hasError: true,
		},
		{
			name: "zero_lifetime",
			cfg: sec.TokenConfig{
				ActivationSecret: "a", AccessSecret: "b", RefreshSecret: "c",
				ActivationTTL: time.Minute, AccessTTL: 0, RefreshTTL: time.Minute,
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := sec.NewTokenService(tt.cfg)

			if tt.hasError {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

/*
TestAccessToken_RoundTrip tests signing and verifying an access token.
*/
func TestAccessToken_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.SignAccessToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

/*
TestRefreshToken_RoundTrip tests signing and verifying a refresh token.
*/
func TestRefreshToken_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.SignRefreshToken("user-42")
	require.NoError(t, err)

	userID, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

/*
TestTokenFamilies_AreIsolated checks that a token signed under one family
secret never verifies under another.
*/
func TestTokenFamilies_AreIsolated(t *testing.T) {
	service := newTestTokenService(t)

	accessToken, err := service.SignAccessToken("user-42")
	require.NoError(t, err)

	refreshToken, err := service.SignRefreshToken("user-42")
	require.NoError(t, err)

	// 1. Access token must not pass refresh verification
	_, err = service.VerifyRefreshToken(accessToken)
	assert.Error(t, err)

	// 2. Refresh token must not pass access verification
	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	// 3. Access token must not pass activation verification
	_, err = service.VerifyActivationToken(accessToken)
	assert.Error(t, err)
}

/*
TestVerifyAccessToken_Expired checks that an expired token is rejected.
*/
func TestVerifyAccessToken_Expired(t *testing.T) {
	service, err := sec.NewTokenService(sec.TokenConfig{
		ActivationSecret: "a-secret",
		AccessSecret:     "b-secret",
		RefreshSecret:    "c-secret",
		ActivationTTL:    time.Millisecond,
		AccessTTL:        time.Millisecond,
		RefreshTTL:       time.Millisecond,
		Issuer:           "edora.test",
	})
	require.NoError(t, err)

	token, err := service.SignAccessToken("user-42")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = service.VerifyAccessToken(token)
	assert.Error(t, err)
}

/*
TestVerifyAccessToken_Garbage checks that non-JWT input is rejected.
*/
func TestVerifyAccessToken_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.VerifyAccessToken(tokenString)
		assert.Error(t, err)
	}
}

/*
TestActivationToken_RoundTrip checks that the draft user and one-time code
survive the sign/verify cycle intact.
*/
func TestActivationToken_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	pending := sec.PendingUser{
		Name:     "An Duong",
		Email:    "an@edora.app",
		Password: "secret123",
	}

	token, err := service.SignActivationToken(pending, "4821")
	require.NoError(t, err)

	claims, err := service.VerifyActivationToken(token)
	require.NoError(t, err)

	assert.Equal(t, pending, claims.User)
	assert.Equal(t, "4821", claims.ActivationCode)
}

/*
TestGenerateActivationCode checks the format and range of generated codes.
*/
func TestGenerateActivationCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := sec.GenerateActivationCode()
		require.NoError(t, err)
		require.Len(t, code, 4)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}
