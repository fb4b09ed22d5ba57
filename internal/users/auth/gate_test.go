// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edora-dev/edora/internal/platform/sec"
	"github.com/edora-dev/edora/internal/users/auth"
)

// gateHarness wires a Gate over the same in-memory stack as the service tests.
type gateHarness struct {
	*serviceHarness
	gate *auth.Gate
}

func newGateHarness(t *testing.T) *gateHarness {
	t.Helper()
	h := newServiceHarness(t)
	return &gateHarness{
		serviceHarness: h,
		gate:           auth.NewGate(h.tokens, h.sessions),
	}
}

// loginAs registers, activates, and logs a user in, returning the user and
// their access token.
func (h *gateHarness) loginAs(t *testing.T, email, password string) (*auth.User, string) {
	t.Helper()

	h.registerAndActivate(t, "An Duong", email, password)
	session, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return session.User, session.AccessToken
}

// okHandler records whether it ran and which user it saw on the context.
func okHandler(sawUser **auth.User) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if user, ok := auth.UserFrom(request.Context()); ok {
			*sawUser = user
		}
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestGate_Authenticate tests the full two-phase check: valid cookie plus live
session lets the request through with the user on the context.
*/
func TestGate_Authenticate(t *testing.T) {
	h := newGateHarness(t)
	user, accessToken := h.loginAs(t, "an@edora.app", "secret123")

	var sawUser *auth.User
	handler := h.gate.Authenticate(okHandler(&sawUser))

	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.AddCookie(&http.Cookie{Name: "access_token", Value: accessToken})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, sawUser)
	assert.Equal(t, user.ID, sawUser.ID)
	assert.Equal(t, "an@edora.app", sawUser.Email)
}

/*
TestGate_Authenticate_Rejections covers the 401 paths: missing cookie, bad
token, and a verifiable token whose session is gone.
*/
func TestGate_Authenticate_Rejections(t *testing.T) {
	h := newGateHarness(t)
	user, accessToken := h.loginAs(t, "an@edora.app", "secret123")

	tests := []struct {
		name    string
		prepare func(t *testing.T, request *http.Request)
	}{
		{
			name:    "missing_cookie",
			prepare: func(t *testing.T, request *http.Request) {},
		},
		{
			name: "invalid_token",
			prepare: func(t *testing.T, request *http.Request) {
				request.AddCookie(&http.Cookie{Name: "access_token", Value: "not-a-token"})
			},
		},
		{
			name: "dead_session",
			prepare: func(t *testing.T, request *http.Request) {
				// Logout first: the token still verifies but the cache is authoritative
				require.NoError(t, h.service.Logout(context.Background(), user.ID))
				request.AddCookie(&http.Cookie{Name: "access_token", Value: accessToken})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawUser *auth.User
			handler := h.gate.Authenticate(okHandler(&sawUser))

			request := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(t, request)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Nil(t, sawUser)
			assert.Contains(t, recorder.Body.String(), `"success":false`)
		})
	}
}

/*
TestGate_RequireRole tests role membership enforcement on top of Authenticate.
*/
func TestGate_RequireRole(t *testing.T) {
	h := newGateHarness(t)

	tests := []struct {
		name       string
		userRole   sec.UserRole
		allowed    []sec.UserRole
		wantStatus int
	}{
		{"admin_allowed", sec.RoleAdmin, []sec.UserRole{sec.RoleAdmin}, http.StatusOK},
		{"user_allowed", sec.RoleUser, []sec.UserRole{sec.RoleAdmin, sec.RoleUser}, http.StatusOK},
		{"user_forbidden", sec.RoleUser, []sec.UserRole{sec.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawUser *auth.User
			handler := h.gate.RequireRole(tt.allowed...)(okHandler(&sawUser))

			// RequireRole runs after Authenticate, so the user is already
			// on the context.
			user := &auth.User{ID: "user-42", Role: tt.userRole}
			request := httptest.NewRequest(http.MethodGet, "/admin", nil)
			request = request.WithContext(auth.WithUser(request.Context(), user))
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, recorder.Body.String(), "is not allowed to access this resource")
			}
		})
	}
}

/*
TestGate_RequireRole_NoUser checks that a missing context user yields 401,
not a panic.
*/
func TestGate_RequireRole_NoUser(t *testing.T) {
	h := newGateHarness(t)

	var sawUser *auth.User
	handler := h.gate.RequireRole(sec.RoleAdmin)(okHandler(&sawUser))

	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
