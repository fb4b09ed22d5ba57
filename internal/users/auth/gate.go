// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/constants"
	"github.com/edora-dev/edora/internal/platform/ctxkey"
	"github.com/edora-dev/edora/internal/platform/respond"
	"github.com/edora-dev/edora/internal/platform/sec"
)

// # Authorization Gate

// Gate is the request-level authorization layer for protected routes.
//
// Authentication is two-phase: the access token cookie must verify
// cryptographically, and the identified user must resolve to a live session
// entry. The cache is authoritative, so logout (or admin removal) takes
// effect on the very next request even while issued tokens are still within
// their lifetime.
type Gate struct {
	tokens   *sec.TokenService
	sessions SessionStore
}

// NewGate constructs the authorization [Gate].
func NewGate(tokens *sec.TokenService, sessions SessionStore) *Gate {
	return &Gate{tokens: tokens, sessions: sessions}
}

/*
Authenticate is the middleware guarding all protected routes.

Description: Reads the access token cookie, verifies it, resolves the user
from the session cache, and attaches the full typed [User] to the request
context for downstream handlers.

Response:
  - 401: Missing cookie, failed verification, or dead session
*/
func (gate *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		// 1. The access token travels in an HttpOnly cookie
		cookie, err := request.Cookie(constants.AccessTokenCookieName)
		if err != nil || cookie.Value == "" {
			respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
			return
		}

		// 2. Cryptographic check under the access secret
		userID, err := gate.tokens.VerifyAccessToken(cookie.Value)
		if err != nil {
			respond.Error(writer, request, apperr.Unauthenticated("Access token is not valid"))
			return
		}

		// 3. Liveness check against the session cache
		user, err := gate.sessions.Find(request.Context(), userID)
		if err != nil {
			if apperr.IsCode(err, "SESSION_NOT_FOUND") {
				respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
				return
			}
			respond.Error(writer, request, err)
			return
		}

		// 4. Attach the resolved user for downstream handlers
		ctx := WithUser(request.Context(), user)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

/*
RequireRole restricts a route to users whose role is in the allowed set.

Description: Must be mounted after [Gate.Authenticate]; it reads the resolved
user from the request context.

Response:
  - 401: No authenticated user on the context
  - 403: Authenticated but role not allowed
*/
func (gate *Gate) RequireRole(allowed ...sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			user, ok := UserFrom(request.Context())
			if !ok {
				respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
				return
			}

			if !user.Role.In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden(
					fmt.Sprintf("Role: %s is not allowed to access this resource", user.Role),
				))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Context Helpers

// WithUser returns a child context carrying the authenticated user.
func WithUser(parent context.Context, user *User) context.Context {
	return context.WithValue(parent, ctxkey.KeyUser, user)
}

// UserFrom extracts the authenticated user from the context, if present.
func UserFrom(parent context.Context) (*User, bool) {
	user, ok := parent.Value(ctxkey.KeyUser).(*User)
	return user, ok
}
