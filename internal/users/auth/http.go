// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from two-step
registration to session refresh.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Both tokens travel in HttpOnly cookies injected here.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/constants"
	requestutil "github.com/edora-dev/edora/internal/platform/request"
	"github.com/edora-dev/edora/internal/platform/respond"
	"github.com/edora-dev/edora/internal/platform/validate"
)

// # Definitions & Constructors

// CookiePolicy controls how the token cookies are issued.
type CookiePolicy struct {
	// AccessTTL bounds the access_token cookie lifetime.
	AccessTTL time.Duration
	// RefreshTTL bounds the refresh_token cookie lifetime.
	RefreshTTL time.Duration
	// Secure marks cookies as HTTPS-only. Enabled in production.
	Secure bool
}

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration,
// Activation, Login, Social sign-in, Refresh, Logout).
type Handler struct {
	authService *Service
	gate        *Gate
	cookies     CookiePolicy
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, gate *Gate, cookies CookiePolicy) *Handler {
	return &Handler{authService: service, gate: gate, cookies: cookies}
}

// Register mounts the authentication routes onto the given router.
//
// The auth, account, and catalog domains share the /api/v1 prefix with
// top-level operation paths, so each registers onto the shared router
// instead of mounting a sub-router.
//
// # Endpoints
//   - POST /registration   : Begins two-step enrollment.
//   - POST /activate-user  : Completes enrollment with token + code.
//   - POST /login          : Authenticates and issues the cookie pair.
//   - POST /social-auth    : Signs in via an external provider identity.
//   - GET  /refresh        : Rotates the token pair.
//   - GET  /logout         : Ends the session (authenticated).
//   - GET  /me             : Returns the session snapshot (authenticated).
func (handler *Handler) Register(router chi.Router) {

	// Public endpoints
	router.Post("/registration", handler.registration)
	router.Post("/activate-user", handler.activateUser)
	router.Post("/login", handler.login)
	router.Post("/social-auth", handler.socialAuth)
	router.Get("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.Authenticate)
		r.Get("/logout", handler.logout)
		r.Get("/me", handler.me)
	})
}

// # Request Payloads

type registrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type activateUserRequest struct {
	ActivationToken string `json:"activation_token"`
	ActivationCode  string `json:"activation_code"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type socialAuthRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// # Response Payloads

type registrationResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ActivationToken string `json:"activationToken"`
}

type sessionResponse struct {
	Success     bool   `json:"success"`
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

type refreshResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"accessToken"`
}

type userResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

/*
Registration begins the enrollment of a new user account.

POST /api/v1/registration

Description: Validates input, seals the draft account and a 4-digit code
into a signed activation token, and emails the code. No row is created yet.

Request:
  - Body: registrationRequest (Name, Email, Password)

Response:
  - 201: registrationResponse: Activation token and mail notice
  - 400: Validation failure or mail delivery failure
  - 409: Email already registered
*/
func (handler *Handler) registration(writer http.ResponseWriter, request *http.Request) {
	var input registrationRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.authService.BeginRegistration(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, registrationResponse{
		Success:         true,
		Message:         fmt.Sprintf("Please check your email: %s to activate your account!", ticket.Email),
		ActivationToken: ticket.ActivationToken,
	})
}

/*
ActivateUser completes the enrollment of a new user account.

POST /api/v1/activate-user

Description: Verifies the activation token and the emailed code, then
persists the account.

Request:
  - Body: activateUserRequest (ActivationToken, ActivationCode)

Response:
  - 201: Success message
  - 400: Invalid token, wrong code, or validation failure
  - 409: Email claimed since registration
*/
func (handler *Handler) activateUser(writer http.ResponseWriter, request *http.Request) {
	var input activateUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldActivationToken, input.ActivationToken).
		Required(FieldActivationCode, input.ActivationCode).
		Custom(FieldActivationCode, len(input.ActivationCode) != ActivationCodeLen, "Must be a 4-digit code")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.authService.CompleteActivation(request.Context(), ActivateInput{
		ActivationToken: input.ActivationToken,
		ActivationCode:  input.ActivationCode,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.MessageEnvelope{
		Success: true,
		Message: "Account activated successfully",
	})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/login

Description: Verifies credentials, writes the session snapshot, and injects
both token cookies into the response.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: sessionResponse: User profile and access token
  - 400: Invalid credentials or validation failure
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.issueCookies(writer, session)

	respond.OK(writer, sessionResponse{
		Success:     true,
		User:        session.User,
		AccessToken: session.AccessToken,
	})
}

/*
SocialAuth signs in a user authenticated by an external OAuth provider.

POST /api/v1/social-auth

Description: Trusts the provider-asserted identity (the OAuth handshake
happens on the frontend). Enrolls unknown emails on the fly.

Request:
  - Body: socialAuthRequest (Name, Email, Avatar)

Response:
  - 200: sessionResponse: User profile and access token
  - 400: Validation failure
*/
func (handler *Handler) socialAuth(writer http.ResponseWriter, request *http.Request) {
	var input socialAuthRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SocialLogin(request.Context(), SocialInput{
		Name:      input.Name,
		Email:     input.Email,
		AvatarURL: input.Avatar,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.issueCookies(writer, session)

	respond.OK(writer, sessionResponse{
		Success:     true,
		User:        session.User,
		AccessToken: session.AccessToken,
	})
}

/*
Refresh rotates the token pair using the refresh token cookie.

GET /api/v1/refresh

Description: Verifies the refresh token, requires a live session entry, and
re-issues both cookies. The session snapshot TTL is extended.

Response:
  - 200: refreshResponse: New access token
  - 400: Missing/invalid refresh token or dead session
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.InvalidRefreshToken())
		return
	}

	session, err := handler.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.issueCookies(writer, session)

	respond.OK(writer, refreshResponse{
		Status:      "success",
		AccessToken: session.AccessToken,
	})
}

/*
Logout terminates the current user session.

GET /api/v1/logout

Description: Deletes the session entry and expires both cookies. Issued
tokens become useless on the next request because the cache entry is gone.

Response:
  - 200: Success message
  - 401: No authenticated session
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	user, ok := UserFrom(request.Context())
	if !ok {
		respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
		return
	}

	if err := handler.authService.Logout(request.Context(), user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.expireCookies(writer)

	respond.Message(writer, http.StatusOK, "Logged out successfully")
}

/*
Me returns the authenticated user's session snapshot.

GET /api/v1/me

Response:
  - 200: userResponse: Cached user snapshot
  - 401: No authenticated session
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, ok := UserFrom(request.Context())
	if !ok {
		respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
		return
	}

	respond.OK(writer, userResponse{Success: true, User: user})
}

// # Cookie Management

// issueCookies writes both token cookies with lifetimes matching the tokens.
func (handler *Handler) issueCookies(writer http.ResponseWriter, session *AuthSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     "/",
		MaxAge:   int(handler.cookies.AccessTTL.Seconds()),
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     "/",
		MaxAge:   int(handler.cookies.RefreshTTL.Seconds()),
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// expireCookies clears both token cookies on the client.
func (handler *Handler) expireCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   handler.cookies.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
