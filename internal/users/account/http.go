// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
HTTP delivery layer for profile and administrative user management.

# Security

Every endpoint requires an authenticated session; the admin subset
additionally requires the admin role. Both are enforced by the auth
domain's [auth.Gate].
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edora-dev/edora/internal/platform/apperr"
	requestutil "github.com/edora-dev/edora/internal/platform/request"
	"github.com/edora-dev/edora/internal/platform/respond"
	"github.com/edora-dev/edora/internal/platform/sec"
	"github.com/edora-dev/edora/internal/platform/validate"
	"github.com/edora-dev/edora/internal/users/auth"
	"github.com/edora-dev/edora/pkg/pagination"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	accountService *Service
	gate           *auth.Gate
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, gate *auth.Gate) *Handler {
	return &Handler{accountService: service, gate: gate}
}

// Register mounts the account routes onto the given router.
//
// # Endpoints
//   - PUT    /update-user-info     : Changes name/email.
//   - PUT    /update-user-password : Rotates the password.
//   - PUT    /update-user-avatar   : Replaces the profile image.
//   - GET    /get-users            : Lists all accounts (admin).
//   - PUT    /update-user          : Changes an account's role (admin).
//   - DELETE /delete-user/{id}     : Removes an account (admin).
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.Authenticate)

		// Profile self-service
		r.Put("/update-user-info", handler.updateUserInfo)
		r.Put("/update-user-password", handler.updateUserPassword)
		r.Put("/update-user-avatar", handler.updateUserAvatar)

		// Administration
		r.Group(func(admin chi.Router) {
			admin.Use(handler.gate.RequireRole(sec.RoleAdmin))
			admin.Get("/get-users", handler.getUsers)
			admin.Put("/update-user", handler.updateUser)
			admin.Delete("/delete-user/{id}", handler.deleteUser)
		})
	})
}

// # Request Payloads

type updateInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateAvatarRequest struct {
	Avatar struct {
		PublicID string `json:"public_id"`
		URL      string `json:"url"`
	} `json:"avatar"`
}

type updateRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// # Response Payloads

type userResponse struct {
	Success bool       `json:"success"`
	User    *auth.User `json:"user"`
}

type usersResponse struct {
	Success bool            `json:"success"`
	Users   []*auth.User    `json:"users"`
	Meta    pagination.Meta `json:"meta"`
}

/*
UpdateUserInfo changes the authenticated user's name and/or email.

PUT /api/v1/update-user-info

Request:
  - Body: updateInfoRequest (Name, Email)

Response:
  - 200: userResponse: Updated profile
  - 400: Validation failure
  - 409: Email already taken
*/
func (handler *Handler) updateUserInfo(writer http.ResponseWriter, request *http.Request) {
	user, ok := auth.UserFrom(request.Context())
	if !ok {
		respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
		return
	}

	var input updateInfoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.MaxLen(auth.FieldName, input.Name, auth.NameMaxLen)
	if input.Email != "" {
		validator.Email(auth.FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateProfile(request.Context(), user.ID, UpdateProfileInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{Success: true, User: updated})
}

/*
UpdateUserPassword rotates the authenticated user's password.

PUT /api/v1/update-user-password

Request:
  - Body: updatePasswordRequest (OldPassword, NewPassword)

Response:
  - 200: userResponse: Updated profile
  - 400: Wrong old password or validation failure
*/
func (handler *Handler) updateUserPassword(writer http.ResponseWriter, request *http.Request) {
	user, ok := auth.UserFrom(request.Context())
	if !ok {
		respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
		return
	}

	var input updatePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldOldPassword, input.OldPassword).
		Required(auth.FieldNewPassword, input.NewPassword).
		MinLen(auth.FieldNewPassword, input.NewPassword, auth.PasswordMinLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdatePassword(request.Context(), user.ID, UpdatePasswordInput{
		OldPassword: input.OldPassword,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{Success: true, User: updated})
}

/*
UpdateUserAvatar replaces the authenticated user's profile image reference.

PUT /api/v1/update-user-avatar

Request:
  - Body: updateAvatarRequest (Avatar.PublicID, Avatar.URL)

Response:
  - 200: userResponse: Updated profile
  - 400: Validation failure
*/
func (handler *Handler) updateUserAvatar(writer http.ResponseWriter, request *http.Request) {
	user, ok := auth.UserFrom(request.Context())
	if !ok {
		respond.Error(writer, request, apperr.Unauthenticated("Please login to access this resource"))
		return
	}

	var input updateAvatarRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldAvatar, input.Avatar.URL)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateAvatar(request.Context(), user.ID, UpdateAvatarInput{
		PublicID: input.Avatar.PublicID,
		URL:      input.Avatar.URL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{Success: true, User: updated})
}

// # Administration Endpoints

/*
GetUsers lists accounts, newest first, one page at a time.

GET /api/v1/get-users?page=1&limit=20

Response:
  - 200: usersResponse: Page of accounts plus pagination metadata
  - 403: Caller is not an admin
*/
func (handler *Handler) getUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, meta, err := handler.accountService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, usersResponse{Success: true, Users: users, Meta: meta})
}

/*
UpdateUser changes an account's role, identified by email.

PUT /api/v1/update-user

Request:
  - Body: updateRoleRequest (Email, Role)

Response:
  - 200: userResponse: Updated account
  - 400: Unknown role or validation failure
  - 403: Caller is not an admin
  - 404: No account with that email
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var input updateRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldRole, input.Role).
		OneOf(auth.FieldRole, input.Role, string(sec.RoleUser), string(sec.RoleAdmin))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateUserRole(request.Context(), UpdateRoleInput{
		Email: input.Email,
		Role:  sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userResponse{Success: true, User: updated})
}

/*
DeleteUser permanently removes an account and ends its session.

DELETE /api/v1/delete-user/{id}

Response:
  - 200: Success message
  - 403: Caller is not an admin
  - 404: No account with that ID
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required(auth.FieldUserID, userID).UUID(auth.FieldUserID, userID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteUser(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusOK, "User deleted successfully")
}
