// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
Package auth implements the core identity and access management system.

It handles registration with out-of-band activation codes, credential login,
social sign-in, and the access/refresh token pair backed by a Redis session
cache.

Architecture:

  - Service: Orchestrates business logic (BeginRegistration, Login, Refresh).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Bcrypt password hashing and HS256-signed JWTs with three
    independent secrets.

The package ensures that identity data remains consistent and secure
throughout the platform's lifecycle.
*/
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/edora-dev/edora/internal/mail"
	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/constants"
	"github.com/edora-dev/edora/internal/platform/sec"
	"github.com/edora-dev/edora/pkg/uuidv7"
)

// # Contracts & Types

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or token logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	sessionStore   SessionStore
	tokens         *sec.TokenService
	mailer         mail.Sender
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessions SessionStore,
	tokens *sec.TokenService,
	mailer mail.Sender,
) *Service {
	return &Service{
		userRepository: userRepo,
		sessionStore:   sessions,
		tokens:         tokens,
		mailer:         mailer,
	}
}

// AuthSession represents a successfully established login.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// # Registration Flow

// RegisterInput holds the data required to begin enrolling a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegistrationTicket is the outcome of a successful registration request:
// the signed activation token the client must echo back together with the
// emailed code.
type RegistrationTicket struct {
	ActivationToken string
	Email           string
}

/*
BeginRegistration starts the two-step enrollment of a new member.

Description: No database row is created here. The draft account (including
the plain-text password) and a one-time 4-digit code are sealed into a signed
activation token; the code travels separately by email. Only a client holding
both halves can complete activation.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *RegistrationTicket: Activation token for the client
  - err: Duplicate email, mail delivery, or signing failures
*/
func (service *Service) BeginRegistration(context context.Context, input RegisterInput) (*RegistrationTicket, error) {

	// Best-effort duplicate pre-check. The unique constraint at activation
	// time remains the authoritative guard under concurrency.
	exists, err := service.userRepository.EmailExists(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	if exists {
		return nil, apperr.DuplicateEmail()
	}

	// Generate the one-time code delivered out-of-band
	activationCode, err := sec.GenerateActivationCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_activation_code_failed: %w", err)
	}

	// Seal the draft account and the code into a short-lived signed token
	pending := sec.PendingUser{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}
	activationToken, err := service.tokens.SignActivationToken(pending, activationCode)
	if err != nil {
		return nil, fmt.Errorf("auth_service_activation_token_failed: %w", err)
	}

	// Deliver the code by email. A failed send aborts the flow from the
	// client's perspective, though the signed token itself stays verifiable
	// until its TTL runs out.
	message, err := mail.NewActivationMessage(input.Email, input.Name, activationCode)
	if err != nil {
		return nil, fmt.Errorf("auth_service_activation_mail_render_failed: %w", err)
	}
	if err := service.mailer.Send(context, message); err != nil {
		return nil, apperr.MailDeliveryFailed(err)
	}

	return &RegistrationTicket{
		ActivationToken: activationToken,
		Email:           input.Email,
	}, nil
}

// ActivateInput holds the two halves required to complete enrollment.
type ActivateInput struct {
	ActivationToken string
	ActivationCode  string
}

/*
CompleteActivation verifies the activation token and code, then creates the account.

Description: The token signature and expiry are checked first, then the
emailed code is compared against the sealed one. The duplicate check is
repeated because the email may have been taken between registration and
activation; the database unique constraint backstops the residual race.

Parameters:
  - context: context.Context
  - input: ActivateInput

Returns:
  - err: Invalid token/code, duplicate email, or storage failures
*/
func (service *Service) CompleteActivation(context context.Context, input ActivateInput) error {

	// Verify signature and expiry of the activation token
	claims, err := service.tokens.VerifyActivationToken(input.ActivationToken)
	if err != nil {
		return apperr.InvalidActivationToken()
	}

	// Compare the emailed code with the sealed one
	if claims.ActivationCode != input.ActivationCode {
		return apperr.InvalidActivationCode()
	}

	// Re-check the email; it may have been claimed since registration
	exists, err := service.userRepository.EmailExists(context, claims.User.Email)
	if err != nil {
		return fmt.Errorf("auth_service_activation_email_check_failed: %w", err)
	}
	if exists {
		return apperr.DuplicateEmail()
	}

	// Hash the password sealed in the token before any persistence
	hashedPassword, err := sec.HashPassword(claims.User.Password)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	// IsVerified stays false at creation; only out-of-band verification flips it.
	user := &User{
		ID:           uuidv7.New(),
		Name:         claims.User.Name,
		Email:        claims.User.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		Courses:      []CourseRef{},
	}

	// Persist. Create maps the unique violation to the duplicate conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return err
	}

	return nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and establishes a session.

Description: Verifies identity with a constant-time password comparison,
signs a fresh access/refresh token pair, and writes the session snapshot
that authenticated requests resolve against.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session credentials
  - err: Invalid credentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {

	// Look up by email. Generic error to prevent account enumeration.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// Verify password hash using bcrypt's constant-time comparison
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	return service.establishSession(context, user)
}

// SocialInput carries the identity asserted by an external OAuth provider.
type SocialInput struct {
	Name      string
	Email     string
	AvatarURL string
}

/*
SocialLogin signs in (or enrolls) a user authenticated by an external provider.

Description: Trusts the provider-asserted email. First sight of an email
creates an account on the spot with a random password the owner never sees;
subsequent sign-ins behave like a normal login without a password check.

Parameters:
  - context: context.Context
  - input: SocialInput

Returns:
  - *AuthSession: Transport-ready session credentials
  - err: Storage or token failures
*/
func (service *Service) SocialLogin(context context.Context, input SocialInput) (*AuthSession, error) {

	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if !apperr.IsCode(err, "NOT_FOUND") {
			return nil, err
		}

		// First sight: enroll with a random credential so the password
		// column is never empty.
		randomPassword, err := randomSecret(SocialPasswordBytes)
		if err != nil {
			return nil, fmt.Errorf("auth_service_social_secret_failed: %w", err)
		}
		hashedPassword, err := sec.HashPassword(randomPassword)
		if err != nil {
			return nil, fmt.Errorf("auth_service_social_hash_failed: %w", err)
		}

		user = &User{
			ID:           uuidv7.New(),
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Avatar:       Avatar{URL: input.AvatarURL},
			Role:         sec.RoleUser,
			Courses:      []CourseRef{},
		}

		if err := service.userRepository.Create(context, user); err != nil {
			return nil, err
		}
	}

	return service.establishSession(context, user)
}

/*
Logout removes the user's session entry.

Description: Idempotent. Once the entry is gone, every refresh attempt fails
with session-not-found even if the refresh token is still cryptographically
valid.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Deletion failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.sessionStore.Delete(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
Refresh rotates the token pair using a valid refresh token.

Description: The refresh token must both verify cryptographically and resolve
to a live session entry; either failure forces re-authentication. On success
both tokens are rotated and the session snapshot is rewritten, extending its
TTL.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *AuthSession: Rotated credentials and the cached user snapshot
  - err: Invalid token, dead session, or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*AuthSession, error) {

	// Cryptographic check: signature and expiry under the refresh secret
	userID, err := service.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.InvalidRefreshToken()
	}

	// Liveness check: the session cache is authoritative. A logged-out user
	// holds a verifiable token that must still be refused here.
	user, err := service.sessionStore.Find(context, userID)
	if err != nil {
		return nil, err
	}

	return service.establishSession(context, user)
}

/*
CurrentUser returns the session snapshot for an authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Cached snapshot
  - err: Session-not-found or connectivity errors
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	return service.sessionStore.Find(context, userID)
}

// # Internal Helpers

// establishSession signs a fresh token pair and (re)writes the session snapshot.
func (service *Service) establishSession(context context.Context, user *User) (*AuthSession, error) {

	accessToken, err := service.tokens.SignAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.SignRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// The snapshot write is what makes the user "logged in"
	if err := service.sessionStore.Save(context, user, constants.SessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_save_failed: %w", err)
	}

	return &AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// randomSecret returns n bytes of hex-encoded randomness.
func randomSecret(n int) (string, error) {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
