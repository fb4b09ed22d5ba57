// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer.
//
// Three independent HMAC secrets back the activation, access, and refresh
// token families, so a token signed under one secret always fails
// verification under another.
package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the payload embedded inside an access or refresh token.
//
// Only the user identifier is embedded, never the password hash or the full
// record. Possession of a valid token is necessary but not sufficient for
// authorization: the identified user must still resolve to a live session
// and, for gated operations, to role membership.
type TokenClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
}

// PendingUser is the unconfirmed registration carried inside an activation
// token. The token is the sole custodian of the pending registration: no
// database row exists until activation succeeds.
//
// The plain-text password only exists transiently, inside the signed token
// and in request memory; it is hashed before any persistence.
type PendingUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivationClaims is the payload of a pending-registration token: the draft
// user plus a one-time 4-digit code delivered out-of-band by email.
type ActivationClaims struct {
	jwt.RegisteredClaims

	User           PendingUser `json:"user"`
	ActivationCode string      `json:"activationCode"`
}

// TokenService signs and verifies the three token families using HS256.
type TokenService struct {
	activationSecret []byte
	accessSecret     []byte
	refreshSecret    []byte

	activationTTL time.Duration
	accessTTL     time.Duration
	refreshTTL    time.Duration

	issuer string
}

// TokenConfig bundles the secrets and lifetimes for [NewTokenService].
type TokenConfig struct {
	ActivationSecret string
	AccessSecret     string
	RefreshSecret    string

	ActivationTTL time.Duration
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	Issuer string
}

// NewTokenService creates a new TokenService.
//
// All three secrets are mandatory and must be independent; reusing one value
// for two families silently collapses their security boundary, so it is
// rejected here.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.ActivationSecret == "" || cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("sec: all three signing secrets are required")
	}
	if cfg.ActivationSecret == cfg.AccessSecret ||
		cfg.AccessSecret == cfg.RefreshSecret ||
		cfg.ActivationSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("sec: signing secrets must be pairwise distinct")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.ActivationTTL <= 0 {
		return nil, fmt.Errorf("sec: token lifetimes must be positive")
	}

	return &TokenService{
		activationSecret: []byte(cfg.ActivationSecret),
		accessSecret:     []byte(cfg.AccessSecret),
		refreshSecret:    []byte(cfg.RefreshSecret),
		activationTTL:    cfg.ActivationTTL,
		accessTTL:        cfg.AccessTTL,
		refreshTTL:       cfg.RefreshTTL,
		issuer:           cfg.Issuer,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (service *TokenService) RefreshTTL() time.Duration { return service.refreshTTL }

// # Access / Refresh Tokens

// SignAccessToken creates a short-lived signed token embedding only the user ID.
func (service *TokenService) SignAccessToken(userID string) (string, error) {
	return service.signIdentity(userID, service.accessSecret, service.accessTTL)
}

// SignRefreshToken creates a long-lived signed token embedding only the user ID.
func (service *TokenService) SignRefreshToken(userID string) (string, error) {
	return service.signIdentity(userID, service.refreshSecret, service.refreshTTL)
}

// VerifyAccessToken checks signature and expiry and returns the embedded user ID.
func (service *TokenService) VerifyAccessToken(tokenString string) (string, error) {
	return service.verifyIdentity(tokenString, service.accessSecret)
}

// VerifyRefreshToken checks signature and expiry and returns the embedded user ID.
func (service *TokenService) VerifyRefreshToken(tokenString string) (string, error) {
	return service.verifyIdentity(tokenString, service.refreshSecret)
}

func (service *TokenService) signIdentity(userID string, secret []byte, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (service *TokenService) verifyIdentity(tokenString string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return "", fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", fmt.Errorf("sec: invalid token claims")
	}

	return claims.UserID, nil
}

// # Activation Tokens

// SignActivationToken wraps a draft registration and its one-time code into a
// short-lived signed bundle under the dedicated activation secret.
func (service *TokenService) SignActivationToken(user PendingUser, activationCode string) (string, error) {
	currentTime := time.Now()
	claims := ActivationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.activationTTL)),
		},
		User:           user,
		ActivationCode: activationCode,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.activationSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign activation token: %w", err)
	}

	return signedToken, nil
}

// VerifyActivationToken checks signature and expiry of an activation token and
// returns its claims. Any failure (malformed token, wrong secret, expiry)
// yields a single generic error; callers map it to their taxonomy.
func (service *TokenService) VerifyActivationToken(tokenString string) (*ActivationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActivationClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.activationSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid activation token: %w", err)
	}

	claims, ok := token.Claims.(*ActivationClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid activation token claims")
	}

	return claims, nil
}

// # One-Time Codes

// GenerateActivationCode returns a 4-digit numeric code chosen uniformly
// from [1000, 9999).
func GenerateActivationCode() (string, error) {
	offset, err := rand.Int(rand.Reader, big.NewInt(8999))
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate activation code: %w", err)
	}
	return fmt.Sprintf("%04d", 1000+offset.Int64()), nil
}
