// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth

// # Authentication Constraints

const (
	// PasswordMinLen is the minimum accepted password length.
	PasswordMinLen = 6

	// NameMaxLen bounds the display name to keep mail templates and
	// list views sane.
	NameMaxLen = 100

	// ActivationCodeLen is the exact length of the emailed one-time code.
	ActivationCodeLen = 4

	// SocialPasswordBytes is the entropy (in bytes) of the random password
	// assigned to accounts created through social sign-in. The owner never
	// sees it; it only exists so the credential path stays uniform.
	SocialPasswordBytes = 32
)
