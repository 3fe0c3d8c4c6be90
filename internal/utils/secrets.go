// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// resetTokenBytes is the entropy of a password reset token before encoding.
const resetTokenBytes = 32

// NewResetToken generates an opaque URL-safe password reset token
// from 32 bytes of cryptographically secure randomness.
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
