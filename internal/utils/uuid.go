// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

package utils

import "github.com/google/uuid"

// UUIDGenerator returns a new UUID string. Version 7 identifiers are
// preferred because they sort by creation time; if v7 generation fails
// the function falls back to a random v4 identifier.
func UUIDGenerator() string {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return newUUID.String()
}
