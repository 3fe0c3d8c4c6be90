// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

package server

import "errors"

var (
	errNoListenAddress = errors.New("no HTTP listen address configured")
)
