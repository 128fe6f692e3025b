// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHTTPAddress  = errors.New("server: http address is not configured")
	errNotInitialized = errors.New("server: http server is not initialized")
)
