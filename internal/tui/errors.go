// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
)

// humanizeError turns transport failures into a short message and strips
// the sentinel prefix from API errors.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "network is down or the server is unavailable"
	}

	for _, sentinel := range []error{adapter.ErrBadRequest, adapter.ErrUnauthorized, adapter.ErrNotFound, adapter.ErrInternalServerError} {
		if errors.Is(err, sentinel) {
			if _, reason, ok := strings.Cut(err.Error(), ": "); ok {
				return reason
			}
		}
	}

	return err.Error()
}
