// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError returns nil for 2xx responses. Otherwise it wraps the
// sentinel for the status code with the reason from the {"error": ...} body.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	reason := errorReason(resp.Body())
	if reason == "" {
		reason = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, reason)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, reason)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, reason)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), reason)
	}
}

func errorReason(body []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return strings.TrimSpace(string(body))
}
