package kaltura

import (
	"errors"
	"fmt"
	"net/http"

	"flavorcheck/internal/services"
)

// Platform exception codes with a dedicated meaning.
const (
	CodeEntryNotFound       = "ENTRY_ID_NOT_FOUND"
	CodeProfileNotFound     = "CONVERSION_PROFILE_ID_NOT_FOUND"
	CodeFlavorParamsMissing = "FLAVOR_PARAMS_ID_NOT_FOUND"
	CodeInvalidKS           = "INVALID_KS"
	CodeExpiredKS           = "EXPIRED_KS"
)

var authCodes = map[string]struct{}{
	CodeInvalidKS:           {},
	CodeExpiredKS:           {},
	"START_SESSION_ERROR":   {},
	"SERVICE_FORBIDDEN":     {},
	"INVALID_PARTNER_ID":    {},
	"ADMIN_KUSER_NOT_FOUND": {},
	"PARTNER_BLOCKED":       {},
}

// APIError is a KalturaAPIException returned in a 200 response body.
type APIError struct {
	Service string
	Action  string
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kaltura %s.%s: %s: %s", e.Service, e.Action, e.Code, e.Message)
}

// Marker maps the exception code onto the run's error taxonomy.
func (e *APIError) Marker() error {
	if e.Code == CodeEntryNotFound {
		return services.ErrNotFound
	}
	if _, ok := authCodes[e.Code]; ok {
		return services.ErrAuthentication
	}
	return services.ErrAPICall
}

// IsCode reports whether err carries a platform exception with code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// statusError is a non-2xx HTTP response.
type statusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *statusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %s", e.Status)
	}
	return fmt.Sprintf("http %s: %s", e.Status, e.Body)
}

func (e *statusError) marker() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return services.ErrAuthentication
	case e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500:
		return services.ErrTransient
	default:
		return services.ErrAPICall
	}
}
