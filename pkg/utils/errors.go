package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrFetchFailed      = errors.New("upstream returned non-success status") // Wraps status and country
	ErrContentNotFound  = errors.New("Could not find content")
	ErrParsing          = errors.New("parsing error") // Wraps specific parsing error (HTML, URL)
	ErrRequestCreation  = errors.New("failed to create HTTP request")
	ErrResponseBodyRead = errors.New("failed to read response body")
	ErrMissingCountry   = errors.New("country query parameter is required")
	ErrConfigValidation = errors.New("configuration validation error")
)

// Error taxonomy exposed to callers. Finer categories from CategorizeError
// are only used for logging.
const (
	KindFetchFailed     = "FetchFailed"
	KindContentNotFound = "ContentNotFound"
	KindUnexpected      = "Unexpected"
)

// FetchError reports a non-success upstream status for a country article.
type FetchError struct {
	Country    string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Could not fetch page for '%s'", e.Country)
}

// Unwrap lets errors.Is match ErrFetchFailed.
func (e *FetchError) Unwrap() error { return ErrFetchFailed }

// WrapErrorf wraps err with a formatted message, returning nil for a nil err.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind maps an error to one of KindFetchFailed, KindContentNotFound or KindUnexpected.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrFetchFailed):
		return KindFetchFailed
	case errors.Is(err, ErrContentNotFound):
		return KindContentNotFound
	default:
		return KindUnexpected
	}
}

// ErrorMessage returns the user-facing message for err.
// Known failures get their fixed messages, anything else its own text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Error()
	}
	if errors.Is(err, ErrContentNotFound) {
		return ErrContentNotFound.Error()
	}
	return err.Error()
}

// CategorizeError maps an error to a predefined category string for logging.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrFetchFailed):
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			switch {
			case fetchErr.StatusCode == 404:
				return "HTTP_404"
			case fetchErr.StatusCode == 403:
				return "HTTP_403"
			case fetchErr.StatusCode == 429:
				return "HTTP_429"
			case fetchErr.StatusCode >= 500:
				return "HTTP_5xx"
			case fetchErr.StatusCode >= 400:
				return "HTTP_4xx"
			}
		}
		return "HTTP_OtherStatus"
	case errors.Is(err, ErrContentNotFound):
		return "Content_NotFound"
	case errors.Is(err, ErrParsing):
		errMsg := err.Error()
		if strings.Contains(errMsg, "URL") {
			return "Content_ParsingURL"
		}
		if strings.Contains(errMsg, "HTML") {
			return "Content_ParsingHTML"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrMissingCountry):
		return "Request_MissingCountry"
	case errors.Is(err, ErrRequestCreation):
		return "Internal_RequestCreation"
	case errors.Is(err, ErrResponseBodyRead):
		return "Network_BodyRead"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	// --- Fallback checks for common underlying error types/strings ---

	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Network_Timeout"
	}
	lowerErrMsg := strings.ToLower(err.Error())
	if strings.Contains(lowerErrMsg, "timeout") {
		return "Network_TimeoutGeneric"
	}
	if strings.Contains(lowerErrMsg, "connection refused") {
		return "Network_ConnectionRefused"
	}
	if strings.Contains(lowerErrMsg, "no such host") {
		return "Network_DNSLookup"
	}
	if strings.Contains(lowerErrMsg, "tls") || strings.Contains(lowerErrMsg, "certificate") {
		return "Network_TLS"
	}
	if strings.Contains(lowerErrMsg, "reset by peer") {
		return "Network_ConnectionReset"
	}

	return "Unknown"
}
