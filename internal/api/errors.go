package api

import (
	"net/http"
	"strings"
)

// Classification is the HTTP-facing verdict for a pipeline error.
type Classification struct {
	Status  int
	Code    string
	Message string
	Details string
}

// ErrorResponse is the JSON error body returned on every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

// upstreamTerms mark an error as coming from (or through) an external
// service: the known collaborator names plus generic transport failures.
var upstreamTerms = []string{"gemini", "elevenlabs", "firecrawl", "timeout", "network", "unavailable"}

// Classify maps a free-text error to an HTTP status and stable code by
// ordered substring checks over the lowercased message; first match wins.
// The upstream services raise plain text rather than a typed taxonomy, so
// string matching is the deliberate — and deliberately brittle — boundary
// here. Auth failures are redacted; validation detail passes through;
// internal detail is exposed only outside production.
func Classify(err error, production bool) Classification {
	msg := strings.ToLower(err.Error())

	switch {
	case containsAny(msg, "rate limit", "quota"):
		return Classification{
			Status:  http.StatusTooManyRequests,
			Code:    "RATE_LIMIT_EXCEEDED",
			Message: "Rate limit exceeded",
			Details: "Please try again later",
		}
	case containsAny(msg, "api key", "authentication", "unauthorized"):
		return Classification{
			Status:  http.StatusServiceUnavailable,
			Code:    "SERVICE_AUTH_FAILED",
			Message: "External service authentication failed",
			Details: "AI service temporarily unavailable",
		}
	case containsAny(msg, upstreamTerms...):
		return Classification{
			Status:  http.StatusServiceUnavailable,
			Code:    "SERVICE_UNAVAILABLE",
			Message: "External service temporarily unavailable",
			Details: "AI service temporarily unavailable. Please try again.",
		}
	case containsAny(msg, "validation", "invalid"):
		return Classification{
			Status:  http.StatusBadRequest,
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request data",
			Details: err.Error(),
		}
	default:
		details := ""
		if !production {
			details = err.Error()
		}
		return Classification{
			Status:  http.StatusInternalServerError,
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: details,
		}
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
