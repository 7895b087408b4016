package api

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantStatus int
		wantCode   string
	}{
		{"rate limit", "Rate limit exceeded for Gemini API", 429, "RATE_LIMIT_EXCEEDED"},
		{"quota", "quota exhausted for project", 429, "RATE_LIMIT_EXCEEDED"},
		{"api key", "firecrawl authentication failed: invalid api key (HTTP 401)", 503, "SERVICE_AUTH_FAILED"},
		{"unauthorized", "request unauthorized", 503, "SERVICE_AUTH_FAILED"},
		{"timeout", "ECONNABORTED timeout", 503, "SERVICE_UNAVAILABLE"},
		{"service name", "gemini returned no content", 503, "SERVICE_UNAVAILABLE"},
		{"network", "elevenlabs network error: connection refused", 503, "SERVICE_UNAVAILABLE"},
		{"validation", "Validation failed: url malformed", 400, "VALIDATION_ERROR"},
		{"invalid", "invalid request payload", 400, "VALIDATION_ERROR"},
		{"unrecognized", "disk full", 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(errors.New(tt.message), false)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

// Rate limit wins over the service-name bucket even when both terms appear:
// the checks are ordered and the first match decides.
func TestClassify_OrderMatters(t *testing.T) {
	got := Classify(errors.New("gemini rate limit hit"), false)
	if got.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("Code = %q, want RATE_LIMIT_EXCEEDED", got.Code)
	}
}

func TestClassify_AuthDetailRedacted(t *testing.T) {
	got := Classify(errors.New("authentication failed: api key sk-secret-123"), false)
	if got.Details != "AI service temporarily unavailable" {
		t.Errorf("Details = %q, want redacted generic detail", got.Details)
	}
}

func TestClassify_ValidationDetailPassedThrough(t *testing.T) {
	got := Classify(errors.New("Validation failed: url malformed"), true)
	if got.Details != "Validation failed: url malformed" {
		t.Errorf("Details = %q, want original message", got.Details)
	}
}

func TestClassify_InternalDetailSuppressedInProduction(t *testing.T) {
	if got := Classify(errors.New("disk full"), true); got.Details != "" {
		t.Errorf("Details = %q, want empty in production", got.Details)
	}
	if got := Classify(errors.New("disk full"), false); got.Details != "disk full" {
		t.Errorf("Details = %q, want message outside production", got.Details)
	}
}
