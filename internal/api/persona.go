package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"personaforge/internal/pipeline"
)

const (
	maxRequestBodySize = 1 << 20 // 1MB

	minBriefLen   = 10
	minArticleLen = 500
	maxArticleLen = 50000
)

var linkedinProfileRe = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9-]+`)

// GenerateRequest is the body of POST /api/persona/generate. Exactly one of
// LinkedInURL or ArticleText supplies the source.
type GenerateRequest struct {
	LinkedInURL string `json:"linkedinUrl"`
	ArticleText string `json:"articleText"`
	DesignBrief string `json:"designBrief"`
}

// PipelineRunner abstracts the persona pipeline for the API layer.
type PipelineRunner interface {
	Run(ctx context.Context, src pipeline.Source, designBrief string) (pipeline.Result, error)
}

// Deps carries the handler dependencies, constructed once at startup.
type Deps struct {
	Runner     PipelineRunner
	Token      string // optional; bearer auth is enabled when non-empty
	Production bool
}

// NewHandler returns the HTTP surface: the persona generation endpoint and
// a health probe.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Route("/api/persona", func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/generate", handleGenerate(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleGenerate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		requestID := uuid.New().String()

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, requestID, Classification{
				Status:  http.StatusBadRequest,
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request data",
				Details: fmt.Sprintf("invalid request body: %v", err),
			})
			return
		}

		if err := validateGenerateRequest(req); err != nil {
			slog.Info("request rejected", "request_id", requestID, "error", err)
			writeError(w, requestID, Classification{
				Status:  http.StatusBadRequest,
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request data",
				Details: err.Error(),
			})
			return
		}

		src := pipeline.Source{
			LinkedInURL: strings.TrimSpace(req.LinkedInURL),
			ArticleText: req.ArticleText,
		}
		sourceKind := "article"
		if src.LinkedInURL != "" {
			sourceKind = "url"
		}
		slog.Info("persona generation request",
			"request_id", requestID,
			"source", sourceKind,
			"brief_len", len(req.DesignBrief),
		)

		result, err := deps.Runner.Run(r.Context(), src, req.DesignBrief)
		if err != nil {
			slog.Error("persona generation failed", "request_id", requestID, "error", err)
			writeError(w, requestID, Classify(err, deps.Production))
			return
		}

		slog.Info("persona generation successful",
			"request_id", requestID,
			"processing_ms", result.ProcessingTime,
		)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// validateGenerateRequest enforces the request contract before the pipeline
// runs: a single well-formed source and a usable design brief. These checks
// are the only gate — the orchestrator itself trusts its inputs.
func validateGenerateRequest(req GenerateRequest) error {
	if strings.TrimSpace(req.DesignBrief) == "" {
		return fmt.Errorf("designBrief cannot be empty")
	}
	if len(strings.TrimSpace(req.DesignBrief)) < minBriefLen {
		return fmt.Errorf("designBrief must be at least %d characters", minBriefLen)
	}

	hasURL := strings.TrimSpace(req.LinkedInURL) != ""
	hasText := strings.TrimSpace(req.ArticleText) != ""
	switch {
	case !hasURL && !hasText:
		return fmt.Errorf("one of linkedinUrl or articleText is required")
	case hasURL && hasText:
		return fmt.Errorf("provide either linkedinUrl or articleText, not both")
	case hasURL:
		if !linkedinProfileRe.MatchString(req.LinkedInURL) {
			return fmt.Errorf("linkedinUrl must be a valid LinkedIn profile URL")
		}
	default:
		n := utf8.RuneCountInString(req.ArticleText)
		if n < minArticleLen || n > maxArticleLen {
			return fmt.Errorf("articleText must be between %d and %d characters, got %d", minArticleLen, maxArticleLen, n)
		}
	}
	return nil
}

func writeError(w http.ResponseWriter, requestID string, cls Classification) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(cls.Status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:     cls.Message,
		Code:      cls.Code,
		Details:   cls.Details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	})
}
