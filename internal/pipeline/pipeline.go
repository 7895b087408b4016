package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"personaforge/internal/gemini"
	"personaforge/internal/profile"
	"personaforge/internal/speech"
)

// Scraper fetches a page as Markdown.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Generator is the three-call generation contract backed by Gemini.
type Generator interface {
	AnalyzeProfile(ctx context.Context, p profile.Profile) (gemini.Analysis, error)
	GeneratePersona(ctx context.Context, a gemini.Analysis, designBrief string) (gemini.Persona, error)
	GenerateAudioScript(ctx context.Context, p gemini.Persona) (string, error)
}

// Synthesizer converts a script to speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, script string) (speech.Audio, error)
}

// Source is the pipeline input: exactly one of LinkedInURL or ArticleText
// is set. Validation happens at the HTTP boundary before Run is called.
type Source struct {
	LinkedInURL string
	ArticleText string
}

// Result is the complete pipeline output for one request.
type Result struct {
	Persona        gemini.Persona `json:"persona"`
	AudioURL       string         `json:"audioUrl"`
	AudioScript    string         `json:"audioScript"`
	ProcessingTime int64          `json:"processingTime"`
}

// Runner drives the persona pipeline: acquire profile, analyze, generate
// persona, write and synthesize the audio briefing. Stages are strictly
// sequential; the first failure aborts the run and propagates unmodified.
// A Runner is stateless across runs and safe for concurrent use.
type Runner struct {
	scraper     Scraper
	generator   Generator
	synthesizer Synthesizer
}

// NewRunner creates a Runner wired to its three external collaborators.
func NewRunner(scraper Scraper, generator Generator, synthesizer Synthesizer) *Runner {
	return &Runner{
		scraper:     scraper,
		generator:   generator,
		synthesizer: synthesizer,
	}
}

// Run executes the pipeline. ProcessingTime covers wall clock from before
// the first stage to after the last. There is no retry and no partial
// result: a failed run returns only a *StageError.
func (r *Runner) Run(ctx context.Context, src Source, designBrief string) (Result, error) {
	start := time.Now()
	var m Machine

	// Stage 1: acquire a structured profile, scraping first when the
	// source is a URL.
	m.Advance(StageScraping)
	markdown := src.ArticleText
	if src.LinkedInURL != "" {
		scraped, err := r.scraper.Scrape(ctx, src.LinkedInURL)
		if err != nil {
			return fail(&m, err)
		}
		markdown = scraped
	}
	prof := profile.ParseMarkdown(markdown)
	slog.Debug("profile parsed",
		"name", prof.Name,
		"past_positions", len(prof.PastPositions),
		"skills", len(prof.Skills),
	)

	// Stage 2: analyze.
	m.Advance(StageAnalyzing)
	analysis, err := r.generator.AnalyzeProfile(ctx, prof)
	if err != nil {
		return fail(&m, err)
	}

	// Stage 3: generate persona.
	m.Advance(StageGenerating)
	persona, err := r.generator.GeneratePersona(ctx, analysis, designBrief)
	if err != nil {
		return fail(&m, err)
	}

	// Stage 4: script, then speech.
	m.Advance(StageSynthesizing)
	script, err := r.generator.GenerateAudioScript(ctx, persona)
	if err != nil {
		return fail(&m, err)
	}
	audio, err := r.synthesizer.Synthesize(ctx, script)
	if err != nil {
		return fail(&m, err)
	}

	m.Advance(StageComplete)
	elapsed := time.Since(start).Milliseconds()
	slog.Info("pipeline complete",
		"persona", persona.PersonaName,
		"script_words", len(strings.Fields(script)),
		"processing_ms", elapsed,
	)

	return Result{
		Persona:        persona,
		AudioURL:       audioURL(audio),
		AudioScript:    script,
		ProcessingTime: elapsed,
	}, nil
}

func fail(m *Machine, err error) (Result, error) {
	stage := m.Stage()
	m.Fail()
	slog.Warn("pipeline failed", "stage", string(stage), "error", err)
	return Result{}, &StageError{Stage: stage, Err: err}
}

// audioURL prefers the hosted URL when the synthesizer provides one,
// otherwise embeds the clip as a data URL playable directly by a browser.
func audioURL(a speech.Audio) string {
	if a.URL != "" {
		return a.URL
	}
	return fmt.Sprintf("data:audio/mpeg;base64,%s", base64.StdEncoding.EncodeToString(a.Data))
}
