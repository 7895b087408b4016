package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"personaforge/internal/gemini"
	"personaforge/internal/profile"
	"personaforge/internal/speech"
)

type mockScraper struct {
	calls    int
	markdown string
	err      error
	lastURL  string
}

func (m *mockScraper) Scrape(ctx context.Context, url string) (string, error) {
	m.calls++
	m.lastURL = url
	return m.markdown, m.err
}

type mockGenerator struct {
	analyzeCalls int
	personaCalls int
	scriptCalls  int
	analyzeErr   error
	personaErr   error
	scriptErr    error
	lastProfile  profile.Profile
	lastBrief    string
	persona      gemini.Persona
	script       string
}

func (m *mockGenerator) AnalyzeProfile(ctx context.Context, p profile.Profile) (gemini.Analysis, error) {
	m.analyzeCalls++
	m.lastProfile = p
	return gemini.Analysis{}, m.analyzeErr
}

func (m *mockGenerator) GeneratePersona(ctx context.Context, a gemini.Analysis, brief string) (gemini.Persona, error) {
	m.personaCalls++
	m.lastBrief = brief
	return m.persona, m.personaErr
}

func (m *mockGenerator) GenerateAudioScript(ctx context.Context, p gemini.Persona) (string, error) {
	m.scriptCalls++
	return m.script, m.scriptErr
}

type mockSynthesizer struct {
	calls int
	audio speech.Audio
	err   error
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, script string) (speech.Audio, error) {
	m.calls++
	return m.audio, m.err
}

func newMocks() (*mockScraper, *mockGenerator, *mockSynthesizer) {
	return &mockScraper{markdown: "# Jane Doe\n\nSenior PM"},
		&mockGenerator{
			persona: gemini.Persona{PersonaName: "The Operator"},
			script:  "You are designing for a pragmatic executive who values speed.",
		},
		&mockSynthesizer{audio: speech.Audio{Data: []byte{0x01, 0x02}, Duration: 48}}
}

func TestRun_URLSourceScrapesThenParses(t *testing.T) {
	scraper, generator, synth := newMocks()
	r := NewRunner(scraper, generator, synth)

	result, err := r.Run(context.Background(), Source{LinkedInURL: "https://www.linkedin.com/in/janedoe"}, "Design a dashboard")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if scraper.calls != 1 {
		t.Errorf("scraper calls = %d, want 1", scraper.calls)
	}
	if scraper.lastURL != "https://www.linkedin.com/in/janedoe" {
		t.Errorf("scraped URL = %q", scraper.lastURL)
	}
	if generator.lastProfile.Name != "Jane Doe" {
		t.Errorf("analyzed profile name = %q, want Jane Doe", generator.lastProfile.Name)
	}
	if generator.lastBrief != "Design a dashboard" {
		t.Errorf("brief = %q, forwarded verbatim expected", generator.lastBrief)
	}
	if result.Persona.PersonaName != "The Operator" {
		t.Errorf("persona = %q", result.Persona.PersonaName)
	}
	if result.ProcessingTime < 0 {
		t.Errorf("ProcessingTime = %d, want >= 0", result.ProcessingTime)
	}
}

func TestRun_ArticleTextSkipsScraper(t *testing.T) {
	scraper, generator, synth := newMocks()
	r := NewRunner(scraper, generator, synth)

	_, err := r.Run(context.Background(), Source{ArticleText: "# John Smith\n\nStaff Engineer"}, "brief text here")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if scraper.calls != 0 {
		t.Errorf("scraper calls = %d, want 0 for direct text", scraper.calls)
	}
	if generator.lastProfile.Name != "John Smith" {
		t.Errorf("profile name = %q, want John Smith", generator.lastProfile.Name)
	}
}

func TestRun_AnalysisFailureAbortsLaterStages(t *testing.T) {
	scraper, generator, synth := newMocks()
	generator.analyzeErr = errors.New("Gemini API rate limit exceeded")
	r := NewRunner(scraper, generator, synth)

	_, err := r.Run(context.Background(), Source{ArticleText: "# Jane"}, "brief")
	if err == nil {
		t.Fatal("Run() error = nil, want error")
	}
	if generator.personaCalls != 0 {
		t.Errorf("persona calls = %d, want 0 after analysis failure", generator.personaCalls)
	}
	if generator.scriptCalls != 0 {
		t.Errorf("script calls = %d, want 0 after analysis failure", generator.scriptCalls)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer calls = %d, want 0 after analysis failure", synth.calls)
	}

	// Original message must survive intact for the classifier.
	if err.Error() != "Gemini API rate limit exceeded" {
		t.Errorf("error message = %q, want upstream message unmodified", err.Error())
	}

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if se.Stage != StageAnalyzing {
		t.Errorf("failed stage = %q, want analyzing", se.Stage)
	}
}

func TestRun_ScrapeFailureRecordsScrapingStage(t *testing.T) {
	scraper, generator, synth := newMocks()
	scraper.err = errors.New("firecrawl: profile not found or private (HTTP 404)")
	r := NewRunner(scraper, generator, synth)

	_, err := r.Run(context.Background(), Source{LinkedInURL: "https://www.linkedin.com/in/nobody"}, "brief")
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if se.Stage != StageScraping {
		t.Errorf("failed stage = %q, want scraping", se.Stage)
	}
	if generator.analyzeCalls != 0 {
		t.Errorf("analyze calls = %d, want 0", generator.analyzeCalls)
	}
}

func TestRun_ScriptFailureRecordsSynthesizingStage(t *testing.T) {
	scraper, generator, synth := newMocks()
	generator.scriptErr = errors.New("gemini returned no content")
	r := NewRunner(scraper, generator, synth)

	_, err := r.Run(context.Background(), Source{ArticleText: "# Jane"}, "brief")
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if se.Stage != StageSynthesizing {
		t.Errorf("failed stage = %q, want synthesizing", se.Stage)
	}
	if synth.calls != 0 {
		t.Errorf("synthesizer calls = %d, want 0 when script generation fails", synth.calls)
	}
}

func TestRun_DataURLFallback(t *testing.T) {
	scraper, generator, synth := newMocks()
	synth.audio = speech.Audio{Data: []byte{0x01, 0x02, 0x03}}
	r := NewRunner(scraper, generator, synth)

	result, err := r.Run(context.Background(), Source{ArticleText: "# Jane"}, "brief")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(result.AudioURL, "data:audio/mpeg;base64,") {
		t.Errorf("AudioURL = %q, want data URL", result.AudioURL)
	}
}

func TestRun_HostedURLPreferred(t *testing.T) {
	scraper, generator, synth := newMocks()
	synth.audio = speech.Audio{Data: []byte{0x01}, URL: "https://cdn.example.com/clip.mp3"}
	r := NewRunner(scraper, generator, synth)

	result, err := r.Run(context.Background(), Source{ArticleText: "# Jane"}, "brief")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.AudioURL != "https://cdn.example.com/clip.mp3" {
		t.Errorf("AudioURL = %q, want hosted URL", result.AudioURL)
	}
}

func TestRun_ResultCarriesScript(t *testing.T) {
	scraper, generator, synth := newMocks()
	r := NewRunner(scraper, generator, synth)

	result, err := r.Run(context.Background(), Source{ArticleText: "# Jane"}, "brief")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.AudioScript != generator.script {
		t.Errorf("AudioScript = %q, want script from generator", result.AudioScript)
	}
}
