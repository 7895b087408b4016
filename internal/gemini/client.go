package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"personaforge/internal/profile"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the Gemini API for the three generation calls of the
// pipeline: profile analysis, persona synthesis, and audio script writing.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client with the given API key. An empty model
// selects the default.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// AnalyzeProfile derives communication style and design/content preferences
// from a structured profile.
func (c *Client) AnalyzeProfile(ctx context.Context, p profile.Profile) (Analysis, error) {
	raw, err := c.generate(ctx, BuildAnalysisPrompt(p))
	if err != nil {
		return Analysis{}, err
	}

	var a Analysis
	if err := unmarshalResponse(raw, &a); err != nil {
		return Analysis{}, fmt.Errorf("gemini analysis: %w", err)
	}
	a.CommunicationStyle.Verbosity = normalizeVerbosity(a.CommunicationStyle.Verbosity)
	if a.InferredContentPreferences.RespondsTo == nil {
		a.InferredContentPreferences.RespondsTo = []string{}
	}
	if a.InferredContentPreferences.Avoids == nil {
		a.InferredContentPreferences.Avoids = []string{}
	}
	return a, nil
}

// GeneratePersona combines an analysis with the caller's design brief. The
// returned persona always has non-empty designGuidance lists; a response
// missing them is treated as an upstream failure.
func (c *Client) GeneratePersona(ctx context.Context, a Analysis, designBrief string) (Persona, error) {
	raw, err := c.generate(ctx, BuildPersonaPrompt(a, designBrief))
	if err != nil {
		return Persona{}, err
	}

	var p Persona
	if err := unmarshalResponse(raw, &p); err != nil {
		return Persona{}, fmt.Errorf("gemini persona: %w", err)
	}
	if len(p.DesignGuidance.Do) == 0 || len(p.DesignGuidance.Avoid) == 0 {
		return Persona{}, fmt.Errorf("gemini persona: designGuidance must contain do and avoid items")
	}
	p.CommunicationStyle.Verbosity = normalizeVerbosity(p.CommunicationStyle.Verbosity)
	if p.BriefConflicts == nil {
		p.BriefConflicts = []string{}
	}
	if p.ContentBiases.RespondsTo == nil {
		p.ContentBiases.RespondsTo = []string{}
	}
	if p.ContentBiases.Avoids == nil {
		p.ContentBiases.Avoids = []string{}
	}
	return p, nil
}

// GenerateAudioScript writes the second-person voice briefing for a persona.
func (c *Client) GenerateAudioScript(ctx context.Context, p Persona) (string, error) {
	raw, err := c.generate(ctx, BuildScriptPrompt(p))
	if err != nil {
		return "", err
	}
	script := strings.TrimSpace(raw)
	if script == "" {
		return "", fmt.Errorf("gemini returned an empty audio script")
	}
	return script, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no content")
	}
	return text, nil
}

// unmarshalResponse extracts the first {...} block from a model response and
// decodes it. Models occasionally wrap JSON in fences or prose despite
// instructions.
func unmarshalResponse(response string, v any) error {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), v); err != nil {
		return fmt.Errorf("unmarshaling response JSON: %w", err)
	}
	return nil
}

// normalizeVerbosity clamps the verbosity classification to the allowed
// set, defaulting to "medium".
func normalizeVerbosity(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}
