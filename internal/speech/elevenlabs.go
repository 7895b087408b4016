package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io/v1"
	defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	defaultModelID = "eleven_turbo_v2_5"
	defaultTimeout = 60 * time.Second

	// Rough speaking rate used to estimate clip duration from script length.
	wordsPerSecond = 2.5
)

// Audio is a synthesized speech artifact. URL is set only when the upstream
// service hosts the clip; otherwise callers fall back to the raw bytes.
type Audio struct {
	Data     []byte
	URL      string
	Duration float64
}

// Client communicates with the ElevenLabs text-to-speech API.
type Client struct {
	apiKey     string
	baseURL    string
	voiceID    string
	modelID    string
	httpClient *http.Client
}

// NewClient creates an ElevenLabs client. Empty voiceID/modelID select the
// defaults.
func NewClient(apiKey, voiceID, modelID string) *Client {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	if modelID == "" {
		modelID = defaultModelID
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		voiceID: voiceID,
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(apiKey, voiceID, modelID, baseURL string) *Client {
	c := NewClient(apiKey, voiceID, modelID)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts the script to speech and returns the MP3 bytes.
// Failure wording ("rate limit", "api key", "unavailable") is stable; the
// API layer classifies errors by substring.
func (c *Client) Synthesize(ctx context.Context, script string) (Audio, error) {
	if strings.TrimSpace(script) == "" {
		return Audio{}, fmt.Errorf("elevenlabs: script is empty")
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:    script,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return Audio{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Audio{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Audio{}, fmt.Errorf("elevenlabs network error: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return Audio{}, fmt.Errorf("elevenlabs rate limit exceeded (HTTP %d)", resp.StatusCode)
	case http.StatusUnauthorized, http.StatusForbidden:
		return Audio{}, fmt.Errorf("elevenlabs authentication failed: invalid api key (HTTP %d)", resp.StatusCode)
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Audio{}, fmt.Errorf("elevenlabs unavailable: unexpected status %d: %s", resp.StatusCode, string(detail))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Audio{}, fmt.Errorf("reading audio stream: %w", err)
	}
	if len(data) == 0 {
		return Audio{}, fmt.Errorf("elevenlabs returned no audio data")
	}

	return Audio{
		Data:     data,
		Duration: estimateDuration(script),
	}, nil
}

// estimateDuration approximates spoken length in seconds from word count.
// The API does not report duration for streamed synthesis.
func estimateDuration(script string) float64 {
	words := len(strings.Fields(script))
	return float64(words) / wordsPerSecond
}
