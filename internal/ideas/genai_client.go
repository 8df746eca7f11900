package ideas

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GenAIConfig holds configuration for the Gemini client.
type GenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds a whole request. Zero leaves the request bounded only
	// by the caller's context.
	Timeout time.Duration
}

// DefaultGenAIConfig returns sensible defaults.
func DefaultGenAIConfig(apiKey string) GenAIConfig {
	return GenAIConfig{
		APIKey: apiKey,
		Model:  "gemini-2.5-flash",
	}
}

// GenAIClient implements TextService for the Gemini API.
type GenAIClient struct {
	client *genai.Client
	model  string
}

// NewGenAIClient creates a Gemini client from an explicit configuration.
func NewGenAIClient(ctx context.Context, config GenAIConfig) (*GenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = DefaultGenAIConfig("").Model
	}

	cc := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: config.Timeout},
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client: client,
		model:  model,
	}, nil
}

// Model returns the model name requests are sent to.
func (c *GenAIClient) Model() string {
	return c.model
}

// GenerateText sends inputText and prompt as parts of a single user turn and
// returns the text of the first candidate.
func (c *GenAIClient) GenerateText(ctx context.Context, inputText, prompt string) (string, error) {
	// The API rejects empty text parts.
	parts := make([]*genai.Part, 0, 2)
	if inputText != "" {
		parts = append(parts, genai.NewPartFromText(inputText))
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", &ServiceError{Model: c.model, Err: err}
	}

	if len(result.Candidates) == 0 {
		return "", &ServiceError{Model: c.model, Err: fmt.Errorf("no candidates returned")}
	}

	return result.Text(), nil
}
