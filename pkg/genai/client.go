package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var (
	errAPIKeyRequired = errors.New("gemini api key is required")
	// ErrEmptyResponse marks a response that carried no text candidates.
	ErrEmptyResponse = errors.New("gemini returned an empty response")
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client sends single-prompt text generation requests to Gemini.
type Client struct {
	models contentGenerator
	model  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			c.model = trimmed
		}
	}
}

func withGenerator(g contentGenerator) Option {
	return func(c *Client) {
		c.models = g
	}
}

// NewClient builds a Gemini API client for the provided key.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{model: DefaultModel}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.models != nil {
		return client, nil
	}

	raw, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	client.models = raw.Models
	return client, nil
}

// Model reports the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt as a single user turn and returns the response text untouched.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client not initialized")
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
