package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned by Generate when no Gemini key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not set")

// Gemini generates replies through the Gemini API. The underlying client is
// created on first use, so a missing key only fails the calls that need it.
type Gemini struct {
	apiKey string
	model  string
	log    zerolog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// GeminiOption configures the Gemini generator.
type GeminiOption func(*Gemini)

// WithGeminiModel sets the model name.
func WithGeminiModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithGeminiLogger sets the logger.
func WithGeminiLogger(log zerolog.Logger) GeminiOption {
	return func(g *Gemini) { g.log = log }
}

// NewGemini creates a generator. apiKey may be empty.
func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey: strings.TrimSpace(apiKey),
		model:  DefaultModel,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = c
	return c, nil
}

// Generate sends prompt with the given system instruction and returns the
// concatenated text parts of the first candidate.
func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	g.log.Debug().Str("model", g.model).Int("prompt_len", len(prompt)).Msg("generating reply")

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}
	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return extractText(result)
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("no content generated")
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no content generated")
	}
	return text, nil
}
