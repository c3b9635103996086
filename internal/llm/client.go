package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator is the narrow contract the rest of the application depends
// on: one fully-rendered prompt in, one text completion out. The prompt must
// already contain all context; no substitution happens inside the gateway.
type TextGenerator interface {
	Generate(ctx context.Context, modelID, prompt string) (string, error)
}

// Gateway implements TextGenerator against the Gemini API with bounded retry
// on transient failures. Model fallback is the caller's concern: a
// KindNotFound error tells the caller to advance to the next identifier.
type Gateway struct {
	client *genai.Client
	cfg    *Config
}

// NewGateway creates a gateway from an explicit config. A missing credential
// is rejected here, at construction time, as a ConfigError.
func NewGateway(ctx context.Context, cfg *Config) (*Gateway, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gateway{client: client, cfg: cfg}, nil
}

// Models returns the ordered fallback list of model identifiers.
func (g *Gateway) Models() []string {
	return append([]string(nil), g.cfg.Models...)
}

// Generate sends the prompt to the given model and returns the completion
// text. Transient failures are retried up to the configured bound, waiting
// the model-suggested delay when the error carried one and an exponentially
// increasing default otherwise. NotFound and fatal failures return
// immediately without retry. Retries block the caller; there is no
// cancellation of an issued call beyond the per-attempt deadline.
func (g *Gateway) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	model := g.client.GenerativeModel(modelID)
	model.SetTemperature(0.4)

	var lastErr *GenerateError
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
		resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
		cancel()

		if err == nil {
			text, exErr := extractText(resp)
			if exErr != nil {
				return "", &GenerateError{Kind: KindFatal, Model: modelID, Err: exErr}
			}
			return text, nil
		}

		lastErr = classify(modelID, err)
		if lastErr.Kind != KindTransient {
			return "", lastErr
		}
		if attempt == g.cfg.MaxAttempts-1 {
			break
		}

		wait := backoffDelay(attempt, lastErr.RetryAfter, g.cfg.BaseDelay, g.cfg.MaxDelay)
		log.Printf("[llm] model %s overloaded, retrying in %s (attempt %d/%d)",
			modelID, wait, attempt+2, g.cfg.MaxAttempts)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", &GenerateError{Kind: KindFatal, Model: modelID, Err: ctx.Err()}
		}
	}

	return "", lastErr
}

// Close releases the underlying client.
func (g *Gateway) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractText is the single seam that knows the shape of a Gemini response.
// All variance in response structure is isolated here.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
