package blueprint

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
)

// Generator produces interview blueprints by walking the ordered model
// fallback list until one model answers.
type Generator struct {
	gen    llm.TextGenerator
	models []string
}

// NewGenerator creates a blueprint generator over a text-generation gateway
// and an ordered model fallback list.
func NewGenerator(gen llm.TextGenerator, models []string) *Generator {
	return &Generator{gen: gen, models: models}
}

// Generate renders the blueprint prompt and asks the model for the fixed JSON
// shape. An unknown model identifier advances to the next one in the list
// without backoff; any other failure surfaces immediately. A response that
// cannot be decoded returns a *ParseError carrying the raw text.
func (g *Generator) Generate(ctx context.Context, company, resumeText, jobDescription string) (*Blueprint, error) {
	var missing []string
	for _, in := range []struct{ name, value string }{
		{"company", company},
		{"resumeText", resumeText},
		{"jobDescription", jobDescription},
	} {
		if strings.TrimSpace(in.value) == "" {
			missing = append(missing, in.name)
		}
	}
	if len(missing) > 0 {
		return nil, &InvalidInputError{Missing: missing}
	}

	prompt := prompts.Format(prompts.MustGet("blueprint.json", "generate"), map[string]string{
		"Company":        company,
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})

	text, err := g.generateWithFallback(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// generateWithFallback walks the model list in order. Retry/backoff for a
// single model lives in the gateway; this loop only decides when to advance.
func (g *Generator) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	for _, model := range g.models {
		text, err := g.gen.Generate(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		if llm.IsNotFound(err) {
			log.Printf("[blueprint] model %s unknown, advancing to next fallback", model)
			continue
		}
		return "", fmt.Errorf("blueprint generation failed: %w", err)
	}
	return "", &ModelsExhaustedError{Models: g.models}
}

// Parse decodes a model response into a Blueprint. It tolerates surrounding
// prose and markdown fencing by extracting the first-{ to last-} substring,
// then validates the document against the blueprint JSON schema.
func Parse(text string) (*Blueprint, error) {
	doc, err := extractJSONObject(llm.CleanJSONBlock(text))
	if err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	if err := schemas.Validate(schemas.BlueprintSchema, doc); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	var bp Blueprint
	if err := json.Unmarshal([]byte(doc), &bp); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if err := bp.Validate(); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	return &bp, nil
}

// extractJSONObject returns the substring between the first '{' and the last
// '}' of text.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in model output")
	}
	return text[start : end+1], nil
}
