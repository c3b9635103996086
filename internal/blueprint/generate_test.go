package blueprint

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/llm"
)

const modelOutput = `{
	"role_focus": ["Go", "distributed systems"],
	"likely_interview_type": "behavioral_technical",
	"risk_gaps": ["no Kafka experience"],
	"company_notes": ["expects production war stories"],
	"sample_questions": [
		{"type": "behavioral", "question": "Tell me about a production incident you owned."},
		{"type": "technical", "question": "Design a rate limiter for a public API."}
	]
}`

// fakeGen is a TextGenerator double recording the model ids it was asked for.
type fakeGen struct {
	calls   []string
	respond func(model, prompt string) (string, error)
}

func (f *fakeGen) Generate(_ context.Context, model, prompt string) (string, error) {
	f.calls = append(f.calls, model)
	return f.respond(model, prompt)
}

func notFoundErr(model string) error {
	return &llm.GenerateError{Kind: llm.KindNotFound, Model: model, Err: errors.New("model not found")}
}

func TestGenerate_Success(t *testing.T) {
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		assert.Contains(t, prompt, "acme resume")
		assert.Contains(t, prompt, "acme jd")
		assert.Contains(t, prompt, "Acme")
		return modelOutput, nil
	}}
	g := NewGenerator(gen, []string{"model-a", "model-b"})

	bp, err := g.Generate(context.Background(), "Acme", "acme resume", "acme jd")

	require.NoError(t, err)
	assert.Equal(t, []string{"model-a"}, gen.calls)
	assert.Equal(t, TypeBehavioralTechnical, bp.LikelyInterviewType)
	assert.Equal(t, []string{"Go", "distributed systems"}, bp.RoleFocus)
	require.Len(t, bp.SampleQuestions, 2)
	assert.Equal(t, ModeBehavioral, bp.SampleQuestions[0].Type)
}

func TestGenerate_NotFoundAdvancesToNextModel(t *testing.T) {
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		if model == "model-a" {
			return "", notFoundErr(model)
		}
		return modelOutput, nil
	}}
	g := NewGenerator(gen, []string{"model-a", "model-b"})

	bp, err := g.Generate(context.Background(), "Acme", "resume", "jd")

	require.NoError(t, err)
	require.NotNil(t, bp)
	assert.Equal(t, []string{"model-a", "model-b"}, gen.calls)
}

func TestGenerate_AllModelsNotFound(t *testing.T) {
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		return "", notFoundErr(model)
	}}
	g := NewGenerator(gen, []string{"model-a", "model-b"})

	_, err := g.Generate(context.Background(), "Acme", "resume", "jd")

	var exhausted *ModelsExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, []string{"model-a", "model-b"}, exhausted.Models)
}

func TestGenerate_FatalErrorDoesNotAdvance(t *testing.T) {
	fatal := &llm.GenerateError{Kind: llm.KindFatal, Model: "model-a", Err: errors.New("boom")}
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		return "", fatal
	}}
	g := NewGenerator(gen, []string{"model-a", "model-b"})

	_, err := g.Generate(context.Background(), "Acme", "resume", "jd")

	require.Error(t, err)
	assert.Equal(t, []string{"model-a"}, gen.calls)
	assert.ErrorIs(t, err, fatal)
}

func TestGenerate_MissingInputs(t *testing.T) {
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		t.Fatal("model must not be called for invalid input")
		return "", nil
	}}
	g := NewGenerator(gen, []string{"model-a"})

	_, err := g.Generate(context.Background(), "Acme", "  ", "")

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"resumeText", "jobDescription"}, invalid.Missing)
	assert.Empty(t, gen.calls)
}

func TestParse_ToleratesProseAndFencing(t *testing.T) {
	wrapped := "Sure! Here is the blueprint you asked for:\n```json\n" + modelOutput + "\n```\nLet me know if you need anything else."

	bp, err := Parse(wrapped)

	require.NoError(t, err)
	assert.Equal(t, TypeBehavioralTechnical, bp.LikelyInterviewType)
}

func TestParse_FailurePreservesRawText(t *testing.T) {
	raw := "I cannot produce JSON today."

	_, err := Parse(raw)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, raw, pe.Raw)
}

func TestParse_SchemaViolationIsParseError(t *testing.T) {
	raw := `{"role_focus": [], "likely_interview_type": "mixed", "risk_gaps": [], "company_notes": [], "sample_questions": []}`

	_, err := Parse(raw)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, raw, pe.Raw)
}

func TestParse_RoundTrip(t *testing.T) {
	original, err := Parse(modelOutput)
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	reparsed, err := Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

func TestInterviewType_AllowedModes(t *testing.T) {
	assert.Equal(t, []Mode{ModeBehavioral, ModeTechnical}, TypeBehavioralTechnical.AllowedModes())
	assert.Equal(t, []Mode{ModeBehavioral, ModeCase}, TypeBehavioralCase.AllowedModes())

	assert.True(t, TypeBehavioralCase.Allows(ModeCase))
	assert.False(t, TypeBehavioralCase.Allows(ModeTechnical))
	assert.False(t, TypeBehavioralTechnical.Allows(ModeCase))
}
