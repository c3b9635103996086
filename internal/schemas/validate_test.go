package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBlueprint = `{
	"role_focus": ["distributed systems", "Go"],
	"likely_interview_type": "behavioral_technical",
	"risk_gaps": ["no production Kubernetes experience"],
	"company_notes": ["pairs on real code in onsites"],
	"sample_questions": [
		{"type": "behavioral", "question": "Tell me about a time you disagreed with a teammate."},
		{"type": "technical", "question": "How would you shard a counter service?"}
	]
}`

func TestValidate_ValidBlueprint(t *testing.T) {
	err := Validate(BlueprintSchema, validBlueprint)

	assert.NoError(t, err)
}

func TestValidate_MixedInterviewTypeRejected(t *testing.T) {
	doc := `{
		"role_focus": [],
		"likely_interview_type": "mixed",
		"risk_gaps": [],
		"company_notes": [],
		"sample_questions": []
	}`

	err := Validate(BlueprintSchema, doc)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Errors[0].Field, "likely_interview_type")
}

func TestValidate_MissingRequiredField(t *testing.T) {
	doc := `{"role_focus": []}`

	err := Validate(BlueprintSchema, doc)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidate_BadQuestionCategory(t *testing.T) {
	doc := `{
		"role_focus": [],
		"likely_interview_type": "behavioral_case",
		"risk_gaps": [],
		"company_notes": [],
		"sample_questions": [{"type": "trivia", "question": "?"}]
	}`

	err := Validate(BlueprintSchema, doc)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", "{}")

	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(BlueprintSchema, "{not json")

	assert.Error(t, err)
}
