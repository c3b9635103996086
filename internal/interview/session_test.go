package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/llm"
)

// fakeGen is a TextGenerator double recording calls.
type fakeGen struct {
	calls   []string
	prompts []string
	respond func(model, prompt string) (string, error)
}

func (f *fakeGen) Generate(_ context.Context, model, prompt string) (string, error) {
	f.calls = append(f.calls, model)
	f.prompts = append(f.prompts, prompt)
	return f.respond(model, prompt)
}

func staticGen(reply string) *fakeGen {
	return &fakeGen{respond: func(model, prompt string) (string, error) {
		return reply, nil
	}}
}

func techBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		RoleFocus:           []string{"Go", "APIs"},
		LikelyInterviewType: blueprint.TypeBehavioralTechnical,
	}
}

func caseBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		RoleFocus:           []string{"market sizing"},
		LikelyInterviewType: blueprint.TypeBehavioralCase,
	}
}

func startedSession(t *testing.T, gen *fakeGen) *Session {
	t.Helper()
	s := NewSession(gen, []string{"model-a"})
	_, err := s.Start(context.Background(), "Acme", techBlueprint(), blueprint.ModeBehavioral)
	require.NoError(t, err)
	return s
}

func TestStart_OpensWithOneInterviewerTurn(t *testing.T) {
	gen := staticGen("Tell me about a recent project you led.")
	s := NewSession(gen, []string{"model-a"})

	question, err := s.Start(context.Background(), "Acme", techBlueprint(), blueprint.ModeTechnical)

	require.NoError(t, err)
	assert.Equal(t, "Tell me about a recent project you led.", question)
	assert.Equal(t, StateAwaitingAnswer, s.State())

	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, RoleInterviewer, transcript[0].Role)
	assert.Contains(t, gen.prompts[0], "Go, APIs")
}

func TestStart_ModeMustMatchInterviewType(t *testing.T) {
	gen := staticGen("q")
	s := NewSession(gen, []string{"model-a"})

	_, err := s.Start(context.Background(), "Acme", caseBlueprint(), blueprint.ModeTechnical)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, gen.calls)
	assert.Equal(t, StateNotStarted, s.State())
}

func TestStart_UnknownMode(t *testing.T) {
	s := NewSession(staticGen("q"), []string{"model-a"})

	_, err := s.Start(context.Background(), "Acme", techBlueprint(), blueprint.Mode("mixed"))

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestStart_FallsBackOnUnknownModel(t *testing.T) {
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		if model == "model-a" {
			return "", &llm.GenerateError{Kind: llm.KindNotFound, Model: model, Err: errors.New("no such model")}
		}
		return "Opening question?", nil
	}}
	s := NewSession(gen, []string{"model-a", "model-b"})

	question, err := s.Start(context.Background(), "Acme", techBlueprint(), blueprint.ModeBehavioral)

	require.NoError(t, err)
	assert.Equal(t, "Opening question?", question)
	assert.Equal(t, []string{"model-a", "model-b"}, gen.calls)
}

func TestStart_RestartClearsTranscript(t *testing.T) {
	gen := staticGen("Next question?")
	s := startedSession(t, gen)
	_, err := s.SubmitAnswer(context.Background(), "I led a migration, reduced costs by 30%.")
	require.NoError(t, err)
	require.Len(t, s.Transcript(), 3)

	_, err = s.Start(context.Background(), "Acme", techBlueprint(), blueprint.ModeTechnical)

	require.NoError(t, err)
	assert.Len(t, s.Transcript(), 1)
}

func TestSubmitAnswer_BeforeStartIsInvalidState(t *testing.T) {
	gen := staticGen("q")
	s := NewSession(gen, []string{"model-a"})

	_, err := s.SubmitAnswer(context.Background(), "my answer")

	var invalid *InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, s.Transcript())
	assert.Empty(t, gen.calls)
}

func TestSubmitAnswer_EmptyAnswerRejected(t *testing.T) {
	s := startedSession(t, staticGen("q"))

	_, err := s.SubmitAnswer(context.Background(), "   \n\t")

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, s.Transcript(), 1)
}

func TestSubmitAnswer_AppendsTurnsInOrder(t *testing.T) {
	gen := staticGen("And what was your personal contribution?")
	s := startedSession(t, gen)

	exchange, err := s.SubmitAnswer(context.Background(), "I led the redesign project; as a result we increased signups by 20%.")

	require.NoError(t, err)
	assert.Equal(t, "And what was your personal contribution?", exchange.Interviewer)

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, RoleInterviewer, transcript[0].Role)
	assert.Equal(t, RoleCandidate, transcript[1].Role)
	assert.Equal(t, RoleInterviewer, transcript[2].Role)

	// The follow-up prompt must contain the serialized transcript including
	// the just-submitted candidate turn.
	followupPrompt := gen.prompts[len(gen.prompts)-1]
	assert.Contains(t, followupPrompt, "CANDIDATE: I led the redesign project")
	assert.Contains(t, followupPrompt, "INTERVIEWER: ")
}

func TestSubmitAnswer_ScoresDeterministically(t *testing.T) {
	s := startedSession(t, staticGen("next?"))

	exchange, err := s.SubmitAnswer(context.Background(), "I led the redesign project; as a result we increased signups by 20%.")

	require.NoError(t, err)
	assert.True(t, exchange.Scorecard.Star.Action.Present)
	assert.True(t, exchange.Scorecard.Star.Result.Present)
	assert.False(t, exchange.Scorecard.Star.Situation.Present)
	assert.Equal(t, 66, exchange.Scorecard.Scores.Overall)
	assert.Equal(t, "S:- T:- A:+ R:+", exchange.Coach.Star)
	assert.Equal(t, blueprint.ModeBehavioral, exchange.Coach.Mode)
}

func TestSubmitAnswer_ModelOutageStillReturnsFeedback(t *testing.T) {
	calls := 0
	gen := &fakeGen{respond: func(model, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "Opening question?", nil
		}
		return "", &llm.GenerateError{Kind: llm.KindTransient, Model: model, Err: errors.New("overloaded")}
	}}
	s := NewSession(gen, []string{"model-a"})
	_, err := s.Start(context.Background(), "Acme", techBlueprint(), blueprint.ModeBehavioral)
	require.NoError(t, err)

	exchange, err := s.SubmitAnswer(context.Background(), "I built the pipeline, throughput improved 2x.")

	require.NoError(t, err)
	assert.Equal(t, FallbackFollowup, exchange.Interviewer)
	assert.NotEmpty(t, exchange.Scorecard.Strengths)
	assert.Equal(t, StateAwaitingAnswer, s.State())

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, FallbackFollowup, transcript[2].Content)
}

func TestRestore_ResumesAwaitingAnswer(t *testing.T) {
	gen := staticGen("Why that approach?")
	turns := []Turn{
		{Role: RoleInterviewer, Content: "Tell me about a conflict."},
		{Role: RoleCandidate, Content: "I had to mediate between two leads."},
		{Role: RoleInterviewer, Content: "What did you do first?"},
	}

	s := Restore(gen, []string{"model-a"}, "Acme", techBlueprint(), blueprint.ModeBehavioral, turns)

	require.Equal(t, StateAwaitingAnswer, s.State())
	exchange, err := s.SubmitAnswer(context.Background(), "I organized a joint design review.")
	require.NoError(t, err)
	assert.Equal(t, "Why that approach?", exchange.Interviewer)
	assert.Len(t, s.Transcript(), 5)
}

func TestRestore_EmptyTranscriptIsNotStarted(t *testing.T) {
	s := Restore(staticGen("q"), []string{"model-a"}, "Acme", techBlueprint(), blueprint.ModeBehavioral, nil)

	assert.Equal(t, StateNotStarted, s.State())

	_, err := s.SubmitAnswer(context.Background(), "answer")
	var invalid *InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

func TestRenderTranscript(t *testing.T) {
	turns := []Turn{
		{Role: RoleInterviewer, Content: "Tell me about a project."},
		{Role: RoleCandidate, Content: "I shipped a search service."},
	}

	rendered := RenderTranscript(turns)

	assert.Equal(t, "INTERVIEWER: Tell me about a project.\nCANDIDATE: I shipped a search service.", rendered)
}

func TestParseTranscript_RoundTrip(t *testing.T) {
	turns := []Turn{
		{Role: RoleInterviewer, Content: "First question?"},
		{Role: RoleCandidate, Content: "Line one.\nLine two."},
		{Role: RoleInterviewer, Content: "Second question?"},
	}

	parsed := ParseTranscript(RenderTranscript(turns))

	assert.Equal(t, turns, parsed)
}

func TestParseTranscript_UnprefixedLeadingLine(t *testing.T) {
	parsed := ParseTranscript("Tell me about yourself.")

	require.Len(t, parsed, 1)
	assert.Equal(t, RoleInterviewer, parsed[0].Role)
}

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore()
	s := NewSession(staticGen("q"), []string{"model-a"})

	id := store.Put(s)
	require.NotEmpty(t, id)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, store.Len())

	store.Delete(id)
	_, ok = store.Get(id)
	assert.False(t, ok)

	if !strings.Contains(id, "-") {
		t.Fatalf("expected uuid-shaped id, got %q", id)
	}
}
