// Package interview drives the turn-based mock interview: issuing the
// opening question, accepting answers, requesting follow-ups from the model,
// and assembling deterministic coaching feedback for every answer.
package interview

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/star"
)

// State is the explicit session state. There is no terminal state: an
// interview is unbounded and simply stops receiving turns.
type State int

// Session states.
const (
	StateNotStarted State = iota
	StateAwaitingAnswer
)

func (s State) String() string {
	if s == StateAwaitingAnswer {
		return "awaiting_answer"
	}
	return "not_started"
}

// FallbackFollowup is returned as the interviewer's question when the model
// path fails during a follow-up. A model outage never blocks scoring
// feedback.
const FallbackFollowup = "Can you walk me through the outcome in more detail - what changed, and how did you measure it?"

// InvalidStateError rejects an operation issued from the wrong state.
type InvalidStateError struct {
	State  State
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %s: %s", e.State, e.Reason)
}

// InvalidInputError rejects a malformed operation argument.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// Exchange is the result of one submitted answer: the next interviewer
// question plus both feedback objects. Coach and Scorecard carry overlapping
// STAR signals in different shapes; both are always populated.
type Exchange struct {
	Interviewer string            `json:"interviewer"`
	Coach       scoring.Coach     `json:"coach"`
	Scorecard   scoring.Scorecard `json:"scorecard"`
}

// Session owns one interview: the immutable blueprint, the selected mode,
// and the append-only transcript. A session is single in-flight by contract;
// the mutex enforces that a second concurrent call waits rather than
// corrupting the transcript.
type Session struct {
	mu     sync.Mutex
	gen    llm.TextGenerator
	models []string

	state      State
	company    string
	bp         *blueprint.Blueprint
	mode       blueprint.Mode
	transcript []Turn
}

// NewSession creates an unstarted session over a text-generation gateway and
// an ordered model fallback list.
func NewSession(gen llm.TextGenerator, models []string) *Session {
	return &Session{gen: gen, models: models}
}

// Restore rebuilds an in-flight session from an externally-held transcript,
// for callers that keep interview state on their side of the wire. A
// non-empty transcript restores to StateAwaitingAnswer.
func Restore(gen llm.TextGenerator, models []string, company string, bp *blueprint.Blueprint, mode blueprint.Mode, transcript []Turn) *Session {
	s := &Session{
		gen:        gen,
		models:     models,
		company:    company,
		bp:         bp,
		mode:       mode,
		transcript: append([]Turn(nil), transcript...),
	}
	if len(s.transcript) > 0 {
		s.state = StateAwaitingAnswer
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the transcript in chronological order.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.transcript...)
}

// Start begins (or restarts) the interview: it validates the mode against
// the blueprint's interview type, clears the transcript, asks the model for
// one opening question, and appends it as the first interviewer turn.
func (s *Session) Start(ctx context.Context, company string, bp *blueprint.Blueprint, mode blueprint.Mode) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bp == nil {
		return "", &InvalidInputError{Reason: "blueprint is required"}
	}
	if !mode.Valid() {
		return "", &InvalidInputError{Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
	if !bp.LikelyInterviewType.Allows(mode) {
		return "", &InvalidInputError{Reason: fmt.Sprintf(
			"mode %q is not selectable for interview type %q", mode, bp.LikelyInterviewType)}
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "opening"), map[string]string{
		"Company":   company,
		"Mode":      string(mode),
		"RoleFocus": strings.Join(bp.RoleFocus, ", "),
	})

	question, err := s.ask(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to open interview: %w", err)
	}

	s.company = company
	s.bp = bp
	s.mode = mode
	s.transcript = []Turn{{Role: RoleInterviewer, Content: question}}
	s.state = StateAwaitingAnswer
	return question, nil
}

// SubmitAnswer records the candidate's answer, computes the deterministic
// scorecard and coach from the answer text alone, and asks the model for one
// follow-up question. The candidate turn is appended before the model call so
// the follow-up prompt sees the full chronological transcript. A follow-up
// model failure degrades to FallbackFollowup; feedback is still returned.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (*Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingAnswer || len(s.transcript) == 0 || s.bp == nil || !s.mode.Valid() {
		return nil, &InvalidStateError{State: s.state, Reason: "no interview in progress, call start first"}
	}
	if strings.TrimSpace(answer) == "" {
		return nil, &InvalidInputError{Reason: "answer is empty"}
	}

	s.transcript = append(s.transcript, Turn{Role: RoleCandidate, Content: answer})

	// Scoring is synchronous and model-free: it must arrive even when the
	// follow-up call below fails.
	detected := star.Detect(answer)
	exchange := &Exchange{
		Coach:     scoring.BuildCoach(detected, s.mode),
		Scorecard: scoring.BuildScorecard(detected, s.mode),
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "followup"), map[string]string{
		"Company":    s.company,
		"Mode":       string(s.mode),
		"RoleFocus":  strings.Join(s.bp.RoleFocus, ", "),
		"Transcript": RenderTranscript(s.transcript),
		"Answer":     answer,
	})

	question, err := s.ask(ctx, prompt)
	if err != nil {
		log.Printf("[interview] follow-up generation failed, using fallback question: %v", err)
		question = FallbackFollowup
	}

	s.transcript = append(s.transcript, Turn{Role: RoleInterviewer, Content: question})
	exchange.Interviewer = question
	return exchange, nil
}

// ask walks the model fallback list for a single-question prompt. Unknown
// identifiers advance without backoff; other failures surface.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, model := range s.models {
		text, err := s.gen.Generate(ctx, model, prompt)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		lastErr = err
		if llm.IsNotFound(err) {
			continue
		}
		return "", err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return "", lastErr
}
