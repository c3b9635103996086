package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/interview"
	"github.com/jonathan/interview-coach/internal/scoring"
)

// InterviewRequest is the request body for POST /api/interview. Step is
// "start" or "followup". A follow-up may reference a server-held session by
// id, or carry the serialized transcript for clients that keep state
// themselves.
type InterviewRequest struct {
	Step            string               `json:"step" validate:"required,oneof=start followup"`
	Company         string               `json:"company"`
	Blueprint       *blueprint.Blueprint `json:"blueprint"`
	Mode            blueprint.Mode       `json:"mode"`
	SessionID       string               `json:"sessionId,omitempty"`
	Transcript      string               `json:"transcript,omitempty"`
	CandidateAnswer string               `json:"candidateAnswer,omitempty"`
}

// StartResponse is the body for a successful "start" step.
type StartResponse struct {
	Interviewer string `json:"interviewer"`
	SessionID   string `json:"sessionId"`
}

// FollowupResponse is the body for a successful "followup" step.
type FollowupResponse struct {
	Interviewer string            `json:"interviewer"`
	Coach       scoring.Coach     `json:"coach"`
	Scorecard   scoring.Scorecard `json:"scorecard"`
	SessionID   string            `json:"sessionId,omitempty"`
}

// handleInterview drives the turn-based interview protocol.
func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	var req InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "step must be \"start\" or \"followup\"")
		return
	}

	switch req.Step {
	case "start":
		s.handleInterviewStart(w, r, req)
	default:
		s.handleInterviewFollowup(w, r, req)
	}
}

func (s *Server) handleInterviewStart(w http.ResponseWriter, r *http.Request, req InterviewRequest) {
	session := interview.NewSession(s.gen, s.models)

	question, err := session.Start(r.Context(), req.Company, req.Blueprint, req.Mode)
	if err != nil {
		log.Printf("[interview] start failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, StartResponse{
		Interviewer: question,
		SessionID:   s.sessions.Put(session),
	})
}

func (s *Server) handleInterviewFollowup(w http.ResponseWriter, r *http.Request, req InterviewRequest) {
	session, sessionID := s.resolveSession(req)

	exchange, err := session.SubmitAnswer(r.Context(), req.CandidateAnswer)
	if err != nil {
		log.Printf("[interview] follow-up failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, FollowupResponse{
		Interviewer: exchange.Interviewer,
		Coach:       exchange.Coach,
		Scorecard:   exchange.Scorecard,
		SessionID:   sessionID,
	})
}

// resolveSession finds the session a follow-up addresses: the server-held
// one when the id is known, otherwise a session restored from the transcript
// carried in the request. An empty transcript restores to an unstarted
// session, which SubmitAnswer then rejects as an invalid state.
func (s *Server) resolveSession(req InterviewRequest) (*interview.Session, string) {
	if req.SessionID != "" {
		if session, ok := s.sessions.Get(req.SessionID); ok {
			return session, req.SessionID
		}
	}

	turns := interview.ParseTranscript(req.Transcript)
	return interview.Restore(s.gen, s.models, req.Company, req.Blueprint, req.Mode, turns), ""
}
