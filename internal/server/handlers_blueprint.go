package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/interview-coach/internal/blueprint"
)

// BlueprintRequest is the request body for POST /api/blueprint.
type BlueprintRequest struct {
	Company        string `json:"company" validate:"required"`
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

// BlueprintResponse is the success body for POST /api/blueprint.
type BlueprintResponse struct {
	Blueprint *blueprint.Blueprint `json:"blueprint"`
}

// BlueprintErrorResponse is the failure body. On a parse failure the raw
// model output is preserved so the caller can still inspect it.
type BlueprintErrorResponse struct {
	Error      string `json:"error"`
	Raw        string `json:"raw,omitempty"`
	ParseError string `json:"parseError,omitempty"`
}

// handleBlueprint generates the interview blueprint for a resume and job
// description. Parse failures are returned with status 200 so the client can
// display the raw output; configuration and model failures are 5xx.
func (s *Server) handleBlueprint(w http.ResponseWriter, r *http.Request) {
	var req BlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing inputs")
		return
	}

	bp, err := s.blueprints.Generate(r.Context(), req.Company, req.ResumeText, req.JobDescription)
	if err != nil {
		var parseErr *blueprint.ParseError
		if errors.As(err, &parseErr) {
			s.jsonResponse(w, http.StatusOK, BlueprintErrorResponse{
				Error:      "Model output was not valid blueprint JSON",
				Raw:        parseErr.Raw,
				ParseError: parseErr.Err.Error(),
			})
			return
		}

		var invalid *blueprint.InvalidInputError
		if errors.As(err, &invalid) {
			s.errorResponse(w, http.StatusBadRequest, "Missing inputs")
			return
		}

		log.Printf("[blueprint] generation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, BlueprintResponse{Blueprint: bp})
}
