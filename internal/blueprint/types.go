// Package blueprint builds the per-session interview blueprint: the model-
// generated profile of what an interview for a given role and company is
// expected to probe.
package blueprint

import "fmt"

// InterviewType classifies which interview formats a role calls for. It is a
// closed enumeration; "mixed" is deliberately not a member and the generation
// prompt forbids the model from producing it.
type InterviewType string

// Interview types.
const (
	TypeBehavioralTechnical InterviewType = "behavioral_technical"
	TypeBehavioralCase      InterviewType = "behavioral_case"
)

// Valid reports whether t is a member of the closed enumeration.
func (t InterviewType) Valid() bool {
	return t == TypeBehavioralTechnical || t == TypeBehavioralCase
}

// Mode is the interview category selected for one session.
type Mode string

// Modes.
const (
	ModeBehavioral Mode = "behavioral"
	ModeTechnical  Mode = "technical"
	ModeCase       Mode = "case"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeBehavioral || m == ModeTechnical || m == ModeCase
}

// AllowedModes returns the modes selectable for a session under this
// interview type. The likely interview type constrains the legal mode set.
func (t InterviewType) AllowedModes() []Mode {
	switch t {
	case TypeBehavioralTechnical:
		return []Mode{ModeBehavioral, ModeTechnical}
	case TypeBehavioralCase:
		return []Mode{ModeBehavioral, ModeCase}
	default:
		return nil
	}
}

// Allows reports whether mode is selectable under this interview type.
func (t InterviewType) Allows(mode Mode) bool {
	for _, m := range t.AllowedModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// SampleQuestion is one suggested question with its category.
type SampleQuestion struct {
	Type     Mode   `json:"type"`
	Question string `json:"question"`
}

// Blueprint is the structured interview profile generated once per session
// and immutable thereafter.
type Blueprint struct {
	RoleFocus           []string         `json:"role_focus"`
	LikelyInterviewType InterviewType    `json:"likely_interview_type"`
	RiskGaps            []string         `json:"risk_gaps"`
	CompanyNotes        []string         `json:"company_notes"`
	SampleQuestions     []SampleQuestion `json:"sample_questions"`
}

// Validate checks the enumerated fields of a decoded blueprint.
func (b *Blueprint) Validate() error {
	if !b.LikelyInterviewType.Valid() {
		return fmt.Errorf("invalid likely_interview_type: %q", b.LikelyInterviewType)
	}
	for _, q := range b.SampleQuestions {
		if !q.Type.Valid() {
			return fmt.Errorf("invalid sample question type: %q", q.Type)
		}
	}
	return nil
}
