package interview

import "strings"

// Role attributes a turn to one side of the interview.
type Role string

// Roles.
const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// Turn is one utterance in the transcript. The transcript is append-only and
// its order is the interview's chronological order; follow-up prompts are
// built from it, so ordering is semantically significant.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Wire prefixes for the serialized transcript form.
const (
	interviewerPrefix = "INTERVIEWER: "
	candidatePrefix   = "CANDIDATE: "
)

// RenderTranscript serializes turns as newline-joined "ROLE: content" lines,
// the form embedded in follow-up prompts and carried over the HTTP API.
func RenderTranscript(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		prefix := candidatePrefix
		if turn.Role == RoleInterviewer {
			prefix = interviewerPrefix
		}
		lines = append(lines, prefix+turn.Content)
	}
	return strings.Join(lines, "\n")
}

// ParseTranscript restores turns from the rendered form. A line starting
// with a role prefix opens a new turn; any other line continues the previous
// turn's content (answers may span multiple lines).
func ParseTranscript(text string) []Turn {
	var turns []Turn
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, interviewerPrefix):
			turns = append(turns, Turn{Role: RoleInterviewer, Content: strings.TrimPrefix(line, interviewerPrefix)})
		case strings.HasPrefix(line, candidatePrefix):
			turns = append(turns, Turn{Role: RoleCandidate, Content: strings.TrimPrefix(line, candidatePrefix)})
		case len(turns) > 0:
			turns[len(turns)-1].Content += "\n" + line
		case strings.TrimSpace(line) != "":
			// Leading text with no role prefix is attributed to the
			// interviewer; the opening question always comes first.
			turns = append(turns, Turn{Role: RoleInterviewer, Content: line})
		}
	}
	return turns
}
