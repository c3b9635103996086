// Package star provides a deterministic, rule-based detector for the four
// STAR components (Situation, Task, Action, Result) in a free-text interview
// answer. It is a heuristic over fixed cue-phrase lists, not an NLP model,
// and that is intentional: it must produce feedback even when the language
// model is unavailable.
package star

import (
	"strings"
	"unicode"
)

// Signal reports whether one STAR component was found in the answer.
// Evidence is one of exactly two fixed strings per component: an affirming
// message when present, a corrective instruction when absent. It is never
// derived from the matched text itself.
type Signal struct {
	Present  bool   `json:"present"`
	Evidence string `json:"evidence"`
}

// Result holds the detection signal for each STAR component.
type Result struct {
	Situation Signal `json:"situation"`
	Task      Signal `json:"task"`
	Action    Signal `json:"action"`
	Result    Signal `json:"result"`
}

// Count returns how many components were detected, in [0,4].
func (r Result) Count() int {
	n := 0
	for _, s := range [4]Signal{r.Situation, r.Task, r.Action, r.Result} {
		if s.Present {
			n++
		}
	}
	return n
}

// Cue phrases per component. Matching is case-insensitive substring search;
// an answer needs only one cue from a list to mark the component present.
var (
	situationCues = []string{
		"at my previous",
		"in my previous",
		"in my last role",
		"at the time",
		"last year",
		"a few years ago",
		"while working",
		"while i was",
		"when our team",
		"when the company",
		"the context was",
		"we were facing",
		"our team was",
	}

	taskCues = []string{
		"my task",
		"my goal",
		"my role was",
		"i was responsible",
		"i was asked to",
		"i was tasked",
		"i needed to",
		"i had to",
		"the objective",
		"we needed to",
		"my job was",
	}

	actionCues = []string{
		"i led",
		"i built",
		"i created",
		"i designed",
		"i implemented",
		"i organized",
		"i developed",
		"i coordinated",
		"i analyzed",
		"i wrote",
		"i proposed",
		"i refactored",
		"i automated",
		"i migrated",
		"i negotiated",
		"i decided",
	}

	resultCues = []string{
		"as a result",
		"which led to",
		"resulting in",
		"the outcome",
		"in the end",
		"increased",
		"decreased",
		"reduced",
		"improved",
		"saved",
		"grew",
	}
)

// Fixed evidence strings. Presence gets the affirming message, absence the
// corrective one.
const (
	situationFound   = "You set the scene with concrete context."
	situationMissing = "Open with one sentence of context: where you were and what was going on."
	taskFound        = "Your responsibility in the story is clear."
	taskMissing      = "State what you specifically were responsible for or trying to achieve."
	actionFound      = "You described actions you personally took."
	actionMissing    = "Use first-person action verbs: what did YOU do, step by step?"
	resultFound      = "You quantified or named the outcome."
	resultMissing    = "Close with the outcome, ideally with a number or percentage."
)

// Detect runs the rule-based classifier over an answer. It is pure and
// deterministic: same input, same output, no model call.
func Detect(answer string) Result {
	text := strings.ToLower(answer)

	return Result{
		Situation: signal(matchesAny(text, situationCues), situationFound, situationMissing),
		Task:      signal(matchesAny(text, taskCues), taskFound, taskMissing),
		Action:    signal(matchesAny(text, actionCues), actionFound, actionMissing),
		Result:    signal(matchesAny(text, resultCues) || hasMetric(text), resultFound, resultMissing),
	}
}

func signal(present bool, found, missing string) Signal {
	if present {
		return Signal{Present: true, Evidence: found}
	}
	return Signal{Present: false, Evidence: missing}
}

func matchesAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

// hasMetric reports whether the answer contains a numeral or a percent sign,
// both strong markers of a stated outcome.
func hasMetric(text string) bool {
	if strings.ContainsRune(text, '%') {
		return true
	}
	return strings.ContainsFunc(text, unicode.IsDigit)
}
