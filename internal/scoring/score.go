// Package scoring converts STAR detection signals into a numeric scorecard
// and coaching feedback. It never calls the model: this is the system's only
// source of guaranteed feedback when the model is degraded or unavailable.
package scoring

import (
	"strings"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/star"
)

// Scores holds the category scores for one answer. Each category is bounded
// to [0,25]; Overall is the clamped sum, bounded to [0,100].
type Scores struct {
	Overall   int `json:"overall"`
	Clarity   int `json:"clarity"`
	Structure int `json:"structure"`
	Impact    int `json:"impact"`
	RoleFit   int `json:"roleFit"`
}

// Rewrite is the structural scaffold offered as an improved answer. It is a
// fixed template selected by mode, not a rewrite of the actual answer text:
// the deterministic fallback must not depend on model availability.
type Rewrite struct {
	ImprovedAnswer string   `json:"improvedAnswer"`
	BulletsToAdd   []string `json:"bulletsToAdd"`
}

// Scorecard is the full evaluation of one candidate answer. A fresh one is
// computed after every answer and replaces the previous one.
type Scorecard struct {
	Star      star.Result `json:"star"`
	Scores    Scores      `json:"scores"`
	Strengths []string    `json:"strengths"`
	Gaps      []string    `json:"gaps"`
	Rewrite   Rewrite     `json:"rewrite"`
}

// Coach is the compact feedback object that coexists with the Scorecard.
// It carries the same STAR signals in a condensed shape for consumers that
// only render a one-line summary.
type Coach struct {
	Mode    blueprint.Mode `json:"mode"`
	Star    string         `json:"star"`
	Missing []string       `json:"missing"`
	Why     string         `json:"why"`
	Intent  string         `json:"intent"`
}

// Fixed strength/gap strings, contributed in S,T,A,R order.
var (
	strengthTexts = [4]string{
		"Sets the scene before diving into detail",
		"Makes their own responsibility explicit",
		"Describes concrete first-person actions",
		"Backs the story with a measurable outcome",
	}
	gapTexts = [4]string{
		"No situation: add one sentence of context up front",
		"No task: say what you specifically owned",
		"No action: walk through the steps you personally took",
		"No result: end with the outcome, with a number if possible",
	}
)

const (
	behavioralRewrite = "Situation: [one sentence of context]. " +
		"Task: [what you were responsible for]. " +
		"Action: [2-3 steps you personally took]. " +
		"Result: [the outcome, with a number]."
	analyticalRewrite = "Approach: [how you framed the problem]. " +
		"Trade-offs: [options you weighed and why]. " +
		"Decision: [what you chose and the reasoning]. " +
		"Validation: [how you confirmed it worked]."
)

// Fixed improvement bullets, independent of the specific answer.
var rewriteBullets = []string{
	"Lead with the most recent, most relevant example",
	"Quantify the result: users, revenue, latency, time saved",
	"Cut filler: one situation sentence, then your actions",
}

const (
	whyIncomplete = "Interviewers listen for STAR structure; missing pieces make your impact hard to judge."
	whyComplete   = "Full STAR structure detected; keep tightening the result with concrete numbers."
)

var modeIntents = map[blueprint.Mode]string{
	blueprint.ModeBehavioral: "The follow-up probes ownership and measurable impact.",
	blueprint.ModeTechnical:  "The follow-up probes depth: trade-offs, constraints, and validation.",
	blueprint.ModeCase:       "The follow-up probes how you structure and prioritize an open problem.",
}

// Score computes category scores from STAR presence. The formulas are fixed:
//
//	clarity   = clamp(10 + 3*starCount, 0, 25)
//	structure = clamp(8 + 4*starCount, 0, 25)
//	impact    = clamp(6 + 12|3, 0, 25)       (12 when a result was detected)
//	roleFit   = clamp(10 + 6|4, 0, 25)       (6 in behavioral mode)
//	overall   = clamp(sum, 0, 100)
func Score(result star.Result, mode blueprint.Mode) Scores {
	count := result.Count()

	clarity := clamp(10+3*count, 0, 25)
	structure := clamp(8+4*count, 0, 25)

	impactBonus := 3
	if result.Result.Present {
		impactBonus = 12
	}
	impact := clamp(6+impactBonus, 0, 25)

	fitBonus := 4
	if mode == blueprint.ModeBehavioral {
		fitBonus = 6
	}
	roleFit := clamp(10+fitBonus, 0, 25)

	return Scores{
		Overall:   clamp(clarity+structure+impact+roleFit, 0, 100),
		Clarity:   clarity,
		Structure: structure,
		Impact:    impact,
		RoleFit:   roleFit,
	}
}

// BuildScorecard assembles the full scorecard for one answer.
func BuildScorecard(result star.Result, mode blueprint.Mode) Scorecard {
	card := Scorecard{
		Star:   result,
		Scores: Score(result, mode),
		Rewrite: Rewrite{
			ImprovedAnswer: rewriteTemplate(mode),
			BulletsToAdd:   append([]string(nil), rewriteBullets...),
		},
	}

	for i, present := range presenceOrder(result) {
		if present {
			card.Strengths = append(card.Strengths, strengthTexts[i])
		} else {
			card.Gaps = append(card.Gaps, gapTexts[i])
		}
	}
	return card
}

// BuildCoach derives the compact feedback object from the same STAR signals.
func BuildCoach(result star.Result, mode blueprint.Mode) Coach {
	labels := [4]string{"S", "T", "A", "R"}
	names := [4]string{"situation", "task", "action", "result"}

	marks := make([]string, 0, 4)
	missing := []string{}
	for i, present := range presenceOrder(result) {
		mark := "+"
		if !present {
			mark = "-"
			missing = append(missing, names[i])
		}
		marks = append(marks, labels[i]+":"+mark)
	}

	why := whyComplete
	if len(missing) > 0 {
		why = whyIncomplete
	}

	return Coach{
		Mode:    mode,
		Star:    strings.Join(marks, " "),
		Missing: missing,
		Why:     why,
		Intent:  modeIntents[mode],
	}
}

func rewriteTemplate(mode blueprint.Mode) string {
	if mode == blueprint.ModeBehavioral {
		return behavioralRewrite
	}
	return analyticalRewrite
}

func presenceOrder(result star.Result) [4]bool {
	return [4]bool{
		result.Situation.Present,
		result.Task.Present,
		result.Action.Present,
		result.Result.Present,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
