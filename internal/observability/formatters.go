// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + "\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintBlueprint outputs a human-readable summary of a generated blueprint.
func (p *Printer) PrintBlueprint(bp *blueprint.Blueprint) {
	if bp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Interview type: %s\n\n", bp.LikelyInterviewType))

	writeList(&sb, "Role focus:", bp.RoleFocus, maxItemsToShow)
	writeList(&sb, "Risk gaps:", bp.RiskGaps, 3)
	writeList(&sb, "Company notes:", bp.CompanyNotes, 3)

	if len(bp.SampleQuestions) > 0 {
		sb.WriteString("Sample questions:\n")
		count := min(len(bp.SampleQuestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			q := bp.SampleQuestions[i]
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", q.Type, q.Question))
		}
	}

	p.printBox("INTERVIEW BLUEPRINT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScorecard outputs a human-readable summary of an answer scorecard.
func (p *Printer) PrintScorecard(card *scoring.Scorecard) {
	if card == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall: %d/100\n", card.Scores.Overall))
	sb.WriteString(fmt.Sprintf("  clarity %d  structure %d  impact %d  fit %d\n\n",
		card.Scores.Clarity, card.Scores.Structure, card.Scores.Impact, card.Scores.RoleFit))

	writeList(&sb, "Strengths:", card.Strengths, maxItemsToShow)
	writeList(&sb, "Gaps:", card.Gaps, maxItemsToShow)

	p.printBox("ANSWER SCORECARD", strings.TrimSuffix(sb.String(), "\n"))
}
