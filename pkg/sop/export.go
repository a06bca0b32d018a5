package sop

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/knowflow/procgraph/pkg/model"
)

// ExportMarkdown renders the SOP as a human-readable Markdown document.
func ExportMarkdown(doc *model.SOPVersion) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "**Version:** %d\n", doc.Number)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.UnixMilli(doc.GeneratedAt).UTC().Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Purpose\n%s\n\n", doc.Purpose)
	fmt.Fprintf(&b, "## Scope\n%s\n\n", doc.Scope)

	b.WriteString("## Roles & Responsibilities\n")
	for _, role := range doc.RolesInvolved {
		fmt.Fprintf(&b, "- %s\n", role)
	}

	b.WriteString("\n## Procedure\n\n")
	for _, step := range doc.Steps {
		title := step.Title
		if step.IsDecisionPoint {
			title += " (Decision)"
		}
		fmt.Fprintf(&b, "### Step %d: %s\n\n", step.Number, title)
		b.WriteString(step.Description)
		b.WriteString("\n")

		if step.ResponsibleRole != "" {
			fmt.Fprintf(&b, "\n**Responsible:** %s\n", step.ResponsibleRole)
		}
		if len(step.Notes) > 0 {
			b.WriteString("\n**Notes:**\n")
			for _, note := range step.Notes {
				fmt.Fprintf(&b, "- %s\n", note)
			}
		}
		if step.IsDecisionPoint && len(step.Branches) > 0 {
			b.WriteString("\n**Branches:**\n")
			for _, condition := range sortedBranchLabels(step.Branches) {
				next := "TBD"
				if n := step.Branches[condition]; n > 0 {
					next = fmt.Sprintf("%d", n)
				}
				fmt.Fprintf(&b, "- If %s: Go to Step %s\n", condition, next)
			}
		}
		b.WriteString("\n")
	}

	if len(doc.SystemsReferenced) > 0 {
		b.WriteString("## Systems & Tools\n\n")
		for _, system := range doc.SystemsReferenced {
			fmt.Fprintf(&b, "- %s\n", system)
		}
	}

	fmt.Fprintf(&b, "\n---\n*Coverage: %.0f%% | Confidence: %.0f%%*\n",
		doc.CoverageScore*100, doc.ConfidenceScore*100)

	return b.String()
}

// ExportJSON renders the SOP as indented JSON.
func ExportJSON(doc *model.SOPVersion) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func sortedBranchLabels(branches map[string]int) []string {
	labels := make([]string, 0, len(branches))
	for label := range branches {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
