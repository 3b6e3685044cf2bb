package reporting

import (
	"fmt"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// FormatMarkdown renders a review summary suitable for a pull request comment.
func FormatMarkdown(artifacts []models.Artifact, totals models.Totals) string {
	var b strings.Builder

	b.WriteString("## 🧪 Evidence Review\n\n")

	statusIcon := "✅ Passed"
	if totals.Failed > 0 {
		statusIcon = "❌ Failed"
	} else if totals.Flaky > 0 {
		statusIcon = "⚠️ Needs review"
	}
	b.WriteString(fmt.Sprintf("**Status:** %s | **Pass rate:** %.1f%%\n\n", statusIcon, passRate(totals)*100))

	b.WriteString(fmt.Sprintf("- **Artifacts:** %d total, %d passed, %d failed, %d flaky\n\n",
		totals.Total, totals.Passed, totals.Failed, totals.Flaky))

	if len(artifacts) == 0 {
		b.WriteString("_No artifacts captured._\n")
		return b.String()
	}

	b.WriteString("### Cases\n\n")
	b.WriteString("| ID | Title | Status | Tags | Recorded |\n")
	b.WriteString("|----|-------|--------|------|----------|\n")
	for _, a := range artifacts {
		b.WriteString(fmt.Sprintf("| %s | %s | %s %s | %s | %s |\n",
			escapeCell(a.ID), escapeCell(a.Title), statusEmoji(a.Status), a.Status.Label(),
			escapeCell(strings.Join(a.Tags, ", ")), a.RecordedAt.Format("2006-01-02 15:04:05")))
	}
	b.WriteString("\n")

	if totals.Failed > 0 {
		b.WriteString("### Failed Case Details\n\n")
		for _, a := range artifacts {
			if a.Status != models.StatusFailed {
				continue
			}
			writeDetails(&b, a)
		}
	}

	if totals.Flaky > 0 {
		b.WriteString("### ⚠️ Flaky Cases\n\n")
		b.WriteString("The following cases had a status other than pass or fail:\n\n")
		for _, a := range artifacts {
			if a.Status == models.StatusFlaky {
				b.WriteString(fmt.Sprintf("- **%s** %s\n", a.ID, a.Title))
			}
		}
		b.WriteString("\n")
	}

	first := artifacts[0]
	b.WriteString("---\n\n")
	b.WriteString(fmt.Sprintf("**Suite:** %s | **Spec:** %s | **Browser:** %s\n",
		first.Suite, first.SpecPath, first.Browser))

	return b.String()
}

func writeDetails(b *strings.Builder, a models.Artifact) {
	b.WriteString(fmt.Sprintf("#### %s %s\n\n", a.ID, a.Title))
	b.WriteString(fmt.Sprintf("- **Input:** `%s`\n", a.Scenario))
	b.WriteString(fmt.Sprintf("- **Expected:** %s\n", a.Summary))
	b.WriteString(fmt.Sprintf("- **Screenshot:** [%s](%s)\n", a.ID, a.ImageSrc))
	if a.HasVideo {
		b.WriteString(fmt.Sprintf("- **Video:** [%s](%s)\n", a.ID, a.VideoSrc))
	}
	b.WriteString("\n")
}

func statusEmoji(s models.Status) string {
	switch s {
	case models.StatusPassed:
		return "✅"
	case models.StatusFailed:
		return "❌"
	default:
		return "⚠️"
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func passRate(t models.Totals) float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Passed) / float64(t.Total)
}
