package reporting

import (
	"fmt"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/Sachithra-228/evidencedeck/internal/statistics"
)

// InterpretPassRate returns a human-readable explanation of a pass rate (0–1).
func InterpretPassRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All cases passed (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most cases passed (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the cases passed (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few cases passed (%.0f%%)", pct)
	}
}

// InterpretFlaky explains how many cases landed in the flaky bucket.
func InterpretFlaky(flaky, total int) string {
	if flaky == 0 {
		return "Every case reported pass or fail."
	}
	return fmt.Sprintf("%d of %d cases had an unrecognized status and are shown as flaky. Check the capture run for skipped or errored cases.", flaky, total)
}

// FormatSummaryReport produces a plain-language report for terminals.
func FormatSummaryReport(artifacts []models.Artifact, totals models.Totals) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")

	b.WriteString(fmt.Sprintf("Pass Rate:     %s\n", InterpretPassRate(passRate(totals))))
	if totals.Total > 0 {
		b.WriteString(fmt.Sprintf("Cases:         %d passed, %d failed, %d flaky out of %d total\n",
			totals.Passed, totals.Failed, totals.Flaky, totals.Total))
	}
	if totals.Total > 0 {
		ci := statistics.PassRateCI(totals.Passed, totals.Total, statistics.DefaultConfidenceLevel)
		b.WriteString(fmt.Sprintf("Confidence:    %.0f%% CI %.0f%% to %.0f%% over %d cases\n",
			ci.ConfidenceLevel*100, ci.Lower*100, ci.Upper*100, ci.Samples))
	}
	b.WriteString(fmt.Sprintf("Consistency:   %s\n", InterpretFlaky(totals.Flaky, totals.Total)))

	if len(artifacts) > 0 {
		b.WriteString("\nPer-Case Status:\n")
		for _, a := range artifacts {
			icon := "✓"
			switch a.Status {
			case models.StatusFailed:
				icon = "✗"
			case models.StatusFlaky:
				icon = "~"
			}
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", icon, caseName(a), a.Status))
		}
	}

	return b.String()
}
