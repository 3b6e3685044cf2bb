// Package display renders the gallery to a terminal and parses the
// commands typed into the browse prompt.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/mattn/go-runewidth"
)

// Column widths of the card grid, in terminal cells.
const (
	idWidth     = 14
	titleWidth  = 34
	statusWidth = 8
	mediaWidth  = 12
)

// RecaptureHint is shown under the lightbox. It is advice only; nothing in
// this program re-runs the capture pipeline.
const RecaptureHint = "Run tests & recapture: npm run capture"

// RenderTotals writes the status tabs with their counts. The active filter
// is bracketed.
func RenderTotals(w io.Writer, totals models.Totals, s gallery.State) {
	tabs := make([]string, 0, len(gallery.StatusFilters))
	for _, f := range gallery.StatusFilters {
		n := totals.Total
		if f != gallery.FilterAll {
			n = totals.Count(models.Status(f))
		}
		tab := fmt.Sprintf("%s %d", f.Label(), n)
		if f == s.Status || (s.Status == "" && f == gallery.FilterAll) {
			tab = "[" + tab + "]"
		}
		tabs = append(tabs, tab)
	}
	fmt.Fprintf(w, "%s   types: %s\n", strings.Join(tabs, "  "), renderTypes(s.Types))
}

func renderTypes(types gallery.TypeSet) string {
	if types.IsAll() {
		return "all"
	}
	return types.String()
}

// RenderLabel writes the "N artifacts" / "N / M artifacts" caption.
func RenderLabel(w io.Writer, v gallery.View) {
	fmt.Fprintln(w, v.Label)
}

// RenderGrid writes one row per artifact. The row of the open artifact is
// marked with ">".
func RenderGrid(w io.Writer, artifacts []models.Artifact, activeID string) {
	if len(artifacts) == 0 {
		fmt.Fprintln(w, "  (no artifacts match the current filters)")
		return
	}
	fmt.Fprintf(w, "  %s %s %s %s %s\n",
		padRight("ID", idWidth), padRight("TITLE", titleWidth), padRight("STATUS", statusWidth),
		padRight("MEDIA", mediaWidth), "RECORDED")
	for _, a := range artifacts {
		marker := " "
		if activeID != "" && a.ID == activeID {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			marker,
			padRight(truncate(a.ID, idWidth), idWidth),
			padRight(truncate(a.Title, titleWidth), titleWidth),
			padRight(a.Status.Label(), statusWidth),
			padRight(mediaBadge(a), mediaWidth),
			a.RecordedAt.Format("15:04:05"))
	}
}

func mediaBadge(a models.Artifact) string {
	if a.HasVideo {
		return a.MediaKind.Label() + "+▶"
	}
	return a.MediaKind.Label()
}

// RenderLightbox writes the detail panel of an open artifact. index is its
// position in the filtered list of count members.
func RenderLightbox(w io.Writer, a models.Artifact, index, count int) {
	rule := strings.Repeat("─", 64)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s  (%d/%d)  %s\n", a.Status.Label(), index+1, count, a.ID)
	fmt.Fprintf(w, "%s\n\n", a.Title)
	fmt.Fprintf(w, "  Input:     %s\n", a.Scenario)
	fmt.Fprintf(w, "  Expected:  %s\n", a.Summary)
	fmt.Fprintf(w, "  Tags:      %s\n", strings.Join(a.Tags, ", "))
	fmt.Fprintf(w, "  Suite:     %s\n", a.Suite)
	fmt.Fprintf(w, "  Spec:      %s (%s)\n", a.SpecPath, a.Browser)
	fmt.Fprintf(w, "  Recorded:  %s, %.0fs\n", a.RecordedAt.Format("2006-01-02 15:04:05 MST"), a.Duration)
	fmt.Fprintf(w, "  Screenshot %s\n", a.ImageSrc)
	if a.HasVideo {
		fmt.Fprintf(w, "  Video      %s\n", a.VideoSrc)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", RecaptureHint)
	fmt.Fprintln(w, "  [p] prev  [n] next  [c] close")
	fmt.Fprintln(w, rule)
}

// Render writes the complete screen for v under state s.
func Render(w io.Writer, v gallery.View, s gallery.State) {
	RenderTotals(w, v.Totals, s)
	RenderLabel(w, v)
	RenderGrid(w, v.Artifacts, s.ActiveID)
	if v.Active != nil {
		RenderLightbox(w, *v.Active, v.ActiveIndex, len(v.Artifacts))
	}
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
