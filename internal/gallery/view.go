package gallery

import (
	"fmt"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Filter returns the artifacts passing both filters, in collection order.
// An artifact matches the type filter when the filter holds screenshot and
// the artifact's primary media is a screenshot, or when it holds video and
// the artifact has a video.
func Filter(artifacts []models.Artifact, status StatusFilter, types TypeSet) []models.Artifact {
	out := make([]models.Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if status.Matches(a.Status) && matchesType(a, types) {
			out = append(out, a)
		}
	}
	return out
}

func matchesType(a models.Artifact, types TypeSet) bool {
	return (types.Has(models.MediaScreenshot) && a.MediaKind == models.MediaScreenshot) ||
		(types.Has(models.MediaVideo) && a.HasVideo)
}

// ComputeTotals counts artifacts per status over the whole collection.
func ComputeTotals(artifacts []models.Artifact) models.Totals {
	t := models.Totals{Total: len(artifacts)}
	for _, a := range artifacts {
		switch a.Status {
		case models.StatusPassed:
			t.Passed++
		case models.StatusFailed:
			t.Failed++
		case models.StatusFlaky:
			t.Flaky++
		}
	}
	return t
}

// IndexOf returns the position of id in list, or -1.
func IndexOf(list []models.Artifact, id string) int {
	if id == "" {
		return -1
	}
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// ActiveArtifact returns the member of filtered whose ID is activeID. An id
// that was filtered out has no active artifact.
func ActiveArtifact(filtered []models.Artifact, activeID string) (models.Artifact, bool) {
	idx := IndexOf(filtered, activeID)
	if idx < 0 {
		return models.Artifact{}, false
	}
	return filtered[idx], true
}

// Label describes the filtered count, e.g. "12 artifacts" or "3 / 12 artifacts".
func Label(filtered, total int) string {
	if filtered == total {
		return fmt.Sprintf("%d artifacts", filtered)
	}
	return fmt.Sprintf("%d / %d artifacts", filtered, total)
}

// View bundles every value derived from a collection and a State.
type View struct {
	Artifacts []models.Artifact `json:"artifacts"`
	Totals    models.Totals     `json:"totals"`
	Label     string            `json:"label"`
	Active    *models.Artifact  `json:"active,omitempty"`
	// ActiveIndex is the position of Active within Artifacts, or -1.
	ActiveIndex int `json:"activeIndex"`
}

// Derive computes the View for s over artifacts.
func Derive(artifacts []models.Artifact, s State) View {
	filtered := Filter(artifacts, s.Status, s.Types)
	return buildView(filtered, ComputeTotals(artifacts), s.ActiveID)
}

func buildView(filtered []models.Artifact, totals models.Totals, activeID string) View {
	v := View{
		Artifacts:   filtered,
		Totals:      totals,
		Label:       Label(len(filtered), totals.Total),
		ActiveIndex: IndexOf(filtered, activeID),
	}
	if v.ActiveIndex >= 0 {
		active := filtered[v.ActiveIndex]
		v.Active = &active
	}
	return v
}
