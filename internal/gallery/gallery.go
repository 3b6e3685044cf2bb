package gallery

import (
	"slices"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Gallery is a long-lived gallery session over one artifact collection.
// Derived views are memoized and recomputed only when the filters or the
// collection change. A Gallery is not safe for concurrent use.
type Gallery struct {
	artifacts []models.Artifact
	state     State
	totals    models.Totals

	filtered []models.Artifact
	cacheKey filterKey
	cached   bool
}

type filterKey struct {
	status StatusFilter
	types  TypeSet
}

// New returns a Gallery in the default state.
func New(artifacts []models.Artifact) *Gallery {
	g := &Gallery{state: NewState()}
	g.Replace(artifacts)
	return g
}

// Replace swaps in a new collection and keeps the current state.
func (g *Gallery) Replace(artifacts []models.Artifact) {
	g.artifacts = slices.Clone(artifacts)
	g.totals = ComputeTotals(g.artifacts)
	g.cached = false
}

// Dispatch applies intent to the current state.
func (g *Gallery) Dispatch(intent Intent) {
	if intent == nil {
		return
	}
	g.state = intent.apply(g.state, g.listFor)
}

func (g *Gallery) listFor(s State) []models.Artifact {
	key := filterKey{status: s.Status, types: s.Types}
	if !g.cached || g.cacheKey != key {
		g.filtered = Filter(g.artifacts, s.Status, s.Types)
		g.cacheKey = key
		g.cached = true
	}
	return g.filtered
}

// SetStatusFilter replaces the status filter.
func (g *Gallery) SetStatusFilter(f StatusFilter) { g.Dispatch(SetStatusFilter{Value: f}) }

// ToggleTypeFilter flips one media kind; the type filter never becomes empty.
func (g *Gallery) ToggleTypeFilter(k models.MediaKind) { g.Dispatch(ToggleType{Kind: k}) }

// SetTypeFilterAll selects every media kind.
func (g *Gallery) SetTypeFilterAll() { g.Dispatch(SelectAllTypes{}) }

// Open sets the active artifact.
func (g *Gallery) Open(id string) { g.Dispatch(Open{ID: id}) }

// Close clears the active artifact.
func (g *Gallery) Close() { g.Dispatch(Close{}) }

// Next advances the active artifact with wrap-around.
func (g *Gallery) Next() { g.Dispatch(Next{}) }

// Prev moves the active artifact back with wrap-around.
func (g *Gallery) Prev() { g.Dispatch(Prev{}) }

// State returns the current state.
func (g *Gallery) State() State { return g.state }

// StatusFilter returns the current status filter.
func (g *Gallery) StatusFilter() StatusFilter { return g.state.Status }

// TypeFilter returns the current type filter.
func (g *Gallery) TypeFilter() TypeSet { return g.state.Types }

// Artifacts returns the full collection.
func (g *Gallery) Artifacts() []models.Artifact { return slices.Clone(g.artifacts) }

// FilteredArtifacts returns the artifacts passing the current filters.
func (g *Gallery) FilteredArtifacts() []models.Artifact {
	return slices.Clone(g.listFor(g.state))
}

// Totals returns the per-status counts of the full collection. They do not
// depend on the filters.
func (g *Gallery) Totals() models.Totals { return g.totals }

// ActiveArtifact returns the open artifact if it is in the filtered list.
func (g *Gallery) ActiveArtifact() (models.Artifact, bool) {
	return ActiveArtifact(g.listFor(g.state), g.state.ActiveID)
}

// View returns every derived value for the current state.
func (g *Gallery) View() View {
	return buildView(g.FilteredArtifacts(), g.totals, g.state.ActiveID)
}
