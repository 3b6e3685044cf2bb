// Package gallery holds the review gallery's filter and navigation state and
// derives the filtered artifact list and summary counts from it.
//
// State transitions are pure: Reduce takes the artifact collection, the
// current State and an Intent and returns the next State. Gallery wraps the
// same transitions with memoized derived views for long-lived callers such
// as the terminal browser.
package gallery

import (
	"fmt"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// StatusFilter selects artifacts by status. The empty value behaves as
// FilterAll.
type StatusFilter string

const FilterAll StatusFilter = "all"

// StatusFilters lists the selectable filters in tab order.
var StatusFilters = []StatusFilter{
	FilterAll,
	StatusFilter(models.StatusFailed),
	StatusFilter(models.StatusPassed),
	StatusFilter(models.StatusFlaky),
}

// ParseStatusFilter parses "all", "passed", "failed" or "flaky".
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range StatusFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q (want all, passed, failed or flaky)", s)
}

// Matches reports whether an artifact with status st passes the filter.
func (f StatusFilter) Matches(st models.Status) bool {
	if f == "" || f == FilterAll {
		return true
	}
	return models.Status(f) == st
}

// Label returns the tab caption for the filter.
func (f StatusFilter) Label() string {
	if f == "" || f == FilterAll {
		return "All"
	}
	return models.Status(f).Label()
}

// State is the complete gallery UI state. The zero value is the default
// state: all statuses, all media kinds, nothing open.
type State struct {
	Status   StatusFilter `json:"statusFilter"`
	Types    TypeSet      `json:"typeFilter"`
	ActiveID string       `json:"activeId,omitempty"`
}

// NewState returns the default state.
func NewState() State {
	return State{Status: FilterAll, Types: AllTypes()}
}

// Intent is a user action that moves the gallery from one State to the next.
type Intent interface {
	apply(s State, filtered func(State) []models.Artifact) State
}

// SetStatusFilter replaces the status filter.
type SetStatusFilter struct{ Value StatusFilter }

// ToggleType flips one media kind in the type filter.
type ToggleType struct{ Kind models.MediaKind }

// SelectAllTypes selects every media kind.
type SelectAllTypes struct{}

// Open makes ID the active artifact. ID is not checked against the
// filtered list.
type Open struct{ ID string }

// Close clears the active artifact.
type Close struct{}

// Next moves the active artifact forward through the filtered list,
// wrapping from the last item to the first.
type Next struct{}

// Prev moves the active artifact backward through the filtered list,
// wrapping from the first item to the last.
type Prev struct{}

func (i SetStatusFilter) apply(s State, _ func(State) []models.Artifact) State {
	s.Status = i.Value
	return s
}

func (i ToggleType) apply(s State, _ func(State) []models.Artifact) State {
	s.Types = s.Types.Toggle(i.Kind)
	return s
}

func (SelectAllTypes) apply(s State, _ func(State) []models.Artifact) State {
	s.Types = AllTypes()
	return s
}

func (i Open) apply(s State, _ func(State) []models.Artifact) State {
	s.ActiveID = i.ID
	return s
}

func (Close) apply(s State, _ func(State) []models.Artifact) State {
	s.ActiveID = ""
	return s
}

func (Next) apply(s State, filtered func(State) []models.Artifact) State {
	return step(s, filtered(s), 1)
}

func (Prev) apply(s State, filtered func(State) []models.Artifact) State {
	return step(s, filtered(s), -1)
}

// step moves ActiveID by delta positions within list, wrapping at both ends.
// When ActiveID is not in list, forward lands on the first item and backward
// on the last.
func step(s State, list []models.Artifact, delta int) State {
	n := len(list)
	if n == 0 {
		return s
	}
	idx := IndexOf(list, s.ActiveID)
	var next int
	switch {
	case idx >= 0:
		next = ((idx+delta)%n + n) % n
	case delta > 0:
		next = 0
	default:
		next = n - 1
	}
	s.ActiveID = list[next].ID
	return s
}

// Reduce applies intent to s. artifacts is the full collection; navigation
// intents move within the subset that passes s's filters.
func Reduce(artifacts []models.Artifact, s State, intent Intent) State {
	if intent == nil {
		return s
	}
	return intent.apply(s, func(st State) []models.Artifact {
		return Filter(artifacts, st.Status, st.Types)
	})
}

// KeyIntent maps a keyboard key name to an intent: Escape closes the
// lightbox, ArrowRight and ArrowLeft page through it.
func KeyIntent(key string) (Intent, bool) {
	switch key {
	case "Escape":
		return Close{}, true
	case "ArrowRight":
		return Next{}, true
	case "ArrowLeft":
		return Prev{}, true
	default:
		return nil, false
	}
}
