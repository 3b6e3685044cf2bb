package models

import "time"

// Status is the display bucket an artifact is reviewed under.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	// StatusFlaky is the catch-all for any raw status token other than
	// "pass" or "fail". It also covers malformed or missing tokens.
	StatusFlaky Status = "flaky"
)

// Statuses lists every artifact status in display order.
var Statuses = []Status{StatusFailed, StatusPassed, StatusFlaky}

// Label returns the capitalized name shown on badges and tabs.
func (s Status) Label() string {
	switch s {
	case StatusPassed:
		return "Passed"
	case StatusFailed:
		return "Failed"
	case StatusFlaky:
		return "Flaky"
	default:
		return string(s)
	}
}

// MediaKind identifies a captured media type.
type MediaKind string

const (
	MediaScreenshot MediaKind = "screenshot"
	MediaVideo      MediaKind = "video"
)

// Label returns the capitalized media kind name.
func (k MediaKind) Label() string {
	switch k {
	case MediaScreenshot:
		return "Screenshot"
	case MediaVideo:
		return "Video"
	default:
		return string(k)
	}
}

// Artifact is the display-ready, immutable view of one captured test case.
type Artifact struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Scenario   string    `json:"scenario"`
	Summary    string    `json:"summary"`
	Status     Status    `json:"status"`
	MediaKind  MediaKind `json:"mediaKind"`
	Tags       []string  `json:"tags"`
	Suite      string    `json:"suite"`
	SpecPath   string    `json:"specPath"`
	Browser    string    `json:"browser"`
	RecordedAt time.Time `json:"recordedAt"`
	// Duration is in seconds. It is display filler, not a measurement.
	Duration float64 `json:"duration"`
	ImageSrc string  `json:"imageSrc"`
	VideoSrc string  `json:"videoSrc,omitempty"`
	HasVideo bool    `json:"hasVideo"`
}

// Totals holds per-status counts over a full artifact collection.
type Totals struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Flaky  int `json:"flaky"`
}

// Count returns the number of artifacts with the given status.
func (t Totals) Count(s Status) int {
	switch s {
	case StatusPassed:
		return t.Passed
	case StatusFailed:
		return t.Failed
	case StatusFlaky:
		return t.Flaky
	default:
		return 0
	}
}
