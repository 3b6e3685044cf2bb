// Package projection turns raw capture records into display artifacts.
package projection

import (
	"strings"
	"time"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Default values for projected display metadata.
const (
	DefaultSuite    = "SwiftTranslator - Playwright automation"
	DefaultSpecPath = "singlish_to_sinhala.spec.js"
	DefaultBrowser  = "chromium"
	DefaultSpacing  = 90 * time.Second
	DefaultBaseURL  = "/assets"

	// DefaultEpochText is DefaultEpoch in RFC 3339 form, as written in config
	// files.
	DefaultEpochText = "2026-01-31T10:24:00Z"

	// Durations cycle through baseDuration, +3s, +6s, +9s.
	baseDuration   = 16
	durationStep   = 3
	durationPeriod = 4
)

// DefaultEpoch anchors the synthetic recordedAt timeline.
var DefaultEpoch = time.Date(2026, time.January, 31, 10, 24, 0, 0, time.UTC)

// Options controls the metadata stamped on every projected artifact.
type Options struct {
	Suite    string
	SpecPath string
	Browser  string
	Epoch    time.Time
	Spacing  time.Duration
	Layout   Layout
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Suite:    DefaultSuite,
		SpecPath: DefaultSpecPath,
		Browser:  DefaultBrowser,
		Epoch:    DefaultEpoch,
		Spacing:  DefaultSpacing,
		Layout:   DefaultLayout(),
	}
}

// NormalizeStatus maps a raw status token to an artifact status.
// Only "pass" and "fail" (case-insensitive, trimmed) are recognized;
// everything else, including the empty token, is flaky.
func NormalizeStatus(token string) models.Status {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "pass":
		return models.StatusPassed
	case "fail":
		return models.StatusFailed
	default:
		return models.StatusFlaky
	}
}

// Project converts cases into artifacts, one per case, in input order.
func Project(cases []models.RawCase, opts Options) []models.Artifact {
	opts = opts.withDefaults()
	artifacts := make([]models.Artifact, 0, len(cases))
	for i, tc := range cases {
		artifacts = append(artifacts, projectOne(tc, i, opts))
	}
	return artifacts
}

func projectOne(tc models.RawCase, index int, opts Options) models.Artifact {
	return models.Artifact{
		ID:         tc.ID,
		Title:      tc.Name,
		Scenario:   tc.Input,
		Summary:    tc.Expected,
		Status:     NormalizeStatus(tc.Status),
		MediaKind:  models.MediaScreenshot,
		Tags:       tagsFor(tc),
		Suite:      opts.Suite,
		SpecPath:   opts.SpecPath,
		Browser:    opts.Browser,
		RecordedAt: RecordedAt(opts.Epoch, opts.Spacing, index),
		Duration:   Duration(index),
		ImageSrc:   opts.Layout.ImageSrc(tc.ID),
		VideoSrc:   opts.Layout.VideoSrc(tc.ID),
		HasVideo:   true,
	}
}

// RecordedAt returns the synthetic capture time of the case at index.
func RecordedAt(epoch time.Time, spacing time.Duration, index int) time.Time {
	return epoch.Add(time.Duration(index) * spacing).UTC()
}

// Duration returns the synthetic duration in seconds for the case at index.
func Duration(index int) float64 {
	return float64(baseDuration + (index%durationPeriod)*durationStep)
}

func tagsFor(tc models.RawCase) []string {
	return []string{tc.Category, "len-" + strings.ToLower(tc.InputLengthType)}
}

func (o Options) withDefaults() Options {
	if o.Epoch.IsZero() {
		o.Epoch = DefaultEpoch
	}
	// A non-positive spacing would break the strictly increasing timeline.
	if o.Spacing <= 0 {
		o.Spacing = DefaultSpacing
	}
	o.Layout = o.Layout.withDefaults()
	return o
}
