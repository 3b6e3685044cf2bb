package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Passed", StatusPassed.Label())
	assert.Equal(t, "Failed", StatusFailed.Label())
	assert.Equal(t, "Flaky", StatusFlaky.Label())
	assert.Equal(t, "odd", Status("odd").Label())
}

func TestMediaKindLabel(t *testing.T) {
	assert.Equal(t, "Screenshot", MediaScreenshot.Label())
	assert.Equal(t, "Video", MediaVideo.Label())
}

func TestTotalsCount(t *testing.T) {
	totals := Totals{Total: 6, Passed: 3, Failed: 2, Flaky: 1}
	assert.Equal(t, 3, totals.Count(StatusPassed))
	assert.Equal(t, 2, totals.Count(StatusFailed))
	assert.Equal(t, 1, totals.Count(StatusFlaky))
	assert.Equal(t, 0, totals.Count(Status("all")))
}

func TestArtifactJSONFieldNames(t *testing.T) {
	a := Artifact{
		ID:         "TC01",
		Status:     StatusFailed,
		MediaKind:  MediaScreenshot,
		RecordedAt: time.Date(2026, time.January, 31, 10, 24, 0, 0, time.UTC),
		HasVideo:   false,
	}
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "failed", fields["status"])
	assert.Equal(t, "screenshot", fields["mediaKind"])
	assert.Equal(t, "2026-01-31T10:24:00Z", fields["recordedAt"])
	assert.Equal(t, false, fields["hasVideo"])
	assert.NotContains(t, fields, "videoSrc")
}
