package gallery

import (
	"encoding/json"
	"testing"

	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceIsPure(t *testing.T) {
	all := threeCases()
	before := NewState()

	after := Reduce(all, before, SetStatusFilter{Value: StatusFilter(models.StatusFailed)})

	assert.Equal(t, FilterAll, before.Status, "input state is untouched")
	assert.Equal(t, StatusFilter(models.StatusFailed), after.Status)
}

func TestReduceNavigationMatchesGallery(t *testing.T) {
	all := threeCases()
	g := New(all)
	s := NewState()

	intents := []Intent{
		Open{ID: "TC02"},
		Next{},
		Next{},
		SetStatusFilter{Value: StatusFilter(models.StatusPassed)},
		Prev{},
		ToggleType{Kind: models.MediaVideo},
		SelectAllTypes{},
		Close{},
		Prev{},
	}
	for _, intent := range intents {
		s = Reduce(all, s, intent)
		g.Dispatch(intent)
		assert.Equal(t, g.State(), s, "after %T", intent)
	}
	assert.Equal(t, "TC01", s.ActiveID)
}

func TestReduceNilIntent(t *testing.T) {
	s := NewState()
	assert.Equal(t, s, Reduce(nil, s, nil))
}

func TestZeroStateIsDefault(t *testing.T) {
	var s State
	got := Derive(threeCases(), s)

	assert.Len(t, got.Artifacts, 3)
	assert.Equal(t, -1, got.ActiveIndex)
	assert.Nil(t, got.Active)
}

func TestParseStatusFilter(t *testing.T) {
	for _, in := range []string{"all", "ALL", "", " failed ", "passed", "flaky"} {
		_, err := ParseStatusFilter(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseStatusFilter("pass")
	assert.Error(t, err)
}

func TestKeyIntent(t *testing.T) {
	intent, ok := KeyIntent("Escape")
	require.True(t, ok)
	assert.Equal(t, Close{}, intent)

	intent, ok = KeyIntent("ArrowRight")
	require.True(t, ok)
	assert.Equal(t, Next{}, intent)

	intent, ok = KeyIntent("ArrowLeft")
	require.True(t, ok)
	assert.Equal(t, Prev{}, intent)

	_, ok = KeyIntent("Enter")
	assert.False(t, ok)
}

func TestEnvelopeIntent(t *testing.T) {
	tests := []struct {
		in   Envelope
		want Intent
	}{
		{Envelope{Type: IntentSetStatusFilter, Status: "flaky"}, SetStatusFilter{Value: StatusFilter(models.StatusFlaky)}},
		{Envelope{Type: IntentToggleTypeFilter, Kind: "video"}, ToggleType{Kind: models.MediaVideo}},
		{Envelope{Type: IntentSetTypeFilterAll}, SelectAllTypes{}},
		{Envelope{Type: IntentOpen, ID: "TC01"}, Open{ID: "TC01"}},
		{Envelope{Type: IntentClose}, Close{}},
		{Envelope{Type: IntentNext}, Next{}},
		{Envelope{Type: IntentPrev}, Prev{}},
		{Envelope{Type: IntentKey, Key: "ArrowLeft"}, Prev{}},
	}
	for _, tt := range tests {
		t.Run(tt.in.Type, func(t *testing.T) {
			got, err := tt.in.Intent()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []Envelope{
		{Type: "explode"},
		{Type: IntentSetStatusFilter, Status: "broken"},
		{Type: IntentToggleTypeFilter, Kind: "audio"},
		{Type: IntentKey, Key: "Tab"},
	} {
		_, err := bad.Intent()
		assert.Error(t, err, bad.Type)
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewState()
	s = Reduce(nil, s, ToggleType{Kind: models.MediaScreenshot})
	s = Reduce(nil, s, Open{ID: "TC09"})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusFilter":"all","typeFilter":["video"],"activeId":"TC09"}`, string(data))

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}
