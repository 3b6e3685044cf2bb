package wizard

import (
	"testing"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterChoiceState(t *testing.T) {
	tests := []struct {
		name       string
		choice     FilterChoice
		wantStatus gallery.StatusFilter
		wantKinds  []models.MediaKind
	}{
		{
			name:       "everything",
			choice:     FilterChoice{Status: "all", Kinds: []string{"screenshot", "video"}},
			wantStatus: gallery.FilterAll,
			wantKinds:  []models.MediaKind{models.MediaScreenshot, models.MediaVideo},
		},
		{
			name:       "failed videos",
			choice:     FilterChoice{Status: "failed", Kinds: []string{"video"}},
			wantStatus: gallery.StatusFilter(models.StatusFailed),
			wantKinds:  []models.MediaKind{models.MediaVideo},
		},
		{
			name:       "blank status means all",
			choice:     FilterChoice{Kinds: []string{"screenshot"}},
			wantStatus: gallery.FilterAll,
			wantKinds:  []models.MediaKind{models.MediaScreenshot},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := tt.choice.State()
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, st.Status)
			assert.Equal(t, tt.wantKinds, st.Types.Kinds())
			assert.Empty(t, st.ActiveID)
		})
	}
}

func TestFilterChoiceStateErrors(t *testing.T) {
	_, err := FilterChoice{Status: "all"}.State()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one media type")

	_, err = FilterChoice{Status: "broken", Kinds: []string{"video"}}.State()
	assert.Error(t, err)

	_, err = FilterChoice{Status: "all", Kinds: []string{"gif"}}.State()
	assert.Error(t, err)
}
