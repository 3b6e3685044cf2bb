package media

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/Sachithra-228/evidencedeck/internal/projection"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent lookups when Check is given no limit.
const DefaultWorkers = 8

// Missing names a media object an artifact points at that the store lacks.
type Missing struct {
	ID   string           `json:"id"`
	Kind models.MediaKind `json:"kind"`
	Key  string           `json:"key"`
}

// Check looks up the screenshot of every artifact, and the video of those
// that claim one, using at most workers concurrent lookups. The result is
// sorted by artifact id, then kind. Ids that do not form a valid key are
// reported missing. Any lookup error other than a miss
// cancels the remaining lookups and is returned.
func Check(ctx context.Context, store Store, artifacts []models.Artifact, layout projection.Layout, workers int) ([]Missing, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		mu      sync.Mutex
		missing []Missing
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, a := range artifacts {
		kinds := []models.MediaKind{models.MediaScreenshot}
		if a.HasVideo {
			kinds = append(kinds, models.MediaVideo)
		}
		for _, kind := range kinds {
			key := layout.Key(kind, a.ID)
			g.Go(func() error {
				ok, err := store.Exists(ctx, key)
				if errors.Is(err, ErrInvalidKey) {
					ok, err = false, nil
				}
				if err != nil {
					return fmt.Errorf("checking %s: %w", key, err)
				}
				if !ok {
					mu.Lock()
					missing = append(missing, Missing{ID: a.ID, Kind: kind, Key: key})
					mu.Unlock()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(missing, func(x, y Missing) int {
		if c := strings.Compare(x.ID, y.ID); c != 0 {
			return c
		}
		return strings.Compare(string(x.Kind), string(y.Kind))
	})
	return missing, nil
}
