package webapi

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Sachithra-228/evidencedeck/internal/dataset"
	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/Sachithra-228/evidencedeck/internal/projection"
)

// ErrArtifactNotFound is returned when an id does not match any artifact.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore provides access to the projected artifact collection.
type ArtifactStore interface {
	// Artifacts returns the full collection in case-file order.
	Artifacts() ([]models.Artifact, error)
	// Get returns the artifact with the given id.
	Get(id string) (*models.Artifact, error)
	// Totals returns per-status counts over the full collection.
	Totals() (models.Totals, error)
	// Reload re-reads the backing case file.
	Reload() error
	// Info describes the loaded collection.
	Info() StoreInfo
}

// StoreInfo describes where a collection came from and when it was read.
type StoreInfo struct {
	Options  projection.Options
	LoadedAt time.Time
}

// FileStore projects a case file into artifacts on first use and keeps the
// result until Reload.
type FileStore struct {
	path string
	opts projection.Options

	mu        sync.RWMutex
	artifacts []models.Artifact
	byID      map[string]int
	totals    models.Totals
	loaded    bool
	loadedAt  time.Time
	onReload  []func()
}

// NewFileStore creates a FileStore that reads cases from path.
func NewFileStore(path string, opts projection.Options) *FileStore {
	return &FileStore{
		path: path,
		opts: opts,
		byID: make(map[string]int),
	}
}

// NewMemoryStore creates a store over an already projected collection.
// Reload is a no-op.
func NewMemoryStore(artifacts []models.Artifact, opts projection.Options) *FileStore {
	s := &FileStore{opts: opts}
	s.set(artifacts)
	return s
}

// load reads the case file. A missing file yields an empty collection so the
// gallery can start before the first capture run.
func (fs *FileStore) load() error {
	if fs.path == "" {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		if !fs.loaded {
			fs.setLocked(nil)
		}
		return nil
	}

	cases, err := dataset.Load(fs.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		slog.Warn("case file not found, serving an empty gallery", "path", fs.path)
		cases = nil
	}
	artifacts := projection.Project(cases, fs.opts)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.setLocked(artifacts)
	slog.Debug("loaded artifacts", "path", fs.path, "count", len(artifacts))
	return nil
}

func (fs *FileStore) set(artifacts []models.Artifact) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.setLocked(artifacts)
}

func (fs *FileStore) setLocked(artifacts []models.Artifact) {
	if artifacts == nil {
		artifacts = []models.Artifact{}
	}
	fs.artifacts = artifacts
	fs.byID = make(map[string]int, len(artifacts))
	for i, a := range artifacts {
		// The first artifact wins when ids repeat, matching gallery lookups.
		if _, dup := fs.byID[a.ID]; !dup {
			fs.byID[a.ID] = i
		}
	}
	fs.totals = gallery.ComputeTotals(artifacts)
	fs.loaded = true
	fs.loadedAt = time.Now().UTC()
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh read of the case file. Hooks registered with
// OnReload run after a successful read.
func (fs *FileStore) Reload() error {
	if err := fs.load(); err != nil {
		return err
	}
	fs.mu.RLock()
	hooks := fs.onReload
	fs.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// OnReload registers fn to run after every successful Reload, e.g. to drop
// cached media that a new capture run replaced.
func (fs *FileStore) OnReload(fn func()) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.onReload = append(fs.onReload, fn)
}

// Artifacts returns the full collection. The slice must not be modified.
func (fs *FileStore) Artifacts() ([]models.Artifact, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.artifacts, nil
}

// Get returns the artifact with the given id.
func (fs *FileStore) Get(id string) (*models.Artifact, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	i, ok := fs.byID[id]
	if !ok {
		return nil, ErrArtifactNotFound
	}
	a := fs.artifacts[i]
	return &a, nil
}

// Totals returns per-status counts over the full collection.
func (fs *FileStore) Totals() (models.Totals, error) {
	if err := fs.ensureLoaded(); err != nil {
		return models.Totals{}, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.totals, nil
}

// Info describes the loaded collection.
func (fs *FileStore) Info() StoreInfo {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return StoreInfo{Options: fs.opts, LoadedAt: fs.loadedAt}
}

// Ensure FileStore satisfies ArtifactStore.
var _ ArtifactStore = (*FileStore)(nil)
