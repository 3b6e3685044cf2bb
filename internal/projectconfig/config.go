// Package projectconfig provides the ProjectConfig struct and loader for
// .evidencedeck.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sachithra-228/evidencedeck/internal/projection"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for by Load.
const FileName = ".evidencedeck.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them. Display and timeline defaults are the
// projection package's own.
const (
	DefaultCasesPath = "testdata/testCases_minimal.json"
	DefaultMediaDir  = "gallery-ui/public/assets"

	DefaultSuite    = projection.DefaultSuite
	DefaultSpecPath = projection.DefaultSpecPath
	DefaultBrowser  = projection.DefaultBrowser

	DefaultEpoch          = projection.DefaultEpochText
	DefaultSpacingSeconds = int(projection.DefaultSpacing / time.Second)

	DefaultServerPort = 4173
	DefaultBaseURL    = projection.DefaultBaseURL

	DefaultMediaBackend = "file"
	DefaultCacheEntries = 256
	DefaultCheckWorkers = 8
)

// Media backend names accepted in media.backend.
const (
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendAzBlob = "azblob"
)

// PathsConfig holds the case file and media directory locations.
type PathsConfig struct {
	Cases string `yaml:"cases,omitempty"`
	Media string `yaml:"media,omitempty"`
}

// DisplayConfig holds the display-only metadata stamped on every artifact.
type DisplayConfig struct {
	Suite    string `yaml:"suite,omitempty"`
	SpecPath string `yaml:"spec_path,omitempty"`
	Browser  string `yaml:"browser,omitempty"`
}

// TimelineConfig controls the synthetic recordedAt timeline.
type TimelineConfig struct {
	Epoch          string `yaml:"epoch,omitempty"`
	SpacingSeconds int    `yaml:"spacing_seconds,omitempty"`
}

// ServerConfig holds gallery server settings.
type ServerConfig struct {
	Port      int    `yaml:"port,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	NoBrowser *bool  `yaml:"no_browser,omitempty"`
}

// MediaConfig selects and configures the media store.
type MediaConfig struct {
	Backend      string         `yaml:"backend,omitempty"`
	CacheEntries *int           `yaml:"cache_entries,omitempty"`
	Workers      int            `yaml:"workers,omitempty"`
	Options      map[string]any `yaml:"options,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .evidencedeck.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Display  DisplayConfig  `yaml:"display,omitempty"`
	Timeline TimelineConfig `yaml:"timeline,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Media    MediaConfig    `yaml:"media,omitempty"`

	// Dir is the directory holding the loaded file. Relative paths resolve
	// against it. Empty when no file was found.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Cases: DefaultCasesPath,
			Media: DefaultMediaDir,
		},
		Display: DisplayConfig{
			Suite:    DefaultSuite,
			SpecPath: DefaultSpecPath,
			Browser:  DefaultBrowser,
		},
		Timeline: TimelineConfig{
			Epoch:          DefaultEpoch,
			SpacingSeconds: DefaultSpacingSeconds,
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			BaseURL:   DefaultBaseURL,
			NoBrowser: boolPtr(false),
		},
		Media: MediaConfig{
			Backend:      DefaultMediaBackend,
			CacheEntries: intPtr(DefaultCacheEntries),
			Workers:      DefaultCheckWorkers,
		},
	}
}

// Load finds .evidencedeck.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return loadBytes(cfg, path, data)
}

// LoadFile reads the configuration at an explicit path. A missing file is
// an error here.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return loadBytes(New(), abs, data)
}

func loadBytes(cfg *ProjectConfig, path string, data []byte) (*ProjectConfig, error) {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	mergeConfig(cfg, &fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Validate checks values the loader cannot coerce.
func (c *ProjectConfig) Validate() error {
	if _, err := c.Timeline.EpochTime(); err != nil {
		return err
	}
	if c.Timeline.SpacingSeconds < 0 {
		return fmt.Errorf("timeline.spacing_seconds must not be negative, got %d", c.Timeline.SpacingSeconds)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Media.Backend {
	case BackendFile, BackendS3, BackendAzBlob:
	default:
		return fmt.Errorf("media.backend %q is not one of %s, %s, %s", c.Media.Backend, BackendFile, BackendS3, BackendAzBlob)
	}
	if c.Media.CacheEntries != nil && *c.Media.CacheEntries < 0 {
		return fmt.Errorf("media.cache_entries must not be negative, got %d", *c.Media.CacheEntries)
	}
	return nil
}

// ResolvePath returns p unchanged when absolute, otherwise joined onto the
// directory of the loaded config file.
func (c *ProjectConfig) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// EpochTime parses the timeline epoch as RFC 3339.
func (t TimelineConfig) EpochTime() (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(t.Epoch))
	if err != nil {
		return time.Time{}, fmt.Errorf("timeline.epoch: %w", err)
	}
	return ts.UTC(), nil
}

// Spacing returns the gap between consecutive recordings.
func (t TimelineConfig) Spacing() time.Duration {
	return time.Duration(t.SpacingSeconds) * time.Second
}

// CacheSize returns the configured cache size, 0 when caching is disabled.
func (m MediaConfig) CacheSize() int {
	if m.CacheEntries == nil {
		return DefaultCacheEntries
	}
	return *m.CacheEntries
}

// findConfigFile walks up from dir looking for .evidencedeck.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Cases != "" {
		dst.Paths.Cases = src.Paths.Cases
	}
	if src.Paths.Media != "" {
		dst.Paths.Media = src.Paths.Media
	}

	// Display
	if src.Display.Suite != "" {
		dst.Display.Suite = src.Display.Suite
	}
	if src.Display.SpecPath != "" {
		dst.Display.SpecPath = src.Display.SpecPath
	}
	if src.Display.Browser != "" {
		dst.Display.Browser = src.Display.Browser
	}

	// Timeline
	if src.Timeline.Epoch != "" {
		dst.Timeline.Epoch = src.Timeline.Epoch
	}
	if src.Timeline.SpacingSeconds != 0 {
		dst.Timeline.SpacingSeconds = src.Timeline.SpacingSeconds
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.BaseURL != "" {
		dst.Server.BaseURL = src.Server.BaseURL
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}

	// Media
	if src.Media.Backend != "" {
		dst.Media.Backend = strings.ToLower(src.Media.Backend)
	}
	if src.Media.CacheEntries != nil {
		dst.Media.CacheEntries = src.Media.CacheEntries
	}
	if src.Media.Workers != 0 {
		dst.Media.Workers = src.Media.Workers
	}
	if src.Media.Options != nil {
		dst.Media.Options = src.Media.Options
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(n int) *int {
	return &n
}
