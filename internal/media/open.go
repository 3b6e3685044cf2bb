package media

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/projectconfig"
	"github.com/go-viper/mapstructure/v2"
)

// Environment variables consulted when backend options omit credentials.
const (
	EnvS3AccessKey           = "EVIDENCEDECK_S3_ACCESS_KEY"
	EnvS3SecretKey           = "EVIDENCEDECK_S3_SECRET_KEY"
	EnvAzureConnectionString = "AZURE_STORAGE_CONNECTION_STRING"
)

// FileConfig configures the filesystem backend. Root defaults to the
// configured media directory.
type FileConfig struct {
	Root string `mapstructure:"root"`
}

// Open builds the store selected by cfg. mediaDir is the resolved media
// directory used by the file backend. When cfg enables caching the store is
// wrapped in a CachedStore.
func Open(cfg projectconfig.MediaConfig, mediaDir string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(cfg.Backend) {
	case "", projectconfig.BackendFile:
		var fc FileConfig
		if err := decodeOptions(cfg.Options, &fc); err != nil {
			return nil, err
		}
		if fc.Root == "" {
			fc.Root = mediaDir
		}
		store = NewFileStore(fc.Root)
	case projectconfig.BackendS3:
		var sc S3Config
		if err := decodeOptions(cfg.Options, &sc); err != nil {
			return nil, err
		}
		if sc.AccessKey == "" {
			sc.AccessKey = os.Getenv(EnvS3AccessKey)
		}
		if sc.SecretKey == "" {
			sc.SecretKey = os.Getenv(EnvS3SecretKey)
		}
		store, err = NewS3Store(sc)
	case projectconfig.BackendAzBlob:
		var bc BlobConfig
		if err := decodeOptions(cfg.Options, &bc); err != nil {
			return nil, err
		}
		if bc.ConnectionString == "" && bc.AccountURL == "" {
			bc.ConnectionString = os.Getenv(EnvAzureConnectionString)
		}
		store, err = NewBlobStore(bc)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s media store: %w", cfg.Backend, err)
	}

	size := cfg.CacheSize()
	if size <= 0 {
		slog.Debug("media cache disabled", "backend", cfg.Backend)
		return store, nil
	}
	cached, err := NewCachedStore(store, size)
	if err != nil {
		return nil, fmt.Errorf("creating media cache: %w", err)
	}
	slog.Debug("media store opened", "backend", cfg.Backend, "cacheEntries", size)
	return cached, nil
}

func decodeOptions(options map[string]any, out any) error {
	if len(options) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(options); err != nil {
		return fmt.Errorf("media options: %w", err)
	}
	return nil
}
