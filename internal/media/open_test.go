package media

import (
	"testing"

	"github.com/Sachithra-228/evidencedeck/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestOpenFileBackend(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(projectconfig.MediaConfig{Backend: "file", CacheEntries: intPtr(0)}, dir)
	require.NoError(t, err)
	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, dir, fs.Root())

	store, err = Open(projectconfig.MediaConfig{Backend: "file", Options: map[string]any{"root": "/elsewhere"}, CacheEntries: intPtr(0)}, dir)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", store.(*FileStore).Root())
}

func TestOpenWrapsInCache(t *testing.T) {
	store, err := Open(projectconfig.New().Media, t.TempDir())
	require.NoError(t, err)
	_, ok := store.(*CachedStore)
	assert.True(t, ok)
}

func TestOpenRejectsUnknownOptions(t *testing.T) {
	_, err := Open(projectconfig.MediaConfig{Backend: "file", Options: map[string]any{"rooot": "x"}}, t.TempDir())
	assert.Error(t, err)
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(projectconfig.MediaConfig{Backend: "ftp"}, t.TempDir())
	assert.Error(t, err)
}

func TestOpenS3(t *testing.T) {
	t.Setenv(EnvS3AccessKey, "")
	t.Setenv(EnvS3SecretKey, "")

	opts := map[string]any{"endpoint": "localhost:9000", "bucket": "evidence", "use_ssl": "false"}
	_, err := Open(projectconfig.MediaConfig{Backend: "s3", Options: opts}, "")
	require.Error(t, err, "credentials are required")

	t.Setenv(EnvS3AccessKey, "minioadmin")
	t.Setenv(EnvS3SecretKey, "minioadmin")
	store, err := Open(projectconfig.MediaConfig{Backend: "s3", Options: opts, CacheEntries: intPtr(0)}, "")
	require.NoError(t, err)
	_, ok := store.(*S3Store)
	assert.True(t, ok)
}

func TestOpenAzBlob(t *testing.T) {
	t.Setenv(EnvAzureConnectionString, "")

	_, err := Open(projectconfig.MediaConfig{Backend: "azblob", Options: map[string]any{"container": "evidence"}}, "")
	require.Error(t, err)

	t.Setenv(EnvAzureConnectionString,
		"DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;")
	store, err := Open(projectconfig.MediaConfig{Backend: "azblob", Options: map[string]any{"container": "evidence"}, CacheEntries: intPtr(0)}, "")
	require.NoError(t, err)
	_, ok := store.(*BlobStore)
	assert.True(t, ok)
}
