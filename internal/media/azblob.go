package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// BlobConfig configures an Azure Blob Storage container. Either
// ConnectionString or AccountURL must be set; with AccountURL the default
// Azure credential chain is used.
type BlobConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	AccountURL       string `mapstructure:"account_url"`
	Container        string `mapstructure:"container"`
	Prefix           string `mapstructure:"prefix"`
	// MaxRetries overrides the SDK retry count when positive.
	MaxRetries int `mapstructure:"max_retries"`
}

func clientOptions(cfg BlobConfig) *azblob.ClientOptions {
	if cfg.MaxRetries <= 0 {
		return nil
	}
	return &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: int32(cfg.MaxRetries)},
		},
	}
}

// BlobStore reads media objects from an Azure Blob container.
type BlobStore struct {
	client    *azblob.Client
	container string
	prefix    string
}

// NewBlobStore creates a client for the configured container. No request is
// made until the first lookup.
func NewBlobStore(cfg BlobConfig) (*BlobStore, error) {
	container := strings.TrimSpace(cfg.Container)
	if container == "" {
		return nil, fmt.Errorf("azblob container is required")
	}

	opts := clientOptions(cfg)
	var (
		client *azblob.Client
		err    error
	)
	switch {
	case strings.TrimSpace(cfg.ConnectionString) != "":
		client, err = azblob.NewClientFromConnectionString(strings.TrimSpace(cfg.ConnectionString), opts)
	case strings.TrimSpace(cfg.AccountURL) != "":
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("azure credential: %w", credErr)
		}
		client, err = azblob.NewClient(strings.TrimSpace(cfg.AccountURL), cred, opts)
	default:
		return nil, fmt.Errorf("azblob connection_string or account_url is required")
	}
	if err != nil {
		return nil, fmt.Errorf("init azblob client: %w", err)
	}

	return &BlobStore{
		client:    client,
		container: container,
		prefix:    cfg.Prefix,
	}, nil
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.DownloadStream(ctx, s.container, joinPrefix(s.prefix, k), nil)
	if err != nil {
		return nil, translateBlobError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", k, err)
	}
	return data, nil
}

func (s *BlobStore) Exists(ctx context.Context, key string) (bool, error) {
	k, err := CleanKey(key)
	if err != nil {
		return false, err
	}
	blob := s.client.ServiceClient().NewContainerClient(s.container).NewBlobClient(joinPrefix(s.prefix, k))
	if _, err := blob.GetProperties(ctx, nil); err != nil {
		if err := translateBlobError(err); !errors.Is(err, ErrNotFound) {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func translateBlobError(err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound, bloberror.ResourceNotFound) {
		return ErrNotFound
	}
	return err
}
