// Package azure backs the file transfer engine with Azure Blob Storage.
package azure

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/pkg/errors"

	"github.com/grafana/federator/pkg/filestore"
)

func serviceURL(cfg Config) string {
	if strings.HasPrefix(cfg.Endpoint, "http://") || strings.HasPrefix(cfg.Endpoint, "https://") {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.AccountName)
	}
	return fmt.Sprintf("https://%s.%s", cfg.AccountName, cfg.Endpoint)
}

func newClient(cfg Config) (*azblob.Client, error) {
	url := serviceURL(cfg)

	if cfg.AccountKey == "" {
		client, err := azblob.NewClientWithNoCredential(url, nil)
		if err != nil {
			return nil, errors.Wrap(err, "creating azure client")
		}
		return client, nil
	}

	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating azure shared key credential")
	}
	client, err := azblob.NewClientWithSharedKeyCredential(url, cred, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating azure client")
	}
	return client, nil
}

type Provider struct {
	cfg    Config
	client *azblob.Client
}

func NewProvider(cfg Config) (*Provider, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

func (p *Provider) container(req filestore.Request) string {
	if req.StorageContainer != "" {
		return req.StorageContainer
	}
	return p.cfg.ContainerName
}

func (p *Provider) Get(ctx context.Context, req filestore.Request) (io.ReadCloser, int64, error) {
	container := p.container(req)
	key := filestore.NormalizeKey(req.Path)

	resp, err := p.client.DownloadStream(ctx, container, key, nil)
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "download azure://%s/%s: %v", container, key, err)
	}

	var size int64
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}
	return resp.Body, size, nil
}

func (p *Provider) ValidatePath(ctx context.Context, req filestore.Request) error {
	container := p.container(req)
	key := filestore.NormalizeKey(req.Path)

	blobClient := p.client.ServiceClient().NewContainerClient(container).NewBlobClient(key)
	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		return errors.Wrapf(filestore.ErrFileFetch, "stat azure://%s/%s: %v", container, key, err)
	}
	return nil
}

type Storage struct {
	cfg    Config
	client *azblob.Client
}

func NewStorage(cfg Config) (*Storage, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{cfg: cfg, client: client}, nil
}

func (s *Storage) Store(ctx context.Context, tempPath, originalName, destination string) (filestore.Stored, error) {
	defer filestore.DeleteTempQuietly(tempPath)

	key := filestore.ResolveKey(destination, originalName)

	f, err := os.Open(tempPath)
	if err != nil {
		return filestore.Stored{}, errors.Wrap(err, "opening assembled file")
	}
	defer f.Close()

	if _, err := s.client.UploadFile(ctx, s.cfg.ContainerName, key, f, nil); err != nil {
		return filestore.Stored{}, errors.Wrapf(err, "uploading azure://%s/%s", s.cfg.ContainerName, key)
	}

	return filestore.Stored{RemoteURI: fmt.Sprintf("azure://%s/%s", s.cfg.ContainerName, key)}, nil
}
