// Package gcs backs the file transfer engine with Google Cloud Storage.
package gcs

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/grafana/federator/pkg/filestore"
)

func newClient(ctx context.Context, cfg Config) (*storage.Client, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Insecure {
		opts = append(opts,
			option.WithoutAuthentication(),
			option.WithHTTPClient(&http.Client{
				Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
			}))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating gcs client")
	}
	return client, nil
}

type Provider struct {
	cfg    Config
	client *storage.Client
}

func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

func (p *Provider) object(req filestore.Request) *storage.ObjectHandle {
	bucket := p.cfg.BucketName
	if req.StorageContainer != "" {
		bucket = req.StorageContainer
	}
	return p.client.Bucket(bucket).Object(filestore.NormalizeKey(req.Path))
}

func (p *Provider) Get(ctx context.Context, req filestore.Request) (io.ReadCloser, int64, error) {
	obj := p.object(req)

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "stat gs://%s/%s: %v", obj.BucketName(), obj.ObjectName(), err)
	}

	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "read gs://%s/%s: %v", obj.BucketName(), obj.ObjectName(), err)
	}
	return r, attrs.Size, nil
}

func (p *Provider) ValidatePath(ctx context.Context, req filestore.Request) error {
	obj := p.object(req)

	if _, err := obj.Attrs(ctx); err != nil {
		return errors.Wrapf(filestore.ErrFileFetch, "stat gs://%s/%s: %v", obj.BucketName(), obj.ObjectName(), err)
	}
	return nil
}

type Storage struct {
	cfg    Config
	client *storage.Client
}

func NewStorage(ctx context.Context, cfg Config) (*Storage, error) {
	client, err := newClient(ctx, cfg)
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

	w := s.client.Bucket(s.cfg.BucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return filestore.Stored{}, errors.Wrapf(err, "uploading gs://%s/%s", s.cfg.BucketName, key)
	}
	if err := w.Close(); err != nil {
		return filestore.Stored{}, errors.Wrapf(err, "uploading gs://%s/%s", s.cfg.BucketName, key)
	}

	return filestore.Stored{RemoteURI: fmt.Sprintf("gs://%s/%s", s.cfg.BucketName, key)}, nil
}
