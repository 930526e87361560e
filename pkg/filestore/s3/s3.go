// Package s3 backs the file transfer engine with an S3 compatible object
// store through the minio client.
package s3

import (
	"context"
	"fmt"
	"io"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/grafana/federator/pkg/filestore"
)

func newClient(cfg Config) (*minio.Client, error) {
	opts := &minio.Options{
		Region: cfg.Region,
		Secure: !cfg.Insecure,
	}
	if cfg.AccessKey != "" {
		opts.Creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		opts.Creds = credentials.NewIAM("")
	}

	client, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, errors.Wrap(err, "creating s3 client")
	}
	return client, nil
}

type Provider struct {
	cfg    Config
	client *minio.Client
}

func NewProvider(cfg Config) (*Provider, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

func (p *Provider) bucket(req filestore.Request) string {
	if req.StorageContainer != "" {
		return req.StorageContainer
	}
	return p.cfg.Bucket
}

func (p *Provider) Get(ctx context.Context, req filestore.Request) (io.ReadCloser, int64, error) {
	bucket := p.bucket(req)
	key := filestore.NormalizeKey(req.Path)

	stat, err := p.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "stat s3://%s/%s: %v", bucket, key, err)
	}

	obj, err := p.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "get s3://%s/%s: %v", bucket, key, err)
	}
	return obj, stat.Size, nil
}

func (p *Provider) ValidatePath(ctx context.Context, req filestore.Request) error {
	bucket := p.bucket(req)
	key := filestore.NormalizeKey(req.Path)

	if _, err := p.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return errors.Wrapf(filestore.ErrFileFetch, "stat s3://%s/%s: %v", bucket, key, err)
	}
	return nil
}

type Storage struct {
	cfg    Config
	client *minio.Client
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

	if _, err := s.client.FPutObject(ctx, s.cfg.Bucket, key, tempPath, minio.PutObjectOptions{}); err != nil {
		return filestore.Stored{}, errors.Wrapf(err, "uploading s3://%s/%s", s.cfg.Bucket, key)
	}

	return filestore.Stored{RemoteURI: fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)}, nil
}
