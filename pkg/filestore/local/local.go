package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/grafana/federator/pkg/filestore"
)

// Provider serves source files from the local filesystem. Relative request
// paths resolve under the configured base path.
type Provider struct {
	cfg Config
}

func NewProvider(cfg Config) (*Provider, error) {
	return &Provider{cfg: cfg}, nil
}

func (p *Provider) resolve(req filestore.Request) string {
	if filepath.IsAbs(req.Path) {
		return req.Path
	}
	return filepath.Join(p.cfg.Path, req.Path)
}

func (p *Provider) Get(_ context.Context, req filestore.Request) (io.ReadCloser, int64, error) {
	path := p.resolve(req)

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "stat %s: %v", path, err)
	}
	if info.IsDir() {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "%s is not a file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrapf(filestore.ErrFileFetch, "open %s: %v", path, err)
	}
	return f, info.Size(), nil
}

func (p *Provider) ValidatePath(_ context.Context, req filestore.Request) error {
	path := p.resolve(req)

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(filestore.ErrFileFetch, "stat %s: %v", path, err)
	}
	if info.IsDir() {
		return errors.Wrapf(filestore.ErrFileFetch, "%s is not a file", path)
	}
	return nil
}

// Storage publishes received files onto the local filesystem with an atomic
// rename out of the assembler's temp directory.
type Storage struct {
	cfg Config
}

func NewStorage(cfg Config) (*Storage, error) {
	return &Storage{cfg: cfg}, nil
}

func (s *Storage) targetPath(originalName, destination string) (string, error) {
	name := filestore.Sanitize(originalName)

	var target string
	switch {
	case strings.TrimSpace(destination) == "":
		if name == "" {
			return "", fmt.Errorf("no destination and no usable file name")
		}
		target = filepath.Join(s.cfg.Path, name)
	case strings.HasSuffix(destination, "/"):
		if name == "" {
			return "", fmt.Errorf("destination %q needs a usable file name", destination)
		}
		target = filepath.Join(destination, name)
	default:
		target = destination
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(s.cfg.Path, target)
	}
	return target, nil
}

func (s *Storage) Store(_ context.Context, tempPath, originalName, destination string) (filestore.Stored, error) {
	target, err := s.targetPath(originalName, destination)
	if err != nil {
		filestore.DeleteTempQuietly(tempPath)
		return filestore.Stored{}, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
		filestore.DeleteTempQuietly(tempPath)
		return filestore.Stored{}, errors.Wrap(err, "creating destination directory")
	}

	if err := os.Rename(tempPath, target); err != nil {
		// cross-device targets cannot be renamed; fall back to copy+delete
		if copyErr := copyFile(tempPath, target); copyErr != nil {
			filestore.DeleteTempQuietly(tempPath)
			return filestore.Stored{}, errors.Wrap(copyErr, "publishing received file")
		}
		filestore.DeleteTempQuietly(tempPath)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	return filestore.Stored{LocalPath: abs}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
