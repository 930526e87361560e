package filetransfer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/filestore"
)

var (
	// ErrSizeMismatch marks an assembly whose written bytes differ from the
	// declared file size.
	ErrSizeMismatch = errors.New("file size mismatch")

	// ErrChecksumMismatch marks an assembly whose SHA-256 differs from the
	// producer's checksum.
	ErrChecksumMismatch = errors.New("file checksum mismatch")
)

type assemblyKey struct {
	name     string
	sequence int64
}

type assembly struct {
	file    *os.File
	path    string
	hash    hash.Hash
	written uint64
}

// Assembler turns chunk frame sequences back into files. One assembler
// serves one stream; it owns every temp file it opens until the file is
// published or the assembly fails.
type Assembler struct {
	tempDir     string
	destination string
	storage     filestore.ReceivedFileStorage
	logger      log.Logger

	open map[assemblyKey]*assembly
}

func NewAssembler(tempDir, destination string, storage filestore.ReceivedFileStorage, logger log.Logger) *Assembler {
	return &Assembler{
		tempDir:     tempDir,
		destination: destination,
		storage:     storage,
		logger:      logger,
		open:        map[assemblyKey]*assembly{},
	}
}

// Accept processes one frame. done is true once a file was verified and
// published; stored then carries where it went. Warning control frames are
// logged and reported done so the caller can move past the skipped request.
func (a *Assembler) Accept(ctx context.Context, frame *federationpb.FileChunkFrame) (stored filestore.Stored, done bool, err error) {
	if frame == nil {
		return filestore.Stored{}, false, errors.New("nil file chunk frame")
	}

	if frame.Warning != nil {
		level.Warn(a.logger).Log("msg", "producer skipped file transfer",
			"reason", frame.Warning.Reason, "details", frame.Warning.Details,
			"sequence_id", frame.Warning.SkippedSequenceId)
		return filestore.Stored{}, true, nil
	}

	name := filestore.Sanitize(frame.FileName)
	if name == "" {
		return filestore.Stored{}, false, fmt.Errorf("unusable file name %q", frame.FileName)
	}
	key := assemblyKey{name: name, sequence: frame.FileSequenceId}

	asm, ok := a.open[key]
	if !ok {
		asm, err = a.begin(name, frame.FileSequenceId)
		if err != nil {
			return filestore.Stored{}, false, err
		}
		a.open[key] = asm
	}

	if !frame.IsLastChunk {
		if _, err := asm.file.Write(frame.ChunkData); err != nil {
			a.abort(key)
			return filestore.Stored{}, false, errors.Wrapf(err, "writing chunk for %s", name)
		}
		asm.hash.Write(frame.ChunkData)
		asm.written += uint64(len(frame.ChunkData))
		return filestore.Stored{}, false, nil
	}

	// commit marker
	if err := asm.file.Close(); err != nil {
		a.abort(key)
		return filestore.Stored{}, false, errors.Wrapf(err, "closing assembly of %s", name)
	}

	if asm.written != frame.FileSize {
		a.abort(key)
		return filestore.Stored{}, false, errors.Wrapf(ErrSizeMismatch, "%s: wrote %d bytes, expected %d", name, asm.written, frame.FileSize)
	}

	if frame.FileChecksum != "" {
		sum := hex.EncodeToString(asm.hash.Sum(nil))
		if !strings.EqualFold(sum, frame.FileChecksum) {
			a.abort(key)
			return filestore.Stored{}, false, errors.Wrapf(ErrChecksumMismatch, "%s: computed %s, expected %s", name, sum, frame.FileChecksum)
		}
	}

	delete(a.open, key)
	stored, err = a.storage.Store(ctx, asm.path, name, a.destination)
	if err != nil {
		return filestore.Stored{}, false, errors.Wrapf(err, "publishing %s", name)
	}
	return stored, true, nil
}

// Close deletes any temp file still open, the cancellation path.
func (a *Assembler) Close() {
	for key := range a.open {
		a.abort(key)
	}
}

func (a *Assembler) begin(name string, sequence int64) (*assembly, error) {
	dir := filepath.Join(a.tempDir, ".parts")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating parts directory")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%d.part", name, sequence))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "creating temp file for %s", name)
	}

	return &assembly{file: f, path: path, hash: sha256.New()}, nil
}

func (a *Assembler) abort(key assemblyKey) {
	asm, ok := a.open[key]
	if !ok {
		return
	}
	delete(a.open, key)
	_ = asm.file.Close()
	filestore.DeleteTempQuietly(asm.path)
}
