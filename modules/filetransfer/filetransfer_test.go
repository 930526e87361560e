package filetransfer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/filestore"
	"github.com/grafana/federator/pkg/filestore/local"
)

type captureChunks struct {
	frames []*federationpb.FileChunkFrame
}

func (c *captureChunks) Send(f *federationpb.FileChunkFrame) error {
	c.frames = append(c.frames, f)
	return nil
}

type fakeProvider struct {
	data map[string][]byte
}

func (p *fakeProvider) Get(_ context.Context, req filestore.Request) (io.ReadCloser, int64, error) {
	data, ok := p.data[req.Path]
	if !ok {
		return nil, 0, filestore.ErrFileFetch
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (p *fakeProvider) ValidatePath(_ context.Context, req filestore.Request) error {
	if _, ok := p.data[req.Path]; !ok {
		return filestore.ErrFileFetch
	}
	return nil
}

func newAssembler(t *testing.T) (*Assembler, string) {
	t.Helper()
	base := t.TempDir()
	dest := filepath.Join(base, "received")

	storage, err := local.NewStorage(local.Config{Path: dest})
	require.NoError(t, err)

	return NewAssembler(base, dest+"/", storage, log.NewNopLogger()), dest
}

func transfer(t *testing.T, chunker *Chunker, asm *Assembler, path string, seq int64) (filestore.Stored, error) {
	t.Helper()
	sink := &captureChunks{}
	require.NoError(t, chunker.Produce(context.Background(), filestore.Request{Path: path}, seq, sink))

	var stored filestore.Stored
	for _, frame := range sink.frames {
		s, done, err := asm.Accept(context.Background(), frame)
		if err != nil {
			return filestore.Stored{}, err
		}
		if done {
			stored = s
		}
	}
	return stored, nil
}

func TestSmallFileRoundTrip(t *testing.T) {
	provider := &fakeProvider{data: map[string][]byte{"exports/hello.txt": []byte("Hello ")}}
	chunker := NewChunker(provider, DefaultChunkSize, log.NewNopLogger())

	sink := &captureChunks{}
	require.NoError(t, chunker.Produce(context.Background(), filestore.Request{Path: "exports/hello.txt"}, 7, sink))

	// one data chunk plus the payload free commit marker
	require.Len(t, sink.frames, 2)
	data, last := sink.frames[0], sink.frames[1]

	require.Equal(t, "hello.txt", data.FileName)
	require.Equal(t, int64(7), data.FileSequenceId)
	require.Equal(t, []byte("Hello "), data.ChunkData)
	require.Equal(t, uint32(1), data.TotalChunks)
	require.False(t, data.IsLastChunk)

	require.True(t, last.IsLastChunk)
	require.Empty(t, last.ChunkData)
	sum := sha256.Sum256([]byte("Hello "))
	require.Equal(t, hex.EncodeToString(sum[:]), last.FileChecksum)

	asm, dest := newAssembler(t)
	stored, err := transfer(t, chunker, asm, "exports/hello.txt", 7)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dest, "hello.txt"), stored.LocalPath)

	got, err := os.ReadFile(stored.LocalPath)
	require.NoError(t, err)
	require.Equal(t, "Hello ", string(got))
}

func TestMultiChunkRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 1000)
	provider := &fakeProvider{data: map[string][]byte{"big.bin": payload}}
	chunker := NewChunker(provider, 1024, log.NewNopLogger())

	asm, dest := newAssembler(t)
	stored, err := transfer(t, chunker, asm, "big.bin", 1)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "big.bin"))
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.Equal(t, filepath.Join(dest, "big.bin"), stored.LocalPath)
}

func TestEmptyFile(t *testing.T) {
	provider := &fakeProvider{data: map[string][]byte{"empty.dat": {}}}
	chunker := NewChunker(provider, DefaultChunkSize, log.NewNopLogger())

	sink := &captureChunks{}
	require.NoError(t, chunker.Produce(context.Background(), filestore.Request{Path: "empty.dat"}, 3, sink))

	require.Len(t, sink.frames, 1)
	require.True(t, sink.frames[0].IsLastChunk)
	require.Equal(t, uint64(0), sink.frames[0].FileSize)
	sum := sha256.Sum256(nil)
	require.Equal(t, hex.EncodeToString(sum[:]), sink.frames[0].FileChecksum)

	asm, dest := newAssembler(t)
	stored, err := transfer(t, chunker, asm, "empty.dat", 3)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, "empty.dat"))
	require.NoError(t, err)
	require.Zero(t, info.Size())
	require.Equal(t, filepath.Join(dest, "empty.dat"), stored.LocalPath)
}

func TestChecksumMismatchDeletesTemp(t *testing.T) {
	asm, dest := newAssembler(t)

	_, done, err := asm.Accept(context.Background(), &federationpb.FileChunkFrame{
		FileName:       "report.csv",
		FileSequenceId: 1,
		ChunkData:      []byte("hello"),
	})
	require.NoError(t, err)
	require.False(t, done)

	_, _, err = asm.Accept(context.Background(), &federationpb.FileChunkFrame{
		FileName:       "report.csv",
		FileSequenceId: 1,
		IsLastChunk:    true,
		FileSize:       5,
		FileChecksum:   "deadbeef",
	})
	require.ErrorIs(t, err, ErrChecksumMismatch)

	requireNoParts(t, filepath.Dir(dest))
	_, err = os.Stat(filepath.Join(dest, "report.csv"))
	require.True(t, os.IsNotExist(err))
}

func TestCorruptedChunkFailsAssembly(t *testing.T) {
	payload := []byte("original content")
	provider := &fakeProvider{data: map[string][]byte{"f.bin": payload}}
	chunker := NewChunker(provider, 4, log.NewNopLogger())

	sink := &captureChunks{}
	require.NoError(t, chunker.Produce(context.Background(), filestore.Request{Path: "f.bin"}, 1, sink))
	require.Greater(t, len(sink.frames), 2)

	// flip one byte in the middle of the sequence
	sink.frames[1].ChunkData[0] ^= 0xff

	asm, dest := newAssembler(t)
	var failed error
	for _, frame := range sink.frames {
		if _, _, err := asm.Accept(context.Background(), frame); err != nil {
			failed = err
			break
		}
	}
	require.ErrorIs(t, failed, ErrChecksumMismatch)
	requireNoParts(t, filepath.Dir(dest))
}

func TestSizeMismatchDeletesTemp(t *testing.T) {
	asm, dest := newAssembler(t)

	_, _, err := asm.Accept(context.Background(), &federationpb.FileChunkFrame{
		FileName:       "short.bin",
		FileSequenceId: 2,
		ChunkData:      []byte("abc"),
	})
	require.NoError(t, err)

	_, _, err = asm.Accept(context.Background(), &federationpb.FileChunkFrame{
		FileName:       "short.bin",
		FileSequenceId: 2,
		IsLastChunk:    true,
		FileSize:       10,
	})
	require.ErrorIs(t, err, ErrSizeMismatch)
	requireNoParts(t, filepath.Dir(dest))
}

func TestProviderFailureEmitsWarning(t *testing.T) {
	provider := &fakeProvider{data: map[string][]byte{}}
	chunker := NewChunker(provider, DefaultChunkSize, log.NewNopLogger())

	sink := &captureChunks{}
	require.NoError(t, chunker.Produce(context.Background(), filestore.Request{Path: "missing.csv"}, 42, sink))

	require.Len(t, sink.frames, 1)
	warning := sink.frames[0].Warning
	require.NotNil(t, warning)
	require.Equal(t, int64(42), warning.SkippedSequenceId)

	// the control frame moves the consumer past the request
	asm, _ := newAssembler(t)
	_, done, err := asm.Accept(context.Background(), sink.frames[0])
	require.NoError(t, err)
	require.True(t, done)
}

func TestCloseDeletesOpenTempFiles(t *testing.T) {
	asm, dest := newAssembler(t)

	_, _, err := asm.Accept(context.Background(), &federationpb.FileChunkFrame{
		FileName:       "partial.bin",
		FileSequenceId: 9,
		ChunkData:      []byte("some data"),
	})
	require.NoError(t, err)

	base := filepath.Dir(dest)
	parts, err := filepath.Glob(filepath.Join(base, ".parts", "*.part"))
	require.NoError(t, err)
	require.Len(t, parts, 1)

	asm.Close()
	requireNoParts(t, base)
}

func TestSanitisedNameCannotEscapeTempDir(t *testing.T) {
	asm, _ := newAssembler(t)

	_, _, err := asm.Accept(context.Background(), &federationpb.FileChunkFrame{
		FileName:       "../../etc/passwd",
		FileSequenceId: 1,
		ChunkData:      []byte("x"),
	})
	require.NoError(t, err)
	asm.Close()
}

func requireNoParts(t *testing.T, base string) {
	t.Helper()
	parts, err := filepath.Glob(filepath.Join(base, ".parts", "*.part"))
	require.NoError(t, err)
	require.Empty(t, parts)
}
