// Package filetransfer moves whole files across the federation boundary as
// chunked frames: a producer-side chunker and a consumer-side assembler.
package filetransfer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/filestore"
)

// DefaultChunkSize splits files into 1 MiB frames.
const DefaultChunkSize = 1 << 20

var (
	metricChunksSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "filetransfer_chunks_sent_total",
		Help:      "File chunk frames emitted by the producer side.",
	})
	metricTransferWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "filetransfer_warnings_total",
		Help:      "Transfer requests skipped with a warning control frame.",
	})
)

// ChunkSink is the outbound half of a file stream.
type ChunkSink interface {
	Send(*federationpb.FileChunkFrame) error
}

// Chunker turns file transfer requests into chunk frame sequences.
type Chunker struct {
	provider  filestore.FileProvider
	chunkSize int
	logger    log.Logger
}

func NewChunker(provider filestore.FileProvider, chunkSize int, logger log.Logger) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{provider: provider, chunkSize: chunkSize, logger: logger}
}

// Produce streams one file. A provider failure emits a single warning
// control frame carrying the skipped sequence id and returns nil so the
// session continues; a sink failure fails the stream.
func (c *Chunker) Produce(ctx context.Context, req filestore.Request, sequenceID int64, sink ChunkSink) error {
	rc, size, err := c.provider.Get(ctx, req)
	if err != nil {
		metricTransferWarnings.Inc()
		level.Warn(c.logger).Log("msg", "skipping file transfer", "path", req.Path, "sequence_id", sequenceID, "err", err)
		return sink.Send(&federationpb.FileChunkFrame{
			Warning: &federationpb.TransferWarning{
				Reason:            "file fetch failed",
				Details:           err.Error(),
				SkippedSequenceId: sequenceID,
			},
		})
	}
	defer rc.Close()

	fileName := filestore.Sanitize(path.Base(req.Path))
	totalChunks := uint32((size + int64(c.chunkSize) - 1) / int64(c.chunkSize))

	hash := sha256.New()
	buf := make([]byte, c.chunkSize)

	var index uint32
	for {
		n, readErr := io.ReadFull(rc, buf)
		if n > 0 {
			hash.Write(buf[:n])
			frame := &federationpb.FileChunkFrame{
				FileName:       fileName,
				FileSequenceId: sequenceID,
				ChunkIndex:     index,
				TotalChunks:    totalChunks,
				FileSize:       uint64(size),
				ChunkData:      append([]byte(nil), buf[:n]...),
			}
			if err := sink.Send(frame); err != nil {
				return err
			}
			metricChunksSent.Inc()
			index++
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	// commit marker: payload free, carries the checksum
	last := &federationpb.FileChunkFrame{
		FileName:       fileName,
		FileSequenceId: sequenceID,
		ChunkIndex:     index,
		TotalChunks:    totalChunks,
		IsLastChunk:    true,
		FileSize:       uint64(size),
		FileChecksum:   hex.EncodeToString(hash.Sum(nil)),
	}
	if err := sink.Send(last); err != nil {
		return err
	}
	metricChunksSent.Inc()
	return nil
}
