package client

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kit/log"
	"github.com/grafana/dskit/flagext"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grafana/federator/modules/scheduler"
	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/filestore"
	"github.com/grafana/federator/pkg/filestore/local"
	"github.com/grafana/federator/pkg/ingest"
	"github.com/grafana/federator/pkg/ingest/testkafka"
	"github.com/grafana/federator/pkg/kv"
)

type staticTokens struct{}

func (staticTokens) FetchToken(context.Context, string) (string, error) { return "tok", nil }

type stubFederation struct {
	federationpb.UnimplementedFederationServer

	mu     sync.Mutex
	gotReq *federationpb.TopicRequest
	events []*federationpb.EventFrame
	files  []*federationpb.FileChunkFrame
	err    error
}

func (s *stubFederation) StreamEvents(req *federationpb.TopicRequest, stream federationpb.Federation_StreamEventsServer) error {
	s.mu.Lock()
	s.gotReq = req
	s.mu.Unlock()

	for _, f := range s.events {
		if err := stream.Send(f); err != nil {
			return err
		}
	}
	return s.err
}

func (s *stubFederation) StreamFiles(req *federationpb.TopicRequest, stream federationpb.Federation_StreamFilesServer) error {
	s.mu.Lock()
	s.gotReq = req
	s.mu.Unlock()

	for _, f := range s.files {
		if err := stream.Send(f); err != nil {
			return err
		}
	}
	return s.err
}

func (s *stubFederation) requestedOffset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gotReq.Offset
}

// startProducer serves the stub on a loopback port and returns a matching
// producer declaration.
func startProducer(t *testing.T, stub *stubFederation) fedconfig.Producer {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	federationpb.RegisterFederationServer(srv, stub)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	_, portStr, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return fedconfig.Producer{Name: "org-a", Host: "127.0.0.1", Port: port}
}

func newKV(t *testing.T) *kv.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	store := kv.NewStore(kv.Config{Endpoint: mr.Addr(), Timeout: time.Second}, log.NewNopLogger())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type failingStorage struct{}

func (failingStorage) Store(context.Context, string, string, string) (filestore.Stored, error) {
	return filestore.Stored{}, status.Error(codes.Unavailable, "object store down")
}

func newSubscriber(t *testing.T, store *kv.Store, writer *kgo.Client, files filestore.ReceivedFileStorage) *Subscriber {
	t.Helper()
	cfg := Config{
		ClientID:         "consumer-1",
		TempDir:          t.TempDir(),
		FilesDestination: "",
		Retries:          1,
	}
	return New(cfg, staticTokens{}, store, writer, files, log.NewNopLogger())
}

func TestRetryableClassification(t *testing.T) {
	retryable := []codes.Code{
		codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted,
		codes.DataLoss, codes.Canceled, codes.Aborted,
		codes.PermissionDenied, codes.Unauthenticated,
	}
	for _, code := range retryable {
		require.True(t, Retryable(status.Error(code, "x")), code.String())
	}

	terminal := []codes.Code{
		codes.InvalidArgument, codes.NotFound, codes.Internal,
		codes.Unimplemented, codes.FailedPrecondition, codes.Unknown,
	}
	for _, code := range terminal {
		require.False(t, Retryable(status.Error(code, "x")), code.String())
	}
}

func TestEventWorkerRepublishesAndAdvancesOffset(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)
	writer, err := ingest.NewWriterClient(
		ingest.KafkaConfig{Brokers: flagext.StringSlice{addr}, ClientID: "test", DialTimeout: 2 * time.Second, WriteTimeout: 5 * time.Second},
		nil, log.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(writer.Close)

	stub := &stubFederation{events: []*federationpb.EventFrame{{
		Topic:  topic,
		Offset: 42,
		Key:    []byte("k"),
		Value:  []byte{0x01, 0x02},
		SharedHeaders: []federationpb.EventHeader{
			{Name: "trace-id", Value: []byte("abc")},
		},
	}}}
	producer := startProducer(t, stub)

	store := newKV(t)
	sub := newSubscriber(t, store, writer, nil)

	worker := sub.EventWorker(producer, fedconfig.Product{Topic: topic, Type: fedconfig.ProductTypeEvents})
	require.NoError(t, worker(context.Background(), scheduler.JobParams{Topic: topic}))

	offset, ok := store.GetOffset(context.Background(), "consumer-1", topic)
	require.True(t, ok)
	require.Equal(t, int64(43), offset)

	// the frame landed on the local topic with its shared headers restored
	reader, err := ingest.NewReaderClient(
		ingest.KafkaConfig{Brokers: flagext.StringSlice{addr}, ClientID: "verify", DialTimeout: 2 * time.Second},
		nil, log.NewNopLogger(),
		kgo.ConsumePartitions(ingest.ConsumeOffsets(topic, 0, 0)))
	require.NoError(t, err)
	t.Cleanup(reader.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fetches := reader.PollFetches(ctx)
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, []byte{0x01, 0x02}, records[0].Value)
	require.Len(t, records[0].Headers, 1)
	require.Equal(t, "trace-id", records[0].Headers[0].Key)
}

func TestEventWorkerResumesFromStoredOffset(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)
	writer, err := ingest.NewWriterClient(
		ingest.KafkaConfig{Brokers: flagext.StringSlice{addr}, ClientID: "test", DialTimeout: 2 * time.Second, WriteTimeout: 5 * time.Second},
		nil, log.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(writer.Close)

	stub := &stubFederation{}
	producer := startProducer(t, stub)

	store := newKV(t)
	require.NoError(t, store.SetOffset(context.Background(), "consumer-1", topic, 5))

	sub := newSubscriber(t, store, writer, nil)
	worker := sub.EventWorker(producer, fedconfig.Product{Topic: topic})
	require.NoError(t, worker(context.Background(), scheduler.JobParams{Topic: topic}))

	require.Equal(t, int64(5), stub.requestedOffset())
}

func fileFrames(name string, seq int64, data []byte, checksum string) []*federationpb.FileChunkFrame {
	return []*federationpb.FileChunkFrame{
		{FileName: name, FileSequenceId: seq, ChunkData: data, FileSize: uint64(len(data)), TotalChunks: 1},
		{FileName: name, FileSequenceId: seq, IsLastChunk: true, FileSize: uint64(len(data)), FileChecksum: checksum},
	}
}

func TestFileWorkerPublishesAndAdvancesOffset(t *testing.T) {
	const topic = "file-requests"

	// sha256("hello")
	const checksum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	stub := &stubFederation{files: fileFrames("report.csv", 7, []byte("hello"), checksum)}
	producer := startProducer(t, stub)

	store := newKV(t)
	dest := t.TempDir()
	storage, err := local.NewStorage(local.Config{Path: dest})
	require.NoError(t, err)

	sub := newSubscriber(t, store, nil, storage)
	worker := sub.FileWorker(producer, fedconfig.Product{Topic: topic, Type: fedconfig.ProductTypeFiles})
	require.NoError(t, worker(context.Background(), scheduler.JobParams{Topic: topic}))

	offset, ok := store.GetOffset(context.Background(), "consumer-1", topic)
	require.True(t, ok)
	require.Equal(t, int64(8), offset)
}

func TestFileWorkerStorageFailureDoesNotAdvanceOffset(t *testing.T) {
	const topic = "file-requests"
	const checksum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	stub := &stubFederation{files: fileFrames("report.csv", 7, []byte("hello"), checksum)}
	producer := startProducer(t, stub)

	store := newKV(t)
	sub := newSubscriber(t, store, nil, failingStorage{})

	worker := sub.FileWorker(producer, fedconfig.Product{Topic: topic, Type: fedconfig.ProductTypeFiles})
	require.Error(t, worker(context.Background(), scheduler.JobParams{Topic: topic}))

	_, ok := store.GetOffset(context.Background(), "consumer-1", topic)
	require.False(t, ok, "no successful publish means no offset advance")
}

func TestTerminalStreamErrorIsPermanent(t *testing.T) {
	const topic = "orders"

	stub := &stubFederation{err: status.Error(codes.Internal, "broken pipeline")}
	producer := startProducer(t, stub)

	store := newKV(t)
	sub := newSubscriber(t, store, nil, nil)

	worker := sub.EventWorker(producer, fedconfig.Product{Topic: topic})
	err := worker(context.Background(), scheduler.JobParams{Topic: topic})
	require.Error(t, err)
	require.Equal(t, codes.Internal, status.Code(err))
}

func TestJobRequestsMapSubscriptions(t *testing.T) {
	store := newKV(t)
	sub := newSubscriber(t, store, nil, nil)

	cfg := fedconfig.ProducerConfig{Producers: []fedconfig.Producer{{
		Name: "org-a", Host: "fed.org-a.example", Port: 9095,
		Products: []fedconfig.Product{
			{Topic: "orders", Type: fedconfig.ProductTypeEvents, Consumers: []fedconfig.Consumer{{IDPClientID: "consumer-1"}}},
			{Topic: "exports", Type: fedconfig.ProductTypeFiles, Consumers: []fedconfig.Consumer{{IDPClientID: "consumer-1"}}},
			{Topic: "private", Type: fedconfig.ProductTypeEvents, Consumers: []fedconfig.Consumer{{IDPClientID: "someone-else"}}},
		},
	}}}

	requests := sub.JobRequests(cfg)
	require.Len(t, requests, 2)

	ids := []string{requests[0].Params.JobID, requests[1].Params.JobID}
	require.ElementsMatch(t, []string{"stream-events:orders", "stream-files:exports"}, ids)
	for _, r := range requests {
		require.Equal(t, "fed.org-a.example:9095", r.Params.Endpoint)
		require.True(t, r.Params.ImmediateTrigger)
		require.NotNil(t, r.Worker)
	}
}
