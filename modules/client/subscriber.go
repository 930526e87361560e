// Package client is the consumer side: recurring subscription jobs that
// stream events and files from remote producers, republish them locally and
// track progress in the offset KV.
package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kgo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/grafana/federator/modules/filetransfer"
	"github.com/grafana/federator/modules/scheduler"
	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/filestore"
	_ "github.com/grafana/federator/pkg/gogocodec" // wire codec
	"github.com/grafana/federator/pkg/kv"
)

var (
	metricEventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "client_events_received_total",
		Help:      "Event frames received and republished per topic.",
	}, []string{"topic"})
	metricFilesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "client_files_received_total",
		Help:      "Files fully assembled and published.",
	})
)

// TokenSource supplies bearer tokens for producer streams.
type TokenSource interface {
	FetchToken(ctx context.Context, managementNodeID string) (string, error)
}

// Subscriber builds the workers behind subscription jobs.
type Subscriber struct {
	cfg    Config
	tokens TokenSource
	store  *kv.Store
	writer *kgo.Client
	files  filestore.ReceivedFileStorage
	logger log.Logger
}

func New(cfg Config, tokens TokenSource, store *kv.Store, writer *kgo.Client, files filestore.ReceivedFileStorage, logger log.Logger) *Subscriber {
	return &Subscriber{
		cfg:    cfg,
		tokens: tokens,
		store:  store,
		writer: writer,
		files:  files,
		logger: logger,
	}
}

// JobRequests maps the producer config snapshot to one recurring job per
// subscription this consumer is entitled to.
func (s *Subscriber) JobRequests(cfg fedconfig.ProducerConfig) []scheduler.JobRequest {
	store := fedconfig.NewStore()
	store.Replace(cfg)

	var requests []scheduler.JobRequest
	for _, sub := range store.SubscriptionsFor(s.cfg.ClientID) {
		jobName := "stream-events"
		worker := s.EventWorker(sub.Producer, sub.Product)
		if sub.Product.Type == fedconfig.ProductTypeFiles {
			jobName = "stream-files"
			worker = s.FileWorker(sub.Producer, sub.Product)
		}

		requests = append(requests, scheduler.JobRequest{
			Params: scheduler.JobParams{
				JobID:            scheduler.JobID(jobName, sub.Product.Topic),
				JobName:          jobName,
				Topic:            sub.Product.Topic,
				Endpoint:         fmt.Sprintf("%s:%d", sub.Producer.Host, sub.Producer.Port),
				Interval:         s.cfg.PollInterval,
				Retries:          s.cfg.Retries,
				ImmediateTrigger: true,
			},
			Worker: worker,
		})
	}
	return requests
}

// EventWorker returns a job worker that drains one event stream and
// republishes every frame locally. The offset only advances after the local
// publish succeeded.
func (s *Subscriber) EventWorker(producer fedconfig.Producer, product fedconfig.Product) scheduler.Worker {
	return func(ctx context.Context, params scheduler.JobParams) error {
		logger := log.With(s.logger, "producer", producer.Name, "topic", product.Topic)

		stream, closeConn, err := s.openEventStream(ctx, producer, product, params.NodeID)
		if err != nil {
			return classify(err)
		}
		defer closeConn()

		for {
			frame, err := stream.Recv()
			if err == io.EOF {
				// producer completed the stream on inactivity
				return nil
			}
			if err != nil {
				return classify(err)
			}

			if err := s.republish(ctx, frame); err != nil {
				return errors.Wrap(err, "republishing event")
			}
			if err := s.store.SetOffset(ctx, s.cfg.ClientID, product.Topic, frame.Offset+1); err != nil {
				return err
			}
			metricEventsReceived.WithLabelValues(product.Topic).Inc()
			level.Debug(logger).Log("msg", "event republished", "offset", frame.Offset)
		}
	}
}

// FileWorker returns a job worker that drains one file stream through the
// assembler. Storage failures do not advance the offset.
func (s *Subscriber) FileWorker(producer fedconfig.Producer, product fedconfig.Product) scheduler.Worker {
	return func(ctx context.Context, params scheduler.JobParams) error {
		logger := log.With(s.logger, "producer", producer.Name, "topic", product.Topic)

		asm := filetransfer.NewAssembler(s.cfg.TempDir, s.cfg.FilesDestination, s.files, logger)
		defer asm.Close()

		stream, closeConn, err := s.openFileStream(ctx, producer, product, params.NodeID)
		if err != nil {
			return classify(err)
		}
		defer closeConn()

		for {
			frame, err := stream.Recv()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return classify(err)
			}

			stored, done, err := asm.Accept(ctx, frame)
			if err != nil {
				if errors.Is(err, filetransfer.ErrSizeMismatch) || errors.Is(err, filetransfer.ErrChecksumMismatch) {
					return scheduler.Permanent(err)
				}
				return err
			}
			if !done {
				continue
			}

			sequence := frame.FileSequenceId
			if frame.Warning != nil {
				sequence = frame.Warning.SkippedSequenceId
			} else {
				metricFilesReceived.Inc()
				level.Info(logger).Log("msg", "file received", "file", frame.FileName,
					"local_path", stored.LocalPath, "remote_uri", stored.RemoteURI)
			}
			if err := s.store.SetOffset(ctx, s.cfg.ClientID, product.Topic, sequence+1); err != nil {
				return err
			}
		}
	}
}

func (s *Subscriber) openEventStream(ctx context.Context, producer fedconfig.Producer, product fedconfig.Product, nodeID string) (federationpb.Federation_StreamEventsClient, func(), error) {
	conn, req, err := s.connect(ctx, producer, product, nodeID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := federationpb.NewFederationClient(conn).StreamEvents(ctx, req)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return stream, func() { _ = conn.Close() }, nil
}

func (s *Subscriber) openFileStream(ctx context.Context, producer fedconfig.Producer, product fedconfig.Product, nodeID string) (federationpb.Federation_StreamFilesClient, func(), error) {
	conn, req, err := s.connect(ctx, producer, product, nodeID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := federationpb.NewFederationClient(conn).StreamFiles(ctx, req)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return stream, func() { _ = conn.Close() }, nil
}

// connect dials the producer and builds the topic request from the persisted
// offset. The bearer token rides on the outgoing context.
func (s *Subscriber) connect(ctx context.Context, producer fedconfig.Producer, product fedconfig.Product, nodeID string) (*grpc.ClientConn, *federationpb.TopicRequest, error) {
	token, err := s.tokens.FetchToken(ctx, nodeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetching bearer token")
	}

	creds := insecure.NewCredentials()
	if producer.TLS {
		creds = credentials.NewTLS(&tls.Config{InsecureSkipVerify: s.cfg.TLSInsecureSkipVerify})
	}

	conn, err := grpc.NewClient(fmt.Sprintf("%s:%d", producer.Host, producer.Port),
		grpc.WithTransportCredentials(creds),
		grpc.WithUnaryInterceptor(bearerUnaryInterceptor(token)),
		grpc.WithStreamInterceptor(bearerStreamInterceptor(token)),
	)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dialing producer %s", producer.Name)
	}

	offset, ok := s.store.GetOffset(ctx, s.cfg.ClientID, product.Topic)
	if !ok {
		offset = 0
	}

	return conn, &federationpb.TopicRequest{
		ClientId: s.cfg.ClientID,
		Topic:    product.Topic,
		Offset:   offset,
	}, nil
}

func (s *Subscriber) republish(ctx context.Context, frame *federationpb.EventFrame) error {
	rec := &kgo.Record{
		Topic: frame.Topic,
		Key:   frame.Key,
		Value: frame.Value,
	}
	for _, h := range frame.SharedHeaders {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: h.Name, Value: h.Value})
	}
	return s.writer.ProduceSync(ctx, rec).FirstErr()
}

// classify splits stream errors into the retry budget or terminal job
// failure.
func classify(err error) error {
	if err == nil || Retryable(err) {
		return err
	}
	return scheduler.Permanent(err)
}

func bearerUnaryInterceptor(token string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(withBearer(ctx, token), method, req, reply, cc, opts...)
	}
}

func bearerStreamInterceptor(token string) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(withBearer(ctx, token), desc, cc, method, opts...)
	}
}

func withBearer(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
