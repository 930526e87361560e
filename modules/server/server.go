// Package server is the producer side gRPC surface: authenticated streaming
// of events and chunked files to remote consumers.
package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gogo/status"
	"github.com/grafana/dskit/services"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"

	"github.com/grafana/federator/modules/conductor"
	"github.com/grafana/federator/modules/filetransfer"
	"github.com/grafana/federator/modules/server/sender"
	"github.com/grafana/federator/pkg/auth"
	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/filestore"
	_ "github.com/grafana/federator/pkg/gogocodec" // wire codec
	"github.com/grafana/federator/pkg/ingest"
)

// record headers on file transfer request topics
const (
	headerSourceType       = "source_type"
	headerStorageContainer = "storage_container"
)

// FederationServer serves the Federation service as a dskit service.
type FederationServer struct {
	services.Service

	cfg          Config
	conductorCfg conductor.Config
	kafkaCfg     ingest.KafkaConfig

	store        *fedconfig.Store
	provider     filestore.FileProvider
	kafkaMetrics *kprom.Metrics
	logger       log.Logger

	grpcServer *grpc.Server
	listener   net.Listener
}

func New(cfg Config, conductorCfg conductor.Config, kafkaCfg ingest.KafkaConfig, store *fedconfig.Store, verifier auth.TokenVerifier, audience string, provider filestore.FileProvider, logger log.Logger) (*FederationServer, error) {
	opts := []grpc.ServerOption{
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepAliveTime,
			Timeout: cfg.KeepAliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             cfg.KeepAliveTime / 2,
			PermitWithoutStream: true,
		}),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
			AuthStreamInterceptor(verifier, audience, store, logger),
		)),
	}

	if cfg.MTLSEnabled {
		creds, err := mtlsCredentials(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	s := &FederationServer{
		cfg:          cfg,
		conductorCfg: conductorCfg,
		kafkaCfg:     kafkaCfg,
		store:        store,
		provider:     provider,
		kafkaMetrics: ingest.NewClientMetrics("server", prometheus.DefaultRegisterer),
		logger:       logger,
		grpcServer:   grpc.NewServer(opts...),
	}
	federationpb.RegisterFederationServer(s.grpcServer, s)
	s.Service = services.NewBasicService(s.starting, s.running, s.stopping)
	return s, nil
}

func (s *FederationServer) starting(_ context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return errors.Wrap(err, "listening for federation streams")
	}
	s.listener = listener

	go func() {
		if err := s.grpcServer.Serve(listener); err != nil {
			level.Error(s.logger).Log("msg", "grpc server stopped", "err", err)
		}
	}()

	level.Info(s.logger).Log("msg", "federation server listening", "port", s.cfg.Port, "mtls", s.cfg.MTLSEnabled)
	return nil
}

func (s *FederationServer) running(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *FederationServer) stopping(_ error) error {
	s.grpcServer.GracefulStop()
	return nil
}

// StreamEvents drives one conductor over the flow-controlled sender until
// the consumer goes idle or the call unwinds.
func (s *FederationServer) StreamEvents(req *federationpb.TopicRequest, stream federationpb.Federation_StreamEventsServer) error {
	ctx := stream.Context()

	clientID, attrs, err := s.authorize(ctx, req)
	if err != nil {
		return err
	}

	client, err := s.newPinnedReader(req.Topic, req.Offset)
	if err != nil {
		return err
	}

	if err := s.checkTopic(ctx, client, req.Topic); err != nil {
		client.Close()
		return err
	}

	snd := sender.New[*federationpb.EventFrame](stream, s.cfg.StallDeadline)
	stop := watchCancellation(ctx, snd.Cancel)
	defer stop()

	cond, err := conductor.New(s.conductorCfg, client, conductor.Request{
		Topic:    req.Topic,
		Offset:   req.Offset,
		ClientID: clientID,
	}, attrs, s.logger)
	if err != nil {
		client.Close()
		return err
	}

	if err := cond.Run(ctx, snd); err != nil {
		return err
	}
	return snd.Terminal()
}

// StreamFiles consumes transfer request records from the topic and streams
// each requested file as chunk frames.
func (s *FederationServer) StreamFiles(req *federationpb.TopicRequest, stream federationpb.Federation_StreamFilesServer) error {
	ctx := stream.Context()

	clientID, _, err := s.authorize(ctx, req)
	if err != nil {
		return err
	}
	logger := log.With(s.logger, "topic", req.Topic, "client_id", clientID)

	client, err := s.newPinnedReader(req.Topic, req.Offset)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := s.checkTopic(ctx, client, req.Topic); err != nil {
		return err
	}

	snd := sender.New[*federationpb.FileChunkFrame](stream, s.cfg.StallDeadline)
	stop := watchCancellation(ctx, snd.Cancel)
	defer stop()

	chunker := filetransfer.NewChunker(s.provider, s.cfg.ChunkSize, logger)

	var idle time.Duration
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		pollCtx, cancel := context.WithTimeout(ctx, s.conductorCfg.PollTimeout)
		fetches := client.PollFetches(pollCtx)
		cancel()

		if err := pollError(fetches); err != nil {
			if ctx.Err() != nil {
				continue
			}
			snd.Error(err)
			return errors.Wrap(err, "polling file transfer requests")
		}

		records := fetches.Records()
		if len(records) == 0 {
			idle += s.conductorCfg.PollTimeout
			if idle >= s.conductorCfg.InactivityTimeout {
				snd.Complete()
				return snd.Terminal()
			}
			continue
		}
		idle = 0

		for _, rec := range records {
			if err := chunker.Produce(ctx, transferRequest(rec), rec.Offset, snd); err != nil {
				return err
			}
		}
	}
}

// authorize resolves the caller's entitlement to the requested topic.
func (s *FederationServer) authorize(ctx context.Context, req *federationpb.TopicRequest) (string, []fedconfig.Attribute, error) {
	clientID, ok := ClientIDFromContext(ctx)
	if !ok {
		return "", nil, errors.New("no authenticated client on stream context")
	}
	if req.ClientId != "" && clientID != req.ClientId {
		level.Warn(s.logger).Log("msg", "request client id differs from token", "token", clientID, "request", req.ClientId)
	}

	attrs, entitled := s.store.ConsumerAttributes(req.Topic, clientID)
	if !entitled {
		return "", nil, permissionDenied(clientID, req.Topic)
	}
	return clientID, attrs, nil
}

func (s *FederationServer) newPinnedReader(topic string, offset int64) (*kgo.Client, error) {
	return ingest.NewReaderClient(s.kafkaCfg, s.kafkaMetrics, s.logger,
		kgo.ConsumePartitions(ingest.ConsumeOffsets(topic, 0, offset)))
}

// checkTopic fails the stream fast when the requested topic does not exist,
// instead of idling until the inactivity timeout.
func (s *FederationServer) checkTopic(ctx context.Context, client *kgo.Client, topic string) error {
	ok, err := ingest.TopicExists(ctx, client, topic)
	if err != nil {
		return status.Errorf(codes.Internal, "validating topic %s: %v", topic, err)
	}
	if !ok {
		return status.Errorf(codes.NotFound, "topic %s does not exist", topic)
	}
	return nil
}

func transferRequest(rec *kgo.Record) filestore.Request {
	req := filestore.Request{Path: string(rec.Value)}
	for _, h := range rec.Headers {
		switch h.Key {
		case headerSourceType:
			req.SourceType = string(h.Value)
		case headerStorageContainer:
			req.StorageContainer = string(h.Value)
		}
	}
	return req
}

func permissionDenied(clientID, topic string) error {
	return status.Errorf(codes.PermissionDenied, "client %s is not entitled to topic %s", clientID, topic)
}

// pollError surfaces real fetch errors, an expired poll deadline is just an
// empty poll.
func pollError(fetches kgo.Fetches) error {
	for _, err := range fetches.Errors() {
		if err.Err == context.DeadlineExceeded || err.Err == context.Canceled {
			continue
		}
		return err.Err
	}
	return nil
}

func watchCancellation(ctx context.Context, cancel func()) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}

func mtlsCredentials(cfg Config) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertChainFile, cfg.PrivateKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading server certificate")
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
	}
	if cfg.ClientCAFile != "" {
		pem, err := os.ReadFile(cfg.ClientCAFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading client CA bundle")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.New("no certificates parsed from client CA bundle")
		}
		tlsCfg.ClientCAs = pool
	}
	return credentials.NewTLS(tlsCfg), nil
}
