// Package app assembles the gateway from its modules and runs them under a
// dskit service manager.
package app

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/grafana/dskit/services"
	"github.com/grafana/dskit/signals"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grafana/federator/modules/client"
	"github.com/grafana/federator/modules/scheduler"
	"github.com/grafana/federator/modules/server"
	"github.com/grafana/federator/modules/storage"
	"github.com/grafana/federator/pkg/auth"
	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/ingest"
	"github.com/grafana/federator/pkg/kv"
	"github.com/grafana/federator/pkg/util/log"
)

type App struct {
	cfg Config

	kvStore     *kv.Store
	tokens      *auth.TokenService
	configStore *fedconfig.Store

	svcs []services.Service
}

func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		configStore: fedconfig.NewStore(),
	}
	a.kvStore = kv.NewStore(cfg.Redis, log.Logger)

	tokens, err := auth.NewTokenService(cfg.IDP, a.kvStore, log.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "building token service")
	}
	a.tokens = tokens

	if err := a.wire(); err != nil {
		return nil, err
	}
	return a, nil
}

// wire builds the per-target services. Server and client halves share the
// KV, token service and config store.
func (a *App) wire() error {
	ctx := context.Background()

	// every kafka client of this process carries a distinct, traceable id
	if a.cfg.Kafka.ClientID == "" {
		a.cfg.Kafka.ClientID = "federator-" + uuid.NewString()
	}
	mgmtClient := fedconfig.NewClient(a.cfg.Mgmt, a.tokens, log.Logger)

	runServer := a.cfg.Target == TargetServer || a.cfg.Target == TargetAll
	runClient := a.cfg.Target == TargetClient || a.cfg.Target == TargetAll

	var onChange func(fedconfig.ProducerConfig)

	if runClient {
		writer, err := ingest.NewWriterClient(a.cfg.Kafka, ingest.NewClientMetrics("client", prometheus.DefaultRegisterer), log.Logger)
		if err != nil {
			return err
		}

		received, err := storage.NewReceivedStorage(ctx, a.cfg.Storage)
		if err != nil {
			return errors.Wrap(err, "building received file storage")
		}

		clientCfg := a.cfg.Client
		if clientCfg.ClientID == "" {
			clientCfg.ClientID = a.cfg.IDP.ClientID
		}
		subscriber := client.New(clientCfg, a.tokens, a.kvStore, writer, received, log.Logger)

		sched := scheduler.New(a.cfg.Scheduler, log.Logger)
		onChange = reconcileOnChange(sched, subscriber, a.cfg.Mgmt.ManagementNodeID)

		a.svcs = append(a.svcs, schedulerService(sched, writer.Close))
	}

	if runServer {
		provider, err := storage.NewProvider(ctx, a.cfg.Storage)
		if err != nil {
			return errors.Wrap(err, "building file provider")
		}

		verifier := auth.NewVerifier(a.cfg.IDP)
		srv, err := server.New(a.cfg.Server, a.cfg.Conductor, a.cfg.Kafka,
			a.configStore, verifier, a.cfg.IDP.ClientID, provider, log.Logger)
		if err != nil {
			return errors.Wrap(err, "building federation server")
		}
		a.svcs = append(a.svcs, srv)
	}

	refresher := fedconfig.NewRefresher(mgmtClient, a.configStore, a.cfg.Mgmt.RefreshInterval, onChange, log.Logger)
	a.svcs = append(a.svcs, refresher)

	return nil
}

// Run starts every service and blocks until a signal arrives or a service
// fails.
func (a *App) Run() error {
	sm, err := services.NewManager(a.svcs...)
	if err != nil {
		return errors.Wrap(err, "building service manager")
	}

	healthy := func() { level.Info(log.Logger).Log("msg", "federator started", "target", a.cfg.Target) }
	stopped := func() { level.Info(log.Logger).Log("msg", "federator stopped") }
	serviceFailed := func(service services.Service) {
		// if any service fails, stop everything
		sm.StopAsync()
		level.Error(log.Logger).Log("msg", "service failed", "err", service.FailureCase())
	}
	sm.AddListener(services.NewManagerListener(healthy, stopped, serviceFailed))

	// if a signal arrives, stop the manager, which stops all the services
	handler := signals.NewHandler(log.Logger)
	go func() {
		handler.Loop()
		sm.StopAsync()
	}()

	if err := sm.StartAsync(context.Background()); err != nil {
		return errors.Wrap(err, "starting services")
	}
	if err := sm.AwaitStopped(context.Background()); err != nil {
		return errors.Wrap(err, "awaiting services")
	}

	_ = a.kvStore.Close()

	for _, svc := range a.svcs {
		if failure := svc.FailureCase(); failure != nil && !errors.Is(failure, context.Canceled) {
			return fmt.Errorf("service failed: %w", failure)
		}
	}
	return nil
}

// reconcileOnChange rebuilds the node's subscription jobs after every config
// refresh. The refresher's first fetch can beat the scheduler service's own
// start, so the scheduler is started here, idempotently, before reconciling.
func reconcileOnChange(sched *scheduler.Scheduler, subscriber *client.Subscriber, nodeID string) func(fedconfig.ProducerConfig) {
	return func(cfg fedconfig.ProducerConfig) {
		if err := sched.EnsureStarted(context.Background()); err != nil {
			level.Error(log.Logger).Log("msg", "starting scheduler for reconcile failed", "err", err)
			return
		}
		if err := sched.ReloadRecurrentJobs(nodeID, subscriber.JobRequests(cfg)); err != nil {
			level.Error(log.Logger).Log("msg", "scheduler reconcile failed", "err", err)
		}
	}
}

// schedulerService adapts the scheduler lifecycle to a dskit service and
// tears down the Kafka writer with it.
func schedulerService(sched *scheduler.Scheduler, closeWriter func()) services.Service {
	return services.NewBasicService(
		func(ctx context.Context) error {
			return sched.EnsureStarted(ctx)
		},
		func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		},
		func(_ error) error {
			closeWriter()
			return sched.Stop()
		},
	)
}
