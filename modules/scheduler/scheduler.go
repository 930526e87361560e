// Package scheduler is the client side recurring-job registry. Jobs are
// keyed deterministically by (job name, topic) and reconciled per management
// node against the desired set derived from producer config.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/backoff"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// ErrNotStarted is returned by registry operations before EnsureStarted.
var ErrNotStarted = errors.New("scheduler not started")

type permanentError struct {
	error
}

func (p permanentError) Unwrap() error { return p.error }

// Permanent marks a worker error that must not consume the retry budget.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err}
}

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// JobParams describes one recurring job. Either Interval or Schedule is set;
// interval wins when both are.
type JobParams struct {
	JobID            string        `json:"job_id"`
	JobName          string        `json:"job_name"`
	Topic            string        `json:"topic"`
	NodeID           string        `json:"management_node_id"`
	Endpoint         string        `json:"endpoint"`
	Schedule         string        `json:"schedule,omitempty"`
	Interval         time.Duration `json:"interval,omitempty"`
	Retries          int           `json:"retries"`
	ImmediateTrigger bool          `json:"immediate_trigger,omitempty"`
}

// JobID derives the deterministic id for a (job name, topic) pair.
func JobID(jobName, topic string) string {
	return fmt.Sprintf("%s:%s", jobName, topic)
}

// differs reports a structural change that requires remove + re-register.
func (p JobParams) differs(other JobParams) bool {
	return p.Schedule != other.Schedule ||
		p.Interval != other.Interval ||
		p.Retries != other.Retries ||
		p.Endpoint != other.Endpoint ||
		p.ImmediateTrigger != other.ImmediateTrigger
}

// Worker is one trigger of a recurring job.
type Worker func(ctx context.Context, params JobParams) error

// JobRequest pairs desired params with the worker to run them.
type JobRequest struct {
	Params JobParams
	Worker Worker
}

type job struct {
	params  JobParams
	worker  Worker
	entryID cron.EntryID
}

// Scheduler wraps a cron runner with a mutex-guarded job registry. The
// registry is in-memory only; a restarted client rebuilds it from the first
// producer config reconcile.
type Scheduler struct {
	cfg    Config
	logger log.Logger

	mu      sync.Mutex
	started bool
	runner  *cron.Cron
	jobs    map[string]*job

	runCtx    context.Context
	runCancel context.CancelFunc
}

func New(cfg Config, logger log.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		logger: logger,
		jobs:   map[string]*job{},
	}
}

// EnsureStarted starts the cron runner. Idempotent.
func (s *Scheduler) EnsureStarted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	// schedules are parsed in registerLocked, the runner only executes them
	s.runner = cron.New()
	s.runCtx, s.runCancel = context.WithCancel(context.WithoutCancel(ctx))
	s.runner.Start()
	s.started = true
	level.Info(s.logger).Log("msg", "scheduler started")
	return nil
}

// Stop halts the runner and drops all registered jobs. Idempotent.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}

	s.runCancel()
	stopCtx := s.runner.Stop()
	<-stopCtx.Done()

	s.jobs = map[string]*job{}
	s.runner = nil
	s.started = false
	level.Info(s.logger).Log("msg", "scheduler stopped")
	return nil
}

// RegisterJob creates or replaces the recurring job params.JobID. An
// immediate-trigger job also runs once right away.
func (s *Scheduler) RegisterJob(worker Worker, params JobParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerLocked(worker, params)
}

func (s *Scheduler) registerLocked(worker Worker, params JobParams) error {
	if !s.started {
		return ErrNotStarted
	}
	if params.JobID == "" {
		params.JobID = JobID(params.JobName, params.Topic)
	}

	var schedule cron.Schedule
	switch {
	case params.Interval > 0:
		schedule = cron.Every(params.Interval)
	case params.Schedule != "":
		var err error
		schedule, err = cron.ParseStandard(params.Schedule)
		if err != nil {
			return errors.Wrapf(err, "parsing schedule for job %s", params.JobID)
		}
	default:
		return fmt.Errorf("job %s has neither interval nor schedule", params.JobID)
	}

	if existing, ok := s.jobs[params.JobID]; ok {
		s.runner.Remove(existing.entryID)
	}

	j := &job{params: params, worker: worker}
	j.entryID = s.runner.Schedule(schedule, cron.FuncJob(func() {
		s.runJob(j)
	}))
	s.jobs[params.JobID] = j

	if params.ImmediateTrigger {
		go s.runJob(j)
	}
	return nil
}

// RemoveRecurringJob drops a job by id. Removing an unknown id is not an
// error.
func (s *Scheduler) RemoveRecurringJob(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(jobID)
}

func (s *Scheduler) removeLocked(jobID string) error {
	if !s.started {
		return ErrNotStarted
	}
	j, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	s.runner.Remove(j.entryID)
	delete(s.jobs, jobID)
	return nil
}

// Jobs returns a snapshot of the registered job params.
func (s *Scheduler) Jobs() []JobParams {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobParams, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.params)
	}
	return out
}

// ReloadRecurrentJobs reconciles the jobs owned by nodeID against the
// desired set. Jobs of other nodes are untouched; a failure on one id is
// logged and the reconcile continues. Running it twice with the same input
// is a no-op the second time.
func (s *Scheduler) ReloadRecurrentJobs(nodeID string, requests []JobRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	desired := make(map[string]JobRequest, len(requests))
	for _, r := range requests {
		params := r.Params
		if params.JobID == "" {
			params.JobID = JobID(params.JobName, params.Topic)
		}
		params.NodeID = nodeID
		desired[params.JobID] = JobRequest{Params: params, Worker: r.Worker}
	}

	existing := map[string]JobParams{}
	for id, j := range s.jobs {
		if j.params.NodeID == nodeID {
			existing[id] = j.params
		}
	}

	for id := range existing {
		if _, ok := desired[id]; !ok {
			if err := s.removeLocked(id); err != nil {
				level.Error(s.logger).Log("msg", "reconcile delete failed", "job_id", id, "err", err)
			} else {
				level.Info(s.logger).Log("msg", "reconcile deleted job", "job_id", id)
			}
		}
	}

	for id, req := range desired {
		current, exists := existing[id]
		if exists && !current.differs(req.Params) {
			continue
		}
		if exists {
			if err := s.removeLocked(id); err != nil {
				level.Error(s.logger).Log("msg", "reconcile replace failed", "job_id", id, "err", err)
				continue
			}
		}
		if err := s.registerLocked(req.Worker, req.Params); err != nil {
			level.Error(s.logger).Log("msg", "reconcile register failed", "job_id", id, "err", err)
			continue
		}
		if exists {
			level.Info(s.logger).Log("msg", "reconcile replaced job", "job_id", id)
		} else {
			level.Info(s.logger).Log("msg", "reconcile added job", "job_id", id)
		}
	}

	return nil
}

// runJob executes one trigger with the job's retry budget.
func (s *Scheduler) runJob(j *job) {
	ctx := s.runCtx
	bo := backoff.New(ctx, backoff.Config{
		MinBackoff: s.cfg.RetryMinBackoff,
		MaxBackoff: s.cfg.RetryMaxBackoff,
		MaxRetries: j.params.Retries + 1,
	})

	var lastErr error
	for bo.Ongoing() {
		lastErr = j.worker(ctx, j.params)
		if lastErr == nil {
			return
		}
		if isPermanent(lastErr) {
			level.Error(s.logger).Log("msg", "job trigger failed terminally", "job_id", j.params.JobID, "err", lastErr)
			return
		}
		level.Warn(s.logger).Log("msg", "job trigger failed", "job_id", j.params.JobID, "attempt", bo.NumRetries(), "err", lastErr)
		bo.Wait()
	}
	if lastErr != nil {
		level.Error(s.logger).Log("msg", "job trigger exhausted retries", "job_id", j.params.JobID, "err", lastErr)
	}
}
