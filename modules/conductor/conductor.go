// Package conductor drives one topic's event flow for one streaming call:
// poll the pinned consumer, filter, transform, hand off to the sender.
package conductor

import (
	"context"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kgo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grafana/federator/modules/conductor/labels"
	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/federationpb"
)

var (
	metricEventsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "conductor_events_sent_total",
		Help:      "Events delivered to consumers per topic.",
	}, []string{"topic"})
	metricEventsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "conductor_events_filtered_total",
		Help:      "Events withheld by the attribute filter per topic.",
	}, []string{"topic"})
	metricEventsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "conductor_events_skipped_total",
		Help:      "Events skipped because their security label could not be parsed.",
	}, []string{"topic"})
)

type callState int

const (
	stateInit callState = iota
	stateRunning
	stateDraining
	stateTerminated
)

// Sink is the outbound half of the call. The flow-controlled sender
// satisfies it.
type Sink interface {
	Send(*federationpb.EventFrame) error
	Complete()
	Error(error)
}

// Request pins one call to a topic and start offset on behalf of a consumer.
type Request struct {
	Topic    string
	Offset   int64
	ClientID string
}

// Conductor exclusively owns its consumer for the duration of one call.
type Conductor struct {
	cfg    Config
	logger log.Logger

	client *kgo.Client
	req    Request

	attrs         []fedconfig.Attribute
	filter        labels.Filter
	sharedHeaders map[string]struct{}

	state callState
}

// New wires a conductor around an already pinned consumer client. The
// conductor takes ownership of the client and closes it when the call ends.
func New(cfg Config, client *kgo.Client, req Request, attrs []fedconfig.Attribute, logger log.Logger) (*Conductor, error) {
	filter, err := labels.ForName(cfg.Filter)
	if err != nil {
		return nil, err
	}

	shared := make(map[string]struct{}, len(cfg.SharedHeaders))
	for _, name := range cfg.SharedHeaders {
		shared[strings.ToLower(name)] = struct{}{}
	}

	return &Conductor{
		cfg:           cfg,
		logger:        log.With(logger, "topic", req.Topic, "client_id", req.ClientID),
		client:        client,
		req:           req,
		attrs:         attrs,
		filter:        filter,
		sharedHeaders: shared,
		state:         stateInit,
	}, nil
}

// Run polls until the call is cancelled, the consumer goes idle past the
// inactivity timeout, or polling fails. Idle completion is success, the sink
// is completed, not errored.
func (c *Conductor) Run(ctx context.Context, sink Sink) error {
	defer func() {
		c.state = stateTerminated
		c.client.Close()
	}()

	c.state = stateRunning
	level.Debug(c.logger).Log("msg", "conductor running", "offset", c.req.Offset)

	var idle time.Duration
	for {
		if ctx.Err() != nil {
			c.state = stateDraining
			sink.Error(status.FromContextError(ctx.Err()).Err())
			return ctx.Err()
		}

		pollCtx, cancel := context.WithTimeout(ctx, c.cfg.PollTimeout)
		fetches := c.client.PollFetches(pollCtx)
		cancel()

		if err := pollError(fetches); err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.state = stateDraining
			err = status.Errorf(codes.Internal, "message processing failed: %v", err)
			sink.Error(err)
			return err
		}

		records := fetches.Records()
		if len(records) == 0 {
			idle += c.cfg.PollTimeout
			if idle >= c.cfg.InactivityTimeout {
				c.state = stateDraining
				level.Debug(c.logger).Log("msg", "consumer idle, completing stream", "idle", idle)
				sink.Complete()
				return nil
			}
			continue
		}
		idle = 0

		for _, rec := range records {
			allowed, err := c.filter(securityLabel(rec), c.attrs)
			if err != nil {
				metricEventsSkipped.WithLabelValues(c.req.Topic).Inc()
				level.Warn(c.logger).Log("msg", "skipping event", "offset", rec.Offset, "err", err)
				continue
			}
			if !allowed {
				metricEventsFiltered.WithLabelValues(c.req.Topic).Inc()
				continue
			}

			if err := sink.Send(c.transform(rec)); err != nil {
				c.state = stateDraining
				return err
			}
			metricEventsSent.WithLabelValues(c.req.Topic).Inc()
		}
	}
}

func (c *Conductor) transform(rec *kgo.Record) *federationpb.EventFrame {
	frame := &federationpb.EventFrame{
		Topic:  rec.Topic,
		Offset: rec.Offset,
		Key:    rec.Key,
		Value:  rec.Value,
	}
	for _, h := range rec.Headers {
		if _, ok := c.sharedHeaders[strings.ToLower(h.Key)]; ok {
			frame.SharedHeaders = append(frame.SharedHeaders, federationpb.EventHeader{
				Name:  h.Key,
				Value: h.Value,
			})
		}
	}
	return frame
}

func securityLabel(rec *kgo.Record) string {
	for _, h := range rec.Headers {
		if strings.EqualFold(h.Key, labels.HeaderName) {
			return string(h.Value)
		}
	}
	return ""
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
