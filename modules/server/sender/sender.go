// Package sender wraps the outbound half of a server stream with stall
// protection: the transport write blocks internally while the peer is not
// reading, and Send bounds that suspension with a deadline instead of parking
// the stream forever.
package sender

import (
	"sync"
	"time"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grafana/federator/pkg/util/log"
)

const (
	// DefaultStallDeadline bounds how long a single Send may block on the
	// transport before the call is failed.
	DefaultStallDeadline = 2 * time.Minute

	// slowSendThreshold is the wait below which a send stays silent, so a
	// briefly congested transport does not flap the logs.
	slowSendThreshold = 200 * time.Millisecond
)

var (
	metricSendStalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "sender_stalls_total",
		Help:      "Total number of sends that failed on the stall deadline.",
	})
	metricSendWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "federator",
		Name:      "sender_waits_total",
		Help:      "Total number of sends that waited longer than the slow send threshold.",
	})
)

// Stream is the outbound half the sender writes to. Both event and file
// chunk server streams satisfy it.
type Stream[T any] interface {
	Send(T) error
}

// Sender serialises writes to one stream and watches every write for a
// stall. A single lock guards (cancelled, closed) and the terminal outcome;
// the sender is the only writer to the transport.
type Sender[T any] struct {
	mu sync.Mutex

	cancelled bool
	closed    bool

	terminated bool
	terminal   error

	cancelCh chan struct{}

	stream        Stream[T]
	stallDeadline time.Duration
}

func New[T any](stream Stream[T], stallDeadline time.Duration) *Sender[T] {
	if stallDeadline <= 0 {
		stallDeadline = DefaultStallDeadline
	}
	return &Sender[T]{
		cancelCh:      make(chan struct{}),
		stream:        stream,
		stallDeadline: stallDeadline,
	}
}

// Cancel transitions the sender to closed. Subsequent sends fail with
// Canceled; a send blocked on the transport returns right away, the
// abandoned write unwinds once the call context dies.
func (s *Sender[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return
	}
	s.cancelled = true
	close(s.cancelCh)
}

// Send writes the frame, bounded by the stall deadline. A deadline hit fails
// the call with DeadlineExceeded and closes the sender; the write itself is
// left to unwind when the RPC tears down. Called from a single goroutine per
// stream, so frame order is preserved.
func (s *Sender[T]) Send(frame T) error {
	s.mu.Lock()
	if s.cancelled || s.closed {
		s.mu.Unlock()
		return status.Error(codes.Canceled, "stream closed")
	}
	s.mu.Unlock()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- s.stream.Send(frame) }()

	timer := time.NewTimer(s.stallDeadline)
	defer timer.Stop()

	select {
	case err := <-done:
		if waited := time.Since(start); waited > slowSendThreshold {
			metricSendWaits.Inc()
			level.Debug(log.Logger).Log("msg", "send waited for transport", "waited", waited)
		}
		if err != nil {
			s.close(err)
			return err
		}
		return nil

	case <-s.cancelCh:
		return status.Error(codes.Canceled, "stream closed")

	case <-timer.C:
		metricSendStalls.Inc()
		err := status.Error(codes.DeadlineExceeded, "outbound stream stalled")
		s.close(err)
		return err
	}
}

// Complete marks the stream successfully finished. Idempotent; later
// terminations are ignored.
func (s *Sender[T]) Complete() {
	s.close(nil)
}

// Error marks the stream failed with err. Idempotent with Complete; only the
// first terminal outcome is kept.
func (s *Sender[T]) Error(err error) {
	s.close(err)
}

// Terminal returns the recorded terminal outcome, nil for a completed
// stream.
func (s *Sender[T]) Terminal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal
}

// close records the first terminal outcome and stops further sends.
func (s *Sender[T]) close(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.terminated {
		return
	}
	s.terminated = true
	s.terminal = err
}
