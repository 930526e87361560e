package sender

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureStream records frames. block makes every write hang until the
// channel is closed; delay slows every write down.
type captureStream struct {
	mu     sync.Mutex
	frames []string
	err    error

	block chan struct{}
	delay time.Duration
}

func (c *captureStream) Send(frame string) error {
	if c.block != nil {
		<-c.block
	}
	if c.delay > 0 {
		time.Sleep(c.delay)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.frames = append(c.frames, frame)
	return nil
}

func (c *captureStream) sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.frames...)
}

func TestSendPassesThrough(t *testing.T) {
	stream := &captureStream{}
	s := New[string](stream, time.Minute)

	require.NoError(t, s.Send("a"))
	require.NoError(t, s.Send("b"))
	require.Equal(t, []string{"a", "b"}, stream.sent())
}

func TestSendStallDeadline(t *testing.T) {
	stream := &captureStream{block: make(chan struct{})}
	t.Cleanup(func() { close(stream.block) })

	s := New[string](stream, 100*time.Millisecond)

	err := s.Send("a")
	require.Equal(t, codes.DeadlineExceeded, status.Code(err))
	require.Empty(t, stream.sent())

	// the stall closed the stream once, further sends fail fast
	err = s.Send("b")
	require.Equal(t, codes.Canceled, status.Code(err))
	require.Equal(t, codes.DeadlineExceeded, status.Code(s.Terminal()))
}

func TestSendAfterCancel(t *testing.T) {
	stream := &captureStream{}
	s := New[string](stream, time.Minute)

	s.Cancel()
	err := s.Send("a")
	require.Equal(t, codes.Canceled, status.Code(err))
	require.Empty(t, stream.sent())
}

func TestCancelUnblocksInflightSend(t *testing.T) {
	stream := &captureStream{block: make(chan struct{})}
	t.Cleanup(func() { close(stream.block) })

	s := New[string](stream, time.Minute)

	unblocked := make(chan error, 1)
	go func() {
		unblocked <- s.Send("a")
	}()

	time.Sleep(20 * time.Millisecond)
	s.Cancel()

	select {
	case err := <-unblocked:
		require.Equal(t, codes.Canceled, status.Code(err))
	case <-time.After(time.Second):
		t.Fatal("send did not observe cancellation")
	}
}

func TestTransportErrorClosesSender(t *testing.T) {
	stream := &captureStream{err: status.Error(codes.Unavailable, "connection reset")}
	s := New[string](stream, time.Minute)

	err := s.Send("a")
	require.Equal(t, codes.Unavailable, status.Code(err))

	require.Equal(t, codes.Canceled, status.Code(s.Send("b")))
	require.Equal(t, codes.Unavailable, status.Code(s.Terminal()))
}

func TestTerminalIsIdempotent(t *testing.T) {
	stream := &captureStream{}
	s := New[string](stream, time.Minute)

	first := status.Error(codes.Internal, "boom")
	s.Error(first)
	s.Complete()
	s.Error(status.Error(codes.Unavailable, "later"))

	require.Equal(t, first, s.Terminal())
}

func TestCompleteThenErrorKeepsSuccess(t *testing.T) {
	stream := &captureStream{}
	s := New[string](stream, time.Minute)

	s.Complete()
	s.Error(status.Error(codes.Internal, "late"))
	require.NoError(t, s.Terminal())
}

func TestSlowTransportUnderDeadlineDelivers(t *testing.T) {
	stream := &captureStream{delay: time.Millisecond}
	s := New[string](stream, time.Minute)

	for i := 0; i < 50; i++ {
		require.NoError(t, s.Send("frame"))
	}
	require.Len(t, stream.sent(), 50)
}
