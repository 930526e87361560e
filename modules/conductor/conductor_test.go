package conductor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/grafana/dskit/flagext"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/federationpb"
	"github.com/grafana/federator/pkg/ingest"
	"github.com/grafana/federator/pkg/ingest/testkafka"
)

type captureSink struct {
	mu        sync.Mutex
	frames    []*federationpb.EventFrame
	completed bool
	err       error
}

func (c *captureSink) Send(f *federationpb.EventFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return nil
}

func (c *captureSink) Complete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed = true
}

func (c *captureSink) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

func (c *captureSink) sent() []*federationpb.EventFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*federationpb.EventFrame(nil), c.frames...)
}

func testConfig() Config {
	return Config{
		PollTimeout:       100 * time.Millisecond,
		InactivityTimeout: 300 * time.Millisecond,
		SharedHeaders:     flagext.StringSlice{"trace-id"},
	}
}

func newPinnedClient(t *testing.T, addr, topic string, offset int64) *kgo.Client {
	t.Helper()
	client, err := ingest.NewReaderClient(
		ingest.KafkaConfig{Brokers: flagext.StringSlice{addr}, ClientID: "test", DialTimeout: 2 * time.Second},
		nil,
		log.NewNopLogger(),
		kgo.ConsumePartitions(ingest.ConsumeOffsets(topic, 0, offset)),
	)
	require.NoError(t, err)
	return client
}

func produceEvent(t *testing.T, addr, topic, label string, value []byte) {
	t.Helper()
	producer := testkafka.NewProducer(t, addr, topic)
	rec := &kgo.Record{
		Key:   []byte("k"),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "Security-Label", Value: []byte(label)},
			{Key: "trace-id", Value: []byte("abc123")},
			{Key: "internal-only", Value: []byte("do-not-forward")},
		},
	}
	testkafka.Produce(context.Background(), t, producer, rec)
}

func TestPassThroughWithEmptyAttributeList(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)
	produceEvent(t, addr, topic, "nationality=UK", []byte{0x01, 0x02})

	c, err := New(testConfig(), newPinnedClient(t, addr, topic, 0),
		Request{Topic: topic, Offset: 0, ClientID: "c"}, nil, log.NewNopLogger())
	require.NoError(t, err)

	sink := &captureSink{}
	require.NoError(t, c.Run(context.Background(), sink))

	frames := sink.sent()
	require.Len(t, frames, 1)
	require.Equal(t, topic, frames[0].Topic)
	require.Equal(t, int64(0), frames[0].Offset)
	require.Equal(t, []byte("k"), frames[0].Key)
	require.Equal(t, []byte{0x01, 0x02}, frames[0].Value)

	// only allow-listed headers cross the boundary
	require.Len(t, frames[0].SharedHeaders, 1)
	require.Equal(t, "trace-id", frames[0].SharedHeaders[0].Name)
	require.Equal(t, []byte("abc123"), frames[0].SharedHeaders[0].Value)

	require.True(t, sink.completed)
	require.NoError(t, sink.err)
}

func TestFilterDenyWithholdsFrame(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)
	produceEvent(t, addr, topic, "nationality=UK", []byte("v"))

	attrs := []fedconfig.Attribute{{Name: "nationality", Value: "FR"}}
	c, err := New(testConfig(), newPinnedClient(t, addr, topic, 0),
		Request{Topic: topic, Offset: 0, ClientID: "c"}, attrs, log.NewNopLogger())
	require.NoError(t, err)

	sink := &captureSink{}
	require.NoError(t, c.Run(context.Background(), sink))

	require.Empty(t, sink.sent())
	require.True(t, sink.completed)
}

func TestMalformedLabelSkipsOnlyThatEvent(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)
	produceEvent(t, addr, topic, "garbage-no-separator", []byte("bad"))
	produceEvent(t, addr, topic, "nationality=UK", []byte("good"))

	attrs := []fedconfig.Attribute{{Name: "nationality", Value: "UK"}}
	c, err := New(testConfig(), newPinnedClient(t, addr, topic, 0),
		Request{Topic: topic, Offset: 0, ClientID: "c"}, attrs, log.NewNopLogger())
	require.NoError(t, err)

	sink := &captureSink{}
	require.NoError(t, c.Run(context.Background(), sink))

	frames := sink.sent()
	require.Len(t, frames, 1)
	require.Equal(t, []byte("good"), frames[0].Value)
	require.Equal(t, int64(1), frames[0].Offset)
}

func TestStartOffsetSkipsEarlierEvents(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)
	produceEvent(t, addr, topic, "a=1", []byte("first"))
	produceEvent(t, addr, topic, "a=1", []byte("second"))

	c, err := New(testConfig(), newPinnedClient(t, addr, topic, 1),
		Request{Topic: topic, Offset: 1, ClientID: "c"}, nil, log.NewNopLogger())
	require.NoError(t, err)

	sink := &captureSink{}
	require.NoError(t, c.Run(context.Background(), sink))

	frames := sink.sent()
	require.Len(t, frames, 1)
	require.Equal(t, []byte("second"), frames[0].Value)
}

func TestZeroInactivityCompletesOnFirstIdlePoll(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)

	cfg := testConfig()
	cfg.InactivityTimeout = 0

	c, err := New(cfg, newPinnedClient(t, addr, topic, 0),
		Request{Topic: topic, Offset: 0, ClientID: "c"}, nil, log.NewNopLogger())
	require.NoError(t, err)

	sink := &captureSink{}
	start := time.Now()
	require.NoError(t, c.Run(context.Background(), sink))

	require.True(t, sink.completed)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestCancellationStopsRun(t *testing.T) {
	const topic = "orders"
	_, addr := testkafka.NewCluster(t, topic, 1)

	cfg := testConfig()
	cfg.InactivityTimeout = time.Hour

	c, err := New(cfg, newPinnedClient(t, addr, topic, 0),
		Request{Topic: topic, Offset: 0, ClientID: "c"}, nil, log.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	sink := &captureSink{}
	go func() {
		done <- c.Run(ctx, sink)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("conductor did not stop on cancellation")
	}
	require.False(t, sink.completed)
	require.Error(t, sink.err)
}
