// Package testkafka spins up an in-process fake Kafka cluster for tests.
package testkafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kfake"
	"github.com/twmb/franz-go/pkg/kgo"
)

// NewCluster starts a single-broker kfake cluster seeded with topic.
func NewCluster(t testing.TB, topic string, partitions int32) (*kfake.Cluster, string) {
	t.Helper()

	cluster, err := kfake.NewCluster(
		kfake.NumBrokers(1),
		kfake.SeedTopics(partitions, topic),
	)
	require.NoError(t, err)
	t.Cleanup(cluster.Close)

	addrs := cluster.ListenAddrs()
	require.NotEmpty(t, addrs)

	return cluster, addrs[0]
}

// NewProducer returns a kgo client producing to topic on the given cluster.
func NewProducer(t testing.TB, addr, topic string) *kgo.Client {
	t.Helper()

	client, err := kgo.NewClient(
		kgo.SeedBrokers(addr),
		kgo.DefaultProduceTopic(topic),
		kgo.RecordPartitioner(kgo.ManualPartitioner()),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

// Produce sends one record and waits for the ack.
func Produce(ctx context.Context, t testing.TB, client *kgo.Client, rec *kgo.Record) {
	t.Helper()

	res := client.ProduceSync(ctx, rec)
	require.NoError(t, res.FirstErr())
}
