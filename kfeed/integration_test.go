package kfeed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kadm"

	"github.com/birdayz/tau"
	"github.com/birdayz/tau/kserde"
	"github.com/birdayz/tau/ksignal"
	"github.com/birdayz/tau/kstats"
)

var referenceValues = []float64{0.0, 3.2, 2.1, 2.9, 8.3, 5.7}

func startRedpanda(t *testing.T) []string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redpanda integration test in short mode")
	}

	ctx := context.Background()
	container, err := redpanda.RunContainer(ctx)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	broker, err := container.KafkaSeedBroker(ctx)
	assert.NoError(t, err)
	return []string{broker}
}

func TestIntegration_ProduceAndFeed(t *testing.T) {
	brokers := startRedpanda(t)
	topic := fmt.Sprintf("tau-feed-%d", time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := NewClient(brokers, topic)
	assert.NoError(t, err)
	defer client.Close()

	t.Run("ensure topic is idempotent", func(t *testing.T) {
		assert.NoError(t, EnsureTopic(ctx, client, topic, 1))
		assert.NoError(t, EnsureTopic(ctx, client, topic, 1))

		topics, err := kadm.NewClient(client).ListTopics(ctx, topic)
		assert.NoError(t, err)
		assert.True(t, topics.Has(topic))
		assert.Equal(t, 1, len(topics[topic].Partitions))
	})

	assert.NoError(t, Produce(ctx, client, topic, referenceValues, kserde.Float64TextSerializer, nil))

	e := tau.MustNew()
	src := ksignal.NewMutable[float64]()
	_, err = e.Network().Add(src)
	assert.NoError(t, err)
	sum, err := kstats.NewRunningSum(e.Network(), src)
	assert.NoError(t, err)

	var seen []float64
	_, err = ksignal.ForEach[float64](e.Network(), src, func(v float64) {
		seen = append(seen, v)
		if len(seen) == len(referenceValues) {
			assert.NoError(t, e.Close())
		}
	})
	assert.NoError(t, err)

	feed := New[float64](client, e.NetworkScheduler(), src, kserde.Float64TextDeserializer)
	e.Go(feed.Run)

	assert.NoError(t, e.Run(ctx))
	assert.Equal(t, referenceValues, seen)
	assert.Equal(t, int64(len(referenceValues)), feed.Records())
	assert.Equal(t, 22.2, sum.Value())
}
