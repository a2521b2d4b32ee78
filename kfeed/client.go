package kfeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/time/rate"

	"github.com/birdayz/tau/kserde"
)

// NewClient creates a client consuming topic from the start.
func NewClient(brokers []string, topic string, opts ...kgo.Opt) (*kgo.Client, error) {
	opts = append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	}, opts...)

	return kgo.NewClient(opts...)
}

// EnsureTopic creates topic unless it already exists.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32) error {
	resps, err := kadm.NewClient(client).CreateTopics(ctx, partitions, 1, map[string]*string{}, topic)
	if err != nil {
		return fmt.Errorf("failed to create topic %s: %w", topic, err)
	}
	for _, r := range resps {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("failed to create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Producer is the producing half of a Kafka client.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

var _ Producer = (*kgo.Client)(nil)

// Produce writes values to topic in order, one record per value, waiting on
// limiter before each. A nil limiter does not pace.
func Produce[T any](ctx context.Context, p Producer, topic string, values []T, ser kserde.Serializer[T], limiter *rate.Limiter) error {
	for _, v := range values {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		payload, err := ser(v)
		if err != nil {
			return fmt.Errorf("failed to serialize %v: %w", v, err)
		}
		if err := p.ProduceSync(ctx, &kgo.Record{Topic: topic, Value: payload}).FirstErr(); err != nil {
			return fmt.Errorf("failed to produce to %s: %w", topic, err)
		}
	}
	return nil
}
