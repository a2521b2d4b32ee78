// Package kfeed drives a signal from a Kafka topic. Each consumed record is
// decoded and turned into a scheduled update of the signal, so records enter
// the network one walk at a time and in fetch order.
package kfeed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/birdayz/tau/kschedule"
	"github.com/birdayz/tau/kserde"
	"github.com/birdayz/tau/ktrigger"
	"github.com/birdayz/tau/pkg/log"
)

// ErrDecode is returned in strict mode when a record cannot be decoded.
var ErrDecode = errors.New("failed to decode record")

// Poller is the consuming half of a Kafka client.
type Poller interface {
	PollFetches(ctx context.Context) kgo.Fetches
	Close()
}

var _ Poller = (*kgo.Client)(nil)

type config struct {
	log    *slog.Logger
	strict bool
}

// Option is a function that configures a Feed
type Option func(*config)

// WithLogger sets the logger for the feed
var WithLogger = func(l *slog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithLogr sets a logr logger for the feed
var WithLogr = func(l logr.Logger) Option {
	return func(c *config) {
		c.log = log.FromLogr(l)
	}
}

// WithStrict makes undecodable records stop the feed instead of being
// skipped.
var WithStrict = func(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// Feed schedules an update of one signal per consumed record.
type Feed[T any] struct {
	poller Poller
	ns     *kschedule.NetworkScheduler
	sig    kschedule.Settable[T]
	deser  kserde.Deserializer[T]
	cfg    config

	records      atomic.Int64
	decodeErrors atomic.Int64
}

// New creates a feed. sig should be registered with the network behind ns.
func New[T any](poller Poller, ns *kschedule.NetworkScheduler, sig kschedule.Settable[T], deser kserde.Deserializer[T], opts ...Option) *Feed[T] {
	cfg := config{log: log.NullLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Feed[T]{
		poller: poller,
		ns:     ns,
		sig:    sig,
		deser:  deser,
		cfg:    cfg,
	}
}

// Run polls until ctx is done or the client is closed.
func (f *Feed[T]) Run(ctx context.Context) error {
	f.cfg.log.Info("Feed started")
	defer f.cfg.log.Info("Feed stopped", "records", f.records.Load(), "decode_errors", f.decodeErrors.Load())

	for {
		fetches := f.poller.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			f.cfg.log.Warn("Fetch failed", "topic", topic, "partition", partition, "error", err)
		})

		if err := f.Process(fetches); err != nil {
			return err
		}
	}
}

// Process decodes every record in fetches and schedules the updates. It stops
// at the first error.
func (f *Feed[T]) Process(fetches kgo.Fetches) error {
	var err error
	fetches.EachRecord(func(r *kgo.Record) {
		if err != nil {
			return
		}
		err = f.handle(r)
	})
	return err
}

func (f *Feed[T]) handle(r *kgo.Record) error {
	v, err := f.deser(r.Value)
	if err != nil {
		f.decodeErrors.Add(1)
		if f.cfg.strict {
			return fmt.Errorf("%w: %s/%d@%d: %w", ErrDecode, r.Topic, r.Partition, r.Offset, err)
		}
		f.cfg.log.Warn("Skipping undecodable record",
			"topic", r.Topic,
			"partition", r.Partition,
			"offset", r.Offset,
			"error", err)
		return nil
	}

	if _, err := kschedule.ScheduleUpdate(f.ns, f.sig, v, ktrigger.Immediate()); err != nil {
		return err
	}
	f.records.Add(1)
	return nil
}

// Records returns the number of records scheduled as updates.
func (f *Feed[T]) Records() int64 {
	return f.records.Load()
}

// DecodeErrors returns the number of records that failed to decode.
func (f *Feed[T]) DecodeErrors() int64 {
	return f.decodeErrors.Load()
}

// Close closes the underlying client, which ends Run.
func (f *Feed[T]) Close() {
	f.poller.Close()
}
