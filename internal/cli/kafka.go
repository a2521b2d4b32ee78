package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/birdayz/tau"
	"github.com/birdayz/tau/kfeed"
	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/ksignal"
	"github.com/birdayz/tau/kserde"
	"github.com/birdayz/tau/kstats"
)

// NewKafkaCommand creates the kafka command.
func NewKafkaCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kafka",
		Short: "Consume values from a Kafka topic and print running statistics",
		Long: `Consume numeric values from a Kafka topic and print the running sum and
mean after every record. With --produce the configured values are first
written to the topic, paced by --rate.

Runs until interrupted.`,
		Example: `  tau kafka --brokers localhost:9092 --topic prices --produce --rate 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKafka(cmd, opts)
		},
	}

	f := cmd.Flags()
	kc := &opts.Config.Kafka
	f.StringSliceVar(&kc.Brokers, "brokers", kc.Brokers, "seed brokers")
	f.StringVar(&kc.Topic, "topic", kc.Topic, "topic to consume")
	f.Int32Var(&kc.Partitions, "partitions", kc.Partitions, "partitions when creating the topic")
	f.BoolVar(&kc.Produce, "produce", kc.Produce, "write the configured values to the topic first")
	f.BoolVar(&kc.Strict, "strict", kc.Strict, "stop on records that cannot be decoded")
	f.StringVar(&kc.Encoding, "encoding", kc.Encoding, "record value format ("+strings.Join(kserde.Float64Encodings, ", ")+")")

	return cmd
}

func runKafka(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	cfg := opts.Config.Kafka
	log := opts.Logger.With("topic", cfg.Topic)

	codec, err := kserde.Float64Codec(cfg.Encoding)
	if err != nil {
		return err
	}

	client, err := kfeed.NewClient(cfg.Brokers, cfg.Topic)
	if err != nil {
		return fmt.Errorf("failed to create kafka client: %w", err)
	}
	defer client.Close()

	if err := kfeed.EnsureTopic(ctx, client, cfg.Topic, cfg.Partitions); err != nil {
		return err
	}

	e, err := tau.New(tau.WithLogger(opts.Logger))
	if err != nil {
		return err
	}

	src := ksignal.NewMutable[float64]()
	if _, err := e.Network().Add(src); err != nil {
		return err
	}
	sum, err := kstats.NewRunningSum(e.Network(), src)
	if err != nil {
		return err
	}
	mean, err := kstats.NewMean(e.Network(), src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := ksignal.Lambda(e.Network(), []kgraph.Event{sum, mean}, func([]kgraph.Event) bool {
		fmt.Fprintf(out, "value=%s sum=%s mean=%s\n", formatValue(src.Value()), formatValue(sum.Value()), formatValue(mean.Value()))
		return true
	}); err != nil {
		return err
	}

	feed := kfeed.New(client, e.NetworkScheduler(), src, codec.Deserializer,
		kfeed.WithLogger(log.WithGroup("feed")),
		kfeed.WithStrict(cfg.Strict))
	e.Go(feed.Run)

	if cfg.Produce {
		var limiter *rate.Limiter
		if opts.Config.Rate > 0 {
			limiter = rate.NewLimiter(rate.Limit(opts.Config.Rate), 1)
		}
		values := opts.Config.Values
		e.Go(func(ctx context.Context) error {
			if err := kfeed.Produce(ctx, client, cfg.Topic, values, codec.Serializer, limiter); err != nil {
				return err
			}
			log.Info("Produced values", "count", len(values))
			return nil
		})
	}

	log.Info("Consuming", "brokers", cfg.Brokers)
	return e.Run(ctx)
}
