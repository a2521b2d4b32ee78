// Package cli implements the tau command line, which runs the reference
// pipelines over a replayed or Kafka-fed stream of numbers.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/birdayz/tau/pkg/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogFormat  string
	Verbose    bool
	ConfigPath string

	Config Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the tau CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Config: DefaultConfig()}
	flagCfg := &opts.Config

	cmd := &cobra.Command{
		Use:   "tau",
		Short: "tau - reactive dataflow engine",
		Long: `Run reactive dataflow pipelines over a stream of numbers.

Values are replayed from the command line, a YAML config file or a Kafka
topic. Every value is one scheduled update of the source signal and runs one
activation walk through the pipeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigPath != "" {
				fileCfg, err := LoadConfig(opts.ConfigPath)
				if err != nil {
					return err
				}
				opts.Config = mergeFlags(cmd, fileCfg, *flagCfg)
			}
			if err := opts.Config.Validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			logger, err := log.New(cmd.ErrOrStderr(), opts.LogFormat, level)
			if err != nil {
				return err
			}
			opts.Logger = logger
			return nil
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogFormat, "log-format", log.FormatConsole, "log format (console|json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML pipeline config")
	pf.Float64SliceVar(&flagCfg.Values, "values", flagCfg.Values, "values to replay")
	pf.Float64Var(&flagCfg.Rate, "rate", flagCfg.Rate, "replay rate in values per second, 0 replays at once")

	cmd.AddCommand(NewSumCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewMapReduceCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewBufferCommand(opts))
	cmd.AddCommand(NewDotCommand(opts))
	cmd.AddCommand(NewKafkaCommand(opts))

	return cmd
}

// mergeFlags overlays the flags given on the command line onto fileCfg.
func mergeFlags(cmd *cobra.Command, fileCfg, flagCfg Config) Config {
	changed := cmd.Flags().Changed
	if changed("values") {
		fileCfg.Values = flagCfg.Values
	}
	if changed("rate") {
		fileCfg.Rate = flagCfg.Rate
	}
	if changed("weight") {
		fileCfg.Weight = flagCfg.Weight
	}
	if changed("min") {
		fileCfg.Filter.Min = flagCfg.Filter.Min
	}
	if changed("count") {
		fileCfg.Buffer.Count = flagCfg.Buffer.Count
	}
	if changed("interval") {
		fileCfg.Buffer.Interval = flagCfg.Buffer.Interval
	}
	if changed("brokers") {
		fileCfg.Kafka.Brokers = flagCfg.Kafka.Brokers
	}
	if changed("topic") {
		fileCfg.Kafka.Topic = flagCfg.Kafka.Topic
	}
	if changed("partitions") {
		fileCfg.Kafka.Partitions = flagCfg.Kafka.Partitions
	}
	if changed("produce") {
		fileCfg.Kafka.Produce = flagCfg.Kafka.Produce
	}
	if changed("strict") {
		fileCfg.Kafka.Strict = flagCfg.Kafka.Strict
	}
	if changed("encoding") {
		fileCfg.Kafka.Encoding = flagCfg.Kafka.Encoding
	}
	return fileCfg
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

func formatBatch(vs []float64) string {
	return fmt.Sprintf("%g", vs)
}
