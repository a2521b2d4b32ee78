package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/birdayz/tau"
	"github.com/birdayz/tau/ksignal"
	"github.com/birdayz/tau/kstats"
)

// NewSumCommand creates the sum command.
func NewSumCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sum",
		Short: "Print the running sum of the values",
		Example: `  tau sum
  tau sum --values 1,2,3 --rate 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runPipeline(cmd, opts, sumPipeline)
			return err
		},
	}
}

func sumPipeline(e *tau.Engine, src *ksignal.Mutable[float64], out io.Writer) error {
	return sumPipelineOver(e, src, out)
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print descriptive statistics of the values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var st *statistics
			_, err := runPipeline(cmd, opts, func(e *tau.Engine, src *ksignal.Mutable[float64], _ io.Writer) error {
				var err error
				st, err = newStatistics(e, src, opts.Config.Weight)
				return err
			})
			if err != nil {
				return err
			}
			st.print(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().Float64Var(&opts.Config.Weight, "weight", opts.Config.Weight, "weighting factor of the weighted moving average")
	return cmd
}

type statistics struct {
	max    *kstats.Max[float64]
	min    *kstats.Min[float64]
	mean   *kstats.Mean[float64]
	stddev *kstats.Stddev[float64]
	ema    *kstats.ExponentialMovingAverage[float64]
	wma    *kstats.WeightedMovingAverage[float64]
}

func newStatistics(e *tau.Engine, src ksignal.Signal[float64], weight float64) (*statistics, error) {
	net := e.Network()
	st := &statistics{}

	var err error
	if st.max, err = kstats.NewMax(net, src); err != nil {
		return nil, err
	}
	if st.min, err = kstats.NewMin(net, src); err != nil {
		return nil, err
	}
	if st.mean, err = kstats.NewMean(net, src); err != nil {
		return nil, err
	}
	if st.stddev, err = kstats.NewStddev(net, src); err != nil {
		return nil, err
	}
	if st.ema, err = kstats.NewExponentialMovingAverage(net, src); err != nil {
		return nil, err
	}
	if st.wma, err = kstats.NewWeightedMovingAverage(net, src, weight); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *statistics) print(out io.Writer) {
	line := func(name string, v float64, ok bool) {
		if !ok {
			fmt.Fprintf(out, "%s=n/a\n", name)
			return
		}
		fmt.Fprintf(out, "%s=%s\n", name, formatValue(v))
	}

	hi, ok := st.max.Get()
	line("max", hi, ok)
	lo, ok := st.min.Get()
	line("min", lo, ok)
	line("mean", st.mean.Value(), true)
	line("stddev", st.stddev.Value(), true)
	line("ema", st.ema.Value(), true)
	line("wma", st.wma.Value(), true)
}

// NewMapReduceCommand creates the mapreduce command.
func NewMapReduceCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mapreduce",
		Short: "Round every value and print the running sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runPipeline(cmd, opts, mapReducePipeline)
			return err
		},
	}
}

func mapReducePipeline(e *tau.Engine, src *ksignal.Mutable[float64], out io.Writer) error {
	rounded, err := ksignal.Map(e.Network(), src, math.RoundToEven)
	if err != nil {
		return err
	}
	return sumPipelineOver(e, rounded, out)
}

func sumPipelineOver(e *tau.Engine, values ksignal.Signal[float64], out io.Writer) error {
	sum, err := ksignal.Scan[float64](e.Network(), values)
	if err != nil {
		return err
	}
	_, err = ksignal.ForEach[float64](e.Network(), sum, func(v float64) {
		fmt.Fprintf(out, "sum=%s\n", formatValue(v))
	})
	return err
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the values at or above a threshold",
		Example: `  tau filter --values 0,-3.2,2.1,-2.9,8.3,-5.7 --min 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runPipeline(cmd, opts, func(e *tau.Engine, src *ksignal.Mutable[float64], out io.Writer) error {
				threshold := opts.Config.Filter.Min
				passed, err := ksignal.Filter(e.Network(), src, func(v float64) bool { return v >= threshold })
				if err != nil {
					return err
				}
				_, err = ksignal.ForEach[float64](e.Network(), passed, func(v float64) {
					fmt.Fprintf(out, "value=%s\n", formatValue(v))
				})
				return err
			})
			return err
		},
	}
	cmd.Flags().Float64Var(&opts.Config.Filter.Min, "min", opts.Config.Filter.Min, "smallest value passed on")
	return cmd
}

// NewBufferCommand creates the buffer command.
func NewBufferCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buffer",
		Short: "Print the values in batches by count and by time",
		Example: `  tau buffer --count 2
  tau buffer --rate 1 --interval 3s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var byCount *ksignal.CountBuffer[float64]
			var byTime *ksignal.TimeBuffer[float64]
			_, err := runPipeline(cmd, opts, func(e *tau.Engine, src *ksignal.Mutable[float64], out io.Writer) error {
				var err error
				byCount, err = ksignal.BufferWithCount(e.Network(), src, opts.Config.Buffer.Count)
				if err != nil {
					return err
				}
				byTime, err = ksignal.BufferWithTime(e.NetworkScheduler(), src, opts.Config.Buffer.Interval)
				if err != nil {
					return err
				}

				if _, err := ksignal.ForEach[[]float64](e.Network(), byCount, func(vs []float64) {
					fmt.Fprintf(out, "count-batch=%s\n", formatBatch(vs))
				}); err != nil {
					return err
				}
				_, err = ksignal.ForEach[[]float64](e.Network(), byTime, func(vs []float64) {
					fmt.Fprintf(out, "time-batch=%s\n", formatBatch(vs))
				})
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "count-pending=%s\n", formatBatch(byCount.Pending()))
			fmt.Fprintf(out, "time-pending=%s\n", formatBatch(byTime.Pending()))
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Config.Buffer.Count, "count", opts.Config.Buffer.Count, "values per count batch")
	cmd.Flags().DurationVar(&opts.Config.Buffer.Interval, "interval", opts.Config.Buffer.Interval, "period of the time batches")
	return cmd
}

// NewDotCommand creates the dot command.
func NewDotCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the statistics network in Graphviz DOT format",
		Long: `Build the statistics and map-reduce pipelines, replay the values and print
the network. Nodes that activated in the last walk are filled.`,
		Example: `  tau dot | dot -Tsvg > network.svg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := runPipeline(cmd, opts, func(e *tau.Engine, src *ksignal.Mutable[float64], _ io.Writer) error {
				if _, err := newStatistics(e, src, opts.Config.Weight); err != nil {
					return err
				}
				return mapReducePipeline(e, src, io.Discard)
			})
			if err != nil {
				return err
			}

			b, err := e.Network().MarshalDOT("tau")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().Float64Var(&opts.Config.Weight, "weight", opts.Config.Weight, "weighting factor of the weighted moving average")
	return cmd
}
