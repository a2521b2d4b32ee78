package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/birdayz/tau"
	"github.com/birdayz/tau/kschedule"
	"github.com/birdayz/tau/ksignal"
	"github.com/birdayz/tau/ktrigger"
)

// pipeline wires operators onto the source signal of an engine and writes
// results to out.
type pipeline func(e *tau.Engine, src *ksignal.Mutable[float64], out io.Writer) error

// runPipeline builds an engine around a fresh source signal, wires the
// pipeline and replays the configured values through it.
func runPipeline(cmd *cobra.Command, opts *RootOptions, build pipeline) (*tau.Engine, error) {
	e, err := tau.New(tau.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	src := ksignal.NewMutable[float64]()
	if _, err := e.Network().Add(src); err != nil {
		return nil, err
	}
	if err := build(e, src, cmd.OutOrStdout()); err != nil {
		return nil, err
	}

	opts.Logger.Debug("Replaying values", "count", len(opts.Config.Values), "rate", opts.Config.Rate)
	if err := replay(cmd.Context(), e, src, opts.Config.Values, opts.Config.Rate); err != nil {
		return nil, err
	}
	return e, nil
}

// replay feeds values into src. Without a rate every update is scheduled up
// front and drained on the calling goroutine. With a rate a producer paces
// the updates while the engine runs, and the engine stops once the last
// update has been processed.
func replay(ctx context.Context, e *tau.Engine, src *ksignal.Mutable[float64], values []float64, perSecond float64) error {
	ns := e.NetworkScheduler()

	if perSecond == 0 {
		for _, v := range values {
			if _, err := kschedule.ScheduleUpdate[float64](ns, src, v, ktrigger.Immediate()); err != nil {
				return err
			}
		}
		return e.Drain(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
	e.Go(func(ctx context.Context) error {
		for _, v := range values {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if _, err := kschedule.ScheduleUpdate[float64](ns, src, v, ktrigger.Immediate()); err != nil {
				return err
			}
		}

		// Queued behind the last update.
		if _, err := ns.Service().AddJob(func(context.Context) error {
			cancel()
			return nil
		}, ktrigger.Immediate()); err != nil {
			return err
		}

		<-ctx.Done()
		return nil
	})

	return e.Run(ctx)
}
