package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/kvcmd/core/command"
	"github.com/dmitrymomot/kvcmd/core/logger"
	"github.com/dmitrymomot/kvcmd/core/store"
)

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <Command> [args...]",
		Short: "call one command many times concurrently",
		Long: `Call one command --n times from --concurrency goroutines and print the
throughput. A missing key is not counted as a failure. With --metrics the
per-command counters and duration histogram are printed in Prometheus format.`,
		Example: `  kvcmd bench --n 10000 --concurrency 16 Ping
  kvcmd bench --metrics Incr counter`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.v.GetInt("n")
			concurrency := a.v.GetInt("concurrency")
			if n <= 0 || concurrency <= 0 {
				return fmt.Errorf("--n and --concurrency must be positive")
			}

			set := metrics.NewSet()
			closeConn, err := a.connect(cmd, store.WithMetrics(set))
			if err != nil {
				return err
			}
			defer closeConn()

			d, name := resolve(a.store.Surface, args[0], a.v.GetBool("json"))
			sig, ok := d.Signature(name)
			if !ok {
				_, err := d.Do(cmd.Context(), name)
				return err
			}
			callArgs, err := ParseArgs(sig, args[1:])
			if err != nil {
				return command.Wrap(name, command.ModeImmediate, err)
			}

			var failed atomic.Int64
			var g errgroup.Group
			g.SetLimit(concurrency)

			timeout := a.timeout()
			start := time.Now()
			for range n {
				g.Go(func() error {
					ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
					defer cancel()
					if _, err := d.Do(ctx, name, callArgs...); err != nil && !command.IsNil(err) {
						if failed.Add(1) == 1 {
							a.log.WarnContext(ctx, "bench call failed", logger.Command(name), logger.Error(err))
						}
					}
					return nil
				})
			}
			_ = g.Wait()
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d x %s in %s (%.0f ops/s, concurrency %d), %d failed\n",
				n, name, elapsed.Round(time.Millisecond), float64(n)/elapsed.Seconds(), concurrency, failed.Load())

			if a.v.GetBool("metrics") {
				fmt.Fprintln(out)
				set.WritePrometheus(out)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("n", 1000, "number of calls")
	flags.Int("concurrency", 8, "number of concurrent callers")
	flags.Bool("metrics", false, "print metrics in Prometheus text format")
	flags.Bool("json", false, "benchmark a command of the JSON family")
	flags.SetInterspersed(false)
	return cmd
}
