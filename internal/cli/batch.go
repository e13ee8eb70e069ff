package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kvcmd/core/store"
)

// compose returns the function Multi and Pipeline run: every line is one
// queued command, split on whitespace.
func compose(ctx context.Context, lines []string) func(tx *store.Surface) (any, error) {
	return func(tx *store.Surface) (any, error) {
		queued := 0
		for _, line := range lines {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if _, err := call(ctx, tx, fields[0], fields[1:], false); err != nil {
				return nil, err
			}
			queued++
		}
		return queued, nil
	}
}

func newMultiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `multi "<Command> [args...]"...`,
		Short: "run commands atomically in MULTI/EXEC",
		Long: `Queue each quoted argument as one command and execute them atomically.

With --watch the transaction only commits if none of the watched keys changed;
otherwise "(aborted)" is printed. Prefix a command with "json." to use the JSON
family.`,
		Example: `  kvcmd multi "Set a 1 0" "Incr a" "Get a"
  kvcmd multi --watch balance "DecrBy balance 10"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeConn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer closeConn()

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			var opts []store.TxOption
			if keys := a.v.GetStringSlice("watch"); len(keys) > 0 {
				opts = append(opts, store.Watch(keys...))
			}

			out, err := a.store.Multi(ctx, compose(ctx, args), opts...)
			if err != nil {
				return err
			}

			writeOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringSlice("watch", nil, "keys to WATCH; the transaction aborts if any of them changes")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newPipelineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `pipeline "<Command> [args...]"...`,
		Short: "send commands in one round trip without atomicity",
		Long: `Queue each quoted argument as one command and send them in one batch.
A failing command does not stop the others; its error is printed in place.`,
		Example: `  kvcmd pipeline "Set a 1 0" "LPush a x" "Get a"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeConn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer closeConn()

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			out, err := a.store.Pipeline(ctx, compose(ctx, args))
			if err != nil {
				return err
			}

			writeOutcome(cmd.OutOrStdout(), out)
			if n, ok := out.Value.(int); ok && n != out.Len() {
				return fmt.Errorf("queued %d commands, got %d results", n, out.Len())
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	return cmd
}
