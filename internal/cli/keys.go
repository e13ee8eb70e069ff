package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kvcmd/core/command"
)

const defaultScanBatchSize = 1000

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [pattern]",
		Short: "list keys matching pattern with SCAN",
		Long: `List keys matching a glob pattern (default "*").
The keyspace is walked with SCAN in batches of REDIS_SCAN_BATCH_SIZE, so the
server is never blocked the way KEYS blocks it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeConn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer closeConn()

			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}
			batch := a.cfg.ScanBatchSize
			if batch <= 0 {
				batch = defaultScanBatchSize
			}

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			var cursor uint64
			for {
				reply, err := a.store.Do(ctx, "Scan", cursor, pattern, int64(batch))
				if err != nil {
					return err
				}

				keys, next, err := scanPage(reply)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}

				cursor = next
				if cursor == 0 {
					return nil
				}
			}
		},
	}
}

func scanPage(reply any) ([]string, uint64, error) {
	pair, ok := reply.([]any)
	if ok && len(pair) == 2 {
		keys, keysOK := pair[0].([]string)
		cursor, cursorOK := pair[1].(uint64)
		if keysOK && cursorOK {
			return keys, cursor, nil
		}
	}
	return nil, 0, command.Wrap("Scan", command.ModeImmediate, fmt.Errorf("unexpected reply %T", reply))
}
