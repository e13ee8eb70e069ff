package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kvcmd/core/command"
	"github.com/dmitrymomot/kvcmd/core/store"
)

const jsonPrefix = "json."

// dispatcher is the part of a surface or table the CLI calls through.
type dispatcher interface {
	Do(ctx context.Context, name string, args ...any) (any, error)
	Signature(name string) (command.Signature, bool)
	Names() []string
}

// resolve picks the flat surface or the JSON family for name and returns the
// canonical command name. "json.get" and --json both select the JSON family.
func resolve(s *store.Surface, name string, jsonFamily bool) (dispatcher, string) {
	var d dispatcher = s
	if len(name) > len(jsonPrefix) && strings.EqualFold(name[:len(jsonPrefix)], jsonPrefix) {
		name = name[len(jsonPrefix):]
		jsonFamily = true
	}
	if jsonFamily {
		d = s.JSON()
	}

	for _, n := range d.Names() {
		if strings.EqualFold(n, name) {
			return d, n
		}
	}
	return d, name
}

// call parses raw against the command signature and runs it.
func call(ctx context.Context, s *store.Surface, name string, raw []string, jsonFamily bool) (any, error) {
	d, name := resolve(s, name, jsonFamily)

	sig, ok := d.Signature(name)
	if !ok {
		return d.Do(ctx, name)
	}

	args, err := ParseArgs(sig, raw)
	if err != nil {
		return nil, command.Wrap(name, s.Mode(), err)
	}
	return d.Do(ctx, name, args...)
}

func newDoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <Command> [args...]",
		Short: "run one command",
		Long: `Run one command and print its reply.

Command names are go-redis method names and are matched case-insensitively
(Get, HSet, ZRangeByScore, ...). Arguments are converted to the parameter
types of the command: integers, floats, booleans, durations (10s or plain
seconds) and RFC3339 times. Flags go before the command name; everything
after it is an argument, so negative numbers need no escaping.`,
		Example: `  kvcmd do Set greeting hello 0
  kvcmd do HGetAll user:1
  kvcmd do LRange list 0 -1
  kvcmd do --json Get profile:1 $`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeConn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer closeConn()

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			jsonFamily := a.v.GetBool("json")
			val, err := call(ctx, a.store.Surface, args[0], args[1:], jsonFamily)
			if command.IsNil(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "(nil)")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), Format(val))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "run a command of the JSON family (Get, Set, ArrAppend, ...)")
	cmd.Flags().SetInterspersed(false)
	return cmd
}
