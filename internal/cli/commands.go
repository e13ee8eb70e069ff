package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kvcmd/core/command"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [family]",
		Short: "list command families and their commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			families := append(command.Families(), command.JSON)

			if len(args) == 1 {
				for _, f := range families {
					if strings.EqualFold(f.Name, args[0]) {
						for _, name := range f.Names() {
							fmt.Fprintln(cmd.OutOrStdout(), name)
						}
						return nil
					}
				}
				return fmt.Errorf("unknown family %q", args[0])
			}

			for _, f := range families {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d): %s\n", f.Name, f.Len(), strings.Join(f.Names(), " "))
			}
			return nil
		},
	}
}
