package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FFengIll/psancestor/pkg"
)

// reload resolves against a dumped snapshot instead of the live system.
func newReloadCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reload <snapshot-file> <pid>",
		Short: "Resolve an ancestor from a saved snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			snapshot, err := pkg.LoadFile(args[0])
			if err != nil {
				return err
			}
			pid, err := pidArg(args, 1)
			if err != nil {
				return err
			}
			p, err := pkg.NewResolver(snapshot.Opener()).Ancestor(pid, cfg.Depth)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Exec)
			return nil
		},
	}
}
