package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FFengIll/psancestor/pkg"
)

func newLineageCmd(o *options) *cobra.Command {
	var (
		output string
		dot    bool
	)
	lineageCmd := &cobra.Command{
		Use:   "lineage [pid]",
		Short: "Show the ancestor chain of a process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			pid, err := pidArg(args, 0)
			if err != nil {
				return err
			}
			snapshot, err := pkg.Collect(o.opener(cfg))
			if err != nil {
				return err
			}
			chain, err := snapshot.Ancestors(pid)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
				dot = true
			}
			if dot {
				return pkg.RenderLineage(chain, w)
			}
			for i, p := range chain {
				fmt.Fprintf(w, "%d\t%d\t%s\n", i, p.Pid, p.Exec)
			}
			return nil
		},
	}

	flags := lineageCmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "write a dot graph to this file")
	flags.BoolVar(&dot, "dot", false, "print a dot graph instead of a table")
	return lineageCmd
}
