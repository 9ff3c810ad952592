package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/FFengIll/psancestor/pkg"
)

func newSnapshotCmd(o *options) *cobra.Command {
	var output string
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Dump the current process table to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			snapshot, err := pkg.Collect(o.opener(cfg))
			if err != nil {
				return err
			}
			if output == "-" {
				data, err := snapshot.Dump(cfg.Format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			path, err := snapshot.DumpFile(output, cfg.Format)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"path":      path,
				"processes": snapshot.Len(),
			}).Infoln("snapshot written")
			return nil
		},
	}

	flags := snapshotCmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "snapshot file, - for stdout")
	flags.StringVarP(&o.format, "format", "f", pkg.FormatJSON, "snapshot format: json or yaml")
	return snapshotCmd
}
