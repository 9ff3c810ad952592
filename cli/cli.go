package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/FFengIll/psancestor/pkg"
)

const (
	exitOK = iota
	exitOSError
	exitUnknownProcess
)

type options struct {
	configPath string
	source     string
	format     string
	logLevel   string
	verbose    bool
	depth      int

	// open replaces the configured source, for tests.
	open pkg.Opener
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return exitCode(NewRootCmd().Execute())
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	logrus.Errorln(err)
	var unknown *pkg.UnknownProcessError
	if errors.As(err, &unknown) {
		return exitUnknownProcess
	}
	return exitOSError
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "psancestor [pid]",
		Short:         "Print the executable of a process's grandparent",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			pid, err := pidArg(args, 0)
			if err != nil {
				return err
			}
			p, err := pkg.NewResolver(o.opener(cfg)).Ancestor(pid, cfg.Depth)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Exec)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "config file path (json or yaml)")
	flags.StringVar(&o.source, "source", "", "process source: native or gopsutil")
	flags.StringVar(&o.logLevel, "log-level", "warning", "log level")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	flags.IntVarP(&o.depth, "depth", "d", 2, "parent hops to follow")

	rootCmd.AddCommand(newSnapshotCmd(o))
	rootCmd.AddCommand(newReloadCmd(o))
	rootCmd.AddCommand(newLineageCmd(o))
	return rootCmd
}

func (o *options) setupLogging() error {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	return nil
}

// config loads the config file, if any, then applies flags that were set.
func (o *options) config(cmd *cobra.Command) (*pkg.Config, error) {
	cfg := pkg.NewConfig()
	if o.configPath != "" {
		loaded, err := pkg.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("depth") {
		cfg.Depth = o.depth
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	logrus.WithFields(logrus.Fields{
		"source": cfg.Source,
		"depth":  cfg.Depth,
		"format": cfg.Format,
	}).Debugln("config")
	return cfg, cfg.Validate()
}

func (o *options) opener(cfg *pkg.Config) pkg.Opener {
	if o.open != nil {
		return o.open
	}
	return cfg.Opener()
}

// pidArg parses args[i], defaulting to the calling process.
func pidArg(args []string, i int) (uint32, error) {
	if len(args) <= i {
		return pkg.SelfPid(), nil
	}
	pid, err := strconv.ParseUint(args[i], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid pid %q: %w", args[i], err)
	}
	return uint32(pid), nil
}
