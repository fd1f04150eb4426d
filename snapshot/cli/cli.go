package cli

// package cli implements the fssnap command line.
//
// main.go constructs a ScannerInjector (usually NewDefaultInjector()) and calls
// MakeCLI with it, then calls cmd.Execute().
//
// MakeCLI creates the cobra root command and one subcommand per snapCommand:
//   the root registers the flags every subcommand shares (log level, scan config)
//   the injector registers whatever flags its collaborators need
//   each snapCommand registers its own flags in register()
//   each cobra command's RunE is a wrapper that resolves the scan config, asks the
//     injector for a Scanner, scans the single path argument and hands the snapshot
//     to snapCommand.run()
//
// Errors returned from RunE carry an exit code (common/errors.ExitCodeError) that
// main uses for os.Exit.
import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	fserrors "github.com/twitter/fssnap/common/errors"
	"github.com/twitter/fssnap/common/stats"
	"github.com/twitter/fssnap/snapshot"
	"github.com/twitter/fssnap/snapshot/fingerprint"
	"github.com/twitter/fssnap/snapshot/scan"
)

type ScannerInjector interface {
	RegisterFlags(cmd *cobra.Command)
	Inject(config scan.Config, stat stats.StatsReceiver) (*scan.Scanner, error)
}

// scanFlags are shared by every subcommand.
type scanFlags struct {
	logLevel       string
	configName     string
	configFile     string
	followSymlinks bool
	excludes       []string
	hashCacheSize  int
	printStats     bool
}

func MakeCLI(ctx context.Context, injector ScannerInjector) *cobra.Command {
	flags := &scanFlags{}
	rootCobraCmd := &cobra.Command{
		Use:           "fssnap",
		Short:         "fssnap snapshots a directory tree and prints stable fingerprints of it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			level, err := log.ParseLevel(flags.logLevel)
			if err != nil {
				return fserrors.NewError(err, fserrors.UsageExitCode)
			}
			log.SetLevel(level)
			return nil
		},
	}
	pflags := rootCobraCmd.PersistentFlags()
	pflags.StringVar(&flags.logLevel, "log_level", "info", "Log everything at this level and above (error|info|debug)")
	pflags.StringVar(&flags.configName, "scan_config", scan.DefaultConfigName, fmt.Sprintf("Named scan config, one of %v", scan.PresetNames()))
	pflags.StringVar(&flags.configFile, "config", "", "JSON file overriding fields of the named scan config")
	pflags.BoolVar(&flags.followSymlinks, "follow_symlinks", false, "Scan the contents of symlinked directories")
	pflags.StringSliceVar(&flags.excludes, "exclude", nil, "Skip entries whose name or relative path matches this glob (repeatable)")
	pflags.IntVar(&flags.hashCacheSize, "hash_cache_size", 0, "Entries in the content hash cache, 0 for the config's value, < 0 to disable")
	pflags.BoolVar(&flags.printStats, "stats", false, "Print scan stats as JSON to stderr when done")

	rootCobraCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fserrors.NewError(err, fserrors.UsageExitCode)
	})

	injector.RegisterFlags(rootCobraCmd)

	add := func(subCmd snapCommand) {
		cmd := subCmd.register()
		cmd.Args = usageArgs(cobra.ExactArgs(1))
		cmd.RunE = func(innerCmd *cobra.Command, args []string) error {
			config, err := flags.config(innerCmd)
			if err != nil {
				return fserrors.NewError(err, fserrors.UsageExitCode)
			}
			stat := stats.DefaultStatsReceiver()
			scanner, err := injector.Inject(config, stat)
			if err != nil {
				return fserrors.NewError(err, fserrors.GenericFailureExitCode)
			}
			s, err := scanner.Scan(ctx, args[0])
			if err != nil {
				if snapshot.IsTypeConflict(err) {
					return fserrors.NewError(err, fserrors.InconsistentSnapshotExitCode)
				}
				return fserrors.NewError(err, fserrors.ScanFailureExitCode)
			}
			if err := subCmd.run(s, innerCmd.OutOrStdout()); err != nil {
				return fserrors.NewError(err, fserrors.GenericFailureExitCode)
			}
			if flags.printStats {
				fmt.Fprintf(innerCmd.OutOrStderr(), "%s\n", stat.Render(true))
			}
			return nil
		}
		rootCobraCmd.AddCommand(cmd)
	}

	add(&scanCommand{})
	add(&lsCommand{})
	add(&fingerprintCommand{})

	return rootCobraCmd
}

// usageArgs tags argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fserrors.NewError(err, fserrors.UsageExitCode)
		}
		return nil
	}
}

// config starts from the named preset, applies the config file, then any flag the
// user set explicitly.
func (f *scanFlags) config(cmd *cobra.Command) (scan.Config, error) {
	config, err := scan.GetConfig(f.configName)
	if err != nil {
		return config, err
	}
	if f.configFile != "" {
		if config, err = scan.LoadFile(config, f.configFile); err != nil {
			return config, err
		}
	}
	if cmd.Flags().Changed("follow_symlinks") {
		config.FollowSymlinks = f.followSymlinks
	}
	if cmd.Flags().Changed("hash_cache_size") {
		config.HashCacheSize = f.hashCacheSize
	}
	config.Excludes = append(config.Excludes, f.excludes...)
	return config, config.Validate()
}

type snapCommand interface {
	register() *cobra.Command
	run(s snapshot.Snapshot, out io.Writer) error
}

type scanCommand struct{}

func (c *scanCommand) register() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <path>",
		Short: "scans path and prints the merkle digest of its snapshot as hash/size",
	}
}

func (c *scanCommand) run(s snapshot.Snapshot, out io.Writer) error {
	digest, err := fingerprint.MerkleRoot(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s/%d\n", digest.Hash, digest.SizeBytes)
	return err
}

type lsCommand struct{}

func (c *lsCommand) register() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <path>",
		Short: "lists the relative paths of everything under path, in snapshot order",
	}
}

func (c *lsCommand) run(s snapshot.Snapshot, out io.Writer) error {
	return printLines(out, fingerprint.RelativePaths(s))
}

type fingerprintCommand struct{}

func (c *fingerprintCommand) register() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <path>",
		Short: "prints path, type, access and content hash of every entry under path",
	}
}

func (c *fingerprintCommand) run(s snapshot.Snapshot, out io.Writer) error {
	return printLines(out, fingerprint.Lines(s))
}

func printLines(out io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
