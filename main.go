package main

import (
	"fmt"
	"os"
	"time"

	"github.com/andareed/siftly-obsmap/config"
	"github.com/andareed/siftly-obsmap/csvsource"
	"github.com/andareed/siftly-obsmap/logging"
	"github.com/andareed/siftly-obsmap/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var version = "dev"

// ExitError is the process status for any failed command.
const ExitError = 2

type rootOptions struct {
	configPath string
	flag       string
	context    string
	debugFile  string
	watch      bool

	cfg          *config.Config
	closeLogging func()
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitError)
	}
}

func execute() error {
	opts := &rootOptions{}
	defer opts.close()
	return newRootCommand(opts).Execute()
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obsmap [windows.csv]",
		Short: "System Observation Boundary Map",
		Long: `obsmap shows when a capture system was observing and when it was not.

It reads a CSV of observation windows, orders them on a shared time axis and
draws observed time solid and time outside observation hatched, next to a
track of the foreground window context.`,
		Args:              cobra.MaximumNArgs(1),
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default "+config.Path()+")")
	pf.StringVar(&opts.flag, "flag", "", "Observation flag column (is_observed_strict, is_observed, is_outside_observation)")
	pf.StringVar(&opts.context, "context", "", "Context column, or (none)")
	pf.StringVar(&opts.debugFile, "debug", "", "Write debug logs to file")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the CSV when it changes")

	cmd.AddCommand(newReportCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	return cmd
}

// setup loads the config, applies command line overrides and starts logging.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("flag") {
		cfg.Input.Flag = o.flag
	}
	if flags.Changed("context") {
		cfg.Input.Context = o.context
	}
	if flags.Changed("debug") {
		cfg.Logging.File = o.debugFile
	}
	if f := flags.Lookup("watch"); f != nil && f.Changed {
		cfg.Watch.Enabled = o.watch
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	cleanup, err := logging.SetupLogging(cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	o.closeLogging = cleanup
	logging.Infof("obsmap %s: started", version)
	return nil
}

func (o *rootOptions) close() {
	if o.closeLogging != nil {
		o.closeLogging()
		o.closeLogging = nil
	}
}

// load reads the CSV named by args or the config and runs the pipeline once.
// With interactive set, a missing flag choice may be asked for.
func (o *rootOptions) load(cmd *cobra.Command, args []string, interactive bool) (*dataState, error) {
	path := o.cfg.Input.Path
	if len(args) > 0 {
		path = args[0]
	}
	t, err := csvsource.Load(path)
	if err != nil {
		return nil, err
	}
	flag := o.cfg.Input.Flag
	if flag == "" && interactive {
		flag = chooseFlagColumn(cmd.InOrStdin(), cmd.ErrOrStderr(), t)
	}
	return newDataState(path, t, flag, o.cfg.Input.Context, o.cfg.Preview.Limit), nil
}

func runDashboard(cmd *cobra.Command, opts *rootOptions, args []string) error {
	d, err := opts.load(cmd, args, true)
	if err != nil {
		return err
	}

	var w *watch.Watcher
	if opts.cfg.Watch.Enabled {
		w, err = watch.New(d.path, time.Duration(opts.cfg.Watch.DebounceMS)*time.Millisecond)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	_, err = tea.NewProgram(newModel(opts.cfg, d, w), tea.WithAltScreen()).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		return err
	}
	return nil
}

func newReportCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "report [windows.csv]",
		Short: "Print the observation summary and context legend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd, args, false)
			if err != nil {
				return err
			}
			r, err := buildReport(d)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), r, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [windows.csv]",
		Short: "Write the charts as PNG and the normalized rows as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd, args, false)
			if err != nil {
				return err
			}
			if d.err != nil {
				return d.err
			}
			if d.contextErr != nil {
				return d.contextErr
			}
			job := exportJob{Dir: out, Path: d.path, Result: d.result, Track: d.track, Chart: opts.cfg.Chart}
			files, err := job.run(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "obsmap-export", "Directory to write into")
	return cmd
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the obsmap config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the default settings",
		Long: `Write a config file holding the default settings to --config, or to the
default location when --config is not given. The format follows the file
extension (.toml, .json, .yaml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.Path()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			logging.Infof("config: wrote defaults to %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)
	return cmd
}
