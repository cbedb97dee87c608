package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battcheck/pkg/check"
	"github.com/charlie0129/battcheck/pkg/config"
	"github.com/charlie0129/battcheck/pkg/utils/ptr"
	"github.com/charlie0129/battcheck/pkg/version"
)

type options struct {
	list     bool
	wait     bool
	interval uint64
	verbose  bool
	id       uint
	json     bool
	noColor  bool

	state    stateValue
	notState stateValue
	lt       uint8
	gt       uint8

	logLevel   string
	configPath string
}

// request builds the Request from the flags, falling back to conf for the
// flags that were not given.
func (o *options) request(cmd *cobra.Command, conf config.Config) (check.Request, error) {
	flags := cmd.Flags()

	req := check.Request{
		List:     o.list,
		JSON:     o.json,
		Wait:     o.wait,
		Verbose:  o.verbose || conf.Verbose(),
		Interval: conf.Interval(),
	}

	if flags.Changed("interval") {
		if o.interval > check.MaxIntervalMillis {
			return check.Request{}, fmt.Errorf("invalid --interval %d: must be at most %d", o.interval, check.MaxIntervalMillis)
		}
		req.Interval = msToDuration(o.interval)
	}

	if flags.Changed("id") {
		req.ID = ptr.To(int(o.id))
	} else if id, ok := conf.BatteryID(); ok {
		req.ID = ptr.To(id)
	}

	if o.state.set {
		req.State = ptr.To(o.state.state)
	}
	if o.notState.set {
		req.NotState = ptr.To(o.notState.state)
	}

	if flags.Changed("lt") {
		if o.lt > 100 {
			return check.Request{}, fmt.Errorf("invalid --lt %d: must be between 0 and 100", o.lt)
		}
		req.LessThan = ptr.To(o.lt)
	}
	if flags.Changed("gt") {
		if o.gt > 100 {
			return check.Request{}, fmt.Errorf("invalid --gt %d: must be between 0 and 100", o.gt)
		}
		req.GreaterThan = ptr.To(o.gt)
	}

	return req, nil
}

func NewCommand(p check.Provider, outcome *check.Outcome) *cobra.Command {
	o := &options{}
	var conf config.Config

	cmd := &cobra.Command{
		Use:   "battcheck",
		Short: "battcheck checks conditions on the battery state",
		Long: `battcheck checks conditions on the battery state and reports the result in its exit code.

Use it to guard other commands, for example only run a backup when the charge is above 50%:

  battcheck --gt 50 && backup.sh

Exit codes:
  0  conditions passed (or --list succeeded)
  1  at least one condition failed
  2  no batteries found
  3  more than one battery found, but no --id given
  4  --id is out of range
  5  unknown error
  6  battery provider error
  64 invalid flags or arguments
  78 invalid config file or BATTCHECK_* environment variable`,
		Version:      fmt.Sprintf("%s %s", version.Version, version.GitCommit),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath := o.configPath
			if !cmd.Flags().Changed("config") {
				configPath = config.DefaultPath()
			}

			f, err := config.NewFile(configPath)
			if err != nil {
				return &configError{err: err}
			}
			conf = f

			if cmd.Flags().Changed("log-level") {
				if err := setupLogger(o.logLevel); err != nil {
					return err
				}
			} else if err := setupLogger(conf.LogLevel()); err != nil {
				return &configError{err: err}
			}

			if o.noColor || conf.NoColor() {
				color.NoColor = true
			}

			logrus.WithFields(f.LogrusFields()).Debug("loaded config")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := o.request(cmd, conf)
			if err != nil {
				return err
			}

			*outcome = check.NewRunner(p, req, cmd.OutOrStdout()).Run()

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVar(&o.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&o.configPath, "config", "", "config file path (json, yaml or toml)")

	f := cmd.Flags()
	f.BoolVarP(&o.list, "list", "l", false, "list available batteries and exit")
	f.BoolVar(&o.json, "json", false, "print the --list output as JSON")
	f.BoolVar(&o.wait, "wait", false, "wait until all conditions pass, checking again every --interval")
	f.Uint64Var(&o.interval, "interval", uint64(check.DefaultInterval.Milliseconds()), "interval between checks when waiting, in milliseconds")
	f.BoolVar(&o.verbose, "verbose", false, "print the battery reading and the result of each condition")
	f.UintVar(&o.id, "id", 0, "battery id to check, see --list")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	f.Var(&o.state, "state", "state condition (charging, discharging, empty, full)")
	f.Var(&o.notState, "not-state", "not-state condition (charging, discharging, empty, full)")
	f.Uint8Var(&o.lt, "lt", 0, "less-than condition on the charge in percent (0-100)")
	f.Uint8Var(&o.gt, "gt", 0, "greater-than condition on the charge in percent (0-100)")

	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}
