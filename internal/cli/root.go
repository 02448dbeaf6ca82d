// internal/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rocjpegsetup "github.com/arc-language/rocjpeg-setup"
	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

var (
	cfgFile        string
	catalogFile    string
	rocmPath       string
	runtimeOpt     string
	debug          bool
	logFormat      string
	transcriptPath string
	dryRun         bool
	osReleasePath  string

	config core.Config
	log    *logrus.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rocjpeg-setup",
	Short: "Install rocJPEG build and runtime dependencies",
	Long: `rocjpeg-setup - rocJPEG dependency installer

Verifies the ROCm installation, detects the Linux distribution and installs
the packages rocJPEG needs with the system package manager.

Supported on: Ubuntu 20/22/24, Debian 11/12, CentOS 7/8, RedHat 7/8/9,
SLES 15 and Mariner.`,
	Version:           rocjpegsetup.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initConfig,
	RunE:              runInstall,
}

// Execute executes the root command. Interrupts cancel the running
// package-manager command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rocjpeg-setup/config.yaml)")
	flags.StringVar(&catalogFile, "catalog", "", "package catalog file (default is the built-in catalog)")
	flags.StringVar(&rocmPath, "rocm_path", core.DefaultRocmPath, "ROCm installation path, overridden by $"+core.RocmPathEnv)
	flags.StringVar(&runtimeOpt, "runtime", "ON", "install runtime packages [ON or OFF]")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", core.LogFormatText, "log format [text or json]")
	flags.StringVar(&transcriptPath, "transcript", "", "write an xz-compressed command transcript to this file")
	flags.BoolVar(&dryRun, "dry-run", false, "print package-manager commands instead of running them")
	flags.StringVar(&osReleasePath, "os-release", "", "OS descriptor file (default is /etc/os-release)")
	_ = flags.MarkHidden("os-release")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(core.ErrInvalidArgument, err.Error())
	})

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	file, err := core.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := core.Overrides{DryRun: dryRun}
	if flags.Changed("rocm_path") {
		overrides.RocmPath = &rocmPath
	}
	if flags.Changed("runtime") {
		overrides.Runtime = &runtimeOpt
	}
	if flags.Changed("debug") {
		overrides.Debug = &debug
	}
	if flags.Changed("log-format") {
		overrides.LogFormat = &logFormat
	}
	if flags.Changed("transcript") {
		overrides.Transcript = &transcriptPath
	}
	if flags.Changed("catalog") {
		overrides.Catalog = &catalogFile
	}

	config, err = core.Resolve(file, overrides, os.LookupEnv)
	if err != nil {
		return err
	}

	log = newLogger(config)
	return nil
}

func newLogger(cfg core.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if cfg.LogFormat == core.LogFormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.Debug {
		l.SetLevel(logrus.DebugLevel)
		l.Debug("Debug logging is enabled")
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// newManager builds the manager for the resolved config. The returned
// close function flushes the transcript.
func newManager(cmd *cobra.Command, r runner.Runner) (*rocjpegsetup.Manager, func() error, error) {
	entry := logrus.NewEntry(log)
	transcript := (*runner.Transcript)(nil)

	if r == nil {
		if config.DryRun {
			r = &runner.DryRun{Out: cmd.OutOrStdout()}
		} else {
			if config.Transcript != "" {
				t, err := runner.OpenTranscript(config.Transcript)
				if err != nil {
					return nil, nil, err
				}
				transcript = t
				entry = entry.WithField("run_id", t.RunID)
			}
			r = runner.NewExec(entry, transcript)
		}
	}

	mgr, err := rocjpegsetup.NewManager(config, rocjpegsetup.Options{
		Runner:        r,
		Log:           entry,
		OSReleasePath: osReleasePath,
	})
	if err != nil {
		transcript.Close()
		return nil, nil, err
	}

	return mgr, transcript.Close, nil
}
