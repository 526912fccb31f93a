package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/boilr-dev/relcollect/internal/branding"
	"github.com/boilr-dev/relcollect/internal/collector"
	"github.com/boilr-dev/relcollect/internal/config"
	"github.com/boilr-dev/relcollect/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type buildInfo struct {
	version string
	commit  string
	date    string
}

// app carries the state shared by one command tree.
type app struct {
	build      buildInfo
	fs         afero.Fs
	v          *viper.Viper
	configFile string
	dryRun     bool
}

func newApp(build buildInfo, fs afero.Fs) *app {
	return &app{build: build, fs: fs, v: config.New(fs)}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	a := newApp(buildInfo{version: version, commit: commit, date: date}, afero.NewOsFs())
	cmd := newRootCmd(a)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scans the project root for build-<platform> directories and copies
the executable found in each (br, or br.exe for Windows builds) into
releases/<build directory>/. Build directories without an executable are skipped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCollect(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default: <project-root>/"+branding.ConfigFile()+" if present)")
	pf.String("project-root", ".", "Directory containing the build-* directories")
	pf.String("release-root", "", "Destination tree (default: <project-root>/releases)")
	pf.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.String("log-format", logging.FormatText, "Log format (text or json)")

	_ = a.v.BindPFlag(config.KeyProjectRoot, pf.Lookup("project-root"))
	_ = a.v.BindPFlag(config.KeyReleaseRoot, pf.Lookup("release-root"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "Report what would be copied without writing anything")

	cmd.AddCommand(newVersionCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newListCmd(a))
	return cmd
}

// load resolves the configuration and builds the logger for a command.
func (a *app) load(stderr io.Writer) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(a.v, a.fs, a.configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.CheckRequiredVersion(a.build.version); err != nil {
		return nil, nil, err
	}
	log, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func (a *app) runCollect(cmd *cobra.Command) error {
	cfg, log, err := a.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if cfg.File != "" {
		log.WithField("file", cfg.File).Debug("loaded config file")
	}

	opts := cfg.CollectorOptions()
	opts.DryRun = a.dryRun

	summary, err := collector.New(a.fs, log, opts).Run()
	if err != nil {
		return err
	}

	if a.dryRun {
		out := cmd.OutOrStdout()
		for _, o := range summary.Outcomes {
			if o.Status == collector.StatusPlanned {
				fmt.Fprintf(out, "%s -> %s\n", o.Source, o.Target)
			}
		}
	}
	return nil
}
