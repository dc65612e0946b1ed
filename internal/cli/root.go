package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fanparts/fanbase"
	"github.com/fanparts/fanbase/config"
	"github.com/fanparts/fanbase/prompt"
	"github.com/spf13/cobra"
)

// Execute runs the fanbase command line and exits non-zero on failure.
func Execute() {
	if err := execute(newRootCmd(prompt.SurveyAsker{}), os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and logs the error it fails with to stderr.
func execute(cmd *cobra.Command, stderr io.Writer) error {
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err != nil {
		newLogger(stderr, false).Error("command failed", "error", err)
	}
	return err
}

// app holds state shared by subcommands.
type app struct {
	log   *slog.Logger
	asker prompt.Asker

	debug       bool
	configPath  string
	preset      string
	interactive bool
}

func newRootCmd(asker prompt.Asker) *cobra.Command {
	a := &app{asker: asker}
	cmd := &cobra.Command{
		Use:           "fanbase",
		Short:         "Generate parametric fan base plates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.log = newLogger(cmd.ErrOrStderr(), a.debug)
		},
	}
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML parameter file")
	cmd.PersistentFlags().StringVar(&a.preset, "preset", "", "named parameter preset (fan|merox); a preset key in the config file takes precedence")
	cmd.PersistentFlags().BoolVarP(&a.interactive, "interactive", "i", false, "ask for each parameter")

	cmd.AddCommand(renderCmd(a), paramsCmd(a), footprintCmd(a))
	return cmd
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// params resolves the parameters from preset, config file and interactive
// answers, in that order.
func (a *app) params(ctx context.Context) (fanbase.Params, error) {
	name := a.preset
	if name == "" {
		name = config.DefaultPreset
	}
	p, err := config.Preset(name)
	if err != nil {
		return fanbase.Params{}, err
	}
	if a.configPath != "" {
		p, err = config.LoadPreset(a.configPath, name)
		if err != nil {
			return fanbase.Params{}, err
		}
		a.log.Debug("loaded config", "path", a.configPath)
	}
	if a.interactive {
		p, err = prompt.Params(ctx, a.asker, p)
		if err != nil {
			return fanbase.Params{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return fanbase.Params{}, err
	}
	a.log.Debug("using parameters", "params", p)
	return p, nil
}
