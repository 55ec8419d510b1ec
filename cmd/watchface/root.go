package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aelexs/watchface/internal/config"
	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configFile string
	preset     string
	motion     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "watchface",
		Short:         "An analog watch face for the browser and the terminal",
		Version:       domain.ServiceVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file (environment variables still win)")
	flags.StringVarP(&opts.preset, "preset", "p", "", fmt.Sprintf("face preset %v", watchface.PresetNames()))
	flags.StringVarP(&opts.motion, "motion", "m", "", "hand motion: sweep or step (default from preset)")

	cmd.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newRenderCmd(opts),
	)
	return cmd
}

// load reads configuration and applies the persistent flags. A --preset
// flag drops motion and schedule overrides from the config.
func (o *rootOptions) load(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, config.WithFile(o.configFile))
	if err != nil {
		return nil, err
	}
	if o.preset != "" {
		cfg.Face.Preset, cfg.Face.Motion, cfg.Face.Schedule = o.preset, "", ""
	}
	if o.motion != "" {
		cfg.Face.Motion = o.motion
	}
	if _, err := cfg.Face.Style(); err != nil {
		return nil, err
	}
	return cfg, nil
}
