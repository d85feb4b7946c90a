package main

import (
	"github.com/spf13/cobra"

	"github.com/Xnn511/kiwa/internal/platform/config"
)

type rootOptions struct {
	configFile string
	overrides  map[string]any
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "kiwa",
		Short:         "Kiwa restaurant website",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to a YAML config file")

	cmd.AddCommand(newServeCmd(opts), newCheckCmd(opts))
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) (config.Config, error) {
	var loadOpts []config.Option
	if o.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.configFile))
	}
	if len(o.overrides) > 0 {
		loadOpts = append(loadOpts, config.WithOverrides(o.overrides))
	}
	return config.Load(cmd.Context(), loadOpts...)
}
