package main

import (
	"github.com/spf13/cobra"

	"hybrid-sim/internal/config"
	"hybrid-sim/internal/engine/reference"
	"hybrid-sim/internal/hybrid"
	"hybrid-sim/internal/logger"
)

type rootOptions struct {
	cfgPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "hybridsim",
		Short:        "Configure and run hybrid power plant simulations",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "config.yaml", "configuration file (YAML or JSON)")
	cmd.AddCommand(newRunCmd(opts), newValidateCmd(opts))
	return cmd
}

// setup loads the config and builds a simulation handle from it.
func (o *rootOptions) setup() (*config.Config, *hybrid.Runner, *hybrid.Handle, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	runner := hybrid.New(reference.New())
	runner.Log = logger.New("cli")
	h, err := runner.Setup(cfg.Hybrid, cfg.Plant)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, runner, h, nil
}
