package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"hybrid-sim/internal/hybrid"
)

type runOptions struct {
	out     string
	quiet   bool
	zeroPad bool
	asJSON  bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the configured plant and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.out, "out", "", "write year-one hourly series as CSV (overrides output.hourly_csv)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")
	cmd.Flags().BoolVar(&opts.zeroPad, "zero-pad", false, "pad a power series shorter than one year with zeros")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result record as JSON")
	return cmd
}

func runSimulation(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, runner, h, err := root.setup()
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	runOpts := []hybrid.RunOption{
		hybrid.WithOutput(stdout),
		hybrid.WithVerbose(cfg.Verbose && !opts.quiet && !opts.asJSON),
	}
	if cfg.ZeroPad || opts.zeroPad {
		runOpts = append(runOpts, hybrid.WithZeroPad())
	}
	res, err := runner.Run(ctx, h, cfg.ProjectLifetime, runOpts...)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	}

	out := opts.out
	if out == "" {
		out = cfg.Output.HourlyCSV
	}
	if out == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := hybrid.WriteHourlyCSV(out, res); err != nil {
		return err
	}
	if !opts.asJSON {
		fmt.Fprintf(stdout, "Wrote %d rows to %s\n", len(res.CombinedPowerProduction), out)
	}
	return nil
}
