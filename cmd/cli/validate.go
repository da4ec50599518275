package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"hybrid-sim/internal/hybrid"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the config and construct the plant without simulating it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, h, err := root.setup()
			if err != nil {
				return err
			}
			techs, _ := h.Config[hybrid.KeyTechnologies].(map[string]any)
			names := make([]string, 0, len(techs))
			for name := range techs {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(cmd.OutOrStdout(), "config OK: %s, %d-year project, %d-hour schedule\n",
				strings.Join(names, "+"), cfg.ProjectLifetime, len(h.Site.DesiredSchedule()))
			return nil
		},
	}
}
