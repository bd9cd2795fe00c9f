package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oati/spline-export/internal/config"
	"github.com/oati/spline-export/internal/scenefile"
	"github.com/oati/spline-export/internal/tui"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [scene.toml]",
		Short: "Browse scene objects, keyframes, and sampled geometry",
		Long:  `Opens a TUI panel listing every exportable spline object in the scene. Type to filter by name or class; the right panel shows discovered keyframes and the geometry sampled at the first one. Enter copies the object name.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			scenePath := cfg.ScenePath
			if len(args) == 1 {
				scenePath = args[0]
			}

			host, err := scenefile.Load(scenePath)
			if err != nil {
				return err
			}

			return tui.Run(host)
		},
	}
}
