package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oati/spline-export/internal/config"
	"github.com/oati/spline-export/internal/export"
	"github.com/oati/spline-export/internal/history"
	"github.com/oati/spline-export/internal/notify"
	"github.com/oati/spline-export/internal/scenefile"
)

func exportCmd() *cobra.Command {
	var output, fallback string

	cmd := &cobra.Command{
		Use:   "export [scene.toml]",
		Short: "Export animated spline keyframes to the player JSON file",
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
			if output == "" {
				output = cfg.OutputPath
			}
			if fallback == "" {
				fallback = cfg.FallbackPath
			}

			host, err := scenefile.Load(scenePath)
			if err != nil {
				return err
			}

			db, err := history.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open history db: %w", err)
			}
			defer db.Close()

			started := time.Now()
			summary, err := export.Run(host, export.Options{
				OutputPath:   output,
				FallbackPath: fallback,
				Progress:     os.Stderr,
			})

			notifier := notify.NewConsole()
			run := history.Run{
				StartedAt: started,
				ScenePath: scenePath,
				Duration:  time.Since(started),
			}

			if err != nil {
				run.Status = history.StatusFailed
				run.Message = err.Error()
				if recErr := db.Record(run); recErr != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", recErr)
				}
				notifier.Failure("Export failed", err.Error())
				// Reported through the notifier already; exit non-zero
				// without cobra repeating the message.
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return err
			}

			run.Status = history.StatusOK
			run.OutputPath = summary.OutputPath
			run.Splines = summary.Splines
			run.Keyframes = summary.Keyframes
			if recErr := db.Record(run); recErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", recErr)
			}

			abs, absErr := filepath.Abs(summary.OutputPath)
			if absErr != nil {
				abs = summary.OutputPath
			}
			notifier.Success("Keyframe export completed successfully!",
				fmt.Sprintf("Exported %d spline(s)\n%d total keyframes\nFile saved to: %s",
					summary.Splines, summary.Keyframes, abs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON path (default from config)")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Fallback path when the output directory cannot be created")

	return cmd
}
