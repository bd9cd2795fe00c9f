package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oati/spline-export/internal/config"
	"github.com/oati/spline-export/internal/export"
	"github.com/oati/spline-export/internal/history"
	"github.com/oati/spline-export/internal/scenefile"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify scene file, output paths, and history DB",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Scene ===")
			fmt.Printf("  Path: %s\n", cfg.ScenePath)
			host, err := scenefile.Load(cfg.ScenePath)
			if err != nil {
				fmt.Printf("  Status: UNREADABLE (%v)\n", err)
			} else {
				start, end := host.AnimationRange()
				exportable := export.FilterSplines(host)
				fmt.Printf("  Objects: %d total, %d exportable\n", len(host.Objects()), len(exportable))
				fmt.Printf("  Range: %d to %d at %g fps\n", start, end, host.FrameRate())
			}

			fmt.Println("\n=== Output ===")
			fmt.Printf("  Primary:  %s\n", cfg.OutputPath)
			checkWritableDir(filepath.Dir(cfg.OutputPath))
			fmt.Printf("  Fallback: %s\n", cfg.FallbackPath)
			checkWritableDir(filepath.Dir(cfg.FallbackPath))

			fmt.Println("\n=== History ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first export)")
				return nil
			}

			db, err := history.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open history db: %w", err)
			}
			defer db.Close()

			count, err := db.RunCount()
			if err != nil {
				return fmt.Errorf("count runs: %w", err)
			}
			fmt.Printf("  Runs: %d\n", count)

			if runs, err := db.Recent(1); err == nil && len(runs) > 0 {
				last := runs[0]
				fmt.Printf("  Last: %s %s (%d splines, %d keyframes)\n",
					last.StartedAt.Format("2006-01-02 15:04:05"), last.Status, last.Splines, last.Keyframes)
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("  Size: %.1f KB\n", float64(info.Size())/1024)
			}

			return nil
		},
	}
}

func checkWritableDir(dir string) {
	if dir == "" || dir == "." {
		fmt.Println("    Directory: . (OK)")
		return
	}
	if info, err := os.Stat(dir); err == nil {
		if info.IsDir() {
			fmt.Printf("    Directory: %s (OK)\n", dir)
		} else {
			fmt.Printf("    Directory: %s (NOT A DIRECTORY)\n", dir)
		}
		return
	}
	fmt.Printf("    Directory: %s (missing, will be created)\n", dir)
}
