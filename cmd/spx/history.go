package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oati/spline-export/internal/config"
	"github.com/oati/spline-export/internal/history"
)

const (
	hColorReset = "\033[0m"
	hColorGreen = "\033[1;32m"
	hColorRed   = "\033[1;31m"
	hColorDim   = "\033[2m"
)

func colorizeStatus(status string, colored bool) string {
	if !colored {
		return status
	}
	switch status {
	case history.StatusOK:
		return hColorGreen + status + hColorReset
	case history.StatusFailed:
		return hColorRed + status + hColorReset
	}
	return status
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent export runs",
		Long:  `Prints recent export runs newest first, one per line: started, status, splines, keyframes, duration, scene, output. Output is TSV for easy piping.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := history.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open history db: %w", err)
			}
			defer db.Close()

			runs, err := db.Recent(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(os.Stderr, "No export runs recorded yet.")
				return nil
			}

			colored := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range runs {
				started := r.StartedAt.Format("2006-01-02 15:04:05")
				if colored {
					started = hColorDim + started + hColorReset
				}
				out := r.OutputPath
				if out == "" {
					out = "-"
				}
				fmt.Printf("%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
					started,
					colorizeStatus(r.Status, colored),
					r.Splines,
					r.Keyframes,
					r.Duration,
					r.ScenePath,
					out,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max runs to show (0 = no limit)")

	return cmd
}
