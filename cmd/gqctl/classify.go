package main

import (
	"fmt"
	"strconv"

	"github.com/jengzang/ghostquant-backend-go/internal/heatmap"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <score>...",
		Short: "Place scores on the risk ladder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				score, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid score %q: %w", arg, err)
				}
				class := heatmap.ClassifyRisk(score)
				fmt.Fprintf(out, "  %-8s %s %s\n", arg, levelLabel(class), subtle.Sprint(class.Color))
			}
			return nil
		},
	}
}
