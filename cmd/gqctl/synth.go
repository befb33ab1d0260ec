package main

import (
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/synthetic"
	"github.com/spf13/cobra"
)

func synthCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Emit synthetic payloads for demos and tests",
	}
	cmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Generator seed, 0 uses the clock")

	generator := func() *synthetic.Generator {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return synthetic.NewGenerator(seed)
	}

	var clusters, perCluster int
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Emit a clustered entity graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), generator().Graph(clusters, perCluster))
		},
	}
	graphCmd.Flags().IntVar(&clusters, "clusters", 4, "Number of clusters")
	graphCmd.Flags().IntVar(&perCluster, "per-cluster", 6, "Entities per cluster")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "heatmap",
			Short: "Emit a heatmap payload covering every layer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeJSON(cmd.OutOrStdout(), generator().Heatmap())
			},
		},
		graphCmd,
	)
	return cmd
}
