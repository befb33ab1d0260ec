package main

import (
	"fmt"
	"time"

	"github.com/jengzang/ghostquant-backend-go/internal/heatmap"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/spf13/cobra"
)

func heatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Aggregate and inspect heatmap payloads",
	}
	cmd.AddCommand(
		heatmapAggregateCmd(),
		heatmapTopCmd(),
		heatmapSpikesCmd(),
	)
	return cmd
}

func loadHeatmap(cmd *cobra.Command, path string) (models.HeatmapRaw, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return models.ParseHeatmapRaw(data)
}

func heatmapAggregateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "aggregate <file|->",
		Short: "Summarize every layer and compute the global risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadHeatmap(cmd, args[0])
			if err != nil {
				return err
			}
			agg := heatmap.Aggregate(raw, time.Now().UTC())
			global := heatmap.ClassifyRisk(agg.GlobalRisk)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, map[string]interface{}{
					"heatmap":      agg,
					"global_level": global,
				})
			}

			brand.Fprintln(out, "GhostQuant heatmap")
			subtle.Fprintf(out, "  %-10s %6s %6s %6s %6s\n", "LAYER", "COUNT", "MIN", "AVG", "MAX")
			for _, layer := range agg.Layers() {
				fmt.Fprintf(out, "  %-10s %6d %6.3f %6.3f %6.3f\n",
					layer.Name, len(layer.Data), layer.MinScore, layer.AvgScore, layer.MaxScore)
			}
			fmt.Fprintf(out, "\n  global risk %.3f %s\n", agg.GlobalRisk, levelLabel(global))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the aggregated heatmap as JSON")
	return cmd
}

func heatmapTopCmd() *cobra.Command {
	var layerName string
	var limit int
	cmd := &cobra.Command{
		Use:   "top <file|->",
		Short: "List the highest-scoring categories of a layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.IsLayerName(layerName) {
				return fmt.Errorf("unknown layer %q, expected one of %v", layerName, models.LayerNames)
			}
			raw, err := loadHeatmap(cmd, args[0])
			if err != nil {
				return err
			}
			layer, _ := heatmap.Aggregate(raw, time.Now().UTC()).Layer(layerName)

			out := cmd.OutOrStdout()
			for i, item := range heatmap.TopItems(layer, limit) {
				class := heatmap.ClassifyRisk(item.Score)
				fmt.Fprintf(out, "  %2d. %-20s %.3f %s\n", i+1, item.Key, item.Score, levelLabel(class))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&layerName, "layer", "l", models.LayerChains, "Layer to rank")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of items to show")
	return cmd
}

func heatmapSpikesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spikes <current> <previous>",
		Short: "Report categories whose score rose sharply between two payloads",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := loadHeatmap(cmd, args[0])
			if err != nil {
				return err
			}
			previous, err := loadHeatmap(cmd, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			spikes := heatmap.DetectLayerSpikes(current, previous)
			if len(spikes) == 0 {
				subtle.Fprintln(out, "  No spikes")
				return nil
			}
			for _, s := range spikes {
				fmt.Fprintf(out, "  %-9s %-20s %.3f -> %.3f (%s)\n",
					s.Layer, s.Key, s.Previous, s.Current, bad.Sprintf("+%.3f", s.Change))
			}
			return nil
		},
	}
}
