package main

import (
	"fmt"

	"github.com/jengzang/ghostquant-backend-go/internal/constellation"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/spf13/cobra"
)

func constellationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "constellation",
		Short:   "Build render models from an entity graph",
		Aliases: []string{"const"},
	}
	cmd.AddCommand(constellationBuildCmd(), constellationGlobeCmd())
	return cmd
}

func loadGraph(cmd *cobra.Command, path string) (models.EntityGraph, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return models.EntityGraph{}, err
	}
	return models.ParseGraph(data)
}

func constellationBuildCmd() *cobra.Command {
	var width, height float64
	var seed uint64
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "build <file|->",
		Short: "Lay out the graph as a constellation map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			visual := constellation.BuildVisualModel(graph.Nodes, graph.Edges, width, height, constellation.NewSeededSource(seed))

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, visual)
			}

			brand.Fprintf(out, "Constellation %gx%g\n", visual.Width, visual.Height)
			fmt.Fprintf(out, "  %-11s %d\n", "nodes", len(visual.Nodes))
			fmt.Fprintf(out, "  %-11s %d\n", "edges", len(visual.Edges))
			fmt.Fprintf(out, "  %-11s %d\n", "galaxies", len(visual.Galaxies))
			fmt.Fprintf(out, "  %-11s %d\n", "supernovas", len(visual.Supernovas))
			fmt.Fprintf(out, "  %-11s %d\n", "wormholes", len(visual.Wormholes))
			for _, g := range visual.Galaxies {
				subtle.Fprintf(out, "    galaxy %d: %d members, risk %.3f\n", g.ID, len(g.Members), g.Risk)
			}
			for _, s := range visual.Supernovas {
				bad.Fprintf(out, "    supernova %s risk %.3f\n", s.NodeID, s.Risk)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1200, "Canvas width in pixels")
	cmd.Flags().Float64Var(&height, "height", 800, "Canvas height in pixels")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Starfield seed, 0 for random")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full visual model as JSON")
	return cmd
}

func constellationGlobeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "globe <file|->",
		Short: "Project geolocated entities onto the threat globe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			globe := constellation.BuildThreatGlobe(graph.Nodes, graph.Edges)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, globe)
			}
			brand.Fprintf(out, "Threat globe: %d points, %d arcs\n", len(globe.Points), len(globe.Arcs))
			for _, a := range globe.Arcs {
				fmt.Fprintf(out, "  %s -> %s  %.0f km\n", a.SourceID, a.TargetID, a.DistanceKm)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the globe as JSON")
	return cmd
}
