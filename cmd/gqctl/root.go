package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// Output styles
var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	bad    = color.New(color.FgRed)
)

var levelColors = map[models.RiskLevel]*color.Color{
	models.RiskCritical: color.New(color.FgHiRed, color.Bold),
	models.RiskHigh:     color.New(color.FgRed),
	models.RiskModerate: color.New(color.FgYellow),
	models.RiskLow:      color.New(color.FgGreen),
	models.RiskMinimal:  color.New(color.FgBlue),
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gqctl",
		Short:         "gqctl - offline tools for GhostQuant risk payloads",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("gqctl {{ .Version }}\n")

	root.AddCommand(
		heatmapCmd(),
		constellationCmd(),
		classifyCmd(),
		synthCmd(),
		configCmd(),
	)
	return root
}

// execute runs the command tree and prints failures in red
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		bad.Fprintf(root.ErrOrStderr(), "gqctl: %v\n", err)
	}
	return err
}

// readInput reads a file, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func levelLabel(class models.RiskClass) string {
	c, ok := levelColors[class.Level]
	if !ok {
		return string(class.Level)
	}
	return c.Sprint(class.Level)
}
