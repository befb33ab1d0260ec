package main

import (
	"fmt"

	"github.com/jengzang/ghostquant-backend-go/internal/config"
	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create server configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file plus GHOSTQUANT_* overrides)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Path())
			if err != nil {
				return err
			}
			data, err := yamlv3.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			cmd.OutOrStdout().Write(data)
			if err := cfg.Validate(); err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "invalid: %v\n", err)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.AddCommand(show, initCmd)
	return cmd
}
