package cmd

import (
	"fmt"

	"github.com/bnema/workshop-sync/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the wsync configuration file",
	}

	cmd.AddCommand(
		newConfigInitCmd(opts),
		newConfigShowCmd(opts),
	)

	return cmd
}

func newConfigInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				defaultPath, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.New(), opts.configPath)
			if err != nil {
				return err
			}

			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}

			source := cfg.Source
			if source == "" {
				source = "defaults"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", source); err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
