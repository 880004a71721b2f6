package main

import (
	"fmt"

	"cfbd_v1/ingestion/internal/credentials"

	"github.com/spf13/cobra"
)

func (a *app) keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key>",
		Short: "Store an API key in the key file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := credentials.Save(args[0], a.cfg.CFBDAPIKeyDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the key that requests would use, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := a.apiKey
			if explicit == "" {
				explicit = a.cfg.CFBDAPIKey
			}
			key, err := credentials.Resolve(explicit, a.cfg.CFBDAPIKeyDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), credentials.Mask(key))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the key file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := credentials.FilePath(a.cfg.CFBDAPIKeyDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}
