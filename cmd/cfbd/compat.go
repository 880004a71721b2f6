package main

import (
	"fmt"
	"net/http"

	"cfbd_v1/ingestion/internal/client"

	"github.com/spf13/cobra"
)

func (a *app) compatCmd() *cobra.Command {
	var pinned string

	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Check the published API version against the pinned one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pinned == "" {
				pinned = a.cfg.CFBDAPIVersion
			}

			hc := &http.Client{Timeout: a.cfg.CFBDTimeout}
			result, err := client.CheckCompatibility(cmd.Context(), hc, a.cfg.CFBDSwaggerURL, pinned)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pinned:  %s\ncurrent: %s\n", result.Pinned, result.Current)
			if !result.Match {
				return fmt.Errorf("API version %s differs from pinned %s", result.Current, result.Pinned)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "compatible")
			return nil
		},
	}

	cmd.Flags().StringVar(&pinned, "pinned", "", "version to compare against (default from CFBD_API_VERSION)")
	return cmd
}
