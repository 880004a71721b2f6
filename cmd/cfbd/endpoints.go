package main

import (
	"strings"

	"cfbd_v1/ingestion/internal/client"
	"cfbd_v1/ingestion/internal/table"

	"github.com/spf13/cobra"
)

func (a *app) endpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints [filter]",
		Short: "List the endpoints available to \"get\"",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}
			return endpointTable(filter).WriteText(cmd.OutOrStdout())
		},
	}
}

// endpointTable lists endpoints whose name or path contains filter
func endpointTable(filter string) *table.Table {
	t := table.New("name", "path", "live", "params", "summary")
	for _, ep := range client.Endpoints() {
		if filter != "" && !strings.Contains(ep.Name, filter) && !strings.Contains(ep.Path, filter) {
			continue
		}
		t.AppendRow(table.Row{
			"name":    ep.Name,
			"path":    ep.Path,
			"live":    ep.Live,
			"params":  strings.Join(ep.Params, ","),
			"summary": ep.Summary,
		})
	}
	return t
}
