package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"cfbd_v1/ingestion/internal/client"
	"cfbd_v1/ingestion/internal/table"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// getExamples are the argument lists shown in the get help
var getExamples = [][]string{
	{"games", "-p", "year=2023", "-p", "week=1", "-p", "classification=fbs"},
	{"games", "-p", "year=2023", "--where", "week > 10 && homePoints > 30", "--columns", "id,week,homeTeam,homePoints"},
	{"team-season-stats", "-p", "year=2023", "-p", "conference=SEC", "--columns", "team_name,totalYards"},
	{"sp-ratings", "-p", "year=2023", "--raw"},
}

// exampleText renders examples as shell lines, quoting arguments with spaces
func exampleText(examples [][]string) string {
	var b strings.Builder
	for _, args := range examples {
		b.WriteString("  cfbd get")
		for _, arg := range args {
			if strings.ContainsAny(arg, " &|<>") {
				arg = "'" + arg + "'"
			}
			b.WriteString(" " + arg)
		}
		b.WriteString("\n")
	}
	return b.String()
}

type getOptions struct {
	params  []string
	format  string
	raw     bool
	where   string
	columns []string
	output  string
}

func (a *app) getCmd() *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get <endpoint>",
		Short: "Fetch an endpoint and print the result",
		Long: `Fetch an endpoint and print it as a table.

Parameters are passed as name=value pairs using the API's parameter names.
Columns are variables in --where; a null cell never matches a comparison,
and "??" substitutes a default: (homePoints ?? 0) > 30.

Examples:
` + exampleText(getExamples) + `
Run "cfbd endpoints" to list endpoint names and their parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "query parameter as name=value (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, csv or json")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the raw JSON payload instead of a table")
	cmd.Flags().StringVarP(&opts.where, "where", "w", "", "keep rows matching an expression, e.g. 'week > 10 && homePoints > 30'")
	cmd.Flags().StringSliceVarP(&opts.columns, "columns", "c", nil, "comma separated columns to keep, in order")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func (a *app) runGet(cmd *cobra.Command, name string, opts *getOptions) error {
	if opts.raw && (opts.where != "" || len(opts.columns) > 0) {
		return fmt.Errorf("--raw cannot be combined with --where or --columns")
	}
	if !opts.raw && !validFormat(opts.format) {
		return fmt.Errorf("unknown format %q (want text, csv or json)", opts.format)
	}

	ep, ok := client.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown endpoint %q (run \"cfbd endpoints\" to list them)", name)
	}

	params, err := parseParams(opts.params)
	if err != nil {
		return err
	}

	c, err := a.newClient(cmd.Context())
	if err != nil {
		return err
	}

	log.Debug().
		Str("endpoint", ep.Name).
		Str("path", ep.Path).
		Interface("params", params).
		Msg("Fetching")

	resp, err := ep.Call(cmd.Context(), c, params)
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(cmd.OutOrStdout(), opts.output)
	if err != nil {
		return err
	}
	defer closeOutput()

	if opts.raw {
		return writeRaw(w, resp.JSON())
	}

	t, err := resp.Table()
	if err != nil {
		return err
	}
	if opts.where != "" {
		if t, err = t.Filter(opts.where); err != nil {
			return err
		}
	}
	if len(opts.columns) > 0 {
		if t, err = t.Select(opts.columns...); err != nil {
			return err
		}
	}

	return writeTable(w, t, opts.format)
}

// parseParams turns name=value pairs into a parameter map. A repeated name keeps the last value.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (want name=value)", pair)
		}
		params[name] = strings.TrimSpace(value)
	}
	return params, nil
}

func validFormat(format string) bool {
	switch format {
	case "text", "csv", "json":
		return true
	}
	return false
}

func writeTable(w io.Writer, t *table.Table, format string) error {
	switch format {
	case "csv":
		return t.WriteCSV(w)
	case "json":
		return t.WriteJSON(w)
	default:
		return t.WriteText(w)
	}
}

func writeRaw(w io.Writer, body json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// openOutput returns stdout or the named file
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to close output file")
		}
	}, nil
}
