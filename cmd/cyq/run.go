package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seuros/gopher-graph/src/driver"
)

type runOptions struct {
	query     string
	doc       string
	format    string
	database  string
	read      bool
	timeout   time.Duration
	noSummary bool
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Execute a query against a database",
		Long: `Execute query text, or a YAML query document, and print the records.

Examples:
  cyq run --query 'MATCH (n:Person) RETURN n;'
  cyq run --doc friends.yaml --format jsonl
  echo 'RETURN 1;' | cyq run -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&ro.query, "query", "", "query text (if no file is provided)")
	cmd.Flags().StringVar(&ro.doc, "doc", "", "YAML query document to compile and run")
	cmd.Flags().StringVar(&ro.format, "format", "table", "output format: table|json|jsonl")
	cmd.Flags().StringVar(&ro.database, "database", "", "database name (overrides the URL path)")
	cmd.Flags().BoolVar(&ro.read, "read", false, "run in a read transaction")
	cmd.Flags().DurationVar(&ro.timeout, "timeout", 0, "optional context timeout (e.g. 10s, 1m). 0 disables.")
	cmd.Flags().BoolVar(&ro.noSummary, "no-summary", false, "do not print the summary to stderr")

	return cmd
}

func (ro *runOptions) run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	format := strings.ToLower(ro.format)
	switch format {
	case "table", "json", "jsonl":
	default:
		return usageErrorf(2, "Unknown --format %q (expected table|json|jsonl)", ro.format)
	}

	query, err := ro.resolveQuery(cmd, args)
	if err != nil {
		return err
	}

	url, err := opts.connectionURL()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ro.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.timeout)
		defer cancel()
	}

	cfg := opts.driverConfig()
	cfg.Database = ro.database
	if ro.read {
		cfg.AccessMode = driver.AccessModeRead
	}

	dr, err := driver.NewDriverWithConfig(ctx, url, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = dr.Close(context.Background()) }()

	records, summary, err := dr.RunWithSummary(ctx, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		err = writeTable(out, columns(summary.Columns, records), records)
	case "json":
		err = writeJSONArray(out, records)
	case "jsonl":
		err = writeJSONLines(out, records)
	}
	if err != nil {
		return err
	}

	if !ro.noSummary {
		writeSummary(cmd.ErrOrStderr(), summary)
	}
	return nil
}

// resolveQuery picks the query text from --doc, --query or a file argument.
func (ro *runOptions) resolveQuery(cmd *cobra.Command, args []string) (string, error) {
	sources := 0
	if ro.doc != "" {
		sources++
	}
	if ro.query != "" {
		sources++
	}
	if len(args) == 1 {
		sources++
	}
	if sources > 1 {
		return "", usageErrorf(2, "Provide only one of --doc, --query or a file path")
	}

	if ro.doc != "" {
		q, err := loadDocument(cmd.InOrStdin(), ro.doc)
		if err != nil {
			return "", err
		}
		return q.Render()
	}

	text := ro.query
	if text == "" {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		content, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return "", err
		}
		text = string(content)
	}

	text = strings.TrimSpace(text)
	if text == "" || text == ";" {
		return "", usageErrorf(2, "Query is empty")
	}
	return text, nil
}

func writeSummary(w io.Writer, s *driver.ResultSummary) {
	fmt.Fprintf(w, "rows=%d time=%s type=%s", s.RecordsConsumed, s.ExecutionTime.Truncate(time.Microsecond), s.QueryType)
	if s.ContainsUpdates {
		fmt.Fprintf(w, " nodes+=%d nodes-=%d rels+=%d rels-=%d props=%d labels+=%d labels-=%d",
			s.NodesCreated, s.NodesDeleted, s.RelationshipsCreated, s.RelationshipsDeleted,
			s.PropertiesSet, s.LabelsAdded, s.LabelsRemoved)
	}
	fmt.Fprintln(w)
}
