package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seuros/gopher-graph/src/cypher"
	"github.com/seuros/gopher-graph/src/parser"
)

func newLintCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file|->",
		Short: "Validate query syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFile(cmd.InOrStdin(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", args[0])
			return nil
		},
	}
}

func newFmtCommand(opts *rootOptions) *cobra.Command {
	var inspect bool

	cmd := &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Print a query in canonical form",
		Long: `Parse query text and render it back in canonical clause order.

With --inspect the clause sequence is printed before the text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseFile(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			text, err := q.Render()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if inspect {
				fmt.Fprintf(out, "Query structure for %s:\n", args[0])
				for i, c := range q.Clauses() {
					fmt.Fprintf(out, "  %d. %s\n", i+1, c)
				}
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&inspect, "inspect", false, "list the clauses in the order they were added")
	return cmd
}

// parseFile parses query text from path, or from stdin for "-".
func parseFile(stdin io.Reader, path string) (*cypher.Query, error) {
	content, err := readInput(stdin, path)
	if err != nil {
		return nil, err
	}

	p, err := parser.New()
	if err != nil {
		return nil, err
	}

	q, err := p.Parse(string(content))
	if err != nil {
		return nil, usageErrorf(1, "Syntax error in %s: %w", path, err)
	}
	return q, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, usageErrorf(2, "Cannot read %s: %w", path, err)
	}
	return content, nil
}
