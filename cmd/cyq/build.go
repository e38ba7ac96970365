package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/seuros/gopher-graph/src/cypher"
	"github.com/seuros/gopher-graph/src/querydoc"
)

func newBuildCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "build <file.yaml|->",
		Short: "Render a YAML query document as query text",
		Long: `Compile a YAML query document into a query and print its text.

Example:
  cyq build friends.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			text, err := q.Render()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

// loadDocument compiles the document at path, reading stdin for "-".
func loadDocument(stdin io.Reader, path string) (*cypher.Query, error) {
	var (
		doc *querydoc.Document
		err error
	)
	if path == "-" {
		doc, err = querydoc.Decode(stdin)
	} else {
		doc, err = querydoc.LoadFile(path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, usageErrorf(2, "Cannot read %s: %w", path, err)
		}
		return nil, err
	}
	return querydoc.Compile(doc)
}
