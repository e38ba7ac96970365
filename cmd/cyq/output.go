package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/seuros/gopher-graph/src/cypher"
)

// columns returns keys when the server reported them, otherwise the sorted
// keys of the first record.
func columns(keys []string, records []cypher.Record) []string {
	if len(keys) > 0 || len(records) == 0 {
		return keys
	}
	for k := range records[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeTable(w io.Writer, keys []string, records []cypher.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if len(keys) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(keys, "\t")); err != nil {
			return err
		}
	}

	for _, rec := range records {
		line := make([]string, 0, len(keys))
		for _, key := range keys {
			line = append(line, stringifyValue(rec[key]))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeJSONLines(w io.Writer, records []cypher.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONArray(w io.Writer, records []cypher.Record) error {
	if records == nil {
		records = []cypher.Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func stringifyValue(v interface{}) string {
	if v == nil {
		return "null"
	}

	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case cypher.NodeValue:
		var b strings.Builder
		b.WriteString("(" + x.ElementID)
		for _, l := range x.Labels {
			b.WriteString(":" + l)
		}
		if len(x.Props) > 0 {
			b.WriteString(" " + stringifyValue(x.Props))
		}
		b.WriteString(")")
		return b.String()
	case cypher.RelationshipValue:
		s := "[" + x.ElementID + ":" + x.Type
		if len(x.Props) > 0 {
			s += " " + stringifyValue(x.Props)
		}
		return s + "]"
	default:
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
		return fmt.Sprint(v)
	}
}
