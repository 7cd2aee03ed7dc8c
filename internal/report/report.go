// Package report prints exercise results to the console: labelled slice
// previews and aligned tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-comm/dsp/core"
)

// Preview writes "label (first n of total): [v0 v1 ...]".
func Preview[T any](w io.Writer, label string, values []T, n int) {
	head := core.Head(values, n)
	if len(head) < len(values) {
		fmt.Fprintf(w, "%s (first %d of %d): %v\n", label, len(head), len(values), head)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", label, head)
}

// Floats writes a float preview with a fixed precision.
func Floats(w io.Writer, label string, values []float64, n, prec int) {
	head := core.Head(values, n)
	parts := make([]string, len(head))
	for i, v := range head {
		parts[i] = fmt.Sprintf("%.*f", prec, v)
	}
	list := "[" + strings.Join(parts, " ") + "]"
	if len(head) < len(values) {
		fmt.Fprintf(w, "%s (first %d of %d): %s\n", label, len(head), len(values), list)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, list)
}

// Value writes "label: value".
func Value(w io.Writer, label string, v any) {
	fmt.Fprintf(w, "%s: %v\n", label, v)
}

// Section writes a blank line and a heading.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// Table aligns rows into columns.
type Table struct {
	tw *tabwriter.Writer
}

// NewTable starts a table with the given headers.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.Row(toAny(headers)...)
	return t
}

// Row appends one row.
func (t *Table) Row(cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case float64:
			parts[i] = fmt.Sprintf("%.6g", v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

// Flush writes the aligned table.
func (t *Table) Flush() error {
	return t.tw.Flush()
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
