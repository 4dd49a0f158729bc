// Package format renders command output as terminal tables, Markdown, JSON
// or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// Output selects an output encoding.
type Output string

const (
	Table    Output = "table"
	Markdown Output = "markdown"
	JSON     Output = "json"
	YAML     Output = "yaml"
)

// Outputs lists the accepted values, for flag help.
var Outputs = []Output{Table, Markdown, JSON, YAML}

// ParseOutput validates a user-supplied output name.
func ParseOutput(s string) (Output, error) {
	o := Output(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Outputs {
		if o == known {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown output %q (want table, markdown, json or yaml)", s)
}

// Encode writes v as JSON or YAML. Table outputs are not handled here.
func Encode(w io.Writer, v any, o Output) error {
	switch o {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("output %q is not a structured encoding", o)
}

// Align is a column alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
)

// Column configures one 1-based column.
type Column struct {
	Number   int
	Align    Align
	MaxWidth int
}

// TableBuilder builds a table once and renders it in the mode chosen at
// creation.
type TableBuilder struct {
	writer   table.Writer
	markdown bool
}

// NewTable returns a builder; markdown selects GitHub-flavoured output
// instead of box drawing.
func NewTable(markdown bool) *TableBuilder {
	w := table.NewWriter()
	if !markdown {
		w.SetStyle(table.StyleLight)
	}
	return &TableBuilder{writer: w, markdown: markdown}
}

// Title sets a caption rendered above the table.
func (b *TableBuilder) Title(s string) { b.writer.SetTitle(s) }

func (b *TableBuilder) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	b.writer.AppendHeader(row)
}

func (b *TableBuilder) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	b.writer.AppendRow(row)
}

// Separator draws a rule between row groups.
func (b *TableBuilder) Separator() { b.writer.AppendSeparator() }

func (b *TableBuilder) Footer(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	b.writer.AppendFooter(row)
}

func (b *TableBuilder) Columns(cols ...Column) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{
			Number:   c.Number,
			Align:    toTextAlign(c.Align),
			WidthMax: c.MaxWidth,
		}
	}
	b.writer.SetColumnConfigs(cfgs)
}

func (b *TableBuilder) String() string {
	if b.markdown {
		return b.writer.RenderMarkdown()
	}
	return b.writer.Render()
}

func toTextAlign(a Align) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	default:
		return text.AlignDefault
	}
}
