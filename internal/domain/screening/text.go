package screening

import (
	"fmt"
	"io"
	"sort"

	"github.com/RahulAnswer/health-app/internal/domain/interpret"
	"github.com/RahulAnswer/health-app/internal/platform/format"
)

// WriteTable renders the report for a terminal: a patient line, one table
// with a row group per module, and the disclaimer. Notes appear as rows with
// an empty value.
func (r *Report) WriteTable(w io.Writer, markdown bool) error {
	if _, err := fmt.Fprintf(w, "Patient: %s   Sex: %s   Age: %s\n\n",
		r.Patient.Name, r.Patient.Sex, r.Patient.Age); err != nil {
		return err
	}

	tb := format.NewTable(markdown)
	tb.Header("Metric", "Value", "Interpretation")
	tb.Columns(
		format.Column{Number: 2, Align: format.AlignRight},
		format.Column{Number: 3, MaxWidth: 72},
	)
	for i, sec := range r.Sections {
		if i > 0 {
			tb.Separator()
		}
		tb.Row(sec.Title, "", "")
		for _, it := range sec.Items {
			if it.IsNote() {
				tb.Row("", "", it.Interpretation)
				continue
			}
			tb.Row("  "+it.Metric, it.Value.String(), it.Interpretation)
		}
	}
	if _, err := fmt.Fprintln(w, tb.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", r.Disclaimer)
	return err
}

// WriteExtractionTable renders an extraction view as key/value rows.
func WriteExtractionTable(w io.Writer, v ExtractionView, markdown bool) error {
	tb := format.NewTable(markdown)
	tb.Header("Field", "Value")
	str := func(p *string) string {
		if p == nil {
			return interpret.Placeholder
		}
		return *p
	}
	age := interpret.Placeholder
	if v.Age != nil {
		age = fmt.Sprintf("%g", *v.Age)
	}
	tb.Row("name", str(v.Name))
	tb.Row("sex", str(v.Sex))
	tb.Row("age", age)
	tb.Separator()
	for _, k := range v.Found {
		tb.Row(k, fmt.Sprintf("%g", v.Labs[k]))
	}
	for _, k := range v.Missing {
		tb.Row(k, interpret.Placeholder)
	}
	if len(v.Flags) > 0 {
		tb.Separator()
		keys := make([]string, 0, len(v.Flags))
		for k := range v.Flags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tb.Row(k, fmt.Sprintf("%g", v.Flags[k]))
		}
	}
	_, err := fmt.Fprintln(w, tb.String())
	return err
}
