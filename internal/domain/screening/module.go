package screening

import (
	"fmt"

	"github.com/RahulAnswer/health-app/internal/domain/interpret"
)

// Module is one screening panel. Implementations are stateless and safe for
// concurrent use.
type Module interface {
	ID() string
	Title() string
	// CollectInputs overlays overrides on the extracted data and keeps only
	// the fields the module reads. Zero overrides leave the data as given.
	CollectInputs(extracted PatientData, overrides Overrides) PatientData
	// Compute scores the inputs. Items come back in the module's fixed order.
	Compute(in PatientData) []interpret.ResultItem
	Render(items []interpret.ResultItem) []RenderedLine
	ExportRows(items []interpret.ResultItem) [][]string
}

// RenderedLine is one display line with its severity colour.
type RenderedLine struct {
	Text     string             `json:"text" yaml:"text"`
	Severity interpret.Severity `json:"severity" yaml:"severity"`
	Color    string             `json:"color" yaml:"color"`
}

// Palette maps each severity to its display colour.
var Palette = map[interpret.Severity]string{
	interpret.SeverityLow:           "#2e7d32",
	interpret.SeverityIndeterminate: "#f9a825",
	interpret.SeverityHigh:          "#c62828",
	interpret.SeverityInfo:          "#455a64",
}

// panel carries the parts every module shares.
type panel struct {
	id     string
	title  string
	inputs []string
}

func (p panel) ID() string    { return p.id }
func (p panel) Title() string { return p.title }

func (p panel) CollectInputs(extracted PatientData, overrides Overrides) PatientData {
	in := extracted
	if !overrides.IsZero() {
		in = extracted.Apply(overrides)
	}
	in.Values = in.Values.Only(p.inputs...)
	return in
}

func (panel) Render(items []interpret.ResultItem) []RenderedLine {
	lines := make([]RenderedLine, 0, len(items))
	for _, it := range items {
		text := it.Interpretation
		if !it.IsNote() {
			text = fmt.Sprintf("%s: %s • %s", it.Metric, it.Value, it.Interpretation)
		}
		lines = append(lines, RenderedLine{
			Text:     text,
			Severity: it.Severity,
			Color:    Palette[it.Severity],
		})
	}
	return lines
}

// ExportRows emits [metric, value, interpretation] for every non-note item.
func (panel) ExportRows(items []interpret.ResultItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		if it.IsNote() {
			continue
		}
		rows = append(rows, []string{it.Metric, it.Value.String(), it.Interpretation})
	}
	return rows
}
