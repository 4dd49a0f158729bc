package interpret

import (
	"encoding/json"
	"math"
	"strconv"
)

// Placeholder stands in for an absent value in rendered rows.
const Placeholder = "—"

// Value is a result value: a rounded number, free text, or absent.
type Value struct {
	num      *float64
	text     *string
	decimals int
}

// Number returns a numeric value rounded half away from zero to decimals
// places.
func Number(v float64, decimals int) Value {
	r := Round(v, decimals)
	return Value{num: &r, decimals: decimals}
}

// Text returns a textual value.
func Text(s string) Value {
	return Value{text: &s}
}

// Absent returns the empty value.
func Absent() Value { return Value{} }

// IsAbsent reports whether the value carries nothing.
func (v Value) IsAbsent() bool { return v.num == nil && v.text == nil }

// Float returns the numeric value, if any.
func (v Value) Float() (float64, bool) {
	if v.num == nil {
		return 0, false
	}
	return *v.num, true
}

// String formats the value at its precision, or returns the placeholder.
func (v Value) String() string {
	switch {
	case v.num != nil:
		return strconv.FormatFloat(*v.num, 'f', v.decimals, 64)
	case v.text != nil:
		return *v.text
	}
	return Placeholder
}

// MarshalJSON emits a number, a string, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.num != nil:
		return []byte(strconv.FormatFloat(*v.num, 'f', v.decimals, 64)), nil
	case v.text != nil:
		return json.Marshal(*v.text)
	}
	return []byte("null"), nil
}

// MarshalYAML emits a float, a string, or null.
func (v Value) MarshalYAML() (interface{}, error) {
	switch {
	case v.num != nil:
		return *v.num, nil
	case v.text != nil:
		return *v.text, nil
	}
	return nil, nil
}

// Equal reports whether both values render identically.
func (v Value) Equal(o Value) bool {
	return v.IsAbsent() == o.IsAbsent() && v.String() == o.String()
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(x)
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// ResultItem is one interpreted metric. Notes carry an empty Metric.
type ResultItem struct {
	Metric         string   `json:"metric" yaml:"metric"`
	Value          Value    `json:"value" yaml:"value"`
	Interpretation string   `json:"interpretation" yaml:"interpretation"`
	Severity       Severity `json:"severity" yaml:"severity"`
}

// IsNote reports whether the item is an informational note.
func (r ResultItem) IsNote() bool { return r.Metric == "" }

// Assembler collects result items in the order they are added. Absent values
// are skipped, so callers can add every metric unconditionally.
type Assembler struct {
	items []ResultItem
}

// Add classifies v against table and appends the item. A nil v adds nothing.
func (a *Assembler) Add(metric string, v *float64, decimals int, table Table) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	b := table.Classify(*v)
	a.items = append(a.items, ResultItem{
		Metric:         metric,
		Value:          Number(*v, decimals),
		Interpretation: b.Label,
		Severity:       b.Severity,
	})
}

// Note appends an informational item with an empty metric.
func (a *Assembler) Note(text string) {
	a.items = append(a.items, ResultItem{
		Value:          Absent(),
		Interpretation: text,
		Severity:       SeverityInfo,
	})
}

// Items returns a copy of the collected items.
func (a *Assembler) Items() []ResultItem {
	out := make([]ResultItem, len(a.items))
	copy(out, a.items)
	return out
}
