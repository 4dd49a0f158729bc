package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		in      string
		want    Output
		wantErr bool
	}{
		{"table", Table, false},
		{" JSON ", JSON, false},
		{"yaml", YAML, false},
		{"markdown", Markdown, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutput(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutput(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOutput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type sample struct {
	Metric string   `json:"metric" yaml:"metric"`
	Value  *float64 `json:"value" yaml:"value"`
}

func TestEncode(t *testing.T) {
	v := 1.389
	in := sample{Metric: "FIB-4", Value: &v}

	var js bytes.Buffer
	if err := Encode(&js, in, JSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"value": 1.389`) {
		t.Errorf("unexpected JSON:\n%s", js.String())
	}

	var ym bytes.Buffer
	if err := Encode(&ym, in, YAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if ym.String() != "metric: FIB-4\nvalue: 1.389\n" {
		t.Errorf("unexpected YAML:\n%q", ym.String())
	}

	if err := Encode(&bytes.Buffer{}, in, Table); err == nil {
		t.Error("expected an error for table output")
	}
}

func TestTable_ASCII(t *testing.T) {
	tb := NewTable(false)
	tb.Title("Liver")
	tb.Header("Metric", "Value", "Interpretation")
	tb.Row("FIB-4", "1.389", "Indeterminate")
	tb.Separator()
	tb.Row("APRI", "0.38", "Low")
	tb.Footer("", "", "Screening only")
	tb.Columns(Column{Number: 2, Align: AlignRight})
	out := tb.String()

	// header and footer case depends on the style, so compare upper-cased
	upper := strings.ToUpper(out)
	for _, want := range []string{"LIVER", "METRIC", "FIB-4", "1.389", "───", "SCREENING ONLY"} {
		if !strings.Contains(upper, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTable_Markdown(t *testing.T) {
	tb := NewTable(true)
	tb.Header("Metric", "Value")
	tb.Row("APRI", 0.38)
	out := tb.String()

	if !strings.Contains(out, "| Metric") {
		t.Errorf("expected markdown header:\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator:\n%s", out)
	}
}
