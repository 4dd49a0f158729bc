package screening

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestReport_WriteTable(t *testing.T) {
	svc := newTestService(t, nil, nil)
	smoker := Overrides{Flags: map[string]float64{"smoker": 1}}
	report, err := svc.Screen(context.Background(), Request{Text: labReport, Overrides: smoker})
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}

	var buf bytes.Buffer
	if err := report.WriteTable(&buf, false); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Patient: John Smith   Sex: M   Age: 50",
		"Liver: FLI, FIB-4, APRI, NFS",
		"FIB-4",
		"1.389",
		"ApoB (mg/dL)",
		"smoking penalty applied",
		Disclaimer,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReport_WriteTableMarkdown(t *testing.T) {
	svc := newTestService(t, []string{LiverID}, nil)
	report, err := svc.Screen(context.Background(), Request{Text: labReport})
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	var buf bytes.Buffer
	if err := report.WriteTable(&buf, true); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if !strings.Contains(buf.String(), "| ") {
		t.Errorf("expected markdown table:\n%s", buf.String())
	}
}

func TestWriteExtractionTable(t *testing.T) {
	svc := newTestService(t, nil, nil)
	view := svc.ExtractView(context.Background(), "Sex: F\nALT 30 U/L")

	var buf bytes.Buffer
	if err := WriteExtractionTable(&buf, view, false); err != nil {
		t.Fatalf("WriteExtractionTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"alt_ul", "30", "ast_ul", "—"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
