package interpret

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func f(v float64) *float64 { return &v }

func TestTables_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		in    float64
		want  Severity
	}{
		{"FLI 29.9", FLI, 29.9, SeverityLow},
		{"FLI 30", FLI, 30, SeverityIndeterminate},
		{"FLI 60", FLI, 60, SeverityHigh},
		{"FIB-4 1.3", FIB4, 1.3, SeverityLow},
		{"FIB-4 1.31", FIB4, 1.31, SeverityIndeterminate},
		{"FIB-4 2.67", FIB4, 2.67, SeverityHigh},
		{"APRI 0.5", APRI, 0.5, SeverityIndeterminate},
		{"APRI 1.0", APRI, 1.0, SeverityHigh},
		{"NFS -1.455", NFS, -1.455, SeverityIndeterminate},
		{"NFS 0.675", NFS, 0.675, SeverityIndeterminate},
		{"NFS 0.676", NFS, 0.676, SeverityHigh},
		{"Liver 85", LiverHealth, 85, SeverityLow},
		{"Liver 84.9", LiverHealth, 84.9, SeverityIndeterminate},
		{"Liver 59.9", LiverHealth, 59.9, SeverityHigh},
		{"Heart 85", HeartHealth, 85, SeverityLow},
		{"Heart 70", HeartHealth, 70, SeverityIndeterminate},
		{"Heart 50", HeartHealth, 50, SeverityIndeterminate},
		{"Heart 30", HeartHealth, 30, SeverityHigh},
		{"Heart 0", HeartHealth, 0, SeverityHigh},
		{"eGFR 90", EGFR, 90, SeverityLow},
		{"eGFR 60", EGFR, 60, SeverityIndeterminate},
		{"eGFR 59", EGFR, 59, SeverityHigh},
		{"Lp(a) 50", LpA, 50, SeverityIndeterminate},
		{"ApoB 130", ApoB, 130, SeverityIndeterminate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.table.Classify(tt.in).Severity; got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestHeartHealthLabels(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{97.3, "Excellent cardiometabolic profile — maintain."},
		{75, "Good overall — consider fine-tuning lipids/BP/inflammation."},
		{55, "Borderline — lifestyle + guideline-based optimization advised."},
		{35, "High-risk signals — clinical evaluation and therapy escalation."},
		{10, "Very high-risk signals — prompt specialist management."},
	}
	for _, tt := range tests {
		if got := HeartHealth.Classify(tt.in).Label; got != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{"empty", Table{}, true},
		{"no open band", Table{Below(1, "a", SeverityLow)}, true},
		{"open band not last", Table{Otherwise("a", SeverityLow), Below(1, "b", SeverityHigh)}, true},
		{"non-increasing", Table{Below(2, "a", SeverityLow), Below(2, "b", SeverityLow), Otherwise("c", SeverityHigh)}, true},
		{"bad severity", Table{Otherwise("a", Severity("severe"))}, true},
		{"valid", Table{Below(1, "a", SeverityLow), AtMost(2, "b", SeverityIndeterminate), Otherwise("c", SeverityHigh)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{1.38914, 3, 1.389},
		{64.86, 1, 64.9},
		{114.5, 0, 115},
		{-1.8944, 3, -1.894},
		{2.125, 2, 2.13},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.decimals); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.in, tt.decimals, tt.want, got)
		}
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"three decimals", Number(1.38914, 3), "1.389"},
		{"zero decimals", Number(95, 0), "95"},
		{"keeps trailing zero", Number(3, 2), "3.00"},
		{"text", Text("n/a"), "n/a"},
		{"absent", Absent(), "—"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	items := []ResultItem{
		{Metric: "FIB-4", Value: Number(1.38914, 3), Interpretation: "x", Severity: SeverityIndeterminate},
		{Value: Absent(), Interpretation: "note", Severity: SeverityInfo},
	}
	got, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"metric":"FIB-4","value":1.389,"interpretation":"x","severity":"indeterminate"},` +
		`{"metric":"","value":null,"interpretation":"note","severity":"info"}]`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAssembler(t *testing.T) {
	var a Assembler
	a.Add("FIB-4", f(1.38914), 3, FIB4)
	a.Add("APRI", nil, 3, APRI)
	a.Add("NFS", f(math.NaN()), 3, NFS)
	a.Add("APRI", f(0.3804), 3, APRI)
	a.Note("Note: smoking penalty applied.")

	want := []ResultItem{
		{Metric: "FIB-4", Value: Number(1.389, 3), Interpretation: "Indeterminate: consider elastography (FibroScan).", Severity: SeverityIndeterminate},
		{Metric: "APRI", Value: Number(0.380, 3), Interpretation: "Low: significant fibrosis unlikely.", Severity: SeverityLow},
		{Value: Absent(), Interpretation: "Note: smoking penalty applied.", Severity: SeverityInfo},
	}
	got := a.Items()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if !got[2].IsNote() {
		t.Error("expected trailing note")
	}

	got[0].Metric = "mutated"
	if a.Items()[0].Metric != "FIB-4" {
		t.Error("Items must return a copy")
	}
}
