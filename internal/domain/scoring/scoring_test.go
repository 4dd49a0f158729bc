package scoring

import (
	"math"
	"testing"
)

func p(v float64) *float64 { return &v }

func approx(t *testing.T, name string, got *float64, want, tol float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected %v, got absent", name, want)
	}
	if math.Abs(*got-want) > tol {
		t.Errorf("%s: expected %v (±%v), got %v", name, want, tol, *got)
	}
}

func TestFLI_Scenario(t *testing.T) {
	approx(t, "FLI", FLI(p(160), p(27), p(45), p(95)), 64.86, 0.05)
}

func TestFLI_DomainGuards(t *testing.T) {
	if FLI(p(0), p(27), p(45), p(95)) != nil {
		t.Error("expected absent for zero triglycerides")
	}
	if FLI(p(160), p(27), p(-1), p(95)) != nil {
		t.Error("expected absent for negative GGT")
	}
	if FLI(p(160), nil, p(45), p(95)) != nil {
		t.Error("expected absent for missing BMI")
	}
}

func TestFLI_Saturates(t *testing.T) {
	approx(t, "FLI high", FLI(p(1e6), p(80), p(1e6), p(300)), 100, 1e-9)
	approx(t, "FLI low", FLI(p(1e-6), p(-400), p(1e-6), p(0)), 0, 1e-9)
}

func TestFIB4_Scenario(t *testing.T) {
	approx(t, "FIB-4", FIB4(p(50), p(35), p(30), p(230)), 1.3891, 0.0005)
}

func TestFIB4_DomainGuards(t *testing.T) {
	tests := []struct {
		name                 string
		age, ast, alt, plate *float64
	}{
		{"zero ALT", p(50), p(35), p(0), p(230)},
		{"zero platelets", p(50), p(35), p(30), p(0)},
		{"missing age", nil, p(35), p(30), p(230)},
		{"NaN AST", p(50), p(math.NaN()), p(30), p(230)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FIB4(tt.age, tt.ast, tt.alt, tt.plate); got != nil {
				t.Errorf("expected absent, got %v", *got)
			}
		})
	}
}

func TestAPRI_Scenario(t *testing.T) {
	approx(t, "APRI", APRI(p(35), p(40), p(230)), 0.3804, 0.0005)
	if APRI(p(35), p(0), p(230)) != nil {
		t.Error("expected absent for zero ULN")
	}
}

func TestNFS_Scenario(t *testing.T) {
	approx(t, "NFS", NFS(p(50), p(27), false, p(35), p(30), p(230), p(4.2)), -1.894, 0.001)
	approx(t, "NFS diabetic", NFS(p(50), p(27), true, p(35), p(30), p(230), p(4.2)), -0.764, 0.001)
	if NFS(p(50), p(27), false, p(35), p(0), p(230), p(4.2)) != nil {
		t.Error("expected absent for zero ALT")
	}
}

func TestFIB4SubScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 100},
		{1.3, 100},
		{1.985, 70},
		{2.67, 20},
		{5, 20},
	}
	for _, tt := range tests {
		approx(t, "FIB4SubScore", FIB4SubScore(p(tt.in)), tt.want, 1e-9)
	}
}

func TestAPRISubScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 100},
		{1.0, 80},
		{1.5, 60},
		{1.75, 40},
		{2.0, 20},
		{3.0, 20},
	}
	for _, tt := range tests {
		approx(t, "APRISubScore", APRISubScore(p(tt.in)), tt.want, 1e-9)
	}
}

func TestNFSSubScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-2, 100},
		{-1.455, 100},
		{0, 50},
		{0.675, 50},
		{0.676, 20},
	}
	for _, tt := range tests {
		approx(t, "NFSSubScore", NFSSubScore(p(tt.in)), tt.want, 1e-9)
	}
}

func TestLiverHealth(t *testing.T) {
	approx(t, "with NFS", LiverHealth(p(1.3891), p(0.3804), p(-1.894)), 98.05, 0.01)
	approx(t, "without NFS", LiverHealth(p(1.3), p(1.0), nil), 94, 1e-9)
	approx(t, "FIB-4 only", LiverHealth(p(2.67), nil, nil), 20, 1e-9)
	approx(t, "NFS only", LiverHealth(nil, nil, p(0)), 50, 1e-9)
	if LiverHealth(nil, nil, nil) != nil {
		t.Error("expected absent with no sub-scores")
	}
}

func TestWeightedAverage(t *testing.T) {
	t.Run("missing pair does not pull toward zero", func(t *testing.T) {
		approx(t, "avg", WeightedAverage(W(p(80), 0.5), W(nil, 0.5)), 80, 1e-9)
	})
	t.Run("all present equals plain weighted mean", func(t *testing.T) {
		approx(t, "avg", WeightedAverage(W(p(100), 0.25), W(p(20), 0.75)), 40, 1e-9)
	})
	t.Run("non-positive weight dropped", func(t *testing.T) {
		approx(t, "avg", WeightedAverage(W(p(10), 0), W(p(90), -1), W(p(60), 2)), 60, 1e-9)
	})
	t.Run("non-finite score dropped", func(t *testing.T) {
		approx(t, "avg", WeightedAverage(W(p(math.Inf(1)), 1), W(p(30), 1)), 30, 1e-9)
	})
	t.Run("empty is absent", func(t *testing.T) {
		if WeightedAverage() != nil {
			t.Error("expected absent")
		}
		if WeightedAverage(W(nil, 1), W(p(50), 0)) != nil {
			t.Error("expected absent")
		}
	})
}

func TestSubScoreBoundaries(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*float64) *float64
		in   float64
		want float64
	}{
		{"ApoB 80", ApoBScore, 80, 100},
		{"ApoB 100", ApoBScore, 100, 85},
		{"ApoB 130", ApoBScore, 130, 60},
		{"ApoB 131", ApoBScore, 131, 30},
		{"NonHDL 100", NonHDLScore, 100, 100},
		{"NonHDL 129", NonHDLScore, 129, 80},
		{"NonHDL 159", NonHDLScore, 159, 60},
		{"NonHDL 189", NonHDLScore, 189, 40},
		{"NonHDL 190", NonHDLScore, 190, 20},
		{"LDL 99", LDLScore, 99, 100},
		{"LDL 100", LDLScore, 100, 80},
		{"LDL 160", LDLScore, 160, 40},
		{"LDL 190", LDLScore, 190, 20},
		{"TGHDL 2", TGHDLScore, 2, 100},
		{"TGHDL 3.5", TGHDLScore, 3.5, 70},
		{"TGHDL 5", TGHDLScore, 5, 40},
		{"TGHDL 5.1", TGHDLScore, 5.1, 25},
		{"LpA 30", LpAScore, 30, 70},
		{"LpA 50", LpAScore, 50, 70},
		{"LpA 51", LpAScore, 51, 40},
		{"HsCRP 1", HsCRPScore, 1, 70},
		{"HsCRP 3", HsCRPScore, 3, 70},
		{"HsCRP 3.1", HsCRPScore, 3.1, 40},
		{"HbA1c 5.7", HbA1cScore, 5.7, 70},
		{"HbA1c 6.5", HbA1cScore, 6.5, 40},
		{"FPG 99", FastingGlucoseScore, 99, 100},
		{"FPG 126", FastingGlucoseScore, 126, 40},
		{"SBP 120", SystolicBPScore, 120, 70},
		{"SBP 159", SystolicBPScore, 159, 40},
		{"SBP 160", SystolicBPScore, 160, 20},
		{"eGFR 90", EGFRScore, 90, 100},
		{"eGFR 89", EGFRScore, 89, 80},
		{"eGFR 60", EGFRScore, 60, 80},
		{"eGFR 30", EGFRScore, 30, 50},
		{"eGFR 29", EGFRScore, 29, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approx(t, tt.name, tt.fn(p(tt.in)), tt.want, 0)
		})
	}
}

func TestDerivedLipids(t *testing.T) {
	approx(t, "non-HDL", NonHDL(p(200), p(50)), 150, 0)
	if NonHDL(p(40), p(50)) != nil {
		t.Error("expected absent for negative non-HDL")
	}
	approx(t, "TG/HDL", TGHDLRatio(p(150), p(50)), 3, 0)
	if TGHDLRatio(p(150), p(0)) != nil {
		t.Error("expected absent for zero HDL")
	}
}

func TestHeartHealth_Scenario(t *testing.T) {
	b := HeartHealth(HeartInputs{
		ApoB:           p(75),
		Triglycerides:  p(150),
		HDL:            p(50),
		LpA:            p(20),
		HsCRP:          p(0.8),
		HbA1c:          p(5.4),
		FastingGlucose: p(90),
		SystolicBP:     p(115),
		EGFR:           p(95),
	})
	if b.Primary != PrimaryApoB {
		t.Errorf("expected primary lipid apob, got %q", b.Primary)
	}
	approx(t, "lipid", b.Lipid, 94, 1e-6)
	if math.Abs(b.Score-97.3) > 1e-6 {
		t.Errorf("expected 97.3, got %v", b.Score)
	}
}

func TestHeartHealth_PrimaryLipidFallback(t *testing.T) {
	b := HeartHealth(HeartInputs{TotalChol: p(180), HDL: p(50), LDL: p(170)})
	if b.Primary != PrimaryNonHDL {
		t.Fatalf("expected non-HDL primary, got %q", b.Primary)
	}
	approx(t, "non-HDL", b.PrimaryValue, 130, 0)

	b = HeartHealth(HeartInputs{TotalChol: p(40), HDL: p(50), LDL: p(170)})
	if b.Primary != PrimaryLDL {
		t.Fatalf("expected LDL primary when non-HDL is negative, got %q", b.Primary)
	}
}

func TestHeartHealth_Penalties(t *testing.T) {
	b := HeartHealth(HeartInputs{SystolicBP: p(115), Smoker: true, Diabetes: true})
	if b.Penalty != 25 {
		t.Errorf("expected penalty 25, got %v", b.Penalty)
	}
	if b.Score != 75 {
		t.Errorf("expected 75, got %v", b.Score)
	}
}

func TestHeartHealth_EmptyClampsToZero(t *testing.T) {
	b := HeartHealth(HeartInputs{Smoker: true})
	if b.Base != 0 || b.Score != 0 {
		t.Errorf("expected base 0 and score 0, got %v / %v", b.Base, b.Score)
	}
}
