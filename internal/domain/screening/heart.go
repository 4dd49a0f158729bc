package screening

import (
	"strings"

	"github.com/RahulAnswer/health-app/internal/domain/interpret"
	"github.com/RahulAnswer/health-app/internal/domain/scoring"
	"github.com/RahulAnswer/health-app/pkg/labs"
)

// HeartID identifies the heart panel.
const HeartID = "heart"

// Heart scores the lab-based Heart Health Index with per-analyte detail.
type Heart struct {
	panel
}

// NewHeart returns the heart panel.
func NewHeart() *Heart {
	return &Heart{panel{
		id:    HeartID,
		title: "Heart: Lab-based Heart Health Index (0–100)",
		inputs: []string{
			labs.TotalChol, labs.HDL, labs.LDL, labs.Triglycerides, labs.ApoB, labs.LpA,
			labs.HsCRP, labs.HbA1c, labs.FastingGlucose, labs.SystolicBP, labs.EGFR,
			labs.Smoker, labs.Diabetes,
		},
	}}
}

// Compute returns the detail rows, the index row and an optional penalty note.
func (m *Heart) Compute(in PatientData) []interpret.ResultItem {
	v := in.Values
	b := scoring.HeartHealth(scoring.HeartInputs{
		ApoB:           v.Get(labs.ApoB),
		TotalChol:      v.Get(labs.TotalChol),
		HDL:            v.Get(labs.HDL),
		LDL:            v.Get(labs.LDL),
		Triglycerides:  v.Get(labs.Triglycerides),
		LpA:            v.Get(labs.LpA),
		HsCRP:          v.Get(labs.HsCRP),
		HbA1c:          v.Get(labs.HbA1c),
		FastingGlucose: v.Get(labs.FastingGlucose),
		SystolicBP:     v.Get(labs.SystolicBP),
		EGFR:           v.Get(labs.EGFR),
		Smoker:         v.Flag(labs.Smoker),
		Diabetes:       v.Flag(labs.Diabetes),
	})

	var a interpret.Assembler
	switch b.Primary {
	case scoring.PrimaryApoB:
		a.Add("ApoB (mg/dL)", b.PrimaryValue, 1, interpret.ApoB)
	case scoring.PrimaryNonHDL:
		a.Add("Non-HDL-C (mg/dL)", b.PrimaryValue, 1, interpret.NonHDL)
	case scoring.PrimaryLDL:
		a.Add("LDL-C (mg/dL)", b.PrimaryValue, 1, interpret.LDL)
	}
	a.Add("TG/HDL ratio", b.TGHDL, 2, interpret.TGHDL)
	a.Add("Lp(a) (mg/dL)", v.Get(labs.LpA), 1, interpret.LpA)
	a.Add("hs-CRP (mg/L)", v.Get(labs.HsCRP), 2, interpret.HsCRP)
	a.Add("HbA1c (%)", v.Get(labs.HbA1c), 2, interpret.HbA1c)
	a.Add("Fasting glucose (mg/dL)", v.Get(labs.FastingGlucose), 1, interpret.FastingGlucose)
	a.Add("SBP (mmHg)", v.Get(labs.SystolicBP), 0, interpret.SystolicBP)
	a.Add("eGFR (mL/min/1.73m²)", v.Get(labs.EGFR), 0, interpret.EGFR)
	a.Add("Heart Health (0–100)", &b.Score, 1, interpret.HeartHealth)

	var applied []string
	if v.Flag(labs.Smoker) {
		applied = append(applied, "smoking penalty applied")
	}
	if v.Flag(labs.Diabetes) {
		applied = append(applied, "diabetes penalty applied")
	}
	if len(applied) > 0 {
		a.Note("Note: " + strings.Join(applied, ", ") + ".")
	}
	return a.Items()
}
