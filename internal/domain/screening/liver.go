package screening

import (
	"github.com/RahulAnswer/health-app/internal/domain/interpret"
	"github.com/RahulAnswer/health-app/internal/domain/scoring"
	"github.com/RahulAnswer/health-app/pkg/labs"
)

// LiverID identifies the liver panel.
const LiverID = "liver"

// Liver scores steatosis and fibrosis: FLI, FIB-4, APRI, NFS and the
// composite Liver Health index.
type Liver struct {
	panel
}

// NewLiver returns the liver panel.
func NewLiver() *Liver {
	return &Liver{panel{
		id:    LiverID,
		title: "Liver: FLI, FIB-4, APRI, NFS",
		inputs: []string{
			labs.Triglycerides, labs.BMI, labs.GGT, labs.Waist,
			labs.AST, labs.ALT, labs.Platelets, labs.ULNAST, labs.Albumin,
			labs.Diabetes,
		},
	}}
}

// Compute returns FLI, FIB-4, APRI, NFS and Liver Health, skipping absent scores.
func (m *Liver) Compute(in PatientData) []interpret.ResultItem {
	v := in.Values

	fli := scoring.FLI(v.Get(labs.Triglycerides), v.Get(labs.BMI), v.Get(labs.GGT), v.Get(labs.Waist))
	fib4 := scoring.FIB4(in.Age, v.Get(labs.AST), v.Get(labs.ALT), v.Get(labs.Platelets))
	apri := scoring.APRI(v.Get(labs.AST), v.Get(labs.ULNAST), v.Get(labs.Platelets))
	nfs := scoring.NFS(in.Age, v.Get(labs.BMI), v.Flag(labs.Diabetes),
		v.Get(labs.AST), v.Get(labs.ALT), v.Get(labs.Platelets), v.Get(labs.Albumin))

	var a interpret.Assembler
	a.Add("FLI", fli, 1, interpret.FLI)
	a.Add("FIB-4", fib4, 3, interpret.FIB4)
	a.Add("APRI", apri, 3, interpret.APRI)
	a.Add("NFS", nfs, 3, interpret.NFS)
	a.Add("Liver Health (0–100)", scoring.LiverHealth(fib4, apri, nfs), 1, interpret.LiverHealth)
	return a.Items()
}
