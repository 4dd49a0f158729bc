package scoring

// step is one rung of a threshold ladder: values below Limit (or at it when
// Inclusive) score Score.
type step struct {
	limit     float64
	inclusive bool
	score     float64
}

// ladder maps a value to a [0,100] favourability score. Steps are ascending;
// values past the last step score otherwise.
type ladder struct {
	steps     []step
	otherwise float64
}

func (l ladder) score(v *float64) *float64 {
	if !present(v) {
		return nil
	}
	x := *v
	for _, s := range l.steps {
		if x < s.limit || (s.inclusive && x == s.limit) {
			return num(s.score)
		}
	}
	return num(l.otherwise)
}

func le(limit, score float64) step { return step{limit: limit, inclusive: true, score: score} }
func lt(limit, score float64) step { return step{limit: limit, score: score} }

var (
	apoBLadder    = ladder{steps: []step{le(80, 100), le(100, 85), le(130, 60)}, otherwise: 30}
	nonHDLLadder  = ladder{steps: []step{le(100, 100), le(129, 80), le(159, 60), le(189, 40)}, otherwise: 20}
	ldlLadder     = ladder{steps: []step{lt(100, 100), lt(130, 80), lt(160, 60), lt(190, 40)}, otherwise: 20}
	tgHDLLadder   = ladder{steps: []step{le(2.0, 100), le(3.5, 70), le(5.0, 40)}, otherwise: 25}
	lpaLadder     = ladder{steps: []step{lt(30, 100), le(50, 70)}, otherwise: 40}
	hsCRPLadder   = ladder{steps: []step{lt(1, 100), le(3, 70)}, otherwise: 40}
	hba1cLadder   = ladder{steps: []step{lt(5.7, 100), lt(6.5, 70)}, otherwise: 40}
	glucoseLadder = ladder{steps: []step{lt(100, 100), lt(126, 70)}, otherwise: 40}
	sbpLadder     = ladder{steps: []step{lt(120, 100), lt(140, 70), lt(160, 40)}, otherwise: 20}
	// eGFR is higher-is-better: >=90 -> 100, >=60 -> 80, >=30 -> 50, else 20.
	egfrLadder = ladder{steps: []step{lt(30, 20), lt(60, 50), lt(90, 80)}, otherwise: 100}
)

// ApoBScore scores apolipoprotein B (mg/dL).
func ApoBScore(v *float64) *float64 { return apoBLadder.score(v) }

// NonHDLScore scores non-HDL cholesterol (mg/dL).
func NonHDLScore(v *float64) *float64 { return nonHDLLadder.score(v) }

// LDLScore scores LDL cholesterol (mg/dL).
func LDLScore(v *float64) *float64 { return ldlLadder.score(v) }

// TGHDLScore scores the triglyceride to HDL ratio.
func TGHDLScore(ratio *float64) *float64 { return tgHDLLadder.score(ratio) }

// LpAScore scores lipoprotein(a) (mg/dL).
func LpAScore(v *float64) *float64 { return lpaLadder.score(v) }

// HsCRPScore scores high-sensitivity CRP (mg/L).
func HsCRPScore(v *float64) *float64 { return hsCRPLadder.score(v) }

// HbA1cScore scores HbA1c (%).
func HbA1cScore(v *float64) *float64 { return hba1cLadder.score(v) }

// FastingGlucoseScore scores fasting plasma glucose (mg/dL).
func FastingGlucoseScore(v *float64) *float64 { return glucoseLadder.score(v) }

// SystolicBPScore scores systolic blood pressure (mmHg).
func SystolicBPScore(v *float64) *float64 { return sbpLadder.score(v) }

// EGFRScore scores eGFR (mL/min/1.73m²).
func EGFRScore(v *float64) *float64 { return egfrLadder.score(v) }

// NonHDL derives non-HDL cholesterol. A negative difference is treated as
// absent.
func NonHDL(totalChol, hdl *float64) *float64 {
	if !present(totalChol, hdl) {
		return nil
	}
	d := *totalChol - *hdl
	if d < 0 {
		return nil
	}
	return num(d)
}

// TGHDLRatio derives the triglyceride to HDL ratio; HDL must be positive.
func TGHDLRatio(tg, hdl *float64) *float64 {
	if !present(tg) || !positive(hdl) {
		return nil
	}
	return num(*tg / *hdl)
}
