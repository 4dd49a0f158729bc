package scoring

// Penalties subtracted from the heart base score.
const (
	SmokerPenalty   = 15.0
	DiabetesPenalty = 10.0
)

// HeartInputs carries the cardiometabolic analytes. Nil fields are absent.
type HeartInputs struct {
	ApoB           *float64
	TotalChol      *float64
	HDL            *float64
	LDL            *float64
	Triglycerides  *float64
	LpA            *float64
	HsCRP          *float64
	HbA1c          *float64
	FastingGlucose *float64
	SystolicBP     *float64
	EGFR           *float64
	Smoker         bool
	Diabetes       bool
}

// PrimaryLipid names the analyte the lipid component was anchored on.
type PrimaryLipid string

const (
	PrimaryNone   PrimaryLipid = ""
	PrimaryApoB   PrimaryLipid = "apob"
	PrimaryNonHDL PrimaryLipid = "non_hdl"
	PrimaryLDL    PrimaryLipid = "ldl"
)

// HeartBreakdown exposes the intermediate values of the heart index so that
// callers can render per-analyte detail rows.
type HeartBreakdown struct {
	Primary      PrimaryLipid
	PrimaryValue *float64
	PrimaryScore *float64
	NonHDL       *float64
	TGHDL        *float64
	TGHDLScore   *float64
	LpAScore     *float64
	Lipid        *float64
	HsCRPScore   *float64
	Glycemic     *float64
	SBPScore     *float64
	EGFRScore    *float64
	Base         float64
	Penalty      float64
	Score        float64
}

// HeartHealth computes the 0-100 Heart Health Index. The result is always
// present: with no usable component the base is 0.
func HeartHealth(in HeartInputs) HeartBreakdown {
	var b HeartBreakdown

	b.NonHDL = NonHDL(in.TotalChol, in.HDL)
	switch {
	case ApoBScore(in.ApoB) != nil:
		b.Primary, b.PrimaryValue, b.PrimaryScore = PrimaryApoB, in.ApoB, ApoBScore(in.ApoB)
	case NonHDLScore(b.NonHDL) != nil:
		b.Primary, b.PrimaryValue, b.PrimaryScore = PrimaryNonHDL, b.NonHDL, NonHDLScore(b.NonHDL)
	case LDLScore(in.LDL) != nil:
		b.Primary, b.PrimaryValue, b.PrimaryScore = PrimaryLDL, in.LDL, LDLScore(in.LDL)
	}

	b.TGHDL = TGHDLRatio(in.Triglycerides, in.HDL)
	b.TGHDLScore = TGHDLScore(b.TGHDL)
	b.LpAScore = LpAScore(in.LpA)
	b.Lipid = WeightedAverage(W(b.PrimaryScore, 0.5), W(b.TGHDLScore, 0.2), W(b.LpAScore, 0.3))

	b.HsCRPScore = HsCRPScore(in.HsCRP)
	b.Glycemic = WeightedAverage(W(HbA1cScore(in.HbA1c), 1), W(FastingGlucoseScore(in.FastingGlucose), 1))
	b.SBPScore = SystolicBPScore(in.SystolicBP)
	b.EGFRScore = EGFRScore(in.EGFR)

	if base := WeightedAverage(
		W(b.Lipid, 0.45),
		W(b.HsCRPScore, 0.15),
		W(b.Glycemic, 0.15),
		W(b.SBPScore, 0.15),
		W(b.EGFRScore, 0.10),
	); base != nil {
		b.Base = *base
	}

	if in.Smoker {
		b.Penalty += SmokerPenalty
	}
	if in.Diabetes {
		b.Penalty += DiabetesPenalty
	}
	b.Score = clamp100(b.Base - b.Penalty)
	return b
}
