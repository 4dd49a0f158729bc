package interpret

// Band tables for every interpreted metric. Bounds are listed ascending.
var (
	FLI = mustTable(Table{
		Below(30, "Low (fatty liver unlikely) — maintain lifestyle; monitor.", SeverityLow),
		Below(60, "Intermediate — consider ultrasound or repeat after optimisation.", SeverityIndeterminate),
		Otherwise("High — proceed to fibrosis staging (NFS, FIB-4, APRI).", SeverityHigh),
	})

	FIB4 = mustTable(Table{
		AtMost(1.3, "Low: rules out advanced fibrosis.", SeverityLow),
		Below(2.67, "Indeterminate: consider elastography (FibroScan).", SeverityIndeterminate),
		Otherwise("High: advanced fibrosis likely; hepatology referral.", SeverityHigh),
	})

	APRI = mustTable(Table{
		Below(0.5, "Low: significant fibrosis unlikely.", SeverityLow),
		Below(1.0, "Indeterminate: consider elastography / repeat testing.", SeverityIndeterminate),
		Otherwise("High: advanced fibrosis likely; specialist referral.", SeverityHigh),
	})

	NFS = mustTable(Table{
		Below(-1.455, "Low: advanced fibrosis unlikely.", SeverityLow),
		AtMost(0.675, "Indeterminate: consider elastography / specialist assessment.", SeverityIndeterminate),
		Otherwise("High: advanced fibrosis likely; specialist referral.", SeverityHigh),
	})

	LiverHealth = mustTable(Table{
		Below(60, "High probability — hepatology referral, imaging/workup.", SeverityHigh),
		Below(85, "Indeterminate — consider elastography (FibroScan).", SeverityIndeterminate),
		Otherwise("Low probability of advanced fibrosis — routine monitoring.", SeverityLow),
	})

	HeartHealth = mustTable(Table{
		Below(30, "Very high-risk signals — prompt specialist management.", SeverityHigh),
		Below(50, "High-risk signals — clinical evaluation and therapy escalation.", SeverityHigh),
		Below(70, "Borderline — lifestyle + guideline-based optimization advised.", SeverityIndeterminate),
		Below(85, "Good overall — consider fine-tuning lipids/BP/inflammation.", SeverityIndeterminate),
		Otherwise("Excellent cardiometabolic profile — maintain.", SeverityLow),
	})
)

// Per-analyte detail tables used by the heart module.
var (
	ApoB = mustTable(Table{
		AtMost(80, "Optimal", SeverityLow),
		AtMost(130, "Near-optimal/Borderline", SeverityIndeterminate),
		Otherwise("High", SeverityHigh),
	})

	NonHDL = mustTable(Table{
		AtMost(100, "Optimal", SeverityLow),
		AtMost(159, "Borderline", SeverityIndeterminate),
		Otherwise("High", SeverityHigh),
	})

	LDL = mustTable(Table{
		Below(100, "Optimal", SeverityLow),
		Below(160, "Borderline", SeverityIndeterminate),
		Otherwise("High", SeverityHigh),
	})

	TGHDL = mustTable(Table{
		AtMost(2, "Favourable", SeverityLow),
		AtMost(3.5, "Borderline", SeverityIndeterminate),
		Otherwise("Unfavourable", SeverityHigh),
	})

	LpA = mustTable(Table{
		Below(30, "Low", SeverityLow),
		AtMost(50, "Intermediate", SeverityIndeterminate),
		Otherwise("High", SeverityHigh),
	})

	HsCRP = mustTable(Table{
		Below(1, "Low inflammation", SeverityLow),
		AtMost(3, "Average", SeverityIndeterminate),
		Otherwise("High", SeverityHigh),
	})

	HbA1c = mustTable(Table{
		Below(5.7, "Normal", SeverityLow),
		Below(6.5, "Prediabetes range", SeverityIndeterminate),
		Otherwise("Diabetes range", SeverityHigh),
	})

	FastingGlucose = mustTable(Table{
		Below(100, "Normal", SeverityLow),
		Below(126, "Prediabetes range", SeverityIndeterminate),
		Otherwise("Diabetes range", SeverityHigh),
	})

	SystolicBP = mustTable(Table{
		Below(120, "Normal", SeverityLow),
		Below(140, "Elevated/Stage 1", SeverityIndeterminate),
		Otherwise("Stage 2+", SeverityHigh),
	})

	EGFR = mustTable(Table{
		Below(60, "CKD risk", SeverityHigh),
		Below(90, "Mild CKD risk", SeverityIndeterminate),
		Otherwise("Normal", SeverityLow),
	})
)
