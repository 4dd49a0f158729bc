package scoring

import "math"

// FLI computes the Fatty Liver Index (0-100) from triglycerides (mg/dL),
// BMI, GGT (U/L) and waist (cm). TG and GGT must be positive.
func FLI(tg, bmi, ggt, waist *float64) *float64 {
	if !positive(tg, ggt) || !present(bmi, waist) {
		return nil
	}
	l := 0.953*math.Log(*tg) + 0.139**bmi + 0.718*math.Log(*ggt) + 0.053**waist - 15.745
	// e^L/(1+e^L), written so that large |L| saturates instead of overflowing.
	f := 100 / (1 + math.Exp(-l))
	return num(clamp100(f))
}

// FIB4 computes (age·AST)/(platelets·√ALT).
func FIB4(age, ast, alt, platelets *float64) *float64 {
	if !present(age, ast) || !positive(alt, platelets) {
		return nil
	}
	return num((*age * *ast) / (*platelets * math.Sqrt(*alt)))
}

// APRI computes (AST/ULN)·100/platelets.
func APRI(ast, ulnAST, platelets *float64) *float64 {
	if !present(ast) || !positive(ulnAST, platelets) {
		return nil
	}
	return num((*ast / *ulnAST) * 100 / *platelets)
}

// NFS computes the NAFLD Fibrosis Score. diabetes is the diabetes/IFG flag.
func NFS(age, bmi *float64, diabetes bool, ast, alt, platelets, albumin *float64) *float64 {
	if !present(age, bmi, ast, platelets, albumin) || !positive(alt) {
		return nil
	}
	var dm float64
	if diabetes {
		dm = 1
	}
	return num(-1.675 + 0.037**age + 0.094**bmi + 1.13*dm + 0.99*(*ast / *alt) - 0.013**platelets - 0.66**albumin)
}

// FIB4SubScore maps FIB-4 to [0,100]: 100 at or below 1.3, falling linearly
// to 40 at 2.67, 20 beyond.
func FIB4SubScore(x *float64) *float64 {
	if !present(x) {
		return nil
	}
	v := *x
	switch {
	case v <= 1.3:
		return num(100)
	case v < 2.67:
		return num(math.Max(40, 100-(v-1.3)*(60/(2.67-1.3))))
	default:
		return num(20)
	}
}

// APRISubScore maps APRI to [0,100]: 100 at or below 0.5, linearly to 60 at
// 1.5, linearly to 20 at 2.0, 20 beyond.
func APRISubScore(x *float64) *float64 {
	if !present(x) {
		return nil
	}
	v := *x
	switch {
	case v <= 0.5:
		return num(100)
	case v <= 1.5:
		return num(math.Max(60, 100-(v-0.5)*40))
	case v <= 2.0:
		return num(math.Max(20, 60-(v-1.5)*(40/0.5)))
	default:
		return num(20)
	}
}

// NFSSubScore maps NFS to [0,100]: 100 at or below -1.455, 50 below 0.676,
// 20 otherwise.
func NFSSubScore(x *float64) *float64 {
	if !present(x) {
		return nil
	}
	switch v := *x; {
	case v <= -1.455:
		return num(100)
	case v < 0.676:
		return num(50)
	default:
		return num(20)
	}
}

// LiverHealth combines the fibrosis sub-scores into a 0-100 index. Without
// an NFS sub-score FIB-4 and APRI are weighted 0.7/0.3; with it the weights
// are 0.5/0.25/0.25. Absent sub-scores drop out of the average.
func LiverHealth(fib4, apri, nfs *float64) *float64 {
	f, a, n := FIB4SubScore(fib4), APRISubScore(apri), NFSSubScore(nfs)
	var avg *float64
	if n == nil {
		avg = WeightedAverage(W(f, 0.7), W(a, 0.3))
	} else {
		avg = WeightedAverage(W(f, 0.5), W(a, 0.25), W(n, 0.25))
	}
	if avg == nil {
		return nil
	}
	return num(clamp100(*avg))
}
