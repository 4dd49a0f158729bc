package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/RahulAnswer/health-app/pkg/labs"
)

// Demographic field keys.
const (
	FieldName = "name"
	FieldSex  = "sex"
	FieldAge  = "age"
)

// labelWindow bounds the characters between an analyte label and its value.
const labelWindow = 80

// labelGuard stops a label from matching inside a longer token such as
// "Non-HDL" or "VLDL".
const labelGuard = `(?:^|[^\w-])`

const number = `(\d+(?:\.\d+)?)`

// Unit tokens.
const (
	unitEnzyme    = `I?U/?L`
	unitMgDL      = `mg/?dL`
	unitMgL       = `mg/?L`
	unitAlbumin   = `g/?dL|g/?L`
	unitPlatelets = `10\^9/?L|10\^3/?[µu]?L`
	unitPercent   = `%`
	unitMmHg      = `mmHg`
	unitEGFR      = `mL/?min/1\.73\s*(?:m²|m\^?2|m)`
	unitBMI       = `kg/m(?:²|\^?2)?`
	unitCM        = `cm\b`
)

var nameSuffix = regexp.MustCompile(`(?i)\s+(?:barcode|patient\s*id|id)\b.*$`)

func stripNameSuffix(s string) string {
	return strings.TrimSpace(nameSuffix.ReplaceAllString(s, ""))
}

// analyte builds a strict pattern: a label, at most labelWindow characters on
// the same line, the captured number (group 1), then the unit token (group 2)
// within window characters.
func analyte(key, unit string, window int, labels ...string) FieldPattern {
	return FieldPattern{
		Key:        key,
		Labels:     labels,
		Unit:       unit,
		UnitWindow: window,
		Primary:    regexp.MustCompile(analyteExpr(unit, `[^\n]{0,`+strconv.Itoa(window)+`}?`, labels)),
	}
}

// boundedAnalyte is analyte for unit tokens that also occur as the tail of a
// longer unit ("g/L" in "mg/L"). The unit must follow the number directly or
// a non-letter.
func boundedAnalyte(key, unit string, window int, labels ...string) FieldPattern {
	p := analyte(key, unit, window, labels...)
	p.Primary = regexp.MustCompile(analyteExpr(unit, `(?:[^\n]{0,`+strconv.Itoa(window-1)+`}?[^A-Za-z\n])??`, labels))
	return p
}

func analyteExpr(unit, gap string, labels []string) string {
	return `(?im)` + labelGuard + `(?:` + strings.Join(labels, "|") + `)` +
		`[^\n]{0,` + strconv.Itoa(labelWindow) + `}?` + number + gap + `(` + unit + `)`
}

// albuminToGDL rescales a per-litre albumin reading to g/dL.
func albuminToGDL(v float64, unit string) float64 {
	u := strings.ToLower(strings.ReplaceAll(unit, "/", ""))
	if u == "gl" {
		return v / 10
	}
	return v
}

func defaultDemographics() []FieldPattern {
	const nameLabel = `\b(?:Patient\s*Name|Name)`
	const nameValue = `([A-Za-z][A-Za-z .\-']{1,60}?)(?:\s+(?:(?:barcode|patient\s*id|id)\b|\d)|[ \t]*$)`
	return []FieldPattern{
		{
			Key:         FieldName,
			Labels:      []string{"Patient Name", "Name"},
			Primary:     regexp.MustCompile(`(?im)` + nameLabel + `\s*[:\-]\s*` + nameValue),
			Fallback:    regexp.MustCompile(`(?im)` + nameLabel + `[^\n]{0,20}?` + nameValue),
			PostProcess: stripNameSuffix,
		},
		{
			Key:      FieldSex,
			Labels:   []string{"Sex", "Gender"},
			Primary:  regexp.MustCompile(`(?i)\b(?:Sex|Gender)\s*[:\-]\s*(Male|Female|M|F)\b`),
			Fallback: regexp.MustCompile(`(?i)\b(?:Sex|Gender)\b[^\n]{0,20}?\b(Male|Female|M|F)\b`),
		},
		{
			Key:      FieldAge,
			Labels:   []string{"Age"},
			Primary:  regexp.MustCompile(`(?i)\bAge\s*[:\-]\s*(\d{1,3})`),
			Fallback: regexp.MustCompile(`(?i)\bAge\b[^\d]{0,20}(\d{1,3})`),
		},
	}
}

func defaultAnalytes() []FieldPattern {
	uln := FieldPattern{
		Key:        labs.ULNAST,
		Labels:     []string{`AST\b`, `SGOT\b`},
		Unit:       unitEnzyme,
		UnitWindow: 20,
		Primary: regexp.MustCompile(`(?im)` + labelGuard + `(?:AST\b|SGOT\b)[^\n]{0,80}?` +
			`(?:ref(?:erence)?\s*(?:range|interval)|range|ULN\b|upper\s+limit)[^\n]{0,40}?` +
			`(\d{2,3})[^\n]{0,20}?(?:` + unitEnzyme + `)`),
	}

	albumin := boundedAnalyte(labs.Albumin, unitAlbumin, 20, `Albumin`)
	albumin.Convert = albuminToGDL

	return []FieldPattern{
		// liver
		analyte(labs.AST, unitEnzyme, 20, `AST\b`, `SGOT\b`),
		analyte(labs.ALT, unitEnzyme, 20, `ALT\b`, `SGPT\b`),
		analyte(labs.GGT, unitEnzyme, 20, `GGT\b`, `Gamma[\-\s]*glutamyl[\-\s]*transferase`),
		analyte(labs.Triglycerides, unitMgDL, 20, `Triglycerides?`, `TG\b`),
		analyte(labs.Platelets, unitPlatelets, 30, `Platelets?`, `Platelet\s*count`),
		albumin,
		uln,

		// anthropometrics
		analyte(labs.BMI, unitBMI, 10, `BMI\b`, `Body\s*Mass\s*Index`),
		analyte(labs.Waist, unitCM, 10, `Waist(?:\s*circumference)?`),

		// lipids
		analyte(labs.TotalChol, unitMgDL, 20, `Serum\s+Total\s+Cholesterol`, `Total\s+Cholesterol`, `Cholesterol,\s*Total`),
		analyte(labs.HDL, unitMgDL, 20, `Serum\s+HDL\s+Cholesterol`, `HDL\s*-\s*C`, `HDL\s+Cholesterol`),
		analyte(labs.LDL, unitMgDL, 20, `Serum\s+LDL\s+Cholesterol`, `LDL\s*-\s*C`, `LDL\s+Cholesterol`),
		analyte(labs.ApoB, unitMgDL, 20, `Apolipoprotein\s*B`, `Apo\s*B\b`),
		analyte(labs.LpA, unitMgDL, 20, `Lipoprotein\s*\(a\)`, `Lp\s*\(a\)`),

		// inflammation and glycemia
		analyte(labs.HsCRP, unitMgL, 20, `hs-?CRP`, `high\s*sensitivity\s*C-?reactive\s*protein`),
		analyte(labs.HbA1c, unitPercent, 6, `HbA1c`, `Glycated\s*Hemoglobin`, `Glycosylated\s*Hemoglobin`),
		analyte(labs.FastingGlucose, unitMgDL, 20, `Fasting\s+(?:Plasma\s+)?Glucose`, `Fasting\s+Blood\s+Sugar`, `FPG\b`, `FBS\b`),

		// blood pressure and kidney
		analyte(labs.SystolicBP, unitMmHg, 10, `Systolic\s*(?:BP|Blood\s*Pressure)`),
		analyte(labs.EGFR, unitEGFR, 30, `eGFR`, `estimated\s*GFR`),
	}
}

// ULN-AST range patterns, tried in order. Both capture the two bounds of a
// dash-separated range on an AST line.
func defaultULNRanges() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:AST|SGOT)\b[^\n]*?` + unitEnzyme + `[^\n]*?(\d{1,3})\s*[-–‐]\s*(\d{2,3})`),
		regexp.MustCompile(`(?i)\b(?:AST|SGOT)\b[^\n]*?(?:ref(?:erence)?\s*(?:range|interval)|bio\.?\s*ref[^\n]*?|range)[^\n]*?(\d{1,3})\s*[-–‐]\s*(\d{2,3})`),
	}
}

// Registry is the ordered, immutable set of extraction rules.
type Registry struct {
	demographics []FieldPattern
	analytes     []FieldPattern
	ulnRanges    []*regexp.Regexp
	byKey        map[string]FieldPattern
}

// NewRegistry builds a registry. Keys must be unique across demographics and
// analytes.
func NewRegistry(demographics, analytes []FieldPattern, ulnRanges []*regexp.Regexp) (*Registry, error) {
	r := &Registry{
		demographics: append([]FieldPattern(nil), demographics...),
		analytes:     append([]FieldPattern(nil), analytes...),
		ulnRanges:    append([]*regexp.Regexp(nil), ulnRanges...),
		byKey:        make(map[string]FieldPattern, len(demographics)+len(analytes)),
	}
	for _, p := range append(append([]FieldPattern(nil), demographics...), analytes...) {
		if p.Key == "" {
			return nil, fmt.Errorf("field pattern with empty key")
		}
		if p.Primary == nil {
			return nil, fmt.Errorf("field %q has no primary pattern", p.Key)
		}
		if _, dup := r.byKey[p.Key]; dup {
			return nil, fmt.Errorf("duplicate field key %q", p.Key)
		}
		r.byKey[p.Key] = p
	}
	return r, nil
}

var defaultRegistry = mustRegistry(NewRegistry(defaultDemographics(), defaultAnalytes(), defaultULNRanges()))

func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the canonical registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Demographics returns the demographic patterns in precedence order.
func (r *Registry) Demographics() []FieldPattern {
	return append([]FieldPattern(nil), r.demographics...)
}

// Analytes returns the analyte patterns in extraction order.
func (r *Registry) Analytes() []FieldPattern {
	return append([]FieldPattern(nil), r.analytes...)
}

// Lookup returns the pattern registered under key.
func (r *Registry) Lookup(key string) (FieldPattern, bool) {
	p, ok := r.byKey[key]
	return p, ok
}
