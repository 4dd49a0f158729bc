// Package extraction recovers demographics and lab values from free-form
// lab-report text. Every field degrades to absent on its own; nothing in this
// package returns an error for malformed input.
package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/RahulAnswer/health-app/pkg/labs"
)

// Normalize collapses each run of non-newline whitespace to a single space.
// Line breaks are kept because every pattern is line-scoped.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inRun := false
	for _, r := range text {
		if r != '\n' && r != '\r' && unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// Extractor applies a Registry to canonical text.
type Extractor struct {
	registry *Registry
}

// NewExtractor returns an extractor over reg, or over the default registry
// when reg is nil.
func NewExtractor(reg *Registry) *Extractor {
	if reg == nil {
		reg = defaultRegistry
	}
	return &Extractor{registry: reg}
}

// Registry returns the registry the extractor applies.
func (e *Extractor) Registry() *Registry {
	return e.registry
}

// Extract runs the default extractor over canonical text.
func Extract(text string) *Result {
	return NewExtractor(nil).Extract(text)
}

// Extract runs one pass over canonical text: demographics, the ULN-AST range
// special case, then every other analyte in registry order. Unit conversion
// uses the unit captured by the same match as the value.
func (e *Extractor) Extract(text string) *Result {
	res := &Result{
		Labs:  make(map[string]float64),
		Flags: make(map[string]float64),
	}

	for _, p := range e.registry.demographics {
		raw, ok := capture(p, text)
		if !ok {
			continue
		}
		switch p.Key {
		case FieldName:
			name := raw
			res.Name = &name
		case FieldSex:
			if sex, ok := normalizeSex(raw); ok {
				res.Sex = &sex
			}
		case FieldAge:
			if age, ok := parseNumber(raw); ok {
				res.Age = &age
			}
		}
	}

	if uln, ok := e.ulnFromRange(text); ok {
		res.Labs[labs.ULNAST] = uln
	}

	for _, p := range e.registry.analytes {
		if _, done := res.Labs[p.Key]; done {
			continue
		}
		m := p.Primary.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		if p.Convert != nil && len(m) > 2 {
			v = p.Convert(v, m[2])
		}
		res.Labs[p.Key] = v
	}
	return res
}

// capture tries the primary then the fallback pattern and returns the cleaned
// group 1.
func capture(p FieldPattern, text string) (string, bool) {
	for _, re := range []*regexp.Regexp{p.Primary, p.Fallback} {
		if re == nil {
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if p.PostProcess != nil {
			v = p.PostProcess(v)
		}
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// ulnFromRange returns the larger bound of the first AST reference range found.
func (e *Extractor) ulnFromRange(text string) (float64, bool) {
	for _, re := range e.registry.ulnRanges {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		lo, errLo := strconv.Atoi(m[1])
		hi, errHi := strconv.Atoi(m[2])
		if errLo != nil || errHi != nil {
			continue
		}
		return float64(max(lo, hi)), true
	}
	return 0, false
}

func normalizeSex(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	switch unicode.ToLower(rune(raw[0])) {
	case 'm':
		return SexMale, true
	case 'f':
		return SexFemale, true
	}
	return "", false
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
