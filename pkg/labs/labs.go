// Package labs defines the lab field vocabulary shared by extraction, scoring
// and every collaborator that feeds or reads values, plus ValueMap, the
// immutable value map a screening pass scores against.
package labs

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// Lab value keys.
const (
	AST            = "ast_ul"
	ALT            = "alt_ul"
	GGT            = "ggt_ul"
	Triglycerides  = "tg_mgdl"
	Platelets      = "platelets"
	Albumin        = "albumin_gdl"
	ULNAST         = "uln_ast"
	BMI            = "bmi"
	Waist          = "waist"
	TotalChol      = "tc_mgdl"
	HDL            = "hdl_mgdl"
	LDL            = "ldl_mgdl"
	ApoB           = "apob_mgdl"
	LpA            = "lpa_mgdl"
	HsCRP          = "hscrp_mgL"
	HbA1c          = "hba1c_pct"
	FastingGlucose = "fasting_glucose_mgdl"
	SystolicBP     = "sbp_mmhg"
	EGFR           = "egfr_ml_min"
)

// Flag keys. DiabetesAlias is the historical name of Diabetes and is folded
// into it on construction.
const (
	Smoker        = "smoker"
	Diabetes      = "diabetes"
	DiabetesAlias = "diab_ifg"
)

// LabKeys lists every lab key in vocabulary order.
var LabKeys = []string{
	AST, ALT, GGT, Triglycerides, Platelets, Albumin, ULNAST, BMI, Waist,
	TotalChol, HDL, LDL, ApoB, LpA, HsCRP, HbA1c, FastingGlucose, SystolicBP, EGFR,
}

// FlagKeys lists every flag key.
var FlagKeys = []string{Smoker, Diabetes}

// Num returns a pointer to v. Optional numbers are *float64 throughout; nil
// means absent, never zero.
func Num(v float64) *float64 {
	return &v
}

// IsKnown reports whether key belongs to the lab or flag vocabulary,
// including the diabetes alias.
func IsKnown(key string) bool {
	if key == DiabetesAlias {
		return true
	}
	for _, k := range LabKeys {
		if k == key {
			return true
		}
	}
	for _, k := range FlagKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Lookup matches key against the vocabulary ignoring case and returns the
// vocabulary spelling, so "HSCRP_MGL" resolves to "hscrp_mgL".
func Lookup(key string) (string, bool) {
	for _, keys := range [][]string{LabKeys, FlagKeys, {DiabetesAlias}} {
		for _, k := range keys {
			if strings.EqualFold(k, key) {
				return k, true
			}
		}
	}
	return "", false
}

// Canonical maps an alias key to its canonical name.
func Canonical(key string) string {
	if key == DiabetesAlias {
		return Diabetes
	}
	return key
}

// ValueMap is an immutable map of lab values and flags. The zero value is an
// empty map. Non-finite numbers are never stored.
type ValueMap struct {
	values map[string]float64
}

// NewValueMap copies values into a ValueMap, folding aliases and dropping
// non-finite entries. When both an alias and its canonical key are given the
// canonical key wins.
func NewValueMap(values map[string]float64) ValueMap {
	m := ValueMap{values: make(map[string]float64, len(values))}
	for k, v := range values {
		if k == DiabetesAlias {
			continue
		}
		if finite(v) {
			m.values[k] = v
		}
	}
	if v, ok := values[DiabetesAlias]; ok && finite(v) {
		if _, exists := m.values[Diabetes]; !exists {
			m.values[Diabetes] = v
		}
	}
	return m
}

// Merge returns a new map with overrides laid over m. Overrides always win.
func (m ValueMap) Merge(overrides map[string]float64) ValueMap {
	out := ValueMap{values: make(map[string]float64, len(m.values)+len(overrides))}
	for k, v := range m.values {
		out.values[k] = v
	}
	for k, v := range NewValueMap(overrides).values {
		out.values[k] = v
	}
	return out
}

// Get returns the value for key or nil when absent.
func (m ValueMap) Get(key string) *float64 {
	v, ok := m.values[Canonical(key)]
	if !ok {
		return nil
	}
	return &v
}

// Has reports whether key is present.
func (m ValueMap) Has(key string) bool {
	_, ok := m.values[Canonical(key)]
	return ok
}

// Flag reports whether a boolean flag is set. Any non-zero value is set.
func (m ValueMap) Flag(key string) bool {
	v, ok := m.values[Canonical(key)]
	return ok && v != 0
}

// Len returns the number of present values.
func (m ValueMap) Len() int {
	return len(m.values)
}

// Keys returns the present keys in sorted order.
func (m ValueMap) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Only returns a map restricted to the given keys.
func (m ValueMap) Only(keys ...string) ValueMap {
	out := ValueMap{values: make(map[string]float64, len(keys))}
	for _, k := range keys {
		k = Canonical(k)
		if v, ok := m.values[k]; ok {
			out.values[k] = v
		}
	}
	return out
}

// Map returns a copy of the underlying values.
func (m ValueMap) Map() map[string]float64 {
	out := make(map[string]float64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func (m ValueMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

func (m *ValueMap) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = NewValueMap(raw)
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
