package extraction

import (
	"regexp"

	"github.com/RahulAnswer/health-app/pkg/labs"
)

// Sex values.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// FieldPattern is one immutable extraction rule. Primary is tried first and
// Fallback, when set, only if Primary does not match. Group 1 of either
// pattern holds the captured value. UnitWindow is the maximum number of
// characters allowed between the captured number and its unit token; it is
// zero for fields without a unit. Convert, when set, rescales a captured
// value using the unit token the same match captured in group 2.
type FieldPattern struct {
	Key         string
	Labels      []string
	Unit        string
	UnitWindow  int
	Primary     *regexp.Regexp
	Fallback    *regexp.Regexp
	PostProcess func(string) string
	Convert     func(value float64, unit string) float64
}

// Result is the structured outcome of one extraction pass. Fields that could
// not be recovered are nil or missing from the maps, never zero.
type Result struct {
	Name  *string            `json:"name,omitempty" yaml:"name,omitempty"`
	Sex   *string            `json:"sex,omitempty" yaml:"sex,omitempty"`
	Age   *float64           `json:"age,omitempty" yaml:"age,omitempty"`
	Labs  map[string]float64 `json:"labs" yaml:"labs"`
	Flags map[string]float64 `json:"flags" yaml:"flags"`
}

// Values returns the labs and flags as one immutable value map.
func (r *Result) Values() labs.ValueMap {
	all := make(map[string]float64, len(r.Labs)+len(r.Flags))
	for k, v := range r.Labs {
		all[k] = v
	}
	for k, v := range r.Flags {
		all[k] = v
	}
	return labs.NewValueMap(all)
}

// Found returns the keys of the registry fields present in the result, in
// registry order.
func (r *Result) Found(reg *Registry) []string {
	var keys []string
	for _, p := range reg.Analytes() {
		if _, ok := r.Labs[p.Key]; ok {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// Missing returns the keys of the registry fields absent from the result, in
// registry order.
func (r *Result) Missing(reg *Registry) []string {
	var keys []string
	for _, p := range reg.Analytes() {
		if _, ok := r.Labs[p.Key]; !ok {
			keys = append(keys, p.Key)
		}
	}
	return keys
}
