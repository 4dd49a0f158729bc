package screening

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RahulAnswer/health-app/internal/domain/extraction"
	"github.com/RahulAnswer/health-app/internal/domain/interpret"
	"github.com/RahulAnswer/health-app/pkg/labs"
)

// Disclaimer is attached to every report.
const Disclaimer = "Screening & education only; not medical advice."

// PatientData is the input a module scores: demographics plus one immutable
// value map of labs and flags.
type PatientData struct {
	Name   *string       `json:"name,omitempty"`
	Sex    *string       `json:"sex,omitempty"`
	Age    *float64      `json:"age,omitempty"`
	Values labs.ValueMap `json:"values"`
}

// FromExtraction converts an extraction result into patient data.
func FromExtraction(res *extraction.Result) PatientData {
	return PatientData{
		Name:   res.Name,
		Sex:    res.Sex,
		Age:    res.Age,
		Values: res.Values(),
	}
}

// Apply overlays overrides on p. Every override present wins over the
// extracted value.
func (p PatientData) Apply(o Overrides) PatientData {
	out := p
	if o.Name != nil {
		out.Name = o.Name
	}
	if o.Sex != nil {
		if sex, ok := overrideSex(*o.Sex); ok {
			out.Sex = &sex
		}
	}
	if o.Age != nil {
		out.Age = o.Age
	}
	out.Values = p.Values.Merge(o.values())
	return out
}

// Overrides are user-supplied values that take precedence over extraction.
type Overrides struct {
	Name  *string            `json:"name,omitempty" yaml:"name,omitempty"`
	Sex   *string            `json:"sex,omitempty" yaml:"sex,omitempty"`
	Age   *float64           `json:"age,omitempty" yaml:"age,omitempty"`
	Labs  map[string]float64 `json:"labs,omitempty" yaml:"labs,omitempty"`
	Flags map[string]float64 `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Validate rejects unknown keys, an unrecognised sex and a negative age.
func (o Overrides) Validate() error {
	if o.Sex != nil {
		if _, ok := overrideSex(*o.Sex); !ok {
			return fmt.Errorf("sex must be M or F, got %q", *o.Sex)
		}
	}
	if o.Age != nil && *o.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	for k := range o.Labs {
		if !isLab(k) {
			return fmt.Errorf("unknown lab key %q", k)
		}
	}
	for k := range o.Flags {
		if !IsFlag(k) {
			return fmt.Errorf("unknown flag key %q", k)
		}
	}
	return nil
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o.Name == nil && o.Sex == nil && o.Age == nil && len(o.Labs) == 0 && len(o.Flags) == 0
}

func (o Overrides) values() map[string]float64 {
	all := make(map[string]float64, len(o.Labs)+len(o.Flags))
	for k, v := range o.Labs {
		all[k] = v
	}
	for k, v := range o.Flags {
		all[k] = v
	}
	return all
}

// overrideSex accepts any spelling whose first letter is m or f.
func overrideSex(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "M"):
		return extraction.SexMale, true
	case strings.HasPrefix(s, "F"):
		return extraction.SexFemale, true
	}
	return "", false
}

// IsFlag reports whether key names a flag, including the diab_ifg alias.
func IsFlag(key string) bool {
	return labs.IsKnown(key) && !isLab(key)
}

func isLab(key string) bool {
	for _, k := range labs.LabKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PatientHeader is the demographic line of a report. Absent fields render as
// the placeholder.
type PatientHeader struct {
	Name string `json:"name" yaml:"name"`
	Sex  string `json:"sex" yaml:"sex"`
	Age  string `json:"age" yaml:"age"`
}

// Header renders p's demographics. Age is shown as a whole number.
func (p PatientData) Header() PatientHeader {
	h := PatientHeader{Name: interpret.Placeholder, Sex: interpret.Placeholder, Age: interpret.Placeholder}
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Sex != nil {
		h.Sex = *p.Sex
	}
	if p.Age != nil {
		h.Age = strconv.Itoa(int(*p.Age))
	}
	return h
}

// Section is the output of one module within a report.
type Section struct {
	Module string                 `json:"module" yaml:"module"`
	Title  string                 `json:"title" yaml:"title"`
	Items  []interpret.ResultItem `json:"items" yaml:"items"`
	Lines  []RenderedLine         `json:"lines" yaml:"lines"`
}

// Report is the consolidated output of one screening pass.
type Report struct {
	ID          uuid.UUID          `json:"id" yaml:"id"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Patient     PatientHeader      `json:"patient" yaml:"patient"`
	Extraction  *extraction.Result `json:"extraction" yaml:"extraction"`
	Sections    []Section          `json:"sections" yaml:"sections"`
	Rows        [][]string         `json:"rows" yaml:"rows"`
	Disclaimer  string             `json:"disclaimer" yaml:"disclaimer"`
}
