// Package interpret turns raw scores into labelled, severity-tagged results.
package interpret

import (
	"errors"
	"fmt"
)

// Severity is the closed set of result classifications.
type Severity string

const (
	SeverityLow           Severity = "low"
	SeverityIndeterminate Severity = "indeterminate"
	SeverityHigh          Severity = "high"
	SeverityInfo          Severity = "info"
)

// Valid reports whether s is one of the four severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityIndeterminate, SeverityHigh, SeverityInfo:
		return true
	}
	return false
}

// Band is one interval of a Table. A value falls in the band when it is below
// Upper, or equal to it when Inclusive. An Open band has no upper bound.
type Band struct {
	Upper     float64
	Inclusive bool
	Open      bool
	Label     string
	Severity  Severity
}

func (b Band) contains(v float64) bool {
	return b.Open || v < b.Upper || (b.Inclusive && v == b.Upper)
}

// Table is an ordered ascending list of bands.
type Table []Band

// Below builds a band for values strictly below upper.
func Below(upper float64, label string, sev Severity) Band {
	return Band{Upper: upper, Label: label, Severity: sev}
}

// AtMost builds a band for values at or below upper.
func AtMost(upper float64, label string, sev Severity) Band {
	return Band{Upper: upper, Inclusive: true, Label: label, Severity: sev}
}

// Otherwise builds the final unbounded band.
func Otherwise(label string, sev Severity) Band {
	return Band{Open: true, Label: label, Severity: sev}
}

// Validate checks that bounds strictly increase and that exactly the last
// band is open.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New("band table is empty")
	}
	for i, b := range t {
		if !b.Severity.Valid() {
			return fmt.Errorf("band %d: unknown severity %q", i, b.Severity)
		}
		last := i == len(t)-1
		if b.Open != last {
			if last {
				return fmt.Errorf("band %d: last band must be open", i)
			}
			return fmt.Errorf("band %d: only the last band may be open", i)
		}
		if i > 0 && !b.Open && !(b.Upper > t[i-1].Upper) {
			return fmt.Errorf("band %d: bound %v does not increase on %v", i, b.Upper, t[i-1].Upper)
		}
	}
	return nil
}

// Classify returns the first band containing v.
func (t Table) Classify(v float64) Band {
	for _, b := range t {
		if b.contains(v) {
			return b
		}
	}
	// Unreachable for a validated table.
	return t[len(t)-1]
}

// mustTable panics if t is malformed. Used for the package-level tables.
func mustTable(t Table) Table {
	if err := t.Validate(); err != nil {
		panic(err)
	}
	return t
}
