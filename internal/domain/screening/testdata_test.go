package screening

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/RahulAnswer/health-app/internal/domain/interpret"
)

const labReport = `Patient Name : John Smith Barcode 12345
Age : 50 Years	  Sex : Male
AST (SGOT)        35     U/L     0 - 40
ALT (SGPT)        30     U/L     7 - 56
GGT               45     U/L     8 - 61
Serum Albumin     42     g/L     35 - 50
Platelet Count    230    10^9/L  150 - 400
Triglycerides     150    mg/dL   < 150
HDL Cholesterol   50     mg/dL   > 40
Apolipoprotein B  75     mg/dL
Lipoprotein (a)   20     mg/dL
hs-CRP            0.8    mg/L
HbA1c             5.4    %
Fasting Plasma Glucose 90 mg/dL  70 - 100
Systolic BP       115    mmHg
eGFR              95     mL/min/1.73m²
BMI 27 kg/m2
Waist circumference 95 cm
`

type fakeRecorder struct {
	mu          sync.Mutex
	extractions int
	found       []string
	modules     []string
	items       map[string][]interpret.ResultItem
}

func (r *fakeRecorder) ObserveExtraction(found, missing []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractions++
	r.found = found
}

func (r *fakeRecorder) ObserveModule(module string, items []interpret.ResultItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[string][]interpret.ResultItem)
	}
	r.modules = append(r.modules, module)
	r.items[module] = items
}

func newTestService(t interface{ Fatalf(string, ...any) }, enabled []string, rec Recorder) *Service {
	svc, err := NewService(DefaultRegistry(), enabled, rec, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func findItem(items []interpret.ResultItem, metric string) (interpret.ResultItem, bool) {
	for _, it := range items {
		if it.Metric == metric {
			return it, true
		}
	}
	return interpret.ResultItem{}, false
}
