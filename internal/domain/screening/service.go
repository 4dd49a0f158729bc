package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RahulAnswer/health-app/internal/domain/extraction"
	"github.com/RahulAnswer/health-app/internal/domain/interpret"
)

// Recorder receives per-pass counters. The metrics package provides the
// Prometheus implementation.
type Recorder interface {
	ObserveExtraction(found, missing []string)
	ObserveModule(module string, items []interpret.ResultItem)
}

type nopRecorder struct{}

func (nopRecorder) ObserveExtraction(found, missing []string)                 {}
func (nopRecorder) ObserveModule(module string, items []interpret.ResultItem) {}

// Request is one screening pass: report text, optional overrides, and an
// optional module selection (empty means the service default).
type Request struct {
	Text      string    `json:"text"`
	Overrides Overrides `json:"overrides"`
	Modules   []string  `json:"modules,omitempty"`
}

// Service runs extraction and the selected modules over one report.
type Service struct {
	extractor *extraction.Extractor
	registry  *Registry
	enabled   []string
	recorder  Recorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService builds a service over reg. enabled is the default module
// selection; every id in it must be registered.
func NewService(reg *Registry, enabled []string, recorder Recorder, logger zerolog.Logger) (*Service, error) {
	if _, err := reg.Select(enabled); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		extractor: extraction.NewExtractor(nil),
		registry:  reg,
		enabled:   enabled,
		recorder:  recorder,
		logger:    logger.With().Str("component", "screening").Logger(),
		now:       time.Now,
	}, nil
}

// Registry returns the module registry.
func (s *Service) Registry() *Registry { return s.registry }

// Extractor returns the extractor the service applies.
func (s *Service) Extractor() *extraction.Extractor { return s.extractor }

// Modules resolves a selection, falling back to the service default.
func (s *Service) Modules(ids []string) ([]Module, error) {
	if len(ids) == 0 {
		ids = s.enabled
	}
	return s.registry.Select(ids)
}

// Extract normalizes text and runs one extraction pass.
func (s *Service) Extract(ctx context.Context, text string) *extraction.Result {
	res := s.extractor.Extract(extraction.Normalize(text))
	found := res.Found(s.extractor.Registry())
	missing := res.Missing(s.extractor.Registry())
	s.recorder.ObserveExtraction(found, missing)
	s.logger.Debug().
		Int("found", len(found)).
		Int("missing", len(missing)).
		Bool("name", res.Name != nil).
		Bool("sex", res.Sex != nil).
		Bool("age", res.Age != nil).
		Msg("extraction pass")
	return res
}

// ExtractionView is an extraction result plus the registry keys that were
// and were not recovered.
type ExtractionView struct {
	extraction.Result `yaml:",inline"`
	Found             []string `json:"found" yaml:"found"`
	Missing           []string `json:"missing" yaml:"missing"`
}

// ExtractView runs Extract and annotates the result with found and missing
// keys.
func (s *Service) ExtractView(ctx context.Context, text string) ExtractionView {
	res := s.Extract(ctx, text)
	reg := s.extractor.Registry()
	return ExtractionView{
		Result:  *res,
		Found:   nonNil(res.Found(reg)),
		Missing: nonNil(res.Missing(reg)),
	}
}

// ModuleInfo describes one registered module.
type ModuleInfo struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Catalogue lists every registered module and whether it runs by default.
func (s *Service) Catalogue() []ModuleInfo {
	enabled := make(map[string]bool)
	if mods, err := s.Modules(nil); err == nil {
		for _, m := range mods {
			enabled[m.ID()] = true
		}
	}
	all := s.registry.All()
	out := make([]ModuleInfo, 0, len(all))
	for _, m := range all {
		out = append(out, ModuleInfo{ID: m.ID(), Title: m.Title(), Enabled: enabled[m.ID()]})
	}
	return out
}

// Screen runs one full pass and assembles the report. Core failures degrade
// to absent metrics; errors are returned only for invalid requests.
func (s *Service) Screen(ctx context.Context, req Request) (*Report, error) {
	if err := req.Overrides.Validate(); err != nil {
		return nil, fmt.Errorf("invalid overrides: %w", err)
	}
	modules, err := s.Modules(req.Modules)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := s.Extract(ctx, req.Text)
	// Overrides are merged here, once; modules only narrow the merged data.
	merged := FromExtraction(res).Apply(req.Overrides)

	report := &Report{
		ID:          uuid.New(),
		GeneratedAt: s.now().UTC(),
		Patient:     merged.Header(),
		Extraction:  res,
		Rows:        [][]string{},
		Disclaimer:  Disclaimer,
	}
	for _, m := range modules {
		items := m.Compute(m.CollectInputs(merged, Overrides{}))
		s.recorder.ObserveModule(m.ID(), items)
		report.Sections = append(report.Sections, Section{
			Module: m.ID(),
			Title:  m.Title(),
			Items:  items,
			Lines:  m.Render(items),
		})
		report.Rows = append(report.Rows, m.ExportRows(items)...)
	}

	s.logger.Info().
		Str("report_id", report.ID.String()).
		Int("modules", len(modules)).
		Int("rows", len(report.Rows)).
		Msg("screening complete")
	return report, nil
}

// ScreenModule runs a single module. It is used by the CDS Hooks services.
func (s *Service) ScreenModule(ctx context.Context, id, text string, overrides Overrides) ([]interpret.ResultItem, error) {
	if err := overrides.Validate(); err != nil {
		return nil, fmt.Errorf("invalid overrides: %w", err)
	}
	m, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}
	extracted := FromExtraction(s.Extract(ctx, text))
	items := m.Compute(m.CollectInputs(extracted, overrides))
	s.recorder.ObserveModule(id, items)
	return items, nil
}
