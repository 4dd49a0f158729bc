package screening

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/RahulAnswer/health-app/internal/domain/interpret"
	"github.com/RahulAnswer/health-app/internal/platform/cdshooks"
)

// CDSHook is the hook every screening service answers.
const CDSHook = "patient-view"

// Indicator maps a result severity to a CDS card indicator.
func Indicator(s interpret.Severity) string {
	switch s {
	case interpret.SeverityIndeterminate:
		return cdshooks.IndicatorWarning
	case interpret.SeverityHigh:
		return cdshooks.IndicatorCritical
	default:
		return cdshooks.IndicatorInfo
	}
}

// Cards converts result items to CDS cards, one per item.
func Cards(source string, items []interpret.ResultItem) []cdshooks.Card {
	cards := make([]cdshooks.Card, 0, len(items))
	for _, it := range items {
		summary := it.Interpretation
		detail := ""
		if !it.IsNote() {
			summary = fmt.Sprintf("%s: %s", it.Metric, it.Value)
			detail = it.Interpretation
		}
		cards = append(cards, cdshooks.Card{
			UUID:      uuid.NewString(),
			Summary:   summary,
			Detail:    detail,
			Indicator: Indicator(it.Severity),
			Source:    cdshooks.Source{Label: source},
		})
	}
	return cards
}

// RegisterCDSServices exposes every enabled module as a CDS service. The
// report text arrives in context.labText and overrides in
// prefetch.overrides.
func RegisterCDSServices(h *cdshooks.Handler, svc *Service) error {
	modules, err := svc.Modules(nil)
	if err != nil {
		return err
	}
	for _, m := range modules {
		id, title := m.ID(), m.Title()
		h.Register(cdshooks.Service{
			Hook:        CDSHook,
			Title:       title,
			Description: fmt.Sprintf("Lab-report screening: %s", title),
			ID:          id,
		}, func(ctx context.Context, req cdshooks.Request) (*cdshooks.Response, error) {
			text := req.ContextString("labText")
			if text == "" {
				return nil, fmt.Errorf("%w: context.labText is required", cdshooks.ErrBadRequest)
			}
			var o Overrides
			if err := req.DecodePrefetch("overrides", &o); err != nil {
				return nil, fmt.Errorf("%w: %v", cdshooks.ErrBadRequest, err)
			}
			items, err := svc.ScreenModule(ctx, id, text, o)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", cdshooks.ErrBadRequest, err)
			}
			return &cdshooks.Response{Cards: Cards(title, items)}, nil
		})
	}
	return nil
}
