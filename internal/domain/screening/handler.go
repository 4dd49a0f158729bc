package screening

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/RahulAnswer/health-app/internal/domain/extraction"
	"github.com/RahulAnswer/health-app/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Catalogue endpoints: any authenticated caller
	api.GET("/modules", h.ListModules)
	api.GET("/patterns", h.ListPatterns)

	// Scoring endpoints: clinicians
	clinical := api.Group("", auth.RequireRole("clinician"))
	clinical.POST("/screen", h.Screen)
	clinical.POST("/extract", h.Extract)
}

// Screen handles POST /screen. A JSON body carries a Request; a text/plain
// body is the report text itself, with modules taken from ?modules=a,b.
func (h *Handler) Screen(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return err
	}
	report, err := h.svc.Screen(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownModule) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

// Extract handles POST /extract and returns the raw extraction result.
func (h *Handler) Extract(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ExtractView(c.Request().Context(), req.Text))
}

// ListModules handles GET /modules.
func (h *Handler) ListModules(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]ModuleInfo{"modules": h.svc.Catalogue()})
}

// PatternInfo describes one registry entry.
type PatternInfo struct {
	Key        string   `json:"key" yaml:"key"`
	Kind       string   `json:"kind" yaml:"kind"`
	Labels     []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Unit       string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	UnitWindow int      `json:"unit_window,omitempty" yaml:"unit_window,omitempty"`
	Primary    string   `json:"primary" yaml:"primary"`
	Fallback   string   `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// Patterns lists the registry in precedence order.
func Patterns(reg *extraction.Registry) []PatternInfo {
	var out []PatternInfo
	add := func(kind string, ps []extraction.FieldPattern) {
		for _, p := range ps {
			info := PatternInfo{
				Key:        p.Key,
				Kind:       kind,
				Labels:     p.Labels,
				Unit:       p.Unit,
				UnitWindow: p.UnitWindow,
				Primary:    p.Primary.String(),
			}
			if p.Fallback != nil {
				info.Fallback = p.Fallback.String()
			}
			out = append(out, info)
		}
	}
	add("demographic", reg.Demographics())
	add("analyte", reg.Analytes())
	return out
}

// ListPatterns handles GET /patterns.
func (h *Handler) ListPatterns(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]PatternInfo{
		"patterns": Patterns(h.svc.Extractor().Registry()),
	})
}

func bindRequest(c echo.Context) (Request, error) {
	var req Request
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMETextPlain) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return req, bodyError(err)
		}
		req.Text = string(body)
		if mods := c.QueryParam("modules"); mods != "" {
			req.Modules = strings.Split(mods, ",")
		}
	} else if err := c.Bind(&req); err != nil {
		return req, bodyError(err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return req, echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return req, nil
}

// bodyError surfaces a 413 raised by the body limit; anything else is a 400.
func bodyError(err error) error {
	var he *echo.HTTPError
	for e := err; errors.As(e, &he); e = he.Internal {
		if he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		if he.Internal == nil {
			break
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
