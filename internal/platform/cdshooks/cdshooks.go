// Package cdshooks serves screening modules over the CDS Hooks 2.0 REST API:
// a discovery endpoint plus one invocation endpoint per service.
package cdshooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Indicators defined by CDS Hooks.
const (
	IndicatorInfo     = "info"
	IndicatorWarning  = "warning"
	IndicatorCritical = "critical"
)

// Service describes one CDS service in discovery.
type Service struct {
	Hook        string            `json:"hook"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description"`
	ID          string            `json:"id"`
	Prefetch    map[string]string `json:"prefetch,omitempty"`
}

// Request is the payload POSTed to invoke a hook.
type Request struct {
	Hook         string                     `json:"hook"`
	HookInstance string                     `json:"hookInstance"`
	FHIRServer   string                     `json:"fhirServer,omitempty"`
	Context      map[string]json.RawMessage `json:"context"`
	Prefetch     map[string]json.RawMessage `json:"prefetch,omitempty"`
}

// ContextString decodes a string context field. Missing or non-string
// fields yield "".
func (r Request) ContextString(key string) string {
	raw, ok := r.Context[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// DecodePrefetch unmarshals the prefetch entry under key into dst. A missing
// entry leaves dst untouched.
func (r Request) DecodePrefetch(key string, dst interface{}) error {
	raw, ok := r.Prefetch[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("prefetch %q: %w", key, err)
	}
	return nil
}

// Card is a single card in the hook response.
type Card struct {
	UUID      string `json:"uuid,omitempty"`
	Summary   string `json:"summary"`
	Detail    string `json:"detail,omitempty"`
	Indicator string `json:"indicator"`
	Source    Source `json:"source"`
}

// Source identifies who produced a card.
type Source struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Response is returned from hook invocation.
type Response struct {
	Cards []Card `json:"cards"`
}

// Feedback records what the user did with a card.
type Feedback struct {
	Card             string `json:"card"`
	Outcome          string `json:"outcome"`
	OutcomeTimestamp string `json:"outcomeTimestamp,omitempty"`
}

// ServiceFunc handles one invocation. An error wrapping ErrBadRequest maps to
// 400; anything else to 500.
type ServiceFunc func(ctx context.Context, req Request) (*Response, error)

// ErrBadRequest marks invocation errors caused by the request payload.
var ErrBadRequest = errors.New("bad request")

// Handler implements discovery and invocation.
type Handler struct {
	services map[string]Service
	funcs    map[string]ServiceFunc
	order    []string
	logger   zerolog.Logger
}

func NewHandler(logger zerolog.Logger) *Handler {
	return &Handler{
		services: make(map[string]Service),
		funcs:    make(map[string]ServiceFunc),
		logger:   logger,
	}
}

// Register adds a service. Registering an existing id replaces it in place.
func (h *Handler) Register(svc Service, fn ServiceFunc) {
	if _, exists := h.services[svc.ID]; !exists {
		h.order = append(h.order, svc.ID)
	}
	h.services[svc.ID] = svc
	h.funcs[svc.ID] = fn
}

// RegisterRoutes mounts the CDS Hooks routes on the root Echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/cds-services", h.Discovery)
	e.POST("/cds-services/:id", h.Invoke, mw...)
	e.POST("/cds-services/:id/feedback", h.Feedback, mw...)
}

// Discovery handles GET /cds-services.
func (h *Handler) Discovery(c echo.Context) error {
	services := make([]Service, 0, len(h.order))
	for _, id := range h.order {
		services = append(services, h.services[id])
	}
	return c.JSON(http.StatusOK, map[string][]Service{"services": services})
}

// Invoke handles POST /cds-services/:id.
func (h *Handler) Invoke(c echo.Context) error {
	id := c.Param("id")
	svc, ok := h.services[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("CDS service %q not found", id))
	}

	var req Request
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Hook != svc.Hook {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("hook mismatch: request hook %q does not match service hook %q", req.Hook, svc.Hook))
	}
	if req.HookInstance == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hookInstance is required")
	}

	resp, err := h.funcs[id](c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Str("service", id).Str("hook_instance", req.HookInstance).Msg("cds service failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "cds service failed")
	}
	if resp == nil || resp.Cards == nil {
		resp = &Response{Cards: []Card{}}
	}
	return c.JSON(http.StatusOK, resp)
}

// Feedback handles POST /cds-services/:id/feedback. Feedback is logged, not
// stored.
func (h *Handler) Feedback(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.services[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("CDS service %q not found", id))
	}
	var fb Feedback
	if err := json.NewDecoder(c.Request().Body).Decode(&fb); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid feedback body: %v", err))
	}
	h.logger.Info().Str("service", id).Str("card", fb.Card).Str("outcome", fb.Outcome).Msg("cds feedback")
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
