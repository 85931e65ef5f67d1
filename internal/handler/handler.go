package handler

import (
	"errors"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"bizplan-engine/internal/constantsregistry"
	"bizplan-engine/internal/engine"
	"bizplan-engine/internal/forecast"
	"bizplan-engine/internal/model"
	"bizplan-engine/internal/operations"
	"bizplan-engine/internal/series"
)

const tenantHeader = "X-Tenant-ID"

// Handler serves the calculation API.
type Handler struct {
	registry *constantsregistry.Registry
}

func New(registry *constantsregistry.Registry) *Handler {
	return &Handler{registry: registry}
}

// Handle routes a request.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/api/calculate":
		h.post(ctx, h.calculate)
	case "/api/simulate":
		h.post(ctx, h.simulate)
	case "/api/derived":
		h.post(ctx, h.derived)
	case "/api/defaults":
		h.get(ctx, h.defaults)
	case "/healthz":
		h.get(ctx, func(ctx *fasthttp.RequestCtx) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) get(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.CalculationInstructions.Calculations) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one calculation is required")
		return
	}

	c, source := h.registry.Constants(ctx, req.TenantID)
	resp := engine.Process(ctx, &req, c, source)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) simulate(ctx *fasthttp.RequestCtx) {
	p := model.DefaultSimulatorParams()
	if err := json.Unmarshal(ctx.PostBody(), &p); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, _ := h.registry.Constants(ctx, string(ctx.Request.Header.Peek(tenantHeader)))
	res, err := forecast.Simulate(p, c)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (h *Handler) derived(ctx *fasthttp.RequestCtx) {
	var plan model.BusinessPlanData
	if err := json.Unmarshal(ctx.PostBody(), &plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, _ := h.registry.Constants(ctx, string(ctx.Request.Header.Peek(tenantHeader)))
	d, err := forecast.ComputeDerived(plan, c)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, d)
}

type defaultsResponse struct {
	Params          model.SimulatorParams `json:"params"`
	Bounds          []model.Bound         `json:"bounds"`
	Constants       forecast.Constants    `json:"constants"`
	ConstantsSource string                `json:"constants_source"`
	Calculations    []string              `json:"calculations"`
}

func (h *Handler) defaults(ctx *fasthttp.RequestCtx) {
	c, source := h.registry.Constants(ctx, string(ctx.Request.Header.Peek(tenantHeader)))
	writeJSON(ctx, fasthttp.StatusOK, defaultsResponse{
		Params:          model.DefaultSimulatorParams(),
		Bounds:          model.ParamBounds,
		Constants:       c,
		ConstantsSource: source,
		Calculations:    operations.Names(),
	})
}

func writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	var shape *series.ShapeError
	var dz *forecast.DivisionByZeroError
	if errors.As(err, &shape) || errors.As(err, &dz) {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	log.Error().Err(err).Msg("calculation failed")
	writeError(ctx, fasthttp.StatusInternalServerError, "Calculation failed")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode response")
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
