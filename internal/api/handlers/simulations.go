package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"dario.cat/mergo"
	"github.com/gin-gonic/gin"
	"github.com/mohae/deepcopy"

	"hybrid-sim/internal/analysis"
	"hybrid-sim/internal/api/models"
	"hybrid-sim/internal/data"
	"hybrid-sim/internal/hybrid"
	"hybrid-sim/internal/logger"
	"hybrid-sim/internal/model"
)

// SimulationHandler runs plant simulations and keeps recent results so they
// can be fetched again by id.
type SimulationHandler struct {
	runner *hybrid.Runner
	store  *data.ResultStore[*hybrid.Result]
	log    logger.Logger
}

func NewSimulationHandler(runner *hybrid.Runner, store *data.ResultStore[*hybrid.Result], log logger.Logger) *SimulationHandler {
	return &SimulationHandler{runner: runner, store: store, log: log}
}

// RunSimulation handles POST /api/v1/simulations
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	res, status, code, err := h.simulate(c, req.Config, req.Plant, req.ProjectLifetime, req.Options.ZeroPad)
	if err != nil {
		abortError(c, status, code, err)
		return
	}

	id := h.store.Put(res)
	resp := models.SimulationResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(res),
	}
	if req.Options.IncludeSeries {
		resp.Series = buildSeries(res)
	}
	c.JSON(http.StatusOK, resp)
}

// GetSimulation handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.store.Get(id)
	if !ok {
		abortError(c, http.StatusNotFound, "NOT_FOUND", fmt.Errorf("simulation %q not found or expired", id))
		return
	}
	c.JSON(http.StatusOK, models.SimulationResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(res),
	})
}

// GetSeries handles GET /api/v1/simulations/:id/series
func (h *SimulationHandler) GetSeries(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.store.Get(id)
	if !ok {
		abortError(c, http.StatusNotFound, "NOT_FOUND", fmt.Errorf("simulation %q not found or expired", id))
		return
	}
	c.JSON(http.StatusOK, buildSeries(res))
}

// CompareSimulations handles POST /api/v1/simulations/compare
func (h *SimulationHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, v := range req.Variations {
		out := models.ComparisonResult{Name: v.Name}
		cfg, err := overlay(req.BaseConfig, v.Config)
		if err == nil {
			var res *hybrid.Result
			res, _, _, err = h.simulate(c, cfg, req.Plant, req.ProjectLifetime, false)
			if err == nil {
				summary := buildSummary(res)
				out.ID = h.store.Put(res)
				out.Summary = &summary
			}
		}
		if err != nil {
			h.log.Warnf("variation %q failed: %v", v.Name, err)
			out.Error = err.Error()
		}
		comparison = append(comparison, out)
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

func (h *SimulationHandler) simulate(c *gin.Context, cfg, plant map[string]any, lifetime int, zeroPad bool) (*hybrid.Result, int, string, error) {
	handle, err := h.runner.Setup(hybrid.RawConfig(cfg), plant)
	if err != nil {
		return nil, http.StatusBadRequest, "INVALID_CONFIG", err
	}
	opts := []hybrid.RunOption{hybrid.WithVerbose(false)}
	if zeroPad {
		opts = append(opts, hybrid.WithZeroPad())
	}
	res, err := h.runner.Run(c.Request.Context(), handle, lifetime, opts...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hybrid.ErrMissingExpense) || errors.Is(err, hybrid.ErrShortSeries) {
			status = http.StatusUnprocessableEntity
		}
		return nil, status, "SIMULATION_ERROR", err
	}
	return res, http.StatusOK, "", nil
}

// overlay deep-merges variation onto a copy of base. Variation values win,
// nested mappings merge key by key.
func overlay(base, variation map[string]any) (map[string]any, error) {
	out, ok := deepcopy.Copy(base).(map[string]any)
	if !ok {
		return nil, errors.New("base_config must be a mapping")
	}
	if len(variation) == 0 {
		return out, nil
	}
	if err := mergo.Merge(&out, deepcopy.Copy(variation).(map[string]any), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge variation: %w", err)
	}
	return out, nil
}

func buildSummary(res *hybrid.Result) models.SimulationSummary {
	s := models.SimulationSummary{
		Capex:           res.Capex,
		Opex:            res.Opex,
		HybridNPV:       res.HybridNPV,
		LCOEReal:        res.LCOEReal,
		LCOENominal:     res.LCOENominal,
		AnnualEnergies:  res.AnnualEnergies,
		CapacityFactors: res.CapacityFactors,
		NPVs:            res.NPVs,
		Power:           analysis.Describe(res.CombinedPowerProduction),
		Curtailment:     analysis.Describe(res.CombinedCurtailment),
		Shortfall:       analysis.Describe(res.EnergyShortfall),
		Technologies:    map[model.TechKind]*model.TechOutputs{},
	}
	if res.Plant != nil {
		for _, k := range model.KnownKinds {
			if t, ok := res.Plant.Technology(k); ok && t != nil {
				s.Technologies[k] = t
			}
		}
	}
	return s
}

func buildSeries(res *hybrid.Result) *models.SeriesResponse {
	out := &models.SeriesResponse{
		CombinedPowerProduction: res.CombinedPowerProduction,
		CombinedCurtailment:     res.CombinedCurtailment,
		EnergyShortfall:         res.EnergyShortfall,
	}
	if res.Plant != nil {
		out.BatteryDispatchKW = res.Plant.Outputs().BatteryDispatchKW
	}
	return out
}
