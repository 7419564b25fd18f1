package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estates/server/internal/cache"
	"estates/server/internal/export"
	"estates/server/internal/finance"
	"estates/server/internal/geometry"
	"estates/server/internal/models"
)

// GetMetrics returns the derived metrics and KPIs of a building under its resolved financing.
func (h *Handler) GetMetrics(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}

	f := settings.Resolve(b.ID)
	c.JSON(http.StatusOK, gin.H{
		"building_id": b.ID,
		"financing":   f,
		"metrics":     finance.Calculate(*b, f),
		"kpis":        finance.CalculateKPIs(*b),
	})
}

// scenarioGrid returns the sensitivity grid of b, from the cache when possible.
func (h *Handler) scenarioGrid(c *gin.Context, b *models.Building) *finance.Grid {
	ctx := c.Request.Context()
	key := cache.ScenarioKey(b.ID)

	if data, ok := h.cache.Get(ctx, key); ok {
		var grid finance.Grid
		if err := json.Unmarshal(data, &grid); err == nil {
			return &grid
		}
		h.logger.WithField("building_id", b.ID).Warn("Discarding unreadable cached scenario grid")
	}

	grid := finance.BuildGrid(*b, h.config.RateAxis(), h.config.LeverageAxis())
	data, err := json.Marshal(grid)
	if err == nil {
		err = h.cache.Set(ctx, key, data)
	}
	if err != nil {
		h.logger.WithError(err).WithField("building_id", b.ID).Warn("Failed to cache scenario grid")
	}
	return grid
}

func (h *Handler) GetScenarios(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.scenarioGrid(c, b))
}

// LookupScenario snaps rate and leverage to the nearest grid cell.
// A grid that cannot answer yields {"result": null}.
func (h *Handler) LookupScenario(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}

	f := settings.Resolve(b.ID)
	rate := queryFloat(c, "rate", f.RatePct)
	leverage := queryFloat(c, "leverage", f.LeveragePct)

	var result *finance.Snap
	if snap, found := h.scenarioGrid(c, b).Lookup(rate, leverage); found {
		result = &snap
	}

	c.JSON(http.StatusOK, gin.H{
		"requested": finance.Financing{RatePct: rate, LeveragePct: leverage},
		"result":    result,
	})
}

// GetStress recomputes the metrics for an arbitrary rate and leverage without snapping.
func (h *Handler) GetStress(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}

	f := settings.Resolve(b.ID)
	rate := queryFloat(c, "rate", f.RatePct)
	leverage := queryFloat(c, "leverage", f.LeveragePct)

	c.JSON(http.StatusOK, finance.Stress(*b, rate, leverage))
}

func (h *Handler) GetProjection(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}

	f := settings.Resolve(b.ID)
	params := finance.ProjectionParams{
		LeveragePct:  queryFloat(c, "leverage", f.LeveragePct),
		InflationPct: queryFloat(c, "inflation", h.config.Finance.DefaultInflationPct),
		RatePct:      queryFloat(c, "rate", f.RatePct),
		Years:        finance.ProjectionYears(queryFloat(c, "years", float64(h.config.Finance.DefaultProjectionYears))),
	}
	projection := finance.NewProjection(*b, params)
	params.Years = projection.Len()

	c.JSON(http.StatusOK, gin.H{
		"building_id": b.ID,
		"params":      params,
		"years":       projection.Years(),
	})
}

// analysisColumns evaluates the requested buildings, in request order.
func (h *Handler) analysisColumns(c *gin.Context, ids []int64) ([]export.Column, bool) {
	buildings, err := h.db.GetBuildingsByID(ids)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get buildings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get buildings"})
		return nil, false
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return nil, false
	}

	columns := make([]export.Column, 0, len(buildings))
	for _, b := range buildings {
		files, err := h.files.List(b.ID)
		if err != nil {
			h.logger.WithError(err).WithField("building_id", b.ID).Warn("Failed to list building documents")
			files = nil
		}
		columns = append(columns, export.NewColumn(b, settings.Resolve(b.ID), files))
	}
	return columns, true
}

// GetAnalysis compares the buildings named in ?ids=1,2,3.
func (h *Handler) GetAnalysis(c *gin.Context) {
	ids := parseIDs(c.Query("ids"))
	columns, ok := h.analysisColumns(c, ids)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"buildings": columns})
}

type exportRequest struct {
	BuildingIDs []int64 `json:"building_ids"`
}

// ExportAnalysis renders the comparison of the requested buildings as an xlsx workbook.
func (h *Handler) ExportAnalysis(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid export request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.BuildingIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No buildings selected"})
		return
	}

	columns, ok := h.analysisColumns(c, req.BuildingIDs)
	if !ok {
		return
	}

	wb, err := export.Workbook(columns)
	if errors.Is(err, export.ErrNoBuildings) {
		c.JSON(http.StatusNotFound, gin.H{"error": "None of the selected buildings exist"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to build workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export analysis"})
		return
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		h.logger.WithError(err).Error("Failed to write workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export analysis"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analyse.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetBuildingsMap returns the geocoded buildings as GeoJSON.
func (h *Handler) GetBuildingsMap(c *gin.Context) {
	buildings, err := h.db.GetAllBuildings()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get buildings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get buildings"})
		return
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}

	items := make([]geometry.MapBuilding, 0, len(buildings))
	for _, b := range buildings {
		items = append(items, geometry.MapBuilding{
			Building: b,
			Metrics:  finance.Calculate(b, settings.Resolve(b.ID)),
		})
	}
	c.JSON(http.StatusOK, geometry.BuildingFeatures(items))
}
