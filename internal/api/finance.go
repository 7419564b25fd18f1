package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estates/server/internal/finance"
)

func (h *Handler) GetFinanceSettings(c *gin.Context) {
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateFinanceDefaults changes the global rate and/or leverage. Omitted fields keep their value.
func (h *Handler) UpdateFinanceDefaults(c *gin.Context) {
	payload, err := decodeObject(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	settings, ok := h.financeSettings(c)
	if !ok {
		return
	}

	defaults := settings.Defaults
	if v := optionalNumber(payload, "rate_pct"); v != nil {
		defaults.RatePct = *v
	}
	if v := optionalNumber(payload, "leverage_pct"); v != nil {
		defaults.LeveragePct = *v
	}

	if err := h.db.SetFinanceDefaults(defaults); err != nil {
		h.logger.WithError(err).Error("Failed to update finance defaults")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update finance defaults"})
		return
	}
	c.JSON(http.StatusOK, defaults)
}

// UpdateFinanceOverride sets the rate and/or leverage of one building.
// Fields left out of the body keep their current override, if any.
func (h *Handler) UpdateFinanceOverride(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	payload, err := decodeObject(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	override, _, err := h.db.GetFinanceOverride(b.ID)
	if err != nil {
		h.logger.WithError(err).WithField("building_id", b.ID).Error("Failed to get finance override")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get finance override"})
		return
	}
	if v := optionalNumber(payload, "rate_pct"); v != nil {
		override.RatePct = v
	}
	if v := optionalNumber(payload, "leverage_pct"); v != nil {
		override.LeveragePct = v
	}

	if err := h.db.SetFinanceOverride(b.ID, override); err != nil {
		h.logger.WithError(err).WithField("building_id", b.ID).Error("Failed to update finance override")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update finance override"})
		return
	}
	c.JSON(http.StatusOK, override)
}

// DeleteFinanceOverride clears ?field=rate or ?field=leverage, or the whole override without a field.
func (h *Handler) DeleteFinanceOverride(c *gin.Context) {
	id, ok := h.buildingID(c)
	if !ok {
		return
	}

	override, found, err := h.db.GetFinanceOverride(id)
	if err != nil {
		h.logger.WithError(err).WithField("building_id", id).Error("Failed to get finance override")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get finance override"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No override for this building"})
		return
	}

	switch c.Query("field") {
	case "rate":
		override.RatePct = nil
	case "leverage":
		override.LeveragePct = nil
	case "":
		override = finance.Override{}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "field must be rate or leverage"})
		return
	}

	if err := h.db.SetFinanceOverride(id, override); err != nil {
		h.logger.WithError(err).WithField("building_id", id).Error("Failed to update finance override")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update finance override"})
		return
	}
	c.JSON(http.StatusOK, override)
}
