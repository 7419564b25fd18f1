package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estates/server/internal/database"
	"estates/server/internal/finance"
	"estates/server/internal/models"
)

func (h *Handler) GetAllBuildings(c *gin.Context) {
	buildings, err := h.db.GetAllBuildings()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get buildings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get buildings"})
		return
	}

	c.JSON(http.StatusOK, buildings)
}

func (h *Handler) GetBuilding(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBuilding(c *gin.Context) {
	payload, err := decodeObject(c)
	if err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var b models.Building
	applyBuildingPayload(&b, payload)
	if b.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	if err := h.db.CreateBuilding(&b); err != nil {
		h.logger.WithError(err).Error("Failed to create building")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create building"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"building_id": b.ID,
		"name":        b.Name,
	}).Info("Created building")

	h.notifyCreated(b)
	c.JSON(http.StatusCreated, b)
}

// notifyCreated sends the new-building notification in the background.
func (h *Handler) notifyCreated(b models.Building) {
	if h.notifier == nil || !h.notifier.Enabled() {
		return
	}

	settings, err := h.db.GetFinanceSettings(h.config.DefaultFinancing())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get finance settings for notification")
		return
	}
	metrics := finance.Calculate(b, settings.Resolve(b.ID))

	go func() {
		if err := h.notifier.NotifyNewBuilding(b, metrics); err != nil {
			h.logger.WithError(err).WithField("building_id", b.ID).Error("Failed to send building notification")
		}
	}()
}

func (h *Handler) UpdateBuilding(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}

	payload, err := decodeObject(c)
	if err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	applyBuildingPayload(b, payload)
	if b.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	err = h.db.UpdateBuilding(b)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("building_id", b.ID).Error("Failed to update building")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update building"})
		return
	}

	h.InvalidateScenarios(c.Request.Context(), b.ID)
	c.JSON(http.StatusOK, b)
}

// DeleteBuilding removes a building together with its documents, financing override and cached grid.
func (h *Handler) DeleteBuilding(c *gin.Context) {
	id, ok := h.buildingID(c)
	if !ok {
		return
	}

	err := h.db.DeleteBuilding(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("building_id", id).Error("Failed to delete building")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete building"})
		return
	}

	if err := h.files.DeleteAll(id); err != nil {
		h.logger.WithError(err).WithField("building_id", id).Warn("Failed to delete building documents")
	}
	h.InvalidateScenarios(c.Request.Context(), id)

	c.JSON(http.StatusOK, gin.H{"message": "Building deleted"})
}
