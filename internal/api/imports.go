package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estates/server/internal/finance"
	"estates/server/internal/models"
	"estates/server/internal/queue"
)

// ImportBuildings queues a JSON array of buildings for a bulk upsert.
// Rows carrying an existing id replace that building.
func (h *Handler) ImportBuildings(c *gin.Context) {
	if h.imports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import is not available"})
		return
	}

	var rows []map[string]interface{}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		h.logger.WithError(err).Error("Invalid import body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a JSON array of buildings"})
		return
	}

	batch := make([]*models.Building, 0, len(rows))
	for _, row := range rows {
		b := &models.Building{ID: int64(finance.ParseNumericOrZero(row["id"]))}
		applyBuildingPayload(b, row)
		if b.Name == "" {
			continue
		}
		lat, lon := optionalNumber(row, "latitude"), optionalNumber(row, "longitude")
		if lat != nil && lon != nil {
			b.Latitude, b.Longitude = lat, lon
		}
		batch = append(batch, b)
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No buildings to import"})
		return
	}

	err := h.imports.Push(batch)
	switch {
	case errors.Is(err, queue.ErrQueueFull):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import queue is full, try again later"})
		return
	case errors.Is(err, queue.ErrQueueClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import is shutting down"})
		return
	case err != nil:
		h.logger.WithError(err).Error("Failed to queue import")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": len(batch)})
}
