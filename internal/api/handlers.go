package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estates/server/config"
	"estates/server/internal/attachments"
	"estates/server/internal/cache"
	"estates/server/internal/database"
	"estates/server/internal/finance"
	"estates/server/internal/models"
)

// BuildingNotifier announces newly created buildings.
type BuildingNotifier interface {
	Enabled() bool
	NotifyNewBuilding(b models.Building, m finance.Metrics) error
}

// ImportQueue accepts batches of imported buildings.
type ImportQueue interface {
	Push(buildings []*models.Building) error
}

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	config   *config.Config
	files    *attachments.Store
	cache    cache.ScenarioCache
	imports  ImportQueue
	notifier BuildingNotifier
}

func NewHandler(cfg *config.Config, db *database.Database, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:     db,
		logger: logger,
		config: cfg,
		files:  attachments.NewStore(cfg.Server.UploadDir),
		cache:  cache.NewMemoryCache(time.Duration(cfg.Cache.TTL) * time.Second),
	}
}

// SetCache replaces the in-memory scenario cache, e.g. with Redis.
func (h *Handler) SetCache(c cache.ScenarioCache) {
	h.cache = c
}

func (h *Handler) SetImportQueue(q ImportQueue) {
	h.imports = q
}

func (h *Handler) SetNotifier(n BuildingNotifier) {
	h.notifier = n
}

// InvalidateScenarios drops the cached grids of the given buildings.
func (h *Handler) InvalidateScenarios(ctx context.Context, ids ...int64) {
	for _, id := range ids {
		if err := h.cache.Delete(ctx, cache.ScenarioKey(id)); err != nil {
			h.logger.WithError(err).WithField("building_id", id).Warn("Failed to invalidate scenario cache")
		}
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// buildingID parses the :id path parameter, replying 400 when it is not a number.
func (h *Handler) buildingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building id"})
		return 0, false
	}
	return id, true
}

// loadBuilding fetches the building named by :id and replies with 400/404/500 on failure.
func (h *Handler) loadBuilding(c *gin.Context) (*models.Building, bool) {
	id, ok := h.buildingID(c)
	if !ok {
		return nil, false
	}

	b, err := h.db.GetBuilding(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return nil, false
	}
	if err != nil {
		h.logger.WithError(err).WithField("building_id", id).Error("Failed to get building")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get building"})
		return nil, false
	}
	return b, true
}

// financeSettings loads the stored financing, replying 500 on failure.
func (h *Handler) financeSettings(c *gin.Context) (finance.Settings, bool) {
	settings, err := h.db.GetFinanceSettings(h.config.DefaultFinancing())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get finance settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get finance settings"})
		return settings, false
	}
	return settings, true
}

// decodeObject reads a JSON object body, keeping numbers as json.Number.
func decodeObject(c *gin.Context) (map[string]interface{}, error) {
	var payload map[string]interface{}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return payload, nil
}

// queryFloat returns the numeric query parameter key, or fallback when it is absent.
// Present but malformed values are coerced to 0.
func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	v, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return finance.ParseNumericOrZero(v)
}

// parseIDs parses a comma separated id list, skipping anything that is not a number.
func parseIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
