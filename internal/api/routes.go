package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(RequestLogger(handler.logger))

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		api.GET("/buildings", handler.GetAllBuildings)
		api.POST("/buildings", handler.CreateBuilding)
		api.GET("/buildings/:id", handler.GetBuilding)
		api.PUT("/buildings/:id", handler.UpdateBuilding)
		api.DELETE("/buildings/:id", handler.DeleteBuilding)

		api.POST("/buildings/:id/files", handler.UploadFiles)
		api.GET("/buildings/:id/files", handler.ListFiles)
		api.GET("/buildings/:id/files/:filename", handler.DownloadFile)
		api.DELETE("/buildings/:id/files/:filename", handler.DeleteFile)

		api.GET("/buildings/:id/metrics", handler.GetMetrics)
		api.GET("/buildings/:id/scenarios", handler.GetScenarios)
		api.GET("/buildings/:id/scenarios/lookup", handler.LookupScenario)
		api.GET("/buildings/:id/stress", handler.GetStress)
		api.GET("/buildings/:id/projection", handler.GetProjection)
		api.GET("/analysis", handler.GetAnalysis)
		api.POST("/export-analyse", handler.ExportAnalysis)

		api.GET("/finance", handler.GetFinanceSettings)
		api.PUT("/finance/defaults", handler.UpdateFinanceDefaults)
		api.PUT("/finance/overrides/:id", handler.UpdateFinanceOverride)
		api.DELETE("/finance/overrides/:id", handler.DeleteFinanceOverride)

		api.POST("/import/buildings", handler.ImportBuildings)
		api.GET("/map/buildings", handler.GetBuildingsMap)
	}
}
