package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Snapshot reads
		v1.GET("/identifiers", handler.ListIdentifiers)
		v1.GET("/items", handler.ListItems)
		v1.GET("/transactions", handler.ListTransactions)
		v1.GET("/opening-balances", handler.ListOpeningBalances)
		v1.GET("/balances", handler.ListBalances)

		// Mutations (buffered into the offline queue while disconnected)
		v1.POST("/identifiers", handler.CreateIdentifier)
		v1.POST("/items", handler.CreateItem)
		v1.POST("/transactions", handler.CreateTransaction)
		v1.PUT("/opening-balances", handler.UpsertOpeningBalance)

		// Offline queue management
		v1.GET("/sync/status", handler.GetSyncStatus)
		v1.POST("/sync/queue", handler.EnqueueChange)
		v1.POST("/sync/replay", handler.ReplayQueue)
		v1.DELETE("/sync/queue", handler.ClearQueue)
	}
}
