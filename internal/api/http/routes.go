package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all inbound receiving routes
func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	// Inbound order routes
	orderAPI := router.Group("/api/v1/orders")
	{
		orderAPI.POST("", handlers.CreateOrder())
		orderAPI.GET("", handlers.ListOrders())
		orderAPI.GET("/:orderId", handlers.GetOrder())
		orderAPI.POST("/:orderId/advance", handlers.AdvanceOrderStatus())
		orderAPI.POST("/:orderId/complete", handlers.MarkOrderComplete())
		orderAPI.POST("/:orderId/lines/:lineItemId/receive", handlers.ReceiveItem())
		orderAPI.POST("/:orderId/lines/:lineItemId/reject", handlers.RejectItem())
		orderAPI.PUT("/:orderId/checklist/:entryId", handlers.ToggleChecklistEntry())
		orderAPI.GET("/:orderId/workflow-rules", handlers.GetOrderWorkflowRules())
	}

	// Pallet and lot number routes
	palletAPI := router.Group("/api/v1/pallets")
	{
		palletAPI.POST("", handlers.CreatePallet())
		palletAPI.GET("", handlers.ListOpenPallets())
	}
	router.POST("/api/v1/lot-numbers/generate", handlers.GenerateLotNumber())

	// Putaway routes
	putawayAPI := router.Group("/api/v1/putaway")
	{
		putawayAPI.POST("/assignments", handlers.CreatePutawayAssignment())
		putawayAPI.GET("/assignments/:assignmentId", handlers.GetPutawayAssignment())
		putawayAPI.GET("/assignments/order/:orderId", handlers.GetPutawayAssignmentByOrder())
		putawayAPI.PUT("/assignments/:assignmentId/selection", handlers.SelectSublocation())
		putawayAPI.POST("/assignments/:assignmentId/confirm", handlers.ConfirmPutawayItem())
		putawayAPI.POST("/assignments/:assignmentId/confirm-all", handlers.ConfirmAllPutaway())
		putawayAPI.GET("/suggestions", handlers.GetPutawaySuggestion())
		putawayAPI.GET("/locations", handlers.ListLocations())
		putawayAPI.GET("/locations/:locationId/sublocations", handlers.GetSublocations())
	}

	// Scanner routes
	scanAPI := router.Group("/api/v1/scan")
	{
		scanAPI.POST("/sessions", handlers.StartScanSession())
		scanAPI.GET("/sessions/:sessionId", handlers.GetScanSession())
		scanAPI.POST("/sessions/:sessionId/scans", handlers.Scan())
		scanAPI.POST("/sessions/:sessionId/confirm", handlers.ConfirmScanSession())
		scanAPI.PUT("/sessions/:sessionId/mute", handlers.SetScanSessionMuted())
		scanAPI.GET("/sessions/:sessionId/history", handlers.GetScanHistory())
		scanAPI.GET("/resolve", handlers.ResolveBarcode())
	}

	// Damage report routes
	damageAPI := router.Group("/api/v1/damage-reports")
	{
		damageAPI.POST("", handlers.CreateDamageReport())
		damageAPI.GET("", handlers.ListDamageReports())
		damageAPI.GET("/:reportId", handlers.GetDamageReport())
		damageAPI.PUT("/:reportId/resolution", handlers.ResolveDamageReport())
	}

	// Client routes
	clientAPI := router.Group("/api/v1/clients")
	{
		clientAPI.POST("", handlers.CreateClient())
		clientAPI.GET("", handlers.ListClients())
		clientAPI.GET("/:clientId", handlers.GetClient())
		clientAPI.PUT("/:clientId", handlers.UpdateClient())
		clientAPI.PUT("/:clientId/workflow-rules", handlers.UpdateClientWorkflowRules())
	}

	// Dashboard routes
	router.GET("/api/v1/dashboard/summary", handlers.GetDashboardSummary())
}
