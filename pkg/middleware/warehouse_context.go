package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// Warehouse context keys
const (
	ContextKeyWarehouseID = "warehouseId"
	ContextKeyClientID    = "clientId"
	ContextKeyUserID      = "userId"
)

// Warehouse context HTTP header names
const (
	HeaderWarehouseID = "X-Warehouse-ID"
	HeaderClientID    = "X-Client-ID"
	HeaderUserID      = "X-User-ID"
)

// WarehouseContext middleware extracts warehouse scoping headers and adds
// them to the request context for downstream logging and propagation.
func WarehouseContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		warehouseID := c.GetHeader(HeaderWarehouseID)
		clientID := c.GetHeader(HeaderClientID)
		userID := c.GetHeader(HeaderUserID)

		if warehouseID != "" {
			c.Set(ContextKeyWarehouseID, warehouseID)
			c.Header(HeaderWarehouseID, warehouseID)
		}
		if clientID != "" {
			c.Set(ContextKeyClientID, clientID)
			c.Header(HeaderClientID, clientID)
		}
		if userID != "" {
			c.Set(ContextKeyUserID, userID)
			c.Request = c.Request.WithContext(
				logging.ContextWithUserID(c.Request.Context(), userID))
		}

		c.Next()
	}
}

// GetWarehouseID extracts warehouse ID from Gin context
func GetWarehouseID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyWarehouseID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetClientID extracts client ID from Gin context
func GetClientID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyClientID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetUserID extracts the acting user ID from Gin context
func GetUserID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// PropagationWarehouseHeaders returns warehouse scoping headers for downstream calls
func PropagationWarehouseHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string)

	if id := GetWarehouseID(c); id != "" {
		headers[HeaderWarehouseID] = id
	}
	if id := GetClientID(c); id != "" {
		headers[HeaderClientID] = id
	}
	if id := GetUserID(c); id != "" {
		headers[HeaderUserID] = id
	}

	return headers
}
