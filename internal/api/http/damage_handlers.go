package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/api/dto"
	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// CreateDamageReport handles POST /api/v1/damage-reports
func (h *Handlers) CreateDamageReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.CreateDamageReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		warehouseID := req.WarehouseID
		if warehouseID == "" {
			warehouseID = middleware.GetWarehouseID(c)
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id":   req.OrderID,
			"damage.sku": req.SKU,
		})

		report, err := h.damage.CreateReport(c.Request.Context(), application.CreateDamageReportCommand{
			OrderID:     req.OrderID,
			SKU:         req.SKU,
			Quantity:    req.Quantity,
			Reason:      req.Reason,
			Notes:       req.Notes,
			UserID:      userIDFrom(c, req.UserID),
			WarehouseID: warehouseID,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordDamageReport(req.Reason)
		}

		c.JSON(http.StatusCreated, dto.FromDamageReport(report))
	}
}

// GetDamageReport handles GET /api/v1/damage-reports/:reportId
func (h *Handlers) GetDamageReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		report, err := h.damage.GetReport(c.Request.Context(), c.Param("reportId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}
		if report == nil {
			responder.RespondNotFound("damage report")
			return
		}

		c.JSON(http.StatusOK, dto.FromDamageReport(report))
	}
}

// ListDamageReports handles GET /api/v1/damage-reports
func (h *Handlers) ListDamageReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		filter, err := damageFilterFromQuery(c)
		if err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		reports, err := h.damage.ListReports(c.Request.Context(), filter, paginationFromQuery(c))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromDamageReportList(reports))
	}
}

// ResolveDamageReport handles PUT /api/v1/damage-reports/:reportId/resolution
func (h *Handlers) ResolveDamageReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.ResolveDamageReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report, err := h.damage.SetResolved(c.Request.Context(), c.Param("reportId"), req.Resolved)
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromDamageReport(report))
	}
}

func damageFilterFromQuery(c *gin.Context) (domain.DamageReportFilter, error) {
	var filter domain.DamageReportFilter

	if orderID := c.Query("orderId"); orderID != "" {
		filter.OrderID = &orderID
	}
	if sku := c.Query("sku"); sku != "" {
		filter.SKU = &sku
	}
	if raw := c.Query("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.Resolved = &resolved
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &to
	}
	return filter, nil
}
