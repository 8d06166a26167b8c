package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/api/dto"
	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// StartScanSession handles POST /api/v1/scan/sessions
func (h *Handlers) StartScanSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.StartScanSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		warehouseID := req.WarehouseID
		if warehouseID == "" {
			warehouseID = middleware.GetWarehouseID(c)
		}

		session, err := h.scans.StartSession(c.Request.Context(), application.StartScanSessionCommand{
			Workflow:    req.Workflow,
			OrderID:     req.OrderID,
			UserID:      userIDFrom(c, req.UserID),
			WarehouseID: warehouseID,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"scan_session.id":       session.SessionID,
			"scan_session.workflow": string(session.Workflow),
		})

		c.JSON(http.StatusCreated, dto.FromSession(session))
	}
}

// GetScanSession handles GET /api/v1/scan/sessions/:sessionId
func (h *Handlers) GetScanSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		session, err := h.scans.GetSession(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}
		if session == nil {
			responder.RespondNotFound("scan session")
			return
		}

		c.JSON(http.StatusOK, dto.FromSession(session))
	}
}

// Scan handles POST /api/v1/scan/sessions/:sessionId/scans
func (h *Handlers) Scan() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"scan_session.id": c.Param("sessionId"),
			"scan.barcode":    req.Barcode,
		})

		view, err := h.scans.Scan(c.Request.Context(), application.ScanCommand{
			SessionID: c.Param("sessionId"),
			Barcode:   req.Barcode,
		})
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if h.metrics != nil {
			h.metrics.RecordScanLogged(view.Session.Stage(), string(view.Result.Outcome))
		}

		// Misses and wrong-kind scans are outcomes, not errors; the
		// scanner shows them via the tone and outcome fields.
		c.JSON(http.StatusOK, dto.FromScanOutcome(view))
	}
}

// ConfirmScanSession handles POST /api/v1/scan/sessions/:sessionId/confirm
func (h *Handlers) ConfirmScanSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		session, err := h.scans.ConfirmSession(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromSession(session))
	}
}

// SetScanSessionMuted handles PUT /api/v1/scan/sessions/:sessionId/mute
func (h *Handlers) SetScanSessionMuted() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req dto.SetMutedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session, err := h.scans.SetMuted(c.Request.Context(), c.Param("sessionId"), req.Muted)
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromSession(session))
	}
}

// GetScanHistory handles GET /api/v1/scan/sessions/:sessionId/history
func (h *Handlers) GetScanHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		events, err := h.scans.GetScanHistory(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.FromScanHistory(events))
	}
}

// ResolveBarcode handles GET /api/v1/scan/resolve
func (h *Handlers) ResolveBarcode() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		code := c.Query("code")
		if code == "" {
			responder.RespondBadRequest("code is required")
			return
		}

		resolved, err := h.scans.ResolveBarcode(c.Request.Context(), c.Query("orderId"), code)
		if err != nil {
			respondDomainError(responder, err)
			return
		}

		if resolved.Kind == domain.BarcodeKindNotFound {
			c.JSON(http.StatusNotFound, dto.FromResolved(resolved))
			return
		}
		c.JSON(http.StatusOK, dto.FromResolved(resolved))
	}
}
